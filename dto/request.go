package dto

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var workbookExtensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm"}

// ReconcileRequest represents the incoming upload of both workbooks
type ReconcileRequest struct {
	AssetDetails    *multipart.FileHeader `form:"asset_details"`
	ApplicationData *multipart.FileHeader `form:"application_data"`
	Strict          bool                  `form:"strict"`
}

// Validate performs basic validation on the request
func (r *ReconcileRequest) Validate(maxFileSize int64) error {
	if r.AssetDetails == nil || r.ApplicationData == nil {
		return ErrMissingFile
	}

	for _, f := range []*multipart.FileHeader{r.AssetDetails, r.ApplicationData} {
		if !isWorkbookName(f.Filename) {
			return fmt.Errorf("invalid file type for %s. Supported: %s", f.Filename, strings.Join(workbookExtensions, ", "))
		}
		if maxFileSize > 0 && f.Size > maxFileSize {
			return fmt.Errorf("file %s exceeds the %d byte limit", f.Filename, maxFileSize)
		}
	}
	return nil
}

func isWorkbookName(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, valid := range workbookExtensions {
		if ext == valid {
			return true
		}
	}
	return false
}
