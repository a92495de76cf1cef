package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/Aashish23092/loan-reconciliation/dto"
	"github.com/Aashish23092/loan-reconciliation/logger"
	"github.com/Aashish23092/loan-reconciliation/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReconcileHandler struct {
	runService  *service.RunService
	maxFileSize int64
}

func NewReconcileHandler(runService *service.RunService, maxFileSize int64) *ReconcileHandler {
	return &ReconcileHandler{
		runService:  runService,
		maxFileSize: maxFileSize,
	}
}

// Reconcile handles the POST /reconcile endpoint
func (h *ReconcileHandler) Reconcile(c *gin.Context) {
	logger.Info("Received reconciliation request")

	result, ok := h.run(c)
	if !ok {
		return
	}

	logger.Info("Reconciliation %s completed: %d/%d checks failed",
		result.RunID, result.Summary.Failed, result.Summary.TotalChecks)
	c.JSON(http.StatusOK, result)
}

// Export handles the POST /reconcile/export endpoint
func (h *ReconcileHandler) Export(c *gin.Context) {
	logger.Info("Received reconciliation export request")

	result, ok := h.run(c)
	if !ok {
		return
	}

	buf, filename, err := h.runService.Export(result)
	if errors.Is(err, dto.ErrEmptyResult) {
		h.sendError(c, http.StatusUnprocessableEntity, "EMPTY_RESULT", "Final table is empty, nothing to export", err)
		return
	}
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to export final table", err)
		return
	}

	logger.Info("Exporting %d rows as %s", result.FinalTable.Len(), filename)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("X-Run-ID", result.RunID)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// run binds and validates the upload, then executes one reconciliation.
// On failure the error response has already been sent.
func (h *ReconcileHandler) run(c *gin.Context) (*dto.RunResult, bool) {
	var request dto.ReconcileRequest
	if err := c.ShouldBind(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Failed to parse multipart form", err)
		return nil, false
	}
	if err := request.Validate(h.maxFileSize); err != nil {
		h.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), err)
		return nil, false
	}

	assetDetails, err := request.AssetDetails.Open()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Failed to read asset_details upload", err)
		return nil, false
	}
	defer assetDetails.Close()

	applicationData, err := request.ApplicationData.Open()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "INVALID_REQUEST", "Failed to read application_data upload", err)
		return nil, false
	}
	defer applicationData.Close()

	result, err := h.runService.Run(c.Request.Context(),
		upload(request.AssetDetails, assetDetails),
		upload(request.ApplicationData, applicationData),
		request.Strict,
	)
	if err != nil {
		var loadErr *service.LoadError
		if errors.As(err, &loadErr) {
			h.sendError(c, http.StatusBadRequest, "LOAD_FAILED", loadErr.Error(), err)
			return nil, false
		}
		h.sendError(c, http.StatusInternalServerError, "RECONCILIATION_FAILED", "Failed to reconcile workbooks", err)
		return nil, false
	}
	return result, true
}

func upload(header *multipart.FileHeader, file multipart.File) service.Upload {
	return service.Upload{Name: header.Filename, Reader: file}
}

// sendError sends a structured error response
func (h *ReconcileHandler) sendError(c *gin.Context, statusCode int, code, message string, err error) {
	if err != nil {
		logger.Error("%s: %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: message,
		Code:    statusCode,
	})
}

// Health handles the GET /health endpoint
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Loan Reconciliation",
	})
}
