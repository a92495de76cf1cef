package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Aashish23092/loan-reconciliation/client"
	"github.com/Aashish23092/loan-reconciliation/config"
	"github.com/Aashish23092/loan-reconciliation/dto"
	"github.com/Aashish23092/loan-reconciliation/service"
)

func setupRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)

	excel := client.NewExcelClient()
	runService := service.NewRunService(cfg, excel,
		service.NewLoaderService(excel),
		service.NewReconcileService(nil, cfg.FuzzyThreshold),
		service.NewConsolidateService(),
	)
	h := NewReconcileHandler(runService, cfg.MaxFileSize)

	router := gin.New()
	router.GET("/health", Health)
	router.POST("/api/v1/reconcile", h.Reconcile)
	router.POST("/api/v1/reconcile/export", h.Export)
	return router
}

func xlsx(t *testing.T, sheets map[string][][]interface{}, order ...string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			values := row
			require.NoError(t, f.SetSheetRow(name, cell, &values))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func assetWorkbook(t *testing.T) []byte {
	return xlsx(t, map[string][][]interface{}{
		dto.SheetAadhar: {
			{"PartnerLoanNumber", "AadhaarNumber", "state"},
			{"L1", "111122223333", "Goa"},
		},
		dto.SheetAsset: {
			{"PartnerLoanNumber", "rc_number", "owner_name", "father_name"},
			{"L1", "GA01AA0001", "JOHN", "DOE"},
		},
	}, dto.SheetAadhar, dto.SheetAsset)
}

func applicationWorkbook(t *testing.T) []byte {
	return xlsx(t, map[string][][]interface{}{
		dto.SheetApplicationForm: {
			{"Loan Number", "Customer Name"},
			{"L1", "JOHN DOE"},
			{"L2", "MARY SMITH"},
		},
		dto.SheetApplicant: {
			{"Loan Number", dto.ColApplicantCategory, "Aadhar Number"},
			{"L1", "borrower", "111122223333"},
		},
	}, dto.SheetApplicationForm, dto.SheetApplicant)
}

type part struct {
	field, filename string
	content         []byte
}

func multipartRequest(t *testing.T, url string, parts []part, fields map[string]string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, p := range parts {
		fw, err := w.CreateFormFile(p.field, p.filename)
		require.NoError(t, err)
		_, err = fw.Write(p.content)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, url, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func uploads(t *testing.T) []part {
	return []part{
		{field: "asset_details", filename: "asset.xlsx", content: assetWorkbook(t)},
		{field: "application_data", filename: "application.xlsx", content: applicationWorkbook(t)},
	}
}

func TestHealth(t *testing.T) {
	router := setupRouter(config.Default())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestReconcile(t *testing.T) {
	router := setupRouter(config.Default())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, "/api/v1/reconcile", uploads(t), nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result dto.RunResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

	assert.NotEmpty(t, result.RunID)
	assert.Len(t, result.Checks, 9)
	assert.Equal(t, 2, result.FinalTable.Len())
	assert.Equal(t, "Goa", result.FinalTable.Rows[0].Get(dto.ColState))
	assert.Equal(t, "L2", result.FinalTable.Rows[1].Get(dto.ColLoanNumber))
	assert.NotEmpty(t, result.Notes)
}

func TestReconcileStrictMissingSheet(t *testing.T) {
	router := setupRouter(config.Default())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, "/api/v1/reconcile", uploads(t), map[string]string{"strict": "true"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "LOAD_FAILED", resp.Error)
	assert.Contains(t, resp.Message, dto.SheetPancard)
}

func TestReconcileMissingFile(t *testing.T) {
	router := setupRouter(config.Default())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, "/api/v1/reconcile", uploads(t)[:1], nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Error)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestReconcileInvalidWorkbook(t *testing.T) {
	router := setupRouter(config.Default())

	parts := uploads(t)
	parts[0].content = []byte("not a workbook")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, "/api/v1/reconcile", parts, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "LOAD_FAILED")
}

func TestExport(t *testing.T) {
	cfg := config.Default()
	cfg.TimestampExports = false
	router := setupRouter(cfg)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, "/api/v1/reconcile/export", uploads(t), nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="merged_loan_data.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.NotEmpty(t, w.Header().Get("X-Run-ID"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(dto.SheetFinal)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestExportEmptyResult(t *testing.T) {
	router := setupRouter(config.Default())

	parts := uploads(t)
	parts[1].content = xlsx(t, map[string][][]interface{}{
		dto.SheetApplicant: {{"Loan Number", dto.ColApplicantCategory}, {"L1", "guarantor"}},
	}, dto.SheetApplicant)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartRequest(t, "/api/v1/reconcile/export", parts, nil))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "EMPTY_RESULT")
}
