package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"netops-portal/internal/importer"
	"netops-portal/internal/models"
)

func buildImportRequest(t *testing.T, url, filename, content string, mappings map[string]string, opts *importer.Options) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	assert.NoError(t, err)
	_, err = part.Write([]byte(content))
	assert.NoError(t, err)

	if mappings != nil {
		raw, _ := json.Marshal(mappings)
		assert.NoError(t, writer.WriteField("column_mappings", string(raw)))
	}
	if opts != nil {
		raw, _ := json.Marshal(opts)
		assert.NoError(t, writer.WriteField("options", string(raw)))
	}
	assert.NoError(t, writer.Close())

	req, _ := http.NewRequest("POST", url, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestImportWNTDsEndToEnd(t *testing.T) {
	clearTables()
	csv := strings.Join([]string{
		"Device,Site,Loc,Status",
		"W100,SITE-1,LOC-1,in_progress",
		",SITE-2,LOC-2,completed",
	}, "\n")
	mappings := map[string]string{
		"wntd":      "Device",
		"site_name": "Site",
		"loc_id":    "Loc",
		"status":    "Status",
	}
	opts := importer.DefaultOptions()
	opts.SkipInvalidRows = true

	w := httptest.NewRecorder()
	req := buildImportRequest(t, "/api/v1/imports/wntds", "devices.csv", csv, mappings, &opts)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var result importer.Result
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 1, result.ImportedRows)
	assert.Equal(t, 1, result.SkippedRows)

	var devices []models.WNTD
	assert.NoError(t, testDB.Find(&devices).Error)
	assert.Len(t, devices, 1)
	assert.Equal(t, "W100", devices[0].WNTD)
}

func TestImportWNTDs_MissingMappingReportedInResult(t *testing.T) {
	clearTables()
	w := httptest.NewRecorder()
	req := buildImportRequest(t, "/api/v1/imports/wntds", "devices.csv", "Site\nSITE-1\n", map[string]string{"site_name": "Site"}, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var result importer.Result
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "Missing required column mapping")
}

func TestImportWNTDs_NoFile(t *testing.T) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	assert.NoError(t, writer.WriteField("column_mappings", `{}`))
	assert.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/imports/wntds", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var apiErr models.APIError
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, models.ErrorCodeInvalidFile, apiErr.Code)
}

func TestImportWNTDs_UnsupportedExtension(t *testing.T) {
	w := httptest.NewRecorder()
	req := buildImportRequest(t, "/api/v1/imports/wntds", "devices.txt", "data", nil, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var apiErr models.APIError
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, models.ErrorCodeInvalidFile, apiErr.Code)
}

func TestImportWNTDs_InvalidMappingPayload(t *testing.T) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, _ := writer.CreateFormFile("file", "devices.csv")
	part.Write([]byte("Device\nW100\n"))
	writer.WriteField("column_mappings", "not-json")
	writer.Close()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/imports/wntds", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var apiErr models.APIError
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, models.ErrorCodeInvalidMapping, apiErr.Code)
}

func TestImportRANParametersEndToEnd(t *testing.T) {
	clearTables()
	csv := "Name,Value,Domain\ntxPower,50,0-100\n"
	mappings := map[string]string{
		"parameter_name":  "Name",
		"parameter_value": "Value",
		"domain":          "Domain",
	}

	w := httptest.NewRecorder()
	req := buildImportRequest(t, "/api/v1/imports/ran-parameters", "params.csv", csv, mappings, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var result importer.Result
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.ImportedRows)

	var params []models.RANParameter
	assert.NoError(t, testDB.Find(&params).Error)
	assert.Len(t, params, 1)
	assert.Equal(t, "txPower", params[0].ParameterName)
}

func TestExportWNTDs(t *testing.T) {
	clearTables()
	createTestWNTD(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/exports/wntds", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "wntds.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "site_name,"))
	assert.Contains(t, lines[1], "in_progress")
}
