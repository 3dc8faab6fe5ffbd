package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"netops-portal/internal/database"
	"netops-portal/internal/importer"
	"netops-portal/internal/models"
)

var allowedImportExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

// importRequest is the decoded form payload accompanying an import upload.
type importRequest struct {
	ColumnMappings map[string]string `json:"column_mappings"`
	Options        *importer.Options `json:"options"`
}

// parseImportUpload validates the multipart upload, stores the file under the
// configured storage root, and decodes the mapping payload. The returned path
// is relative to the storage root. Responds with an error and returns ok=false
// when the upload is unusable.
func parseImportUpload(c *gin.Context) (path string, req importRequest, ok bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidFile, "A spreadsheet file is required under the 'file' form field.", gin.H{"reason": err.Error()})
		return "", req, false
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImportExtensions[ext] {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidFile, "Unsupported file type. Upload a .csv, .xlsx or .xls file.", gin.H{"filename": fileHeader.Filename})
		return "", req, false
	}
	if cfg.ImportMaxBytes > 0 && fileHeader.Size > cfg.ImportMaxBytes {
		RespondWithError(c, http.StatusRequestEntityTooLarge, models.ErrorCodeFileTooLarge, "Uploaded file exceeds the maximum allowed size.", gin.H{"size": fileHeader.Size, "max": cfg.ImportMaxBytes})
		return "", req, false
	}

	if raw := c.PostForm("column_mappings"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.ColumnMappings); err != nil {
			RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidMapping, "column_mappings must be a JSON object of field to source column.", gin.H{"reason": err.Error()})
			return "", req, false
		}
	}
	if raw := c.PostForm("options"); raw != "" {
		var opts importer.Options
		if err := json.Unmarshal([]byte(raw), &opts); err != nil {
			RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "options must be a JSON object.", gin.H{"reason": err.Error()})
			return "", req, false
		}
		req.Options = &opts
	}
	if req.ColumnMappings == nil {
		req.ColumnMappings = map[string]string{}
	}

	name := fmt.Sprintf("import-%d%s", time.Now().UnixNano(), ext)
	dest := filepath.Join(cfg.StorageRoot, name)
	if err := c.SaveUploadedFile(fileHeader, dest); err != nil {
		logrus.WithError(err).Error("failed to store import upload")
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to store uploaded file.", nil)
		return "", req, false
	}
	return name, req, true
}

// runImport executes the pipeline for one processor and writes the structured
// result. The uploaded file is removed after the run; the result is returned
// with HTTP 200 even when the import itself reports failure, so callers always
// get the row accounting.
func runImport(c *gin.Context, proc importer.Processor) {
	path, req, ok := parseImportUpload(c)
	if !ok {
		return
	}
	defer os.Remove(filepath.Join(cfg.StorageRoot, path))

	opts := req.Options
	if opts == nil {
		defaults := importer.DefaultOptions()
		opts = &defaults
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = cfg.ImportChunkSize
	}

	svc := importer.NewService(database.GetDB(), cfg.StorageRoot)
	result := svc.ImportFromFile(c.Request.Context(), proc, path, req.ColumnMappings, opts, actorID(c))

	logrus.WithFields(logrus.Fields{
		"processor": proc.Name(),
		"total":     result.TotalRows,
		"imported":  result.ImportedRows,
		"skipped":   result.SkippedRows,
		"failed":    result.FailedRows,
		"success":   result.Success,
	}).Info("import run finished")

	RespondWithSuccess(c, http.StatusOK, result)
}

// ImportWNTDs godoc
// @Summary Bulk import WNTD records from a spreadsheet
// @Description Upload a .csv/.xlsx/.xls file plus a column_mappings JSON form field. Existing devices matched by WNTD code or by (site_name, loc_id) are updated when update_existing is set; every create and field change is written to history.
// @Tags imports
// @Accept  multipart/form-data
// @Produce  json
// @Param   file             formData  file    true   "Spreadsheet file"
// @Param   column_mappings  formData  string  false  "JSON object mapping target fields to source columns"
// @Param   options          formData  string  false  "JSON import options"
// @Success 200 {object} importer.Result
// @Failure 400 {object} models.APIError
// @Failure 413 {object} models.APIError
// @Router /imports/wntds [post]
func ImportWNTDs(c *gin.Context) {
	runImport(c, importer.WNTDProcessor{})
}

// ImportImplementations godoc
// @Summary Bulk import implementation tracking records from a spreadsheet
// @Tags imports
// @Accept  multipart/form-data
// @Produce  json
// @Param   file             formData  file    true   "Spreadsheet file"
// @Param   column_mappings  formData  string  false  "JSON object mapping target fields to source columns"
// @Param   options          formData  string  false  "JSON import options"
// @Success 200 {object} importer.Result
// @Failure 400 {object} models.APIError
// @Router /imports/implementations [post]
func ImportImplementations(c *gin.Context) {
	runImport(c, importer.ImplementationProcessor{})
}

// ImportRANParameters godoc
// @Summary Bulk import RAN parameters from a spreadsheet
// @Description RAN parameter imports always insert new records.
// @Tags imports
// @Accept  multipart/form-data
// @Produce  json
// @Param   file             formData  file    true   "Spreadsheet file"
// @Param   column_mappings  formData  string  false  "JSON object mapping target fields to source columns"
// @Param   options          formData  string  false  "JSON import options"
// @Success 200 {object} importer.Result
// @Failure 400 {object} models.APIError
// @Router /imports/ran-parameters [post]
func ImportRANParameters(c *gin.Context) {
	runImport(c, importer.RANParameterProcessor{})
}

// ImportRANStructParameters godoc
// @Summary Bulk import RAN struct member rows from a spreadsheet
// @Tags imports
// @Accept  multipart/form-data
// @Produce  json
// @Param   file             formData  file    true   "Spreadsheet file"
// @Param   column_mappings  formData  string  false  "JSON object mapping target fields to source columns"
// @Param   options          formData  string  false  "JSON import options"
// @Success 200 {object} importer.Result
// @Failure 400 {object} models.APIError
// @Router /imports/ran-struct-parameters [post]
func ImportRANStructParameters(c *gin.Context) {
	runImport(c, importer.RANStructParameterProcessor{})
}
