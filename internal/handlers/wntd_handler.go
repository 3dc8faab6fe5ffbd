package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"netops-portal/internal/database"
	"netops-portal/internal/history"
	"netops-portal/internal/models"
)

// AllowedWNTDSortByFields defines the fields by which a list of WNTD records can be sorted.
var AllowedWNTDSortByFields = map[string]bool{
	"site_name":  true,
	"wntd":       true,
	"status":     true,
	"created_at": true,
	"updated_at": true,
}

// CreateWNTD godoc
// @Summary Create a new WNTD record
// @Description Create a new wireless device deployment record. Every field is written to the history table as a creation entry.
// @Tags wntds
// @Accept  json
// @Produce  json
// @Param   wntd  body   models.CreateWNTDRequest   true  "WNTD record to create"
// @Success 201 {object} models.WNTD "Successfully created WNTD record"
// @Failure 400 {object} models.APIError "Bad Request (see 'code' in response for specifics like VALIDATION_ERROR, INVALID_ENUM_VALUE)"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /wntds [post]
func CreateWNTD(c *gin.Context) {
	var req models.CreateWNTDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}

	if req.Status != "" && !models.ValidWNTDStatuses[req.Status] {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidEnumValue, "Invalid status specified", gin.H{"status": req.Status})
		return
	}

	record := models.WNTD{
		ID:             uuid.New(),
		SiteName:       req.SiteName,
		LocID:          req.LocID,
		WNTD:           req.WNTD,
		IMSI:           req.IMSI,
		Version:        req.Version,
		AVC:            req.AVC,
		BWProfile:      req.BWProfile,
		Lon:            req.Lon,
		Lat:            req.Lat,
		HomeCell:       req.HomeCell,
		HomePCI:        req.HomePCI,
		TrafficProfile: req.TrafficProfile,
		Status:         req.Status,
		Remarks:        req.Remarks,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		SolutionType:   req.SolutionType,
	}

	db := database.GetDB()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return history.Record(tx, models.WNTDHistory{}.TableName(), "wntd_id", record.ID, actorID(c), models.ChangeTypeCreate, history.CreationChanges(record.AttributeMap()))
	})
	if err != nil {
		if isUniqueViolation(err) {
			RespondWithError(c, http.StatusConflict, models.ErrorCodeDuplicateName, "WNTD record already exists.", gin.H{"wntd": record.WNTD})
			return
		}
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to create WNTD record.", nil)
		return
	}
	RespondWithSuccess(c, http.StatusCreated, record)
}

// ListWNTDs godoc
// @Summary List WNTD records
// @Description Get a paginated list of WNTD records. Soft-deleted records are excluded.
// @Tags wntds
// @Produce  json
// @Param   limit      query  int     false  "Page size (default 10, max 100)"
// @Param   offset     query  int     false  "Offset (default 0)"
// @Param   sort_by    query  string  false  "Sort field"
// @Param   sort_order query  string  false  "asc or desc"
// @Success 200 {array} models.WNTD "Successfully retrieved list of WNTD records"
// @Failure 400 {object} models.APIError "Bad Request"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /wntds [get]
func ListWNTDs(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", strconv.Itoa(DefaultListLimit))
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid limit parameter: not a number.", gin.H{"limit": limitStr})
		return
	}
	if limit <= 0 {
		limit = DefaultListLimit
	} else if limit > MaxListLimit {
		limit = MaxListLimit
	}

	offsetStr := c.DefaultQuery("offset", "0")
	offset, err := strconv.Atoi(offsetStr)
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid offset parameter: not a number.", gin.H{"offset": offsetStr})
		return
	}
	if offset < 0 {
		offset = 0
	}

	sortBy := c.DefaultQuery("sort_by", DefaultSortByField)
	if !AllowedWNTDSortByFields[sortBy] {
		allowedFields := make([]string, 0, len(AllowedWNTDSortByFields))
		for k := range AllowedWNTDSortByFields {
			allowedFields = append(allowedFields, k)
		}
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid sort_by field.", gin.H{"field": sortBy, "allowed": allowedFields})
		return
	}

	sortOrder := strings.ToLower(c.DefaultQuery("sort_order", DefaultSortOrder))
	if sortOrder != "asc" && sortOrder != "desc" {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid sort_order value. Must be 'asc' or 'desc'.", gin.H{"value": c.Query("sort_order")})
		return
	}

	db := database.GetDB()
	var records []models.WNTD
	query := db.Order(sortBy + " " + sortOrder).Limit(limit).Offset(offset)
	if site := c.Query("site_name"); site != "" {
		query = query.Where("site_name = ?", site)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&records).Error; err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to list WNTD records", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, records)
}

// GetWNTD godoc
// @Summary Get a WNTD record by ID
// @Tags wntds
// @Produce  json
// @Param   id  path   string  true  "WNTD record ID (UUID)"
// @Success 200 {object} models.WNTD
// @Failure 400 {object} models.APIError "Bad Request"
// @Failure 404 {object} models.APIError "Not Found"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /wntds/{id} [get]
func GetWNTD(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidIDFormat, "Invalid WNTD ID format", gin.H{"id": idStr, "error": err.Error()})
		return
	}

	db := database.GetDB()
	var record models.WNTD
	if err := db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondWithError(c, http.StatusNotFound, models.ErrorCodeWNTDNotFound, "WNTD record not found", gin.H{"id": id})
		} else {
			RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to get WNTD record", nil)
		}
		return
	}
	RespondWithSuccess(c, http.StatusOK, record)
}

// UpdateWNTD godoc
// @Summary Update a WNTD record
// @Description Update a WNTD record. One history row is written per field whose value actually changed.
// @Tags wntds
// @Accept  json
// @Produce  json
// @Param   id    path   string                    true  "WNTD record ID (UUID)"
// @Param   wntd  body   models.UpdateWNTDRequest  true  "Fields to update"
// @Success 200 {object} models.WNTD
// @Failure 400 {object} models.APIError "Bad Request"
// @Failure 404 {object} models.APIError "Not Found"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /wntds/{id} [put]
func UpdateWNTD(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidIDFormat, "Invalid WNTD ID format", gin.H{"id": idStr, "error": err.Error()})
		return
	}

	var req models.UpdateWNTDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}

	db := database.GetDB()
	var record models.WNTD
	if err := db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondWithError(c, http.StatusNotFound, models.ErrorCodeWNTDNotFound, "WNTD record not found", gin.H{"id": id})
		} else {
			RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to find WNTD record for update", nil)
		}
		return
	}

	before := record.AttributeMap()

	if req.SiteName != nil {
		record.SiteName = *req.SiteName
	}
	if req.LocID != nil {
		record.LocID = *req.LocID
	}
	if req.WNTD != nil {
		record.WNTD = *req.WNTD
	}
	if req.IMSI != nil {
		record.IMSI = *req.IMSI
	}
	if req.Version != nil {
		record.Version = *req.Version
	}
	if req.AVC != nil {
		record.AVC = *req.AVC
	}
	if req.BWProfile != nil {
		record.BWProfile = *req.BWProfile
	}
	if req.Lon != nil {
		record.Lon = req.Lon
	}
	if req.Lat != nil {
		record.Lat = req.Lat
	}
	if req.HomeCell != nil {
		record.HomeCell = *req.HomeCell
	}
	if req.HomePCI != nil {
		record.HomePCI = req.HomePCI
	}
	if req.TrafficProfile != nil {
		record.TrafficProfile = *req.TrafficProfile
	}
	if req.Status != nil {
		normalized := strings.ToLower(*req.Status)
		if !models.ValidWNTDStatuses[normalized] {
			RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidEnumValue, "Invalid status specified", gin.H{"status": *req.Status})
			return
		}
		record.Status = normalized
	}
	if req.Remarks != nil {
		record.Remarks = *req.Remarks
	}
	if req.StartDate != nil {
		record.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		record.EndDate = req.EndDate
	}
	if req.SolutionType != nil {
		record.SolutionType = *req.SolutionType
	}

	changes := history.DiffChanges(before, record.AttributeMap())
	if len(changes) == 0 {
		RespondWithSuccess(c, http.StatusOK, record)
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&record).Error; err != nil {
			return err
		}
		return history.Record(tx, models.WNTDHistory{}.TableName(), "wntd_id", record.ID, actorID(c), models.ChangeTypeUpdate, changes)
	})
	if err != nil {
		if isUniqueViolation(err) {
			RespondWithError(c, http.StatusConflict, models.ErrorCodeDuplicateName, "WNTD record already exists.", gin.H{"wntd": record.WNTD})
			return
		}
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to update WNTD record.", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, record)
}

// DeleteWNTD godoc
// @Summary Delete a WNTD record
// @Description Soft-delete a WNTD record. Deletion history rows are written for every field; history outlives the record.
// @Tags wntds
// @Param   id  path   string  true  "WNTD record ID (UUID)"
// @Success 204 "Successfully deleted WNTD record"
// @Failure 400 {object} models.APIError "Bad Request"
// @Failure 404 {object} models.APIError "Not Found"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /wntds/{id} [delete]
func DeleteWNTD(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidIDFormat, "Invalid WNTD ID format", gin.H{"id": idStr, "error": err.Error()})
		return
	}

	db := database.GetDB()
	var record models.WNTD
	if err := db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondWithError(c, http.StatusNotFound, models.ErrorCodeWNTDNotFound, "WNTD record not found", gin.H{"id": id})
		} else {
			RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to find WNTD record for deletion", nil)
		}
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&record).Error; err != nil {
			return err
		}
		return history.Record(tx, models.WNTDHistory{}.TableName(), "wntd_id", record.ID, actorID(c), models.ChangeTypeDelete, history.DeletionChanges(record.AttributeMap()))
	})
	if err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to delete WNTD record", nil)
		return
	}
	RespondWithSuccess(c, http.StatusNoContent, nil)
}

// ListWNTDHistory godoc
// @Summary List the change history of a WNTD record
// @Description Get the append-only audit trail for a WNTD record, newest first. Works for soft-deleted records too.
// @Tags wntds
// @Produce  json
// @Param   id  path   string  true  "WNTD record ID (UUID)"
// @Success 200 {array} models.WNTDHistory
// @Failure 400 {object} models.APIError "Bad Request"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /wntds/{id}/history [get]
func ListWNTDHistory(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidIDFormat, "Invalid WNTD ID format", gin.H{"id": idStr, "error": err.Error()})
		return
	}

	db := database.GetDB()
	var rows []models.WNTDHistory
	if err := db.Where("wntd_id = ?", id).Order("created_at desc").Find(&rows).Error; err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to list WNTD history", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, rows)
}
