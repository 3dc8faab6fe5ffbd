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

// CreateImplementation godoc
// @Summary Create an implementation tracking record
// @Tags implementations
// @Accept  json
// @Produce  json
// @Param   implementation  body   models.CreateImplementationRequest  true  "Implementation record to create"
// @Success 201 {object} models.Implementation
// @Failure 400 {object} models.APIError
// @Router /implementations [post]
func CreateImplementation(c *gin.Context) {
	var req models.CreateImplementationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}

	category := strings.ToLower(req.Category)
	if !models.ValidImplementationCategories[category] {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidEnumValue, "Invalid category specified", gin.H{"category": req.Category})
		return
	}
	if req.Status != "" && !models.ValidImplementationStatuses[strings.ToLower(req.Status)] {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidEnumValue, "Invalid status specified", gin.H{"status": req.Status})
		return
	}

	record := models.Implementation{
		ID:         uuid.New(),
		SiteName:   req.SiteName,
		Category:   category,
		Status:     strings.ToLower(req.Status),
		EnmScripts: req.EnmScripts,
		Notes:      req.Notes,
		Remarks:    req.Remarks,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}

	db := database.GetDB()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return history.Record(tx, models.ImplementationHistory{}.TableName(), "implementation_id", record.ID, actorID(c), models.ChangeTypeCreate, history.CreationChanges(record.AttributeMap()))
	})
	if err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to create implementation record.", nil)
		return
	}
	RespondWithSuccess(c, http.StatusCreated, record)
}

// ListImplementations godoc
// @Summary List implementation tracking records
// @Tags implementations
// @Produce  json
// @Success 200 {array} models.Implementation
// @Router /implementations [get]
func ListImplementations(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultListLimit)))
	if err != nil || limit <= 0 {
		limit = DefaultListLimit
	} else if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	db := database.GetDB()
	query := db.Order("created_at desc").Limit(limit).Offset(offset)
	if site := c.Query("site_name"); site != "" {
		query = query.Where("site_name = ?", site)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", strings.ToLower(category))
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", strings.ToLower(status))
	}

	var records []models.Implementation
	if err := query.Find(&records).Error; err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to list implementation records", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, records)
}

// GetImplementation godoc
// @Summary Get an implementation tracking record by ID
// @Tags implementations
// @Produce  json
// @Param   id  path   string  true  "Implementation record ID (UUID)"
// @Success 200 {object} models.Implementation
// @Failure 404 {object} models.APIError
// @Router /implementations/{id} [get]
func GetImplementation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidIDFormat, "Invalid implementation ID format", gin.H{"id": c.Param("id")})
		return
	}

	var record models.Implementation
	if err := database.GetDB().First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondWithError(c, http.StatusNotFound, models.ErrorCodeImplementationNotFound, "Implementation record not found", gin.H{"id": id})
		} else {
			RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to get implementation record", nil)
		}
		return
	}
	RespondWithSuccess(c, http.StatusOK, record)
}

// UpdateImplementation godoc
// @Summary Update an implementation tracking record
// @Tags implementations
// @Accept  json
// @Produce  json
// @Param   id              path  string                              true  "Implementation record ID (UUID)"
// @Param   implementation  body  models.UpdateImplementationRequest  true  "Fields to update"
// @Success 200 {object} models.Implementation
// @Failure 404 {object} models.APIError
// @Router /implementations/{id} [put]
func UpdateImplementation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidIDFormat, "Invalid implementation ID format", gin.H{"id": c.Param("id")})
		return
	}

	var req models.UpdateImplementationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}

	db := database.GetDB()
	var record models.Implementation
	if err := db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondWithError(c, http.StatusNotFound, models.ErrorCodeImplementationNotFound, "Implementation record not found", gin.H{"id": id})
		} else {
			RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to find implementation record for update", nil)
		}
		return
	}

	before := record.AttributeMap()

	if req.SiteName != nil {
		record.SiteName = *req.SiteName
	}
	if req.Category != nil {
		category := strings.ToLower(*req.Category)
		if !models.ValidImplementationCategories[category] {
			RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidEnumValue, "Invalid category specified", gin.H{"category": *req.Category})
			return
		}
		record.Category = category
	}
	if req.Status != nil {
		status := strings.ToLower(*req.Status)
		if !models.ValidImplementationStatuses[status] {
			RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidEnumValue, "Invalid status specified", gin.H{"status": *req.Status})
			return
		}
		record.Status = status
	}
	if req.EnmScripts != nil {
		record.EnmScripts = *req.EnmScripts
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
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

	changes := history.DiffChanges(before, record.AttributeMap())
	if len(changes) == 0 {
		RespondWithSuccess(c, http.StatusOK, record)
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&record).Error; err != nil {
			return err
		}
		return history.Record(tx, models.ImplementationHistory{}.TableName(), "implementation_id", record.ID, actorID(c), models.ChangeTypeUpdate, changes)
	})
	if err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to update implementation record.", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, record)
}

// DeleteImplementation godoc
// @Summary Delete an implementation tracking record
// @Tags implementations
// @Param   id  path   string  true  "Implementation record ID (UUID)"
// @Success 204 "Successfully deleted"
// @Failure 404 {object} models.APIError
// @Router /implementations/{id} [delete]
func DeleteImplementation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidIDFormat, "Invalid implementation ID format", gin.H{"id": c.Param("id")})
		return
	}

	db := database.GetDB()
	var record models.Implementation
	if err := db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondWithError(c, http.StatusNotFound, models.ErrorCodeImplementationNotFound, "Implementation record not found", gin.H{"id": id})
		} else {
			RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to find implementation record for deletion", nil)
		}
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&record).Error; err != nil {
			return err
		}
		return history.Record(tx, models.ImplementationHistory{}.TableName(), "implementation_id", record.ID, actorID(c), models.ChangeTypeDelete, history.DeletionChanges(record.AttributeMap()))
	})
	if err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to delete implementation record", nil)
		return
	}
	RespondWithSuccess(c, http.StatusNoContent, nil)
}

// ListImplementationHistory godoc
// @Summary List the change history of an implementation record
// @Tags implementations
// @Produce  json
// @Param   id  path   string  true  "Implementation record ID (UUID)"
// @Success 200 {array} models.ImplementationHistory
// @Router /implementations/{id}/history [get]
func ListImplementationHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidIDFormat, "Invalid implementation ID format", gin.H{"id": c.Param("id")})
		return
	}

	var rows []models.ImplementationHistory
	if err := database.GetDB().Where("implementation_id = ?", id).Order("created_at desc").Find(&rows).Error; err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to list implementation history", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, rows)
}
