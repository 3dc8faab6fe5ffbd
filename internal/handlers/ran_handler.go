package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"netops-portal/internal/database"
	"netops-portal/internal/history"
	"netops-portal/internal/models"
)

// CreateRANParameter godoc
// @Summary Create a RAN parameter record
// @Tags ran-parameters
// @Accept  json
// @Produce  json
// @Param   parameter  body   models.CreateRANParameterRequest  true  "Parameter record to create"
// @Success 201 {object} models.RANParameter
// @Failure 400 {object} models.APIError
// @Router /ran-parameters [post]
func CreateRANParameter(c *gin.Context) {
	var req models.CreateRANParameterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}

	record := models.RANParameter{
		ID:             uuid.New(),
		ParameterName:  req.ParameterName,
		ParameterValue: req.ParameterValue,
		Unit:           req.Unit,
		Domain:         req.Domain,
		DataType:       req.DataType,
		MOClassName:    req.MOClassName,
		Technology:     req.Technology,
		Vendor:         req.Vendor,
		Applicability:  req.Applicability,
		Remarks:        req.Remarks,
	}

	db := database.GetDB()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return history.Record(tx, models.RANParameterHistory{}.TableName(), "ran_parameter_id", record.ID, actorID(c), models.ChangeTypeCreate, history.CreationChanges(record.AttributeMap()))
	})
	if err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to create RAN parameter.", nil)
		return
	}
	RespondWithSuccess(c, http.StatusCreated, record)
}

// ListRANParameters godoc
// @Summary List RAN parameter records
// @Tags ran-parameters
// @Produce  json
// @Success 200 {array} models.RANParameter
// @Router /ran-parameters [get]
func ListRANParameters(c *gin.Context) {
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

	query := database.GetDB().Order("created_at desc").Limit(limit).Offset(offset)
	if name := c.Query("parameter_name"); name != "" {
		query = query.Where("parameter_name = ?", name)
	}
	if tech := c.Query("technology"); tech != "" {
		query = query.Where("technology = ?", tech)
	}
	if vendor := c.Query("vendor"); vendor != "" {
		query = query.Where("vendor = ?", vendor)
	}

	var records []models.RANParameter
	if err := query.Find(&records).Error; err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to list RAN parameters", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, records)
}

// GetRANParameter godoc
// @Summary Get a RAN parameter record by ID
// @Tags ran-parameters
// @Produce  json
// @Param   id  path   string  true  "Parameter ID (UUID)"
// @Success 200 {object} models.RANParameter
// @Failure 404 {object} models.APIError
// @Router /ran-parameters/{id} [get]
func GetRANParameter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidIDFormat, "Invalid parameter ID format", gin.H{"id": c.Param("id")})
		return
	}

	var record models.RANParameter
	if err := database.GetDB().First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondWithError(c, http.StatusNotFound, models.ErrorCodeParameterNotFound, "RAN parameter not found", gin.H{"id": id})
		} else {
			RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to get RAN parameter", nil)
		}
		return
	}
	RespondWithSuccess(c, http.StatusOK, record)
}

// DeleteRANParameter godoc
// @Summary Delete a RAN parameter record
// @Tags ran-parameters
// @Param   id  path   string  true  "Parameter ID (UUID)"
// @Success 204 "Successfully deleted"
// @Failure 404 {object} models.APIError
// @Router /ran-parameters/{id} [delete]
func DeleteRANParameter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidIDFormat, "Invalid parameter ID format", gin.H{"id": c.Param("id")})
		return
	}

	db := database.GetDB()
	var record models.RANParameter
	if err := db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondWithError(c, http.StatusNotFound, models.ErrorCodeParameterNotFound, "RAN parameter not found", gin.H{"id": id})
		} else {
			RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to find RAN parameter for deletion", nil)
		}
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&record).Error; err != nil {
			return err
		}
		return history.Record(tx, models.RANParameterHistory{}.TableName(), "ran_parameter_id", record.ID, actorID(c), models.ChangeTypeDelete, history.DeletionChanges(record.AttributeMap()))
	})
	if err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to delete RAN parameter", nil)
		return
	}
	RespondWithSuccess(c, http.StatusNoContent, nil)
}

// ListRANParameterHistory godoc
// @Summary List the change history of a RAN parameter
// @Tags ran-parameters
// @Produce  json
// @Param   id  path   string  true  "Parameter ID (UUID)"
// @Success 200 {array} models.RANParameterHistory
// @Router /ran-parameters/{id}/history [get]
func ListRANParameterHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidIDFormat, "Invalid parameter ID format", gin.H{"id": c.Param("id")})
		return
	}

	var rows []models.RANParameterHistory
	if err := database.GetDB().Where("ran_parameter_id = ?", id).Order("created_at desc").Find(&rows).Error; err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to list RAN parameter history", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, rows)
}

// CreateRANStructParameter godoc
// @Summary Create a struct member row under a RAN parameter
// @Tags ran-parameters
// @Accept  json
// @Produce  json
// @Param   member  body   models.CreateRANStructParameterRequest  true  "Struct member to create"
// @Success 201 {object} models.RANStructParameter
// @Failure 400 {object} models.APIError
// @Router /ran-struct-parameters [post]
func CreateRANStructParameter(c *gin.Context) {
	var req models.CreateRANStructParameterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}

	record := models.RANStructParameter{
		ID:             uuid.New(),
		RANParameterID: req.RANParameterID,
		Seq:            req.Seq,
		MemberName:     req.MemberName,
		MemberValue:    req.MemberValue,
		Remarks:        req.Remarks,
	}
	if req.Mul != nil {
		record.Mul = *req.Mul
	}

	db := database.GetDB()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return history.Record(tx, models.RANStructParameterHistory{}.TableName(), "ran_struct_parameter_id", record.ID, actorID(c), models.ChangeTypeCreate, history.CreationChanges(record.AttributeMap()))
	})
	if err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to create struct member.", nil)
		return
	}
	RespondWithSuccess(c, http.StatusCreated, record)
}

// ListRANStructParameters godoc
// @Summary List struct member rows
// @Tags ran-parameters
// @Produce  json
// @Param   ran_parameter_id  query  string  false  "Filter by parent parameter ID"
// @Success 200 {array} models.RANStructParameter
// @Router /ran-struct-parameters [get]
func ListRANStructParameters(c *gin.Context) {
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

	query := database.GetDB().Order("seq asc").Limit(limit).Offset(offset)
	if parent := c.Query("ran_parameter_id"); parent != "" {
		parentID, err := uuid.Parse(parent)
		if err != nil {
			RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidIDFormat, "Invalid ran_parameter_id format", gin.H{"ran_parameter_id": parent})
			return
		}
		query = query.Where("ran_parameter_id = ?", parentID)
	}

	var records []models.RANStructParameter
	if err := query.Find(&records).Error; err != nil {
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Failed to list struct members", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, records)
}
