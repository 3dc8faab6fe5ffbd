package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"netops-portal/internal/history"
	"netops-portal/internal/models"
)

// ImplementationProcessor imports site implementation tracking records. The
// natural key is the (site_name, category) pair.
type ImplementationProcessor struct{}

func (ImplementationProcessor) Name() string { return "implementation" }

func (ImplementationProcessor) RequiredFields() []string {
	return []string{"site_name", "category"}
}

func (ImplementationProcessor) Rules() RuleSet {
	return RuleSet{
		"site_name":   {Type: FieldString, Required: true, MaxLen: 255},
		"category":    {Type: FieldString, Required: true, MaxLen: 64},
		"status":      {Type: FieldString, MaxLen: 64},
		"enm_scripts": {Type: FieldString},
		"notes":       {Type: FieldString},
		"remarks":     {Type: FieldString},
		"start_date":  {Type: FieldDate},
		"end_date":    {Type: FieldDate},
	}
}

func (ImplementationProcessor) ValidateRow(row Row) (Row, error) {
	category := strings.ToLower(strings.ReplaceAll(rowString(row, "category"), " ", "_"))
	if category != "" {
		if !models.ValidImplementationCategories[category] {
			return nil, fmt.Errorf("invalid category: %s", rowString(row, "category"))
		}
		row["category"] = category
	}

	if status := rowString(row, "status"); status != "" {
		normalized := strings.ToLower(strings.ReplaceAll(status, " ", "_"))
		if !models.ValidImplementationStatuses[normalized] {
			return nil, fmt.Errorf("invalid status: %s", status)
		}
		row["status"] = normalized
	}

	start := rowTimePtr(row, "start_date")
	end := rowTimePtr(row, "end_date")
	if start != nil && end != nil && end.Before(*start) {
		return nil, fmt.Errorf("end_date must not be before start_date")
	}
	return row, nil
}

func (ImplementationProcessor) ProcessRow(tx *gorm.DB, row Row, opts Options, actorID *uuid.UUID) error {
	siteName := rowString(row, "site_name")
	category := rowString(row, "category")

	var existing models.Implementation
	found := false
	err := tx.Where("site_name = ? AND category = ?", siteName, category).First(&existing).Error
	if err == nil {
		found = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if found && opts.UpdateExisting {
		before := existing.AttributeMap()
		applyImplementationRow(&existing, row)
		changes := history.DiffChanges(before, existing.AttributeMap())
		if len(changes) == 0 {
			return nil
		}
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		return history.Record(tx, models.ImplementationHistory{}.TableName(), "implementation_id", existing.ID, actorID, models.ChangeTypeUpdate, changes)
	}

	record := models.Implementation{ID: uuid.New()}
	applyImplementationRow(&record, row)
	if err := tx.Create(&record).Error; err != nil {
		return err
	}
	return history.Record(tx, models.ImplementationHistory{}.TableName(), "implementation_id", record.ID, actorID, models.ChangeTypeCreate, history.CreationChanges(record.AttributeMap()))
}

func applyImplementationRow(m *models.Implementation, row Row) {
	if _, ok := row["site_name"]; ok {
		m.SiteName = rowString(row, "site_name")
	}
	if _, ok := row["category"]; ok {
		m.Category = rowString(row, "category")
	}
	if _, ok := row["status"]; ok {
		m.Status = rowString(row, "status")
	}
	if _, ok := row["enm_scripts"]; ok {
		m.EnmScripts = rowString(row, "enm_scripts")
	}
	if _, ok := row["notes"]; ok {
		m.Notes = rowString(row, "notes")
	}
	if _, ok := row["remarks"]; ok {
		m.Remarks = rowString(row, "remarks")
	}
	if _, ok := row["start_date"]; ok {
		m.StartDate = rowTimePtr(row, "start_date")
	}
	if _, ok := row["end_date"]; ok {
		m.EndDate = rowTimePtr(row, "end_date")
	}
}
