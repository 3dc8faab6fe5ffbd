package importer

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"netops-portal/internal/history"
	"netops-portal/internal/models"
)

// RANParameterProcessor imports RAN configuration parameters. Parameters
// have no natural key: every row inserts a new record. A "min-max" domain
// string, when present, gates the parameter value.
type RANParameterProcessor struct{}

func (RANParameterProcessor) Name() string { return "ran_parameter" }

func (RANParameterProcessor) RequiredFields() []string {
	return []string{"parameter_name"}
}

func (RANParameterProcessor) Rules() RuleSet {
	return RuleSet{
		"parameter_name":  {Type: FieldString, Required: true, MaxLen: 255},
		"parameter_value": {Type: FieldString, MaxLen: 255},
		"unit":            {Type: FieldString, MaxLen: 64},
		"domain":          {Type: FieldString, MaxLen: 64},
		"data_type":       {Type: FieldString, MaxLen: 64},
		"mo_class_name":   {Type: FieldString, MaxLen: 255},
		"technology":      {Type: FieldString, MaxLen: 64},
		"vendor":          {Type: FieldString, MaxLen: 64},
		"applicability":   {Type: FieldString, MaxLen: 255},
		"remarks":         {Type: FieldString},
	}
}

func (RANParameterProcessor) ValidateRow(row Row) (Row, error) {
	return row, nil
}

func (RANParameterProcessor) ProcessRow(tx *gorm.DB, row Row, opts Options, actorID *uuid.UUID) error {
	if domain := rowString(row, "domain"); domain != "" {
		if lo, hi, ok := parseDomainRange(domain); ok {
			if value, okv := toFloat(row["parameter_value"]); okv && (value < lo || value > hi) {
				return RowErrorf("Parameter value must be between %v and %v", lo, hi)
			}
		}
	}

	record := models.RANParameter{
		ID:             uuid.New(),
		ParameterName:  rowString(row, "parameter_name"),
		ParameterValue: rowString(row, "parameter_value"),
		Unit:           rowString(row, "unit"),
		Domain:         rowString(row, "domain"),
		DataType:       rowString(row, "data_type"),
		MOClassName:    rowString(row, "mo_class_name"),
		Technology:     rowString(row, "technology"),
		Vendor:         rowString(row, "vendor"),
		Applicability:  rowString(row, "applicability"),
		Remarks:        rowString(row, "remarks"),
	}
	if err := tx.Create(&record).Error; err != nil {
		return err
	}
	return history.Record(tx, models.RANParameterHistory{}.TableName(), "ran_parameter_id", record.ID, actorID, models.ChangeTypeCreate, history.CreationChanges(record.AttributeMap()))
}

// parseDomainRange parses a "min-max" bound declaration.
func parseDomainRange(domain string) (lo, hi float64, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(domain), "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lo, errLo := parseBound(parts[0])
	hi, errHi := parseBound(parts[1])
	if errLo != nil || errHi != nil {
		return 0, 0, false
	}
	return lo, hi, true
}

func parseBound(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
