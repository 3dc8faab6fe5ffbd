package importer

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"netops-portal/internal/history"
	"netops-portal/internal/models"
)

// RANStructParameterProcessor imports struct member rows. Always inserts.
// The mul column accepts the extended truthy/falsy vocabulary.
type RANStructParameterProcessor struct{}

func (RANStructParameterProcessor) Name() string { return "ran_struct_parameter" }

func (RANStructParameterProcessor) RequiredFields() []string {
	return []string{"member_name"}
}

func (RANStructParameterProcessor) Rules() RuleSet {
	return RuleSet{
		"ran_parameter_id": {Type: FieldString, MaxLen: 64},
		"seq":              {Type: FieldInteger},
		"member_name":      {Type: FieldString, Required: true, MaxLen: 255},
		"member_value":     {Type: FieldString, MaxLen: 255},
		"mul":              {Type: FieldBoolean},
		"remarks":          {Type: FieldString},
	}
}

func (RANStructParameterProcessor) ValidateRow(row Row) (Row, error) {
	return row, nil
}

func (RANStructParameterProcessor) ProcessRow(tx *gorm.DB, row Row, opts Options, actorID *uuid.UUID) error {
	record := models.RANStructParameter{
		ID:          uuid.New(),
		Seq:         rowIntPtr(row, "seq"),
		MemberName:  rowString(row, "member_name"),
		MemberValue: rowString(row, "member_value"),
		Mul:         ParseExtendedBool(row["mul"]),
		Remarks:     rowString(row, "remarks"),
	}
	if ref := rowString(row, "ran_parameter_id"); ref != "" {
		if id, err := uuid.Parse(ref); err == nil {
			record.RANParameterID = &id
		} else {
			return RowErrorf("ran_parameter_id is not a valid UUID: %s", ref)
		}
	}
	if err := tx.Create(&record).Error; err != nil {
		return err
	}
	return history.Record(tx, models.RANStructParameterHistory{}.TableName(), "ran_struct_parameter_id", record.ID, actorID, models.ChangeTypeCreate, history.CreationChanges(record.AttributeMap()))
}
