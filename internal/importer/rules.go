package importer

import (
	"fmt"
)

// FieldType is the declared semantic type of an import field. It drives both
// coercion and field-level validation; there is no rule-string parsing.
type FieldType string

const (
	FieldString   FieldType = "string"
	FieldNumeric  FieldType = "numeric"
	FieldInteger  FieldType = "integer"
	FieldBoolean  FieldType = "boolean"
	FieldDate     FieldType = "date"
	FieldDateTime FieldType = "datetime"
	FieldArray    FieldType = "array"
)

// FieldRule declares validation constraints for one target field.
type FieldRule struct {
	Type     FieldType
	Required bool
	MaxLen   int             // applies to string fields; 0 means unlimited
	Enum     map[string]bool // optional membership set, checked case-sensitively after normalization
}

// RuleSet maps target field names to their rules.
type RuleSet map[string]FieldRule

// Check validates a single field/value pair against the rule. Empty values
// pass unless the field is required.
func (r FieldRule) Check(field string, value any, validateDates bool) error {
	if isEmptyValue(value) {
		if r.Required {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}

	switch r.Type {
	case FieldNumeric, FieldInteger:
		if _, ok := toFloat(value); !ok {
			return fmt.Errorf("%s must be numeric", field)
		}
	case FieldDate, FieldDateTime:
		if validateDates {
			if s, ok := value.(string); ok {
				if _, parsed := parseFlexibleTime(s); !parsed {
					return fmt.Errorf("%s is not a valid date", field)
				}
			}
		}
	case FieldBoolean, FieldArray:
		// any value coerces
	default:
		if r.MaxLen > 0 {
			if s, ok := value.(string); ok && len(s) > r.MaxLen {
				return fmt.Errorf("%s exceeds maximum length of %d", field, r.MaxLen)
			}
		}
	}

	if len(r.Enum) > 0 {
		if s, ok := value.(string); ok && !r.Enum[s] {
			return fmt.Errorf("%s has invalid value: %s", field, s)
		}
	}
	return nil
}
