package importer

import (
	"github.com/sirupsen/logrus"
)

// RowIssue ties one error or warning to a 1-based source row.
type RowIssue struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type indexedRow struct {
	index int // 1-based data-row index in the source file
	data  Row
}

// validateRows applies field-level rules and the entity's cross-field hook to
// every row. A field failure is a hard error that drops the row, unless
// ForceTypeCompatibility nulls the field with a warning instead. Hook
// failures drop the row as a warning under SkipInvalidRows, else as an error.
func validateRows(rows []Row, rules RuleSet, opts Options, hook func(Row) (Row, error)) (valid []indexedRow, errs, warns []RowIssue) {
	valid = make([]indexedRow, 0, len(rows))

	for i, row := range rows {
		index := i + 1
		rowOK := true

		for field, rule := range rules {
			value, present := row[field]
			if !present {
				continue
			}
			if err := rule.Check(field, value, opts.ValidateDates); err != nil {
				if opts.ForceTypeCompatibility && !rule.Required {
					warns = append(warns, RowIssue{Row: index, Field: field, Message: err.Error() + ", set to null"})
					row[field] = nil
					continue
				}
				errs = append(errs, RowIssue{Row: index, Field: field, Message: err.Error()})
				rowOK = false
				break
			}
		}
		if !rowOK {
			continue
		}

		if hook != nil {
			checked, err := hook(row)
			if err != nil {
				logrus.WithFields(logrus.Fields{"row": index}).Warn(err.Error())
				if opts.SkipInvalidRows {
					warns = append(warns, RowIssue{Row: index, Message: err.Error()})
				} else {
					errs = append(errs, RowIssue{Row: index, Message: err.Error()})
				}
				continue
			}
			row = checked
		}

		valid = append(valid, indexedRow{index: index, data: row})
	}
	return valid, errs, warns
}
