package importer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Row is one spreadsheet row keyed by column name before mapping, or by
// target field name after mapping.
type Row map[string]any

var extendedTruthy = map[string]bool{"true": true, "yes": true, "y": true, "1": true, "on": true}
var extendedFalsy = map[string]bool{"false": true, "no": true, "n": true, "0": true, "off": true, "": true}

var booleanTruthy = map[string]bool{"true": true, "1": true, "yes": true, "y": true}
var booleanFalsy = map[string]bool{"false": true, "0": true, "no": true, "n": true}

// Coerce converts a raw cell value to the declared field type. It is total:
// it never fails, resolving unconvertible input to nil plus a warning. The
// warning string is empty when coercion succeeded cleanly.
func Coerce(field string, raw any, t FieldType) (any, string) {
	if isEmptyValue(raw) {
		return nil, ""
	}

	switch t {
	case FieldNumeric:
		if f, ok := toFloat(raw); ok {
			return f, ""
		}
		return nil, coerceWarning(field, raw, "numeric")

	case FieldInteger:
		if f, ok := toFloat(raw); ok {
			return int(f), ""
		}
		return nil, coerceWarning(field, raw, "integer")

	case FieldBoolean:
		switch v := raw.(type) {
		case bool:
			return v, ""
		case string:
			lower := strings.ToLower(strings.TrimSpace(v))
			if booleanTruthy[lower] {
				return true, ""
			}
			if booleanFalsy[lower] {
				return false, ""
			}
			return v != "", ""
		default:
			if f, ok := toFloat(raw); ok {
				return f != 0, ""
			}
			return true, ""
		}

	case FieldDate, FieldDateTime:
		switch v := raw.(type) {
		case time.Time:
			return v, ""
		case string:
			if ts, ok := parseFlexibleTime(v); ok {
				return ts, ""
			}
			return nil, coerceWarning(field, raw, string(t))
		default:
			return nil, coerceWarning(field, raw, string(t))
		}

	case FieldArray:
		switch v := raw.(type) {
		case []any:
			return v, ""
		case string:
			var decoded any
			if err := json.Unmarshal([]byte(v), &decoded); err == nil {
				if arr, ok := decoded.([]any); ok {
					return arr, ""
				}
			}
			parts := strings.Split(v, ",")
			arr := make([]any, 0, len(parts))
			for _, p := range parts {
				arr = append(arr, strings.TrimSpace(p))
			}
			return arr, ""
		default:
			return []any{raw}, ""
		}

	default:
		return stringify(raw), ""
	}
}

func coerceWarning(field string, raw any, target string) string {
	msg := fmt.Sprintf("value %q for field %s is not a valid %s, set to null", stringify(raw), field, target)
	logrus.WithFields(logrus.Fields{"field": field, "value": raw, "type": target}).Warn("import field coercion failed")
	return msg
}

// ParseExtendedBool interprets the wider truthy/falsy vocabulary used by
// struct-parameter boolean columns. Unrecognized non-empty strings fall
// through to a numeric nonzero check, then to generic truthiness.
func ParseExtendedBool(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		lower := strings.ToLower(strings.TrimSpace(v))
		if extendedTruthy[lower] {
			return true
		}
		if extendedFalsy[lower] {
			return false
		}
		if f, err := strconv.ParseFloat(lower, 64); err == nil {
			return f != 0
		}
		return true
	default:
		if f, ok := toFloat(raw); ok {
			return f != 0
		}
		return true
	}
}

// Layouts accepted by the permissive date parser, tried in order.
var flexibleTimeLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"2/1/2006",
	"02-01-2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"2006/01/02",
}

func parseFlexibleTime(s string) (time.Time, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range flexibleTimeLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// Row accessors used by processors for defense-in-depth coercion after the
// engine-level pass.

func rowString(row Row, key string) string {
	v, ok := row[key]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(stringify(v))
}

func rowFloatPtr(row Row, key string) *float64 {
	v, ok := row[key]
	if !ok || isEmptyValue(v) {
		return nil
	}
	if f, okf := toFloat(v); okf {
		return &f
	}
	return nil
}

func rowIntPtr(row Row, key string) *int {
	v, ok := row[key]
	if !ok || isEmptyValue(v) {
		return nil
	}
	if f, okf := toFloat(v); okf {
		i := int(f)
		return &i
	}
	return nil
}

func rowTimePtr(row Row, key string) *time.Time {
	v, ok := row[key]
	if !ok || isEmptyValue(v) {
		return nil
	}
	switch val := v.(type) {
	case time.Time:
		return &val
	case string:
		if ts, okt := parseFlexibleTime(val); okt {
			return &ts
		}
	}
	return nil
}
