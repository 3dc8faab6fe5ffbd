package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCoerceEmptyValuesResolveToNil(t *testing.T) {
	for _, ft := range []FieldType{FieldString, FieldNumeric, FieldInteger, FieldBoolean, FieldDate, FieldArray} {
		v, warn := Coerce("f", nil, ft)
		assert.Nil(t, v)
		assert.Empty(t, warn)

		v, warn = Coerce("f", "   ", ft)
		assert.Nil(t, v)
		assert.Empty(t, warn)
	}
}

func TestCoerceNumeric(t *testing.T) {
	v, warn := Coerce("lat", "-33.86", FieldNumeric)
	assert.Empty(t, warn)
	assert.Equal(t, -33.86, v)

	v, warn = Coerce("lat", 42, FieldNumeric)
	assert.Empty(t, warn)
	assert.Equal(t, 42.0, v)

	// Unconvertible input never fails; it nulls with a warning.
	v, warn = Coerce("lat", "north", FieldNumeric)
	assert.Nil(t, v)
	assert.Contains(t, warn, "not a valid numeric")
}

func TestCoerceInteger(t *testing.T) {
	v, warn := Coerce("home_pci", "101", FieldInteger)
	assert.Empty(t, warn)
	assert.Equal(t, 101, v)

	v, warn = Coerce("home_pci", "101.9", FieldInteger)
	assert.Empty(t, warn)
	assert.Equal(t, 101, v)

	v, warn = Coerce("home_pci", "abc", FieldInteger)
	assert.Nil(t, v)
	assert.NotEmpty(t, warn)
}

func TestCoerceBoolean(t *testing.T) {
	cases := []struct {
		in   any
		want bool
	}{
		{"true", true}, {"Yes", true}, {"y", true}, {"1", true},
		{"false", false}, {"No", false}, {"n", false}, {"0", false},
		{true, true}, {false, false},
		{2, true}, {0.0, false},
		{"anything-else", true},
	}
	for _, tc := range cases {
		v, warn := Coerce("flag", tc.in, FieldBoolean)
		assert.Empty(t, warn)
		assert.Equal(t, tc.want, v, "input %v", tc.in)
	}
}

func TestCoerceDate(t *testing.T) {
	for _, in := range []string{"2025-03-14", "14/03/2025", "2025/03/14", "Mar 14, 2025"} {
		v, warn := Coerce("start_date", in, FieldDate)
		assert.Empty(t, warn, "input %s", in)
		ts, ok := v.(time.Time)
		assert.True(t, ok, "input %s", in)
		assert.Equal(t, 2025, ts.Year())
		assert.Equal(t, time.March, ts.Month())
		assert.Equal(t, 14, ts.Day())
	}

	v, warn := Coerce("start_date", "not a date", FieldDate)
	assert.Nil(t, v)
	assert.Contains(t, warn, "not a valid date")
}

func TestCoerceArray(t *testing.T) {
	v, warn := Coerce("tags", `["a","b"]`, FieldArray)
	assert.Empty(t, warn)
	assert.Equal(t, []any{"a", "b"}, v)

	v, warn = Coerce("tags", "a, b ,c", FieldArray)
	assert.Empty(t, warn)
	assert.Equal(t, []any{"a", "b", "c"}, v)

	v, warn = Coerce("tags", 7, FieldArray)
	assert.Empty(t, warn)
	assert.Equal(t, []any{7}, v)
}

func TestCoerceStringDefault(t *testing.T) {
	v, warn := Coerce("remarks", 3.5, FieldString)
	assert.Empty(t, warn)
	assert.Equal(t, "3.5", v)
}

func TestParseExtendedBool(t *testing.T) {
	truthy := []any{"true", "Yes", "Y", "1", "on", true, 2, 0.5, "unrecognized"}
	for _, in := range truthy {
		assert.True(t, ParseExtendedBool(in), "input %v", in)
	}

	falsy := []any{"false", "No", "N", "0", "off", "", nil, false, 0, 0.0}
	for _, in := range falsy {
		assert.False(t, ParseExtendedBool(in), "input %v", in)
	}

	// Numeric strings outside the vocabulary resolve by nonzero check.
	assert.True(t, ParseExtendedBool("2"))
	assert.False(t, ParseExtendedBool("0.0"))
}

func TestFieldRuleCheck(t *testing.T) {
	required := FieldRule{Type: FieldString, Required: true}
	assert.Error(t, required.Check("site_name", "", true))
	assert.Error(t, required.Check("site_name", nil, true))
	assert.NoError(t, required.Check("site_name", "SITE-001", true))

	maxLen := FieldRule{Type: FieldString, MaxLen: 4}
	assert.NoError(t, maxLen.Check("code", "abcd", true))
	assert.Error(t, maxLen.Check("code", "abcde", true))

	numeric := FieldRule{Type: FieldNumeric}
	assert.NoError(t, numeric.Check("lat", "12.5", true))
	assert.Error(t, numeric.Check("lat", "north", true))

	date := FieldRule{Type: FieldDate}
	assert.Error(t, date.Check("start_date", "junk", true))
	// Date validation can be switched off per run.
	assert.NoError(t, date.Check("start_date", "junk", false))

	enum := FieldRule{Type: FieldString, Enum: map[string]bool{"a": true}}
	assert.NoError(t, enum.Check("kind", "a", true))
	assert.Error(t, enum.Check("kind", "b", true))
}
