// Package validation collects field-level violations for form handling.
package validation

import (
	"strings"
	"time"
)

// Violations maps a field name to a violation code. Codes are translated
// by the view layer.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Required flags empty or whitespace-only values.
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// PositiveFloat flags values that are not strictly positive.
func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

// NonNegativeFloat flags negative values.
func NonNegativeFloat(field string, val float64, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}

// RangeFloat flags values outside [minVal, maxVal].
func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}

// Date parses an HTML date input value (2006-01-02), recording a violation
// when value is present but malformed. Empty values yield a nil time with
// no violation; use Required first for mandatory dates.
func Date(field, value string, v Violations) *time.Time {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		v[field] = "invalid_date"
		return nil
	}
	return &t
}
