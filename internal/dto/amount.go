package dto

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Amount is a money field that decodes from a JSON number or a numeric
// string. A non-numeric value is recorded instead of failing the whole
// decode, so it can be reported alongside the other field errors in a single
// validation response.
type Amount struct {
	value float64
	set   bool
	valid bool
}

// AmountOf builds a valid Amount, mainly for tests and programmatic callers.
func AmountOf(value float64) Amount {
	return Amount{value: value, set: true, valid: true}
}

// Value returns the parsed amount. Zero when unset or not numeric.
func (a Amount) Value() float64 {
	return a.value
}

// Problems reports the field-level issues for a required positive amount,
// using the same message style as the tag-driven validation details.
func (a Amount) Problems(field string) []string {
	switch {
	case !a.set:
		return []string{field + " is required"}
	case !a.valid:
		return []string{field + " must be a number"}
	case a.value <= 0:
		return []string{field + " must be greater than 0"}
	}
	return nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if text == "" || text == "null" {
		*a = Amount{}
		return nil
	}

	a.set = true
	if unquoted, err := strconv.Unquote(text); err == nil {
		text = strings.TrimSpace(unquoted)
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		a.value = 0
		a.valid = false
		return nil
	}
	a.value = value
	a.valid = true
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.set || !a.valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.value)
}
