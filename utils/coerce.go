package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// The admin UI submits several fields as either JSON numbers or strings
// (part numbers pasted from spreadsheets, serials typed into text inputs).
// These helpers coerce the loose values into the column types.

// CoerceToString turns a string-or-number JSON value into a trimmed string.
// Empty/absent values come back as nil.
func CoerceToString(v any) (*string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil, nil
		}
		return &s, nil
	case float64:
		s := strconv.FormatFloat(t, 'f', -1, 64)
		return &s, nil
	case int:
		s := strconv.Itoa(t)
		return &s, nil
	default:
		return nil, fmt.Errorf("expected string or number, got %T", v)
	}
}

// CoerceToInt turns a string-or-number JSON value into an int. Fractional
// numbers are truncated; empty/absent values come back as nil.
func CoerceToInt(v any) (*int, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case float64:
		n := int(t)
		return &n, nil
	case int:
		n := t
		return &n, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", s)
		}
		return &n, nil
	default:
		return nil, fmt.Errorf("expected integer, got %T", v)
	}
}

// CoerceToFloat turns a string-or-number JSON value into a float64.
func CoerceToFloat(v any) (*float64, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case float64:
		f := t
		return &f, nil
	case int:
		f := float64(t)
		return &f, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", s)
		}
		return &f, nil
	default:
		return nil, fmt.Errorf("expected number, got %T", v)
	}
}
