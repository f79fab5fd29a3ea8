package mapper

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/currency"
)

// Typed parse helpers. Empty input means the field is unset (nil), never an
// error; non-empty input that fails coercion rejects the whole document.

func parseText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parsePositiveInt(field, s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: not a valid integer: %q", ErrValidation, field, s)
	}
	if v <= 0 {
		return nil, fmt.Errorf("%w: %s: must be positive, got %d", ErrValidation, field, v)
	}
	return &v, nil
}

func parseDecimal(field, s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: not a valid number: %q", ErrValidation, field, s)
	}
	return &v, nil
}

var dateTimeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
}

func parseDateTime(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s: not a valid date: %q", ErrValidation, field, s)
}

// parseCurrency uppercases the code before validating it against the ISO
// 4217 set, so "nok" is accepted and stored as "NOK".
func parseCurrency(field, s string) (*string, error) {
	if s == "" {
		return nil, nil
	}
	code := strings.ToUpper(s)
	if _, err := currency.ParseISO(code); err != nil {
		return nil, fmt.Errorf("%w: %s: unknown currency code %q", ErrValidation, field, s)
	}
	return &code, nil
}
