package validation

import (
	"fmt"
	"strings"
	"time"
)

type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}

// validateDate records a field error unless value is a YYYY-MM-DD date.
func validateDate(errors map[string]string, field, value string) {
	if strings.TrimSpace(value) == "" {
		errors[field] = field + " is required"
		return
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		errors[field] = "must be a YYYY-MM-DD date"
	}
}

// validateMonth records a field error unless value is a YYYY-MM month.
func validateMonth(errors map[string]string, field, value string) {
	if strings.TrimSpace(value) == "" {
		errors[field] = field + " is required"
		return
	}
	if _, err := time.Parse("2006-01", value); err != nil {
		errors[field] = "must be a YYYY-MM month"
	}
}

// validateHexColor records a field error unless value looks like a #RRGGBB
// color.
func validateHexColor(errors map[string]string, field, value string) {
	if strings.TrimSpace(value) == "" {
		errors[field] = field + " is required"
		return
	}
	if len(value) != 7 || value[0] != '#' {
		errors[field] = "must be a #RRGGBB color"
		return
	}
	for _, c := range value[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			errors[field] = "must be a #RRGGBB color"
			return
		}
	}
}
