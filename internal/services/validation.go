package services

import (
	"sort"
	"strings"
)

// ValidationErrors maps a form field to its message. It is returned, never
// panicked, and is always recoverable by correcting the input.
type ValidationErrors map[string]string

func (errs ValidationErrors) Error() string {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+errs[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (errs ValidationErrors) requireText(field string, value string, message string) {
	if strings.TrimSpace(value) == "" {
		errs[field] = message
	}
}

func (errs ValidationErrors) orNil() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}
