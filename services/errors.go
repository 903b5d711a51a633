package services

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError carries field-level, caller-fixable problems. Fields
// maps field name to a human-readable message and is surfaced verbatim.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// ConflictError means the requested room is unavailable for the requested
// range. Kept distinct from validation so clients can offer other dates.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

type PermissionError struct {
	Permission string
}

func (e *PermissionError) Error() string {
	return "missing permission: " + e.Permission
}
