// Package apperrors defines the tagged outcomes the services return.
// Handlers never inspect error strings: they match these values with
// errors.Is/errors.As and translate them to HTTP responses in one place.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthorized - токен отсутствует или не найден в хранилище
	ErrUnauthorized = errors.New("Unauthorized")

	// ErrNotFound - ресурс не найден, либо принадлежит другому пользователю
	ErrNotFound = errors.New("Not found")

	// credential mismatches on login
	ErrWrongEmail    = errors.New("Wrong email")
	ErrWrongPassword = errors.New("Wrong password")
)

// FieldError is one violated field on the wire: {"field": ..., "message": ...}.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every violated field of a request, so the
// client gets the whole list in a single response.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// AddRequired appends the standard missing-field message.
func (e *ValidationError) AddRequired(field string) {
	e.Add(field, fmt.Sprintf("field %s is required", field))
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// ConflictError is a uniqueness violation surfaced to the client.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s: %s", e.Field, e.Message)
}

// EmailConflict reports the only uniqueness conflict a client can cause.
func EmailConflict() *ConflictError {
	return &ConflictError{Field: "email", Message: "user with such email is already exist"}
}
