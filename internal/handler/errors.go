package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"itemboard/internal/apperrors"
)

// WriteJSON - универсальная функция для отправки JSON ответов
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteAppError is the single place mapping the tagged outcomes to
// transport status codes and bodies. 4xx bodies enumerate the violated
// fields, 5xx bodies stay empty.
func WriteAppError(w http.ResponseWriter, err error) {
	var vErr *apperrors.ValidationError
	var cErr *apperrors.ConflictError

	switch {
	case errors.As(err, &vErr):
		WriteJSON(w, http.StatusUnprocessableEntity, vErr.Fields)
	case errors.As(err, &cErr):
		WriteJSON(w, http.StatusUnprocessableEntity, []apperrors.FieldError{
			{Field: cErr.Field, Message: cErr.Message},
		})
	case errors.Is(err, apperrors.ErrWrongEmail):
		WriteJSON(w, http.StatusUnprocessableEntity, []apperrors.FieldError{
			{Field: "email", Message: "Wrong email"},
		})
	case errors.Is(err, apperrors.ErrWrongPassword):
		WriteJSON(w, http.StatusUnprocessableEntity, []apperrors.FieldError{
			{Field: "password", Message: "Wrong password"},
		})
	case errors.Is(err, apperrors.ErrUnauthorized):
		WriteJSON(w, http.StatusUnauthorized, struct{}{})
	case errors.Is(err, apperrors.ErrNotFound):
		WriteJSON(w, http.StatusNotFound, struct{}{})
	default:
		log.Printf("внутренняя ошибка: %v", err)
		WriteJSON(w, http.StatusInternalServerError, struct{}{})
	}
}

// writeValidatorError translates validator field errors into the wire
// list of {field, message} entries, one per violated field.
func writeValidatorError(w http.ResponseWriter, err error, fieldNames map[string]string) bool {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return false
	}

	vErr := &apperrors.ValidationError{}
	for _, fe := range fieldErrs {
		name, ok := fieldNames[fe.Field()]
		if !ok {
			name = fe.Field()
		}
		vErr.AddRequired(name)
	}

	WriteAppError(w, vErr)
	return true
}
