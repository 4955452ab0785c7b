package handlers

import (
	"encoding/json"
	"net/http"

	"itemboard/internal/service"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

var registerFieldNames = map[string]string{
	"Name":     "name",
	"Email":    "email",
	"Password": "password",
}

var loginFieldNames = map[string]string{
	"Email":    "email",
	"Password": "password",
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	// a malformed body simply leaves the fields empty and fails validation
	_ = json.NewDecoder(r.Body).Decode(&req)

	if err := h.Validate.Struct(req); err != nil {
		if writeValidatorError(w, err, registerFieldNames) {
			return
		}
		WriteAppError(w, err)
		return
	}

	user, err := h.AuthService.Register(r.Context(), service.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, TokenResponse{Token: user.Token})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if err := h.Validate.Struct(req); err != nil {
		if writeValidatorError(w, err, loginFieldNames) {
			return
		}
		WriteAppError(w, err)
		return
	}

	user, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, TokenResponse{Token: user.Token})
}
