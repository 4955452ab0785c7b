package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"itemboard/internal/apperrors"
	"itemboard/internal/models"
	"itemboard/internal/service"
)

type UpdateUserRequest struct {
	Email           string `json:"email"`
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteAppError(w, apperrors.ErrUnauthorized)
		return
	}

	WriteJSON(w, http.StatusOK, user.Public())
}

func (h *Handlers) UpdateCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteAppError(w, apperrors.ErrUnauthorized)
		return
	}

	var req UpdateUserRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	updated, err := h.UserService.UpdateSelf(r.Context(), user.ID, service.UpdateSelfParams{
		Email:           req.Email,
		Name:            req.Name,
		Phone:           req.Phone,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, updated.Public())
}

// GetUser returns another account's public profile. Any valid token will
// do, the caller does not have to be the target.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteAppError(w, apperrors.ErrNotFound)
		return
	}

	user, err := h.UserService.GetByID(r.Context(), userID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, user.Public())
}

// SearchUsers is public; the email filter wins over name when both are
// given and a miss is an empty list, not an error.
func (h *Handlers) SearchUsers(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	name := r.URL.Query().Get("name")

	users, err := h.UserService.Search(r.Context(), email, name)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	response := make([]models.PublicUser, 0, len(users))
	for i := range users {
		response = append(response, users[i].Public())
	}

	WriteJSON(w, http.StatusOK, response)
}
