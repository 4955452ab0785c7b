package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"itemboard/internal/apperrors"
	"itemboard/internal/models"
	"itemboard/internal/repository"
	"itemboard/internal/service"
)

type CreateItemRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type UpdateItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

var itemFieldNames = map[string]string{
	"Title":       "title",
	"Description": "description",
}

func itemIDFromRequest(r *http.Request) (int64, error) {
	itemID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, apperrors.ErrNotFound
	}
	return itemID, nil
}

func (h *Handlers) CreateItem(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteAppError(w, apperrors.ErrUnauthorized)
		return
	}

	var req CreateItemRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	if err := h.Validate.Struct(req); err != nil {
		if writeValidatorError(w, err, itemFieldNames) {
			return
		}
		WriteAppError(w, err)
		return
	}

	item, err := h.ItemService.Create(r.Context(), user, req.Title, req.Description)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, item.Response())
}

// GetItem is public: reads by id have no ownership constraint.
func (h *Handlers) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := itemIDFromRequest(r)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	item, err := h.ItemService.GetByID(r.Context(), itemID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, item.Response())
}

func (h *Handlers) UpdateItem(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteAppError(w, apperrors.ErrUnauthorized)
		return
	}

	itemID, err := itemIDFromRequest(r)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	var req UpdateItemRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	// at least one of the two fields has to be present
	if req.Title == "" && req.Description == "" {
		vErr := &apperrors.ValidationError{}
		vErr.AddRequired("title or description")
		WriteAppError(w, vErr)
		return
	}

	item, err := h.ItemService.Update(r.Context(), itemID, user.ID, repository.UpdateItemParams{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, item.Response())
}

func (h *Handlers) DeleteItem(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteAppError(w, apperrors.ErrUnauthorized)
		return
	}

	itemID, err := itemIDFromRequest(r)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	err = h.ItemService.Delete(r.Context(), itemID, user.ID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, struct{}{})
}

func (h *Handlers) SearchItems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// an unparsable user_id behaves like an absent filter
	userID, _ := strconv.ParseInt(query.Get("user_id"), 10, 64)

	params := repository.SearchItemsParams{
		Title:     query.Get("title"),
		UserID:    userID,
		OrderBy:   query.Get("order_by"),
		OrderDesc: query.Get("order_type") != "asc",
	}

	items, err := h.ItemService.Search(r.Context(), params)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	response := make([]models.ItemResponse, 0, len(items))
	for i := range items {
		response = append(response, items[i].Response())
	}

	WriteJSON(w, http.StatusOK, response)
}

// UploadItemImage is deliberately not behind the auth middleware: the
// file is validated first and reported as 422 even when the token is
// missing or stale, matching the pipeline's validate-then-resolve order.
func (h *Handlers) UploadItemImage(w http.ResponseWriter, r *http.Request) {
	itemID, err := itemIDFromRequest(r)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	var file *service.UploadedFile
	part, header, err := r.FormFile("file")
	if err == nil {
		defer part.Close()

		data, readErr := io.ReadAll(part)
		file = &service.UploadedFile{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
			Unreadable:  readErr != nil,
		}
	}

	item, err := h.UploadService.UploadItemImage(r.Context(), r.Header.Get("Authorization"), itemID, file)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, item.Response())
}

func (h *Handlers) RemoveItemImage(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteAppError(w, apperrors.ErrUnauthorized)
		return
	}

	itemID, err := itemIDFromRequest(r)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	err = h.UploadService.RemoveItemImage(r.Context(), itemID, user.ID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, struct{}{})
}
