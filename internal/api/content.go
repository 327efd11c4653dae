package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mzagar/vitrina/internal/auth"
	"github.com/mzagar/vitrina/internal/model"
	"github.com/mzagar/vitrina/internal/store"
)

// ContentHandler handles CRUD endpoints for one content kind. Reads are
// public; mutations consult the session gate.
type ContentHandler struct {
	Repo *store.Content
	Gate *auth.Gate
	// Label names the kind in error messages ("Product" or "Service").
	Label string
}

type createContentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type updateContentRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

// requireAdmin runs the session gate for a mutating request. Returns
// false after writing the 401 response if the request is denied.
func (h *ContentHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if _, err := h.Gate.Authorize(r); err != nil {
		jsonError(w, http.StatusUnauthorized, "Unauthorized")
		return false
	}
	return true
}

// List handles GET /api/{kind}.
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		slog.Error("listing content", "kind", h.Label, "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to fetch "+h.Label+"s")
		return
	}
	if items == nil {
		items = []model.Content{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Get handles GET /api/{kind}/{id}.
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Repo.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, h.Label+" not found")
		return
	}
	if err != nil {
		slog.Error("getting content", "kind", h.Label, "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to fetch "+h.Label)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Create handles POST /api/{kind}.
func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req createContentRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.Repo.Create(r.Context(), store.Fields{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.Image,
	})
	var verr *store.ValidationError
	if errors.As(err, &verr) {
		jsonError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if err != nil {
		slog.Error("creating content", "kind", h.Label, "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to create "+h.Label)
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Update handles PUT /api/{kind}/{id}. Only supplied fields change.
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req updateContentRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title == nil && req.Description == nil && req.Image == nil {
		jsonError(w, http.StatusBadRequest, "No valid fields to update")
		return
	}

	item, err := h.Repo.Update(r.Context(), r.PathValue("id"), store.Partial{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.Image,
	})
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		jsonError(w, http.StatusBadRequest, verr.Error())
		return
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, http.StatusNotFound, h.Label+" not found")
		return
	case err != nil:
		slog.Error("updating content", "kind", h.Label, "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to update "+h.Label)
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/{kind}/{id}. The record's image stays in
// object storage; removal there is a separate, explicit call.
func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	deleted, err := h.Repo.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		slog.Error("deleting content", "kind", h.Label, "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to delete "+h.Label)
		return
	}
	if !deleted {
		jsonError(w, http.StatusNotFound, h.Label+" not found")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}
