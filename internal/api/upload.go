package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/mzagar/vitrina/internal/auth"
	"github.com/mzagar/vitrina/internal/imaging"
	"github.com/mzagar/vitrina/internal/storage"
)

// MaxUploadSize is the upload size ceiling.
const MaxUploadSize = 5 << 20 // 5 MB

// uploadPrefix is the folder uploads land in within the object store.
const uploadPrefix = "products-services/"

// UploadHandler accepts image uploads and forwards them to the object
// store. Uploading and record creation are separate calls: an image
// whose record create later fails stays in the store.
type UploadHandler struct {
	Gate  *auth.Gate
	Store storage.ObjectStore
}

type uploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

// Upload handles POST /api/upload.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Gate.Authorize(r); err != nil {
		jsonError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if h.Store == nil {
		jsonError(w, http.StatusInternalServerError, "File upload service is not properly configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		jsonError(w, http.StatusBadRequest, "File too large. Maximum size is 5MB.")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	result, err := imaging.Process(file)
	var ferr *imaging.ErrUnsupportedFormat
	if errors.As(err, &ferr) {
		jsonError(w, http.StatusBadRequest, "Invalid file type. Please upload an image (JPEG, PNG, WEBP, or GIF).")
		return
	}
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonError(w, http.StatusBadRequest, "File too large. Maximum size is 5MB.")
			return
		}
		slog.Error("processing upload", "error", err)
		jsonError(w, http.StatusBadRequest, "Invalid image file")
		return
	}

	name := uploadPrefix + uuid.New().String() + result.Ext

	url, err := h.Store.Put(r.Context(), name, result.MIME, result.Data)
	if err != nil {
		slog.Error("uploading object", "name", name, "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	slog.Info("image uploaded", "name", name, "size", len(result.Data))
	jsonResponse(w, http.StatusOK, uploadResponse{Success: true, URL: url})
}
