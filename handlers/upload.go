package handlers

import (
	"net/http"
	"strings"

	"github.com/wordingo/backend/apperr"
	"github.com/wordingo/backend/service"
)

type UploadHandler struct {
	S3          *service.S3Service
	MaxUploadMB int64
}

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// Image accepts a multipart image under the "image" field, stores it
// in S3 and returns its public URL. POST /api/upload/image
func (h *UploadHandler) Image(w http.ResponseWriter, r *http.Request) {
	if h.S3 == nil {
		writeJSON(w, http.StatusServiceUnavailable, Envelope{
			Success: false,
			Message: "Image uploads are not configured",
		})
		return
	}

	maxBytes := h.MaxUploadMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		respondError(w, apperr.ValidationMsg("File too large or invalid form data"))
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, apperr.ValidationMsg("Image file is required"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !imageTypes[contentType] {
		respondError(w, apperr.ValidationMsg("Only JPEG, PNG, WebP and GIF images are allowed"))
		return
	}

	folder := r.FormValue("folder")
	if folder == "" || strings.ContainsAny(folder, "./\\") {
		folder = "misc"
	}
	key, err := h.S3.Upload(r.Context(), "images/"+folder+"/", header.Filename, file, contentType)
	if err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusCreated, "Image uploaded successfully", map[string]any{
		"key": key,
		"url": h.S3.PublicURL(key),
	})
}
