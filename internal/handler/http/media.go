package http

import (
	"log/slog"
	"net/http"

	"github.com/whotfvasu/fp/internal/service"
	"github.com/whotfvasu/fp/pkg/httputil"
)

// MediaHandler handles HTTP requests for review image uploads.
type MediaHandler struct {
	service *service.MediaService
	logger  *slog.Logger
}

// NewMediaHandler creates a new media HTTP handler.
func NewMediaHandler(svc *service.MediaService, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{
		service: svc,
		logger:  logger,
	}
}

// UploadResponse is the JSON response for a successful image upload.
type UploadResponse struct {
	URL string `json:"url"`
}

// UploadImage handles POST /api/media (multipart/form-data).
func (h *MediaHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	// Cap the request body at the file limit plus form field overhead.
	maxSize := int64(service.MaxImageSize) + (1 << 20)
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(service.MaxImageSize); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorEnvelope{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "failed to parse multipart form: " + err.Error()},
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorEnvelope{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "file is required: " + err.Error()},
		})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.service.UploadImage(r.Context(), &service.UploadImageInput{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Data:        file,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, UploadResponse{URL: url})
}
