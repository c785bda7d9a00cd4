package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/whotfvasu/fp/internal/service"
	"github.com/whotfvasu/fp/pkg/httputil"
	"github.com/whotfvasu/fp/pkg/validator"
)

// RatingHandler handles HTTP requests for rating endpoints.
type RatingHandler struct {
	service *service.RatingService
	logger  *slog.Logger
}

// NewRatingHandler creates a new rating HTTP handler.
func NewRatingHandler(svc *service.RatingService, logger *slog.Logger) *RatingHandler {
	return &RatingHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// CreateRatingRequest is the JSON request body for submitting a rating.
type CreateRatingRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
	Rating int    `json:"rating"`
}

// AverageResponse is the JSON response for the average rating endpoint. A
// product with no ratings reports null rather than zero.
type AverageResponse struct {
	AverageRating *float64 `json:"average_rating"`
}

// --- Handlers ---

// CreateRating handles POST /api/ratings/{productId}.
func (h *RatingHandler) CreateRating(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	var req CreateRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorEnvelope{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid JSON body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(&req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	rating, err := h.service.CreateRating(r.Context(), &service.CreateRatingInput{
		ProductID: productID.String(),
		UserID:    req.UserID,
		Value:     req.Rating,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, rating)
}

// ListRatings handles GET /api/ratings/{productId}.
func (h *RatingHandler) ListRatings(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	ratings, err := h.service.ListRatings(r.Context(), productID.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ratings)
}

// GetAverage handles GET /api/ratings/{productId}/average.
func (h *RatingHandler) GetAverage(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	avg, err := h.service.AverageRating(r.Context(), productID.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, AverageResponse{AverageRating: avg})
}

// ListUserRatings handles GET /api/ratings/{productId}/user/{userId}.
func (h *RatingHandler) ListUserRatings(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}
	userID, ok := httputil.ParseUUID(w, chi.URLParam(r, "userId"))
	if !ok {
		return
	}

	ratings, err := h.service.ListUserRatings(r.Context(), productID.String(), userID.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ratings)
}
