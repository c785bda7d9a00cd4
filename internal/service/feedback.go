package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/whotfvasu/fp/internal/domain"
	"github.com/whotfvasu/fp/internal/repository"
)

// FeedbackService merges a product's ratings and reviews into a single
// time-ordered feed.
type FeedbackService struct {
	ratings  repository.RatingRepository
	reviews  repository.ReviewRepository
	users    repository.UserRepository
	products repository.ProductRepository
	logger   *slog.Logger
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(
	ratings repository.RatingRepository,
	reviews repository.ReviewRepository,
	users repository.UserRepository,
	products repository.ProductRepository,
	logger *slog.Logger,
) *FeedbackService {
	return &FeedbackService{
		ratings:  ratings,
		reviews:  reviews,
		users:    users,
		products: products,
		logger:   logger,
	}
}

// ListFeedback returns the combined feedback feed for a product. Each user
// appears once: their review entry absorbs their rating when both exist.
func (s *FeedbackService) ListFeedback(ctx context.Context, productID string) ([]domain.FeedbackEntry, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("look up product: %w", err)
	}

	ratings, err := s.ratings.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	reviews, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	entries := domain.MergeFeedback(ratings, reviews)

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	domain.LabelUsers(entries, users)

	return entries, nil
}
