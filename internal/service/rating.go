package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/whotfvasu/fp/internal/domain"
	"github.com/whotfvasu/fp/internal/repository"
	apperrors "github.com/whotfvasu/fp/pkg/errors"
)

// EventPublisher publishes feedback domain events. Publish failures are logged
// by the services and never fail the write.
type EventPublisher interface {
	PublishRatingCreated(ctx context.Context, rating *domain.Rating) error
	PublishReviewCreated(ctx context.Context, review *domain.Review) error
}

// CreateRatingInput holds the parameters for submitting a rating.
type CreateRatingInput struct {
	ProductID string
	UserID    string
	Value     int
}

// RatingService implements the business logic for rating operations,
// including the one-rating-per-user guard.
type RatingService struct {
	repo     repository.RatingRepository
	products repository.ProductRepository
	producer EventPublisher
	logger   *slog.Logger
}

// NewRatingService creates a new rating service.
func NewRatingService(
	repo repository.RatingRepository,
	products repository.ProductRepository,
	producer EventPublisher,
	logger *slog.Logger,
) *RatingService {
	return &RatingService{
		repo:     repo,
		products: products,
		producer: producer,
		logger:   logger,
	}
}

// CreateRating validates and stores a new rating. The value bounds are
// checked before any store access; the duplicate pre-check produces the
// friendly error message while the table's uniqueness constraint backstops
// concurrent submissions.
func (s *RatingService) CreateRating(ctx context.Context, input *CreateRatingInput) (*domain.Rating, error) {
	if input.UserID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if !domain.ValidValue(input.Value) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating))
	}

	if _, err := s.products.GetByID(ctx, input.ProductID); err != nil {
		return nil, fmt.Errorf("look up product: %w", err)
	}

	existing, err := s.repo.ListByProductAndUser(ctx, input.ProductID, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("check existing rating: %w", err)
	}
	if len(existing) > 0 {
		return nil, apperrors.Duplicate("rating")
	}

	rating := &domain.Rating{
		ID:        uuid.New().String(),
		ProductID: input.ProductID,
		UserID:    input.UserID,
		Value:     input.Value,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, rating); err != nil {
		return nil, fmt.Errorf("create rating: %w", err)
	}

	if err := s.producer.PublishRatingCreated(ctx, rating); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish rating.created event",
			slog.String("rating_id", rating.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "rating created",
		slog.String("rating_id", rating.ID),
		slog.String("product_id", rating.ProductID),
		slog.String("user_id", rating.UserID),
		slog.Int("rating", rating.Value),
	)

	return rating, nil
}

// ListRatings returns all ratings for a product.
func (s *RatingService) ListRatings(ctx context.Context, productID string) ([]domain.Rating, error) {
	ratings, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return ratings, nil
}

// ListUserRatings returns the ratings a user submitted for a product
// (zero or one expected).
func (s *RatingService) ListUserRatings(ctx context.Context, productID, userID string) ([]domain.Rating, error) {
	ratings, err := s.repo.ListByProductAndUser(ctx, productID, userID)
	if err != nil {
		return nil, fmt.Errorf("list user ratings: %w", err)
	}
	return ratings, nil
}

// AverageRating returns the store-computed mean rating for a product, or nil
// when the product has no ratings yet.
func (s *RatingService) AverageRating(ctx context.Context, productID string) (*float64, error) {
	avg, err := s.repo.Average(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("average rating: %w", err)
	}
	return avg, nil
}
