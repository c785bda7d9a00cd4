package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/whotfvasu/fp/internal/domain"
	"github.com/whotfvasu/fp/internal/repository"
	apperrors "github.com/whotfvasu/fp/pkg/errors"
)

// CreateReviewInput holds the parameters for submitting a review.
type CreateReviewInput struct {
	ProductID  string
	UserID     string
	ReviewText string
	ImageURL   *string
}

// ReviewService implements the business logic for review operations and
// tag extraction over a product's review corpus.
type ReviewService struct {
	repo     repository.ReviewRepository
	products repository.ProductRepository
	producer EventPublisher
	logger   *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(
	repo repository.ReviewRepository,
	products repository.ProductRepository,
	producer EventPublisher,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		repo:     repo,
		products: products,
		producer: producer,
		logger:   logger,
	}
}

// CreateReview validates and stores a new review. A user may review a product
// at most once; the pre-check gives the friendly error and the table's
// uniqueness constraint covers concurrent submissions.
func (s *ReviewService) CreateReview(ctx context.Context, input *CreateReviewInput) (*domain.Review, error) {
	if input.UserID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}
	if strings.TrimSpace(input.ReviewText) == "" {
		return nil, apperrors.InvalidInput("review text is required")
	}

	if _, err := s.products.GetByID(ctx, input.ProductID); err != nil {
		return nil, fmt.Errorf("look up product: %w", err)
	}

	existing, err := s.repo.ListByProductAndUser(ctx, input.ProductID, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if len(existing) > 0 {
		return nil, apperrors.Duplicate("review")
	}

	review := &domain.Review{
		ID:         uuid.New().String(),
		ProductID:  input.ProductID,
		UserID:     input.UserID,
		ReviewText: input.ReviewText,
		ImageURL:   input.ImageURL,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	if err := s.producer.PublishReviewCreated(ctx, review); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.created event",
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "review created",
		slog.String("review_id", review.ID),
		slog.String("product_id", review.ProductID),
		slog.String("user_id", review.UserID),
	)

	return review, nil
}

// ListReviews returns all reviews for a product, newest first.
func (s *ReviewService) ListReviews(ctx context.Context, productID string) ([]domain.Review, error) {
	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// ListUserReviews returns the reviews a user submitted for a product
// (zero or one expected).
func (s *ReviewService) ListUserReviews(ctx context.Context, productID, userID string) ([]domain.Review, error) {
	reviews, err := s.repo.ListByProductAndUser(ctx, productID, userID)
	if err != nil {
		return nil, fmt.Errorf("list user reviews: %w", err)
	}
	return reviews, nil
}

// ProductTags recomputes the most frequent descriptive words across a
// product's reviews. Tags are derived on every call so they always reflect
// the current review set.
func (s *ReviewService) ProductTags(ctx context.Context, productID string) ([]string, error) {
	texts, err := s.repo.TextsByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load review texts: %w", err)
	}
	return domain.ExtractTags(texts), nil
}
