package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/whotfvasu/fp/internal/domain"
	pkgkafka "github.com/whotfvasu/fp/pkg/kafka"
	"github.com/whotfvasu/fp/pkg/logger"
)

// Kafka topics for feedback domain events.
const (
	TopicRatingCreated = "catalog.rating.created"
	TopicReviewCreated = "catalog.review.created"
)

// Aggregate type constants.
const (
	AggregateTypeRating = "rating"
	AggregateTypeReview = "review"
)

// Source identifier for events originating from this service.
const SourceCatalogService = "catalog-service"

// RatingCreatedData is the payload for a rating.created event.
type RatingCreatedData struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	UserID    string `json:"user_id"`
	Rating    int    `json:"rating"`
}

// ReviewCreatedData is the payload for a review.created event.
type ReviewCreatedData struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	UserID    string  `json:"user_id"`
	ImageURL  *string `json:"image_url,omitempty"`
}

// Producer publishes feedback domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishRatingCreated publishes a rating.created event.
func (p *Producer) PublishRatingCreated(ctx context.Context, rating *domain.Rating) error {
	data := RatingCreatedData{
		ID:        rating.ID,
		ProductID: rating.ProductID,
		UserID:    rating.UserID,
		Rating:    rating.Value,
	}

	evt, err := pkgkafka.NewEvent("rating.created", rating.ID, AggregateTypeRating, SourceCatalogService, data)
	if err != nil {
		return fmt.Errorf("build rating.created event: %w", err)
	}
	evt.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	return p.kafka.Publish(ctx, TopicRatingCreated, evt)
}

// PublishReviewCreated publishes a review.created event. The review body is
// not carried on the event; consumers fetch it if they need it.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	data := ReviewCreatedData{
		ID:        review.ID,
		ProductID: review.ProductID,
		UserID:    review.UserID,
		ImageURL:  review.ImageURL,
	}

	evt, err := pkgkafka.NewEvent("review.created", review.ID, AggregateTypeReview, SourceCatalogService, data)
	if err != nil {
		return fmt.Errorf("build review.created event: %w", err)
	}
	evt.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	return p.kafka.Publish(ctx, TopicReviewCreated, evt)
}
