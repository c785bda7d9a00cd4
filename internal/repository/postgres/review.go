package postgres

import (
	"context"
	"fmt"

	"github.com/whotfvasu/fp/internal/domain"
	apperrors "github.com/whotfvasu/fp/pkg/errors"
	"github.com/whotfvasu/fp/pkg/database"
)

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create inserts a new review. The reviews table carries a UNIQUE
// (product_id, user_id) constraint; a violation maps to the same duplicate
// error the service-level pre-check produces.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, product_id, user_id, review_text, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		review.ID,
		review.ProductID,
		review.UserID,
		review.ReviewText,
		review.ImageURL,
		review.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Duplicate("review")
		}
		return fmt.Errorf("insert review: %w", err)
	}

	return nil
}

// ListByProduct returns all reviews for a product, newest first.
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	query := `
		SELECT id, product_id, user_id, review_text, image_url, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC`

	return r.list(ctx, query, productID)
}

// ListByProductAndUser returns the reviews a user submitted for a product.
// The uniqueness constraint means zero or one rows.
func (r *ReviewRepository) ListByProductAndUser(ctx context.Context, productID, userID string) ([]domain.Review, error) {
	query := `
		SELECT id, product_id, user_id, review_text, image_url, created_at
		FROM reviews
		WHERE product_id = $1 AND user_id = $2`

	return r.list(ctx, query, productID, userID)
}

// TextsByProduct returns just the review bodies for a product.
func (r *ReviewRepository) TextsByProduct(ctx context.Context, productID string) ([]string, error) {
	query := `
		SELECT review_text
		FROM reviews
		WHERE product_id = $1`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list review texts: %w", err)
	}
	defer rows.Close()

	texts := []string{}
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scan review text: %w", err)
		}
		texts = append(texts, text)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review texts: %w", err)
	}

	return texts, nil
}

func (r *ReviewRepository) list(ctx context.Context, query string, args ...any) ([]domain.Review, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.ReviewText, &rv.ImageURL, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}
