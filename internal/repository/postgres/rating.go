package postgres

import (
	"context"
	"fmt"

	"github.com/whotfvasu/fp/internal/domain"
	apperrors "github.com/whotfvasu/fp/pkg/errors"
	"github.com/whotfvasu/fp/pkg/database"
)

// RatingRepository implements repository.RatingRepository using PostgreSQL.
type RatingRepository struct {
	pool database.DBTX
}

// NewRatingRepository creates a new PostgreSQL-backed rating repository.
func NewRatingRepository(pool database.DBTX) *RatingRepository {
	return &RatingRepository{pool: pool}
}

// Create inserts a new rating. The ratings table carries a UNIQUE
// (product_id, user_id) constraint; a violation maps to the same duplicate
// error the service-level pre-check produces, closing the check-then-insert
// race against concurrent submissions.
func (r *RatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	query := `
		INSERT INTO ratings (id, product_id, user_id, rating, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		rating.ID,
		rating.ProductID,
		rating.UserID,
		rating.Value,
		rating.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Duplicate("rating")
		}
		return fmt.Errorf("insert rating: %w", err)
	}

	return nil
}

// ListByProduct returns all ratings for a product, newest first.
func (r *RatingRepository) ListByProduct(ctx context.Context, productID string) ([]domain.Rating, error) {
	query := `
		SELECT id, product_id, user_id, rating, created_at
		FROM ratings
		WHERE product_id = $1
		ORDER BY created_at DESC`

	return r.list(ctx, query, productID)
}

// ListByProductAndUser returns the ratings a user submitted for a product.
// The uniqueness constraint means zero or one rows.
func (r *RatingRepository) ListByProductAndUser(ctx context.Context, productID, userID string) ([]domain.Rating, error) {
	query := `
		SELECT id, product_id, user_id, rating, created_at
		FROM ratings
		WHERE product_id = $1 AND user_id = $2`

	return r.list(ctx, query, productID, userID)
}

// Average returns AVG(rating) for a product. The NULL the store produces for
// zero ratings is passed through as nil, untouched.
func (r *RatingRepository) Average(ctx context.Context, productID string) (*float64, error) {
	query := `
		SELECT AVG(rating)
		FROM ratings
		WHERE product_id = $1`

	var avg *float64
	if err := r.pool.QueryRow(ctx, query, productID).Scan(&avg); err != nil {
		return nil, fmt.Errorf("average rating: %w", err)
	}

	return avg, nil
}

func (r *RatingRepository) list(ctx context.Context, query string, args ...any) ([]domain.Rating, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	ratings := []domain.Rating{}
	for rows.Next() {
		var rt domain.Rating
		if err := rows.Scan(&rt.ID, &rt.ProductID, &rt.UserID, &rt.Value, &rt.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		ratings = append(ratings, rt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rating rows: %w", err)
	}

	return ratings, nil
}
