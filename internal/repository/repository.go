package repository

import (
	"context"

	"github.com/whotfvasu/fp/internal/domain"
)

// ProductRepository defines read access to the catalog. Products are created
// and destroyed by an external catalog-management process, so no write
// operations exist here.
type ProductRepository interface {
	// List returns all products.
	List(ctx context.Context) ([]domain.Product, error)

	// GetByID retrieves a product by its identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// UserRepository defines read access to the user directory.
type UserRepository interface {
	// List returns all directory users.
	List(ctx context.Context) ([]domain.User, error)
}

// RatingRepository defines rating persistence operations.
type RatingRepository interface {
	// Create inserts a new rating. A storage-level uniqueness constraint on
	// (product_id, user_id) rejects concurrent duplicates.
	Create(ctx context.Context, rating *domain.Rating) error

	// ListByProduct returns all ratings for a product.
	ListByProduct(ctx context.Context, productID string) ([]domain.Rating, error)

	// ListByProductAndUser returns the ratings a user submitted for a
	// product (zero or one rows expected).
	ListByProductAndUser(ctx context.Context, productID, userID string) ([]domain.Rating, error)

	// Average returns the mean rating for a product, or nil when the
	// product has no ratings.
	Average(ctx context.Context, productID string) (*float64, error)
}

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	// Create inserts a new review. A storage-level uniqueness constraint on
	// (product_id, user_id) rejects concurrent duplicates.
	Create(ctx context.Context, review *domain.Review) error

	// ListByProduct returns all reviews for a product.
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)

	// ListByProductAndUser returns the reviews a user submitted for a
	// product (zero or one rows expected).
	ListByProductAndUser(ctx context.Context, productID, userID string) ([]domain.Review, error)

	// TextsByProduct returns just the review bodies for a product, used by
	// tag extraction.
	TextsByProduct(ctx context.Context, productID string) ([]string, error)
}
