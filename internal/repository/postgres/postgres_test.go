package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whotfvasu/fp/internal/domain"
	apperrors "github.com/whotfvasu/fp/pkg/errors"
	"github.com/whotfvasu/fp/pkg/database"
)

// ─────────────────────────────────────────────────────────────────────────────
// helpers
// ─────────────────────────────────────────────────────────────────────────────

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	return mock
}

func strPtr(s string) *string { return &s }

var now = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

var productColumns = []string{"id", "name", "description", "image_url", "created_at"}
var userColumns = []string{"id", "name", "created_at"}
var ratingColumns = []string{"id", "product_id", "user_id", "rating", "created_at"}
var reviewColumns = []string{"id", "product_id", "user_id", "review_text", "image_url", "created_at"}

func sampleRating() domain.Rating {
	return domain.Rating{
		ID:        "rating-1",
		ProductID: "prod-1",
		UserID:    "user-1",
		Value:     4,
		CreatedAt: now,
	}
}

func ratingRow(r domain.Rating) []any {
	return []any{r.ID, r.ProductID, r.UserID, r.Value, r.CreatedAt}
}

func sampleReview() domain.Review {
	return domain.Review{
		ID:         "review-1",
		ProductID:  "prod-1",
		UserID:     "user-1",
		ReviewText: "Great shoes, great fit",
		ImageURL:   strPtr("https://img.example.com/shoes.jpg"),
		CreatedAt:  now,
	}
}

func reviewRow(rv domain.Review) []any {
	return []any{rv.ID, rv.ProductID, rv.UserID, rv.ReviewText, rv.ImageURL, rv.CreatedAt}
}

// ─────────────────────────────────────────────────────────────────────────────
// RatingRepository
// ─────────────────────────────────────────────────────────────────────────────

func TestRatingRepository_Create_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRatingRepository(mock)

	r := sampleRating()
	mock.ExpectExec("INSERT INTO ratings").
		WithArgs(r.ID, r.ProductID, r.UserID, r.Value, r.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), &r)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepository_Create_UniqueViolation(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRatingRepository(mock)

	r := sampleRating()
	mock.ExpectExec("INSERT INTO ratings").
		WithArgs(r.ID, r.ProductID, r.UserID, r.Value, r.CreatedAt).
		WillReturnError(errors.New("ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)"))

	err := repo.Create(context.Background(), &r)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepository_ListByProduct(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRatingRepository(mock)

	r := sampleRating()
	mock.ExpectQuery("SELECT .+ FROM ratings WHERE product_id").
		WithArgs(r.ProductID).
		WillReturnRows(pgxmock.NewRows(ratingColumns).AddRow(ratingRow(r)...))

	ratings, err := repo.ListByProduct(context.Background(), r.ProductID)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, r, ratings[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepository_ListByProduct_Empty(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRatingRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM ratings WHERE product_id").
		WithArgs("prod-none").
		WillReturnRows(pgxmock.NewRows(ratingColumns))

	ratings, err := repo.ListByProduct(context.Background(), "prod-none")
	require.NoError(t, err)
	assert.NotNil(t, ratings)
	assert.Empty(t, ratings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepository_ListByProductAndUser(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRatingRepository(mock)

	r := sampleRating()
	mock.ExpectQuery("SELECT .+ FROM ratings WHERE product_id = \\$1 AND user_id = \\$2").
		WithArgs(r.ProductID, r.UserID).
		WillReturnRows(pgxmock.NewRows(ratingColumns).AddRow(ratingRow(r)...))

	ratings, err := repo.ListByProductAndUser(context.Background(), r.ProductID, r.UserID)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepository_Average(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRatingRepository(mock)

	avg := 4.0
	mock.ExpectQuery("SELECT AVG\\(rating\\) FROM ratings").
		WithArgs("prod-1").
		WillReturnRows(pgxmock.NewRows([]string{"avg"}).AddRow(&avg))

	result, err := repo.Average(context.Background(), "prod-1")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 4.0, *result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepository_Average_NoRatings(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRatingRepository(mock)

	// AVG over zero rows is NULL; it must come back as nil, not zero.
	mock.ExpectQuery("SELECT AVG\\(rating\\) FROM ratings").
		WithArgs("prod-none").
		WillReturnRows(pgxmock.NewRows([]string{"avg"}).AddRow((*float64)(nil)))

	result, err := repo.Average(context.Background(), "prod-none")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ─────────────────────────────────────────────────────────────────────────────
// ReviewRepository
// ─────────────────────────────────────────────────────────────────────────────

func TestReviewRepository_Create_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	rv := sampleReview()
	mock.ExpectExec("INSERT INTO reviews").
		WithArgs(rv.ID, rv.ProductID, rv.UserID, rv.ReviewText, rv.ImageURL, rv.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), &rv)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Create_UniqueViolation(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	rv := sampleReview()
	mock.ExpectExec("INSERT INTO reviews").
		WithArgs(rv.ID, rv.ProductID, rv.UserID, rv.ReviewText, rv.ImageURL, rv.CreatedAt).
		WillReturnError(errors.New("ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)"))

	err := repo.Create(context.Background(), &rv)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_ListByProduct(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	rv := sampleReview()
	mock.ExpectQuery("SELECT .+ FROM reviews WHERE product_id").
		WithArgs(rv.ProductID).
		WillReturnRows(pgxmock.NewRows(reviewColumns).AddRow(reviewRow(rv)...))

	reviews, err := repo.ListByProduct(context.Background(), rv.ProductID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, rv, reviews[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_TextsByProduct(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	mock.ExpectQuery("SELECT review_text FROM reviews").
		WithArgs("prod-1").
		WillReturnRows(pgxmock.NewRows([]string{"review_text"}).
			AddRow("Great shoes great fit").
			AddRow("Great comfortable shoes"))

	texts, err := repo.TextsByProduct(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Great shoes great fit", "Great comfortable shoes"}, texts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_TextsByProduct_QueryError(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewReviewRepository(mock)

	mock.ExpectQuery("SELECT review_text FROM reviews").
		WithArgs("prod-1").
		WillReturnError(errors.New("connection refused"))

	texts, err := repo.TextsByProduct(context.Background(), "prod-1")
	assert.Error(t, err)
	assert.Nil(t, texts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ─────────────────────────────────────────────────────────────────────────────
// ProductRepository
// ─────────────────────────────────────────────────────────────────────────────

func TestProductRepository_List(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM products").
		WillReturnRows(pgxmock.NewRows(productColumns).
			AddRow("prod-1", "Trail Runner", "A sturdy shoe", "https://img.example.com/shoe.jpg", now))

	products, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Trail Runner", products[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM products WHERE id").
		WithArgs("prod-missing").
		WillReturnRows(pgxmock.NewRows(productColumns))

	product, err := repo.GetByID(context.Background(), "prod-missing")
	assert.Nil(t, product)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ─────────────────────────────────────────────────────────────────────────────
// UserRepository
// ─────────────────────────────────────────────────────────────────────────────

func TestUserRepository_List(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewUserRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM users").
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow("user-1", "Alice", now).
			AddRow("user-2", "Bob", now))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alice", users[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
