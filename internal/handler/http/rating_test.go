package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/whotfvasu/fp/internal/domain"
	"github.com/whotfvasu/fp/internal/repository"
	"github.com/whotfvasu/fp/internal/service"
	apperrors "github.com/whotfvasu/fp/pkg/errors"
	"github.com/whotfvasu/fp/pkg/httputil"
)

// Ensure interfaces are satisfied at compile time.
var _ repository.RatingRepository = (*mockRatingRepository)(nil)
var _ repository.ProductRepository = (*mockProductRepository)(nil)
var _ service.EventPublisher = (*mockPublisher)(nil)

const (
	testProductID = "550e8400-e29b-41d4-a716-446655440001"
	testUserID    = "550e8400-e29b-41d4-a716-446655440002"
)

// --- Mock Rating Repository ---

type mockRatingRepository struct {
	mock.Mock
}

func (m *mockRatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *mockRatingRepository) ListByProduct(ctx context.Context, productID string) ([]domain.Rating, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]domain.Rating), args.Error(1)
}

func (m *mockRatingRepository) ListByProductAndUser(ctx context.Context, productID, userID string) ([]domain.Rating, error) {
	args := m.Called(ctx, productID, userID)
	return args.Get(0).([]domain.Rating), args.Error(1)
}

func (m *mockRatingRepository) Average(ctx context.Context, productID string) (*float64, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*float64), args.Error(1)
}

// --- Mock Product Repository ---

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

// --- Mock Event Publisher ---

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishRatingCreated(ctx context.Context, rating *domain.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *mockPublisher) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

// --- Test Helpers ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func sampleProduct() *domain.Product {
	return &domain.Product{ID: testProductID, Name: "Running Shoes"}
}

func setupRatingRouter(h *RatingHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/api/ratings/{productId}", func(r chi.Router) {
		r.Post("/", h.CreateRating)
		r.Get("/", h.ListRatings)
		r.Get("/average", h.GetAverage)
		r.Get("/user/{userId}", h.ListUserRatings)
	})
	return r
}

func newTestRatingHandler(repo *mockRatingRepository, products *mockProductRepository, producer *mockPublisher) *RatingHandler {
	svc := service.NewRatingService(repo, products, producer, testLogger())
	return NewRatingHandler(svc, testLogger())
}

func decodeErrorEnvelope(t *testing.T, rec *httptest.ResponseRecorder) httputil.ErrorEnvelope {
	t.Helper()
	var env httputil.ErrorEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	require.NotNil(t, env.Error)
	return env
}

// --- Tests ---

func TestCreateRatingHandler_Success(t *testing.T) {
	repo := new(mockRatingRepository)
	products := new(mockProductRepository)
	producer := new(mockPublisher)
	router := setupRatingRouter(newTestRatingHandler(repo, products, producer))

	products.On("GetByID", mock.Anything, testProductID).Return(sampleProduct(), nil)
	repo.On("ListByProductAndUser", mock.Anything, testProductID, testUserID).Return([]domain.Rating{}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Rating")).Return(nil)
	producer.On("PublishRatingCreated", mock.Anything, mock.AnythingOfType("*domain.Rating")).Return(nil)

	body := fmt.Sprintf(`{"userId":%q,"rating":4}`, testUserID)
	req := httptest.NewRequest(http.MethodPost, "/api/ratings/"+testProductID, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Rating
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, testProductID, created.ProductID)
	assert.Equal(t, 4, created.Value)

	repo.AssertExpectations(t)
}

func TestCreateRatingHandler_OutOfRange(t *testing.T) {
	repo := new(mockRatingRepository)
	products := new(mockProductRepository)
	producer := new(mockPublisher)
	router := setupRatingRouter(newTestRatingHandler(repo, products, producer))

	body := fmt.Sprintf(`{"userId":%q,"rating":9}`, testUserID)
	req := httptest.NewRequest(http.MethodPost, "/api/ratings/"+testProductID, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeErrorEnvelope(t, rec)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateRatingHandler_Duplicate(t *testing.T) {
	repo := new(mockRatingRepository)
	products := new(mockProductRepository)
	producer := new(mockPublisher)
	router := setupRatingRouter(newTestRatingHandler(repo, products, producer))

	products.On("GetByID", mock.Anything, testProductID).Return(sampleProduct(), nil)
	repo.On("ListByProductAndUser", mock.Anything, testProductID, testUserID).Return([]domain.Rating{
		{ID: "rat-1", ProductID: testProductID, UserID: testUserID, Value: 5},
	}, nil)

	body := fmt.Sprintf(`{"userId":%q,"rating":3}`, testUserID)
	req := httptest.NewRequest(http.MethodPost, "/api/ratings/"+testProductID, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	// Duplicates surface as 400, not 409.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeErrorEnvelope(t, rec)
	assert.Equal(t, "DUPLICATE", env.Error.Code)
	assert.Contains(t, env.Error.Message, "already submitted a rating")
}

func TestCreateRatingHandler_ProductNotFound(t *testing.T) {
	repo := new(mockRatingRepository)
	products := new(mockProductRepository)
	producer := new(mockPublisher)
	router := setupRatingRouter(newTestRatingHandler(repo, products, producer))

	products.On("GetByID", mock.Anything, testProductID).
		Return(nil, apperrors.NotFound("product", testProductID))

	body := fmt.Sprintf(`{"userId":%q,"rating":3}`, testUserID)
	req := httptest.NewRequest(http.MethodPost, "/api/ratings/"+testProductID, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeErrorEnvelope(t, rec)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestCreateRatingHandler_InvalidProductID(t *testing.T) {
	repo := new(mockRatingRepository)
	products := new(mockProductRepository)
	producer := new(mockPublisher)
	router := setupRatingRouter(newTestRatingHandler(repo, products, producer))

	body := fmt.Sprintf(`{"userId":%q,"rating":3}`, testUserID)
	req := httptest.NewRequest(http.MethodPost, "/api/ratings/not-a-uuid", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRatingHandler_MalformedJSON(t *testing.T) {
	repo := new(mockRatingRepository)
	products := new(mockProductRepository)
	producer := new(mockPublisher)
	router := setupRatingRouter(newTestRatingHandler(repo, products, producer))

	req := httptest.NewRequest(http.MethodPost, "/api/ratings/"+testProductID, bytes.NewBufferString(`{"userId":`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRatingHandler_StoreError(t *testing.T) {
	repo := new(mockRatingRepository)
	products := new(mockProductRepository)
	producer := new(mockPublisher)
	router := setupRatingRouter(newTestRatingHandler(repo, products, producer))

	products.On("GetByID", mock.Anything, testProductID).Return(sampleProduct(), nil)
	repo.On("ListByProductAndUser", mock.Anything, testProductID, testUserID).Return([]domain.Rating{}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Rating")).
		Return(fmt.Errorf("connection reset"))

	body := fmt.Sprintf(`{"userId":%q,"rating":3}`, testUserID)
	req := httptest.NewRequest(http.MethodPost, "/api/ratings/"+testProductID, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	// Store failures surface as a generic 500 without the cause.
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeErrorEnvelope(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
	assert.NotContains(t, env.Error.Message, "connection reset")
}

func TestListRatingsHandler_Success(t *testing.T) {
	repo := new(mockRatingRepository)
	products := new(mockProductRepository)
	producer := new(mockPublisher)
	router := setupRatingRouter(newTestRatingHandler(repo, products, producer))

	repo.On("ListByProduct", mock.Anything, testProductID).Return([]domain.Rating{
		{ID: "rat-1", ProductID: testProductID, UserID: testUserID, Value: 5},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/ratings/"+testProductID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var ratings []domain.Rating
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ratings))
	require.Len(t, ratings, 1)
	assert.Equal(t, 5, ratings[0].Value)
}

func TestGetAverageHandler_Success(t *testing.T) {
	repo := new(mockRatingRepository)
	products := new(mockProductRepository)
	producer := new(mockPublisher)
	router := setupRatingRouter(newTestRatingHandler(repo, products, producer))

	avg := 4.25
	repo.On("Average", mock.Anything, testProductID).Return(&avg, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/ratings/"+testProductID+"/average", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp AverageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.AverageRating)
	assert.Equal(t, 4.25, *resp.AverageRating)
}

func TestGetAverageHandler_NoRatings(t *testing.T) {
	repo := new(mockRatingRepository)
	products := new(mockProductRepository)
	producer := new(mockPublisher)
	router := setupRatingRouter(newTestRatingHandler(repo, products, producer))

	repo.On("Average", mock.Anything, testProductID).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/ratings/"+testProductID+"/average", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	// The wire format carries an explicit null, not zero.
	assert.JSONEq(t, `{"average_rating":null}`, rec.Body.String())
}

func TestListUserRatingsHandler_Success(t *testing.T) {
	repo := new(mockRatingRepository)
	products := new(mockProductRepository)
	producer := new(mockPublisher)
	router := setupRatingRouter(newTestRatingHandler(repo, products, producer))

	repo.On("ListByProductAndUser", mock.Anything, testProductID, testUserID).Return([]domain.Rating{
		{ID: "rat-1", ProductID: testProductID, UserID: testUserID, Value: 2},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/ratings/"+testProductID+"/user/"+testUserID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var ratings []domain.Rating
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ratings))
	require.Len(t, ratings, 1)
	assert.Equal(t, testUserID, ratings[0].UserID)
}
