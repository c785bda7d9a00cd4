package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/whotfvasu/fp/pkg/health"
	"github.com/whotfvasu/fp/pkg/middleware"
)

// Services bundles the service dependencies the router needs.
type Services struct {
	Products *ProductHandler
	Users    *UserHandler
	Ratings  *RatingHandler
	Reviews  *ReviewHandler
	Feedback *FeedbackHandler
	Media    *MediaHandler
}

// NewRouter creates a chi router with all catalog service routes registered.
func NewRouter(
	svcs Services,
	healthHandler *health.Handler,
	corsCfg middleware.CORSConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("catalog"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", svcs.Products.ListProducts)
			r.Get("/{productId}", svcs.Products.GetProduct)
			r.Get("/{productId}/feedback", svcs.Feedback.ListFeedback)
		})

		r.Get("/users", svcs.Users.ListUsers)

		r.Route("/ratings/{productId}", func(r chi.Router) {
			r.Post("/", svcs.Ratings.CreateRating)
			r.Get("/", svcs.Ratings.ListRatings)
			r.Get("/average", svcs.Ratings.GetAverage)
			r.Get("/user/{userId}", svcs.Ratings.ListUserRatings)
		})

		r.Route("/reviews/{productId}", func(r chi.Router) {
			r.Post("/", svcs.Reviews.CreateReview)
			r.Get("/", svcs.Reviews.ListReviews)
			r.Get("/tags", svcs.Reviews.GetTags)
			r.Get("/user/{userId}", svcs.Reviews.ListUserReviews)
		})

		r.Post("/media", svcs.Media.UploadImage)
	})

	return r
}
