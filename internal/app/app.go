package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/whotfvasu/fp/internal/config"
	"github.com/whotfvasu/fp/internal/event"
	handler "github.com/whotfvasu/fp/internal/handler/http"
	"github.com/whotfvasu/fp/internal/repository/postgres"
	"github.com/whotfvasu/fp/internal/service"
	"github.com/whotfvasu/fp/internal/storage"
	"github.com/whotfvasu/fp/internal/storage/imagehost"
	"github.com/whotfvasu/fp/internal/storage/memory"
	"github.com/whotfvasu/fp/migrations"
	"github.com/whotfvasu/fp/pkg/database"
	"github.com/whotfvasu/fp/pkg/health"
	"github.com/whotfvasu/fp/pkg/httpclient"
	pkgkafka "github.com/whotfvasu/fp/pkg/kafka"
	"github.com/whotfvasu/fp/pkg/middleware"
)

// App wires together all dependencies and runs the catalog service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	pool       *pgxpool.Pool
	producer   *pkgkafka.Producer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize PostgreSQL connection pool.
	pgCfg := database.PostgresConfig{
		Host:            cfg.PostgresHost,
		Port:            cfg.PostgresPort,
		User:            cfg.PostgresUser,
		Password:        cfg.PostgresPass,
		DBName:          cfg.PostgresDB,
		SSLMode:         cfg.PostgresSSL,
		MaxConns:        int32(cfg.PostgresMaxConns),
		MinConns:        int32(cfg.PostgresMinConns),
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
	}

	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)

	// Run database migrations.
	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Build the dependency graph.
	productRepo := postgres.NewProductRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	ratingRepo := postgres.NewRatingRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)

	eventProducer := event.NewProducer(producer, logger)

	store := newImageStore(cfg, logger)

	productService := service.NewProductService(productRepo, logger)
	userService := service.NewUserService(userRepo, logger)
	ratingService := service.NewRatingService(ratingRepo, productRepo, eventProducer, logger)
	reviewService := service.NewReviewService(reviewRepo, productRepo, eventProducer, logger)
	feedbackService := service.NewFeedbackService(ratingRepo, reviewRepo, userRepo, productRepo, logger)
	mediaService := service.NewMediaService(store, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})

	// HTTP router.
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	router := handler.NewRouter(handler.Services{
		Products: handler.NewProductHandler(productService, logger),
		Users:    handler.NewUserHandler(userService, logger),
		Ratings:  handler.NewRatingHandler(ratingService, logger),
		Reviews:  handler.NewReviewHandler(reviewService, logger),
		Feedback: handler.NewFeedbackHandler(feedbackService, logger),
		Media:    handler.NewMediaHandler(mediaService, logger),
	}, healthHandler, corsCfg, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		pool:       pool,
		producer:   producer,
		httpServer: httpServer,
	}, nil
}

// newImageStore selects the image storage backend. Without a configured
// upload URL the service falls back to in-memory storage, which serves local
// development where no image host account exists.
func newImageStore(cfg *config.Config, logger *slog.Logger) storage.Storage {
	if cfg.ImageHostUploadURL == "" {
		logger.Warn("no image host configured, using in-memory storage")
		return memory.New(fmt.Sprintf("http://localhost:%d", cfg.HTTPPort))
	}

	client := httpclient.New(httpclient.DefaultConfig())
	cbClient := httpclient.NewCircuitBreakerClient(
		client,
		httpclient.DefaultCircuitBreakerConfig("image-host"),
		logger,
	)
	return imagehost.New(imagehost.Config{
		UploadURL:    cfg.ImageHostUploadURL,
		UploadPreset: cfg.ImageHostPreset,
	}, cbClient, logger)
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return nil
}
