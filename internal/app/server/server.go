package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"reviewhub/internal/domain/audit"
	"reviewhub/internal/domain/auth"
	"reviewhub/internal/domain/directory"
	"reviewhub/internal/domain/notifications"
	"reviewhub/internal/domain/questionnaire"
	"reviewhub/internal/domain/review"
	"reviewhub/internal/platform/config"
	"reviewhub/internal/platform/db"
	"reviewhub/internal/platform/email"
	"reviewhub/internal/platform/metrics"
	"reviewhub/internal/transport/http/api"
	audithandler "reviewhub/internal/transport/http/handlers/audit"
	authhandler "reviewhub/internal/transport/http/handlers/auth"
	notificationshandler "reviewhub/internal/transport/http/handlers/notifications"
	questionnairehandler "reviewhub/internal/transport/http/handlers/questionnaire"
	reportshandler "reviewhub/internal/transport/http/handlers/reports"
	reviewhandler "reviewhub/internal/transport/http/handlers/review"
	"reviewhub/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	Pool   *pgxpool.Pool
	Router http.Handler
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		migrationsDir := cfg.MigrationsDir
		if migrationsDir == "" {
			migrationsDir = "migrations"
		}
		if err := db.Migrate(ctx, pool, migrationsDir); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	authService := auth.NewService(auth.NewStore(pool))
	questionnaireService := questionnaire.NewService(questionnaire.NewStore(pool))
	directoryService := directory.New(pool)
	reviewService := review.NewService(review.NewStore(pool), questionnaireService, directoryService)

	notifyService := notifications.New(notifications.NewStore(pool), email.New(cfg))
	notifyService.EmailEnabled = cfg.EmailEnabled
	notifyService.From = cfg.EmailFrom
	auditService := audit.New(pool)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if collector != nil {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(authService, cfg.JWTSecret)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.With(middleware.RequireUser).Get("/auth/me", authHandler.HandleMe)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)

			reviewhandler.NewHandler(reviewService, directoryService, notifyService, auditService).RegisterRoutes(r)
			questionnairehandler.NewHandler(questionnaireService, auditService).RegisterRoutes(r)
			reportshandler.NewHandler(reviewService).RegisterRoutes(r)
			notificationshandler.NewHandler(notifyService).RegisterRoutes(r)
			audithandler.NewHandler(auditService).RegisterRoutes(r)
		})
	})

	return &App{Config: cfg, Pool: pool, Router: router}, nil
}

func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}

func Run() {
	cfg := config.Load()
	app, err := New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("review server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
