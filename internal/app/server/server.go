package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"lms/internal/domain/employee"
	"lms/internal/domain/leave"
	"lms/internal/domain/schedule"
	"lms/internal/platform/config"
	"lms/internal/platform/db"
	"lms/internal/platform/metrics"
	adminhandler "lms/internal/transport/http/handlers/admin"
	authhandler "lms/internal/transport/http/handlers/auth"
	employeehandler "lms/internal/transport/http/handlers/employee"
	"lms/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Router  http.Handler
	Metrics *metrics.Collector
}

// New connects, migrates, seeds and wires the router. The caller owns the
// returned App and must Close it.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
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

	app := &App{Config: cfg, DB: pool, Metrics: collector}
	app.Router = app.buildRouter()
	return app, nil
}

func (a *App) buildRouter() http.Handler {
	employees := employee.NewService(a.DB)
	leaveSvc := leave.NewService(a.DB)
	schedules := schedule.NewService(a.DB)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Measure(a.Metrics))
	router.Use(middleware.SecureHeaders(a.Config.Environment == "production"))
	router.Use(middleware.BodyLimit(a.Config.MaxBodyBytes))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.Config.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	router.Use(middleware.Auth(a.Config.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.DB.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if a.Metrics != nil {
		router.Get("/metricz", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(a.Metrics.Snapshot())
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(employees, a.Config.JWTSecret, a.Config.TokenTTL)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(a.Config.LoginRatePerMinute, time.Minute))
			authHandler.RegisterRoutes(r)
		})

		adminhandler.NewHandler(employees, leaveSvc, schedules).RegisterRoutes(r)
		employeehandler.NewHandler(leaveSvc).RegisterRoutes(r)
	})

	return router
}

// Run blocks serving HTTP until the listener fails.
func (a *App) Run() error {
	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

func (a *App) Close() {
	a.DB.Close()
}
