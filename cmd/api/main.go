package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/passforge/passforge-go/internal/config"
	"github.com/passforge/passforge-go/internal/engine"
	"github.com/passforge/passforge-go/internal/handler"
	"github.com/passforge/passforge-go/internal/middleware"
	"github.com/passforge/passforge-go/internal/repository"
	"github.com/passforge/passforge-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gen := engine.NewGenerator(cfg.Source())
	if cfg.RandomSource == "math" {
		slog.Warn("using non-cryptographic random source", "source", cfg.RandomSource)
	}

	var events service.EventRecorder
	var eventRepo *repository.EventRepository

	// Stats and event recording are enabled only when the database is reachable.
	db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		slog.Warn("database connection failed, stats disabled", "error", err)
	} else {
		defer db.Close()
		eventRepo = repository.NewEventRepository(db)
		if err := eventRepo.Migrate(ctx); err != nil {
			slog.Error("database migration failed", "error", err)
			os.Exit(1)
		}
		events = eventRepo
	}

	genHandler := handler.NewGeneratorHandler(service.NewGeneratorService(gen, events, cfg.DefaultLength))
	strengthHandler := handler.NewStrengthHandler(service.NewStrengthService())

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst))
		r.Post("/api/v1/generate", genHandler.HandleGenerate)
		r.Post("/api/v1/strength", strengthHandler.HandleStrength)
	})

	if eventRepo != nil {
		statsHandler := handler.NewStatsHandler(service.NewStatsService(eventRepo))
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(cfg.JWTSecret))
			r.Get("/api/v1/stats", statsHandler.HandleStats)
		})
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "random_source", cfg.RandomSource)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
