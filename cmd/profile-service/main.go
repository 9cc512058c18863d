package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/talentflow/talentflow-backend/internal/extraction/engine"
	"github.com/talentflow/talentflow-backend/internal/extraction/events"
	"github.com/talentflow/talentflow-backend/internal/extraction/handler"
	"github.com/talentflow/talentflow-backend/internal/extraction/provider"
	"github.com/talentflow/talentflow-backend/internal/extraction/repository"
	"github.com/talentflow/talentflow-backend/internal/extraction/service"
	"github.com/talentflow/talentflow-backend/internal/extraction/storage"
	"github.com/talentflow/talentflow-backend/internal/extraction/textextract"
	"github.com/talentflow/talentflow-backend/pkg/config"
	"github.com/talentflow/talentflow-backend/pkg/database"
	"github.com/talentflow/talentflow-backend/pkg/httputil"
	"github.com/talentflow/talentflow-backend/pkg/logger"
	"github.com/talentflow/talentflow-backend/pkg/messaging"
)

// jobTTL bounds how long completed extraction jobs stay pollable
const jobTTL = 30 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.LoadWithValidation("profile-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("profile-service", cfg.Server.Environment)
	log.Info().Msg("starting Profile Service")

	ctx := context.Background()

	// Connect to the audit database when configured
	var db *database.DB
	var auditRepo *repository.AuditRepository
	if cfg.Database.Enabled() {
		db, err = database.New(&cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()
		auditRepo = repository.NewAuditRepository(db)
	} else {
		log.Info().Msg("no database configured, extraction audit disabled")
	}

	// Connect to RabbitMQ when configured
	var rmq *messaging.RabbitMQ
	var publisher *events.Publisher
	if cfg.RabbitMQ.Enabled() {
		rmq, err = messaging.New(&cfg.RabbitMQ, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		defer rmq.Close()

		publisher, err = events.NewPublisher(rmq, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create event publisher")
		}
	} else {
		log.Info().Msg("no RabbitMQ configured, profile events disabled")
	}

	// Build the extraction pipeline
	adapters := provider.BuildAdapters(ctx, cfg.Providers, log)
	if len(adapters) == 0 {
		log.Warn().Msg("no provider credentials configured, running on the regex engine only")
	}
	jobStore := storage.NewJobStore(jobTTL)
	svc := service.NewService(
		textextract.NewDocconvExtractor(),
		adapters,
		engine.New(),
		jobStore,
		auditRepo,
		publisher,
		log,
	)

	extractionHandler := handler.NewHandler(svc, log)

	// Create router
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := map[string]interface{}{
			"status":  "healthy",
			"service": "profile-service",
		}
		if db != nil {
			health["database"] = db.Health(r.Context())
		}
		if rmq != nil {
			health["rabbitmq"] = rmq.Health()
		}
		httputil.JSON(w, http.StatusOK, health)
	})

	// API endpoints
	r.Route("/api/v1", func(r chi.Router) {
		extractionHandler.Routes(r)
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
