package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rohit/cms-editorial/internal/api"
	"github.com/rohit/cms-editorial/internal/auth"
	"github.com/rohit/cms-editorial/internal/config"
	"github.com/rohit/cms-editorial/internal/domain/models"
	"github.com/rohit/cms-editorial/internal/metrics"
	"github.com/rohit/cms-editorial/internal/permission"
	"github.com/rohit/cms-editorial/internal/repository"
	"github.com/rohit/cms-editorial/internal/repository/postgres"
	"github.com/rohit/cms-editorial/internal/service/category"
	"github.com/rohit/cms-editorial/internal/service/workflow"
	"github.com/rohit/cms-editorial/internal/worker"
	"github.com/rohit/cms-editorial/pkg/logger"
	"github.com/rs/zerolog"
)

func main() {
	// Initialize logger
	log := logger.New()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize metrics
	metricsCollector := metrics.NewCollector(nil)

	// Initialize database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()
	db.ObserveQueries(metricsCollector.RecordDBQuery)

	if cfg.Database.AutoMigrate {
		if err := db.RunMigrations(log); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	articleRepo := postgres.NewArticleRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	tagRepo := postgres.NewTagRepository(db)
	auditRepo := postgres.NewAuditRepository(db)

	if err := seedRoles(roleRepo); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed roles")
	}

	// Optional audit log file
	var fileLog *zerolog.Logger
	if cfg.Audit.LogFile != "" {
		f, err := os.OpenFile(cfg.Audit.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Audit.LogFile).Msg("Failed to open audit log file")
		}
		defer f.Close()
		l := logger.NewJSON(f)
		fileLog = &l
	}

	// Initialize audit pool
	auditPool := worker.NewPool(auditRepo, fileLog, metricsCollector, log, cfg.Audit)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	auditPool.Start(ctx)
	go reportDBStats(ctx, db, metricsCollector)

	// Initialize services
	tokens := auth.NewTokenService(cfg.Auth)
	authenticator := auth.NewAuthenticator(tokens, userRepo, roleRepo, cfg.Auth.AdminRoles)

	workflowSvc := workflow.NewService(
		articleRepo,
		categoryRepo,
		tagRepo,
		db,
		auditPool,
		metricsCollector,
		log,
	)

	categorySvc := category.NewService(
		categoryRepo,
		tagRepo,
		db,
		auditPool,
		metricsCollector,
		log,
	)

	// Initialize router
	router := api.NewRouter(
		db,
		authenticator,
		workflowSvc,
		categorySvc,
		auditPool,
		metricsCollector,
		log,
		cfg,
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router.Engine(),
		ReadTimeout:  time.Duration(cfg.App.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.App.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.App.IdleTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Int("port", cfg.App.Port).
			Str("env", cfg.App.Env).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with new context
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Shutdown HTTP server
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Drain audit queue
	cancel()
	auditPool.Stop()

	log.Info().Msg("Server exited")
}

// seedRoles inserts the built-in roles that are not yet stored
func seedRoles(roles repository.RoleRepository) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, seed := range permission.DefaultRoles() {
		description := seed.Description
		role := &models.Role{
			Name:        seed.Name,
			Description: &description,
			Permissions: seed.Permissions.JSON(),
		}
		if err := roles.CreateIfMissing(ctx, role); err != nil {
			return fmt.Errorf("role %s: %w", seed.Name, err)
		}
	}
	return nil
}

func reportDBStats(ctx context.Context, db *postgres.DB, collector *metrics.Collector) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			collector.SetDBConnections(db.GetStats().InUse)
		}
	}
}
