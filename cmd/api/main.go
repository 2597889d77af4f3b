package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dealcanvas/internal/config"
	"dealcanvas/internal/database"
	"dealcanvas/internal/drag"
	"dealcanvas/internal/logger"
	"dealcanvas/internal/middleware"
	"dealcanvas/internal/router"
	"dealcanvas/internal/services"
	"dealcanvas/internal/templates"
	"dealcanvas/internal/validator"

	_ "dealcanvas/internal/docs" // Import swagger docs
)

// @title           DealCanvas API
// @version         1.0
// @description     DealCanvas models trading deals and their cashflows as cards on a shared canvas.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the workspace token.

const (
	janitorInterval = time.Minute
	eventBuffer     = 64
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize audit database
	dbConfig, err := database.NewConfig(appConfig)
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Initialize services
	catalog := templates.Builtin()
	workspaces := services.NewWorkspaces(services.WorkspaceOptions{
		Catalog:     catalog,
		Bounds:      drag.Bounds{CanvasWidth: appConfig.CanvasWidth, CardWidth: appConfig.CardWidth},
		IdleTTL:     appConfig.WorkspaceIdleTTL,
		EventBuffer: eventBuffer,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go workspaces.RunJanitor(ctx, janitorInterval)

	engine := router.New(router.Deps{
		Workspaces:  workspaces,
		Templates:   services.NewTemplateService(catalog),
		Canvas:      services.NewCanvasService(workspaces),
		Labels:      services.NewLabelEditService(workspaces),
		Drag:        services.NewDragService(workspaces),
		Audit:       services.NewAuditService(dbManager.DB()),
		Tokens:      middleware.NewTokenIssuer(appConfig.JWTSecret, appConfig.WorkspaceTokenTTL),
		AdminAPIKey: appConfig.AdminAPIKey,
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting DealCanvas server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
