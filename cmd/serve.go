package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/readiness-assessment/internal/config"
	"github.com/SAP-F-2025/readiness-assessment/internal/engine"
	"github.com/SAP-F-2025/readiness-assessment/internal/handlers"
	"github.com/SAP-F-2025/readiness-assessment/internal/repositories/postgres"
	"github.com/SAP-F-2025/readiness-assessment/internal/services"
	"github.com/SAP-F-2025/readiness-assessment/internal/utils"
	"github.com/SAP-F-2025/readiness-assessment/internal/validator"
	"github.com/SAP-F-2025/readiness-assessment/pkg/monitoring"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout = 10 * time.Second
	purgeInterval   = 15 * time.Minute
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := utils.NewLogger(cfg.Environment, cmd.OutOrStdout())
	slogger := logger.Slog()

	policy, err := engine.ParsePrefillPolicy(cfg.PrefillPolicy)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := openStorage(ctx, cfg, slogger)
	if err != nil {
		return err
	}
	defer storage.close()

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		return fmt.Errorf("failed to create event publisher: %w", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", "error", err)
		}
	}()

	metrics := monitoring.NewDefaultMetrics()
	catalog := engine.DefaultCatalog()

	assessmentService := services.NewAssessmentService(
		storage.store,
		publisher,
		metrics,
		slogger,
		validator.New(),
		services.AssessmentServiceConfig{
			SessionTTL:    cfg.SessionTTL,
			PrefillPolicy: policy,
			Catalog:       catalog,
		},
	)
	exportService := services.NewExportService(catalog, slogger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewHandlerManager(assessmentService, exportService, metrics, logger).
		NewRouter(cfg.CORSAllowedOrigins)

	if storage.blobs != nil {
		go sweepExpired(ctx, storage.blobs, logger)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "storage", cfg.StorageBackend, "prefill_policy", policy)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// sweepExpired deletes expired postgres rows until ctx is done; redis expires keys itself.
func sweepExpired(ctx context.Context, blobs *postgres.BlobPostgreSQL, logger utils.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := blobs.PurgeExpired(ctx)
			if err != nil {
				logger.Error("Failed to purge expired blobs", "error", err)
				continue
			}
			if purged > 0 {
				logger.Info("Purged expired blobs", "count", purged)
			}
		}
	}
}
