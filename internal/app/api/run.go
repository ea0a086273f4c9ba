package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	adoptionserver "github.com/Apurer/pet-adoption-api/go"
	"github.com/Apurer/pet-adoption-api/internal/app/services"
	adoptionworkflows "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/workflows"
	adoptionports "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	platformobservability "github.com/Apurer/pet-adoption-api/internal/platform/observability"
	platformtemporal "github.com/Apurer/pet-adoption-api/internal/platform/temporal"
)

const serviceName = "pet-adoption-api"

// Run boots the adoption HTTP API with observability, repositories, and workflows wired.
// It blocks until ctx is cancelled or SIGINT/SIGTERM arrives, then drains in-flight requests.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Observability(serviceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	svc, cleanup, err := services.Build(ctx, services.Options{
		PostgresDSN: cfg.PostgresDSN,
		AutoMigrate: cfg.AutoMigrate,
	}, instruments)
	if err != nil {
		return fmt.Errorf("failed to build services: %w", err)
	}
	defer cleanup()

	var transitions adoptionports.WorkflowOrchestrator = adoptionworkflows.NewInlineTransitionWorkflows(svc.Adoptions)
	temporalClient, err := platformtemporal.Dial(platformtemporal.Options{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Disabled:  cfg.TemporalDisabled,
	}, instruments)
	if err != nil {
		logger.Warn("Temporal workflows unavailable, running transitions inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		transitions = adoptionworkflows.NewTemporalTransitionWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := adoptionserver.ApiHandleFunctions{
		AdoptionAPI: adoptionserver.NewAdoptionAPI(svc.Adoptions, transitions),
		InterestAPI: adoptionserver.NewInterestAPI(svc.Adoptions),
		PetAPI:      adoptionserver.NewPetAPI(svc.Pets),
		StatusAPI:   adoptionserver.NewStatusAPI(),
	}
	router := adoptionserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, server, logger)
}

func serve(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("adoption API listening", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("adoption API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("adoption API shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
