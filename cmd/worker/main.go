package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/pet-adoption-api/internal/app/api"
	"github.com/Apurer/pet-adoption-api/internal/app/services"
	adoptionactivities "github.com/Apurer/pet-adoption-api/internal/durable/temporal/activities/adoptions"
	adoptionworkflows "github.com/Apurer/pet-adoption-api/internal/durable/temporal/workflows/adoptions"
	platformobservability "github.com/Apurer/pet-adoption-api/internal/platform/observability"
	platformtemporal "github.com/Apurer/pet-adoption-api/internal/platform/temporal"
)

func main() {
	ctx := context.Background()
	const serviceName = "pet-adoption-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Observability(serviceName))
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
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
		logger.Error("failed to build services", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()
	if !svc.Persistent {
		logger.Warn("worker is running against in-memory repositories; transitions will not be visible to the API")
	}
	transitionActivities := adoptionactivities.NewActivities(svc.Adoptions)

	temporalClient, err := platformtemporal.Dial(platformtemporal.Options{
		Address:    cfg.TemporalAddress,
		Namespace:  cfg.TemporalNamespace,
		TracerName: "temporal-worker",
	}, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, adoptionworkflows.StatusTransitionTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(adoptionworkflows.StatusTransitionWorkflow, workflow.RegisterOptions{Name: adoptionworkflows.StatusTransitionWorkflowName})
	w.RegisterActivityWithOptions(transitionActivities.TransitionApplication, activity.RegisterOptions{Name: adoptionactivities.TransitionApplicationActivityName})

	logger.Info("worker listening", slog.String("taskQueue", adoptionworkflows.StatusTransitionTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
