package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/Apurer/pet-adoption-api/internal/app/api"
	"github.com/Apurer/pet-adoption-api/internal/app/services"
	adoptiontypes "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
	platformobservability "github.com/Apurer/pet-adoption-api/internal/platform/observability"
)

// The reconciler recomputes every pet listing from its applications and
// repairs catalog drift left behind by failed listing updates.
func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup runs on every path.
func run() int {
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Printf("invalid configuration: %v", err)
		return 1
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ReconcileTimeout)
	defer cancel()

	logger := platformobservability.NewLogger(cfg.Observability("availability-reconciler"))
	instruments := &platformobservability.Instruments{Logger: logger}
	svc, cleanup, err := services.Build(ctx, services.Options{
		PostgresDSN:     cfg.PostgresDSN,
		AutoMigrate:     cfg.AutoMigrate,
		RequirePostgres: true,
	}, instruments)
	if err != nil {
		logger.Error("cannot reconcile pet availability", slog.String("error", err.Error()))
		return 1
	}
	defer cleanup()

	summary, err := reconcile(ctx, svc, logger)
	if err != nil {
		logger.Error("failed to list pets with applications", slog.String("error", err.Error()))
		return 1
	}
	logger.Info("availability reconcile completed",
		slog.Int("pets", summary.Pets),
		slog.Int("synced", summary.Synced),
		slog.Int("locked", summary.Locked),
		slog.Int("failed", summary.Failed),
		slog.Duration("timeout", cfg.ReconcileTimeout),
	)
	if summary.Failed > 0 {
		return 1
	}
	return 0
}

type reconcileSummary struct {
	Pets   int
	Synced int
	Locked int
	Failed int
}

// reconcile syncs every pet that has applications; a failed pet is logged and counted, not fatal.
func reconcile(ctx context.Context, svc *services.Services, logger *slog.Logger) (reconcileSummary, error) {
	petIDs, err := svc.Applications.PetIDs(ctx)
	if err != nil {
		return reconcileSummary{}, err
	}
	summary := reconcileSummary{Pets: len(petIDs)}
	for _, petID := range petIDs {
		availability, err := svc.Adoptions.SyncPetListing(ctx, adoptiontypes.PetIdentifier{PetID: petID})
		if err != nil {
			summary.Failed++
			logger.Warn("listing sync failed", slog.Int64("petId", petID), slog.String("error", err.Error()))
			continue
		}
		summary.Synced++
		if !availability.Available {
			summary.Locked++
		}
	}
	return summary, nil
}
