// Package services assembles the bounded contexts for every process of the adoption API.
package services

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	adoptionmemory "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/memory"
	adoptionobs "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/observability"
	adoptionpostgres "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/persistence/postgres"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/petcatalog"
	adoptionapp "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application"
	adoptiondomain "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	adoptionports "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	petsmemory "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/memory"
	petsobs "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/observability"
	petspostgres "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/persistence/postgres"
	petsapp "github.com/Apurer/pet-adoption-api/internal/domains/pets/application"
	petsdomain "github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	petsports "github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/pet-adoption-api/internal/platform/events"
	"github.com/Apurer/pet-adoption-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/pet-adoption-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/pet-adoption-api/internal/platform/postgres"
)

var errPostgresRequired = errors.New("POSTGRES_DSN is required for this process")

// Options selects the storage backend.
type Options struct {
	PostgresDSN string
	AutoMigrate bool
	// RequirePostgres turns a missing or unreachable database into an error instead of a memory fallback.
	RequirePostgres bool
}

// Services holds the decorated application services of both bounded contexts.
type Services struct {
	Pets         petsports.Service
	Adoptions    adoptionports.Service
	Applications adoptionports.ApplicationRepository
	Persistent   bool
}

// Build wires repositories, the pet catalog bridge, event publishers and observability decorators.
// The returned cleanup closes the database connection when one was opened.
func Build(ctx context.Context, opts Options, instruments *platformobservability.Instruments) (*Services, func(), error) {
	logger := loggerFrom(instruments)
	db, cleanup, err := openDatabase(ctx, opts, logger)
	if err != nil {
		return nil, func() {}, err
	}

	var (
		petRepo     petsports.Repository
		appRepo     adoptionports.ApplicationRepository
		interests   adoptionports.InterestRepository
		idempotency adoptionports.IdempotencyStore
	)
	if db != nil {
		petRepo = petspostgres.NewRepository(db)
		appRepo = adoptionpostgres.NewApplicationRepository(db)
		interests = adoptionpostgres.NewInterestRepository(db)
		idempotency = adoptionpostgres.NewIdempotencyStore(db)
		logger.Info("repositories configured with postgres")
	} else {
		petRepo = petsmemory.NewRepository()
		appRepo = adoptionmemory.NewApplicationRepository()
		interests = adoptionmemory.NewInterestRepository()
		idempotency = adoptionmemory.NewIdempotencyStore()
	}

	eventsMeter := instruments.Meter("internal.platform.events")
	corePets := petsapp.NewService(
		petRepo,
		petsapp.WithLogger(logger),
		petsapp.WithEventPublisher(events.NewLogPublisher[petsdomain.Event](logger, eventsMeter)),
	)
	pets := petsobs.New(
		corePets,
		petsobs.WithLogger(logger),
		petsobs.WithTracer(instruments.Tracer("internal.pets.application")),
		petsobs.WithMeter(instruments.Meter("internal.pets.application")),
	)

	coreAdoptions := adoptionapp.NewService(
		appRepo,
		interests,
		adoptionapp.WithPetCatalog(petcatalog.New(pets)),
		adoptionapp.WithIdempotencyStore(idempotency),
		adoptionapp.WithEventPublisher(events.NewLogPublisher[adoptiondomain.Event](logger, eventsMeter)),
		adoptionapp.WithLogger(logger),
	)
	adoptions := adoptionobs.New(
		coreAdoptions,
		adoptionobs.WithLogger(logger),
		adoptionobs.WithTracer(instruments.Tracer("internal.adoptions.application")),
		adoptionobs.WithMeter(instruments.Meter("internal.adoptions.application")),
	)

	return &Services{
		Pets:         pets,
		Adoptions:    adoptions,
		Applications: appRepo,
		Persistent:   db != nil,
	}, cleanup, nil
}

func openDatabase(ctx context.Context, opts Options, logger *slog.Logger) (*gorm.DB, func(), error) {
	if opts.PostgresDSN == "" {
		if opts.RequirePostgres {
			return nil, func() {}, errPostgresRequired
		}
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return nil, func() {}, nil
	}
	db, err := platformpostgres.Connect(ctx, opts.PostgresDSN)
	if err != nil {
		if opts.RequirePostgres {
			return nil, func() {}, err
		}
		logger.Warn("failed to connect to postgres, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, func() {}, nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, func() {}, err
	}
	cleanup := func() { _ = sqlDB.Close() }
	if opts.AutoMigrate {
		if err := migrations.Run(db); err != nil {
			cleanup()
			return nil, func() {}, err
		}
		logger.Info("postgres schema migrated")
	}
	return db, cleanup, nil
}

func loggerFrom(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.Default()
}
