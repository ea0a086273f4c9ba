package types

import (
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/shared/projection"
)

// PetProjection transports a domain aggregate together with its persistence metadata.
type PetProjection = projection.Projection[*domain.Pet]
