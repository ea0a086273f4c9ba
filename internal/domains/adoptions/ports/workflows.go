package ports

import (
	"context"

	adoptiontypes "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
)

// WorkflowOrchestrator exposes durable workflow operations required by the adoptions bounded context.
type WorkflowOrchestrator interface {
	TransitionApplication(ctx context.Context, input adoptiontypes.TransitionInput) (*adoptiontypes.ApplicationProjection, error)
}
