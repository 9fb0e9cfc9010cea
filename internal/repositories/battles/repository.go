package battles

import (
	"context"

	"github.com/tabletopforge/battletracker/internal/domain/game/battle"
)

// Repository defines the interface for battle storage operations. Battles are
// process-local; there is no durable implementation.
type Repository interface {
	// Create stores a new battle
	Create(ctx context.Context, b *battle.Battle) error

	// Get retrieves a battle by ID
	Get(ctx context.Context, id string) (*battle.Battle, error)

	// GetAll retrieves every battle
	GetAll(ctx context.Context) ([]*battle.Battle, error)

	// Delete removes a battle
	Delete(ctx context.Context, id string) error
}
