package dicelog

import (
	"context"

	"github.com/tabletopforge/battletracker/internal/dice"
)

// DefaultHistoryLimit bounds how many rolls are retained
const DefaultHistoryLimit = 100

// Repository stores a bounded history of dice rolls, newest first
type Repository interface {
	// Append records a roll
	Append(ctx context.Context, roll *dice.Roll) error

	// List returns up to limit recent rolls, newest first
	List(ctx context.Context, limit int) ([]*dice.Roll, error)
}
