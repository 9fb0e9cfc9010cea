package dicelog

import (
	"context"
	"sync"

	"github.com/tabletopforge/battletracker/internal/dice"
)

type inMemoryRepository struct {
	mu    sync.RWMutex
	rolls []*dice.Roll // newest first
	limit int
}

// NewInMemoryRepository creates an in-memory roll history bounded at limit
// entries (DefaultHistoryLimit when limit <= 0)
func NewInMemoryRepository(limit int) Repository {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &inMemoryRepository{limit: limit}
}

// Append records a roll
func (r *inMemoryRepository) Append(ctx context.Context, roll *dice.Roll) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rolls = append([]*dice.Roll{roll}, r.rolls...)
	if len(r.rolls) > r.limit {
		r.rolls = r.rolls[:r.limit]
	}
	return nil
}

// List returns up to limit recent rolls, newest first
func (r *inMemoryRepository) List(ctx context.Context, limit int) ([]*dice.Roll, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.rolls) {
		limit = len(r.rolls)
	}

	out := make([]*dice.Roll, limit)
	copy(out, r.rolls[:limit])
	return out, nil
}
