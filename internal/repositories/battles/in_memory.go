package battles

import (
	"context"
	"sync"

	"github.com/tabletopforge/battletracker/internal/domain/game/battle"
	"github.com/tabletopforge/battletracker/internal/errors"
)

type inMemoryRepository struct {
	mu      sync.RWMutex
	battles map[string]*battle.Battle
	order   []string // creation order, for stable listing
}

// NewInMemoryRepository creates a new in-memory battle repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		battles: make(map[string]*battle.Battle),
	}
}

// Create stores a new battle
func (r *inMemoryRepository) Create(ctx context.Context, b *battle.Battle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.battles[b.ID]; exists {
		return errors.AlreadyExists("battle with ID " + b.ID + " already exists")
	}

	r.battles[b.ID] = b
	r.order = append(r.order, b.ID)
	return nil
}

// Get retrieves a battle by ID
func (r *inMemoryRepository) Get(ctx context.Context, id string) (*battle.Battle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, exists := r.battles[id]
	if !exists {
		return nil, errors.NotFoundf("battle not found: %s", id)
	}

	return b, nil
}

// GetAll retrieves every battle in creation order
func (r *inMemoryRepository) GetAll(ctx context.Context) ([]*battle.Battle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*battle.Battle, 0, len(r.battles))
	for _, id := range r.order {
		if b, exists := r.battles[id]; exists {
			all = append(all, b)
		}
	}

	return all, nil
}

// Delete removes a battle
func (r *inMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.battles[id]; !exists {
		return errors.NotFoundf("battle not found: %s", id)
	}

	delete(r.battles, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
