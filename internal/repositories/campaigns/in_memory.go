package campaigns

import (
	"context"
	"sync"

	"github.com/tabletopforge/battletracker/internal/domain/game/campaign"
	"github.com/tabletopforge/battletracker/internal/errors"
)

type inMemoryRepository struct {
	mu        sync.RWMutex
	campaigns map[string]*campaign.Campaign
	order     []string
}

// NewInMemoryRepository creates a new in-memory campaign repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		campaigns: make(map[string]*campaign.Campaign),
	}
}

// Create stores a new campaign
func (r *inMemoryRepository) Create(ctx context.Context, c *campaign.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.campaigns[c.ID]; exists {
		return errors.AlreadyExists("campaign with ID " + c.ID + " already exists")
	}

	r.campaigns[c.ID] = c
	r.order = append(r.order, c.ID)
	return nil
}

// Get retrieves a campaign by ID
func (r *inMemoryRepository) Get(ctx context.Context, id string) (*campaign.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.campaigns[id]
	if !exists {
		return nil, errors.NotFoundf("campaign not found: %s", id)
	}

	return c, nil
}

// Update overwrites an existing campaign
func (r *inMemoryRepository) Update(ctx context.Context, c *campaign.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.campaigns[c.ID]; !exists {
		return errors.NotFoundf("campaign not found: %s", c.ID)
	}

	r.campaigns[c.ID] = c
	return nil
}

// Delete removes a campaign
func (r *inMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.campaigns[id]; !exists {
		return errors.NotFoundf("campaign not found: %s", id)
	}

	delete(r.campaigns, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// GetAll retrieves every campaign in creation order
func (r *inMemoryRepository) GetAll(ctx context.Context) ([]*campaign.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*campaign.Campaign, 0, len(r.campaigns))
	for _, id := range r.order {
		if c, exists := r.campaigns[id]; exists {
			all = append(all, c)
		}
	}

	return all, nil
}

// GetDefault retrieves the default campaign
func (r *inMemoryRepository) GetDefault(ctx context.Context) (*campaign.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.campaigns {
		if c.IsDefault {
			return c, nil
		}
	}

	return nil, errors.NotFound("no default campaign exists")
}
