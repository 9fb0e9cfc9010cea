package campaigns

import (
	"context"

	"github.com/tabletopforge/battletracker/internal/domain/game/campaign"
)

// Repository defines the interface for campaign storage operations
type Repository interface {
	// Create stores a new campaign
	Create(ctx context.Context, c *campaign.Campaign) error

	// Get retrieves a campaign by ID
	Get(ctx context.Context, id string) (*campaign.Campaign, error)

	// Update overwrites an existing campaign
	Update(ctx context.Context, c *campaign.Campaign) error

	// Delete removes a campaign
	Delete(ctx context.Context, id string) error

	// GetAll retrieves every campaign
	GetAll(ctx context.Context) ([]*campaign.Campaign, error)

	// GetDefault retrieves the default campaign, or NotFound if none exists
	GetDefault(ctx context.Context) (*campaign.Campaign, error)
}
