// Package campaign holds the reusable template library: creatures and maps
// saved across battles.
package campaign

import (
	"github.com/tabletopforge/battletracker/internal/domain/game/battle"
)

// DefaultName is the name of the automatically managed campaign
const DefaultName = "Default Campaign"

// CreatureTemplate is a reusable creature definition. The embedded template's
// ID and Position are ignored; instantiation assigns fresh ones.
type CreatureTemplate struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Template    *battle.Creature `json:"template"`
	CreatedAt   int64            `json:"createdAt"`
	LastUsed    int64            `json:"lastUsed,omitempty"`
	UsageCount  int              `json:"usageCount"`
}

// MapTemplate is a reusable battle map layout
type MapTemplate struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Template    *battle.Map `json:"template"`
	CreatedAt   int64       `json:"createdAt"`
	LastUsed    int64       `json:"lastUsed,omitempty"`
	UsageCount  int         `json:"usageCount"`
}

// Campaign owns a set of creature and map templates
type Campaign struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	IsDefault   bool                `json:"isDefault"`
	Creatures   []*CreatureTemplate `json:"creatures"`
	Maps        []*MapTemplate      `json:"maps"`
	CreatedAt   int64               `json:"createdAt"`
	UpdatedAt   int64               `json:"updatedAt"`
}

// CreatureByID returns the creature template with the given id, or nil
func (c *Campaign) CreatureByID(id string) *CreatureTemplate {
	for _, tpl := range c.Creatures {
		if tpl.ID == id {
			return tpl
		}
	}
	return nil
}

// MapByID returns the map template with the given id, or nil
func (c *Campaign) MapByID(id string) *MapTemplate {
	for _, tpl := range c.Maps {
		if tpl.ID == id {
			return tpl
		}
	}
	return nil
}

// Instantiate builds a battle-ready creature from a template: fresh id, full
// HP, cleared status effects, optional starting position.
func (t *CreatureTemplate) Instantiate(id string, position *battle.GridPosition) *battle.Creature {
	creature := t.Template.Clone()
	creature.ID = id
	creature.HP = creature.MaxHP
	creature.StatusEffects = []battle.StatusEffect{}
	creature.Position = position
	return creature
}
