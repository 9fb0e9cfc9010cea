package battle

// Size is a D&D 5e creature size category
type Size string

const (
	SizeTiny       Size = "Tiny"
	SizeSmall      Size = "Small"
	SizeMedium     Size = "Medium"
	SizeLarge      Size = "Large"
	SizeHuge       Size = "Huge"
	SizeGargantuan Size = "Gargantuan"
)

// GridSize returns the edge length of the square footprint a creature of this
// size occupies. Unknown sizes count as one square.
func (s Size) GridSize() int {
	switch s {
	case SizeLarge:
		return 2
	case SizeHuge:
		return 3
	case SizeGargantuan:
		return 4
	default:
		return 1
	}
}

// AbilityScores holds the six D&D ability scores
type AbilityScores struct {
	Str int `json:"str"`
	Dex int `json:"dex"`
	Con int `json:"con"`
	Int int `json:"int"`
	Wis int `json:"wis"`
	Cha int `json:"cha"`
}

// StatusEffect is a named condition on a creature
type StatusEffect struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Duration      int    `json:"duration,omitempty"` // rounds remaining
	Concentration bool   `json:"concentration,omitempty"`
}

// Creature represents one combatant in a battle
type Creature struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	HP            int            `json:"hp"` // current, may go to or below 0
	MaxHP         int            `json:"maxHp"`
	AC            int            `json:"ac"`
	Initiative    int            `json:"initiative"`
	Stats         AbilityScores  `json:"stats"`
	StatusEffects []StatusEffect `json:"statusEffects"`
	Position      *GridPosition  `json:"position,omitempty"` // nil for theatre of mind
	Size          Size           `json:"size"`
	IsPlayer      bool           `json:"isPlayer"`
}

// Clone returns a deep copy of the creature
func (c *Creature) Clone() *Creature {
	clone := *c
	if c.Position != nil {
		pos := *c.Position
		clone.Position = &pos
	}
	if c.StatusEffects != nil {
		clone.StatusEffects = make([]StatusEffect, len(c.StatusEffects))
		copy(clone.StatusEffects, c.StatusEffects)
	}
	return &clone
}

// CloneRoster deep-copies a creature list, for undo snapshots
func CloneRoster(creatures []*Creature) []*Creature {
	roster := make([]*Creature, len(creatures))
	for i, c := range creatures {
		roster[i] = c.Clone()
	}
	return roster
}
