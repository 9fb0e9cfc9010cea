package battle

import "sort"

// Mode selects how a battle tracks creature placement
type Mode string

const (
	// ModeTheatreOfMind tracks positions as narrative text
	ModeTheatreOfMind Mode = "TheatreOfMind"
	// ModeGridBased tracks positions on a grid map
	ModeGridBased Mode = "GridBased"
)

// DefaultMapWidth and DefaultMapHeight are used when a grid battle is created
// without an explicit map size.
const (
	DefaultMapWidth  = 25
	DefaultMapHeight = 25
)

// Battle represents one tracked combat encounter
type Battle struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Creatures   []*Creature `json:"creatures"`
	CurrentTurn int         `json:"currentTurn"` // index into Creatures
	Round       int         `json:"round"`
	IsActive    bool        `json:"isActive"`
	History     []*Action   `json:"history"`
	Mode        Mode        `json:"mode"`
	Map         *Map        `json:"map,omitempty"` // present iff Mode is GridBased

	// Theatre of Mind narrative fields
	SceneDescription  string `json:"sceneDescription,omitempty"`
	CreaturePositions string `json:"creaturePositions,omitempty"`
}

// Summary is the cheap listing view of a battle
type Summary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Mode          Mode   `json:"mode"`
	CreatureCount int    `json:"creatureCount"`
	Round         int    `json:"round"`
	IsActive      bool   `json:"isActive"`
}

// New creates a battle with an empty roster. Grid battles get a map of the
// requested size, all cells Empty.
func New(id, name string, mode Mode, mapWidth, mapHeight int, sceneDescription string) *Battle {
	b := &Battle{
		ID:          id,
		Name:        name,
		Creatures:   []*Creature{},
		CurrentTurn: 0,
		Round:       1,
		IsActive:    false,
		History:     []*Action{},
		Mode:        mode,
	}

	switch mode {
	case ModeGridBased:
		if mapWidth <= 0 {
			mapWidth = DefaultMapWidth
		}
		if mapHeight <= 0 {
			mapHeight = DefaultMapHeight
		}
		b.Map = NewEmptyMap(mapWidth, mapHeight, "Battle map for "+name)
	default:
		b.SceneDescription = sceneDescription
	}

	return b
}

// Clone returns a deep copy of the battle, detached from the original. The
// roster and map are copied cell by cell; history actions are immutable once
// recorded, so the copy shares them behind a fresh slice.
func (b *Battle) Clone() *Battle {
	clone := *b
	clone.Creatures = CloneRoster(b.Creatures)
	clone.Map = b.Map.Clone()
	clone.History = append([]*Action{}, b.History...)
	return &clone
}

// Summary returns the listing view of the battle
func (b *Battle) Summary() *Summary {
	return &Summary{
		ID:            b.ID,
		Name:          b.Name,
		Mode:          b.Mode,
		CreatureCount: len(b.Creatures),
		Round:         b.Round,
		IsActive:      b.IsActive,
	}
}

// CreatureByID returns the creature with the given id, or nil
func (b *Battle) CreatureByID(id string) *Creature {
	for _, c := range b.Creatures {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// SortByInitiative orders the roster by initiative descending. The sort is
// stable, so equal initiatives keep their relative order.
func (b *Battle) SortByInitiative() {
	sort.SliceStable(b.Creatures, func(i, j int) bool {
		return b.Creatures[i].Initiative > b.Creatures[j].Initiative
	})
}
