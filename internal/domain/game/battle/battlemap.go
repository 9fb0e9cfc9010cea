package battle

// Terrain classifies a map cell
type Terrain string

const (
	TerrainEmpty            Terrain = "Empty"
	TerrainWall             Terrain = "Wall"
	TerrainDifficultTerrain Terrain = "DifficultTerrain"
	TerrainWater            Terrain = "Water"
	TerrainPit              Terrain = "Pit"
	TerrainDoor             Terrain = "Door"
	TerrainWindow           Terrain = "Window"
	TerrainCover            Terrain = "Cover"
	TerrainHeavyCover       Terrain = "HeavyCover"
	TerrainStairs           Terrain = "Stairs"
	TerrainHazard           Terrain = "Hazard"
)

// Valid reports whether t is a known terrain type
func (t Terrain) Valid() bool {
	switch t {
	case TerrainEmpty, TerrainWall, TerrainDifficultTerrain, TerrainWater,
		TerrainPit, TerrainDoor, TerrainWindow, TerrainCover,
		TerrainHeavyCover, TerrainStairs, TerrainHazard:
		return true
	default:
		return false
	}
}

// GridPosition addresses a cell on the battle map, 0-based
type GridPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Cell is one grid square. DoorOpen is meaningful only for Door terrain,
// HazardDamage only for Hazard terrain.
type Cell struct {
	X            int     `json:"x"`
	Y            int     `json:"y"`
	Terrain      Terrain `json:"terrain"`
	DoorOpen     bool    `json:"doorOpen,omitempty"`
	Elevation    int     `json:"elevation,omitempty"`
	HazardDamage int     `json:"hazardDamage,omitempty"`
}

// Passable reports whether a creature may stand on this cell. Walls and pits
// block movement, doors block unless open; everything else (difficult
// terrain, water, cover, hazards...) affects movement cost or risk
// narratively, not legality.
func (c *Cell) Passable() bool {
	switch c.Terrain {
	case TerrainWall, TerrainPit:
		return false
	case TerrainDoor:
		return c.DoorOpen
	default:
		return true
	}
}

// Map is a grid-based battlefield. Dimensions are fixed at creation.
type Map struct {
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Cells       [][]*Cell `json:"cells"` // indexed [y][x]
	Description string    `json:"description,omitempty"`
}

// NewEmptyMap allocates a width x height map of Empty cells
func NewEmptyMap(width, height int, description string) *Map {
	cells := make([][]*Cell, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]*Cell, width)
		for x := 0; x < width; x++ {
			cells[y][x] = &Cell{X: x, Y: y, Terrain: TerrainEmpty}
		}
	}

	return &Map{
		Width:       width,
		Height:      height,
		Cells:       cells,
		Description: description,
	}
}

// InBounds reports whether the position lies on the map
func (m *Map) InBounds(pos GridPosition) bool {
	return pos.X >= 0 && pos.X < m.Width && pos.Y >= 0 && pos.Y < m.Height
}

// CellAt returns the cell at pos, or nil if out of bounds
func (m *Map) CellAt(pos GridPosition) *Cell {
	if !m.InBounds(pos) {
		return nil
	}
	return m.Cells[pos.Y][pos.X]
}

// Clone deep-copies the map, for undo snapshots
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	cells := make([][]*Cell, m.Height)
	for y := 0; y < m.Height; y++ {
		cells[y] = make([]*Cell, m.Width)
		for x := 0; x < m.Width; x++ {
			cell := *m.Cells[y][x]
			cells[y][x] = &cell
		}
	}
	return &Map{
		Width:       m.Width,
		Height:      m.Height,
		Cells:       cells,
		Description: m.Description,
	}
}
