package battle

import (
	"fmt"
	"strings"
)

// Grid placement policy. Pure functions over map and creature data; the
// service layer consults these before committing any spatial mutation.

// Footprint returns the cells a creature of the given size occupies when
// anchored (top-left) at pos.
func Footprint(pos GridPosition, size Size) []GridPosition {
	edge := size.GridSize()
	cells := make([]GridPosition, 0, edge*edge)
	for dy := 0; dy < edge; dy++ {
		for dx := 0; dx < edge; dx++ {
			cells = append(cells, GridPosition{X: pos.X + dx, Y: pos.Y + dy})
		}
	}
	return cells
}

// CanOccupy reports whether a creature of the given size can be placed with
// its footprint anchored at pos. Every footprint cell must be in bounds,
// passable, and free of other creatures' footprints. excludeID names a
// creature whose current footprint is ignored, so a creature can move within
// or adjacent to its own space; pass "" for fresh placement.
//
// On failure the returned reason names the first violated rule.
func CanOccupy(m *Map, pos GridPosition, size Size, excludeID string, creatures []*Creature) (bool, string) {
	for _, cell := range Footprint(pos, size) {
		if !m.InBounds(cell) {
			return false, "position extends beyond map bounds"
		}

		mapCell := m.CellAt(cell)
		if !mapCell.Passable() {
			return false, fmt.Sprintf("blocked by %s", strings.ToLower(string(mapCell.Terrain)))
		}

		if blocker := occupant(cell, excludeID, creatures); blocker != nil {
			return false, fmt.Sprintf("blocked by %s", blocker.Name)
		}
	}

	return true, ""
}

// occupant returns the creature (other than excludeID) whose footprint covers
// the cell, or nil
func occupant(cell GridPosition, excludeID string, creatures []*Creature) *Creature {
	for _, c := range creatures {
		if c.ID == excludeID || c.Position == nil {
			continue
		}
		for _, occupied := range Footprint(*c.Position, c.Size) {
			if occupied == cell {
				return c
			}
		}
	}
	return nil
}
