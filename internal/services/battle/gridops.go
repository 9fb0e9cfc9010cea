package battle

import (
	"context"

	"github.com/tabletopforge/battletracker/internal/domain/game/battle"
	apperrors "github.com/tabletopforge/battletracker/internal/errors"
)

// SetTerrain overwrites terrain on a set of map cells. Every position is
// bounds-checked before any cell is written so a bad batch leaves the map
// untouched.
func (s *service) SetTerrain(ctx context.Context, battleID string, input *SetTerrainInput) (*battle.Battle, error) {
	if input == nil {
		return nil, apperrors.InvalidArgument("input cannot be nil")
	}
	if len(input.Positions) == 0 {
		return nil, apperrors.Validation("at least one position is required")
	}
	if !input.Terrain.Valid() {
		return nil, apperrors.Validationf("unknown terrain type: %s", input.Terrain)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repository.Get(ctx, battleID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get battle '%s'", battleID)
	}
	if b.Mode != battle.ModeGridBased || b.Map == nil {
		return nil, apperrors.ImpossibleCommand("battle has no grid map")
	}

	for _, pos := range input.Positions {
		if !b.Map.InBounds(pos) {
			return nil, apperrors.ImpossibleCommandf("position (%d, %d) is outside the map", pos.X, pos.Y)
		}
	}

	previous := &battle.Snapshot{Map: b.Map.Clone()}

	for _, pos := range input.Positions {
		cell := b.Map.CellAt(pos)
		cell.Terrain = input.Terrain
		cell.DoorOpen = input.Terrain == battle.TerrainDoor && input.DoorOpen != nil && *input.DoorOpen
		if input.Elevation != nil {
			cell.Elevation = *input.Elevation
		}
		switch {
		case input.Terrain != battle.TerrainHazard:
			cell.HazardDamage = 0
		case input.HazardDamage != nil:
			cell.HazardDamage = *input.HazardDamage
		}
	}

	b.History = append(b.History, battle.NewAction(s.actionSeq, battle.ActionSetTerrain, input, previous))

	return b.Clone(), nil
}

// ToggleDoor flips the open state of a door cell
func (s *service) ToggleDoor(ctx context.Context, battleID string, position battle.GridPosition) (*battle.Battle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repository.Get(ctx, battleID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get battle '%s'", battleID)
	}
	if b.Mode != battle.ModeGridBased || b.Map == nil {
		return nil, apperrors.ImpossibleCommand("battle has no grid map")
	}

	cell := b.Map.CellAt(position)
	if cell == nil {
		return nil, apperrors.ImpossibleCommandf("position (%d, %d) is outside the map", position.X, position.Y)
	}
	if cell.Terrain != battle.TerrainDoor {
		return nil, apperrors.ImpossibleCommandf("no door at (%d, %d)", position.X, position.Y)
	}

	previous := &battle.Snapshot{Map: b.Map.Clone()}

	cell.DoorOpen = !cell.DoorOpen
	b.History = append(b.History, battle.NewAction(s.actionSeq, battle.ActionToggleDoor,
		map[string]any{"position": position, "open": cell.DoorOpen}, previous))

	return b.Clone(), nil
}
