package battle

import (
	"context"
	"strings"

	"github.com/tabletopforge/battletracker/internal/domain/game/battle"
	apperrors "github.com/tabletopforge/battletracker/internal/errors"
)

// AddCreature appends a creature to the roster and re-sorts by initiative.
// This is the only operation that sorts; later initiative edits do not
// reorder an in-progress battle.
func (s *service) AddCreature(ctx context.Context, battleID string, input *AddCreatureInput) (*battle.Battle, error) {
	if input == nil {
		return nil, apperrors.InvalidArgument("input cannot be nil")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.Validation("creature name is required")
	}
	if input.MaxHP <= 0 {
		return nil, apperrors.Validation("creature maxHp must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repository.Get(ctx, battleID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get battle '%s'", battleID)
	}

	creature := s.buildCreature(input)
	if err := s.checkPlacement(b, creature.Position, creature.Size, ""); err != nil {
		return nil, err
	}

	previous := battle.RosterSnapshot(b.Creatures)

	b.Creatures = append(b.Creatures, creature)
	b.SortByInitiative()
	b.History = append(b.History, battle.NewAction(s.actionSeq, battle.ActionAddCreature, creature, previous))

	if s.templates != nil {
		if err := s.templates.RegisterCreature(ctx, creature, b.Name); err != nil {
			s.log.WithError(err).WithField("creature", creature.Name).
				Warn("failed to register creature to default campaign")
		}
	}

	return b.Clone(), nil
}

// AddCreatureFromCampaign instantiates a campaign template into the battle
func (s *service) AddCreatureFromCampaign(ctx context.Context, battleID, templateID string, position *battle.GridPosition) (*battle.Battle, error) {
	if s.templates == nil {
		return nil, apperrors.ImpossibleCommand("campaign library is not configured")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repository.Get(ctx, battleID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get battle '%s'", battleID)
	}

	creature, err := s.templates.InstantiateCreature(ctx, templateID, position)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to instantiate template '%s'", templateID)
	}
	if err := s.checkPlacement(b, creature.Position, creature.Size, ""); err != nil {
		return nil, err
	}

	previous := battle.RosterSnapshot(b.Creatures)

	b.Creatures = append(b.Creatures, creature)
	b.SortByInitiative()
	b.History = append(b.History, battle.NewAction(s.actionSeq, battle.ActionAddCreature, creature, previous))

	return b.Clone(), nil
}

// UpdateCreature merges the provided fields onto a creature. The roster order
// is preserved even when initiative changes, and a provided position is taken
// as a bookkeeping correction rather than a move, so neither is re-validated.
func (s *service) UpdateCreature(ctx context.Context, battleID, creatureID string, input *UpdateCreatureInput) (*battle.Battle, error) {
	if input == nil {
		return nil, apperrors.InvalidArgument("input cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repository.Get(ctx, battleID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get battle '%s'", battleID)
	}

	creature := b.CreatureByID(creatureID)
	if creature == nil {
		return nil, apperrors.NotFoundf("creature '%s' not found in battle '%s'", creatureID, battleID)
	}

	previous := battle.RosterSnapshot(b.Creatures)

	if input.Name != nil {
		creature.Name = *input.Name
	}
	if input.HP != nil {
		creature.HP = *input.HP
	}
	if input.MaxHP != nil {
		creature.MaxHP = *input.MaxHP
	}
	if input.AC != nil {
		creature.AC = *input.AC
	}
	if input.Initiative != nil {
		creature.Initiative = *input.Initiative
	}
	if input.Stats != nil {
		creature.Stats = *input.Stats
	}
	if input.StatusEffects != nil {
		creature.StatusEffects = *input.StatusEffects
	}
	if input.Position != nil {
		creature.Position = input.Position
	}
	if input.Size != nil {
		creature.Size = *input.Size
	}
	if input.IsPlayer != nil {
		creature.IsPlayer = *input.IsPlayer
	}

	b.History = append(b.History, battle.NewAction(s.actionSeq, battle.ActionUpdateCreature, input, previous))

	return b.Clone(), nil
}

// RemoveCreature removes a creature from the roster. The turn pointer is left
// as-is; removing a creature before the current one shifts whose turn it is.
func (s *service) RemoveCreature(ctx context.Context, battleID, creatureID string) (*battle.Battle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repository.Get(ctx, battleID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get battle '%s'", battleID)
	}

	idx := -1
	for i, c := range b.Creatures {
		if c.ID == creatureID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.NotFoundf("creature '%s' not found in battle '%s'", creatureID, battleID)
	}

	previous := battle.RosterSnapshot(b.Creatures)

	b.Creatures = append(b.Creatures[:idx], b.Creatures[idx+1:]...)
	b.History = append(b.History, battle.NewAction(s.actionSeq, battle.ActionRemoveCreature,
		map[string]string{"creatureId": creatureID}, previous))

	return b.Clone(), nil
}

// MoveCreature relocates a creature on the grid, rejecting moves whose
// footprint leaves the map or overlaps impassable terrain or another creature
func (s *service) MoveCreature(ctx context.Context, battleID, creatureID string, position battle.GridPosition) (*battle.Battle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repository.Get(ctx, battleID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get battle '%s'", battleID)
	}

	if b.Mode != battle.ModeGridBased || b.Map == nil {
		return nil, apperrors.ImpossibleCommand("battle has no grid map")
	}

	creature := b.CreatureByID(creatureID)
	if creature == nil {
		return nil, apperrors.NotFoundf("creature '%s' not found in battle '%s'", creatureID, battleID)
	}

	if ok, reason := battle.CanOccupy(b.Map, position, creature.Size, creature.ID, b.Creatures); !ok {
		return nil, apperrors.ImpossibleCommandf("cannot move %s to (%d, %d): %s",
			creature.Name, position.X, position.Y, reason)
	}

	previous := battle.RosterSnapshot(b.Creatures)

	pos := position
	creature.Position = &pos
	b.History = append(b.History, battle.NewAction(s.actionSeq, battle.ActionMoveCreature,
		map[string]any{"creatureId": creatureID, "position": pos}, previous))

	return b.Clone(), nil
}

// buildCreature applies defaults and assigns an id when the caller did not
func (s *service) buildCreature(input *AddCreatureInput) *battle.Creature {
	creature := &battle.Creature{
		ID:            input.ID,
		Name:          input.Name,
		HP:            input.HP,
		MaxHP:         input.MaxHP,
		AC:            input.AC,
		Initiative:    input.Initiative,
		StatusEffects: input.StatusEffects,
		Position:      input.Position,
		Size:          input.Size,
		IsPlayer:      input.IsPlayer,
	}
	if input.Stats != nil {
		creature.Stats = *input.Stats
	}
	if creature.ID == "" {
		creature.ID = s.uuidGenerator.New()
	}
	if creature.AC == 0 {
		creature.AC = 10
	}
	if creature.Size == "" {
		creature.Size = battle.SizeMedium
	}
	if creature.StatusEffects == nil {
		creature.StatusEffects = []battle.StatusEffect{}
	}
	return creature
}

// checkPlacement validates an initial position against the grid, when both a
// position and a grid exist
func (s *service) checkPlacement(b *battle.Battle, pos *battle.GridPosition, size battle.Size, excludeID string) error {
	if pos == nil || b.Map == nil {
		return nil
	}
	if ok, reason := battle.CanOccupy(b.Map, *pos, size, excludeID, b.Creatures); !ok {
		return apperrors.ImpossibleCommandf("cannot place creature at (%d, %d): %s", pos.X, pos.Y, reason)
	}
	return nil
}
