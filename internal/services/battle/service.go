package battle

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/tabletopforge/battletracker/internal/domain/game/battle"
	apperrors "github.com/tabletopforge/battletracker/internal/errors"
	"github.com/tabletopforge/battletracker/internal/repositories/battles"
	"github.com/tabletopforge/battletracker/internal/uuid"
)

// Service is the single writer of battle state. Every mutation validates its
// preconditions, applies atomically, records an undo action and returns the
// updated battle. Returned battles are detached copies, safe to encode or
// inspect while other calls mutate the stored state.
type Service interface {
	// CreateBattle creates a new battle
	CreateBattle(ctx context.Context, input *CreateBattleInput) (*battle.Battle, error)

	// GetBattle retrieves a battle by ID
	GetBattle(ctx context.Context, battleID string) (*battle.Battle, error)

	// ListBattles returns summaries of every battle
	ListBattles(ctx context.Context) ([]*battle.Summary, error)

	// UpdateBattle changes battle-level settings (name, mode, map size, scene)
	UpdateBattle(ctx context.Context, battleID string, input *UpdateBattleInput) (*battle.Battle, error)

	// DeleteBattle removes a battle entirely
	DeleteBattle(ctx context.Context, battleID string) error

	// AddCreature appends a creature to the roster and re-sorts by initiative
	AddCreature(ctx context.Context, battleID string, input *AddCreatureInput) (*battle.Battle, error)

	// AddCreatureFromCampaign instantiates a campaign template into the battle
	AddCreatureFromCampaign(ctx context.Context, battleID, templateID string, position *battle.GridPosition) (*battle.Battle, error)

	// UpdateCreature merges the provided fields onto a creature
	UpdateCreature(ctx context.Context, battleID, creatureID string, input *UpdateCreatureInput) (*battle.Battle, error)

	// RemoveCreature removes a creature from the roster
	RemoveCreature(ctx context.Context, battleID, creatureID string) (*battle.Battle, error)

	// MoveCreature relocates a creature on the grid
	MoveCreature(ctx context.Context, battleID, creatureID string, position battle.GridPosition) (*battle.Battle, error)

	// NextTurn advances the turn pointer, bumping the round on wraparound
	NextTurn(ctx context.Context, battleID string) (*battle.Battle, error)

	// StartBattle activates the battle and resets turn and round
	StartBattle(ctx context.Context, battleID string) (*battle.Battle, error)

	// Undo reverts the most recent recorded mutation
	Undo(ctx context.Context, battleID string) (*battle.Battle, error)

	// SetTerrain overwrites terrain on a set of map cells
	SetTerrain(ctx context.Context, battleID string, input *SetTerrainInput) (*battle.Battle, error)

	// ToggleDoor flips the open state of a door cell
	ToggleDoor(ctx context.Context, battleID string, position battle.GridPosition) (*battle.Battle, error)

	// UpdateSceneDescription sets the theatre-of-mind scene text
	UpdateSceneDescription(ctx context.Context, battleID, description string) (*battle.Battle, error)

	// UpdateCreaturePositions sets the theatre-of-mind positions text
	UpdateCreaturePositions(ctx context.Context, battleID, positions string) (*battle.Battle, error)
}

// TemplateSource instantiates creatures from campaign templates and accepts
// best-effort registrations of battle content into the template library.
type TemplateSource interface {
	// InstantiateCreature builds a fresh creature from a template
	InstantiateCreature(ctx context.Context, templateID string, position *battle.GridPosition) (*battle.Creature, error)

	// RegisterCreature saves a creature as a reusable template
	RegisterCreature(ctx context.Context, creature *battle.Creature, source string) error

	// RegisterMap saves a map as a reusable template
	RegisterMap(ctx context.Context, m *battle.Map, source string) error
}

// CreateBattleInput contains data for creating a battle
type CreateBattleInput struct {
	Name             string
	Mode             battle.Mode // defaults to TheatreOfMind
	MapWidth         int
	MapHeight        int
	SceneDescription string
}

// UpdateBattleInput contains battle-level settings to change; nil fields are
// left untouched. Switching to GridBased allocates a map, switching to
// TheatreOfMind drops it.
type UpdateBattleInput struct {
	Name             *string
	Mode             *battle.Mode
	MapWidth         int
	MapHeight        int
	SceneDescription *string
}

// AddCreatureInput contains data for adding a creature
type AddCreatureInput struct {
	ID            string // assigned when empty
	Name          string
	HP            int
	MaxHP         int
	AC            int
	Initiative    int
	Stats         *battle.AbilityScores
	StatusEffects []battle.StatusEffect
	Position      *battle.GridPosition
	Size          battle.Size
	IsPlayer      bool
}

// UpdateCreatureInput contains creature fields to merge; nil fields are left
// untouched. A position provided here is not legality-checked, only
// MoveCreature validates movement.
type UpdateCreatureInput struct {
	Name          *string
	HP            *int
	MaxHP         *int
	AC            *int
	Initiative    *int
	Stats         *battle.AbilityScores
	StatusEffects *[]battle.StatusEffect
	Position      *battle.GridPosition
	Size          *battle.Size
	IsPlayer      *bool
}

// SetTerrainInput contains a terrain edit for one or more cells
type SetTerrainInput struct {
	Positions    []battle.GridPosition
	Terrain      battle.Terrain
	DoorOpen     *bool
	Elevation    *int
	HazardDamage *int
}

type service struct {
	// mu serializes mutations so operations on a battle observe a total
	// order equal to call order
	mu sync.Mutex

	repository    battles.Repository
	templates     TemplateSource
	uuidGenerator uuid.Generator
	actionSeq     *battle.Sequence
	log           *logrus.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    battles.Repository
	Templates     TemplateSource // optional; campaign features disabled when nil
	UUIDGenerator uuid.Generator
	Logger        *logrus.Logger
}

// NewService creates a new battle service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		repository: cfg.Repository,
		templates:  cfg.Templates,
		actionSeq:  &battle.Sequence{},
		log:        cfg.Logger,
	}

	if cfg.UUIDGenerator != nil {
		svc.uuidGenerator = cfg.UUIDGenerator
	} else {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.log == nil {
		svc.log = logrus.StandardLogger()
	}

	return svc
}

// CreateBattle creates a new battle
func (s *service) CreateBattle(ctx context.Context, input *CreateBattleInput) (*battle.Battle, error) {
	if input == nil {
		return nil, apperrors.InvalidArgument("input cannot be nil")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.Validation("battle name is required")
	}

	mode := input.Mode
	if mode == "" {
		mode = battle.ModeTheatreOfMind
	}
	if mode != battle.ModeTheatreOfMind && mode != battle.ModeGridBased {
		return nil, apperrors.Validationf("unknown battle mode: %s", mode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := battle.New(s.uuidGenerator.New(), input.Name, mode, input.MapWidth, input.MapHeight, input.SceneDescription)
	if err := s.repository.Create(ctx, b); err != nil {
		return nil, apperrors.Wrap(err, "failed to create battle")
	}

	if mode == battle.ModeGridBased && s.templates != nil {
		if err := s.templates.RegisterMap(ctx, b.Map, b.Name); err != nil {
			s.log.WithError(err).Warn("failed to register map to default campaign")
		}
	}

	return b.Clone(), nil
}

// GetBattle retrieves a battle by ID
func (s *service) GetBattle(ctx context.Context, battleID string) (*battle.Battle, error) {
	if strings.TrimSpace(battleID) == "" {
		return nil, apperrors.InvalidArgument("battle ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repository.Get(ctx, battleID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get battle '%s'", battleID)
	}

	return b.Clone(), nil
}

// ListBattles returns summaries of every battle
func (s *service) ListBattles(ctx context.Context) ([]*battle.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list battles")
	}

	summaries := make([]*battle.Summary, len(all))
	for i, b := range all {
		summaries[i] = b.Summary()
	}

	return summaries, nil
}

// UpdateBattle changes battle-level settings
func (s *service) UpdateBattle(ctx context.Context, battleID string, input *UpdateBattleInput) (*battle.Battle, error) {
	if input == nil {
		return nil, apperrors.InvalidArgument("input cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repository.Get(ctx, battleID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get battle '%s'", battleID)
	}

	previous := &battle.Snapshot{Config: &battle.ConfigSnapshot{
		Name:             b.Name,
		Mode:             b.Mode,
		Map:              b.Map.Clone(),
		SceneDescription: b.SceneDescription,
	}}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperrors.Validation("battle name cannot be empty")
		}
		b.Name = *input.Name
	}
	if input.Mode != nil && *input.Mode != b.Mode {
		switch *input.Mode {
		case battle.ModeGridBased:
			width, height := input.MapWidth, input.MapHeight
			if width <= 0 {
				width = battle.DefaultMapWidth
			}
			if height <= 0 {
				height = battle.DefaultMapHeight
			}
			b.Mode = battle.ModeGridBased
			b.Map = battle.NewEmptyMap(width, height, "Battle map for "+b.Name)
		case battle.ModeTheatreOfMind:
			b.Mode = battle.ModeTheatreOfMind
			b.Map = nil
		default:
			return nil, apperrors.Validationf("unknown battle mode: %s", *input.Mode)
		}
	}
	if input.SceneDescription != nil {
		b.SceneDescription = *input.SceneDescription
	}

	b.History = append(b.History, battle.NewAction(s.actionSeq, battle.ActionUpdateBattle, input, previous))

	return b.Clone(), nil
}

// DeleteBattle removes a battle entirely
func (s *service) DeleteBattle(ctx context.Context, battleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repository.Delete(ctx, battleID); err != nil {
		return apperrors.Wrapf(err, "failed to delete battle '%s'", battleID)
	}
	return nil
}

// NextTurn advances the turn pointer, bumping the round on wraparound
func (s *service) NextTurn(ctx context.Context, battleID string) (*battle.Battle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repository.Get(ctx, battleID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get battle '%s'", battleID)
	}

	if len(b.Creatures) == 0 {
		return nil, apperrors.ImpossibleCommand("cannot advance turn: battle has no creatures")
	}

	previous := &battle.Snapshot{Turn: &battle.TurnSnapshot{CurrentTurn: b.CurrentTurn, Round: b.Round}}

	b.CurrentTurn = (b.CurrentTurn + 1) % len(b.Creatures)
	if b.CurrentTurn == 0 {
		b.Round++
	}
	b.History = append(b.History, battle.NewAction(s.actionSeq, battle.ActionNextTurn, struct{}{}, previous))

	return b.Clone(), nil
}

// StartBattle activates the battle. This is a hard reset of turn and round,
// not a resume.
func (s *service) StartBattle(ctx context.Context, battleID string) (*battle.Battle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repository.Get(ctx, battleID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get battle '%s'", battleID)
	}

	b.IsActive = true
	b.CurrentTurn = 0
	b.Round = 1

	return b.Clone(), nil
}

// Undo reverts the most recent recorded mutation
func (s *service) Undo(ctx context.Context, battleID string) (*battle.Battle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repository.Get(ctx, battleID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get battle '%s'", battleID)
	}

	action := b.PopAction()
	if action == nil {
		return nil, apperrors.NotFound("no actions to undo")
	}
	b.Restore(action.Previous)

	return b.Clone(), nil
}

// UpdateSceneDescription sets the theatre-of-mind scene text
func (s *service) UpdateSceneDescription(ctx context.Context, battleID, description string) (*battle.Battle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repository.Get(ctx, battleID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get battle '%s'", battleID)
	}

	prior := b.SceneDescription
	previous := &battle.Snapshot{Scene: &prior}

	b.SceneDescription = description
	b.History = append(b.History, battle.NewAction(s.actionSeq, battle.ActionUpdateSceneDescription,
		map[string]string{"description": description}, previous))

	return b.Clone(), nil
}

// UpdateCreaturePositions sets the theatre-of-mind positions text
func (s *service) UpdateCreaturePositions(ctx context.Context, battleID, positions string) (*battle.Battle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.repository.Get(ctx, battleID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get battle '%s'", battleID)
	}

	prior := b.CreaturePositions
	previous := &battle.Snapshot{Positions: &prior}

	b.CreaturePositions = positions
	b.History = append(b.History, battle.NewAction(s.actionSeq, battle.ActionUpdateCreaturePositions,
		map[string]string{"positions": positions}, previous))

	return b.Clone(), nil
}
