package campaign

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tabletopforge/battletracker/internal/clients/dnd5e"
	"github.com/tabletopforge/battletracker/internal/domain/game/battle"
	"github.com/tabletopforge/battletracker/internal/domain/game/campaign"
	apperrors "github.com/tabletopforge/battletracker/internal/errors"
	"github.com/tabletopforge/battletracker/internal/repositories/campaigns"
	"github.com/tabletopforge/battletracker/internal/uuid"
)

// Service manages the campaign template library
type Service interface {
	// CreateCampaign creates a new campaign
	CreateCampaign(ctx context.Context, input *CreateCampaignInput) (*campaign.Campaign, error)

	// GetCampaign retrieves a campaign by ID
	GetCampaign(ctx context.Context, campaignID string) (*campaign.Campaign, error)

	// ListCampaigns returns every campaign
	ListCampaigns(ctx context.Context) ([]*campaign.Campaign, error)

	// DeleteCampaign removes a campaign; the default campaign cannot be deleted
	DeleteCampaign(ctx context.Context, campaignID string) error

	// SaveCreature stores a creature template in a campaign
	SaveCreature(ctx context.Context, campaignID string, input *SaveCreatureInput) (*campaign.CreatureTemplate, error)

	// DeleteCreature removes a creature template from a campaign
	DeleteCreature(ctx context.Context, campaignID, templateID string) error

	// SaveMap stores a map template in a campaign
	SaveMap(ctx context.Context, campaignID string, input *SaveMapInput) (*campaign.MapTemplate, error)

	// DeleteMap removes a map template from a campaign
	DeleteMap(ctx context.Context, campaignID, templateID string) error

	// ImportMonster fetches a monster from the 5e SRD and saves it as a
	// creature template in the default campaign
	ImportMonster(ctx context.Context, monsterKey string) (*campaign.CreatureTemplate, error)

	// SearchMonsters lists 5e SRD monsters at a challenge rating, as
	// candidates for ImportMonster
	SearchMonsters(ctx context.Context, challengeRating float64) ([]*dnd5e.Monster, error)

	// InstantiateCreature builds a battle-ready creature from a template in
	// any campaign, bumping the template's usage counter
	InstantiateCreature(ctx context.Context, templateID string, position *battle.GridPosition) (*battle.Creature, error)

	// RegisterCreature saves a creature into the default campaign, creating
	// the default campaign if needed
	RegisterCreature(ctx context.Context, creature *battle.Creature, source string) error

	// RegisterMap saves a map into the default campaign, creating the default
	// campaign if needed
	RegisterMap(ctx context.Context, m *battle.Map, source string) error
}

// CreateCampaignInput contains data for creating a campaign
type CreateCampaignInput struct {
	Name        string
	Description string
}

// SaveCreatureInput contains data for saving a creature template
type SaveCreatureInput struct {
	Name        string
	Description string
	Creature    *battle.Creature
}

// SaveMapInput contains data for saving a map template
type SaveMapInput struct {
	Name        string
	Description string
	Map         *battle.Map
}

type service struct {
	mu sync.Mutex

	repository    campaigns.Repository
	dndClient     dnd5e.Client
	uuidGenerator uuid.Generator
	log           *logrus.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    campaigns.Repository
	DNDClient     dnd5e.Client // optional; monster import disabled when nil
	UUIDGenerator uuid.Generator
	Logger        *logrus.Logger
}

// NewService creates a new campaign service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		repository: cfg.Repository,
		dndClient:  cfg.DNDClient,
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

// CreateCampaign creates a new campaign
func (s *service) CreateCampaign(ctx context.Context, input *CreateCampaignInput) (*campaign.Campaign, error) {
	if input == nil {
		return nil, apperrors.InvalidArgument("input cannot be nil")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.Validation("campaign name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixMilli()
	c := &campaign.Campaign{
		ID:          s.uuidGenerator.New(),
		Name:        input.Name,
		Description: input.Description,
		Creatures:   []*campaign.CreatureTemplate{},
		Maps:        []*campaign.MapTemplate{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repository.Create(ctx, c); err != nil {
		return nil, apperrors.Wrap(err, "failed to create campaign")
	}

	return c, nil
}

// GetCampaign retrieves a campaign by ID
func (s *service) GetCampaign(ctx context.Context, campaignID string) (*campaign.Campaign, error) {
	c, err := s.repository.Get(ctx, campaignID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get campaign '%s'", campaignID)
	}
	return c, nil
}

// ListCampaigns returns every campaign
func (s *service) ListCampaigns(ctx context.Context) ([]*campaign.Campaign, error) {
	all, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list campaigns")
	}
	return all, nil
}

// DeleteCampaign removes a campaign; the default campaign cannot be deleted
func (s *service) DeleteCampaign(ctx context.Context, campaignID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repository.Get(ctx, campaignID)
	if err != nil {
		return apperrors.Wrapf(err, "failed to get campaign '%s'", campaignID)
	}
	if c.IsDefault {
		return apperrors.ImpossibleCommand("the default campaign cannot be deleted")
	}

	return s.repository.Delete(ctx, campaignID)
}

// SaveCreature stores a creature template in a campaign
func (s *service) SaveCreature(ctx context.Context, campaignID string, input *SaveCreatureInput) (*campaign.CreatureTemplate, error) {
	if input == nil || input.Creature == nil {
		return nil, apperrors.InvalidArgument("creature is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repository.Get(ctx, campaignID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get campaign '%s'", campaignID)
	}

	tpl := s.buildCreatureTemplate(input.Name, input.Description, input.Creature)
	c.Creatures = append(c.Creatures, tpl)
	c.UpdatedAt = time.Now().UnixMilli()

	if err := s.repository.Update(ctx, c); err != nil {
		return nil, apperrors.Wrap(err, "failed to save creature template")
	}
	return tpl, nil
}

// DeleteCreature removes a creature template from a campaign
func (s *service) DeleteCreature(ctx context.Context, campaignID, templateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repository.Get(ctx, campaignID)
	if err != nil {
		return apperrors.Wrapf(err, "failed to get campaign '%s'", campaignID)
	}

	idx := -1
	for i, tpl := range c.Creatures {
		if tpl.ID == templateID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperrors.NotFoundf("creature template '%s' not found in campaign '%s'", templateID, campaignID)
	}

	c.Creatures = append(c.Creatures[:idx], c.Creatures[idx+1:]...)
	c.UpdatedAt = time.Now().UnixMilli()

	return s.repository.Update(ctx, c)
}

// SaveMap stores a map template in a campaign
func (s *service) SaveMap(ctx context.Context, campaignID string, input *SaveMapInput) (*campaign.MapTemplate, error) {
	if input == nil || input.Map == nil {
		return nil, apperrors.InvalidArgument("map is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repository.Get(ctx, campaignID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get campaign '%s'", campaignID)
	}

	tpl := s.buildMapTemplate(input.Name, input.Description, input.Map)
	c.Maps = append(c.Maps, tpl)
	c.UpdatedAt = time.Now().UnixMilli()

	if err := s.repository.Update(ctx, c); err != nil {
		return nil, apperrors.Wrap(err, "failed to save map template")
	}
	return tpl, nil
}

// DeleteMap removes a map template from a campaign
func (s *service) DeleteMap(ctx context.Context, campaignID, templateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.repository.Get(ctx, campaignID)
	if err != nil {
		return apperrors.Wrapf(err, "failed to get campaign '%s'", campaignID)
	}

	idx := -1
	for i, tpl := range c.Maps {
		if tpl.ID == templateID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperrors.NotFoundf("map template '%s' not found in campaign '%s'", templateID, campaignID)
	}

	c.Maps = append(c.Maps[:idx], c.Maps[idx+1:]...)
	c.UpdatedAt = time.Now().UnixMilli()

	return s.repository.Update(ctx, c)
}

// ImportMonster fetches a monster from the 5e SRD and saves it as a creature
// template in the default campaign
func (s *service) ImportMonster(ctx context.Context, monsterKey string) (*campaign.CreatureTemplate, error) {
	if s.dndClient == nil {
		return nil, apperrors.ImpossibleCommand("monster import is not configured")
	}
	if strings.TrimSpace(monsterKey) == "" {
		return nil, apperrors.InvalidArgument("monster key is required")
	}

	monster, err := s.dndClient.GetMonster(monsterKey)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to fetch monster '%s'", monsterKey)
	}

	creature := &battle.Creature{
		Name:          monster.Name,
		HP:            monster.HitPoints,
		MaxHP:         monster.HitPoints,
		AC:            monster.ArmorClass,
		Size:          battle.SizeMedium,
		StatusEffects: []battle.StatusEffect{},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.ensureDefaultCampaign(ctx)
	if err != nil {
		return nil, err
	}

	tpl := s.buildCreatureTemplate(monster.Name, monster.Type, creature)
	c.Creatures = append(c.Creatures, tpl)
	c.UpdatedAt = time.Now().UnixMilli()

	if err := s.repository.Update(ctx, c); err != nil {
		return nil, apperrors.Wrap(err, "failed to save imported monster")
	}
	return tpl, nil
}

// SearchMonsters lists 5e SRD monsters at a challenge rating
func (s *service) SearchMonsters(ctx context.Context, challengeRating float64) ([]*dnd5e.Monster, error) {
	if s.dndClient == nil {
		return nil, apperrors.ImpossibleCommand("monster import is not configured")
	}
	if challengeRating < 0 {
		return nil, apperrors.Validation("challenge rating cannot be negative")
	}

	monsters, err := s.dndClient.ListMonstersByCR(challengeRating)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to list monsters at CR %g", challengeRating)
	}
	return monsters, nil
}

// InstantiateCreature builds a battle-ready creature from a template in any
// campaign, bumping the template's usage counter
func (s *service) InstantiateCreature(ctx context.Context, templateID string, position *battle.GridPosition) (*battle.Creature, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list campaigns")
	}

	for _, c := range all {
		tpl := c.CreatureByID(templateID)
		if tpl == nil {
			continue
		}

		tpl.UsageCount++
		tpl.LastUsed = time.Now().UnixMilli()
		if err := s.repository.Update(ctx, c); err != nil {
			s.log.WithError(err).WithField("template", templateID).
				Warn("failed to record template usage")
		}

		return tpl.Instantiate(s.uuidGenerator.New(), position), nil
	}

	return nil, apperrors.NotFoundf("creature template '%s' not found", templateID)
}

// RegisterCreature saves a creature into the default campaign
func (s *service) RegisterCreature(ctx context.Context, creature *battle.Creature, source string) error {
	if creature == nil {
		return apperrors.InvalidArgument("creature is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.ensureDefaultCampaign(ctx)
	if err != nil {
		return err
	}

	description := ""
	if source != "" {
		description = "Added during " + source
	}
	c.Creatures = append(c.Creatures, s.buildCreatureTemplate(creature.Name, description, creature))
	c.UpdatedAt = time.Now().UnixMilli()

	return s.repository.Update(ctx, c)
}

// RegisterMap saves a map into the default campaign
func (s *service) RegisterMap(ctx context.Context, m *battle.Map, source string) error {
	if m == nil {
		return apperrors.InvalidArgument("map is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.ensureDefaultCampaign(ctx)
	if err != nil {
		return err
	}

	name := m.Description
	if name == "" {
		name = "Untitled map"
	}
	description := ""
	if source != "" {
		description = "Created for " + source
	}
	c.Maps = append(c.Maps, s.buildMapTemplate(name, description, m))
	c.UpdatedAt = time.Now().UnixMilli()

	return s.repository.Update(ctx, c)
}

// ensureDefaultCampaign returns the default campaign, creating it on first use
func (s *service) ensureDefaultCampaign(ctx context.Context) (*campaign.Campaign, error) {
	c, err := s.repository.GetDefault(ctx)
	if err == nil {
		return c, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, apperrors.Wrap(err, "failed to get default campaign")
	}

	now := time.Now().UnixMilli()
	c = &campaign.Campaign{
		ID:          s.uuidGenerator.New(),
		Name:        campaign.DefaultName,
		Description: "Automatically managed library of creatures and maps",
		IsDefault:   true,
		Creatures:   []*campaign.CreatureTemplate{},
		Maps:        []*campaign.MapTemplate{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repository.Create(ctx, c); err != nil {
		return nil, apperrors.Wrap(err, "failed to create default campaign")
	}

	s.log.Info("created default campaign")
	return c, nil
}

func (s *service) buildCreatureTemplate(name, description string, creature *battle.Creature) *campaign.CreatureTemplate {
	tpl := creature.Clone()
	tpl.Position = nil
	if name == "" {
		name = creature.Name
	}
	return &campaign.CreatureTemplate{
		ID:          s.uuidGenerator.New(),
		Name:        name,
		Description: description,
		Template:    tpl,
		CreatedAt:   time.Now().UnixMilli(),
	}
}

func (s *service) buildMapTemplate(name, description string, m *battle.Map) *campaign.MapTemplate {
	return &campaign.MapTemplate{
		ID:          s.uuidGenerator.New(),
		Name:        name,
		Description: description,
		Template:    m.Clone(),
		CreatedAt:   time.Now().UnixMilli(),
	}
}
