package campaign_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tabletopforge/battletracker/internal/clients/dnd5e"
	mockdnd5e "github.com/tabletopforge/battletracker/internal/clients/dnd5e/mock"
	"github.com/tabletopforge/battletracker/internal/domain/game/battle"
	"github.com/tabletopforge/battletracker/internal/domain/game/campaign"
	"github.com/tabletopforge/battletracker/internal/errors"
	"github.com/tabletopforge/battletracker/internal/repositories/campaigns"
	campaignservice "github.com/tabletopforge/battletracker/internal/services/campaign"
)

func newTestService(t *testing.T, client dnd5e.Client) campaignservice.Service {
	t.Helper()
	return campaignservice.NewService(&campaignservice.ServiceConfig{
		Repository: campaigns.NewInMemoryRepository(),
		DNDClient:  client,
	})
}

func TestCreateCampaign(t *testing.T) {
	svc := newTestService(t, nil)

	c, err := svc.CreateCampaign(context.Background(), &campaignservice.CreateCampaignInput{
		Name:        "Curse of the Crypt",
		Description: "A dungeon crawl",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Curse of the Crypt", c.Name)
	assert.False(t, c.IsDefault)
	assert.Positive(t, c.CreatedAt)
	assert.Empty(t, c.Creatures)
	assert.Empty(t, c.Maps)
}

func TestCreateCampaignValidation(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.CreateCampaign(context.Background(), &campaignservice.CreateCampaignInput{Name: " "})
	assert.True(t, errors.IsValidation(err))
}

func TestRegisterCreatureBootstrapsDefaultCampaign(t *testing.T) {
	svc := newTestService(t, nil)

	err := svc.RegisterCreature(context.Background(), &battle.Creature{
		ID: "c1", Name: "Goblin", HP: 7, MaxHP: 7, AC: 15, Size: battle.SizeSmall,
	}, "Ambush at the Bridge")
	require.NoError(t, err)

	all, err := svc.ListCampaigns(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)

	def := all[0]
	assert.Equal(t, campaign.DefaultName, def.Name)
	assert.True(t, def.IsDefault)
	require.Len(t, def.Creatures, 1)
	assert.Equal(t, "Goblin", def.Creatures[0].Name)
	assert.Equal(t, "Added during Ambush at the Bridge", def.Creatures[0].Description)
}

func TestRegisterCreatureReusesDefaultCampaign(t *testing.T) {
	svc := newTestService(t, nil)

	require.NoError(t, svc.RegisterCreature(context.Background(), &battle.Creature{ID: "a", Name: "Goblin", MaxHP: 7}, ""))
	require.NoError(t, svc.RegisterCreature(context.Background(), &battle.Creature{ID: "b", Name: "Orc", MaxHP: 15}, ""))

	all, err := svc.ListCampaigns(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1, "only one default campaign")
	assert.Len(t, all[0].Creatures, 2)
}

func TestRegisterMap(t *testing.T) {
	svc := newTestService(t, nil)

	m := battle.NewEmptyMap(10, 10, "Battle map for Crypt")
	require.NoError(t, svc.RegisterMap(context.Background(), m, "Crypt"))

	all, err := svc.ListCampaigns(context.Background())
	require.NoError(t, err)
	require.Len(t, all[0].Maps, 1)
	assert.Equal(t, "Battle map for Crypt", all[0].Maps[0].Name)
	assert.Equal(t, 10, all[0].Maps[0].Template.Width)
}

func TestSavedTemplateIsDetachedFromSource(t *testing.T) {
	svc := newTestService(t, nil)

	pos := battle.GridPosition{X: 2, Y: 2}
	creature := &battle.Creature{ID: "c1", Name: "Goblin", HP: 3, MaxHP: 7, Position: &pos}
	require.NoError(t, svc.RegisterCreature(context.Background(), creature, ""))

	creature.Name = "Mutated Goblin"

	all, _ := svc.ListCampaigns(context.Background())
	tpl := all[0].Creatures[0]
	assert.Equal(t, "Goblin", tpl.Template.Name)
	assert.Nil(t, tpl.Template.Position, "templates never carry a battle position")
}

func TestInstantiateCreature(t *testing.T) {
	svc := newTestService(t, nil)

	require.NoError(t, svc.RegisterCreature(context.Background(), &battle.Creature{
		ID: "c1", Name: "Goblin", HP: 2, MaxHP: 7, AC: 15,
		StatusEffects: []battle.StatusEffect{{Name: "Poisoned"}},
	}, ""))

	all, _ := svc.ListCampaigns(context.Background())
	templateID := all[0].Creatures[0].ID

	pos := &battle.GridPosition{X: 4, Y: 4}
	c, err := svc.InstantiateCreature(context.Background(), templateID, pos)
	require.NoError(t, err)

	assert.NotEqual(t, "c1", c.ID, "instances get fresh ids")
	assert.Equal(t, 7, c.HP, "instances start at full HP")
	assert.Empty(t, c.StatusEffects)
	assert.Equal(t, pos, c.Position)

	all, _ = svc.ListCampaigns(context.Background())
	tpl := all[0].Creatures[0]
	assert.Equal(t, 1, tpl.UsageCount)
	assert.Positive(t, tpl.LastUsed)
}

func TestInstantiateCreatureNotFound(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.InstantiateCreature(context.Background(), "missing", nil)
	assert.True(t, errors.IsNotFound(err))
}

func TestSaveAndDeleteCreatureTemplate(t *testing.T) {
	svc := newTestService(t, nil)

	c, err := svc.CreateCampaign(context.Background(), &campaignservice.CreateCampaignInput{Name: "Homebrew"})
	require.NoError(t, err)

	tpl, err := svc.SaveCreature(context.Background(), c.ID, &campaignservice.SaveCreatureInput{
		Name:     "Elite Goblin",
		Creature: &battle.Creature{Name: "Goblin", MaxHP: 14, AC: 17},
	})
	require.NoError(t, err)
	assert.Equal(t, "Elite Goblin", tpl.Name)

	require.NoError(t, svc.DeleteCreature(context.Background(), c.ID, tpl.ID))

	err = svc.DeleteCreature(context.Background(), c.ID, tpl.ID)
	assert.True(t, errors.IsNotFound(err))
}

func TestSaveAndDeleteMapTemplate(t *testing.T) {
	svc := newTestService(t, nil)

	c, err := svc.CreateCampaign(context.Background(), &campaignservice.CreateCampaignInput{Name: "Homebrew"})
	require.NoError(t, err)

	tpl, err := svc.SaveMap(context.Background(), c.ID, &campaignservice.SaveMapInput{
		Name: "Throne Room",
		Map:  battle.NewEmptyMap(20, 20, ""),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMap(context.Background(), c.ID, tpl.ID))

	err = svc.DeleteMap(context.Background(), c.ID, tpl.ID)
	assert.True(t, errors.IsNotFound(err))
}

func TestDeleteCampaignProtectsDefault(t *testing.T) {
	svc := newTestService(t, nil)

	require.NoError(t, svc.RegisterCreature(context.Background(), &battle.Creature{ID: "a", Name: "Goblin", MaxHP: 7}, ""))
	all, _ := svc.ListCampaigns(context.Background())

	err := svc.DeleteCampaign(context.Background(), all[0].ID)
	assert.True(t, errors.IsImpossibleCommand(err))

	c, err := svc.CreateCampaign(context.Background(), &campaignservice.CreateCampaignInput{Name: "Disposable"})
	require.NoError(t, err)
	assert.NoError(t, svc.DeleteCampaign(context.Background(), c.ID))
}

func TestImportMonster(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mockdnd5e.NewMockClient(ctrl)
	client.EXPECT().GetMonster("goblin").Return(&dnd5e.Monster{
		Key:             "goblin",
		Name:            "Goblin",
		Type:            "humanoid",
		ArmorClass:      15,
		HitPoints:       7,
		HitDice:         "2d6",
		ChallengeRating: 0.25,
	}, nil)

	svc := newTestService(t, client)

	tpl, err := svc.ImportMonster(context.Background(), "goblin")
	require.NoError(t, err)

	assert.Equal(t, "Goblin", tpl.Name)
	assert.Equal(t, "humanoid", tpl.Description)
	require.NotNil(t, tpl.Template)
	assert.Equal(t, 7, tpl.Template.MaxHP)
	assert.Equal(t, 7, tpl.Template.HP)
	assert.Equal(t, 15, tpl.Template.AC)

	all, err := svc.ListCampaigns(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsDefault, "imports land in the default campaign")
}

func TestImportMonsterUpstreamFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mockdnd5e.NewMockClient(ctrl)
	client.EXPECT().GetMonster("tarrasque").Return(nil, errors.Internal("api unreachable"))

	svc := newTestService(t, client)

	_, err := svc.ImportMonster(context.Background(), "tarrasque")
	require.Error(t, err)
}

func TestImportMonsterWithoutClient(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.ImportMonster(context.Background(), "goblin")
	assert.True(t, errors.IsImpossibleCommand(err))
}

func TestSearchMonsters(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mockdnd5e.NewMockClient(ctrl)
	client.EXPECT().ListMonstersByCR(0.25).Return([]*dnd5e.Monster{
		{Key: "goblin", Name: "Goblin", ChallengeRating: 0.25},
		{Key: "skeleton", Name: "Skeleton", ChallengeRating: 0.25},
	}, nil)

	svc := newTestService(t, client)

	monsters, err := svc.SearchMonsters(context.Background(), 0.25)
	require.NoError(t, err)
	require.Len(t, monsters, 2)
	assert.Equal(t, "goblin", monsters[0].Key)
}

func TestSearchMonstersValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := newTestService(t, mockdnd5e.NewMockClient(ctrl))

	_, err := svc.SearchMonsters(context.Background(), -1)
	assert.True(t, errors.IsValidation(err))
}

func TestSearchMonstersWithoutClient(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.SearchMonsters(context.Background(), 1)
	assert.True(t, errors.IsImpossibleCommand(err))
}
