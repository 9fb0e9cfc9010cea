package mcp_test

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabletopforge/battletracker/internal/handlers/mcp"
	"github.com/tabletopforge/battletracker/internal/services"
)

func newQuietProvider() *services.Provider {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return services.NewProvider(&services.ProviderConfig{Logger: log})
}

func TestNewServer(t *testing.T) {
	provider := newQuietProvider()

	server := mcp.NewServer(&mcp.Config{
		BattleService:   provider.BattleService,
		CampaignService: provider.CampaignService,
		DiceService:     provider.DiceService,
	})
	require.NotNil(t, server)
}

func TestNewServerRequiresServices(t *testing.T) {
	provider := newQuietProvider()

	assert.Panics(t, func() {
		mcp.NewServer(&mcp.Config{
			CampaignService: provider.CampaignService,
			DiceService:     provider.DiceService,
		})
	})
	assert.Panics(t, func() {
		mcp.NewServer(&mcp.Config{
			BattleService: provider.BattleService,
			DiceService:   provider.DiceService,
		})
	})
	assert.Panics(t, func() {
		mcp.NewServer(&mcp.Config{
			BattleService:   provider.BattleService,
			CampaignService: provider.CampaignService,
		})
	})
}
