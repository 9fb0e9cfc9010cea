package services

import (
	"github.com/sirupsen/logrus"

	"github.com/tabletopforge/battletracker/internal/clients/dnd5e"
	"github.com/tabletopforge/battletracker/internal/repositories/battles"
	"github.com/tabletopforge/battletracker/internal/repositories/campaigns"
	"github.com/tabletopforge/battletracker/internal/repositories/dicelog"
	battleService "github.com/tabletopforge/battletracker/internal/services/battle"
	campaignService "github.com/tabletopforge/battletracker/internal/services/campaign"
	diceService "github.com/tabletopforge/battletracker/internal/services/dice"
)

// Provider holds all service instances
type Provider struct {
	BattleService   battleService.Service
	CampaignService campaignService.Service
	DiceService     diceService.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	DNDClient          dnd5e.Client
	BattleRepository   battles.Repository
	CampaignRepository campaigns.Repository
	DiceLogRepository  dicelog.Repository
	Logger             *logrus.Logger
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	// Use in-memory repositories if none provided
	battleRepo := cfg.BattleRepository
	if battleRepo == nil {
		battleRepo = battles.NewInMemoryRepository()
	}

	campaignRepo := cfg.CampaignRepository
	if campaignRepo == nil {
		campaignRepo = campaigns.NewInMemoryRepository()
	}

	diceLogRepo := cfg.DiceLogRepository
	if diceLogRepo == nil {
		diceLogRepo = dicelog.NewInMemoryRepository(dicelog.DefaultHistoryLimit)
	}

	campaignSvc := campaignService.NewService(&campaignService.ServiceConfig{
		Repository: campaignRepo,
		DNDClient:  cfg.DNDClient,
		Logger:     cfg.Logger,
	})

	battleSvc := battleService.NewService(&battleService.ServiceConfig{
		Repository: battleRepo,
		Templates:  campaignSvc,
		Logger:     cfg.Logger,
	})

	diceSvc := diceService.NewService(&diceService.ServiceConfig{
		Repository: diceLogRepo,
		Logger:     cfg.Logger,
	})

	return &Provider{
		BattleService:   battleSvc,
		CampaignService: campaignSvc,
		DiceService:     diceSvc,
	}
}
