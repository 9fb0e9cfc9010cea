// Package mcp exposes the battle tracker as Model Context Protocol tools so
// an LLM game master can run combat directly.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	battleservice "github.com/tabletopforge/battletracker/internal/services/battle"
	campaignservice "github.com/tabletopforge/battletracker/internal/services/campaign"
	diceservice "github.com/tabletopforge/battletracker/internal/services/dice"
)

const (
	serverName    = "battletracker"
	serverVersion = "1.0.0"
)

// Config holds the services the MCP tools call into
type Config struct {
	BattleService   battleservice.Service
	CampaignService campaignservice.Service
	DiceService     diceservice.Service
	Logger          *logrus.Logger
}

// NewServer builds an MCP server with every tracker tool registered
func NewServer(cfg *Config) *mcp.Server {
	if cfg.BattleService == nil {
		panic("battle service is required")
	}
	if cfg.CampaignService == nil {
		panic("campaign service is required")
	}
	if cfg.DiceService == nil {
		panic("dice service is required")
	}

	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	registerBattleTools(server, cfg.BattleService)
	registerCampaignTools(server, cfg.CampaignService)
	registerDiceTools(server, cfg.DiceService)

	return server
}

// RunStdio serves MCP over stdin/stdout until the context is cancelled
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
