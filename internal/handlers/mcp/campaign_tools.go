package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tabletopforge/battletracker/internal/clients/dnd5e"
	"github.com/tabletopforge/battletracker/internal/domain/game/battle"
	"github.com/tabletopforge/battletracker/internal/domain/game/campaign"
	campaignservice "github.com/tabletopforge/battletracker/internal/services/campaign"
)

type CreateCampaignInput struct {
	Name        string `json:"name" jsonschema:"campaign name"`
	Description string `json:"description,omitempty" jsonschema:"campaign description"`
}

type CampaignResult struct {
	Campaign *campaign.Campaign `json:"campaign"`
}

type ListCampaignsInput struct{}

type ListCampaignsResult struct {
	Campaigns []*campaign.Campaign `json:"campaigns"`
}

type SaveCreatureInput struct {
	CampaignID  string           `json:"campaignId" jsonschema:"campaign id"`
	Name        string           `json:"name,omitempty" jsonschema:"template name, defaults to the creature's name"`
	Description string           `json:"description,omitempty" jsonschema:"template description"`
	Creature    *battle.Creature `json:"creature" jsonschema:"creature stat block to save"`
}

type CreatureTemplateResult struct {
	Template *campaign.CreatureTemplate `json:"template"`
}

type SaveMapInput struct {
	CampaignID  string      `json:"campaignId" jsonschema:"campaign id"`
	Name        string      `json:"name,omitempty" jsonschema:"template name"`
	Description string      `json:"description,omitempty" jsonschema:"template description"`
	Map         *battle.Map `json:"map" jsonschema:"map layout to save"`
}

type MapTemplateResult struct {
	Template *campaign.MapTemplate `json:"template"`
}

type ImportMonsterInput struct {
	MonsterKey string `json:"monsterKey" jsonschema:"SRD monster key, e.g. goblin or adult-red-dragon"`
}

type SearchMonstersInput struct {
	ChallengeRating float64 `json:"challengeRating" jsonschema:"challenge rating to search for, e.g. 0.25 or 5"`
}

type SearchMonstersResult struct {
	Monsters []*dnd5e.Monster `json:"monsters"`
}

func registerCampaignTools(server *mcp.Server, svc campaignservice.Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_campaign",
		Description: "Creates a campaign to hold reusable creature and map templates",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input CreateCampaignInput) (*mcp.CallToolResult, CampaignResult, error) {
		c, err := svc.CreateCampaign(ctx, &campaignservice.CreateCampaignInput{
			Name:        input.Name,
			Description: input.Description,
		})
		if err != nil {
			return nil, CampaignResult{}, err
		}
		return nil, CampaignResult{Campaign: c}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_campaigns",
		Description: "Lists every campaign with its saved templates",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ ListCampaignsInput) (*mcp.CallToolResult, ListCampaignsResult, error) {
		all, err := svc.ListCampaigns(ctx)
		if err != nil {
			return nil, ListCampaignsResult{}, err
		}
		return nil, ListCampaignsResult{Campaigns: all}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "save_creature_to_campaign",
		Description: "Saves a creature stat block as a reusable template",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SaveCreatureInput) (*mcp.CallToolResult, CreatureTemplateResult, error) {
		tpl, err := svc.SaveCreature(ctx, input.CampaignID, &campaignservice.SaveCreatureInput{
			Name:        input.Name,
			Description: input.Description,
			Creature:    input.Creature,
		})
		if err != nil {
			return nil, CreatureTemplateResult{}, err
		}
		return nil, CreatureTemplateResult{Template: tpl}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "save_map_to_campaign",
		Description: "Saves a battle map layout as a reusable template",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SaveMapInput) (*mcp.CallToolResult, MapTemplateResult, error) {
		tpl, err := svc.SaveMap(ctx, input.CampaignID, &campaignservice.SaveMapInput{
			Name:        input.Name,
			Description: input.Description,
			Map:         input.Map,
		})
		if err != nil {
			return nil, MapTemplateResult{}, err
		}
		return nil, MapTemplateResult{Template: tpl}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "import_monster",
		Description: "Imports a monster stat block from the 5e SRD into the default campaign",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input ImportMonsterInput) (*mcp.CallToolResult, CreatureTemplateResult, error) {
		tpl, err := svc.ImportMonster(ctx, input.MonsterKey)
		if err != nil {
			return nil, CreatureTemplateResult{}, err
		}
		return nil, CreatureTemplateResult{Template: tpl}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_monsters",
		Description: "Lists 5e SRD monsters at a challenge rating, as candidates for import_monster",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SearchMonstersInput) (*mcp.CallToolResult, SearchMonstersResult, error) {
		monsters, err := svc.SearchMonsters(ctx, input.ChallengeRating)
		if err != nil {
			return nil, SearchMonstersResult{}, err
		}
		return nil, SearchMonstersResult{Monsters: monsters}, nil
	})
}
