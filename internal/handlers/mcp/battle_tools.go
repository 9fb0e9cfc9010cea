package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tabletopforge/battletracker/internal/domain/game/battle"
	battleservice "github.com/tabletopforge/battletracker/internal/services/battle"
)

// BattleResult wraps the battle state returned by every mutating tool
type BattleResult struct {
	Battle *battle.Battle `json:"battle"`
}

type CreateBattleInput struct {
	Name             string `json:"name" jsonschema:"battle name"`
	Mode             string `json:"mode,omitempty" jsonschema:"theatre-of-mind or grid-based"`
	MapWidth         int    `json:"mapWidth,omitempty" jsonschema:"grid width, defaults to 25"`
	MapHeight        int    `json:"mapHeight,omitempty" jsonschema:"grid height, defaults to 25"`
	SceneDescription string `json:"sceneDescription,omitempty" jsonschema:"narrative scene text"`
}

type BattleIDInput struct {
	BattleID string `json:"battleId" jsonschema:"battle id"`
}

type UpdateBattleInput struct {
	BattleID         string  `json:"battleId" jsonschema:"battle id"`
	Name             *string `json:"name,omitempty" jsonschema:"new battle name"`
	Mode             *string `json:"mode,omitempty" jsonschema:"new mode, switching allocates or drops the map"`
	MapWidth         int     `json:"mapWidth,omitempty" jsonschema:"grid width when switching to grid-based"`
	MapHeight        int     `json:"mapHeight,omitempty" jsonschema:"grid height when switching to grid-based"`
	SceneDescription *string `json:"sceneDescription,omitempty" jsonschema:"new scene text"`
}

type ListBattlesInput struct{}

type ListBattlesResult struct {
	Battles []*battle.Summary `json:"battles"`
}

type AddCreatureInput struct {
	BattleID      string                `json:"battleId" jsonschema:"battle id"`
	Name          string                `json:"name" jsonschema:"creature name"`
	HP            int                   `json:"hp" jsonschema:"current hit points"`
	MaxHP         int                   `json:"maxHp" jsonschema:"maximum hit points"`
	AC            int                   `json:"ac,omitempty" jsonschema:"armor class, defaults to 10"`
	Initiative    int                   `json:"initiative,omitempty" jsonschema:"initiative score"`
	Stats         *battle.AbilityScores `json:"stats,omitempty" jsonschema:"ability scores"`
	StatusEffects []battle.StatusEffect `json:"statusEffects,omitempty" jsonschema:"active conditions"`
	Position      *battle.GridPosition  `json:"position,omitempty" jsonschema:"starting grid position"`
	Size          string                `json:"size,omitempty" jsonschema:"size category, defaults to Medium"`
	IsPlayer      bool                  `json:"isPlayer,omitempty" jsonschema:"true for player characters"`
}

type UpdateCreatureInput struct {
	BattleID      string                 `json:"battleId" jsonschema:"battle id"`
	CreatureID    string                 `json:"creatureId" jsonschema:"creature id"`
	Name          *string                `json:"name,omitempty"`
	HP            *int                   `json:"hp,omitempty"`
	MaxHP         *int                   `json:"maxHp,omitempty"`
	AC            *int                   `json:"ac,omitempty"`
	Initiative    *int                   `json:"initiative,omitempty"`
	Stats         *battle.AbilityScores  `json:"stats,omitempty"`
	StatusEffects *[]battle.StatusEffect `json:"statusEffects,omitempty"`
	Position      *battle.GridPosition   `json:"position,omitempty"`
	Size          *string                `json:"size,omitempty"`
	IsPlayer      *bool                  `json:"isPlayer,omitempty"`
}

type CreatureIDInput struct {
	BattleID   string `json:"battleId" jsonschema:"battle id"`
	CreatureID string `json:"creatureId" jsonschema:"creature id"`
}

type MoveCreatureInput struct {
	BattleID   string              `json:"battleId" jsonschema:"battle id"`
	CreatureID string              `json:"creatureId" jsonschema:"creature id"`
	Position   battle.GridPosition `json:"position" jsonschema:"destination grid position"`
}

type AddFromTemplateInput struct {
	BattleID   string               `json:"battleId" jsonschema:"battle id"`
	TemplateID string               `json:"templateId" jsonschema:"campaign creature template id"`
	Position   *battle.GridPosition `json:"position,omitempty" jsonschema:"starting grid position"`
}

type SetTerrainInput struct {
	BattleID     string                `json:"battleId" jsonschema:"battle id"`
	Positions    []battle.GridPosition `json:"positions" jsonschema:"cells to modify"`
	Terrain      string                `json:"terrain" jsonschema:"terrain type such as Wall, Door or Water"`
	DoorOpen     *bool                 `json:"doorOpen,omitempty" jsonschema:"initial door state for Door terrain"`
	Elevation    *int                  `json:"elevation,omitempty" jsonschema:"cell elevation"`
	HazardDamage *int                  `json:"hazardDamage,omitempty" jsonschema:"damage for Hazard terrain"`
}

type ToggleDoorInput struct {
	BattleID string              `json:"battleId" jsonschema:"battle id"`
	Position battle.GridPosition `json:"position" jsonschema:"door cell position"`
}

type SceneTextInput struct {
	BattleID string `json:"battleId" jsonschema:"battle id"`
	Text     string `json:"text" jsonschema:"replacement text"`
}

func registerBattleTools(server *mcp.Server, svc battleservice.Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_battle",
		Description: "Creates a new battle, theatre-of-mind or grid-based",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input CreateBattleInput) (*mcp.CallToolResult, BattleResult, error) {
		b, err := svc.CreateBattle(ctx, &battleservice.CreateBattleInput{
			Name:             input.Name,
			Mode:             battle.Mode(input.Mode),
			MapWidth:         input.MapWidth,
			MapHeight:        input.MapHeight,
			SceneDescription: input.SceneDescription,
		})
		if err != nil {
			return nil, BattleResult{}, err
		}
		return nil, BattleResult{Battle: b}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_battle",
		Description: "Returns the full state of a battle",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input BattleIDInput) (*mcp.CallToolResult, BattleResult, error) {
		b, err := svc.GetBattle(ctx, input.BattleID)
		if err != nil {
			return nil, BattleResult{}, err
		}
		return nil, BattleResult{Battle: b}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_battles",
		Description: "Lists every battle with roster size and round",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ ListBattlesInput) (*mcp.CallToolResult, ListBattlesResult, error) {
		summaries, err := svc.ListBattles(ctx)
		if err != nil {
			return nil, ListBattlesResult{}, err
		}
		return nil, ListBattlesResult{Battles: summaries}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_battle",
		Description: "Changes battle settings; switching mode allocates or drops the grid map",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateBattleInput) (*mcp.CallToolResult, BattleResult, error) {
		var mode *battle.Mode
		if input.Mode != nil {
			m := battle.Mode(*input.Mode)
			mode = &m
		}
		b, err := svc.UpdateBattle(ctx, input.BattleID, &battleservice.UpdateBattleInput{
			Name:             input.Name,
			Mode:             mode,
			MapWidth:         input.MapWidth,
			MapHeight:        input.MapHeight,
			SceneDescription: input.SceneDescription,
		})
		if err != nil {
			return nil, BattleResult{}, err
		}
		return nil, BattleResult{Battle: b}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_creature",
		Description: "Adds a creature to a battle; the roster re-sorts by initiative",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input AddCreatureInput) (*mcp.CallToolResult, BattleResult, error) {
		b, err := svc.AddCreature(ctx, input.BattleID, &battleservice.AddCreatureInput{
			Name:          input.Name,
			HP:            input.HP,
			MaxHP:         input.MaxHP,
			AC:            input.AC,
			Initiative:    input.Initiative,
			Stats:         input.Stats,
			StatusEffects: input.StatusEffects,
			Position:      input.Position,
			Size:          battle.Size(input.Size),
			IsPlayer:      input.IsPlayer,
		})
		if err != nil {
			return nil, BattleResult{}, err
		}
		return nil, BattleResult{Battle: b}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_creature_from_campaign",
		Description: "Instantiates a saved campaign creature template into a battle",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input AddFromTemplateInput) (*mcp.CallToolResult, BattleResult, error) {
		b, err := svc.AddCreatureFromCampaign(ctx, input.BattleID, input.TemplateID, input.Position)
		if err != nil {
			return nil, BattleResult{}, err
		}
		return nil, BattleResult{Battle: b}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_creature",
		Description: "Merges the provided fields onto a creature without reordering the roster",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input UpdateCreatureInput) (*mcp.CallToolResult, BattleResult, error) {
		var size *battle.Size
		if input.Size != nil {
			sz := battle.Size(*input.Size)
			size = &sz
		}
		b, err := svc.UpdateCreature(ctx, input.BattleID, input.CreatureID, &battleservice.UpdateCreatureInput{
			Name:          input.Name,
			HP:            input.HP,
			MaxHP:         input.MaxHP,
			AC:            input.AC,
			Initiative:    input.Initiative,
			Stats:         input.Stats,
			StatusEffects: input.StatusEffects,
			Position:      input.Position,
			Size:          size,
			IsPlayer:      input.IsPlayer,
		})
		if err != nil {
			return nil, BattleResult{}, err
		}
		return nil, BattleResult{Battle: b}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_creature",
		Description: "Removes a creature from the battle",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input CreatureIDInput) (*mcp.CallToolResult, BattleResult, error) {
		b, err := svc.RemoveCreature(ctx, input.BattleID, input.CreatureID)
		if err != nil {
			return nil, BattleResult{}, err
		}
		return nil, BattleResult{Battle: b}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "move_creature",
		Description: "Moves a creature on the grid, rejecting illegal destinations",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input MoveCreatureInput) (*mcp.CallToolResult, BattleResult, error) {
		b, err := svc.MoveCreature(ctx, input.BattleID, input.CreatureID, input.Position)
		if err != nil {
			return nil, BattleResult{}, err
		}
		return nil, BattleResult{Battle: b}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "next_turn",
		Description: "Advances to the next creature's turn, bumping the round on wraparound",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input BattleIDInput) (*mcp.CallToolResult, BattleResult, error) {
		b, err := svc.NextTurn(ctx, input.BattleID)
		if err != nil {
			return nil, BattleResult{}, err
		}
		return nil, BattleResult{Battle: b}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "start_battle",
		Description: "Activates a battle, resetting to the first turn of round one",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input BattleIDInput) (*mcp.CallToolResult, BattleResult, error) {
		b, err := svc.StartBattle(ctx, input.BattleID)
		if err != nil {
			return nil, BattleResult{}, err
		}
		return nil, BattleResult{Battle: b}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "undo_action",
		Description: "Reverts the most recent battle mutation",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input BattleIDInput) (*mcp.CallToolResult, BattleResult, error) {
		b, err := svc.Undo(ctx, input.BattleID)
		if err != nil {
			return nil, BattleResult{}, err
		}
		return nil, BattleResult{Battle: b}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_terrain",
		Description: "Sets terrain on map cells; all positions must be in bounds",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SetTerrainInput) (*mcp.CallToolResult, BattleResult, error) {
		b, err := svc.SetTerrain(ctx, input.BattleID, &battleservice.SetTerrainInput{
			Positions:    input.Positions,
			Terrain:      battle.Terrain(input.Terrain),
			DoorOpen:     input.DoorOpen,
			Elevation:    input.Elevation,
			HazardDamage: input.HazardDamage,
		})
		if err != nil {
			return nil, BattleResult{}, err
		}
		return nil, BattleResult{Battle: b}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "toggle_door",
		Description: "Opens or closes a door cell",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input ToggleDoorInput) (*mcp.CallToolResult, BattleResult, error) {
		b, err := svc.ToggleDoor(ctx, input.BattleID, input.Position)
		if err != nil {
			return nil, BattleResult{}, err
		}
		return nil, BattleResult{Battle: b}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_scene_description",
		Description: "Replaces the theatre-of-mind scene description",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SceneTextInput) (*mcp.CallToolResult, BattleResult, error) {
		b, err := svc.UpdateSceneDescription(ctx, input.BattleID, input.Text)
		if err != nil {
			return nil, BattleResult{}, err
		}
		return nil, BattleResult{Battle: b}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_creature_positions",
		Description: "Replaces the theatre-of-mind creature positions text",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SceneTextInput) (*mcp.CallToolResult, BattleResult, error) {
		b, err := svc.UpdateCreaturePositions(ctx, input.BattleID, input.Text)
		if err != nil {
			return nil, BattleResult{}, err
		}
		return nil, BattleResult{Battle: b}, nil
	})
}
