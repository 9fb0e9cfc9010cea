package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tabletopforge/battletracker/internal/dice"
	diceservice "github.com/tabletopforge/battletracker/internal/services/dice"
)

type RollDiceInput struct {
	Notation     string `json:"notation" jsonschema:"dice notation such as 2d20+5 or 4d6kh3"`
	Modifier     int    `json:"modifier,omitempty" jsonschema:"flat modifier added to the total"`
	Description  string `json:"description,omitempty" jsonschema:"what the roll is for"`
	Advantage    bool   `json:"advantage,omitempty" jsonschema:"roll 2d20 keep highest; notation is ignored"`
	Disadvantage bool   `json:"disadvantage,omitempty" jsonschema:"roll 2d20 keep lowest; notation is ignored"`
}

type RollDiceResult struct {
	Roll *dice.Roll `json:"roll"`
}

type DiceHistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum rolls to return, defaults to 100"`
}

type DiceHistoryResult struct {
	Rolls []*dice.Roll `json:"rolls"`
}

func registerDiceTools(server *mcp.Server, svc diceservice.Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "roll_dice",
		Description: "Rolls dice using standard notation, with optional advantage or disadvantage",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input RollDiceInput) (*mcp.CallToolResult, RollDiceResult, error) {
		roll, err := svc.Roll(ctx, &diceservice.RollInput{
			Notation:     input.Notation,
			Modifier:     input.Modifier,
			Description:  input.Description,
			Advantage:    input.Advantage,
			Disadvantage: input.Disadvantage,
		})
		if err != nil {
			return nil, RollDiceResult{}, err
		}
		return nil, RollDiceResult{Roll: roll}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "dice_history",
		Description: "Returns recent dice rolls, newest first",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input DiceHistoryInput) (*mcp.CallToolResult, DiceHistoryResult, error) {
		rolls, err := svc.History(ctx, input.Limit)
		if err != nil {
			return nil, DiceHistoryResult{}, err
		}
		return nil, DiceHistoryResult{Rolls: rolls}, nil
	})
}
