package dice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabletopforge/battletracker/internal/dice"
	"github.com/tabletopforge/battletracker/internal/errors"
	"github.com/tabletopforge/battletracker/internal/repositories/dicelog"
	diceservice "github.com/tabletopforge/battletracker/internal/services/dice"
)

func newTestService(t *testing.T) diceservice.Service {
	t.Helper()
	return diceservice.NewService(&diceservice.ServiceConfig{
		Roller:     dice.NewSeededRoller(42),
		Repository: dicelog.NewInMemoryRepository(dicelog.DefaultHistoryLimit),
	})
}

func TestRollRecordsHistory(t *testing.T) {
	svc := newTestService(t)

	roll, err := svc.Roll(context.Background(), &diceservice.RollInput{
		Notation:    "2d6+3",
		Description: "greatsword damage",
	})
	require.NoError(t, err)
	assert.Equal(t, "2d6+3", roll.Notation)

	rolls, err := svc.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, rolls, 1)
	assert.Equal(t, "greatsword damage", rolls[0].Description)
}

func TestHistoryNewestFirst(t *testing.T) {
	svc := newTestService(t)

	for _, notation := range []string{"1d4", "1d6", "1d8"} {
		_, err := svc.Roll(context.Background(), &diceservice.RollInput{Notation: notation})
		require.NoError(t, err)
	}

	rolls, err := svc.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, rolls, 3)
	assert.Equal(t, "1d8", rolls[0].Notation)
	assert.Equal(t, "1d4", rolls[2].Notation)
}

func TestHistoryLimit(t *testing.T) {
	svc := newTestService(t)

	for i := 0; i < 5; i++ {
		_, err := svc.Roll(context.Background(), &diceservice.RollInput{Notation: "1d20"})
		require.NoError(t, err)
	}

	rolls, err := svc.History(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, rolls, 2)

	rolls, err = svc.History(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, rolls, 5, "non-positive limit falls back to the default")
}

func TestRollAdvantage(t *testing.T) {
	svc := newTestService(t)

	roll, err := svc.Roll(context.Background(), &diceservice.RollInput{Advantage: true, Modifier: 4})
	require.NoError(t, err)
	require.Len(t, roll.Rolls, 2)
}

func TestRollAdvantageAndDisadvantageConflict(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Roll(context.Background(), &diceservice.RollInput{
		Notation:     "1d20",
		Advantage:    true,
		Disadvantage: true,
	})
	assert.True(t, errors.IsValidation(err))
}

func TestRollInvalidNotationNotRecorded(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Roll(context.Background(), &diceservice.RollInput{Notation: "banana"})
	require.Error(t, err)

	rolls, err := svc.History(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, rolls)
}
