package dicelog_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabletopforge/battletracker/internal/repositories/dicelog"
)

func TestInMemoryNewestFirst(t *testing.T) {
	repo := dicelog.NewInMemoryRepository(0)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, testRoll("1d20", 17)))
	require.NoError(t, repo.Append(ctx, testRoll("1d8", 5)))

	rolls, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, rolls, 2)
	assert.Equal(t, "1d8", rolls[0].Notation)
	assert.Equal(t, "1d20", rolls[1].Notation)
}

func TestInMemoryListLimit(t *testing.T) {
	repo := dicelog.NewInMemoryRepository(0)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(ctx, testRoll(fmt.Sprintf("%dd6", i+1), i)))
	}

	rolls, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rolls, 2)
	assert.Equal(t, "5d6", rolls[0].Notation)
	assert.Equal(t, "4d6", rolls[1].Notation)

	// asking for more than exists returns everything
	rolls, err = repo.List(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, rolls, 5)
}

func TestInMemoryBounded(t *testing.T) {
	repo := dicelog.NewInMemoryRepository(3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(ctx, testRoll(fmt.Sprintf("%dd4", i+1), i)))
	}

	rolls, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, rolls, 3)
	assert.Equal(t, "5d4", rolls[0].Notation)
	assert.Equal(t, "3d4", rolls[2].Notation)
}
