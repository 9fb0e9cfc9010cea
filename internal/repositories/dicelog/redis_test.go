package dicelog_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabletopforge/battletracker/internal/dice"
	"github.com/tabletopforge/battletracker/internal/repositories/dicelog"
)

func testRoll(notation string, total int) *dice.Roll {
	return &dice.Roll{
		Notation:  notation,
		Rolls:     []int{total},
		Total:     total,
		Timestamp: 1700000000000,
	}
}

func TestRedisAppend(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := dicelog.NewRedisRepository(&dicelog.RedisRepoConfig{Client: client, Limit: 50})

	roll := testRoll("1d20", 17)
	data, err := json.Marshal(roll)
	require.NoError(t, err)

	mock.ExpectTxPipeline()
	mock.ExpectLPush("dice:rolls", data).SetVal(1)
	mock.ExpectLTrim("dice:rolls", 0, 49).SetVal("OK")
	mock.ExpectTxPipelineExec()

	require.NoError(t, repo.Append(context.Background(), roll))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisAppendDefaultLimit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := dicelog.NewRedisRepository(&dicelog.RedisRepoConfig{Client: client})

	roll := testRoll("2d6", 9)
	data, err := json.Marshal(roll)
	require.NoError(t, err)

	mock.ExpectTxPipeline()
	mock.ExpectLPush("dice:rolls", data).SetVal(1)
	mock.ExpectLTrim("dice:rolls", 0, int64(dicelog.DefaultHistoryLimit-1)).SetVal("OK")
	mock.ExpectTxPipelineExec()

	require.NoError(t, repo.Append(context.Background(), roll))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisList(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := dicelog.NewRedisRepository(&dicelog.RedisRepoConfig{Client: client})

	newest := testRoll("1d8", 5)
	oldest := testRoll("1d20", 17)
	newestData, err := json.Marshal(newest)
	require.NoError(t, err)
	oldestData, err := json.Marshal(oldest)
	require.NoError(t, err)

	mock.ExpectLRange("dice:rolls", 0, 9).SetVal([]string{string(newestData), string(oldestData)})

	rolls, err := repo.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, rolls, 2)
	assert.Equal(t, "1d8", rolls[0].Notation)
	assert.Equal(t, "1d20", rolls[1].Notation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisListDefaultLimit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := dicelog.NewRedisRepository(&dicelog.RedisRepoConfig{Client: client, Limit: 25})

	mock.ExpectLRange("dice:rolls", 0, 24).SetVal([]string{})

	rolls, err := repo.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, rolls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
