package games

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/KirkDiggler/othership-bot/internal/errors"
	"github.com/KirkDiggler/othership-bot/internal/testutils"
)

func TestGetActive(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisRepository(&RedisRepoConfig{Client: client})
	ctx := context.Background()

	raw, err := json.Marshal(toGameData(testutils.CreateTestGame("game-1", "guild-1", "u1")))
	require.NoError(t, err)

	t.Run("active game", func(t *testing.T) {
		mock.ExpectGet("guild:guild-1:active_game").SetVal("game-1")
		mock.ExpectGet("game:game-1").SetVal(string(raw))

		g, err := repo.GetActive(ctx, "guild-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"u1"}, g.PlayerIDs)
	})

	t.Run("no pointer", func(t *testing.T) {
		mock.ExpectGet("guild:guild-1:active_game").RedisNil()

		_, err := repo.GetActive(ctx, "guild-1")
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("dangling pointer", func(t *testing.T) {
		mock.ExpectGet("guild:guild-1:active_game").SetVal("game-1")
		mock.ExpectGet("game:game-1").RedisNil()

		_, err := repo.GetActive(ctx, "guild-1")
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectGet("guild:guild-1:active_game").SetErr(errors.New("connection reset"))

		_, err := repo.GetActive(ctx, "guild-1")
		assert.ErrorContains(t, err, "failed to read active game")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByGuildSkipsMissing(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisRepository(&RedisRepoConfig{Client: client})

	raw, err := json.Marshal(toGameData(testutils.CreateTestGame("g2", "guild-1")))
	require.NoError(t, err)

	mock.ExpectZRevRange("guild:guild-1:games", 0, -1).SetVal([]string{"g2", "g1"})
	mock.ExpectMGet("game:g2", "game:g1").SetVal([]interface{}{string(raw), nil})

	list, err := repo.ListByGuild(context.Background(), "guild-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "g2", list[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
