package roster_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/othership-bot/internal/repositories"
	"github.com/KirkDiggler/othership-bot/internal/repositories/roster"
	"github.com/KirkDiggler/othership-bot/internal/testutils"
)

func newRepositories(t *testing.T) map[string]roster.Repository {
	_, client := testutils.NewMiniRedis(t)
	clock := func() repositories.TimeProvider { return testutils.NewStepClock(testutils.Epoch, time.Minute) }
	return map[string]roster.Repository{
		"inmemory":  roster.NewInMemoryRepository(clock()),
		"miniredis": roster.NewRedis(client, clock()),
	}
}

func TestRosterLifecycle(t *testing.T) {
	for name, repo := range newRepositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			first, created, err := repo.Add(ctx, "g1", "u1", "Lambert")
			require.NoError(t, err)
			assert.True(t, created)
			assert.Equal(t, testutils.Epoch, first.JoinedAt)

			_, _, err = repo.Add(ctx, "g1", "u2", "Brett")
			require.NoError(t, err)

			again, created, err := repo.Add(ctx, "g1", "u1", "Lambert")
			require.NoError(t, err)
			assert.False(t, created)
			assert.True(t, first.JoinedAt.Equal(again.JoinedAt))

			entries, err := repo.List(ctx, "g1")
			require.NoError(t, err)
			require.Len(t, entries, 2)
			assert.Equal(t, "u1", entries[0].UserID)
			assert.Equal(t, "Brett", entries[1].DisplayName)

			removed, err := repo.Remove(ctx, "g1", "u1")
			require.NoError(t, err)
			assert.True(t, removed)

			removed, err = repo.Remove(ctx, "g1", "u1")
			require.NoError(t, err)
			assert.False(t, removed)

			entries, err = repo.List(ctx, "g2")
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}
