package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/othership-bot/internal/domain/rulebook/othership"
	"github.com/KirkDiggler/othership-bot/internal/services"
	gameService "github.com/KirkDiggler/othership-bot/internal/services/game"
	"github.com/KirkDiggler/othership-bot/internal/testutils"
)

func TestNewProvider(t *testing.T) {
	rb, err := othership.LoadDefault()
	require.NoError(t, err)

	for name, cfg := range map[string]*services.ProviderConfig{
		"inmemory": {Rulebook: rb},
		"redis": func() *services.ProviderConfig {
			_, client := testutils.NewMiniRedis(t)
			return &services.ProviderConfig{Rulebook: rb, RedisClient: client}
		}(),
	} {
		t.Run(name, func(t *testing.T) {
			p := services.NewProvider(cfg)
			ctx := context.Background()

			_, _, err := p.RosterService.Join(ctx, "g1", "u1", "Ripley")
			require.NoError(t, err)

			g, err := p.GameService.StartGame(ctx, &gameService.StartGameInput{
				GuildID: "g1", ChannelID: "c1", AdminID: "a1", ScenarioID: "derelict",
			})
			require.NoError(t, err)
			assert.Equal(t, []string{"u1"}, g.PlayerIDs)
		})
	}

	assert.Panics(t, func() { services.NewProvider(&services.ProviderConfig{}) })
}
