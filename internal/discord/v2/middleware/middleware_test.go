package middleware_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/KirkDiggler/othership-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/othership-bot/internal/discord/v2/middleware"
	apperr "github.com/KirkDiggler/othership-bot/internal/errors"
	"github.com/KirkDiggler/othership-bot/internal/testutils"
)

func run(t *testing.T, mw core.Middleware, h core.HandlerFunc, i *discordgo.InteractionCreate) *core.HandlerResult {
	t.Helper()
	ctx := core.NewInteractionContext(context.Background(), &core.FakeSession{}, i)
	result, err := mw(h).Handle(ctx)
	require.NoError(t, err)
	return result
}

func ok(*core.InteractionContext) (*core.HandlerResult, error) {
	return core.Respond(core.NewResponse("ok")), nil
}

func TestErrorMiddleware(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	mw := middleware.ErrorMiddleware(zap.New(obs))
	i := core.NewTestInteraction("g1", "u1").Command("game", "start")

	result := run(t, mw, func(*core.InteractionContext) (*core.HandlerResult, error) {
		return nil, apperr.FailedPrecondition("a game is already running in this server")
	}, i)
	assert.True(t, result.Response.Ephemeral)
	assert.Equal(t, "a game is already running in this server", result.Response.Content)

	result = run(t, mw, func(*core.InteractionContext) (*core.HandlerResult, error) {
		return nil, errors.New("redis: connection pool timeout")
	}, i)
	assert.NotContains(t, result.Response.Content, "redis")

	require.Equal(t, 1, logs.FilterMessage("handler failed").Len())
	entry := logs.FilterMessage("handler failed").All()[0]
	assert.Equal(t, "game/start", entry.ContextMap()["route"])
}

func TestRecoveryMiddleware(t *testing.T) {
	obs, logs := observer.New(zapcore.ErrorLevel)
	mw := middleware.RecoveryMiddleware(zap.New(obs))

	result := run(t, mw, func(*core.InteractionContext) (*core.HandlerResult, error) {
		panic("nil map")
	}, core.NewTestInteraction("g1", "u1").Command("character", "show"))

	assert.Contains(t, result.Response.Content, "unexpected error")
	assert.Equal(t, 1, logs.FilterMessage("panic recovered in handler").Len())
}

func TestLoggingMiddleware(t *testing.T) {
	obs, logs := observer.New(zapcore.InfoLevel)
	mw := middleware.LoggingMiddleware(zap.New(obs))

	run(t, mw, ok, core.NewTestInteraction("g1", "u1").Component("character:finalize:c1"))

	entries := logs.FilterMessage("interaction handled").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "character:finalize", entries[0].ContextMap()["route"])
	assert.Equal(t, "u1", entries[0].ContextMap()["user_id"])
}

func TestAdminOnlyMiddleware(t *testing.T) {
	mw := middleware.AdminOnlyMiddleware()
	h := mw(core.HandlerFunc(ok))

	denied := core.NewInteractionContext(context.Background(), nil,
		core.NewTestInteraction("g1", "u1").Command("game", "start"))
	_, err := h.Handle(denied)
	var handlerErr *core.HandlerError
	require.ErrorAs(t, err, &handlerErr)
	assert.Equal(t, core.ErrorCodeForbidden, handlerErr.Code)

	allowed := core.NewInteractionContext(context.Background(), nil,
		core.NewTestInteraction("g1", "u1").WithPermissions(discordgo.PermissionManageServer).Command("game", "start"))
	result, err := h.Handle(allowed)
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Response.Content)
}

func TestGuildOnlyMiddleware(t *testing.T) {
	i := core.NewTestInteraction("", "u1").Command("roster", "join")
	_, err := middleware.GuildOnlyMiddleware()(core.HandlerFunc(ok)).
		Handle(core.NewInteractionContext(context.Background(), nil, i))
	assert.Error(t, err)
}

func TestRateLimitMiddleware(t *testing.T) {
	clock := testutils.NewStepClock(testutils.Epoch, 0)
	_, client := testutils.NewMiniRedis(t)

	stores := map[string]middleware.RateLimitStore{
		"memory": middleware.NewMemoryRateLimitStore(clock),
		"redis":  middleware.NewRedisRateLimitStore(client),
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			h := middleware.UserRateLimitMiddleware(2, time.Minute, store, nil)(core.HandlerFunc(ok))
			ctx := core.NewInteractionContext(context.Background(), nil,
				core.NewTestInteraction("g1", "u-"+name).Command("character", "show"))

			for range 2 {
				_, err := h.Handle(ctx)
				require.NoError(t, err)
			}
			_, err := h.Handle(ctx)
			var handlerErr *core.HandlerError
			require.ErrorAs(t, err, &handlerErr)
			assert.Equal(t, core.ErrorCodeRateLimited, handlerErr.Code)
		})
	}
}

func TestMemoryRateLimitStoreWindowResets(t *testing.T) {
	clock := testutils.NewStepClock(testutils.Epoch, 30*time.Second)
	store := middleware.NewMemoryRateLimitStore(clock)

	n, err := store.Increment(context.Background(), "u1", time.Minute) // t=0
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, _ = store.Increment(context.Background(), "u1", time.Minute) // t=30s
	assert.Equal(t, 2, n)

	n, _ = store.Increment(context.Background(), "u1", time.Minute) // t=60s, window over
	assert.Equal(t, 1, n)
}

func TestRedisRateLimitStoreExpires(t *testing.T) {
	mr, client := testutils.NewMiniRedis(t)
	store := middleware.NewRedisRateLimitStore(client)

	n, err := store.Increment(context.Background(), "u1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, time.Minute, mr.TTL("ratelimit:u1"))

	mr.FastForward(time.Minute)
	n, err = store.Increment(context.Background(), "u1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
