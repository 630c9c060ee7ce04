package events_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KirkDiggler/othership-bot/internal/events"
	"github.com/KirkDiggler/othership-bot/internal/testutils"
)

func recorder(name string, order int, calls *[]string) *events.ListenerFunc {
	return &events.ListenerFunc{
		Name:  name,
		Order: order,
		Fn: func(events.Event) error {
			*calls = append(*calls, name)
			return nil
		},
	}
}

func TestEventBus_Priority(t *testing.T) {
	bus := events.NewBus(zap.NewNop())

	var calls []string
	bus.Subscribe(events.EventTypeGameStarted, recorder("notify", events.PriorityNotifications, &calls))
	bus.Subscribe(events.EventTypeGameStarted, recorder("state", events.PriorityState, &calls))
	bus.Subscribe(events.EventTypeGameStarted, recorder("state-2", events.PriorityState, &calls))

	g := testutils.CreateTestGame("game-1", "guild-1")
	require.NoError(t, bus.Emit(events.NewGameEvent(events.EventTypeGameStarted, g, "admin-1", testutils.Epoch)))

	assert.Equal(t, []string{"state", "state-2", "notify"}, calls)
}

func TestEventBus_OnlyMatchingType(t *testing.T) {
	bus := events.NewBus(nil)

	var calls []string
	bus.Subscribe(events.EventTypeGameCompleted, recorder("completed", 1, &calls))

	g := testutils.CreateTestGame("game-1", "guild-1")
	require.NoError(t, bus.Emit(events.NewGameEvent(events.EventTypeGameCancelled, g, "", testutils.Epoch)))
	assert.Empty(t, calls)
}

func TestEventBus_Cancellation(t *testing.T) {
	bus := events.NewBus(nil)

	var calls []string
	bus.Subscribe(events.EventTypeCharacterReady, &events.ListenerFunc{
		Name:  "veto",
		Order: 1,
		Fn: func(e events.Event) error {
			e.Cancel()
			return nil
		},
	})
	bus.Subscribe(events.EventTypeCharacterReady, recorder("after", 2, &calls))

	c := testutils.CreateReadyMarine("c1", "u1", "guild-1", "game-1")
	require.NoError(t, bus.Emit(events.NewCharacterReadyEvent(c, testutils.Epoch)))
	assert.Empty(t, calls)
}

func TestEventBus_ListenerError(t *testing.T) {
	bus := events.NewBus(nil)

	var calls []string
	bus.Subscribe(events.EventTypeGameStarted, &events.ListenerFunc{
		Name:  "broken",
		Order: 1,
		Fn:    func(events.Event) error { return errors.New("boom") },
	})
	bus.Subscribe(events.EventTypeGameStarted, recorder("after", 2, &calls))

	err := bus.Emit(events.NewGameEvent(events.EventTypeGameStarted, testutils.CreateTestGame("g", "guild"), "", testutils.Epoch))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listener broken failed")
	assert.Empty(t, calls)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := events.NewBus(nil)

	var calls []string
	bus.Subscribe(events.EventTypeGameStarted, recorder("a", 1, &calls))
	bus.Subscribe(events.EventTypeGameStarted, recorder("b", 2, &calls))
	bus.Unsubscribe(events.EventTypeGameStarted, "a")

	require.NoError(t, bus.Emit(events.NewGameEvent(events.EventTypeGameStarted, testutils.CreateTestGame("g", "guild"), "", testutils.Epoch)))
	assert.Equal(t, []string{"b"}, calls)

	bus.Clear()
	calls = nil
	require.NoError(t, bus.Emit(events.NewGameEvent(events.EventTypeGameStarted, testutils.CreateTestGame("g", "guild"), "", testutils.Epoch)))
	assert.Empty(t, calls)
}

func TestEventsSnapshotState(t *testing.T) {
	g := testutils.CreateTestGame("game-1", "guild-1", "u1")
	evt := events.NewGameEvent(events.EventTypeGameStarted, g, "admin-1", testutils.Epoch)
	g.PlayerIDs[0] = "changed"

	assert.Equal(t, "u1", evt.Game.PlayerIDs[0])
	assert.Equal(t, "guild-1", evt.GetGuildID())
}
