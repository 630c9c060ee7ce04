package events

import (
	"time"

	"github.com/KirkDiggler/othership-bot/internal/domain/character"
	"github.com/KirkDiggler/othership-bot/internal/domain/game"
)

// EventType represents the type of lifecycle event
type EventType string

// Event is the base interface for all events
type Event interface {
	GetType() EventType
	GetGuildID() string
	IsCancelled() bool
	Cancel()
}

// BaseEvent provides common implementation for all events
type BaseEvent struct {
	Type       EventType
	GuildID    string
	OccurredAt time.Time
	Cancelled  bool
}

func (e *BaseEvent) GetType() EventType { return e.Type }
func (e *BaseEvent) GetGuildID() string { return e.GuildID }
func (e *BaseEvent) IsCancelled() bool  { return e.Cancelled }
func (e *BaseEvent) Cancel()            { e.Cancelled = true }

// GameEvent reports a game status change. ActorID is the user who caused
// it, empty when the change was automatic.
type GameEvent struct {
	BaseEvent
	Game    *game.Game
	ActorID string
}

// NewGameEvent snapshots g so listeners see the state at emit time
func NewGameEvent(t EventType, g *game.Game, actorID string, now time.Time) *GameEvent {
	return &GameEvent{
		BaseEvent: BaseEvent{Type: t, GuildID: g.GuildID, OccurredAt: now},
		Game:      g.Clone(),
		ActorID:   actorID,
	}
}

// CharacterReadyEvent is emitted when a character is finalized
type CharacterReadyEvent struct {
	BaseEvent
	Character *character.Character
}

// NewCharacterReadyEvent snapshots c
func NewCharacterReadyEvent(c *character.Character, now time.Time) *CharacterReadyEvent {
	return &CharacterReadyEvent{
		BaseEvent: BaseEvent{Type: EventTypeCharacterReady, GuildID: c.GuildID, OccurredAt: now},
		Character: c.Clone(),
	}
}
