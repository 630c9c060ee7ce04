package events

// Event type constants
const (
	EventTypeGameStarted    EventType = "game_started"
	EventTypeCharacterReady EventType = "character_ready"
	EventTypeGameInProgress EventType = "game_in_progress"
	EventTypeGameCompleted  EventType = "game_completed"
	EventTypeGameCancelled  EventType = "game_cancelled"
)

// GameEventTypes lists every event that carries a *GameEvent
func GameEventTypes() []EventType {
	return []EventType{
		EventTypeGameStarted,
		EventTypeGameInProgress,
		EventTypeGameCompleted,
		EventTypeGameCancelled,
	}
}

// Priority levels for listener order
const (
	PriorityState         = 100 // Game progression reacting to events
	PriorityNotifications = 500 // Channel posts, after state has settled
)
