package game

import (
	"slices"
	"time"

	apperr "github.com/KirkDiggler/othership-bot/internal/errors"
)

// Status is the state of a game
type Status string

const (
	StatusCharacterCreation Status = "character_creation"
	StatusInProgress        Status = "in_progress"
	StatusCompleted         Status = "completed"
	StatusCancelled         Status = "cancelled"
)

// transitions lists the statuses reachable from each status
var transitions = map[Status][]Status{
	StatusCharacterCreation: {StatusInProgress, StatusCancelled},
	StatusInProgress:        {StatusCompleted, StatusCancelled},
}

// IsTerminal reports whether no further transitions are possible
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// CanTransitionTo reports whether next is reachable from s
func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions[s], next)
}

// Display is the human readable status
func (s Status) Display() string {
	switch s {
	case StatusCharacterCreation:
		return "Character creation"
	case StatusInProgress:
		return "In progress"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// Game is one run of a scenario in a guild
type Game struct {
	ID         string
	GuildID    string
	ChannelID  string
	ScenarioID string
	AdminID    string
	Status     Status
	PlayerIDs  []string

	CreatedAt time.Time
	StartedAt *time.Time
	EndedAt   *time.Time
}

// IsActive reports whether the game still occupies its guild
func (g *Game) IsActive() bool {
	return !g.Status.IsTerminal()
}

// HasPlayer reports whether userID is playing
func (g *Game) HasPlayer(userID string) bool {
	return slices.Contains(g.PlayerIDs, userID)
}

// TransitionTo moves the game to next, stamping start and end times
func (g *Game) TransitionTo(next Status, now time.Time) error {
	if !g.Status.CanTransitionTo(next) {
		return apperr.FailedPreconditionf("game is %s and cannot move to %s", g.Status.Display(), next.Display()).
			WithMeta("game_id", g.ID)
	}

	g.Status = next
	switch next {
	case StatusInProgress:
		g.StartedAt = &now
	case StatusCompleted, StatusCancelled:
		g.EndedAt = &now
	}
	return nil
}

// Clone returns a deep copy
func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}
	out := *g
	out.PlayerIDs = slices.Clone(g.PlayerIDs)
	if g.StartedAt != nil {
		t := *g.StartedAt
		out.StartedAt = &t
	}
	if g.EndedAt != nil {
		t := *g.EndedAt
		out.EndedAt = &t
	}
	return &out
}
