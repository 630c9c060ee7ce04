package testutils

import (
	"sync"
	"time"

	"github.com/KirkDiggler/othership-bot/internal/domain/character"
	"github.com/KirkDiggler/othership-bot/internal/domain/game"
	"github.com/KirkDiggler/othership-bot/internal/domain/rulebook/othership"
)

// FixedTime is a TimeProvider that always returns the same instant
type FixedTime struct {
	At time.Time
}

func (f FixedTime) Now() time.Time { return f.At }

// Epoch is the instant fixtures are stamped with
var Epoch = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

// CreateTestCharacter returns an empty draft
func CreateTestCharacter(id, ownerID, guildID, gameID string) *character.Character {
	return character.New(id, ownerID, guildID, gameID)
}

// CreateRolledCharacter returns a draft with every stat and save rolled
func CreateRolledCharacter(id, ownerID, guildID, gameID string) *character.Character {
	c := character.New(id, ownerID, guildID, gameID)
	for i, stat := range othership.AllStats() {
		c.Stats[stat] = 30 + i
	}
	for i, save := range othership.AllSaves() {
		c.Saves[save] = 20 + i
	}
	return c
}

// CreateReadyMarine returns a finalized marine that passes validation
func CreateReadyMarine(id, ownerID, guildID, gameID string) *character.Character {
	c := CreateRolledCharacter(id, ownerID, guildID, gameID)
	idx := 0
	c.Name = "Pvt. Hicks"
	c.Class = othership.ClassMarine
	c.BonusChoiceIndex = &idx
	c.BonusSkills = []string{"firearms"}
	c.Status = character.StatusReady
	return c
}

// CreateTestGame returns a game in character creation
func CreateTestGame(id, guildID string, players ...string) *game.Game {
	return &game.Game{
		ID:         id,
		GuildID:    guildID,
		ChannelID:  "channel-" + guildID,
		ScenarioID: "derelict",
		AdminID:    "admin-1",
		Status:     game.StatusCharacterCreation,
		PlayerIDs:  players,
		CreatedAt:  Epoch,
	}
}

// StepClock is a TimeProvider that advances by Step on every call so
// records created in sequence sort deterministically
type StepClock struct {
	mu   sync.Mutex
	next time.Time
	Step time.Duration
}

// NewStepClock starts a clock at start
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{next: start, Step: step}
}

func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(c.Step)
	return now
}
