package character

import (
	"slices"
	"time"

	"github.com/KirkDiggler/othership-bot/internal/domain/rulebook/othership"
)

// Status is the lifecycle state of a character
type Status string

const (
	StatusDraft Status = "draft"
	StatusReady Status = "ready"
)

// Character is a player's crew member for one game. Stats and Saves hold the
// rolled base values; zero means the attribute has not been rolled. Class
// modifiers are applied when the sheet is built so changing class never
// alters what was rolled.
type Character struct {
	ID      string
	OwnerID string
	GuildID string
	GameID  string

	Name      string
	AvatarURL string
	Status    Status

	Class            othership.ClassKey
	ChosenStat       othership.Stat
	Stats            map[othership.Stat]int
	Saves            map[othership.Save]int
	MasterSkill      string
	BonusSkills      []string
	BonusChoiceIndex *int

	CreatedAt time.Time
	UpdatedAt time.Time

	// Version increments on every write. Repositories reject updates made
	// from a stale copy.
	Version int64
}

// New creates an empty draft
func New(id, ownerID, guildID, gameID string) *Character {
	return &Character{
		ID:      id,
		OwnerID: ownerID,
		GuildID: guildID,
		GameID:  gameID,
		Status:  StatusDraft,
		Stats:   make(map[othership.Stat]int),
		Saves:   make(map[othership.Save]int),
	}
}

// Clone returns a deep copy so callers can mutate without touching shared
// state
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	out := *c
	out.Stats = make(map[othership.Stat]int, len(c.Stats))
	for k, v := range c.Stats {
		out.Stats[k] = v
	}
	out.Saves = make(map[othership.Save]int, len(c.Saves))
	for k, v := range c.Saves {
		out.Saves[k] = v
	}
	out.BonusSkills = slices.Clone(c.BonusSkills)
	if c.BonusChoiceIndex != nil {
		idx := *c.BonusChoiceIndex
		out.BonusChoiceIndex = &idx
	}
	return &out
}

// Build extracts the skill-relevant choices
func (c *Character) Build() othership.Build {
	b := othership.Build{
		Class:       c.Class,
		ChosenStat:  c.ChosenStat,
		MasterSkill: c.MasterSkill,
		BonusSkills: slices.Clone(c.BonusSkills),
	}
	if c.BonusChoiceIndex != nil {
		idx := *c.BonusChoiceIndex
		b.BonusChoiceIndex = &idx
	}
	return b
}

// ApplyBuild copies build choices back onto the character
func (c *Character) ApplyBuild(b othership.Build) {
	c.Class = b.Class
	c.ChosenStat = b.ChosenStat
	c.MasterSkill = b.MasterSkill
	c.BonusSkills = slices.Clone(b.BonusSkills)
	c.BonusChoiceIndex = nil
	if b.BonusChoiceIndex != nil {
		idx := *b.BonusChoiceIndex
		c.BonusChoiceIndex = &idx
	}
}

// StatRolled reports whether stat already has a value
func (c *Character) StatRolled(stat othership.Stat) bool {
	return c.Stats[stat] != 0
}

// SaveRolled reports whether save already has a value
func (c *Character) SaveRolled(save othership.Save) bool {
	return c.Saves[save] != 0
}

// RolledCount is the number of stats and saves that have values
func (c *Character) RolledCount() int {
	n := 0
	for _, s := range othership.AllStats() {
		if c.StatRolled(s) {
			n++
		}
	}
	for _, s := range othership.AllSaves() {
		if c.SaveRolled(s) {
			n++
		}
	}
	return n
}

// AllRolled reports whether every stat and save has a value
func (c *Character) AllRolled() bool {
	return c.RolledCount() == len(othership.AllStats())+len(othership.AllSaves())
}

// IsReady reports whether the character was finalized
func (c *Character) IsReady() bool {
	return c.Status == StatusReady
}
