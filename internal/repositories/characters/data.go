package characters

import (
	"slices"
	"time"

	"github.com/KirkDiggler/othership-bot/internal/domain/character"
	"github.com/KirkDiggler/othership-bot/internal/domain/rulebook/othership"
	apperr "github.com/KirkDiggler/othership-bot/internal/errors"
)

// CharacterData represents the serialized form of a character in Redis
type CharacterData struct {
	ID               string         `json:"id"`
	OwnerID          string         `json:"owner_id"`
	GuildID          string         `json:"guild_id"`
	GameID           string         `json:"game_id"`
	Name             string         `json:"name"`
	AvatarURL        string         `json:"avatar_url,omitempty"`
	Status           string         `json:"status"`
	Class            string         `json:"class,omitempty"`
	ChosenStat       string         `json:"chosen_stat,omitempty"`
	Stats            map[string]int `json:"stats"`
	Saves            map[string]int `json:"saves"`
	MasterSkill      string         `json:"master_skill,omitempty"`
	BonusSkills      []string       `json:"bonus_skills,omitempty"`
	BonusChoiceIndex *int           `json:"bonus_choice_index,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	Version          int64          `json:"version"`
}

func toCharacterData(c *character.Character) *CharacterData {
	data := &CharacterData{
		ID:          c.ID,
		OwnerID:     c.OwnerID,
		GuildID:     c.GuildID,
		GameID:      c.GameID,
		Name:        c.Name,
		AvatarURL:   c.AvatarURL,
		Status:      string(c.Status),
		Class:       string(c.Class),
		ChosenStat:  string(c.ChosenStat),
		Stats:       make(map[string]int, len(c.Stats)),
		Saves:       make(map[string]int, len(c.Saves)),
		MasterSkill: c.MasterSkill,
		BonusSkills: slices.Clone(c.BonusSkills),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		Version:     c.Version,
	}
	for k, v := range c.Stats {
		if v != 0 {
			data.Stats[string(k)] = v
		}
	}
	for k, v := range c.Saves {
		if v != 0 {
			data.Saves[string(k)] = v
		}
	}
	if c.BonusChoiceIndex != nil {
		idx := *c.BonusChoiceIndex
		data.BonusChoiceIndex = &idx
	}
	return data
}

func fromCharacterData(data *CharacterData) *character.Character {
	c := character.New(data.ID, data.OwnerID, data.GuildID, data.GameID)
	c.Name = data.Name
	c.AvatarURL = data.AvatarURL
	c.Status = character.Status(data.Status)
	c.Class = othership.ClassKey(data.Class)
	c.ChosenStat = othership.Stat(data.ChosenStat)
	c.MasterSkill = data.MasterSkill
	c.BonusSkills = slices.Clone(data.BonusSkills)
	c.BonusChoiceIndex = data.BonusChoiceIndex
	c.CreatedAt = data.CreatedAt
	c.UpdatedAt = data.UpdatedAt
	c.Version = data.Version
	for k, v := range data.Stats {
		c.Stats[othership.Stat(k)] = v
	}
	for k, v := range data.Saves {
		c.Saves[othership.Save(k)] = v
	}
	return c
}

func validateForWrite(c *character.Character) error {
	if c == nil {
		return apperr.InvalidArgument("character cannot be nil")
	}
	if c.ID == "" {
		return apperr.InvalidArgument("character ID is required")
	}
	if c.OwnerID == "" {
		return apperr.InvalidArgument("character owner ID is required")
	}
	if c.GuildID == "" {
		return apperr.InvalidArgument("character guild ID is required")
	}
	return nil
}

func alreadyRolled(id, name string) error {
	return apperr.Validationf("%s has already been rolled", name).
		WithMeta("character_id", id).
		WithMeta("attribute", name)
}

func notFound(id string) error {
	return apperr.NotFoundf("character with ID '%s' not found", id).
		WithMeta("character_id", id)
}

func sortByCreated(chars []*character.Character) {
	slices.SortStableFunc(chars, func(a, b *character.Character) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}
