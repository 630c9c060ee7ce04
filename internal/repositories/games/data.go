package games

import (
	"slices"
	"time"

	"github.com/KirkDiggler/othership-bot/internal/domain/game"
	apperr "github.com/KirkDiggler/othership-bot/internal/errors"
)

// GameData is the serialized form of a game in Redis
type GameData struct {
	ID         string     `json:"id"`
	GuildID    string     `json:"guild_id"`
	ChannelID  string     `json:"channel_id"`
	ScenarioID string     `json:"scenario_id"`
	AdminID    string     `json:"admin_id"`
	Status     string     `json:"status"`
	PlayerIDs  []string   `json:"player_ids"`
	CreatedAt  time.Time  `json:"created_at"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
}

func toGameData(g *game.Game) *GameData {
	c := g.Clone()
	return &GameData{
		ID:         c.ID,
		GuildID:    c.GuildID,
		ChannelID:  c.ChannelID,
		ScenarioID: c.ScenarioID,
		AdminID:    c.AdminID,
		Status:     string(c.Status),
		PlayerIDs:  c.PlayerIDs,
		CreatedAt:  c.CreatedAt,
		StartedAt:  c.StartedAt,
		EndedAt:    c.EndedAt,
	}
}

func fromGameData(d *GameData) *game.Game {
	return &game.Game{
		ID:         d.ID,
		GuildID:    d.GuildID,
		ChannelID:  d.ChannelID,
		ScenarioID: d.ScenarioID,
		AdminID:    d.AdminID,
		Status:     game.Status(d.Status),
		PlayerIDs:  slices.Clone(d.PlayerIDs),
		CreatedAt:  d.CreatedAt,
		StartedAt:  d.StartedAt,
		EndedAt:    d.EndedAt,
	}
}

func validateForWrite(g *game.Game) error {
	if g == nil {
		return apperr.InvalidArgument("game cannot be nil")
	}
	if g.ID == "" {
		return apperr.InvalidArgument("game ID is required")
	}
	if g.GuildID == "" {
		return apperr.InvalidArgument("game guild ID is required")
	}
	return nil
}

func notFound(id string) error {
	return apperr.NotFoundf("game with ID '%s' not found", id).WithMeta("game_id", id)
}

func noActiveGame(guildID string) error {
	return apperr.NotFound("no active game in this server").WithMeta("guild_id", guildID)
}

func guildBusy(guildID, activeID string) error {
	return apperr.FailedPrecondition("a game is already running in this server").
		WithMeta("guild_id", guildID).
		WithMeta("active_game_id", activeID)
}

func alreadyEnded(g *game.Game) error {
	return apperr.FailedPreconditionf("game %s has already ended", g.ID).
		WithMeta("game_id", g.ID).
		WithMeta("status", string(g.Status))
}

func sortNewestFirst(gs []*game.Game) {
	slices.SortStableFunc(gs, func(a, b *game.Game) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
