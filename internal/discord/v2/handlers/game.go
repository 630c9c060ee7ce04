package handlers

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/othership-bot/internal/discord/v2/builders"
	"github.com/KirkDiggler/othership-bot/internal/domain/game"
	"github.com/KirkDiggler/othership-bot/internal/domain/roster"
	gamesvc "github.com/KirkDiggler/othership-bot/internal/services/game"
)

// ProgressEmbed shows a game's status and every player's character
func ProgressEmbed(p *gamesvc.Progress) *discordgo.MessageEmbed {
	title := p.Game.ScenarioID
	description := ""
	if p.Scenario != nil {
		title, description = p.Scenario.Name, p.Scenario.Description
	}

	lines := make([]string, 0, len(p.Players))
	for _, pl := range p.Players {
		lines = append(lines, fmt.Sprintf("<@%s> %s", pl.UserID, playerState(pl)))
	}

	color := builders.ColorInfo
	if p.Game.Status == game.StatusInProgress {
		color = builders.ColorHull
	}

	return builders.NewEmbed().
		Title(title).
		Description(description).
		Color(color).
		Field("Status", p.Game.Status.Display(), true).
		Field("Ready", fmt.Sprintf("%d/%d", p.ReadyCount(), len(p.Players)), true).
		Field("Crew", strings.Join(lines, "\n"), false).
		Timestamp(p.Game.CreatedAt).
		Build()
}

func playerState(pl gamesvc.PlayerProgress) string {
	switch {
	case pl.Character == nil:
		return "has not started"
	case pl.Ready():
		if pl.Character.Name != "" {
			return "is ready as **" + pl.Character.Name + "**"
		}
		return "is ready"
	default:
		return "is building a character"
	}
}

// RosterEmbed lists the players who opted in
func RosterEmbed(entries []*roster.Entry) *discordgo.MessageEmbed {
	if len(entries) == 0 {
		return builders.InfoEmbed("Roster", "Nobody has joined yet. Use `/roster join` to sign up.").Build()
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("<@%s> (%s)", e.UserID, e.DisplayName))
	}
	return builders.InfoEmbed(fmt.Sprintf("Roster (%d)", len(entries)), strings.Join(lines, "\n")).Build()
}
