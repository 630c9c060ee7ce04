package handlers

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/othership-bot/internal/discord/v2/builders"
	"github.com/KirkDiggler/othership-bot/internal/domain/character"
	charsvc "github.com/KirkDiggler/othership-bot/internal/services/character"
)

// SheetEmbed renders a character sheet with class modifiers applied
func SheetEmbed(sheet *character.Sheet) *discordgo.MessageEmbed {
	c := sheet.Character

	name := c.Name
	if name == "" {
		name = "Unnamed crew member"
	}
	description := "Draft"
	if c.IsReady() {
		description = "Ready for duty"
	}
	if sheet.Class != nil {
		description = sheet.Class.Name + " • " + description
	}

	eb := builders.NewEmbed().
		Title(name).
		Description(description).
		Color(builders.ColorHull).
		Thumbnail(c.AvatarURL).
		Field("Stats", statLines(sheet), true).
		Field("Saves", saveLines(sheet), true)

	if sheet.Class != nil {
		eb.Field("Wounds", fmt.Sprintf("Max %d", sheet.MaxWounds), true)
	}
	if len(sheet.Skills) > 0 {
		eb.Field("Skills", skillLines(sheet), false)
	}
	return eb.Build()
}

// RollContent describes one or more rolls, one per line
func RollContent(rolls ...*charsvc.RollOutput) string {
	lines := make([]string, 0, len(rolls))
	for _, r := range rolls {
		lines = append(lines, fmt.Sprintf("🎲 **%s**: %s", r.Label, r.Roll))
	}
	return strings.Join(lines, "\n")
}

// CheckEmbed renders a percentile check
func CheckEmbed(out *charsvc.CheckOutput) *discordgo.MessageEmbed {
	res := out.Result

	verdict, color := "Failure", builders.ColorError
	switch {
	case res.Critical:
		verdict, color = "Critical success", builders.ColorSuccess
	case res.Success:
		verdict, color = "Success", builders.ColorSuccess
	}

	name := out.Character.Name
	if name == "" {
		name = "Your character"
	}
	return builders.NewEmbed().
		Title(fmt.Sprintf("%s check: %s", out.Label, verdict)).
		Description(fmt.Sprintf("%s rolled **%d** against %d.", name, res.Roll, res.Target)).
		Color(color).
		Build()
}
