package routers

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/othership-bot/internal/discord/v2/builders"
	"github.com/KirkDiggler/othership-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/othership-bot/internal/discord/v2/handlers"
	"github.com/KirkDiggler/othership-bot/internal/discord/v2/middleware"
	"github.com/KirkDiggler/othership-bot/internal/domain/game"
	"github.com/KirkDiggler/othership-bot/internal/domain/rulebook/othership"
	"github.com/KirkDiggler/othership-bot/internal/services"
	gamesvc "github.com/KirkDiggler/othership-bot/internal/services/game"
)

// historyLimit caps how many past games /game history shows
const historyLimit = 10

// GameRouter handles /game
type GameRouter struct {
	router  *core.Router
	service gamesvc.Service
}

// NewGameRouter creates and registers the game router. Starting, ending
// and cancelling need Manage Server.
func NewGameRouter(pipeline *core.Pipeline, provider *services.Provider) *GameRouter {
	router := core.NewRouter("game", pipeline)

	gr := &GameRouter{
		router:  router,
		service: provider.GameService,
	}

	router.Use(middleware.GuildOnlyMiddleware())
	router.Define(gameCommand(provider.Rulebook))

	admin := middleware.AdminOnlyMiddleware()
	router.SubcommandFunc("start", gr.handleStart, admin)
	router.SubcommandFunc("status", gr.handleStatus)
	router.SubcommandFunc("history", gr.handleHistory)
	router.SubcommandFunc("end", gr.handleEnd, admin)
	router.SubcommandFunc("cancel", gr.handleCancel, admin)

	router.Register()
	return gr
}

func gameCommand(rb *othership.Rulebook) *discordgo.ApplicationCommand {
	scenarios := rb.Scenarios()
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(scenarios))
	for _, sc := range scenarios {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("%s (%d-%d players)", sc.Name, sc.MinPlayers, sc.MaxPlayers),
			Value: sc.ID,
		})
	}

	return &discordgo.ApplicationCommand{
		Description: "Run a game for the roster",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "start",
				Description: "Start a game with everyone on the roster",
				Options: []*discordgo.ApplicationCommandOption{{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "scenario",
					Description: "Scenario to play",
					Required:    true,
					Choices:     choices,
				}},
			},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "status", Description: "Show the current game"},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "history", Description: "List recent games"},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "end", Description: "Complete the game in progress"},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "cancel", Description: "Abandon the current game"},
		},
	}
}

func (r *GameRouter) handleStart(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	g, err := r.service.StartGame(ctx.Context, &gamesvc.StartGameInput{
		GuildID:    ctx.GuildID,
		ChannelID:  ctx.ChannelID,
		AdminID:    ctx.UserID,
		ScenarioID: ctx.GetStringParam("scenario"),
	})
	if err != nil {
		return nil, err
	}

	p, err := r.service.Progress(ctx.Context, g.ID)
	if err != nil {
		return nil, err
	}
	resp := core.NewEmbedResponse(handlers.ProgressEmbed(p))
	resp.Content = "Game started. Players, build your crew with `/character create`."
	return core.Respond(resp), nil
}

func (r *GameRouter) handleStatus(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	g, err := r.service.GetActiveGame(ctx.Context, ctx.GuildID)
	if err != nil {
		return nil, err
	}
	p, err := r.service.Progress(ctx.Context, g.ID)
	if err != nil {
		return nil, err
	}
	return core.Respond(core.NewEmbedResponse(handlers.ProgressEmbed(p))), nil
}

func (r *GameRouter) handleHistory(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	games, err := r.service.ListGames(ctx.Context, ctx.GuildID)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return core.Respond(core.NewEphemeralResponse("No games have been played here yet.")), nil
	}

	lines := make([]string, 0, min(len(games), historyLimit))
	for _, g := range games[:min(len(games), historyLimit)] {
		lines = append(lines, fmt.Sprintf("<t:%d:d> **%s** %s, %d players",
			g.CreatedAt.Unix(), g.ScenarioID, g.Status.Display(), len(g.PlayerIDs)))
	}
	embed := builders.InfoEmbed("Recent games", strings.Join(lines, "\n")).Build()
	return core.Respond(core.NewEmbedResponse(embed).AsEphemeral()), nil
}

func (r *GameRouter) handleEnd(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	return r.finish(ctx, r.service.EndGame, "Game over", "The game is complete. Thanks for playing.")
}

func (r *GameRouter) handleCancel(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	return r.finish(ctx, r.service.CancelGame, "Game cancelled", "The game was called off.")
}

// finish applies a status change to the active game
func (r *GameRouter) finish(ctx *core.InteractionContext, fn func(context.Context, string, string) (*game.Game, error), title, description string) (*core.HandlerResult, error) {
	g, err := r.service.GetActiveGame(ctx.Context, ctx.GuildID)
	if err != nil {
		return nil, err
	}
	if _, err := fn(ctx.Context, g.ID, ctx.UserID); err != nil {
		return nil, err
	}
	embed := builders.WarningEmbed(title, description).Build()
	return core.Respond(core.NewEmbedResponse(embed)), nil
}
