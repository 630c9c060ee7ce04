package routers

import (
	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/othership-bot/internal/discord/v2/builders"
	"github.com/KirkDiggler/othership-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/othership-bot/internal/discord/v2/handlers"
	"github.com/KirkDiggler/othership-bot/internal/discord/v2/middleware"
	"github.com/KirkDiggler/othership-bot/internal/services"
	rostersvc "github.com/KirkDiggler/othership-bot/internal/services/roster"
)

// RosterRouter handles /roster
type RosterRouter struct {
	router  *core.Router
	service rostersvc.Service
}

// NewRosterRouter creates and registers the roster router
func NewRosterRouter(pipeline *core.Pipeline, provider *services.Provider) *RosterRouter {
	router := core.NewRouter("roster", pipeline)

	rr := &RosterRouter{
		router:  router,
		service: provider.RosterService,
	}

	router.Use(middleware.GuildOnlyMiddleware())
	router.Define(&discordgo.ApplicationCommand{
		Description: "Sign up for games in this server",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "join", Description: "Join the roster"},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "leave", Description: "Leave the roster"},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "list", Description: "Show who is on the roster"},
		},
	})

	router.SubcommandFunc("join", rr.handleJoin)
	router.SubcommandFunc("leave", rr.handleLeave)
	router.SubcommandFunc("list", rr.handleList)

	router.Register()
	return rr
}

func (r *RosterRouter) handleJoin(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	_, joined, err := r.service.Join(ctx.Context, ctx.GuildID, ctx.UserID, ctx.DisplayName)
	if err != nil {
		return nil, err
	}

	if !joined {
		return core.Respond(core.NewEphemeralResponse("You're already on the roster.")), nil
	}
	embed := builders.SuccessEmbed("Welcome aboard", ctx.DisplayName+" joined the roster.").Build()
	return core.Respond(core.NewEmbedResponse(embed)), nil
}

func (r *RosterRouter) handleLeave(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	if err := r.service.Leave(ctx.Context, ctx.GuildID, ctx.UserID); err != nil {
		return nil, err
	}
	return core.Respond(core.NewEphemeralResponse("You left the roster. Games already started keep you as a player.")), nil
}

func (r *RosterRouter) handleList(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	entries, err := r.service.List(ctx.Context, ctx.GuildID)
	if err != nil {
		return nil, err
	}
	return core.Respond(core.NewEmbedResponse(handlers.RosterEmbed(entries))), nil
}
