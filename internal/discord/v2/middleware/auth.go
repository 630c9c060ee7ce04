package middleware

import (
	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/othership-bot/internal/discord/v2/core"
)

// GuildOnlyMiddleware rejects interactions from direct messages
func GuildOnlyMiddleware() core.Middleware {
	return func(next core.Handler) core.Handler {
		return core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
			if ctx.GuildID == "" {
				return nil, core.NewForbiddenError("This command can only be used in a server.")
			}
			return next.Handle(ctx)
		})
	}
}

// PermissionRequiredMiddleware requires the member to hold permissions in
// the channel
func PermissionRequiredMiddleware(permissions int64, message string) core.Middleware {
	return func(next core.Handler) core.Handler {
		return core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
			if !ctx.HasPermission(permissions) {
				return nil, core.NewForbiddenError(message)
			}
			return next.Handle(ctx)
		})
	}
}

// AdminOnlyMiddleware restricts game administration to members who can
// manage the server
func AdminOnlyMiddleware() core.Middleware {
	return PermissionRequiredMiddleware(discordgo.PermissionManageServer,
		"Only members with the Manage Server permission can do that.")
}
