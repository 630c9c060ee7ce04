package middleware

import (
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/othership-bot/internal/discord/v2/core"
)

// LoggingMiddleware logs every interaction with its duration
func LoggingMiddleware(logger *zap.Logger) core.Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(next core.Handler) core.Handler {
		return core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
			start := time.Now()
			result, err := next.Handle(ctx)

			fields := []zap.Field{
				zap.String("route", ctx.Route()),
				zap.String("user_id", ctx.UserID),
				zap.String("guild_id", ctx.GuildID),
				zap.Duration("duration", time.Since(start)),
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
			}
			logger.Info("interaction handled", fields...)

			return result, err
		})
	}
}
