package middleware

import (
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/KirkDiggler/othership-bot/internal/discord/v2/core"
)

// ErrorMiddleware turns handler errors into ephemeral replies. Errors the
// user caused are logged at debug level; everything else at error level.
func ErrorMiddleware(logger *zap.Logger) core.Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(next core.Handler) core.Handler {
		return core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
			result, err := next.Handle(ctx)
			if err == nil {
				return result, nil
			}

			handlerErr := core.FromError(err)
			fields := []zap.Field{
				zap.String("route", ctx.Route()),
				zap.String("user_id", ctx.UserID),
				zap.String("guild_id", ctx.GuildID),
				zap.Int("code", handlerErr.Code),
				zap.Error(err),
			}
			if handlerErr.Code >= core.ErrorCodeInternal {
				logger.Error("handler failed", fields...)
			} else {
				logger.Debug("handler rejected request", fields...)
			}

			return core.Respond(core.NewEphemeralResponse(handlerErr.Display())), nil
		})
	}
}

// RecoveryMiddleware recovers from panics
func RecoveryMiddleware(logger *zap.Logger) core.Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(next core.Handler) core.Handler {
		return core.HandlerFunc(func(ctx *core.InteractionContext) (result *core.HandlerResult, err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("panic recovered in handler",
						zap.String("route", ctx.Route()),
						zap.String("panic", fmt.Sprint(r)),
						zap.ByteString("stack", debug.Stack()))

					result = core.Respond(core.NewEphemeralResponse("An unexpected error occurred. Please try again later."))
					err = nil
				}
			}()

			return next.Handle(ctx)
		})
	}
}
