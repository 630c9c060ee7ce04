package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Pipeline manages handler registration and execution
type Pipeline struct {
	handlers     []Handler
	middleware   []Middleware
	commands     []*discordgo.ApplicationCommand
	errorHandler ErrorHandler
	logger       *zap.Logger

	mu sync.RWMutex
}

// Middleware is a function that wraps a handler
type Middleware func(Handler) Handler

// ErrorHandler handles errors that occur during pipeline execution
type ErrorHandler func(ctx *InteractionContext, err error) *HandlerResult

// NewPipeline creates a new handler pipeline
func NewPipeline(logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		errorHandler: DefaultErrorHandler,
		logger:       logger.Named("discord"),
	}
}

// Register adds handlers to the pipeline. Pipeline middleware registered
// with Use before this call wraps them.
func (p *Pipeline) Register(handlers ...Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, h := range handlers {
		wrapped := h
		for i := len(p.middleware) - 1; i >= 0; i-- {
			wrapped = p.middleware[i](wrapped)
		}
		p.handlers = append(p.handlers, wrapped)
	}
}

// Use adds middleware to the pipeline
func (p *Pipeline) Use(middleware ...Middleware) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.middleware = append(p.middleware, middleware...)
}

// AddCommand records a slash command definition for registration
func (p *Pipeline) AddCommand(cmd *discordgo.ApplicationCommand) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.commands = append(p.commands, cmd)
}

// Commands returns every slash command the registered routers handle
func (p *Pipeline) Commands() []*discordgo.ApplicationCommand {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return append([]*discordgo.ApplicationCommand(nil), p.commands...)
}

// SetErrorHandler sets a custom error handler
func (p *Pipeline) SetErrorHandler(handler ErrorHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.errorHandler = handler
}

// Execute runs the first handler that accepts the interaction and sends its
// response
func (p *Pipeline) Execute(ctx context.Context, s Session, i *discordgo.InteractionCreate) error {
	ictx := NewInteractionContext(ctx, s, i)
	responder := NewDiscordResponder(s, i)

	p.mu.RLock()
	handlers := append([]Handler(nil), p.handlers...)
	errorHandler := p.errorHandler
	p.mu.RUnlock()

	for _, handler := range handlers {
		if !handler.CanHandle(ictx) {
			continue
		}

		result, err := handler.Handle(ictx)
		if err != nil {
			result = errorHandler(ictx, err)
		}
		if result != nil && result.Response != nil {
			if err := responder.Respond(result.Response); err != nil {
				return fmt.Errorf("failed to send response for %s: %w", ictx.Route(), err)
			}
		}
		return nil
	}

	p.logger.Warn("no handler for interaction",
		zap.String("route", ictx.Route()),
		zap.String("user_id", ictx.UserID))
	return responder.Respond(NewEphemeralResponse("I don't know how to handle that command."))
}

// HandleInteraction adapts Execute to discordgo's event handler signature
func (p *Pipeline) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := p.Execute(context.Background(), s, i); err != nil {
		p.logger.Error("interaction failed", zap.Error(err))
	}
}

// HandlerCount returns the number of registered handlers
func (p *Pipeline) HandlerCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.handlers)
}

// DefaultErrorHandler shows the user-facing part of err as an ephemeral
// message
func DefaultErrorHandler(_ *InteractionContext, err error) *HandlerResult {
	return Respond(NewEphemeralResponse(FromError(err).Display()))
}

// MiddlewareChain creates a single middleware from multiple middleware
func MiddlewareChain(middleware ...Middleware) Middleware {
	return func(next Handler) Handler {
		for i := len(middleware) - 1; i >= 0; i-- {
			next = middleware[i](next)
		}
		return next
	}
}
