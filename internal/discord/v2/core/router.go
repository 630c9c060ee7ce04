package core

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Router manages handlers for one slash command and the components it
// renders
type Router struct {
	// Domain is the command name and the custom ID domain
	domain string

	handlers   map[string]Handler
	middleware []Middleware

	definition *discordgo.ApplicationCommand

	customIDBuilder *CustomIDBuilder
	pipeline        *Pipeline
}

// NewRouter creates a new domain router
func NewRouter(domain string, pipeline *Pipeline) *Router {
	return &Router{
		domain:          domain,
		handlers:        make(map[string]Handler),
		customIDBuilder: NewCustomIDBuilder(domain),
		pipeline:        pipeline,
	}
}

// Use adds middleware to this router. It only wraps routes registered
// afterwards.
func (r *Router) Use(middleware ...Middleware) *Router {
	r.middleware = append(r.middleware, middleware...)
	return r
}

// Define sets the slash command registered for this router
func (r *Router) Define(cmd *discordgo.ApplicationCommand) *Router {
	cmd.Name = r.domain
	r.definition = cmd
	return r
}

// Handle registers a handler for a specific action pattern
func (r *Router) Handle(pattern string, handler Handler) *Router {
	wrapped := handler
	for i := len(r.middleware) - 1; i >= 0; i-- {
		wrapped = r.middleware[i](wrapped)
	}

	r.handlers[pattern] = wrapped
	return r
}

// SubcommandFunc registers a subcommand handler function
func (r *Router) SubcommandFunc(sub string, fn HandlerFunc, middleware ...Middleware) *Router {
	return r.Handle(fmt.Sprintf("cmd:%s", sub), chain(fn, middleware))
}

// ComponentFunc registers a component interaction handler function
func (r *Router) ComponentFunc(action string, fn HandlerFunc, middleware ...Middleware) *Router {
	return r.Handle(fmt.Sprintf("component:%s", action), chain(fn, middleware))
}

// ModalFunc registers a modal submit handler function
func (r *Router) ModalFunc(action string, fn HandlerFunc, middleware ...Middleware) *Router {
	return r.Handle(fmt.Sprintf("modal:%s", action), chain(fn, middleware))
}

func chain(h Handler, middleware []Middleware) Handler {
	return MiddlewareChain(middleware...)(h)
}

// Register registers this router with the pipeline
func (r *Router) Register() {
	if r.pipeline == nil {
		return
	}
	r.pipeline.Register(&routerHandler{domain: r.domain, handlers: r.handlers})
	if r.definition != nil {
		r.pipeline.AddCommand(r.definition)
	}
}

// GetCustomIDBuilder returns the CustomID builder for this router
func (r *Router) GetCustomIDBuilder() *CustomIDBuilder {
	return r.customIDBuilder
}

// routerHandler implements Handler for a router
type routerHandler struct {
	domain   string
	handlers map[string]Handler
}

func (h *routerHandler) CanHandle(ctx *InteractionContext) bool {
	_, ok := h.handlers[h.extractPattern(ctx)]
	return ok
}

func (h *routerHandler) Handle(ctx *InteractionContext) (*HandlerResult, error) {
	handler, ok := h.handlers[h.extractPattern(ctx)]
	if !ok {
		return nil, NewHandlerError(nil, "That action is not available.", ErrorCodeNotFound)
	}
	return handler.Handle(ctx)
}

// extractPattern extracts the routing pattern from the interaction
func (h *routerHandler) extractPattern(ctx *InteractionContext) string {
	switch {
	case ctx.IsCommand():
		if ctx.GetCommandName() != h.domain {
			return ""
		}
		return fmt.Sprintf("cmd:%s", ctx.GetSubcommand())
	case ctx.IsComponent(), ctx.IsModal():
		id := ctx.CustomID()
		if id == nil || id.Domain != h.domain {
			return ""
		}
		kind := "component"
		if ctx.IsModal() {
			kind = "modal"
		}
		return fmt.Sprintf("%s:%s", kind, id.Action)
	default:
		return ""
	}
}
