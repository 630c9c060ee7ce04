package games

//go:generate mockgen -destination=mock/mock.go -package=mockgames -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/othership-bot/internal/domain/game"
)

// Repository persists games and tracks the one active game per guild
type Repository interface {
	// Create stores a new game. It fails with a failed precondition error
	// when the guild already has an active game.
	Create(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID
	Get(ctx context.Context, id string) (*game.Game, error)

	// GetActive returns the guild's active game, or a not found error
	GetActive(ctx context.Context, guildID string) (*game.Game, error)

	// Update replaces a game. Ended games are read-only, and moving a game
	// to a terminal status frees the guild for a new one.
	Update(ctx context.Context, g *game.Game) error

	// ListByGuild returns a guild's games, newest first
	ListByGuild(ctx context.Context, guildID string) ([]*game.Game, error)
}
