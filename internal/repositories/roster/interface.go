package roster

//go:generate mockgen -destination=mock/mock.go -package=mockroster -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/othership-bot/internal/domain/roster"
)

// Repository stores who in each guild has opted in to play
type Repository interface {
	// Add stores an entry stamped with the current time. When the user is
	// already on the roster the stored entry is returned unchanged and
	// created is false.
	Add(ctx context.Context, guildID, userID, displayName string) (entry *roster.Entry, created bool, err error)

	// Remove deletes an entry and reports whether one existed
	Remove(ctx context.Context, guildID, userID string) (bool, error)

	// Get returns one entry, or a not found error
	Get(ctx context.Context, guildID, userID string) (*roster.Entry, error)

	// List returns a guild's roster, earliest join first
	List(ctx context.Context, guildID string) ([]*roster.Entry, error)
}
