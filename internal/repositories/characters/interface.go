package characters

//go:generate mockgen -destination=mock/mock.go -package=mockcharacters -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/othership-bot/internal/domain/character"
	"github.com/KirkDiggler/othership-bot/internal/domain/rulebook/othership"
)

// Repository defines the interface for character persistence
type Repository interface {
	// Create stores a new character. Version and timestamps are set on char.
	// A player holds at most one live character per game, so a second one for
	// the same guild, owner and game fails with an already-exists error.
	Create(ctx context.Context, char *character.Character) error

	// Get retrieves a character by ID
	Get(ctx context.Context, id string) (*character.Character, error)

	// Update replaces a character. It fails with a conflict error when the
	// stored version differs from char.Version, and bumps char.Version on
	// success.
	Update(ctx context.Context, char *character.Character) error

	// Delete removes a character and its index entries
	Delete(ctx context.Context, id string) error

	// ListByOwner returns a player's characters in a guild, oldest first
	ListByOwner(ctx context.Context, guildID, ownerID string) ([]*character.Character, error)

	// ListByGame returns every character created for a game, oldest first
	ListByGame(ctx context.Context, gameID string) ([]*character.Character, error)

	// SetStatIfUnset stores a rolled stat only while it is still zero. A
	// second roll fails with a validation error.
	SetStatIfUnset(ctx context.Context, id string, stat othership.Stat, value int) (*character.Character, error)

	// SetSaveIfUnset stores a rolled save only while it is still zero
	SetSaveIfUnset(ctx context.Context, id string, save othership.Save, value int) (*character.Character, error)
}
