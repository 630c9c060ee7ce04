package characters

import (
	"context"
	"sync"

	"github.com/KirkDiggler/othership-bot/internal/domain/character"
	"github.com/KirkDiggler/othership-bot/internal/domain/rulebook/othership"
	apperr "github.com/KirkDiggler/othership-bot/internal/errors"
	"github.com/KirkDiggler/othership-bot/internal/repositories"
)

// InMemoryRepository is an in-memory implementation of the character repository
// Useful for testing and development
type InMemoryRepository struct {
	mu           sync.RWMutex
	characters   map[string]*character.Character
	timeProvider repositories.TimeProvider
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() Repository {
	return NewInMemoryRepositoryWithTime(repositories.RealTime())
}

// NewInMemoryRepositoryWithTime creates an in-memory repository with a fixed clock
func NewInMemoryRepositoryWithTime(tp repositories.TimeProvider) *InMemoryRepository {
	return &InMemoryRepository{
		characters:   make(map[string]*character.Character),
		timeProvider: tp,
	}
}

func (r *InMemoryRepository) Create(_ context.Context, char *character.Character) error {
	if err := validateForWrite(char); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[char.ID]; exists {
		return apperr.AlreadyExistsf("character with ID '%s' already exists", char.ID).
			WithMeta("character_id", char.ID)
	}
	if char.GameID != "" {
		for _, c := range r.characters {
			if c.GuildID == char.GuildID && c.OwnerID == char.OwnerID && c.GameID == char.GameID {
				return apperr.AlreadyExistsf("player already has a character in game %s", char.GameID).
					WithMeta("character_id", c.ID).
					WithMeta("game_id", char.GameID)
			}
		}
	}

	now := r.timeProvider.Now()
	char.CreatedAt, char.UpdatedAt, char.Version = now, now, 1
	r.characters[char.ID] = char.Clone()
	return nil
}

func (r *InMemoryRepository) Get(_ context.Context, id string) (*character.Character, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	char, exists := r.characters[id]
	if !exists {
		return nil, notFound(id)
	}
	return char.Clone(), nil
}

func (r *InMemoryRepository) Update(_ context.Context, char *character.Character) error {
	if err := validateForWrite(char); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.characters[char.ID]
	if !exists {
		return notFound(char.ID)
	}
	if current.Version != char.Version {
		return apperr.Conflictf("character %s changed since it was read", char.ID).
			WithMeta("character_id", char.ID).
			WithMeta("stored_version", current.Version)
	}

	char.CreatedAt = current.CreatedAt
	char.UpdatedAt = r.timeProvider.Now()
	char.Version = current.Version + 1
	r.characters[char.ID] = char.Clone()
	return nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[id]; !exists {
		return notFound(id)
	}
	delete(r.characters, id)
	return nil
}

func (r *InMemoryRepository) ListByOwner(_ context.Context, guildID, ownerID string) ([]*character.Character, error) {
	if guildID == "" || ownerID == "" {
		return nil, apperr.InvalidArgument("guild ID and owner ID are required")
	}
	return r.filter(func(c *character.Character) bool {
		return c.GuildID == guildID && c.OwnerID == ownerID
	}), nil
}

func (r *InMemoryRepository) ListByGame(_ context.Context, gameID string) ([]*character.Character, error) {
	if gameID == "" {
		return nil, apperr.InvalidArgument("game ID is required")
	}
	return r.filter(func(c *character.Character) bool {
		return c.GameID == gameID
	}), nil
}

func (r *InMemoryRepository) filter(keep func(*character.Character) bool) []*character.Character {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*character.Character, 0)
	for _, c := range r.characters {
		if keep(c) {
			out = append(out, c.Clone())
		}
	}
	sortByCreated(out)
	return out
}

func (r *InMemoryRepository) SetStatIfUnset(_ context.Context, id string, stat othership.Stat, value int) (*character.Character, error) {
	return r.setIfUnset(id, value, stat.Display(), func(c *character.Character) int {
		return c.Stats[stat]
	}, func(c *character.Character) {
		c.Stats[stat] = value
	})
}

func (r *InMemoryRepository) SetSaveIfUnset(_ context.Context, id string, save othership.Save, value int) (*character.Character, error) {
	return r.setIfUnset(id, value, save.Display(), func(c *character.Character) int {
		return c.Saves[save]
	}, func(c *character.Character) {
		c.Saves[save] = value
	})
}

func (r *InMemoryRepository) setIfUnset(id string, value int, display string, current func(*character.Character) int, set func(*character.Character)) (*character.Character, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}
	if value <= 0 {
		return nil, apperr.InvalidArgumentf("rolled value must be positive, got %d", value)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.characters[id]
	if !exists {
		return nil, notFound(id)
	}
	if current(stored) != 0 {
		return nil, alreadyRolled(id, display)
	}

	next := stored.Clone()
	set(next)
	next.UpdatedAt = r.timeProvider.Now()
	next.Version++
	r.characters[id] = next
	return next.Clone(), nil
}
