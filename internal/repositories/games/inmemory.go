package games

import (
	"context"
	"sync"

	"github.com/KirkDiggler/othership-bot/internal/domain/game"
	apperr "github.com/KirkDiggler/othership-bot/internal/errors"
)

// InMemoryRepository keeps games in process memory
type InMemoryRepository struct {
	mu     sync.RWMutex
	games  map[string]*game.Game
	active map[string]string
}

// NewInMemoryRepository creates an empty repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		games:  make(map[string]*game.Game),
		active: make(map[string]string),
	}
}

func (r *InMemoryRepository) Create(_ context.Context, g *game.Game) error {
	if err := validateForWrite(g); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if activeID, busy := r.active[g.GuildID]; busy && g.IsActive() {
		return guildBusy(g.GuildID, activeID)
	}
	if _, exists := r.games[g.ID]; exists {
		return apperr.AlreadyExistsf("game with ID '%s' already exists", g.ID).WithMeta("game_id", g.ID)
	}

	r.games[g.ID] = g.Clone()
	if g.IsActive() {
		r.active[g.GuildID] = g.ID
	}
	return nil
}

func (r *InMemoryRepository) Get(_ context.Context, id string) (*game.Game, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("game ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.games[id]
	if !ok {
		return nil, notFound(id)
	}
	return g.Clone(), nil
}

func (r *InMemoryRepository) GetActive(_ context.Context, guildID string) (*game.Game, error) {
	if guildID == "" {
		return nil, apperr.InvalidArgument("guild ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.active[guildID]
	if !ok {
		return nil, noActiveGame(guildID)
	}
	return r.games[id].Clone(), nil
}

func (r *InMemoryRepository) Update(_ context.Context, g *game.Game) error {
	if err := validateForWrite(g); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.games[g.ID]
	if !ok {
		return notFound(g.ID)
	}
	if !current.IsActive() {
		return alreadyEnded(current)
	}

	r.games[g.ID] = g.Clone()
	if !g.IsActive() && r.active[g.GuildID] == g.ID {
		delete(r.active, g.GuildID)
	}
	return nil
}

func (r *InMemoryRepository) ListByGuild(_ context.Context, guildID string) ([]*game.Game, error) {
	if guildID == "" {
		return nil, apperr.InvalidArgument("guild ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*game.Game, 0)
	for _, g := range r.games {
		if g.GuildID == guildID {
			out = append(out, g.Clone())
		}
	}
	sortNewestFirst(out)
	return out, nil
}
