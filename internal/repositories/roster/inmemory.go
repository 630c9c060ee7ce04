package roster

import (
	"context"
	"sync"

	"github.com/KirkDiggler/othership-bot/internal/domain/roster"
	"github.com/KirkDiggler/othership-bot/internal/repositories"
)

// InMemoryRepository keeps rosters in process memory
type InMemoryRepository struct {
	mu           sync.RWMutex
	guilds       map[string]map[string]roster.Entry
	timeProvider repositories.TimeProvider
}

// NewInMemoryRepository creates an empty repository. A nil time provider
// uses the wall clock.
func NewInMemoryRepository(tp repositories.TimeProvider) *InMemoryRepository {
	if tp == nil {
		tp = repositories.RealTime()
	}
	return &InMemoryRepository{
		guilds:       make(map[string]map[string]roster.Entry),
		timeProvider: tp,
	}
}

func (r *InMemoryRepository) Add(_ context.Context, guildID, userID, displayName string) (*roster.Entry, bool, error) {
	if err := validateIDs(guildID, userID); err != nil {
		return nil, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.guilds[guildID]
	if !ok {
		members = make(map[string]roster.Entry)
		r.guilds[guildID] = members
	}
	if existing, ok := members[userID]; ok {
		return &existing, false, nil
	}

	entry := roster.Entry{
		GuildID:     guildID,
		UserID:      userID,
		DisplayName: displayName,
		JoinedAt:    r.timeProvider.Now(),
	}
	members[userID] = entry
	return &entry, true, nil
}

func (r *InMemoryRepository) Remove(_ context.Context, guildID, userID string) (bool, error) {
	if err := validateIDs(guildID, userID); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.guilds[guildID][userID]; !ok {
		return false, nil
	}
	delete(r.guilds[guildID], userID)
	return true, nil
}

func (r *InMemoryRepository) Get(_ context.Context, guildID, userID string) (*roster.Entry, error) {
	if err := validateIDs(guildID, userID); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.guilds[guildID][userID]
	if !ok {
		return nil, notOnRoster(guildID, userID)
	}
	return &entry, nil
}

func (r *InMemoryRepository) List(_ context.Context, guildID string) ([]*roster.Entry, error) {
	if err := validateGuild(guildID); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*roster.Entry, 0, len(r.guilds[guildID]))
	for _, e := range r.guilds[guildID] {
		entry := e
		entries = append(entries, &entry)
	}
	sortByJoined(entries)
	return entries, nil
}
