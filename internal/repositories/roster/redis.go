package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/othership-bot/internal/domain/roster"
	"github.com/KirkDiggler/othership-bot/internal/repositories"
)

type redisRepo struct {
	client       redis.UniversalClient
	timeProvider repositories.TimeProvider
}

// NewRedis creates a roster repository keeping one hash per guild
func NewRedis(client redis.UniversalClient, tp repositories.TimeProvider) Repository {
	if client == nil {
		panic("Redis client cannot be nil")
	}
	if tp == nil {
		tp = repositories.RealTime()
	}
	return &redisRepo{client: client, timeProvider: tp}
}

func (r *redisRepo) key(guildID string) string {
	return fmt.Sprintf("roster:%s", guildID)
}

func (r *redisRepo) Add(ctx context.Context, guildID, userID, displayName string) (*roster.Entry, bool, error) {
	if err := validateIDs(guildID, userID); err != nil {
		return nil, false, err
	}

	entry := &roster.Entry{
		GuildID:     guildID,
		UserID:      userID,
		DisplayName: displayName,
		JoinedAt:    r.timeProvider.Now(),
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal roster entry: %w", err)
	}

	created, err := r.client.HSetNX(ctx, r.key(guildID), userID, string(payload)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to add roster entry: %w", err)
	}
	if created {
		return entry, true, nil
	}

	existing, err := r.Get(ctx, guildID, userID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *redisRepo) Remove(ctx context.Context, guildID, userID string) (bool, error) {
	if err := validateIDs(guildID, userID); err != nil {
		return false, err
	}

	n, err := r.client.HDel(ctx, r.key(guildID), userID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to remove roster entry: %w", err)
	}
	return n > 0, nil
}

func (r *redisRepo) Get(ctx context.Context, guildID, userID string) (*roster.Entry, error) {
	if err := validateIDs(guildID, userID); err != nil {
		return nil, err
	}

	raw, err := r.client.HGet(ctx, r.key(guildID), userID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, notOnRoster(guildID, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get roster entry: %w", err)
	}

	var entry roster.Entry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roster entry: %w", err)
	}
	return &entry, nil
}

func (r *redisRepo) List(ctx context.Context, guildID string) ([]*roster.Entry, error) {
	if err := validateGuild(guildID); err != nil {
		return nil, err
	}

	all, err := r.client.HGetAll(ctx, r.key(guildID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}

	entries := make([]*roster.Entry, 0, len(all))
	for userID, raw := range all {
		var entry roster.Entry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal roster entry for %s: %w", userID, err)
		}
		entries = append(entries, &entry)
	}
	sortByJoined(entries)
	return entries, nil
}
