package games

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/othership-bot/internal/domain/game"
	apperr "github.com/KirkDiggler/othership-bot/internal/errors"
)

const defaultMaxRetries = 5

// RedisRepoConfig configures the Redis game repository
type RedisRepoConfig struct {
	Client     redis.UniversalClient
	MaxRetries int
}

type redisRepo struct {
	client     redis.UniversalClient
	maxRetries int
}

// NewRedisRepository creates a Redis-backed game repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	}
	return &redisRepo{client: cfg.Client, maxRetries: maxRetries}
}

func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("game:%s", id)
}

func (r *redisRepo) activeKey(guildID string) string {
	return fmt.Sprintf("guild:%s:active_game", guildID)
}

func (r *redisRepo) guildGamesKey(guildID string) string {
	return fmt.Sprintf("guild:%s:games", guildID)
}

func (r *redisRepo) watch(ctx context.Context, fn func(tx *redis.Tx) error, keys ...string) error {
	for i := 0; i < r.maxRetries; i++ {
		err := r.client.Watch(ctx, fn, keys...)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return apperr.Conflict("game is being modified, try again")
}

func (r *redisRepo) Create(ctx context.Context, g *game.Game) error {
	if err := validateForWrite(g); err != nil {
		return err
	}

	payload, err := json.Marshal(toGameData(g))
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	activeKey := r.activeKey(g.GuildID)
	return r.watch(ctx, func(tx *redis.Tx) error {
		activeID, err := tx.Get(ctx, activeKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("failed to read active game: %w", err)
		}
		if activeID != "" && g.IsActive() {
			return guildBusy(g.GuildID, activeID)
		}

		exists, err := tx.Exists(ctx, r.key(g.ID)).Result()
		if err != nil {
			return fmt.Errorf("failed to check game: %w", err)
		}
		if exists > 0 {
			return apperr.AlreadyExistsf("game with ID '%s' already exists", g.ID).WithMeta("game_id", g.ID)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.key(g.ID), string(payload), 0)
			pipe.ZAdd(ctx, r.guildGamesKey(g.GuildID), redis.Z{
				Score:  float64(g.CreatedAt.UnixMilli()),
				Member: g.ID,
			})
			if g.IsActive() {
				pipe.Set(ctx, activeKey, g.ID, 0)
			}
			return nil
		})
		return err
	}, activeKey, r.key(g.ID))
}

// getter is the part of redis.Cmdable shared by clients and transactions
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *redisRepo) load(ctx context.Context, c getter, id string) (*game.Game, error) {
	raw, err := c.Get(ctx, r.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var data GameData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}
	return fromGameData(&data), nil
}

func (r *redisRepo) Get(ctx context.Context, id string) (*game.Game, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("game ID is required")
	}
	return r.load(ctx, r.client, id)
}

func (r *redisRepo) GetActive(ctx context.Context, guildID string) (*game.Game, error) {
	if guildID == "" {
		return nil, apperr.InvalidArgument("guild ID is required")
	}

	id, err := r.client.Get(ctx, r.activeKey(guildID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, noActiveGame(guildID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read active game: %w", err)
	}

	g, err := r.load(ctx, r.client, id)
	if apperr.IsNotFound(err) {
		return nil, noActiveGame(guildID)
	}
	return g, err
}

func (r *redisRepo) Update(ctx context.Context, g *game.Game) error {
	if err := validateForWrite(g); err != nil {
		return err
	}

	payload, err := json.Marshal(toGameData(g))
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	activeKey := r.activeKey(g.GuildID)
	err = r.watch(ctx, func(tx *redis.Tx) error {
		current, err := r.load(ctx, tx, g.ID)
		if err != nil {
			return err
		}
		if !current.IsActive() {
			return alreadyEnded(current)
		}

		activeID, err := tx.Get(ctx, activeKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("failed to read active game: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.key(g.ID), string(payload), 0)
			if !g.IsActive() && activeID == g.ID {
				pipe.Del(ctx, activeKey)
			}
			return nil
		})
		return err
	}, r.key(g.ID), activeKey)
	if err != nil {
		return apperr.Wrapf(err, "failed to update game %s", g.ID)
	}
	return nil
}

func (r *redisRepo) ListByGuild(ctx context.Context, guildID string) ([]*game.Game, error) {
	if guildID == "" {
		return nil, apperr.InvalidArgument("guild ID is required")
	}

	ids, err := r.client.ZRevRange(ctx, r.guildGamesKey(guildID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list game IDs: %w", err)
	}
	if len(ids) == 0 {
		return []*game.Game{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get games: %w", err)
	}

	out := make([]*game.Game, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var data GameData
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game: %w", err)
		}
		out = append(out, fromGameData(&data))
	}
	return out, nil
}
