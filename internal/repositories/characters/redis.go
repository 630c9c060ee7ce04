package characters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/othership-bot/internal/domain/character"
	"github.com/KirkDiggler/othership-bot/internal/domain/rulebook/othership"
	apperr "github.com/KirkDiggler/othership-bot/internal/errors"
	"github.com/KirkDiggler/othership-bot/internal/repositories"
)

const (
	defaultDraftTTL   = 7 * 24 * time.Hour
	defaultMaxRetries = 5
)

// RedisRepoConfig configures the Redis character repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider repositories.TimeProvider

	// DraftTTL expires abandoned drafts. Ready characters never expire.
	DraftTTL time.Duration

	// MaxRetries bounds optimistic transaction retries under contention
	MaxRetries int
}

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client       redis.UniversalClient
	timeProvider repositories.TimeProvider
	draftTTL     time.Duration
	maxRetries   int
}

// NewRedisRepository creates a Redis-backed character repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	r := &redisRepo{
		client:       cfg.Client,
		timeProvider: cfg.TimeProvider,
		draftTTL:     cfg.DraftTTL,
		maxRetries:   cfg.MaxRetries,
	}
	if r.timeProvider == nil {
		r.timeProvider = repositories.RealTime()
	}
	if r.draftTTL == 0 {
		r.draftTTL = defaultDraftTTL
	}
	if r.maxRetries == 0 {
		r.maxRetries = defaultMaxRetries
	}
	return r
}

func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("character:%s", id)
}

func (r *redisRepo) ownerCharactersKey(guildID, ownerID string) string {
	return fmt.Sprintf("guild:%s:owner:%s:characters", guildID, ownerID)
}

func (r *redisRepo) gameCharactersKey(gameID string) string {
	return fmt.Sprintf("game:%s:characters", gameID)
}

// slotKey points at the character an owner holds in a game
func (r *redisRepo) slotKey(guildID, gameID, ownerID string) string {
	return fmt.Sprintf("guild:%s:game:%s:owner:%s:character", guildID, gameID, ownerID)
}

func (r *redisRepo) ttl(status string) time.Duration {
	if status == string(character.StatusReady) {
		return 0
	}
	return r.draftTTL
}

func (r *redisRepo) Create(ctx context.Context, char *character.Character) error {
	if err := validateForWrite(char); err != nil {
		return err
	}

	now := r.timeProvider.Now()
	data := toCharacterData(char)
	data.CreatedAt = now
	data.UpdatedAt = now
	data.Version = 1

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	var slot []string
	if char.GameID != "" {
		slot = append(slot, r.slotKey(char.GuildID, char.GameID, char.OwnerID))
	}

	err = r.watch(ctx, char.ID, func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, r.key(char.ID)).Result()
		if err != nil {
			return fmt.Errorf("failed to create character: %w", err)
		}
		if exists > 0 {
			return apperr.AlreadyExistsf("character with ID '%s' already exists", char.ID).
				WithMeta("character_id", char.ID)
		}
		if len(slot) > 0 {
			if err := r.checkSlot(ctx, tx, slot[0], char); err != nil {
				return err
			}
		}

		ttl := r.ttl(data.Status)
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.key(char.ID), string(payload), ttl)
			pipe.SAdd(ctx, r.ownerCharactersKey(char.GuildID, char.OwnerID), char.ID)
			if len(slot) > 0 {
				pipe.SAdd(ctx, r.gameCharactersKey(char.GameID), char.ID)
				pipe.Set(ctx, slot[0], char.ID, ttl)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to create character: %w", err)
		}
		return nil
	}, slot...)
	if err != nil {
		return err
	}

	char.CreatedAt, char.UpdatedAt, char.Version = now, now, data.Version
	return nil
}

// checkSlot fails when the owner's game slot still points at a live character.
// A slot left behind by an expired draft is free.
func (r *redisRepo) checkSlot(ctx context.Context, tx *redis.Tx, slot string, char *character.Character) error {
	holder, err := tx.Get(ctx, slot).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read game slot: %w", err)
	}

	live, err := tx.Exists(ctx, r.key(holder)).Result()
	if err != nil {
		return fmt.Errorf("failed to read game slot: %w", err)
	}
	if live == 0 {
		return nil
	}
	return apperr.AlreadyExistsf("player already has a character in game %s", char.GameID).
		WithMeta("character_id", holder).
		WithMeta("game_id", char.GameID)
}

func (r *redisRepo) Get(ctx context.Context, id string) (*character.Character, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}

	data, err := r.load(ctx, r.client, id)
	if err != nil {
		return nil, err
	}
	return fromCharacterData(data), nil
}

// getter is the part of redis.Cmdable shared by clients and transactions
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *redisRepo) load(ctx context.Context, g getter, id string) (*CharacterData, error) {
	raw, err := g.Get(ctx, r.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	var data CharacterData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character: %w", err)
	}
	if data.Stats == nil {
		data.Stats = make(map[string]int)
	}
	if data.Saves == nil {
		data.Saves = make(map[string]int)
	}
	return &data, nil
}

// watch runs fn inside WATCH on the character key plus any extra keys,
// retrying when another writer touched them between the read and EXEC
func (r *redisRepo) watch(ctx context.Context, id string, fn func(tx *redis.Tx) error, extra ...string) error {
	keys := append([]string{r.key(id)}, extra...)
	for i := 0; i < r.maxRetries; i++ {
		err := r.client.Watch(ctx, fn, keys...)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return apperr.Conflictf("character %s is being modified, try again", id).
		WithMeta("character_id", id)
}

// commit writes data inside the watched transaction. The game slot follows
// the character's expiry so a finalized character holds it for good.
func (r *redisRepo) commit(ctx context.Context, tx *redis.Tx, data *CharacterData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}
	ttl := r.ttl(data.Status)
	_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(data.ID), string(payload), ttl)
		if data.GameID != "" {
			pipe.Set(ctx, r.slotKey(data.GuildID, data.GameID, data.OwnerID), data.ID, ttl)
		}
		return nil
	})
	return err
}

func (r *redisRepo) Update(ctx context.Context, char *character.Character) error {
	if err := validateForWrite(char); err != nil {
		return err
	}

	var next *CharacterData
	err := r.watch(ctx, char.ID, func(tx *redis.Tx) error {
		current, err := r.load(ctx, tx, char.ID)
		if err != nil {
			return err
		}
		if current.Version != char.Version {
			return apperr.Conflictf("character %s changed since it was read", char.ID).
				WithMeta("character_id", char.ID).
				WithMeta("stored_version", current.Version)
		}

		next = toCharacterData(char)
		next.CreatedAt = current.CreatedAt
		next.UpdatedAt = r.timeProvider.Now()
		next.Version = current.Version + 1
		return r.commit(ctx, tx, next)
	})
	if err != nil {
		return apperr.Wrapf(err, "failed to update character %s", char.ID)
	}

	char.CreatedAt, char.UpdatedAt, char.Version = next.CreatedAt, next.UpdatedAt, next.Version
	return nil
}

func (r *redisRepo) SetStatIfUnset(ctx context.Context, id string, stat othership.Stat, value int) (*character.Character, error) {
	return r.setIfUnset(ctx, id, string(stat), stat.Display(), value, func(d *CharacterData) map[string]int {
		return d.Stats
	})
}

func (r *redisRepo) SetSaveIfUnset(ctx context.Context, id string, save othership.Save, value int) (*character.Character, error) {
	return r.setIfUnset(ctx, id, string(save), save.Display(), value, func(d *CharacterData) map[string]int {
		return d.Saves
	})
}

// setIfUnset is the atomic conditional write behind rolling: the value is
// only stored if the field is still zero when EXEC runs
func (r *redisRepo) setIfUnset(ctx context.Context, id, name, display string, value int, field func(*CharacterData) map[string]int) (*character.Character, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}
	if value <= 0 {
		return nil, apperr.InvalidArgumentf("rolled value must be positive, got %d", value)
	}

	var next *CharacterData
	err := r.watch(ctx, id, func(tx *redis.Tx) error {
		current, err := r.load(ctx, tx, id)
		if err != nil {
			return err
		}
		values := field(current)
		if values[name] != 0 {
			return alreadyRolled(id, display)
		}
		values[name] = value
		current.UpdatedAt = r.timeProvider.Now()
		current.Version++
		next = current
		return r.commit(ctx, tx, current)
	})
	if err != nil {
		return nil, err
	}
	return fromCharacterData(next), nil
}

func (r *redisRepo) Delete(ctx context.Context, id string) error {
	data, err := r.load(ctx, r.client, id)
	if err != nil {
		return err
	}

	var slot string
	if data.GameID != "" {
		slot = r.slotKey(data.GuildID, data.GameID, data.OwnerID)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.key(id))
	pipe.SRem(ctx, r.ownerCharactersKey(data.GuildID, data.OwnerID), id)
	if slot != "" {
		pipe.SRem(ctx, r.gameCharactersKey(data.GameID), id)
		pipe.Del(ctx, slot)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	return nil
}

func (r *redisRepo) ListByOwner(ctx context.Context, guildID, ownerID string) ([]*character.Character, error) {
	if guildID == "" || ownerID == "" {
		return nil, apperr.InvalidArgument("guild ID and owner ID are required")
	}

	ids, err := r.client.SMembers(ctx, r.ownerCharactersKey(guildID, ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list character IDs: %w", err)
	}
	if len(ids) == 0 {
		return []*character.Character{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get characters: %w", err)
	}

	chars := make([]*character.Character, 0, len(values))
	for _, v := range values {
		// expired drafts leave a stale index entry behind
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var data CharacterData
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal character: %w", err)
		}
		chars = append(chars, fromCharacterData(&data))
	}

	sortByCreated(chars)
	return chars, nil
}

func (r *redisRepo) ListByGame(ctx context.Context, gameID string) ([]*character.Character, error) {
	if gameID == "" {
		return nil, apperr.InvalidArgument("game ID is required")
	}

	ids, err := r.client.SMembers(ctx, r.gameCharactersKey(gameID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list character IDs: %w", err)
	}

	found := make([]*character.Character, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			char, err := r.Get(ctx, id)
			if apperr.IsNotFound(err) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to get character %s: %w", id, err)
			}
			found[i] = char
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	chars := make([]*character.Character, 0, len(found))
	for _, c := range found {
		if c != nil {
			chars = append(chars, c)
		}
	}
	sortByCreated(chars)
	return chars, nil
}
