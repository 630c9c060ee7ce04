package services

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/othership-bot/internal/dice"
	"github.com/KirkDiggler/othership-bot/internal/domain/rulebook/othership"
	"github.com/KirkDiggler/othership-bot/internal/events"
	"github.com/KirkDiggler/othership-bot/internal/repositories/characters"
	"github.com/KirkDiggler/othership-bot/internal/repositories/games"
	rosters "github.com/KirkDiggler/othership-bot/internal/repositories/roster"
	characterService "github.com/KirkDiggler/othership-bot/internal/services/character"
	gameService "github.com/KirkDiggler/othership-bot/internal/services/game"
	rosterService "github.com/KirkDiggler/othership-bot/internal/services/roster"
)

// Provider holds all service instances
type Provider struct {
	CharacterService characterService.Service
	GameService      gameService.Service
	RosterService    rosterService.Service
	EventBus         *events.Bus
	Rulebook         *othership.Rulebook
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	Rulebook *othership.Rulebook // Required

	// RedisClient backs every repository. Without one the in-memory
	// repositories are used, which is only suitable for local runs.
	RedisClient redis.UniversalClient

	Roller dice.Roller
	Logger *zap.Logger
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	if cfg == nil || cfg.Rulebook == nil {
		panic("rulebook is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		charRepo   characters.Repository
		gameRepo   games.Repository
		rosterRepo rosters.Repository
	)
	if cfg.RedisClient != nil {
		charRepo = characters.NewRedisRepository(&characters.RedisRepoConfig{Client: cfg.RedisClient})
		gameRepo = games.NewRedisRepository(&games.RedisRepoConfig{Client: cfg.RedisClient})
		rosterRepo = rosters.NewRedis(cfg.RedisClient, nil)
	} else {
		logger.Warn("no redis client configured, using in-memory repositories")
		charRepo = characters.NewInMemoryRepository()
		gameRepo = games.NewInMemoryRepository()
		rosterRepo = rosters.NewInMemoryRepository(nil)
	}

	bus := events.NewBus(logger)

	return &Provider{
		CharacterService: characterService.NewService(&characterService.ServiceConfig{
			Repository: charRepo,
			Rulebook:   cfg.Rulebook,
			Roller:     cfg.Roller,
			EventBus:   bus,
			Logger:     logger,
		}),
		GameService: gameService.NewService(&gameService.ServiceConfig{
			Repository: gameRepo,
			Characters: charRepo,
			Roster:     rosterRepo,
			Rulebook:   cfg.Rulebook,
			EventBus:   bus,
			Logger:     logger,
		}),
		RosterService: rosterService.NewService(&rosterService.ServiceConfig{
			Repository: rosterRepo,
			Logger:     logger,
		}),
		EventBus: bus,
		Rulebook: cfg.Rulebook,
	}
}
