package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KirkDiggler/othership-bot/internal/config"
	"github.com/KirkDiggler/othership-bot/internal/dice"
	"github.com/KirkDiggler/othership-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/othership-bot/internal/discord/v2/middleware"
	"github.com/KirkDiggler/othership-bot/internal/discord/v2/routers"
	"github.com/KirkDiggler/othership-bot/internal/logging"
	"github.com/KirkDiggler/othership-bot/internal/notifications"
	"github.com/KirkDiggler/othership-bot/internal/repositories"
	"github.com/KirkDiggler/othership-bot/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Connect to Discord and run the bot",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	rb, err := loadRulebook(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	redisClient := connectRedis(cmd.Context(), cfg.Redis, logger)
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("failed to close redis", zap.Error(err))
			}
		}()
	}

	providerCfg := &services.ProviderConfig{
		Rulebook: rb,
		Roller:   dice.NewRandomRoller(),
		Logger:   logger,
	}
	var limits middleware.RateLimitStore = middleware.NewMemoryRateLimitStore(repositories.RealTime())
	if redisClient != nil {
		providerCfg.RedisClient = redisClient
		limits = middleware.NewRedisRateLimitStore(redisClient)
	}
	provider := services.NewProvider(providerCfg)

	pipeline := core.NewPipeline(logger)
	pipeline.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.ErrorMiddleware(logger),
		middleware.UserRateLimitMiddleware(cfg.RateLimit.PerMinute, time.Minute, limits, logger),
	)
	routers.NewRosterRouter(pipeline, provider)
	routers.NewGameRouter(pipeline, provider)
	routers.NewCharacterRouter(pipeline, provider)

	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return fmt.Errorf("failed to create discord session: %w", err)
	}

	announcer := notifications.NewListener(&notifications.ListenerConfig{
		Notifier: notifications.NewDiscordNotifier(dg),
		Games:    provider.GameService,
		Rulebook: rb,
		Logger:   logger,
	})
	announcer.Subscribe(provider.EventBus)

	dg.AddHandler(pipeline.HandleInteraction)
	dg.Identify.Intents = discordgo.IntentsGuilds

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open discord connection: %w", err)
	}
	defer func() {
		if err := dg.Close(); err != nil {
			logger.Warn("failed to close discord connection", zap.Error(err))
		}
	}()
	// pending announcements still need the open session
	defer announcer.Wait()

	if _, err := dg.ApplicationCommandBulkOverwrite(cfg.Discord.AppID, cfg.Discord.GuildID, pipeline.Commands()); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}
	if cfg.Discord.GuildID != "" {
		logger.Info("registered guild commands", zap.String("guild_id", cfg.Discord.GuildID))
	} else {
		logger.Info("registered global commands, they may take up to an hour to propagate")
	}

	logger.Info("bot is running", zap.Int("handlers", pipeline.HandlerCount()))

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sc:
	case <-cmd.Context().Done():
	}

	logger.Info("shutting down")
	return nil
}

// connectRedis returns nil when no URL is configured or redis is
// unreachable, which selects the in-memory repositories
func connectRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *redis.Client {
	if cfg.URL == "" {
		logger.Info("no REDIS_URL configured, using in-memory repositories")
		return nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		logger.Warn("failed to parse redis url, using in-memory repositories", zap.Error(err))
		return nil
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("failed to connect to redis, using in-memory repositories", zap.Error(err))
		_ = client.Close()
		return nil
	}

	logger.Info("connected to redis", zap.String("addr", opts.Addr))
	return client
}
