package notifications

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/KirkDiggler/othership-bot/internal/discord/v2/builders"
	"github.com/KirkDiggler/othership-bot/internal/domain/game"
	"github.com/KirkDiggler/othership-bot/internal/domain/rulebook/othership"
	"github.com/KirkDiggler/othership-bot/internal/events"
)

const (
	listenerID  = "notifications"
	postTimeout = 10 * time.Second
)

// GameLookup finds the game a character belongs to
type GameLookup interface {
	GetGame(ctx context.Context, gameID string) (*game.Game, error)
}

// ListenerConfig holds configuration for the announcement listener
type ListenerConfig struct {
	Notifier Notifier            // Required
	Games    GameLookup          // Required
	Rulebook *othership.Rulebook // Optional, adds scenario names
	Logger   *zap.Logger
}

// Listener turns lifecycle events into channel posts. Posts run in the
// background so a slow Discord never holds up the emitting operation.
// Failures are logged.
type Listener struct {
	notifier Notifier
	games    GameLookup
	rulebook *othership.Rulebook
	logger   *zap.Logger
	inflight sync.WaitGroup
}

// NewListener creates an announcement listener
func NewListener(cfg *ListenerConfig) *Listener {
	if cfg == nil || cfg.Notifier == nil || cfg.Games == nil {
		panic("notifier and game lookup are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Listener{
		notifier: cfg.Notifier,
		games:    cfg.Games,
		rulebook: cfg.Rulebook,
		logger:   logger.Named("notifications"),
	}
}

// Subscribe registers the listener for every announced event
func (l *Listener) Subscribe(bus *events.Bus) {
	for _, t := range append(events.GameEventTypes(), events.EventTypeCharacterReady) {
		bus.Subscribe(t, l)
	}
}

func (l *Listener) ID() string    { return listenerID }
func (l *Listener) Priority() int { return events.PriorityNotifications }

// HandleEvent starts posting the announcement for event and returns nil
// without waiting for it
func (l *Listener) HandleEvent(event events.Event) error {
	l.inflight.Add(1)
	go func() {
		defer l.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), postTimeout)
		defer cancel()
		l.announce(ctx, event)
	}()
	return nil
}

// Wait blocks until every started announcement has been posted or has failed
func (l *Listener) Wait() {
	l.inflight.Wait()
}

func (l *Listener) announce(ctx context.Context, event events.Event) {
	channelID, msg, err := l.render(ctx, event)
	if err != nil {
		l.logger.Warn("failed to build announcement",
			zap.String("event", string(event.GetType())),
			zap.String("guild_id", event.GetGuildID()),
			zap.Error(err))
		return
	}
	if msg == nil {
		return
	}

	if err := l.notifier.Post(ctx, channelID, msg); err != nil {
		l.logger.Warn("failed to post announcement",
			zap.String("event", string(event.GetType())),
			zap.String("guild_id", event.GetGuildID()),
			zap.String("channel_id", channelID),
			zap.Error(err))
	}
}

func (l *Listener) render(ctx context.Context, event events.Event) (string, *Message, error) {
	switch e := event.(type) {
	case *events.GameEvent:
		return e.Game.ChannelID, l.gameMessage(e), nil
	case *events.CharacterReadyEvent:
		g, err := l.games.GetGame(ctx, e.Character.GameID)
		if err != nil {
			return "", nil, err
		}
		name := e.Character.Name
		if name == "" {
			name = "A new crew member"
		}
		embed := builders.SuccessEmbed(name+" is ready",
			fmt.Sprintf("<@%s> finished their character.", e.Character.OwnerID)).
			Thumbnail(e.Character.AvatarURL).
			Build()
		return g.ChannelID, &Message{Embed: embed}, nil
	default:
		return "", nil, nil
	}
}

func (l *Listener) gameMessage(e *events.GameEvent) *Message {
	g := e.Game
	scenario := g.ScenarioID
	if l.rulebook != nil {
		if sc, ok := l.rulebook.Scenario(g.ScenarioID); ok {
			scenario = sc.Name
		}
	}

	var embed *builders.EmbedBuilder
	content := ""
	switch e.GetType() {
	case events.EventTypeGameStarted:
		embed = builders.InfoEmbed(scenario+" is starting",
			"Character creation is open. Use `/character create` to build your crew member.")
		content = mentions(g.PlayerIDs)
	case events.EventTypeGameInProgress:
		embed = builders.NewEmbed().
			Title(scenario + " is underway").
			Description("Every crew member is ready. Good luck out there.").
			Color(builders.ColorHull)
		content = mentions(g.PlayerIDs)
	case events.EventTypeGameCompleted:
		embed = builders.SuccessEmbed(scenario+" is complete", "Thanks for playing.")
	case events.EventTypeGameCancelled:
		embed = builders.WarningEmbed(scenario+" was cancelled", "The game was called off.")
	default:
		return nil
	}

	embed.Field("Players", fmt.Sprintf("%d", len(g.PlayerIDs)), true)
	if e.ActorID != "" {
		embed.Field("By", "<@"+e.ActorID+">", true)
	}
	return &Message{Content: content, Embed: embed.Build()}
}

func mentions(userIDs []string) string {
	parts := make([]string, len(userIDs))
	for i, id := range userIDs {
		parts[i] = "<@" + id + ">"
	}
	return strings.Join(parts, " ")
}

var _ events.EventListener = (*Listener)(nil)
var _ Notifier = (*DiscordNotifier)(nil)

// compile-time check that *discordgo.Session can back the notifier
var _ ChannelSender = (*discordgo.Session)(nil)
