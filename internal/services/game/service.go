package game

//go:generate mockgen -destination=mock/mock_service.go -package=mockgame -source=service.go

import (
	"context"

	"go.uber.org/zap"

	"github.com/KirkDiggler/othership-bot/internal/domain/character"
	"github.com/KirkDiggler/othership-bot/internal/domain/game"
	"github.com/KirkDiggler/othership-bot/internal/domain/rulebook/othership"
	apperr "github.com/KirkDiggler/othership-bot/internal/errors"
	"github.com/KirkDiggler/othership-bot/internal/events"
	"github.com/KirkDiggler/othership-bot/internal/repositories"
	"github.com/KirkDiggler/othership-bot/internal/repositories/characters"
	"github.com/KirkDiggler/othership-bot/internal/repositories/games"
	rosterRepo "github.com/KirkDiggler/othership-bot/internal/repositories/roster"
	"github.com/KirkDiggler/othership-bot/internal/uuid"
)

// Repository is an alias for the game repository interface
type Repository = games.Repository

// Service runs the game lifecycle
type Service interface {
	// StartGame opens a game for the guild's current roster
	StartGame(ctx context.Context, input *StartGameInput) (*game.Game, error)

	// GetGame retrieves a game by ID
	GetGame(ctx context.Context, gameID string) (*game.Game, error)

	// GetActiveGame returns the guild's running game
	GetActiveGame(ctx context.Context, guildID string) (*game.Game, error)

	// ListGames returns a guild's games, newest first
	ListGames(ctx context.Context, guildID string) ([]*game.Game, error)

	// PlayerGame returns the active game the user is creating a character for
	PlayerGame(ctx context.Context, guildID, userID string) (*game.Game, error)

	// Progress reports each player's character in a game
	Progress(ctx context.Context, gameID string) (*Progress, error)

	// CharacterReady moves the game in progress once every player has a
	// ready character
	CharacterReady(ctx context.Context, gameID string) (*game.Game, error)

	// EndGame completes a game in progress
	EndGame(ctx context.Context, gameID, actorID string) (*game.Game, error)

	// CancelGame abandons a game that has not ended
	CancelGame(ctx context.Context, gameID, actorID string) (*game.Game, error)
}

// StartGameInput describes a new game
type StartGameInput struct {
	GuildID    string
	ChannelID  string
	AdminID    string
	ScenarioID string
}

// PlayerProgress is one player's character state. Character is nil until
// the player starts the wizard.
type PlayerProgress struct {
	UserID    string
	Character *character.Character
}

// Ready reports whether the player has finalized a character
func (p PlayerProgress) Ready() bool {
	return p.Character != nil && p.Character.IsReady()
}

// Progress summarizes a game for status displays
type Progress struct {
	Game     *game.Game
	Scenario *othership.Scenario
	Players  []PlayerProgress
}

// ReadyCount is the number of players with a ready character
func (p *Progress) ReadyCount() int {
	n := 0
	for _, pl := range p.Players {
		if pl.Ready() {
			n++
		}
	}
	return n
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    Repository            // Required
	Characters    characters.Repository // Required
	Roster        rosterRepo.Repository // Required
	Rulebook      *othership.Rulebook   // Required
	UUIDGenerator uuid.Generator
	EventBus      *events.Bus
	TimeProvider  repositories.TimeProvider
	Logger        *zap.Logger
}

type service struct {
	repository Repository
	characters characters.Repository
	roster     rosterRepo.Repository
	rulebook   *othership.Rulebook
	ids        uuid.Generator
	bus        *events.Bus
	clock      repositories.TimeProvider
	logger     *zap.Logger
}

// NewService creates a game service. It subscribes to character_ready on
// the bus so games advance as soon as the last character is finalized.
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig cannot be nil")
	}
	if cfg.Repository == nil || cfg.Characters == nil || cfg.Roster == nil {
		panic("game, character and roster repositories are required")
	}
	if cfg.Rulebook == nil {
		panic("rulebook is required")
	}

	svc := &service{
		repository: cfg.Repository,
		characters: cfg.Characters,
		roster:     cfg.Roster,
		rulebook:   cfg.Rulebook,
		ids:        cfg.UUIDGenerator,
		bus:        cfg.EventBus,
		clock:      cfg.TimeProvider,
		logger:     cfg.Logger,
	}
	if svc.ids == nil {
		svc.ids = uuid.NewGoogleUUIDGenerator()
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	svc.logger = svc.logger.Named("game")
	if svc.bus == nil {
		svc.bus = events.NewBus(svc.logger)
	}
	if svc.clock == nil {
		svc.clock = repositories.RealTime()
	}

	svc.bus.Subscribe(events.EventTypeCharacterReady, &events.ListenerFunc{
		Name:  "game-progression",
		Order: events.PriorityState,
		Fn:    svc.onCharacterReady,
	})
	return svc
}

func (s *service) onCharacterReady(e events.Event) error {
	evt, ok := e.(*events.CharacterReadyEvent)
	if !ok || evt.Character.GameID == "" {
		return nil
	}
	if _, err := s.CharacterReady(context.Background(), evt.Character.GameID); err != nil {
		s.logger.Warn("failed to advance game",
			zap.String("game_id", evt.Character.GameID),
			zap.Error(err))
	}
	return nil
}

func (s *service) emit(t events.EventType, g *game.Game, actorID string) {
	if err := s.bus.Emit(events.NewGameEvent(t, g, actorID, s.clock.Now())); err != nil {
		s.logger.Warn("game event listeners failed",
			zap.String("event", string(t)),
			zap.String("game_id", g.ID),
			zap.Error(err))
	}
}

func (s *service) StartGame(ctx context.Context, input *StartGameInput) (*game.Game, error) {
	if input == nil || input.GuildID == "" || input.ChannelID == "" || input.AdminID == "" {
		return nil, apperr.InvalidArgument("guild, channel and admin are required").
			WithMeta("operation", "StartGame")
	}

	scenario, ok := s.rulebook.Scenario(input.ScenarioID)
	if !ok {
		return nil, apperr.Validationf("unknown scenario %s", input.ScenarioID)
	}

	entries, err := s.roster.List(ctx, input.GuildID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to read roster")
	}
	if n := len(entries); n < scenario.MinPlayers || n > scenario.MaxPlayers {
		return nil, apperr.FailedPreconditionf("%s needs %d to %d players, the roster has %d",
			scenario.Name, scenario.MinPlayers, scenario.MaxPlayers, n).
			WithMeta("scenario_id", scenario.ID)
	}

	players := make([]string, len(entries))
	for i, e := range entries {
		players[i] = e.UserID
	}

	g := &game.Game{
		ID:         s.ids.New(),
		GuildID:    input.GuildID,
		ChannelID:  input.ChannelID,
		ScenarioID: scenario.ID,
		AdminID:    input.AdminID,
		Status:     game.StatusCharacterCreation,
		PlayerIDs:  players,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.repository.Create(ctx, g); err != nil {
		return nil, apperr.Wrap(err, "failed to start game")
	}

	s.logger.Info("game started",
		zap.String("game_id", g.ID),
		zap.String("guild_id", g.GuildID),
		zap.String("scenario_id", g.ScenarioID),
		zap.Int("players", len(players)))
	s.emit(events.EventTypeGameStarted, g, input.AdminID)
	return g, nil
}

func (s *service) GetGame(ctx context.Context, gameID string) (*game.Game, error) {
	g, err := s.repository.Get(ctx, gameID)
	if err != nil {
		return nil, apperr.Wrapf(err, "failed to get game %s", gameID)
	}
	return g, nil
}

func (s *service) GetActiveGame(ctx context.Context, guildID string) (*game.Game, error) {
	return s.repository.GetActive(ctx, guildID)
}

func (s *service) ListGames(ctx context.Context, guildID string) ([]*game.Game, error) {
	return s.repository.ListByGuild(ctx, guildID)
}

func (s *service) PlayerGame(ctx context.Context, guildID, userID string) (*game.Game, error) {
	g, err := s.repository.GetActive(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if !g.HasPlayer(userID) {
		return nil, apperr.PermissionDenied("you are not a player in the current game").
			WithMeta("game_id", g.ID)
	}
	if g.Status != game.StatusCharacterCreation {
		return nil, apperr.FailedPrecondition("character creation is closed for this game").
			WithMeta("game_id", g.ID)
	}
	return g, nil
}

func (s *service) Progress(ctx context.Context, gameID string) (*Progress, error) {
	g, err := s.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	chars, err := s.characters.ListByGame(ctx, gameID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list characters")
	}

	byOwner := make(map[string]*character.Character, len(chars))
	for _, c := range chars {
		// prefer a ready character over a leftover draft
		if existing, ok := byOwner[c.OwnerID]; ok && existing.IsReady() {
			continue
		}
		byOwner[c.OwnerID] = c
	}

	scenario, _ := s.rulebook.Scenario(g.ScenarioID)
	p := &Progress{Game: g, Scenario: scenario}
	for _, id := range g.PlayerIDs {
		p.Players = append(p.Players, PlayerProgress{UserID: id, Character: byOwner[id]})
	}
	return p, nil
}

func (s *service) CharacterReady(ctx context.Context, gameID string) (*game.Game, error) {
	p, err := s.Progress(ctx, gameID)
	if err != nil {
		return nil, err
	}
	g := p.Game
	if g.Status != game.StatusCharacterCreation || p.ReadyCount() < len(p.Players) {
		return g, nil
	}

	if err := g.TransitionTo(game.StatusInProgress, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.repository.Update(ctx, g); err != nil {
		return nil, apperr.Wrap(err, "failed to start play")
	}

	s.logger.Info("game in progress", zap.String("game_id", g.ID))
	s.emit(events.EventTypeGameInProgress, g, "")
	return g, nil
}

func (s *service) transition(ctx context.Context, gameID, actorID string, next game.Status, evt events.EventType) (*game.Game, error) {
	g, err := s.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if err := g.TransitionTo(next, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.repository.Update(ctx, g); err != nil {
		return nil, apperr.Wrapf(err, "failed to move game to %s", next)
	}

	s.logger.Info("game status changed",
		zap.String("game_id", g.ID),
		zap.String("status", string(next)),
		zap.String("actor_id", actorID))
	s.emit(evt, g, actorID)
	return g, nil
}

func (s *service) EndGame(ctx context.Context, gameID, actorID string) (*game.Game, error) {
	return s.transition(ctx, gameID, actorID, game.StatusCompleted, events.EventTypeGameCompleted)
}

func (s *service) CancelGame(ctx context.Context, gameID, actorID string) (*game.Game, error) {
	return s.transition(ctx, gameID, actorID, game.StatusCancelled, events.EventTypeGameCancelled)
}
