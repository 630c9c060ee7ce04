package game_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/othership-bot/internal/domain/character"
	"github.com/KirkDiggler/othership-bot/internal/domain/game"
	"github.com/KirkDiggler/othership-bot/internal/domain/rulebook/othership"
	apperr "github.com/KirkDiggler/othership-bot/internal/errors"
	"github.com/KirkDiggler/othership-bot/internal/events"
	"github.com/KirkDiggler/othership-bot/internal/repositories/characters"
	"github.com/KirkDiggler/othership-bot/internal/repositories/games"
	rosterRepo "github.com/KirkDiggler/othership-bot/internal/repositories/roster"
	charsvc "github.com/KirkDiggler/othership-bot/internal/services/character"
	gamesvc "github.com/KirkDiggler/othership-bot/internal/services/game"
	"github.com/KirkDiggler/othership-bot/internal/testutils"
	"github.com/KirkDiggler/othership-bot/internal/uuid"
)

type ServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	chars  characters.Repository
	roster *rosterRepo.InMemoryRepository
	bus    *events.Bus
	seen   []events.EventType
	svc    gamesvc.Service
	charSv charsvc.Service
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) SetupTest() {
	rb, err := othership.LoadDefault()
	s.Require().NoError(err)

	clock := testutils.NewStepClock(testutils.Epoch, time.Second)
	s.ctx = context.Background()
	s.chars = characters.NewInMemoryRepositoryWithTime(clock)
	s.roster = rosterRepo.NewInMemoryRepository(clock)
	s.bus = events.NewBus(nil)
	s.seen = nil
	for _, t := range events.GameEventTypes() {
		s.bus.Subscribe(t, &events.ListenerFunc{
			Name:  "recorder",
			Order: events.PriorityNotifications,
			Fn: func(e events.Event) error {
				s.seen = append(s.seen, e.GetType())
				return nil
			},
		})
	}

	s.svc = gamesvc.NewService(&gamesvc.ServiceConfig{
		Repository:    games.NewInMemoryRepository(),
		Characters:    s.chars,
		Roster:        s.roster,
		Rulebook:      rb,
		UUIDGenerator: uuid.NewSequentialGenerator("game"),
		EventBus:      s.bus,
		TimeProvider:  clock,
	})
	s.charSv = charsvc.NewService(&charsvc.ServiceConfig{
		Repository:    s.chars,
		Rulebook:      rb,
		UUIDGenerator: uuid.NewSequentialGenerator("char"),
		EventBus:      s.bus,
		TimeProvider:  clock,
	})
}

func (s *ServiceTestSuite) join(users ...string) {
	for _, u := range users {
		_, _, err := s.roster.Add(s.ctx, "guild-1", u, u)
		s.Require().NoError(err)
	}
}

func (s *ServiceTestSuite) start(scenario string) *game.Game {
	g, err := s.svc.StartGame(s.ctx, &gamesvc.StartGameInput{
		GuildID:    "guild-1",
		ChannelID:  "chan-1",
		AdminID:    "admin-1",
		ScenarioID: scenario,
	})
	s.Require().NoError(err)
	return g
}

func (s *ServiceTestSuite) TestStartGameSnapshotsRoster() {
	s.join("u1", "u2")
	g := s.start("derelict")

	s.Equal("game-1", g.ID)
	s.Equal(game.StatusCharacterCreation, g.Status)
	s.Equal([]string{"u1", "u2"}, g.PlayerIDs)
	s.Equal([]events.EventType{events.EventTypeGameStarted}, s.seen)

	// later joiners are not part of the running game
	s.join("u3")
	active, err := s.svc.GetActiveGame(s.ctx, "guild-1")
	s.Require().NoError(err)
	s.False(active.HasPlayer("u3"))
}

func (s *ServiceTestSuite) TestStartGameRules() {
	_, err := s.svc.StartGame(s.ctx, &gamesvc.StartGameInput{GuildID: "guild-1", ChannelID: "c", AdminID: "a", ScenarioID: "nostromo"})
	s.True(apperr.IsValidation(err), "got %v", err)

	s.join("u1")
	_, err = s.svc.StartGame(s.ctx, &gamesvc.StartGameInput{GuildID: "guild-1", ChannelID: "c", AdminID: "a", ScenarioID: "station_ypsilon"})
	s.True(apperr.IsFailedPrecondition(err), "got %v", err)
	s.Contains(err.Error(), "needs 2 to 5 players, the roster has 1")

	s.start("derelict")
	_, err = s.svc.StartGame(s.ctx, &gamesvc.StartGameInput{GuildID: "guild-1", ChannelID: "c", AdminID: "a", ScenarioID: "derelict"})
	s.True(apperr.IsFailedPrecondition(err), "one active game per guild")

	_, err = s.svc.StartGame(s.ctx, &gamesvc.StartGameInput{GuildID: "guild-1"})
	s.True(apperr.IsInvalidArgument(err))
}

func (s *ServiceTestSuite) TestPlayerGame() {
	s.join("u1")
	s.start("derelict")

	g, err := s.svc.PlayerGame(s.ctx, "guild-1", "u1")
	s.Require().NoError(err)
	s.Equal("game-1", g.ID)

	_, err = s.svc.PlayerGame(s.ctx, "guild-1", "stranger")
	s.True(apperr.IsPermissionDenied(err))

	_, err = s.svc.PlayerGame(s.ctx, "guild-2", "u1")
	s.True(apperr.IsNotFound(err))
}

func (s *ServiceTestSuite) TestAdvancesWhenEveryoneIsReady() {
	s.join("u1", "u2")
	g := s.start("derelict")

	s.Require().NoError(s.chars.Create(s.ctx, testutils.CreateReadyMarine("c1", "u1", "guild-1", g.ID)))
	draft := testutils.CreateReadyMarine("c2", "u2", "guild-1", g.ID)
	draft.Status = character.StatusDraft
	s.Require().NoError(s.chars.Create(s.ctx, draft))

	got, err := s.svc.CharacterReady(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(game.StatusCharacterCreation, got.Status)

	progress, err := s.svc.Progress(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(1, progress.ReadyCount())
	s.Equal("The Derelict", progress.Scenario.Name)

	// finalizing through the character service triggers the bus listener
	_, err = s.charSv.Finalize(s.ctx, charsvc.Ref{CharacterID: "c2", UserID: "u2"})
	s.Require().NoError(err)

	got, err = s.svc.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(game.StatusInProgress, got.Status)
	s.NotNil(got.StartedAt)
	s.Equal([]events.EventType{events.EventTypeGameStarted, events.EventTypeGameInProgress}, s.seen)

	// further ready signals are no-ops
	got, err = s.svc.CharacterReady(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(game.StatusInProgress, got.Status)
	s.Len(s.seen, 2)
}

func (s *ServiceTestSuite) TestEndAndCancel() {
	s.join("u1")
	g := s.start("derelict")

	_, err := s.svc.EndGame(s.ctx, g.ID, "admin-1")
	s.True(apperr.IsFailedPrecondition(err), "cannot complete before play starts")

	cancelled, err := s.svc.CancelGame(s.ctx, g.ID, "admin-1")
	s.Require().NoError(err)
	s.Equal(game.StatusCancelled, cancelled.Status)
	s.NotNil(cancelled.EndedAt)

	_, err = s.svc.GetActiveGame(s.ctx, "guild-1")
	s.True(apperr.IsNotFound(err))

	_, err = s.svc.CancelGame(s.ctx, g.ID, "admin-1")
	s.True(apperr.IsFailedPrecondition(err))

	next := s.start("dead_signal")
	s.Require().NoError(s.chars.Create(s.ctx, testutils.CreateReadyMarine("c1", "u1", "guild-1", next.ID)))
	_, err = s.svc.CharacterReady(s.ctx, next.ID)
	s.Require().NoError(err)

	done, err := s.svc.EndGame(s.ctx, next.ID, "admin-1")
	s.Require().NoError(err)
	s.Equal(game.StatusCompleted, done.Status)

	list, err := s.svc.ListGames(s.ctx, "guild-1")
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(next.ID, list[0].ID)
	s.Equal([]events.EventType{
		events.EventTypeGameStarted,
		events.EventTypeGameCancelled,
		events.EventTypeGameStarted,
		events.EventTypeGameInProgress,
		events.EventTypeGameCompleted,
	}, s.seen)
}
