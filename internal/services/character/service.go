package character

//go:generate mockgen -destination=mock/mock_service.go -package=mockcharacter -source=service.go

import (
	"context"

	"go.uber.org/zap"

	"github.com/KirkDiggler/othership-bot/internal/dice"
	"github.com/KirkDiggler/othership-bot/internal/domain/character"
	"github.com/KirkDiggler/othership-bot/internal/domain/rulebook/othership"
	apperr "github.com/KirkDiggler/othership-bot/internal/errors"
	"github.com/KirkDiggler/othership-bot/internal/events"
	"github.com/KirkDiggler/othership-bot/internal/repositories"
	"github.com/KirkDiggler/othership-bot/internal/repositories/characters"
	"github.com/KirkDiggler/othership-bot/internal/uuid"
)

// Repository is an alias for the character repository interface
type Repository = characters.Repository

// Service runs the character creation wizard and character checks
type Service interface {
	// CreateDraft returns the owner's draft for the game, creating it when
	// none exists yet
	CreateDraft(ctx context.Context, input *CreateDraftInput) (*character.Character, error)

	// GetCharacter retrieves a character by ID
	GetCharacter(ctx context.Context, characterID string) (*character.Character, error)

	// ListByOwner lists a player's characters in a guild
	ListByOwner(ctx context.Context, guildID, ownerID string) ([]*character.Character, error)

	// ListByGame lists every character created for a game
	ListByGame(ctx context.Context, gameID string) ([]*character.Character, error)

	// RollStat rolls 2d10+25 for an unrolled stat
	RollStat(ctx context.Context, ref Ref, stat othership.Stat) (*RollOutput, error)

	// RollSave rolls 2d10+10 for an unrolled save
	RollSave(ctx context.Context, ref Ref, save othership.Save) (*RollOutput, error)

	// RollRemaining rolls every stat and save that has no value yet
	RollRemaining(ctx context.Context, ref Ref) (*RollRemainingOutput, error)

	// SelectClass picks a class, clearing class dependent choices on change
	SelectClass(ctx context.Context, ref Ref, class othership.ClassKey) (*character.Character, error)

	// SelectStatChoice picks the stat receiving the class stat-choice modifier
	SelectStatChoice(ctx context.Context, ref Ref, stat othership.Stat) (*character.Character, error)

	// SelectMasterSkill picks the master chain and resets bonus skills
	SelectMasterSkill(ctx context.Context, ref Ref, masterID string) (*character.Character, error)

	// SelectBonusChoice picks a bonus budget option
	SelectBonusChoice(ctx context.Context, ref Ref, idx int) (*character.Character, error)

	// ToggleSkill adds or removes a bonus skill
	ToggleSkill(ctx context.Context, ref Ref, skillID string) (*character.Character, error)

	// SetDetails sets the name and avatar
	SetDetails(ctx context.Context, ref Ref, name, avatarURL string) (*character.Character, error)

	// Finalize marks a complete draft ready and emits character_ready
	Finalize(ctx context.Context, ref Ref) (*character.Character, error)

	// Sheet applies the rulebook to a character
	Sheet(char *character.Character) *character.Sheet

	// Step derives the wizard step of a character
	Step(char *character.Character) character.Step

	// Check rolls d100 against a ready character's effective stat or save
	Check(ctx context.Context, ref Ref, attribute string) (*CheckOutput, error)
}

// Ref identifies a character and the user acting on it. Only the owner may
// act on a character.
type Ref struct {
	CharacterID string
	UserID      string
}

// CreateDraftInput identifies where the draft is created
type CreateDraftInput struct {
	OwnerID string
	GuildID string
	GameID  string
}

// RollOutput is the result of a single roll
type RollOutput struct {
	Character *character.Character
	Label     string
	Roll      *dice.AttributeRoll
}

// RollRemainingOutput lists every roll made, stats first
type RollRemainingOutput struct {
	Character *character.Character
	Rolls     []*RollOutput
}

// CheckOutput is the result of a percentile check
type CheckOutput struct {
	Character *character.Character
	Label     string
	Result    *dice.CheckResult
}

type service struct {
	repository Repository
	rulebook   *othership.Rulebook
	roller     dice.Roller
	ids        uuid.Generator
	bus        *events.Bus
	clock      repositories.TimeProvider
	logger     *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    Repository          // Required
	Rulebook      *othership.Rulebook // Required
	Roller        dice.Roller         // Optional, defaults to a random roller
	UUIDGenerator uuid.Generator      // Optional
	EventBus      *events.Bus         // Optional
	TimeProvider  repositories.TimeProvider
	Logger        *zap.Logger
}

// NewService creates a new character service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig cannot be nil")
	}
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.Rulebook == nil {
		panic("rulebook is required")
	}

	svc := &service{
		repository: cfg.Repository,
		rulebook:   cfg.Rulebook,
		roller:     cfg.Roller,
		ids:        cfg.UUIDGenerator,
		bus:        cfg.EventBus,
		clock:      cfg.TimeProvider,
		logger:     cfg.Logger,
	}
	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}
	if svc.ids == nil {
		svc.ids = uuid.NewGoogleUUIDGenerator()
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	if svc.bus == nil {
		svc.bus = events.NewBus(svc.logger)
	}
	if svc.clock == nil {
		svc.clock = repositories.RealTime()
	}
	svc.logger = svc.logger.Named("character")
	return svc
}

func (s *service) CreateDraft(ctx context.Context, input *CreateDraftInput) (*character.Character, error) {
	if input == nil || input.OwnerID == "" || input.GuildID == "" || input.GameID == "" {
		return nil, apperr.InvalidArgument("owner, guild and game are required").
			WithMeta("operation", "CreateDraft")
	}

	if existing, err := s.existingDraft(ctx, input); existing != nil || err != nil {
		return existing, err
	}

	draft := character.New(s.ids.New(), input.OwnerID, input.GuildID, input.GameID)
	if err := s.repository.Create(ctx, draft); err != nil {
		if !apperr.IsAlreadyExists(err) {
			return nil, apperr.Wrap(err, "failed to create draft")
		}
		// a concurrent request claimed the game slot first
		existing, lookupErr := s.existingDraft(ctx, input)
		if existing != nil || lookupErr != nil {
			return existing, lookupErr
		}
		return nil, apperr.Wrap(err, "failed to create draft")
	}

	s.logger.Info("draft created",
		zap.String("character_id", draft.ID),
		zap.String("owner_id", draft.OwnerID),
		zap.String("game_id", draft.GameID))
	return draft, nil
}

// existingDraft returns the owner's draft for the game, or a failed
// precondition once that character is ready
func (s *service) existingDraft(ctx context.Context, input *CreateDraftInput) (*character.Character, error) {
	owned, err := s.repository.ListByOwner(ctx, input.GuildID, input.OwnerID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list characters")
	}
	for _, c := range owned {
		if c.GameID != input.GameID {
			continue
		}
		if c.IsReady() {
			return nil, apperr.FailedPrecondition("you already have a character in this game").
				WithMeta("character_id", c.ID)
		}
		return c, nil
	}
	return nil, nil
}

func (s *service) GetCharacter(ctx context.Context, characterID string) (*character.Character, error) {
	char, err := s.repository.Get(ctx, characterID)
	if err != nil {
		return nil, apperr.Wrapf(err, "failed to get character %s", characterID)
	}
	return char, nil
}

func (s *service) ListByOwner(ctx context.Context, guildID, ownerID string) ([]*character.Character, error) {
	return s.repository.ListByOwner(ctx, guildID, ownerID)
}

func (s *service) ListByGame(ctx context.Context, gameID string) ([]*character.Character, error) {
	return s.repository.ListByGame(ctx, gameID)
}

func (s *service) Sheet(char *character.Character) *character.Sheet {
	return character.NewSheet(char, s.rulebook)
}

func (s *service) Step(char *character.Character) character.Step {
	return char.CurrentStep(s.rulebook)
}

// load fetches a character the user owns
func (s *service) load(ctx context.Context, ref Ref) (*character.Character, error) {
	if ref.CharacterID == "" {
		return nil, apperr.InvalidArgument("character ID is required")
	}
	char, err := s.repository.Get(ctx, ref.CharacterID)
	if err != nil {
		return nil, err
	}
	if char.OwnerID != ref.UserID {
		return nil, apperr.PermissionDenied("this character belongs to someone else").
			WithMeta("character_id", char.ID).
			WithMeta("user_id", ref.UserID)
	}
	return char, nil
}

// loadDraft fetches an owned character that can still be edited
func (s *service) loadDraft(ctx context.Context, ref Ref) (*character.Character, error) {
	char, err := s.load(ctx, ref)
	if err != nil {
		return nil, err
	}
	if char.IsReady() {
		return nil, apperr.FailedPrecondition("character is finalized and can no longer be changed").
			WithMeta("character_id", char.ID)
	}
	return char, nil
}
