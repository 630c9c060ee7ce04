package roster

//go:generate mockgen -destination=mock/mock_service.go -package=mockroster -source=service.go

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/othership-bot/internal/domain/roster"
	apperr "github.com/KirkDiggler/othership-bot/internal/errors"
	rosterRepo "github.com/KirkDiggler/othership-bot/internal/repositories/roster"
)

// Repository is an alias for the roster repository interface
type Repository = rosterRepo.Repository

// Service manages who in a guild wants to play
type Service interface {
	// Join puts the user on the guild roster. Joining again is a no-op that
	// reports joined=false.
	Join(ctx context.Context, guildID, userID, displayName string) (entry *roster.Entry, joined bool, err error)

	// Leave takes the user off the roster
	Leave(ctx context.Context, guildID, userID string) error

	// List returns the roster, earliest join first
	List(ctx context.Context, guildID string) ([]*roster.Entry, error)

	// IsMember reports whether the user is on the roster
	IsMember(ctx context.Context, guildID, userID string) (bool, error)
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository Repository // Required
	Logger     *zap.Logger
}

type service struct {
	repository Repository
	logger     *zap.Logger
}

// NewService creates a new roster service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil || cfg.Repository == nil {
		panic("repository is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{repository: cfg.Repository, logger: logger.Named("roster")}
}

func (s *service) Join(ctx context.Context, guildID, userID, displayName string) (*roster.Entry, bool, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = userID
	}

	entry, created, err := s.repository.Add(ctx, guildID, userID, displayName)
	if err != nil {
		return nil, false, apperr.Wrap(err, "failed to join roster")
	}
	if created {
		s.logger.Info("joined roster", zap.String("guild_id", guildID), zap.String("user_id", userID))
	}
	return entry, created, nil
}

func (s *service) Leave(ctx context.Context, guildID, userID string) error {
	removed, err := s.repository.Remove(ctx, guildID, userID)
	if err != nil {
		return apperr.Wrap(err, "failed to leave roster")
	}
	if !removed {
		return apperr.NotFound("you are not on the roster").
			WithMeta("guild_id", guildID).
			WithMeta("user_id", userID)
	}
	s.logger.Info("left roster", zap.String("guild_id", guildID), zap.String("user_id", userID))
	return nil
}

func (s *service) List(ctx context.Context, guildID string) ([]*roster.Entry, error) {
	entries, err := s.repository.List(ctx, guildID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list roster")
	}
	return entries, nil
}

func (s *service) IsMember(ctx context.Context, guildID, userID string) (bool, error) {
	_, err := s.repository.Get(ctx, guildID, userID)
	switch {
	case apperr.IsNotFound(err):
		return false, nil
	case err != nil:
		return false, apperr.Wrap(err, "failed to check roster")
	}
	return true, nil
}
