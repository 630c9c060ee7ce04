package character

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/othership-bot/internal/domain/character"
	"github.com/KirkDiggler/othership-bot/internal/domain/rulebook/othership"
	apperr "github.com/KirkDiggler/othership-bot/internal/errors"
	"github.com/KirkDiggler/othership-bot/internal/events"
)

const maxNameLength = 64

// edit loads a draft, applies change to its build and writes it once. A
// rejected change or failed write leaves the stored record untouched.
func (s *service) edit(ctx context.Context, ref Ref, operation string, change func(othership.Build) (othership.Build, error)) (*character.Character, error) {
	char, err := s.loadDraft(ctx, ref)
	if err != nil {
		return nil, apperr.Wrap(err, operation)
	}

	next, err := change(char.Build())
	if err != nil {
		return nil, err
	}
	char.ApplyBuild(next)

	if err := s.repository.Update(ctx, char); err != nil {
		return nil, apperr.Wrap(err, operation).WithMeta("character_id", char.ID)
	}
	return char, nil
}

func (s *service) SelectClass(ctx context.Context, ref Ref, class othership.ClassKey) (*character.Character, error) {
	return s.edit(ctx, ref, "failed to select class", func(b othership.Build) (othership.Build, error) {
		return s.rulebook.SelectClass(b, class)
	})
}

func (s *service) SelectStatChoice(ctx context.Context, ref Ref, stat othership.Stat) (*character.Character, error) {
	return s.edit(ctx, ref, "failed to select stat", func(b othership.Build) (othership.Build, error) {
		return s.rulebook.SelectStatChoice(b, stat)
	})
}

func (s *service) SelectMasterSkill(ctx context.Context, ref Ref, masterID string) (*character.Character, error) {
	return s.edit(ctx, ref, "failed to select master skill", func(b othership.Build) (othership.Build, error) {
		return s.rulebook.SelectMasterSkill(b, masterID)
	})
}

func (s *service) SelectBonusChoice(ctx context.Context, ref Ref, idx int) (*character.Character, error) {
	return s.edit(ctx, ref, "failed to select bonus option", func(b othership.Build) (othership.Build, error) {
		return s.rulebook.SelectBonusChoice(b, idx)
	})
}

func (s *service) ToggleSkill(ctx context.Context, ref Ref, skillID string) (*character.Character, error) {
	return s.edit(ctx, ref, "failed to toggle skill", func(b othership.Build) (othership.Build, error) {
		return s.rulebook.ToggleSkill(b, skillID)
	})
}

func (s *service) SetDetails(ctx context.Context, ref Ref, name, avatarURL string) (*character.Character, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return nil, apperr.Validation("name cannot be empty")
	case len([]rune(name)) > maxNameLength:
		return nil, apperr.Validationf("name must be at most %d characters", maxNameLength)
	}
	avatarURL = strings.TrimSpace(avatarURL)
	if avatarURL != "" && !strings.HasPrefix(avatarURL, "https://") {
		return nil, apperr.Validation("avatar must be an https URL")
	}

	char, err := s.loadDraft(ctx, ref)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to set details")
	}
	char.Name = name
	char.AvatarURL = avatarURL

	if err := s.repository.Update(ctx, char); err != nil {
		return nil, apperr.Wrap(err, "failed to set details")
	}
	return char, nil
}

// finalizeProblems lists everything keeping char from being finalized
func (s *service) finalizeProblems(char *character.Character) []string {
	var problems []string
	for _, stat := range othership.AllStats() {
		if !char.StatRolled(stat) {
			problems = append(problems, "roll "+stat.Display())
		}
	}
	for _, save := range othership.AllSaves() {
		if !char.SaveRolled(save) {
			problems = append(problems, "roll "+save.Display())
		}
	}

	class, ok := s.rulebook.Class(char.Class)
	if ok && class.RequiresStatChoice && char.ChosenStat == "" {
		problems = append(problems, "choose a stat for the "+class.Name+" modifier")
	}
	if strings.TrimSpace(char.Name) == "" {
		problems = append(problems, "give your character a name")
	}
	return append(problems, s.rulebook.ValidateSkillSelection(char.Build()).Errors...)
}

func (s *service) Finalize(ctx context.Context, ref Ref) (*character.Character, error) {
	char, err := s.loadDraft(ctx, ref)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to finalize character")
	}

	if problems := s.finalizeProblems(char); len(problems) > 0 {
		return nil, apperr.Validations(problems...).WithMeta("character_id", char.ID)
	}

	char.Status = character.StatusReady
	if err := s.repository.Update(ctx, char); err != nil {
		return nil, apperr.Wrap(err, "failed to finalize character")
	}

	s.logger.Info("character ready",
		zap.String("character_id", char.ID),
		zap.String("class", string(char.Class)),
		zap.String("game_id", char.GameID))

	if err := s.bus.Emit(events.NewCharacterReadyEvent(char, s.clock.Now())); err != nil {
		s.logger.Warn("character_ready listeners failed",
			zap.String("character_id", char.ID),
			zap.Error(err))
	}
	return char, nil
}
