package character

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/othership-bot/internal/dice"
	"github.com/KirkDiggler/othership-bot/internal/domain/rulebook/othership"
	apperr "github.com/KirkDiggler/othership-bot/internal/errors"
)

// Rolled values are stored without class modifiers, which are applied when
// the sheet is built.

func (s *service) RollStat(ctx context.Context, ref Ref, stat othership.Stat) (*RollOutput, error) {
	if _, ok := othership.ParseStat(string(stat)); !ok {
		return nil, apperr.Validationf("unknown stat %s", stat)
	}
	char, err := s.loadDraft(ctx, ref)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to roll stat")
	}
	if char.StatRolled(stat) {
		return nil, apperr.Validationf("%s has already been rolled", stat.Display())
	}
	return s.rollStat(ctx, char.ID, stat)
}

func (s *service) rollStat(ctx context.Context, id string, stat othership.Stat) (*RollOutput, error) {
	roll, err := dice.RollStat(s.roller, 0)
	if err != nil {
		return nil, apperr.WrapWithCode(err, apperr.CodeInternal, "failed to roll dice")
	}
	char, err := s.repository.SetStatIfUnset(ctx, id, stat, roll.FinalValue)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("stat rolled",
		zap.String("character_id", id),
		zap.String("stat", string(stat)),
		zap.Int("value", roll.FinalValue))
	return &RollOutput{Character: char, Label: stat.Display(), Roll: roll}, nil
}

func (s *service) RollSave(ctx context.Context, ref Ref, save othership.Save) (*RollOutput, error) {
	if _, ok := othership.ParseSave(string(save)); !ok {
		return nil, apperr.Validationf("unknown save %s", save)
	}
	char, err := s.loadDraft(ctx, ref)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to roll save")
	}
	if char.SaveRolled(save) {
		return nil, apperr.Validationf("%s has already been rolled", save.Display())
	}
	return s.rollSave(ctx, char.ID, save)
}

func (s *service) rollSave(ctx context.Context, id string, save othership.Save) (*RollOutput, error) {
	roll, err := dice.RollSave(s.roller, 0)
	if err != nil {
		return nil, apperr.WrapWithCode(err, apperr.CodeInternal, "failed to roll dice")
	}
	char, err := s.repository.SetSaveIfUnset(ctx, id, save, roll.FinalValue)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("save rolled",
		zap.String("character_id", id),
		zap.String("save", string(save)),
		zap.Int("value", roll.FinalValue))
	return &RollOutput{Character: char, Label: save.Display(), Roll: roll}, nil
}

func (s *service) RollRemaining(ctx context.Context, ref Ref) (*RollRemainingOutput, error) {
	char, err := s.loadDraft(ctx, ref)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to roll")
	}

	out := &RollRemainingOutput{Character: char}
	keep := func(roll *RollOutput, err error) error {
		// someone else rolled it between our read and write
		if apperr.IsValidation(err) {
			return nil
		}
		if err != nil {
			return err
		}
		out.Rolls = append(out.Rolls, roll)
		out.Character = roll.Character
		return nil
	}

	for _, stat := range othership.AllStats() {
		if char.StatRolled(stat) {
			continue
		}
		if err := keep(s.rollStat(ctx, char.ID, stat)); err != nil {
			return nil, apperr.Wrap(err, "failed to roll "+stat.Display())
		}
	}
	for _, save := range othership.AllSaves() {
		if char.SaveRolled(save) {
			continue
		}
		if err := keep(s.rollSave(ctx, char.ID, save)); err != nil {
			return nil, apperr.Wrap(err, "failed to roll "+save.Display())
		}
	}
	return out, nil
}

func (s *service) Check(ctx context.Context, ref Ref, attribute string) (*CheckOutput, error) {
	char, err := s.load(ctx, ref)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to make check")
	}
	if !char.IsReady() {
		return nil, apperr.FailedPrecondition("finish creating your character before making checks")
	}

	sheet := s.Sheet(char)
	attribute = strings.ToLower(strings.TrimSpace(attribute))

	var (
		label  string
		target int
	)
	if stat, ok := othership.ParseStat(attribute); ok {
		label, target = stat.Display(), sheet.Stats[stat].Value
	} else if save, ok := othership.ParseSave(attribute); ok {
		label, target = save.Display(), sheet.Saves[save].Value
	} else {
		return nil, apperr.Validationf("unknown stat or save %s", attribute)
	}

	result, err := dice.RollPercentile(s.roller, target)
	if err != nil {
		return nil, apperr.WrapWithCode(err, apperr.CodeInternal, "failed to roll dice")
	}

	s.logger.Info("check rolled",
		zap.String("character_id", char.ID),
		zap.String("attribute", attribute),
		zap.Int("roll", result.Roll),
		zap.Int("target", target),
		zap.Bool("success", result.Success))
	return &CheckOutput{Character: char, Label: label, Result: result}, nil
}
