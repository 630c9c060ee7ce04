package othership

import (
	"fmt"
	"slices"
	"strings"

	apperr "github.com/KirkDiggler/othership-bot/internal/errors"
)

// Build is the skill-relevant part of a character being created
type Build struct {
	Class            ClassKey
	ChosenStat       Stat
	MasterSkill      string
	BonusSkills      []string
	BonusChoiceIndex *int
}

func (b Build) clone() Build {
	out := b
	out.BonusSkills = slices.Clone(b.BonusSkills)
	if b.BonusChoiceIndex != nil {
		idx := *b.BonusChoiceIndex
		out.BonusChoiceIndex = &idx
	}
	return out
}

// ValidationResult lists every rule a build breaks
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Err converts a failed result into a validation error
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return apperr.Validations(r.Errors...)
}

// StartingSkills returns the skills granted without spending slots. For
// master-selection classes this is the chosen chain, master first, and is
// empty until a master is picked.
func (rb *Rulebook) StartingSkills(b Build) []string {
	c, ok := rb.classes[b.Class]
	if !ok {
		return nil
	}
	if !c.RequiresMasterSelection {
		return slices.Clone(c.Starting)
	}
	if b.MasterSkill == "" {
		return nil
	}
	chain, err := rb.tree.MasterSkillChain(b.MasterSkill)
	if err != nil {
		return nil
	}
	return chain.IDs()
}

// SlotBudget is the bonus budget of a class. Choice classes get the indexed
// option; an unset or out-of-range index grants nothing.
func (rb *Rulebook) SlotBudget(key ClassKey, bonusChoiceIndex *int) SlotBudget {
	c, ok := rb.classes[key]
	if !ok {
		return SlotBudget{}
	}
	if !c.HasBonusChoice() {
		if c.BonusSlots == nil {
			return SlotBudget{}
		}
		return *c.BonusSlots
	}
	options := rb.bonusChoices[c.BonusChoice]
	if bonusChoiceIndex == nil || *bonusChoiceIndex < 0 || *bonusChoiceIndex >= len(options) {
		return SlotBudget{}
	}
	return options[*bonusChoiceIndex].Slots
}

// RemainingBonusSlots is budget minus selected bonus skills per tier,
// floored at zero. Starting skills never count against the budget.
func (rb *Rulebook) RemainingBonusSlots(b Build) SlotBudget {
	budget := rb.SlotBudget(b.Class, b.BonusChoiceIndex)
	used := rb.countBonus(b)

	var remaining SlotBudget
	for _, t := range Tiers() {
		remaining.add(t, max(budget.Get(t)-used.Get(t), 0))
	}
	return remaining
}

func (rb *Rulebook) countBonus(b Build) SlotBudget {
	starting := NewSkillSet(rb.StartingSkills(b))
	var used SlotBudget
	for _, id := range b.BonusSkills {
		s, ok := rb.tree.Skill(id)
		if !ok || starting.Has(id) {
			continue
		}
		used.add(s.Tier, 1)
	}
	return used
}

// CanAddSkill returns a validation error explaining why id cannot be added
// to the bonus selection
func (rb *Rulebook) CanAddSkill(b Build, id string) error {
	c, ok := rb.classes[b.Class]
	if !ok {
		return apperr.Validation("choose a class before picking skills")
	}
	s, ok := rb.tree.Skill(id)
	if !ok {
		return apperr.Validationf("unknown skill %s", id)
	}

	starting := rb.StartingSkills(b)
	switch {
	case slices.Contains(starting, id):
		return apperr.Validationf("%s is a starting skill and cannot be changed", s.Name)
	case slices.Contains(b.BonusSkills, id):
		return apperr.Validationf("%s is already selected", s.Name)
	case c.RequiresMasterSelection && len(starting) == 0:
		return apperr.Validation("choose a master skill before picking bonus skills")
	case c.HasBonusChoice() && b.BonusChoiceIndex == nil:
		return apperr.Validation("choose a bonus skill option before picking bonus skills")
	}

	if rb.RemainingBonusSlots(b).Get(s.Tier) == 0 {
		return apperr.Validationf("no %s slots remaining for %s", s.Tier, s.Name)
	}
	if !rb.tree.IsSkillUnlocked(id, NewSkillSet(starting, b.BonusSkills)) {
		return apperr.Validationf("%s requires one of: %s", s.Name, strings.Join(rb.tree.names(s.UnlockedBy), ", "))
	}
	return nil
}

// CanRemoveSkill returns a validation error when id is locked or when
// removing it would strand a selected skill whose only satisfied
// prerequisite is id
func (rb *Rulebook) CanRemoveSkill(b Build, id string) error {
	name := rb.tree.name(id)
	if slices.Contains(rb.StartingSkills(b), id) {
		return apperr.Validationf("%s is a starting skill and cannot be changed", name)
	}
	if !slices.Contains(b.BonusSkills, id) {
		return apperr.Validationf("%s is not selected", name)
	}

	without := b.clone()
	without.BonusSkills = slices.DeleteFunc(without.BonusSkills, func(s string) bool { return s == id })
	remaining := NewSkillSet(rb.StartingSkills(without), without.BonusSkills)

	for _, dep := range rb.tree.Dependents(id) {
		if !slices.Contains(without.BonusSkills, dep) {
			continue
		}
		if !rb.tree.IsSkillUnlocked(dep, remaining) {
			return apperr.Validationf("%s is required by %s", name, rb.tree.name(dep))
		}
	}
	return nil
}

// ToggleSkill adds id to the bonus selection, or removes it when already
// selected. The input build is never modified.
func (rb *Rulebook) ToggleSkill(b Build, id string) (Build, error) {
	out := b.clone()
	if slices.Contains(b.BonusSkills, id) {
		if err := rb.CanRemoveSkill(b, id); err != nil {
			return b, err
		}
		out.BonusSkills = slices.DeleteFunc(out.BonusSkills, func(s string) bool { return s == id })
		return out, nil
	}

	if err := rb.CanAddSkill(b, id); err != nil {
		return b, err
	}
	out.BonusSkills = append(out.BonusSkills, id)
	return out, nil
}

// SelectClass switches class. Everything that depends on the class is
// cleared when it changes.
func (rb *Rulebook) SelectClass(b Build, key ClassKey) (Build, error) {
	if _, ok := rb.classes[key]; !ok {
		return b, apperr.Validationf("unknown class %s", key)
	}
	if b.Class == key {
		return b.clone(), nil
	}
	return Build{Class: key}, nil
}

// SelectStatChoice picks the stat that receives the class stat-choice
// modifier
func (rb *Rulebook) SelectStatChoice(b Build, stat Stat) (Build, error) {
	c, ok := rb.classes[b.Class]
	if !ok {
		return b, apperr.Validation("choose a class first")
	}
	if !c.RequiresStatChoice {
		return b, apperr.Validationf("%s does not choose a stat", c.Name)
	}
	if _, ok := ParseStat(string(stat)); !ok {
		return b, apperr.Validationf("unknown stat %s", stat)
	}
	out := b.clone()
	out.ChosenStat = stat
	return out, nil
}

// SelectMasterSkill sets the master chain for master-selection classes.
// Choosing a different master resets all bonus selections.
func (rb *Rulebook) SelectMasterSkill(b Build, masterID string) (Build, error) {
	c, ok := rb.classes[b.Class]
	if !ok {
		return b, apperr.Validation("choose a class first")
	}
	if !c.RequiresMasterSelection {
		return b, apperr.Validationf("%s does not select a master skill", c.Name)
	}
	if _, err := rb.tree.MasterSkillChain(masterID); err != nil {
		return b, apperr.Validationf("cannot select master skill: %v", err)
	}

	out := b.clone()
	if out.MasterSkill != masterID {
		out.MasterSkill = masterID
		out.BonusSkills = nil
	}
	return out, nil
}

// SelectBonusChoice picks a budget option. Switching options resets bonus
// selections because they were spent against the old budget.
func (rb *Rulebook) SelectBonusChoice(b Build, idx int) (Build, error) {
	c, ok := rb.classes[b.Class]
	if !ok {
		return b, apperr.Validation("choose a class first")
	}
	options := rb.BonusOptions(b.Class)
	if len(options) == 0 {
		return b, apperr.Validationf("%s has a fixed skill budget", c.Name)
	}
	if idx < 0 || idx >= len(options) {
		return b, apperr.Validationf("bonus option %d is not available", idx)
	}

	out := b.clone()
	if out.BonusChoiceIndex == nil || *out.BonusChoiceIndex != idx {
		out.BonusChoiceIndex = &idx
		out.BonusSkills = nil
	}
	return out, nil
}

// ValidateSkillSelection checks a build is ready to finalize. Every broken
// rule produces its own message so they can all be shown at once.
func (rb *Rulebook) ValidateSkillSelection(b Build) ValidationResult {
	c, ok := rb.classes[b.Class]
	if !ok {
		return ValidationResult{Errors: []string{"choose a class"}}
	}

	var errs []string
	countBonus := true

	if c.RequiresMasterSelection {
		switch {
		case b.MasterSkill == "":
			errs = append(errs, "choose a master skill")
			countBonus = false
		case len(rb.StartingSkills(b)) == 0:
			errs = append(errs, fmt.Sprintf("master skill %s has no valid chain", rb.tree.name(b.MasterSkill)))
			countBonus = false
		}
		if !countBonus && len(b.BonusSkills) > 0 {
			errs = append(errs, "bonus skills cannot be chosen before a master skill")
		}
	}

	if c.HasBonusChoice() {
		options := rb.bonusChoices[c.BonusChoice]
		switch {
		case b.BonusChoiceIndex == nil:
			errs = append(errs, "choose a bonus skill option")
		case *b.BonusChoiceIndex < 0 || *b.BonusChoiceIndex >= len(options):
			errs = append(errs, fmt.Sprintf("bonus option %d is not available", *b.BonusChoiceIndex))
		}
	}

	starting := rb.StartingSkills(b)
	seen := NewSkillSet(starting)
	for _, id := range b.BonusSkills {
		if _, known := rb.tree.Skill(id); !known {
			errs = append(errs, fmt.Sprintf("unknown skill %s", id))
			continue
		}
		if slices.Contains(starting, id) {
			errs = append(errs, fmt.Sprintf("%s is already a starting skill", rb.tree.name(id)))
			continue
		}
		if seen.Has(id) {
			errs = append(errs, fmt.Sprintf("%s is selected more than once", rb.tree.name(id)))
		}
		seen[id] = struct{}{}
	}

	if countBonus {
		budget := rb.SlotBudget(b.Class, b.BonusChoiceIndex)
		used := rb.countBonus(b)
		for _, t := range Tiers() {
			want, got := budget.Get(t), used.Get(t)
			switch {
			case got < want:
				errs = append(errs, fmt.Sprintf("must select %d %s %s, %d selected", want, t, plural("skill", want), got))
			case got > want:
				errs = append(errs, fmt.Sprintf("selected %d %s %s but only %d allowed", got, t, plural("skill", got), want))
			}
		}
	}

	all := NewSkillSet(starting, b.BonusSkills)
	for _, id := range append(slices.Clone(starting), b.BonusSkills...) {
		s, known := rb.tree.Skill(id)
		if !known {
			continue
		}
		if !rb.tree.IsSkillUnlocked(id, all) {
			errs = append(errs, fmt.Sprintf("%s requires one of: %s", s.Name, strings.Join(rb.tree.names(s.UnlockedBy), ", ")))
		}
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
