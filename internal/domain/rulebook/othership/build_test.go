package othership_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/KirkDiggler/othership-bot/internal/domain/rulebook/othership"
	apperr "github.com/KirkDiggler/othership-bot/internal/errors"
)

func intPtr(i int) *int { return &i }

func TestMarineExpertOption(t *testing.T) {
	rb := mustLoad(t)
	b := othership.Build{Class: othership.ClassMarine, BonusChoiceIndex: intPtr(0)}

	result := rb.ValidateSkillSelection(b)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"must select 1 expert skill, 0 selected"}, result.Errors)

	// Military Training is a starting skill, so Firearms is already unlocked.
	b, err := rb.ToggleSkill(b, "firearms")
	require.NoError(t, err)

	result = rb.ValidateSkillSelection(b)
	assert.True(t, result.Valid, result.Errors)
	assert.Empty(t, result.Errors)
	assert.NoError(t, result.Err())
	assert.True(t, rb.RemainingBonusSlots(b).IsZero())
}

func TestMarineTrainedOption(t *testing.T) {
	rb := mustLoad(t)
	b := othership.Build{Class: othership.ClassMarine, BonusChoiceIndex: intPtr(1)}

	var err error
	for _, id := range []string{"rimwise", "zero_g"} {
		b, err = rb.ToggleSkill(b, id)
		require.NoError(t, err)
	}

	_, err = rb.ToggleSkill(b, "botany")
	assert.ErrorContains(t, err, "no trained slots remaining")
	assert.True(t, rb.ValidateSkillSelection(b).Valid)
}

func TestScientistMasterChain(t *testing.T) {
	rb := mustLoad(t)
	b := othership.Build{Class: othership.ClassScientist}

	_, err := rb.ToggleSkill(b, "botany")
	assert.ErrorContains(t, err, "choose a master skill")

	result := rb.ValidateSkillSelection(b)
	assert.Equal(t, []string{"choose a master skill"}, result.Errors)

	b, err = rb.SelectMasterSkill(b, "surgery")
	require.NoError(t, err)
	assert.Equal(t, []string{"surgery", "field_medicine", "zoology"}, rb.StartingSkills(b))
	assert.Equal(t, othership.SlotBudget{Trained: 1}, rb.RemainingBonusSlots(b))

	result = rb.ValidateSkillSelection(b)
	assert.Equal(t, []string{"must select 1 trained skill, 0 selected"}, result.Errors)

	b, err = rb.ToggleSkill(b, "chemistry")
	require.NoError(t, err)
	assert.True(t, rb.ValidateSkillSelection(b).Valid)

	_, err = rb.ToggleSkill(b, "zoology")
	assert.ErrorContains(t, err, "starting skill")
}

func TestSelectMasterSkill_ResetsBonus(t *testing.T) {
	rb := mustLoad(t)
	b := othership.Build{Class: othership.ClassScientist, MasterSkill: "surgery", BonusSkills: []string{"chemistry"}}

	same, err := rb.SelectMasterSkill(b, "surgery")
	require.NoError(t, err)
	assert.Equal(t, []string{"chemistry"}, same.BonusSkills)

	changed, err := rb.SelectMasterSkill(b, "hyperspace")
	require.NoError(t, err)
	assert.Empty(t, changed.BonusSkills)
	assert.Equal(t, []string{"hyperspace", "physics", "mathematics"}, rb.StartingSkills(changed))

	// the input build is untouched
	assert.Equal(t, []string{"chemistry"}, b.BonusSkills)

	_, err = rb.SelectMasterSkill(b, "hacking")
	assert.True(t, apperr.IsValidation(err))

	_, err = rb.SelectMasterSkill(othership.Build{Class: othership.ClassMarine}, "surgery")
	assert.ErrorContains(t, err, "does not select a master skill")
}

func TestRemoveStrandingPrerequisite(t *testing.T) {
	rb := mustLoad(t)
	b := othership.Build{Class: othership.ClassTeamster}

	var err error
	b, err = rb.ToggleSkill(b, "computers")
	require.NoError(t, err)
	b, err = rb.ToggleSkill(b, "hacking")
	require.NoError(t, err)

	_, err = rb.ToggleSkill(b, "computers")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Contains(t, err.Error(), "Computers is required by Hacking")

	b, err = rb.ToggleSkill(b, "hacking")
	require.NoError(t, err)
	b, err = rb.ToggleSkill(b, "computers")
	require.NoError(t, err)
	assert.Empty(t, b.BonusSkills)
}

func TestRemoveWithAlternatePrerequisite(t *testing.T) {
	rb := mustLoad(t)
	// Mechanical Repair is unlocked by Industrial Equipment (starting) or
	// Jury-Rigging, so dropping Jury-Rigging strands nothing.
	b := othership.Build{Class: othership.ClassTeamster, BonusSkills: []string{"jury_rigging", "mechanical_repair"}}

	out, err := rb.ToggleSkill(b, "jury_rigging")
	require.NoError(t, err)
	assert.Equal(t, []string{"mechanical_repair"}, out.BonusSkills)
}

func TestCanAddSkill(t *testing.T) {
	rb := mustLoad(t)

	tests := []struct {
		name   string
		build  othership.Build
		skill  string
		errMsg string
	}{
		{name: "no class", build: othership.Build{}, skill: "botany", errMsg: "choose a class"},
		{name: "unknown skill", build: othership.Build{Class: othership.ClassTeamster}, skill: "juggling", errMsg: "unknown skill juggling"},
		{name: "starting skill", build: othership.Build{Class: othership.ClassMarine, BonusChoiceIndex: intPtr(0)}, skill: "athletics", errMsg: "starting skill"},
		{name: "option not chosen", build: othership.Build{Class: othership.ClassAndroid}, skill: "botany", errMsg: "choose a bonus skill option"},
		{name: "locked", build: othership.Build{Class: othership.ClassTeamster}, skill: "hacking", errMsg: "Hacking requires one of: Computers"},
		{name: "no master slots", build: othership.Build{Class: othership.ClassTeamster}, skill: "command", errMsg: "no master slots remaining"},
		{name: "already selected", build: othership.Build{Class: othership.ClassTeamster, BonusSkills: []string{"art"}}, skill: "art", errMsg: "already selected"},
		{name: "allowed", build: othership.Build{Class: othership.ClassTeamster}, skill: "piloting"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rb.CanAddSkill(tt.build, tt.skill)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSelectBonusChoice(t *testing.T) {
	rb := mustLoad(t)
	b := othership.Build{Class: othership.ClassAndroid, BonusChoiceIndex: intPtr(1), BonusSkills: []string{"botany", "art"}}

	same, err := rb.SelectBonusChoice(b, 1)
	require.NoError(t, err)
	assert.Len(t, same.BonusSkills, 2)

	switched, err := rb.SelectBonusChoice(b, 0)
	require.NoError(t, err)
	assert.Empty(t, switched.BonusSkills)
	assert.Equal(t, 0, *switched.BonusChoiceIndex)

	_, err = rb.SelectBonusChoice(b, 2)
	assert.ErrorContains(t, err, "not available")

	_, err = rb.SelectBonusChoice(othership.Build{Class: othership.ClassTeamster}, 0)
	assert.ErrorContains(t, err, "fixed skill budget")
}

func TestSelectClass_ResetsDependentChoices(t *testing.T) {
	rb := mustLoad(t)
	b := othership.Build{
		Class:            othership.ClassAndroid,
		ChosenStat:       othership.StatSpeed,
		BonusChoiceIndex: intPtr(0),
		BonusSkills:      []string{"hacking"},
	}

	same, err := rb.SelectClass(b, othership.ClassAndroid)
	require.NoError(t, err)
	assert.Equal(t, othership.StatSpeed, same.ChosenStat)

	changed, err := rb.SelectClass(b, othership.ClassMarine)
	require.NoError(t, err)
	assert.Equal(t, othership.Build{Class: othership.ClassMarine}, changed)

	_, err = rb.SelectClass(b, "pilot")
	assert.True(t, apperr.IsValidation(err))
}

func TestSelectStatChoice(t *testing.T) {
	rb := mustLoad(t)

	out, err := rb.SelectStatChoice(othership.Build{Class: othership.ClassAndroid}, othership.StatCombat)
	require.NoError(t, err)
	assert.Equal(t, othership.StatCombat, out.ChosenStat)

	_, err = rb.SelectStatChoice(othership.Build{Class: othership.ClassMarine}, othership.StatCombat)
	assert.ErrorContains(t, err, "does not choose a stat")

	_, err = rb.SelectStatChoice(othership.Build{Class: othership.ClassAndroid}, "luck")
	assert.ErrorContains(t, err, "unknown stat")
}

func TestValidateSkillSelection_ReportsEveryProblem(t *testing.T) {
	rb := mustLoad(t)

	tests := []struct {
		name   string
		build  othership.Build
		errors []string
	}{
		{
			name:   "no class",
			build:  othership.Build{},
			errors: []string{"choose a class"},
		},
		{
			name:   "option missing",
			build:  othership.Build{Class: othership.ClassMarine},
			errors: []string{"choose a bonus skill option"},
		},
		{
			name:  "over budget and not closed",
			build: othership.Build{Class: othership.ClassTeamster, BonusSkills: []string{"geology", "botany", "hacking"}},
			errors: []string{
				"selected 2 trained skills but only 1 allowed",
				"Hacking requires one of: Computers",
			},
		},
		{
			name:  "duplicate and unknown",
			build: othership.Build{Class: othership.ClassTeamster, BonusSkills: []string{"art", "art", "piloting", "juggling"}},
			errors: []string{
				"Art is selected more than once",
				"unknown skill juggling",
				"selected 2 trained skills but only 1 allowed",
			},
		},
		{
			name:  "bonus before master",
			build: othership.Build{Class: othership.ClassScientist, BonusSkills: []string{"art"}},
			errors: []string{
				"choose a master skill",
				"bonus skills cannot be chosen before a master skill",
			},
		},
		{
			name:  "bonus duplicates starting",
			build: othership.Build{Class: othership.ClassTeamster, BonusSkills: []string{"zero_g", "piloting"}},
			errors: []string{
				"Zero-G is already a starting skill",
				"must select 1 trained skill, 0 selected",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := rb.ValidateSkillSelection(tt.build)
			assert.False(t, result.Valid)
			assert.Equal(t, tt.errors, result.Errors)
			assert.Equal(t, tt.errors, apperr.ValidationMessages(result.Err()))
		})
	}
}

// buildGen draws arbitrary builds, including ones the toggle rules would
// never produce.
func buildGen(rb *othership.Rulebook) *rapid.Generator[othership.Build] {
	var ids []string
	for _, s := range rb.Tree().Skills() {
		ids = append(ids, s.ID)
	}
	var classes []othership.ClassKey
	for _, c := range rb.Classes() {
		classes = append(classes, c.Key)
	}
	masters := []string{""}
	for _, s := range rb.Tree().ByTier(othership.TierMaster) {
		masters = append(masters, s.ID)
	}

	return rapid.Custom(func(t *rapid.T) othership.Build {
		b := othership.Build{
			Class:       rapid.SampledFrom(classes).Draw(t, "class"),
			MasterSkill: rapid.SampledFrom(masters).Draw(t, "master"),
			BonusSkills: rapid.SliceOfNDistinct(rapid.SampledFrom(ids), 0, 5, rapid.ID[string]).Draw(t, "bonus"),
		}
		if rapid.Bool().Draw(t, "has_index") {
			b.BonusChoiceIndex = intPtr(rapid.IntRange(-1, 2).Draw(t, "index"))
		}
		return b
	})
}

func TestRemainingBonusSlots_NeverNegative_Property(t *testing.T) {
	rb := mustLoad(t)
	gen := buildGen(rb)

	rapid.Check(t, func(rt *rapid.T) {
		remaining := rb.RemainingBonusSlots(gen.Draw(rt, "build"))
		for _, tier := range othership.Tiers() {
			assert.GreaterOrEqual(rt, remaining.Get(tier), 0)
		}
	})
}

func TestValidateSkillSelection_CountsAndClosure_Property(t *testing.T) {
	rb := mustLoad(t)
	gen := buildGen(rb)

	rapid.Check(t, func(rt *rapid.T) {
		b := gen.Draw(rt, "build")
		result := rb.ValidateSkillSelection(b)

		starting := rb.StartingSkills(b)
		budget := rb.SlotBudget(b.Class, b.BonusChoiceIndex)
		var used othership.SlotBudget
		for _, id := range b.BonusSkills {
			if s, ok := rb.Tree().Skill(id); ok && !slices.Contains(starting, id) {
				switch s.Tier {
				case othership.TierTrained:
					used.Trained++
				case othership.TierExpert:
					used.Expert++
				case othership.TierMaster:
					used.Master++
				}
			}
		}

		if used != budget {
			assert.False(rt, result.Valid, "counts %v differ from budget %v", used, budget)
		}
		if result.Valid {
			all := othership.NewSkillSet(starting, b.BonusSkills)
			for id := range all {
				assert.True(rt, rb.Tree().IsSkillUnlocked(id, all), "%s not unlocked", id)
			}
			assert.Equal(rt, budget, used)
		}
	})
}

func TestToggleSequence_KeepsBuildConsistent_Property(t *testing.T) {
	rb := mustLoad(t)
	var ids []string
	for _, s := range rb.Tree().Skills() {
		ids = append(ids, s.ID)
	}

	rapid.Check(t, func(rt *rapid.T) {
		b := othership.Build{
			Class:            rapid.SampledFrom([]othership.ClassKey{othership.ClassMarine, othership.ClassAndroid, othership.ClassTeamster}).Draw(rt, "class"),
			BonusChoiceIndex: intPtr(rapid.IntRange(0, 1).Draw(rt, "index")),
		}
		steps := rapid.SliceOfN(rapid.SampledFrom(ids), 1, 30).Draw(rt, "toggles")

		for _, id := range steps {
			next, err := rb.ToggleSkill(b, id)
			if err != nil {
				require.True(rt, apperr.IsValidation(err))
				continue
			}
			b = next

			budget := rb.SlotBudget(b.Class, b.BonusChoiceIndex)
			remaining := rb.RemainingBonusSlots(b)
			for _, tier := range othership.Tiers() {
				assert.LessOrEqual(rt, remaining.Get(tier), budget.Get(tier))
			}
			all := othership.NewSkillSet(rb.StartingSkills(b), b.BonusSkills)
			for id := range all {
				assert.True(rt, rb.Tree().IsSkillUnlocked(id, all), "%s stranded", id)
			}
			assert.Equal(rt, budget.Total()-remaining.Total(), len(b.BonusSkills))
		}
	})
}
