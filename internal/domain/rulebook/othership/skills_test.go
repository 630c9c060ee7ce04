package othership_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/KirkDiggler/othership-bot/internal/domain/rulebook/othership"
)

func mustLoad(t testing.TB) *othership.Rulebook {
	t.Helper()
	rb, err := othership.LoadDefault()
	require.NoError(t, err)
	return rb
}

func TestIsSkillUnlocked_EmptySet_Property(t *testing.T) {
	tree := mustLoad(t).Tree()
	skills := tree.Skills()

	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.SampledFrom(skills).Draw(rt, "skill")

		unlocked := tree.IsSkillUnlocked(s.ID, othership.NewSkillSet())
		assert.Equal(rt, len(s.UnlockedBy) == 0, unlocked)
		assert.Equal(rt, s.Tier == othership.TierTrained, unlocked)
	})
}

func TestIsSkillUnlocked_AnyPrerequisite(t *testing.T) {
	tree := mustLoad(t).Tree()

	assert.True(t, tree.IsSkillUnlocked("pathology", othership.NewSkillSet([]string{"botany"})))
	assert.True(t, tree.IsSkillUnlocked("pathology", othership.NewSkillSet([]string{"zoology"})))
	assert.False(t, tree.IsSkillUnlocked("pathology", othership.NewSkillSet([]string{"geology"})))
	assert.False(t, tree.IsSkillUnlocked("no_such_skill", othership.NewSkillSet()))
}

func TestMasterSkillChain(t *testing.T) {
	tree := mustLoad(t).Tree()

	chain, err := tree.MasterSkillChain("surgery")
	require.NoError(t, err)
	assert.Equal(t, "surgery", chain.Master.ID)
	assert.Equal(t, "field_medicine", chain.Expert.ID)
	assert.Equal(t, "zoology", chain.Trained.ID)
	assert.Equal(t, []string{"surgery", "field_medicine", "zoology"}, chain.IDs())
}

func TestMasterSkillChain_EveryMaster(t *testing.T) {
	tree := mustLoad(t).Tree()

	for _, s := range tree.ByTier(othership.TierMaster) {
		chain, err := tree.MasterSkillChain(s.ID)
		require.NoError(t, err, s.ID)
		assert.Equal(t, othership.TierExpert, chain.Expert.Tier)
		assert.Equal(t, othership.TierTrained, chain.Trained.Tier)
		assert.Contains(t, chain.Master.UnlockedBy, chain.Expert.ID)
		assert.Contains(t, chain.Expert.UnlockedBy, chain.Trained.ID)
	}
}

func TestMasterSkillChain_DeclaredAndDerived(t *testing.T) {
	tree := mustLoad(t).Tree()

	// pathology and ecology both unlock xenobiology; the catalog picks one
	chain, err := tree.MasterSkillChain("exobiology")
	require.NoError(t, err)
	assert.Equal(t, []string{"exobiology", "pathology", "zoology"}, chain.IDs())

	// one candidate per hop needs no declaration
	chain, err = tree.MasterSkillChain("sophontology")
	require.NoError(t, err)
	assert.Equal(t, []string{"sophontology", "psychology", "linguistics"}, chain.IDs())
}

func TestMasterSkillChain_Failures(t *testing.T) {
	tree := mustLoad(t).Tree()

	_, err := tree.MasterSkillChain("hacking")
	assert.ErrorContains(t, err, "not master")

	_, err = tree.MasterSkillChain("nope")
	assert.ErrorContains(t, err, "unknown skill")
}

func TestNewSkillTree_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		skills []*othership.Skill
		errMsg string
	}{
		{
			name: "duplicate id",
			skills: []*othership.Skill{
				{ID: "a", Name: "A", Tier: othership.TierTrained},
				{ID: "a", Name: "A again", Tier: othership.TierTrained},
			},
			errMsg: "duplicate skill id a",
		},
		{
			name: "trained with prerequisite",
			skills: []*othership.Skill{
				{ID: "a", Tier: othership.TierTrained},
				{ID: "b", Tier: othership.TierTrained, UnlockedBy: []string{"a"}},
			},
			errMsg: "trained skill b cannot have prerequisites",
		},
		{
			name: "expert without prerequisite",
			skills: []*othership.Skill{
				{ID: "e", Tier: othership.TierExpert},
			},
			errMsg: "expert skill e needs at least one prerequisite",
		},
		{
			name: "unknown prerequisite",
			skills: []*othership.Skill{
				{ID: "e", Tier: othership.TierExpert, UnlockedBy: []string{"ghost"}},
			},
			errMsg: "unknown skill ghost",
		},
		{
			name: "same tier cycle",
			skills: []*othership.Skill{
				{ID: "t", Tier: othership.TierTrained},
				{ID: "x", Tier: othership.TierExpert, UnlockedBy: []string{"t", "y"}},
				{ID: "y", Tier: othership.TierExpert, UnlockedBy: []string{"x"}},
			},
			errMsg: "not a lower tier",
		},
		{
			name: "master skipping expert",
			skills: []*othership.Skill{
				{ID: "t", Tier: othership.TierTrained},
				{ID: "m", Tier: othership.TierMaster, UnlockedBy: []string{"t"}},
			},
			errMsg: "skill m has no expert prerequisite",
		},
		{
			name: "ambiguous expert hop",
			skills: []*othership.Skill{
				{ID: "t", Tier: othership.TierTrained},
				{ID: "e1", Tier: othership.TierExpert, UnlockedBy: []string{"t"}},
				{ID: "e2", Tier: othership.TierExpert, UnlockedBy: []string{"t"}},
				{ID: "m", Tier: othership.TierMaster, UnlockedBy: []string{"e1", "e2"}},
			},
			errMsg: "skill m has ambiguous expert prerequisites e1, e2",
		},
		{
			name: "ambiguous trained hop",
			skills: []*othership.Skill{
				{ID: "t1", Tier: othership.TierTrained},
				{ID: "t2", Tier: othership.TierTrained},
				{ID: "e", Tier: othership.TierExpert, UnlockedBy: []string{"t1", "t2"}},
				{ID: "m", Tier: othership.TierMaster, UnlockedBy: []string{"e"}},
			},
			errMsg: "skill e has ambiguous trained prerequisites t1, t2",
		},
		{
			name: "declared chain off the tree",
			skills: []*othership.Skill{
				{ID: "t1", Tier: othership.TierTrained},
				{ID: "t2", Tier: othership.TierTrained},
				{ID: "e", Tier: othership.TierExpert, UnlockedBy: []string{"t1"}},
				{ID: "m", Tier: othership.TierMaster, UnlockedBy: []string{"e"}, Chain: []string{"e", "t2"}},
			},
			errMsg: "chain link t2 is not a trained prerequisite of e",
		},
		{
			name: "declared chain too short",
			skills: []*othership.Skill{
				{ID: "t", Tier: othership.TierTrained},
				{ID: "e", Tier: othership.TierExpert, UnlockedBy: []string{"t"}},
				{ID: "m", Tier: othership.TierMaster, UnlockedBy: []string{"e"}, Chain: []string{"e"}},
			},
			errMsg: "chain must name one expert and one trained skill",
		},
		{
			name: "chain on an expert",
			skills: []*othership.Skill{
				{ID: "t", Tier: othership.TierTrained},
				{ID: "e", Tier: othership.TierExpert, UnlockedBy: []string{"t"}, Chain: []string{"t"}},
			},
			errMsg: "expert skill e cannot declare a chain",
		},
		{
			name: "unknown tier",
			skills: []*othership.Skill{
				{ID: "z", Tier: "legendary"},
			},
			errMsg: "unknown tier",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := othership.NewSkillTree(tt.skills)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSkillTree_AccessorsReturnCopies(t *testing.T) {
	tree := mustLoad(t).Tree()

	tree.Skills()[0].Name = "changed"
	tree.ByTier(othership.TierExpert)[0].UnlockedBy[0] = "changed"
	s, ok := tree.Skill("psychology")
	require.True(t, ok)
	s.UnlockedBy = nil
	tree.Dependents("computers")[0] = "changed"

	assert.Equal(t, "Linguistics", tree.Skills()[0].Name)
	assert.True(t, tree.IsSkillUnlocked("psychology", othership.NewSkillSet([]string{"linguistics"})))
	assert.False(t, tree.IsSkillUnlocked("psychology", othership.NewSkillSet()))
	assert.Equal(t, []string{"hacking"}, tree.Dependents("computers"))
}

func TestTierBonus(t *testing.T) {
	assert.Equal(t, 10, othership.TierTrained.Bonus())
	assert.Equal(t, 15, othership.TierExpert.Bonus())
	assert.Equal(t, 20, othership.TierMaster.Bonus())
	assert.Equal(t, "Expert", othership.TierExpert.Display())
}

func TestDependents(t *testing.T) {
	tree := mustLoad(t).Tree()
	assert.ElementsMatch(t, []string{"hacking"}, tree.Dependents("computers"))
	assert.ElementsMatch(t, []string{"sophontology"}, tree.Dependents("psychology"))
	assert.Empty(t, tree.Dependents("command"))
}
