package othership_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/othership-bot/internal/domain/rulebook/othership"
)

const minimalSkills = `
skills:
  - {id: computers, name: Computers, tier: trained}
  - {id: hacking, name: Hacking, tier: expert, unlocked_by: [computers]}
  - {id: ai, name: AI, tier: master, unlocked_by: [hacking]}
bonus_choices:
  either:
    - {name: one, slots: {expert: 1}}
`

func TestLoad_Default(t *testing.T) {
	rb := mustLoad(t)

	keys := make([]othership.ClassKey, 0)
	for _, c := range rb.Classes() {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []othership.ClassKey{
		othership.ClassMarine, othership.ClassAndroid, othership.ClassScientist, othership.ClassTeamster,
	}, keys)

	s, ok := rb.Scenario("derelict")
	require.True(t, ok)
	assert.Equal(t, "The Derelict", s.Name)
	assert.Len(t, rb.Scenarios(), 3)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		errMsg string
	}{
		{
			name:   "malformed yaml",
			yaml:   "skills: [",
			errMsg: "parsing catalog",
		},
		{
			name: "both slot modes",
			yaml: minimalSkills + `
classes:
  - {key: hacker, name: Hacker, max_wounds: 2, bonus_choice: either, bonus_slots: {trained: 1}}
`,
			errMsg: "exactly one of bonus_choice or bonus_slots",
		},
		{
			name: "no slot mode",
			yaml: minimalSkills + `
classes:
  - {key: hacker, name: Hacker, max_wounds: 2}
`,
			errMsg: "exactly one of bonus_choice or bonus_slots",
		},
		{
			name: "unknown bonus choice",
			yaml: minimalSkills + `
classes:
  - {key: hacker, name: Hacker, max_wounds: 2, bonus_choice: neither}
`,
			errMsg: "unknown bonus choice neither",
		},
		{
			name: "unknown starting skill",
			yaml: minimalSkills + `
classes:
  - {key: hacker, name: Hacker, max_wounds: 2, starting: [piloting], bonus_slots: {trained: 1}}
`,
			errMsg: "unknown skill piloting",
		},
		{
			name: "unknown stat",
			yaml: minimalSkills + `
classes:
  - {key: hacker, name: Hacker, max_wounds: 2, stats: {charisma: 5}, bonus_slots: {trained: 1}}
`,
			errMsg: "unknown stat charisma",
		},
		{
			name: "bad scenario",
			yaml: minimalSkills + `
scenarios:
  - {id: s, name: S, min_players: 3, max_players: 2}
`,
			errMsg: "invalid player range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := othership.Load([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := othership.LoadFile("/definitely/not/here.yaml")
	assert.ErrorContains(t, err, "reading catalog")
}

func TestStatModifier(t *testing.T) {
	rb := mustLoad(t)

	tests := []struct {
		name   string
		class  othership.ClassKey
		chosen othership.Stat
		stat   othership.Stat
		want   int
	}{
		{name: "marine combat", class: othership.ClassMarine, stat: othership.StatCombat, want: 10},
		{name: "marine ignores chosen stat", class: othership.ClassMarine, chosen: othership.StatSpeed, stat: othership.StatSpeed, want: 0},
		{name: "android intellect", class: othership.ClassAndroid, stat: othership.StatIntellect, want: 20},
		{name: "android chosen penalty", class: othership.ClassAndroid, chosen: othership.StatStrength, stat: othership.StatStrength, want: -10},
		{name: "scientist chosen stacks", class: othership.ClassScientist, chosen: othership.StatIntellect, stat: othership.StatIntellect, want: 15},
		{name: "teamster everything", class: othership.ClassTeamster, stat: othership.StatInstinct, want: 5},
		{name: "no class", class: "", stat: othership.StatCombat, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rb.StatModifier(tt.class, tt.chosen, tt.stat))
		})
	}
}

func TestSaveModifier(t *testing.T) {
	rb := mustLoad(t)

	assert.Equal(t, 60, rb.SaveModifier(othership.ClassAndroid, othership.SaveFear))
	assert.Equal(t, 20, rb.SaveModifier(othership.ClassMarine, othership.SaveFear))
	assert.Equal(t, 30, rb.SaveModifier(othership.ClassScientist, othership.SaveSanity))
	assert.Equal(t, 10, rb.SaveModifier(othership.ClassTeamster, othership.SaveBody))
	assert.Equal(t, 0, rb.SaveModifier(othership.ClassScientist, othership.SaveBody))
}

func TestSlotBudget(t *testing.T) {
	rb := mustLoad(t)
	zero, one, two := 0, 1, 2

	assert.Equal(t, othership.SlotBudget{Expert: 1}, rb.SlotBudget(othership.ClassMarine, &zero))
	assert.Equal(t, othership.SlotBudget{Trained: 2}, rb.SlotBudget(othership.ClassAndroid, &one))
	assert.True(t, rb.SlotBudget(othership.ClassMarine, nil).IsZero())
	assert.True(t, rb.SlotBudget(othership.ClassMarine, &two).IsZero())
	assert.Equal(t, othership.SlotBudget{Trained: 1, Expert: 1}, rb.SlotBudget(othership.ClassTeamster, nil))
	assert.Equal(t, "1 trained, 1 expert", rb.SlotBudget(othership.ClassTeamster, nil).String())
}

func TestRulebook_AccessorsReturnCopies(t *testing.T) {
	rb := mustLoad(t)

	marine, ok := rb.Class(othership.ClassMarine)
	require.True(t, ok)
	marine.Stats[othership.StatCombat] = 99
	marine.Starting[0] = "changed"
	rb.Classes()[0].MaxWounds = 0
	rb.Scenarios()[0].MinPlayers = 99
	rb.BonusOptions(othership.ClassMarine)[0].Slots.Expert = 9

	assert.Equal(t, 10, rb.StatModifier(othership.ClassMarine, "", othership.StatCombat))
	again, _ := rb.Class(othership.ClassMarine)
	assert.Equal(t, []string{"military_training", "athletics"}, again.Starting)
	assert.Equal(t, 3, rb.Classes()[0].MaxWounds)
	sc, _ := rb.Scenario("derelict")
	assert.Equal(t, 1, sc.MinPlayers)
	assert.Equal(t, 1, rb.BonusOptions(othership.ClassMarine)[0].Slots.Expert)
}
