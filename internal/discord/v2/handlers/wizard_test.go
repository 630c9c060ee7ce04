package handlers

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/othership-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/othership-bot/internal/domain/character"
	"github.com/KirkDiggler/othership-bot/internal/domain/rulebook/othership"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		requested Page
		step      character.Step
		want      Page
	}{
		{"earlier page allowed", PageStats, character.StepSkillsSelecting, PageStats},
		{"later page clamped", PageDetails, character.StepStatsRolling, PageStats},
		{"reached page", PageClass, character.StepStatsComplete, PageClass},
		{"unknown page", Page("bogus"), character.StepClassChosen, PageClass},
		{"finalized always sheet", PageStats, character.StepFinalized, PageSheet},
		{"valid skills reach details", PageDetails, character.StepSkillsValid, PageDetails},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clamp(tt.requested, tt.step))
		})
	}
}

type WizardRendererTestSuite struct {
	suite.Suite
	rulebook *othership.Rulebook
	renderer *WizardRenderer
}

func TestWizardRendererTestSuite(t *testing.T) {
	suite.Run(t, new(WizardRendererTestSuite))
}

func (s *WizardRendererTestSuite) SetupTest() {
	rb, err := othership.LoadDefault()
	s.Require().NoError(err)
	s.rulebook = rb
	s.renderer = NewWizardRenderer(rb, core.NewCustomIDBuilder("character"))
}

func (s *WizardRendererTestSuite) rolled() *character.Character {
	c := character.New("char-1", "user-1", "guild-1", "game-1")
	for _, stat := range othership.AllStats() {
		c.Stats[stat] = 35
	}
	for _, save := range othership.AllSaves() {
		c.Saves[save] = 20
	}
	return c
}

func (s *WizardRendererTestSuite) render(c *character.Character, page Page) *core.Response {
	return s.renderer.Render(character.NewSheet(c, s.rulebook), page)
}

// flatten returns every component keyed by custom ID
func flatten(t *testing.T, rows []discordgo.MessageComponent) map[string]discordgo.MessageComponent {
	t.Helper()
	out := make(map[string]discordgo.MessageComponent)
	for _, row := range rows {
		ar, ok := row.(discordgo.ActionsRow)
		require.True(t, ok, "top level components must be rows")
		for _, comp := range ar.Components {
			switch c := comp.(type) {
			case discordgo.Button:
				out[c.CustomID] = c
			case discordgo.SelectMenu:
				out[c.CustomID] = c
			}
		}
	}
	return out
}

func (s *WizardRendererTestSuite) TestStatsPage() {
	c := character.New("char-1", "user-1", "guild-1", "game-1")
	c.Stats[othership.StatStrength] = 36

	resp := s.render(c, PageStats)
	comps := flatten(s.T(), resp.Components)

	rolled, ok := comps["character:rolled:char-1:strength"].(discordgo.Button)
	s.Require().True(ok)
	s.True(rolled.Disabled)
	s.Equal("Strength 36", rolled.Label)

	s.Contains(comps, "character:roll_stat:char-1:speed")
	s.Contains(comps, "character:roll_save:char-1:sanity")
	s.Contains(comps, "character:roll_remaining:char-1")
	s.NotContains(comps, "character:next:char-1:class")

	s.Require().Len(resp.Embeds, 1)
	s.Contains(resp.Embeds[0].Footer.Text, "Step 1 of 4")
}

func (s *WizardRendererTestSuite) TestAllRolledOffersNext() {
	resp := s.render(s.rolled(), PageStats)
	comps := flatten(s.T(), resp.Components)

	s.Contains(comps, "character:next:char-1:class")
	s.NotContains(comps, "character:roll_remaining:char-1")
}

func (s *WizardRendererTestSuite) TestClassPageForScientist() {
	c := s.rolled()
	c.Class = othership.ClassScientist

	resp := s.render(c, PageClass)
	comps := flatten(s.T(), resp.Components)

	class, ok := comps["character:class:char-1"].(discordgo.SelectMenu)
	s.Require().True(ok)
	s.Len(class.Options, len(s.rulebook.Classes()))

	stat, ok := comps["character:stat_choice:char-1"].(discordgo.SelectMenu)
	s.Require().True(ok)
	s.Equal("Stat that gets +5", stat.Placeholder)

	master, ok := comps["character:master:char-1"].(discordgo.SelectMenu)
	s.Require().True(ok)
	s.Len(master.Options, len(s.rulebook.Tree().ByTier(othership.TierMaster)))

	s.Contains(comps, "character:back:char-1:stats")
	s.NotContains(comps, "character:next:char-1:skills")
}

func (s *WizardRendererTestSuite) TestSkillsPageForMarine() {
	c := s.rolled()
	c.Class = othership.ClassMarine
	idx := 1
	c.BonusChoiceIndex = &idx
	c.BonusSkills = []string{"zoology"}

	resp := s.render(c, PageSkills)
	comps := flatten(s.T(), resp.Components)

	picked, ok := comps["character:bonus_choice:char-1:1"].(discordgo.Button)
	s.Require().True(ok)
	s.Equal(discordgo.SuccessButton, picked.Style)
	other, ok := comps["character:bonus_choice:char-1:0"].(discordgo.Button)
	s.Require().True(ok)
	s.Equal(discordgo.SecondaryButton, other.Style)

	menu, ok := comps["character:skill:char-1"].(discordgo.SelectMenu)
	s.Require().True(ok)
	s.Equal("Remove Zoology", menu.Options[0].Label)
	for _, opt := range menu.Options[1:] {
		s.NotEqual("military_training", opt.Value, "starting skills are never offered")
		sk, found := s.rulebook.Tree().Skill(opt.Value)
		s.Require().True(found)
		s.Equal(othership.TierTrained, sk.Tier, "only trained slots remain")
	}

	s.Contains(resp.Embeds[0].Description, "Remaining: 1 trained")
}

func (s *WizardRendererTestSuite) TestValidBuildReachesDetails() {
	c := s.rolled()
	c.Class = othership.ClassTeamster
	c.BonusSkills = []string{"computers", "hacking"}

	sheet := character.NewSheet(c, s.rulebook)
	s.Require().Equal(character.StepSkillsValid, sheet.Step)

	resp := s.renderer.Render(sheet, PageDetails)
	comps := flatten(s.T(), resp.Components)
	s.Contains(comps, "character:details:char-1")
	s.Contains(comps, "character:finalize:char-1")
	s.Contains(comps, "character:back:char-1:skills")
}

func (s *WizardRendererTestSuite) TestFinalizedRendersSheet() {
	c := s.rolled()
	c.Class = othership.ClassTeamster
	c.Name = "Ripley"
	c.Status = character.StatusReady

	resp := s.render(c, PageStats)
	s.Empty(resp.Components)
	s.Require().Len(resp.Embeds, 1)
	s.Equal("Ripley", resp.Embeds[0].Title)
}

func (s *WizardRendererTestSuite) TestDetailsModal() {
	c := s.rolled()
	c.Name = "Ripley"

	modal := s.renderer.DetailsModal(c)
	s.Equal("character:details:char-1", modal.CustomID)
	s.Require().Len(modal.Components, 2)

	row := modal.Components[0].(discordgo.ActionsRow)
	input := row.Components[0].(discordgo.TextInput)
	s.Equal(InputName, input.CustomID)
	s.Equal("Ripley", input.Value)
}
