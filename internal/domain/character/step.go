package character

import "github.com/KirkDiggler/othership-bot/internal/domain/rulebook/othership"

// Step is where a character is in the creation wizard. It is derived from
// the record rather than stored, so moving back through the wizard is just
// rendering an earlier page.
type Step string

const (
	StepEmpty             Step = "empty"
	StepStatsRolling      Step = "stats_rolling"
	StepStatsComplete     Step = "stats_complete"
	StepClassChosen       Step = "class_chosen"
	StepMasterChainChosen Step = "master_chain_chosen"
	StepSkillsSelecting   Step = "skills_selecting"
	StepSkillsValid       Step = "skills_valid"
	StepFinalized         Step = "finalized"
)

// CurrentStep derives the wizard step
func (c *Character) CurrentStep(rb *othership.Rulebook) Step {
	if c.IsReady() {
		return StepFinalized
	}

	switch rolled := c.RolledCount(); {
	case rolled == 0:
		return StepEmpty
	case !c.AllRolled():
		return StepStatsRolling
	}

	class, ok := rb.Class(c.Class)
	if !ok {
		return StepStatsComplete
	}
	if (class.RequiresStatChoice && c.ChosenStat == "") ||
		(class.RequiresMasterSelection && c.MasterSkill == "") {
		return StepClassChosen
	}

	b := c.Build()
	if rb.ValidateSkillSelection(b).Valid {
		return StepSkillsValid
	}
	if class.RequiresMasterSelection && len(b.BonusSkills) == 0 {
		return StepMasterChainChosen
	}
	return StepSkillsSelecting
}
