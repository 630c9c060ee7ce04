package character

import "github.com/KirkDiggler/othership-bot/internal/domain/rulebook/othership"

// AttributeLine is one stat or save on a sheet
type AttributeLine struct {
	Base     int
	Modifier int
	Value    int
	Rolled   bool
}

// SkillLine is one skill on a sheet
type SkillLine struct {
	Skill    *othership.Skill
	Starting bool
}

// Sheet is the read model of a character with class modifiers applied
type Sheet struct {
	Character  *Character
	Class      *othership.ClassConfig
	Stats      map[othership.Stat]AttributeLine
	Saves      map[othership.Save]AttributeLine
	Skills     []SkillLine
	MaxWounds  int
	Budget     othership.SlotBudget
	Remaining  othership.SlotBudget
	Validation othership.ValidationResult
	Step       Step
}

// NewSheet applies the rulebook to a character
func NewSheet(c *Character, rb *othership.Rulebook) *Sheet {
	class, _ := rb.Class(c.Class)
	b := c.Build()

	sheet := &Sheet{
		Character:  c,
		Class:      class,
		Stats:      make(map[othership.Stat]AttributeLine),
		Saves:      make(map[othership.Save]AttributeLine),
		Budget:     rb.SlotBudget(c.Class, c.BonusChoiceIndex),
		Remaining:  rb.RemainingBonusSlots(b),
		Validation: rb.ValidateSkillSelection(b),
		Step:       c.CurrentStep(rb),
	}
	if class != nil {
		sheet.MaxWounds = class.MaxWounds
	}

	for _, stat := range othership.AllStats() {
		sheet.Stats[stat] = line(c.Stats[stat], rb.StatModifier(c.Class, c.ChosenStat, stat))
	}
	for _, save := range othership.AllSaves() {
		sheet.Saves[save] = line(c.Saves[save], rb.SaveModifier(c.Class, save))
	}

	for _, id := range rb.StartingSkills(b) {
		if s, ok := rb.Tree().Skill(id); ok {
			sheet.Skills = append(sheet.Skills, SkillLine{Skill: s, Starting: true})
		}
	}
	for _, id := range c.BonusSkills {
		if s, ok := rb.Tree().Skill(id); ok {
			sheet.Skills = append(sheet.Skills, SkillLine{Skill: s})
		}
	}
	return sheet
}

func line(base, modifier int) AttributeLine {
	if base == 0 {
		return AttributeLine{Modifier: modifier}
	}
	return AttributeLine{Base: base, Modifier: modifier, Value: base + modifier, Rolled: true}
}
