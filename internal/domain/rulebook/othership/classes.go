package othership

import "fmt"

// ClassKey identifies a playable class
type ClassKey string

const (
	ClassMarine    ClassKey = "marine"
	ClassAndroid   ClassKey = "android"
	ClassScientist ClassKey = "scientist"
	ClassTeamster  ClassKey = "teamster"
)

// SlotBudget counts bonus skill picks per tier
type SlotBudget struct {
	Trained int `yaml:"trained" json:"trained"`
	Expert  int `yaml:"expert" json:"expert"`
	Master  int `yaml:"master" json:"master"`
}

// Get returns the count for one tier
func (b SlotBudget) Get(t Tier) int {
	switch t {
	case TierTrained:
		return b.Trained
	case TierExpert:
		return b.Expert
	case TierMaster:
		return b.Master
	default:
		return 0
	}
}

func (b *SlotBudget) add(t Tier, n int) {
	switch t {
	case TierTrained:
		b.Trained += n
	case TierExpert:
		b.Expert += n
	case TierMaster:
		b.Master += n
	}
}

// Total is the number of picks across all tiers
func (b SlotBudget) Total() int {
	return b.Trained + b.Expert + b.Master
}

// IsZero reports whether no slots are granted
func (b SlotBudget) IsZero() bool {
	return b.Total() == 0
}

func (b SlotBudget) String() string {
	if b.IsZero() {
		return "none"
	}
	out := ""
	for _, t := range Tiers() {
		n := b.Get(t)
		if n == 0 {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += fmt.Sprintf("%d %s", n, t)
	}
	return out
}

// BudgetOption is one named choice in a bonus choice set, e.g. "1 Expert skill"
type BudgetOption struct {
	Name  string     `yaml:"name" json:"name"`
	Slots SlotBudget `yaml:"slots" json:"slots"`
}

// ClassConfig holds the modifiers and skill grants of a class. A class grants
// bonus slots either through a named BonusChoice set or fixed BonusSlots,
// never both.
type ClassConfig struct {
	Key         ClassKey `yaml:"key"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`

	Stats     map[Stat]int `yaml:"stats"`
	Saves     map[Save]int `yaml:"saves"`
	MaxWounds int          `yaml:"max_wounds"`

	// RequiresStatChoice classes apply StatChoiceModifier to a stat the
	// player picks.
	RequiresStatChoice bool `yaml:"requires_stat_choice"`
	StatChoiceModifier int  `yaml:"stat_choice_modifier"`

	Starting []string `yaml:"starting"`

	BonusChoice string      `yaml:"bonus_choice"`
	BonusSlots  *SlotBudget `yaml:"bonus_slots"`

	// RequiresMasterSelection classes get a full master chain as their
	// starting skills instead of Starting.
	RequiresMasterSelection bool `yaml:"requires_master_selection"`
}

func (c *ClassConfig) clone() *ClassConfig {
	out := *c
	out.Stats = make(map[Stat]int, len(c.Stats))
	for k, v := range c.Stats {
		out.Stats[k] = v
	}
	out.Saves = make(map[Save]int, len(c.Saves))
	for k, v := range c.Saves {
		out.Saves[k] = v
	}
	out.Starting = cloneStrings(c.Starting)
	if c.BonusSlots != nil {
		slots := *c.BonusSlots
		out.BonusSlots = &slots
	}
	return &out
}

// HasBonusChoice reports whether the class picks its budget from options
func (c *ClassConfig) HasBonusChoice() bool {
	return c.BonusChoice != ""
}
