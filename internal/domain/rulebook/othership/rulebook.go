package othership

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

// Scenario is an adventure an admin can start a game with
type Scenario struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	MinPlayers  int    `yaml:"min_players"`
	MaxPlayers  int    `yaml:"max_players"`
}

type catalogFile struct {
	Skills       []*Skill                  `yaml:"skills"`
	BonusChoices map[string][]BudgetOption `yaml:"bonus_choices"`
	Classes      []*ClassConfig            `yaml:"classes"`
	Scenarios    []*Scenario               `yaml:"scenarios"`
}

// Rulebook is the loaded, validated catalog. It is built once at startup and
// passed to whatever needs the rules; nothing mutates it afterwards.
// Accessors return copies, so callers may modify what they get back.
type Rulebook struct {
	tree         *SkillTree
	classes      map[ClassKey]*ClassConfig
	classOrder   []ClassKey
	bonusChoices map[string][]BudgetOption
	scenarios    []*Scenario
}

// LoadDefault parses the catalog compiled into the binary
func LoadDefault() (*Rulebook, error) {
	return Load(defaultCatalog)
}

// LoadFile parses a catalog from disk
func LoadFile(path string) (*Rulebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	rb, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return rb, nil
}

// Load parses and validates a YAML catalog
func Load(data []byte) (*Rulebook, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	tree, err := NewSkillTree(file.Skills)
	if err != nil {
		return nil, err
	}

	rb := &Rulebook{
		tree:         tree,
		classes:      make(map[ClassKey]*ClassConfig, len(file.Classes)),
		bonusChoices: file.BonusChoices,
		scenarios:    file.Scenarios,
	}

	var problems []string
	for _, c := range file.Classes {
		if _, dup := rb.classes[c.Key]; dup {
			problems = append(problems, fmt.Sprintf("duplicate class %s", c.Key))
			continue
		}
		problems = append(problems, rb.checkClass(c)...)
		rb.classes[c.Key] = c
		rb.classOrder = append(rb.classOrder, c.Key)
	}

	seen := make(map[string]bool)
	for _, s := range file.Scenarios {
		switch {
		case s.ID == "":
			problems = append(problems, fmt.Sprintf("scenario %q has no id", s.Name))
		case seen[s.ID]:
			problems = append(problems, fmt.Sprintf("duplicate scenario %s", s.ID))
		case s.MinPlayers < 1 || s.MaxPlayers < s.MinPlayers:
			problems = append(problems, fmt.Sprintf("scenario %s has invalid player range %d-%d", s.ID, s.MinPlayers, s.MaxPlayers))
		}
		seen[s.ID] = true
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid catalog: %s", strings.Join(problems, "; "))
	}
	return rb, nil
}

func (rb *Rulebook) checkClass(c *ClassConfig) []string {
	var problems []string

	if c.HasBonusChoice() == (c.BonusSlots != nil) {
		problems = append(problems, fmt.Sprintf("class %s must set exactly one of bonus_choice or bonus_slots", c.Key))
	}
	if c.HasBonusChoice() && len(rb.bonusChoices[c.BonusChoice]) == 0 {
		problems = append(problems, fmt.Sprintf("class %s uses unknown bonus choice %s", c.Key, c.BonusChoice))
	}
	if c.RequiresMasterSelection && len(c.Starting) > 0 {
		problems = append(problems, fmt.Sprintf("class %s selects a master chain and cannot list starting skills", c.Key))
	}
	for _, id := range c.Starting {
		if _, ok := rb.tree.Skill(id); !ok {
			problems = append(problems, fmt.Sprintf("class %s starts with unknown skill %s", c.Key, id))
		}
	}
	for stat := range c.Stats {
		if _, ok := ParseStat(string(stat)); !ok {
			problems = append(problems, fmt.Sprintf("class %s modifies unknown stat %s", c.Key, stat))
		}
	}
	for save := range c.Saves {
		if _, ok := ParseSave(string(save)); !ok {
			problems = append(problems, fmt.Sprintf("class %s modifies unknown save %s", c.Key, save))
		}
	}
	if c.MaxWounds < 1 {
		problems = append(problems, fmt.Sprintf("class %s needs at least one wound", c.Key))
	}
	return problems
}

// Tree returns the skill tree
func (rb *Rulebook) Tree() *SkillTree {
	return rb.tree
}

// Class looks up a class by key
func (rb *Rulebook) Class(key ClassKey) (*ClassConfig, bool) {
	c, ok := rb.classes[key]
	if !ok {
		return nil, false
	}
	return c.clone(), true
}

// Classes returns classes in catalog order
func (rb *Rulebook) Classes() []*ClassConfig {
	out := make([]*ClassConfig, 0, len(rb.classOrder))
	for _, k := range rb.classOrder {
		out = append(out, rb.classes[k].clone())
	}
	return out
}

// Scenario looks up a scenario by id
func (rb *Rulebook) Scenario(id string) (*Scenario, bool) {
	for _, s := range rb.scenarios {
		if s.ID == id {
			sc := *s
			return &sc, true
		}
	}
	return nil, false
}

// Scenarios returns scenarios in catalog order
func (rb *Rulebook) Scenarios() []*Scenario {
	out := make([]*Scenario, len(rb.scenarios))
	for i, s := range rb.scenarios {
		sc := *s
		out[i] = &sc
	}
	return out
}

// BonusOptions returns the budget options a class chooses between, or nil
// for fixed-budget classes
func (rb *Rulebook) BonusOptions(key ClassKey) []BudgetOption {
	c, ok := rb.classes[key]
	if !ok || !c.HasBonusChoice() {
		return nil
	}
	return append([]BudgetOption(nil), rb.bonusChoices[c.BonusChoice]...)
}

// StatModifier is the class delta applied to a stat, including the
// stat-choice modifier when chosen names the stat
func (rb *Rulebook) StatModifier(key ClassKey, chosen, stat Stat) int {
	c, ok := rb.classes[key]
	if !ok {
		return 0
	}
	mod := c.Stats[stat]
	if c.RequiresStatChoice && chosen == stat {
		mod += c.StatChoiceModifier
	}
	return mod
}

// SaveModifier is the class delta applied to a save
func (rb *Rulebook) SaveModifier(key ClassKey, save Save) int {
	c, ok := rb.classes[key]
	if !ok {
		return 0
	}
	return c.Saves[save]
}
