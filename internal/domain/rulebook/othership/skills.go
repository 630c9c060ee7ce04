package othership

import (
	"fmt"
	"strings"
)

// Tier is the rank of a skill
type Tier string

const (
	TierTrained Tier = "trained"
	TierExpert  Tier = "expert"
	TierMaster  Tier = "master"
)

// Tiers returns tiers from lowest to highest
func Tiers() []Tier {
	return []Tier{TierTrained, TierExpert, TierMaster}
}

// Display returns the capitalized tier name
func (t Tier) Display() string {
	return capitalize(string(t))
}

// Bonus is the amount a skill of this tier adds to a check
func (t Tier) Bonus() int {
	switch t {
	case TierTrained:
		return 10
	case TierExpert:
		return 15
	case TierMaster:
		return 20
	default:
		return 0
	}
}

// rank orders tiers; unknown tiers rank below trained
func (t Tier) rank() int {
	switch t {
	case TierTrained:
		return 1
	case TierExpert:
		return 2
	case TierMaster:
		return 3
	default:
		return 0
	}
}

// below returns the tier one rank lower
func (t Tier) below() Tier {
	switch t {
	case TierMaster:
		return TierExpert
	case TierExpert:
		return TierTrained
	default:
		return ""
	}
}

// Skill is a node in the skill tree. UnlockedBy uses OR semantics: any one
// listed skill satisfies the requirement.
//
// Chain names the expert then trained skill granted with a master skill.
// It is required when a hop of the chain has more than one candidate.
type Skill struct {
	ID         string   `yaml:"id" json:"id"`
	Name       string   `yaml:"name" json:"name"`
	Tier       Tier     `yaml:"tier" json:"tier"`
	UnlockedBy []string `yaml:"unlocked_by" json:"unlocked_by,omitempty"`
	Chain      []string `yaml:"chain" json:"chain,omitempty"`
}

func (s *Skill) clone() *Skill {
	out := *s
	out.UnlockedBy = cloneStrings(s.UnlockedBy)
	out.Chain = cloneStrings(s.Chain)
	return &out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

// SkillSet is a set of skill ids
type SkillSet map[string]struct{}

// NewSkillSet builds a set from one or more id lists
func NewSkillSet(lists ...[]string) SkillSet {
	set := make(SkillSet)
	for _, ids := range lists {
		for _, id := range ids {
			set[id] = struct{}{}
		}
	}
	return set
}

func (s SkillSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// MasterChain is the trained, expert and master skills granted together by
// a master selection
type MasterChain struct {
	Master  *Skill
	Expert  *Skill
	Trained *Skill
}

// IDs returns the chain master first, matching how starting skills are stored
func (c *MasterChain) IDs() []string {
	return []string{c.Master.ID, c.Expert.ID, c.Trained.ID}
}

// SkillTree is the immutable skill catalog. Accessors hand out copies.
type SkillTree struct {
	skills     []*Skill
	byID       map[string]*Skill
	dependents map[string][]string
}

// NewSkillTree indexes skills and checks the tree is well formed. Every
// problem found is reported in the returned error.
func NewSkillTree(skills []*Skill) (*SkillTree, error) {
	tree := &SkillTree{
		skills:     skills,
		byID:       make(map[string]*Skill, len(skills)),
		dependents: make(map[string][]string),
	}

	var problems []string
	for _, s := range skills {
		if s.ID == "" {
			problems = append(problems, fmt.Sprintf("skill %q has no id", s.Name))
			continue
		}
		if _, dup := tree.byID[s.ID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate skill id %s", s.ID))
			continue
		}
		tree.byID[s.ID] = s
	}

	for _, s := range skills {
		if s.Tier.rank() == 0 {
			problems = append(problems, fmt.Sprintf("skill %s has unknown tier %q", s.ID, s.Tier))
			continue
		}
		if s.Tier == TierTrained && len(s.UnlockedBy) > 0 {
			problems = append(problems, fmt.Sprintf("trained skill %s cannot have prerequisites", s.ID))
		}
		if s.Tier != TierMaster && len(s.Chain) > 0 {
			problems = append(problems, fmt.Sprintf("%s skill %s cannot declare a chain", s.Tier, s.ID))
		}
		if s.Tier != TierTrained && len(s.UnlockedBy) == 0 {
			problems = append(problems, fmt.Sprintf("%s skill %s needs at least one prerequisite", s.Tier, s.ID))
		}
		for _, pre := range s.UnlockedBy {
			p, ok := tree.byID[pre]
			if !ok {
				problems = append(problems, fmt.Sprintf("skill %s is unlocked by unknown skill %s", s.ID, pre))
				continue
			}
			// Strictly lower tiers keep the graph acyclic and guarantee a
			// path down to a trained skill.
			if p.Tier.rank() >= s.Tier.rank() {
				problems = append(problems, fmt.Sprintf("skill %s is unlocked by %s which is not a lower tier", s.ID, pre))
				continue
			}
			tree.dependents[pre] = append(tree.dependents[pre], s.ID)
		}
	}

	if len(problems) == 0 {
		for _, s := range skills {
			if s.Tier != TierMaster {
				continue
			}
			if _, err := tree.MasterSkillChain(s.ID); err != nil {
				problems = append(problems, err.Error())
			}
		}
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid skill tree: %s", strings.Join(problems, "; "))
	}
	return tree, nil
}

// Skills returns every skill in catalog order
func (t *SkillTree) Skills() []*Skill {
	out := make([]*Skill, len(t.skills))
	for i, s := range t.skills {
		out[i] = s.clone()
	}
	return out
}

// Skill looks up a skill by id
func (t *SkillTree) Skill(id string) (*Skill, bool) {
	s, ok := t.byID[id]
	if !ok {
		return nil, false
	}
	return s.clone(), true
}

// ByTier returns the skills of one tier in catalog order
func (t *SkillTree) ByTier(tier Tier) []*Skill {
	var out []*Skill
	for _, s := range t.skills {
		if s.Tier == tier {
			out = append(out, s.clone())
		}
	}
	return out
}

// Dependents returns the ids of skills that list id as a prerequisite
func (t *SkillTree) Dependents(id string) []string {
	return cloneStrings(t.dependents[id])
}

// IsSkillUnlocked reports whether the skill has no prerequisites or at least
// one of them is in possessed. Unknown ids are never unlocked.
func (t *SkillTree) IsSkillUnlocked(id string, possessed SkillSet) bool {
	s, ok := t.byID[id]
	if !ok {
		return false
	}
	if len(s.UnlockedBy) == 0 {
		return true
	}
	for _, pre := range s.UnlockedBy {
		if possessed.Has(pre) {
			return true
		}
	}
	return false
}

// MasterSkillChain walks two hops back from a master skill. A declared
// Chain is used as given; otherwise each hop must have exactly one
// prerequisite of the tier below, and anything else is an error.
func (t *SkillTree) MasterSkillChain(masterID string) (*MasterChain, error) {
	master, ok := t.byID[masterID]
	if !ok {
		return nil, fmt.Errorf("unknown skill %s", masterID)
	}
	if master.Tier != TierMaster {
		return nil, fmt.Errorf("skill %s is %s, not master", masterID, master.Tier)
	}

	var links [2]string
	switch len(master.Chain) {
	case 0:
	case 2:
		links = [2]string{master.Chain[0], master.Chain[1]}
	default:
		return nil, fmt.Errorf("master skill %s chain must name one expert and one trained skill", masterID)
	}

	expert, err := t.chainLink(master, links[0])
	if err != nil {
		return nil, err
	}
	trained, err := t.chainLink(expert, links[1])
	if err != nil {
		return nil, err
	}

	return &MasterChain{Master: master.clone(), Expert: expert.clone(), Trained: trained.clone()}, nil
}

// chainLink finds the prerequisite of s one tier down. declared, when set,
// must be one of them.
func (t *SkillTree) chainLink(s *Skill, declared string) (*Skill, error) {
	want := s.Tier.below()
	var candidates []*Skill
	for _, pre := range s.UnlockedBy {
		if p, ok := t.byID[pre]; ok && p.Tier == want {
			candidates = append(candidates, p)
		}
	}

	if declared != "" {
		for _, p := range candidates {
			if p.ID == declared {
				return p, nil
			}
		}
		return nil, fmt.Errorf("chain link %s is not a %s prerequisite of %s", declared, want, s.ID)
	}

	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("skill %s has no %s prerequisite", s.ID, want)
	case 1:
		return candidates[0], nil
	default:
		ids := make([]string, len(candidates))
		for i, p := range candidates {
			ids[i] = p.ID
		}
		return nil, fmt.Errorf("skill %s has ambiguous %s prerequisites %s", s.ID, want, strings.Join(ids, ", "))
	}
}

// names resolves ids to display names, keeping unknown ids as-is
func (t *SkillTree) names(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if s, ok := t.byID[id]; ok {
			out = append(out, s.Name)
			continue
		}
		out = append(out, id)
	}
	return out
}

// name resolves a single id to its display name
func (t *SkillTree) name(id string) string {
	return t.names([]string{id})[0]
}
