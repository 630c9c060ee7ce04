package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/othership-bot/internal/discord/v2/builders"
	"github.com/KirkDiggler/othership-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/othership-bot/internal/domain/character"
	"github.com/KirkDiggler/othership-bot/internal/domain/rulebook/othership"
)

// Page is one screen of the character creation wizard
type Page string

const (
	PageStats   Page = "stats"
	PageClass   Page = "class"
	PageSkills  Page = "skills"
	PageDetails Page = "details"
	PageSheet   Page = "sheet"
)

var pageOrder = map[Page]int{
	PageStats:   0,
	PageClass:   1,
	PageSkills:  2,
	PageDetails: 3,
	PageSheet:   4,
}

var pageTitles = map[Page]string{
	PageStats:   "Roll attributes",
	PageClass:   "Choose a class",
	PageSkills:  "Pick skills",
	PageDetails: "Name and finalize",
}

// Modal input IDs
const (
	InputName   = "name"
	InputAvatar = "avatar"
)

// PageForStep is the furthest page a character at step may open
func PageForStep(step character.Step) Page {
	switch step {
	case character.StepEmpty, character.StepStatsRolling:
		return PageStats
	case character.StepStatsComplete, character.StepClassChosen:
		return PageClass
	case character.StepMasterChainChosen, character.StepSkillsSelecting:
		return PageSkills
	case character.StepSkillsValid:
		return PageDetails
	default:
		return PageSheet
	}
}

// Clamp returns requested when the character has reached it, otherwise the
// furthest page it has reached. Finalized characters always get the sheet.
func Clamp(requested Page, step character.Step) Page {
	reached := PageForStep(step)
	order, ok := pageOrder[requested]
	if !ok || reached == PageSheet || order > pageOrder[reached] {
		return reached
	}
	return requested
}

func previousPage(p Page) (Page, bool) {
	switch p {
	case PageClass:
		return PageStats, true
	case PageSkills:
		return PageClass, true
	case PageDetails:
		return PageSkills, true
	}
	return "", false
}

func nextPage(p Page) (Page, bool) {
	switch p {
	case PageStats:
		return PageClass, true
	case PageClass:
		return PageSkills, true
	case PageSkills:
		return PageDetails, true
	}
	return "", false
}

// WizardRenderer turns a character sheet into wizard messages
type WizardRenderer struct {
	rulebook *othership.Rulebook
	ids      *core.CustomIDBuilder
}

// NewWizardRenderer creates a renderer whose components route back to ids
func NewWizardRenderer(rb *othership.Rulebook, ids *core.CustomIDBuilder) *WizardRenderer {
	return &WizardRenderer{rulebook: rb, ids: ids}
}

// Render draws the requested page, clamped to how far the character got
func (w *WizardRenderer) Render(sheet *character.Sheet, requested Page) *core.Response {
	page := Clamp(requested, sheet.Step)
	if page == PageSheet {
		return core.NewEmbedResponse(SheetEmbed(sheet))
	}

	cb := builders.NewComponentBuilder(w.ids)
	switch page {
	case PageStats:
		w.statsComponents(cb, sheet)
	case PageClass:
		w.classComponents(cb, sheet)
	case PageSkills:
		w.skillComponents(cb, sheet)
	case PageDetails:
		id := sheet.Character.ID
		cb.PrimaryButton("Set name", "details", id).
			SuccessButton("Finalize", "finalize", id)
	}
	w.navigation(cb, sheet, page)

	return core.NewEmbedResponse(w.embed(sheet, page)).WithComponents(cb.Build()...)
}

// DetailsModal asks for the name and avatar
func (w *WizardRenderer) DetailsModal(c *character.Character) *core.Modal {
	return &core.Modal{
		CustomID: w.ids.ID("details", c.ID),
		Title:    "Character details",
		Components: []discordgo.MessageComponent{
			builders.TextInput(InputName, "Name", c.Name, discordgo.TextInputShort, true, 64),
			builders.TextInput(InputAvatar, "Avatar URL (https, optional)", c.AvatarURL, discordgo.TextInputShort, false, 512),
		},
	}
}

func (w *WizardRenderer) embed(sheet *character.Sheet, page Page) *discordgo.MessageEmbed {
	c := sheet.Character
	title := "New crew member"
	if c.Name != "" {
		title = "Creating " + c.Name
	}

	eb := builders.InfoEmbed(title, pageDescription(sheet, page)).
		Thumbnail(c.AvatarURL).
		Field("Stats", statLines(sheet), true).
		Field("Saves", saveLines(sheet), true)

	if sheet.Class != nil {
		eb.Field("Class", fmt.Sprintf("%s\nMax wounds %d", sheet.Class.Name, sheet.MaxWounds), true)
	}
	if len(sheet.Skills) > 0 {
		eb.Field("Skills", skillLines(sheet), false)
	}
	if (page == PageSkills || page == PageDetails) && !sheet.Validation.Valid {
		eb.Field("Still needed", bulletList(sheet.Validation.Errors), false)
	}

	eb.Footer(fmt.Sprintf("Step %d of %d: %s", pageOrder[page]+1, len(pageTitles), pageTitles[page]))
	return eb.Build()
}

func pageDescription(sheet *character.Sheet, page Page) string {
	switch page {
	case PageStats:
		return "Roll 2d10+25 for each stat and 2d10+10 for each save. Rolls are final."
	case PageClass:
		return "Pick a class. Class modifiers apply on top of your rolls."
	case PageSkills:
		if sheet.Budget.IsZero() && sheet.Class != nil && sheet.Class.HasBonusChoice() {
			return "Choose how to spend your bonus skills, then pick them below."
		}
		return fmt.Sprintf("Bonus slots: %s. Remaining: %s.", sheet.Budget, sheet.Remaining)
	case PageDetails:
		return "Give your character a name, then finalize. Finalized characters cannot change."
	}
	return ""
}

func (w *WizardRenderer) statsComponents(cb *builders.ComponentBuilder, sheet *character.Sheet) {
	id := sheet.Character.ID
	for _, stat := range othership.AllStats() {
		line := sheet.Stats[stat]
		if line.Rolled {
			cb.DisabledButton(fmt.Sprintf("%s %d", stat.Display(), line.Value), discordgo.SecondaryButton, "rolled", id, string(stat))
			continue
		}
		cb.PrimaryButton("Roll "+stat.Display(), "roll_stat", id, string(stat))
	}
	cb.NewRow()
	for _, save := range othership.AllSaves() {
		line := sheet.Saves[save]
		if line.Rolled {
			cb.DisabledButton(fmt.Sprintf("%s %d", save.Display(), line.Value), discordgo.SecondaryButton, "rolled", id, string(save))
			continue
		}
		cb.PrimaryButton("Roll "+save.Display(), "roll_save", id, string(save))
	}
	if !sheet.Character.AllRolled() {
		cb.SuccessButton("Roll the rest", "roll_remaining", id)
	}
}

func (w *WizardRenderer) classComponents(cb *builders.ComponentBuilder, sheet *character.Sheet) {
	c := sheet.Character

	classes := make([]builders.SelectOption, 0, len(w.rulebook.Classes()))
	for _, cl := range w.rulebook.Classes() {
		classes = append(classes, builders.SelectOption{
			Label:       cl.Name,
			Value:       string(cl.Key),
			Description: cl.Description,
			Default:     cl.Key == c.Class,
		})
	}
	cb.SelectMenu("Choose a class", "class", c.ID, classes)

	class := sheet.Class
	if class == nil {
		return
	}

	if class.RequiresStatChoice {
		stats := make([]builders.SelectOption, 0, len(othership.AllStats()))
		for _, stat := range othership.AllStats() {
			stats = append(stats, builders.SelectOption{
				Label:   stat.Display(),
				Value:   string(stat),
				Default: stat == c.ChosenStat,
			})
		}
		cb.SelectMenu(fmt.Sprintf("Stat that gets %+d", class.StatChoiceModifier), "stat_choice", c.ID, stats)
	}

	if class.RequiresMasterSelection {
		tree := w.rulebook.Tree()
		var masters []builders.SelectOption
		for _, s := range tree.ByTier(othership.TierMaster) {
			chain, err := tree.MasterSkillChain(s.ID)
			if err != nil {
				continue
			}
			masters = append(masters, builders.SelectOption{
				Label:       s.Name,
				Value:       s.ID,
				Description: chain.Trained.Name + " > " + chain.Expert.Name + " > " + chain.Master.Name,
				Default:     s.ID == c.MasterSkill,
			})
		}
		cb.SelectMenu("Choose a master skill", "master", c.ID, masters)
	}
}

func (w *WizardRenderer) skillComponents(cb *builders.ComponentBuilder, sheet *character.Sheet) {
	c := sheet.Character

	if options := w.rulebook.BonusOptions(c.Class); len(options) > 0 {
		for i, opt := range options {
			style := discordgo.SecondaryButton
			if c.BonusChoiceIndex != nil && *c.BonusChoiceIndex == i {
				style = discordgo.SuccessButton
			}
			cb.Button(opt.Name, style, "bonus_choice", c.ID, strconv.Itoa(i))
		}
		cb.NewRow()
	}

	cb.SelectMenu("Add or remove a skill", "skill", c.ID, w.skillOptions(c))
}

// skillOptions lists selected bonus skills first, then every skill that can
// be added right now
func (w *WizardRenderer) skillOptions(c *character.Character) []builders.SelectOption {
	tree := w.rulebook.Tree()
	b := c.Build()

	var options []builders.SelectOption
	for _, id := range c.BonusSkills {
		s, ok := tree.Skill(id)
		if !ok {
			continue
		}
		options = append(options, builders.SelectOption{
			Label:       "Remove " + s.Name,
			Value:       s.ID,
			Description: fmt.Sprintf("Selected %s skill", s.Tier),
		})
	}
	for _, tier := range othership.Tiers() {
		for _, s := range tree.ByTier(tier) {
			if w.rulebook.CanAddSkill(b, s.ID) != nil {
				continue
			}
			options = append(options, builders.SelectOption{
				Label:       s.Name,
				Value:       s.ID,
				Description: fmt.Sprintf("%s, +%d", s.Tier.Display(), s.Tier.Bonus()),
			})
		}
	}
	return options
}

func (w *WizardRenderer) navigation(cb *builders.ComponentBuilder, sheet *character.Sheet, page Page) {
	cb.NewRow()
	id := sheet.Character.ID
	if prev, ok := previousPage(page); ok {
		cb.SecondaryButton("Back", "back", id, string(prev))
	}
	next, ok := nextPage(page)
	if ok && pageOrder[PageForStep(sheet.Step)] >= pageOrder[next] {
		cb.PrimaryButton("Next", "next", id, string(next))
	}
}

func statLines(sheet *character.Sheet) string {
	lines := make([]string, 0, len(othership.AllStats()))
	for _, stat := range othership.AllStats() {
		lines = append(lines, attributeLine(stat.Display(), sheet.Stats[stat]))
	}
	return strings.Join(lines, "\n")
}

func saveLines(sheet *character.Sheet) string {
	lines := make([]string, 0, len(othership.AllSaves()))
	for _, save := range othership.AllSaves() {
		lines = append(lines, attributeLine(save.Display(), sheet.Saves[save]))
	}
	return strings.Join(lines, "\n")
}

func attributeLine(label string, line character.AttributeLine) string {
	var mod string
	if line.Modifier != 0 {
		mod = fmt.Sprintf(" (%+d)", line.Modifier)
	}
	if !line.Rolled {
		return fmt.Sprintf("**%s** not rolled%s", label, mod)
	}
	return fmt.Sprintf("**%s** %d%s", label, line.Value, mod)
}

func skillLines(sheet *character.Sheet) string {
	lines := make([]string, 0, len(sheet.Skills))
	for _, sl := range sheet.Skills {
		line := fmt.Sprintf("%s (%s +%d)", sl.Skill.Name, sl.Skill.Tier, sl.Skill.Tier.Bonus())
		if sl.Starting {
			line += " *starting*"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func bulletList(items []string) string {
	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("• ")
		sb.WriteString(item)
	}
	return sb.String()
}
