package builders

import (
	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/othership-bot/internal/discord/v2/core"
)

// Discord limits
const (
	maxPerRow         = 5
	maxRows           = 5
	maxSelectOptions  = 25
	maxSelectLabelLen = 100
)

// ComponentBuilder builds Discord message components
type ComponentBuilder struct {
	rows       []discordgo.MessageComponent
	currentRow []discordgo.MessageComponent
	ids        *core.CustomIDBuilder
}

// NewComponentBuilder creates a new component builder
func NewComponentBuilder(ids *core.CustomIDBuilder) *ComponentBuilder {
	return &ComponentBuilder{
		currentRow: make([]discordgo.MessageComponent, 0, maxPerRow),
		ids:        ids,
	}
}

// Button adds a button to the current row
func (b *ComponentBuilder) Button(label string, style discordgo.ButtonStyle, action, target string, args ...string) *ComponentBuilder {
	b.addComponent(discordgo.Button{
		Label:    label,
		Style:    style,
		CustomID: b.ids.ID(action, target, args...),
	})
	return b
}

// DisabledButton adds a button that shows state but cannot be clicked. The
// custom ID still has to be unique within the message.
func (b *ComponentBuilder) DisabledButton(label string, style discordgo.ButtonStyle, action, target string, args ...string) *ComponentBuilder {
	b.addComponent(discordgo.Button{
		Label:    label,
		Style:    style,
		CustomID: b.ids.ID(action, target, args...),
		Disabled: true,
	})
	return b
}

// SelectMenu adds a select menu on its own row. Menus with no options are
// skipped since Discord rejects them.
func (b *ComponentBuilder) SelectMenu(placeholder, action, target string, options []SelectOption, config ...SelectConfig) *ComponentBuilder {
	if len(options) == 0 {
		return b
	}
	if len(options) > maxSelectOptions {
		options = options[:maxSelectOptions]
	}

	discordOptions := make([]discordgo.SelectMenuOption, len(options))
	for i, opt := range options {
		discordOptions[i] = discordgo.SelectMenuOption{
			Label:       truncate(opt.Label, maxSelectLabelLen),
			Value:       opt.Value,
			Description: truncate(opt.Description, maxSelectLabelLen),
			Default:     opt.Default,
		}
	}

	menu := discordgo.SelectMenu{
		CustomID:    b.ids.ID(action, target),
		Placeholder: placeholder,
		Options:     discordOptions,
	}
	if len(config) > 0 {
		cfg := config[0]
		if cfg.MinValues > 0 {
			minVal := cfg.MinValues
			menu.MinValues = &minVal
		}
		if cfg.MaxValues > 0 {
			menu.MaxValues = min(cfg.MaxValues, len(options))
		}
		menu.Disabled = cfg.Disabled
	}

	b.NewRow()
	b.addComponent(menu)
	b.NewRow()
	return b
}

// NewRow starts a new action row
func (b *ComponentBuilder) NewRow() *ComponentBuilder {
	if len(b.currentRow) > 0 {
		b.rows = append(b.rows, discordgo.ActionsRow{Components: b.currentRow})
		b.currentRow = make([]discordgo.MessageComponent, 0, maxPerRow)
	}
	return b
}

// Build returns the built components, at most five rows
func (b *ComponentBuilder) Build() []discordgo.MessageComponent {
	b.NewRow()
	if len(b.rows) > maxRows {
		return b.rows[:maxRows]
	}
	return b.rows
}

func (b *ComponentBuilder) addComponent(component discordgo.MessageComponent) {
	if len(b.currentRow) >= maxPerRow {
		b.NewRow()
	}
	b.currentRow = append(b.currentRow, component)
}

// SelectOption represents an option in a select menu
type SelectOption struct {
	Label       string
	Value       string
	Description string
	Default     bool
}

// SelectConfig configures a select menu
type SelectConfig struct {
	MinValues int
	MaxValues int
	Disabled  bool
}

// PrimaryButton adds a blurple button
func (b *ComponentBuilder) PrimaryButton(label, action, target string, args ...string) *ComponentBuilder {
	return b.Button(label, discordgo.PrimaryButton, action, target, args...)
}

// SecondaryButton adds a grey button
func (b *ComponentBuilder) SecondaryButton(label, action, target string, args ...string) *ComponentBuilder {
	return b.Button(label, discordgo.SecondaryButton, action, target, args...)
}

// SuccessButton adds a green button
func (b *ComponentBuilder) SuccessButton(label, action, target string, args ...string) *ComponentBuilder {
	return b.Button(label, discordgo.SuccessButton, action, target, args...)
}

// TextInput is one row of a modal
func TextInput(customID, label, value string, style discordgo.TextInputStyle, required bool, maxLength int) discordgo.MessageComponent {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.TextInput{
			CustomID:  customID,
			Label:     label,
			Value:     value,
			Style:     style,
			Required:  required,
			MaxLength: maxLength,
		},
	}}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
