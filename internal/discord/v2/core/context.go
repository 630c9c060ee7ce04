package core

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// InteractionContext wraps a Discord interaction with useful helpers and context
type InteractionContext struct {
	Session     Session
	Interaction *discordgo.InteractionCreate

	// Extracted common fields for convenience
	UserID      string
	DisplayName string
	GuildID     string
	ChannelID   string
	Member      *discordgo.Member

	// Context for cancellation and values
	Context context.Context

	// Parsed interaction data
	params   map[string]any
	customID *CustomID
	values   []string
}

// NewInteractionContext creates a new InteractionContext from a Discord interaction
func NewInteractionContext(ctx context.Context, s Session, i *discordgo.InteractionCreate) *InteractionContext {
	ic := &InteractionContext{
		Session:     s,
		Interaction: i,
		Context:     ctx,
		GuildID:     i.GuildID,
		ChannelID:   i.ChannelID,
		params:      make(map[string]any),
	}

	switch {
	case i.Member != nil && i.Member.User != nil:
		ic.Member = i.Member
		ic.UserID = i.Member.User.ID
		ic.DisplayName = i.Member.Nick
		if ic.DisplayName == "" {
			ic.DisplayName = displayName(i.Member.User)
		}
	case i.User != nil:
		ic.UserID = i.User.ID
		ic.DisplayName = displayName(i.User)
	}

	ic.parseParams()
	return ic
}

func displayName(u *discordgo.User) string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

func (ic *InteractionContext) parseParams() {
	switch ic.Interaction.Type {
	case discordgo.InteractionApplicationCommand:
		ic.parseOptions(ic.Interaction.ApplicationCommandData().Options)
	case discordgo.InteractionMessageComponent:
		data := ic.Interaction.MessageComponentData()
		ic.customID, _ = ParseCustomID(data.CustomID)
		ic.values = data.Values
	case discordgo.InteractionModalSubmit:
		ic.parseModalParams()
	}
}

// parseOptions walks subcommand groups and subcommands by option type, so a
// subcommand without options is still recognized
func (ic *InteractionContext) parseOptions(options []*discordgo.ApplicationCommandInteractionDataOption) {
	for _, opt := range options {
		switch opt.Type {
		case discordgo.ApplicationCommandOptionSubCommandGroup:
			ic.params["subcommand_group"] = opt.Name
			ic.parseOptions(opt.Options)
		case discordgo.ApplicationCommandOptionSubCommand:
			ic.params["subcommand"] = opt.Name
			ic.parseOptions(opt.Options)
		default:
			ic.params[opt.Name] = opt.Value
		}
	}
}

func (ic *InteractionContext) parseModalParams() {
	data := ic.Interaction.ModalSubmitData()
	ic.customID, _ = ParseCustomID(data.CustomID)

	for _, comp := range data.Components {
		row, ok := comp.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if input, ok := inner.(*discordgo.TextInput); ok {
				ic.params[input.CustomID] = input.Value
			}
		}
	}
}

// GetParam retrieves a parameter by name
func (ic *InteractionContext) GetParam(name string) any {
	return ic.params[name]
}

// GetStringParam retrieves a string parameter or returns empty string
func (ic *InteractionContext) GetStringParam(name string) string {
	if val, ok := ic.params[name]; ok {
		if strVal, ok := val.(string); ok {
			return strVal
		}
	}
	return ""
}

// GetIntParam retrieves an int parameter or returns 0
func (ic *InteractionContext) GetIntParam(name string) int {
	if val, ok := ic.params[name]; ok {
		switch v := val.(type) {
		case float64:
			return int(v)
		case int:
			return v
		case int64:
			return int(v)
		}
	}
	return 0
}

// CustomID returns the parsed custom ID of a component or modal, or nil
func (ic *InteractionContext) CustomID() *CustomID {
	return ic.customID
}

// Values returns the options picked in a select menu
func (ic *InteractionContext) Values() []string {
	return ic.values
}

// IsCommand checks if this is a slash command interaction
func (ic *InteractionContext) IsCommand() bool {
	return ic.Interaction.Type == discordgo.InteractionApplicationCommand
}

// IsComponent checks if this is a message component interaction
func (ic *InteractionContext) IsComponent() bool {
	return ic.Interaction.Type == discordgo.InteractionMessageComponent
}

// IsModal checks if this is a modal submit interaction
func (ic *InteractionContext) IsModal() bool {
	return ic.Interaction.Type == discordgo.InteractionModalSubmit
}

// GetCommandName returns the command name for slash commands
func (ic *InteractionContext) GetCommandName() string {
	if ic.IsCommand() {
		return ic.Interaction.ApplicationCommandData().Name
	}
	return ""
}

// GetSubcommand returns the subcommand name if present
func (ic *InteractionContext) GetSubcommand() string {
	return ic.GetStringParam("subcommand")
}

// HasPermission reports whether the member holds every bit of perm in the
// interaction channel. Administrators hold all permissions.
func (ic *InteractionContext) HasPermission(perm int64) bool {
	if ic.Member == nil {
		return false
	}
	if ic.Member.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	return ic.Member.Permissions&perm == perm
}

// Route describes the interaction for logs
func (ic *InteractionContext) Route() string {
	switch {
	case ic.IsCommand():
		if sub := ic.GetSubcommand(); sub != "" {
			return ic.GetCommandName() + "/" + sub
		}
		return ic.GetCommandName()
	case ic.customID != nil:
		return ic.customID.Domain + ":" + ic.customID.Action
	default:
		return "unknown"
	}
}
