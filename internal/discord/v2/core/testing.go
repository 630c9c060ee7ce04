package core

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

// FakeSession records what the pipeline sends to Discord
type FakeSession struct {
	mu        sync.Mutex
	Responses []*discordgo.InteractionResponse
	Edits     []*discordgo.WebhookEdit
	FollowUps []*discordgo.WebhookParams

	RespondErr error
}

func (f *FakeSession) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.RespondErr != nil {
		return f.RespondErr
	}
	f.Responses = append(f.Responses, resp)
	return nil
}

func (f *FakeSession) InteractionResponseEdit(_ *discordgo.Interaction, edit *discordgo.WebhookEdit, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Edits = append(f.Edits, edit)
	return &discordgo.Message{}, nil
}

func (f *FakeSession) FollowupMessageCreate(_ *discordgo.Interaction, _ bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FollowUps = append(f.FollowUps, data)
	return &discordgo.Message{}, nil
}

// Last returns the most recent initial response, or nil
func (f *FakeSession) Last() *discordgo.InteractionResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Responses) == 0 {
		return nil
	}
	return f.Responses[len(f.Responses)-1]
}

// InteractionBuilder assembles interactions for router tests
type InteractionBuilder struct {
	i *discordgo.InteractionCreate
}

// NewTestInteraction starts an interaction from a guild member
func NewTestInteraction(guildID, userID string) *InteractionBuilder {
	return &InteractionBuilder{i: &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:        "interaction-1",
			GuildID:   guildID,
			ChannelID: "channel-" + guildID,
			Member: &discordgo.Member{
				User: &discordgo.User{ID: userID, Username: userID},
			},
		},
	}}
}

// WithPermissions sets the member's channel permissions
func (b *InteractionBuilder) WithPermissions(perm int64) *InteractionBuilder {
	b.i.Member.Permissions = perm
	return b
}

// WithNick sets the member's server nickname
func (b *InteractionBuilder) WithNick(nick string) *InteractionBuilder {
	b.i.Member.Nick = nick
	return b
}

// Command makes a slash command. An empty sub means no subcommand.
func (b *InteractionBuilder) Command(name, sub string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	data := discordgo.ApplicationCommandInteractionData{Name: name, Options: options}
	if sub != "" {
		data.Options = []*discordgo.ApplicationCommandInteractionDataOption{{
			Name:    sub,
			Type:    discordgo.ApplicationCommandOptionSubCommand,
			Options: options,
		}}
	}
	b.i.Type = discordgo.InteractionApplicationCommand
	b.i.Data = data
	return b.i
}

// StringOption is a string command option
func StringOption(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

// Component makes a button click or, with values, a select menu choice
func (b *InteractionBuilder) Component(customID string, values ...string) *discordgo.InteractionCreate {
	b.i.Type = discordgo.InteractionMessageComponent
	b.i.Data = discordgo.MessageComponentInteractionData{CustomID: customID, Values: values}
	return b.i
}

// Modal makes a modal submission with the given text inputs
func (b *InteractionBuilder) Modal(customID string, inputs map[string]string) *discordgo.InteractionCreate {
	rows := make([]discordgo.MessageComponent, 0, len(inputs))
	for id, value := range inputs {
		rows = append(rows, &discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			&discordgo.TextInput{CustomID: id, Value: value},
		}})
	}
	b.i.Type = discordgo.InteractionModalSubmit
	b.i.Data = discordgo.ModalSubmitInteractionData{CustomID: customID, Components: rows}
	return b.i
}
