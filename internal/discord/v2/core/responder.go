package core

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// InteractionResponder provides an abstraction over Discord's interaction response API
type InteractionResponder interface {
	// Respond sends the initial response, or edits it when one was sent
	Respond(response *Response) error

	// FollowUp sends an additional message after the initial response
	FollowUp(response *Response) (*discordgo.Message, error)

	HasResponded() bool
}

// DiscordResponder implements InteractionResponder using Discord's API
type DiscordResponder struct {
	session     Session
	interaction *discordgo.InteractionCreate
	responded   bool
}

// NewDiscordResponder creates a new Discord responder
func NewDiscordResponder(s Session, i *discordgo.InteractionCreate) *DiscordResponder {
	return &DiscordResponder{
		session:     s,
		interaction: i,
	}
}

// Respond sends an immediate response
func (r *DiscordResponder) Respond(response *Response) error {
	if r.responded {
		return r.edit(response)
	}

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: buildResponseData(response),
	}
	switch {
	case response.Modal != nil:
		resp.Type = discordgo.InteractionResponseModal
		resp.Data = &discordgo.InteractionResponseData{
			CustomID:   response.Modal.CustomID,
			Title:      response.Modal.Title,
			Components: response.Modal.Components,
		}
	case response.Update && r.interaction.Type != discordgo.InteractionApplicationCommand:
		// ephemeral flags cannot change on an update
		resp.Type = discordgo.InteractionResponseUpdateMessage
		resp.Data.Flags = 0
	}

	if err := r.session.InteractionRespond(r.interaction.Interaction, resp); err != nil {
		return err
	}
	r.responded = true
	return nil
}

func (r *DiscordResponder) edit(response *Response) error {
	if response.Modal != nil {
		return fmt.Errorf("a modal can only be the first response")
	}
	_, err := r.session.InteractionResponseEdit(r.interaction.Interaction, &discordgo.WebhookEdit{
		Content:         &response.Content,
		Embeds:          &response.Embeds,
		Components:      &response.Components,
		AllowedMentions: response.AllowedMentions,
	})
	return err
}

// FollowUp sends an additional message after the initial response
func (r *DiscordResponder) FollowUp(response *Response) (*discordgo.Message, error) {
	if !r.responded {
		return nil, fmt.Errorf("cannot follow up before responding")
	}

	params := &discordgo.WebhookParams{
		Content:         response.Content,
		Embeds:          response.Embeds,
		Components:      response.Components,
		AllowedMentions: response.AllowedMentions,
	}
	if response.Ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}
	return r.session.FollowupMessageCreate(r.interaction.Interaction, true, params)
}

// HasResponded returns whether this responder has already sent a response
func (r *DiscordResponder) HasResponded() bool {
	return r.responded
}

func buildResponseData(response *Response) *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{
		Content:         response.Content,
		Embeds:          response.Embeds,
		Components:      response.Components,
		AllowedMentions: response.AllowedMentions,
	}
	if response.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return data
}
