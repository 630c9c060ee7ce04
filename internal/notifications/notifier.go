// Package notifications posts game lifecycle announcements to the channel a
// game was started in.
package notifications

//go:generate mockgen -destination=mock/mock_notifier.go -package=mocknotifications -source=notifier.go

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Message is a channel post
type Message struct {
	Content string
	Embed   *discordgo.MessageEmbed
}

// Notifier delivers messages to a channel
type Notifier interface {
	Post(ctx context.Context, channelID string, msg *Message) error
}

// ChannelSender is the part of *discordgo.Session used to post messages
type ChannelSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordNotifier posts through the Discord REST API
type DiscordNotifier struct {
	sender ChannelSender
}

// NewDiscordNotifier creates a notifier over a discordgo session
func NewDiscordNotifier(sender ChannelSender) *DiscordNotifier {
	return &DiscordNotifier{sender: sender}
}

// Post sends msg to channelID. Mentions only ping users so an announcement
// never pings @everyone.
func (n *DiscordNotifier) Post(ctx context.Context, channelID string, msg *Message) error {
	if channelID == "" {
		return fmt.Errorf("channel ID is required")
	}
	data := &discordgo.MessageSend{
		Content: msg.Content,
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Parse: []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeUsers},
		},
	}
	if msg.Embed != nil {
		data.Embeds = []*discordgo.MessageEmbed{msg.Embed}
	}

	if _, err := n.sender.ChannelMessageSendComplex(channelID, data, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to post to channel %s: %w", channelID, err)
	}
	return nil
}
