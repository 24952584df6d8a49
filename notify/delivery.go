package notify

import (
	"github.com/bwmarrin/discordgo"
)

// MessageRef identifies a delivered message so later payloads can be
// threaded onto it as replies.
type MessageRef struct {
	ChannelID string
	MessageID string
}

// Delivery is the outbound message boundary. Failures from it are logged at
// the call site and never abort a record mutation that already committed.
type Delivery interface {
	Send(channelID string, embed *discordgo.MessageEmbed) (*MessageRef, error)
	Reply(ref MessageRef, embed *discordgo.MessageEmbed) (*MessageRef, error)
	SendDirect(userID string, embed *discordgo.MessageEmbed) error
}

// SessionDelivery implements Delivery on top of a discordgo session.
type SessionDelivery struct {
	Session *discordgo.Session
}

func (d *SessionDelivery) Send(channelID string, embed *discordgo.MessageEmbed) (*MessageRef, error) {
	msg, err := d.Session.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		return nil, err
	}
	return &MessageRef{ChannelID: msg.ChannelID, MessageID: msg.ID}, nil
}

func (d *SessionDelivery) Reply(ref MessageRef, embed *discordgo.MessageEmbed) (*MessageRef, error) {
	msg, err := d.Session.ChannelMessageSendComplex(ref.ChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Reference: &discordgo.MessageReference{
			ChannelID: ref.ChannelID,
			MessageID: ref.MessageID,
		},
	})
	if err != nil {
		return nil, err
	}
	return &MessageRef{ChannelID: msg.ChannelID, MessageID: msg.ID}, nil
}

func (d *SessionDelivery) SendDirect(userID string, embed *discordgo.MessageEmbed) error {
	channel, err := d.Session.UserChannelCreate(userID)
	if err != nil {
		return err
	}
	_, err = d.Session.ChannelMessageSendEmbed(channel.ID, embed)
	return err
}
