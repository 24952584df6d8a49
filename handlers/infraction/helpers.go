package infraction

import (
	"fmt"
	"strings"
	"time"

	"srrd-bot/moderation"
	"srrd-bot/notify"

	"github.com/bwmarrin/discordgo"
)

// listEmbedMaxRecords bounds how many records render in a list embed.
const listEmbedMaxRecords = 10

func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := opts[name]; ok {
		return opt.StringValue()
	}
	return ""
}

// optionalString distinguishes "not supplied" from "supplied empty": absent
// options map to nil so the edit change-set only considers supplied fields.
func optionalString(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) *string {
	if opt, ok := opts[name]; ok {
		value := opt.StringValue()
		return &value
	}
	return nil
}

func buildListEmbed(targetUser *discordgo.User, result *moderation.ListResult) *discordgo.MessageEmbed {
	var lines []string
	for idx, rec := range result.Records {
		if idx >= listEmbedMaxRecords {
			lines = append(lines, fmt.Sprintf("… and %d more", len(result.Records)-listEmbedMaxRecords))
			break
		}
		status := ""
		if rec.Voided {
			status = " (voided)"
		}
		lines = append(lines, fmt.Sprintf("`#%d` **%s** [%s]%s — %s <t:%d:R>",
			rec.InfractionID, rec.Kind, rec.Severity, status, rec.Reason, rec.CreatedAt))
	}
	description := strings.Join(lines, "\n")
	if description == "" {
		description = "No infractions on record."
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Infractions of %s", targetUser.Username),
		Description: description,
		Color:       notify.SeverityColor(""),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Active", Value: fmt.Sprintf("%d", result.ActiveCount), Inline: true},
			{Name: "Voided", Value: fmt.Sprintf("%d", result.VoidedCount), Inline: true},
			{Name: "Total", Value: fmt.Sprintf("%d", result.Total()), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}
