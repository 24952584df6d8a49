package notify

import (
	"fmt"
	"time"

	"srrd-bot/audit"
	"srrd-bot/model"

	"github.com/bwmarrin/discordgo"
)

const (
	colorRed    = 15158332
	colorOrange = 15105570
	colorGreen  = 3066993
	colorBlue   = 3447003
)

// SeverityColor maps an infraction severity to its embed color.
func SeverityColor(severity string) int {
	switch severity {
	case model.SeverityMajor:
		return colorRed
	case model.SeverityMedium:
		return colorOrange
	default:
		return colorBlue
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func infractionFooter(id int64) *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Infraction #%d", id)}
}

// InfractionIssuedEmbed renders the log-channel embed for a freshly issued
// infraction.
func InfractionIssuedEmbed(record *model.InfractionRecord) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "User", Value: fmt.Sprintf("<@%s>", record.UserID), Inline: true},
		{Name: "Issued by", Value: fmt.Sprintf("<@%s>", record.IssuerID), Inline: true},
		{Name: "Kind", Value: record.Kind, Inline: true},
		{Name: "Severity", Value: record.Severity, Inline: true},
		{Name: "Appealable", Value: yesNo(record.Appealable), Inline: true},
		{Name: "Reason", Value: record.Reason},
	}
	if record.Note != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Note", Value: record.Note})
	}
	return &discordgo.MessageEmbed{
		Title:     "Infraction issued",
		Color:     SeverityColor(record.Severity),
		Fields:    fields,
		Footer:    infractionFooter(record.InfractionID),
		Timestamp: time.Unix(record.CreatedAt, 0).Format(time.RFC3339),
	}
}

// InfractionEditedEmbed renders the edit log embed, one field per change.
func InfractionEditedEmbed(record *model.InfractionRecord, changes []model.FieldChange) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(changes))
	for _, change := range changes {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  change.Field,
			Value: fmt.Sprintf("Before: %s\nAfter: %s", audit.Truncate(change.Old), audit.Truncate(change.New)),
		})
	}
	return &discordgo.MessageEmbed{
		Title:     "Infraction edited",
		Color:     colorOrange,
		Fields:    fields,
		Footer:    infractionFooter(record.InfractionID),
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// InfractionVoidedEmbed renders the void log embed.
func InfractionVoidedEmbed(record *model.InfractionRecord) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "Infraction voided",
		Color: colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "User", Value: fmt.Sprintf("<@%s>", record.UserID), Inline: true},
			{Name: "Voided by", Value: fmt.Sprintf("<@%s>", record.VoidedBy), Inline: true},
			{Name: "Reason", Value: record.VoidedReason},
		},
		Footer:    infractionFooter(record.InfractionID),
		Timestamp: time.Unix(record.VoidedAt, 0).Format(time.RFC3339),
	}
}

// InfractionDMEmbed renders the reduced direct-message variant sent to the
// subject. Delivery of this embed is always best-effort.
func InfractionDMEmbed(action, guildName string, record *model.InfractionRecord) *discordgo.MessageEmbed {
	var description string
	switch action {
	case "voided":
		description = fmt.Sprintf("An infraction against you in **%s** has been voided: %s", guildName, record.VoidedReason)
	default:
		description = fmt.Sprintf("You received a **%s** infraction in **%s**: %s", record.Kind, guildName, record.Reason)
	}
	return &discordgo.MessageEmbed{
		Title:       "Infraction notice",
		Description: description,
		Color:       SeverityColor(record.Severity),
		Footer:      infractionFooter(record.InfractionID),
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

// PromotionEmbed renders the log-channel embed for a promotion.
func PromotionEmbed(record *model.PromotionRecord) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "User", Value: fmt.Sprintf("<@%s>", record.UserID), Inline: true},
		{Name: "Promoted by", Value: fmt.Sprintf("<@%s>", record.IssuerID), Inline: true},
		{Name: "New role", Value: record.NewRole, Inline: true},
	}
	if record.Reason != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Reason", Value: record.Reason})
	}
	if record.Note != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Note", Value: record.Note})
	}
	return &discordgo.MessageEmbed{
		Title:     "Promotion",
		Color:     colorGreen,
		Fields:    fields,
		Footer:    &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Promotion #%d", record.PromotionID)},
		Timestamp: time.Unix(record.CreatedAt, 0).Format(time.RFC3339),
	}
}

// AuditEmbed renders a normalized audit entry for the review channel.
func AuditEmbed(entry audit.Entry) *discordgo.MessageEmbed {
	// The platform rejects embeds carrying empty field values, so fields
	// without content are omitted rather than rendered blank.
	var fields []*discordgo.MessageEmbedField
	if entry.Actor.Display != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Actor", Value: entry.Actor.Display, Inline: true})
	}
	if entry.Target != nil && entry.Target.Display != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Target", Value: entry.Target.Display, Inline: true})
	}
	for _, change := range entry.Changes {
		var value string
		switch {
		case change.Before == "" && change.After == "":
			continue
		case change.Before == "":
			value = fmt.Sprintf("After: %s", change.After)
		case change.After == "":
			value = fmt.Sprintf("Before: %s", change.Before)
		default:
			value = fmt.Sprintf("Before: %s\nAfter: %s", change.Before, change.After)
		}
		fields = append(fields, &discordgo.MessageEmbedField{Name: change.Name, Value: value})
	}
	if entry.Reason != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Reason", Value: entry.Reason})
	}
	embed := &discordgo.MessageEmbed{
		Title:       entry.Title,
		Description: entry.Summary,
		Color:       entry.Color,
		Fields:      fields,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if entry.EntryID != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Entry %s", entry.EntryID)}
	}
	return embed
}
