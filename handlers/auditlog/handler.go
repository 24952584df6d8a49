package auditlog

import (
	"fmt"
	"log"

	"srrd-bot/audit"
	"srrd-bot/bot"
	"srrd-bot/notify"

	"github.com/bwmarrin/discordgo"
)

// actionKinds maps the platform's numeric audit actions to their symbolic
// kinds. Actions outside this table are relayed with a generic kind so the
// normalizer's fallback labeling applies.
var actionKinds = map[discordgo.AuditLogAction]audit.ActionKind{
	discordgo.AuditLogActionGuildUpdate:       audit.ActionGuildUpdate,
	discordgo.AuditLogActionChannelCreate:     audit.ActionChannelCreate,
	discordgo.AuditLogActionChannelUpdate:     audit.ActionChannelUpdate,
	discordgo.AuditLogActionChannelDelete:     audit.ActionChannelDelete,
	discordgo.AuditLogActionMemberKick:        audit.ActionMemberKick,
	discordgo.AuditLogActionMemberPrune:       audit.ActionMemberPrune,
	discordgo.AuditLogActionMemberBanAdd:      audit.ActionMemberBanAdd,
	discordgo.AuditLogActionMemberBanRemove:   audit.ActionMemberBanRemove,
	discordgo.AuditLogActionMemberUpdate:      audit.ActionMemberUpdate,
	discordgo.AuditLogActionMemberRoleUpdate:  audit.ActionMemberRoleUpdate,
	discordgo.AuditLogActionRoleCreate:        audit.ActionRoleCreate,
	discordgo.AuditLogActionRoleUpdate:        audit.ActionRoleUpdate,
	discordgo.AuditLogActionRoleDelete:        audit.ActionRoleDelete,
	discordgo.AuditLogActionMessageDelete:     audit.ActionMessageDelete,
	discordgo.AuditLogActionMessageBulkDelete: audit.ActionMessageBulkDelete,
}

// HandleAuditLogEntry relays a guild audit-log entry to the configured
// review channel.
func HandleAuditLogEntry(s *discordgo.Session, e *discordgo.GuildAuditLogEntryCreate, b *bot.Bot) {
	serverCfg, ok := b.GetConfig().ServerConfigs[e.GuildID]
	if !ok || serverCfg.AuditChannelID == "" {
		return
	}

	if e.ActionType == nil {
		log.Printf("Ignoring audit log entry %s without an action type", e.ID)
		return
	}
	kind, known := actionKinds[*e.ActionType]
	if !known {
		kind = audit.ActionKind(fmt.Sprintf("unknown action %d", *e.ActionType))
	}

	raw := audit.RawEvent{
		EntryID: e.ID,
		Kind:    kind,
		Actor:   audit.Subject{ID: e.UserID, Display: fmt.Sprintf("<@%s>", e.UserID)},
		Reason:  e.Reason,
	}
	if e.TargetID != "" {
		raw.Target = &audit.Subject{ID: e.TargetID, Display: targetDisplay(kind, e.TargetID)}
	}
	for _, change := range e.Changes {
		if change.Key == nil {
			continue
		}
		raw.Changes = append(raw.Changes, audit.RawChange{
			Attribute: string(*change.Key),
			Before:    renderValue(change.OldValue),
			After:     renderValue(change.NewValue),
		})
	}

	relay(s, b, serverCfg.AuditChannelID, audit.Normalize(raw))
}

// HandleMessageUpdate relays an edited message with its before/after
// content snapshot.
func HandleMessageUpdate(s *discordgo.Session, m *discordgo.MessageUpdate, b *bot.Bot) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	serverCfg, ok := b.GetConfig().ServerConfigs[m.GuildID]
	if !ok || serverCfg.AuditChannelID == "" {
		return
	}

	var before string
	if m.BeforeUpdate != nil {
		before = m.BeforeUpdate.Content
	}
	if before == m.Content {
		return
	}

	raw := audit.RawEvent{
		EntryID: m.ID,
		Kind:    audit.ActionMessageEdit,
		Actor:   audit.Subject{ID: m.Author.ID, Display: fmt.Sprintf("<@%s>", m.Author.ID)},
		Target:  &audit.Subject{ID: m.Author.ID, Display: fmt.Sprintf("<@%s>", m.Author.ID)},
		Changes: []audit.RawChange{
			{Attribute: "content", Before: before, After: m.Content},
		},
	}
	relay(s, b, serverCfg.AuditChannelID, audit.Normalize(raw))
}

// HandleMessageDelete relays a deleted message with the cached content
// snapshot when one is available.
func HandleMessageDelete(s *discordgo.Session, m *discordgo.MessageDelete, b *bot.Bot) {
	serverCfg, ok := b.GetConfig().ServerConfigs[m.GuildID]
	if !ok || serverCfg.AuditChannelID == "" {
		return
	}

	raw := audit.RawEvent{
		EntryID: m.ID,
		Kind:    audit.ActionMessageDelete,
		Extra:   map[string]string{"channel": fmt.Sprintf("<#%s>", m.ChannelID)},
	}
	if m.BeforeDelete != nil && m.BeforeDelete.Author != nil {
		if m.BeforeDelete.Author.Bot {
			return
		}
		raw.Target = &audit.Subject{ID: m.BeforeDelete.Author.ID, Display: fmt.Sprintf("<@%s>", m.BeforeDelete.Author.ID)}
		raw.Changes = []audit.RawChange{
			{Attribute: "content", Before: m.BeforeDelete.Content},
		}
	}
	relay(s, b, serverCfg.AuditChannelID, audit.Normalize(raw))
}

func relay(s *discordgo.Session, b *bot.Bot, channelID string, entry audit.Entry) {
	delivery := &notify.SessionDelivery{Session: s}
	if _, err := delivery.Send(channelID, notify.AuditEmbed(entry)); err != nil {
		log.Printf("Failed to relay audit entry %s to channel %s: %v", entry.EntryID, channelID, err)
	}
}

// targetDisplay renders a target reference appropriate for the action kind.
func targetDisplay(kind audit.ActionKind, targetID string) string {
	switch kind {
	case audit.ActionChannelCreate, audit.ActionChannelUpdate, audit.ActionChannelDelete:
		return fmt.Sprintf("<#%s>", targetID)
	case audit.ActionRoleCreate, audit.ActionRoleUpdate, audit.ActionRoleDelete:
		return fmt.Sprintf("<@&%s>", targetID)
	}
	return fmt.Sprintf("<@%s>", targetID)
}

func renderValue(value interface{}) string {
	if value == nil {
		return ""
	}
	return fmt.Sprintf("%v", value)
}
