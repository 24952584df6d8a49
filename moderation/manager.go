package moderation

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"srrd-bot/model"
	"srrd-bot/notify"
	"srrd-bot/utils/database/records"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

// DefaultVoidReason is recorded when a void is requested without a reason.
const DefaultVoidReason = "No reason provided"

// Manager owns every validated mutation of the moderation ledger. It is
// constructed once at startup and passed to the handlers; nothing mutates
// ledger rows without going through it.
type Manager struct {
	DB       *sqlx.DB
	Delivery notify.Delivery
	// GuildConfig resolves per-guild settings. A missing config disables
	// log-channel delivery for that guild, nothing else.
	GuildConfig func(guildID string) (model.ServerConfig, bool)
	// GuildName resolves a display name for DM embeds.
	GuildName func(guildID string) string
}

// IssueInput carries the raw inputs of an infraction issue request.
// Severity and Appealable arrive as the user typed them and are validated
// here.
type IssueInput struct {
	GuildID    string
	UserID     string
	IssuerID   string
	Kind       string
	Reason     string
	Severity   string
	Appealable string
	Note       string
}

// EditInput carries optional field updates; nil means "not supplied".
type EditInput struct {
	Kind       *string
	Reason     *string
	Severity   *string
	Appealable *string
	Note       *string
}

// ListResult partitions a subject's records for summary rendering.
type ListResult struct {
	Records     []model.InfractionRecord
	ActiveCount int
	VoidedCount int
}

// Total is the full record count, voided included.
func (r *ListResult) Total() int { return r.ActiveCount + r.VoidedCount }

func parseSeverity(value string) (string, error) {
	if value == "" {
		return model.SeverityMedium, nil
	}
	switch strings.ToLower(value) {
	case model.SeverityMinor, model.SeverityMedium, model.SeverityMajor:
		return strings.ToLower(value), nil
	}
	return "", &ValidationError{Msg: fmt.Sprintf("invalid severity %q: must be minor, medium or major", value)}
}

func parseAppealable(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "", "no":
		return false, nil
	case "yes":
		return true, nil
	}
	return false, &ValidationError{Msg: fmt.Sprintf("invalid appealable value %q: must be yes or no", value)}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Issue validates and persists a new infraction, then delivers the log
// embed and patches the delivery reference back onto the record. Delivery
// failure leaves the record standing with empty references.
func (m *Manager) Issue(in IssueInput) (*model.InfractionRecord, error) {
	if in.Kind == "" {
		return nil, &ValidationError{Msg: "kind is required"}
	}
	if in.Reason == "" {
		return nil, &ValidationError{Msg: "reason is required"}
	}
	severity, err := parseSeverity(in.Severity)
	if err != nil {
		return nil, err
	}
	appealable, err := parseAppealable(in.Appealable)
	if err != nil {
		return nil, err
	}

	record := model.InfractionRecord{
		UserID:     in.UserID,
		IssuerID:   in.IssuerID,
		Kind:       in.Kind,
		Reason:     in.Reason,
		Severity:   severity,
		Appealable: appealable,
		Note:       in.Note,
		GuildID:    in.GuildID,
		CreatedAt:  time.Now().Unix(),
	}
	id, err := records.AddInfractionRecord(m.DB, record)
	if err != nil {
		return nil, &StoreError{Op: "issue infraction", Err: err}
	}
	record.InfractionID = id

	if ref := m.deliver(record.GuildID, notify.InfractionIssuedEmbed(&record)); ref != nil {
		record.LogChannelID = ref.ChannelID
		record.LogMessageID = ref.MessageID
		if err := records.SetInfractionLogRef(m.DB, id, record.GuildID, ref.ChannelID, ref.MessageID); err != nil {
			log.Printf("Failed to patch log reference onto infraction %d: %v", id, err)
		}
	}
	m.deliverDM(record.UserID, notify.InfractionDMEmbed("issued", m.guildName(record.GuildID), &record))

	return &record, nil
}

// Edit applies a partial update to an infraction. Fields whose normalized
// value equals the stored value are dropped from the change-set; an empty
// change-set is returned as (record, nil, nil) and means "no changes
// applied".
func (m *Manager) Edit(guildID string, id int64, in EditInput) (*model.InfractionRecord, []model.FieldChange, error) {
	if in.Kind == nil && in.Reason == nil && in.Severity == nil && in.Appealable == nil && in.Note == nil {
		return nil, nil, &ValidationError{Msg: "no fields provided"}
	}

	record, err := records.GetInfractionByID(m.DB, id, guildID)
	if errors.Is(err, records.ErrNotFound) {
		return nil, nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, nil, &StoreError{Op: "load infraction", Err: err}
	}

	updates := make(map[string]interface{})
	var changes []model.FieldChange

	if in.Kind != nil {
		if *in.Kind == "" {
			return nil, nil, &ValidationError{Msg: "kind cannot be empty"}
		}
		if *in.Kind != record.Kind {
			changes = append(changes, model.FieldChange{Field: "Kind", Old: record.Kind, New: *in.Kind})
			updates["kind"] = *in.Kind
			record.Kind = *in.Kind
		}
	}
	if in.Reason != nil {
		if *in.Reason == "" {
			return nil, nil, &ValidationError{Msg: "reason cannot be empty"}
		}
		if *in.Reason != record.Reason {
			changes = append(changes, model.FieldChange{Field: "Reason", Old: record.Reason, New: *in.Reason})
			updates["reason"] = *in.Reason
			record.Reason = *in.Reason
		}
	}
	if in.Severity != nil {
		severity, err := parseSeverity(*in.Severity)
		if err != nil {
			return nil, nil, err
		}
		if severity != record.Severity {
			changes = append(changes, model.FieldChange{Field: "Severity", Old: record.Severity, New: severity})
			updates["severity"] = severity
			record.Severity = severity
		}
	}
	if in.Appealable != nil {
		appealable, err := parseAppealable(*in.Appealable)
		if err != nil {
			return nil, nil, err
		}
		if appealable != record.Appealable {
			changes = append(changes, model.FieldChange{Field: "Appealable", Old: yesNo(record.Appealable), New: yesNo(appealable)})
			updates["appealable"] = appealable
			record.Appealable = appealable
		}
	}
	if in.Note != nil {
		if *in.Note != record.Note {
			changes = append(changes, model.FieldChange{Field: "Note", Old: record.Note, New: *in.Note})
			updates["note"] = *in.Note
			record.Note = *in.Note
		}
	}

	if len(changes) == 0 {
		return record, nil, nil
	}

	if err := records.UpdateInfractionFields(m.DB, id, guildID, updates); err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return nil, nil, &NotFoundError{ID: id}
		}
		return nil, nil, &StoreError{Op: "update infraction", Err: err}
	}

	m.deliverThreaded(record, notify.InfractionEditedEmbed(record, changes))

	return record, changes, nil
}

// Void marks an infraction as withdrawn. Strictly one-shot: a second void
// fails with AlreadyVoidedError and never overwrites the first void's
// fields.
func (m *Manager) Void(guildID string, id int64, voidedBy, reason string) (*model.InfractionRecord, error) {
	if reason == "" {
		reason = DefaultVoidReason
	}
	err := records.VoidInfraction(m.DB, id, guildID, voidedBy, reason, time.Now().Unix())
	switch {
	case errors.Is(err, records.ErrNotFound):
		return nil, &NotFoundError{ID: id}
	case errors.Is(err, records.ErrAlreadyVoided):
		return nil, &AlreadyVoidedError{ID: id}
	case err != nil:
		return nil, &StoreError{Op: "void infraction", Err: err}
	}

	record, err := records.GetInfractionByID(m.DB, id, guildID)
	if err != nil {
		return nil, &StoreError{Op: "reload voided infraction", Err: err}
	}

	m.deliverThreaded(record, notify.InfractionVoidedEmbed(record))
	m.deliverDM(record.UserID, notify.InfractionDMEmbed("voided", m.guildName(guildID), record))

	return record, nil
}

// List returns a subject's records newest-first with active/voided counts.
func (m *Manager) List(guildID, userID string) (*ListResult, error) {
	recs, err := records.GetInfractionsByUserID(m.DB, userID, guildID)
	if err != nil {
		return nil, &StoreError{Op: "list infractions", Err: err}
	}
	result := &ListResult{Records: recs}
	for _, rec := range recs {
		if rec.Voided {
			result.VoidedCount++
		} else {
			result.ActiveCount++
		}
	}
	return result, nil
}

// ClearAll deletes every record for a subject. Zero deletions is a no-op,
// not an error.
func (m *Manager) ClearAll(guildID, userID string) (int64, error) {
	count, err := records.DeleteInfractionsByUserID(m.DB, userID, guildID)
	if err != nil {
		return 0, &StoreError{Op: "clear infractions", Err: err}
	}
	return count, nil
}

// Promote appends a promotion record and delivers its embed. Promotions are
// never edited or voided.
func (m *Manager) Promote(guildID, userID, issuerID, newRole, reason, note string) (*model.PromotionRecord, error) {
	if newRole == "" {
		return nil, &ValidationError{Msg: "new role is required"}
	}

	record := model.PromotionRecord{
		UserID:    userID,
		IssuerID:  issuerID,
		NewRole:   newRole,
		Reason:    reason,
		Note:      note,
		GuildID:   guildID,
		CreatedAt: time.Now().Unix(),
	}
	id, err := records.AddPromotionRecord(m.DB, record)
	if err != nil {
		return nil, &StoreError{Op: "issue promotion", Err: err}
	}
	record.PromotionID = id

	m.deliver(guildID, notify.PromotionEmbed(&record))

	return &record, nil
}

func (m *Manager) logChannelFor(guildID string) string {
	if m.GuildConfig == nil {
		return ""
	}
	cfg, ok := m.GuildConfig(guildID)
	if !ok {
		return ""
	}
	return cfg.InfractionChannelID
}

func (m *Manager) guildName(guildID string) string {
	if m.GuildName == nil {
		return "the server"
	}
	return m.GuildName(guildID)
}

// deliver sends an embed to the guild's infraction log channel, best-effort.
func (m *Manager) deliver(guildID string, embed *discordgo.MessageEmbed) *notify.MessageRef {
	if m.Delivery == nil {
		return nil
	}
	channelID := m.logChannelFor(guildID)
	if channelID == "" {
		return nil
	}
	ref, err := m.Delivery.Send(channelID, embed)
	if err != nil {
		log.Printf("Failed to deliver log embed to channel %s: %v", channelID, err)
		return nil
	}
	return ref
}

// deliverThreaded replies onto a record's original log message when a
// delivery reference exists, falling back to a plain send.
func (m *Manager) deliverThreaded(record *model.InfractionRecord, embed *discordgo.MessageEmbed) {
	if m.Delivery == nil {
		return
	}
	if record.LogChannelID != "" && record.LogMessageID != "" {
		ref := notify.MessageRef{ChannelID: record.LogChannelID, MessageID: record.LogMessageID}
		if _, err := m.Delivery.Reply(ref, embed); err != nil {
			log.Printf("Failed to reply to log message %s for infraction %d: %v", record.LogMessageID, record.InfractionID, err)
		}
		return
	}
	m.deliver(record.GuildID, embed)
}

func (m *Manager) deliverDM(userID string, embed *discordgo.MessageEmbed) {
	if m.Delivery == nil {
		return
	}
	if err := m.Delivery.SendDirect(userID, embed); err != nil {
		log.Printf("Failed to send direct message to user %s: %v", userID, err)
	}
}
