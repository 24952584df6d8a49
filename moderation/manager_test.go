package moderation

import (
	"fmt"
	"path/filepath"
	"testing"

	"srrd-bot/model"
	"srrd-bot/notify"
	"srrd-bot/utils/database/records"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDelivery records every embed handed to it instead of talking to the
// platform.
type fakeDelivery struct {
	sent    []*discordgo.MessageEmbed
	replies []*discordgo.MessageEmbed
	dms     []*discordgo.MessageEmbed
	nextID  int
}

func (f *fakeDelivery) Send(channelID string, embed *discordgo.MessageEmbed) (*notify.MessageRef, error) {
	f.sent = append(f.sent, embed)
	f.nextID++
	return &notify.MessageRef{ChannelID: channelID, MessageID: fmt.Sprintf("msg-%d", f.nextID)}, nil
}

func (f *fakeDelivery) Reply(ref notify.MessageRef, embed *discordgo.MessageEmbed) (*notify.MessageRef, error) {
	f.replies = append(f.replies, embed)
	return &ref, nil
}

func (f *fakeDelivery) SendDirect(userID string, embed *discordgo.MessageEmbed) error {
	f.dms = append(f.dms, embed)
	return nil
}

func newTestManager(t *testing.T) (*Manager, *fakeDelivery) {
	t.Helper()
	db, err := records.Init(filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	delivery := &fakeDelivery{}
	m := &Manager{
		DB:       db,
		Delivery: delivery,
		GuildConfig: func(guildID string) (model.ServerConfig, bool) {
			if guildID == "guild-1" {
				return model.ServerConfig{GuildID: guildID, InfractionChannelID: "log-chan"}, true
			}
			return model.ServerConfig{}, false
		},
		GuildName: func(string) string { return "Test Server" },
	}
	return m, delivery
}

func issueTestInfraction(t *testing.T, m *Manager) *model.InfractionRecord {
	t.Helper()
	record, err := m.Issue(IssueInput{
		GuildID:  "guild-1",
		UserID:   "user-1",
		IssuerID: "mod-1",
		Kind:     "Spam",
		Reason:   "Flooding the channel",
	})
	require.NoError(t, err)
	return record
}

func strptr(s string) *string { return &s }

func TestIssueDefaults(t *testing.T) {
	m, delivery := newTestManager(t)

	record := issueTestInfraction(t, m)
	assert.Equal(t, model.SeverityMedium, record.Severity)
	assert.False(t, record.Appealable)
	assert.False(t, record.Voided)

	// Embed delivered and its reference patched back onto the row.
	require.Len(t, delivery.sent, 1)
	assert.Equal(t, "log-chan", record.LogChannelID)
	assert.NotEmpty(t, record.LogMessageID)
	stored, err := records.GetInfractionByID(m.DB, record.InfractionID, "guild-1")
	require.NoError(t, err)
	assert.Equal(t, record.LogMessageID, stored.LogMessageID)

	// Subject was notified by DM.
	require.Len(t, delivery.dms, 1)
}

func TestIssueValidation(t *testing.T) {
	m, _ := newTestManager(t)

	var validationErr *ValidationError

	_, err := m.Issue(IssueInput{GuildID: "guild-1", UserID: "user-1", IssuerID: "mod-1", Reason: "r"})
	assert.ErrorAs(t, err, &validationErr)

	_, err = m.Issue(IssueInput{GuildID: "guild-1", UserID: "user-1", IssuerID: "mod-1", Kind: "Spam"})
	assert.ErrorAs(t, err, &validationErr)

	_, err = m.Issue(IssueInput{GuildID: "guild-1", UserID: "user-1", IssuerID: "mod-1",
		Kind: "Spam", Reason: "r", Severity: "catastrophic"})
	assert.ErrorAs(t, err, &validationErr)

	_, err = m.Issue(IssueInput{GuildID: "guild-1", UserID: "user-1", IssuerID: "mod-1",
		Kind: "Spam", Reason: "r", Appealable: "maybe"})
	assert.ErrorAs(t, err, &validationErr)
}

func TestIssueNormalizesCase(t *testing.T) {
	m, _ := newTestManager(t)

	record, err := m.Issue(IssueInput{
		GuildID: "guild-1", UserID: "user-1", IssuerID: "mod-1",
		Kind: "Spam", Reason: "r", Severity: "Major", Appealable: "YES",
	})
	require.NoError(t, err)
	assert.Equal(t, model.SeverityMajor, record.Severity)
	assert.True(t, record.Appealable)
}

func TestEditNoFields(t *testing.T) {
	m, _ := newTestManager(t)
	record := issueTestInfraction(t, m)

	var validationErr *ValidationError
	_, _, err := m.Edit("guild-1", record.InfractionID, EditInput{})
	assert.ErrorAs(t, err, &validationErr)
}

func TestEditSameValueIsNoChange(t *testing.T) {
	m, delivery := newTestManager(t)
	record := issueTestInfraction(t, m)
	delivery.replies = nil

	updated, changes, err := m.Edit("guild-1", record.InfractionID, EditInput{Kind: strptr("Spam")})
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.Equal(t, record.InfractionID, updated.InfractionID)
	// No-change edits are not announced.
	assert.Empty(t, delivery.replies)
}

func TestEditChangeSet(t *testing.T) {
	m, delivery := newTestManager(t)
	record := issueTestInfraction(t, m)

	updated, changes, err := m.Edit("guild-1", record.InfractionID, EditInput{
		Kind:     strptr("Harassment"),
		Severity: strptr("major"),
		Note:     strptr("escalated after review"),
	})
	require.NoError(t, err)
	require.Len(t, changes, 3)
	assert.Equal(t, model.FieldChange{Field: "Kind", Old: "Spam", New: "Harassment"}, changes[0])
	assert.Equal(t, model.FieldChange{Field: "Severity", Old: "medium", New: "major"}, changes[1])
	assert.Equal(t, model.FieldChange{Field: "Note", Old: "", New: "escalated after review"}, changes[2])

	stored, err := records.GetInfractionByID(m.DB, updated.InfractionID, "guild-1")
	require.NoError(t, err)
	assert.Equal(t, "Harassment", stored.Kind)
	assert.Equal(t, model.SeverityMajor, stored.Severity)

	// The edit embed threads onto the original log message.
	assert.Len(t, delivery.replies, 1)
}

func TestEditValidation(t *testing.T) {
	m, _ := newTestManager(t)
	record := issueTestInfraction(t, m)

	var validationErr *ValidationError
	_, _, err := m.Edit("guild-1", record.InfractionID, EditInput{Kind: strptr("")})
	assert.ErrorAs(t, err, &validationErr)

	_, _, err = m.Edit("guild-1", record.InfractionID, EditInput{Severity: strptr("extreme")})
	assert.ErrorAs(t, err, &validationErr)

	var notFoundErr *NotFoundError
	_, _, err = m.Edit("guild-1", 9999, EditInput{Kind: strptr("Spam")})
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestVoidDefaultsReason(t *testing.T) {
	m, delivery := newTestManager(t)
	record := issueTestInfraction(t, m)
	delivery.dms = nil

	voided, err := m.Void("guild-1", record.InfractionID, "mod-2", "")
	require.NoError(t, err)
	assert.True(t, voided.Voided)
	assert.Equal(t, "mod-2", voided.VoidedBy)
	assert.Equal(t, DefaultVoidReason, voided.VoidedReason)
	assert.NotZero(t, voided.VoidedAt)

	// Voids are threaded onto the log message and DMed to the subject.
	assert.Len(t, delivery.replies, 1)
	assert.Len(t, delivery.dms, 1)
}

func TestVoidTwice(t *testing.T) {
	m, _ := newTestManager(t)
	record := issueTestInfraction(t, m)

	first, err := m.Void("guild-1", record.InfractionID, "mod-2", "first")
	require.NoError(t, err)

	var alreadyVoidedErr *AlreadyVoidedError
	_, err = m.Void("guild-1", record.InfractionID, "mod-3", "second")
	assert.ErrorAs(t, err, &alreadyVoidedErr)

	stored, err := records.GetInfractionByID(m.DB, record.InfractionID, "guild-1")
	require.NoError(t, err)
	assert.Equal(t, first.VoidedBy, stored.VoidedBy)
	assert.Equal(t, "first", stored.VoidedReason)
}

func TestVoidNotFound(t *testing.T) {
	m, _ := newTestManager(t)

	var notFoundErr *NotFoundError
	_, err := m.Void("guild-1", 42, "mod-1", "")
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestListPartitionsCounts(t *testing.T) {
	m, _ := newTestManager(t)

	first := issueTestInfraction(t, m)
	issueTestInfraction(t, m)
	_, err := m.Void("guild-1", first.InfractionID, "mod-2", "")
	require.NoError(t, err)

	result, err := m.List("guild-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.ActiveCount)
	assert.Equal(t, 1, result.VoidedCount)
	assert.Equal(t, 2, result.Total())
	require.Len(t, result.Records, 2)
}

func TestGuildIsolation(t *testing.T) {
	m, _ := newTestManager(t)
	record := issueTestInfraction(t, m)

	var notFoundErr *NotFoundError
	_, _, err := m.Edit("guild-2", record.InfractionID, EditInput{Kind: strptr("Harassment")})
	assert.ErrorAs(t, err, &notFoundErr)

	_, err = m.Void("guild-2", record.InfractionID, "mod-1", "")
	assert.ErrorAs(t, err, &notFoundErr)

	result, err := m.List("guild-2", "user-1")
	require.NoError(t, err)
	assert.Zero(t, result.Total())
}

func TestClearAll(t *testing.T) {
	m, _ := newTestManager(t)

	count, err := m.ClearAll("guild-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	issueTestInfraction(t, m)
	issueTestInfraction(t, m)

	count, err = m.ClearAll("guild-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	result, err := m.List("guild-1", "user-1")
	require.NoError(t, err)
	assert.Zero(t, result.Total())
}

func TestPromote(t *testing.T) {
	m, delivery := newTestManager(t)

	var validationErr *ValidationError
	_, err := m.Promote("guild-1", "user-1", "officer-1", "", "", "")
	assert.ErrorAs(t, err, &validationErr)

	record, err := m.Promote("guild-1", "user-1", "officer-1", "Sergeant", "Consistent activity", "")
	require.NoError(t, err)
	assert.Greater(t, record.PromotionID, int64(0))
	assert.Equal(t, "Sergeant", record.NewRole)
	assert.Len(t, delivery.sent, 1)
}

func TestDeliveryFailureDoesNotAbortIssue(t *testing.T) {
	m, _ := newTestManager(t)
	// A guild without config has no log channel; issuing must still commit.
	record, err := m.Issue(IssueInput{
		GuildID: "guild-2", UserID: "user-1", IssuerID: "mod-1",
		Kind: "Spam", Reason: "r",
	})
	require.NoError(t, err)
	assert.Empty(t, record.LogChannelID)

	stored, err := records.GetInfractionByID(m.DB, record.InfractionID, "guild-2")
	require.NoError(t, err)
	assert.Equal(t, "Spam", stored.Kind)
}
