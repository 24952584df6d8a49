package auditlog

import (
	"testing"

	"srrd-bot/bot"
	"srrd-bot/model"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBot(t *testing.T) *bot.Bot {
	t.Helper()
	b, err := bot.New(&model.Config{
		BotToken: "token",
		ServerConfigs: map[string]model.ServerConfig{
			"guild-1": {GuildID: "guild-1", AuditChannelID: "chan-1"},
		},
	}, nil)
	require.NoError(t, err)
	return b
}

func TestHandleAuditLogEntryNilActionType(t *testing.T) {
	b := newTestBot(t)

	e := &discordgo.GuildAuditLogEntryCreate{
		AuditLogEntry: &discordgo.AuditLogEntry{ID: "entry-1"},
		GuildID:       "guild-1",
	}
	assert.NotPanics(t, func() {
		HandleAuditLogEntry(b.Session, e, b)
	})
}

func TestTargetDisplay(t *testing.T) {
	assert.Equal(t, "<#5>", targetDisplay("channel_delete", "5"))
	assert.Equal(t, "<@&5>", targetDisplay("role_update", "5"))
	assert.Equal(t, "<@5>", targetDisplay("member_ban_add", "5"))
}

func TestRenderValue(t *testing.T) {
	assert.Equal(t, "", renderValue(nil))
	assert.Equal(t, "30", renderValue(30))
	assert.Equal(t, "name", renderValue("name"))
}
