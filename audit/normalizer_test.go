package audit

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTitleFor(t *testing.T) {
	assert.Equal(t, "Member banned", TitleFor(ActionMemberBanAdd))
	assert.Equal(t, "Messages bulk deleted", TitleFor(ActionMessageBulkDelete))
	// Unknown kinds fall back to a sentence-cased symbolic name.
	assert.Equal(t, "Sticker create", TitleFor(ActionKind("sticker_create")))
}

func TestColorFor(t *testing.T) {
	assert.Equal(t, ColorRed, ColorFor(ActionMemberBanAdd))
	assert.Equal(t, ColorRed, ColorFor(ActionChannelDelete))
	assert.Equal(t, ColorOrange, ColorFor(ActionMessageEdit))
	assert.Equal(t, ColorOrange, ColorFor(ActionGuildUpdate))
	assert.Equal(t, ColorBlue, ColorFor(ActionChannelCreate))
	assert.Equal(t, ColorBlue, ColorFor(ActionKind("sticker_create")))
}

func TestNormalizeSummaries(t *testing.T) {
	target := &Subject{ID: "1", Display: "<@1>"}

	tests := []struct {
		kind ActionKind
		want string
	}{
		{ActionMemberBanAdd, "<@1> was banned."},
		{ActionMemberBanRemove, "<@1> was unbanned."},
		{ActionMemberKick, "<@1> was kicked."},
		{ActionMemberUpdate, "<@1>'s profile was updated."},
		{ActionMemberRoleUpdate, "<@1>'s roles were updated."},
		{ActionChannelDelete, "<@1> channel deleted."},
	}
	for _, tt := range tests {
		entry := Normalize(RawEvent{Kind: tt.kind, Target: target})
		assert.Equal(t, tt.want, entry.Summary, string(tt.kind))
	}
}

func TestNormalizeNoTargetNoSummary(t *testing.T) {
	entry := Normalize(RawEvent{Kind: ActionGuildUpdate})
	assert.Empty(t, entry.Summary)
	assert.Equal(t, "Server settings updated", entry.Title)
}

func TestNormalizeChanges(t *testing.T) {
	entry := Normalize(RawEvent{
		Kind: ActionChannelUpdate,
		Changes: []RawChange{
			{Attribute: "rate_limit_per_user", Before: "0", After: "30"},
		},
	})
	a := assert.New(t)
	a.Len(entry.Changes, 1)
	a.Equal("Rate Limit Per User", entry.Changes[0].Name)
	a.Equal("0", entry.Changes[0].Before)
	a.Equal("30", entry.Changes[0].After)
}

func TestNormalizeTruncatesLongValues(t *testing.T) {
	long := strings.Repeat("a", 2000)
	entry := Normalize(RawEvent{
		Kind:    ActionMessageEdit,
		Changes: []RawChange{{Attribute: "content", Before: long, After: "short"}},
	})
	got := entry.Changes[0].Before
	assert.Len(t, got, MaxValueLength)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, "short", entry.Changes[0].After)
}

func TestTruncateKeepsRuneBoundary(t *testing.T) {
	long := strings.Repeat("世", 600) // 1800 bytes of 3-byte runes
	got := Truncate(long)

	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), MaxValueLength)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestNormalizeExtraFallback(t *testing.T) {
	entry := Normalize(RawEvent{
		Kind: ActionKind("unknown action 999"),
		Extra: map[string]string{
			"channel": "<#5>",
			"author":  "<@9>",
		},
	})
	// Sorted by key so the rendering is stable.
	assert.Equal(t, "Author", entry.Changes[0].Name)
	assert.Equal(t, "<@9>", entry.Changes[0].After)
	assert.Equal(t, "Channel", entry.Changes[1].Name)
}

func TestNormalizeTypedChangesWinOverExtra(t *testing.T) {
	entry := Normalize(RawEvent{
		Kind:    ActionChannelUpdate,
		Changes: []RawChange{{Attribute: "name", Before: "old", After: "new"}},
		Extra:   map[string]string{"ignored": "x"},
	})
	assert.Len(t, entry.Changes, 1)
	assert.Equal(t, "Name", entry.Changes[0].Name)
}
