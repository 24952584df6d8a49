package audit

import "strings"

// ActionKind is the symbolic name of a platform audit-log action.
type ActionKind string

const (
	ActionGuildUpdate       ActionKind = "guild_update"
	ActionChannelCreate     ActionKind = "channel_create"
	ActionChannelUpdate     ActionKind = "channel_update"
	ActionChannelDelete     ActionKind = "channel_delete"
	ActionMemberKick        ActionKind = "member_kick"
	ActionMemberPrune       ActionKind = "member_prune"
	ActionMemberBanAdd      ActionKind = "member_ban_add"
	ActionMemberBanRemove   ActionKind = "member_ban_remove"
	ActionMemberUpdate      ActionKind = "member_update"
	ActionMemberRoleUpdate  ActionKind = "member_role_update"
	ActionRoleCreate        ActionKind = "role_create"
	ActionRoleUpdate        ActionKind = "role_update"
	ActionRoleDelete        ActionKind = "role_delete"
	ActionMessageDelete     ActionKind = "message_delete"
	ActionMessageBulkDelete ActionKind = "message_bulk_delete"
	ActionMessageEdit       ActionKind = "message_edit"
)

// actionTitles maps known action kinds to their human labels. Kinds missing
// from the table get a sentence-cased fallback derived from the symbolic name.
var actionTitles = map[ActionKind]string{
	ActionGuildUpdate:       "Server settings updated",
	ActionChannelCreate:     "Channel created",
	ActionChannelUpdate:     "Channel updated",
	ActionChannelDelete:     "Channel deleted",
	ActionMemberKick:        "Member kicked",
	ActionMemberPrune:       "Members pruned",
	ActionMemberBanAdd:      "Member banned",
	ActionMemberBanRemove:   "Member unbanned",
	ActionMemberUpdate:      "Member updated",
	ActionMemberRoleUpdate:  "Member roles updated",
	ActionRoleCreate:        "Role created",
	ActionRoleUpdate:        "Role updated",
	ActionRoleDelete:        "Role deleted",
	ActionMessageDelete:     "Message deleted",
	ActionMessageBulkDelete: "Messages bulk deleted",
	ActionMessageEdit:       "Message edited",
}

// criticalActions render red, warningActions orange, everything else blue.
var criticalActions = map[ActionKind]bool{
	ActionMemberBanAdd:      true,
	ActionMemberKick:        true,
	ActionMemberPrune:       true,
	ActionChannelDelete:     true,
	ActionRoleDelete:        true,
	ActionMessageBulkDelete: true,
}

var warningActions = map[ActionKind]bool{
	ActionGuildUpdate:      true,
	ActionChannelUpdate:    true,
	ActionRoleUpdate:       true,
	ActionMemberUpdate:     true,
	ActionMemberRoleUpdate: true,
	ActionMessageDelete:    true,
	ActionMessageEdit:      true,
}

// TitleFor returns the human label for an action kind.
func TitleFor(kind ActionKind) string {
	if title, ok := actionTitles[kind]; ok {
		return title
	}
	return sentenceCase(string(kind))
}

// ColorFor classifies an action kind into the log palette.
func ColorFor(kind ActionKind) int {
	switch {
	case criticalActions[kind]:
		return ColorRed
	case warningActions[kind]:
		return ColorOrange
	default:
		return ColorBlue
	}
}

// sentenceCase turns a symbolic name like "member_ban_add" into
// "Member ban add".
func sentenceCase(name string) string {
	words := strings.Split(name, "_")
	s := strings.Join(words, " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
