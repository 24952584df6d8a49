package audit

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Embed colors shared with the operational log (teal palette omitted on
// purpose; only the three classes below are used for audit relays).
const (
	ColorRed    = 15158332
	ColorOrange = 15105570
	ColorBlue   = 3447003
)

// MaxValueLength bounds a rendered change value, ellipsis included, to stay
// inside downstream embed field limits.
const MaxValueLength = 1024

// Subject is an actor or target of an audit event: an opaque platform ID
// plus a display string.
type Subject struct {
	ID      string
	Display string
}

// RawChange is one before/after attribute change carried by a raw event.
type RawChange struct {
	Attribute string
	Before    string
	After     string
}

// RawEvent is a platform audit event as delivered by the gateway, before
// normalization.
type RawEvent struct {
	EntryID string
	Kind    ActionKind
	Actor   Subject
	Target  *Subject
	Changes []RawChange
	Reason  string
	Extra   map[string]string
}

// ChangeField is a rendered change entry: title-cased attribute name and
// bounded before/after values.
type ChangeField struct {
	Name   string
	Before string
	After  string
}

// Entry is the canonical form every audit event is normalized into. It is
// never persisted; it exists only between the normalizer and the composer.
type Entry struct {
	EntryID string
	Kind    ActionKind
	Actor   Subject
	Target  *Subject
	Title   string
	Summary string
	Color   int
	Changes []ChangeField
	Reason  string
}

// Normalize converts a raw platform audit event into a canonical entry.
// Normalizing once at the boundary means every consumer downstream handles
// one uniform shape.
func Normalize(ev RawEvent) Entry {
	entry := Entry{
		EntryID: ev.EntryID,
		Kind:    ev.Kind,
		Actor:   ev.Actor,
		Target:  ev.Target,
		Title:   TitleFor(ev.Kind),
		Color:   ColorFor(ev.Kind),
		Reason:  ev.Reason,
	}
	entry.Summary = summarize(ev.Kind, entry.Title, ev.Target)

	for _, change := range ev.Changes {
		entry.Changes = append(entry.Changes, ChangeField{
			Name:   titleCase(change.Attribute),
			Before: Truncate(change.Before),
			After:  Truncate(change.After),
		})
	}

	// Unknown kinds can carry an opaque payload instead of typed changes;
	// render it as a generic string-keyed change list.
	if len(entry.Changes) == 0 && len(ev.Extra) > 0 {
		keys := make([]string, 0, len(ev.Extra))
		for k := range ev.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			entry.Changes = append(entry.Changes, ChangeField{
				Name:  titleCase(k),
				After: Truncate(ev.Extra[k]),
			})
		}
	}

	return entry
}

// summarize produces the one-line summary sentence. Specific member actions
// get bespoke phrasing; any other kind with a target gets a generic
// sentence; no target means no summary.
func summarize(kind ActionKind, title string, target *Subject) string {
	if target == nil {
		return ""
	}
	switch kind {
	case ActionMemberUpdate:
		return fmt.Sprintf("%s's profile was updated.", target.Display)
	case ActionMemberRoleUpdate:
		return fmt.Sprintf("%s's roles were updated.", target.Display)
	case ActionMemberBanAdd:
		return fmt.Sprintf("%s was banned.", target.Display)
	case ActionMemberBanRemove:
		return fmt.Sprintf("%s was unbanned.", target.Display)
	case ActionMemberKick:
		return fmt.Sprintf("%s was kicked.", target.Display)
	}
	return fmt.Sprintf("%s %s.", target.Display, strings.ToLower(title))
}

// Truncate bounds a value to MaxValueLength, ellipsis-terminated. The cut
// backs up to a rune boundary so multibyte input stays valid UTF-8.
func Truncate(value string) string {
	if len(value) <= MaxValueLength {
		return value
	}
	cut := MaxValueLength - 3
	for cut > 0 && !utf8.RuneStart(value[cut]) {
		cut--
	}
	return value[:cut] + "..."
}

// titleCase renders an attribute name like "nick_name" as "Nick Name".
func titleCase(attribute string) string {
	words := strings.FieldsFunc(attribute, func(r rune) bool {
		return r == '_' || r == ' '
	})
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
