package attendance

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"srrd-bot/bot"
	"srrd-bot/model"
	"srrd-bot/utils"
	"srrd-bot/utils/database/records"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

// HandleTryout handles the /tryout command.
func HandleTryout(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	openPanel(s, i, b, records.TableTryouts)
}

// HandleTraining handles the /training command.
func HandleTraining(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	openPanel(s, i, b, records.TableTrainings)
}

// openPanel creates the event row and posts its panel message. The panel is
// always re-rendered wholesale from the stored row, never patched in place.
func openPanel(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot, table string) {
	if err := utils.DeferResponse(s, i, true); err != nil {
		log.Printf("Failed to defer interaction: %v", err)
		return
	}

	var required int
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "required_attendees" {
			required = int(opt.IntValue())
		}
	}

	event := model.AttendanceEvent{
		HostID:            i.Member.User.ID,
		RequiredAttendees: required,
		GuildID:           i.GuildID,
		ChannelID:         i.ChannelID,
		Status:            model.EventStatusOpen,
		AttendeesJSON:     "[]",
		CreatedAt:         time.Now().Unix(),
	}

	msg, err := s.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{PanelEmbed(table, &event)},
		Components: PanelComponents(table, event.Status),
	})
	if err != nil {
		log.Printf("Failed to post %s panel: %v", table, err)
		utils.SendFollowUpError(s, i.Interaction, "Failed to post the event panel.")
		return
	}

	event.MessageID = msg.ID
	if _, err := records.AddAttendanceEvent(b.GetDB(), table, event); err != nil {
		log.Printf("Failed to persist %s event: %v", table, err)
		utils.SendFollowUpError(s, i.Interaction, "Failed to save the event.")
		return
	}

	utils.SendFollowUp(s, i.Interaction, "✅ Event panel created.")
}

// HandleComponent dispatches a panel button press. CustomIDs are of the
// form "attendance_<action>_<table>".
func HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	parts := strings.Split(i.MessageComponentData().CustomID, "_")
	if len(parts) != 3 {
		return
	}
	action, table := parts[1], parts[2]

	event, err := records.GetAttendanceEventByMessageID(b.GetDB(), table, i.Message.ID, i.GuildID)
	if err != nil {
		log.Printf("Failed to load attendance event for message %s: %v", i.Message.ID, err)
		utils.SendErrorResponse(s, i, "This event panel is no longer tracked.")
		return
	}

	switch action {
	case "join", "leave":
		err = toggleAttendee(b.GetDB(), table, event, i.Member.User.ID, action == "join")
	case "start":
		err = hostTransition(event, i.Member.User.ID, func() error {
			return records.UpdateAttendanceStatus(b.GetDB(), table, event.EventID, event.GuildID, model.EventStatusStarted)
		})
	case "conclude":
		err = hostTransition(event, i.Member.User.ID, func() error {
			return records.UpdateAttendanceStatus(b.GetDB(), table, event.EventID, event.GuildID, model.EventStatusConcluded)
		})
	case "cancel":
		err = hostTransition(event, i.Member.User.ID, func() error {
			return records.UpdateAttendanceStatus(b.GetDB(), table, event.EventID, event.GuildID, model.EventStatusCancelled)
		})
	default:
		return
	}
	if err != nil {
		utils.SendErrorResponse(s, i, transitionErrorMessage(err))
		return
	}

	// Re-render the panel from the updated row.
	event, err = records.GetAttendanceEventByMessageID(b.GetDB(), table, i.Message.ID, i.GuildID)
	if err != nil {
		log.Printf("Failed to reload attendance event: %v", err)
		return
	}
	embeds := []*discordgo.MessageEmbed{PanelEmbed(table, event)}
	components := PanelComponents(table, event.Status)
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     embeds,
			Components: components,
		},
	}); err != nil {
		log.Printf("Failed to update attendance panel: %v", err)
	}
}

var errNotHost = errors.New("only the host may do this")

func hostTransition(event *model.AttendanceEvent, userID string, apply func() error) error {
	if event.HostID != userID {
		return errNotHost
	}
	return apply()
}

// toggleAttendee adds or removes a user from the serialized attendee set.
// Membership changes are rejected by the store once the event is terminal.
func toggleAttendee(db *sqlx.DB, table string, event *model.AttendanceEvent, userID string, join bool) error {
	var attendees []string
	if err := json.Unmarshal([]byte(event.AttendeesJSON), &attendees); err != nil {
		log.Printf("Resetting malformed attendee set for event %d: %v", event.EventID, err)
		attendees = nil
	}

	next := make([]string, 0, len(attendees)+1)
	present := false
	for _, id := range attendees {
		if id == userID {
			present = true
			continue
		}
		next = append(next, id)
	}
	if join {
		next = append(next, userID)
	}
	if join == present && len(next) == len(attendees) {
		return nil
	}

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to serialize attendees: %w", err)
	}
	return records.SetAttendees(db, table, event.EventID, event.GuildID, string(data))
}

func transitionErrorMessage(err error) string {
	switch {
	case errors.Is(err, errNotHost):
		return "Only the event host can do that."
	case errors.Is(err, records.ErrBadTransition):
		return "The event is no longer in a state that allows that."
	case errors.Is(err, records.ErrNotFound):
		return "This event panel is no longer tracked."
	}
	return "The operation failed, please try again later."
}
