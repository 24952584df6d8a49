package attendance

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"srrd-bot/model"
	"srrd-bot/utils/database/records"

	"github.com/bwmarrin/discordgo"
)

func panelTitle(table string) string {
	if table == records.TableTryouts {
		return "Tryout"
	}
	return "Training"
}

func statusColor(status string) int {
	switch status {
	case model.EventStatusStarted:
		return 15105570 // Orange
	case model.EventStatusConcluded:
		return 3066993 // Green
	case model.EventStatusCancelled:
		return 15158332 // Red
	default:
		return 3447003 // Blue
	}
}

// PanelEmbed renders the full panel for an event's current state.
func PanelEmbed(table string, event *model.AttendanceEvent) *discordgo.MessageEmbed {
	var attendees []string
	json.Unmarshal([]byte(event.AttendeesJSON), &attendees)

	attendeeList := "Nobody yet."
	if len(attendees) > 0 {
		mentions := make([]string, 0, len(attendees))
		for _, id := range attendees {
			mentions = append(mentions, fmt.Sprintf("<@%s>", id))
		}
		attendeeList = strings.Join(mentions, " ")
	}

	attendance := fmt.Sprintf("%d", len(attendees))
	if event.RequiredAttendees > 0 {
		attendance = fmt.Sprintf("%d / %d", len(attendees), event.RequiredAttendees)
	}

	return &discordgo.MessageEmbed{
		Title: panelTitle(table),
		Color: statusColor(event.Status),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Host", Value: fmt.Sprintf("<@%s>", event.HostID), Inline: true},
			{Name: "Status", Value: event.Status, Inline: true},
			{Name: "Attendance", Value: attendance, Inline: true},
			{Name: "Attendees", Value: attendeeList},
		},
		Timestamp: time.Unix(event.CreatedAt, 0).Format(time.RFC3339),
	}
}

// PanelComponents renders the button row for an event's current state.
// Terminal states get no buttons at all.
func PanelComponents(table, status string) []discordgo.MessageComponent {
	if status == model.EventStatusConcluded || status == model.EventStatusCancelled {
		return []discordgo.MessageComponent{}
	}

	buttons := []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Join",
			Style:    discordgo.SuccessButton,
			CustomID: fmt.Sprintf("attendance_join_%s", table),
		},
		discordgo.Button{
			Label:    "Leave",
			Style:    discordgo.SecondaryButton,
			CustomID: fmt.Sprintf("attendance_leave_%s", table),
		},
	}
	if status == model.EventStatusOpen {
		buttons = append(buttons, discordgo.Button{
			Label:    "Start",
			Style:    discordgo.PrimaryButton,
			CustomID: fmt.Sprintf("attendance_start_%s", table),
		})
	} else {
		buttons = append(buttons, discordgo.Button{
			Label:    "Conclude",
			Style:    discordgo.PrimaryButton,
			CustomID: fmt.Sprintf("attendance_conclude_%s", table),
		})
	}
	buttons = append(buttons, discordgo.Button{
		Label:    "Cancel",
		Style:    discordgo.DangerButton,
		CustomID: fmt.Sprintf("attendance_cancel_%s", table),
	})

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
	}
}
