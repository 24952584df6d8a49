package model

// AttendanceEvent represents a hosted tryout or training session with
// attendance tracking. Tryouts and trainings share this shape, each in
// its own table.
type AttendanceEvent struct {
	EventID           int64  `db:"event_id"` // Primary Key, Auto-increment
	MessageID         string `db:"message_id"`
	HostID            string `db:"host_id"`
	RequiredAttendees int    `db:"required_attendees"`
	GuildID           string `db:"guild_id"`
	ChannelID         string `db:"channel_id"`
	Status            string `db:"status"`
	AttendeesJSON     string `db:"attendees_json"` // JSON array of user IDs
	CreatedAt         int64  `db:"created_at"`
}

// Attendance event lifecycle states. Concluded and cancelled are terminal.
const (
	EventStatusOpen      = "open"
	EventStatusStarted   = "started"
	EventStatusConcluded = "concluded"
	EventStatusCancelled = "cancelled"
)
