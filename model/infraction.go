package model

// InfractionRecord represents a single disciplinary record in the database.
// The database table will be named 'infractions'.
type InfractionRecord struct {
	InfractionID int64  `db:"infraction_id"` // Primary Key, Auto-increment
	UserID       string `db:"user_id"`
	IssuerID     string `db:"issuer_id"`
	Kind         string `db:"kind"`
	Reason       string `db:"reason"`
	Severity     string `db:"severity"` // "minor", "medium" or "major"
	Appealable   bool   `db:"appealable"`
	Note         string `db:"note"`
	Voided       bool   `db:"voided"`
	VoidedBy     string `db:"voided_by"`
	VoidedReason string `db:"voided_reason"`
	VoidedAt     int64  `db:"voided_at"`
	LogChannelID string `db:"log_channel_id"` // Back-reference to the delivered log message
	LogMessageID string `db:"log_message_id"`
	GuildID      string `db:"guild_id"`
	CreatedAt    int64  `db:"created_at"`
}

// Severity levels accepted for an infraction.
const (
	SeverityMinor  = "minor"
	SeverityMedium = "medium"
	SeverityMajor  = "major"
)

// FieldChange records one modified field of an edited infraction.
type FieldChange struct {
	Field string
	Old   string
	New   string
}
