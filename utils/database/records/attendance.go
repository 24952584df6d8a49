package records

import (
	"database/sql"
	"errors"
	"fmt"

	"srrd-bot/model"

	"github.com/jmoiron/sqlx"
)

// Attendance tables. Tryouts and trainings share one schema.
const (
	TableTryouts   = "tryouts"
	TableTrainings = "trainings"
)

// ErrBadTransition is returned when an attendance event status change is
// not allowed from the event's current state.
var ErrBadTransition = errors.New("invalid status transition")

func checkAttendanceTable(table string) error {
	if table != TableTryouts && table != TableTrainings {
		return fmt.Errorf("unknown attendance table %q", table)
	}
	return nil
}

// allowedTransition reports whether an event may move from one status to
// another: open -> started -> concluded, with cancellation possible from
// open or started.
func allowedTransition(from, to string) bool {
	switch to {
	case model.EventStatusStarted:
		return from == model.EventStatusOpen
	case model.EventStatusConcluded:
		return from == model.EventStatusStarted
	case model.EventStatusCancelled:
		return from == model.EventStatusOpen || from == model.EventStatusStarted
	}
	return false
}

// AddAttendanceEvent adds a new attendance event and returns the new record's ID.
func AddAttendanceEvent(db *sqlx.DB, table string, record model.AttendanceEvent) (int64, error) {
	if err := checkAttendanceTable(table); err != nil {
		return 0, err
	}
	query := fmt.Sprintf(`INSERT INTO %s (message_id, host_id, required_attendees, guild_id, channel_id, status, attendees_json, created_at)
			  VALUES (:message_id, :host_id, :required_attendees, :guild_id, :channel_id, :status, :attendees_json, :created_at)`, table)

	result, err := db.NamedExec(query, record)
	if err != nil {
		return 0, fmt.Errorf("failed to insert attendance event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	return id, nil
}

// GetAttendanceEventByMessageID retrieves an attendance event by the panel
// message it is rendered to, scoped to a guild.
func GetAttendanceEventByMessageID(db *sqlx.DB, table, messageID, guildID string) (*model.AttendanceEvent, error) {
	if err := checkAttendanceTable(table); err != nil {
		return nil, err
	}
	var record model.AttendanceEvent
	query := fmt.Sprintf("SELECT * FROM %s WHERE message_id = ? AND guild_id = ?", table)
	err := db.Get(&record, query, messageID, guildID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance event for message %s: %w", messageID, err)
	}
	return &record, nil
}

// UpdateAttendanceStatus moves an attendance event to a new status. The
// current status is read inside the same transaction as the update and the
// transition is validated against the event lifecycle.
func UpdateAttendanceStatus(db *sqlx.DB, table string, eventID int64, guildID, newStatus string) error {
	if err := checkAttendanceTable(table); err != nil {
		return err
	}
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin status transaction: %w", err)
	}
	defer tx.Rollback()

	var current string
	err = tx.Get(&current, fmt.Sprintf("SELECT status FROM %s WHERE event_id = ? AND guild_id = ?", table), eventID, guildID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read status for event %d: %w", eventID, err)
	}
	if !allowedTransition(current, newStatus) {
		return fmt.Errorf("%w: %s -> %s", ErrBadTransition, current, newStatus)
	}

	if _, err := tx.Exec(fmt.Sprintf("UPDATE %s SET status = ? WHERE event_id = ? AND guild_id = ?", table), newStatus, eventID, guildID); err != nil {
		return fmt.Errorf("failed to update status for event %d: %w", eventID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit status for event %d: %w", eventID, err)
	}
	return nil
}

// GetStaleAttendanceEvents returns events still open or started whose
// creation time is at or before the given unix timestamp.
func GetStaleAttendanceEvents(db *sqlx.DB, table string, before int64) ([]model.AttendanceEvent, error) {
	if err := checkAttendanceTable(table); err != nil {
		return nil, err
	}
	var records []model.AttendanceEvent
	query := fmt.Sprintf("SELECT * FROM %s WHERE status IN (?, ?) AND created_at <= ? ORDER BY event_id ASC", table)
	if err := db.Select(&records, query, model.EventStatusOpen, model.EventStatusStarted, before); err != nil {
		return nil, fmt.Errorf("failed to get stale attendance events: %w", err)
	}
	return records, nil
}

// SetAttendees replaces the serialized attendee set of an event. Rejected
// once the event has concluded or been cancelled.
func SetAttendees(db *sqlx.DB, table string, eventID int64, guildID, attendeesJSON string) error {
	if err := checkAttendanceTable(table); err != nil {
		return err
	}
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin attendees transaction: %w", err)
	}
	defer tx.Rollback()

	var current string
	err = tx.Get(&current, fmt.Sprintf("SELECT status FROM %s WHERE event_id = ? AND guild_id = ?", table), eventID, guildID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read status for event %d: %w", eventID, err)
	}
	if current == model.EventStatusConcluded || current == model.EventStatusCancelled {
		return fmt.Errorf("%w: attendees frozen in status %s", ErrBadTransition, current)
	}

	if _, err := tx.Exec(fmt.Sprintf("UPDATE %s SET attendees_json = ? WHERE event_id = ? AND guild_id = ?", table), attendeesJSON, eventID, guildID); err != nil {
		return fmt.Errorf("failed to update attendees for event %d: %w", eventID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit attendees for event %d: %w", eventID, err)
	}
	return nil
}
