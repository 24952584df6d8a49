package records

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"srrd-bot/model"

	"github.com/jmoiron/sqlx"
)

// Sentinel errors surfaced by guarded operations. Callers wrap these into
// their own error types.
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyVoided = errors.New("record already voided")
)

// AddInfractionRecord adds a new infraction record to the database and returns the new record's ID.
func AddInfractionRecord(db *sqlx.DB, record model.InfractionRecord) (int64, error) {
	query := `INSERT INTO infractions (user_id, issuer_id, kind, reason, severity, appealable, note, voided, voided_by, voided_reason, voided_at, log_channel_id, log_message_id, guild_id, created_at)
			  VALUES (:user_id, :issuer_id, :kind, :reason, :severity, :appealable, :note, :voided, :voided_by, :voided_reason, :voided_at, :log_channel_id, :log_message_id, :guild_id, :created_at)`

	result, err := db.NamedExec(query, record)
	if err != nil {
		return 0, fmt.Errorf("failed to insert infraction record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	return id, nil
}

// GetInfractionByID retrieves a single infraction record by its primary key,
// scoped to a guild. Returns ErrNotFound when no matching row exists.
func GetInfractionByID(db *sqlx.DB, id int64, guildID string) (*model.InfractionRecord, error) {
	var record model.InfractionRecord
	query := "SELECT * FROM infractions WHERE infraction_id = ? AND guild_id = ?"
	err := db.Get(&record, query, id, guildID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get infraction record by id %d: %w", id, err)
	}
	return &record, nil
}

// GetInfractionsByUserID retrieves all infraction records for a user in a guild, newest first.
func GetInfractionsByUserID(db *sqlx.DB, userID, guildID string) ([]model.InfractionRecord, error) {
	var records []model.InfractionRecord
	query := "SELECT * FROM infractions WHERE user_id = ? AND guild_id = ? ORDER BY created_at DESC, infraction_id DESC"
	err := db.Select(&records, query, userID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get infraction records for user %s: %w", userID, err)
	}
	return records, nil
}

// UpdateInfractionFields applies a set of column updates to an infraction,
// scoped to a guild. Column names must come from a fixed allowlist upstream.
func UpdateInfractionFields(db *sqlx.DB, id int64, guildID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	setClauses := make([]string, 0, len(fields))
	args := make([]interface{}, 0, len(fields)+2)
	for column, value := range fields {
		setClauses = append(setClauses, column+" = ?")
		args = append(args, value)
	}
	args = append(args, id, guildID)

	query := fmt.Sprintf("UPDATE infractions SET %s WHERE infraction_id = ? AND guild_id = ?", strings.Join(setClauses, ", "))
	result, err := db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update infraction %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected for infraction %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetInfractionLogRef records the channel and message of the delivered log
// embed so later edits and voids can thread replies onto it.
func SetInfractionLogRef(db *sqlx.DB, id int64, guildID, channelID, messageID string) error {
	query := "UPDATE infractions SET log_channel_id = ?, log_message_id = ? WHERE infraction_id = ? AND guild_id = ?"
	if _, err := db.Exec(query, channelID, messageID, id, guildID); err != nil {
		return fmt.Errorf("failed to set log reference for infraction %d: %w", id, err)
	}
	return nil
}

// VoidInfraction marks an infraction as voided. The voided check and the
// update run in one transaction so two concurrent voids cannot both pass
// the guard.
func VoidInfraction(db *sqlx.DB, id int64, guildID, voidedBy, reason string, voidedAt int64) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin void transaction: %w", err)
	}
	defer tx.Rollback()

	var voided bool
	err = tx.Get(&voided, "SELECT voided FROM infractions WHERE infraction_id = ? AND guild_id = ?", id, guildID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check void status for infraction %d: %w", id, err)
	}
	if voided {
		return ErrAlreadyVoided
	}

	query := "UPDATE infractions SET voided = 1, voided_by = ?, voided_reason = ?, voided_at = ? WHERE infraction_id = ? AND guild_id = ?"
	if _, err := tx.Exec(query, voidedBy, reason, voidedAt, id, guildID); err != nil {
		return fmt.Errorf("failed to void infraction %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit void for infraction %d: %w", id, err)
	}
	return nil
}

// DeleteInfractionsByUserID deletes every infraction for a user in a guild
// and returns how many rows were removed. Zero is not an error.
func DeleteInfractionsByUserID(db *sqlx.DB, userID, guildID string) (int64, error) {
	result, err := db.Exec("DELETE FROM infractions WHERE user_id = ? AND guild_id = ?", userID, guildID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete infraction records for user %s: %w", userID, err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected for user %s: %w", userID, err)
	}
	return count, nil
}
