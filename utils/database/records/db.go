package records

import (
	"fmt"
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Init opens the records database and ensures all four tables exist.
func Init(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	schemas := []string{
		`CREATE TABLE IF NOT EXISTS infractions (
		    infraction_id INTEGER PRIMARY KEY AUTOINCREMENT,
		    user_id TEXT NOT NULL,
		    issuer_id TEXT NOT NULL,
		    kind TEXT NOT NULL,
		    reason TEXT NOT NULL,
		    severity TEXT NOT NULL DEFAULT 'medium',
		    appealable INTEGER NOT NULL DEFAULT 0,
		    note TEXT DEFAULT '',
		    voided INTEGER NOT NULL DEFAULT 0,
		    voided_by TEXT DEFAULT '',
		    voided_reason TEXT DEFAULT '',
		    voided_at INTEGER DEFAULT 0,
		    log_channel_id TEXT DEFAULT '',
		    log_message_id TEXT DEFAULT '',
		    guild_id TEXT NOT NULL,
		    created_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS promotions (
		    promotion_id INTEGER PRIMARY KEY AUTOINCREMENT,
		    user_id TEXT NOT NULL,
		    issuer_id TEXT NOT NULL,
		    new_role TEXT NOT NULL,
		    reason TEXT DEFAULT '',
		    note TEXT DEFAULT '',
		    guild_id TEXT NOT NULL,
		    created_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tryouts (
		    event_id INTEGER PRIMARY KEY AUTOINCREMENT,
		    message_id TEXT NOT NULL,
		    host_id TEXT NOT NULL,
		    required_attendees INTEGER NOT NULL DEFAULT 0,
		    guild_id TEXT NOT NULL,
		    channel_id TEXT NOT NULL,
		    status TEXT NOT NULL DEFAULT 'open',
		    attendees_json TEXT DEFAULT '[]',
		    created_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS trainings (
		    event_id INTEGER PRIMARY KEY AUTOINCREMENT,
		    message_id TEXT NOT NULL,
		    host_id TEXT NOT NULL,
		    required_attendees INTEGER NOT NULL DEFAULT 0,
		    guild_id TEXT NOT NULL,
		    channel_id TEXT NOT NULL,
		    status TEXT NOT NULL DEFAULT 'open',
		    attendees_json TEXT DEFAULT '[]',
		    created_at INTEGER NOT NULL
		);`,
	}
	for _, schema := range schemas {
		if _, err := db.Exec(schema); err != nil {
			return nil, fmt.Errorf("failed to create table: %w", err)
		}
	}

	// Add columns that did not exist in older schemas. Migrations are
	// additive only; a column that cannot be added is logged and skipped
	// so the rest of the store stays usable.
	alterStatements := []string{
		`ALTER TABLE infractions ADD COLUMN severity TEXT NOT NULL DEFAULT 'medium'`,
		`ALTER TABLE infractions ADD COLUMN appealable INTEGER NOT NULL DEFAULT 0`,
		`ALTER TABLE infractions ADD COLUMN note TEXT DEFAULT ''`,
		`ALTER TABLE infractions ADD COLUMN voided INTEGER NOT NULL DEFAULT 0`,
		`ALTER TABLE infractions ADD COLUMN voided_by TEXT DEFAULT ''`,
		`ALTER TABLE infractions ADD COLUMN voided_reason TEXT DEFAULT ''`,
		`ALTER TABLE infractions ADD COLUMN voided_at INTEGER DEFAULT 0`,
		`ALTER TABLE infractions ADD COLUMN log_channel_id TEXT DEFAULT ''`,
		`ALTER TABLE infractions ADD COLUMN log_message_id TEXT DEFAULT ''`,
		`ALTER TABLE promotions ADD COLUMN note TEXT DEFAULT ''`,
		`ALTER TABLE tryouts ADD COLUMN required_attendees INTEGER NOT NULL DEFAULT 0`,
		`ALTER TABLE tryouts ADD COLUMN attendees_json TEXT DEFAULT '[]'`,
		`ALTER TABLE trainings ADD COLUMN required_attendees INTEGER NOT NULL DEFAULT 0`,
		`ALTER TABLE trainings ADD COLUMN attendees_json TEXT DEFAULT '[]'`,
	}
	for _, stmt := range alterStatements {
		if _, err := db.Exec(stmt); err != nil && !strings.Contains(err.Error(), "duplicate column name") {
			log.Printf("Warning: migration statement failed, column unavailable this run: %s: %v", stmt, err)
		}
	}

	return db, nil
}
