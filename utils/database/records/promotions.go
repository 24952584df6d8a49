package records

import (
	"fmt"

	"srrd-bot/model"

	"github.com/jmoiron/sqlx"
)

// AddPromotionRecord adds a new promotion record to the database and returns the new record's ID.
func AddPromotionRecord(db *sqlx.DB, record model.PromotionRecord) (int64, error) {
	query := `INSERT INTO promotions (user_id, issuer_id, new_role, reason, note, guild_id, created_at)
			  VALUES (:user_id, :issuer_id, :new_role, :reason, :note, :guild_id, :created_at)`

	result, err := db.NamedExec(query, record)
	if err != nil {
		return 0, fmt.Errorf("failed to insert promotion record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	return id, nil
}

// GetPromotionsByUserID retrieves all promotion records for a user in a guild, newest first.
func GetPromotionsByUserID(db *sqlx.DB, userID, guildID string) ([]model.PromotionRecord, error) {
	var records []model.PromotionRecord
	query := "SELECT * FROM promotions WHERE user_id = ? AND guild_id = ? ORDER BY created_at DESC, promotion_id DESC"
	err := db.Select(&records, query, userID, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get promotion records for user %s: %w", userID, err)
	}
	return records, nil
}
