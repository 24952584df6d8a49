package model

// PromotionRecord represents a single promotion entry in the database.
// The table is append-only; promotions are never edited or voided.
type PromotionRecord struct {
	PromotionID int64  `db:"promotion_id"` // Primary Key, Auto-increment
	UserID      string `db:"user_id"`
	IssuerID    string `db:"issuer_id"`
	NewRole     string `db:"new_role"`
	Reason      string `db:"reason"`
	Note        string `db:"note"`
	GuildID     string `db:"guild_id"`
	CreatedAt   int64  `db:"created_at"`
}
