package records

import (
	"path/filepath"
	"testing"

	"srrd-bot/model"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Init(filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleInfraction(guildID, userID string, createdAt int64) model.InfractionRecord {
	return model.InfractionRecord{
		UserID:     userID,
		IssuerID:   "issuer-1",
		Kind:       "Spam",
		Reason:     "Flooding the recruitment channel",
		Severity:   model.SeverityMedium,
		Appealable: true,
		GuildID:    guildID,
		CreatedAt:  createdAt,
	}
}

func TestAddAndGetInfraction(t *testing.T) {
	db := newTestDB(t)

	id, err := AddInfractionRecord(db, sampleInfraction("guild-1", "user-1", 1000))
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	record, err := GetInfractionByID(db, id, "guild-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", record.UserID)
	assert.Equal(t, "Spam", record.Kind)
	assert.Equal(t, model.SeverityMedium, record.Severity)
	assert.True(t, record.Appealable)
	assert.False(t, record.Voided)
}

func TestGetInfractionWrongGuild(t *testing.T) {
	db := newTestDB(t)

	id, err := AddInfractionRecord(db, sampleInfraction("guild-1", "user-1", 1000))
	require.NoError(t, err)

	_, err = GetInfractionByID(db, id, "guild-2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetInfractionsByUserIDOrdering(t *testing.T) {
	db := newTestDB(t)

	first, err := AddInfractionRecord(db, sampleInfraction("guild-1", "user-1", 1000))
	require.NoError(t, err)
	second, err := AddInfractionRecord(db, sampleInfraction("guild-1", "user-1", 2000))
	require.NoError(t, err)
	// Same timestamp as the second record; newest insert still wins.
	third, err := AddInfractionRecord(db, sampleInfraction("guild-1", "user-1", 2000))
	require.NoError(t, err)

	records, err := GetInfractionsByUserID(db, "user-1", "guild-1")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, third, records[0].InfractionID)
	assert.Equal(t, second, records[1].InfractionID)
	assert.Equal(t, first, records[2].InfractionID)
}

func TestUpdateInfractionFields(t *testing.T) {
	db := newTestDB(t)

	id, err := AddInfractionRecord(db, sampleInfraction("guild-1", "user-1", 1000))
	require.NoError(t, err)

	err = UpdateInfractionFields(db, id, "guild-1", map[string]interface{}{
		"reason":   "Updated reason",
		"severity": model.SeverityMajor,
	})
	require.NoError(t, err)

	record, err := GetInfractionByID(db, id, "guild-1")
	require.NoError(t, err)
	assert.Equal(t, "Updated reason", record.Reason)
	assert.Equal(t, model.SeverityMajor, record.Severity)

	err = UpdateInfractionFields(db, 9999, "guild-1", map[string]interface{}{"reason": "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVoidInfraction(t *testing.T) {
	db := newTestDB(t)

	id, err := AddInfractionRecord(db, sampleInfraction("guild-1", "user-1", 1000))
	require.NoError(t, err)

	require.NoError(t, VoidInfraction(db, id, "guild-1", "mod-1", "Issued in error", 2000))

	record, err := GetInfractionByID(db, id, "guild-1")
	require.NoError(t, err)
	assert.True(t, record.Voided)
	assert.Equal(t, "mod-1", record.VoidedBy)
	assert.Equal(t, "Issued in error", record.VoidedReason)
	assert.Equal(t, int64(2000), record.VoidedAt)
}

func TestVoidInfractionTwicePreservesFirstVoid(t *testing.T) {
	db := newTestDB(t)

	id, err := AddInfractionRecord(db, sampleInfraction("guild-1", "user-1", 1000))
	require.NoError(t, err)

	require.NoError(t, VoidInfraction(db, id, "guild-1", "mod-1", "First void", 2000))

	err = VoidInfraction(db, id, "guild-1", "mod-2", "Second void", 3000)
	assert.ErrorIs(t, err, ErrAlreadyVoided)

	record, err := GetInfractionByID(db, id, "guild-1")
	require.NoError(t, err)
	assert.Equal(t, "mod-1", record.VoidedBy)
	assert.Equal(t, "First void", record.VoidedReason)
	assert.Equal(t, int64(2000), record.VoidedAt)
}

func TestVoidInfractionNotFound(t *testing.T) {
	db := newTestDB(t)

	err := VoidInfraction(db, 42, "guild-1", "mod-1", "reason", 1000)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetInfractionLogRef(t *testing.T) {
	db := newTestDB(t)

	id, err := AddInfractionRecord(db, sampleInfraction("guild-1", "user-1", 1000))
	require.NoError(t, err)

	require.NoError(t, SetInfractionLogRef(db, id, "guild-1", "chan-1", "msg-1"))

	record, err := GetInfractionByID(db, id, "guild-1")
	require.NoError(t, err)
	assert.Equal(t, "chan-1", record.LogChannelID)
	assert.Equal(t, "msg-1", record.LogMessageID)
}

func TestDeleteInfractionsByUserID(t *testing.T) {
	db := newTestDB(t)

	_, err := AddInfractionRecord(db, sampleInfraction("guild-1", "user-1", 1000))
	require.NoError(t, err)
	_, err = AddInfractionRecord(db, sampleInfraction("guild-1", "user-1", 2000))
	require.NoError(t, err)
	otherGuild, err := AddInfractionRecord(db, sampleInfraction("guild-2", "user-1", 3000))
	require.NoError(t, err)

	count, err := DeleteInfractionsByUserID(db, "user-1", "guild-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// The other guild's record is untouched.
	_, err = GetInfractionByID(db, otherGuild, "guild-2")
	assert.NoError(t, err)

	count, err = DeleteInfractionsByUserID(db, "user-1", "guild-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestAddAndGetPromotions(t *testing.T) {
	db := newTestDB(t)

	id, err := AddPromotionRecord(db, model.PromotionRecord{
		UserID:    "user-1",
		IssuerID:  "officer-1",
		NewRole:   "Sergeant",
		Reason:    "Consistent activity",
		GuildID:   "guild-1",
		CreatedAt: 1000,
	})
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	records, err := GetPromotionsByUserID(db, "user-1", "guild-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Sergeant", records[0].NewRole)

	records, err = GetPromotionsByUserID(db, "user-1", "guild-2")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestInitMigratesOldSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "records.db")

	// Seed a database with the original minimal infractions schema.
	old, err := sqlx.Connect("sqlite3", dbPath)
	require.NoError(t, err)
	_, err = old.Exec(`CREATE TABLE infractions (
		infraction_id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		issuer_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		reason TEXT NOT NULL,
		guild_id TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);`)
	require.NoError(t, err)
	_, err = old.Exec(`INSERT INTO infractions (user_id, issuer_id, kind, reason, guild_id, created_at)
		VALUES ('user-1', 'issuer-1', 'Spam', 'old row', 'guild-1', 500)`)
	require.NoError(t, err)
	require.NoError(t, old.Close())

	db, err := Init(dbPath)
	require.NoError(t, err)
	defer db.Close()

	record, err := GetInfractionByID(db, 1, "guild-1")
	require.NoError(t, err)
	assert.Equal(t, "old row", record.Reason)
	assert.Equal(t, model.SeverityMedium, record.Severity)
	assert.False(t, record.Voided)

	// New columns are writable after migration.
	require.NoError(t, VoidInfraction(db, 1, "guild-1", "mod-1", "cleanup", 600))
}
