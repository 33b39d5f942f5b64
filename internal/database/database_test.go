package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/database/dbtest"
)

func TestMigrateIsIdempotent(t *testing.T) {
	db := dbtest.New(t)
	require.NoError(t, database.Migrate(context.Background(), db, database.SQLite))

	for _, table := range []string{"venues", "artists", "shows"} {
		var n int
		err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n)
		require.NoError(t, err)
		assert.Equal(t, 1, n, table)
	}
}

func TestMigrateUnknownDialect(t *testing.T) {
	db := dbtest.New(t)
	assert.Error(t, database.Migrate(context.Background(), db, database.Dialect("oracle")))
}

func TestForeignKeysEnforced(t *testing.T) {
	db := dbtest.New(t)
	_, err := db.Exec(`INSERT INTO shows (artist_id, venue_id, start_time) VALUES (99, 98, '2026-01-01 10:00:00+00:00')`)
	require.Error(t, err)
	assert.True(t, database.IsForeignKeyViolation(err))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.False(t, database.IsForeignKeyViolation(nil))
	assert.False(t, database.IsForeignKeyViolation(errors.New("boom")))
	assert.True(t, database.IsForeignKeyViolation(&mysql.MySQLError{Number: 1452}))
	assert.False(t, database.IsForeignKeyViolation(&mysql.MySQLError{Number: 1062}))
}

func TestSQLiteLowerFoldsUnicode(t *testing.T) {
	db := dbtest.New(t)
	var got string
	require.NoError(t, db.QueryRow(`SELECT lower(?)`, "ÉGLISE Øst").Scan(&got))
	assert.Equal(t, "église øst", got)
}
