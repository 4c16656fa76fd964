package database_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-catalog/internal/infrastructure/database"
)

func openTestGateway(t *testing.T) *database.Gateway {
	t.Helper()
	gw, err := database.OpenSQLiteMemory(context.Background(), uuid.NewString())
	require.NoError(t, err)
	t.Cleanup(func() { _ = gw.Close() })
	return gw
}

func countRows(t *testing.T, gw *database.Gateway, table string) int {
	t.Helper()
	var n int
	require.NoError(t, gw.DB.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestGateway_MigrateIsIdempotent(t *testing.T) {
	gw := openTestGateway(t)

	require.NoError(t, gw.Migrate(context.Background()))
	assert.Equal(t, 0, countRows(t, gw, "books"))
}

func TestGateway_WithTx_Commits(t *testing.T) {
	gw := openTestGateway(t)
	ctx := context.Background()

	err := gw.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "INSERT INTO authors (name) VALUES (?)", "Stephen King")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countRows(t, gw, "authors"))
}

func TestGateway_WithTx_RollsBackOnError(t *testing.T) {
	gw := openTestGateway(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := gw.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO authors (name) VALUES (?)", "Stephen King"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, countRows(t, gw, "authors"))
}

func TestGateway_WithTx_RollsBackOnPanic(t *testing.T) {
	gw := openTestGateway(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = gw.WithTx(ctx, func(tx *sql.Tx) error {
			_, _ = tx.ExecContext(ctx, "INSERT INTO genres (name) VALUES (?)", "Horror")
			panic("boom")
		})
	})
	assert.Equal(t, 0, countRows(t, gw, "genres"))
}

func TestGateway_ForeignKeysEnforced(t *testing.T) {
	gw := openTestGateway(t)
	ctx := context.Background()

	err := gw.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO books (title, price, quantity_available, author_id, genre_id) VALUES (?, ?, ?, ?, ?)",
			"Orphan", "1.00", 1, 404, 404)
		return err
	})
	assert.ErrorIs(t, err, database.ErrIntegrityViolation)
}

func TestGateway_CheckConstraints(t *testing.T) {
	gw := openTestGateway(t)
	ctx := context.Background()

	err := gw.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO authors (id, name) VALUES (1, 'a')"); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO genres (id, name) VALUES (1, 'g')"); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO books (title, price, quantity_available, author_id, genre_id) VALUES ('t', '1.00', -1, 1, 1)")
		return err
	})
	assert.ErrorIs(t, err, database.ErrIntegrityViolation)
	assert.Equal(t, 0, countRows(t, gw, "authors"))
}

func TestGateway_PingAndClose(t *testing.T) {
	gw, err := database.OpenSQLiteMemory(context.Background(), uuid.NewString())
	require.NoError(t, err)

	assert.NoError(t, gw.Ping(context.Background()))
	assert.Equal(t, database.DialectSQLite, gw.Dialect)

	require.NoError(t, gw.Close())
	assert.NoError(t, gw.Close())
	assert.Error(t, gw.Ping(context.Background()))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := database.Open(context.Background(), &database.DBConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestOpen_SQLiteRequiresPath(t *testing.T) {
	_, err := database.Open(context.Background(), &database.DBConfig{Driver: database.DialectSQLite})
	assert.Error(t, err)
}

func TestDialect_Placeholder(t *testing.T) {
	got, err := database.DialectPostgres.Placeholder().ReplacePlaceholders("a = ? AND b = ?")
	require.NoError(t, err)
	assert.Equal(t, "a = $1 AND b = $2", got)

	got, err = database.DialectSQLite.Placeholder().ReplacePlaceholders("a = ?")
	require.NoError(t, err)
	assert.Equal(t, "a = ?", got)
}

func TestGateway_StatsAfterClose(t *testing.T) {
	gw, err := database.OpenSQLiteMemory(context.Background(), uuid.NewString())
	require.NoError(t, err)

	assert.Equal(t, 1, gw.Stats().MaxOpenConnections)
	require.NoError(t, gw.Close())
	assert.Equal(t, sql.DBStats{}, gw.Stats())
}

func TestGateway_FoldFunction(t *testing.T) {
	gw := openTestGateway(t)

	var folded string
	require.NoError(t, gw.DB.QueryRow("SELECT fold(?)", "Émile ZOLA").Scan(&folded))
	assert.Equal(t, "émile zola", folded)

	var null sql.NullString
	require.NoError(t, gw.DB.QueryRow("SELECT fold(NULL)").Scan(&null))
	assert.False(t, null.Valid)
}

func TestDialect_Fold(t *testing.T) {
	assert.Equal(t, "LOWER(a.name)", database.DialectPostgres.Fold("a.name"))
	assert.Equal(t, "fold(a.name)", database.DialectSQLite.Fold("a.name"))
}
