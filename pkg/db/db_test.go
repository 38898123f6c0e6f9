package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := Connect(context.Background(), DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestConnectRejectsBadInput(t *testing.T) {
	_, err := Connect(context.Background(), DriverSQLite, "")
	assert.EqualError(t, err, "database URL cannot be empty")

	_, err = Connect(context.Background(), "mysql", "whatever")
	assert.EqualError(t, err, `unsupported database driver "mysql"`)
}

func TestConnectSQLiteEnablesForeignKeys(t *testing.T) {
	conn := setupTestDB(t)

	var enabled int
	require.NoError(t, conn.QueryRow("PRAGMA foreign_keys").Scan(&enabled))
	assert.Equal(t, 1, enabled)
	assert.Equal(t, 1, conn.Stats().MaxOpenConnections)
}

func TestMigrateAppliesAllVersions(t *testing.T) {
	conn := setupTestDB(t)
	logger, hook := test.NewNullLogger()
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, conn, logger))

	v, err := CurrentVersion(ctx, conn)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "1.1.0", v.String())

	for _, table := range []string{"customers", "products", "orders", "order_items"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1`, table).Scan(&name)
		require.NoError(t, err, table)
	}

	assert.Equal(t, "Migrations: applied 2 migration(s)", hook.LastEntry().Message)
}

func TestMigrateIsIdempotent(t *testing.T) {
	conn := setupTestDB(t)
	logger, hook := test.NewNullLogger()
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, conn, logger))
	hook.Reset()
	require.NoError(t, Migrate(ctx, conn, logger))

	var count int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM schema_version`).Scan(&count))
	assert.Equal(t, len(Migrations), count)
	assert.Empty(t, hook.AllEntries(), "nothing is logged above debug when up to date")
}

func TestMigrateResumesFromRecordedVersion(t *testing.T) {
	conn := setupTestDB(t)
	logger, hook := test.NewNullLogger()
	ctx := context.Background()

	require.NoError(t, ensureVersionTable(ctx, conn))
	require.NoError(t, apply(ctx, conn, Migrations[0]))
	require.NoError(t, Migrate(ctx, conn, logger))

	v, err := CurrentVersion(ctx, conn)
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", v.String())

	var messages []string
	for _, e := range hook.AllEntries() {
		messages = append(messages, e.Message)
	}
	assert.Equal(t, []string{
		"Migrations: applying schema version 1.1.0",
		"Migrations: applied 1 migration(s)",
	}, messages)

	var count int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM schema_version`).Scan(&count))
	assert.Equal(t, 2, count)
}

func TestApplyWithoutVersionTableFails(t *testing.T) {
	conn := setupTestDB(t)

	err := apply(context.Background(), conn, Migrations[0])
	require.Error(t, err)

	var count int
	require.NoError(t, conn.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE name = 'customers'`).Scan(&count))
	assert.Zero(t, count, "the failed version insert rolls back the migration")
}

func TestPendingMigrationsOrdering(t *testing.T) {
	saved := Migrations
	t.Cleanup(func() { Migrations = saved })

	Migrations = []Migration{{Version: "1.10.0"}, {Version: "1.2.0"}, {Version: "1.9.1"}}

	pending, err := pendingMigrations(nil)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	assert.Equal(t, "1.2.0", pending[0].Version)
	assert.Equal(t, "1.9.1", pending[1].Version)
	assert.Equal(t, "1.10.0", pending[2].Version)

	Migrations = []Migration{{Version: "not-a-version"}}
	_, err = pendingMigrations(nil)
	assert.Error(t, err)
}

func TestConstraintClassification(t *testing.T) {
	conn := setupTestDB(t)
	logger, _ := test.NewNullLogger()
	ctx := context.Background()
	require.NoError(t, Migrate(ctx, conn, logger))

	_, err := conn.ExecContext(ctx, `INSERT INTO products (id, name, price) VALUES ($1, $2, $3)`, "1", "Product 1", 100.0)
	require.NoError(t, err)

	_, err = conn.ExecContext(ctx, `INSERT INTO products (id, name, price) VALUES ($1, $2, $3)`, "1", "Again", 1.0)
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsForeignKeyViolation(err))

	_, err = conn.ExecContext(ctx, `INSERT INTO orders (id, customer_id, total) VALUES ($1, $2, $3)`, "o1", "missing", 0.0)
	assert.True(t, IsForeignKeyViolation(err))
	assert.False(t, IsUniqueViolation(err))

	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23514"}))
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsForeignKeyViolation(errors.New("boom")))
}
