package db

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
	"github.com/sirupsen/logrus"
)

// Migration is one schema step. Statements run in order inside a single transaction.
type Migration struct {
	Version    string
	Statements []string
}

// The DDL sticks to types and syntax that both Postgres and SQLite accept.
var Migrations = []Migration{
	{
		Version: "1.0.0",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS customers (
				id            TEXT PRIMARY KEY,
				name          TEXT NOT NULL,
				street        TEXT,
				number        INTEGER,
				zipcode       TEXT,
				city          TEXT,
				active        BOOLEAN NOT NULL DEFAULT FALSE,
				reward_points INTEGER NOT NULL DEFAULT 0
			)`,
			`CREATE TABLE IF NOT EXISTS products (
				id    TEXT PRIMARY KEY,
				name  TEXT NOT NULL,
				price DOUBLE PRECISION NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS orders (
				id          TEXT PRIMARY KEY,
				customer_id TEXT NOT NULL REFERENCES customers(id),
				total       DOUBLE PRECISION NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS order_items (
				id         TEXT PRIMARY KEY,
				order_id   TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
				product_id TEXT NOT NULL REFERENCES products(id),
				name       TEXT NOT NULL,
				price      DOUBLE PRECISION NOT NULL,
				quantity   INTEGER NOT NULL,
				position   INTEGER NOT NULL
			)`,
		},
	},
	{
		Version: "1.1.0",
		Statements: []string{
			`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id)`,
			`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id, position)`,
		},
	},
}

// Migrate applies every migration newer than the highest recorded schema version.
func Migrate(ctx context.Context, db *sql.DB, logger *logrus.Logger) error {
	if err := ensureVersionTable(ctx, db); err != nil {
		return err
	}

	current, err := CurrentVersion(ctx, db)
	if err != nil {
		return err
	}

	pending, err := pendingMigrations(current)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		logger.Debugf("Migrations: schema is up to date (version %s)", versionString(current))
		return nil
	}

	for _, m := range pending {
		logger.Infof("Migrations: applying schema version %s", m.Version)
		if err := apply(ctx, db, m); err != nil {
			logger.Errorf("Migrations: failed to apply version %s: %v", m.Version, err)
			return err
		}
	}

	logger.Infof("Migrations: applied %d migration(s)", len(pending))
	return nil
}

func ensureVersionTable(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("could not create schema_version table: %w", err)
	}
	return nil
}

// CurrentVersion returns the highest applied version, or nil for an empty schema.
func CurrentVersion(ctx context.Context, db *sql.DB) (*semver.Version, error) {
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_version`)
	if err != nil {
		return nil, fmt.Errorf("could not read schema versions: %w", err)
	}
	defer rows.Close()

	var current *semver.Version
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("error scanning schema version: %w", err)
		}
		v, err := semver.NewVersion(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid schema version %q: %w", raw, err)
		}
		if current == nil || v.GreaterThan(current) {
			current = v
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schema versions: %w", err)
	}
	return current, nil
}

func pendingMigrations(current *semver.Version) ([]Migration, error) {
	type versioned struct {
		v *semver.Version
		m Migration
	}

	all := make([]versioned, 0, len(Migrations))
	for _, m := range Migrations {
		v, err := semver.NewVersion(m.Version)
		if err != nil {
			return nil, fmt.Errorf("invalid migration version %q: %w", m.Version, err)
		}
		all = append(all, versioned{v: v, m: m})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].v.LessThan(all[j].v) })

	var pending []Migration
	for _, item := range all {
		if current == nil || item.v.GreaterThan(current) {
			pending = append(pending, item.m)
		}
	}
	return pending, nil
}

func apply(ctx context.Context, db *sql.DB, m Migration) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not start migration transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for i, stmt := range m.Statements {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %s statement %d: %w", m.Version, i, err)
		}
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES ($1)`, m.Version); err != nil {
		return fmt.Errorf("could not record schema version %s: %w", m.Version, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", m.Version, err)
	}
	return nil
}

func versionString(v *semver.Version) string {
	if v == nil {
		return "none"
	}
	return v.String()
}
