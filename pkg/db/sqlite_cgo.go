//go:build cgo_sqlite

package db

// Requires CGO_ENABLED=1.

import (
	_ "github.com/mattn/go-sqlite3"
)

const sqliteDriverName = "sqlite3"
