//go:build !cgo_sqlite

package db

// Pure Go SQLite. Build with -tags cgo_sqlite to use the cgo driver instead.

import (
	_ "modernc.org/sqlite"
)

const sqliteDriverName = "sqlite"
