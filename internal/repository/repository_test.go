package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"shop_service/pkg/db"
)

func setupTestDB(t *testing.T) (*sql.DB, *logrus.Logger) {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Connect(ctx, db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	logger, _ := test.NewNullLogger()
	require.NoError(t, db.Migrate(ctx, conn, logger))
	return conn, logger
}
