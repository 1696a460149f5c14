package migration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/meta-ads-dashboard-api/infrastructure/database/sqlite"
)

func TestStatements(t *testing.T) {
	for _, dialect := range []string{DialectPostgres, DialectSQLite} {
		t.Run(dialect, func(t *testing.T) {
			statements, err := Statements(dialect)
			require.NoError(t, err)
			assert.Len(t, statements, 4)
			assert.Contains(t, statements[2], "meta_ads_cache")
		})
	}

	_, err := Statements("mysql")
	assert.Error(t, err)
}

func TestUp_SQLiteIsIdempotent(t *testing.T) {
	ctx := context.Background()

	db, err := sqlite.NewConnection(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Up(ctx, db, DialectSQLite))
	require.NoError(t, Up(ctx, db, DialectSQLite))

	var count int
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name LIKE 'meta_ads_%'").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
