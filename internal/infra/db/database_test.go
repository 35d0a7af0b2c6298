package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/config"
)

func TestOpen_SQLiteMigrates(t *testing.T) {
	database, err := Open(&config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "expenses.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, database.Migrate())
	assert.NoError(t, database.Ping(context.Background()))

	for _, table := range []string{"users", "expenses", "budgets", "recurring_expenses", "pending_recurring_expenses", "email_queue"} {
		assert.True(t, database.DB().Migrator().HasTable(table), table)
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "mysql"})
	assert.ErrorContains(t, err, "unsupported database driver")
}
