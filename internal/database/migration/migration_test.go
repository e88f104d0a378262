package migration

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var checkQuery = regexp.QuoteMeta("SELECT to_regclass('public.kv_entries') IS NOT NULL")

func TestEnsureMigrated(t *testing.T) {
	ctx := context.Background()

	t.Run("runs every step on a fresh database", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(checkQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS kv_entries")).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX IF NOT EXISTS idx_kv_entries_updated_at")).WillReturnResult(sqlmock.NewResult(0, 0))

		core, logs := observer.New(zapcore.InfoLevel)
		require.NoError(t, EnsureMigrated(ctx, db, zap.New(core)))
		assert.NoError(t, mock.ExpectationsWereMet())

		assert.Equal(t, 2, logs.FilterMessage("db_migration_step").Len())
		assert.Equal(t, 1, logs.FilterMessage("db_migration_success").Len())
	})

	t.Run("skips when table exists", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(checkQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		require.NoError(t, EnsureMigrated(ctx, db, nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("check failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(checkQuery).WillReturnError(errors.New("conn reset"))

		err = EnsureMigrated(ctx, db, nil)
		assert.ErrorContains(t, err, "failed to check sentinel table: conn reset")
	})

	t.Run("step failure names the step", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(checkQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS kv_entries")).WillReturnError(errors.New("permission denied"))

		core, logs := observer.New(zapcore.ErrorLevel)
		err = EnsureMigrated(ctx, db, zap.New(core))
		assert.ErrorContains(t, err, "migration step create_table_kv_entries failed: permission denied")
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "create_table_kv_entries", logs.All()[0].ContextMap()["migration_step"])
	})
}
