package store

import (
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eunio-health/eunio-sync/internal/logger"
	"github.com/eunio-health/eunio-sync/models"
)

func TestCursorRepository_GetCursor(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewCursorRepository(newClientDB(db), logger.Nop())

	watermark := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sync_cursors")).
		WithArgs(int64(42), models.EntityDailyLog).
		WillReturnRows(sqlmock.NewRows([]string{"last_synced_at"}).AddRow(watermark))

	got, err := repo.GetCursor(testContext(), 42, models.EntityDailyLog)
	require.NoError(t, err)
	assert.Equal(t, watermark, got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCursorRepository_GetCursor_NeverSynced(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewCursorRepository(newClientDB(db), logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("FROM sync_cursors")).
		WithArgs(int64(42), models.EntityInsight).
		WillReturnRows(sqlmock.NewRows([]string{"last_synced_at"}))

	got, err := repo.GetCursor(testContext(), 42, models.EntityInsight)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCursorRepository_Advance(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewCursorRepository(newClientDB(db), logger.Nop())

	ts := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sync_cursors")).
		WithArgs(int64(42), models.EntityDailyLog, ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Advance(testContext(), 42, models.EntityDailyLog, ts))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCursorRepository_Advance_RefusesRegression(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewCursorRepository(newClientDB(db), logger.Nop())

	stale := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

	// The guarded upsert touches zero rows when the stored watermark is newer.
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sync_cursors")).
		WithArgs(int64(42), models.EntityDailyLog, stale).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Advance(testContext(), 42, models.EntityDailyLog, stale)
	assert.ErrorIs(t, err, ErrCursorRegression)

	require.NoError(t, mock.ExpectationsWereMet())
}
