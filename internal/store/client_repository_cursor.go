package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/eunio-health/eunio-sync/internal/logger"
	"github.com/eunio-health/eunio-sync/models"
)

type cursorRepository struct {
	*DB
	logger *logger.Logger
}

func NewCursorRepository(db *DB, logger *logger.Logger) CursorRepository {
	return &cursorRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *cursorRepository) GetCursor(ctx context.Context, userID int64, entityType models.EntityType) (time.Time, error) {
	log := logger.FromContext(ctx)

	var lastSyncedAt time.Time
	err := r.DB.QueryRowContext(ctx, getCursor, userID, entityType).Scan(&lastSyncedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// never synced: epoch-zero watermark
			return time.Time{}, nil
		}
		log.Err(err).
			Str("func", "cursorRepository.GetCursor").
			Int64("user_id", userID).
			Str("entity_type", string(entityType)).
			Msg("failed to query sync cursor")
		return time.Time{}, fmt.Errorf("failed to query sync cursor: %w", err)
	}

	return lastSyncedAt, nil
}

// Advance moves the watermark forward. The upsert's WHERE clause refuses an
// older timestamp, so a regression leaves zero rows affected and the stored
// value untouched.
func (r *cursorRepository) Advance(ctx context.Context, userID int64, entityType models.EntityType, ts time.Time) error {
	log := logger.FromContext(ctx)

	res, err := r.DB.ExecContext(ctx, advanceCursor, userID, entityType, ts)
	if err != nil {
		log.Err(err).
			Str("func", "cursorRepository.Advance").
			Int64("user_id", userID).
			Str("entity_type", string(entityType)).
			Msg("failed to advance sync cursor")
		return fmt.Errorf("failed to advance sync cursor: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read advance result: %w", err)
	}
	if affected == 0 {
		log.Error().
			Str("func", "cursorRepository.Advance").
			Int64("user_id", userID).
			Str("entity_type", string(entityType)).
			Time("requested", ts).
			Msg("cursor regression refused")
		return fmt.Errorf("%w: entity_type=%s requested=%s", ErrCursorRegression, entityType, ts)
	}

	return nil
}
