package store

import (
	"context"
	"fmt"

	"github.com/eunio-health/eunio-sync/internal/logger"
	"github.com/eunio-health/eunio-sync/models"
)

type conflictRepository struct {
	*DB
	logger *logger.Logger
}

func NewConflictRepository(db *DB, logger *logger.Logger) ConflictRepository {
	return &conflictRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *conflictRepository) SaveConflict(ctx context.Context, userID int64, c models.ConflictRecord) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, insertConflict,
		userID,
		c.EntityID,
		c.Type,
		[]byte(c.LocalPayload),
		[]byte(c.RemotePayload),
		c.LocalUpdatedAt,
		c.RemoteUpdatedAt,
		c.DetectedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.SaveConflict").
			Int64("user_id", userID).
			Str("entity_id", c.EntityID).
			Msg("failed to insert conflict record")
		return fmt.Errorf("failed to insert conflict record (entity_id=%s): %w", c.EntityID, err)
	}

	return nil
}

func (r *conflictRepository) ListOpenConflicts(ctx context.Context, userID int64) ([]models.ConflictRecord, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listOpenConflicts, userID)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.ListOpenConflicts").
			Int64("user_id", userID).
			Msg("failed to query open conflicts")
		return nil, fmt.Errorf("failed to query open conflicts: %w", err)
	}
	defer rows.Close()

	var conflicts []models.ConflictRecord

	for rows.Next() {
		var c models.ConflictRecord
		var localPayload, remotePayload []byte

		if scanErr := rows.Scan(
			&c.ID,
			&c.EntityID,
			&c.Type,
			&localPayload,
			&remotePayload,
			&c.LocalUpdatedAt,
			&c.RemoteUpdatedAt,
			&c.DetectedAt,
		); scanErr != nil {
			log.Err(scanErr).
				Str("func", "conflictRepository.ListOpenConflicts").
				Int64("user_id", userID).
				Msg("failed to scan conflict record row")
			return nil, fmt.Errorf("failed to scan conflict record row: %w", scanErr)
		}

		c.LocalPayload = localPayload
		c.RemotePayload = remotePayload
		conflicts = append(conflicts, c)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "conflictRepository.ListOpenConflicts").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating conflict record rows: %w", rowsErr)
	}

	return conflicts, nil
}

func (r *conflictRepository) ResolveConflict(ctx context.Context, userID int64, id int64, resolution string) error {
	log := logger.FromContext(ctx)

	if _, err := r.DB.ExecContext(ctx, deleteConflict, userID, id); err != nil {
		log.Err(err).
			Str("func", "conflictRepository.ResolveConflict").
			Int64("user_id", userID).
			Int64("conflict_id", id).
			Msg("failed to resolve conflict record")
		return fmt.Errorf("failed to resolve conflict record (id=%d): %w", id, err)
	}

	log.Info().
		Str("func", "conflictRepository.ResolveConflict").
		Int64("user_id", userID).
		Int64("conflict_id", id).
		Str("resolution", resolution).
		Msg("conflict resolved")

	return nil
}
