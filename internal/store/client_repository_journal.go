package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/eunio-health/eunio-sync/internal/logger"
	"github.com/eunio-health/eunio-sync/models"
)

type journalRepository struct {
	*DB
	logger *logger.Logger
}

func NewJournalRepository(db *DB, logger *logger.Logger) JournalRepository {
	return &journalRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *journalRepository) Append(ctx context.Context, userID int64, rec models.ChangeRecord) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.DB.ExecContext(ctx, appendChange,
		userID,
		rec.EntityID,
		rec.Type,
		rec.Operation,
		rec.OccurredAt,
		rec.DeviceID,
	)
	if err != nil {
		log.Err(err).
			Str("func", "journalRepository.Append").
			Int64("user_id", userID).
			Str("entity_id", rec.EntityID).
			Msg("failed to append change record")
		return 0, fmt.Errorf("failed to append change record (entity_id=%s): %w", rec.EntityID, err)
	}

	changeID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read appended change id: %w", err)
	}

	return changeID, nil
}

func (r *journalRepository) PendingSince(ctx context.Context, userID int64, entityType models.EntityType) ([]models.ChangeRecord, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, pendingChanges, userID, entityType)
	if err != nil {
		log.Err(err).
			Str("func", "journalRepository.PendingSince").
			Int64("user_id", userID).
			Str("entity_type", string(entityType)).
			Msg("failed to query pending change records")
		return nil, fmt.Errorf("failed to query pending change records: %w", err)
	}
	defer rows.Close()

	var records []models.ChangeRecord

	for rows.Next() {
		var rec models.ChangeRecord

		if scanErr := rows.Scan(
			&rec.ChangeID,
			&rec.EntityID,
			&rec.Type,
			&rec.Operation,
			&rec.OccurredAt,
			&rec.DeviceID,
		); scanErr != nil {
			log.Err(scanErr).
				Str("func", "journalRepository.PendingSince").
				Int64("user_id", userID).
				Msg("failed to scan change record row")
			return nil, fmt.Errorf("failed to scan change record row: %w", scanErr)
		}

		records = append(records, rec)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "journalRepository.PendingSince").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating change record rows: %w", rowsErr)
	}

	return records, nil
}

func (r *journalRepository) Acknowledge(ctx context.Context, userID int64, changeIDs []int64) error {
	if len(changeIDs) == 0 {
		return nil
	}

	log := logger.FromContext(ctx)

	query, args, err := sq.Delete("change_journal").
		Where(sq.Eq{"user_id": userID, "change_id": changeIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build acknowledge query: %w", err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "journalRepository.Acknowledge").
			Int64("user_id", userID).
			Int("records", len(changeIDs)).
			Msg("failed to acknowledge change records")
		return fmt.Errorf("failed to acknowledge change records: %w", err)
	}

	return nil
}
