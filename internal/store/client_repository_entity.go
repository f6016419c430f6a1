package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/eunio-health/eunio-sync/internal/logger"
	"github.com/eunio-health/eunio-sync/models"
)

type entityRepository struct {
	*DB
	logger *logger.Logger
}

func NewEntityRepository(db *DB, logger *logger.Logger) EntityRepository {
	return &entityRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *entityRepository) GetEntity(ctx context.Context, userID int64, id string) (models.SyncableEntity, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getEntity, userID, id)

	entity, err := scanEntity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SyncableEntity{}, ErrEntityNotFound
		}
		log.Err(err).
			Str("func", "entityRepository.GetEntity").
			Int64("user_id", userID).
			Str("entity_id", id).
			Msg("failed to scan entity row")
		return models.SyncableEntity{}, fmt.Errorf("failed to scan entity row: %w", err)
	}

	return entity, nil
}

func (r *entityRepository) SaveEntities(ctx context.Context, userID int64, entities ...models.SyncableEntity) error {
	log := logger.FromContext(ctx)

	for _, entity := range entities {
		if _, err := r.DB.ExecContext(ctx, upsertEntity,
			entity.ID,
			userID,
			entity.Type,
			[]byte(entity.Payload),
			entity.LocalUpdatedAt,
			nullableTime(entity.RemoteUpdatedAt),
			entity.DeviceID,
			entity.SyncState,
		); err != nil {
			log.Err(err).
				Str("func", "entityRepository.SaveEntities").
				Int64("user_id", userID).
				Str("entity_id", entity.ID).
				Msg("failed to execute upsert for entity")
			return fmt.Errorf("failed to save entity (id=%s): %w", entity.ID, err)
		}
	}

	return nil
}

// MarkClean flips the entity to clean unless other journal entries still
// reference it. The confirmed change ids are excluded from the guard: they
// are the entries this very push confirmed, acknowledged right after, so
// they must not keep their own entity pending.
func (r *entityRepository) MarkClean(ctx context.Context, userID int64, entityID string, remoteUpdatedAt time.Time, confirmed []int64) error {
	log := logger.FromContext(ctx)

	pending := sq.Select("1").
		From("change_journal").
		Where(sq.Eq{"change_journal.user_id": userID, "change_journal.entity_id": entityID})
	if len(confirmed) > 0 {
		pending = pending.Where(sq.NotEq{"change_journal.change_id": confirmed})
	}
	pendingSQL, pendingArgs, err := pending.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build clean guard query: %w", err)
	}

	query, args, err := sq.Update("entities").
		Set("sync_state", models.StateClean).
		Set("remote_updated_at", remoteUpdatedAt).
		Where(sq.Eq{"user_id": userID, "id": entityID}).
		Where("NOT EXISTS ("+pendingSQL+")", pendingArgs...).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build mark clean query: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.MarkClean").
			Int64("user_id", userID).
			Str("entity_id", entityID).
			Msg("failed to mark entity clean")
		return fmt.Errorf("failed to mark entity clean (id=%s): %w", entityID, err)
	}

	return nil
}

// ApplyMerge writes everything the Advancing phase produced in one
// transaction so a crash mid-phase never leaves a half-applied pull.
func (r *entityRepository) ApplyMerge(ctx context.Context, userID int64, entities []models.SyncableEntity, conflicts []models.ConflictRecord, rePush []models.ChangeRecord) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin merge transaction: %w", err)
	}
	defer tx.Rollback()

	for _, entity := range entities {
		if _, err = tx.ExecContext(ctx, upsertEntity,
			entity.ID,
			userID,
			entity.Type,
			[]byte(entity.Payload),
			entity.LocalUpdatedAt,
			nullableTime(entity.RemoteUpdatedAt),
			entity.DeviceID,
			entity.SyncState,
		); err != nil {
			log.Err(err).
				Str("func", "entityRepository.ApplyMerge").
				Int64("user_id", userID).
				Str("entity_id", entity.ID).
				Msg("failed to upsert merged entity")
			return fmt.Errorf("failed to upsert merged entity (id=%s): %w", entity.ID, err)
		}
	}

	for _, conflict := range conflicts {
		if _, err = tx.ExecContext(ctx, insertConflict,
			userID,
			conflict.EntityID,
			conflict.Type,
			[]byte(conflict.LocalPayload),
			[]byte(conflict.RemotePayload),
			conflict.LocalUpdatedAt,
			conflict.RemoteUpdatedAt,
			conflict.DetectedAt,
		); err != nil {
			log.Err(err).
				Str("func", "entityRepository.ApplyMerge").
				Int64("user_id", userID).
				Str("entity_id", conflict.EntityID).
				Msg("failed to insert conflict record")
			return fmt.Errorf("failed to insert conflict record (entity_id=%s): %w", conflict.EntityID, err)
		}
	}

	for _, change := range rePush {
		if _, err = tx.ExecContext(ctx, appendChange,
			userID,
			change.EntityID,
			change.Type,
			change.Operation,
			change.OccurredAt,
			change.DeviceID,
		); err != nil {
			log.Err(err).
				Str("func", "entityRepository.ApplyMerge").
				Int64("user_id", userID).
				Str("entity_id", change.EntityID).
				Msg("failed to journal re-push change")
			return fmt.Errorf("failed to journal re-push change (entity_id=%s): %w", change.EntityID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit merge transaction: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntity(row rowScanner) (models.SyncableEntity, error) {
	var entity models.SyncableEntity
	var payload []byte
	var remoteUpdatedAt sql.NullTime

	if err := row.Scan(
		&entity.ID,
		&entity.UserID,
		&entity.Type,
		&payload,
		&entity.LocalUpdatedAt,
		&remoteUpdatedAt,
		&entity.DeviceID,
		&entity.SyncState,
	); err != nil {
		return models.SyncableEntity{}, err
	}

	entity.Payload = payload
	if remoteUpdatedAt.Valid {
		t := remoteUpdatedAt.Time
		entity.RemoteUpdatedAt = &t
	}

	return entity, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
