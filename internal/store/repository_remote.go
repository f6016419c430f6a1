package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/eunio-health/eunio-sync/internal/logger"
	"github.com/eunio-health/eunio-sync/models"
)

type remoteEntityRepository struct {
	*DB
	logger *logger.Logger
}

func NewRemoteEntityRepository(db *DB, logger *logger.Logger) RemoteEntityRepository {
	return &remoteEntityRepository{
		DB:     db,
		logger: logger,
	}
}

// UpsertBatch applies one push chunk atomically. Validation failures are
// reported per-record as Rejected and skipped before touching the database,
// so one malformed record never blocks the rest of the chunk. A database
// error aborts the transaction: the whole chunk rolls back and the caller
// re-sends it (upserts are idempotent).
func (r *remoteEntityRepository) UpsertBatch(ctx context.Context, userID int64, items []models.PushItem) ([]models.PushResult, error) {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin push transaction: %w", err)
	}
	defer tx.Rollback()

	results := make([]models.PushResult, 0, len(items))

	for _, item := range items {
		if reason, ok := validatePushItem(item); !ok {
			results = append(results, models.PushResult{
				ChangeID: item.ChangeID,
				EntityID: item.EntityID,
				Status:   models.PushRejected,
				Reason:   reason,
			})
			continue
		}

		deleted := item.Operation == models.OpDelete
		var payload any
		if !deleted {
			payload = []byte(item.Payload)
		}

		if _, err = tx.ExecContext(ctx, upsertRemoteEntity,
			userID,
			item.EntityID,
			item.Type,
			payload,
			item.UpdatedAt,
			item.DeviceID,
			deleted,
		); err != nil {
			log.Err(err).
				Str("func", "remoteEntityRepository.UpsertBatch").
				Int64("user_id", userID).
				Str("entity_id", item.EntityID).
				Str("pg_code", postgresError(err)).
				Msg("failed to upsert pushed entity, rolling back chunk")
			if r.errorClassificator != nil && r.errorClassificator.Classify(err) == Retryable {
				return nil, fmt.Errorf("%w: upsert entity (id=%s): %v", ErrTransientStorage, item.EntityID, err)
			}
			return nil, fmt.Errorf("failed to upsert pushed entity (id=%s): %w", item.EntityID, err)
		}

		results = append(results, models.PushResult{
			ChangeID: item.ChangeID,
			EntityID: item.EntityID,
			Status:   models.PushCommitted,
		})
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit push transaction: %w", err)
	}

	return results, nil
}

func validatePushItem(item models.PushItem) (string, bool) {
	if item.EntityID == "" {
		return "entity id is empty", false
	}
	if !item.Type.Valid() {
		return fmt.Sprintf("unknown entity type %q", item.Type), false
	}
	switch item.Operation {
	case models.OpCreate, models.OpUpdate:
		if len(item.Payload) == 0 || !json.Valid(item.Payload) {
			return "payload is not valid JSON", false
		}
	case models.OpDelete:
		// tombstones carry no payload
	default:
		return fmt.Sprintf("unknown operation %q", item.Operation), false
	}

	return "", true
}

// ListSince pages entities in (server_updated_at, id) keyset order, the
// commit-time axis. The query is built dynamically: the first page filters
// on server_updated_at alone, subsequent pages add the id tie-break of the
// previous page's last row.
func (r *remoteEntityRepository) ListSince(ctx context.Context, userID int64, entityType models.EntityType, since time.Time, afterID string, limit int) ([]models.RemoteEntity, bool, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select("id", "entity_type", "payload", "updated_at", "server_updated_at", "device_id", "deleted").
		From("entities").
		Where(sq.Eq{"user_id": userID, "entity_type": entityType}).
		OrderBy("server_updated_at ASC", "id ASC").
		Limit(uint64(limit + 1)).
		PlaceholderFormat(sq.Dollar)

	if afterID != "" {
		builder = builder.Where(sq.Or{
			sq.Gt{"server_updated_at": since},
			sq.And{sq.Eq{"server_updated_at": since}, sq.Gt{"id": afterID}},
		})
	} else {
		builder = builder.Where(sq.Gt{"server_updated_at": since})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("failed to build pull query: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "remoteEntityRepository.ListSince").
			Int64("user_id", userID).
			Str("entity_type", string(entityType)).
			Msg("failed to query entities since timestamp")
		return nil, false, fmt.Errorf("failed to query entities since timestamp: %w", err)
	}
	defer rows.Close()

	var entities []models.RemoteEntity

	for rows.Next() {
		var entity models.RemoteEntity
		var payload sql.Null[[]byte]

		if scanErr := rows.Scan(
			&entity.ID,
			&entity.Type,
			&payload,
			&entity.RemoteUpdatedAt,
			&entity.ServerUpdatedAt,
			&entity.DeviceID,
			&entity.Deleted,
		); scanErr != nil {
			log.Err(scanErr).
				Str("func", "remoteEntityRepository.ListSince").
				Int64("user_id", userID).
				Msg("failed to scan remote entity row")
			return nil, false, fmt.Errorf("failed to scan remote entity row: %w", scanErr)
		}

		if payload.Valid {
			entity.Payload = payload.V
		}
		entities = append(entities, entity)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "remoteEntityRepository.ListSince").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, false, fmt.Errorf("error iterating remote entity rows: %w", rowsErr)
	}

	hasMore := len(entities) > limit
	if hasMore {
		entities = entities[:limit]
	}

	return entities, hasMore, nil
}
