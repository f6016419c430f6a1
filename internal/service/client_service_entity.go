package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eunio-health/eunio-sync/internal/logger"
	"github.com/eunio-health/eunio-sync/internal/store"
	"github.com/eunio-health/eunio-sync/models"
)

// entityService is the local write path. Writes land in the entity store and
// the change journal; the journal entry is what makes the edit eventually
// reach the remote store, so a failed append is surfaced to the caller.
type entityService struct {
	entities store.EntityRepository
	journal  store.JournalRepository
	deviceID string
	logger   *logger.Logger
}

func NewEntityService(entities store.EntityRepository, journal store.JournalRepository, deviceID string, log *logger.Logger) EntityService {
	return &entityService{entities: entities, journal: journal, deviceID: deviceID, logger: log}
}

func (s *entityService) Get(ctx context.Context, userID int64, id string) (models.SyncableEntity, error) {
	return s.entities.GetEntity(ctx, userID, id)
}

func (s *entityService) Save(ctx context.Context, entity models.SyncableEntity) (models.SyncableEntity, error) {
	log := logger.FromContext(ctx)

	if !entity.Type.Valid() {
		return models.SyncableEntity{}, fmt.Errorf("%w: %q", ErrUnknownEntityType, entity.Type)
	}
	if entity.UserID == 0 {
		return models.SyncableEntity{}, ErrInvalidDataProvided
	}

	op := models.OpUpdate
	if entity.ID == "" {
		entity.ID = uuid.NewString()
		op = models.OpCreate
	}

	now := time.Now()
	entity.LocalUpdatedAt = now
	entity.DeviceID = s.deviceID
	entity.SyncState = models.StatePendingPush

	if err := s.entities.SaveEntities(ctx, entity.UserID, entity); err != nil {
		return models.SyncableEntity{}, fmt.Errorf("save entity: %w", err)
	}

	changeID, err := s.journal.Append(ctx, entity.UserID, models.ChangeRecord{
		EntityID:   entity.ID,
		Type:       entity.Type,
		Operation:  op,
		OccurredAt: now,
		DeviceID:   s.deviceID,
	})
	if err != nil {
		log.Error().Str("func", "Save").Str("entityID", entity.ID).Err(err).Msg("journal append failed after save")
		return models.SyncableEntity{}, fmt.Errorf("journal change: %w", err)
	}

	log.Debug().Str("entityID", entity.ID).Int64("changeID", changeID).Str("op", string(op)).Msg("local write journaled")
	return entity, nil
}

func (s *entityService) Delete(ctx context.Context, userID int64, id string) error {
	entity, err := s.entities.GetEntity(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("load entity for delete: %w", err)
	}

	now := time.Now()
	entity.LocalUpdatedAt = now
	entity.DeviceID = s.deviceID
	entity.SyncState = models.StateDeleted

	if err = s.entities.SaveEntities(ctx, userID, entity); err != nil {
		return fmt.Errorf("tombstone entity: %w", err)
	}

	if _, err = s.journal.Append(ctx, userID, models.ChangeRecord{
		EntityID:   id,
		Type:       entity.Type,
		Operation:  models.OpDelete,
		OccurredAt: now,
		DeviceID:   s.deviceID,
	}); err != nil {
		return fmt.Errorf("journal delete: %w", err)
	}

	return nil
}
