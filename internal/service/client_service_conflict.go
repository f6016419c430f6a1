package service

import (
	"context"
	"fmt"
	"time"

	"github.com/eunio-health/eunio-sync/internal/store"
	"github.com/eunio-health/eunio-sync/models"
)

const (
	ConflictChooseLocal  = "local"
	ConflictChooseRemote = "remote"
)

type conflictService struct {
	entities  store.EntityRepository
	journal   store.JournalRepository
	conflicts store.ConflictRepository
	deviceID  string
}

func NewConflictService(entities store.EntityRepository, journal store.JournalRepository, conflicts store.ConflictRepository, deviceID string) ConflictService {
	return &conflictService{entities: entities, journal: journal, conflicts: conflicts, deviceID: deviceID}
}

func (s *conflictService) ListOpen(ctx context.Context, userID int64) ([]models.ConflictRecord, error) {
	return s.conflicts.ListOpenConflicts(ctx, userID)
}

// Resolve applies the user's explicit choice for an open conflict. Choosing
// the local side journals a push so the winning payload reaches the remote
// store; choosing the remote side only rewrites the local copy.
func (s *conflictService) Resolve(ctx context.Context, userID int64, conflictID int64, choice string) error {
	if choice != ConflictChooseLocal && choice != ConflictChooseRemote {
		return fmt.Errorf("%w: %q", ErrInvalidConflictChoice, choice)
	}

	open, err := s.conflicts.ListOpenConflicts(ctx, userID)
	if err != nil {
		return fmt.Errorf("list open conflicts: %w", err)
	}

	var conflict *models.ConflictRecord
	for i := range open {
		if open[i].ID == conflictID {
			conflict = &open[i]
			break
		}
	}
	if conflict == nil {
		return ErrConflictNotFound
	}

	entity, err := s.entities.GetEntity(ctx, userID, conflict.EntityID)
	if err != nil {
		return fmt.Errorf("load conflicted entity: %w", err)
	}

	now := time.Now()
	entity.DeviceID = s.deviceID

	if choice == ConflictChooseRemote {
		// The chosen version is the remote one, so the local copy adopts
		// its edit timestamp too. Stamping now here would make a clean
		// entity look locally edited and LWW could later re-push the
		// chosen payload over a genuinely newer remote edit.
		entity.Payload = conflict.RemotePayload
		entity.LocalUpdatedAt = conflict.RemoteUpdatedAt
		entity.RemoteUpdatedAt = &conflict.RemoteUpdatedAt
		entity.SyncState = models.StateClean
	} else {
		entity.Payload = conflict.LocalPayload
		entity.LocalUpdatedAt = now
		entity.SyncState = models.StatePendingPush
	}

	if err = s.entities.SaveEntities(ctx, userID, entity); err != nil {
		return fmt.Errorf("write resolved entity: %w", err)
	}

	if choice == ConflictChooseLocal {
		if _, err = s.journal.Append(ctx, userID, models.ChangeRecord{
			EntityID:   conflict.EntityID,
			Type:       conflict.Type,
			Operation:  models.OpUpdate,
			OccurredAt: now,
			DeviceID:   s.deviceID,
		}); err != nil {
			return fmt.Errorf("journal resolved entity: %w", err)
		}
	}

	if err = s.conflicts.ResolveConflict(ctx, userID, conflictID, choice); err != nil {
		return fmt.Errorf("close conflict record: %w", err)
	}

	return nil
}
