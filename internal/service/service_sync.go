package service

import (
	"context"
	"fmt"

	"github.com/eunio-health/eunio-sync/internal/logger"
	"github.com/eunio-health/eunio-sync/internal/store"
	"github.com/eunio-health/eunio-sync/models"
)

// defaultPullLimit bounds a pull page when the client does not ask for a
// specific size. maxPullLimit bounds what a client may ask for.
const (
	defaultPullLimit = 200
	maxPullLimit     = 1000
)

// syncService is the server half of the sync protocol: it applies push
// chunks to the remote entity store and serves keyset-paginated pull pages.
type syncService struct {
	entities store.RemoteEntityRepository
	logger   *logger.Logger
}

func NewSyncService(entities store.RemoteEntityRepository, log *logger.Logger) SyncService {
	return &syncService{entities: entities, logger: log}
}

// Push implements SyncService. The request is rejected outright when it is
// empty or its declared length disagrees with the item count; individual
// records are validated inside the repository so a bad record yields a
// Rejected result without failing its neighbours.
func (s *syncService) Push(ctx context.Context, userID int64, req models.PushRequest) (models.PushResponse, error) {
	log := logger.FromContext(ctx)

	if len(req.Items) == 0 || req.Length != len(req.Items) {
		log.Error().Str("func", "Push").Int("length", req.Length).Int("items", len(req.Items)).Msg("malformed push request")
		return models.PushResponse{}, ErrInvalidDataProvided
	}

	results, err := s.entities.UpsertBatch(ctx, userID, req.Items)
	if err != nil {
		return models.PushResponse{}, fmt.Errorf("upsert push batch: %w", err)
	}

	return models.PushResponse{Results: results, Length: len(results)}, nil
}

// Pull implements SyncService.
func (s *syncService) Pull(ctx context.Context, userID int64, q models.PullQuery) (models.PullResponse, error) {
	if !q.Type.Valid() {
		return models.PullResponse{}, fmt.Errorf("%w: %q", ErrUnknownEntityType, q.Type)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultPullLimit
	}
	if limit > maxPullLimit {
		limit = maxPullLimit
	}

	entities, hasMore, err := s.entities.ListSince(ctx, userID, q.Type, q.Since, q.AfterID, limit)
	if err != nil {
		return models.PullResponse{}, fmt.Errorf("list entities since cursor: %w", err)
	}

	return models.PullResponse{Entities: entities, Length: len(entities), HasMore: hasMore}, nil
}
