package store

import (
	"context"
	"time"

	"github.com/eunio-health/eunio-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// RemoteEntityRepository is the server-side document store the sync engine
// pushes to and pulls from.
type RemoteEntityRepository interface {
	// UpsertBatch writes one push chunk in a single transaction, keyed by
	// (user id, entity id) so re-sending a chunk is idempotent. Records that
	// fail validation are reported Rejected without aborting the chunk; any
	// database error rolls the whole chunk back.
	UpsertBatch(ctx context.Context, userID int64, items []models.PushItem) ([]models.PushResult, error)

	// ListSince returns up to limit entities of the given type committed
	// strictly after (since, afterID) in (server_updated_at, id) keyset
	// order, plus a flag telling whether more pages remain. Pagination runs
	// on the server commit timestamp, not the device edit timestamp, so a
	// record stamped in the past by an offline device is still visible to
	// cursors that have already moved past its edit time.
	ListSince(ctx context.Context, userID int64, entityType models.EntityType, since time.Time, afterID string, limit int) ([]models.RemoteEntity, bool, error)
}

// UserRepository is the server-side account store.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUserByLogin(ctx context.Context, login string) (models.User, error)
}
