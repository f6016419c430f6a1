package service

import (
	"context"
	"time"

	"github.com/eunio-health/eunio-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientAuthService handles account creation and authentication against the
// remote store, and remembers who is logged in on this device.
type ClientAuthService interface {
	// Register creates an account on the server and logs the new user in.
	Register(ctx context.Context, user models.User) (int64, error)

	// Login authenticates against the server. On success the bearer token is
	// stored on the gateway and the user id is remembered for sync calls.
	Login(ctx context.Context, user models.User) (int64, error)

	// CurrentUserID returns the logged-in user, or ErrNotAuthenticated.
	CurrentUserID() (int64, error)
}

// EntityService is the app's local write path. Every mutation lands in the
// local store and the change journal in the same call; nothing here touches
// the network.
type EntityService interface {
	// Get loads one entity from the local store.
	Get(ctx context.Context, userID int64, id string) (models.SyncableEntity, error)

	// Save creates or updates an entity locally and journals the change.
	// A missing ID is assigned; LocalUpdatedAt and DeviceID are stamped.
	Save(ctx context.Context, entity models.SyncableEntity) (models.SyncableEntity, error)

	// Delete tombstones the entity locally and journals the deletion.
	Delete(ctx context.Context, userID int64, id string) error
}

// ConflictService exposes materialized conflicts to the app and applies the
// user's explicit choice.
type ConflictService interface {
	ListOpen(ctx context.Context, userID int64) ([]models.ConflictRecord, error)

	// Resolve applies the chosen side ("local" or "remote") of an open
	// conflict: the winning payload is written to the entity store, a local
	// win is journaled for the next push, and the conflict row is removed.
	Resolve(ctx context.Context, userID int64, conflictID int64, choice string) error
}

// SyncCoordinator runs full sync cycles: push pending changes, pull remote
// updates, resolve divergence, advance cursors. Concurrent triggers for the
// same user coalesce into one in-flight cycle whose result all callers share.
type SyncCoordinator interface {
	// Sync runs one cycle for the user and returns its totals.
	Sync(ctx context.Context, userID int64) (models.SyncReport, error)

	// Subscribe returns a stream of phase transitions and a cancel function.
	// The stream holds only the latest status: a slow observer sees the
	// newest event, never a backlog.
	Subscribe() (<-chan models.SyncStatus, func())
}

// ClientSyncJob periodically triggers sync for the authenticated user.
type ClientSyncJob interface {
	// Start launches the background sync goroutine. It syncs every interval,
	// defaulting to 5 minutes if interval is zero or negative. Any previously
	// running job is stopped before the new one begins.
	Start(ctx context.Context, userID int64, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}

// ConnectivityChecker tracks whether the remote store is reachable.
type ConnectivityChecker interface {
	// Probe checks reachability once and records the result. Returns true
	// when this probe flipped the state from offline to online.
	Probe(ctx context.Context) bool

	// IsReachable returns the last recorded reachability state.
	IsReachable() bool
}
