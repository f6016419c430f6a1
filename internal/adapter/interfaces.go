package adapter

import (
	"context"
	"time"

	"github.com/eunio-health/eunio-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// RemoteGateway is the client's only window onto the remote store: batched
// push, timestamp-range pull, reachability probing, and authentication.
// The gateway carries no business logic and never retries; callers wrap
// calls in the retry scheduler and decide what an outcome means.
type RemoteGateway interface {
	// Register creates an account and stores the returned bearer token on
	// the gateway for subsequent calls.
	Register(ctx context.Context, user models.User) (models.Token, error)

	// Login authenticates and stores the returned bearer token on the
	// gateway for subsequent calls.
	Login(ctx context.Context, user models.User) (models.Token, error)

	// PushBatch sends one chunk of change records. The chunk is atomic
	// server-side; per-record outcomes come back in the same order the
	// server processed them. Callers must keep chunks within the configured
	// batch size.
	PushBatch(ctx context.Context, items []models.PushItem) ([]models.PushResult, error)

	// PullSince returns every remote entity of the given type committed
	// after since, ordered by server commit timestamp ascending. Pagination is handled
	// transparently; the caller sees one finite sequence.
	PullSince(ctx context.Context, entityType models.EntityType, since time.Time) ([]models.RemoteEntity, error)

	// Ping probes the remote store's health endpoint. Used by the
	// connectivity watcher to gate automatic sync triggers.
	Ping(ctx context.Context) error

	// SetToken replaces the bearer token used on authenticated calls.
	SetToken(token string)

	// Token returns the current bearer token, empty when unauthenticated.
	Token() string
}
