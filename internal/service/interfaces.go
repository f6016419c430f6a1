package service

import (
	"context"

	"github.com/eunio-health/eunio-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SyncService is the server-side sync surface: it accepts push batches and
// serves keyset-paginated pull pages.
type SyncService interface {
	// Push validates and applies one batch of change records for the user.
	// The batch is written atomically; per-record outcomes preserve order.
	Push(ctx context.Context, userID int64, req models.PushRequest) (models.PushResponse, error)

	// Pull returns one page of entities changed after (since, afterID).
	Pull(ctx context.Context, userID int64, q models.PullQuery) (models.PullResponse, error)
}

// AuthService is the server-side account and token surface.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}
