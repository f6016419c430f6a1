package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/eunio-health/eunio-sync/internal/adapter"
	"github.com/eunio-health/eunio-sync/models"
)

type clientAuthService struct {
	gateway adapter.RemoteGateway

	mu     sync.RWMutex
	userID int64
}

func NewClientAuthService(gateway adapter.RemoteGateway) ClientAuthService {
	return &clientAuthService{gateway: gateway}
}

func (a *clientAuthService) Register(ctx context.Context, user models.User) (int64, error) {
	if user.Login == "" || user.Password == "" {
		return 0, ErrInvalidDataProvided
	}

	token, err := a.gateway.Register(ctx, user)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRegisterOnServer, err)
	}

	a.setUser(token.UserID)
	return token.UserID, nil
}

func (a *clientAuthService) Login(ctx context.Context, user models.User) (int64, error) {
	if user.Login == "" || user.Password == "" {
		return 0, ErrInvalidDataProvided
	}

	token, err := a.gateway.Login(ctx, user)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrLoginOnServer, err)
	}

	a.setUser(token.UserID)
	return token.UserID, nil
}

func (a *clientAuthService) CurrentUserID() (int64, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.userID == 0 {
		return 0, ErrNotAuthenticated
	}
	return a.userID, nil
}

func (a *clientAuthService) setUser(userID int64) {
	a.mu.Lock()
	a.userID = userID
	a.mu.Unlock()
}
