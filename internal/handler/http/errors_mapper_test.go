package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eunio-health/eunio-sync/internal/service"
	"github.com/eunio-health/eunio-sync/internal/store"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid data", service.ErrInvalidDataProvided, http.StatusBadRequest},
		{"unknown entity type", service.ErrUnknownEntityType, http.StatusBadRequest},
		{"wrong password", service.ErrWrongPassword, http.StatusUnauthorized},
		{"expired token", service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
		{"login taken", store.ErrLoginAlreadyExists, http.StatusConflict},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"entity not found", store.ErrEntityNotFound, http.StatusNotFound},
		{"transient storage", store.ErrTransientStorage, http.StatusServiceUnavailable},
		{"wrapped sentinel", fmt.Errorf("push batch: %w", store.ErrTransientStorage), http.StatusServiceUnavailable},
		{"unmapped", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}
