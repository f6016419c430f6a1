package http

import (
	"errors"
	"net/http"

	"github.com/eunio-health/eunio-sync/internal/service"
	"github.com/eunio-health/eunio-sync/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrUnknownEntityType:       http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	store.ErrUserNotFound:       http.StatusNotFound,
	store.ErrEntityNotFound:     http.StatusNotFound,

	// The client retries the whole chunk when the remote store reports a
	// transient condition.
	store.ErrTransientStorage: http.StatusServiceUnavailable,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
