package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrNotAuthenticated = errors.New("not authenticated")

	ErrUnknownEntityType = errors.New("unknown entity type")

	ErrConflictNotFound      = errors.New("conflict record not found")
	ErrInvalidConflictChoice = errors.New("invalid conflict resolution choice")
	ErrRegisterOnServer      = errors.New("registration on server failed")
	ErrLoginOnServer         = errors.New("login on server failed")
)
