package store

import "errors"

var (
	// ErrEntityNotFound is returned when a queried entity does not exist in
	// the local store.
	ErrEntityNotFound = errors.New("entity not found")

	// ErrUserNotFound is returned when a login lookup matches no account.
	ErrUserNotFound = errors.New("user not found")

	// ErrLoginAlreadyExists is returned when registration collides with an
	// existing login.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrTransientStorage wraps database failures the Postgres error
	// classifier marks retryable. Handlers map it to 503 so clients know
	// re-sending the chunk is safe.
	ErrTransientStorage = errors.New("transient storage failure")

	// ErrCursorRegression is an invariant violation: Advance was called with
	// a timestamp older than the stored watermark. It indicates a logic bug
	// upstream, not a recoverable runtime condition; the cursor is never
	// mutated when this error is returned.
	ErrCursorRegression = errors.New("sync cursor regression")
)
