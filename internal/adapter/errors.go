package adapter

import "errors"

// Error taxonomy for remote gateway failures. Every gateway call surfaces
// exactly one of these classes (wrapped with call context) so the retry
// scheduler and the sync coordinator can react without string matching.
var (
	// ErrNetwork is a transient transport failure: timeout, refused
	// connection, DNS. Retryable.
	ErrNetwork = errors.New("network failure")

	// ErrUnauthorized is an authentication failure. Terminal: the cycle
	// aborts and re-authentication is required.
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrValidation means the remote schema rejected a payload. Terminal
	// for the record, not for the batch.
	ErrValidation = errors.New("payload rejected by remote store")

	// ErrConflict is a remote version conflict. Not a failure: a
	// first-class outcome the resolver handles.
	ErrConflict = errors.New("remote version conflict")

	// ErrRateLimited means the remote store asked us to back off.
	// Retryable with delay.
	ErrRateLimited = errors.New("rate limited by remote store")

	// ErrQuotaExceeded means the user's remote storage quota is exhausted.
	// Terminal for the cycle; backoff happens at the cycle level.
	ErrQuotaExceeded = errors.New("remote storage quota exceeded")

	// ErrServer is a 5xx from the remote store. Retryable.
	ErrServer = errors.New("remote server failure")
)

// IsRetryable reports whether err belongs to the transient classes the
// retry scheduler may re-attempt. Everything else is terminal and must
// surface immediately.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrNetwork) ||
		errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrServer)
}
