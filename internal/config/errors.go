package config

import "errors"

// Validation errors returned by the client and server config projections
// when required configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid client gateway settings
	// (for example, missing remote URL or non-positive request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAuthConfigs indicates invalid token settings required by the
	// server (for example, missing sign key).
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidSyncConfigs indicates invalid sync engine settings
	// (for example, zero batch size or retry attempts).
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
)
