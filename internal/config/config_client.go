package config

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the remote store base URL used by the sync daemon.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database settings for the client.
type ClientDB struct {
	// DSN is the SQLite database file path used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// Credentials holds the account the daemon authenticates with.
type Credentials struct {
	Login    string
	Password string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains the client's outbound transport settings.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Sync contains the sync engine tuning knobs.
	Sync Sync
	// Credentials contains the daemon's account login.
	Credentials Credentials
	// LogPath is the daemon log sink; empty means stdout.
	LogPath string
}

// GetClientConfig builds and validates a client-specific config view from
// the merged structured configuration.
//
// A missing device id is generated once here so every change record the
// daemon produces carries a stable identifier for this process lifetime.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	if cfg.Sync.DeviceID == "" {
		cfg.Sync.DeviceID = uuid.NewString()
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.Local.DSN,
			},
		},
		Sync: cfg.Sync,
		Credentials: Credentials{
			Login:    cfg.Client.Login,
			Password: cfg.Client.Password,
		},
		LogPath: cfg.Client.LogPath,
	}

	return clientCfg, clientCfg.validate()
}

func (c *ClientConfig) validate() error {
	if c.Adapter.HTTPAddress == "" || c.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}
	if c.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if c.Sync.BatchSize <= 0 || c.Sync.RetryMaxAttempts <= 0 ||
		c.Sync.RetryBaseDelay <= 0 || c.Sync.RetryMaxDelay < c.Sync.RetryBaseDelay {
		return ErrInvalidSyncConfigs
	}

	return nil
}
