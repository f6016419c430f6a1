package config

import "fmt"

// ServerConfig is the top-level server configuration assembled from
// [StructuredConfig].
type ServerConfig struct {
	// Auth contains JWT token settings.
	Auth Auth
	// Server contains listen address and timeouts.
	Server Server
	// Storage contains the Postgres connection settings.
	Storage Storage
}

// GetServerConfig builds and validates a server-specific config view from
// the merged structured configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		Auth:    cfg.Auth,
		Server:  cfg.Server,
		Storage: cfg.Storage,
	}

	return serverCfg, serverCfg.validate()
}

func (c *ServerConfig) validate() error {
	if c.Server.HTTPAddress == "" || c.Server.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}
	if c.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if c.Auth.TokenSignKey == "" || c.Auth.TokenIssuer == "" || c.Auth.TokenDuration <= 0 {
		return ErrInvalidAuthConfigs
	}

	return nil
}
