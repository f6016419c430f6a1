package config

import (
	"flag"
	"strings"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server listen address in format [host]:[port]
//	-remote remote store base URL used by the sync daemon
//	-d server database DSN
//	-local client sqlite database path
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-device-id device identifier used in change records
//	-batch-size maximum records per push chunk
//	-sync-interval periodic sync trigger interval
//	-non-mergeable comma-separated entity types that must never auto-merge
//	-strict-invariants panic on invariant violations instead of logging
func ParseFlags() *StructuredConfig {
	var serverAddress string
	var remoteURL string
	var databaseDSN string
	var localDBPath string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var deviceID string
	var batchSize int
	var syncInterval time.Duration
	var nonMergeable string
	var strictInvariants bool

	flag.StringVar(&serverAddress, "a", "", "Server listen address host:port")
	flag.StringVar(&remoteURL, "remote", "", "Remote store base URL")
	flag.StringVar(&databaseDSN, "d", "", "Server database DSN")
	flag.StringVar(&localDBPath, "local", "", "Client sqlite database path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&deviceID, "device-id", "", "Device identifier")
	flag.IntVar(&batchSize, "batch-size", 0, "Maximum records per push chunk")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Periodic sync interval")
	flag.StringVar(&nonMergeable, "non-mergeable", "", "Comma-separated non-mergeable entity types")
	flag.BoolVar(&strictInvariants, "strict-invariants", false, "Panic on invariant violations")

	flag.Parse()

	var nonMergeableTypes []string
	if nonMergeable != "" {
		nonMergeableTypes = strings.Split(nonMergeable, ",")
	}

	return &StructuredConfig{
		Auth: Auth{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Local: Local{
				DSN: localDBPath,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress,
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    remoteURL,
			RequestTimeout: requestTimeout,
		},
		Sync: Sync{
			DeviceID:          deviceID,
			BatchSize:         batchSize,
			Interval:          syncInterval,
			NonMergeableTypes: nonMergeableTypes,
			StrictInvariants:  strictInvariants,
		},
		JSONFilePath: jsonConfigPath,
	}
}
