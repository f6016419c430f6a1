package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations for file-based configuration.
type StructuredJSONConfig struct {
	Auth struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Local struct {
			DSN string `json:"path"`
		} `json:"local,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"remote_url"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Sync struct {
		DeviceID          string   `json:"device_id"`
		BatchSize         int      `json:"batch_size"`
		Interval          Duration `json:"interval"`
		ProbeInterval     Duration `json:"probe_interval"`
		RetryBaseDelay    Duration `json:"retry_base_delay"`
		RetryMaxDelay     Duration `json:"retry_max_delay"`
		RetryMaxAttempts  int      `json:"retry_max_attempts"`
		NonMergeableTypes []string `json:"non_mergeable_types"`
		StrictInvariants  bool     `json:"strict_invariants"`
	} `json:"sync,omitempty"`

	Client struct {
		Login   string `json:"login"`
		LogPath string `json:"log_path"`
	} `json:"client,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Auth: Auth{
			TokenSignKey:  jsonCfg.Auth.TokenSignKey,
			TokenIssuer:   jsonCfg.Auth.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.Auth.TokenDuration),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Local: Local{
				DSN: jsonCfg.Storage.Local.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Sync: Sync{
			DeviceID:          jsonCfg.Sync.DeviceID,
			BatchSize:         jsonCfg.Sync.BatchSize,
			Interval:          time.Duration(jsonCfg.Sync.Interval),
			ProbeInterval:     time.Duration(jsonCfg.Sync.ProbeInterval),
			RetryBaseDelay:    time.Duration(jsonCfg.Sync.RetryBaseDelay),
			RetryMaxDelay:     time.Duration(jsonCfg.Sync.RetryMaxDelay),
			RetryMaxAttempts:  jsonCfg.Sync.RetryMaxAttempts,
			NonMergeableTypes: jsonCfg.Sync.NonMergeableTypes,
			StrictInvariants:  jsonCfg.Sync.StrictInvariants,
		},
		Client: Client{
			Login:   jsonCfg.Client.Login,
			LogPath: jsonCfg.Client.LogPath,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
