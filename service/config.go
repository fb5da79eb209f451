// Package service wires the calldata guesser library into a long-lived
// HTTP process: config loading, transport, auth, caching, persistent
// history, and periodic maintenance.
package service

import (
	"fmt"
	"os"

	sdklogging "github.com/Layr-Labs/eigensdk-go/logging"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v2"
)

// Config is the full process configuration, parsed from a YAML file
// and layered with environment overrides.
type Config struct {
	HttpBindAddress string         `yaml:"http_bind_address" mapstructure:"http_bind_address"`
	Environment     sdklogging.LogLevel `yaml:"environment" mapstructure:"environment"`
	JwtSecret       string         `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	HistoryDbPath   string         `yaml:"history_db_path" mapstructure:"history_db_path"`
	CacheSizeMB     int            `yaml:"cache_size_mb" mapstructure:"cache_size_mb"`
	EvictionCron    string         `yaml:"eviction_cron" mapstructure:"eviction_cron"`
	HistoryRetentionHours int      `yaml:"history_retention_hours" mapstructure:"history_retention_hours"`
}

// DefaultConfig is used whenever a field is left unset by the config
// file or an env override.
func DefaultConfig() Config {
	return Config{
		HttpBindAddress: "0.0.0.0:8080",
		Environment:     sdklogging.Production,
		HistoryDbPath:   "./data/history",
		CacheSizeMB:     64,
		EvictionCron:    "0 * * * *",
		HistoryRetentionHours: 24 * 30,
	}
}

// LoadConfig reads configPath as YAML into a generic map, uses
// mapstructure to populate a Config on top of DefaultConfig's values,
// then applies env overrides to the typed Config.
func LoadConfig(configPath string) (Config, error) {
	cfg := DefaultConfig()
	if configPath == "" {
		applyEnvOverrides(&cfg)
		return cfg, nil
	}

	raw, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %q: %w", configPath, err)
	}

	var parsed map[string]interface{}
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return Config{}, fmt.Errorf("parsing config file %q: %w", configPath, err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "mapstructure",
		Result:  &cfg,
	})
	if err != nil {
		return Config{}, fmt.Errorf("building config decoder: %w", err)
	}
	if err := decoder.Decode(parsed); err != nil {
		return Config{}, fmt.Errorf("decoding config file %q: %w", configPath, err)
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

// applyEnvOverrides lets a few operational knobs be set without
// touching the config file on disk.
func applyEnvOverrides(cfg *Config) {
	if addr := os.Getenv("CALLDATA_GUESSER_HTTP_BIND_ADDRESS"); addr != "" {
		cfg.HttpBindAddress = addr
	}
	if secret := os.Getenv("CALLDATA_GUESSER_JWT_SECRET"); secret != "" {
		cfg.JwtSecret = secret
	}
}
