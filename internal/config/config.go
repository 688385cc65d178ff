// Package config loads CLI and server settings from an optional YAML file
// and PARLEY_* environment variables.
package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix marks environment variables read by Load.
const EnvPrefix = "PARLEY_"

// Config holds every tunable of the parley binary.
type Config struct {
	LogLevel   string        `mapstructure:"log_level" yaml:"log_level"`
	Addr       string        `mapstructure:"addr" yaml:"addr"`
	TreesDir   string        `mapstructure:"trees_dir" yaml:"trees_dir"`
	SessionDir string        `mapstructure:"session_dir" yaml:"session_dir"`
	RedisURL   string        `mapstructure:"redis_url" yaml:"redis_url"`
	SessionTTL time.Duration `mapstructure:"session_ttl" yaml:"session_ttl"`
	Metrics    bool          `mapstructure:"metrics" yaml:"metrics"`

	// EncryptionKey is a hex encoded AES-256 key. Empty disables session encryption.
	EncryptionKey string `mapstructure:"encryption_key" yaml:"encryption_key"`
	// MaskVariables are regular expressions; matching context variables are masked before persistence.
	MaskVariables []string `mapstructure:"mask_variables" yaml:"mask_variables"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		LogLevel:   "info",
		Addr:       ":8080",
		TreesDir:   "trees",
		SessionDir: ".parley/sessions",
		Metrics:    true,
	}
}

// Load merges the YAML file at path (skipped when empty) and then environ
// (os.Environ format) over Default.
func Load(path string, environ []string) (Config, error) {
	raw := make(map[string]any)

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		raw[strings.ToLower(strings.TrimPrefix(key, EnvPrefix))] = value
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      false,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return Config{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// EncryptionKeyBytes decodes EncryptionKey. It returns nil when encryption is off.
func (c Config) EncryptionKeyBytes() ([]byte, error) {
	if c.EncryptionKey == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(c.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("encryption_key must be hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("encryption_key must decode to 32 bytes, got %d", len(key))
	}
	return key, nil
}
