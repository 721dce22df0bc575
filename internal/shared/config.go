package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Spotify SpotifyConfig `toml:"spotify"`
	Sync    SyncConfig    `toml:"sync"`
	Network NetworkConfig `toml:"network"`
}

// SpotifyConfig contains Spotify API credentials.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// SyncConfig contains sheet output and target list settings.
type SyncConfig struct {
	DataDir     string `toml:"data_dir"`
	TargetsFile string `toml:"targets_file"`
}

// NetworkConfig tunes the Spotify HTTP client.
type NetworkConfig struct {
	TimeoutSeconds int     `toml:"timeout_seconds"`
	RateLimit      float64 `toml:"rate_limit"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overlays credentials from the environment onto the config.
// Set variables win over file values.
func (c *Config) ApplyEnv() {
	if id := os.Getenv(EnvClientID); id != "" {
		c.Spotify.ClientID = id
	}
	if secret := os.Getenv(EnvClientSecret); secret != "" {
		c.Spotify.ClientSecret = secret
	}
}

// HasCredentials reports whether both Spotify credentials are present.
func (c *Config) HasCredentials() bool {
	return c.Spotify.ClientID != "" && c.Spotify.ClientSecret != ""
}

// Timeout returns the per-request timeout for Spotify API calls.
func (c *Config) Timeout() time.Duration {
	if c.Network.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Network.TimeoutSeconds) * time.Second
}
