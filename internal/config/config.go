package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the global ~/.slackmirror/config.toml.
type Config struct {
	DefaultWorkspace string `toml:"default_workspace"`
	Token            string `toml:"token"`
	APIBase          string `toml:"api_base"`

	// Heartbeat settings. A zero PingIntervalSecs disables the
	// heartbeat loop; a zero PongTimeoutSecs disables the liveness
	// check while still sending probes.
	PingIntervalSecs int  `toml:"ping_interval_secs"`
	PongTimeoutSecs  int  `toml:"pong_timeout_secs"`
	Reconnect        bool `toml:"reconnect"`
}

// DefaultAPIBase is the workspace API endpoint used when api_base is unset.
const DefaultAPIBase = "https://slack.com/api/"

// PingInterval returns the heartbeat interval as a duration.
func (c *Config) PingInterval() time.Duration {
	return time.Duration(c.PingIntervalSecs) * time.Second
}

// PongTimeout returns the liveness timeout as a duration.
func (c *Config) PongTimeout() time.Duration {
	return time.Duration(c.PongTimeoutSecs) * time.Second
}

// Validate checks that the config can drive a connection attempt.
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("config: token is required")
	}
	return nil
}

// Load reads config from the given path. Returns zero config and error if file missing.
func Load(path string) (*Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, err
	}
	if cfg.APIBase == "" {
		cfg.APIBase = DefaultAPIBase
	}
	return &cfg, nil
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
