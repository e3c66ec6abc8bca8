// Package config loads server and client configuration via viper, with
// YAML files, OONO_-prefixed environment overrides, and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the server configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Game    GameConfig    `mapstructure:"game"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type GameConfig struct {
	// WinCleanupDelaySec is how long a finished game stays visible so
	// late pollers can observe the win before removal.
	WinCleanupDelaySec int `mapstructure:"win_cleanup_delay_sec"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "text"
}

// Addr returns the listen address in host:port form.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// WinCleanupDelay returns the cleanup delay as a duration.
func (c GameConfig) WinCleanupDelay() time.Duration {
	return time.Duration(c.WinCleanupDelaySec) * time.Second
}

// Load reads the server config from path (optional; missing file is
// fine, defaults and env apply).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("game.win_cleanup_delay_sec", 60)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetEnvPrefix("OONO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, statErr := os.Stat(path); statErr == nil {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ClientConfig is the TUI client's local state: the last-used server
// URL, persisted between runs, and the update poll interval.
type ClientConfig struct {
	ServerURL      string `mapstructure:"server_url"`
	PollIntervalMs int    `mapstructure:"poll_interval_ms"`
	path           string
}

// PollInterval returns the poll interval as a duration.
func (c *ClientConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// LoadClient reads the client config from ~/.oono/client.yaml,
// creating defaults in memory when absent.
func LoadClient() (*ClientConfig, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return loadClientFrom(filepath.Join(home, ".oono", "client.yaml"))
}

func loadClientFrom(path string) (*ClientConfig, error) {
	v := viper.New()
	v.SetDefault("server_url", "http://localhost:8000")
	v.SetDefault("poll_interval_ms", 500)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, err
		}
	}

	var cfg ClientConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.path = path
	return &cfg, nil
}

// SaveServerURL persists the last-used server URL so the next run
// reconnects to the same server.
func (c *ClientConfig) SaveServerURL(url string) error {
	c.ServerURL = url
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	v := viper.New()
	v.Set("server_url", c.ServerURL)
	v.Set("poll_interval_ms", c.PollIntervalMs)
	return v.WriteConfigAs(c.path)
}
