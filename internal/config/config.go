package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.vortexrc, $XDG_CONFIG_HOME/vortex/config.toml, ~/.config/vortex/config.toml
func Load() (*Config, error) {
	path := FindConfigFile()
	if path == "" {
		cfg := Default()
		applyEnvOverrides(cfg)
		return cfg, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, err
	}
	if !md.IsDefined("player", "refresh_rate") {
		cfg.Player.RefreshRate = Default().Player.RefreshRate
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// FindConfigFile returns the first existing config file path, or "" if none exists.
func FindConfigFile() string {
	for _, p := range candidatePaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// DefaultPath returns the path used when creating a new config file.
func DefaultPath() string {
	paths := candidatePaths()
	if len(paths) == 0 {
		return ".vortexrc"
	}
	return paths[0]
}

func candidatePaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	paths := []string{
		filepath.Join(home, ".vortexrc"),
	}

	// XDG_CONFIG_HOME or default
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	return append(paths, filepath.Join(xdgConfig, "vortex", "config.toml"))
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Server
	if v := os.Getenv("VORTEX_SERVER_URL"); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := os.Getenv("VORTEX_SERVER_TIMEOUT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Server.Timeout = i
		}
	}

	// Player
	if v := os.Getenv("VORTEX_REFRESH_RATE"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Player.RefreshRate = i
		}
	}

	// TUI
	if v := os.Getenv("VORTEX_TUI_THEME"); v != "" {
		cfg.TUI.Theme = v
	}

	// Watch
	if v := os.Getenv("VORTEX_MQTT_BROKER"); v != "" {
		cfg.Watch.MQTT.Broker = v
	}

	// Log
	if v := os.Getenv("VORTEX_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("VORTEX_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

// RefreshInterval returns the poll interval. Zero means manual refresh only.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Player.RefreshRate) * time.Millisecond
}

// RequestTimeout returns the HTTP client timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.Timeout) * time.Second
}

// EmojiEnabled reports whether watch output uses emoji.
func (c *WatchConfig) EmojiEnabled() bool {
	return c.Emoji == nil || *c.Emoji
}
