// Package config handles client configuration loading and management.
package config

import (
	"path/filepath"
	"time"
)

// Config holds all client settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Network  NetworkConfig  `yaml:"network"`
	UI       UIConfig       `yaml:"ui"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// NetworkConfig holds server connection settings.
type NetworkConfig struct {
	LoginServer    string        `yaml:"login_server"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	// LoginInterval is the minimum time between two login attempts.
	LoginInterval time.Duration `yaml:"login_interval"`
}

// UIConfig holds interface preferences.
type UIConfig struct {
	SaveLogin      bool   `yaml:"save_login"`
	DefaultAccount string `yaml:"default_account"`
	KeyLayout      string `yaml:"key_layout"` // "basic" or "alternate"
	KeyBindings    string `yaml:"key_bindings"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	// Components overrides Level per logger name, e.g. {"ui": "debug"}.
	Components map[string]string `yaml:"components,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      800,
			Height:     600,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Network: NetworkConfig{
			LoginServer:    "127.0.0.1:8484",
			ConnectTimeout: 10 * time.Second,
			LoginInterval:  time.Second,
		},
		UI: UIConfig{
			SaveLogin: false,
			KeyLayout: "basic",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// KeyBindingsPath returns where key bindings are persisted.
func (c *Config) KeyBindingsPath() string {
	if c.UI.KeyBindings != "" {
		return c.UI.KeyBindings
	}
	return filepath.Join(ConfigDir(), "keys.yaml")
}
