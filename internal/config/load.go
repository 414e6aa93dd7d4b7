package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

const fileName = "config.yaml"

// Load builds the configuration: defaults, then the config file, then the
// flags. It returns the path the file was read from, or "" when none exists.
func Load(f *Flags) (*Config, string, error) {
	cfg := Default()

	path := ""
	if f != nil {
		path = f.ConfigPath
	}
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, "", fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	f.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// Validate reports settings the client cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("graphics: negative fps_limit %d", c.Graphics.FPSLimit))
	}
	if _, _, err := net.SplitHostPort(c.Network.LoginServer); err != nil {
		errs = append(errs, fmt.Errorf("network: login_server %q: %w", c.Network.LoginServer, err))
	}
	if c.Network.ConnectTimeout <= 0 {
		errs = append(errs, errors.New("network: connect_timeout must be positive"))
	}
	if c.Network.LoginInterval < 0 {
		errs = append(errs, errors.New("network: login_interval must not be negative"))
	}
	switch c.UI.KeyLayout {
	case "", "basic", "alternate":
	default:
		errs = append(errs, fmt.Errorf("ui: unknown key_layout %q", c.UI.KeyLayout))
	}
	return errors.Join(errs...)
}

func findConfigFile() string {
	for _, path := range []string{
		fileName,
		filepath.Join(ConfigDir(), fileName),
	} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user directory for the client's files.
func ConfigDir() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "MidgardUI")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "MidgardUI")
		}
		return filepath.Join(home, "AppData", "Roaming", "MidgardUI")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "midgard-ui")
	}
	return filepath.Join(home, ".config", "midgard-ui")
}

// loadFromFile merges the YAML file at path into cfg. Keys missing from the
// file keep their current value.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing yaml: %w", err)
	}
	return nil
}
