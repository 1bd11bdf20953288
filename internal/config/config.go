// Package config loads configuration for the ads scripting tool.
//
// Configuration lives in a single TOML file, by default
// $XDG_CONFIG_HOME/ads/ads.toml (via os.UserConfigDir), overridable with
// the ADS_CONFIG environment variable. A missing file is not an error;
// defaults apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// EnvConfigPath overrides the config file location when set.
const EnvConfigPath = "ADS_CONFIG"

// Config is the full ads configuration.
type Config struct {
	Transport Transport `toml:"transport"`
	Script    Script    `toml:"script"`
}

// Transport locates the editor's 9p service.
type Transport struct {
	// Service is the 9p service name registered by the editor.
	Service string `toml:"service"`

	// Namespace overrides the plan9 namespace directory holding the
	// service socket. Empty means the environment's namespace.
	Namespace string `toml:"namespace"`
}

// Script configures the Lua host.
type Script struct {
	// Profile is a Lua file sourced before any script runs. Empty means
	// the default location; set it to "none" to disable sourcing.
	Profile string `toml:"profile"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Transport: Transport{Service: "ad"},
		Script:    Script{Profile: defaultProfilePath()},
	}
}

// DefaultPath returns the config file location implied by the environment.
func DefaultPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ads", "ads.toml")
}

func defaultProfilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ads", "init.lua")
}

// Load reads configuration from path, layered over the defaults. A missing
// file yields the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}
