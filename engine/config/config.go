package config

import (
	"errors"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// External tunes the external texture subsystem. Only read before
// capability negotiation; changing it afterwards has no effect on the
// negotiated state.
type External struct {
	// ForceLinear pins the import tiling to LINEAR regardless of what
	// the driver reports. Escape hatch for tiling bugs beyond the
	// built-in vendor workarounds.
	ForceLinear bool `toml:"force_linear"`
	// DisableSharedContext keeps old contexts on the low-capability
	// path instead of bootstrapping a shared 4.2 context.
	DisableSharedContext bool `toml:"disable_shared_context"`
}

type Config struct {
	AppName  string   `toml:"app_name"`
	LogLevel string   `toml:"log_level"`
	External External `toml:"external"`
}

func Default() *Config {
	return &Config{
		AppName:  "glowpaper",
		LogLevel: "info",
	}
}

// Load reads a TOML config file. A missing file is not an error: the
// defaults are returned so the engine runs unconfigured.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
