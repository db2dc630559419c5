package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source names reported by Load when no file was read.
const (
	SourceEmbedded = "embedded"
	SourceBuiltin  = "builtin"
)

// LocalConfigPath is the project-local configuration file checked by Load.
const LocalConfigPath = "configs/pong.yaml"

// Load loads Pong configuration and reports where it came from.
// Search order: customPath -> ~/.pong/pong.yaml -> ./configs/pong.yaml -> embedded default.
// Keys missing from a file keep their default values.
func Load(customPath string) (PongConfig, string, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, customPath, err
		}
		return cfg, customPath, nil
	}

	if userCfgPath := UserConfigPath(); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil {
			return cfg, userCfgPath, nil
		}
	}

	if cfg, err := loadFile(LocalConfigPath); err == nil {
		return cfg, LocalConfigPath, nil
	}

	cfg, err := Parse(defaultPongYAML)
	if err != nil {
		return DefaultPongConfig(), SourceBuiltin, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

// Parse decodes YAML on top of the built-in defaults and validates the result.
func Parse(data []byte) (PongConfig, error) {
	cfg := DefaultPongConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: cannot parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg PongConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

func loadFile(path string) (PongConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultPongConfig(), fmt.Errorf("config: cannot read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// UserConfigPath returns the per-user config file, or empty if home is unavailable.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pong", "pong.yaml")
}
