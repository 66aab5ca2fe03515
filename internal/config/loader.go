package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Load loads the simulation configuration.
// Search order: customPath -> ~/.griddefense/config.yaml -> ./configs/config.yaml -> embedded default.
// Values missing from a file keep their defaults.
func Load(customPath string) (Config, error) {
	cfg := Default()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, cfg.Validate()
			}
			cfg = Default()
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "config.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, cfg.Validate()
		}
		cfg = Default()
	}

	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

// Validate reports configuration values the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Grid.Cols < 3 || c.Grid.Rows < 3 {
		errs = append(errs, fmt.Errorf("grid must be at least 3x3, got %dx%d", c.Grid.Cols, c.Grid.Rows))
	}
	if c.Grid.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("cell_size must be positive, got %v", c.Grid.CellSize))
	}
	if c.Waves.BatchSize < 0 {
		errs = append(errs, fmt.Errorf("batch_size must not be negative, got %d", c.Waves.BatchSize))
	}
	if c.Waves.MaxInvaderLevel < 1 {
		errs = append(errs, fmt.Errorf("max_invader_level must be at least 1, got %d", c.Waves.MaxInvaderLevel))
	}
	if c.Sim.MaxDeltaTime <= 0 {
		errs = append(errs, fmt.Errorf("max_delta_time must be positive, got %v", c.Sim.MaxDeltaTime))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".griddefense", filename)
}
