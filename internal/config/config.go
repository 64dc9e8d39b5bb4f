package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AlignConfig tunes the alignment computation.
type AlignConfig struct {
	// Normalize controls row-normalization of the training matrices before
	// the SVD. Defaults to true; nil means unset.
	Normalize *bool `yaml:"normalize,omitempty"`
	// NoiseScale scales the perturbation applied to inserted OOV vectors,
	// relative to the anchor's norm.
	NoiseScale float64 `yaml:"noise_scale"`
}

// CacheConfig configures the on-disk snapshot cache for loaded spaces.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Align AlignConfig `yaml:"align"`
	Cache CacheConfig `yaml:"cache"`
}

// NormalizeVectors reports the normalization setting, defaulting to true.
func (c *AppConfig) NormalizeVectors() bool {
	if c.Align.Normalize == nil {
		return true
	}
	return *c.Align.Normalize
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig()
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := applyConfigDefaults(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault tries ./vecalign.yaml first, then ~/.config/vecalign/config.yaml.
// If neither exists, it writes defaults to ~/.config/vecalign/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "vecalign.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg, err := defaultConfig()
	if err != nil {
		return nil, "", err
	}
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "vecalign", "config.yaml"), nil
}

func defaultConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := applyConfigDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyConfigDefaults(cfg *AppConfig) error {
	if cfg.Align.NoiseScale == 0 {
		cfg.Align.NoiseScale = 0.02
	}
	if cfg.Cache.Dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		cfg.Cache.Dir = filepath.Join(home, ".cache", "vecalign")
	}
	return nil
}
