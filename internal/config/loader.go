package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const strike5File = "strike5.yaml"

// LoadStrike5 loads the game configuration.
// Search order: customPath -> ~/.strike5/configs/strike5.yaml -> ./configs/strike5.yaml -> embedded default
//
// Fields missing from a file keep their default values. An explicit
// customPath that cannot be read or parsed is an error; the other locations
// are skipped when absent or broken.
func LoadStrike5(customPath string) (Strike5Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Strike5Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseStrike5(data)
		if err != nil {
			return Strike5Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(strike5File), filepath.Join("configs", strike5File)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseStrike5(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseStrike5(defaultStrike5YAML)
	if err != nil {
		return DefaultStrike5Config(), nil
	}
	return cfg, nil
}

// parseStrike5 decodes YAML over the defaults and validates the result.
func parseStrike5(data []byte) (Strike5Config, error) {
	cfg := DefaultStrike5Config()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Strike5Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Strike5Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".strike5", "configs", filename)
}
