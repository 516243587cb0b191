package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadOrchestraConfig reads and parses an orchestra.yaml config file at path.
func LoadOrchestraConfig(path string) (OrchestraConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return OrchestraConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg OrchestraConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return OrchestraConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnv loads provider API keys from a .env file at path into the process
// environment. A missing file is not an error: provider keys may already be
// set in the environment.
func LoadEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
