package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Save writes the config to the given path. Fails if a file already
// exists there, so `dex init` cannot clobber a tuned config.
func (c *Config) Save(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
