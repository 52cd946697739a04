package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// loadFile overlays the YAML file at path onto cfg. Keys missing from the
// file keep their current value; passwords are never read from it.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("unable to unmarshal %s: %w", path, err)
	}
	return nil
}
