package commons

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.yaml.in/yaml/v3"

	"vetstore/internal/config"
)

// LoadConfig overlays the YAML file at path, when it exists, on the built-in
// defaults. Environment variables take precedence over both.
func LoadConfig(path string) (*config.Config, error) {
	base := config.Defaults()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, base); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg, err := config.Load(base)
	if err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	return cfg, nil
}
