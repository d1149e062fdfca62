package lint

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tablint/tablint/internal/format"
	tt "github.com/tablint/tablint/internal/types"
)

// DefaultConfigFile is looked up in the working directory when no explicit
// configuration path is given.
const DefaultConfigFile = ".tablint.yaml"

// Config is the on-disk configuration: per-rule settings plus the
// formatter knobs.
type Config struct {
	Name   string                   `yaml:"name"`
	Rules  map[string]tt.ConfigRule `yaml:"rules"`
	Format format.Config            `yaml:"format"`
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() Config {
	return Config{
		Name:   "tablint",
		Rules:  map[string]tt.ConfigRule{},
		Format: format.DefaultConfig(),
	}
}

// LoadConfig reads the configuration file at path. An empty path tries
// DefaultConfigFile and falls back to the defaults when it does not
// exist; an explicit path that cannot be read is an error.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	f, err := os.Open(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return config, nil
		}
		return config, fmt.Errorf("opening config %s: %w", path, err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil {
		return config, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if config.Rules == nil {
		config.Rules = map[string]tt.ConfigRule{}
	}
	return config, nil
}
