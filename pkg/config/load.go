package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	envgenerrors "github.com/goliatone/go-envgen/pkg/errors"
)

// Filename is the name of the saved configuration file inside the project
// root.
const Filename = "config.yml"

// EnvPrefix is the prefix for environment variable overrides, e.g.
// ENVGEN_PROJECT_NAME overrides the PROJECT_NAME key.
const EnvPrefix = "ENVGEN"

// Path returns the configuration file path inside the project root.
func Path(root string) string {
	return filepath.Join(root, Filename)
}

// Load reads the saved configuration from the project root, applies defaults
// for missing keys and environment variable overrides for present ones. A
// missing file is not an error: defaults alone are returned.
//
// The on-disk file stores lower_snake keys; Load exposes them in the
// UPPER_SNAKE form templates use.
func Load(root string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(Path(root))
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	for key, value := range Defaults() {
		v.SetDefault(strings.ToLower(key), value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, envgenerrors.Wrap(err, "Could not read configuration at "+Path(root))
		}
	}

	cfg := Config{}
	for _, key := range v.AllKeys() {
		cfg[strings.ToUpper(key)] = v.Get(key)
	}
	return cfg, nil
}

// Save writes the configuration to config.yml inside the project root,
// creating the directory if needed. Keys are stored lower_snake so the file
// reads like ordinary YAML configuration.
func Save(root string, cfg Config) error {
	stored := make(map[string]any, len(cfg))
	for key, value := range cfg {
		stored[strings.ToLower(key)] = value
	}

	raw, err := yaml.Marshal(stored)
	if err != nil {
		return envgenerrors.Wrap(err, "Could not serialize configuration")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return envgenerrors.Wrap(err, "Could not create project root "+root)
	}
	if err := os.WriteFile(Path(root), raw, 0o644); err != nil {
		return envgenerrors.Wrap(err, "Could not write configuration to "+Path(root))
	}
	return nil
}
