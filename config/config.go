// Package config holds the exporter's run options, loadable from an
// optional YAML file with flag overrides applied by the caller.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	FormatMammoth = "mammoth"
	FormatGLTF    = "gltf"
)

type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

type OutputConfig struct {
	// FormatMammoth or FormatGLTF.
	Format      string `yaml:"format"`
	PrettyPrint bool   `yaml:"pretty_print"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format:      FormatMammoth,
			PrettyPrint: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a config file over the defaults. A missing file is not an
// error; the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "Failed to read config %q", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "Failed to parse config %q", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatMammoth, FormatGLTF:
	default:
		return errors.Errorf("Unknown output format %q", c.Output.Format)
	}
	return nil
}
