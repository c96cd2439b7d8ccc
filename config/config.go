// Package config loads the YAML configuration of the style engine,
// and turns it into the options used to style documents.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	EngineConfig struct {
		Medium              string   `yaml:"medium" validate:"required"`
		DefaultFontSize     float64  `yaml:"default_font_size" validate:"gt=0"`
		PresentationalHints bool     `yaml:"presentational_hints"`
		UserAgentStylesheet string   `yaml:"user_agent_stylesheet" sanitize:"assure_file_access"`
		UserStylesheets     []string `yaml:"user_stylesheets" validate:"dive,required"`
		Metrics             string   `yaml:"metrics" validate:"oneof=approximate builtin file"`
		FontFile            string   `yaml:"font_file" sanitize:"assure_file_access" validate:"required_if=Metrics file"`
	}

	Config struct {
		Version int           `yaml:"version" validate:"eq=1"`
		Engine  EngineConfig  `yaml:"engine"`
		Logging LoggingConfig `yaml:"logging"`
	}
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// unknown fields are errors
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at `path`,
// on top of the defaults of the expanded template, and validates it.
// An empty path returns the defaults.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare expands the configuration template, to be used as
// a starting point by users.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
