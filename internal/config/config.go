package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/structconv/internal/errors"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatTagged    = "tagged"
	FormatProtoJSON = "protojson"
)

// Key case styles
const (
	KeyCaseNone       = "none"
	KeyCaseCamel      = "camel"
	KeyCaseLowerCamel = "lower_camel"
	KeyCaseSnake      = "snake"
	KeyCaseKebab      = "kebab"
)

// Config represents the complete configuration for structconv
type Config struct {
	Encode EncodeConfig `yaml:"encode"`
	Decode DecodeConfig `yaml:"decode"`
	Output OutputConfig `yaml:"output"`
	Dev    DevConfig    `yaml:"dev"`
}

// EncodeConfig controls plain -> tagged conversion
type EncodeConfig struct {
	LegacyListKinds bool   `yaml:"legacy_list_kinds"`
	KeyCase         string `yaml:"key_case"`
}

// DecodeConfig controls tagged -> plain conversion
type DecodeConfig struct {
	InferKinds bool   `yaml:"infer_kinds"`
	KeyCase    string `yaml:"key_case"`
}

// OutputConfig controls how results are written
type OutputConfig struct {
	Format string `yaml:"format"`
	Indent bool   `yaml:"indent"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Encode: EncodeConfig{
			LegacyListKinds: false,
			KeyCase:         KeyCaseNone,
		},
		Decode: DecodeConfig{
			InferKinds: false,
			KeyCase:    KeyCaseNone,
		},
		Output: OutputConfig{
			Format: FormatTagged,
			Indent: true,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError("failed to read config file", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("failed to parse config file", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".structconv.yml", ".structconv.yaml", "structconv.yml", "structconv.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate rejects unknown formats and key cases
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatTagged, FormatProtoJSON:
	default:
		return errors.NewConfigError(
			fmt.Sprintf("output format '%s' is not one of %s, %s", c.Output.Format, FormatTagged, FormatProtoJSON),
			errors.ErrUnknownFormat,
		)
	}
	if _, err := KeyTransform(c.Encode.KeyCase); err != nil {
		return err
	}
	if _, err := KeyTransform(c.Decode.KeyCase); err != nil {
		return err
	}
	return nil
}

// KeyTransform returns the strcase function for a key case style.
// It returns nil for "none" or an empty style.
func KeyTransform(style string) (func(string) string, error) {
	switch style {
	case "", KeyCaseNone:
		return nil, nil
	case KeyCaseCamel:
		return strcase.ToCamel, nil
	case KeyCaseLowerCamel:
		return strcase.ToLowerCamel, nil
	case KeyCaseSnake:
		return strcase.ToSnake, nil
	case KeyCaseKebab:
		return strcase.ToKebab, nil
	default:
		return nil, errors.NewConfigError(fmt.Sprintf("key case '%s' is not supported", style), errors.ErrUnknownKeyCase)
	}
}

// Overrides carries CLI flag values. Nil pointers mean the flag was not set.
type Overrides struct {
	Format          string
	Compact         *bool
	LegacyListKinds *bool
	InferKinds      *bool
	KeyCase         string
	Debug           *bool
}

// LoadConfigWithCLI loads config with CLI argument precedence:
// CLI flag > config file > defaults
func LoadConfigWithCLI(configPath string, o Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if o.Format != "" {
		cfg.Output.Format = o.Format
	}
	if o.Compact != nil {
		cfg.Output.Indent = !*o.Compact
	}
	if o.LegacyListKinds != nil {
		cfg.Encode.LegacyListKinds = *o.LegacyListKinds
	}
	if o.InferKinds != nil {
		cfg.Decode.InferKinds = *o.InferKinds
	}
	if o.KeyCase != "" {
		cfg.Encode.KeyCase = o.KeyCase
		cfg.Decode.KeyCase = o.KeyCase
	}
	if o.Debug != nil {
		cfg.Dev.Debug = *o.Debug
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
