// Package config loads option profiles for the command-line tool from a
// YAML file, so a project can pin its decode and encode defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kevinushey/jsonlite"
)

// Config holds the default decode and encode options applied by the CLI
// before flag overrides.
type Config struct {
	Decode DecodeConfig `yaml:"decode"`
	Encode EncodeConfig `yaml:"encode"`
}

// DecodeConfig mirrors jsonlite.DecodeOptions in YAML form.
type DecodeConfig struct {
	SimplifyVector    bool   `yaml:"simplify_vector"`
	SimplifyDataFrame bool   `yaml:"simplify_dataframe"`
	SimplifyMatrix    bool   `yaml:"simplify_matrix"`
	Flatten           bool   `yaml:"flatten"`
	UnicodeEscapes    bool   `yaml:"unicode_escapes"`
	Validate          bool   `yaml:"validate"`
	MaxDepth          int    `yaml:"max_depth"`
	KeyCase           string `yaml:"key_case"`
}

// EncodeConfig mirrors jsonlite.EncodeOptions in YAML form.
type EncodeConfig struct {
	DataFrame     string `yaml:"dataframe"`
	Matrix        string `yaml:"matrix"`
	Factor        string `yaml:"factor"`
	Temporal      string `yaml:"temporal"`
	Complex       string `yaml:"complex"`
	Raw           string `yaml:"raw"`
	NA            string `yaml:"na"`
	Null          string `yaml:"null"`
	AutoUnbox     bool   `yaml:"auto_unbox"`
	Digits        int    `yaml:"digits"`
	Pretty        bool   `yaml:"pretty"`
	Force         bool   `yaml:"force"`
	EscapeUnicode bool   `yaml:"escape_unicode"`
}

// NewConfig creates a Config carrying the library defaults.
func NewConfig() *Config {
	d := jsonlite.DefaultDecodeOptions()
	e := jsonlite.DefaultEncodeOptions()
	return &Config{
		Decode: DecodeConfig{
			SimplifyVector:    d.SimplifyVector,
			SimplifyDataFrame: d.SimplifyDataFrame,
			SimplifyMatrix:    d.SimplifyMatrix,
			Flatten:           d.Flatten,
			UnicodeEscapes:    d.UnicodeEscapes,
			Validate:          d.Validate,
			MaxDepth:          d.MaxDepth,
			KeyCase:           "none",
		},
		Encode: EncodeConfig{
			DataFrame:     e.DataFrame,
			Matrix:        e.Matrix,
			Factor:        e.Factor,
			Temporal:      e.Temporal,
			Complex:       e.Complex,
			Raw:           e.Raw,
			NA:            e.NA,
			Null:          e.Null,
			AutoUnbox:     e.AutoUnbox,
			Digits:        *e.Digits,
			Pretty:        e.Pretty,
			Force:         e.Force,
			EscapeUnicode: e.EscapeUnicode,
		},
	}
}

// LoadConfig reads a YAML profile, overlaying it on the defaults: keys
// absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// FindConfigFile searches for a profile in the current directory and its
// parents, returning the first match or "".
func FindConfigFile() string {
	configNames := []string{".jsonlite.yml", ".jsonlite.yaml", "jsonlite.yml", "jsonlite.yaml"}

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
			break
		}
		currentDir = parentDir
	}
	return ""
}

// DecodeOptions converts the profile into library decode options.
func (c *Config) DecodeOptions() *jsonlite.DecodeOptions {
	return &jsonlite.DecodeOptions{
		SimplifyVector:    c.Decode.SimplifyVector,
		SimplifyDataFrame: c.Decode.SimplifyDataFrame,
		SimplifyMatrix:    c.Decode.SimplifyMatrix,
		Flatten:           c.Decode.Flatten,
		UnicodeEscapes:    c.Decode.UnicodeEscapes,
		Validate:          c.Decode.Validate,
		MaxDepth:          c.Decode.MaxDepth,
		KeyCase:           c.Decode.KeyCase,
	}
}

// EncodeOptions converts the profile into library encode options.
func (c *Config) EncodeOptions() *jsonlite.EncodeOptions {
	digits := c.Encode.Digits
	return &jsonlite.EncodeOptions{
		DataFrame:     c.Encode.DataFrame,
		Matrix:        c.Encode.Matrix,
		Factor:        c.Encode.Factor,
		Temporal:      c.Encode.Temporal,
		Complex:       c.Encode.Complex,
		Raw:           c.Encode.Raw,
		NA:            c.Encode.NA,
		Null:          c.Encode.Null,
		AutoUnbox:     c.Encode.AutoUnbox,
		Digits:        &digits,
		Pretty:        c.Encode.Pretty,
		Force:         c.Encode.Force,
		EscapeUnicode: c.Encode.EscapeUnicode,
	}
}
