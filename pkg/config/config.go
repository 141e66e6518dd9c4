package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/pseudomuto/sqlformat/pkg/consts"
	"github.com/pseudomuto/sqlformat/pkg/format"
)

type (
	// Format holds the formatting settings of a config file. Unset values
	// fall back to the defaults in format.Defaults.
	Format struct {
		// Indent is the number of spaces per indentation level
		Indent int `yaml:"indent,omitempty"`

		// UppercaseKeywords selects upper-cased keywords; lower-cased when
		// explicitly false
		UppercaseKeywords *bool `yaml:"uppercase_keywords,omitempty"`

		// AlignColumns toggles column alignment in CREATE TABLE definitions
		AlignColumns *bool `yaml:"align_columns,omitempty"`
	}

	// Config represents a project's .sqlformat.yaml configuration.
	Config struct {
		// Format contains the formatting settings
		Format Format `yaml:"format"`
	}
)

// LoadConfig parses configuration from the provided io.Reader. The data
// is YAML; missing settings keep their defaults.
//
// Example:
//
//	yamlData := `
//	format:
//	  indent: 2
//	  uppercase_keywords: false
//	`
//
//	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
//	if err != nil {
//		panic(err)
//	}
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &Config{}, nil
		}
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	return &cfg, nil
}

// LoadConfigFile loads configuration from the specified file path. This
// is a convenience function that opens the file and calls LoadConfig.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// Options resolves the configured settings into format.Options, applying
// defaults for anything unset.
func (c *Config) Options() format.Options {
	opts := format.Defaults
	if c.Format.Indent > 0 {
		opts.IndentSize = c.Format.Indent
	} else {
		opts.IndentSize = consts.DefaultIndent
	}
	if c.Format.UppercaseKeywords != nil {
		opts.UppercaseKeywords = *c.Format.UppercaseKeywords
	}
	if c.Format.AlignColumns != nil {
		opts.AlignColumns = *c.Format.AlignColumns
	}

	return opts
}
