// Package config loads catalogjson settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/ukaji3/catalogjson-go/pkg/catalog"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvInput  = "CATALOGJSON_INPUT"
	EnvOutput = "CATALOGJSON_OUTPUT"
)

// Config holds every setting of a conversion run. Row numbers are 1-based.
type Config struct {
	Input            string `yaml:"input"`
	Output           string `yaml:"output"`
	Strategy         string `yaml:"strategy"`
	HeaderRow        int    `yaml:"header_row"`
	DataStartRow     int    `yaml:"data_start_row"`
	SkipRows         int    `yaml:"skip_rows"`
	SourceRowNumbers bool   `yaml:"source_row_numbers"`
	Pretty           bool   `yaml:"pretty"`
	Verify           bool   `yaml:"verify"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Output:       catalog.DefaultOutputPath,
		Strategy:     string(catalog.StrategyOffset),
		HeaderRow:    catalog.DefaultHeaderRow,
		DataStartRow: catalog.DefaultDataStartRow,
		SkipRows:     catalog.DefaultSkipRows,
		Pretty:       true,
		Verify:       true,
	}
}

// Load returns the defaults overlaid with the YAML file at path.
// An empty path returns the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv loads envFile into the process environment when it exists and
// then overlays CATALOGJSON_INPUT and CATALOGJSON_OUTPUT. Variables already
// set in the environment take precedence over the file.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	if v := os.Getenv(EnvInput); v != "" {
		c.Input = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output = v
	}
	return nil
}

// Options converts the settings into extraction options.
func (c Config) Options() (catalog.Options, error) {
	strategy, err := catalog.ParseStrategy(c.Strategy)
	if err != nil {
		return catalog.Options{}, err
	}
	opts := catalog.Options{
		Strategy:         strategy,
		HeaderRow:        c.HeaderRow,
		DataStartRow:     c.DataStartRow,
		SkipRows:         c.SkipRows,
		SourceRowNumbers: c.SourceRowNumbers,
	}
	if _, err := opts.Layout(); err != nil {
		return catalog.Options{}, err
	}
	return opts, nil
}
