// SPDX-License-Identifier: MIT
// File: config.go
// Role: run configuration (TOML file + CHEMNET_* environment overrides).

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. CHEMNET_OUTPUT_FORMAT.
const EnvPrefix = "CHEMNET"

// ErrInvalid classifies validation failures returned by Validate.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the complete run configuration.
type Config struct {
	Title          string          `mapstructure:"title" toml:"title"`
	Orient         bool            `mapstructure:"orient" toml:"orient"`
	UnitConversion float64         `mapstructure:"unit_conversion" toml:"unit_conversion" validate:"ne=0"`
	Tolerance      float64         `mapstructure:"tolerance" toml:"tolerance" validate:"gte=0"`
	Ignored        []string        `mapstructure:"ignored" toml:"ignored" validate:"dive,required"`
	Condense       []CondenseGroup `mapstructure:"condense" toml:"condense,omitempty" validate:"dive"`
	CondensePgrp   bool            `mapstructure:"condense_pgrp" toml:"condense_pgrp"`
	Workers        int             `mapstructure:"workers" toml:"workers" validate:"gte=1,lte=256"`
	Rank           bool            `mapstructure:"rank" toml:"rank"`

	Cases   []Case        `mapstructure:"cases" toml:"cases" validate:"dive"`
	Output  OutputConfig  `mapstructure:"output" toml:"output"`
	Log     LogConfig     `mapstructure:"log" toml:"log"`
	HTTP    HTTPConfig    `mapstructure:"http" toml:"http"`
	Metrics MetricsConfig `mapstructure:"metrics" toml:"metrics"`
}

// CondenseGroup remaps Members onto ID. Groups are a TOML array of tables
// ([[condense]]) rather than a table keyed by group id, since viper folds
// map keys to lower case and material ids are case sensitive.
type CondenseGroup struct {
	ID      string   `mapstructure:"id" toml:"id" validate:"required"`
	Members []string `mapstructure:"members" toml:"members" validate:"required,min=1,dive,required"`
}

// Case is one scenario input file.
type Case struct {
	ID   string `mapstructure:"id" toml:"id" validate:"required"`
	Desc string `mapstructure:"desc" toml:"desc"`
	Path string `mapstructure:"path" toml:"path" validate:"required"`
}

// OutputConfig selects where and how the graph is written.
type OutputConfig struct {
	Path        string `mapstructure:"path" toml:"path"`
	Format      string `mapstructure:"format" toml:"format" validate:"oneof=json msgpack xlsx"`
	Compression string `mapstructure:"compression" toml:"compression" validate:"oneof=none gzip zstd"`
	Pretty      bool   `mapstructure:"pretty" toml:"pretty"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level" toml:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" toml:"format" validate:"oneof=json text"`
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Addr string `mapstructure:"addr" toml:"addr" validate:"required"`
	Mode string `mapstructure:"mode" toml:"mode" validate:"oneof=debug release test"`
}

// MetricsConfig configures metric export. An empty Textfile disables the dump.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile" toml:"textfile"`
}

// Default returns the configuration used when a key is set nowhere else.
func Default() *Config {
	return &Config{
		UnitConversion: 1,
		Tolerance:      1e-6,
		Workers:        4,
		Output: OutputConfig{
			Path:        "chemnetwork.json",
			Format:      "json",
			Compression: "none",
			Pretty:      true,
		},
		Log:  LogConfig{Level: "info", Format: "json"},
		HTTP: HTTPConfig{Addr: ":8080", Mode: "release"},
	}
}

// Load reads path (TOML, or any format viper recognizes by extension) over
// Default(), applies CHEMNET_* environment overrides and validates the
// result. An empty path means defaults and environment only. Relative case
// paths are resolved against the directory of the config file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if path != "" {
		dir := filepath.Dir(path)
		for i := range cfg.Cases {
			if p := cfg.Cases[i].Path; p != "" && !filepath.IsAbs(p) {
				cfg.Cases[i].Path = filepath.Join(dir, p)
			}
		}
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

var validate = validator.New()

// Validate checks struct constraints and duplicate case and group ids.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	groups := make(map[string]bool, len(cfg.Condense))
	for _, g := range cfg.Condense {
		if groups[g.ID] {
			return fmt.Errorf("%w: duplicate condense group %q", ErrInvalid, g.ID)
		}
		groups[g.ID] = true
	}
	seen := make(map[string]bool, len(cfg.Cases))
	for _, c := range cfg.Cases {
		if seen[c.ID] {
			return fmt.Errorf("%w: duplicate case id %q", ErrInvalid, c.ID)
		}
		seen[c.ID] = true
	}

	return nil
}

// CondenseMap returns the condensation groups keyed by group id, or nil
// when none are configured.
func (c *Config) CondenseMap() map[string][]string {
	if len(c.Condense) == 0 {
		return nil
	}
	out := make(map[string][]string, len(c.Condense))
	for _, g := range c.Condense {
		out[g.ID] = append([]string(nil), g.Members...)
	}

	return out
}

// Save writes cfg as TOML.
func Save(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Marshal renders cfg as TOML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}

	return data, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("title", d.Title)
	v.SetDefault("orient", d.Orient)
	v.SetDefault("unit_conversion", d.UnitConversion)
	v.SetDefault("tolerance", d.Tolerance)
	v.SetDefault("ignored", d.Ignored)
	v.SetDefault("condense_pgrp", d.CondensePgrp)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("rank", d.Rank)
	v.SetDefault("output.path", d.Output.Path)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.compression", d.Output.Compression)
	v.SetDefault("output.pretty", d.Output.Pretty)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("http.addr", d.HTTP.Addr)
	v.SetDefault("http.mode", d.HTTP.Mode)
	v.SetDefault("metrics.textfile", d.Metrics.Textfile)
}
