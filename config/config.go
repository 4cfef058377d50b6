// Package config loads the builder's five-field configuration record
// (spec.md S6) from a JSON or YAML document carrying a nested "cagra"
// object, matching original_source's rapidjson-based loader whose keys
// are uppercase (KNNG_PATH, KNNG_FORMAT, SAVE_PATH, R_INIT, R). Viper's
// case-insensitive key matching accepts that casing or lowercase/
// snake_case without two parsers (SPEC_FULL.md S9).
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/cagraph/cagra/graphstore"
)

// Format names the input KNNG encoding, matching spec.md S6's
// knng_format field.
type Format string

const (
	FormatEfanna Format = "efanna"
	FormatFbin   Format = "fbin"
)

// Config is the five-field record spec.md S6 names as the configuration
// collaborator.
type Config struct {
	KnngPath   string `mapstructure:"knng_path"`
	KnngFormat Format `mapstructure:"knng_format"`
	SavePath   string `mapstructure:"save_path"`
	RInit      int32  `mapstructure:"r_init"`
	R          int32  `mapstructure:"r"`
}

// Load reads path as JSON or YAML (by extension), binding the nested
// "cagra" section case-insensitively, and validates the result.
//
// Unlike original_source's loader, which merely logged and left zero
// values on missing/wrong-typed fields, Load fails closed: a missing path,
// a missing or unknown format, or an undecodable field yields a
// FormatError, and a missing or non-positive r, or an r_init below r,
// yields a PreconditionError -- an explicit resolution of SPEC_FULL.md
// S6.1's noted ambiguity.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, &graphstore.IoError{Path: path, Op: "read config", Err: err}
	}

	sub := v.Sub("cagra")
	if sub == nil {
		return nil, &graphstore.FormatError{Path: path, Msg: `missing top-level "cagra" object`}
	}

	var cfg Config
	if err := sub.Unmarshal(&cfg); err != nil {
		return nil, &graphstore.FormatError{Path: path, Msg: fmt.Sprintf("decoding cagra section: %v", err)}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every field is present and the format tag is
// recognized. N and R_KNNG are not part of Config; they are inferred
// from the loaded KNNG file (spec.md S6).
func (c *Config) Validate() error {
	if c.KnngPath == "" {
		return &graphstore.FormatError{Msg: "knng_path is required"}
	}
	if c.SavePath == "" {
		return &graphstore.FormatError{Msg: "save_path is required"}
	}
	if c.KnngFormat != FormatEfanna && c.KnngFormat != FormatFbin {
		return &graphstore.FormatError{Msg: fmt.Sprintf("unknown knng_format %q (want %q or %q)", c.KnngFormat, FormatEfanna, FormatFbin)}
	}
	if c.R <= 0 {
		return &graphstore.PreconditionError{Msg: "r must be positive"}
	}
	if c.RInit < c.R {
		return &graphstore.PreconditionError{Msg: "r_init must be >= r"}
	}
	return nil
}
