// Package config holds the conversion settings and loads them from HCL files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

const (
	DefaultFile         = "ohhconv.hcl"
	DefaultHeroName     = "hero"
	DefaultTimeZone     = "America/New_York"
	DefaultCurrency     = "PPC"
	DefaultOutputPrefix = "HHC"
	DefaultOutputDir    = "."
)

// ErrInvalidCurrency is returned by Validate for currency codes that are not three letters.
var ErrInvalidCurrency = errors.New("currency code must have three letters")

// Config is the complete conversion configuration. It is built once and passed by value.
type Config struct {
	HeroName     string `hcl:"hero_name,optional"`
	TimeZone     string `hcl:"time_zone,optional"`
	Currency     string `hcl:"currency,optional"`
	OutputPrefix string `hcl:"output_prefix,optional"`
	OutputDir    string `hcl:"output_dir,optional"`
	Database     string `hcl:"database,optional"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		HeroName:     DefaultHeroName,
		TimeZone:     DefaultTimeZone,
		Currency:     DefaultCurrency,
		OutputPrefix: DefaultOutputPrefix,
		OutputDir:    DefaultOutputDir,
	}
}

// Load reads filename on top of the defaults. A missing file is not an error.
func Load(filename string) (Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return cfg, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fromFile Config
	diags = gohcl.DecodeBody(file.Body, nil, &fromFile)
	if diags.HasErrors() {
		return cfg, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	return cfg.Merge(fromFile), nil
}

// Merge returns c with every non-empty field of override applied.
func (c Config) Merge(override Config) Config {
	if override.HeroName != "" {
		c.HeroName = override.HeroName
	}
	if override.TimeZone != "" {
		c.TimeZone = override.TimeZone
	}
	if override.Currency != "" {
		c.Currency = override.Currency
	}
	if override.OutputPrefix != "" {
		c.OutputPrefix = override.OutputPrefix
	}
	if override.OutputDir != "" {
		c.OutputDir = override.OutputDir
	}
	if override.Database != "" {
		c.Database = override.Database
	}
	return c
}

// Validate checks the configuration. A bad currency code is reported with
// ErrInvalidCurrency; callers may recover with Normalize.
func (c Config) Validate() error {
	if !validCurrency(c.Currency) {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, c.Currency)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if strings.TrimSpace(c.OutputPrefix) == "" {
		return errors.New("output prefix must not be empty")
	}
	return nil
}

// Normalize replaces an invalid currency with the default and reports whether it did.
func (c Config) Normalize() (Config, bool) {
	if validCurrency(c.Currency) {
		return c, false
	}
	c.Currency = DefaultCurrency
	return c, true
}

// Location resolves the configured time zone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func validCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
