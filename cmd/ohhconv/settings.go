package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/ohhconv/internal/config"
	"github.com/lox/ohhconv/internal/convert"
	"github.com/lox/ohhconv/internal/output"
	"github.com/lox/ohhconv/internal/store"
)

// ConversionFlags override configuration file values. Empty means unset.
type ConversionFlags struct {
	Currency  string `short:"c" help:"Three-letter currency code" env:"OHHCONV_CURRENCY"`
	Player    string `short:"p" help:"Hero player name" env:"OHHCONV_HERO"`
	Timezone  string `short:"t" help:"Time zone of the log timestamps (IANA name)" env:"OHHCONV_TIMEZONE"`
	Prefix    string `help:"Output file name prefix" env:"OHHCONV_PREFIX"`
	OutputDir string `short:"o" name:"output-dir" help:"Directory for converted files" type:"path" env:"OHHCONV_OUTPUT_DIR"`
	DB        string `name:"db" help:"Archive converted hands in this sqlite database" type:"path" env:"OHHCONV_DB"`
	Format    string `help:"Output format" enum:"ohh,phh" default:"ohh"`
	Indent    bool   `short:"i" help:"Pretty-print JSON output"`
}

func (f ConversionFlags) config() config.Config {
	return config.Config{
		HeroName:     f.Player,
		TimeZone:     f.Timezone,
		Currency:     f.Currency,
		OutputPrefix: f.Prefix,
		OutputDir:    f.OutputDir,
		Database:     f.DB,
	}
}

// resolveConfig applies defaults, then the config file, then flags and
// environment. An invalid currency falls back to the default with a warning.
func resolveConfig(path string, flags ConversionFlags, logger zerolog.Logger) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("loading %s: %w", path, err)
	}
	cfg = cfg.Merge(flags.config())

	if err := cfg.Validate(); errors.Is(err, config.ErrInvalidCurrency) {
		logger.Warn().Str("currency", cfg.Currency).Str("fallback", config.DefaultCurrency).
			Msg("Currency code must have three letters, using default")
		cfg, _ = cfg.Normalize()
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// session is the state shared by the convert and watch commands.
type session struct {
	logger    zerolog.Logger
	converter *convert.Converter
	store     *store.Store
}

func newSession(ctx context.Context, globals *Globals, flags ConversionFlags, logger zerolog.Logger) (*session, error) {
	cfg, err := resolveConfig(globals.Config, flags, logger)
	if err != nil {
		return nil, err
	}
	format, err := output.ParseFormat(flags.Format)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("hero", cfg.HeroName).
		Str("time_zone", cfg.TimeZone).
		Str("currency", cfg.Currency).
		Str("prefix", cfg.OutputPrefix).
		Str("output_dir", cfg.OutputDir).
		Str("format", string(format)).
		Msg("Resolved configuration")

	s := &session{logger: logger}
	if cfg.Database != "" {
		if s.store, err = store.Open(ctx, cfg.Database); err != nil {
			return nil, err
		}
	}

	s.converter, err = convert.New(convert.Options{
		Config: cfg,
		Format: format,
		Indent: flags.Indent,
		Clock:  quartz.NewReal(),
		Logger: logger,
		Store:  s.store,
	})
	if err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *session) Close() {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to close database")
		}
	}
}
