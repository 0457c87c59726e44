// Package convert runs the full conversion: read logs, build hands in
// chronological order, group them by table and write the results.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/ohhconv/internal/config"
	"github.com/lox/ohhconv/internal/mavens"
	"github.com/lox/ohhconv/internal/output"
	"github.com/lox/ohhconv/internal/statistics"
	"github.com/lox/ohhconv/internal/store"
	"github.com/lox/ohhconv/internal/tables"
)

// ErrNoInput is returned when a run is given no input files.
var ErrNoInput = errors.New("no input files")

const readConcurrency = 4

// Input is the raw text of one log file.
type Input struct {
	Path string
	Data []byte
}

// ReadInputs reads every path concurrently and returns the contents in the
// order given.
func ReadInputs(ctx context.Context, paths []string) ([]Input, error) {
	if len(paths) == 0 {
		return nil, ErrNoInput
	}

	inputs := make([]Input, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(readConcurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			inputs[i] = Input{Path: path, Data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return inputs, nil
}

// Options configures a Converter.
type Options struct {
	Config config.Config
	Format output.Format
	Indent bool
	Clock  quartz.Clock
	Logger zerolog.Logger
	// Sink receives diagnostics in addition to the logger.
	Sink mavens.Sink
	// Store archives converted hands when set.
	Store *store.Store
}

// Converter converts Poker Mavens logs into per-table files.
type Converter struct {
	opts Options
	loc  *time.Location
}

// New validates the configuration and returns a converter.
func New(opts Options) (*Converter, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	loc, err := opts.Config.Location()
	if err != nil {
		return nil, err
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Format == "" {
		opts.Format = output.FormatOHH
	}
	return &Converter{opts: opts, loc: loc}, nil
}

// Result is the outcome of the in-memory conversion pass.
type Result struct {
	Registry    *tables.Registry
	Diagnostics []mavens.Diagnostic
	Dropped     int
	// Hero holds the configured hero's results over the hands they played.
	Hero *statistics.Statistics
}

// Run converts the inputs. Hands are processed strictly in timestamp order
// across all inputs, whatever order the files or hands appear in.
func (c *Converter) Run(inputs []Input) (*Result, error) {
	registry := tables.NewRegistry()
	splitter := mavens.NewSplitter(c.loc, registry)
	for _, in := range inputs {
		if err := splitter.Add(bytes.NewReader(in.Data)); err != nil {
			return nil, fmt.Errorf("failed to split %s: %w", in.Path, err)
		}
	}

	collector := &mavens.Collector{}
	sink := mavens.Tee(collector.Sink(), mavens.LogSink(c.opts.Logger), c.opts.Sink)
	builder := mavens.NewBuilder(mavens.Options{
		HeroName: c.opts.Config.HeroName,
		Currency: c.opts.Config.Currency,
	}, sink)

	res := &Result{Registry: registry, Hero: &statistics.Statistics{}}
	for _, raw := range splitter.Chronological() {
		if raw.Table == "" {
			sink(mavens.Diagnostic{HandID: raw.ID, Kind: mavens.KindMissingTable, Message: "hand has no table"})
			res.Dropped++
			continue
		}
		table := registry.Register(raw.Table)
		draft := builder.Build(raw, table.Handle)
		hand := builder.Complete(draft)
		registry.Record(hand)
		if result, ok := statistics.HeroResult(hand, draft.Refunds); ok {
			res.Hero.Add(result)
		}
		c.opts.Logger.Debug().Str("hand", raw.ID).Str("table", raw.Table).Msg("Converted hand")
	}

	res.Diagnostics = collector.Diagnostics
	return res, nil
}

// TableSummary describes one table of a finished run.
type TableSummary struct {
	Name    string
	Hands   int
	Latest  time.Time
	Path    string
	Skipped int
}

// Summary describes a finished run.
type Summary struct {
	ProcessedAt time.Time
	Inputs      int
	Hands       int
	Dropped     int
	Tables      []TableSummary
	Diagnostics []mavens.Diagnostic
	HeroName    string
	Currency    string
	Hero        *statistics.Statistics
}

// ConvertFiles reads paths, converts them, writes one file per table and
// archives the hands when a store is configured.
func (c *Converter) ConvertFiles(ctx context.Context, paths []string) (*Summary, error) {
	inputs, err := ReadInputs(ctx, paths)
	if err != nil {
		return nil, err
	}

	res, err := c.Run(inputs)
	if err != nil {
		return nil, err
	}

	writer := output.NewWriter(output.Options{
		Dir:      c.opts.Config.OutputDir,
		Prefix:   c.opts.Config.OutputPrefix,
		Location: c.loc,
		Format:   c.opts.Format,
		Indent:   c.opts.Indent,
		Clock:    c.opts.Clock,
		Logger:   c.opts.Logger,
	})
	written, err := writer.WriteAll(res.Registry)
	if err != nil {
		return nil, err
	}

	if c.opts.Store != nil {
		if err := c.opts.Store.SaveRegistry(ctx, res.Registry); err != nil {
			return nil, err
		}
	}

	summary := &Summary{
		ProcessedAt: c.opts.Clock.Now(),
		Inputs:      len(inputs),
		Hands:       res.Registry.HandTotal(),
		Dropped:     res.Dropped,
		Diagnostics: res.Diagnostics,
		HeroName:    c.opts.Config.HeroName,
		Currency:    c.opts.Config.Currency,
		Hero:        res.Hero,
	}
	for _, w := range written {
		summary.Tables = append(summary.Tables, TableSummary{
			Name:    w.Table.Name,
			Hands:   w.Table.HandCount,
			Latest:  w.Table.LatestTime.In(c.loc),
			Path:    w.Path,
			Skipped: w.Skipped,
		})
	}

	c.opts.Logger.Info().
		Int("inputs", summary.Inputs).
		Int("hands", summary.Hands).
		Int("tables", len(summary.Tables)).
		Int("diagnostics", len(summary.Diagnostics)).
		Msg("Conversion complete")
	return summary, nil
}
