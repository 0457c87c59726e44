// Package output writes converted tables to disk, one file per table.
package output

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/ohhconv/internal/fileutil"
	"github.com/lox/ohhconv/internal/ohh"
	"github.com/lox/ohhconv/internal/phh"
	"github.com/lox/ohhconv/internal/tables"
)

// Format selects the file format written per table.
type Format string

const (
	FormatOHH Format = "ohh"
	FormatPHH Format = "phh"
)

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	if f == FormatPHH {
		return ".phhs"
	}
	return ".ohh"
}

const dateLayout = "2006-01-02"

// Options configures a Writer.
type Options struct {
	Dir      string
	Prefix   string
	Location *time.Location
	Format   Format
	Indent   bool
	Clock    quartz.Clock
	Logger   zerolog.Logger
}

// Writer serializes tables into per-table files.
type Writer struct {
	opts Options
}

// Result describes one written file.
type Result struct {
	Table   *tables.Table
	Path    string
	Written int
	Skipped int
}

// NewWriter returns a writer, filling unset options with defaults.
func NewWriter(opts Options) *Writer {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Format == "" {
		opts.Format = FormatOHH
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	return &Writer{opts: opts}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "", FormatOHH:
		return FormatOHH, nil
	case FormatPHH:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

var unsafeChars = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", `"`, "_",
	"/", "_", `\`, "_", "|", "_", "?", "_", "*", "_",
)

// SanitizeTableName replaces characters that are not allowed in file names.
func SanitizeTableName(name string) string {
	return unsafeChars.Replace(name)
}

// FileName returns the base file name for a table. The date is that of the
// table's latest hand in the configured zone, or today when it has none.
func (w *Writer) FileName(t *tables.Table) string {
	when := t.LatestTime
	if when.IsZero() {
		when = w.opts.Clock.Now()
	}
	return fmt.Sprintf("%s-%s-%s%s",
		w.opts.Prefix,
		when.In(w.opts.Location).Format(dateLayout),
		SanitizeTableName(t.Name),
		w.opts.Format.Extension())
}

// WriteTable writes every hand of t and returns the result.
func (w *Writer) WriteTable(t *tables.Table) (Result, error) {
	res := Result{Table: t, Path: filepath.Join(w.opts.Dir, w.FileName(t))}
	logger := w.opts.Logger.With().Str("table", t.Name).Str("path", res.Path).Logger()

	err := fileutil.WriteAtomic(res.Path, 0o644, func(out io.Writer) error {
		if w.opts.Format == FormatPHH {
			return w.writePHH(out, t, &res, logger)
		}
		for _, hand := range t.Hands {
			if err := ohh.Encode(out, hand, w.opts.Indent); err != nil {
				return fmt.Errorf("encode hand %s: %w", hand.GameNumber, err)
			}
			res.Written++
		}
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("write table %s: %w", t.Name, err)
	}

	logger.Debug().Int("hands", res.Written).Int("skipped", res.Skipped).Msg("Wrote table")
	return res, nil
}

func (w *Writer) writePHH(out io.Writer, t *tables.Table, res *Result, logger zerolog.Logger) error {
	histories := make([]*phh.HandHistory, 0, len(t.Hands))
	for _, hand := range t.Hands {
		h, err := phh.FromOHH(hand)
		if errors.Is(err, phh.ErrUnsupportedVariant) {
			logger.Warn().Str("hand", hand.GameNumber).Err(err).Msg("Skipping hand in PHH export")
			res.Skipped++
			continue
		}
		if err != nil {
			return err
		}
		histories = append(histories, h)
	}
	res.Written = len(histories)
	return phh.WriteSession(out, histories)
}

// WriteAll writes every table that has hands, in registry order.
func (w *Writer) WriteAll(registry *tables.Registry) ([]Result, error) {
	var results []Result
	for _, t := range registry.Tables() {
		if len(t.Hands) == 0 {
			continue
		}
		res, err := w.WriteTable(t)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
