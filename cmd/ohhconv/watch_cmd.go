package main

import (
	"context"
	"os"
	"time"

	"github.com/lox/ohhconv/cmd/ohhconv/shared"
	"github.com/lox/ohhconv/internal/display"
	"github.com/lox/ohhconv/internal/watch"
)

// WatchCmd reconverts a directory of logs whenever it changes.
type WatchCmd struct {
	ConversionFlags

	Dir      string        `arg:"" name:"dir" help:"Directory containing hand history files" type:"existingdir"`
	Pattern  string        `help:"File name pattern to convert" default:"*.txt"`
	Debounce time.Duration `help:"Quiet period before reconverting" default:"2s"`
}

func (c *WatchCmd) Run(globals *Globals) error {
	logger := shared.SetupLogger(globals.Debug, globals.LogJSON)
	ctx, stop := shared.SetupSignalHandler(logger)
	defer stop()

	s, err := newSession(ctx, globals, c.ConversionFlags, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	styles := display.NewStyles(os.Stdout, globals.NoColor)
	w := watch.New(watch.Options{
		Dir:      c.Dir,
		Pattern:  c.Pattern,
		Debounce: c.Debounce,
		Logger:   logger,
		Convert: func(ctx context.Context, paths []string) error {
			summary, err := s.converter.ConvertFiles(ctx, paths)
			if err != nil {
				return err
			}
			display.RenderSummary(os.Stdout, styles, summary)
			return nil
		},
	})
	return w.Run(ctx)
}
