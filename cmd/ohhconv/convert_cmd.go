package main

import (
	"os"

	"github.com/lox/ohhconv/cmd/ohhconv/shared"
	"github.com/lox/ohhconv/internal/display"
)

// ConvertCmd converts log files once.
type ConvertCmd struct {
	ConversionFlags

	Files []string `arg:"" name:"file" help:"Poker Mavens hand history files" type:"existingfile"`
}

func (c *ConvertCmd) Run(globals *Globals) error {
	logger := shared.SetupLogger(globals.Debug, globals.LogJSON)
	ctx, stop := shared.SetupSignalHandler(logger)
	defer stop()

	s, err := newSession(ctx, globals, c.ConversionFlags, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.converter.ConvertFiles(ctx, c.Files)
	if err != nil {
		return err
	}

	display.RenderSummary(os.Stdout, display.NewStyles(os.Stdout, globals.NoColor), summary)
	return nil
}
