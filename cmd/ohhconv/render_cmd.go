package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lox/ohhconv/internal/display"
	"github.com/lox/ohhconv/internal/ohh"
	"github.com/lox/ohhconv/internal/phh"
)

// RenderCmd prints converted hands.
type RenderCmd struct {
	File  string `arg:"" name:"file" help:"Path to a .ohh or .phhs file" type:"existingfile"`
	Limit int    `help:"Maximum number of hands to render (0 = all)"`
}

func (cmd *RenderCmd) Run(globals *Globals) error {
	return cmd.render(os.Stdout, globals.NoColor)
}

func (cmd *RenderCmd) render(w io.Writer, noColor bool) error {
	if cmd.File == "" {
		return errors.New("render requires a file path")
	}

	f, err := os.Open(filepath.Clean(cmd.File))
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(cmd.File), ".phhs") {
		return cmd.renderPHH(w, f)
	}

	hands, err := ohh.Decode(f)
	if err != nil {
		return err
	}
	if len(hands) == 0 {
		return fmt.Errorf("no hands found in %s", cmd.File)
	}

	styles := display.NewStyles(w, noColor)
	for i := range limit(len(hands), cmd.Limit) {
		display.RenderHand(w, styles, &hands[i])
	}
	return nil
}

// renderPHH prints a PHH session as its TOML records.
func (cmd *RenderCmd) renderPHH(w io.Writer, r io.Reader) error {
	hands, err := phh.DecodeSession(r)
	if err != nil {
		return err
	}
	if len(hands) == 0 {
		return fmt.Errorf("no hands found in %s", cmd.File)
	}

	selected := make([]*phh.HandHistory, 0, len(hands))
	for i := range limit(len(hands), cmd.Limit) {
		selected = append(selected, &hands[i])
	}
	return phh.WriteSession(w, selected)
}

func limit(n, maxHands int) int {
	if maxHands <= 0 || maxHands > n {
		return n
	}
	return maxHands
}
