package display

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/ohhconv/internal/convert"
	"github.com/lox/ohhconv/internal/statistics"
)

const summaryTimeLayout = "2006-01-02 15:04:05"

// RenderSummary prints one row per written table followed by totals and any diagnostics.
func RenderSummary(w io.Writer, s Styles, summary *convert.Summary) {
	if len(summary.Tables) == 0 {
		fmt.Fprintln(w, s.Warning.Render("No hands converted"))
	} else {
		rows := [][]string{{"TABLE", "HANDS", "LATEST", "FILE"}}
		for _, t := range summary.Tables {
			hands := fmt.Sprintf("%d", t.Hands)
			if t.Skipped > 0 {
				hands += fmt.Sprintf(" (%d skipped)", t.Skipped)
			}
			rows = append(rows, []string{t.Name, hands, t.Latest.Format(summaryTimeLayout), filepath.Base(t.Path)})
		}
		renderColumns(w, s, rows)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, s.Success.Render(fmt.Sprintf("%d hands from %d files into %d tables",
		summary.Hands, summary.Inputs, len(summary.Tables))))
	RenderHero(w, s, summary.HeroName, summary.Currency, summary.Hero)
	if summary.Dropped > 0 {
		fmt.Fprintln(w, s.Warning.Render(fmt.Sprintf("%d hands dropped", summary.Dropped)))
	}
	for _, d := range summary.Diagnostics {
		fmt.Fprintln(w, s.Warning.Render("! ")+d.String())
	}
}

func renderColumns(w io.Writer, s Styles, rows [][]string) {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			style := s.Info
			switch {
			case r == 0:
				style = s.Header
			case i == 0:
				style = s.Table
			}
			cells[i] = style.Width(widths[i]).Render(cell)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

// RenderHero prints the hero's results line, if the hero played.
func RenderHero(w io.Writer, s Styles, name, currency string, stats *statistics.Statistics) {
	if stats == nil || stats.Hands == 0 {
		return
	}
	net := stats.Net.StringFixed(2)
	if stats.Net.IsPositive() {
		net = "+" + net
	}
	fmt.Fprintf(w, "%s %d hands, net %s %s, %.1f bb/100, %d won at showdown, %d without\n",
		s.Table.Render(name+":"), stats.Hands, net, currency, stats.BB100(),
		stats.ShowdownWins, stats.NonShowdownWins)
}
