// Package display renders conversion summaries and converted hands for the terminal.
package display

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the styles bound to one output renderer.
type Styles struct {
	Header  lipgloss.Style
	Table   lipgloss.Style
	Hand    lipgloss.Style
	Street  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style

	Spade   lipgloss.Style
	Heart   lipgloss.Style
	Diamond lipgloss.Style
	Club    lipgloss.Style
}

// NewStyles returns styles for w. With noColor set, output is plain text.
func NewStyles(w io.Writer, noColor bool) Styles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),
		Table: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Hand: r.NewStyle().
			Foreground(lipgloss.Color("#FF79C6")).
			Bold(true),
		Street: r.NewStyle().
			Foreground(lipgloss.Color("#6FA8DC")),
		Success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Dim: r.NewStyle().Faint(true),

		Spade:   r.NewStyle().Foreground(lipgloss.Color("#6FA8DC")).Bold(true),
		Heart:   r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Diamond: r.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		Club:    r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
	}
}

// Card renders a card such as "Ah" with a suit symbol.
func (s Styles) Card(card string) string {
	if len(card) < 2 {
		return card
	}
	rank := card[:len(card)-1]
	switch card[len(card)-1] {
	case 's', 'S':
		return s.Spade.Render(rank + "♠")
	case 'h', 'H':
		return s.Heart.Render(rank + "♥")
	case 'd', 'D':
		return s.Diamond.Render(rank + "♦")
	case 'c', 'C':
		return s.Club.Render(rank + "♣")
	}
	return card
}
