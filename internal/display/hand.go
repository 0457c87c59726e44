package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/ohhconv/internal/ohh"
)

// RenderHand prints a converted hand as a readable street-by-street listing.
func RenderHand(w io.Writer, s Styles, hand *ohh.Hand) {
	names := make(map[int]string, len(hand.Players))
	for _, p := range hand.Players {
		names[p.ID] = p.Name
	}
	name := func(id int) string {
		if n, ok := names[id]; ok {
			return n
		}
		return fmt.Sprintf("player %d", id)
	}

	title := fmt.Sprintf("=== Hand %s | %s | %s %s %s/%s ===",
		hand.GameNumber, hand.TableName, hand.BetLimit.BetType, hand.GameType,
		hand.SmallBlind.String(), hand.BigBlind.String())
	fmt.Fprintln(w, s.Hand.Render(title))
	fmt.Fprintln(w, s.Info.Render(hand.StartDateUTC+" "+hand.Currency))

	for _, p := range hand.Players {
		var tags []string
		if p.Seat == hand.DealerSeat {
			tags = append(tags, "button")
		}
		if hand.HeroPlayerID != nil && *hand.HeroPlayerID == p.ID {
			tags = append(tags, "hero")
		}
		line := fmt.Sprintf("Seat %d: %s (%s)", p.Seat, p.Name, p.StartingStack.String())
		if len(tags) > 0 {
			line += " " + s.Dim.Render("["+strings.Join(tags, ", ")+"]")
		}
		fmt.Fprintln(w, line)
	}

	for _, round := range hand.Rounds {
		header := string(round.Street)
		if len(round.Cards) > 0 {
			header += " " + s.cards(round.Cards)
		}
		fmt.Fprintln(w, s.Street.Render(header))
		for _, a := range round.Actions {
			line := fmt.Sprintf("  %s: %s", name(a.PlayerID), a.Kind)
			if a.Amount != nil {
				line += " " + a.Amount.String()
			}
			if len(a.Cards) > 0 {
				line += " " + s.cards(a.Cards)
			}
			if a.AllIn {
				line += " " + s.Warning.Render("all-in")
			}
			fmt.Fprintln(w, line)
		}
	}

	for _, pot := range hand.Pots {
		wins := make([]string, 0, len(pot.PlayerWins))
		for _, win := range pot.PlayerWins {
			wins = append(wins, fmt.Sprintf("%s +%s", name(win.PlayerID), win.WinAmount.String()))
		}
		fmt.Fprintf(w, "%s %s: %s\n",
			s.Success.Render(fmt.Sprintf("Pot %d", pot.Number)),
			pot.Amount.String(), strings.Join(wins, ", "))
	}

	if hand.HasFlag(ohh.FlagObserved) {
		fmt.Fprintln(w, s.Dim.Render("(observed)"))
	}
	fmt.Fprintln(w, s.Dim.Render("────────────────────────────────────────"))
}

func (s Styles) cards(cards []string) string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = s.Card(c)
	}
	return "[" + strings.Join(out, " ") + "]"
}
