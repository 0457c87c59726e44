package mavens

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lox/ohhconv/internal/ohh"
)

// PotAccumulator collects pot awards keyed by pot number while a hand is read.
type PotAccumulator struct {
	pots map[int]*potTotals
}

type potTotals struct {
	amount decimal.Decimal
	rake   decimal.Decimal
	order  []int
	wins   map[int]*winTotals
}

type winTotals struct {
	amount decimal.Decimal
	rake   decimal.Decimal
}

// NewPotAccumulator returns an empty accumulator.
func NewPotAccumulator() *PotAccumulator {
	return &PotAccumulator{pots: make(map[int]*potTotals)}
}

// AddWin credits amount from pot to player.
func (a *PotAccumulator) AddWin(pot, player int, amount decimal.Decimal) {
	p, ok := a.pots[pot]
	if !ok {
		p = &potTotals{wins: make(map[int]*winTotals)}
		a.pots[pot] = p
	}
	w, ok := p.wins[player]
	if !ok {
		w = &winTotals{}
		p.wins[player] = w
		p.order = append(p.order, player)
	}
	p.amount = p.amount.Add(amount)
	w.amount = w.amount.Add(amount)
}

// Len returns the number of pots seen.
func (a *PotAccumulator) Len() int {
	return len(a.pots)
}

// ResolvePots converts the accumulator into pots ordered by pot number, each
// listing its winners in the order they were first credited.
func ResolvePots(a *PotAccumulator) []ohh.Pot {
	if a == nil {
		return []ohh.Pot{}
	}
	pots := make([]ohh.Pot, 0, a.Len())

	numbers := make([]int, 0, len(a.pots))
	for n := range a.pots {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	for _, n := range numbers {
		p := a.pots[n]
		pot := ohh.Pot{
			Number:     n,
			Amount:     p.amount,
			Rake:       p.rake,
			PlayerWins: make([]ohh.PlayerWin, 0, len(p.order)),
		}
		for _, player := range p.order {
			w := p.wins[player]
			pot.PlayerWins = append(pot.PlayerWins, ohh.PlayerWin{
				PlayerID:        player,
				WinAmount:       w.amount,
				ContributedRake: w.rake,
			})
		}
		pots = append(pots, pot)
	}
	return pots
}
