// Package statistics accumulates the hero's results across converted hands.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/lox/ohhconv/internal/ohh"
)

// bigPotBB is the pot size, in big blinds, from which a pot counts as big.
const bigPotBB = 50

// HandResult is the hero's outcome in one hand.
type HandResult struct {
	HandID         string
	Net            decimal.Decimal // Chips won minus chips put in
	NetBB          float64         // Net in big blinds, 0 when the hand has no big blind
	WentToShowdown bool            // Hero showed cards
	PotSize        decimal.Decimal // Sum of all pots
	PotBB          float64
}

// Statistics tracks the hero's results over a run.
type Statistics struct {
	Hands  int
	Net    decimal.Decimal
	SumBB  float64
	SumBB2 float64   // Sum of squares for variance calculation
	Values []float64 // Every NetBB, for median and percentiles

	ShowdownWins    int
	NonShowdownWins int
	ShowdownBB      float64 // BB from showdowns, wins and losses
	NonShowdownBB   float64 // BB from hands without a hero showdown

	MaxPot    decimal.Decimal
	MaxPotBB  float64
	BigPots   int
	BigPotsBB float64 // Hero BB from big pots
}

// Contributions returns the chips each player put into the hand. A raise
// amount is the player's total for the street.
func Contributions(hand *ohh.Hand) map[int]decimal.Decimal {
	total := make(map[int]decimal.Decimal)
	for _, round := range hand.Rounds {
		street := make(map[int]decimal.Decimal)
		for _, a := range round.Actions {
			if a.Amount == nil {
				continue
			}
			switch a.Kind {
			case ohh.ActionPostAnte:
				total[a.PlayerID] = total[a.PlayerID].Add(*a.Amount)
			case ohh.ActionPostSB, ohh.ActionPostBB, ohh.ActionStraddle,
				ohh.ActionBet, ohh.ActionCall, ohh.ActionBringIn:
				street[a.PlayerID] = street[a.PlayerID].Add(*a.Amount)
			case ohh.ActionRaise:
				street[a.PlayerID] = *a.Amount
			}
		}
		for id, amount := range street {
			total[id] = total[id].Add(amount)
		}
	}
	return total
}

// HeroResult computes the hero's result for a hand. It reports false when the
// hero was not actively playing. refunds are uncalled bets returned per seat.
func HeroResult(hand *ohh.Hand, refunds map[int]decimal.Decimal) (HandResult, bool) {
	if hand.HeroPlayerID == nil || hand.HasFlag(ohh.FlagObserved) {
		return HandResult{}, false
	}
	hero := *hand.HeroPlayerID

	won := decimal.Zero
	pot := decimal.Zero
	for _, p := range hand.Pots {
		pot = pot.Add(p.Amount)
		for _, w := range p.PlayerWins {
			if w.PlayerID == hero {
				won = won.Add(w.WinAmount)
			}
		}
	}

	res := HandResult{
		HandID:  hand.GameNumber,
		Net:     won.Add(refunds[hero]).Sub(Contributions(hand)[hero]),
		PotSize: pot,
	}
	if hand.BigBlind.IsPositive() {
		res.NetBB = res.Net.Div(hand.BigBlind).InexactFloat64()
		res.PotBB = pot.Div(hand.BigBlind).InexactFloat64()
	}

	for _, round := range hand.Rounds {
		for _, a := range round.Actions {
			if a.PlayerID == hero && a.Kind == ohh.ActionShows {
				res.WentToShowdown = true
			}
		}
	}
	return res, true
}

// Add incorporates a new hand result into the statistics
func (s *Statistics) Add(result HandResult) {
	netBB := result.NetBB
	s.Hands++
	s.Net = s.Net.Add(result.Net)
	s.SumBB += netBB
	s.SumBB2 += netBB * netBB
	s.Values = append(s.Values, netBB)

	if result.Net.IsPositive() {
		if result.WentToShowdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}
	if result.WentToShowdown {
		s.ShowdownBB += netBB
	} else {
		s.NonShowdownBB += netBB
	}

	if result.PotSize.GreaterThan(s.MaxPot) {
		s.MaxPot = result.PotSize
		s.MaxPotBB = result.PotBB
	}
	if result.PotBB >= bigPotBB {
		s.BigPots++
		s.BigPotsBB += netBB
	}
}

// Mean returns the mean result in big blinds per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// BB100 returns the win rate in big blinds per hundred hands.
func (s *Statistics) BB100() float64 {
	return s.Mean() * 100
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// IsLedgerBalanced checks that showdown and non-showdown buckets add up to the total.
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.SumBB-s.ShowdownBB-s.NonShowdownBB) <= 1e-6
}

// Validate checks the accumulated data for consistency.
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: SumBB=%.6f, ShowdownBB=%.6f, NonShowdownBB=%.6f",
			s.SumBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}
	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", wins, s.Hands)
	}
	return nil
}
