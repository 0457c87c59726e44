package phh

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lox/ohhconv/internal/ohh"
)

// ErrUnsupportedVariant is returned for game and limit combinations PHH has no code for.
var ErrUnsupportedVariant = errors.New("phh: unsupported variant")

type variantKey struct {
	game ohh.GameType
	bet  ohh.BetType
}

var variants = map[variantKey]string{
	{ohh.GameHoldem, ohh.BetNoLimit}:       "NT",
	{ohh.GameHoldem, ohh.BetFixedLimit}:    "FT",
	{ohh.GameOmaha, ohh.BetPotLimit}:       "PO",
	{ohh.GameOmahaHiLo, ohh.BetFixedLimit}: "FO/8",
	{ohh.GameStud, ohh.BetFixedLimit}:      "F7S",
	{ohh.GameStudHiLo, ohh.BetFixedLimit}:  "F7S/8",
}

// Variant returns the PHH variant code for a hand.
func Variant(hand *ohh.Hand) (string, error) {
	code, ok := variants[variantKey{hand.GameType, hand.BetLimit.BetType}]
	if !ok {
		return "", fmt.Errorf("%w: %s %s", ErrUnsupportedVariant, hand.BetLimit.BetType, hand.GameType)
	}
	return code, nil
}

// FromOHH converts an OHH hand. Players are numbered p1..pN in seat order.
func FromOHH(hand *ohh.Hand) (*HandHistory, error) {
	if hand == nil {
		return nil, errors.New("phh: hand is nil")
	}
	variant, err := Variant(hand)
	if err != nil {
		return nil, err
	}

	n := len(hand.Players)
	h := &HandHistory{
		Variant:           variant,
		Table:             hand.TableName,
		SeatCount:         hand.TableSize,
		Seats:             make([]int, n),
		Antes:             make([]float64, n),
		BlindsOrStraddles: make([]float64, n),
		StartingStacks:    make([]float64, n),
		Winnings:          make([]float64, n),
		Actions:           []string{},
		Players:           make([]string, n),
		HandID:            hand.GameNumber,
		Currency:          hand.Currency,
		Timestamp:         hand.StartTime,
	}

	index := make(map[int]int, n)
	for i, p := range hand.Players {
		index[p.ID] = i
		h.Seats[i] = p.Seat
		h.Players[i] = p.Name
		h.StartingStacks[i] = p.StartingStack.InexactFloat64()
	}

	switch variant {
	case "NT", "PO":
		h.MinBet = hand.BigBlind.InexactFloat64()
	case "FT", "FO/8":
		h.SmallBet = hand.BigBlind.InexactFloat64()
		h.BigBet = hand.BigBlind.Mul(decimal.NewFromInt(2)).InexactFloat64()
	case "F7S", "F7S/8":
		// Stud has no blinds; the posted limits are the small and big bets.
		h.BlindsOrStraddles = nil
		h.SmallBet = hand.SmallBlind.InexactFloat64()
		h.BigBet = hand.BigBlind.InexactFloat64()
	}

	for _, round := range hand.Rounds {
		if isBoardStreet(round.Street) && len(round.Cards) > 0 {
			h.Actions = append(h.Actions, "d db "+JoinCards(round.Cards))
		}
		for _, a := range round.Actions {
			i, ok := index[a.PlayerID]
			if !ok {
				continue
			}
			if line, ok := h.apply(i, a); ok {
				h.Actions = append(h.Actions, line)
			}
		}
	}

	for _, pot := range hand.Pots {
		for _, win := range pot.PlayerWins {
			if i, ok := index[win.PlayerID]; ok {
				h.Winnings[i] += win.WinAmount.InexactFloat64()
			}
		}
	}

	populateTimeFields(h)
	return h, nil
}

func (h *HandHistory) apply(i int, a ohh.Action) (string, bool) {
	player := fmt.Sprintf("p%d", i+1)
	amount := 0.0
	if a.Amount != nil {
		amount = a.Amount.InexactFloat64()
	}

	switch a.Kind {
	case ohh.ActionPostSB, ohh.ActionPostBB, ohh.ActionStraddle:
		if h.BlindsOrStraddles != nil {
			h.BlindsOrStraddles[i] += amount
		}
		return "", false
	case ohh.ActionPostAnte:
		h.Antes[i] += amount
		return "", false
	case ohh.ActionDealt:
		cards := JoinCards(a.Cards)
		if cards == "" {
			cards = "????"
		}
		return fmt.Sprintf("d dh %s %s", player, cards), true
	case ohh.ActionFold:
		return player + " f", true
	case ohh.ActionCheck, ohh.ActionCall:
		return player + " cc", true
	case ohh.ActionBet, ohh.ActionRaise:
		return fmt.Sprintf("%s cbr %s", player, formatAmount(amount)), true
	case ohh.ActionBringIn:
		return player + " pb", true
	case ohh.ActionShows:
		return fmt.Sprintf("%s sm %s", player, JoinCards(a.Cards)), true
	default:
		return fmt.Sprintf("# %s %s %s", player, a.Kind, formatAmount(amount)), true
	}
}

func isBoardStreet(s ohh.Street) bool {
	return s == ohh.StreetFlop || s == ohh.StreetTurn || s == ohh.StreetRiver
}

func formatAmount(v float64) string {
	return decimal.NewFromFloat(v).String()
}

func populateTimeFields(h *HandHistory) {
	t := h.Timestamp
	if t.IsZero() {
		return
	}
	utc := t.UTC()
	h.Time = utc.Format("15:04:05")
	h.TimeZone = "UTC"
	h.Day = utc.Day()
	h.Month = int(utc.Month())
	h.Year = utc.Year()
}
