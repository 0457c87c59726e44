package mavens

import (
	"github.com/lox/ohhconv/internal/ohh"
)

// CompleteShowdown makes sure games that require a showdown carry round
// ohh.ShowdownRoundID. When it is missing and exactly one player won, a showdown
// round with a single muck by that player is appended. Zero or several winners
// are reported to sink and the hand is left unchanged.
func CompleteShowdown(hand *ohh.Hand, winners []int, sink Sink) {
	if !hand.GameType.RequiresShowdown() || hand.HasRound(ohh.ShowdownRoundID) {
		return
	}

	switch len(winners) {
	case 0:
		sink(Diagnostic{
			HandID:  hand.GameNumber,
			Kind:    KindNoWinners,
			Message: "no winners recorded",
		})
	case 1:
		hand.Rounds = append(hand.Rounds, ohh.Round{
			ID:     ohh.ShowdownRoundID,
			Street: ohh.StreetShowdown,
			Cards:  []string{},
			Actions: []ohh.Action{
				{Number: 0, PlayerID: winners[0], Kind: ohh.ActionMucks},
			},
		})
	default:
		sink(Diagnostic{
			HandID:  hand.GameNumber,
			Kind:    KindMultipleWinners,
			Message: "missing showdown with multiple winners",
		})
	}
}
