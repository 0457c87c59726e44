package mavens_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/ohhconv/internal/mavens"
	"github.com/lox/ohhconv/internal/ohh"
)

const holdemHand = `Hand #1234-1 - 2020-05-12 20:15:03
Site: Degen Club
Game: NL Hold'em (1 - 200) - Blinds 1/2
Table: Main Table
Seat 1: Alice (100.00)
Seat 2: Bob (100.00)
Seat 3: hero (150.00)
Alice has the dealer button
Alice posts small blind 1.00
Bob posts big blind 2.00
** Hole Cards **
Dealt to hero [Ah Kd]
hero raises to 6.00
Alice folds
Bob calls 4.00
** Flop ** [2h 7c Qs]
Bob checks
hero bets 8.00
Bob folds
hero refunded 8.00
hero wins Pot (13.00)
`

func lines(text string) []string {
	return strings.Split(strings.TrimSpace(text), "\n")
}

func buildOne(t *testing.T, text string) (*ohh.Hand, *mavens.Collector) {
	t.Helper()
	splitter := mavens.NewSplitter(time.UTC, nil)
	require.NoError(t, splitter.AddString(text))
	hands := splitter.Chronological()
	require.Len(t, hands, 1)

	collector := &mavens.Collector{}
	builder := mavens.NewBuilder(mavens.Options{HeroName: "hero", Currency: "PPC"}, collector.Sink())
	return builder.Convert(hands[0], "handle-1"), collector
}

func rawHand(body string) mavens.RawHand {
	return mavens.RawHand{
		ID:        "42-1",
		Timestamp: time.Date(2020, 5, 12, 20, 0, 0, 0, time.UTC),
		Table:     "T",
		Lines:     lines(body),
	}
}

func convertRaw(t *testing.T, body string) (*ohh.Hand, *mavens.Collector) {
	t.Helper()
	collector := &mavens.Collector{}
	builder := mavens.NewBuilder(mavens.Options{HeroName: "hero", Currency: "PPC"}, collector.Sink())
	return builder.Convert(rawHand(body), "h"), collector
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireAmount(t *testing.T, want string, got *decimal.Decimal) {
	t.Helper()
	require.NotNil(t, got)
	assert.True(t, dec(want).Equal(*got), "want %s got %s", want, got)
}

func assertRoundInvariants(t *testing.T, hand *ohh.Hand) {
	t.Helper()
	for i, r := range hand.Rounds {
		if r.ID != ohh.ShowdownRoundID || i < len(hand.Rounds)-1 {
			assert.Equal(t, i, r.ID, "round ids must be contiguous from 0")
		}
		for j, a := range r.Actions {
			assert.Equal(t, j, a.Number, "round %d action %d", r.ID, j)
		}
	}
	for _, pot := range hand.Pots {
		sum := decimal.Zero
		for _, w := range pot.PlayerWins {
			sum = sum.Add(w.WinAmount)
		}
		assert.True(t, sum.Equal(pot.Amount), "pot %d sums to %s, amount %s", pot.Number, sum, pot.Amount)
	}
}

func TestBuildHoldemHand(t *testing.T) {
	hand, diags := buildOne(t, holdemHand)
	assert.Empty(t, diags.Diagnostics)

	assert.Equal(t, "1234-1", hand.GameNumber)
	assert.Equal(t, "2020-05-12T20:15:03Z", hand.StartDateUTC)
	assert.Equal(t, "Degen Club", hand.SiteName)
	assert.Equal(t, "Degen Club", hand.NetworkName)
	assert.Equal(t, "Main Table", hand.TableName)
	assert.Equal(t, "handle-1", hand.TableHandle)
	assert.Equal(t, ohh.GameHoldem, hand.GameType)
	assert.Equal(t, ohh.BetNoLimit, hand.BetLimit.BetType)
	assert.True(t, dec("1").Equal(hand.SmallBlind))
	assert.True(t, dec("2").Equal(hand.BigBlind))
	assert.Equal(t, 1, hand.DealerSeat)
	require.NotNil(t, hand.HeroPlayerID)
	assert.Equal(t, 3, *hand.HeroPlayerID)
	assert.False(t, hand.HasFlag(ohh.FlagObserved))
	require.Len(t, hand.Players, 3)
	assert.Equal(t, "hero", hand.Players[2].Name)

	require.Len(t, hand.Rounds, 3)
	preflop := hand.Rounds[0]
	assert.Equal(t, ohh.StreetPreflop, preflop.Street)
	kinds := []ohh.ActionKind{}
	for _, a := range preflop.Actions {
		kinds = append(kinds, a.Kind)
	}
	assert.Equal(t, []ohh.ActionKind{
		ohh.ActionPostSB, ohh.ActionPostBB, ohh.ActionDealt,
		ohh.ActionRaise, ohh.ActionFold, ohh.ActionCall,
	}, kinds)
	assert.Equal(t, []string{"Ah", "Kd"}, preflop.Actions[2].Cards)
	requireAmount(t, "6", preflop.Actions[3].Amount)

	flop := hand.Rounds[1]
	assert.Equal(t, 1, flop.ID)
	assert.Equal(t, []string{"2h", "7c", "Qs"}, flop.Cards)
	assert.Len(t, flop.Actions, 3)

	showdown := hand.Rounds[2]
	assert.Equal(t, ohh.ShowdownRoundID, showdown.ID)
	assert.Equal(t, ohh.StreetShowdown, showdown.Street)
	require.Len(t, showdown.Actions, 1)
	assert.Equal(t, ohh.ActionMucks, showdown.Actions[0].Kind)
	assert.Equal(t, 3, showdown.Actions[0].PlayerID)

	require.Len(t, hand.Pots, 1)
	assert.True(t, dec("13").Equal(hand.Pots[0].Amount))
	require.Len(t, hand.Pots[0].PlayerWins, 1)
	assert.Equal(t, 3, hand.Pots[0].PlayerWins[0].PlayerID)

	assertRoundInvariants(t, hand)
}

func TestBuildSeatsPostsAndFlop(t *testing.T) {
	hand, diags := convertRaw(t, `
Seat 1: Alice (100.00)
Seat 2: Bob (100.00)
Alice posts small blind 1.00
Bob posts big blind 2.00
** Flop ** [2h 7c Qs]
Alice folds`)
	assert.Empty(t, diags.Diagnostics)

	require.Len(t, hand.Players, 2)
	assert.Equal(t, ohh.Player{ID: 1, Seat: 1, Name: "Alice", Display: "Alice", StartingStack: dec("100.00")}, hand.Players[0])
	assert.Equal(t, 2, hand.Players[1].Seat)
	assert.Equal(t, "Bob", hand.Players[1].Name)
	assert.True(t, dec("100").Equal(hand.Players[1].StartingStack))

	require.Len(t, hand.Rounds, 2)
	assert.Equal(t, 0, hand.Rounds[0].ID)
	require.Len(t, hand.Rounds[0].Actions, 2)
	assert.Equal(t, ohh.ActionPostSB, hand.Rounds[0].Actions[0].Kind)
	assert.Equal(t, 1, hand.Rounds[0].Actions[0].PlayerID)
	assert.Equal(t, ohh.ActionPostBB, hand.Rounds[0].Actions[1].Kind)
	assert.Equal(t, 2, hand.Rounds[0].Actions[1].PlayerID)

	assert.Equal(t, 1, hand.Rounds[1].ID)
	assert.Equal(t, []string{"2h", "7c", "Qs"}, hand.Rounds[1].Cards)
	require.Len(t, hand.Rounds[1].Actions, 1)
	assert.Equal(t, ohh.Action{Number: 0, PlayerID: 1, Kind: ohh.ActionFold}, hand.Rounds[1].Actions[0])
	assertRoundInvariants(t, hand)
}

func TestBuildPostsBothBlindsUsesConfiguredAmounts(t *testing.T) {
	hand, _ := convertRaw(t, `
Game: NL Hold'em (1 - 200) - Blinds 0.50/1
Seat 1: Alice (100)
Seat 2: Carol (100)
Alice posts big blind 1
Carol posts small & big blind 7.77
Carol wins Pot (2.50)`)

	require.NotEmpty(t, hand.Rounds)
	actions := hand.Rounds[0].Actions
	require.Len(t, actions, 3)
	assert.Equal(t, ohh.ActionPostSB, actions[1].Kind)
	requireAmount(t, "0.50", actions[1].Amount)
	assert.Equal(t, ohh.ActionPostBB, actions[2].Kind)
	requireAmount(t, "1", actions[2].Amount)
	assert.Equal(t, 2, actions[1].PlayerID)
	assert.Equal(t, 2, actions[2].PlayerID)
	assertRoundInvariants(t, hand)
}

func TestBuildHoleCardsMarkerOpensRound(t *testing.T) {
	hand, _ := convertRaw(t, `
Seat 1: Alice (100)
** Hole Cards **
Dealt to Alice [Ah Ad]`)
	require.Len(t, hand.Rounds, 1)
	assert.Equal(t, ohh.StreetPreflop, hand.Rounds[0].Street)
	require.Len(t, hand.Rounds[0].Actions, 1)
	assert.Equal(t, ohh.ActionDealt, hand.Rounds[0].Actions[0].Kind)
}

func TestBuildAddOnRequiresRoundAndPlayer(t *testing.T) {
	hand, diags := convertRaw(t, `
Seat 1: Alice (100)
Alice adds 50 chips
Alice posts small blind 1
Alice adds 25 chips
Stranger adds 10 chips`)
	assert.Empty(t, diags.Diagnostics)
	require.Len(t, hand.Rounds, 1)
	require.Len(t, hand.Rounds[0].Actions, 2)
	assert.Equal(t, ohh.ActionAddedChips, hand.Rounds[0].Actions[1].Kind)
	requireAmount(t, "25", hand.Rounds[0].Actions[1].Amount)
}

func TestBuildUnknownPlayerSkipsAction(t *testing.T) {
	hand, diags := convertRaw(t, `
Seat 1: Alice (100)
Alice posts small blind 1
Mallory calls 1
Alice checks`)
	assert.Equal(t, []mavens.DiagnosticKind{mavens.KindUnknownPlayer}, diags.Kinds())
	assert.Equal(t, "42-1", diags.Diagnostics[0].HandID)
	require.Len(t, hand.Rounds[0].Actions, 2)
	assert.Equal(t, ohh.ActionCheck, hand.Rounds[0].Actions[1].Kind)
	assertRoundInvariants(t, hand)
}

func TestBuildUnknownVariant(t *testing.T) {
	hand, diags := convertRaw(t, `
Game: NL Pineapple (1 - 200) - Blinds 1/2
Seat 1: Alice (100)
Alice posts small blind 1
Alice wins Pot (1)`)
	assert.Equal(t, []mavens.DiagnosticKind{mavens.KindUnknownVariant}, diags.Kinds())
	assert.Equal(t, ohh.GameUnknown, hand.GameType)
	assert.Equal(t, ohh.BetNoLimit, hand.BetLimit.BetType)
	assert.Equal(t, ohh.StreetPreflop, hand.Rounds[0].Street)
	assert.False(t, hand.HasRound(ohh.ShowdownRoundID))
}

func TestBuildUnknownStructure(t *testing.T) {
	hand, diags := convertRaw(t, `
Game: XL Hold'em (1 - 200) - Blinds 1/2
Seat 1: Alice (100)`)
	assert.Equal(t, []mavens.DiagnosticKind{mavens.KindUnknownStructure, mavens.KindNoWinners}, diags.Kinds())
	assert.Equal(t, ohh.GameHoldem, hand.GameType)
	assert.Equal(t, ohh.BetType(""), hand.BetLimit.BetType)
}

func TestBuildStudStreets(t *testing.T) {
	hand, diags := convertRaw(t, `
Game: Limit Stud Hi-Lo (2/4) - Ante 0.25
Seat 1: Alice (50)
Seat 2: Bob (50)
Alice posts ante 0.25
Bob posts ante 0.25
Bob brings in for 0.50
Alice calls 0.50
** 4th Street ** [Kd]
Alice bets 2
Bob folds
Alice wins Pot (3)`)
	assert.Empty(t, diags.Diagnostics)
	assert.Equal(t, ohh.GameStudHiLo, hand.GameType)
	assert.Equal(t, ohh.BetFixedLimit, hand.BetLimit.BetType)
	assert.True(t, dec("0.25").Equal(hand.Ante))
	require.Len(t, hand.Rounds, 2)
	assert.Equal(t, ohh.StreetThird, hand.Rounds[0].Street)
	assert.Equal(t, ohh.ActionBringIn, hand.Rounds[0].Actions[2].Kind)
	assert.Equal(t, ohh.StreetFourth, hand.Rounds[1].Street)
	assert.False(t, hand.HasRound(ohh.ShowdownRoundID), "stud hands are not showdown-completed")
}

func TestBuildNaturalShowdown(t *testing.T) {
	hand, diags := convertRaw(t, `
Game: PL Omaha (1 - 200) - Blinds 1/2
Seat 1: Alice (100)
Seat 2: Bob (100)
Alice posts small blind 1
Bob posts big blind 2
Alice raises to 98 (All-in)
Bob calls 96 (All-in)
** Flop ** [2h 7c Qs]
** Turn ** [Td]
** River ** [3s]
** Show Down **
Alice shows [Ah Ad Kc Ks]
Bob shows [Qh Qd 2c 3c]
Alice splits Pot (100)
Bob splits Pot (100)`)
	assert.Empty(t, diags.Diagnostics)
	require.Len(t, hand.Rounds, 5)
	assert.Equal(t, ohh.ShowdownRoundID, hand.Rounds[4].ID)
	assert.Equal(t, ohh.StreetShowdown, hand.Rounds[4].Street)
	assert.Len(t, hand.Rounds[4].Actions, 2)
	assert.True(t, hand.Rounds[0].Actions[2].AllIn)
	assert.True(t, hand.Rounds[0].Actions[3].AllIn)

	require.Len(t, hand.Pots, 1)
	assert.True(t, dec("200").Equal(hand.Pots[0].Amount))
	assert.Equal(t, []int{1, 2}, []int{hand.Pots[0].PlayerWins[0].PlayerID, hand.Pots[0].PlayerWins[1].PlayerID})
	assertRoundInvariants(t, hand)
}

func TestBuildMissingShowdownDiagnostics(t *testing.T) {
	_, diags := convertRaw(t, `
Game: NL Hold'em (1 - 200) - Blinds 1/2
Seat 1: Alice (100)
Seat 2: Bob (100)
Alice posts small blind 1
Bob posts big blind 2
Alice wins Pot (1.50)
Bob wins Side Pot 1 (1.50)`)
	assert.Equal(t, []mavens.DiagnosticKind{mavens.KindMultipleWinners}, diags.Kinds())

	hand, diags := convertRaw(t, `
Game: NL Hold'em (1 - 200) - Blinds 1/2
Seat 1: Alice (100)
Alice posts small blind 1`)
	assert.Equal(t, []mavens.DiagnosticKind{mavens.KindNoWinners}, diags.Kinds())
	assert.False(t, hand.HasRound(ohh.ShowdownRoundID))
}

func TestBuildSameWinnerOfTwoPotsCountsOnce(t *testing.T) {
	hand, diags := convertRaw(t, `
Game: NL Hold'em (1 - 200) - Blinds 1/2
Seat 1: Alice (100)
Seat 2: Bob (100)
Alice posts small blind 1
Bob posts big blind 2
Alice wins Side Pot 1 (4)
Alice wins Pot (2)`)
	assert.Empty(t, diags.Diagnostics)
	require.Len(t, hand.Pots, 2)
	assert.Equal(t, 0, hand.Pots[0].Number)
	assert.Equal(t, 1, hand.Pots[1].Number)
	assert.True(t, hand.HasRound(ohh.ShowdownRoundID))
}

func TestBuildHeroSittingOutIsObserved(t *testing.T) {
	hand, _ := convertRaw(t, `
Seat 1: hero (100) - sitting out
Seat 2: Bob (100)`)
	require.NotNil(t, hand.HeroPlayerID)
	assert.Equal(t, 1, *hand.HeroPlayerID)
	assert.True(t, hand.HasFlag(ohh.FlagObserved))

	hand, _ = convertRaw(t, `Seat 2: Bob (100)`)
	assert.Nil(t, hand.HeroPlayerID)
	assert.True(t, hand.HasFlag(ohh.FlagObserved))
}

func TestBuildUnknownDealerAndPost(t *testing.T) {
	hand, diags := convertRaw(t, `
Seat 3: Alice (100)
Ghost has the dealer button
Alice posts dead blind 1`)
	assert.Equal(t, []mavens.DiagnosticKind{mavens.KindUnknownPlayer, mavens.KindUnknownPost}, diags.Kinds())
	assert.Equal(t, 1, hand.DealerSeat)
	require.Len(t, hand.Rounds, 1)
	assert.Empty(t, hand.Rounds[0].Actions)
}

func TestBuildWithoutActionsHasNoRounds(t *testing.T) {
	hand, _ := convertRaw(t, `Seat 1: Alice (100)`)
	assert.Empty(t, hand.Rounds)
	assert.NotNil(t, hand.Rounds)
	assert.Empty(t, hand.Pots)
}

func TestBuildKeepsRefundsOutOfHand(t *testing.T) {
	splitter := mavens.NewSplitter(time.UTC, nil)
	require.NoError(t, splitter.AddString(holdemHand))
	builder := mavens.NewBuilder(mavens.Options{HeroName: "hero", Currency: "PPC"}, nil)

	draft := builder.Build(splitter.Chronological()[0], "h")
	require.Contains(t, draft.Refunds, 3)
	assert.True(t, dec("8").Equal(draft.Refunds[3]))

	hand := builder.Complete(draft)
	require.Len(t, hand.Pots, 1)
	assert.True(t, dec("13").Equal(hand.Pots[0].Amount))
}
