package ohh

// GameType is the OHH game_type value.
type GameType string

const (
	GameUnknown   GameType = ""
	GameHoldem    GameType = "Holdem"
	GameOmaha     GameType = "Omaha"
	GameOmahaHiLo GameType = "OmahaHiLo"
	GameStud      GameType = "Stud"
	GameStudHiLo  GameType = "StudHiLo"
)

// RequiresShowdown reports whether the importer expects a showdown round for this game.
// Stud games are exempt.
func (g GameType) RequiresShowdown() bool {
	switch g {
	case GameHoldem, GameOmaha, GameOmahaHiLo:
		return true
	}
	return false
}

// FirstStreet is the label of the opening betting round.
func (g GameType) FirstStreet() Street {
	switch g {
	case GameStud, GameStudHiLo:
		return StreetThird
	}
	return StreetPreflop
}

// BetType is the OHH bet_limit.bet_type value.
type BetType string

const (
	BetFixedLimit BetType = "FL"
	BetPotLimit   BetType = "PL"
	BetNoLimit    BetType = "NL"
)

// Street is the OHH round street label.
type Street string

const (
	StreetPreflop  Street = "Preflop"
	StreetFlop     Street = "Flop"
	StreetTurn     Street = "Turn"
	StreetRiver    Street = "River"
	StreetThird    Street = "Third Street"
	StreetFourth   Street = "Fourth Street"
	StreetFifth    Street = "Fifth Street"
	StreetSixth    Street = "Sixth Street"
	StreetShowdown Street = "Showdown"
)

// ActionKind is the OHH action label.
type ActionKind string

const (
	ActionPostSB     ActionKind = "Post SB"
	ActionPostBB     ActionKind = "Post BB"
	ActionPostAnte   ActionKind = "Post Ante"
	ActionStraddle   ActionKind = "Straddle"
	ActionAddedChips ActionKind = "Added Chips"
	ActionDealt      ActionKind = "Dealt Cards"
	ActionCheck      ActionKind = "Check"
	ActionFold       ActionKind = "Fold"
	ActionBet        ActionKind = "Bet"
	ActionCall       ActionKind = "Call"
	ActionRaise      ActionKind = "Raise"
	ActionBringIn    ActionKind = "Bring In"
	ActionShows      ActionKind = "Shows Cards"
	ActionMucks      ActionKind = "Mucks Cards"
)
