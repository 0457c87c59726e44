// Package ohh holds the Open Hand History record types and their JSON encoding.
package ohh

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The importer expects numeric amounts, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	SpecVersion     = "1.2.2"
	InternalVersion = "1.0.0"
	DefaultSize     = 10

	// ShowdownRoundID is the round id the importer requires for the showdown street.
	ShowdownRoundID = 4

	FlagObserved = "observed"
)

// Hand is one converted hand in OHH form.
type Hand struct {
	SpecVersion     string          `json:"spec_version"`
	SiteName        string          `json:"site_name"`
	NetworkName     string          `json:"network_name"`
	InternalVersion string          `json:"internal_version"`
	GameNumber      string          `json:"game_number"`
	StartDateUTC    string          `json:"start_date_utc"`
	TableName       string          `json:"table_name"`
	TableHandle     string          `json:"table_handle"`
	GameType        GameType        `json:"game_type"`
	BetLimit        BetLimit        `json:"bet_limit"`
	TableSize       int             `json:"table_size"`
	Currency        string          `json:"currency"`
	DealerSeat      int             `json:"dealer_seat"`
	SmallBlind      decimal.Decimal `json:"small_blind_amount"`
	BigBlind        decimal.Decimal `json:"big_blind_amount"`
	Ante            decimal.Decimal `json:"ante_amount"`
	HeroPlayerID    *int            `json:"hero_player_id,omitempty"`
	Flags           []string        `json:"flags"`
	Players         []Player        `json:"players"`
	Rounds          []Round         `json:"rounds"`
	Pots            []Pot           `json:"pots"`

	// StartTime is the absolute start time; StartDateUTC is its wire form.
	StartTime time.Time `json:"-"`
}

// BetLimit describes the betting structure.
type BetLimit struct {
	BetType BetType          `json:"bet_type,omitempty"`
	BetCap  *decimal.Decimal `json:"bet_cap,omitempty"`
}

// Player is a seated player at hand start. ID always equals Seat.
type Player struct {
	ID            int             `json:"id"`
	Seat          int             `json:"seat"`
	Name          string          `json:"name"`
	Display       string          `json:"display"`
	StartingStack decimal.Decimal `json:"starting_stack"`
}

// Round is one street with its revealed cards and ordered actions.
type Round struct {
	ID      int      `json:"id"`
	Street  Street   `json:"street"`
	Cards   []string `json:"cards"`
	Actions []Action `json:"actions"`
}

// Action is a single player event within a round.
type Action struct {
	Number   int              `json:"action_number"`
	PlayerID int              `json:"player_id"`
	Kind     ActionKind       `json:"action"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Cards    []string         `json:"cards,omitempty"`
	AllIn    bool             `json:"is_allin,omitempty"`
}

// Pot is an awarded pot with its winners.
type Pot struct {
	Number     int             `json:"number"`
	Amount     decimal.Decimal `json:"amount"`
	Rake       decimal.Decimal `json:"rake"`
	PlayerWins []PlayerWin     `json:"player_wins"`
}

// PlayerWin is one player's share of a pot.
type PlayerWin struct {
	PlayerID        int             `json:"player_id"`
	WinAmount       decimal.Decimal `json:"win_amount"`
	ContributedRake decimal.Decimal `json:"contributed_rake"`
}

// NewHand returns a hand with the fixed header fields and empty collections set.
func NewHand(gameNumber, currency string) *Hand {
	return &Hand{
		SpecVersion:     SpecVersion,
		InternalVersion: InternalVersion,
		GameNumber:      gameNumber,
		TableSize:       DefaultSize,
		Currency:        currency,
		DealerSeat:      1,
		Flags:           []string{},
		Players:         []Player{},
		Rounds:          []Round{},
		Pots:            []Pot{},
	}
}

// PlayerBySeat returns the player seated at seat.
func (h *Hand) PlayerBySeat(seat int) (Player, bool) {
	for _, p := range h.Players {
		if p.Seat == seat {
			return p, true
		}
	}
	return Player{}, false
}

// HasRound reports whether a round with the given id exists.
func (h *Hand) HasRound(id int) bool {
	for _, r := range h.Rounds {
		if r.ID == id {
			return true
		}
	}
	return false
}

// HasFlag reports whether flag is set on the hand.
func (h *Hand) HasFlag(flag string) bool {
	for _, f := range h.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// Amount returns a pointer suitable for Action.Amount.
func Amount(d decimal.Decimal) *decimal.Decimal {
	return &d
}
