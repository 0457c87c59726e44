package phh

import "time"

// HandHistory is a single hand in Poker Hand History (PHH) form.
type HandHistory struct {
	Variant           string    `toml:"variant"`
	Table             string    `toml:"table,omitempty"`
	SeatCount         int       `toml:"seat_count,omitempty"`
	Seats             []int     `toml:"seats,omitempty"`
	Antes             []float64 `toml:"antes"`
	BlindsOrStraddles []float64 `toml:"blinds_or_straddles,omitempty"`
	BringIn           float64   `toml:"bring_in,omitzero"`
	SmallBet          float64   `toml:"small_bet,omitzero"`
	BigBet            float64   `toml:"big_bet,omitzero"`
	MinBet            float64   `toml:"min_bet,omitzero"`
	StartingStacks    []float64 `toml:"starting_stacks"`
	Winnings          []float64 `toml:"winnings,omitempty"`
	Actions           []string  `toml:"actions"`
	Players           []string  `toml:"players,omitempty"`
	HandID            string    `toml:"hand"`
	Currency          string    `toml:"currency,omitempty"`
	Time              string    `toml:"time,omitempty"`
	TimeZone          string    `toml:"time_zone,omitempty"`
	Day               int       `toml:"day,omitempty"`
	Month             int       `toml:"month,omitempty"`
	Year              int       `toml:"year,omitempty"`

	Timestamp time.Time `toml:"-"`
}
