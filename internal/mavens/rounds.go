package mavens

import (
	"strings"

	"github.com/lox/ohhconv/internal/ohh"
)

var streetMarkers = map[string]ohh.Street{
	"Flop":       ohh.StreetFlop,
	"Turn":       ohh.StreetTurn,
	"River":      ohh.StreetRiver,
	"4th Street": ohh.StreetFourth,
	"5th Street": ohh.StreetFifth,
	"6th Street": ohh.StreetSixth,
	"Show Down":  ohh.StreetShowdown,
}

const (
	holeCardsMarker = "Hole Cards"
	showDownMarker  = "Show Down"
)

// MarkerStreet maps a round marker label to the street it opens. Hole cards and
// unknown labels report false.
func MarkerStreet(label string) (ohh.Street, bool) {
	if street, ok := streetMarkers[label]; ok {
		return street, true
	}
	if strings.Contains(label, showDownMarker) {
		return ohh.StreetShowdown, true
	}
	return "", false
}

// RoundTracker owns the current betting round of one hand. It is either idle
// (no active round) or in a round with its own action counter.
type RoundTracker struct {
	first   ohh.Street
	closed  []ohh.Round
	current *ohh.Round
	nextID  int
}

// NewRoundTracker returns an idle tracker whose opening round uses first.
func NewRoundTracker(first ohh.Street) *RoundTracker {
	return &RoundTracker{first: first}
}

// SetFirstStreet changes the opening street label. It has no effect once a round is open.
func (t *RoundTracker) SetFirstStreet(first ohh.Street) {
	t.first = first
}

// Active reports whether a round is open.
func (t *RoundTracker) Active() bool {
	return t.current != nil
}

// Current returns the open round, or nil.
func (t *RoundTracker) Current() *ohh.Round {
	return t.current
}

// Open starts round 0 with the opening street if no round is active.
func (t *RoundTracker) Open() {
	if t.current != nil {
		return
	}
	t.open(t.first, []string{})
}

// Advance closes the active round and opens the next one on street with the
// given board cards. An idle tracker opens round 0 first.
func (t *RoundTracker) Advance(street ohh.Street, cards []string) {
	t.Open()
	t.closed = append(t.closed, *t.current)
	if cards == nil {
		cards = []string{}
	}
	t.open(street, cards)
}

func (t *RoundTracker) open(street ohh.Street, cards []string) {
	t.current = &ohh.Round{
		ID:      t.nextID,
		Street:  street,
		Cards:   cards,
		Actions: []ohh.Action{},
	}
	t.nextID++
}

// Append numbers action within the active round and records it, opening round 0 if idle.
func (t *RoundTracker) Append(action ohh.Action) {
	t.Open()
	action.Number = len(t.current.Actions)
	t.current.Actions = append(t.current.Actions, action)
}

// Finish closes the active round and returns every round in order. The tracker
// must not be used afterwards.
func (t *RoundTracker) Finish() []ohh.Round {
	rounds := t.closed
	if t.current != nil {
		rounds = append(rounds, *t.current)
		t.current = nil
	}
	if rounds == nil {
		rounds = []ohh.Round{}
	}
	t.closed = nil
	return rounds
}
