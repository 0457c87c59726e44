// Package mavens converts Poker Mavens ring game hand histories into OHH hands.
package mavens

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lox/ohhconv/internal/ohh"
)

var games = map[string]ohh.GameType{
	"Hold'em":       ohh.GameHoldem,
	"Omaha Hi-Lo":   ohh.GameOmahaHiLo,
	"Omaha":         ohh.GameOmaha,
	"Omaha-5":       ohh.GameOmaha,
	"Omaha-5 Hi-Lo": ohh.GameOmahaHiLo,
	"Stud Hi-Lo":    ohh.GameStudHiLo,
	"Stud":          ohh.GameStud,
	"Razz":          ohh.GameStud,
}

var structures = map[string]ohh.BetType{
	"Limit": ohh.BetFixedLimit,
	"PL":    ohh.BetPotLimit,
	"NL":    ohh.BetNoLimit,
}

var postKinds = map[string]ohh.ActionKind{
	"posts ante":        ohh.ActionPostAnte,
	"posts big blind":   ohh.ActionPostBB,
	"posts small blind": ohh.ActionPostSB,
	"posts straddle":    ohh.ActionStraddle,
}

var betKinds = map[string]ohh.ActionKind{
	"bets":          ohh.ActionBet,
	"brings in for": ohh.ActionBringIn,
	"calls":         ohh.ActionCall,
	"raises to":     ohh.ActionRaise,
}

// Options are the per-run settings the builder needs.
type Options struct {
	HeroName string
	Currency string
}

// Builder turns raw hands into OHH hands. A Builder holds no per-hand state and
// may be reused for every hand of a run.
type Builder struct {
	opts Options
	sink Sink
}

// NewBuilder returns a builder reporting diagnostics to sink.
func NewBuilder(opts Options, sink Sink) *Builder {
	if sink == nil {
		sink = Discard
	}
	return &Builder{opts: opts, sink: sink}
}

// Draft is a hand whose text has been read but whose pots are not yet resolved
// and whose showdown is not yet checked.
type Draft struct {
	Hand    *ohh.Hand
	Pots    *PotAccumulator
	Winners []int
	// Refunds holds uncalled bets returned to each seat. They never appear in
	// the OHH record.
	Refunds map[int]decimal.Decimal
}

// Convert builds raw, resolves its pots and completes its showdown.
func (b *Builder) Convert(raw RawHand, handle string) *ohh.Hand {
	return b.Complete(b.Build(raw, handle))
}

// Complete resolves the draft's pots and completes its showdown.
func (b *Builder) Complete(d *Draft) *ohh.Hand {
	d.Hand.Pots = ResolvePots(d.Pots)
	CompleteShowdown(d.Hand, d.Winners, b.sink)
	return d.Hand
}

// Build reads every line of raw into a draft hand.
func (b *Builder) Build(raw RawHand, handle string) *Draft {
	hand := ohh.NewHand(raw.ID, b.opts.Currency)
	hand.TableName = raw.Table
	hand.TableHandle = handle
	hand.StartTime = raw.Timestamp
	hand.StartDateUTC = raw.Timestamp.UTC().Format("2006-01-02T15:04:05Z")

	s := &handState{
		b:       b,
		hand:    hand,
		rounds:  NewRoundTracker(hand.GameType.FirstStreet()),
		seats:   make(map[string]int),
		won:     make(map[int]bool),
		pots:    NewPotAccumulator(),
		refunds: make(map[int]decimal.Decimal),
	}
	for _, text := range raw.Lines {
		line, err := Classify(text, s.phase)
		if err != nil {
			s.report(KindBadAmount, fmt.Sprintf("%s line %q: %v", line.Kind, text, err))
			continue
		}
		s.apply(line)
	}

	hand.Rounds = s.rounds.Finish()
	if !s.heroPlaying {
		hand.Flags = append(hand.Flags, ohh.FlagObserved)
	}
	return &Draft{Hand: hand, Pots: s.pots, Winners: s.winners, Refunds: s.refunds}
}

// handState is the scratch state of one hand. It is discarded once the hand is built.
type handState struct {
	b           *Builder
	hand        *ohh.Hand
	phase       Phase
	rounds      *RoundTracker
	seats       map[string]int
	heroPlaying bool
	winners     []int
	won         map[int]bool
	pots        *PotAccumulator
	refunds     map[int]decimal.Decimal
}

func (s *handState) report(kind DiagnosticKind, msg string) {
	s.b.sink(Diagnostic{HandID: s.hand.GameNumber, Kind: kind, Message: msg})
}

func (s *handState) seat(name string, kind LineKind) (int, bool) {
	seat, ok := s.seats[name]
	if !ok {
		s.report(KindUnknownPlayer, fmt.Sprintf("%s line names unseated player %q", kind, name))
	}
	return seat, ok
}

func (s *handState) emit(action ohh.Action) {
	s.rounds.Append(action)
	s.phase = PhaseDealing
}

func (s *handState) apply(line Line) {
	switch line.Kind {
	case LineSite:
		s.hand.SiteName = line.Verb
		s.hand.NetworkName = line.Verb

	case LineGame:
		s.applyGame(line)

	case LineSeat:
		s.hand.Players = append(s.hand.Players, ohh.Player{
			ID:            line.Seat,
			Seat:          line.Seat,
			Name:          line.Player,
			Display:       line.Player,
			StartingStack: line.Amount,
		})
		s.seats[line.Player] = line.Seat
		if line.Player == s.b.opts.HeroName {
			seat := line.Seat
			s.hand.HeroPlayerID = &seat
			if !line.SittingOut {
				s.heroPlaying = true
			}
		}
		s.phase = PhaseSeating

	case LineDealer:
		if seat, ok := s.seat(line.Player, line.Kind); ok {
			s.hand.DealerSeat = seat
		}

	case LinePost:
		s.rounds.Open()
		s.phase = PhaseDealing
		s.applyPost(line)

	case LineMarker:
		if line.Verb == holeCardsMarker {
			s.rounds.Open()
			s.phase = PhaseDealing
			return
		}
		if street, ok := MarkerStreet(line.Verb); ok {
			s.rounds.Advance(street, line.Cards)
			s.phase = PhaseDealing
		}

	case LineAddOn:
		seat, ok := s.seats[line.Player]
		if !s.rounds.Active() || !ok {
			return
		}
		s.emit(ohh.Action{PlayerID: seat, Kind: ohh.ActionAddedChips, Amount: ohh.Amount(line.Amount)})

	case LineDealt:
		if seat, ok := s.seat(line.Player, line.Kind); ok {
			s.emit(ohh.Action{PlayerID: seat, Kind: ohh.ActionDealt, Cards: line.Cards})
		}

	case LineCheck:
		if seat, ok := s.seat(line.Player, line.Kind); ok {
			s.emit(ohh.Action{PlayerID: seat, Kind: ohh.ActionCheck})
		}

	case LineFold:
		if seat, ok := s.seat(line.Player, line.Kind); ok {
			s.emit(ohh.Action{PlayerID: seat, Kind: ohh.ActionFold})
		}

	case LineBet:
		if seat, ok := s.seat(line.Player, line.Kind); ok {
			s.emit(ohh.Action{
				PlayerID: seat,
				Kind:     betKinds[line.Verb],
				Amount:   ohh.Amount(line.Amount),
				AllIn:    line.AllIn,
			})
		}

	case LineShow:
		if seat, ok := s.seat(line.Player, line.Kind); ok {
			s.emit(ohh.Action{PlayerID: seat, Kind: ohh.ActionShows, Cards: line.Cards})
		}

	case LineRefund:
		// Uncalled bets are excluded from pots by the importer itself; they
		// are kept aside for result accounting only.
		if seat, ok := s.seats[line.Player]; ok {
			s.refunds[seat] = s.refunds[seat].Add(line.Amount)
		}

	case LineWin:
		seat, ok := s.seat(line.Player, line.Kind)
		if !ok {
			return
		}
		if !s.won[seat] {
			s.won[seat] = true
			s.winners = append(s.winners, seat)
		}
		s.pots.AddWin(line.Pot, seat, line.Amount)
	}
}

func (s *handState) applyGame(line Line) {
	variant := strings.TrimSpace(line.Verb)
	if game, ok := games[variant]; ok {
		s.hand.GameType = game
		s.rounds.SetFirstStreet(game.FirstStreet())
	} else {
		s.report(KindUnknownVariant, fmt.Sprintf("game variant not found: %s", variant))
	}

	if bet, ok := structures[line.Structure]; ok {
		s.hand.BetLimit.BetType = bet
	} else {
		s.report(KindUnknownStructure, fmt.Sprintf("structure not found: %s", line.Structure))
	}

	if m := reBlinds.FindStringSubmatch(line.Terms); m != nil {
		sb, errSB := decimal.NewFromString(m[1])
		bb, errBB := decimal.NewFromString(m[2])
		if errSB != nil || errBB != nil {
			s.report(KindBadAmount, fmt.Sprintf("invalid blinds %s/%s", m[1], m[2]))
		} else {
			s.hand.SmallBlind = sb
			s.hand.BigBlind = bb
		}
	}
	if m := reAnte.FindStringSubmatch(line.Terms); m != nil {
		ante, err := decimal.NewFromString(m[1])
		if err != nil {
			s.report(KindBadAmount, fmt.Sprintf("invalid ante %s", m[1]))
		} else {
			s.hand.Ante = ante
		}
	}
}

func (s *handState) applyPost(line Line) {
	seat, ok := s.seat(line.Player, line.Kind)
	if !ok {
		return
	}
	if line.Verb == PostBothBlinds {
		s.emit(ohh.Action{PlayerID: seat, Kind: ohh.ActionPostSB, Amount: ohh.Amount(s.hand.SmallBlind)})
		s.emit(ohh.Action{PlayerID: seat, Kind: ohh.ActionPostBB, Amount: ohh.Amount(s.hand.BigBlind)})
		return
	}
	kind, ok := postKinds[line.Verb]
	if !ok {
		s.report(KindUnknownPost, fmt.Sprintf("unknown post type %q", line.Verb))
		return
	}
	s.emit(ohh.Action{PlayerID: seat, Kind: kind, Amount: ohh.Amount(line.Amount)})
}
