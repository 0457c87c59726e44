package mavens

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Log line patterns, Poker Mavens ring game format.
var (
	reSite   = regexp.MustCompile(`Site: (.+)$`)
	reGame   = regexp.MustCompile(`Game: (\w+) ([^(]+) \([^)]+\)(.*)$`)
	reBlinds = regexp.MustCompile(`Blinds ([\d.]+)/([\d.]+)`)
	reAnte   = regexp.MustCompile(`Ante ([\d.]+)`)

	reSeat       = regexp.MustCompile(`Seat (\d+): (\w+) \(([\d.]+)\)`)
	reSittingOut = regexp.MustCompile(`(sitting|waiting)`)
	reDealer     = regexp.MustCompile(`^(.+) has the dealer button`)

	rePost        = regexp.MustCompile(`^(\w+) (posts .*) ([\d.]+)$`)
	reMarker      = regexp.MustCompile(`\*\* ([^*]+) \*\*`)
	reMarkerCards = regexp.MustCompile(`\*\* \[([^\[]*)\]`)
	reAddOn       = regexp.MustCompile(`(\w+) adds ([\d.]+) chip`)
	reDealt       = regexp.MustCompile(`Dealt to (\w+) \[([^\]]*)\]`)
	reCheck       = regexp.MustCompile(`(\w+) checks`)
	reFold        = regexp.MustCompile(`(\w+) folds`)
	reBet         = regexp.MustCompile(`(\w+) (bets|calls|raises to|brings in for) ([\d.]+)`)
	reAllIn       = regexp.MustCompile(`\(All-in\)`)
	reShow        = regexp.MustCompile(`(\w+) shows \[([^\]]*)\]`)
	reRefund      = regexp.MustCompile(`(\w+) refunded ([\d.]+)`)
	reWin         = regexp.MustCompile(`(\w+) (wins|splits).*Pot (\d+)? *\(([\d.]+)\)`)
)

// PostBothBlinds is the post verb that expands into a small and a big blind.
const PostBothBlinds = "posts small & big blind"

// LineKind identifies which log-line shape a line matched.
type LineKind int

const (
	LineNone LineKind = iota
	LineSite
	LineGame
	LineSeat
	LineDealer
	LinePost
	LineMarker
	LineAddOn
	LineDealt
	LineCheck
	LineFold
	LineBet
	LineShow
	LineRefund
	LineWin
)

var lineKindNames = [...]string{
	"none", "site", "game", "seat", "dealer", "post", "marker", "add-on",
	"dealt", "check", "fold", "bet", "show", "refund", "win",
}

func (k LineKind) String() string {
	if int(k) < len(lineKindNames) {
		return lineKindNames[k]
	}
	return "LineKind(" + strconv.Itoa(int(k)) + ")"
}

// Phase is how far into a hand's text the builder has read. Some line shapes
// are only meaningful in early phases.
type Phase int

const (
	// PhaseHeader is before any seat line.
	PhaseHeader Phase = iota
	// PhaseSeating is after the first seat line and before dealing starts.
	PhaseSeating
	// PhaseDealing is once the first round has opened.
	PhaseDealing
)

// Line is a classified log line. Only the fields relevant to Kind are set.
type Line struct {
	Kind   LineKind
	Player string

	// Verb holds the site name, game variant, marker label, post verb or bet verb.
	Verb      string
	Structure string
	Terms     string

	Seat       int
	SittingOut bool
	Amount     decimal.Decimal
	Cards      []string
	AllIn      bool
	Pot        int
}

type classifier struct {
	kind     LineKind
	maxPhase Phase
	match    func(line string) (Line, bool, error)
}

// classifiers in priority order; the first match consumes the line.
var classifiers = []classifier{
	{LineSite, PhaseHeader, matchSite},
	{LineGame, PhaseHeader, matchGame},
	{LineSeat, PhaseSeating, matchSeat},
	{LineDealer, PhaseSeating, matchDealer},
	{LinePost, PhaseDealing, matchPost},
	{LineMarker, PhaseDealing, matchMarker},
	{LineAddOn, PhaseDealing, matchAddOn},
	{LineDealt, PhaseDealing, matchDealt},
	{LineCheck, PhaseDealing, matchPlayerOnly(reCheck, LineCheck)},
	{LineFold, PhaseDealing, matchPlayerOnly(reFold, LineFold)},
	{LineBet, PhaseDealing, matchBet},
	{LineShow, PhaseDealing, matchShow},
	{LineRefund, PhaseDealing, matchRefund},
	{LineWin, PhaseDealing, matchWin},
}

// Classify tests line against every classifier allowed in phase and returns the
// first match. A line matching nothing yields Kind LineNone. An error means the
// line had a recognised shape but an unparseable amount.
func Classify(line string, phase Phase) (Line, error) {
	for _, c := range classifiers {
		if phase > c.maxPhase {
			continue
		}
		l, ok, err := c.match(line)
		if err != nil {
			return Line{Kind: c.kind}, err
		}
		if ok {
			l.Kind = c.kind
			return l, nil
		}
	}
	return Line{Kind: LineNone}, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

// SplitCards turns a bracketed card list body into tokens.
func SplitCards(s string) []string {
	fields := strings.Fields(s)
	if fields == nil {
		return []string{}
	}
	return fields
}

func matchSite(line string) (Line, bool, error) {
	m := reSite.FindStringSubmatch(line)
	if m == nil {
		return Line{}, false, nil
	}
	return Line{Verb: strings.TrimSpace(m[1])}, true, nil
}

func matchGame(line string) (Line, bool, error) {
	m := reGame.FindStringSubmatch(line)
	if m == nil {
		return Line{}, false, nil
	}
	return Line{Structure: m[1], Verb: m[2], Terms: m[3]}, true, nil
}

func matchSeat(line string) (Line, bool, error) {
	m := reSeat.FindStringSubmatch(line)
	if m == nil {
		return Line{}, false, nil
	}
	seat, err := strconv.Atoi(m[1])
	if err != nil {
		return Line{}, false, fmt.Errorf("invalid seat %q", m[1])
	}
	stack, err := parseAmount(m[3])
	if err != nil {
		return Line{}, false, err
	}
	return Line{
		Player:     m[2],
		Seat:       seat,
		Amount:     stack,
		SittingOut: reSittingOut.MatchString(line),
	}, true, nil
}

func matchDealer(line string) (Line, bool, error) {
	m := reDealer.FindStringSubmatch(line)
	if m == nil {
		return Line{}, false, nil
	}
	return Line{Player: strings.TrimSpace(m[1])}, true, nil
}

func matchPost(line string) (Line, bool, error) {
	m := rePost.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Line{}, false, nil
	}
	amount, err := parseAmount(m[3])
	if err != nil {
		return Line{}, false, err
	}
	return Line{Player: m[1], Verb: m[2], Amount: amount}, true, nil
}

func matchMarker(line string) (Line, bool, error) {
	m := reMarker.FindStringSubmatch(line)
	if m == nil {
		return Line{}, false, nil
	}
	l := Line{Verb: strings.TrimSpace(m[1]), Cards: []string{}}
	if cards := reMarkerCards.FindStringSubmatch(line); cards != nil {
		l.Cards = SplitCards(cards[1])
	}
	return l, true, nil
}

func matchAddOn(line string) (Line, bool, error) {
	m := reAddOn.FindStringSubmatch(line)
	if m == nil {
		return Line{}, false, nil
	}
	amount, err := parseAmount(m[2])
	if err != nil {
		return Line{}, false, err
	}
	return Line{Player: m[1], Amount: amount}, true, nil
}

func matchDealt(line string) (Line, bool, error) {
	m := reDealt.FindStringSubmatch(line)
	if m == nil {
		return Line{}, false, nil
	}
	return Line{Player: m[1], Cards: SplitCards(m[2])}, true, nil
}

func matchPlayerOnly(re *regexp.Regexp, kind LineKind) func(string) (Line, bool, error) {
	return func(line string) (Line, bool, error) {
		m := re.FindStringSubmatch(line)
		if m == nil {
			return Line{}, false, nil
		}
		return Line{Kind: kind, Player: m[1]}, true, nil
	}
}

func matchBet(line string) (Line, bool, error) {
	m := reBet.FindStringSubmatch(line)
	if m == nil {
		return Line{}, false, nil
	}
	amount, err := parseAmount(m[3])
	if err != nil {
		return Line{}, false, err
	}
	return Line{
		Player: m[1],
		Verb:   m[2],
		Amount: amount,
		AllIn:  reAllIn.MatchString(line),
	}, true, nil
}

func matchShow(line string) (Line, bool, error) {
	m := reShow.FindStringSubmatch(line)
	if m == nil {
		return Line{}, false, nil
	}
	return Line{Player: m[1], Cards: SplitCards(m[2])}, true, nil
}

func matchRefund(line string) (Line, bool, error) {
	m := reRefund.FindStringSubmatch(line)
	if m == nil {
		return Line{}, false, nil
	}
	amount, err := parseAmount(m[2])
	if err != nil {
		return Line{}, false, err
	}
	return Line{Player: m[1], Amount: amount}, true, nil
}

func matchWin(line string) (Line, bool, error) {
	m := reWin.FindStringSubmatch(line)
	if m == nil {
		return Line{}, false, nil
	}
	pot := 0
	if m[3] != "" {
		n, err := strconv.Atoi(m[3])
		if err != nil {
			return Line{}, false, fmt.Errorf("invalid pot number %q", m[3])
		}
		pot = n
	}
	amount, err := parseAmount(m[4])
	if err != nil {
		return Line{}, false, err
	}
	return Line{Player: m[1], Verb: m[2], Pot: pot, Amount: amount}, true, nil
}
