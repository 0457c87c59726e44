package mavens

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/lox/ohhconv/internal/tables"
)

var (
	reHandHeader = regexp.MustCompile(`Hand #(\d*-\d*) - (.*)$`)
	reTable      = regexp.MustCompile(`Table: (.*)$`)
)

// HeaderTimeLayout is the local timestamp layout of a hand header.
const HeaderTimeLayout = "2006-01-02 15:04:05"

const maxLineSize = 1024 * 1024

// RawHand is the unparsed text of one hand.
type RawHand struct {
	ID        string
	Timestamp time.Time
	Table     string
	Lines     []string
}

// Splitter cuts log text into per-hand blocks. Hands are keyed by id, so a hand
// seen in several inputs is kept once (last read wins).
type Splitter struct {
	loc      *time.Location
	registry *tables.Registry
	hands    map[string]RawHand
}

// NewSplitter returns a splitter interpreting header times in loc and
// registering every table it sees in registry. registry may be nil.
func NewSplitter(loc *time.Location, registry *tables.Registry) *Splitter {
	if loc == nil {
		loc = time.UTC
	}
	return &Splitter{
		loc:      loc,
		registry: registry,
		hands:    make(map[string]RawHand),
	}
}

// Add scans r and records every hand it contains. Lines outside a hand block
// and headers with malformed timestamps are skipped.
func (s *Splitter) Add(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		current *RawHand
		inHand  bool
	)
	flush := func() {
		if current != nil {
			s.hands[current.ID] = *current
		}
		current = nil
		inHand = false
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		if inHand {
			if strings.TrimSpace(line) == "" {
				flush()
				continue
			}
			if m := reTable.FindStringSubmatch(line); m != nil {
				current.Table = strings.TrimSpace(m[1])
				if s.registry != nil {
					s.registry.Register(current.Table)
				}
			}
			current.Lines = append(current.Lines, line)
			continue
		}

		m := reHandHeader.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ts, err := time.ParseInLocation(HeaderTimeLayout, strings.TrimSpace(m[2]), s.loc)
		if err != nil {
			continue
		}
		current = &RawHand{ID: m[1], Timestamp: ts}
		inHand = true
	}
	flush()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("split hands: %w", err)
	}
	return nil
}

// AddString is Add for in-memory text.
func (s *Splitter) AddString(text string) error {
	return s.Add(strings.NewReader(text))
}

// Hands returns the hands found so far keyed by hand id.
func (s *Splitter) Hands() map[string]RawHand {
	return s.hands
}

// Len returns the number of distinct hands found.
func (s *Splitter) Len() int {
	return len(s.hands)
}

// Chronological returns the hands ordered by timestamp, ties broken by id.
func (s *Splitter) Chronological() []RawHand {
	return SortChronological(s.hands)
}

// SortChronological orders hands by timestamp, ties broken by id.
func SortChronological(hands map[string]RawHand) []RawHand {
	out := make([]RawHand, 0, len(hands))
	for _, h := range hands {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
