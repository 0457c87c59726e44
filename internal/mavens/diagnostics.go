package mavens

import (
	"fmt"

	"github.com/rs/zerolog"
)

// DiagnosticKind classifies a data anomaly found while converting a hand.
type DiagnosticKind string

const (
	KindUnknownVariant   DiagnosticKind = "unknown-variant"
	KindUnknownStructure DiagnosticKind = "unknown-structure"
	KindUnknownPlayer    DiagnosticKind = "unknown-player"
	KindUnknownPost      DiagnosticKind = "unknown-post"
	KindBadAmount        DiagnosticKind = "bad-amount"
	KindNoWinners        DiagnosticKind = "no-winners"
	KindMultipleWinners  DiagnosticKind = "multiple-winners-no-showdown"
	KindMissingTable     DiagnosticKind = "missing-table"
)

// Diagnostic is an advisory report scoped to a single hand. It never aborts a run.
type Diagnostic struct {
	HandID  string
	Kind    DiagnosticKind
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("hand %s: %s: %s", d.HandID, d.Kind, d.Message)
}

// Sink receives diagnostics as they are produced.
type Sink func(Diagnostic)

// Discard drops every diagnostic.
func Discard(Diagnostic) {}

// LogSink reports diagnostics as warnings on logger.
func LogSink(logger zerolog.Logger) Sink {
	return func(d Diagnostic) {
		logger.Warn().
			Str("hand", d.HandID).
			Str("kind", string(d.Kind)).
			Msg(d.Message)
	}
}

// Tee fans a diagnostic out to several sinks.
func Tee(sinks ...Sink) Sink {
	return func(d Diagnostic) {
		for _, s := range sinks {
			if s != nil {
				s(d)
			}
		}
	}
}

// Collector keeps diagnostics in memory.
type Collector struct {
	Diagnostics []Diagnostic
}

// Sink returns a Sink appending to the collector.
func (c *Collector) Sink() Sink {
	return func(d Diagnostic) {
		c.Diagnostics = append(c.Diagnostics, d)
	}
}

// Kinds lists the collected diagnostic kinds in order.
func (c *Collector) Kinds() []DiagnosticKind {
	kinds := make([]DiagnosticKind, len(c.Diagnostics))
	for i, d := range c.Diagnostics {
		kinds[i] = d.Kind
	}
	return kinds
}
