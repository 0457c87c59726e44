// Package tables groups converted hands by table and tracks per-table progress.
package tables

import (
	"time"

	"github.com/google/uuid"

	"github.com/lox/ohhconv/internal/ohh"
)

// handleNamespace seeds name-based table handles. Changing it changes every
// handle ever written, so it is fixed.
var handleNamespace = uuid.MustParse("6f1b2c4e-3d5a-5e7f-9a0b-1c2d3e4f5a6b")

// Handle derives the persistent handle for a table name.
func Handle(name string) string {
	return uuid.NewSHA1(handleNamespace, []byte(name)).String()
}

// Table is a poker table seen in the input and the hands converted for it.
type Table struct {
	Name         string
	Handle       string
	HandCount    int
	LatestTime   time.Time
	LatestHandID string
	Hands        []*ohh.Hand
}

// Registry owns every table for one run. It is not safe for concurrent use.
type Registry struct {
	tables map[string]*Table
	order  []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]*Table)}
}

// Register returns the table called name, creating it on first sight.
func (r *Registry) Register(name string) *Table {
	if t, ok := r.tables[name]; ok {
		return t
	}
	t := &Table{Name: name, Handle: Handle(name)}
	r.tables[name] = t
	r.order = append(r.order, name)
	return t
}

// Get looks up a table by name.
func (r *Registry) Get(name string) (*Table, bool) {
	t, ok := r.tables[name]
	return t, ok
}

// Tables returns the tables in the order they were first registered.
func (r *Registry) Tables() []*Table {
	out := make([]*Table, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tables[name])
	}
	return out
}

// Len returns the number of registered tables.
func (r *Registry) Len() int {
	return len(r.order)
}

// Record adds a completed hand to its table. Hands are expected in
// chronological order, but the latest marker only moves forward in time.
func (r *Registry) Record(hand *ohh.Hand) *Table {
	t := r.Register(hand.TableName)
	t.HandCount++
	if t.LatestHandID == "" || !hand.StartTime.Before(t.LatestTime) {
		t.LatestTime = hand.StartTime
		t.LatestHandID = hand.GameNumber
	}
	t.Hands = append(t.Hands, hand)
	return t
}

// HandTotal returns the number of hands recorded across all tables.
func (r *Registry) HandTotal() int {
	total := 0
	for _, t := range r.tables {
		total += t.HandCount
	}
	return total
}
