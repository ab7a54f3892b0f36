// Package hazard detects forbidden transitions between adjacent
// instruction classes. It is a detection system, not an enforcement
// system: events are structural findings for reporting, never grounds
// for rejecting or mutating input.
package hazard

import (
	"github.com/leapstack-labs/glyphdec/pkg/grammar"
	"github.com/leapstack-labs/glyphdec/pkg/tables"
	"github.com/leapstack-labs/glyphdec/pkg/token"
)

// Event is one detected forbidden transition. Pos locates the second
// token of the offending pair.
type Event struct {
	Category string
	Prev     string
	Next     string
	Pos      token.Position
}

// Table is the immutable forbidden-pair set. Pairs are directional:
// (A, B) forbidden says nothing about (B, A).
type Table struct {
	byPair     map[[2]string]string // (prev, next) -> category
	categories []string             // declaration order, unique
}

// NewTable builds the lookup from the loaded hazard rows.
func NewTable(ts *tables.Set) *Table {
	t := &Table{byPair: make(map[[2]string]string, len(ts.Hazards))}
	seen := make(map[string]bool)
	for _, row := range ts.Hazards {
		t.byPair[[2]string{row.Prev, row.Next}] = row.Category
		if !seen[row.Category] {
			seen[row.Category] = true
			t.categories = append(t.categories, row.Category)
		}
	}
	return t
}

// Check reports whether the ordered pair (prev, next) is forbidden and,
// if so, under which category.
func (t *Table) Check(prev, next string) (string, bool) {
	cat, ok := t.byPair[[2]string{prev, next}]
	return cat, ok
}

// Categories returns the category names in declaration order.
func (t *Table) Categories() []string {
	return t.categories
}

// Len returns the number of forbidden pairs.
func (t *Table) Len() int {
	return len(t.byPair)
}

// Validator walks a folio's classified tokens in document order and
// emits an Event for every forbidden adjacent pair. State is a single
// previous-class register; O(1) per token, no backtracking.
//
// In the default within-line mode the register resets at every line
// boundary. With crossLine enabled it survives line boundaries and
// resets only at paragraph boundaries.
type Validator struct {
	table     *Table
	crossLine bool
	prev      string
	hasPrev   bool
}

// NewValidator creates a validator over the given table.
func NewValidator(table *Table, crossLine bool) *Validator {
	return &Validator{table: table, crossLine: crossLine}
}

// StartParagraph resets the register unconditionally.
func (v *Validator) StartParagraph() {
	v.prev = ""
	v.hasPrev = false
}

// StartLine resets the register unless cross-line checking is enabled.
func (v *Validator) StartLine() {
	if !v.crossLine {
		v.prev = ""
		v.hasPrev = false
	}
}

// Observe feeds the next token's class. Unclassified tokens neither
// produce events nor touch the register: the register holds the
// previous classified token, and residue tokens never appear in events.
func (v *Validator) Observe(cl grammar.Class, pos token.Position) (Event, bool) {
	if !cl.IsClassified() {
		return Event{}, false
	}
	defer func() {
		v.prev = cl.ID
		v.hasPrev = true
	}()
	if !v.hasPrev {
		return Event{}, false
	}
	cat, forbidden := v.table.Check(v.prev, cl.ID)
	if !forbidden {
		return Event{}, false
	}
	return Event{Category: cat, Prev: v.prev, Next: cl.ID, Pos: pos}, true
}
