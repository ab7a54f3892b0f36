package grammar

import (
	"fmt"

	"github.com/leapstack-labs/glyphdec/pkg/morph"
	"github.com/leapstack-labs/glyphdec/pkg/tables"
)

// Classifier maps decompositions to instruction classes and classes to
// macro-states. It is immutable after construction and safe to share.
type Classifier struct {
	classes   []Class
	byID      map[string]Class
	exact     map[string]Class // (prefix, middle, suffixed) -> class
	coarse    map[string]Class // (prefix, suffixed) -> first declared class
	stateByID map[string]MacroState
}

// NewClassifier builds lookup structure from the loaded tables. The
// tables have already been validated, so malformed rows are programmer
// error, not user error.
func NewClassifier(ts *tables.Set) (*Classifier, error) {
	c := &Classifier{
		classes:   make([]Class, 0, len(ts.Classes)),
		byID:      make(map[string]Class, len(ts.Classes)),
		exact:     make(map[string]Class, len(ts.Classes)),
		coarse:    make(map[string]Class, len(ts.Classes)),
		stateByID: make(map[string]MacroState, len(ts.States)),
	}

	for _, row := range ts.Classes {
		role, ok := ParseRole(row.Role)
		if !ok {
			return nil, fmt.Errorf("class %s: unknown role %q", row.ID, row.Role)
		}
		cl := Class{ID: row.ID, Role: role}
		c.classes = append(c.classes, cl)
		c.byID[cl.ID] = cl

		suffixed := row.Suffix == tables.SuffixPresent
		c.exact[compositeKey(row.Prefix, row.Middle, suffixed)] = cl

		// First declaration wins for the coarse fallback key.
		ck := coarseKey(row.Prefix, suffixed)
		if _, taken := c.coarse[ck]; !taken {
			c.coarse[ck] = cl
		}
	}

	for id, name := range ts.States {
		state, ok := ParseMacroState(name)
		if !ok {
			return nil, fmt.Errorf("states table: class %s maps to unknown state %q", id, name)
		}
		c.stateByID[id] = state
	}
	for _, cl := range c.classes {
		if _, ok := c.stateByID[cl.ID]; !ok {
			return nil, fmt.Errorf("states table: class %s has no macro-state", cl.ID)
		}
	}

	return c, nil
}

// Classify returns the instruction class for a decomposition, or
// Unclassified. Absence of a match is an expected outcome, never an
// error: undecomposable tokens and unmatched keys both land in the
// residue bucket.
func (c *Classifier) Classify(d morph.Decomposition) Class {
	if !d.Decomposable() {
		return Unclassified
	}
	if cl, ok := c.exact[compositeKey(d.Prefix, d.Middle, d.HasSuffix())]; ok {
		return cl
	}
	if cl, ok := c.coarse[coarseKey(d.Prefix, d.HasSuffix())]; ok {
		return cl
	}
	return Unclassified
}

// StateOf compresses a class to its macro-state. Total: every table
// class has a state, and the residual class maps to StateResidue.
func (c *Classifier) StateOf(cl Class) MacroState {
	if !cl.IsClassified() {
		return StateResidue
	}
	if s, ok := c.stateByID[cl.ID]; ok {
		return s
	}
	return StateResidue
}

// Lookup returns the class with the given ID.
func (c *Classifier) Lookup(id string) (Class, bool) {
	cl, ok := c.byID[id]
	return cl, ok
}

// Classes returns the class table in declaration order. The returned
// slice is shared; callers must not mutate it.
func (c *Classifier) Classes() []Class {
	return c.classes
}
