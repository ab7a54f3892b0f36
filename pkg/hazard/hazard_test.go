package hazard

import (
	"testing"

	"github.com/leapstack-labs/glyphdec/pkg/grammar"
	"github.com/leapstack-labs/glyphdec/pkg/tables"
	"github.com/leapstack-labs/glyphdec/pkg/token"
)

func newTable(t *testing.T) *Table {
	t.Helper()
	ts, err := tables.Load("")
	if err != nil {
		t.Fatalf("failed to load tables: %v", err)
	}
	return NewTable(ts)
}

func class(t *testing.T, id string) grammar.Class {
	t.Helper()
	ts, err := tables.Load("")
	if err != nil {
		t.Fatalf("failed to load tables: %v", err)
	}
	c, err := grammar.NewClassifier(ts)
	if err != nil {
		t.Fatalf("failed to build classifier: %v", err)
	}
	cl, ok := c.Lookup(id)
	if !ok {
		t.Fatalf("class %s not in table", id)
	}
	return cl
}

func pos(line, index int) token.Position {
	return token.Position{Folio: "f1r", Line: line, Index: index}
}

func TestCheck_Directional(t *testing.T) {
	tbl := newTable(t)

	cat, forbidden := tbl.Check("EN_3", "FL_7")
	if !forbidden {
		t.Fatal("EN_3 -> FL_7 should be forbidden")
	}
	if cat != "energy_cascade" {
		t.Errorf("category = %q, want energy_cascade", cat)
	}
	if _, forbidden := tbl.Check("FL_7", "EN_3"); forbidden {
		t.Error("FL_7 -> EN_3 should be allowed; pairs are directional")
	}
}

func TestCheck_SelfTransition(t *testing.T) {
	tbl := newTable(t)

	if _, forbidden := tbl.Check("FL_5", "FL_5"); !forbidden {
		t.Error("FL_5 -> FL_5 is a listed self-pair")
	}
	if _, forbidden := tbl.Check("EN_3", "EN_3"); forbidden {
		t.Error("EN_3 -> EN_3 is not listed and must be allowed")
	}
}

func TestValidator_AdjacentPairOnly(t *testing.T) {
	tbl := newTable(t)
	v := NewValidator(tbl, false)
	v.StartParagraph()
	v.StartLine()

	// CC_1, EN_3, EN_3, FL_7: exactly one event, at the EN_3 -> FL_7
	// boundary. CC_1 -> EN_3 and the EN_3 repetition are fine.
	seq := []string{"CC_1", "EN_3", "EN_3", "FL_7"}
	var events []Event
	for i, id := range seq {
		if ev, ok := v.Observe(class(t, id), pos(1, i)); ok {
			events = append(events, ev)
		}
	}

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d: %v", len(events), events)
	}
	ev := events[0]
	if ev.Prev != "EN_3" || ev.Next != "FL_7" {
		t.Errorf("event pair = %s -> %s, want EN_3 -> FL_7", ev.Prev, ev.Next)
	}
	if ev.Category != "energy_cascade" {
		t.Errorf("category = %q, want energy_cascade", ev.Category)
	}
	if ev.Pos.Index != 3 {
		t.Errorf("event position index = %d, want 3 (second token of the pair)", ev.Pos.Index)
	}
}

func TestValidator_UnclassifiedSkipsRegister(t *testing.T) {
	tbl := newTable(t)
	v := NewValidator(tbl, false)
	v.StartParagraph()
	v.StartLine()

	// An unclassified token between EN_3 and FL_7 does not clear the
	// register: the pair is still adjacent among classified tokens.
	if _, ok := v.Observe(class(t, "EN_3"), pos(1, 0)); ok {
		t.Fatal("no event expected for first token")
	}
	if _, ok := v.Observe(grammar.Unclassified, pos(1, 1)); ok {
		t.Fatal("unclassified tokens never appear in events")
	}
	ev, ok := v.Observe(class(t, "FL_7"), pos(1, 2))
	if !ok {
		t.Fatal("expected EN_3 -> FL_7 event across the residue token")
	}
	if ev.Prev != "EN_3" || ev.Next != "FL_7" {
		t.Errorf("event pair = %s -> %s, want EN_3 -> FL_7", ev.Prev, ev.Next)
	}
}

func TestValidator_LineBoundaryResets(t *testing.T) {
	tbl := newTable(t)
	v := NewValidator(tbl, false)
	v.StartParagraph()

	v.StartLine()
	if _, ok := v.Observe(class(t, "EN_3"), pos(1, 0)); ok {
		t.Fatal("no event expected")
	}

	v.StartLine()
	if _, ok := v.Observe(class(t, "FL_7"), pos(2, 0)); ok {
		t.Error("within-line mode must not pair across a line boundary")
	}
}

func TestValidator_CrossLineMode(t *testing.T) {
	tbl := newTable(t)
	v := NewValidator(tbl, true)
	v.StartParagraph()

	v.StartLine()
	if _, ok := v.Observe(class(t, "EN_3"), pos(1, 0)); ok {
		t.Fatal("no event expected")
	}

	v.StartLine()
	ev, ok := v.Observe(class(t, "FL_7"), pos(2, 0))
	if !ok {
		t.Fatal("cross-line mode should pair across the line boundary")
	}
	if ev.Prev != "EN_3" {
		t.Errorf("prev = %s, want EN_3", ev.Prev)
	}

	// Paragraph boundaries reset even in cross-line mode.
	v.StartParagraph()
	v.StartLine()
	if _, ok := v.Observe(class(t, "FL_7"), pos(3, 0)); ok {
		t.Error("paragraph boundary must reset the register")
	}
}

func TestValidator_FirstTokenNeverFires(t *testing.T) {
	tbl := newTable(t)
	v := NewValidator(tbl, false)
	v.StartParagraph()
	v.StartLine()

	if _, ok := v.Observe(class(t, "FL_5"), pos(1, 0)); ok {
		t.Error("a line's first classified token has no predecessor")
	}
}

func TestCategories(t *testing.T) {
	tbl := newTable(t)

	want := []string{"control_break", "energy_cascade", "flow_stall", "impact_chain", "residue_bridge"}
	got := tbl.Categories()
	if len(got) != len(want) {
		t.Fatalf("categories = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("categories[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if tbl.Len() != 17 {
		t.Errorf("Len() = %d, want 17", tbl.Len())
	}
}
