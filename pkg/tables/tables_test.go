package tables

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_EmbeddedDefaults(t *testing.T) {
	ts, err := Load("")
	if err != nil {
		t.Fatalf("failed to load embedded tables: %v", err)
	}

	if len(ts.Classes) != 49 {
		t.Errorf("expected 49 classes, got %d", len(ts.Classes))
	}
	if len(ts.States) != 49 {
		t.Errorf("expected 49 state rows, got %d", len(ts.States))
	}
	if len(ts.Hazards) != 17 {
		t.Errorf("expected 17 hazard pairs, got %d", len(ts.Hazards))
	}
	if len(ts.Prefixes) != 8 {
		t.Errorf("expected 8 prefixes, got %d", len(ts.Prefixes))
	}
	if len(ts.Kernel.Alphabet) != 3 {
		t.Errorf("expected 3 kernel symbols, got %d", len(ts.Kernel.Alphabet))
	}
	if len(ts.Kernel.ParagraphMarkers) != 4 {
		t.Errorf("expected 4 paragraph markers, got %d", len(ts.Kernel.ParagraphMarkers))
	}
}

func TestLoad_DeterministicOrder(t *testing.T) {
	a, err := Load("")
	if err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	b, err := Load("")
	if err != nil {
		t.Fatalf("second load failed: %v", err)
	}

	for i := range a.Classes {
		if a.Classes[i] != b.Classes[i] {
			t.Fatalf("class order not stable at index %d: %v vs %v", i, a.Classes[i], b.Classes[i])
		}
	}
	for i := range a.Prefixes {
		if a.Prefixes[i] != b.Prefixes[i] {
			t.Fatalf("prefix order not stable at index %d", i)
		}
	}
}

func TestLoad_OverrideDirectory(t *testing.T) {
	dir := t.TempDir()
	override := `# minimal articulator override
entries:
  - z
`
	if err := os.WriteFile(filepath.Join(dir, FileArticulators), []byte(override), 0644); err != nil {
		t.Fatalf("failed to write override: %v", err)
	}

	ts, err := Load(dir)
	if err != nil {
		t.Fatalf("failed to load with override: %v", err)
	}

	if len(ts.Articulators) != 1 || ts.Articulators[0] != "z" {
		t.Errorf("expected overridden articulators [z], got %v", ts.Articulators)
	}
	// Files absent from the override directory keep their embedded values.
	if len(ts.Classes) != 49 {
		t.Errorf("expected embedded classes to survive partial override, got %d", len(ts.Classes))
	}
}

func TestLoad_MalformedOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileClasses), []byte("classes: [not, valid, rows"), 0644); err != nil {
		t.Fatalf("failed to write override: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Error("expected error for malformed classes override, got nil")
	}
}

func TestValidate_DuplicateClassID(t *testing.T) {
	ts, err := Load("")
	if err != nil {
		t.Fatalf("failed to load tables: %v", err)
	}

	ts.Classes = append(ts.Classes, ts.Classes[0])
	if err := ts.Validate(); err == nil {
		t.Error("expected error for duplicate class row, got nil")
	}
}

func TestValidate_StatesNotTotal(t *testing.T) {
	ts, err := Load("")
	if err != nil {
		t.Fatalf("failed to load tables: %v", err)
	}

	delete(ts.States, "CC_1")
	if err := ts.Validate(); err == nil {
		t.Error("expected error for class without macro-state, got nil")
	}
}

func TestValidate_HazardUnknownClass(t *testing.T) {
	ts, err := Load("")
	if err != nil {
		t.Fatalf("failed to load tables: %v", err)
	}

	ts.Hazards = append(ts.Hazards, HazardRow{Category: "control_break", Prev: "CC_1", Next: "ZZ_9"})
	if err := ts.Validate(); err == nil {
		t.Error("expected error for hazard referencing unknown class, got nil")
	}
}

func TestValidate_DirectionalHazards(t *testing.T) {
	ts, err := Load("")
	if err != nil {
		t.Fatalf("failed to load tables: %v", err)
	}

	// EN_3 -> FL_7 is forbidden; its reverse must not be listed, or the
	// directionality of the pair table would be meaningless.
	forward, reverse := false, false
	for _, h := range ts.Hazards {
		if h.Prev == "EN_3" && h.Next == "FL_7" {
			forward = true
		}
		if h.Prev == "FL_7" && h.Next == "EN_3" {
			reverse = true
		}
	}
	if !forward {
		t.Error("expected EN_3 -> FL_7 in the hazard table")
	}
	if reverse {
		t.Error("FL_7 -> EN_3 must not be listed; pairs are directional")
	}
}
