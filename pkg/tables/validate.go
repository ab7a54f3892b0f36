package tables

import (
	"fmt"
	"strings"
)

// Roles and macro-state names the class and state tables may reference.
// These are fixed by the grammar, not by the data files.
var (
	validRoles = map[string]bool{
		"CORE_CONTROL":      true,
		"ENERGY_OPERATOR":   true,
		"AUXILIARY":         true,
		"FREQUENT_OPERATOR": true,
		"HIGH_IMPACT":       true,
		"FLOW_OPERATOR":     true,
	}
	validStates = map[string]bool{
		"CC": true, "EN": true, "AX": true,
		"FQ": true, "HI": true, "FL": true,
	}
)

// Validate checks the table set for structural integrity. The same checks
// back the doctor command; a Set that loads successfully always passes.
func (s *Set) Validate() error {
	if err := validateEntries("articulators", s.Articulators); err != nil {
		return err
	}
	if err := validateEntries("prefixes", s.Prefixes); err != nil {
		return err
	}
	if err := validateEntries("suffixes", s.Suffixes); err != nil {
		return err
	}
	if err := validateEntries("middles", s.Middles); err != nil {
		return err
	}

	if len(s.Classes) == 0 {
		return fmt.Errorf("classes table is empty")
	}
	ids := make(map[string]bool, len(s.Classes))
	keys := make(map[string]bool, len(s.Classes))
	prefixes := make(map[string]bool, len(s.Prefixes))
	for _, p := range s.Prefixes {
		prefixes[p] = true
	}
	for i, c := range s.Classes {
		if c.ID == "" {
			return fmt.Errorf("classes[%d]: empty class id", i)
		}
		if ids[c.ID] {
			return fmt.Errorf("classes[%d]: duplicate class id %q", i, c.ID)
		}
		ids[c.ID] = true
		if !validRoles[c.Role] {
			return fmt.Errorf("class %s: unknown role %q", c.ID, c.Role)
		}
		if !prefixes[c.Prefix] {
			return fmt.Errorf("class %s: prefix %q not in prefix table", c.ID, c.Prefix)
		}
		if c.Suffix != SuffixPresent && c.Suffix != SuffixAbsent {
			return fmt.Errorf("class %s: suffix must be %q or %q, got %q",
				c.ID, SuffixPresent, SuffixAbsent, c.Suffix)
		}
		key := c.Prefix + "\x00" + c.Middle + "\x00" + string(c.Suffix)
		if keys[key] {
			return fmt.Errorf("class %s: duplicate composite key (%s, %q, %s)",
				c.ID, c.Prefix, c.Middle, c.Suffix)
		}
		keys[key] = true
	}

	// States must be a total function over the class table.
	for id := range ids {
		state, ok := s.States[id]
		if !ok {
			return fmt.Errorf("states table: class %s has no macro-state", id)
		}
		if !validStates[state] {
			return fmt.Errorf("states table: class %s maps to unknown state %q", id, state)
		}
	}
	for id := range s.States {
		if !ids[id] {
			return fmt.Errorf("states table: unknown class %s", id)
		}
	}

	seen := make(map[string]bool, len(s.Hazards))
	for i, h := range s.Hazards {
		if h.Category == "" {
			return fmt.Errorf("hazards[%d]: empty category", i)
		}
		if !ids[h.Prev] {
			return fmt.Errorf("hazards[%d]: unknown class %q in prev", i, h.Prev)
		}
		if !ids[h.Next] {
			return fmt.Errorf("hazards[%d]: unknown class %q in next", i, h.Next)
		}
		pair := h.Prev + ">" + h.Next
		if seen[pair] {
			return fmt.Errorf("hazards[%d]: duplicate pair %s", i, pair)
		}
		seen[pair] = true
	}

	if len(s.Kernel.Alphabet) == 0 {
		return fmt.Errorf("kernel table: empty alphabet")
	}
	if err := validateChars("kernel alphabet", s.Kernel.Alphabet); err != nil {
		return err
	}
	if len(s.Kernel.ParagraphMarkers) == 0 {
		return fmt.Errorf("kernel table: empty paragraph marker set")
	}
	if err := validateChars("paragraph markers", s.Kernel.ParagraphMarkers); err != nil {
		return err
	}

	return nil
}

func validateEntries(table string, entries []string) error {
	if len(entries) == 0 {
		return fmt.Errorf("%s table is empty", table)
	}
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		// The middle table alone admits the empty string (middles are
		// optional in spelling, e.g. "daiin" = da + "" + iin), but it is
		// implicit, never declared.
		if e == "" {
			return fmt.Errorf("%s[%d]: empty entry", table, i)
		}
		if strings.ContainsAny(e, " \t") {
			return fmt.Errorf("%s[%d]: entry %q contains whitespace", table, i, e)
		}
		if seen[e] {
			return fmt.Errorf("%s[%d]: duplicate entry %q", table, i, e)
		}
		seen[e] = true
	}
	return nil
}

func validateChars(what string, entries []string) error {
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if len(e) != 1 {
			return fmt.Errorf("%s[%d]: %q is not a single character", what, i, e)
		}
		if seen[e] {
			return fmt.Errorf("%s[%d]: duplicate character %q", what, i, e)
		}
		seen[e] = true
	}
	return nil
}
