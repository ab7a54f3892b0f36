package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/glyphdec/pkg/tables"
)

// Tables renders the loaded rule tables for cross-checking against
// structural output.
func Tables(w io.Writer, ts *tables.Set) {
	fmt.Fprintf(w, "Morphology: %d articulators, %d prefixes, %d suffixes, %d known middles\n",
		len(ts.Articulators), len(ts.Prefixes), len(ts.Suffixes), len(ts.Middles))
	fmt.Fprintf(w, "Kernel alphabet: %v  paragraph markers: %v\n\n",
		ts.Kernel.Alphabet, ts.Kernel.ParagraphMarkers)

	fmt.Fprintf(w, "Instruction classes (%d):\n", len(ts.Classes))
	ct := newTable(w)
	ct.AppendHeader(table.Row{"Class", "Role", "Prefix", "Middle", "Suffix", "State"})
	for _, c := range ts.Classes {
		middle := c.Middle
		if middle == "" {
			middle = `""`
		}
		ct.AppendRow(table.Row{c.ID, c.Role, c.Prefix, middle, string(c.Suffix), ts.States[c.ID]})
	}
	ct.Render()

	fmt.Fprintf(w, "\nHazard transitions (%d):\n", len(ts.Hazards))
	ht := newTable(w)
	ht.AppendHeader(table.Row{"Category", "Prev", "Next"})
	for _, h := range ts.Hazards {
		ht.AppendRow(table.Row{h.Category, h.Prev, h.Next})
	}
	ht.Render()
}

// tablesRecord is the machine form of the table set.
type tablesRecord struct {
	Articulators []string           `json:"articulators"`
	Prefixes     []string           `json:"prefixes"`
	Suffixes     []string           `json:"suffixes"`
	Middles      []string           `json:"middles"`
	Classes      []tables.ClassRow  `json:"classes"`
	States       map[string]string  `json:"states"`
	Hazards      []tables.HazardRow `json:"hazards"`
	Kernel       tables.KernelSpec  `json:"kernel"`
}

// TablesJSON writes the table set in machine-readable form.
func TablesJSON(w io.Writer, ts *tables.Set) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	err := enc.Encode(tablesRecord{
		Articulators: ts.Articulators,
		Prefixes:     ts.Prefixes,
		Suffixes:     ts.Suffixes,
		Middles:      ts.Middles,
		Classes:      ts.Classes,
		States:       ts.States,
		Hazards:      ts.Hazards,
		Kernel:       ts.Kernel,
	})
	if err != nil {
		return fmt.Errorf("failed to encode tables: %w", err)
	}
	return nil
}
