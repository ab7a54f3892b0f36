// Package report renders decoded folios. Two canonical text modes
// exist: structural (raw class and role counts, cross-checkable against
// the static tables) and interpretive (the same data through fixed
// phrase templates). Both are pure functions of the decode result:
// identical input renders byte-identical output.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/glyphdec/internal/decode"
	"github.com/leapstack-labs/glyphdec/pkg/grammar"
	"github.com/leapstack-labs/glyphdec/pkg/kernel"
)

// Mode selects the text report flavor.
type Mode string

const (
	ModeStructural   Mode = "structural"
	ModeInterpretive Mode = "interpretive"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeStructural, ModeInterpretive:
		return Mode(s), true
	default:
		return "", false
	}
}

// roles in display order, residue last.
var displayRoles = []grammar.Role{
	grammar.RoleCoreControl,
	grammar.RoleEnergyOperator,
	grammar.RoleAuxiliary,
	grammar.RoleFrequentOperator,
	grammar.RoleHighImpact,
	grammar.RoleFlowOperator,
	grammar.RoleUnclassified,
}

// newTable builds a go-pretty writer with the fixed style shared by all
// reports. No colors and no terminal adaptation: summaries must be
// byte-identical across invocations and environments.
func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

// Structural renders the structural summary of one folio. detail caps
// the per-class rows shown (0 = all).
func Structural(w io.Writer, r *decode.FolioResult, detail int) {
	fmt.Fprintf(w, "Folio %s: structural decode\n\n", r.Folio.ID)
	writeCounts(w, r.Counts)

	// Per-class tally, table order is class ID (stable).
	classCounts := make(map[string]int)
	roleCounts := make(map[grammar.Role]int)
	for _, line := range r.Folio.Lines {
		for _, a := range line.Tokens {
			if a.Class.IsClassified() {
				classCounts[a.Class.ID]++
				roleCounts[a.Class.Role]++
			} else {
				roleCounts[grammar.RoleUnclassified]++
			}
		}
	}

	ids := make([]string, 0, len(classCounts))
	for id := range classCounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if detail > 0 && len(ids) > detail {
		ids = ids[:detail]
	}

	fmt.Fprintf(w, "\nInstruction classes (%d distinct):\n", len(classCounts))
	t := newTable(w)
	t.AppendHeader(table.Row{"Class", "Count"})
	for _, id := range ids {
		t.AppendRow(table.Row{id, classCounts[id]})
	}
	t.Render()

	fmt.Fprintf(w, "\nRoles:\n")
	rt := newTable(w)
	rt.AppendHeader(table.Row{"Role", "Count"})
	for _, role := range displayRoles {
		if n, ok := roleCounts[role]; ok && n > 0 {
			rt.AppendRow(table.Row{role.String(), n})
		}
	}
	rt.Render()

	writeHazards(w, r)
	writeKernel(w, r.Kernel)
}

// writeCounts renders the classification tallies.
func writeCounts(w io.Writer, c decode.Counts) {
	fmt.Fprintf(w, "Tokens: %d  classified: %d  unclassified: %d  undecomposable: %d  middle-unknown: %d  passed-through: %d\n",
		c.Tokens, c.Classified, c.Unclassified, c.Undecomposable, c.MiddleUnknown, c.PassedThrough)
}

// writeHazards renders the hazard event list in document order.
func writeHazards(w io.Writer, r *decode.FolioResult) {
	fmt.Fprintf(w, "\nHazard events: %d\n", len(r.Hazards))
	if len(r.Hazards) == 0 {
		return
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"Category", "Pair", "Position"})
	for _, ev := range r.Hazards {
		t.AppendRow(table.Row{ev.Category, ev.Prev + " > " + ev.Next, ev.Pos.String()})
	}
	t.Render()
}

// writeKernel renders the kernel counters.
func writeKernel(w io.Writer, k *kernel.Tracker) {
	fmt.Fprintf(w, "\nKernel contact: %d/%d tokens (%d without)\n",
		k.TokenCount-k.EmptyCount, k.TokenCount, k.EmptyCount)

	syms := make([]string, 0, len(k.Frequency))
	for ch := range k.Frequency {
		syms = append(syms, string(ch))
	}
	sort.Strings(syms)
	for _, s := range syms {
		fmt.Fprintf(w, "  %s: %d\n", s, k.Frequency[s[0]])
	}

	pairs := make([]string, 0, len(k.Transitions))
	for p := range k.Transitions {
		pairs = append(pairs, string(p[0])+string(p[1]))
	}
	sort.Strings(pairs)
	if len(pairs) > 0 {
		fmt.Fprintf(w, "  transitions:")
		for _, p := range pairs {
			fmt.Fprintf(w, " %s=%d", p, k.Transitions[[2]byte{p[0], p[1]}])
		}
		fmt.Fprintln(w)
	}
}

// Corpus renders the aggregate view for a multi-folio decode.
func Corpus(w io.Writer, cr *decode.CorpusResult) {
	fmt.Fprintf(w, "Corpus decode: %d folios\n\n", cr.Aggregate.FolioCount)
	writeCounts(w, cr.Aggregate.Counts)

	fmt.Fprintf(w, "\nHazards by category (%d total):\n", cr.Aggregate.HazardTotal)
	if cr.Aggregate.HazardTotal > 0 {
		t := newTable(w)
		t.AppendHeader(table.Row{"Category", "Count"})
		for _, cat := range cr.Aggregate.SortedCategories() {
			t.AppendRow(table.Row{cat, cr.Aggregate.HazardsByCategory[cat]})
		}
		t.Render()
	}

	fmt.Fprintf(w, "\nResidue by source system:\n")
	systems := make([]string, 0, len(cr.Aggregate.Counts.TokensBySystem))
	for s := range cr.Aggregate.Counts.TokensBySystem {
		systems = append(systems, s)
	}
	sort.Strings(systems)
	for _, s := range systems {
		total := cr.Aggregate.Counts.TokensBySystem[s]
		residue := cr.Aggregate.Counts.ResidueBySystem[s]
		fmt.Fprintf(w, "  %s: %d/%d\n", s, residue, total)
	}

	writeKernel(w, cr.Aggregate.Kernel)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Per folio:\n")
	t := newTable(w)
	t.AppendHeader(table.Row{"Folio", "Tokens", "Classified", "Hazards", "Paragraphs"})
	for _, fr := range cr.Folios {
		t.AppendRow(table.Row{
			fr.Folio.ID, fr.Counts.Tokens, fr.Counts.Classified,
			len(fr.Hazards), len(fr.Paragraphs),
		})
	}
	t.Render()
}
