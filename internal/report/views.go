package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/glyphdec/internal/decode"
	"github.com/leapstack-labs/glyphdec/pkg/corpus"
	"github.com/leapstack-labs/glyphdec/pkg/morph"
)

// Flow renders the condensed view: the macro-state sequence per line
// and the hazard event list.
func Flow(w io.Writer, r *decode.FolioResult) {
	fmt.Fprintf(w, "Folio %s: flow\n\n", r.Folio.ID)
	for _, line := range r.Folio.Lines {
		states := make([]string, len(line.Tokens))
		for i, a := range line.Tokens {
			states[i] = a.State.String()
		}
		fmt.Fprintf(w, "%4d  %s\n", line.Number, strings.Join(states, " "))
	}
	writeHazards(w, r)
}

// Lines renders the per-line breakdown. detail caps the token rows per
// line (0 = all).
func Lines(w io.Writer, r *decode.FolioResult, detail int) {
	fmt.Fprintf(w, "Folio %s: lines\n\n", r.Folio.ID)
	for _, line := range r.Folio.Lines {
		fmt.Fprintf(w, "Line %d (%d tokens):\n", line.Number, len(line.Tokens))
		t := newTable(w)
		t.AppendHeader(table.Row{"#", "Token", "Parts", "Class", "State", "Kernel"})
		for i, a := range line.Tokens {
			if detail > 0 && i >= detail {
				t.AppendFooter(table.Row{"", fmt.Sprintf("(+%d more)", len(line.Tokens)-detail), "", "", "", ""})
				break
			}
			t.AppendRow(table.Row{
				a.Token.Pos.Index,
				a.Token.Spelling,
				partsString(a),
				a.Class.String(),
				a.State.String(),
				a.Kernel.String(),
			})
		}
		t.Render()
		fmt.Fprintln(w)
	}
}

// partsString renders a decomposition as articulator+prefix+middle+suffix
// with empty optional parts elided.
func partsString(a corpus.Annotation) string {
	d := a.Decomp
	if !d.Decomposable() {
		return "(undecomposable)"
	}
	parts := make([]string, 0, 4)
	if d.Articulator != "" {
		parts = append(parts, d.Articulator)
	}
	parts = append(parts, d.Prefix)
	if d.Middle != "" {
		parts = append(parts, d.Middle)
	}
	if d.Suffix != "" {
		parts = append(parts, d.Suffix)
	}
	s := strings.Join(parts, "+")
	if d.Status == morph.StatusMiddleUnknown {
		s += " (middle?)"
	}
	return s
}

// Paragraphs renders the paragraph-level breakdown.
func Paragraphs(w io.Writer, r *decode.FolioResult) {
	fmt.Fprintf(w, "Folio %s: paragraphs\n\n", r.Folio.ID)
	t := newTable(w)
	t.AppendHeader(table.Row{"Para", "Lines", "Tokens", "Hazards", "Trend", "Label"})
	for _, p := range r.Paragraphs {
		t.AppendRow(table.Row{
			p.Index + 1,
			fmt.Sprintf("%d-%d", r.Folio.Lines[p.First].Number, r.Folio.Lines[p.Last].Number),
			p.TokenCount,
			p.HazardCount,
			p.Trend,
			p.Label,
		})
	}
	t.Render()
}
