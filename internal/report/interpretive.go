package report

import (
	"fmt"
	"io"

	"github.com/leapstack-labs/glyphdec/internal/decode"
	"github.com/leapstack-labs/glyphdec/pkg/grammar"
)

// Fixed phrase templates for the interpretive mode. The mode is still a
// pure function: the same classified folio always renders the same
// sentences. No semantic claims are made about the text itself.
var stateDescriptions = map[grammar.MacroState]string{
	grammar.StateCC: "core-control sequencing",
	grammar.StateEN: "energy-operator activity",
	grammar.StateAX: "auxiliary support",
	grammar.StateFQ: "frequent-operator filler",
	grammar.StateHI: "high-impact operations",
	grammar.StateFL: "flow-operator movement",
}

// Interpretive renders the interpretive summary of one folio.
func Interpretive(w io.Writer, r *decode.FolioResult) {
	fmt.Fprintf(w, "Folio %s: interpretive decode\n\n", r.Folio.ID)

	c := r.Counts
	if c.Tokens == 0 {
		fmt.Fprintf(w, "The folio carries no tokens.\n")
		return
	}
	fmt.Fprintf(w, "Of %d tokens, %d (%d%%) resolve to instruction classes; %d fall to the residue track.\n",
		c.Tokens, c.Classified, pct(c.Classified, c.Tokens),
		c.Unclassified+c.Undecomposable)

	// Dominant macro-state sentence.
	stateCounts := make(map[grammar.MacroState]int)
	for _, line := range r.Folio.Lines {
		for _, a := range line.Tokens {
			if a.Class.IsClassified() {
				stateCounts[a.State]++
			}
		}
	}
	if c.Classified > 0 {
		best, bestN := grammar.StateResidue, 0
		for st := grammar.StateCC; st <= grammar.StateFL; st++ {
			if stateCounts[st] > bestN {
				best, bestN = st, stateCounts[st]
			}
		}
		ratio := pct(bestN, c.Classified)
		switch {
		case ratio >= 50:
			fmt.Fprintf(w, "The folio is dominated by %s (%d%% of classified tokens).\n",
				stateDescriptions[best], ratio)
		case ratio >= 30:
			fmt.Fprintf(w, "The folio leans toward %s (%d%% of classified tokens).\n",
				stateDescriptions[best], ratio)
		default:
			fmt.Fprintf(w, "No single macro-state dominates; the strongest is %s at %d%%.\n",
				stateDescriptions[best], ratio)
		}
	}

	// Hazard sentence.
	switch n := len(r.Hazards); {
	case n == 0:
		fmt.Fprintf(w, "No forbidden transitions occur.\n")
	case n == 1:
		fmt.Fprintf(w, "One forbidden transition occurs, at %s.\n", r.Hazards[0].Pos.String())
	default:
		fmt.Fprintf(w, "%d forbidden transitions occur; the first is at %s.\n",
			n, r.Hazards[0].Pos.String())
	}

	// Kernel sentence.
	contact := r.Kernel.TokenCount - r.Kernel.EmptyCount
	fmt.Fprintf(w, "Kernel characters touch %d%% of tokens.\n", pct(contact, r.Kernel.TokenCount))

	// Paragraph sentences.
	fmt.Fprintf(w, "The folio groups into %d paragraph(s):\n", len(r.Paragraphs))
	for _, p := range r.Paragraphs {
		fmt.Fprintf(w, "  paragraph %d (%d lines, %d tokens) reads %s with a %s kernel trend.\n",
			p.Index+1, p.LineCount, p.TokenCount, p.Label, p.Trend)
	}
}

// pct computes an integer percentage, 0 for an empty denominator.
func pct(n, total int) int {
	if total == 0 {
		return 0
	}
	return n * 100 / total
}
