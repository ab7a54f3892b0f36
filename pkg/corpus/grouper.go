package corpus

import (
	"github.com/leapstack-labs/glyphdec/pkg/grammar"
	"github.com/leapstack-labs/glyphdec/pkg/hazard"
	"github.com/leapstack-labs/glyphdec/pkg/tables"
)

// Thresholds for the qualitative paragraph labels. These are a fixed
// deterministic rule, not a tunable model.
const (
	dominantRatio   = 0.40 // share of classified tokens for "<role>-dominant"
	hazardHeavyRate = 0.08 // hazard events per classified token
	earlyHeavyBound = 0.45 // mean kernel position below this: early-heavy
	lateHeavyBound  = 0.55 // mean kernel position above this: late-heavy
)

// Paragraph is a contiguous, non-overlapping run of lines within a
// folio, with its derived summary. First and Last index into
// Folio.Lines, inclusive.
type Paragraph struct {
	Index     int
	First     int
	Last      int
	LineCount int

	TokenCount   int
	RoleTally    map[grammar.Role]int
	HazardCount  int
	KernelTokens int    // tokens with non-empty kernel signatures
	Trend        string // early-heavy | late-heavy | even | no-kernel
	Label        string // <role>-dominant | hazard-heavy | balanced
}

// Grouper detects paragraph boundaries and summarizes paragraphs.
type Grouper struct {
	markers [256]bool
}

// NewGrouper builds a grouper over the configured paragraph markers.
func NewGrouper(ts *tables.Set) *Grouper {
	g := &Grouper{}
	for _, m := range ts.Kernel.ParagraphMarkers {
		g.markers[m[0]] = true
	}
	return g
}

// OpensParagraph applies the gallows-initial test to a line: true when
// the line's first token begins with a marker character.
func (g *Grouper) OpensParagraph(l Line) bool {
	if len(l.Tokens) == 0 {
		return false
	}
	s := l.Tokens[0].Token.Spelling
	return s != "" && g.markers[s[0]]
}

// Group partitions a folio's lines into paragraphs and computes each
// paragraph's summary. Every line lands in exactly one paragraph: the
// folio's first line always opens a paragraph, marker or not, so a
// folio with any lines has at least one.
func (g *Grouper) Group(f *Folio, events []hazard.Event) []Paragraph {
	if len(f.Lines) == 0 {
		return nil
	}

	var paras []Paragraph
	start := 0
	for i := 1; i < len(f.Lines); i++ {
		if g.OpensParagraph(f.Lines[i]) {
			paras = append(paras, g.summarize(f, len(paras), start, i-1, events))
			start = i
		}
	}
	paras = append(paras, g.summarize(f, len(paras), start, len(f.Lines)-1, events))
	return paras
}

// summarize computes the derived summary for lines [first, last].
func (g *Grouper) summarize(f *Folio, index, first, last int, events []hazard.Event) Paragraph {
	p := Paragraph{
		Index:     index,
		First:     first,
		Last:      last,
		LineCount: last - first + 1,
		RoleTally: make(map[grammar.Role]int),
	}

	lineNumbers := make(map[int]bool, p.LineCount)
	classified := 0
	kernelPosSum := 0.0
	pos := 0
	for i := first; i <= last; i++ {
		line := f.Lines[i]
		lineNumbers[line.Number] = true
		for _, a := range line.Tokens {
			p.TokenCount++
			if a.Class.IsClassified() {
				classified++
				p.RoleTally[a.Class.Role]++
			} else {
				p.RoleTally[grammar.RoleUnclassified]++
			}
			if !a.Kernel.Empty() {
				p.KernelTokens++
				kernelPosSum += float64(pos)
			}
			pos++
		}
	}
	for _, ev := range events {
		if lineNumbers[ev.Pos.Line] {
			p.HazardCount++
		}
	}

	p.Trend = kernelTrend(p.KernelTokens, kernelPosSum, p.TokenCount)
	p.Label = qualitativeLabel(p.RoleTally, classified, p.HazardCount)
	return p
}

// kernelTrend classifies where kernel-bearing tokens sit within the
// paragraph's token sequence.
func kernelTrend(kernelTokens int, posSum float64, tokenCount int) string {
	if kernelTokens == 0 {
		return "no-kernel"
	}
	if tokenCount < 2 {
		return "even"
	}
	mean := posSum / float64(kernelTokens) / float64(tokenCount-1)
	switch {
	case mean < earlyHeavyBound:
		return "early-heavy"
	case mean > lateHeavyBound:
		return "late-heavy"
	default:
		return "even"
	}
}

// roleLabels maps a dominant role to its paragraph label.
var roleLabels = map[grammar.Role]string{
	grammar.RoleCoreControl:      "control-dominant",
	grammar.RoleEnergyOperator:   "energy-dominant",
	grammar.RoleAuxiliary:        "auxiliary-dominant",
	grammar.RoleFrequentOperator: "frequent-dominant",
	grammar.RoleHighImpact:       "impact-dominant",
	grammar.RoleFlowOperator:     "flow-dominant",
}

// qualitativeLabel applies the fixed threshold rule. Hazard density
// outranks role dominance; ties between roles resolve to the lower
// Role value, which is stable across runs.
func qualitativeLabel(tally map[grammar.Role]int, classified, hazards int) string {
	if classified > 0 && float64(hazards)/float64(classified) >= hazardHeavyRate {
		return "hazard-heavy"
	}
	if classified == 0 {
		return "balanced"
	}
	bestRole := grammar.RoleUnclassified
	bestCount := 0
	for role := grammar.RoleCoreControl; role <= grammar.RoleFlowOperator; role++ {
		if tally[role] > bestCount {
			bestRole, bestCount = role, tally[role]
		}
	}
	if bestCount > 0 && float64(bestCount)/float64(classified) >= dominantRatio {
		return roleLabels[bestRole]
	}
	return "balanced"
}
