// Package corpus models the structural hierarchy of the manuscript:
// tokens grouped into lines, lines into paragraphs, paragraphs into
// folios. Line segmentation is ingested ground truth; paragraph
// segmentation is derived here by the gallows-initial marker rule.
package corpus

import (
	"github.com/leapstack-labs/glyphdec/pkg/grammar"
	"github.com/leapstack-labs/glyphdec/pkg/kernel"
	"github.com/leapstack-labs/glyphdec/pkg/morph"
	"github.com/leapstack-labs/glyphdec/pkg/token"
)

// Annotation is one token with every derivation the pipeline attaches.
// The token itself is never mutated; all fields besides Token are
// derived values.
type Annotation struct {
	Token  token.Token
	Decomp morph.Decomposition
	Class  grammar.Class
	State  grammar.MacroState
	Kernel kernel.Signature
}

// Line is an ordered run of annotated tokens sharing a folio and line
// identifier. Immutable once constructed.
type Line struct {
	Number int
	Tokens []Annotation
}

// Folio is the top-level unit of analysis: an ordered sequence of
// lines, independent of every other folio.
type Folio struct {
	ID    string
	Lines []Line
}

// TokenCount returns the number of tokens across all lines.
func (f *Folio) TokenCount() int {
	n := 0
	for _, l := range f.Lines {
		n += len(l.Tokens)
	}
	return n
}
