// Package token defines the atomic data unit of the decode engine: one
// transcribed word-unit together with its position in the manuscript.
//
// Tokens are immutable values created once at ingestion. Everything the
// engine derives from a token (decomposition, class, macro-state, kernel
// signature) is attached elsewhere; the token itself never changes.
package token

import "fmt"

// SourceSystem identifies the transcription stream a token belongs to.
// Only Currier-B tokens are run through the grammar; tokens from other
// streams are carried along but never classified.
type SourceSystem int

const (
	// SystemUnknown is the zero value for records with no usable tag.
	SystemUnknown SourceSystem = iota
	// SystemCurrierB is the grammatical stream the engine classifies.
	SystemCurrierB
	// SystemCurrierA is passed through unclassified.
	SystemCurrierA
	// SystemOther covers labels, margin text, and anything unattributed.
	SystemOther
)

// String returns the canonical tag for the source system.
func (s SourceSystem) String() string {
	switch s {
	case SystemCurrierB:
		return "currier-b"
	case SystemCurrierA:
		return "currier-a"
	case SystemOther:
		return "other"
	default:
		return "unknown"
	}
}

// ParseSourceSystem converts a transcription tag to a SourceSystem.
// Returns the system and true if the tag is recognized, or SystemUnknown
// and false otherwise.
func ParseSourceSystem(tag string) (SourceSystem, bool) {
	switch tag {
	case "currier-b", "B", "b":
		return SystemCurrierB, true
	case "currier-a", "A", "a":
		return SystemCurrierA, true
	case "other", "X", "x":
		return SystemOther, true
	default:
		return SystemUnknown, false
	}
}

// Classifiable reports whether tokens from this stream are run through
// the grammar.
func (s SourceSystem) Classifiable() bool {
	return s == SystemCurrierB
}

// Position locates a token within the corpus.
type Position struct {
	Folio string // folio identifier, e.g. "f75r"
	Line  int    // line identifier, unique within the folio
	Index int    // 0-based position within the line
}

// String returns "folio:line:index" for diagnostics and hazard reports.
func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Folio, p.Line, p.Index)
}

// Token is a single transcribed word-unit.
type Token struct {
	Spelling string
	Pos      Position
	System   SourceSystem
}

// New constructs a token. Tokens are plain values; New exists so call
// sites read uniformly at ingestion.
func New(spelling, folio string, line, index int, system SourceSystem) Token {
	return Token{
		Spelling: spelling,
		Pos:      Position{Folio: folio, Line: line, Index: index},
		System:   system,
	}
}
