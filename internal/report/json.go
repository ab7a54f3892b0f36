package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/leapstack-labs/glyphdec/internal/decode"
)

// TokenRecord is the machine-readable per-token record. Class and state
// are null for residue and passed-through tokens, mirroring the
// "unclassified as a value, not an error" contract.
type TokenRecord struct {
	Folio    string `json:"folio"`
	Line     int    `json:"line"`
	Position int    `json:"position"`
	Spelling string `json:"spelling"`
	System   string `json:"system"`

	Status      string  `json:"status"`
	Articulator string  `json:"articulator,omitempty"`
	Prefix      string  `json:"prefix,omitempty"`
	Middle      string  `json:"middle,omitempty"`
	Suffix      string  `json:"suffix,omitempty"`
	Class       *string `json:"class"`
	Role        *string `json:"role"`
	State       string  `json:"state"`
	Kernel      string  `json:"kernel,omitempty"`
}

// HazardRecord is the machine-readable hazard event.
type HazardRecord struct {
	Category string `json:"category"`
	Prev     string `json:"prev"`
	Next     string `json:"next"`
	Folio    string `json:"folio"`
	Line     int    `json:"line"`
	Position int    `json:"position"`
}

// FolioRecord is the machine-readable decode of one folio, intended for
// downstream statistical consumers.
type FolioRecord struct {
	Folio          string         `json:"folio"`
	Tokens         []TokenRecord  `json:"tokens"`
	Hazards        []HazardRecord `json:"hazards"`
	Classified     int            `json:"classified"`
	Unclassified   int            `json:"unclassified"`
	Undecomposable int            `json:"undecomposable"`
	MiddleUnknown  int            `json:"middle_unknown"`
	PassedThrough  int            `json:"passed_through"`
	ParagraphCount int            `json:"paragraph_count"`
}

// BuildFolioRecord converts a decode result to its machine form. Tokens
// appear in (line, position) order, residue tokens included.
func BuildFolioRecord(r *decode.FolioResult) FolioRecord {
	rec := FolioRecord{
		Folio:          r.Folio.ID,
		Tokens:         make([]TokenRecord, 0, r.Folio.TokenCount()),
		Hazards:        make([]HazardRecord, 0, len(r.Hazards)),
		Classified:     r.Counts.Classified,
		Unclassified:   r.Counts.Unclassified,
		Undecomposable: r.Counts.Undecomposable,
		MiddleUnknown:  r.Counts.MiddleUnknown,
		PassedThrough:  r.Counts.PassedThrough,
		ParagraphCount: len(r.Paragraphs),
	}
	for _, line := range r.Folio.Lines {
		for _, a := range line.Tokens {
			tr := TokenRecord{
				Folio:    a.Token.Pos.Folio,
				Line:     a.Token.Pos.Line,
				Position: a.Token.Pos.Index,
				Spelling: a.Token.Spelling,
				System:   a.Token.System.String(),
				Status:   a.Decomp.Status.String(),
				State:    a.State.String(),
				Kernel:   a.Kernel.String(),
			}
			if a.Decomp.Decomposable() {
				tr.Articulator = a.Decomp.Articulator
				tr.Prefix = a.Decomp.Prefix
				tr.Middle = a.Decomp.Middle
				tr.Suffix = a.Decomp.Suffix
			}
			if a.Class.IsClassified() {
				id := a.Class.ID
				role := a.Class.Role.String()
				tr.Class = &id
				tr.Role = &role
			}
			rec.Tokens = append(rec.Tokens, tr)
		}
	}
	for _, ev := range r.Hazards {
		rec.Hazards = append(rec.Hazards, HazardRecord{
			Category: ev.Category,
			Prev:     ev.Prev,
			Next:     ev.Next,
			Folio:    ev.Pos.Folio,
			Line:     ev.Pos.Line,
			Position: ev.Pos.Index,
		})
	}
	return rec
}

// JSON writes the machine-readable decode of one folio.
func JSON(w io.Writer, r *decode.FolioResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(BuildFolioRecord(r)); err != nil {
		return fmt.Errorf("failed to encode folio record: %w", err)
	}
	return nil
}

// JSONAll writes machine-readable records for a multi-folio decode.
func JSONAll(w io.Writer, cr *decode.CorpusResult) error {
	records := make([]FolioRecord, 0, len(cr.Folios))
	for _, fr := range cr.Folios {
		records = append(records, BuildFolioRecord(fr))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode folio records: %w", err)
	}
	return nil
}
