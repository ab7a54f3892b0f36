// Package ingest reads cleaned transcription records into raw folios.
// The transcription format is a CSV with a header row and columns
// folio,line,position,system,token. Transcription cleanup itself
// (damaged glyph recovery, patching) happens upstream; this reader only
// consumes the result.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"

	"github.com/leapstack-labs/glyphdec/pkg/token"
)

// RawLine is one transcription line before decoding.
type RawLine struct {
	Number int
	Tokens []token.Token
}

// RawFolio is one folio's ingested lines, ordered by line number.
type RawFolio struct {
	ID    string
	Lines []RawLine
}

// TokenCount returns the number of tokens across the folio's lines.
func (f *RawFolio) TokenCount() int {
	n := 0
	for _, l := range f.Lines {
		n += len(l.Tokens)
	}
	return n
}

// Result is the outcome of one ingestion pass. Folios appear in order
// of first appearance in the input.
type Result struct {
	Folios  []*RawFolio
	Skipped int // malformed records dropped with a warning
}

// Folio returns the folio with the given id, if present.
func (r *Result) Folio(id string) (*RawFolio, bool) {
	for _, f := range r.Folios {
		if f.ID == id {
			return f, true
		}
	}
	return nil, false
}

// ReadFile ingests a transcription file.
func ReadFile(path string, logger *slog.Logger) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcription %s: %w", path, err)
	}
	defer f.Close()
	res, err := Read(f, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcription %s: %w", path, err)
	}
	return res, nil
}

// Read ingests transcription records from r. Malformed records are
// fatal for that record only: they are skipped with a logged warning
// and counted, and processing continues.
func Read(r io.Reader, logger *slog.Logger) (*Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // field-count errors are per-record, handled here
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("transcription is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read transcription header: %w", err)
	}
	if len(header) < 5 || header[0] != "folio" {
		return nil, fmt.Errorf("unexpected transcription header %v (want folio,line,position,system,token)", header)
	}

	res := &Result{}
	byID := make(map[string]*RawFolio)
	recordNo := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		recordNo++
		if err != nil {
			logger.Warn("skipping unreadable transcription record", "record", recordNo, "error", err)
			res.Skipped++
			continue
		}
		tok, perr := parseRecord(rec)
		if perr != nil {
			logger.Warn("skipping malformed transcription record", "record", recordNo, "error", perr)
			res.Skipped++
			continue
		}

		folio, ok := byID[tok.Pos.Folio]
		if !ok {
			folio = &RawFolio{ID: tok.Pos.Folio}
			byID[tok.Pos.Folio] = folio
			res.Folios = append(res.Folios, folio)
		}
		appendToken(folio, tok)
	}

	// Transcription files in the wild are not always ordered; re-sort
	// defensively so (line, position) order holds downstream.
	for _, folio := range res.Folios {
		sort.Slice(folio.Lines, func(i, j int) bool {
			return folio.Lines[i].Number < folio.Lines[j].Number
		})
		for i := range folio.Lines {
			toks := folio.Lines[i].Tokens
			sort.Slice(toks, func(a, b int) bool {
				return toks[a].Pos.Index < toks[b].Pos.Index
			})
		}
	}
	return res, nil
}

// parseRecord validates one CSV record and builds its token.
func parseRecord(rec []string) (token.Token, error) {
	if len(rec) < 5 {
		return token.Token{}, fmt.Errorf("want 5 fields, got %d", len(rec))
	}
	folio, lineStr, posStr, sysStr, spelling := rec[0], rec[1], rec[2], rec[3], rec[4]
	if folio == "" {
		return token.Token{}, fmt.Errorf("missing folio id")
	}
	if spelling == "" {
		return token.Token{}, fmt.Errorf("missing token spelling")
	}
	line, err := strconv.Atoi(lineStr)
	if err != nil {
		return token.Token{}, fmt.Errorf("bad line id %q", lineStr)
	}
	pos, err := strconv.Atoi(posStr)
	if err != nil {
		return token.Token{}, fmt.Errorf("bad position %q", posStr)
	}
	system, ok := token.ParseSourceSystem(sysStr)
	if !ok {
		return token.Token{}, fmt.Errorf("unknown source system %q", sysStr)
	}
	return token.New(spelling, folio, line, pos, system), nil
}

// appendToken places a token on its line, creating the line on first
// contact.
func appendToken(folio *RawFolio, tok token.Token) {
	for i := range folio.Lines {
		if folio.Lines[i].Number == tok.Pos.Line {
			folio.Lines[i].Tokens = append(folio.Lines[i].Tokens, tok)
			return
		}
	}
	folio.Lines = append(folio.Lines, RawLine{Number: tok.Pos.Line, Tokens: []token.Token{tok}})
}
