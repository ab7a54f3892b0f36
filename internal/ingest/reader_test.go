package ingest

import (
	"strings"
	"testing"

	"github.com/leapstack-labs/glyphdec/internal/testutil"
	"github.com/leapstack-labs/glyphdec/pkg/token"
)

func TestRead_Basic(t *testing.T) {
	input := `folio,line,position,system,token
f75r,1,0,B,daiin
f75r,1,1,B,qokeedy
f75r,2,0,B,chedy
f76v,1,0,A,otedy
`
	res, err := Read(strings.NewReader(input), testutil.NewTestLogger(t))
	if err != nil {
		t.Fatalf("failed to read transcription: %v", err)
	}

	if len(res.Folios) != 2 {
		t.Fatalf("expected 2 folios, got %d", len(res.Folios))
	}
	if res.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", res.Skipped)
	}

	f, ok := res.Folio("f75r")
	if !ok {
		t.Fatal("f75r not found")
	}
	if len(f.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(f.Lines))
	}
	if f.TokenCount() != 3 {
		t.Errorf("TokenCount = %d, want 3", f.TokenCount())
	}
	if f.Lines[0].Tokens[1].Spelling != "qokeedy" {
		t.Errorf("token = %q, want qokeedy", f.Lines[0].Tokens[1].Spelling)
	}

	other, ok := res.Folio("f76v")
	if !ok {
		t.Fatal("f76v not found")
	}
	if other.Lines[0].Tokens[0].System != token.SystemCurrierA {
		t.Errorf("system = %v, want currier-a", other.Lines[0].Tokens[0].System)
	}
}

func TestRead_MalformedRecordsSkipped(t *testing.T) {
	input := `folio,line,position,system,token
f75r,1,0,B,daiin
f75r,notanumber,1,B,qokeedy
f75r,1,notanumber,B,qokeedy
f75r,1,1,Z,qokeedy
,1,2,B,qokeedy
f75r,1,2,B,
f75r,1,1,B,shedy
`
	res, err := Read(strings.NewReader(input), testutil.NewTestLogger(t))
	if err != nil {
		t.Fatalf("read should survive malformed records: %v", err)
	}

	if res.Skipped != 5 {
		t.Errorf("Skipped = %d, want 5", res.Skipped)
	}
	f, ok := res.Folio("f75r")
	if !ok {
		t.Fatal("f75r not found")
	}
	if f.TokenCount() != 2 {
		t.Errorf("TokenCount = %d, want 2", f.TokenCount())
	}
}

func TestRead_ShortRecordSkipped(t *testing.T) {
	input := `folio,line,position,system,token
f75r,1,0,B
f75r,1,0,B,daiin
`
	res, err := Read(strings.NewReader(input), testutil.NewTestLogger(t))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if res.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", res.Skipped)
	}
}

func TestRead_UnorderedInput(t *testing.T) {
	input := `folio,line,position,system,token
f75r,2,1,B,shedy
f75r,1,1,B,qokeedy
f75r,2,0,B,chedy
f75r,1,0,B,daiin
`
	res, err := Read(strings.NewReader(input), testutil.NewTestLogger(t))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	f, _ := res.Folio("f75r")
	if f.Lines[0].Number != 1 || f.Lines[1].Number != 2 {
		t.Fatalf("lines not sorted: %d, %d", f.Lines[0].Number, f.Lines[1].Number)
	}
	if f.Lines[0].Tokens[0].Spelling != "daiin" {
		t.Errorf("first token = %q, want daiin", f.Lines[0].Tokens[0].Spelling)
	}
	if f.Lines[1].Tokens[1].Spelling != "shedy" {
		t.Errorf("last token = %q, want shedy", f.Lines[1].Tokens[1].Spelling)
	}
}

func TestRead_EmptyInput(t *testing.T) {
	if _, err := Read(strings.NewReader(""), testutil.NewTestLogger(t)); err == nil {
		t.Error("expected error for empty transcription")
	}
}

func TestRead_BadHeader(t *testing.T) {
	if _, err := Read(strings.NewReader("a,b,c\n"), testutil.NewTestLogger(t)); err == nil {
		t.Error("expected error for unexpected header")
	}
}
