package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/leapstack-labs/glyphdec/internal/decode"
	"github.com/leapstack-labs/glyphdec/internal/ingest"
	"github.com/leapstack-labs/glyphdec/internal/testutil"
	"github.com/leapstack-labs/glyphdec/pkg/tables"
)

const sampleTranscription = `folio,line,position,system,token
f75r,1,0,B,daiin
f75r,1,1,B,qokeedy
f75r,1,2,B,shtey
f75r,2,0,B,chedy
f75r,2,1,B,xxxx
f75r,3,0,A,otedy
`

func decodeSample(t *testing.T) *decode.FolioResult {
	t.Helper()
	ts, err := tables.Load("")
	if err != nil {
		t.Fatalf("failed to load tables: %v", err)
	}
	e, err := decode.NewEngine(ts, decode.Options{Logger: testutil.NewTestLogger(t)})
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}
	res, err := ingest.Read(strings.NewReader(sampleTranscription), testutil.NewTestLogger(t))
	if err != nil {
		t.Fatalf("failed to read transcription: %v", err)
	}
	return e.DecodeFolio(res.Folios[0])
}

func TestParseMode(t *testing.T) {
	if m, ok := ParseMode("structural"); !ok || m != ModeStructural {
		t.Errorf("ParseMode(structural) = %v, %v", m, ok)
	}
	if m, ok := ParseMode("interpretive"); !ok || m != ModeInterpretive {
		t.Errorf("ParseMode(interpretive) = %v, %v", m, ok)
	}
	if _, ok := ParseMode("poetic"); ok {
		t.Error("unknown mode must not parse")
	}
}

func TestStructural_Content(t *testing.T) {
	r := decodeSample(t)
	var buf bytes.Buffer
	Structural(&buf, r, 0)
	out := buf.String()

	for _, want := range []string{
		"Folio f75r",
		"CC_1",
		"EN_3",
		"FL_7",
		"energy_cascade",
		"CORE_CONTROL",
		"Kernel contact",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("structural output missing %q:\n%s", want, out)
		}
	}
}

func TestStructural_ByteIdentical(t *testing.T) {
	r := decodeSample(t)

	var first bytes.Buffer
	Structural(&first, r, 0)
	for i := 0; i < 5; i++ {
		var again bytes.Buffer
		Structural(&again, r, 0)
		if !bytes.Equal(first.Bytes(), again.Bytes()) {
			t.Fatalf("structural output not byte-identical on run %d", i)
		}
	}
}

func TestStructural_DetailCapsClassRows(t *testing.T) {
	r := decodeSample(t)

	var full, capped bytes.Buffer
	Structural(&full, r, 0)
	Structural(&capped, r, 1)

	// The capped report must drop class rows but keep the distinct count.
	if !strings.Contains(capped.String(), "distinct") {
		t.Error("capped report should keep the distinct class count")
	}
	if len(capped.String()) >= len(full.String()) {
		t.Error("capped report should be shorter than the full report")
	}
}

func TestInterpretive_ByteIdentical(t *testing.T) {
	r := decodeSample(t)

	var first bytes.Buffer
	Interpretive(&first, r)
	for i := 0; i < 5; i++ {
		var again bytes.Buffer
		Interpretive(&again, r)
		if !bytes.Equal(first.Bytes(), again.Bytes()) {
			t.Fatalf("interpretive output not byte-identical on run %d", i)
		}
	}

	out := first.String()
	for _, want := range []string{
		"Folio f75r",
		"forbidden transition",
		"paragraph",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("interpretive output missing %q:\n%s", want, out)
		}
	}
}

func TestInterpretive_EmptyFolio(t *testing.T) {
	ts, err := tables.Load("")
	if err != nil {
		t.Fatalf("failed to load tables: %v", err)
	}
	e, err := decode.NewEngine(ts, decode.Options{Logger: testutil.NewTestLogger(t)})
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}

	var buf bytes.Buffer
	Interpretive(&buf, e.DecodeFolio(&ingest.RawFolio{ID: "f99v"}))
	if !strings.Contains(buf.String(), "no tokens") {
		t.Errorf("expected empty-folio sentence, got:\n%s", buf.String())
	}
}

func TestJSON_Record(t *testing.T) {
	r := decodeSample(t)

	var buf bytes.Buffer
	if err := JSON(&buf, r); err != nil {
		t.Fatalf("failed to encode: %v", err)
	}

	var rec FolioRecord
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if rec.Folio != "f75r" {
		t.Errorf("folio = %q, want f75r", rec.Folio)
	}
	if len(rec.Tokens) != 6 {
		t.Fatalf("expected 6 token records, got %d", len(rec.Tokens))
	}
	if len(rec.Hazards) != 1 {
		t.Errorf("expected 1 hazard record, got %d", len(rec.Hazards))
	}

	// daiin: fully classified.
	first := rec.Tokens[0]
	if first.Class == nil || *first.Class != "CC_1" {
		t.Errorf("daiin class = %v, want CC_1", first.Class)
	}
	if first.Suffix != "aiin" {
		t.Errorf("daiin suffix = %q, want aiin", first.Suffix)
	}

	// xxxx: residue renders as null class, not an error or omission.
	var residue *TokenRecord
	for i := range rec.Tokens {
		if rec.Tokens[i].Spelling == "xxxx" {
			residue = &rec.Tokens[i]
		}
	}
	if residue == nil {
		t.Fatal("residue token missing from record")
	}
	if residue.Class != nil {
		t.Errorf("residue class = %v, want null", *residue.Class)
	}
	if residue.State != "RS" {
		t.Errorf("residue state = %q, want RS", residue.State)
	}
	if residue.Status != "undecomposable" {
		t.Errorf("residue status = %q, want undecomposable", residue.Status)
	}

	// Passed-through currier-a token is present with null class.
	var passed *TokenRecord
	for i := range rec.Tokens {
		if rec.Tokens[i].System == "currier-a" {
			passed = &rec.Tokens[i]
		}
	}
	if passed == nil {
		t.Fatal("passed-through token missing from record")
	}
	if passed.Class != nil {
		t.Error("passed-through token must have null class")
	}
}

func TestJSON_ByteIdentical(t *testing.T) {
	r := decodeSample(t)

	var first bytes.Buffer
	if err := JSON(&first, r); err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	for i := 0; i < 5; i++ {
		var again bytes.Buffer
		if err := JSON(&again, r); err != nil {
			t.Fatalf("failed to encode: %v", err)
		}
		if !bytes.Equal(first.Bytes(), again.Bytes()) {
			t.Fatalf("JSON output not byte-identical on run %d", i)
		}
	}
}

func TestTables_Render(t *testing.T) {
	ts, err := tables.Load("")
	if err != nil {
		t.Fatalf("failed to load tables: %v", err)
	}

	var buf bytes.Buffer
	Tables(&buf, ts)
	out := buf.String()
	for _, want := range []string{"CC_1", "FL_8", "energy_cascade", "qo", "aiin"} {
		if !strings.Contains(out, want) {
			t.Errorf("tables output missing %q", want)
		}
	}

	var jsonBuf bytes.Buffer
	if err := TablesJSON(&jsonBuf, ts); err != nil {
		t.Fatalf("failed to encode tables: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(jsonBuf.Bytes(), &decoded); err != nil {
		t.Fatalf("tables JSON invalid: %v", err)
	}
}
