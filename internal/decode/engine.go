// Package decode orchestrates the per-folio pipeline: decompose,
// classify, compress, track kernels, check hazards, group. Folios are
// fully independent, so the corpus-wide path fans out per folio and
// merges additive counters afterwards.
package decode

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/glyphdec/internal/ingest"
	"github.com/leapstack-labs/glyphdec/pkg/corpus"
	"github.com/leapstack-labs/glyphdec/pkg/grammar"
	"github.com/leapstack-labs/glyphdec/pkg/hazard"
	"github.com/leapstack-labs/glyphdec/pkg/kernel"
	"github.com/leapstack-labs/glyphdec/pkg/morph"
	"github.com/leapstack-labs/glyphdec/pkg/tables"
)

// Options configures an Engine.
type Options struct {
	// CrossLineHazards carries the hazard register across line
	// boundaries (still resetting at paragraph boundaries). The default
	// within-line model matches the corpus documentation's minimal
	// reading.
	CrossLineHazards bool
	Logger           *slog.Logger
}

// Engine holds the immutable tables and derived lookups. One engine
// serves any number of folios concurrently.
type Engine struct {
	tables    *tables.Set
	dec       *morph.Decomposer
	cls       *grammar.Classifier
	haz       *hazard.Table
	grouper   *corpus.Grouper
	crossLine bool
	logger    *slog.Logger
}

// NewEngine builds an engine from a validated table set.
func NewEngine(ts *tables.Set, opts Options) (*Engine, error) {
	cls, err := grammar.NewClassifier(ts)
	if err != nil {
		return nil, fmt.Errorf("failed to build classifier: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		tables:    ts,
		dec:       morph.NewDecomposer(ts),
		cls:       cls,
		haz:       hazard.NewTable(ts),
		grouper:   corpus.NewGrouper(ts),
		crossLine: opts.CrossLineHazards,
		logger:    logger,
	}, nil
}

// Tables returns the table set the engine runs against.
func (e *Engine) Tables() *tables.Set { return e.tables }

// Classifier exposes the class lookup for reporting.
func (e *Engine) Classifier() *grammar.Classifier { return e.cls }

// HazardTable exposes the hazard table for reporting.
func (e *Engine) HazardTable() *hazard.Table { return e.haz }

// Counts are the per-folio classification tallies surfaced in reports.
// All fields are additive and order-independent.
type Counts struct {
	Tokens         int
	Classified     int
	Unclassified   int // decomposable Currier-B tokens with no class match
	Undecomposable int // no prefix found; residue path
	MiddleUnknown  int // decomposed with out-of-vocabulary middle
	PassedThrough  int // non-Currier-B tokens, never classified

	TokensBySystem  map[string]int
	ResidueBySystem map[string]int
}

func newCounts() Counts {
	return Counts{
		TokensBySystem:  make(map[string]int),
		ResidueBySystem: make(map[string]int),
	}
}

// merge folds other into c.
func (c *Counts) merge(other Counts) {
	c.Tokens += other.Tokens
	c.Classified += other.Classified
	c.Unclassified += other.Unclassified
	c.Undecomposable += other.Undecomposable
	c.MiddleUnknown += other.MiddleUnknown
	c.PassedThrough += other.PassedThrough
	for k, v := range other.TokensBySystem {
		c.TokensBySystem[k] += v
	}
	for k, v := range other.ResidueBySystem {
		c.ResidueBySystem[k] += v
	}
}

// FolioResult is the complete decode of one folio.
type FolioResult struct {
	Folio      *corpus.Folio
	Paragraphs []corpus.Paragraph
	Hazards    []hazard.Event
	Kernel     *kernel.Tracker
	Counts     Counts
}

// DecodeFolio runs the full pipeline over one raw folio. It never
// fails: every "unexpected" token condition is an expected structural
// outcome recorded in the counts.
func (e *Engine) DecodeFolio(raw *ingest.RawFolio) *FolioResult {
	res := &FolioResult{
		Folio:  &corpus.Folio{ID: raw.ID},
		Kernel: kernel.NewTracker(e.tables),
		Counts: newCounts(),
	}

	validator := hazard.NewValidator(e.haz, e.crossLine)
	for i, rawLine := range raw.Lines {
		line := corpus.Line{Number: rawLine.Number}

		if i == 0 || e.opensParagraph(rawLine) {
			validator.StartParagraph()
		}
		validator.StartLine()

		for _, tok := range rawLine.Tokens {
			a := corpus.Annotation{Token: tok}
			a.Decomp = e.dec.Decompose(tok.Spelling)
			a.Kernel = res.Kernel.Observe(tok.Spelling)

			res.Counts.Tokens++
			res.Counts.TokensBySystem[tok.System.String()]++

			if !tok.System.Classifiable() {
				// Passed through: present in the output stream, never
				// run through the grammar.
				a.Class = grammar.Unclassified
				a.State = grammar.StateResidue
				res.Counts.PassedThrough++
				line.Tokens = append(line.Tokens, a)
				continue
			}

			switch a.Decomp.Status {
			case morph.StatusUndecomposable:
				res.Counts.Undecomposable++
			case morph.StatusMiddleUnknown:
				res.Counts.MiddleUnknown++
				e.logger.Debug("unknown middle",
					"token", tok.Spelling, "middle", a.Decomp.Middle, "pos", tok.Pos.String())
			}

			a.Class = e.cls.Classify(a.Decomp)
			a.State = e.cls.StateOf(a.Class)
			if a.Class.IsClassified() {
				res.Counts.Classified++
			} else {
				res.Counts.Unclassified++
				res.Counts.ResidueBySystem[tok.System.String()]++
			}

			if ev, found := validator.Observe(a.Class, tok.Pos); found {
				res.Hazards = append(res.Hazards, ev)
			}
			line.Tokens = append(line.Tokens, a)
		}
		res.Folio.Lines = append(res.Folio.Lines, line)
	}

	res.Paragraphs = e.grouper.Group(res.Folio, res.Hazards)
	return res
}

// opensParagraph applies the gallows-initial test to a raw line, before
// annotation exists.
func (e *Engine) opensParagraph(l ingest.RawLine) bool {
	if len(l.Tokens) == 0 {
		return false
	}
	probe := corpus.Line{Tokens: []corpus.Annotation{{Token: l.Tokens[0]}}}
	return e.grouper.OpensParagraph(probe)
}

// Aggregate is the corpus-wide, order-independent counter merge.
type Aggregate struct {
	Counts            Counts
	HazardsByCategory map[string]int
	HazardTotal       int
	Kernel            *kernel.Tracker
	FolioCount        int
}

// CorpusResult is the outcome of decoding multiple folios.
type CorpusResult struct {
	Folios    []*FolioResult
	Aggregate Aggregate
}

// DecodeAll decodes folios concurrently and merges aggregates. Results
// keep input order regardless of completion order, so output is
// deterministic.
func (e *Engine) DecodeAll(ctx context.Context, folios []*ingest.RawFolio) (*CorpusResult, error) {
	results := make([]*FolioResult, len(folios))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, raw := range folios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.DecodeFolio(raw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	agg := Aggregate{
		Counts:            newCounts(),
		HazardsByCategory: make(map[string]int),
		Kernel:            kernel.NewTracker(e.tables),
		FolioCount:        len(results),
	}
	for _, r := range results {
		agg.Counts.merge(r.Counts)
		agg.Kernel.Merge(r.Kernel)
		for _, ev := range r.Hazards {
			agg.HazardsByCategory[ev.Category]++
			agg.HazardTotal++
		}
	}
	return &CorpusResult{Folios: results, Aggregate: agg}, nil
}

// SortedCategories returns the aggregate's hazard categories in a
// stable order for rendering.
func (a *Aggregate) SortedCategories() []string {
	cats := make([]string, 0, len(a.HazardsByCategory))
	for c := range a.HazardsByCategory {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}
