package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/glyphdec/internal/decode"
	"github.com/leapstack-labs/glyphdec/internal/ingest"
	"github.com/leapstack-labs/glyphdec/internal/report"
	"github.com/leapstack-labs/glyphdec/internal/state"
)

// DecodeOptions holds options for the decode command.
type DecodeOptions struct {
	Mode       string // structural, interpretive
	Detail     int    // row cap for text views (0 = all)
	Flow       bool   // condensed macro-state + hazard view
	Lines      bool   // per-line breakdown
	Paragraphs bool   // per-paragraph breakdown
	Format     string // text, json
	Input      string // decode directly from a transcription CSV
	All        bool   // decode every folio
	CrossLine  bool   // hazard checks across line boundaries
}

// NewDecodeCommand creates the decode command.
func NewDecodeCommand() *cobra.Command {
	opts := &DecodeOptions{}
	cmd := &cobra.Command{
		Use:   "decode [folio-id]",
		Short: "Decode a folio into its structural annotations",
		Long: `Decode one folio (or every folio with --all) and print its
classification summary.

The default structural mode prints raw class and role counts suitable
for cross-checking against the rule tables; interpretive mode renders
the same data through fixed phrase templates. --flow, --lines and
--paragraphs select condensed views. --format json emits one structured
record per token plus the folio's hazard events, for downstream
statistical consumers.`,
		Example: `  # Structural summary of one folio
  glyphdec decode f75r

  # Interpretive summary
  glyphdec decode f75r --mode interpretive

  # Macro-state sequence and hazard list only
  glyphdec decode f75r --flow

  # Machine-readable output
  glyphdec decode f75r --format json

  # Decode straight from a transcription file, no corpus store
  glyphdec decode f75r --input transcription.csv

  # Whole corpus with aggregates
  glyphdec decode --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !opts.All {
				return fmt.Errorf("folio id required (or pass --all)")
			}
			folioID := ""
			if len(args) > 0 {
				folioID = args[0]
			}
			return runDecode(cmd, folioID, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "", "Summary mode: structural, interpretive")
	cmd.Flags().IntVar(&opts.Detail, "detail", -1, "Cap rows per view (0 = all)")
	cmd.Flags().BoolVar(&opts.Flow, "flow", false, "Print only the macro-state sequence and hazards")
	cmd.Flags().BoolVar(&opts.Lines, "lines", false, "Print the per-line breakdown")
	cmd.Flags().BoolVar(&opts.Paragraphs, "paragraphs", false, "Print the per-paragraph breakdown")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "text", "Output format: text, json")
	cmd.Flags().StringVar(&opts.Input, "input", "", "Transcription CSV to decode directly")
	cmd.Flags().BoolVar(&opts.All, "all", false, "Decode every folio")
	cmd.Flags().BoolVar(&opts.CrossLine, "cross-line", false, "Check hazards across line boundaries")

	return cmd
}

func runDecode(cmd *cobra.Command, folioID string, opts *DecodeOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	mode := report.Mode(cmdCtx.Cfg.Mode)
	if opts.Mode != "" {
		m, ok := report.ParseMode(opts.Mode)
		if !ok {
			return fmt.Errorf("invalid mode %q (want structural or interpretive)", opts.Mode)
		}
		mode = m
	}
	detail := cmdCtx.Cfg.Detail
	if opts.Detail >= 0 {
		detail = opts.Detail
	}

	folios, err := loadFolios(cmdCtx, folioID, opts)
	if err != nil {
		return err
	}

	cr, err := cmdCtx.Engine.DecodeAll(cmd.Context(), folios)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if opts.All {
		if opts.Format == "json" {
			return report.JSONAll(w, cr)
		}
		report.Corpus(w, cr)
		return nil
	}

	r := cr.Folios[0]
	switch {
	case opts.Format == "json":
		return report.JSON(w, r)
	case opts.Flow:
		report.Flow(w, r)
	case opts.Lines:
		report.Lines(w, r, detail)
	case opts.Paragraphs:
		report.Paragraphs(w, r)
	case mode == report.ModeInterpretive:
		report.Interpretive(w, r)
	default:
		report.Structural(w, r, detail)
	}
	return nil
}

// loadFolios resolves the decode input. Precedence: --input file, then
// the corpus store, then the configured corpus CSV.
func loadFolios(cmdCtx *CommandContext, folioID string, opts *DecodeOptions) ([]*ingest.RawFolio, error) {
	if opts.CrossLine {
		// Rebuild the engine with the flag-level override.
		cmdCtx.Cfg.Hazards.CrossLine = true
		eng, err := decode.NewEngine(cmdCtx.Tables, decode.Options{
			CrossLineHazards: true,
			Logger:           cmdCtx.Logger,
		})
		if err != nil {
			return nil, err
		}
		cmdCtx.Engine = eng
	}

	if opts.Input != "" {
		res, err := ingest.ReadFile(opts.Input, cmdCtx.Logger)
		if err != nil {
			return nil, err
		}
		return selectFolios(res.Folios, folioID, opts.All, opts.Input)
	}

	if _, err := os.Stat(cmdCtx.Cfg.StatePath); err == nil {
		store, err := state.Open(cmdCtx.Cfg.StatePath)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		if opts.All {
			folios, err := store.LoadAll()
			if err != nil {
				return nil, err
			}
			if len(folios) == 0 {
				return nil, fmt.Errorf("corpus store %s is empty; run ingest first", cmdCtx.Cfg.StatePath)
			}
			return folios, nil
		}
		folio, ok, err := store.LoadFolio(folioID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("unknown folio %q in corpus store %s", folioID, cmdCtx.Cfg.StatePath)
		}
		return []*ingest.RawFolio{folio}, nil
	}

	if cmdCtx.Cfg.Corpus != "" {
		res, err := ingest.ReadFile(cmdCtx.Cfg.Corpus, cmdCtx.Logger)
		if err != nil {
			return nil, err
		}
		return selectFolios(res.Folios, folioID, opts.All, cmdCtx.Cfg.Corpus)
	}

	return nil, fmt.Errorf("no corpus available: pass --input, configure corpus, or run ingest")
}

// selectFolios narrows an ingested folio list to the request.
func selectFolios(folios []*ingest.RawFolio, folioID string, all bool, source string) ([]*ingest.RawFolio, error) {
	if all {
		if len(folios) == 0 {
			return nil, fmt.Errorf("no folios in %s", source)
		}
		return folios, nil
	}
	for _, f := range folios {
		if f.ID == folioID {
			return []*ingest.RawFolio{f}, nil
		}
	}
	return nil, fmt.Errorf("unknown folio %q in %s", folioID, source)
}
