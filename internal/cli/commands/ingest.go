package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/glyphdec/internal/ingest"
	"github.com/leapstack-labs/glyphdec/internal/state"
)

// NewIngestCommand creates the ingest command.
func NewIngestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <transcription.csv>",
		Short: "Load a transcription file into the corpus store",
		Long: `Read a cleaned transcription CSV (folio,line,position,system,token)
into the local corpus store so decode runs do not re-read the file.

Folios already present in the store are replaced, so re-ingesting the
same file is idempotent. Malformed records are skipped with a warning
and counted; they never abort the ingest.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContextWithoutEngine(cmd)

			res, err := ingest.ReadFile(args[0], cmdCtx.Logger)
			if err != nil {
				return err
			}

			store, err := state.Open(cmdCtx.Cfg.StatePath)
			if err != nil {
				return err
			}
			defer store.Close()

			info, err := store.RecordIngest(res, args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Ingest %s\n", info.ID)
			fmt.Fprintf(w, "  folios: %d  tokens: %d  skipped records: %d\n",
				info.FolioCount, info.TokenCount, info.Skipped)
			fmt.Fprintf(w, "  store: %s\n", cmdCtx.Cfg.StatePath)
			return nil
		},
	}
}
