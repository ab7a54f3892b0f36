package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/glyphdec/internal/state"
)

// NewFoliosCommand creates the folios command.
func NewFoliosCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "folios",
		Short: "List folios in the corpus store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContextWithoutEngine(cmd)

			store, err := state.Open(cmdCtx.Cfg.StatePath)
			if err != nil {
				return err
			}
			defer store.Close()

			infos, err := store.Folios()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(infos) == 0 {
				fmt.Fprintln(w, "corpus store is empty; run ingest first")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(w)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Folio", "Lines", "Tokens"})
			for _, fi := range infos {
				t.AppendRow(table.Row{fi.ID, fi.Lines, fi.Tokens})
			}
			t.Render()
			fmt.Fprintf(w, "(%d folios)\n", len(infos))
			return nil
		},
	}
}
