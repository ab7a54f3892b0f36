package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/glyphdec/internal/report"
	"github.com/leapstack-labs/glyphdec/pkg/tables"
)

// TablesOptions holds options for the tables command.
type TablesOptions struct {
	Format string // text, json
}

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	opts := &TablesOptions{}
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Print the loaded rule tables",
		Long: `Print the static configuration tables the engine runs against:
morphological part tables, the instruction-class lookup table, the
macro-state map, the hazard-pair table, and the kernel alphabet.

Structural decode output is designed to be cross-checked against this
rendering.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContextWithoutEngine(cmd)
			ts, err := tables.Load(cmdCtx.Cfg.TablesDir)
			if err != nil {
				return err
			}
			switch opts.Format {
			case "json":
				return report.TablesJSON(cmd.OutOrStdout(), ts)
			case "text", "":
				report.Tables(cmd.OutOrStdout(), ts)
				return nil
			default:
				return fmt.Errorf("invalid format %q (want text or json)", opts.Format)
			}
		},
	}
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "text", "Output format: text, json")
	return cmd
}
