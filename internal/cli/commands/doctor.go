package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/glyphdec/internal/decode"
	"github.com/leapstack-labs/glyphdec/internal/state"
	"github.com/leapstack-labs/glyphdec/pkg/tables"
)

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Validate rule tables and the corpus store",
		Long: `Check that the rule tables load and hold together (unique keys,
total macro-state map, hazard pairs referencing real classes) and that
the corpus store, if present, opens and migrates cleanly.

Exits non-zero when any check fails.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContextWithoutEngine(cmd)
			w := cmd.OutOrStdout()
			failed := false

			ts, err := tables.Load(cmdCtx.Cfg.TablesDir)
			if err != nil {
				fmt.Fprintf(w, "FAIL rule tables: %v\n", err)
				failed = true
			} else {
				fmt.Fprintf(w, "ok   rule tables: %d classes, %d hazard pairs, %d known middles\n",
					len(ts.Classes), len(ts.Hazards), len(ts.Middles))
				if _, err := decode.NewEngine(ts, decode.Options{Logger: cmdCtx.Logger}); err != nil {
					fmt.Fprintf(w, "FAIL engine build: %v\n", err)
					failed = true
				} else {
					fmt.Fprintf(w, "ok   engine build\n")
				}
			}

			if _, err := os.Stat(cmdCtx.Cfg.StatePath); err != nil {
				fmt.Fprintf(w, "ok   corpus store: absent (%s)\n", cmdCtx.Cfg.StatePath)
			} else {
				store, err := state.Open(cmdCtx.Cfg.StatePath)
				if err != nil {
					fmt.Fprintf(w, "FAIL corpus store: %v\n", err)
					failed = true
				} else {
					version, verr := store.MigrationVersion()
					infos, ferr := store.Folios()
					store.Close()
					switch {
					case verr != nil:
						fmt.Fprintf(w, "FAIL corpus store migrations: %v\n", verr)
						failed = true
					case ferr != nil:
						fmt.Fprintf(w, "FAIL corpus store folios: %v\n", ferr)
						failed = true
					default:
						fmt.Fprintf(w, "ok   corpus store: schema v%d, %d folios\n", version, len(infos))
					}
				}
			}

			if failed {
				return fmt.Errorf("doctor found problems")
			}
			return nil
		},
	}
}
