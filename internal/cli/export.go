package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rustyeddy/coinfolio/ledger"
	"github.com/spf13/cobra"
)

func newExportCmd(rc *RootConfig) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the ledger as CSV",
		Long: `Write every transaction as CSV (id, coin, quantity, direction, timestamp).

Examples:
  coinfolio export
  coinfolio export -o ledger.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, closeLedger, err := rc.openLedger()
			if err != nil {
				return err
			}
			defer closeLedger()

			recs, err := l.ListAll(cmd.Context())
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			if err := ledger.WriteCSV(w, recs); err != nil {
				return fmt.Errorf("write csv: %w", err)
			}
			rc.Log.WithField("records", len(recs)).Debug("exported ledger")
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	return cmd
}
