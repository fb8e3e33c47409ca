package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	rc := &RootConfig{}

	cmd := &cobra.Command{
		Use:   "coinfolio",
		Short: "Coinfolio — a personal cryptocurrency portfolio ledger",
		Long: `Coinfolio records coin buys and sells in a local SQLite ledger and values
the net holdings with live prices from CoinGecko.

Examples:
  coinfolio buy bitcoin 0.5
  coinfolio sell bitcoin 0.1
  coinfolio lookup-coin ethereum --currency eur
  coinfolio list-portfolio --summarize`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.DBPath, "db", "", "SQLite ledger database (default ./portfolio.db)")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().BoolVar(&rc.NoColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().StringVar(&rc.Format, "format", "terminal", "Report format: terminal|markdown")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return rc.setup(cmd)
	}

	// Subcommands
	cmd.AddCommand(
		newLookupCmd(rc),
		newTradeCmd(rc, buyKind),
		newTradeCmd(rc, sellKind),
		newListCmd(rc),
		newExportCmd(rc),
		newConfigCmd(),
		newVersionCmd(),
	)

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
