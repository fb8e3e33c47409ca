package cli

import (
	"fmt"

	"github.com/rustyeddy/coinfolio/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate or validate configuration files",
		Long: `Manage coinfolio configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  coinfolio config init -o coinfolio.yaml
  coinfolio config validate -f coinfolio.yaml`,
	}

	cmd.AddCommand(
		newConfigInitCmd(),
		newConfigValidateCmd(),
	)
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if err := cfg.SaveToFile(output); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Created default configuration: %s\n", output)
			fmt.Fprintln(out, "\nEdit the file and run with:")
			fmt.Fprintf(out, "  coinfolio --config %s list-portfolio\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "coinfolio.yaml", "output config file path")
	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromFile(path)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Configuration valid: %s\n", path)
			fmt.Fprintf(out, "  Ledger: %s\n", cfg.Ledger.DBPath)
			fmt.Fprintf(out, "  Prices: %s (timeout %s)\n", cfg.Prices.Currency, cfg.Prices.Timeout)
			fmt.Fprintf(out, "  Log: %s/%s\n", cfg.Log.Level, cfg.Log.Format)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "path to config file (required)")
	cmd.MarkFlagRequired("file")
	return cmd
}
