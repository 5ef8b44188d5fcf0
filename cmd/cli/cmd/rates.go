// Package cmd - rates commands
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"logiquant/core/output"
	"logiquant/core/rates"
	"logiquant/core/ui"
)

func newRatesCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Inspect and export rate tables",
		Long: `Show the active rate table, export it as an HCL rate file, or
check a rate file before deploying it.

Examples:
  logiquant rates show
  logiquant rates show --format json
  logiquant rates export rates.hcl
  logiquant rates validate ./configs/rates.hcl`,
	}

	cmd.AddCommand(newRatesShowCmd(root))
	cmd.AddCommand(newRatesExportCmd(root))
	cmd.AddCommand(newRatesValidateCmd(root))
	return cmd
}

func newRatesShowCmd(root *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the active rate table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			calc, cfg, err := root.calculator()
			if err != nil {
				return err
			}
			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			formatter, _ := output.NewRegistry(root.noColorFor(cfg)).Get(f)
			return formatter.RenderRates(cmd.OutOrStdout(), calc.Rates())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "cli", "output format (cli, json, text)")
	return cmd
}

func newRatesExportCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Write the active rate table as an HCL rate file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			calc, _, err := root.calculator()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return rates.Write(cmd.OutOrStdout(), calc.Rates())
			}
			if err := os.WriteFile(args[0], rates.Encode(calc.Rates()), 0644); err != nil {
				return fmt.Errorf("failed to write rate table: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rate table %s written to %s\n", calc.RatesVersion(), args[0])
			return nil
		},
	}
}

func newRatesValidateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path>",
		Short: "Check that an HCL rate file is complete and consistent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := ui.NewWriter(cmd.OutOrStdout(), root.noColor)
			table, err := rates.LoadFile(args[0])
			if err != nil {
				out.Error("%s", err)
				cmd.SilenceErrors = true
				return err
			}
			out.Success("%s: rate table %s is valid", args[0], table.Version)
			return nil
		},
	}
}
