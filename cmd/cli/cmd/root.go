// Package cmd provides the CLI commands for logiquant.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"logiquant/core/quote"
	"logiquant/core/rates"
	"logiquant/internal/config"
	"logiquant/internal/logging"
)

// Version is the CLI version, overridden at build time
var Version = "0.1.0"

// rootOptions are the persistent flags shared by every command
type rootOptions struct {
	cfgFile   string
	ratesFile string
	verbose   bool
	noColor   bool
}

// Execute runs the CLI
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "logiquant",
		Short: "Quote shipping fees for air and sea freight",
		Long: `logiquant computes deterministic shipping quotes from cargo dimensions
and weight: the international carrier fee, the domestic leg when the
cargo is heavy or bulky, and the rounded total.

Examples:
  logiquant quote --width 50 --depth 40 --height 30 --weight 150
  logiquant quote -w 30 -d 20 -H 15 -k 10 --mode cj --explain
  logiquant rates show --format json`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initLogging()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.logiquant/config.json)")
	cmd.PersistentFlags().StringVar(&opts.ratesFile, "rates", "", "HCL rate table (default is the built-in table)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	// Add subcommands
	cmd.AddCommand(newQuoteCmd(opts))
	cmd.AddCommand(newRatesCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// config loads the configuration file, or the defaults when none is given
func (o *rootOptions) config() (*config.Config, error) {
	if o.cfgFile == "" {
		return config.Get(), nil
	}
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	config.Set(cfg)
	return cfg, nil
}

func (o *rootOptions) initLogging() error {
	cfg, err := o.config()
	if err != nil {
		return err
	}
	logCfg := cfg.Logging
	if o.verbose {
		logCfg.Level = "debug"
	}
	if err := logging.Initialize(logCfg); err != nil {
		return fmt.Errorf("error initializing logging: %w", err)
	}
	return nil
}

// rates resolves the rate table: --rates, then the config file, then the built-in table
func (o *rootOptions) rates(cfg *config.Config) (*rates.Table, error) {
	path := o.ratesFile
	if path == "" {
		path = cfg.Rates.File
	}
	if path == "" {
		return rates.Default(), nil
	}
	table, err := rates.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error loading rate table: %w", err)
	}
	logging.Debug("loaded rate table from " + path)
	return table, nil
}

// calculator builds a calculator from the configuration and rate table
func (o *rootOptions) calculator() (*quote.Calculator, *config.Config, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, nil, err
	}
	table, err := o.rates(cfg)
	if err != nil {
		return nil, nil, err
	}
	return quote.NewCalculator(table, cfg.CalculatorConfig()), cfg, nil
}

// noColorFor reports whether styling is off for this run
func (o *rootOptions) noColorFor(cfg *config.Config) bool {
	return o.noColor || cfg.Output.NoColor
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "logiquant version %s (rates %s)\n", Version, rates.DefaultVersion)
		},
	}
}
