// Package cmd - quote command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"logiquant/core/output"
	"logiquant/core/types"
	"logiquant/internal/logging"
)

type quoteOptions struct {
	width   float64
	depth   float64
	height  float64
	weight  float64
	mode    string
	region  string
	format  string
	explain bool
}

func newQuoteCmd(root *rootOptions) *cobra.Command {
	opts := &quoteOptions{}

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote the shipping fee for one piece of cargo",
		Long: `Compute the shipping fee for cargo of the given size and weight.

Dimensions are in centimetres and weight in kilograms. The mode selects the
carrier (AIR_CJ/cj, AIR_LOTTE/lo, SEA/s) and the region the destination of
the domestic leg (SUDO, OTHER, JEJU or REGION_1..3).

Examples:
  logiquant quote --width 50 --depth 40 --height 30 --weight 150
  logiquant quote -w 30 -d 20 -H 15 -k 10 --mode cj --region JEJU --explain
  logiquant quote -w 30 -d 20 -H 15 -k 10 --format text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuote(cmd, root, opts)
		},
	}

	cmd.Flags().Float64VarP(&opts.width, "width", "w", 0, "width in cm")
	cmd.Flags().Float64VarP(&opts.depth, "depth", "d", 0, "depth in cm")
	cmd.Flags().Float64VarP(&opts.height, "height", "H", 0, "height in cm")
	cmd.Flags().Float64VarP(&opts.weight, "weight", "k", 0, "actual weight in kg")
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", string(types.ModeSea), "shipping mode (AIR_CJ, AIR_LOTTE, SEA)")
	cmd.Flags().StringVarP(&opts.region, "region", "r", string(types.DefaultRegion), "destination region (SUDO, OTHER, JEJU)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format (cli, json, text; default from config)")
	cmd.Flags().BoolVarP(&opts.explain, "explain", "e", false, "show how every fee was calculated")

	for _, name := range []string{"width", "depth", "height", "weight"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func runQuote(cmd *cobra.Command, root *rootOptions, opts *quoteOptions) error {
	mode, err := types.ParseMode(opts.mode)
	if err != nil {
		return err
	}
	region, err := types.ParseRegion(opts.region)
	if err != nil {
		return err
	}

	calc, cfg, err := root.calculator()
	if err != nil {
		return err
	}

	formatName := opts.format
	if formatName == "" {
		formatName = cfg.Output.DefaultFormat
	}
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return err
	}
	formatter, ok := output.NewRegistry(root.noColorFor(cfg)).Get(format)
	if !ok {
		return fmt.Errorf("no formatter for %s", format)
	}

	in := types.QuoteInput{
		WidthCm:  opts.width,
		DepthCm:  opts.depth,
		HeightCm: opts.height,
		WeightKg: opts.weight,
		Mode:     mode,
		Region:   region,
	}

	logging.With(zap.String("mode", string(mode)), zap.String("region", string(region))).Debug("calculating quote")

	var res types.QuoteResult
	if opts.explain || cfg.Output.ShowDetails {
		res = calc.Explain(in)
	} else {
		res = calc.Calculate(in)
	}

	if err := formatter.RenderQuote(cmd.OutOrStdout(), &output.QuoteReport{Input: in, Result: res}); err != nil {
		return fmt.Errorf("failed to render quote: %w", err)
	}

	if !res.Success {
		// the reason has already been rendered
		cmd.SilenceErrors = true
		return fmt.Errorf("quote failed: %s", res.Code)
	}
	return nil
}
