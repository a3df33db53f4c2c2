// Package cmd - estimate command
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"utilfee/core/demo"
	"utilfee/core/fee"
	"utilfee/core/output"
	"utilfee/core/types"
	"utilfee/internal/config"
	"utilfee/internal/errors"
	"utilfee/internal/logging"
)

var (
	estimateDate    string
	estimateAge     string
	estimateEngine  string
	estimateVolume  string
	estimateElectro bool
	estimatePreset  int
	estimateFormat  string
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate the utilization fee for a vehicle",
	Long: `Resolve the rate period for the EPTS date, pick the band from the engine
type and volume, and print the preferential and commercial fee.

For hybrids from 2025 the confirmed minimum rates are applied.

Examples:
  utilfee estimate --date 2025-02-01 --age new --engine ICE --volume 1.6
  utilfee estimate --date 2025-05-10 --age new --engine HYBRID --volume 2.5 --hybrid-as-electro=false
  utilfee estimate --preset 1 --format json`,
	Args: cobra.NoArgs,
	RunE: runEstimate,
}

func init() {
	rootCmd.AddCommand(estimateCmd)

	estimateCmd.Flags().StringVar(&estimateDate, "date", "", "EPTS date, YYYY-MM-DD")
	estimateCmd.Flags().StringVar(&estimateAge, "age", "new", "vehicle age class (new, used)")
	estimateCmd.Flags().StringVar(&estimateEngine, "engine", "ICE", "engine type (ICE, HYBRID, ELECTRO)")
	estimateCmd.Flags().StringVar(&estimateVolume, "volume", "", "engine volume in liters, e.g. 1.6")
	estimateCmd.Flags().BoolVar(&estimateElectro, "hybrid-as-electro", true, "classify hybrids as electric (series HEV/PHEV)")
	estimateCmd.Flags().IntVar(&estimatePreset, "preset", 0, "use a preset scenario (see 'utilfee presets')")
	estimateCmd.Flags().StringVarP(&estimateFormat, "format", "f", "", "output format (cli, json)")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	query, err := buildQuery(cmd)
	if err != nil {
		return err
	}

	format := estimateFormat
	if format == "" {
		format = config.Get().Output.DefaultFormat
	}
	formatter, ok := output.ForFormat(format)
	if !ok {
		return errors.Newf(errors.TypeInput, "unsupported output format: %s", format)
	}

	st, table, err := openTable(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	quote := fee.NewQuote(table.Periods(), query)
	logging.Debug("quote computed",
		zap.String("status", string(quote.Status)),
		zap.String("date", query.Date),
		zap.String("engine", query.Engine.String()),
		zap.String("band", bandName(quote.Band)))

	return formatter.Render(cmd.OutOrStdout(), quote)
}

// buildQuery starts from a preset when one is given; explicit flags win
func buildQuery(cmd *cobra.Command) (fee.Query, error) {
	var q fee.Query
	flags := cmd.Flags()

	if estimatePreset != 0 {
		presets := demo.Presets()
		if estimatePreset < 1 || estimatePreset > len(presets) {
			return q, errors.Newf(errors.TypeInput, "preset must be between 1 and %d", len(presets))
		}
		q = presets[estimatePreset-1].Query
	} else {
		q.Age = types.AgeNew
		q.Engine = types.EngineICE
		q.Policy.TreatAsElectro = true
	}

	if estimatePreset == 0 || flags.Changed("date") {
		q.Date = estimateDate
	}
	if estimatePreset == 0 || flags.Changed("age") {
		age, ok := types.ParseAgeClass(estimateAge)
		if !ok {
			return q, errors.Newf(errors.TypeInput, "unknown age class: %s (use new or used)", estimateAge)
		}
		q.Age = age
	}
	if estimatePreset == 0 || flags.Changed("engine") {
		engine, ok := types.ParseEngineKind(estimateEngine)
		if !ok {
			return q, errors.Newf(errors.TypeInput, "unknown engine type: %s (use ICE, HYBRID or ELECTRO)", estimateEngine)
		}
		q.Engine = engine
	}
	if estimatePreset == 0 || flags.Changed("volume") {
		q.Volume = estimateVolume
	}
	if estimatePreset == 0 || flags.Changed("hybrid-as-electro") {
		q.Policy.TreatAsElectro = estimateElectro
	}
	return q, nil
}

func bandName(b types.Band) string {
	if !b.IsValid() {
		return "none"
	}
	return b.String()
}

// presetsCmd lists the preset scenarios
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List preset scenarios for 'estimate --preset'",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		for i, p := range demo.Presets() {
			q := p.Query
			line := fmt.Sprintf("%d. %s: date=%s age=%s engine=%s", i+1, p.Label, q.Date, q.Age, q.Engine)
			if q.Volume != "" {
				line += " volume=" + q.Volume
			}
			if q.Engine == types.EngineHybrid {
				line += fmt.Sprintf(" hybrid-as-electro=%t", q.Policy.TreatAsElectro)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
