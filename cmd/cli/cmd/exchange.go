// Package cmd - import, export and reset commands
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"utilfee/adapters/exchange"
	"utilfee/internal/config"
	"utilfee/internal/logging"
)

var (
	exportOutput string
	exportStdout bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the rate table with a JSON or HCL document",
	Long: `Replace the rate table with the periods in a JSON (.json) or HCL (.hcl)
document. Missing amounts become 0; unknown keys are ignored.

If the document cannot be parsed the current table is left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		periods, err := exchange.ImportFile(args[0])
		if err != nil {
			logging.Warn("import failed", zap.String("file", args[0]), zap.Error(err))
			return fmt.Errorf("import failed, rate table unchanged: %w", err)
		}

		ctx := context.Background()
		st, _, err := openTable(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := saveTable(ctx, cmd, st, periods); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d periods from %s\n", len(periods), args[0])
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the rate table as pretty-printed JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, table, err := openTable(context.Background())
		if err != nil {
			return err
		}
		defer st.Close()

		if exportStdout {
			return exchange.ExportJSON(cmd.OutOrStdout(), table.Periods())
		}

		path := exportOutput
		if path == "" {
			path = config.Get().Output.ExportFile
		}
		if path == "" {
			path = exchange.DefaultExportName
		}
		if err := exchange.ExportFile(path, table.Periods()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d periods to %s\n", table.Len(), path)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard edits and restore the built-in demo periods",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		st, _, err := openTable(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		periods, err := st.Reset(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %d demo periods\n", len(periods))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default "+exchange.DefaultExportName+")")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "write to stdout instead of a file")
}
