// Package cmd provides the CLI commands for utilfee.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"utilfee/adapters/storage"
	"utilfee/core/store"
	"utilfee/internal/config"
	"utilfee/internal/logging"
)

const version = "0.1.0"

var (
	cfgFile  string
	dataPath string
	verbose  bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "utilfee",
	Short: "Estimate the vehicle utilization (recycling) fee",
	Long: `utilfee computes the preferential and commercial utilization fee for a
vehicle from its EPTS date, age, engine type and engine volume.

Rates come from an editable table of periods kept in a local JSON file.

Examples:
  utilfee estimate --date 2025-02-01 --age new --engine ICE --volume 1.6
  utilfee estimate --preset 3
  utilfee periods list
  utilfee export --output rates.json`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file, JSON or YAML (default is $HOME/.utilfee/config.json)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "rate table file (overrides data.path)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	path := cfgFile
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + "/.utilfee/config.json"
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if dataPath != "" {
		cfg.Data.Path = dataPath
	}
	config.Set(cfg)

	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// openTable opens the configured store and loads the rate table from it
func openTable(ctx context.Context) (storage.Store, *store.Table, error) {
	cfg := config.Get()
	st, err := storage.StoreFactory(storage.Backend(cfg.Data.Backend), map[string]string{
		"path": cfg.Data.Path,
	}, logging.Named("storage"))
	if err != nil {
		return nil, nil, err
	}

	periods, err := st.Load(ctx)
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	logging.Debug("rate table ready", zap.Int("periods", len(periods)))
	return st, store.New(periods), nil
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "utilfee version %s\n", version)
	},
}
