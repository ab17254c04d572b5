package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"tabworks/pxtab/pkg/cli"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pxtab",
	Short: "pxtab - PC-Axis table toolkit",
	Long: `Pxtab parses PC-Axis (PX) statistical files into labelled observation
rows and keeps a catalog of PX sources refreshed.

A PX document carries its table layout in a metadata header: STUB and
HEADING name the dimensions, VALUES lists their members, and the data
block holds one number per cell. Pxtab expands that layout into one row
per observation, each carrying its dimension labels.

The parse, meta and watch commands work on a single document; run starts
the catalog service described by the configuration file.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.CompletionOptions.DisableDefaultCmd = false
}
