// Package cmd provides the lsusim command-line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	envFile string

	coreWidth  int
	memWidth   int
	hbtNumWay  uint32
	hbtBaseHex string
)

// rootCmd is the base command when lsusim is called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "lsusim",
	Short: "lsusim drives the Out-of-Order Load/Store Unit simulation",
	Long: "lsusim runs the LSU against a synthetic memory workload, optionally tracing " +
		"every request to SQLite or serving a live dashboard over the run.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile == "" {
			return nil
		}

		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("loading env file %s: %w", envFile, err)
		}

		return nil
	},
}

// Execute runs the root command, exiting the process on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a .env file of lsusim configuration")
	rootCmd.PersistentFlags().IntVar(&coreWidth, "coreWidth", 2, "number of ROB commit lanes")
	rootCmd.PersistentFlags().IntVar(&memWidth, "memWidth", 1, "number of shared TLB/DC/LCAM resources per cycle")
	rootCmd.PersistentFlags().Uint32Var(&hbtNumWay, "hbt-num-way", 4, "number of ways probed per Hash-based Bounds Table lookup")
	rootCmd.PersistentFlags().StringVar(&hbtBaseHex, "hbt-base-addr", "0x10000", "base physical address of the Hash-based Bounds Table, in hex")
}
