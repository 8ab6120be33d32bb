package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/weontaekna/AOS-boom/tracing"
	"github.com/weontaekna/AOS-boom/tracing/sqlitesink"
)

var (
	traceCycles int
	traceOut    string
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "run a simulation while persisting every task to a SQLite file",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer atexit.Exit(0)

		sink := sqlitesink.New(traceOut)
		sink.Init()

		cfg, csrFile, err := buildConfig()
		if err != nil {
			return fmt.Errorf("building config: %w", err)
		}

		r := newRig(cfg, csrFile)
		tracing.CollectTrace(r.comp, sink)

		if err := r.runTicks(traceCycles); err != nil {
			return fmt.Errorf("running %d cycles: %w", traceCycles, err)
		}

		sink.Flush()
		fmt.Printf("traced %d cycles to %s\n", traceCycles, traceOut)

		return nil
	},
}

func init() {
	traceCmd.Flags().IntVar(&traceCycles, "cycles", 1000, "number of cycles to simulate")
	traceCmd.Flags().StringVar(&traceOut, "out", "lsusim-trace.sqlite3", "path to the output SQLite file")
	rootCmd.AddCommand(traceCmd)
}
