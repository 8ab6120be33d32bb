package cmd

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var (
	runCycles     int
	runCPUProfile string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run a headless LSU simulation against a synthetic workload",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer atexit.Exit(0)

		if runCPUProfile != "" {
			f, err := os.Create(runCPUProfile)
			if err != nil {
				return fmt.Errorf("creating cpu profile: %w", err)
			}
			defer f.Close()

			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("starting cpu profile: %w", err)
			}
			defer pprof.StopCPUProfile()
		}

		cfg, csrFile, err := buildConfig()
		if err != nil {
			return fmt.Errorf("building config: %w", err)
		}

		r := newRig(cfg, csrFile)
		if err := r.runTicks(runCycles); err != nil {
			return fmt.Errorf("running %d cycles: %w", runCycles, err)
		}

		counters := r.comp.CSR().Counters()
		fmt.Printf("ran %d cycles\n", runCycles)
		fmt.Printf("mem requests: %d, cache hits: %d, cache misses: %d\n",
			counters.MemReq, counters.CacheHit, counters.CacheMiss)
		fmt.Printf("bounds searches: %d, bounds stores: %d\n", counters.BndSrch, counters.BndStr)

		return nil
	},
}

func init() {
	runCmd.Flags().IntVar(&runCycles, "cycles", 1000, "number of cycles to simulate")
	runCmd.Flags().StringVar(&runCPUProfile, "cpuprofile", "", "write a CPU profile to this path")
	rootCmd.AddCommand(runCmd)
}
