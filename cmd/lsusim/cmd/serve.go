package cmd

import (
	"fmt"
	"net/http"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/weontaekna/AOS-boom/monitor"
)

var (
	serveAddr        string
	serveCycles      int
	serveOpenBrowser bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "run a simulation and serve a live dashboard over it",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, csrFile, err := buildConfig()
		if err != nil {
			return fmt.Errorf("building config: %w", err)
		}

		r := newRig(cfg, csrFile)

		srv := monitor.New(r.comp)

		httpServer := &http.Server{Addr: serveAddr, Handler: srv.Handler()}

		errCh := make(chan error, 1)
		go func() { errCh <- httpServer.ListenAndServe() }()

		if serveOpenBrowser {
			_ = browser.OpenURL("http://" + serveAddr + "/queues")
		}

		if err := r.runTicks(serveCycles); err != nil {
			return fmt.Errorf("running %d cycles: %w", serveCycles, err)
		}

		fmt.Printf("simulation finished; dashboard still serving on %s\n", serveAddr)

		return <-errCh
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8080", "address to serve the dashboard on")
	serveCmd.Flags().IntVar(&serveCycles, "cycles", 1000, "number of cycles to simulate before idling")
	serveCmd.Flags().BoolVar(&serveOpenBrowser, "open", false, "open the dashboard in a browser once it starts")
	rootCmd.AddCommand(serveCmd)
}
