package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/codefionn/xl/internal/api"
	"github.com/codefionn/xl/internal/formula"
	"github.com/codefionn/xl/internal/logger"
)

var (
	serveAddr       string
	serveAllowShell bool
)

// serveCmd exposes a sheet over HTTP and websockets.
var serveCmd = &cobra.Command{
	Use:           "serve",
	Short:         "Serve a sheet over HTTP",
	Long:          "Start an HTTP server with a REST API and a websocket feed for one sheet.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		defer logger.Global().Close()

		sheet, err := loadSheet(cfg, sheetFile)
		if err != nil {
			return err
		}

		addr := cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}
		allowShell := cfg.Server.AllowShell || serveAllowShell

		var runner formula.ShellRunner
		if allowShell {
			if runner, err = shellRunner(cfg); err != nil {
				return err
			}
		}

		server := api.NewServer(sheet, api.Options{
			Addr:    addr,
			Runner:  runner,
			Memoize: cfg.Eval.Memoize,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ready := make(chan string, 1)
		go func() {
			if bound, ok := <-ready; ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s\n", bound)
			}
		}()
		return server.ListenAndServe(ctx, ready)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, 127.0.0.1:8080)")
	serveCmd.Flags().BoolVar(&serveAllowShell, "allow-shell", false, "Run SHELL formulas written through the API")
}
