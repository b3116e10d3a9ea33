package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/cplx/internal/calc"
	"github.com/msto63/cplx/internal/server"
	"github.com/msto63/cplx/pkg/core/config"
	"github.com/msto63/cplx/pkg/core/health"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the websocket evaluation server",
	Long: `Starts the websocket evaluation server.

Endpoints:
  /ws         websocket, messages {"type":"eval","id":"1","payload":{"function":"sin","args":["1+2i"]}}
  /health     JSON health report
  /functions  JSON function list

Examples:
  cplx serve
  cplx serve --port 9000 --strict`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serveHost != "" {
		settings.Server.Host = serveHost
	}
	if servePort != 0 {
		settings.Server.Port = servePort
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	e := newEvaluator(store)
	defer e.Close()

	srv := server.New(server.ConfigFromSettings(settings), e, logger.Logger)
	if store != nil {
		srv.Health().Register(health.PingCheck("history", store.Ping))
	}

	watchSettings(ctx, cmd, e, srv)

	fmt.Fprintf(cmd.OutOrStdout(), "cplx server on ws://%s/ws (Ctrl+C to stop)\n", settings.ServerAddress())
	return srv.ListenAndServe(ctx)
}

// watchSettings applies [eval] and [output] changes in the configuration
// file to the running server. Other sections need a restart.
func watchSettings(ctx context.Context, cmd *cobra.Command, e *calc.Evaluator, srv *server.Server) {
	err := settings.Watch(ctx, func(next *config.Settings) {
		if err := applyFlags(cmd, next); err != nil {
			logger.WarnWithErr("configuration reload rejected", err)
			return
		}
		e.Reconfigure(calc.OptionsFromSettings(next.Eval))
		srv.SetOutput(next.Output.FormatByte(), next.Output.FormatPrecision())
		logger.Infow("configuration reloaded",
			"source", next.Source(),
			"strict", next.Eval.Strict,
			"notation", next.Output.Notation,
			"precision", next.Output.Precision)
	}, func(err error) {
		logger.WarnWithErr("configuration reload failed", err)
	})
	if err != nil {
		logger.Debugw("configuration not watched", "reason", err.Error())
	}
}
