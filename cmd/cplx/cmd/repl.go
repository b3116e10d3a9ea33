package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/cplx/internal/history"
	"github.com/msto63/cplx/internal/tui/repl"
)

var replCmd = &cobra.Command{
	Use:     "repl",
	Aliases: []string{"shell"},
	Short:   "Start the interactive evaluator",
	Long: `Starts the interactive evaluator.

Type a function name followed by its arguments, e.g. "sin 1+2i".

Commands:
  :help                 show help
  :funcs [category]     list functions
  :history [all] [n]    recent evaluations
  :clear                clear the scrollback
  :quit                 leave

Keys:
  Up/Down     recall previous input
  PgUp/PgDn   scroll
  Ctrl+C      quit`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		logger.WarnWithErr("history disabled", err)
		store = nil
	}

	cfg := repl.DefaultConfig()
	cfg.Format = settings.Output.FormatByte()
	cfg.Precision = settings.Output.FormatPrecision()
	cfg.SessionID = history.NewSessionID()
	if store != nil {
		defer store.Close()
		cfg.Store = store
	}

	e := newEvaluator(store)
	defer e.Close()
	cfg.Evaluator = e

	return repl.Run(cfg)
}
