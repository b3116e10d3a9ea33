package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/cplx/foundation/core/errors"
	"github.com/msto63/cplx/internal/calc"
	"github.com/msto63/cplx/internal/history"
	"github.com/msto63/cplx/pkg/core/config"
	"github.com/msto63/cplx/pkg/core/logging"
)

var (
	cfgFile   string
	verbose   bool
	strict    bool
	precision int
	notation  string

	settings *config.Settings
	logger   *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "cplx",
	Short: "cplx - complex number toolkit",
	Long: `cplx evaluates functions of complex numbers.

Commands:
  eval     - evaluate one expression
  funcs    - list the available functions
  repl     - interactive evaluator
  serve    - websocket evaluation server
  history  - inspect the evaluation history`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Close()
		}
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./cplx.toml, ~/.config/cplx/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "reject non-finite operands and results")
	rootCmd.PersistentFlags().IntVarP(&precision, "precision", "p", 6, "fractional digits in results")
	rootCmd.PersistentFlags().StringVar(&notation, "notation", "fixed", "result notation: fixed, scientific or shortest")
}

// setup loads the configuration and applies command line overrides
func setup(cmd *cobra.Command, args []string) error {
	var err error
	settings, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	if err := applyFlags(cmd, settings); err != nil {
		return err
	}

	lc := logging.FromSettings("cplx", settings.Log)
	lc.Verbose = verbose
	logger, err = logging.NewLogger(lc)
	if err != nil {
		logger.WarnWithErr("logger configuration ignored", err)
	}
	logger.Debugw("configuration loaded", "source", settings.Source(), "strict", settings.Eval.Strict)
	return nil
}

// applyFlags lets explicitly set command line flags override s
func applyFlags(cmd *cobra.Command, s *config.Settings) error {
	flags := cmd.Flags()
	if flags.Changed("strict") {
		s.Eval.Strict = strict
	}
	if flags.Changed("precision") {
		if precision < 0 || precision > 17 {
			return errors.OutOfRange(errors.ModuleConfig, "precision", precision, 0, 17)
		}
		s.Output.Precision = precision
	}
	if flags.Changed("notation") {
		switch notation {
		case "fixed", "scientific", "shortest":
			s.Output.Notation = notation
		default:
			return errors.ConfigInvalid("output.notation", notation, "must be fixed, scientific or shortest")
		}
	}
	return nil
}

// openHistory opens the history store when it is enabled, nil otherwise
func openHistory() (*history.SQLiteStore, error) {
	if !settings.History.Enabled {
		return nil, nil
	}
	cfg := history.ConfigFromSettings(settings.History)
	cfg.Logger = logger.Logger
	return history.NewSQLiteStore(cfg)
}

// newEvaluator builds an evaluator from the settings. Evaluations are
// recorded when store is not nil.
func newEvaluator(store *history.SQLiteStore) *calc.Evaluator {
	opts := calc.OptionsFromSettings(settings.Eval)
	opts.Logger = logger.Logger
	if store != nil {
		opts.Recorder = store
	}
	return calc.NewEvaluator(nil, opts)
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	if s, ok := errors.ExtractDetails(err)["suggestions"].([]string); ok && len(s) > 0 {
		fmt.Fprintf(os.Stderr, "did you mean: %v\n", s)
	}
}
