package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/cplx/foundation/core/validation"
	"github.com/msto63/cplx/internal/history"
)

var evalJSON bool

var evalCmd = &cobra.Command{
	Use:   "eval <function> [args...]",
	Short: "Evaluate one function call",
	Long: `Evaluates a single function call and prints the result.

Arguments accept a, bi, a+bi, (a, b) and a/b as well as the constants
pi, tau, e and phi. Quote arguments that contain spaces or parentheses.

Examples:
  cplx eval add 1+2i 3-i
  cplx eval "pow (1, 1) 2"
  cplx eval --precision 3 sqrt -2`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().BoolVar(&evalJSON, "json", false, "print the result as JSON")
}

func runEval(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		logger.WarnWithErr("history disabled", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	e := newEvaluator(store)
	defer e.Close()

	ctx := validation.WithSessionID(context.Background(), history.NewSessionID())
	call, res, err := e.EvaluateLine(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	text := res.Format(settings.Output.FormatByte(), settings.Output.FormatPrecision())
	if !evalJSON {
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]string{
		"function": call.Function,
		"kind":     res.Kind.String(),
		"result":   text,
		"exact":    res.String(),
	})
}
