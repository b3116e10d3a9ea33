package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/cplx/foundation/core/errors"
	"github.com/msto63/cplx/foundation/utils/stringx"
	"github.com/msto63/cplx/internal/calc"
)

var funcsCategory string

var funcsCmd = &cobra.Command{
	Use:     "funcs [name]",
	Aliases: []string{"functions", "ls"},
	Short:   "List the available functions",
	Long: `Lists all functions grouped by category. With a name, prints the
signature and aliases of that function.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFuncs,
}

func init() {
	rootCmd.AddCommand(funcsCmd)
	funcsCmd.Flags().StringVarP(&funcsCategory, "category", "c", "", "show one category only")
}

func runFuncs(cmd *cobra.Command, args []string) error {
	reg := calc.NewDefaultRegistry(logger.Logger)
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		fn, err := reg.Lookup(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s  [%s]\n  %s\n", fn.Signature(), fn.Category, fn.Description)
		if len(fn.Aliases) > 0 {
			fmt.Fprintf(out, "  aliases: %s\n", strings.Join(fn.Aliases, ", "))
		}
		return nil
	}

	shown := 0
	for _, cat := range calc.Categories() {
		if funcsCategory != "" && !strings.HasPrefix(string(cat), strings.ToLower(funcsCategory)) {
			continue
		}
		fns := reg.ByCategory(cat)
		if len(fns) == 0 {
			continue
		}
		fmt.Fprintf(out, "%s\n", strings.ToUpper(string(cat)))
		for _, fn := range fns {
			fmt.Fprintf(out, "  %s %s\n",
				stringx.PadRight(fn.Signature(), 34, ' '),
				stringx.Truncate(fn.Description, 70, "..."))
		}
		fmt.Fprintln(out)
		shown += len(fns)
	}
	if shown == 0 {
		return errors.NotFound(errors.ModuleCalc, "funcs", funcsCategory)
	}
	fmt.Fprintf(out, "%d functions\n", shown)
	return nil
}
