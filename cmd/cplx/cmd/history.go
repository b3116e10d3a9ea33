package cmd

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/cplx/foundation/core/errors"
	"github.com/msto63/cplx/foundation/utils/stringx"
	"github.com/msto63/cplx/internal/history"
)

var (
	historyLimit    int
	historySession  string
	historyFunction string
	historySince    time.Duration
	historyFailed   bool
	historyOlder    time.Duration
	historyKeep     int
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"hist"},
	Short:   "Inspect the evaluation history",
	Long: `Shows, summarizes and prunes the recorded evaluations.

Without a subcommand the most recent evaluations are listed.`,
	RunE: runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded evaluations, newest first",
	RunE:  runHistoryList,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the history",
	RunE:  runHistoryStats,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded evaluations",
	RunE:  runHistoryClear,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old evaluations",
	Long: `Deletes evaluations older than --older-than and keeps at most --keep
entries. Defaults come from the [history] config section.`,
	RunE: runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyStatsCmd, historyClearCmd, historyPruneCmd)

	for _, c := range []*cobra.Command{historyCmd, historyListCmd} {
		c.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries")
		c.Flags().StringVar(&historySession, "session", "", "only this session")
		c.Flags().StringVarP(&historyFunction, "function", "f", "", "only this function")
		c.Flags().DurationVar(&historySince, "since", 0, "only entries newer than this age, e.g. 1h")
		c.Flags().BoolVar(&historyFailed, "failed", false, "only failed evaluations")
	}
	historyPruneCmd.Flags().DurationVar(&historyOlder, "older-than", 0, "maximum age (default: history.retention)")
	historyPruneCmd.Flags().IntVar(&historyKeep, "keep", 0, "maximum entries (default: history.max_entries)")
}

func withHistory(fn func(ctx context.Context, store *history.SQLiteStore) error) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	if store == nil {
		return errors.NewErrorBuilder(errors.ModuleHistory).
			Operation("open").
			Message("history is disabled (history.enabled = false)").
			Build()
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return fn(ctx, store)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	return withHistory(func(ctx context.Context, store *history.SQLiteStore) error {
		filter := history.Filter{
			SessionID:  historySession,
			Function:   historyFunction,
			FailedOnly: historyFailed,
			Limit:      historyLimit,
		}
		if historySince > 0 {
			filter.Since = time.Now().Add(-historySince)
		}

		entries, err := store.Query(ctx, filter)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "no entries")
			return nil
		}
		for _, e := range entries {
			result := e.Result
			if e.Failed() {
				result = "! " + e.ErrorCode + ": " + e.Error
			}
			fmt.Fprintf(out, "%s  %s  %s = %s  (%s)\n",
				e.Timestamp.Format("2006-01-02 15:04:05"),
				stringx.Truncate(e.SessionID, 8, ""),
				stringx.PadRight(stringx.Truncate(e.Expression(), 40, "..."), 40, ' '),
				result,
				history.FormatDuration(e.Duration))
		}
		return nil
	})
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	return withHistory(func(ctx context.Context, store *history.SQLiteStore) error {
		stats, err := store.Stats(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Database:    %s\n", store.Path())
		fmt.Fprintf(out, "Evaluations: %d (%d failed)\n", stats.Total, stats.Failed)
		fmt.Fprintf(out, "Sessions:    %d\n", stats.Sessions)
		if stats.Total > 0 {
			fmt.Fprintf(out, "Range:       %s .. %s\n",
				stats.Oldest.Format(time.RFC3339), stats.Newest.Format(time.RFC3339))
		}

		names := make([]string, 0, len(stats.Functions))
		for name := range stats.Functions {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			if stats.Functions[names[i]] != stats.Functions[names[j]] {
				return stats.Functions[names[i]] > stats.Functions[names[j]]
			}
			return names[i] < names[j]
		})
		if len(names) > 0 {
			fmt.Fprintln(out, "Top functions:")
			for _, name := range names {
				fmt.Fprintf(out, "  %s %d\n", stringx.PadRight(name, 20, ' '), stats.Functions[name])
			}
		}
		return nil
	})
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	return withHistory(func(ctx context.Context, store *history.SQLiteStore) error {
		n, err := store.Clear(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d entries deleted\n", n)
		return nil
	})
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	return withHistory(func(ctx context.Context, store *history.SQLiteStore) error {
		older, keep := settings.History.Retention, settings.History.MaxEntries
		if cmd.Flags().Changed("older-than") {
			older = historyOlder
		}
		if cmd.Flags().Changed("keep") {
			keep = historyKeep
		}
		n, err := store.Prune(ctx, older, keep)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d entries deleted\n", n)
		return nil
	})
}
