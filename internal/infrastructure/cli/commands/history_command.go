package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/doeshing/clio-go/internal/app"
	"github.com/doeshing/clio-go/internal/domain"
	"github.com/doeshing/clio-go/internal/infrastructure/cli/helpers"
	"github.com/doeshing/clio-go/internal/ports"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the audit trail of submitted commands",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistorySearchCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
		newHistoryStatsCommand(container),
		newHistoryPruneCommand(container),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int
	var queries bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(container)
			if err != nil {
				return err
			}
			if queries {
				return listRerunLines(cmd.OutOrStdout(), store, limit)
			}
			return listHistoryEntries(cmd.OutOrStdout(), store, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", DefaultHistoryLimit, "Max entries to show")
	cmd.Flags().BoolVar(&queries, "queries", false, "Print the clio invocations that produced the entries")
	return cmd
}

// newHistorySearchCommand creates the 'history search' subcommand
func newHistorySearchCommand(container *app.Container) *cobra.Command {
	var query string
	var searchLimit int

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search history for a keyword in queries and commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" {
				return errors.New(ErrQueryRequired)
			}
			store, err := historyStore(container)
			if err != nil {
				return err
			}
			return searchHistoryEntries(cmd.OutOrStdout(), store, query, searchLimit)
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Search keyword")
	cmd.Flags().IntVar(&searchLimit, "limit", DefaultHistorySearchLimit, "Limit search results")
	return cmd
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(container)
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}
}

// newHistoryExportCommand creates the 'history export' subcommand
func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export history to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(container)
			if err != nil {
				return err
			}
			if err := store.ExportJSON(args[0]); err != nil {
				return fmt.Errorf("failed to export history to %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "History exported to %s\n", args[0])
			return nil
		},
	}
}

// newHistoryStatsCommand creates the 'history stats' subcommand
func newHistoryStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show top commands and safety distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := historyStore(container)
			if err != nil {
				return err
			}
			return showHistoryStats(cmd.OutOrStdout(), store)
		},
	}
}

// newHistoryPruneCommand creates the 'history prune' subcommand
func newHistoryPruneCommand(container *app.Container) *cobra.Command {
	var days int
	var save bool

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete history older than N days",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days <= 0 {
				return errors.New(ErrInvalidRetainDays)
			}
			return pruneHistory(cmd.Context(), cmd.OutOrStdout(), container, days, save)
		},
	}

	cmd.Flags().IntVar(&days, "days", DefaultHistoryRetainDays, "Days to retain history")
	cmd.Flags().BoolVar(&save, "save", false, "Also store the value as history.retention_days")
	return cmd
}

func historyStore(container *app.Container) (ports.HistoryRepository, error) {
	if container == nil || container.HistoryStore == nil {
		return nil, errors.New(ErrHistoryStoreUnavailable)
	}
	return container.HistoryStore, nil
}

// listHistoryEntries lists recent history entries
func listHistoryEntries(out io.Writer, store ports.HistoryRepository, limit int) error {
	records, err := store.Records(limit, "")
	if err != nil {
		return fmt.Errorf("failed to retrieve history records: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	for _, rec := range records {
		fmt.Fprintf(out, "%s | %s | %s\n",
			rec.Timestamp.Local().Format(TimestampFormat),
			rec.SafetyLevel,
			rec.Command)
	}

	return nil
}

// listRerunLines prints one shell-quoted clio invocation per distinct query.
func listRerunLines(out io.Writer, store ports.HistoryRepository, limit int) error {
	records, err := store.Records(limit, "")
	if err != nil {
		return fmt.Errorf("failed to retrieve history records: %w", err)
	}

	seen := map[string]bool{}
	for _, rec := range records {
		if rec.Query == "" || seen[rec.Query] {
			continue
		}
		seen[rec.Query] = true
		fmt.Fprintln(out, shellescape.QuoteCommand([]string{"clio", rec.Query}))
	}
	return nil
}

// searchHistoryEntries searches history for a keyword
func searchHistoryEntries(out io.Writer, store ports.HistoryRepository, query string, limit int) error {
	records, err := store.Records(limit, query)
	if err != nil {
		return fmt.Errorf("failed to search history: %w", err)
	}

	for _, rec := range records {
		fmt.Fprintf(out, "%s | %s | %s\n",
			rec.Timestamp.Local().Format(TimestampFormat),
			rec.Query,
			rec.Command)
	}

	return nil
}

// showHistoryStats displays top commands and the safety distribution
func showHistoryStats(out io.Writer, store ports.HistoryRepository) error {
	records, err := store.Records(MaxHistoryAnalysisRecords, "")
	if err != nil {
		return fmt.Errorf("failed to retrieve history for analysis: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}

	displayHistoryStatistics(out, records)
	return nil
}

// pruneHistory removes old records and optionally persists the retention policy
func pruneHistory(ctx context.Context, out io.Writer, container *app.Container, days int, save bool) error {
	store, err := historyStore(container)
	if err != nil {
		return err
	}

	removed, err := store.PruneOlderThan(time.Duration(days) * 24 * time.Hour)
	if err != nil {
		return fmt.Errorf("failed to prune old history: %w", err)
	}

	if save {
		cfg, err := loadConfig(ctx, container)
		if err != nil {
			return err
		}
		cfg.History.RetentionDays = days
		if err := helpers.SaveConfigWithValidation(container, cfg); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Removed %d entries; retained last %d days of history.\n", removed, days)
	return nil
}

// displayHistoryStatistics displays formatted history statistics
func displayHistoryStatistics(out io.Writer, records []domain.HistoryRecord) {
	commandFreq := make(map[string]int)
	sessions := make(map[string]bool)
	for _, rec := range records {
		commandFreq[rec.Command]++
		sessions[rec.SessionID] = true
	}

	fmt.Fprintf(out, "Entries analyzed: %d\nSessions: %d\n", len(records), len(sessions))

	fmt.Fprintln(out, pterm.Bold.Sprint("Top commands:"))
	for _, stat := range helpers.CalculateTopCommands(commandFreq, 5) {
		fmt.Fprintf(out, "  %s (%d)\n", stat.Command, stat.Count)
	}

	fmt.Fprintln(out, pterm.Bold.Sprint("Safety distribution:"))
	for _, stat := range helpers.SafetyDistribution(records) {
		fmt.Fprintf(out, "  %s: %d\n", stat.Command, stat.Count)
	}

	hints := helpers.DeriveUndoHints(records)
	if len(hints) > 0 {
		fmt.Fprintln(out, pterm.Bold.Sprint("Undo hints:"))
		for _, hint := range hints {
			fmt.Fprintf(out, "  - %s\n", hint)
		}
	}
}
