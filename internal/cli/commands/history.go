package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/kalclabs/kalc/internal/state"
	"github.com/spf13/cobra"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit  int
	Format string
	Clear  bool
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded calculations",
		Long: `List calculations recorded in the history database, newest first.

Calculations are recorded by eval --record, the REPL, and the interactive
keypad when recording is enabled.`,
		Example: `  # Show recent calculations
  kalc history

  # Show the last 10 as JSON
  kalc history --limit 10 --format json

  # Delete all recorded calculations
  kalc history --clear`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Maximum entries to show (0 uses the configured limit)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: table, json, csv (default from config)")
	cmd.Flags().BoolVar(&opts.Clear, "clear", false, "Delete all recorded calculations")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	cmdCtx := NewCommandContext(cmd)

	store, cleanup, err := openHistoryStore(cmdCtx.Cfg)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer cleanup()

	if opts.Clear {
		if err := store.ClearHistory(); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
		return nil
	}

	limit := opts.Limit
	if limit == 0 {
		limit = cmdCtx.Cfg.HistoryLimit
	}

	calcs, err := store.ListCalculations(limit)
	if err != nil {
		return err
	}

	format := opts.Format
	if format == "" {
		format = cmdCtx.Cfg.Output
	}

	return renderHistory(cmd.OutOrStdout(), calcs, format)
}

func renderHistory(w io.Writer, calcs []*state.Calculation, format string) error {
	switch format {
	case "json":
		return renderHistoryJSON(w, calcs)
	case "csv":
		return renderHistoryCSV(w, calcs)
	default:
		return renderHistoryTable(w, calcs)
	}
}

func renderHistoryTable(w io.Writer, calcs []*state.Calculation) error {
	if len(calcs) == 0 {
		_, _ = fmt.Fprintln(w, "(no calculations recorded)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"When", "Expression", "Result"})

	for _, c := range calcs {
		t.AppendRow(table.Row{
			c.CreatedAt.Local().Format(time.DateTime),
			c.Expression,
			c.Result,
		})
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d calculations)\n", len(calcs))
	return nil
}

func renderHistoryJSON(w io.Writer, calcs []*state.Calculation) error {
	if calcs == nil {
		calcs = []*state.Calculation{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(calcs)
}

func renderHistoryCSV(w io.Writer, calcs []*state.Calculation) error {
	_, _ = fmt.Fprintln(w, "id,created_at,expression,result")
	for _, c := range calcs {
		fields := []string{
			c.ID,
			c.CreatedAt.UTC().Format(time.RFC3339),
			escapeCSV(c.Expression),
			escapeCSV(c.Result),
		}
		_, _ = fmt.Fprintln(w, strings.Join(fields, ","))
	}
	return nil
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
