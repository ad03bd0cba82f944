package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kalclabs/kalc/internal/state"
	"github.com/kalclabs/kalc/internal/tui"
	"github.com/spf13/cobra"
)

// TUIOptions holds options for the tui command.
type TUIOptions struct {
	Record bool
}

// NewTUICommand creates the tui command.
func NewTUICommand() *cobra.Command {
	opts := &TUIOptions{}

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Full-screen keypad calculator",
		Long: `Start the full-screen keypad calculator.

Keys map onto a pocket calculator keypad: digits, + - * /, decimal
point, brackets, s to toggle the sign, backspace to delete the last
keystroke, c to clear, and enter (or =) to calculate.`,
		Example: `  kalc tui

  # Record every calculation in history
  kalc tui --record`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Record, "record", false, "Record calculations in history")

	return cmd
}

func runTUI(cmd *cobra.Command, opts *TUIOptions) error {
	cmdCtx := NewCommandContext(cmd)

	record := opts.Record || (!cmd.Flags().Changed("record") && cmdCtx.Cfg.Record)

	var store state.Store
	if record {
		s, cleanup, err := openHistoryStore(cmdCtx.Cfg)
		if err != nil {
			return fmt.Errorf("failed to open history: %w", err)
		}
		defer cleanup()
		store = s
	}

	p := tea.NewProgram(tui.New(store, record), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("keypad failed: %w", err)
	}
	return nil
}
