package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kalclabs/kalc/internal/state"
	"github.com/kalclabs/kalc/pkg/editor"
	"github.com/kalclabs/kalc/pkg/eval"
	"github.com/spf13/cobra"
)

// ReplOptions holds options for the repl command.
type ReplOptions struct {
	Record bool
}

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	opts := &ReplOptions{}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive calculator prompt",
		Long: `Start an interactive calculator prompt.

Each line is fed through the keypad editing rules and evaluated. The
result carries into the next line, so "+2" after a calculation continues
from the previous answer, and a bare "=" repeats the last operation.`,
		Example: `  kalc repl

  kalc> 5+3
  8
  kalc> =
  11
  kalc> *2
  22`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRepl(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Record, "record", false, "Record calculations in history")

	return cmd
}

func runRepl(cmd *cobra.Command, opts *ReplOptions) error {
	cmdCtx := NewCommandContext(cmd)

	store, cleanup, err := openHistoryStore(cmdCtx.Cfg)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer cleanup()

	record := opts.Record || (!cmd.Flags().Changed("record") && cmdCtx.Cfg.Record)

	// Readline history lives next to the history database.
	historyFile := filepath.Join(filepath.Dir(cmdCtx.Cfg.HistoryPath), "repl_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "kalc> ",
		HistoryFile:     historyFile,
		AutoComplete:    newReplCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "kalc interactive calculator")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	ed := editor.New()
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			ed.Reset()
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if handleReplDotCommand(cmd, store, ed, line, cmdCtx.Cfg.Output) {
				if line == ".quit" || line == ".exit" {
					break
				}
				continue
			}
		}

		if err := replStep(cmd, store, ed, line, record); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}

	return nil
}

// replStep feeds one input line into the editor and, when the buffer
// forms a complete equation, evaluates and prints it.
func replStep(cmd *cobra.Command, store state.Store, ed *editor.Editor, line string, record bool) error {
	// A bare "=" repeats the previous operation on the last result.
	if line != "=" {
		if err := ed.Feed(strings.TrimSuffix(line, "=")); err != nil {
			return err
		}
	}

	result, err := ed.Calculate()
	if err != nil {
		// An incomplete equation is not an error at the prompt; show the
		// buffer and keep accumulating input.
		var invalid *eval.InvalidFormatError
		if errors.As(err, &invalid) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", ed.String())
			return nil
		}
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), result)

	if record {
		// Best-effort; the result has already been shown.
		if _, err := store.RecordCalculation(ed.String(), result); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to record calculation: %v\n", err)
		}
	}
	return nil
}

func handleReplDotCommand(cmd *cobra.Command, store state.Store, ed *editor.Editor, line, format string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printReplHelp(cmd.OutOrStdout())
		return true

	case ".clear":
		ed.Reset()
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "(cleared)")
		return true

	case ".del":
		ed.DeleteLast()
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", ed.String())
		return true

	case ".sign":
		if ed.ToggleSign() {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", ed.String())
		}
		return true

	case ".history":
		limit := 10
		if len(parts) > 1 {
			if n, err := strconv.Atoi(parts[1]); err == nil {
				limit = n
			}
		}
		calcs, err := store.ListCalculations(limit)
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return true
		}
		if err := renderHistory(cmd.OutOrStdout(), calcs, format); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return true

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", command)
		return true
	}
}

func printReplHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .history [n]    Show recent recorded calculations
  .clear          Clear the current equation
  .del            Delete the last keystroke
  .sign           Toggle the sign of the current number
  .quit / .exit   Exit the REPL

Tips:
  - Type an expression like 5+3 and press enter to evaluate
  - A bare = repeats the previous operation on the result
  - Start a line with an operator (+2) to continue from the result
  - The glyphs x, X, × and ÷ work as * and /
`
	_, _ = fmt.Fprintln(w, help)
}

func newReplCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".history"),
		readline.PcItem(".clear"),
		readline.PcItem(".del"),
		readline.PcItem(".sign"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
