package commands

import (
	"fmt"
	"strings"

	"github.com/kalclabs/kalc/pkg/editor"
	"github.com/spf13/cobra"
)

// EvalOptions holds options for the eval command.
type EvalOptions struct {
	Record     bool
	ShowBuffer bool
}

// NewEvalCommand creates the eval command.
func NewEvalCommand() *cobra.Command {
	opts := &EvalOptions{}

	cmd := &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate an expression",
		Long: `Evaluate an expression as if its characters were pressed on the keypad.

Digits, operators (+ - * /), decimal points, and brackets are fed through
the same editing rules the interactive modes use: operators overwrite each
other, digits past the nine-digit cap are ignored, and a bracket after a
number inserts an implicit multiplication. The glyphs × and ÷ are accepted
as aliases for * and /.`,
		Example: `  # Basic arithmetic
  kalc eval "5+3"

  # Implicit multiplication before a bracket
  kalc eval "2(3+4)"

  # Unicode operator glyphs
  kalc eval "6×2÷4"

  # Record the calculation in history
  kalc eval --record "1/3"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Record, "record", false, "Record the calculation in history")
	cmd.Flags().BoolVar(&opts.ShowBuffer, "show-buffer", false, "Print the edited expression before the result")

	return cmd
}

func runEval(cmd *cobra.Command, args []string, opts *EvalOptions) error {
	cmdCtx := NewCommandContext(cmd)

	ed := editor.New()
	expr := strings.Join(args, " ")
	if err := ed.Feed(expr); err != nil {
		return err
	}

	buffer := ed.String()
	result, err := ed.Calculate()
	if err != nil {
		return err
	}

	if opts.ShowBuffer {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s =\n", buffer)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), result)

	// History is best-effort: a store failure never fails a calculation
	// that already produced a result.
	record := opts.Record || (!cmd.Flags().Changed("record") && cmdCtx.Cfg.Record)
	if record {
		store, cleanup, err := openHistoryStore(cmdCtx.Cfg)
		if err != nil {
			cmdCtx.Logger.Warn("failed to open history", "error", err)
			return nil
		}
		defer cleanup()

		if _, err := store.RecordCalculation(buffer, result); err != nil {
			cmdCtx.Logger.Warn("failed to record calculation", "error", err)
			return nil
		}
		cmdCtx.Logger.Debug("recorded calculation", "expression", buffer, "result", result)
	}

	return nil
}
