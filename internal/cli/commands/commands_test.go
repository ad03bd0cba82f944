// Package commands_test provides tests for CLI command creation.
package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kalclabs/kalc/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvalCommand(t *testing.T) {
	cmd := NewEvalCommand()

	assert.Equal(t, "eval <expression>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	// Verify flags exist
	flags := []string{"record", "show-buffer"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewHistoryCommand(t *testing.T) {
	cmd := NewHistoryCommand()

	assert.Equal(t, "history", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	flags := []string{"limit", "format", "clear"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewReplCommand(t *testing.T) {
	cmd := NewReplCommand()

	assert.Equal(t, "repl", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("record"), "flag \"record\" should exist")
}

func TestNewTUICommand(t *testing.T) {
	cmd := NewTUICommand()

	assert.Equal(t, "tui", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("record"), "flag \"record\" should exist")
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3")
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "1.2.3")
}

func TestEvalCommand_Execute(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{name: "addition", expr: "5+3", want: "8"},
		{name: "precedence", expr: "2+3*4", want: "14"},
		{name: "implicit multiplication", expr: "2(3+4)", want: "14"},
		{name: "glyph operators", expr: "6×2÷4", want: "3"},
		{name: "repeating fraction", expr: "1/3", want: "0.333333333"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewEvalCommand()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs([]string{tt.expr})

			require.NoError(t, cmd.Execute())
			assert.Equal(t, tt.want, strings.TrimSpace(buf.String()))
		})
	}
}

func TestEvalCommand_DivisionByZero(t *testing.T) {
	cmd := NewEvalCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"5/0"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "division by zero")
}

func TestEvalCommand_ShowBuffer(t *testing.T) {
	cmd := NewEvalCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--show-buffer", "5++3"})

	require.NoError(t, cmd.Execute())
	// The second + overwrites the first, so the buffer shows 5+3.
	assert.Contains(t, buf.String(), "5+3 =")
	assert.Contains(t, buf.String(), "8")
}

func TestRenderHistory_Formats(t *testing.T) {
	calcs := []*state.Calculation{
		{ID: "a", Expression: "5+3", Result: "8"},
		{ID: "b", Expression: "1/3", Result: "0.333333333"},
	}

	t.Run("table", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, renderHistory(buf, calcs, "table"))
		assert.Contains(t, buf.String(), "5+3")
		assert.Contains(t, buf.String(), "(2 calculations)")
	})

	t.Run("json", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, renderHistory(buf, calcs, "json"))
		assert.Contains(t, buf.String(), `"expression": "5+3"`)
	})

	t.Run("csv", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, renderHistory(buf, calcs, "csv"))
		assert.Contains(t, buf.String(), "id,created_at,expression,result")
		assert.Contains(t, buf.String(), "a,")
	})

	t.Run("empty table", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, renderHistory(buf, nil, "table"))
		assert.Contains(t, buf.String(), "(no calculations recorded)")
	})
}

func TestEscapeCSV(t *testing.T) {
	assert.Equal(t, "plain", escapeCSV("plain"))
	assert.Equal(t, `"a,b"`, escapeCSV("a,b"))
	assert.Equal(t, `"say ""hi"""`, escapeCSV(`say "hi"`))
}
