package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestModel_BasicCalculation(t *testing.T) {
	m := New(nil, false)
	m = press(t, m, "5", "+", "3", "enter")
	assert.Equal(t, "8", m.Result())
}

func TestModel_OperatorOverwrite(t *testing.T) {
	m := New(nil, false)
	m = press(t, m, "5", "+", "*", "3", "enter")
	assert.Equal(t, "15", m.Result())
}

func TestModel_ChainedEquals(t *testing.T) {
	m := New(nil, false)
	m = press(t, m, "5", "+", "3", "enter")
	assert.Equal(t, "8", m.Result())
	m = press(t, m, "enter")
	assert.Equal(t, "11", m.Result())
	m = press(t, m, "enter")
	assert.Equal(t, "14", m.Result())
}

func TestModel_DivisionByZeroShowsError(t *testing.T) {
	m := New(nil, false)
	m = press(t, m, "5", "/", "0", "enter")
	assert.Empty(t, m.Result())
	assert.Contains(t, m.View(), "division by zero")
}

func TestModel_ClearResetsDisplay(t *testing.T) {
	m := New(nil, false)
	m = press(t, m, "5", "+", "3", "c")
	assert.Contains(t, m.View(), "0")
	assert.NotContains(t, m.View(), "5+3")
}

func TestModel_DeleteLastKeystroke(t *testing.T) {
	m := New(nil, false)
	m = press(t, m, "1", "2", "3", "backspace", "enter")
	assert.Equal(t, "12", m.Result())
}

func TestModel_SignToggle(t *testing.T) {
	m := New(nil, false)
	m = press(t, m, "5", "s")
	assert.Contains(t, m.View(), "(-5)")
}

func TestModel_XActsAsMultiply(t *testing.T) {
	m := New(nil, false)
	m = press(t, m, "6", "x", "7", "enter")
	assert.Equal(t, "42", m.Result())
}

func TestModel_QuitKey(t *testing.T) {
	m := New(nil, false)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	quitModel, ok := next.(Model)
	require.True(t, ok)
	assert.Empty(t, quitModel.View())
}

func TestModel_ViewShowsHelp(t *testing.T) {
	m := New(nil, false)
	view := m.View()
	assert.True(t, strings.Contains(view, "kalc"))
	assert.True(t, strings.Contains(view, "quit"))
}
