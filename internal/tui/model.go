// Package tui implements the interactive keypad calculator.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kalclabs/kalc/internal/state"
	"github.com/kalclabs/kalc/pkg/editor"
)

// keyMap defines the keypad bindings.
type keyMap struct {
	Digits    key.Binding
	Operators key.Binding
	Decimal   key.Binding
	Bracket   key.Binding
	Sign      key.Binding
	Equals    key.Binding
	Delete    key.Binding
	Clear     key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Digits:    key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9")),
		Operators: key.NewBinding(key.WithKeys("+", "-", "*", "/", "x", "X")),
		Decimal:   key.NewBinding(key.WithKeys(".")),
		Bracket:   key.NewBinding(key.WithKeys("(", ")", "b")),
		Sign:      key.NewBinding(key.WithKeys("s")),
		Equals:    key.NewBinding(key.WithKeys("enter", "=")),
		Delete:    key.NewBinding(key.WithKeys("backspace", "d")),
		Clear:     key.NewBinding(key.WithKeys("c")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

// Model is the bubbletea model for the keypad calculator.
type Model struct {
	ed     *editor.Editor
	store  state.Store
	record bool
	keys   keyMap

	result   string
	errMsg   string
	width    int
	quitting bool
}

// New creates a keypad model. store may be nil when recording is disabled.
func New(store state.Store, record bool) Model {
	return Model{
		ed:     editor.New(),
		store:  store,
		record: record && store != nil,
		keys:   defaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Digits):
			m.errMsg = ""
			m.result = ""
			m.ed.AddDigit(msg.String()[0])

		case key.Matches(msg, m.keys.Operators):
			m.errMsg = ""
			m.result = ""
			op := msg.String()[0]
			if op == 'x' || op == 'X' {
				op = '*'
			}
			m.ed.AddOperator(op)

		case key.Matches(msg, m.keys.Decimal):
			m.errMsg = ""
			m.result = ""
			m.ed.AddDecimal()

		case key.Matches(msg, m.keys.Bracket):
			m.errMsg = ""
			m.result = ""
			m.ed.AddBracket()

		case key.Matches(msg, m.keys.Sign):
			m.errMsg = ""
			m.result = ""
			m.ed.ToggleSign()

		case key.Matches(msg, m.keys.Delete):
			m.errMsg = ""
			m.result = ""
			m.ed.DeleteLast()

		case key.Matches(msg, m.keys.Clear):
			m.errMsg = ""
			m.result = ""
			m.ed.Reset()

		case key.Matches(msg, m.keys.Equals):
			result, err := m.ed.Calculate()
			if err != nil {
				m.errMsg = err.Error()
				m.result = ""
				return m, nil
			}
			m.errMsg = ""
			m.result = result
			if m.record {
				// Recording failure should not break the keypad.
				_, _ = m.store.RecordCalculation(m.ed.String(), result)
			}
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	expr := m.ed.String()
	if expr == "" {
		expr = "0"
	}

	var display strings.Builder
	display.WriteString(exprStyle.Render(expr))
	display.WriteString("\n")
	switch {
	case m.errMsg != "":
		display.WriteString(errorStyle.Render(m.errMsg))
	case m.result != "":
		display.WriteString(resultStyle.Render("= " + m.result))
	default:
		display.WriteString(" ")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("kalc"))
	b.WriteString("\n")
	b.WriteString(displayStyle.Render(display.String()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(
		"0-9 digits • + - * / operators • . decimal • ( ) brackets\n" +
			"s sign • backspace delete • c clear • enter = • q quit"))
	b.WriteString("\n")

	return b.String()
}

// Result returns the last calculated value, if any.
func (m Model) Result() string {
	return m.result
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	displayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(40).
			Align(lipgloss.Right)

	exprStyle = lipgloss.NewStyle().
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)
