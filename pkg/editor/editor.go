// Package editor implements the keypad state machine. An Editor owns
// one equation buffer plus the calculated/last-result state and decides,
// for every incoming key, how the buffer mutates so it always reads as
// a partially typed arithmetic expression.
package editor

import (
	"fmt"
	"strings"

	"github.com/kalclabs/kalc/pkg/equation"
	"github.com/kalclabs/kalc/pkg/eval"
	"github.com/kalclabs/kalc/pkg/format"
	"github.com/kalclabs/kalc/pkg/token"
)

// Editor is a single calculator session. It is not safe for concurrent
// use; the caller is expected to serialize key events.
type Editor struct {
	eq         *equation.Equation
	calculated bool
	lastResult string
}

// New returns an editor with an empty equation.
func New() *Editor {
	return &Editor{eq: equation.New()}
}

// Reset clears the equation and the calculated flag. The cached last
// result survives so operator and sign keys can still chain from it.
func (ed *Editor) Reset() {
	ed.eq.Reset()
	ed.calculated = false
}

// IsEmpty reports whether the equation holds no tokens.
func (ed *Editor) IsEmpty() bool { return ed.eq.IsEmpty() }

// Calculated reports whether the buffer currently holds a finalized
// result pending either a fresh edit or a chained continuation.
func (ed *Editor) Calculated() bool { return ed.calculated }

// LastResult returns the most recent formatted result, if any.
func (ed *Editor) LastResult() string { return ed.lastResult }

// Tokens returns the display projection of the equation, one string
// per token.
func (ed *Editor) Tokens() []string { return ed.eq.Strings() }

// String returns the joined equation text.
func (ed *Editor) String() string { return ed.eq.String() }

// IsNegativeComponent reports whether a displayed token is a
// parenthesized negative group, so the display layer can render it
// specially.
func (ed *Editor) IsNegativeComponent(s string) bool {
	return token.IsNegativeGroupText(s)
}

// AddDigit handles a digit key. It reports whether the digit was
// accepted; a digit that would push a numeric token past
// token.MaxDigits digit characters is rejected and the buffer left
// unchanged.
func (ed *Editor) AddDigit(d byte) bool {
	if d < '0' || d > '9' {
		return false
	}
	if ed.calculated {
		// A digit after equals starts a brand-new equation; the prior
		// result is discarded, not reseeded.
		ed.Reset()
	}
	ed.calculated = false

	last, ok := ed.eq.Last(false)

	// The solitary leading minus placeholder is extended rather than
	// followed by a fresh token.
	if ok && ed.eq.Len() == 1 && last.IsOperator() && last.Text == "-" {
		ed.eq.ReplaceLast(token.Num("-" + string(d)))
		return true
	}

	if !ok || last.IsOperator() || last.IsBracket() {
		ed.eq.Append(token.Num(string(d)))
		return true
	}

	next := last
	switch {
	case last.Negative:
		inner := last.Text
		if inner == "0" {
			inner = ""
		}
		next.Text = inner + string(d)
	case last.Text == "0":
		next.Text = string(d)
	default:
		next.Text = last.Text + string(d)
	}
	if next.DigitCount() > token.MaxDigits {
		return false
	}
	ed.eq.ReplaceLast(next)
	return true
}

// AddOperator handles an operator key ('+', '-', '*' or '/').
func (ed *Editor) AddOperator(op byte) {
	sym := string(op)
	if !token.IsOperatorText(sym) {
		return
	}
	if ed.calculated {
		// Chained calculation: the previous result becomes the new
		// left operand.
		ed.Reset()
		ed.eq.Append(token.FromResult(ed.lastResult))
	}

	last, ok := ed.eq.Last(true)
	if !ok {
		// Only a minus may start an equation, as a sign placeholder.
		if sym == "-" {
			ed.eq.Append(token.Op("-"))
			ed.calculated = false
		}
		return
	}
	if ed.eq.Len() == 1 && last.IsOperator() && last.Text == "-" {
		// A sole leading minus cannot be replaced.
		return
	}

	switch {
	case last.IsOperator():
		// Only the most recent operator survives consecutive presses.
		ed.eq.ReplaceLast(token.Op(sym))
	case last.Kind == token.Numeric && strings.HasSuffix(last.Text, "E"):
		// An exponent awaiting digits only accepts a sign.
		if sym == "-" {
			last.Text += "-"
			ed.eq.ReplaceLast(last)
		}
		return
	case last.Kind == token.Numeric && (strings.HasSuffix(last.Text, "E-") || strings.HasSuffix(last.Text, "E+")):
		return
	default:
		ed.eq.Append(token.Op(sym))
	}
	ed.calculated = false
}

// AddDecimal handles the decimal point key.
func (ed *Editor) AddDecimal() {
	if ed.calculated {
		ed.Reset()
	}
	ed.calculated = false

	last, ok := ed.eq.Last(false)
	if !ok || last.Kind != token.Numeric {
		ed.eq.Append(token.Num("0."))
		return
	}
	if last.HasDecimal() {
		return
	}
	last.Text += "."
	ed.eq.ReplaceLast(last)
}

// AddBracket handles the bracket key, choosing between an opening and a
// closing bracket from the current balance and the trailing token.
func (ed *Editor) AddBracket() {
	if ed.calculated {
		ed.Reset()
	}
	ed.calculated = false

	opens := ed.eq.Count(token.BracketOpen)
	closes := ed.eq.Count(token.BracketClose)
	last, ok := ed.eq.Last(false)

	switch {
	case !ok:
		ed.eq.Append(token.Open)
	case last.IsBracket():
		// Never close immediately after a single open (no "()"), but a
		// trailing close with opens outstanding closes, as does an open
		// at depth two or more.
		if opens > closes && (last.Kind == token.BracketClose || opens-closes >= 2) {
			ed.eq.Append(token.Close)
		} else {
			ed.eq.Append(token.Open)
		}
	case last.Kind == token.Numeric && opens == closes:
		// Implicit multiplication: 5( means 5*(.
		ed.eq.Append(token.Op("*"))
		ed.eq.Append(token.Open)
	case last.IsOperator():
		ed.eq.Append(token.Open)
	case opens > closes:
		ed.eq.Append(token.Close)
	default:
		ed.eq.Append(token.Open)
	}
}

// ToggleSign flips the sign of the trailing numeric token, toggling
// between the parenthesized negative form and the plain positive form.
// It reports whether anything changed.
func (ed *Editor) ToggleSign() bool {
	if ed.calculated {
		ed.Reset()
		ed.eq.Append(token.FromResult(ed.lastResult))
	}

	last, ok := ed.eq.Last(false)
	if !ok || last.IsOperator() || last.IsBracket() {
		return false
	}
	if !last.Negative && last.Text == "0" {
		return false
	}

	var next token.Token
	switch {
	case last.BareMinus():
		// Canonicalize the bare form first; toggling it yields the
		// unwrapped positive value.
		next = token.Num(strings.TrimPrefix(last.Text, "-"))
	case last.Negative:
		next = token.Num(last.Text)
	default:
		next = token.Neg(last.Text)
	}
	ed.eq.ReplaceLast(next)
	ed.calculated = false
	return true
}

// DeleteLast handles the delete key. After equals it restarts the
// equation from the cached result without trimming it further.
func (ed *Editor) DeleteLast() {
	if ed.calculated {
		ed.Reset()
		ed.eq.Append(token.FromResult(ed.lastResult))
		return
	}

	last, ok := ed.eq.Last(false)
	if !ok {
		return
	}
	ed.calculated = false

	if last.Negative {
		inner := last.Text
		if len(inner) <= 1 {
			ed.eq.DropLast()
			return
		}
		last.Text = inner[:len(inner)-1]
		ed.eq.ReplaceLast(last)
		return
	}

	// Single-character tokens drop whole, including the two-character
	// bare negative -N.
	if len(last.Text) == 1 || (last.BareMinus() && len(last.Text) == 2) {
		ed.eq.DropLast()
		return
	}

	text := last.Text[:len(last.Text)-1]
	// Strip a dangling exponent marker the deletion exposed.
	if strings.HasSuffix(text, "E-") || strings.HasSuffix(text, "E+") {
		text = text[:len(text)-2]
	}
	if strings.HasSuffix(text, "E") {
		text = text[:len(text)-1]
	}
	if text == "" || text == "-" {
		ed.eq.DropLast()
		return
	}
	last.Text = text
	ed.eq.ReplaceLast(last)
}

// Calculate evaluates the equation and returns the formatted result.
// When the buffer already holds a calculated result, the left operand
// is first collapsed to it, so pressing equals repeatedly re-applies
// the trailing operator and operand.
func (ed *Editor) Calculate() (string, error) {
	if ed.calculated {
		ed.replaceLeftOperand(ed.lastResult)
	}

	v, err := eval.Evaluate(ed.eq)
	if err != nil {
		return "", err
	}

	out := format.Value(v)
	ed.lastResult = out
	ed.calculated = true
	return out, nil
}

// replaceLeftOperand rewrites everything before the trailing operator
// and right operand with value, implementing repeated-equals chaining.
func (ed *Editor) replaceLeftOperand(value string) {
	toks := ed.eq.Tokens()
	seed := token.FromResult(value)
	switch {
	case len(toks) <= 1:
		ed.eq.Reset()
		ed.eq.Append(seed)
	case len(toks) == 2:
		ed.eq.Reset()
		ed.eq.Append(seed)
		ed.eq.Append(toks[1])
	default:
		tail := toks[len(toks)-2:]
		ed.eq.Reset()
		ed.eq.Append(seed)
		ed.eq.Append(tail[0])
		ed.eq.Append(tail[1])
	}
}

// Feed types a whole expression through the keypad surface, one key at
// a time, so editor rules decide what is accepted. The multiplication
// and division signs accept both ASCII and the keypad glyphs.
func (ed *Editor) Feed(s string) error {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			ed.AddDigit(byte(r))
		case r == '+' || r == '-':
			ed.AddOperator(byte(r))
		case r == '*' || r == 'x' || r == 'X' || r == '×':
			ed.AddOperator('*')
		case r == '/' || r == '÷':
			ed.AddOperator('/')
		case r == '.':
			ed.AddDecimal()
		case r == '(' || r == ')':
			ed.AddBracket()
		case r == ' ' || r == '\t':
			// ignore whitespace
		default:
			return fmt.Errorf("unsupported key %q", r)
		}
	}
	return nil
}
