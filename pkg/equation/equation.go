// Package equation provides the ordered token buffer a keypad equation
// is built in. The buffer is a plain container; all editing rules live
// in the editor package.
package equation

import (
	"strings"

	"github.com/kalclabs/kalc/pkg/token"
)

// Equation is an ordered, mutable sequence of tokens.
type Equation struct {
	toks []token.Token
}

// New returns an empty equation.
func New() *Equation {
	return &Equation{}
}

// Len returns the number of tokens in the buffer.
func (e *Equation) Len() int { return len(e.toks) }

// IsEmpty reports whether the buffer holds no tokens.
func (e *Equation) IsEmpty() bool { return len(e.toks) == 0 }

// Reset clears the buffer.
func (e *Equation) Reset() { e.toks = e.toks[:0] }

// Append adds a token at the end of the buffer.
func (e *Equation) Append(t token.Token) { e.toks = append(e.toks, t) }

// ReplaceLast overwrites the final token. No-op on an empty buffer.
func (e *Equation) ReplaceLast(t token.Token) {
	if len(e.toks) > 0 {
		e.toks[len(e.toks)-1] = t
	}
}

// DropLast removes the final token. No-op on an empty buffer.
func (e *Equation) DropLast() {
	if len(e.toks) > 0 {
		e.toks = e.toks[:len(e.toks)-1]
	}
}

// Last returns the final token. When correctTrailingDecimal is set and
// the token is a numeric ending in a decimal point, the point is
// stripped from the stored token before returning, canonicalizing
// "12." to "12".
func (e *Equation) Last(correctTrailingDecimal bool) (token.Token, bool) {
	if len(e.toks) == 0 {
		return token.Token{}, false
	}
	t := e.toks[len(e.toks)-1]
	if correctTrailingDecimal && t.Kind == token.Numeric && strings.HasSuffix(t.Text, ".") {
		t.Text = strings.TrimSuffix(t.Text, ".")
		e.toks[len(e.toks)-1] = t
	}
	return t, true
}

// Count returns the number of tokens of the given kind.
func (e *Equation) Count(k token.Kind) int {
	n := 0
	for _, t := range e.toks {
		if t.Kind == k {
			n++
		}
	}
	return n
}

// Tokens returns a copy of the buffer contents.
func (e *Equation) Tokens() []token.Token {
	out := make([]token.Token, len(e.toks))
	copy(out, e.toks)
	return out
}

// Strings returns the display projection of the buffer, one string per
// token, with negative groups in their "(-x)" form.
func (e *Equation) Strings() []string {
	out := make([]string, len(e.toks))
	for i, t := range e.toks {
		out[i] = t.String()
	}
	return out
}

// String joins the buffer into a single expression text.
func (e *Equation) String() string {
	var b strings.Builder
	for _, t := range e.toks {
		b.WriteString(t.String())
	}
	return b.String()
}
