// Package token defines the atomic units of a keypad equation:
// numeric literals, arithmetic operators, and bracket marks.
package token

import "strings"

// MaxDigits is the maximum number of digit characters a numeric token
// may accumulate. Sign, decimal point, and exponent markup are not counted.
const MaxDigits = 9

// Kind identifies the token category.
type Kind int

const (
	// Numeric is a run of digits, optionally with a decimal point,
	// exponent suffix, or negative markup.
	Numeric Kind = iota
	// Operator is one of + - * /.
	Operator
	// BracketOpen is a free-standing "(".
	BracketOpen
	// BracketClose is a free-standing ")".
	BracketClose
)

// Token is one element of the equation buffer.
//
// For Numeric tokens, Text holds the digits (plus optional decimal point
// and exponent suffix) without any group parentheses; Negative marks the
// token as a parenthesized negative group, rendered as "(-<Text>)".
// A bare leading minus inside Text (e.g. "-5") is only produced by
// extending the solitary minus placeholder at the start of an equation
// or by seeding from a negative calculation result.
type Token struct {
	Kind     Kind
	Text     string
	Negative bool
}

// Open and Close are the bracket tokens.
var (
	Open  = Token{Kind: BracketOpen, Text: "("}
	Close = Token{Kind: BracketClose, Text: ")"}
)

// Num returns a positive (or bare-minus-prefixed) numeric token.
func Num(text string) Token {
	return Token{Kind: Numeric, Text: text}
}

// Neg returns a numeric token stored as a parenthesized negative group.
// inner is the unsigned body, e.g. Neg("1.5") renders as "(-1.5)".
func Neg(inner string) Token {
	return Token{Kind: Numeric, Text: inner, Negative: true}
}

// Op returns an operator token for one of "+", "-", "*", "/".
func Op(sym string) Token {
	return Token{Kind: Operator, Text: sym}
}

// FromResult converts a formatted calculation result (which may carry a
// bare leading minus or scientific notation, e.g. "-8" or "1.2346E10")
// back into a numeric token suitable for seeding a new equation.
func FromResult(s string) Token {
	return Token{Kind: Numeric, Text: s}
}

// String returns the display and join form of the token.
func (t Token) String() string {
	if t.Kind == Numeric && t.Negative {
		return "(-" + t.Text + ")"
	}
	return t.Text
}

// IsOperator reports whether the token is an arithmetic operator.
func (t Token) IsOperator() bool { return t.Kind == Operator }

// IsBracket reports whether the token is a bracket mark.
func (t Token) IsBracket() bool {
	return t.Kind == BracketOpen || t.Kind == BracketClose
}

// DigitCount returns the number of digit characters in the token body.
func (t Token) DigitCount() int {
	n := 0
	for _, r := range t.Text {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// HasDecimal reports whether the numeric body already contains a point.
func (t Token) HasDecimal() bool { return strings.Contains(t.Text, ".") }

// BareMinus reports whether the token is a numeric with a bare leading
// minus, produced by extending the solitary minus placeholder.
func (t Token) BareMinus() bool {
	return t.Kind == Numeric && !t.Negative && strings.HasPrefix(t.Text, "-")
}

// IsOperatorText reports whether s is an operator symbol.
func IsOperatorText(s string) bool {
	switch s {
	case "+", "-", "*", "/":
		return true
	}
	return false
}

// IsBracketText reports whether s is a bracket mark.
func IsBracketText(s string) bool { return s == "(" || s == ")" }

// IsNegativeGroupText reports whether a display string is the
// parenthesized negative encoding, e.g. "(-5)". The display layer uses
// this to render negative components specially.
func IsNegativeGroupText(s string) bool {
	return strings.HasPrefix(s, "(-") && strings.HasSuffix(s, ")")
}
