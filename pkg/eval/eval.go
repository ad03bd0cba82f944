// Package eval validates and evaluates a finished equation buffer.
//
// Evaluation is a small recursive-descent pass over the token stream
// with standard arithmetic precedence, unary minus, and parenthesized
// grouping. Literal zero divisors are detected by scanning the joined
// expression text before evaluation, so division by zero surfaces as
// its own error even where the evaluator would produce an infinity.
package eval

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/kalclabs/kalc/pkg/equation"
	"github.com/kalclabs/kalc/pkg/token"
)

// zeroSnapThreshold suppresses denormalized noise: magnitudes below it
// are snapped to exact zero.
const zeroSnapThreshold = 1.0e-300

// zeroDivisorRe matches a division operator followed by an optionally
// parenthesized, optionally signed numeral equal to zero. The trailing
// alternation keeps "/0.5" and "/0.05" from matching.
var zeroDivisorRe = regexp.MustCompile(`/\(?-?0+(\.0*)?\)?(?:[^0-9.]|$)`)

// Valid reports whether the equation can be evaluated as typed. An
// equation ending in an operator or a dangling exponent marker is not
// evaluable; a trailing decimal point is canonicalized away first.
func Valid(eq *equation.Equation) bool {
	last, ok := eq.Last(true)
	if !ok {
		return false
	}
	if last.IsOperator() {
		return false
	}
	if last.Kind == token.Numeric && danglingExponent(last.Text) {
		return false
	}
	return true
}

func danglingExponent(s string) bool {
	return strings.HasSuffix(s, "E") ||
		strings.HasSuffix(s, "E-") ||
		strings.HasSuffix(s, "E+")
}

// Evaluate computes the numeric value of the equation.
//
// It fails with *InvalidFormatError when the validity check fails,
// *DivisionByZeroError when a literal zero divisor is present,
// *CalculationError when the expression cannot be parsed or produces
// NaN, and *InfinityError when the magnitude is infinite.
func Evaluate(eq *equation.Equation) (float64, error) {
	if !Valid(eq) {
		return 0, &InvalidFormatError{}
	}
	if zeroDivisorRe.MatchString(eq.String()) {
		return 0, &DivisionByZeroError{}
	}

	p := &parser{toks: eq.Tokens()}
	v, err := p.parseExpr()
	if err == nil && p.pos != len(p.toks) {
		err = fmt.Errorf("unexpected token %q", p.toks[p.pos].String())
	}
	if err != nil {
		return 0, &CalculationError{Err: err}
	}

	if math.Abs(v) < zeroSnapThreshold {
		v = 0
	}
	if math.IsNaN(v) {
		return 0, &CalculationError{}
	}
	if math.IsInf(v, 0) {
		return 0, &InfinityError{Positive: v > 0}
	}
	return v, nil
}

// parser walks the token slice with precedence encoded in the usual
// expr/term/factor layering.
type parser struct {
	toks []token.Token
	pos  int
}

func (p *parser) peek() (token.Token, bool) {
	if p.pos >= len(p.toks) {
		return token.Token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) next() (token.Token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

// parseExpr handles + and -.
func (p *parser) parseExpr() (float64, error) {
	v, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		t, ok := p.peek()
		if !ok || !t.IsOperator() || (t.Text != "+" && t.Text != "-") {
			return v, nil
		}
		p.pos++
		rhs, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if t.Text == "+" {
			v += rhs
		} else {
			v -= rhs
		}
	}
}

// parseTerm handles * and /.
func (p *parser) parseTerm() (float64, error) {
	v, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		t, ok := p.peek()
		if !ok || !t.IsOperator() || (t.Text != "*" && t.Text != "/") {
			return v, nil
		}
		p.pos++
		rhs, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		if t.Text == "*" {
			v *= rhs
		} else {
			v /= rhs
		}
	}
}

// parseFactor handles numerics, unary sign, and bracketed groups.
func (p *parser) parseFactor() (float64, error) {
	t, ok := p.next()
	if !ok {
		return 0, fmt.Errorf("unexpected end of expression")
	}
	switch {
	case t.IsOperator() && t.Text == "-":
		v, err := p.parseFactor()
		return -v, err
	case t.IsOperator() && t.Text == "+":
		return p.parseFactor()
	case t.Kind == token.BracketOpen:
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		closing, ok := p.next()
		if !ok || closing.Kind != token.BracketClose {
			return 0, fmt.Errorf("missing closing bracket")
		}
		return v, nil
	case t.Kind == token.Numeric:
		v, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q", t.Text)
		}
		if t.Negative {
			v = -v
		}
		return v, nil
	default:
		return 0, fmt.Errorf("unexpected token %q", t.String())
	}
}
