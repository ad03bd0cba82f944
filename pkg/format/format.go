// Package format renders calculation results the way a fixed-width
// calculator display does: at most nine significant digits in plain
// decimal, falling back to five-digit scientific notation when the
// magnitude cannot be shown plainly.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/kalclabs/kalc/pkg/token"
)

const maxDigits = token.MaxDigits

// sciThreshold is the magnitude at which output always switches to
// scientific notation.
const sciThreshold = 1.0e10

// Value formats x as the canonical display string. The result is also
// used verbatim as the seed operand for chained calculations, so it
// must round-trip through strconv.ParseFloat.
func Value(x float64) string {
	if x == 0 {
		return "0"
	}

	// Carry rule: when the integer part fills the display, the cut-off
	// fraction rounds the last visible digit up only from .95 upward.
	abs := math.Abs(x)
	if integerDigits(abs) >= maxDigits && leadingFraction(abs) >= 95 {
		if x < 0 {
			x -= 1
		} else {
			x += 1
		}
		abs = math.Abs(x)
	}

	if abs >= sciThreshold || integerDigits(abs) > maxDigits {
		return scientific(x)
	}

	plain := strconv.FormatFloat(x, 'f', maxDigits, 64)
	trimmed := trimSignificant(plain, maxDigits)
	if trimmed == "0" || trimmed == "-0" {
		// Non-zero value that rounds to zero in plain form.
		return scientific(x)
	}
	return trimmed
}

// integerDigits returns the number of digits before the decimal point
// of a non-negative value.
func integerDigits(abs float64) int {
	s := strconv.FormatFloat(math.Trunc(abs), 'f', -1, 64)
	return len(s)
}

// leadingFraction returns the first two fractional digits as a
// two-digit value, e.g. 0.957 yields 95.
func leadingFraction(abs float64) int {
	s := strconv.FormatFloat(abs, 'f', 3, 64)
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}
	frac := s[i+1:] + "00"
	n, _ := strconv.Atoi(frac[:2])
	return n
}

// trimSignificant cuts a fixed-precision decimal string down to at most
// max significant digits (leading zeros do not count), then strips
// trailing fractional zeros and a bare trailing point.
func trimSignificant(s string, max int) string {
	sig := 0
	seen := false
	cut := len(s)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			continue
		}
		if c != '0' {
			seen = true
		}
		if !seen {
			continue
		}
		sig++
		if sig == max {
			cut = i + 1
			break
		}
	}
	s = s[:cut]
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// scientific renders x with exactly five mantissa digits, an uppercase
// exponent marker, and no explicit plus or leading zeros on the
// exponent.
func scientific(x float64) string {
	s := strconv.FormatFloat(x, 'E', 4, 64)
	i := strings.IndexByte(s, 'E')
	mantissa, exp := s[:i], s[i+1:]

	negExp := strings.HasPrefix(exp, "-")
	exp = strings.TrimLeft(exp, "+-")
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}
	if negExp {
		return mantissa + "E-" + exp
	}
	return mantissa + "E" + exp
}
