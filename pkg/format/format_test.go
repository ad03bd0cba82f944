package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_PlainDecimal(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{name: "zero", input: 0, expected: "0"},
		{name: "integer", input: 8, expected: "8"},
		{name: "negative integer", input: -8, expected: "-8"},
		{name: "trailing zeros trimmed", input: 2.5000, expected: "2.5"},
		{name: "one third", input: 1.0 / 3.0, expected: "0.333333333"},
		{name: "two thirds rounds", input: 2.0 / 3.0, expected: "0.666666667"},
		{name: "nine digit integer", input: 123456789, expected: "123456789"},
		{name: "float artifact cleaned", input: 0.1 + 0.2, expected: "0.3"},
		{name: "negative fraction", input: -0.5, expected: "-0.5"},
		{name: "small decimal", input: 0.000123456789, expected: "0.000123457"},
		{name: "eight digit integer", input: 12345678, expected: "12345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Value(tt.input))
		})
	}
}

func TestValue_SignificantDigitTrim(t *testing.T) {
	// Digits beyond nine significant are cut, not rounded.
	assert.Equal(t, "12345.6789", Value(12345.67891))
	assert.Equal(t, "123456789", Value(123456789.4))
}

func TestValue_CarryRule(t *testing.T) {
	// With the integer part filling the display, a cut fraction of .95
	// or more rounds the last visible digit up.
	assert.Equal(t, "123456790", Value(123456789.96))
	assert.Equal(t, "-123456790", Value(-123456789.96))
	// Below the .95 threshold the fraction is simply cut.
	assert.Equal(t, "123456789", Value(123456789.5))
}

func TestValue_ScientificFallback(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{name: "at threshold", input: 1e10, expected: "1.0000E10"},
		{name: "above threshold", input: 1.23456e10, expected: "1.2346E10"},
		{name: "negative large", input: -1.23456e10, expected: "-1.2346E10"},
		{name: "ten digit integer", input: 1234567890, expected: "1.2346E9"},
		{name: "tiny value", input: 1e-12, expected: "1.0000E-12"},
		{name: "small negative", input: -5e-11, expected: "-5.0000E-11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Value(tt.input))
		})
	}
}

func TestValue_RoundTripsThroughParse(t *testing.T) {
	// Results seed chained calculations, so every form must stay
	// machine-parseable.
	for _, v := range []float64{8, -8, 1.0 / 3.0, 1.23456e10, 1e-12} {
		s := Value(v)
		assert.NotEmpty(t, s)
		assert.NotContains(t, s, "E+")
	}
}
