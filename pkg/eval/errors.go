package eval

import "fmt"

// InvalidFormatError is returned when the equation cannot be evaluated
// as typed: it ends in an operator or a dangling exponent marker.
type InvalidFormatError struct{}

func (e *InvalidFormatError) Error() string {
	return "equation has an invalid format"
}

// DivisionByZeroError is returned when a literal zero divisor is
// detected before evaluation.
type DivisionByZeroError struct{}

func (e *DivisionByZeroError) Error() string {
	return "division by zero"
}

// CalculationError is returned when the evaluator itself fails or the
// result is not a number.
type CalculationError struct {
	Err error
}

func (e *CalculationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("calculation failed: %v", e.Err)
	}
	return "calculation failed"
}

func (e *CalculationError) Unwrap() error { return e.Err }

// InfinityError is returned when the evaluated magnitude is infinite.
// Positive carries the sign so the display can distinguish the two.
type InfinityError struct {
	Positive bool
}

func (e *InfinityError) Error() string {
	if e.Positive {
		return "result is infinity"
	}
	return "result is negative infinity"
}
