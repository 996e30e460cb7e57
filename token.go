package rpncalc

import (
	"math"
	"strconv"
)

// Token is one unit of a program: an Operand, a Variable, a *UnaryOperator, or a
// *BinaryOperator. The set of variants is closed; the unexported method prevents other packages
// from adding to it.
type Token interface {
	// String returns the display form of the token, which is also its serialized form.
	String() string
	token()
}

// Operand is a literal numeric value in a program.
type Operand float64

// String returns the numeric literal for the operand. NaN and the infinities are rendered as
// UNKN, INF, and NEGINF respectively.
func (o Operand) String() string { return formatFloat(float64(o)) }

func (Operand) token() {}

// Variable is a named reference resolved against the variable store when the program is
// evaluated.
type Variable string

// String returns the variable name.
func (v Variable) String() string { return string(v) }

func (Variable) token() {}

// UnaryOperator pops one value and pushes the result of applying its function to it.
type UnaryOperator struct {
	symbol string
	fn     func(float64) float64
}

// String returns the operator symbol.
func (u *UnaryOperator) String() string { return u.symbol }

func (*UnaryOperator) token() {}

// BinaryOperator pops two values and pushes the result of its function. The function receives
// the first popped value, the one closest to the end of the program, as its first argument.
type BinaryOperator struct {
	symbol string
	fn     func(first, second float64) float64
}

// String returns the operator symbol.
func (b *BinaryOperator) String() string { return b.symbol }

func (*BinaryOperator) token() {}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "UNKN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "NEGINF"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// parseFloat accepts anything strconv.ParseFloat does, plus the constant names emitted by
// formatFloat.
func parseFloat(s string) (float64, bool) {
	switch s {
	case "UNKN":
		return math.NaN(), true
	case "INF":
		return math.Inf(1), true
	case "NEGINF":
		return math.Inf(-1), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
