package rpncalc

import "math"

// Canonical operator symbols.
const (
	Multiply   = "×"
	Divide     = "/"
	Add        = "+"
	Subtract   = "−" // U+2212 MINUS SIGN
	SquareRoot = "√"
	Sine       = "sin"
	Cosine     = "cos"
)

// operatorTable maps each canonical symbol to its token. Tokens are shared by every program that
// references them; they carry no mutable state.
type operatorTable map[string]Token

func newOperatorTable() operatorTable {
	ops := make(operatorTable)
	learnBinary := func(symbol string, fn func(first, second float64) float64) {
		ops[symbol] = &BinaryOperator{symbol: symbol, fn: fn}
	}
	learnUnary := func(symbol string, fn func(float64) float64) {
		ops[symbol] = &UnaryOperator{symbol: symbol, fn: fn}
	}

	learnBinary(Multiply, func(a, b float64) float64 { return a * b })
	// the value entered earlier is the dividend and the minuend
	learnBinary(Divide, func(first, second float64) float64 { return second / first })
	learnBinary(Add, func(a, b float64) float64 { return a + b })
	learnBinary(Subtract, func(first, second float64) float64 { return second - first })
	learnUnary(SquareRoot, math.Sqrt)
	learnUnary(Sine, math.Sin)
	learnUnary(Cosine, math.Cos)

	return ops
}

// aliases maps alternate spellings, typically ASCII, to canonical operator symbols.
var aliases = map[string]string{
	"*":    Multiply,
	"x":    Multiply,
	"-":    Subtract,
	"sqrt": SquareRoot,
}

// lookup resolves symbol, or an alias of it, to its operator token.
func (ops operatorTable) lookup(symbol string) (Token, bool) {
	if canonical, ok := aliases[symbol]; ok {
		symbol = canonical
	}
	tok, ok := ops[symbol]
	return tok, ok
}

// Symbols returns the canonical operator symbols in a stable order.
func Symbols() []string {
	return []string{Multiply, Divide, Add, Subtract, SquareRoot, Sine, Cosine}
}

// IsOperator returns true iff symbol is a canonical operator symbol or an alias of one.
func IsOperator(symbol string) bool {
	if _, ok := aliases[symbol]; ok {
		return true
	}
	for _, s := range Symbols() {
		if s == symbol {
			return true
		}
	}
	return false
}
