package rpncalc

import "strings"

// missingOperand is rendered in place of an operand the program does not supply.
const missingOperand = "?"

// History returns the whole program as fully parenthesized infix text. Each complete expression
// in the program is rendered in program order, and expressions are separated by a comma and a
// space. Operands an operator lacks are shown as a question mark.
//
//	5,2,−      (5−2)
//	3,1,2,+,×  (3×(1+2))
//	2,√,9      √(2), 9
//	+          (?+?)
func (e *Engine) History() string {
	var exprs []string
	tokens := e.program
	for len(tokens) > 0 {
		var s string
		s, tokens = describe(tokens)
		exprs = append(exprs, s)
	}
	// rendered from the back; reverse into program order
	for i, j := 0, len(exprs)-1; i < j; i, j = i+1, j-1 {
		exprs[i], exprs[j] = exprs[j], exprs[i]
	}
	return strings.Join(exprs, ", ")
}

// describe renders the expression ending at the last token of tokens, returning the text and the
// tokens preceding the expression.
func describe(tokens []Token) (string, []Token) {
	if len(tokens) == 0 {
		return missingOperand, tokens
	}
	last := len(tokens) - 1
	remaining := tokens[:last]

	switch tok := tokens[last].(type) {
	case *UnaryOperator:
		operand, rest := describe(remaining)
		return tok.symbol + "(" + operand + ")", rest
	case *BinaryOperator:
		right, rest := describe(remaining)
		left, rest := describe(rest)
		return "(" + left + tok.symbol + right + ")", rest
	default:
		return tok.String(), remaining
	}
}
