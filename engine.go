// Package rpncalc implements the engine behind a reverse Polish calculator. Operands, variables,
// and operators are entered one at a time; after each entry the whole program is re-evaluated
// and can be rendered as parenthesized infix text for display.
package rpncalc

import (
	"io"
	"log/slog"
	"strings"
)

// ErrConfig error is returned by New when a configurator is given an argument it cannot use.
type ErrConfig struct {
	Message string
}

// Error returns the error string representation for ErrConfig errors.
func (e ErrConfig) Error() string {
	return "invalid configuration: " + e.Message
}

// EngineConfigurator represents a function that modifies an Engine during construction.
type EngineConfigurator func(*Engine) error

// Logger sets the structured logger the Engine writes debug records to. By default nothing is
// logged.
//
//	func example() {
//		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
//		e, err := rpncalc.New(rpncalc.Logger(slog.New(handler)))
//		if err != nil {
//			panic(err)
//		}
//		e.PushOperand(42)
//	}
func Logger(logger *slog.Logger) EngineConfigurator {
	return func(e *Engine) error {
		if logger == nil {
			return ErrConfig{"nil logger"}
		}
		e.logger = logger
		return nil
	}
}

// VariableNames declares the variable names SetProgram recognizes when restoring a program.
// Without declared names SetProgram drops every token that is neither an operator nor a number.
// PushVariable accepts any name regardless of this setting. Names may not be empty, contain
// whitespace, collide with an operator symbol or alias, or parse as a number.
//
//	func example() {
//		e, err := rpncalc.New(rpncalc.VariableNames("M"))
//		if err != nil {
//			panic(err)
//		}
//		e.StoreVariable("M", 7)
//		e.SetProgram([]string{"M", "2", "×"})
//		value, _ := e.Evaluate() // 14
//	}
func VariableNames(names ...string) EngineConfigurator {
	return func(e *Engine) error {
		for _, name := range names {
			switch {
			case name == "":
				return ErrConfig{"empty variable name"}
			case strings.ContainsAny(name, " \t\r\n"):
				return ErrConfig{"variable name contains whitespace: " + name}
			case IsOperator(name):
				return ErrConfig{"variable name is an operator: " + name}
			}
			if _, isFloat := parseFloat(name); isFloat {
				return ErrConfig{"variable name is a number: " + name}
			}
			e.declared[name] = struct{}{}
		}
		return nil
	}
}

// Engine is a reverse Polish calculator. It holds a program of tokens that only grows during
// entry, and a store of named values that variables in the program resolve against. Every entry
// re-evaluates the whole program from its last token.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	ops      operatorTable
	program  []Token
	vars     map[string]float64
	declared map[string]struct{}
	logger   *slog.Logger
}

// New returns an Engine with an empty program and an empty variable store.
//
//	e, err := rpncalc.New()
//	if err != nil {
//	    panic(err)
//	}
//	e.PushOperand(5)
//	e.PushOperand(2)
//	value, ok := e.ApplyOperator("−") // 3, true
func New(setters ...EngineConfigurator) (*Engine, error) {
	e := &Engine{
		ops:      newOperatorTable(),
		vars:     make(map[string]float64),
		declared: make(map[string]struct{}),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, setter := range setters {
		if err := setter(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// PushOperand appends an operand to the program and returns the result of evaluating it.
func (e *Engine) PushOperand(value float64) (float64, bool) {
	e.program = append(e.program, Operand(value))
	return e.Evaluate()
}

// PushVariable appends a reference to the named variable and returns the result of evaluating
// the program. The name need not have been stored; evaluation simply has no result until it is.
// Any name is accepted, but one that is an operator symbol or alias, or that parses as a number,
// is restored by SetProgram as that operator or number rather than as a variable.
func (e *Engine) PushVariable(name string) (float64, bool) {
	e.program = append(e.program, Variable(name))
	return e.Evaluate()
}

// ApplyOperator appends the operator named by symbol, or by one of its aliases, and returns the
// result of evaluating the program. An unknown symbol leaves the program unchanged and has no
// result. A known operator without enough operands stays in the program, also without a result.
func (e *Engine) ApplyOperator(symbol string) (float64, bool) {
	op, ok := e.ops.lookup(symbol)
	if !ok {
		e.logger.Debug("unknown operator", slog.String("symbol", symbol))
		return 0, false
	}
	e.program = append(e.program, op)
	e.logger.Debug("operator applied",
		slog.String("symbol", op.String()),
		slog.Int("program_length", len(e.program)),
	)
	return e.Evaluate()
}

// Evaluate returns the value of the expression ending at the last token of the program. It has
// no result when the program is empty, an operator lacks operands, or a variable is not stored.
// Tokens before that expression do not affect the result.
func (e *Engine) Evaluate() (float64, bool) {
	value, ok, _ := e.evaluate(e.program)
	return value, ok
}

// evaluate consumes the expression ending at the last token of tokens, returning its value and
// the tokens preceding it. When no value results, the returned remainder is everything before
// the last token for variables, and tokens itself for operators.
func (e *Engine) evaluate(tokens []Token) (float64, bool, []Token) {
	if len(tokens) == 0 {
		return 0, false, tokens
	}
	last := len(tokens) - 1
	remaining := tokens[:last]

	switch tok := tokens[last].(type) {
	case Operand:
		return float64(tok), true, remaining
	case Variable:
		value, ok := e.vars[string(tok)]
		return value, ok, remaining
	case *UnaryOperator:
		if operand, ok, rest := e.evaluate(remaining); ok {
			return tok.fn(operand), true, rest
		}
	case *BinaryOperator:
		if first, ok, afterFirst := e.evaluate(remaining); ok {
			if second, ok, afterSecond := e.evaluate(afterFirst); ok {
				return tok.fn(first, second), true, afterSecond
			}
		}
	}
	return 0, false, tokens
}

// StoreVariable sets the named variable, replacing any value stored before.
func (e *Engine) StoreVariable(name string, value float64) {
	e.vars[name] = value
	e.logger.Debug("variable stored", slog.String("name", name), slog.Float64("value", value))
}

// Variable returns the value last stored for name, or false if none was.
func (e *Engine) Variable(name string) (float64, bool) {
	value, ok := e.vars[name]
	return value, ok
}

// Reset clears both the program and the variable store.
func (e *Engine) Reset() {
	e.program = nil
	e.vars = make(map[string]float64)
	e.logger.Debug("reset")
}

// Tokens returns a copy of the program.
func (e *Engine) Tokens() []Token {
	tokens := make([]Token, len(e.program))
	copy(tokens, e.program)
	return tokens
}
