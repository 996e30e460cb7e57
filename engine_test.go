package rpncalc

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"
)

func newEngine(t *testing.T, setters ...EngineConfigurator) *Engine {
	t.Helper()
	e, err := New(setters...)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

// enter feeds each word to the engine the way a keypad would: operator symbols are applied and
// anything else is pushed as an operand, or as a variable if it does not parse as a number.
func enter(e *Engine, words ...string) (float64, bool) {
	var value float64
	var ok bool
	for _, w := range words {
		if IsOperator(w) {
			value, ok = e.ApplyOperator(w)
		} else if f, isFloat := parseFloat(w); isFloat {
			value, ok = e.PushOperand(f)
		} else {
			value, ok = e.PushVariable(w)
		}
	}
	return value, ok
}

func TestNewInvalidSetter(t *testing.T) {
	badSetter := func(_ *Engine) error {
		return ErrConfig{"foo"}
	}
	_, err := New(badSetter)
	if err == nil || err.Error() != "invalid configuration: foo" {
		t.Errorf("Actual: %#v; Expected: %#v", err, "invalid configuration: foo")
	}
}

func TestNewNilLogger(t *testing.T) {
	_, err := New(Logger(nil))
	if _, ok := err.(ErrConfig); !ok {
		t.Errorf("Actual: %#v; Expected: %#v", err, ErrConfig{})
	}
}

func TestNewInvalidVariableNames(t *testing.T) {
	for _, name := range []string{"", "a b", "+", "×", "x", "-", "sqrt", "sin", "2", "INF", "1e3", "-0.5", "NaN"} {
		_, err := New(VariableNames(name))
		if _, ok := err.(ErrConfig); !ok {
			t.Errorf("Case: %q; Actual: %#v; Expected: %#v", name, err, ErrConfig{})
		}
	}
}

func TestEvaluateEmpty(t *testing.T) {
	e := newEngine(t)
	if value, ok := e.Evaluate(); ok {
		t.Errorf("Actual: %#v; Expected: no result", value)
	}
}

func TestPushOperandReturnsValue(t *testing.T) {
	for _, x := range []float64{0, 1, -2.5, 1e300, math.SmallestNonzeroFloat64} {
		e := newEngine(t)
		value, ok := e.PushOperand(x)
		if !ok || value != x {
			t.Errorf("Actual: %#v, %#v; Expected: %#v", value, ok, x)
		}
		value, ok = e.Evaluate()
		if !ok || value != x {
			t.Errorf("Actual: %#v, %#v; Expected: %#v", value, ok, x)
		}
	}
}

func TestEvaluateWellFormed(t *testing.T) {
	list := map[string]float64{
		"5,2,−":           3,
		"2,5,−":           -3,
		"10,2,/":          5,
		"2,10,/":          0.2,
		"5,2,+":           7,
		"5,2,×":           10,
		"9,√":             3,
		"0,sin":           0,
		"0,cos":           1,
		"1,2,+,3,×":       9,
		"3,1,2,+,×":       9,
		"10,4,3,−,−":      9,
		"10,4,−,3,−":      3,
		"100,5,2,×,/":     10,
		"16,√,√":          2,
		"7,2,3,+":         5, // only the last expression counts
		"2,3,4,×,+,5,−,√": 3,
	}
	for input, expected := range list {
		e := newEngine(t)
		value, ok := enter(e, strings.Split(input, ",")...)
		if !ok || value != expected {
			t.Errorf("Case: %s; Actual: %#v, %#v; Expected: %#v", input, value, ok, expected)
		}
		if again, ok := e.Evaluate(); !ok || again != value {
			t.Errorf("Case: %s; Actual: %#v, %#v; Expected: %#v", input, again, ok, value)
		}
	}
}

func TestEvaluateAliases(t *testing.T) {
	list := map[string]float64{
		"5,2,-":   3,
		"5,2,*":   10,
		"5,2,x":   10,
		"9,sqrt":  3,
		"9,√,2,-": 1,
	}
	for input, expected := range list {
		e := newEngine(t)
		value, ok := enter(e, strings.Split(input, ",")...)
		if !ok || value != expected {
			t.Errorf("Case: %s; Actual: %#v, %#v; Expected: %#v", input, value, ok, expected)
		}
	}
}

func TestEvaluateDivideByZero(t *testing.T) {
	e := newEngine(t)
	value, ok := enter(e, "1", "0", "/")
	if !ok || !math.IsInf(value, 1) {
		t.Errorf("Actual: %#v, %#v; Expected: %#v", value, ok, math.Inf(1))
	}
}

func TestEvaluateUnderflow(t *testing.T) {
	list := map[string][]string{
		"binary empty":     {"+"},
		"binary one":       {"4", "×"},
		"unary empty":      {"√"},
		"unary on failed":  {"4", "−", "sin"},
		"binary on failed": {"1", "2", "/", "/"},
	}
	for name, words := range list {
		e := newEngine(t)
		if value, ok := enter(e, words...); ok {
			t.Errorf("Case: %s; Actual: %#v; Expected: no result", name, value)
		}
		// underflow does not roll back the append
		if actual := e.Program(); len(actual) != len(words) {
			t.Errorf("Case: %s; Actual: %#v; Expected: %#v", name, actual, words)
		}
		if value, ok := e.Evaluate(); ok {
			t.Errorf("Case: %s; Actual: %#v; Expected: no result", name, value)
		}
	}
}

func TestUnderflowRecoversWithMoreOperands(t *testing.T) {
	e := newEngine(t)
	if _, ok := enter(e, "4", "×"); ok {
		t.Fatal("Actual: result; Expected: no result")
	}
	// the stranded operator stays put; a fresh expression after it evaluates on its own
	value, ok := enter(e, "2", "3", "+")
	if !ok || value != 5 {
		t.Errorf("Actual: %#v, %#v; Expected: %#v", value, ok, 5.0)
	}
}

func TestApplyOperatorUnknown(t *testing.T) {
	e := newEngine(t)
	enter(e, "5", "2")
	before := e.Program()

	if value, ok := e.ApplyOperator("%"); ok {
		t.Errorf("Actual: %#v; Expected: no result", value)
	}
	after := e.Program()
	if strings.Join(after, ",") != strings.Join(before, ",") {
		t.Errorf("Actual: %#v; Expected: %#v", after, before)
	}
}

func TestVariables(t *testing.T) {
	e := newEngine(t)
	e.StoreVariable("M", 7)
	value, ok := e.PushVariable("M")
	if !ok || value != 7 {
		t.Errorf("Actual: %#v, %#v; Expected: %#v", value, ok, 7.0)
	}
	if value, ok := e.Evaluate(); !ok || value != 7 {
		t.Errorf("Actual: %#v, %#v; Expected: %#v", value, ok, 7.0)
	}

	if value, ok := e.PushVariable("N"); ok {
		t.Errorf("Actual: %#v; Expected: no result", value)
	}
	if value, ok := e.Variable("N"); ok {
		t.Errorf("Actual: %#v; Expected: no value", value)
	}
}

func TestVariableMissIsNotZero(t *testing.T) {
	e := newEngine(t)
	if value, ok := enter(e, "1", "N", "+"); ok {
		t.Errorf("Actual: %#v; Expected: no result", value)
	}
}

func TestVariableResolvedAtEvaluation(t *testing.T) {
	e := newEngine(t)
	if _, ok := enter(e, "M", "2", "×"); ok {
		t.Fatal("Actual: result; Expected: no result")
	}
	e.StoreVariable("M", 4)
	if value, ok := e.Evaluate(); !ok || value != 8 {
		t.Errorf("Actual: %#v, %#v; Expected: %#v", value, ok, 8.0)
	}
	e.StoreVariable("M", 5)
	if value, ok := e.Evaluate(); !ok || value != 10 {
		t.Errorf("Actual: %#v, %#v; Expected: %#v", value, ok, 10.0)
	}
	if value, ok := e.Variable("M"); !ok || value != 5 {
		t.Errorf("Actual: %#v, %#v; Expected: %#v", value, ok, 5.0)
	}
}

func TestReset(t *testing.T) {
	e := newEngine(t)
	enter(e, "1", "2", "+")
	e.StoreVariable("M", 3)

	e.Reset()

	if value, ok := e.Evaluate(); ok {
		t.Errorf("Actual: %#v; Expected: no result", value)
	}
	if actual := e.Program(); len(actual) != 0 {
		t.Errorf("Actual: %#v; Expected: %#v", actual, []string{})
	}
	if value, ok := e.Variable("M"); ok {
		t.Errorf("Actual: %#v; Expected: no value", value)
	}
}

func TestTokensIsCopy(t *testing.T) {
	e := newEngine(t)
	enter(e, "1", "2", "+")
	tokens := e.Tokens()
	tokens[0] = Operand(9)
	if value, _ := e.Evaluate(); value != 3 {
		t.Errorf("Actual: %#v; Expected: %#v", value, 3.0)
	}
	if _, ok := tokens[2].(*BinaryOperator); !ok {
		t.Errorf("Actual: %T; Expected: %T", tokens[2], &BinaryOperator{})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := newEngine(t, Logger(logger))

	enter(e, "1", "2", "+")
	e.ApplyOperator("%")

	out := buf.String()
	for _, expected := range []string{"operator applied", "symbol=+", "program_length=3", "unknown operator"} {
		if !strings.Contains(out, expected) {
			t.Errorf("Actual: %#v; Expected to contain: %#v", out, expected)
		}
	}
}
