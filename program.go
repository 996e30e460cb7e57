package rpncalc

import (
	"encoding/json"
	"log/slog"

	"gopkg.in/yaml.v3"
)

// Program returns the display form of every token in program order: operands as numeric
// literals, variables as their names, and operators as their canonical symbols. The result is a
// flat list of strings, suitable for any simple structured-data format.
func (e *Engine) Program() []string {
	strs := make([]string, len(e.program))
	for idx, tok := range e.program {
		strs[idx] = tok.String()
	}
	return strs
}

// SetProgram replaces the program with one built from tokens, as produced by Program. Each
// string becomes an operator when it is an operator symbol or alias, a variable when it is a
// name declared with VariableNames, and an operand when it parses as a number. Any other string
// is dropped. The variable store is left untouched.
func (e *Engine) SetProgram(tokens []string) {
	program := make([]Token, 0, len(tokens))
	for _, s := range tokens {
		if op, ok := e.ops.lookup(s); ok {
			program = append(program, op)
		} else if _, ok := e.declared[s]; ok {
			program = append(program, Variable(s))
		} else if f, ok := parseFloat(s); ok {
			program = append(program, Operand(f))
		}
	}
	e.program = program
	e.logger.Debug("program replaced",
		slog.Int("accepted", len(program)),
		slog.Int("dropped", len(tokens)-len(program)),
	)
}

// MarshalJSON encodes the program as a JSON array of strings.
func (e *Engine) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Program())
}

// UnmarshalJSON decodes a JSON array of strings and installs it with SetProgram. The Engine must
// have been created by New.
func (e *Engine) UnmarshalJSON(data []byte) error {
	var tokens []string
	if err := json.Unmarshal(data, &tokens); err != nil {
		return err
	}
	e.SetProgram(tokens)
	return nil
}

// MarshalYAML encodes the program as a YAML sequence of strings.
func (e *Engine) MarshalYAML() (interface{}, error) {
	return e.Program(), nil
}

// UnmarshalYAML decodes a YAML sequence of strings and installs it with SetProgram. The Engine
// must have been created by New.
func (e *Engine) UnmarshalYAML(value *yaml.Node) error {
	var tokens []string
	if err := value.Decode(&tokens); err != nil {
		return err
	}
	e.SetProgram(tokens)
	return nil
}
