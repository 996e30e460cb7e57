package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/karrick/rpncalc"
	"github.com/karrick/rpncalc/store"
)

// session plays the part of the calculator face: it turns keypad words into engine calls and
// keeps the displayed value.
type session struct {
	engine    *rpncalc.Engine
	programs  store.Store
	variables map[string]struct{}
	w         io.Writer
	display   float64
}

func newSession(engine *rpncalc.Engine, programs store.Store, variables []string, w io.Writer) *session {
	s := &session{
		engine:    engine,
		programs:  programs,
		variables: make(map[string]struct{}, len(variables)),
		w:         w,
	}
	for _, name := range variables {
		s.variables[name] = struct{}{}
	}
	return s
}

// line processes every word of one input line.
func (s *session) line(text string) error {
	words := strings.Fields(text)
	for i := 0; i < len(words); i++ {
		word := words[i]
		switch word {
		case "clear":
			s.engine.Reset()
			s.display = 0
			continue
		case "list":
			if err := s.list(); err != nil {
				return err
			}
			continue
		case "save", "load", "delete":
			if i+1 >= len(words) {
				return errors.Errorf("%s requires a program name", word)
			}
			i++
			if err := s.named(word, words[i]); err != nil {
				return err
			}
			continue
		}
		if err := s.key(word); err != nil {
			return err
		}
	}
	return nil
}

// key handles a single keypad word.
func (s *session) key(word string) error {
	if name, ok := storeTarget(word); ok {
		s.engine.StoreVariable(name, s.display)
		s.result(s.engine.Evaluate())
		return nil
	}
	if word == "π" || word == "pi" {
		s.result(s.engine.PushOperand(math.Pi))
		return nil
	}
	if rpncalc.IsOperator(word) {
		s.result(s.engine.ApplyOperator(word))
		return nil
	}
	if _, ok := s.variables[word]; ok {
		s.result(s.engine.PushVariable(word))
		return nil
	}
	f, err := strconv.ParseFloat(word, 64)
	if err != nil {
		return errors.Errorf("unknown key: %q", word)
	}
	s.result(s.engine.PushOperand(f))
	return nil
}

func storeTarget(word string) (string, bool) {
	for _, prefix := range []string{"→", ">"} {
		if name := strings.TrimPrefix(word, prefix); name != word && name != "" {
			return name, true
		}
	}
	return "", false
}

// result shows zero when there is no result, as the calculator face does.
func (s *session) result(value float64, ok bool) {
	if !ok {
		value = 0
	}
	s.display = value
}

func (s *session) named(command, name string) error {
	switch command {
	case "save":
		info, err := s.programs.Save(name, s.engine.Program())
		if err != nil {
			return err
		}
		fmt.Fprintf(s.w, "saved %s (%d tokens)\n", info.Name, info.Tokens)
	case "load":
		program, err := s.programs.Load(name)
		if err != nil {
			return errors.Wrapf(err, "load %s", name)
		}
		s.engine.SetProgram(program)
		s.result(s.engine.Evaluate())
	case "delete":
		return s.programs.Delete(name)
	}
	return nil
}

func (s *session) list() error {
	infos, err := s.programs.List()
	if err != nil {
		return err
	}
	for _, info := range infos {
		fmt.Fprintf(s.w, "%s\t%d tokens\t%s\n", info.Name, info.Tokens, info.Saved.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func (s *session) show() {
	fmt.Fprintf(s.w, "%s\t%s\n", strconv.FormatFloat(s.display, 'g', -1, 64), s.engine.History())
}
