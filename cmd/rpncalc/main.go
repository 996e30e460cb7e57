// Command rpncalc is a line-oriented reverse Polish calculator.
//
// Each line holds words separated by spaces, entered as though pressed on a calculator keypad:
//
//	5 2 −        push 5, push 2, subtract
//	π cos        push pi, take its cosine
//	M            push the variable M
//	→M  >M       store the displayed value in M
//	clear        empty the program and the variables
//	save NAME    keep the program under NAME
//	load NAME    restore the program saved under NAME
//	delete NAME  forget the program saved under NAME
//	list         show saved programs
//
// After each line the displayed value and the history are printed.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/karrick/rpncalc"
	"github.com/karrick/rpncalc/internal/config"
	"github.com/karrick/rpncalc/store"
)

func main() {
	configPath := flag.String("config", "", "path to YAML or JSON configuration file")
	flag.Parse()

	if err := run(*configPath, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "rpncalc: %s\n", err)
		os.Exit(1)
	}
}

func run(configPath string, r io.Reader, w io.Writer) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.FromFile(configPath); err != nil {
			return err
		}
	}

	logger, err := cfg.Log.NewLogger()
	if err != nil {
		return err
	}

	programs, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	defer programs.Close()

	engine, err := rpncalc.New(
		rpncalc.Logger(logger),
		rpncalc.VariableNames(cfg.Variables...),
	)
	if err != nil {
		return err
	}

	s := newSession(engine, programs, cfg.Variables, w)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := s.line(scanner.Text()); err != nil {
			logger.Warn("command failed", slog.String("error", err.Error()))
			fmt.Fprintf(w, "error: %s\n", err)
			continue
		}
		s.show()
	}
	return errors.Wrap(scanner.Err(), "read input")
}

func openStore(cfg config.Store) (store.Store, error) {
	if cfg.Driver == "sqlite" {
		return store.NewSQLiteStore(cfg.Path)
	}
	return store.NewMemoryStore(), nil
}
