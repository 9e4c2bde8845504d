package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/agenthands/dendron/pkg/compiler/emitter"
	"github.com/agenthands/dendron/pkg/compiler/lexer"
	"github.com/agenthands/dendron/pkg/listing"
	"github.com/agenthands/dendron/pkg/vm"
)

const (
	historyFile = ".dendron_history"
	promptMain  = "dendron> "
)

const replHelp = `Enter one statement per line (":= name expr" or "@ expr").
REPL commands:
  :list    show the compiled instructions
  :infix   show the program in infix notation
  :table   show the variable table
  :reset   start a new session
  :quit    exit
`

// session compiles each line into a growing program and runs only the new
// instructions on a machine that persists between lines.
type session struct {
	out, errOut io.Writer

	emitter *emitter.Emitter
	machine *vm.Machine
	lines   []string
}

func newSession(out, errOut io.Writer) *session {
	s := &session{out: out, errOut: errOut}
	s.reset()
	return s
}

func (s *session) reset() {
	s.emitter = emitter.NewEmitter()
	s.machine = vm.NewMachine(s.out)
	s.lines = nil
}

// eval handles one input line and reports whether the session should end.
func (s *session) eval(line string) (quit bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, ";") {
		return false
	}

	if strings.HasPrefix(line, ":") && !strings.HasPrefix(line, ":=") {
		return s.command(line)
	}

	st := lexer.NewStatement(line)
	st.Line = len(s.lines) + 1
	added, err := s.emitter.Emit(st)
	if err != nil {
		fmt.Fprintf(s.errOut, "Compilation Error: %v\n", err)
		return false
	}
	s.lines = append(s.lines, line)

	if err := s.machine.Run(added); err != nil {
		fmt.Fprintf(s.errOut, "Runtime Error: %v\n", err)
		// Drop whatever the failed statement left behind; the table keeps
		// the stores that did happen.
		for s.machine.Depth() > 0 {
			s.machine.Pop()
		}
	}
	return false
}

func (s *session) command(cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return true
	case ":list":
		fmt.Fprint(s.out, listing.Instructions(s.emitter.Program()))
	case ":infix":
		text, err := listing.Infix(lexer.SplitLines(s.lines))
		if err != nil {
			fmt.Fprintf(s.errOut, "Compilation Error: %v\n", err)
			break
		}
		fmt.Fprint(s.out, text)
	case ":table":
		dumpTable(s.machine.Table(), s.out)
	case ":reset":
		s.reset()
	case ":help":
		fmt.Fprint(s.out, replHelp)
	default:
		fmt.Fprintf(s.errOut, "unknown command %s. Type :help for help.\n", cmd)
	}
	return false
}

func cmdRepl(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("repl", stderr)
	noHistory := fs.Bool("no-history", false, "do not read or write the history file")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	fmt.Fprintln(stdout, "Dendron REPL. Ctrl+C cancels input, Ctrl+D exits. Type :help for help.")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	var histPath string
	if !*noHistory {
		if home, err := os.UserHomeDir(); err == nil {
			histPath = filepath.Join(home, historyFile)
		}
	}
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	s := newSession(stdout, stderr)
	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(stdout)
			return exitOK
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintf(stderr, "read error: %v\n", err)
			return exitError
		}
		if s.eval(line) {
			return exitOK
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
	}
}
