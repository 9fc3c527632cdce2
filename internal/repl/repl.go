// Package repl implements the interactive zepto session.
//
// Lines are compiled and executed one at a time on a single virtual
// machine, so globals defined early in a session stay visible until it
// ends. Compile and runtime errors are printed and the loop keeps going.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/zepto-lang/zepto/internal/config"
	"github.com/zepto-lang/zepto/internal/vm"
)

const banner = "zepto repl | type 'exit' to quit"

// REPL drives one interactive session.
type REPL struct {
	in          io.Reader
	out         io.Writer
	cfg         *config.Config
	machine     *vm.VM
	interactive bool
	colorize    bool
	session     string
}

// New builds a session with explicit streams. The caller decides whether
// the session is interactive; Start wires the standard streams and
// detects that itself.
func New(in io.Reader, out io.Writer, cfg *config.Config, interactive bool) *REPL {
	machine := vm.New()
	machine.Out = out
	machine.SetTrace(cfg.Trace)
	return &REPL{
		in:          in,
		out:         out,
		cfg:         cfg,
		machine:     machine,
		interactive: interactive,
		colorize:    useColor(cfg.Colors),
		session:     uuid.NewString(),
	}
}

// Start runs a session on stdin and stdout.
func Start(cfg *config.Config) error {
	return New(os.Stdin, os.Stdout, cfg, stdinIsTerminal()).Run()
}

// Run reads lines until EOF or an "exit" line.
func (r *REPL) Run() error {
	logrus.Debugf("repl session %s started", r.session)
	if r.interactive {
		fmt.Fprintln(r.out, banner)
	}

	scanner := bufio.NewScanner(r.in)
	for {
		if r.interactive {
			fmt.Fprint(r.out, r.cfg.REPL.Prompt)
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" {
			break
		}
		if line == "" {
			continue
		}
		r.eval(line)
	}

	logrus.Debugf("repl session %s finished", r.session)
	return scanner.Err()
}

// eval runs one line. Errors never end the session.
func (r *REPL) eval(line string) {
	if _, err := r.machine.Interpret(line); err != nil {
		fmt.Fprintln(r.out, r.paint(err.Error()))
	}
}

func (r *REPL) paint(msg string) string {
	if !r.colorize {
		return msg
	}
	return "\033[31m" + msg + "\033[39m"
}
