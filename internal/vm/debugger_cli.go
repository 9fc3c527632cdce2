package vm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DebuggerCLI provides a command-line interface for the debugger
type DebuggerCLI struct {
	vm      *VM
	scanner *bufio.Scanner
	output  io.Writer
}

// NewDebuggerCLI wires an interactive debugging session to a VM and
// enables its debugger. The session starts in step mode, so execution
// stops before the first line runs.
func NewDebuggerCLI(machine *VM, input io.Reader, output io.Writer) *DebuggerCLI {
	cli := &DebuggerCLI{
		vm:      machine,
		scanner: bufio.NewScanner(input),
		output:  output,
	}

	dbg := machine.GetDebugger()
	dbg.Output = output
	dbg.OnStop = cli.onStop
	machine.EnableDebugger()
	return cli
}

// onStop is called when the debugger stops
func (cli *DebuggerCLI) onStop(dbg *Debugger, machine *VM) {
	dbg.PrintLocation(machine)

	for {
		fmt.Fprint(cli.output, "(zepto) ")
		if !cli.scanner.Scan() {
			fmt.Fprintln(cli.output, "\nExiting debugger (EOF).")
			dbg.Detach()
			return
		}

		line := strings.TrimSpace(cli.scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help", "h":
			cli.printHelp()
		case "step", "s":
			dbg.Step()
			return
		case "continue", "c":
			dbg.Continue()
			return
		case "quit", "q":
			dbg.Detach()
			return
		case "break", "b":
			cli.handleBreak(args)
		case "delete", "d":
			cli.handleDelete(args)
		case "list", "l":
			cli.handleList()
		case "stack", "st":
			dbg.PrintStack(machine)
		case "globals", "g":
			dbg.PrintGlobals(machine)
		default:
			fmt.Fprintf(cli.output, "Unknown command: %s (try 'help')\n", cmd)
		}
	}
}

func (cli *DebuggerCLI) handleBreak(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(cli.output, "Usage: break <line>")
		return
	}
	line, err := strconv.Atoi(args[0])
	if err != nil || line <= 0 {
		fmt.Fprintf(cli.output, "Invalid line number: %s\n", args[0])
		return
	}
	cli.vm.GetDebugger().SetBreakpoint(line)
	fmt.Fprintf(cli.output, "Breakpoint set at line %d\n", line)
}

func (cli *DebuggerCLI) handleDelete(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(cli.output, "Usage: delete <line>")
		return
	}
	line, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(cli.output, "Invalid line number: %s\n", args[0])
		return
	}
	cli.vm.GetDebugger().RemoveBreakpoint(line)
	fmt.Fprintf(cli.output, "Breakpoint removed from line %d\n", line)
}

func (cli *DebuggerCLI) handleList() {
	lines := cli.vm.GetDebugger().Breakpoints()
	if len(lines) == 0 {
		fmt.Fprintln(cli.output, "No breakpoints set")
		return
	}
	for _, line := range lines {
		fmt.Fprintf(cli.output, "Breakpoint at line %d\n", line)
	}
}

func (cli *DebuggerCLI) printHelp() {
	fmt.Fprint(cli.output, `Commands:
  step, s           stop at the next source line
  continue, c       run until the next breakpoint
  break <line>, b   set a breakpoint
  delete <line>, d  remove a breakpoint
  list, l           list breakpoints
  stack, st         print the operand stack
  globals, g        print defined globals
  quit, q           detach and run to completion
  help, h           show this help
`)
}
