package vm

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// DebuggerMode represents the current debugging mode
type DebuggerMode int

const (
	// ModeRun - run until a breakpoint line is reached
	ModeRun DebuggerMode = iota
	// ModeStep - stop at the first instruction of every new source line
	ModeStep
)

// Debugger pauses the VM at source lines and hands control to the OnStop
// callback until a command changes the mode. A fresh debugger starts in
// step mode, so an attached session stops before the first line runs.
type Debugger struct {
	// Enabled flag
	Enabled bool

	mode DebuggerMode

	// Breakpoints by source line
	breakpoints map[int]bool

	// Output for location and inspection reports
	Output io.Writer

	// Callback for when the debugger stops
	OnStop func(*Debugger, *VM)

	// lastLine arms the stop logic: once stopped on a line, execution
	// must leave it before anything on that line can stop again. This is
	// what makes a breakpoint inside a loop body fire every iteration.
	lastLine int
}

// NewDebugger creates a new debugger instance
func NewDebugger() *Debugger {
	return &Debugger{
		mode:        ModeStep,
		breakpoints: make(map[int]bool),
	}
}

// SetBreakpoint sets a breakpoint at the given source line
func (d *Debugger) SetBreakpoint(line int) {
	d.breakpoints[line] = true
}

// RemoveBreakpoint removes the breakpoint at the given source line
func (d *Debugger) RemoveBreakpoint(line int) {
	delete(d.breakpoints, line)
}

// ClearBreakpoints removes all breakpoints
func (d *Debugger) ClearBreakpoints() {
	d.breakpoints = make(map[int]bool)
}

// Breakpoints returns all breakpoint lines in ascending order.
func (d *Debugger) Breakpoints() []int {
	lines := make([]int, 0, len(d.breakpoints))
	for line := range d.breakpoints {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	return lines
}

// ShouldBreak checks if execution should stop at the instruction ip
// points at.
func (d *Debugger) ShouldBreak(vm *VM) bool {
	if !d.Enabled || vm.chunk == nil || vm.ip >= len(vm.chunk.Lines) {
		return false
	}
	line := vm.chunk.Lines[vm.ip]

	if line != d.lastLine {
		d.lastLine = 0
	}
	if d.lastLine != 0 {
		return false
	}

	if d.mode == ModeStep {
		return true
	}
	return d.breakpoints[line]
}

// stop records the stopped line and hands control to OnStop.
func (d *Debugger) stop(vm *VM) {
	d.lastLine = vm.chunk.Lines[vm.ip]
	if d.OnStop != nil {
		d.OnStop(d, vm)
	}
}

// Step stops again at the next source line.
func (d *Debugger) Step() {
	d.mode = ModeStep
}

// Continue runs until the next breakpoint.
func (d *Debugger) Continue() {
	d.mode = ModeRun
}

// Detach disables all stopping and lets the program run out.
func (d *Debugger) Detach() {
	d.mode = ModeRun
	d.Enabled = false
}

// CurrentLine reports the source line of the next instruction.
func (d *Debugger) CurrentLine(vm *VM) int {
	if vm.chunk == nil || vm.ip >= len(vm.chunk.Lines) {
		return 0
	}
	return vm.chunk.Lines[vm.ip]
}

// StackValues returns a copy of the operand stack, bottom first.
func (d *Debugger) StackValues(vm *VM) []Value {
	out := make([]Value, len(vm.stack))
	copy(out, vm.stack)
	return out
}

// GlobalNames returns the defined global names in sorted order.
func (d *Debugger) GlobalNames(vm *VM) []string {
	names := make([]string, 0, len(vm.globals))
	for name := range vm.globals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PrintLocation writes the stopped line and the instruction about to run.
func (d *Debugger) PrintLocation(vm *VM) {
	if d.Output == nil {
		return
	}
	var sb strings.Builder
	disassembleInstruction(&sb, vm.chunk, vm.ip)
	fmt.Fprintf(d.Output, "stopped at line %d\n%s", d.CurrentLine(vm), sb.String())
}

// PrintStack writes the operand stack, one value per line.
func (d *Debugger) PrintStack(vm *VM) {
	if d.Output == nil {
		return
	}
	if len(vm.stack) == 0 {
		fmt.Fprintln(d.Output, "stack: <empty>")
		return
	}
	for i, v := range vm.stack {
		fmt.Fprintf(d.Output, "%4d: %s\n", i, v.Inspect())
	}
}

// PrintGlobals writes the defined globals in sorted order.
func (d *Debugger) PrintGlobals(vm *VM) {
	if d.Output == nil {
		return
	}
	names := d.GlobalNames(vm)
	if len(names) == 0 {
		fmt.Fprintln(d.Output, "globals: <none>")
		return
	}
	for _, name := range names {
		fmt.Fprintf(d.Output, "%s = %s\n", name, vm.globals[name].Inspect())
	}
}
