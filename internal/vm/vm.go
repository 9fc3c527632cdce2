package vm

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// InterpretResult classifies the outcome of interpreting a piece of source.
type InterpretResult int

const (
	INTERPRET_OK InterpretResult = iota
	INTERPRET_COMPILE_ERROR
	INTERPRET_RUNTIME_ERROR
)

// errHalt signals OP_RETURN inside the dispatch loop; it never escapes Run.
var errHalt = errors.New("halt")

// Initial operand stack capacity. The stack grows as needed.
const initialStackSize = 256

// VM executes bytecode chunks. Globals survive across Run calls, so a REPL
// session can build up state one line at a time.
type VM struct {
	chunk *Chunk
	ip    int

	stack   []Value
	globals map[string]Value

	// Out receives OP_PRINT output. Defaults to os.Stdout.
	Out io.Writer

	trace bool

	debugger *Debugger
}

func New() *VM {
	return &VM{
		stack:    make([]Value, 0, initialStackSize),
		globals:  make(map[string]Value),
		Out:      os.Stdout,
		debugger: NewDebugger(),
	}
}

// SetTrace toggles per-instruction execution tracing. Trace output goes to
// the debug log, so it only shows up when the debug level is enabled.
func (vm *VM) SetTrace(on bool) {
	vm.trace = on
}

// Interpret compiles source into a fresh chunk and runs it.
func (vm *VM) Interpret(source string) (InterpretResult, error) {
	chunk := NewChunk()
	if err := NewCompiler().Compile(source, chunk); err != nil {
		return INTERPRET_COMPILE_ERROR, err
	}

	if err := vm.Run(chunk); err != nil {
		return INTERPRET_RUNTIME_ERROR, err
	}
	return INTERPRET_OK, nil
}

// Run executes chunk from its first instruction. Any previously loaded
// chunk is replaced and the operand stack is reset; globals are kept.
func (vm *VM) Run(chunk *Chunk) error {
	vm.chunk = chunk
	vm.ip = 0
	vm.stack = vm.stack[:0]

	for vm.ip < len(vm.chunk.Code) {
		if vm.debugger != nil && vm.debugger.Enabled && vm.debugger.ShouldBreak(vm) {
			vm.debugger.stop(vm)
		}
		if vm.trace {
			vm.traceInstruction()
		}

		op := Opcode(vm.readByte())
		if err := vm.executeOneOp(op); err != nil {
			if errors.Is(err, errHalt) {
				return nil
			}
			return err
		}
	}
	return nil
}

func (vm *VM) readByte() byte {
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b
}

// readShort reads a big-endian two-byte jump operand.
func (vm *VM) readShort() uint16 {
	hi := vm.readByte()
	lo := vm.readByte()
	return uint16(hi)<<8 | uint16(lo)
}

func (vm *VM) readConstant() Value {
	return vm.chunk.Constants[vm.readByte()]
}

func (vm *VM) push(v Value) {
	vm.stack = append(vm.stack, v)
}

func (vm *VM) pop() Value {
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v
}

// peek returns the value distance slots down from the top without
// removing it.
func (vm *VM) peek(distance int) Value {
	return vm.stack[len(vm.stack)-1-distance]
}

// runtimeError builds a RuntimeError blamed on the line of the instruction
// that just executed. ip already points past the instruction's operands,
// which all share the opcode's line.
func (vm *VM) runtimeError(format string, args ...interface{}) error {
	line := 0
	if vm.ip-1 >= 0 && vm.ip-1 < len(vm.chunk.Lines) {
		line = vm.chunk.Lines[vm.ip-1]
	}
	return &RuntimeError{Line: line, Message: fmt.Sprintf(format, args...)}
}
