package vm

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

func (vm *VM) executeOneOp(op Opcode) error {
	switch op {
	case OP_CONSTANT:
		vm.push(vm.readConstant())

	case OP_NONE:
		vm.push(NoneVal())

	case OP_TRUE:
		vm.push(BoolVal(true))

	case OP_FALSE:
		vm.push(BoolVal(false))

	case OP_NEGATE:
		if !vm.peek(0).IsNumber() {
			return vm.runtimeError("Operand must be a number.")
		}
		vm.push(NumberVal(-vm.pop().AsNumber()))

	case OP_NOT:
		vm.push(BoolVal(vm.pop().IsFalsey()))

	case OP_ADD:
		return vm.addOp()

	case OP_SUB, OP_MUL, OP_DIV, OP_GREATER, OP_LESS:
		return vm.binaryNumberOp(op)

	case OP_EQUAL:
		b := vm.pop()
		a := vm.pop()
		vm.push(BoolVal(a.Equals(b)))

	case OP_PRINT:
		fmt.Fprintln(vm.Out, vm.pop().Inspect())

	case OP_POP:
		vm.pop()

	case OP_DEFINE_GLOBAL:
		name := vm.readConstant().AsStr()
		if _, exists := vm.globals[name]; exists {
			return vm.runtimeError("Variable '%s' is already defined.", name)
		}
		vm.globals[name] = vm.pop()

	case OP_GET_GLOBAL:
		name := vm.readConstant().AsStr()
		value, ok := vm.globals[name]
		if !ok {
			return vm.runtimeError("Undefined variable '%s'.", name)
		}
		vm.push(value)

	case OP_SET_GLOBAL:
		name := vm.readConstant().AsStr()
		if _, ok := vm.globals[name]; !ok {
			return vm.runtimeError("Undefined variable '%s'.", name)
		}
		// Assignment is an expression; the value stays on the stack.
		vm.globals[name] = vm.peek(0)

	case OP_GET_LOCAL:
		slot := vm.readByte()
		vm.push(vm.stack[slot])

	case OP_SET_LOCAL:
		slot := vm.readByte()
		vm.stack[slot] = vm.peek(0)

	case OP_JUMP:
		offset := vm.readShort()
		vm.ip += int(offset)

	case OP_JUMP_IF_FALSE:
		// The condition stays on the stack; the compiler emits the POPs.
		offset := vm.readShort()
		if vm.peek(0).IsFalsey() {
			vm.ip += int(offset)
		}

	case OP_LOOP:
		offset := vm.readShort()
		vm.ip -= int(offset)

	case OP_RETURN:
		return errHalt

	default:
		return vm.runtimeError("Unknown opcode %d.", byte(op))
	}

	return nil
}

// addOp handles OP_ADD, which is overloaded for numeric addition and
// string concatenation. Mixed operands are an error, never a coercion.
func (vm *VM) addOp() error {
	switch {
	case vm.peek(0).IsStr() && vm.peek(1).IsStr():
		b := vm.pop().AsStr()
		a := vm.pop().AsStr()
		vm.push(StrVal(a + b))

	case vm.peek(0).IsNumber() && vm.peek(1).IsNumber():
		b := vm.pop().AsNumber()
		a := vm.pop().AsNumber()
		vm.push(NumberVal(a + b))

	default:
		return vm.runtimeError("Operands must be two numbers or two strings.")
	}
	return nil
}

// binaryNumberOp handles the strictly numeric binary operators. Division
// follows IEEE 754, so dividing by zero yields an infinity or NaN rather
// than an error.
func (vm *VM) binaryNumberOp(op Opcode) error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}

	b := vm.pop().AsNumber()
	a := vm.pop().AsNumber()

	switch op {
	case OP_SUB:
		vm.push(NumberVal(a - b))
	case OP_MUL:
		vm.push(NumberVal(a * b))
	case OP_DIV:
		vm.push(NumberVal(a / b))
	case OP_GREATER:
		vm.push(BoolVal(a > b))
	case OP_LESS:
		vm.push(BoolVal(a < b))
	}
	return nil
}

// traceInstruction logs the operand stack and the next instruction in
// disassembled form.
func (vm *VM) traceInstruction() {
	if !logrus.IsLevelEnabled(logrus.DebugLevel) {
		return
	}

	var sb strings.Builder
	sb.WriteString("          ")
	for _, v := range vm.stack {
		fmt.Fprintf(&sb, "[ %s ]", v.Inspect())
	}
	sb.WriteByte('\n')
	disassembleInstruction(&sb, vm.chunk, vm.ip)

	logrus.Debug(sb.String())
}
