// Package vm implements the zepto bytecode compiler and virtual machine.
//
// A Compiler turns source text into a Chunk in a single pass; a VM executes
// the chunk against an operand stack and a global name table. The two sides
// share the Value union and the Opcode set defined here.
package vm

// Opcode represents a single VM instruction
type Opcode byte

const (
	// Constants and literals
	OP_CONSTANT Opcode = iota // Push constant from pool (operand: 1-byte index)
	OP_NONE                   // Push none
	OP_TRUE                   // Push true
	OP_FALSE                  // Push false

	// Unary
	OP_NEGATE // Arithmetic negation, numbers only
	OP_NOT    // Logical not via falsiness

	// Arithmetic; OP_ADD also concatenates two strings
	OP_ADD
	OP_SUB
	OP_MUL
	OP_DIV

	// Comparison
	OP_EQUAL   // Total across types; != is EQUAL then NOT
	OP_GREATER // Numbers only; <= is GREATER then NOT
	OP_LESS    // Numbers only; >= is LESS then NOT

	// Statements
	OP_PRINT // Pop and write with trailing newline
	OP_POP   // Discard top of stack

	// Globals (operand: 1-byte constant index holding the name)
	OP_DEFINE_GLOBAL // Pops; errors if name already defined
	OP_GET_GLOBAL    // Errors if undefined
	OP_SET_GLOBAL    // Assigns from top without popping; errors if undefined

	// Locals (operand: 1-byte stack slot)
	OP_GET_LOCAL
	OP_SET_LOCAL // Assigns from top without popping

	// Control flow (operand: 2-byte big-endian offset)
	OP_JUMP          // ip += offset
	OP_JUMP_IF_FALSE // ip += offset when top is falsey; does not pop
	OP_LOOP          // ip -= offset

	OP_RETURN // Halt
)

// OpcodeNames maps opcodes to their mnemonic for disassembly.
var OpcodeNames = map[Opcode]string{
	OP_CONSTANT:      "OP_CONSTANT",
	OP_NONE:          "OP_NONE",
	OP_TRUE:          "OP_TRUE",
	OP_FALSE:         "OP_FALSE",
	OP_NEGATE:        "OP_NEGATE",
	OP_NOT:           "OP_NOT",
	OP_ADD:           "OP_ADD",
	OP_SUB:           "OP_SUB",
	OP_MUL:           "OP_MUL",
	OP_DIV:           "OP_DIV",
	OP_EQUAL:         "OP_EQUAL",
	OP_GREATER:       "OP_GREATER",
	OP_LESS:          "OP_LESS",
	OP_PRINT:         "OP_PRINT",
	OP_POP:           "OP_POP",
	OP_DEFINE_GLOBAL: "OP_DEFINE_GLOBAL",
	OP_GET_GLOBAL:    "OP_GET_GLOBAL",
	OP_SET_GLOBAL:    "OP_SET_GLOBAL",
	OP_GET_LOCAL:     "OP_GET_LOCAL",
	OP_SET_LOCAL:     "OP_SET_LOCAL",
	OP_JUMP:          "OP_JUMP",
	OP_JUMP_IF_FALSE: "OP_JUMP_IF_FALSE",
	OP_LOOP:          "OP_LOOP",
	OP_RETURN:        "OP_RETURN",
}

func (op Opcode) String() string {
	if name, ok := OpcodeNames[op]; ok {
		return name
	}
	return "OP_UNKNOWN"
}
