package vm

import (
	"fmt"
	"strings"
)

// Disassemble renders chunk one instruction per line, each prefixed with
// its byte offset and source line.
func Disassemble(chunk *Chunk, name string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "-=-= Disassembly : %s =-=-\n", name)

	offset := 0
	for offset < len(chunk.Code) {
		offset = disassembleInstruction(&sb, chunk, offset)
	}

	return sb.String()
}

// disassembleInstruction renders one instruction and returns the offset of
// the next one.
func disassembleInstruction(sb *strings.Builder, chunk *Chunk, offset int) int {
	fmt.Fprintf(sb, "%04d\t%04d\t", offset, chunk.Lines[offset])

	op := Opcode(chunk.Code[offset])

	switch op {
	case OP_CONSTANT, OP_DEFINE_GLOBAL, OP_GET_GLOBAL, OP_SET_GLOBAL:
		return constantInstruction(sb, op, chunk, offset)

	case OP_GET_LOCAL, OP_SET_LOCAL:
		return byteInstruction(sb, op, chunk, offset)

	case OP_JUMP, OP_JUMP_IF_FALSE:
		return jumpInstruction(sb, op, 1, chunk, offset)
	case OP_LOOP:
		return jumpInstruction(sb, op, -1, chunk, offset)

	case OP_NONE, OP_TRUE, OP_FALSE,
		OP_NEGATE, OP_NOT,
		OP_ADD, OP_SUB, OP_MUL, OP_DIV,
		OP_EQUAL, OP_GREATER, OP_LESS,
		OP_PRINT, OP_POP, OP_RETURN:
		return simpleInstruction(sb, op, offset)

	default:
		fmt.Fprintf(sb, "Unknown opcode %d\n", byte(op))
		return offset + 1
	}
}

func simpleInstruction(sb *strings.Builder, op Opcode, offset int) int {
	fmt.Fprintf(sb, "%s\n", op)
	return offset + 1
}

func constantInstruction(sb *strings.Builder, op Opcode, chunk *Chunk, offset int) int {
	idx := int(chunk.Code[offset+1])

	if idx < len(chunk.Constants) {
		fmt.Fprintf(sb, "%s\t[Index]: %d | [Value]: %s\n", op, idx, chunk.Constants[idx].Inspect())
	} else {
		fmt.Fprintf(sb, "%s\t[Index]: %d | [Value]: <out of range>\n", op, idx)
	}

	return offset + 2
}

func byteInstruction(sb *strings.Builder, op Opcode, chunk *Chunk, offset int) int {
	slot := chunk.Code[offset+1]
	fmt.Fprintf(sb, "%-16s %4d\n", op, slot)
	return offset + 2
}

// jumpInstruction prints the instruction's own offset and the resolved
// target, not the raw operand.
func jumpInstruction(sb *strings.Builder, op Opcode, sign int, chunk *Chunk, offset int) int {
	jump := int(chunk.Code[offset+1])<<8 | int(chunk.Code[offset+2])
	fmt.Fprintf(sb, "%-16s %4d -> %d\n", op, offset, offset+3+sign*jump)
	return offset + 3
}
