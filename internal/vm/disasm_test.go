package vm

import (
	"strings"
	"testing"
)

func TestDisassembleHandBuiltChunk(t *testing.T) {
	chunk := NewChunk()
	idx, err := chunk.AddConstant(NumberVal(1.2))
	if err != nil {
		t.Fatalf("AddConstant() error = %v", err)
	}
	chunk.WriteOp(OP_CONSTANT, 1)
	chunk.Write(byte(idx), 1)
	chunk.WriteOp(OP_NEGATE, 1)
	chunk.WriteOp(OP_RETURN, 2)

	want := strings.Join([]string{
		"-=-= Disassembly : test =-=-",
		"0000\t0001\tOP_CONSTANT\t[Index]: 0 | [Value]: 1.2",
		"0002\t0001\tOP_NEGATE",
		"0003\t0002\tOP_RETURN",
		"",
	}, "\n")

	if got := Disassemble(chunk, "test"); got != want {
		t.Errorf("Disassemble() =\n%s\nwant\n%s", got, want)
	}
}

func TestDisassembleGlobals(t *testing.T) {
	chunk := compileSource(t, "var a = 1;\nprint(a);")

	// The definition interns its name before the initializer, so "a" sits
	// at index 0 and the value lands at 1; the later read interns again.
	want := strings.Join([]string{
		"-=-= Disassembly : script.zp =-=-",
		"0000\t0001\tOP_CONSTANT\t[Index]: 1 | [Value]: 1",
		"0002\t0001\tOP_DEFINE_GLOBAL\t[Index]: 0 | [Value]: a",
		"0004\t0002\tOP_GET_GLOBAL\t[Index]: 2 | [Value]: a",
		"0006\t0002\tOP_PRINT",
		"0007\t0002\tOP_RETURN",
		"",
	}, "\n")

	if got := Disassemble(chunk, "script.zp"); got != want {
		t.Errorf("Disassemble() =\n%s\nwant\n%s", got, want)
	}
}

func TestDisassembleJumpTargets(t *testing.T) {
	chunk := compileSource(t, "if (true) print(1);")

	want := strings.Join([]string{
		"-=-= Disassembly : ifstmt =-=-",
		"0000\t0001\tOP_TRUE",
		"0001\t0001\tOP_JUMP_IF_FALSE    1 -> 11",
		"0004\t0001\tOP_POP",
		"0005\t0001\tOP_CONSTANT\t[Index]: 0 | [Value]: 1",
		"0007\t0001\tOP_PRINT",
		"0008\t0001\tOP_JUMP             8 -> 12",
		"0011\t0001\tOP_POP",
		"0012\t0001\tOP_RETURN",
		"",
	}, "\n")

	if got := Disassemble(chunk, "ifstmt"); got != want {
		t.Errorf("Disassemble() =\n%s\nwant\n%s", got, want)
	}
}

func TestDisassembleLoopTargets(t *testing.T) {
	chunk := compileSource(t, "while (false) print(1);")

	want := strings.Join([]string{
		"-=-= Disassembly : loop =-=-",
		"0000\t0001\tOP_FALSE",
		"0001\t0001\tOP_JUMP_IF_FALSE    1 -> 11",
		"0004\t0001\tOP_POP",
		"0005\t0001\tOP_CONSTANT\t[Index]: 0 | [Value]: 1",
		"0007\t0001\tOP_PRINT",
		"0008\t0001\tOP_LOOP             8 -> 0",
		"0011\t0001\tOP_POP",
		"0012\t0001\tOP_RETURN",
		"",
	}, "\n")

	if got := Disassemble(chunk, "loop"); got != want {
		t.Errorf("Disassemble() =\n%s\nwant\n%s", got, want)
	}
}

func TestDisassembleLocals(t *testing.T) {
	chunk := compileSource(t, "{ var x = 2; print(x); }")

	want := strings.Join([]string{
		"-=-= Disassembly : locals =-=-",
		"0000\t0001\tOP_CONSTANT\t[Index]: 0 | [Value]: 2",
		"0002\t0001\tOP_GET_LOCAL        0",
		"0004\t0001\tOP_PRINT",
		"0005\t0001\tOP_POP",
		"0006\t0001\tOP_RETURN",
		"",
	}, "\n")

	if got := Disassemble(chunk, "locals"); got != want {
		t.Errorf("Disassemble() =\n%s\nwant\n%s", got, want)
	}
}

func TestDisassembleUnknownOpcode(t *testing.T) {
	chunk := NewChunk()
	chunk.Write(0xEF, 1)

	got := Disassemble(chunk, "bad")
	if !strings.Contains(got, "Unknown opcode 239") {
		t.Errorf("Disassemble() = %q, want it to flag the unknown opcode", got)
	}
}
