package vm

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// runVMExpectError compiles and runs the input, expecting a runtime error.
// Returns the error message. Fails the test if no error occurs.
func runVMExpectError(t *testing.T, input string) string {
	t.Helper()

	var out bytes.Buffer
	machine := New()
	machine.Out = &out

	result, err := machine.Interpret(input)
	if err == nil {
		t.Fatalf("expected runtime error, but code ran successfully")
	}
	if result != INTERPRET_RUNTIME_ERROR {
		t.Fatalf("result: got=%d, want=INTERPRET_RUNTIME_ERROR", result)
	}

	return err.Error()
}

// runVMExpectErrorContains is a convenience wrapper that also checks the
// error message contains the expected substring.
func runVMExpectErrorContains(t *testing.T, input, wantSubstr string) {
	t.Helper()
	errMsg := runVMExpectError(t, input)
	if !strings.Contains(errMsg, wantSubstr) {
		t.Errorf("error %q should contain %q", errMsg, wantSubstr)
	}
}

func TestVMError_TypeMismatches(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"negate bool", "print(-true);", "Operand must be a number."},
		{"negate string", `print(-"x");`, "Operand must be a number."},
		{"negate none", "print(-none);", "Operand must be a number."},
		{"add bool", "print(1 + true);", "Operands must be two numbers or two strings."},
		{"add mixed", `print("a" + 1);`, "Operands must be two numbers or two strings."},
		{"add none", "print(none + none);", "Operands must be two numbers or two strings."},
		{"sub strings", `print("a" - "b");`, "Operands must be numbers."},
		{"mul bool", "print(true * 2);", "Operands must be numbers."},
		{"div none", "print(none / 2);", "Operands must be numbers."},
		{"compare bools", "print(true > false);", "Operands must be numbers."},
		{"compare strings", `print("a" < "b");`, "Operands must be numbers."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runVMExpectErrorContains(t, tt.input, tt.want)
		})
	}
}

func TestVMError_Globals(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"read undefined", "print(missing);", "Undefined variable 'missing'."},
		{"assign undefined", "x = 1;", "Undefined variable 'x'."},
		{"read in expression", "var a = b + 1;", "Undefined variable 'b'."},
		{"redefine", "var a = 1; var a = 2;", "Variable 'a' is already defined."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runVMExpectErrorContains(t, tt.input, tt.want)
		})
	}
}

func TestVMError_LineNumber(t *testing.T) {
	errMsg := runVMExpectError(t, "var x = true;\nprint(-x);")

	want := "<Line 2> Error: Operand must be a number."
	if errMsg != want {
		t.Errorf("error: got=%q, want=%q", errMsg, want)
	}
}

func TestVMError_HaltsExecution(t *testing.T) {
	var out bytes.Buffer
	machine := New()
	machine.Out = &out

	_, err := machine.Interpret("print(1);\nprint(-true);\nprint(2);")
	if err == nil {
		t.Fatalf("expected runtime error, but code ran successfully")
	}

	// Output up to the failing line is already flushed; nothing after it runs.
	if got := out.String(); got != "1\n" {
		t.Errorf("output before error: got=%q, want=%q", got, "1\n")
	}
}

func TestVMError_Type(t *testing.T) {
	var out bytes.Buffer
	machine := New()
	machine.Out = &out

	_, err := machine.Interpret("print(missing);")
	var rerr *RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("error type: got=%T, want=*RuntimeError", err)
	}
	if rerr.Line != 1 {
		t.Errorf("error line: got=%d, want=1", rerr.Line)
	}
}

func TestInterpretCompileErrorResult(t *testing.T) {
	machine := New()

	result, err := machine.Interpret("var;")
	if err == nil {
		t.Fatalf("expected compile error, got none")
	}
	if result != INTERPRET_COMPILE_ERROR {
		t.Errorf("result: got=%d, want=INTERPRET_COMPILE_ERROR", result)
	}

	var cerr *CompileError
	if !errors.As(err, &cerr) {
		t.Fatalf("error type: got=%T, want wrapped *CompileError", err)
	}
}
