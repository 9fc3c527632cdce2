package vm

import "fmt"

// CompileError is a single compiler diagnostic. Where carries the token
// location phrase ("at 'x'", "at the end of the file") and is empty when
// the offending token is itself a scan error.
type CompileError struct {
	Line    int
	Where   string
	Message string
}

func (e *CompileError) Error() string {
	if e.Where == "" {
		return fmt.Sprintf("<Line %d> Error: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("<Line %d> Error %s: %s", e.Line, e.Where, e.Message)
}

// RuntimeError halts execution. Line is recovered from the chunk's line
// table at the faulting instruction.
type RuntimeError struct {
	Line    int
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("<Line %d> Error: %s", e.Line, e.Message)
}
