package vm

import "errors"

// ErrTooManyConstants is returned once a chunk's constant pool is full.
// Operand indices are a single byte, so a chunk holds at most maxConstants
// entries, counting every string literal and every global name reference.
var ErrTooManyConstants = errors.New("too many constants in one chunk")

const maxConstants = 256

// Chunk is one compilation unit of bytecode. It is append-only while the
// compiler runs and read-only once the VM has it.
type Chunk struct {
	// Code is the bytecode instructions
	Code []byte

	// Constants pool - number and string literals, global names
	Constants []Value

	// Lines maps each bytecode offset to its source line (for errors);
	// always the same length as Code
	Lines []int
}

// NewChunk creates a new empty chunk
func NewChunk() *Chunk {
	return &Chunk{
		Code:      make([]byte, 0, 256),
		Constants: make([]Value, 0, 64),
		Lines:     make([]int, 0, 256),
	}
}

// Write adds a byte to the chunk with line info
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

// WriteOp writes an opcode to the chunk
func (c *Chunk) WriteOp(op Opcode, line int) {
	c.Write(byte(op), line)
}

// AddConstant adds a constant to the pool and returns its index. Duplicates
// are allowed; indices never shift.
func (c *Chunk) AddConstant(value Value) (int, error) {
	if len(c.Constants) >= maxConstants {
		return 0, ErrTooManyConstants
	}
	c.Constants = append(c.Constants, value)
	return len(c.Constants) - 1, nil
}

// WriteConstant writes OP_CONSTANT followed by the one-byte pool index.
func (c *Chunk) WriteConstant(value Value, line int) error {
	idx, err := c.AddConstant(value)
	if err != nil {
		return err
	}
	c.WriteOp(OP_CONSTANT, line)
	c.Write(byte(idx), line)
	return nil
}

// Len returns the number of bytes in the chunk
func (c *Chunk) Len() int {
	return len(c.Code)
}
