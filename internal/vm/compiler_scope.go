package vm

import "math"

// maxLocals bounds the locals array; slot operands are a single byte.
const maxLocals = 256

func (c *Compiler) beginScope() {
	c.scopeDepth++
}

// endScope pops every local that belongs to the closing scope, both from
// the compiler's book-keeping and, via OP_POP, from the runtime stack.
func (c *Compiler) endScope() {
	c.scopeDepth--

	for len(c.locals) > 0 && c.locals[len(c.locals)-1].Depth > c.scopeDepth {
		c.emitOp(OP_POP)
		c.locals = c.locals[:len(c.locals)-1]
	}
}

// declareVariable registers the variable named by the previous token in the
// current scope. Globals are late-bound and not tracked here.
func (c *Compiler) declareVariable() {
	if c.scopeDepth == 0 {
		return
	}

	name := c.previous.Lexeme
	for i := len(c.locals) - 1; i >= 0; i-- {
		local := c.locals[i]
		if local.Depth != -1 && local.Depth < c.scopeDepth {
			break
		}
		if name == local.Name {
			c.errorAtCurrent("A variable assigned to this name already exists in this scope")
		}
	}

	c.addLocal(name)
}

func (c *Compiler) addLocal(name string) {
	if len(c.locals) >= maxLocals {
		c.errorAtCurrent("Too many local variables in scope")
		return
	}
	// Depth -1 until the initializer finishes, so the initializer cannot
	// read the variable it is defining.
	c.locals = append(c.locals, Local{Name: name, Depth: -1})
}

func (c *Compiler) markInitialized() {
	c.locals[len(c.locals)-1].Depth = c.scopeDepth
}

// resolveLocal walks the locals innermost-first and returns the stack slot
// of the named variable, or -1 when it must be a global.
func (c *Compiler) resolveLocal(name string) int {
	for i := len(c.locals) - 1; i >= 0; i-- {
		local := c.locals[i]
		if name == local.Name {
			if local.Depth == -1 {
				c.errorAtCurrent("Unable to read local variable in its own initializer.")
			}
			return i
		}
	}
	return -1
}

// identifierConstant interns name into the constant pool and returns its
// index. Repeated names get repeated slots; the pool is not deduplicated.
func (c *Compiler) identifierConstant(name string) byte {
	idx, err := c.chunk.AddConstant(StrVal(name))
	if err != nil {
		c.errorAtCurrent("Too many constants in one chunk")
		return 0
	}
	return byte(idx)
}

func (c *Compiler) emitByte(b byte) {
	c.chunk.Write(b, c.previous.Line)
}

func (c *Compiler) emitOp(op Opcode) {
	c.emitByte(byte(op))
}

func (c *Compiler) emitConstant(v Value) {
	idx, err := c.chunk.AddConstant(v)
	if err != nil {
		c.errorAtCurrent("Too many constants in one chunk")
		return
	}
	c.emitOp(OP_CONSTANT)
	c.emitByte(byte(idx))
}

// emitJump writes op with a placeholder offset and returns the position of
// the placeholder for patchJump to fill in later.
func (c *Compiler) emitJump(op Opcode) int {
	c.emitOp(op)
	c.emitByte(0xff)
	c.emitByte(0xff)
	return c.chunk.Len() - 2
}

// patchJump back-fills the two placeholder bytes at site with the distance
// from the instruction after the operand to the current end of the chunk.
func (c *Compiler) patchJump(site int) {
	// -2 skips the offset bytes themselves.
	jump := c.chunk.Len() - site - 2

	if jump > math.MaxUint16 {
		c.errorAtCurrent("The previous jump offset was too large")
	}

	c.chunk.Code[site] = byte(jump >> 8)
	c.chunk.Code[site+1] = byte(jump)
}

// emitLoop writes an OP_LOOP jumping backwards to loopStart. The +2
// accounts for the operand of the OP_LOOP instruction itself.
func (c *Compiler) emitLoop(loopStart int) {
	c.emitOp(OP_LOOP)

	offset := c.chunk.Len() - loopStart + 2
	if offset > math.MaxUint16 {
		c.errorAtCurrent("The previous while offset was too large")
	}

	c.emitByte(byte(offset >> 8))
	c.emitByte(byte(offset))
}
