package vm

import "github.com/zepto-lang/zepto/internal/token"

func (c *Compiler) whileStatement() {
	loopStart := c.chunk.Len()

	c.consume(token.LEFT_PAREN, "Expected a '('")
	c.expression()
	c.consume(token.RIGHT_PAREN, "Expected a ')'")

	exitJump := c.emitJump(OP_JUMP_IF_FALSE)
	c.emitOp(OP_POP)
	c.statement()

	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOp(OP_POP)
}

// forStatement desugars to a while loop in the emitted code. When an
// increment clause is present it executes after the body, so the emitted
// order is: jump over the increment into the body, run the body, loop back
// to the increment, run it, loop back to the condition.
func (c *Compiler) forStatement() {
	// The loop gets its own scope so an initializer variable dies with it.
	c.beginScope()

	c.consume(token.LEFT_PAREN, "Expected a '('")
	switch {
	case c.match(token.SEMICOLON):
		// No initializer.
	case c.match(token.VAR):
		c.varDeclaration()
	default:
		c.expressionStatement()
	}

	loopStart := c.chunk.Len()

	exitJump := -1
	if !c.match(token.SEMICOLON) {
		c.expression()
		c.consume(token.SEMICOLON, "Expected a ';' after loop condition")

		exitJump = c.emitJump(OP_JUMP_IF_FALSE)
		c.emitOp(OP_POP)
	}

	if !c.match(token.RIGHT_PAREN) {
		bodyJump := c.emitJump(OP_JUMP)
		incrementStart := c.chunk.Len()

		c.expression()
		c.emitOp(OP_POP)
		c.consume(token.RIGHT_PAREN, "Expected a ')'")

		c.emitLoop(loopStart)
		loopStart = incrementStart
		c.patchJump(bodyJump)
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOp(OP_POP)
	}

	c.endScope()
}
