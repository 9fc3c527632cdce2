package vm

import "github.com/zepto-lang/zepto/internal/token"

// declaration is the top of the statement grammar. It is also the
// synchronization point: after a parse error the compiler skips tokens
// until a plausible statement boundary before continuing.
func (c *Compiler) declaration() {
	if c.match(token.VAR) {
		c.varDeclaration()
	} else {
		c.statement()
	}

	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) varDeclaration() {
	global := c.parseVariable("Expected a variable name")

	if c.match(token.EQUAL) {
		c.expression()
	} else {
		c.emitOp(OP_NONE)
	}
	c.consume(token.SEMICOLON, "Expected ';' after expression")

	c.defineVariable(global)
}

// parseVariable consumes the variable name and returns its constant pool
// index. Locals live on the stack and need no name at runtime, so for them
// the index is a dummy zero.
func (c *Compiler) parseVariable(message string) byte {
	c.consume(token.IDENTIFIER, message)

	c.declareVariable()
	if c.scopeDepth > 0 {
		return 0
	}

	return c.identifierConstant(c.previous.Lexeme)
}

func (c *Compiler) defineVariable(global byte) {
	if c.scopeDepth > 0 {
		c.markInitialized()
		return
	}

	c.emitOp(OP_DEFINE_GLOBAL)
	c.emitByte(global)
}

func (c *Compiler) statement() {
	switch {
	case c.match(token.PRINT):
		c.printStatement()
	case c.match(token.IF):
		c.ifStatement()
	case c.match(token.WHILE):
		c.whileStatement()
	case c.match(token.FOR):
		c.forStatement()
	case c.match(token.LEFT_BRACE):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

// printStatement compiles 'print' '(' expression ')' ';'. The parentheses
// are part of the statement, not a grouping expression.
func (c *Compiler) printStatement() {
	c.consume(token.LEFT_PAREN, "Expected a '('")
	c.expression()
	c.consume(token.RIGHT_PAREN, "Expected a ')'")
	c.consume(token.SEMICOLON, "Expected ';' after expression")
	c.emitOp(OP_PRINT)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.SEMICOLON, "Expected ';' after expression")
	c.emitOp(OP_POP)
}

// ifStatement compiles both arms around a pair of jumps. OP_JUMP_IF_FALSE
// leaves the condition on the stack, so each arm starts with an OP_POP.
func (c *Compiler) ifStatement() {
	c.consume(token.LEFT_PAREN, "Expected a '('")
	c.expression()
	c.consume(token.RIGHT_PAREN, "Expected a ')'")

	thenJump := c.emitJump(OP_JUMP_IF_FALSE)
	c.emitOp(OP_POP)
	c.statement()

	elseJump := c.emitJump(OP_JUMP)
	c.patchJump(thenJump)
	c.emitOp(OP_POP)

	if c.match(token.ELSE) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) block() {
	for !c.check(token.RIGHT_BRACE) && !c.check(token.EOF) {
		c.declaration()
	}

	c.consume(token.RIGHT_BRACE, "Expected '}' after declaration")
}

// synchronize discards tokens until a statement boundary, then resumes
// normal parsing so one mistake does not drown the rest of the file.
func (c *Compiler) synchronize() {
	c.panicMode = false

	for c.current.Type != token.EOF {
		if c.previous.Type == token.SEMICOLON {
			return
		}

		switch c.current.Type {
		case token.CLASS, token.FUNC, token.VAR, token.FOR,
			token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}

		c.advance()
	}
}
