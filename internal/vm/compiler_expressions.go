package vm

import (
	"strconv"

	"github.com/zepto-lang/zepto/internal/token"
)

func (c *Compiler) expression() {
	c.parsePrecedence(PREC_ASSIGNMENT)
}

func (c *Compiler) number(_ bool) {
	// The lexer guarantees a digit run, so the only way ParseFloat can
	// fail is a literal too large for a float64.
	value, err := strconv.ParseFloat(c.previous.Lexeme, 64)
	if err != nil {
		c.errorAt(c.previous, "Number literal is out of range")
		return
	}
	c.emitConstant(NumberVal(value))
}

func (c *Compiler) str(_ bool) {
	// The lexer already stripped the quotes.
	c.emitConstant(StrVal(c.previous.Lexeme))
}

func (c *Compiler) literal(_ bool) {
	switch c.previous.Type {
	case token.NONE:
		c.emitOp(OP_NONE)
	case token.TRUE:
		c.emitOp(OP_TRUE)
	case token.FALSE:
		c.emitOp(OP_FALSE)
	}
}

func (c *Compiler) grouping(_ bool) {
	c.expression()
	c.consume(token.RIGHT_PAREN, "Expected ')' after expression")
}

// unary compiles its operand first, so the operator instruction finds the
// value on top of the stack.
func (c *Compiler) unary(_ bool) {
	op := c.previous.Type

	c.parsePrecedence(PREC_UNARY)

	switch op {
	case token.MINUS:
		c.emitOp(OP_NEGATE)
	case token.BANG:
		c.emitOp(OP_NOT)
	}
}

// binary compiles the right operand at one level above the operator's own
// precedence, then emits the operator. !=, >= and <= have no opcodes of
// their own; they compile to the complementary comparison plus OP_NOT.
func (c *Compiler) binary(_ bool) {
	op := c.previous.Type
	rule := getRule(op)

	c.parsePrecedence(rule.Prec + 1)

	switch op {
	case token.PLUS:
		c.emitOp(OP_ADD)
	case token.MINUS:
		c.emitOp(OP_SUB)
	case token.STAR:
		c.emitOp(OP_MUL)
	case token.SLASH:
		c.emitOp(OP_DIV)
	case token.EQUAL_EQUAL:
		c.emitOp(OP_EQUAL)
	case token.BANG_EQUAL:
		c.emitOp(OP_EQUAL)
		c.emitOp(OP_NOT)
	case token.GREATER:
		c.emitOp(OP_GREATER)
	case token.GREATER_EQUAL:
		c.emitOp(OP_LESS)
		c.emitOp(OP_NOT)
	case token.LESS:
		c.emitOp(OP_LESS)
	case token.LESS_EQUAL:
		c.emitOp(OP_GREATER)
		c.emitOp(OP_NOT)
	}
}

// and short-circuits: if the left operand is falsey it stays on the stack
// as the result and the right operand is skipped; otherwise it is popped
// and the right operand becomes the result.
func (c *Compiler) and(_ bool) {
	end := c.emitJump(OP_JUMP_IF_FALSE)

	c.emitOp(OP_POP)
	c.parsePrecedence(PREC_AND)

	c.patchJump(end)
}

// or short-circuits the other way: a truthy left operand jumps over the
// right operand and remains as the result.
func (c *Compiler) or(_ bool) {
	elseJump := c.emitJump(OP_JUMP_IF_FALSE)
	endJump := c.emitJump(OP_JUMP)

	c.patchJump(elseJump)
	c.emitOp(OP_POP)

	c.parsePrecedence(PREC_OR)
	c.patchJump(endJump)
}

func (c *Compiler) variable(canAssign bool) {
	c.namedVariable(c.previous, canAssign)
}

// namedVariable emits the get or set for a variable reference. Locals
// resolve to stack slots at compile time; everything else goes through the
// globals table by name.
func (c *Compiler) namedVariable(name token.Token, canAssign bool) {
	var getOp, setOp Opcode

	arg := c.resolveLocal(name.Lexeme)
	if arg != -1 {
		getOp = OP_GET_LOCAL
		setOp = OP_SET_LOCAL
	} else {
		arg = int(c.identifierConstant(name.Lexeme))
		getOp = OP_GET_GLOBAL
		setOp = OP_SET_GLOBAL
	}

	if canAssign && c.match(token.EQUAL) {
		c.expression()
		c.emitOp(setOp)
		c.emitByte(byte(arg))
	} else {
		c.emitOp(getOp)
		c.emitByte(byte(arg))
	}
}
