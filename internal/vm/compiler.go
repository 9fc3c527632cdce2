package vm

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/zepto-lang/zepto/internal/lexer"
	"github.com/zepto-lang/zepto/internal/token"
)

// Precedence levels, lowest to highest. A binary operator re-enters the
// parser one level above its own, which keeps it left-associative.
type Precedence int

const (
	PREC_NONE Precedence = iota
	PREC_ASSIGNMENT
	PREC_OR
	PREC_AND
	PREC_EQUALITY
	PREC_COMPARISON
	PREC_TERM
	PREC_FACTOR
	PREC_UNARY
	PREC_CALL
	PREC_PRIMARY
)

// ParseFn compiles the expression form that starts (prefix) or continues
// (infix) at the token just consumed.
type ParseFn = func(c *Compiler, canAssign bool)

// ParseRule wires a token type to its expression handlers. Prec is the
// precedence of the token when it appears in infix position.
type ParseRule struct {
	Prefix ParseFn
	Infix  ParseFn
	Prec   Precedence
}

var parseRules []ParseRule

func init() {
	parseRules = []ParseRule{
		token.LEFT_PAREN:    {(*Compiler).grouping, nil, PREC_NONE},
		token.MINUS:         {(*Compiler).unary, (*Compiler).binary, PREC_TERM},
		token.PLUS:          {nil, (*Compiler).binary, PREC_TERM},
		token.SLASH:         {nil, (*Compiler).binary, PREC_FACTOR},
		token.STAR:          {nil, (*Compiler).binary, PREC_FACTOR},
		token.BANG:          {(*Compiler).unary, nil, PREC_NONE},
		token.BANG_EQUAL:    {nil, (*Compiler).binary, PREC_EQUALITY},
		token.EQUAL_EQUAL:   {nil, (*Compiler).binary, PREC_EQUALITY},
		token.GREATER:       {nil, (*Compiler).binary, PREC_COMPARISON},
		token.GREATER_EQUAL: {nil, (*Compiler).binary, PREC_COMPARISON},
		token.LESS:          {nil, (*Compiler).binary, PREC_COMPARISON},
		token.LESS_EQUAL:    {nil, (*Compiler).binary, PREC_COMPARISON},
		token.IDENTIFIER:    {(*Compiler).variable, nil, PREC_NONE},
		token.STRING:        {(*Compiler).str, nil, PREC_NONE},
		token.NUMBER:        {(*Compiler).number, nil, PREC_NONE},
		token.AND:           {nil, (*Compiler).and, PREC_AND},
		token.OR:            {nil, (*Compiler).or, PREC_OR},
		token.NONE:          {(*Compiler).literal, nil, PREC_NONE},
		token.TRUE:          {(*Compiler).literal, nil, PREC_NONE},
		token.FALSE:         {(*Compiler).literal, nil, PREC_NONE},
		token.EOF:           {},
	}
}

func getRule(t token.TokenType) ParseRule {
	return parseRules[t]
}

// Local is the compile-time record of a declared local variable. Depth -1
// marks a local whose initializer is still being compiled.
type Local struct {
	Name  string
	Depth int
}

// Compiler turns source text into bytecode in a single pass: tokens are
// pulled from the lexer and instructions are emitted as each form is
// recognized, with no intermediate tree.
type Compiler struct {
	lex   *lexer.Lexer
	chunk *Chunk

	previous token.Token
	current  token.Token

	hadError  bool
	panicMode bool
	errors    *multierror.Error

	locals     []Local
	scopeDepth int
}

func NewCompiler() *Compiler {
	return &Compiler{locals: make([]Local, 0, maxLocals)}
}

// Compile parses source and emits bytecode into chunk. The returned error
// aggregates every diagnostic found; nil means the chunk is runnable.
func (c *Compiler) Compile(source string, chunk *Chunk) error {
	c.lex = lexer.New(source)
	c.chunk = chunk
	c.hadError = false
	c.panicMode = false
	c.errors = nil
	c.locals = c.locals[:0]
	c.scopeDepth = 0

	c.advance()
	for !c.match(token.EOF) {
		c.declaration()
	}
	c.finish()

	return c.errors.ErrorOrNil()
}

func (c *Compiler) finish() {
	c.emitOp(OP_RETURN)
	if !c.hadError && logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.Debugln(Disassemble(c.chunk, "code"))
	}
}

// advance steps to the next token, reporting any scan errors along the way.
// Scan errors carry their message in the token lexeme.
func (c *Compiler) advance() {
	c.previous = c.current

	for {
		c.current = c.lex.NextToken()
		if c.current.Type != token.ERROR {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

// consume advances past the current token if it has the expected type and
// reports message otherwise.
func (c *Compiler) consume(t token.TokenType, message string) {
	if c.current.Type == t {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

func (c *Compiler) check(t token.TokenType) bool {
	return c.current.Type == t
}

func (c *Compiler) match(t token.TokenType) bool {
	if !c.check(t) {
		return false
	}
	c.advance()
	return true
}

// parsePrecedence compiles any expression whose operators bind at least as
// tightly as prec. Assignment is only legal when the enclosing context
// parses at PREC_ASSIGNMENT or lower; handlers receive that as canAssign
// and a trailing '=' nobody claimed is an invalid target.
func (c *Compiler) parsePrecedence(prec Precedence) {
	c.advance()
	prefix := getRule(c.previous.Type).Prefix
	if prefix == nil {
		c.errorAtCurrent("Expected expression")
		return
	}

	canAssign := prec <= PREC_ASSIGNMENT
	prefix(c, canAssign)

	for getRule(c.current.Type).Prec >= prec {
		c.advance()
		infix := getRule(c.previous.Type).Infix
		infix(c, canAssign)
	}

	if canAssign && c.match(token.EQUAL) {
		c.errorAtCurrent("Invalid assignment target.")
	}
}

// errorAt records a diagnostic unless the compiler is already in panic
// mode, in which case the cascade is suppressed until synchronize.
func (c *Compiler) errorAt(tok token.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true

	var where string
	switch tok.Type {
	case token.EOF:
		where = "at the end of the file"
	case token.ERROR:
		// The lexeme is the message itself; there is no location phrase.
	default:
		where = fmt.Sprintf("at '%s'", tok.Lexeme)
	}

	c.errors = multierror.Append(c.errors, &CompileError{
		Line:    tok.Line,
		Where:   where,
		Message: message,
	})
}

func (c *Compiler) errorAtCurrent(message string) {
	c.errorAt(c.current, message)
}
