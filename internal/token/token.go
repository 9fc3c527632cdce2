// Package token defines the lexical token set shared by the lexer and the
// bytecode compiler.
package token

type TokenType int

const (
	// Single-character tokens.
	LEFT_PAREN TokenType = iota
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	COMMA
	DOT
	MINUS
	PLUS
	SEMICOLON
	SLASH
	STAR

	// One- or two-character tokens.
	BANG
	BANG_EQUAL
	EQUAL
	EQUAL_EQUAL
	GREATER
	GREATER_EQUAL
	LESS
	LESS_EQUAL

	// Literals.
	IDENTIFIER
	STRING
	NUMBER

	// Keywords.
	AND
	OR
	IF
	ELSE
	TRUE
	FALSE
	FOR
	WHILE
	NONE
	PRINT
	VAR
	FUNC
	RETURN
	CLASS
	SUPER
	THIS

	// An ERROR token carries the scan error message in its lexeme; the
	// compiler reports it and keeps going.
	ERROR
	EOF
)

// Token is the unit the lexer hands to the compiler. Lexeme is a slice of
// the original source except for ERROR tokens, where it holds the message.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
}

var typeNames = map[TokenType]string{
	LEFT_PAREN:    "LEFT_PAREN",
	RIGHT_PAREN:   "RIGHT_PAREN",
	LEFT_BRACE:    "LEFT_BRACE",
	RIGHT_BRACE:   "RIGHT_BRACE",
	COMMA:         "COMMA",
	DOT:           "DOT",
	MINUS:         "MINUS",
	PLUS:          "PLUS",
	SEMICOLON:     "SEMICOLON",
	SLASH:         "SLASH",
	STAR:          "STAR",
	BANG:          "BANG",
	BANG_EQUAL:    "BANG_EQUAL",
	EQUAL:         "EQUAL",
	EQUAL_EQUAL:   "EQUAL_EQUAL",
	GREATER:       "GREATER",
	GREATER_EQUAL: "GREATER_EQUAL",
	LESS:          "LESS",
	LESS_EQUAL:    "LESS_EQUAL",
	IDENTIFIER:    "IDENTIFIER",
	STRING:        "STRING",
	NUMBER:        "NUMBER",
	AND:           "AND",
	OR:            "OR",
	IF:            "IF",
	ELSE:          "ELSE",
	TRUE:          "TRUE",
	FALSE:         "FALSE",
	FOR:           "FOR",
	WHILE:         "WHILE",
	NONE:          "NONE",
	PRINT:         "PRINT",
	VAR:           "VAR",
	FUNC:          "FUNC",
	RETURN:        "RETURN",
	CLASS:         "CLASS",
	SUPER:         "SUPER",
	THIS:          "THIS",
	ERROR:         "ERROR",
	EOF:           "EOF",
}

func (t TokenType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

var keywords = map[string]TokenType{
	"and":    AND,
	"or":     OR,
	"if":     IF,
	"else":   ELSE,
	"true":   TRUE,
	"false":  FALSE,
	"for":    FOR,
	"while":  WHILE,
	"none":   NONE,
	"print":  PRINT,
	"var":    VAR,
	"func":   FUNC,
	"return": RETURN,
	"class":  CLASS,
	"super":  SUPER,
	"this":   THIS,
}

// LookupIdent resolves an identifier lexeme to its keyword type, or
// IDENTIFIER if it is not a keyword.
func LookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return IDENTIFIER
}
