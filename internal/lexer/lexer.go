// Package lexer turns source text into a stream of tokens, one call at a
// time. It never fails: malformed input is reported through ERROR tokens
// whose lexeme holds the message, and the compiler decides what to do.
package lexer

import (
	"github.com/zepto-lang/zepto/internal/token"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int  // current line number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// NextToken scans and returns the next token. At end of input it returns
// EOF, and keeps returning EOF if called again.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	switch l.ch {
	case 0:
		return l.newToken(token.EOF, "")
	case '(':
		return l.charToken(token.LEFT_PAREN)
	case ')':
		return l.charToken(token.RIGHT_PAREN)
	case '{':
		return l.charToken(token.LEFT_BRACE)
	case '}':
		return l.charToken(token.RIGHT_BRACE)
	case ',':
		return l.charToken(token.COMMA)
	case '.':
		return l.charToken(token.DOT)
	case '-':
		return l.charToken(token.MINUS)
	case '+':
		return l.charToken(token.PLUS)
	case ';':
		return l.charToken(token.SEMICOLON)
	case '*':
		return l.charToken(token.STAR)
	case '/':
		return l.charToken(token.SLASH)
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			return l.charToken2(token.BANG_EQUAL, "!=")
		}
		return l.charToken(token.BANG)
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			return l.charToken2(token.EQUAL_EQUAL, "==")
		}
		return l.charToken(token.EQUAL)
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			return l.charToken2(token.GREATER_EQUAL, ">=")
		}
		return l.charToken(token.GREATER)
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			return l.charToken2(token.LESS_EQUAL, "<=")
		}
		return l.charToken(token.LESS)
	case '"':
		return l.readString()
	}

	if isDigit(l.ch) {
		return l.readNumber()
	}
	if isAlpha(l.ch) {
		return l.readIdentifier()
	}

	tok := l.newToken(token.ERROR, "Unexpected character")
	l.readChar()
	return tok
}

func (l *Lexer) newToken(t token.TokenType, lexeme string) token.Token {
	return token.Token{Type: t, Lexeme: lexeme, Line: l.line}
}

func (l *Lexer) charToken(t token.TokenType) token.Token {
	tok := l.newToken(t, string(l.ch))
	l.readChar()
	return tok
}

func (l *Lexer) charToken2(t token.TokenType, lexeme string) token.Token {
	tok := l.newToken(t, lexeme)
	l.readChar()
	return tok
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.ch {
		case ' ', '\t', '\r':
			l.readChar()
		case '\n':
			l.line++
			l.readChar()
		case '/':
			if l.peekChar() != '/' {
				return
			}
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

// readString scans a double-quoted literal. The token lexeme is the string
// content, quotes stripped. Newlines are allowed inside and counted.
func (l *Lexer) readString() token.Token {
	l.readChar() // opening quote
	start := l.position

	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\n' {
			l.line++
		}
		l.readChar()
	}

	if l.ch == 0 {
		return l.newToken(token.ERROR, "Unterminated string")
	}

	tok := l.newToken(token.STRING, l.input[start:l.position])
	l.readChar() // closing quote
	return tok
}

// readNumber scans a digit run with an optional fractional part. A trailing
// dot is not consumed: "1." lexes as NUMBER(1) DOT.
func (l *Lexer) readNumber() token.Token {
	start := l.position

	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return l.newToken(token.NUMBER, l.input[start:l.position])
}

func (l *Lexer) readIdentifier() token.Token {
	start := l.position

	for isAlpha(l.ch) || isDigit(l.ch) {
		l.readChar()
	}

	lexeme := l.input[start:l.position]
	return l.newToken(token.LookupIdent(lexeme), lexeme)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
