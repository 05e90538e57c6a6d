package assembler

import (
	"strconv"
	"strings"
)

type lexer struct {
	src  string
	pos  int
	line int
	char int
}

// Tokenize converts source text into tokens terminated by a single
// TokenEndOfInput. The first unrecognized sequence aborts tokenization.
func Tokenize(source string) ([]Token, error) {
	l := &lexer{src: source}
	tokens := []Token{}
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEndOfInput {
			return tokens, nil
		}
	}
}

func (l *lexer) position() TextPosition {
	return TextPosition{Line: l.line, Char: l.char}
}

func (l *lexer) peekByte(offset int) byte {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *lexer) advance(n int) {
	for i := 0; i < n && l.pos < len(l.src); i++ {
		if l.src[l.pos] == '\n' {
			l.line++
			l.char = 0
		} else {
			l.char++
		}
		l.pos++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == '\v'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func (l *lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if isSpace(c) {
			l.advance(1)
		} else if c == '/' && l.peekByte(1) == '/' {
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.advance(1)
			}
		} else {
			return
		}
	}
}

// scan consumes bytes while accept holds and returns them.
func (l *lexer) scan(accept func(byte) bool) string {
	start := l.pos
	for l.pos < len(l.src) && accept(l.src[l.pos]) {
		l.advance(1)
	}
	return l.src[start:l.pos]
}

// offending returns the text from start up to the next delimiter, for error
// messages.
func (l *lexer) offending(start int) string {
	end := start
	for end < len(l.src) && !isSpace(l.src[end]) && l.src[end] != ',' {
		end++
	}
	if end == start && end < len(l.src) {
		end++
	}
	return l.src[start:end]
}

func (l *lexer) errorAt(start int, startPos TextPosition, message string) *LexError {
	text := l.offending(start)
	return &LexError{
		Text:    text,
		Message: message,
		Range:   TextRange{Start: startPos, End: TextPosition{Line: startPos.Line, Char: startPos.Char + len(text)}},
	}
}

// atBoundary reports whether the previous token ended where a new one may
// begin.
func (l *lexer) atBoundary() bool {
	c := l.peekByte(0)
	return c == 0 || isSpace(c) || c == ',' || c == '/'
}

func (l *lexer) next() (Token, error) {
	l.skipWhitespaceAndComments()
	start := l.pos
	startPos := l.position()
	if l.pos >= len(l.src) {
		return Token{Type: TokenEndOfInput, Range: TextRange{Start: startPos, End: startPos}}, nil
	}

	tok := Token{}
	c := l.src[l.pos]
	switch {
	case c == ',':
		l.advance(1)
		tok.Type = TokenComma

	case c == '.':
		l.advance(1)
		directive := l.scan(isIdentChar)
		if directive != "entry" {
			return Token{}, l.errorAt(start, startPos, "unknown directive")
		}
		for l.peekByte(0) == ' ' || l.peekByte(0) == '\t' {
			l.advance(1)
		}
		name := l.scan(isIdentChar)
		if name == "" || !isIdentStart(name[0]) {
			return Token{}, l.errorAt(start, startPos, "expected label name after .entry")
		}
		tok.Type = TokenEntryDeclaration
		tok.Name = name

	case c == ':':
		l.advance(1)
		name := l.scan(isIdentChar)
		if name == "" || !isIdentStart(name[0]) {
			return Token{}, l.errorAt(start, startPos, "expected label name after ':'")
		}
		tok.Type = TokenLabelDeclaration
		tok.Name = name

	case c == '#':
		l.advance(1)
		digits := l.scan(isDigit)
		if digits == "" {
			return Token{}, l.errorAt(start, startPos, "expected decimal digits after '#'")
		}
		v, err := strconv.ParseUint(digits, 10, 16)
		if err != nil {
			return Token{}, l.errorAt(start, startPos, "immediate literal out of range")
		}
		tok.Type = TokenImmediate
		tok.Value = int(v)

	case c == '+' || c == '-':
		l.advance(1)
		digits := l.scan(isDigit)
		if digits == "" {
			return Token{}, l.errorAt(start, startPos, "expected decimal digits in relative offset")
		}
		v, err := strconv.ParseInt(string(c)+digits, 10, 16)
		if err != nil {
			return Token{}, l.errorAt(start, startPos, "relative offset out of range")
		}
		tok.Type = TokenRelativeOffset
		tok.Value = int(v)

	case c == '0' && (l.peekByte(1) == 'x' || l.peekByte(1) == 'X'):
		l.advance(2)
		digits := l.scan(isHexDigit)
		if digits == "" {
			return Token{}, l.errorAt(start, startPos, "expected hexadecimal digits after '0x'")
		}
		v, err := strconv.ParseUint(digits, 16, 16)
		if err != nil {
			return Token{}, l.errorAt(start, startPos, "memory address out of range")
		}
		tok.Type = TokenMemoryAddress
		tok.Value = int(v)

	case isIdentStart(c):
		word := l.scan(isIdentChar)
		if _, ok := MnemonicMap[word]; ok {
			tok.Type = TokenMnemonic
			tok.Name = word
		} else if len(word) > 1 && word[0] == 'r' && strings.Trim(word[1:], "0123456789") == "" {
			idx, err := strconv.Atoi(word[1:])
			if err != nil || idx > int(R3) {
				return Token{}, l.errorAt(start, startPos, "register out of range (r0-r3)")
			}
			tok.Type = TokenRegister
			tok.Value = idx
		} else {
			tok.Type = TokenLabelReference
			tok.Name = word
		}

	default:
		return Token{}, l.errorAt(start, startPos, "unrecognized input")
	}

	if tok.Type != TokenComma && !l.atBoundary() {
		return Token{}, l.errorAt(start, startPos, "unrecognized input")
	}

	tok.Lexeme = l.src[start:l.pos]
	tok.Range = TextRange{Start: startPos, End: l.position()}
	return tok, nil
}
