// Package scanner scans Lox source code into a sequence of lexical tokens.
package scanner

import (
	"strconv"
	"strings"

	"github.com/loxlang/golox/lox"
	"github.com/loxlang/golox/token"
)

const nullChar = 0

// Scanner scans Lox source code into lexical tokens.
type Scanner struct {
	src    string
	pos    int // position of the character currently being considered
	line   int
	column int

	startPos    int // position of the first character of the lexeme being scanned
	startLine   int
	startColumn int

	reporter lox.Reporter
}

// New constructs a Scanner which will scan src, reporting lexing errors to reporter.
func New(src string, reporter lox.Reporter) *Scanner {
	return &Scanner{
		src:      src,
		line:     1,
		column:   1,
		reporter: reporter,
	}
}

// Scan scans the source code into a sequence of tokens. The returned slice always ends with an EOF token. Errors
// are reported through the Scanner's reporter; scanning continues past them so that as many are reported as
// possible in one pass.
func (s *Scanner) Scan() []token.Token {
	var tokens []token.Token
	for {
		tok := s.consumeToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

func (s *Scanner) consumeToken() token.Token {
	s.consumeWhitespace()
	s.startPos = s.pos
	s.startLine = s.line
	s.startColumn = s.column

	switch char := s.consumeChar(); char {
	case nullChar:
		return s.newToken(token.EOF)
	case ';':
		return s.newToken(token.Semicolon)
	case ',':
		return s.newToken(token.Comma)
	case '.':
		return s.newToken(token.Dot)
	case '?':
		return s.newToken(token.Question)
	case ':':
		return s.newToken(token.Colon)
	case '=':
		if s.peekChar() == '=' {
			s.consumeChar()
			return s.newToken(token.Equal)
		}
		return s.newToken(token.Assign)
	case '+':
		return s.newToken(token.Plus)
	case '-':
		return s.newToken(token.Minus)
	case '*':
		return s.newToken(token.Asterisk)
	case '/':
		if s.peekChar() == '/' {
			s.consumeChar()
			s.consumeLineComment()
			return s.consumeToken()
		}
		if s.peekChar() == '*' {
			s.consumeChar()
			s.consumeBlockComment()
			return s.consumeToken()
		}
		return s.newToken(token.Slash)
	case '<':
		if s.peekChar() == '=' {
			s.consumeChar()
			return s.newToken(token.LessEqual)
		}
		return s.newToken(token.Less)
	case '>':
		if s.peekChar() == '=' {
			s.consumeChar()
			return s.newToken(token.GreaterEqual)
		}
		return s.newToken(token.Greater)
	case '!':
		if s.peekChar() == '=' {
			s.consumeChar()
			return s.newToken(token.NotEqual)
		}
		return s.newToken(token.Bang)
	case '(':
		return s.newToken(token.OpenParen)
	case ')':
		return s.newToken(token.CloseParen)
	case '{':
		return s.newToken(token.OpenBrace)
	case '}':
		return s.newToken(token.CloseBrace)
	case '[':
		return s.newToken(token.OpenBracket)
	case ']':
		return s.newToken(token.CloseBracket)
	case '"':
		return s.consumeStringToken()
	default:
		if isDigit(char) {
			return s.consumeNumberToken()
		}
		if isAlpha(char) {
			return s.consumeIdentOrImportToken()
		}
		s.reporter.Error(s.startLine, s.startColumn, "unexpected character %q", char)
		return s.consumeToken()
	}
}

// consumeChar returns the character at the current position and advances past it, unless EOF has been reached, in
// which case nullChar is returned and the position is left unchanged.
func (s *Scanner) consumeChar() byte {
	if s.eofReached() {
		return nullChar
	}
	char := s.src[s.pos]
	s.pos++
	if char == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return char
}

// peekChar returns the character at the current position without advancing past it. Returns nullChar at EOF.
func (s *Scanner) peekChar() byte {
	if s.eofReached() {
		return nullChar
	}
	return s.src[s.pos]
}

// peekNextChar returns the character after the current position without consuming anything. Returns nullChar at EOF.
func (s *Scanner) peekNextChar() byte {
	if s.pos >= len(s.src)-1 {
		return nullChar
	}
	return s.src[s.pos+1]
}

func (s *Scanner) eofReached() bool {
	return s.pos >= len(s.src)
}

func (s *Scanner) consumeWhitespace() {
	for isWhitespace(s.peekChar()) {
		s.consumeChar()
	}
}

func (s *Scanner) consumeLineComment() {
	for !s.eofReached() && s.peekChar() != '\n' {
		s.consumeChar()
	}
}

// consumeBlockComment consumes up to and including the closing */ of a block comment. Block comments may be
// nested; the opening /* has already been consumed when this is called.
func (s *Scanner) consumeBlockComment() {
	openBlocks := 1
	for openBlocks > 0 && !s.eofReached() {
		if s.peekChar() == '/' && s.peekNextChar() == '*' {
			s.consumeChar()
			s.consumeChar()
			openBlocks++
		} else if s.peekChar() == '*' && s.peekNextChar() == '/' {
			s.consumeChar()
			s.consumeChar()
			openBlocks--
		} else {
			s.consumeChar()
		}
	}
	if openBlocks > 0 {
		s.reporter.Error(s.startLine, s.startColumn, "unterminated block comment")
	}
}

func (s *Scanner) consumeStringToken() token.Token {
	for {
		switch s.peekChar() {
		case nullChar:
			s.reporter.Error(s.startLine, s.startColumn, "unterminated string literal")
			return s.newTokenWithLiteral(token.String, s.scannedLexeme())
		case '"':
			s.consumeChar()
			lexeme := s.scannedLexeme()
			literal := lexeme[1 : len(lexeme)-1] // trim leading and trailing "
			return s.newTokenWithLiteral(token.String, literal)
		default:
			s.consumeChar() // newlines inside strings are allowed and counted
		}
	}
}

func (s *Scanner) consumeNumberToken() token.Token {
	for isDigit(s.peekChar()) {
		s.consumeChar()
	}
	if s.peekChar() == '.' && isDigit(s.peekNextChar()) {
		s.consumeChar()
		for isDigit(s.peekChar()) {
			s.consumeChar()
		}
	}
	value, err := strconv.ParseFloat(s.scannedLexeme(), 64)
	if err != nil {
		panic("parsing of number literal should never fail: " + err.Error())
	}
	return s.newTokenWithLiteral(token.Number, value)
}

// consumeIdentOrImportToken consumes an identifier or keyword. If the keyword is import, the filename lexeme
// (everything up to, but not including, the following ';') is scanned as well and carried as the token's Lexeme,
// per the import statement's special lexing rule.
func (s *Scanner) consumeIdentOrImportToken() token.Token {
	for isAlphaNumeric(s.peekChar()) {
		s.consumeChar()
	}
	ident := s.scannedLexeme()
	tokenType := token.LookupIdent(ident)
	if tokenType != token.Import {
		return s.newToken(tokenType)
	}

	for isWhitespace(s.peekChar()) {
		s.consumeChar()
	}
	filenameStart := s.pos
	for !s.eofReached() && s.peekChar() != ';' {
		s.consumeChar()
	}
	filename := strings.TrimRight(s.src[filenameStart:s.pos], " \t\r\n")
	return token.Token{
		Type:   token.Import,
		Lexeme: filename,
		Line:   s.startLine,
		Column: s.startColumn,
	}
}

func isWhitespace(char byte) bool {
	switch char {
	case ' ', '\r', '\t', '\n':
		return true
	default:
		return false
	}
}

func isDigit(char byte) bool {
	return '0' <= char && char <= '9'
}

func isAlpha(char byte) bool {
	return ('a' <= char && char <= 'z') || ('A' <= char && char <= 'Z')
}

func isAlphaNumeric(char byte) bool {
	return isAlpha(char) || isDigit(char)
}

func (s *Scanner) scannedLexeme() string {
	return s.src[s.startPos:s.pos]
}

func (s *Scanner) newTokenWithLiteral(tokenType token.Type, literal any) token.Token {
	return token.Token{
		Type:    tokenType,
		Lexeme:  s.scannedLexeme(),
		Literal: literal,
		Line:    s.startLine,
		Column:  s.startColumn,
	}
}

func (s *Scanner) newToken(tokenType token.Type) token.Token {
	return s.newTokenWithLiteral(tokenType, nil)
}
