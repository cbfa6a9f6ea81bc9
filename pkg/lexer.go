package caoi

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

type TokenType uint64
type stateFunc func(l *Lexer) stateFunc

const (
	TokenError TokenType = iota
	TokenEOF
	TokenInteger
	TokenString

	TokenIdentifier
	TokenLet

	TokenPlus
	TokenMinus
	TokenAsterisk
	TokenSlash
	TokenColon
	TokenEquals
)

var tokenNames = map[TokenType]string{
	TokenError:      "Error",
	TokenEOF:        "EOF",
	TokenInteger:    "Integer",
	TokenString:     "String",
	TokenIdentifier: "Identifier",
	TokenLet:        "Let",
	TokenPlus:       "Plus",
	TokenMinus:      "Minus",
	TokenAsterisk:   "Asterisk",
	TokenSlash:      "Slash",
	TokenColon:      "Colon",
	TokenEquals:     "Equals",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	return fmt.Sprintf("TokenType(%d)", uint64(t))
}

var keywordTable = map[string]TokenType{
	"let": TokenLet,
}

var operatorTable = map[rune]TokenType{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenAsterisk,
	'/': TokenSlash,
	':': TokenColon,
	'=': TokenEquals,
}

// ErrLex is wrapped by every error the lexer returns.
var ErrLex = errors.New("lex error")

// Location is a 1-based position in the source text.
type Location struct {
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

type Token struct {
	Typ   TokenType
	Value string
	Loc   Location
}

func (t Token) String() string {
	if t.Typ == TokenEOF {
		return fmt.Sprintf("%s at %s", t.Typ, t.Loc)
	}

	return fmt.Sprintf("%s %q at %s", t.Typ, t.Value, t.Loc)
}

func (t Token) isBinaryOperator() bool {
	switch t.Typ {
	case TokenPlus, TokenMinus, TokenAsterisk, TokenSlash:
		return true
	}

	return false
}

type LexError struct {
	Loc     Location
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Loc, ErrLex, e.Message)
}

func (e *LexError) Unwrap() error {
	return ErrLex
}

type Lexer struct {
	cursor *Cursor[rune]
	line   int
	column int
	start  Location
	tokens []Token
}

func NewLexer(reader io.Reader) (*Lexer, error) {
	src, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	return NewLexerFromString(string(src)), nil
}

func NewLexerFromString(src string) *Lexer {
	return &Lexer{
		cursor: NewCursor([]rune(src)),
		line:   1,
		column: 1,
	}
}

// Run scans the whole input. The returned tokens always end with a TokenEOF.
func (l *Lexer) Run() ([]Token, error) {
	for state := defaultState; state != nil; {
		state = state(l)
	}

	if last := l.tokens[len(l.tokens)-1]; last.Typ == TokenError {
		return nil, &LexError{Loc: last.Loc, Message: last.Value}
	}

	return l.tokens, nil
}

func defaultState(l *Lexer) stateFunc {
	for {
		r, ok := l.peek()
		l.mark()

		switch {
		case !ok:
			return l.emitValue(TokenEOF, "")
		case r == '#' && l.column == 1:
			l.skipLine()
			continue
		case unicode.IsSpace(r):
			l.next()
			continue
		case '0' <= r && r <= '9':
			return integerState
		case r == '"':
			return stringState
		case unicode.IsLetter(r) || r == '_':
			return identifierState
		default:
			return operatorState
		}
	}
}

func integerState(l *Lexer) stateFunc {
	var num strings.Builder
	for r, ok := l.peek(); ok && '0' <= r && r <= '9'; r, ok = l.peek() {
		num.WriteRune(l.next())
	}

	return l.emitValue(TokenInteger, num.String())
}

func stringState(l *Lexer) stateFunc {
	l.next() // Skip the leading double-quote

	var str strings.Builder
	for {
		r, ok := l.peek()
		if !ok {
			return l.errorf("unclosed string: %s", str.String())
		}

		l.next()
		if r == '"' {
			break
		}

		str.WriteRune(r)
	}

	return l.emitValue(TokenString, str.String())
}

func identifierState(l *Lexer) stateFunc {
	var id strings.Builder
	for r, ok := l.peek(); ok && (unicode.IsLetter(r) || r == '_'); r, ok = l.peek() {
		id.WriteRune(l.next())
	}

	if t, ok := keywordTable[id.String()]; ok {
		return l.emitValue(t, id.String())
	}

	return l.emitValue(TokenIdentifier, id.String())
}

func operatorState(l *Lexer) stateFunc {
	r := l.next()
	if tok, ok := operatorTable[r]; ok {
		return l.emitValue(tok, string(r))
	}

	return l.errorf("invalid symbol '%c'", r)
}

func (l *Lexer) skipLine() {
	for r, ok := l.peek(); ok && r != '\n'; r, ok = l.peek() {
		l.next()
	}
}

func (l *Lexer) mark() {
	l.start = Location{Line: l.line, Column: l.column}
}

func (l *Lexer) errorf(format string, args ...interface{}) stateFunc {
	l.tokens = append(l.tokens, Token{
		Typ:   TokenError,
		Value: fmt.Sprintf(format, args...),
		Loc:   l.start,
	})

	return nil
}

func (l *Lexer) emitValue(t TokenType, val string) stateFunc {
	l.tokens = append(l.tokens, Token{
		Typ:   t,
		Value: val,
		Loc:   l.start,
	})

	if t == TokenEOF {
		return nil
	}

	return defaultState
}

func (l *Lexer) peek() (rune, bool) {
	return l.cursor.Peek()
}

func (l *Lexer) next() rune {
	r, ok := l.cursor.Advance()
	if !ok {
		return 0
	}

	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	return r
}
