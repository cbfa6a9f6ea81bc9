package caoi

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrParse is wrapped by every error the parser returns.
var ErrParse = errors.New("parse error")

type ParseErrorKind int

const (
	ParseUnexpectedEOF ParseErrorKind = iota
	ParseUnknownToken
	ParseUnexpectedToken
	ParseInvalidInteger
)

// ParseError aborts the whole parse. Token is the offending token; for an
// unexpected end of input it is the end-of-file marker.
type ParseError struct {
	Kind     ParseErrorKind
	Token    Token
	Expected string
}

func (e *ParseError) Location() Location {
	return e.Token.Loc
}

func (e *ParseError) Message() string {
	switch e.Kind {
	case ParseUnexpectedEOF:
		if e.Expected != "" {
			return "reached unexpected end of file, expected " + e.Expected
		}

		return "reached unexpected end of file"
	case ParseUnexpectedToken:
		return fmt.Sprintf("unexpected token %s, expected %s", e.Token, e.Expected)
	case ParseInvalidInteger:
		return fmt.Sprintf("invalid integer literal %s", e.Token.Value)
	default:
		return fmt.Sprintf("unknown token %s", e.Token)
	}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Token.Loc, ErrParse, e.Message())
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

type ParserOption func(p *Parser)

// WithPrecedence parses binary operations by precedence climbing: * and /
// bind tighter than + and -, and every operator is left-associative.
func WithPrecedence() ParserOption {
	return func(p *Parser) {
		p.precedence = true
	}
}

// WithAssignments enables the `identifier = expression` and bare `identifier`
// productions.
func WithAssignments() ParserOption {
	return func(p *Parser) {
		p.assignments = true
	}
}

var operatorPrecedence = map[TokenType]int{
	TokenPlus:     1,
	TokenMinus:    1,
	TokenAsterisk: 2,
	TokenSlash:    2,
}

type Parser struct {
	cursor *Cursor[Token]
	last   Location

	precedence  bool
	assignments bool
}

func NewParser(tokens []Token, opts ...ParserOption) *Parser {
	p := &Parser{
		cursor: NewCursor(tokens),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Parse is a shorthand for NewParser(tokens, opts...).Run().
func Parse(tokens []Token, opts ...ParserOption) ([]Node, error) {
	return NewParser(tokens, opts...).Run()
}

// Run parses expressions until the end-of-file marker. The first error aborts
// the parse and no partial tree is returned.
func (p *Parser) Run() ([]Node, error) {
	var nodes []Node

	for {
		tok, ok := p.cursor.Peek()
		if !ok || tok.Typ == TokenEOF {
			return nodes, nil
		}

		node, err := p.expr()
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, node)
	}
}

func (p *Parser) next() (Token, bool) {
	tok, ok := p.cursor.Advance()
	if ok {
		p.last = tok.Loc
	}

	return tok, ok
}

// require peeks at a token that must exist and must not be the end of file.
func (p *Parser) require(expected string) (Token, error) {
	tok, ok := p.cursor.Peek()
	if !ok {
		return Token{Typ: TokenEOF, Loc: p.last}, &ParseError{
			Kind:     ParseUnexpectedEOF,
			Token:    Token{Typ: TokenEOF, Loc: p.last},
			Expected: expected,
		}
	}

	if tok.Typ == TokenEOF {
		return tok, &ParseError{Kind: ParseUnexpectedEOF, Token: tok, Expected: expected}
	}

	return tok, nil
}

func (p *Parser) expect(typ TokenType, expected string) (Token, error) {
	tok, err := p.require(expected)
	if err != nil {
		return tok, err
	}

	if tok.Typ != typ {
		return tok, &ParseError{Kind: ParseUnexpectedToken, Token: tok, Expected: expected}
	}

	p.next()
	return tok, nil
}

func (p *Parser) binaryOperator() (Token, bool) {
	tok, ok := p.cursor.Peek()
	if !ok || !tok.isBinaryOperator() {
		return tok, false
	}

	return tok, true
}

func (p *Parser) expr() (Node, error) {
	if p.precedence {
		return p.climb(1)
	}

	lhs, err := p.operand()
	if err != nil {
		return nil, err
	}

	op, ok := p.binaryOperator()
	if !ok {
		return lhs, nil
	}

	p.next()

	// The right-hand side is a whole expression again, so chains nest to the
	// right and all operators share one precedence level.
	rhs, err := p.expr()
	if err != nil {
		return nil, err
	}

	return &BinaryOperation{
		Left:     lhs,
		Operator: binaryOperators[op.Typ],
		Right:    rhs,
		Loc:      op.Loc,
	}, nil
}

func (p *Parser) climb(minPrecedence int) (Node, error) {
	lhs, err := p.operand()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := p.binaryOperator()
		if !ok || operatorPrecedence[op.Typ] < minPrecedence {
			return lhs, nil
		}

		p.next()

		rhs, err := p.climb(operatorPrecedence[op.Typ] + 1)
		if err != nil {
			return nil, err
		}

		lhs = &BinaryOperation{
			Left:     lhs,
			Operator: binaryOperators[op.Typ],
			Right:    rhs,
			Loc:      op.Loc,
		}
	}
}

func (p *Parser) operand() (Node, error) {
	tok, err := p.require("expression")
	if err != nil {
		return nil, err
	}

	switch tok.Typ {
	case TokenInteger:
		return p.integer()
	case TokenString:
		p.next()
		return &Literal{Typ: LiteralString, String: tok.Value, Loc: tok.Loc}, nil
	case TokenLet:
		return p.letExpr()
	case TokenIdentifier:
		if p.assignments {
			return p.identifierExpr()
		}
	}

	return nil, &ParseError{Kind: ParseUnknownToken, Token: tok}
}

func (p *Parser) integer() (Node, error) {
	tok, _ := p.next()

	v, err := strconv.ParseUint(tok.Value, 10, 32)
	if err != nil {
		return nil, &ParseError{Kind: ParseInvalidInteger, Token: tok}
	}

	return &Literal{Typ: LiteralInteger, Integer: uint32(v), Loc: tok.Loc}, nil
}

func (p *Parser) letExpr() (Node, error) {
	start, _ := p.next() // let keyword

	name, err := p.expect(TokenIdentifier, "identifier")
	if err != nil {
		return nil, err
	}

	var typ *TypeIdentifier
	if tok, ok := p.cursor.Peek(); ok && tok.Typ == TokenColon {
		p.next()

		id, err := p.expect(TokenIdentifier, "type identifier")
		if err != nil {
			return nil, err
		}

		typ = &TypeIdentifier{Name: id.Value, Loc: id.Loc}
	}

	if _, err := p.expect(TokenEquals, "'='"); err != nil {
		return nil, err
	}

	expr, err := p.expr()
	if err != nil {
		return nil, err
	}

	return &LetOperation{
		Name:       name.Value,
		Type:       typ,
		Expression: expr,
		Loc:        start.Loc,
	}, nil
}

func (p *Parser) identifierExpr() (Node, error) {
	id, _ := p.next()

	if tok, ok := p.cursor.Peek(); !ok || tok.Typ != TokenEquals {
		return &Reference{Name: id.Value, Loc: id.Loc}, nil
	}

	p.next() // Skip =

	expr, err := p.expr()
	if err != nil {
		return nil, err
	}

	return &AssignmentOperation{
		Target:     VariableReference{Name: id.Value},
		Expression: expr,
		Loc:        id.Loc,
	}, nil
}
