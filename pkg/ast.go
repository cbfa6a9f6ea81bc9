package caoi

import "fmt"

// Node is one construct of the syntax tree. Every node exclusively owns its
// children and is never modified after parsing.
type Node interface {
	Location() Location
	node()
}

type LiteralType int

const (
	LiteralInteger LiteralType = iota
	LiteralString
)

type Literal struct {
	Typ     LiteralType
	Integer uint32
	String  string
	Loc     Location
}

type BinaryOperator string

const (
	BinaryPlus     BinaryOperator = "+"
	BinaryMinus    BinaryOperator = "-"
	BinaryMultiply BinaryOperator = "*"
	BinaryDivide   BinaryOperator = "/"
)

var binaryOperators = map[TokenType]BinaryOperator{
	TokenPlus:     BinaryPlus,
	TokenMinus:    BinaryMinus,
	TokenAsterisk: BinaryMultiply,
	TokenSlash:    BinaryDivide,
}

// BinaryOperation is located at its operator token.
type BinaryOperation struct {
	Left     Node
	Operator BinaryOperator
	Right    Node
	Loc      Location
}

// TypeIdentifier is a type name as written in the source, not yet resolved.
type TypeIdentifier struct {
	Name string
	Loc  Location
}

type LetOperation struct {
	Name       string
	Type       *TypeIdentifier
	Expression Node
	Loc        Location
}

// VariableReference names an assignment target. Type is nil until resolved.
type VariableReference struct {
	Name string
	Type *Type
}

func (r VariableReference) Resolved() bool {
	return r.Type != nil
}

type AssignmentOperation struct {
	Target     VariableReference
	Expression Node
	Loc        Location
}

type Reference struct {
	Name string
	Loc  Location
}

func (n *Literal) Location() Location             { return n.Loc }
func (n *BinaryOperation) Location() Location     { return n.Loc }
func (n *LetOperation) Location() Location        { return n.Loc }
func (n *AssignmentOperation) Location() Location { return n.Loc }
func (n *Reference) Location() Location           { return n.Loc }

func (*Literal) node()             {}
func (*BinaryOperation) node()     {}
func (*LetOperation) node()        {}
func (*AssignmentOperation) node() {}
func (*Reference) node()           {}

func (n *Literal) GoString() string {
	if n.Typ == LiteralString {
		return fmt.Sprintf("String(%q)", n.String)
	}

	return fmt.Sprintf("Integer(%d)", n.Integer)
}

// Dump writes an indented outline of the tree rooted at n.
func Dump(n Node) string {
	return dump(n, "")
}

func dump(n Node, indent string) string {
	next := indent + "  "

	switch e := n.(type) {
	case *Literal:
		return fmt.Sprintf("%sLiteral %#v @%s\n", indent, e, e.Loc)
	case *BinaryOperation:
		return fmt.Sprintf("%sBinaryOperation %s @%s\n", indent, e.Operator, e.Loc) +
			dump(e.Left, next) + dump(e.Right, next)
	case *LetOperation:
		typ := ""
		if e.Type != nil {
			typ = ": " + e.Type.Name
		}

		return fmt.Sprintf("%sLetOperation %s%s @%s\n", indent, e.Name, typ, e.Loc) + dump(e.Expression, next)
	case *AssignmentOperation:
		return fmt.Sprintf("%sAssignmentOperation %s @%s\n", indent, e.Target.Name, e.Loc) + dump(e.Expression, next)
	case *Reference:
		return fmt.Sprintf("%sReference %s @%s\n", indent, e.Name, e.Loc)
	default:
		return fmt.Sprintf("%s%T\n", indent, n)
	}
}
