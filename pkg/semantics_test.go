package caoi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type NodeMocker struct {
	buf []func() Node
}

// Build returns a fresh copy of every node, so a tree can be compared with
// itself after a pass.
func (m NodeMocker) Build() []Node {
	nodes := make([]Node, 0, len(m.buf))
	for _, f := range m.buf {
		nodes = append(nodes, f())
	}

	return nodes
}

func TestTypechecker(t *testing.T) {
	cases := []struct {
		name   string
		data   NodeMocker
		opts   []TypecheckerOption
		expect []TypeError
	}{
		{
			"integer literal",
			NodeMocker{[]func() Node{
				func() Node { return integer(7) },
			}},
			nil,
			nil,
		},
		{
			"let with matching declared type",
			NodeMocker{[]func() Node{
				func() Node {
					return &LetOperation{Name: "x", Type: &TypeIdentifier{Name: "Integer"}, Expression: integer(1)}
				},
				func() Node {
					return &LetOperation{Name: "y", Type: &TypeIdentifier{Name: "String"}, Expression: str("s")}
				},
			}},
			nil,
			nil,
		},
		{
			"declared type differs from literal",
			NodeMocker{[]func() Node{
				func() Node {
					return &LetOperation{
						Name:       "x",
						Type:       &TypeIdentifier{Name: "String", Loc: loc(1, 8)},
						Expression: &Literal{Typ: LiteralInteger, Integer: 4, Loc: loc(1, 17)},
						Loc:        loc(1, 1),
					}
				},
			}},
			nil,
			[]TypeError{
				&MismatchedTypesError{Loc: loc(1, 17), Type1: TypeString, Type2: TypeInteger},
			},
		},
		{
			"unknown declared type",
			NodeMocker{[]func() Node{
				func() Node {
					return &LetOperation{
						Name:       "x",
						Type:       &TypeIdentifier{Name: "Qux", Loc: loc(1, 8)},
						Expression: integer(4),
						Loc:        loc(1, 1),
					}
				},
			}},
			nil,
			[]TypeError{
				&InvalidTypeError{Loc: loc(1, 8), Name: "Qux"},
			},
		},
		{
			"mismatched binary operands",
			NodeMocker{[]func() Node{
				func() Node {
					return &BinaryOperation{Left: integer(1), Operator: BinaryPlus, Right: str("a"), Loc: loc(3, 3)}
				},
			}},
			nil,
			[]TypeError{
				&MismatchedTypesError{Loc: loc(3, 3), Type1: TypeInteger, Type2: TypeString},
			},
		},
		{
			"operands are compared by their resulting type",
			NodeMocker{[]func() Node{
				func() Node {
					return binary(BinaryMinus, binary(BinaryPlus, integer(1), integer(2)), integer(3))
				},
				func() Node {
					return binary(BinaryMultiply, str("a"), &LetOperation{Name: "x", Expression: str("b")})
				},
			}},
			nil,
			nil,
		},
		{
			"an error is reported once",
			NodeMocker{[]func() Node{
				func() Node {
					return &LetOperation{
						Name:       "x",
						Type:       &TypeIdentifier{Name: "Integer"},
						Expression: binary(BinaryPlus, integer(1), binary(BinaryPlus, str("a"), integer(2))),
					}
				},
			}},
			nil,
			[]TypeError{
				&MismatchedTypesError{Type1: TypeString, Type2: TypeInteger},
			},
		},
		{
			"errors are collected in order",
			NodeMocker{[]func() Node{
				func() Node {
					return &LetOperation{Name: "a", Type: &TypeIdentifier{Name: "Float", Loc: loc(1, 8)}, Expression: integer(1)}
				},
				func() Node { return integer(2) },
				func() Node {
					return &LetOperation{Name: "b", Type: &TypeIdentifier{Name: "Integer"}, Expression: &Literal{Typ: LiteralString, Loc: loc(3, 18)}}
				},
			}},
			nil,
			[]TypeError{
				&InvalidTypeError{Loc: loc(1, 8), Name: "Float"},
				&MismatchedTypesError{Loc: loc(3, 18), Type1: TypeInteger, Type2: TypeString},
			},
		},
		{
			"assignments and references are not looked up",
			NodeMocker{[]func() Node{
				func() Node {
					return &AssignmentOperation{Target: VariableReference{Name: "x"}, Expression: integer(5)}
				},
				func() Node {
					return &LetOperation{Name: "y", Type: &TypeIdentifier{Name: "String"}, Expression: &Reference{Name: "z"}}
				},
				func() Node {
					return binary(BinaryPlus, &Reference{Name: "z"}, str("a"))
				},
			}},
			nil,
			nil,
		},
		{
			"symbol table catches undefined variables",
			NodeMocker{[]func() Node{
				func() Node {
					return &AssignmentOperation{Target: VariableReference{Name: "x"}, Expression: integer(5), Loc: loc(1, 1)}
				},
				func() Node { return &Reference{Name: "y", Loc: loc(2, 1)} },
			}},
			[]TypecheckerOption{WithSymbolTable()},
			[]TypeError{
				&UndefinedVariableError{Loc: loc(1, 1), Name: "x"},
				&UndefinedVariableError{Loc: loc(2, 1), Name: "y"},
			},
		},
		{
			"symbol table threads declared types",
			NodeMocker{[]func() Node{
				func() Node { return &LetOperation{Name: "x", Expression: integer(1)} },
				func() Node {
					return &LetOperation{Name: "y", Type: &TypeIdentifier{Name: "Integer"}, Expression: &Reference{Name: "x"}}
				},
				func() Node {
					return &AssignmentOperation{Target: VariableReference{Name: "y"}, Expression: str("s"), Loc: loc(3, 1)}
				},
				func() Node {
					return binary(BinaryPlus, &Reference{Name: "x"}, integer(2))
				},
			}},
			[]TypecheckerOption{WithSymbolTable()},
			[]TypeError{
				&MismatchedTypesError{Type1: TypeInteger, Type2: TypeString},
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			nodes := c.data.Build()

			got := Check(nodes, c.opts...)
			assert.Equal(t, c.expect, got)

			// The pass never annotates or rewrites the tree
			assert.Equal(t, c.data.Build(), nodes)
		})
	}
}

func TestResolveType(t *testing.T) {
	typ, ok := ResolveType("Integer")
	assert.True(t, ok)
	assert.Equal(t, TypeInteger, typ)

	typ, ok = ResolveType("String")
	assert.True(t, ok)
	assert.Equal(t, TypeString, typ)

	_, ok = ResolveType("integer")
	assert.False(t, ok)
}

func TestTypeErrorMessages(t *testing.T) {
	assert.EqualError(t, &MismatchedTypesError{Type1: TypeString, Type2: TypeInteger}, "mismatched types: String and Integer")
	assert.EqualError(t, &InvalidTypeError{Name: "Qux"}, "invalid type: Qux")
	assert.EqualError(t, &UndefinedVariableError{Name: "x"}, "undefined variable: x")
}
