package caoi

import "fmt"

type Type int

const (
	TypeInteger Type = iota
	TypeString

	// typeUnknown carries no information. It is compatible with every type.
	typeUnknown
	// typeInvalid marks an expression that already reported an error, so the
	// enclosing nodes don't report it again.
	typeInvalid
)

var typeNames = map[Type]string{
	TypeInteger: "Integer",
	TypeString:  "String",
	typeUnknown: "~unknown",
	typeInvalid: "~invalid",
}

func (t Type) String() string {
	return typeNames[t]
}

// ResolveType maps a type identifier as written in source to a Type.
func ResolveType(name string) (Type, bool) {
	switch name {
	case "Integer":
		return TypeInteger, true
	case "String":
		return TypeString, true
	}

	return typeInvalid, false
}

type TypeError interface {
	error
	Location() Location
}

type MismatchedTypesError struct {
	Loc   Location
	Type1 Type
	Type2 Type
}

func (e *MismatchedTypesError) Error() string {
	return fmt.Sprintf("mismatched types: %s and %s", e.Type1, e.Type2)
}

func (e *MismatchedTypesError) Location() Location {
	return e.Loc
}

type InvalidTypeError struct {
	Loc  Location
	Name string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid type: %s", e.Name)
}

func (e *InvalidTypeError) Location() Location {
	return e.Loc
}

type UndefinedVariableError struct {
	Loc  Location
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable: %s", e.Name)
}

func (e *UndefinedVariableError) Location() Location {
	return e.Loc
}

type TypecheckerOption func(c *Typechecker)

// WithSymbolTable records the type of every let declaration and checks
// references and assignments against it.
func WithSymbolTable() TypecheckerOption {
	return func(c *Typechecker) {
		c.symbols = make(map[string]Type)
	}
}

// Typechecker is a read-only pass over the top-level nodes. It collects every
// error instead of stopping at the first one.
type Typechecker struct {
	cursor  *Cursor[Node]
	symbols map[string]Type
	errors  []TypeError
}

func NewTypechecker(nodes []Node, opts ...TypecheckerOption) *Typechecker {
	c := &Typechecker{
		cursor: NewCursor(nodes),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Check is a shorthand for NewTypechecker(nodes, opts...).Check().
func Check(nodes []Node, opts ...TypecheckerOption) []TypeError {
	return NewTypechecker(nodes, opts...).Check()
}

// Check consumes the remaining nodes and returns the errors in source order.
func (c *Typechecker) Check() []TypeError {
	for {
		node, ok := c.cursor.Advance()
		if !ok {
			return c.errors
		}

		c.resolve(node)
	}
}

func (c *Typechecker) addError(err TypeError) Type {
	c.errors = append(c.errors, err)
	return typeInvalid
}

func (c *Typechecker) resolve(node Node) Type {
	switch e := node.(type) {
	case *Literal:
		if e.Typ == LiteralString {
			return TypeString
		}

		return TypeInteger
	case *BinaryOperation:
		t1 := c.resolve(e.Left)
		t2 := c.resolve(e.Right)

		if t1 == typeInvalid || t2 == typeInvalid {
			return typeInvalid
		}

		if t1 == typeUnknown {
			return t2
		}

		if t2 == typeUnknown {
			return t1
		}

		if t1 != t2 {
			return c.addError(&MismatchedTypesError{Loc: e.Loc, Type1: t1, Type2: t2})
		}

		return t1
	case *LetOperation:
		return c.let(e)
	case *AssignmentOperation:
		return c.assignment(e)
	case *Reference:
		if c.symbols == nil {
			return typeUnknown
		}

		if t, ok := c.symbols[e.Name]; ok {
			return t
		}

		return c.addError(&UndefinedVariableError{Loc: e.Loc, Name: e.Name})
	}

	return typeUnknown
}

func (c *Typechecker) let(e *LetOperation) Type {
	actual := c.resolve(e.Expression)

	if e.Type == nil {
		c.declare(e.Name, actual)
		return actual
	}

	declared, ok := ResolveType(e.Type.Name)
	if !ok {
		c.declare(e.Name, actual)
		return c.addError(&InvalidTypeError{Loc: e.Type.Loc, Name: e.Type.Name})
	}

	c.declare(e.Name, declared)

	if actual == typeInvalid || actual == typeUnknown {
		return declared
	}

	if declared != actual {
		return c.addError(&MismatchedTypesError{
			Loc:   e.Expression.Location(),
			Type1: declared,
			Type2: actual,
		})
	}

	return declared
}

func (c *Typechecker) assignment(e *AssignmentOperation) Type {
	actual := c.resolve(e.Expression)
	if c.symbols == nil {
		return actual
	}

	declared, ok := c.symbols[e.Target.Name]
	if !ok {
		return c.addError(&UndefinedVariableError{Loc: e.Loc, Name: e.Target.Name})
	}

	if actual == typeInvalid || actual == typeUnknown || declared == typeUnknown || declared == typeInvalid {
		return actual
	}

	if declared != actual {
		return c.addError(&MismatchedTypesError{
			Loc:   e.Expression.Location(),
			Type1: declared,
			Type2: actual,
		})
	}

	return actual
}

func (c *Typechecker) declare(name string, t Type) {
	if c.symbols != nil {
		c.symbols[name] = t
	}
}
