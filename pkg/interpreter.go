package caoi

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	ErrUnknownVariable     = errors.New("unknown variable")
	ErrUninterpretable     = errors.New("unable to interpret node")
	ErrInvalidOperands     = errors.New("invalid operands")
	ErrUnsupportedOperator = errors.New("unsupported operator")
)

// RuntimeError is the panic value of a fatal interpreter failure.
type RuntimeError struct {
	Loc Location
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s %s", e.Loc, e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

func fatalf(loc Location, sentinel error, format string, args ...interface{}) {
	panic(&RuntimeError{
		Loc: loc,
		Err: fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)),
	})
}

type InterpreterOption func(i *Interpreter)

// WithArithmetic evaluates binary additions instead of rejecting every
// binary operation.
func WithArithmetic() InterpreterOption {
	return func(i *Interpreter) {
		i.arithmetic = true
	}
}

// WithOutput sets where the final bindings are written. Defaults to stdout.
func WithOutput(w io.Writer) InterpreterOption {
	return func(i *Interpreter) {
		i.out = w
	}
}

func WithContextName(name string) InterpreterOption {
	return func(i *Interpreter) {
		i.contextName = name
	}
}

type Interpreter struct {
	cursor      *Cursor[Node]
	out         io.Writer
	contextName string
	arithmetic  bool
}

func NewInterpreter(nodes []Node, opts ...InterpreterOption) *Interpreter {
	i := &Interpreter{
		cursor:      NewCursor(nodes),
		out:         os.Stdout,
		contextName: "Root",
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// Run evaluates every node against a fresh context and writes the final
// bindings. A fatal failure panics with a *RuntimeError; bindings made before
// it are not reported.
func (i *Interpreter) Run() *Context {
	ctx := NewContext(i.contextName)

	for {
		node, ok := i.cursor.Advance()
		if !ok {
			break
		}

		i.eval(node, ctx)
	}

	fmt.Fprint(i.out, ctx)
	return ctx
}

func (i *Interpreter) eval(node Node, ctx *Context) Value {
	switch e := node.(type) {
	case *Literal:
		if e.Typ == LiteralString {
			return StringValue(e.String)
		}

		return IntegerValue(e.Integer)
	case *LetOperation:
		val := i.eval(e.Expression, ctx)
		ctx.Set(e.Name, val)

		return val
	case *AssignmentOperation:
		if _, ok := ctx.Get(e.Target.Name); !ok {
			fatalf(e.Loc, ErrUnknownVariable, "%s", e.Target.Name)
		}

		val := i.eval(e.Expression, ctx)
		ctx.Set(e.Target.Name, val)

		return val
	case *Reference:
		val, ok := ctx.Get(e.Name)
		if !ok {
			fatalf(e.Loc, ErrUnknownVariable, "%s", e.Name)
		}

		return val
	case *BinaryOperation:
		if i.arithmetic {
			return i.binary(e, ctx)
		}
	}

	fatalf(node.Location(), ErrUninterpretable, "%T", node)
	return NoneValue{} // Unreachable
}

func (i *Interpreter) binary(e *BinaryOperation, ctx *Context) Value {
	if e.Operator != BinaryPlus {
		fatalf(e.Loc, ErrUnsupportedOperator, "%s", e.Operator)
	}

	left := i.eval(e.Left, ctx)
	right := i.eval(e.Right, ctx)

	val, err := left.Add(right)
	if err != nil {
		panic(&RuntimeError{Loc: e.Loc, Err: err})
	}

	return val
}
