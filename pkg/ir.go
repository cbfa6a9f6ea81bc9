package caoi

import (
	"fmt"
	"sort"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

type ValueLookup struct {
	vals map[string]value.Value
}

func NewValueLookup() *ValueLookup {
	return &ValueLookup{
		vals: make(map[string]value.Value),
	}
}

func (l *ValueLookup) Get(id string) (value.Value, bool) {
	val, ok := l.vals[id]
	return val, ok
}

func (l *ValueLookup) Set(id string, val value.Value) {
	l.vals[id] = val
}

func (l *ValueLookup) Names() []string {
	names := make([]string, 0, len(l.vals))
	for name := range l.vals {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

type LLVMIRBuilder struct {
	mod      *ir.Module
	block    *ir.Block
	values   *ValueLookup
	builtins map[string]*ir.Func
	strings  int
}

func NewLLVMIRBuilder() *LLVMIRBuilder {
	builder := &LLVMIRBuilder{
		mod:      ir.NewModule(),
		values:   NewValueLookup(),
		builtins: make(map[string]*ir.Func),
	}

	defineBuiltins(builder)
	return builder
}

func (b *LLVMIRBuilder) load(node Node) (value.Value, error) {
	switch e := node.(type) {
	case *Literal:
		return b.loadLiteral(e), nil
	case *BinaryOperation:
		return b.binaryOperation(e)
	case *LetOperation:
		v, err := b.load(e.Expression)
		if err != nil {
			return nil, err
		}

		b.values.Set(e.Name, v)
		return v, nil
	case *AssignmentOperation:
		if _, ok := b.values.Get(e.Target.Name); !ok {
			return nil, fmt.Errorf("%s %w: %s", e.Loc, ErrUnknownVariable, e.Target.Name)
		}

		v, err := b.load(e.Expression)
		if err != nil {
			return nil, err
		}

		b.values.Set(e.Target.Name, v)
		return v, nil
	case *Reference:
		v, ok := b.values.Get(e.Name)
		if !ok {
			return nil, fmt.Errorf("%s %w: %s", e.Loc, ErrUnknownVariable, e.Name)
		}

		return v, nil
	default:
		return nil, fmt.Errorf("%s %w: %T", node.Location(), ErrUninterpretable, node)
	}
}

func (b *LLVMIRBuilder) binaryOperation(e *BinaryOperation) (value.Value, error) {
	v1, err := b.load(e.Left)
	if err != nil {
		return nil, err
	}

	v2, err := b.load(e.Right)
	if err != nil {
		return nil, err
	}

	if !isInteger(v1) || !isInteger(v2) {
		return nil, fmt.Errorf("%s %w: operands of %s must be integers", e.Loc, ErrInvalidOperands, e.Operator)
	}

	switch e.Operator {
	case BinaryPlus:
		return b.block.NewAdd(v1, v2), nil
	case BinaryMinus:
		return b.block.NewSub(v1, v2), nil
	case BinaryMultiply:
		return b.block.NewMul(v1, v2), nil
	case BinaryDivide:
		return b.block.NewUDiv(v1, v2), nil
	default:
		return nil, fmt.Errorf("%s %w: %s", e.Loc, ErrUnsupportedOperator, e.Operator)
	}
}

func (b *LLVMIRBuilder) loadLiteral(e *Literal) value.Value {
	if e.Typ == LiteralInteger {
		// i32 has no signedness, the bit pattern is what matters
		return constant.NewInt(types.I32, int64(int32(e.Integer)))
	}

	return b.stringConstant(e.String)
}

func (b *LLVMIRBuilder) stringConstant(s string) value.Value {
	data := constant.NewCharArrayFromString(s + "\x00")
	glob := b.mod.NewGlobalDef(fmt.Sprintf(".str.%d", b.strings), data)
	glob.Immutable = true
	b.strings++

	zero := constant.NewInt(types.I32, 0)
	return constant.NewGetElementPtr(data.Typ, glob, zero, zero)
}

// printBindings prints every binding in name order, integers as unsigned.
func (b *LLVMIRBuilder) printBindings() {
	for _, name := range b.values.Names() {
		v, _ := b.values.Get(name)
		if isInteger(v) {
			b.block.NewCall(b.builtins["print"], v)
			continue
		}

		b.block.NewCall(b.builtins["puts"], v)
	}
}

func isInteger(v value.Value) bool {
	return v.Type().Equal(types.I32)
}

// IRGenerator lowers a program to an LLVM module with a single main function.
type IRGenerator struct {
	cursor *Cursor[Node]
}

func NewIRGenerator(nodes []Node) *IRGenerator {
	return &IRGenerator{
		cursor: NewCursor(nodes),
	}
}

func (g *IRGenerator) Generate() (*ir.Module, error) {
	builder := NewLLVMIRBuilder()

	main := builder.mod.NewFunc("main", types.I32)
	builder.block = main.NewBlock("")

	for {
		node, ok := g.cursor.Advance()
		if !ok {
			break
		}

		if _, err := builder.load(node); err != nil {
			return nil, err
		}
	}

	builder.printBindings()
	builder.block.NewRet(constant.NewInt(types.I32, 0))

	return builder.mod, nil
}
