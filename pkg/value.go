package caoi

import (
	"fmt"
	"sort"
	"strings"
)

// Value is the runtime result of evaluating a node.
type Value interface {
	fmt.Stringer
	// Add is only defined between two integers.
	Add(other Value) (Value, error)
}

type IntegerValue uint32

type StringValue string

// NoneValue stands for "no meaningful value". It is not a language value.
type NoneValue struct{}

func (v IntegerValue) String() string { return fmt.Sprintf("Integer(%d)", uint32(v)) }
func (v StringValue) String() string  { return fmt.Sprintf("String(%q)", string(v)) }
func (NoneValue) String() string      { return "None" }

// Add wraps around like native uint32 addition.
func (v IntegerValue) Add(other Value) (Value, error) {
	o, ok := other.(IntegerValue)
	if !ok {
		return NoneValue{}, invalidOperands(v, other)
	}

	return v + o, nil
}

func (v StringValue) Add(other Value) (Value, error) {
	return NoneValue{}, invalidOperands(v, other)
}

func (v NoneValue) Add(other Value) (Value, error) {
	return NoneValue{}, invalidOperands(v, other)
}

func invalidOperands(v1, v2 Value) error {
	return fmt.Errorf("%w: unable to add %s and %s", ErrInvalidOperands, v1, v2)
}

// Context is the single flat variable scope of a program run.
type Context struct {
	Name      string
	variables map[string]Value
}

func NewContext(name string) *Context {
	return &Context{
		Name:      name,
		variables: make(map[string]Value),
	}
}

// Set inserts the binding or overwrites an existing one.
func (c *Context) Set(name string, val Value) {
	c.variables[name] = val
}

func (c *Context) Get(name string) (Value, bool) {
	val, ok := c.variables[name]
	return val, ok
}

func (c *Context) Len() int {
	return len(c.variables)
}

// Names returns the bound names in sorted order.
func (c *Context) Names() []string {
	names := make([]string, 0, len(c.variables))
	for name := range c.variables {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func (c *Context) String() string {
	var str strings.Builder
	str.WriteString(c.Name)
	str.WriteString("\n")

	for _, name := range c.Names() {
		fmt.Fprintf(&str, "  - %s = %s\n", name, c.variables[name])
	}

	return str.String()
}
