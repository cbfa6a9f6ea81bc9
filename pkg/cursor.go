package caoi

// Cursor gives sequential access to a slice of elements. It is shared by the
// lexer (runes), the parser (tokens) and the evaluators (nodes).
type Cursor[T any] struct {
	elements []T
	index    int
}

func NewCursor[T any](elements []T) *Cursor[T] {
	return &Cursor[T]{
		elements: elements,
	}
}

// Peek returns the element at the current position without advancing.
func (c *Cursor[T]) Peek() (T, bool) {
	if c.index >= len(c.elements) {
		var zero T
		return zero, false
	}

	return c.elements[c.index], true
}

// Advance returns the element at the current position and moves past it. The
// position never goes beyond the end of the slice.
func (c *Cursor[T]) Advance() (T, bool) {
	elem, ok := c.Peek()
	if !ok {
		return elem, false
	}

	c.index++
	return elem, true
}

func (c *Cursor[T]) Index() int {
	return c.index
}

func (c *Cursor[T]) Done() bool {
	return c.index >= len(c.elements)
}
