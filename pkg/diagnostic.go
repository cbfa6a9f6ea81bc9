package caoi

import (
	"errors"
	"fmt"
	"strings"
)

// Diagnostic is an error message pinned to a source location.
type Diagnostic struct {
	Loc     Location
	Message string
}

// NewDiagnostic extracts the location of lexer, parser and type errors.
// Other errors get a zero location.
func NewDiagnostic(err error) Diagnostic {
	var (
		lexErr   *LexError
		parseErr *ParseError
		typeErr  TypeError
	)

	switch {
	case errors.As(err, &lexErr):
		return Diagnostic{Loc: lexErr.Loc, Message: lexErr.Message}
	case errors.As(err, &parseErr):
		return Diagnostic{Loc: parseErr.Location(), Message: parseErr.Message()}
	case errors.As(err, &typeErr):
		return Diagnostic{Loc: typeErr.Location(), Message: typeErr.Error()}
	}

	return Diagnostic{Message: err.Error()}
}

// Render shows the offending source line with a caret under the column.
func (d Diagnostic) Render(source string) string {
	var str strings.Builder
	fmt.Fprintf(&str, "error at line %d column %d:\n", d.Loc.Line, d.Loc.Column)

	lines := strings.Split(source, "\n")
	if d.Loc.Line < 1 || d.Loc.Line > len(lines) {
		str.WriteString(d.Message)
		str.WriteString("\n")
		return str.String()
	}

	pad := strings.Repeat(" ", max(d.Loc.Column-1, 0))
	str.WriteString(lines[d.Loc.Line-1])
	str.WriteString("\n")
	str.WriteString(pad + "^\n")
	str.WriteString(pad + d.Message + "\n")

	return str.String()
}
