package caoi

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/llir/llvm/ir"
)

// ErrTypecheck is returned by Interpret when the config gates execution on a
// clean type check.
var ErrTypecheck = errors.New("program has type errors")

// Program is the result of the front end: tokens, tree and the advisory type
// errors.
type Program struct {
	Filename   string
	Source     string
	Tokens     []Token
	Nodes      []Node
	TypeErrors []TypeError
}

type Compiler struct {
	config *Config
}

func NewCompiler(config *Config) *Compiler {
	if config == nil {
		config = DefaultConfig()
	}

	return &Compiler{
		config: config,
	}
}

func (c *Compiler) Compile(filename string) (*Program, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return c.CompileFromReader(filename, file)
}

func (c *Compiler) CompileFromReader(filename string, reader io.Reader) (*Program, error) {
	src, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	program := &Program{
		Filename: filename,
		Source:   string(src),
	}

	return program, c.compile(program)
}

// compile fills in the program stage by stage. Type errors don't stop it.
func (c *Compiler) compile(program *Program) error {
	tokens, err := NewLexerFromString(program.Source).Run()
	if err != nil {
		return err
	}
	program.Tokens = tokens

	nodes, err := Parse(tokens, c.config.ParserOptions()...)
	if err != nil {
		return err
	}
	program.Nodes = nodes

	program.TypeErrors = Check(nodes, c.config.TypecheckerOptions()...)
	return nil
}

// Interpret runs the program whatever the checker said, unless the config
// gates on it. Fatal runtime failures panic with a *RuntimeError.
func (c *Compiler) Interpret(program *Program, out io.Writer) (*Context, error) {
	if c.config.Checker.Gate && len(program.TypeErrors) != 0 {
		return nil, ErrTypecheck
	}

	opts := append(c.config.InterpreterOptions(), WithOutput(out))
	return NewInterpreter(program.Nodes, opts...).Run(), nil
}

func (c *Compiler) EmitIR(program *Program) (*ir.Module, error) {
	return NewIRGenerator(program.Nodes).Generate()
}

// Verify compiles a script and evaluates its annotation lines.
func (c *Compiler) Verify(filename string) ([]RequirementResult, []string, error) {
	program, err := c.Compile(filename)
	if err != nil {
		return nil, nil, err
	}

	reqs, warnings := ParseRequirements(program.Source)
	return Evaluate(reqs, program.TypeErrors), warnings, nil
}

// Diagnostics renders every type error of the program.
func (p *Program) Diagnostics() string {
	var str strings.Builder
	for _, err := range p.TypeErrors {
		str.WriteString(NewDiagnostic(err).Render(p.Source))
	}

	return str.String()
}
