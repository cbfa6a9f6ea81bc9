package caoi

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.caoi.dev/internal/test"
)

func TestCompileFromReader(t *testing.T) {
	c := NewCompiler(nil)

	program, err := c.CompileFromReader("inline", strings.NewReader("let x: String = 4\nlet y = 1"))
	require.NoError(t, err)
	assert.Len(t, program.Nodes, 2)
	require.Len(t, program.TypeErrors, 1)
	assert.Contains(t, program.Diagnostics(), "mismatched types: String and Integer")

	// Type errors are advisory, the program still runs
	var out bytes.Buffer
	ctx, err := c.Interpret(program, &out)
	require.NoError(t, err)

	x, ok := ctx.Get("x")
	assert.True(t, ok)
	assert.Equal(t, IntegerValue(4), x)
	assert.Equal(t, "Root\n  - x = Integer(4)\n  - y = Integer(1)\n", out.String())
}

func TestCompileErrors(t *testing.T) {
	c := NewCompiler(nil)

	program, err := c.CompileFromReader("inline", strings.NewReader("let x = \"open"))
	assert.ErrorIs(t, err, ErrLex)
	assert.Nil(t, program.Tokens)

	program, err = c.CompileFromReader("inline", strings.NewReader("let x ="))
	assert.ErrorIs(t, err, ErrParse)
	assert.NotNil(t, program.Tokens)
	assert.Nil(t, program.Nodes)

	_, err = c.Compile("does/not/exist.caoi")
	assert.Error(t, err)
}

func TestInterpretGate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Checker.Gate = true
	c := NewCompiler(cfg)

	program, err := c.CompileFromReader("inline", strings.NewReader("let x: Qux = 4"))
	require.NoError(t, err)

	ctx, err := c.Interpret(program, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrTypecheck)
	assert.Nil(t, ctx)
}

func TestCompileWithConfig(t *testing.T) {
	cfg, err := LoadConfig("../examples/caoi.yml")
	require.NoError(t, err)
	c := NewCompiler(cfg)

	program, err := c.CompileFromReader("inline", strings.NewReader("let x = 1 + 2\nx = x + 3\nlet y: String = x"))
	require.NoError(t, err)
	require.Len(t, program.TypeErrors, 1)
	assert.IsType(t, &MismatchedTypesError{}, program.TypeErrors[0])

	ctx, err := c.Interpret(program, &bytes.Buffer{})
	require.NoError(t, err)

	y, _ := ctx.Get("y")
	assert.Equal(t, IntegerValue(6), y)
}

func TestUndeclaredAssignmentAborts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Parser.Assignments = true
	c := NewCompiler(cfg)

	program, err := c.CompileFromReader("inline", strings.NewReader("x = 5"))
	require.NoError(t, err)
	assert.Empty(t, program.TypeErrors)

	rtErr := fatal(t, func() {
		_, _ = c.Interpret(program, &bytes.Buffer{})
	})
	assert.ErrorIs(t, rtErr, ErrUnknownVariable)
	assert.Equal(t, loc(1, 1), rtErr.Loc)
}

func TestEmitIR(t *testing.T) {
	c := NewCompiler(nil)

	program, err := c.CompileFromReader("inline", strings.NewReader("let x = 40 + 2"))
	require.NoError(t, err)

	mod, err := c.EmitIR(program)
	require.NoError(t, err)
	assert.Contains(t, mod.String(), "add i32 40, 2")
}

func TestExampleScripts(t *testing.T) {
	files, err := filepath.Glob("../examples/*.caoi")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	c := NewCompiler(nil)
	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			results, warnings, err := c.Verify(file)
			require.NoError(t, err)
			assert.Empty(t, warnings)
			require.NotEmpty(t, results)

			for _, res := range results {
				assert.True(t, res.Passed, res.Requirement.String())
			}
		})
	}
}

var benchErrors []TypeError

func benchmarkPipeline(size int, b *testing.B) {
	c := NewCompiler(nil)

	for n := 0; n < b.N; n++ {
		b.StopTimer()
		r := strings.NewReader(test.GetRandomProgram(size))
		b.StartTimer()

		program, err := c.CompileFromReader("bench", r)
		if err != nil {
			b.Fatal(err)
		}

		benchErrors = program.TypeErrors
	}
}

func BenchmarkPipeline100(b *testing.B) {
	benchmarkPipeline(100, b)
}

func BenchmarkPipeline10000(b *testing.B) {
	benchmarkPipeline(10000, b)
}
