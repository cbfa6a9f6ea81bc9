package caoi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeConfig(t *testing.T) {
	cases := []struct {
		data   string
		expect *Config
	}{
		{
			"",
			DefaultConfig(),
		},
		{
			"parser:\n  precedence: true\nchecker:\n  gate: true\n",
			&Config{
				Parser:      ParserConfig{Precedence: true},
				Checker:     CheckerConfig{Gate: true},
				Interpreter: InterpreterConfig{Context: "Root"},
			},
		},
		{
			"interpreter:\n  arithmetic: true\n  context: Main\nchecker:\n  symbol_table: true\n",
			&Config{
				Checker:     CheckerConfig{SymbolTable: true},
				Interpreter: InterpreterConfig{Arithmetic: true, Context: "Main"},
			},
		},
		{
			"interpreter:\n  context: \"\"\n",
			DefaultConfig(),
		},
	}

	for _, c := range cases {
		got, err := DecodeConfig(strings.NewReader(c.data))
		require.NoError(t, err)
		assert.Equal(t, c.expect, got)
	}
}

func TestDecodeConfigErrors(t *testing.T) {
	for _, data := range []string{
		"parser:\n  precedense: true\n",
		"checker: [1, 2]\n",
	} {
		_, err := DecodeConfig(strings.NewReader(data))
		assert.ErrorIs(t, err, ErrConfig)
	}

	_, err := LoadConfig("does/not/exist.yml")
	assert.ErrorIs(t, err, ErrConfig)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("../examples/caoi.yml")
	require.NoError(t, err)

	assert.Len(t, cfg.ParserOptions(), 2)
	assert.Len(t, cfg.TypecheckerOptions(), 1)
	assert.Len(t, cfg.InterpreterOptions(), 2)

	assert.Empty(t, DefaultConfig().ParserOptions())
	assert.Empty(t, DefaultConfig().TypecheckerOptions())
	assert.Len(t, DefaultConfig().InterpreterOptions(), 1)
}
