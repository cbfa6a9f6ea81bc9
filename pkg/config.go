package caoi

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrConfig = errors.New("config error")

// Config selects the optional language behaviours. The zero value of every
// switch keeps the reference semantics.
type Config struct {
	Parser      ParserConfig      `yaml:"parser"`
	Checker     CheckerConfig     `yaml:"checker"`
	Interpreter InterpreterConfig `yaml:"interpreter"`
}

type ParserConfig struct {
	Precedence  bool `yaml:"precedence"`
	Assignments bool `yaml:"assignments"`
}

type CheckerConfig struct {
	SymbolTable bool `yaml:"symbol_table"`
	// Gate stops execution when the checker reports errors.
	Gate bool `yaml:"gate"`
}

type InterpreterConfig struct {
	Arithmetic bool   `yaml:"arithmetic"`
	Context    string `yaml:"context"`
}

func DefaultConfig() *Config {
	return &Config{
		Interpreter: InterpreterConfig{
			Context: "Root",
		},
	}
}

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	defer file.Close()

	return DecodeConfig(file)
}

// DecodeConfig reads a YAML document over the defaults. Unknown keys are
// rejected and an empty document yields the defaults.
func DecodeConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	if cfg.Interpreter.Context == "" {
		cfg.Interpreter.Context = "Root"
	}

	return cfg, nil
}

func (c *Config) ParserOptions() []ParserOption {
	var opts []ParserOption
	if c.Parser.Precedence {
		opts = append(opts, WithPrecedence())
	}

	if c.Parser.Assignments {
		opts = append(opts, WithAssignments())
	}

	return opts
}

func (c *Config) TypecheckerOptions() []TypecheckerOption {
	if c.Checker.SymbolTable {
		return []TypecheckerOption{WithSymbolTable()}
	}

	return nil
}

func (c *Config) InterpreterOptions() []InterpreterOption {
	opts := []InterpreterOption{WithContextName(c.Interpreter.Context)}
	if c.Interpreter.Arithmetic {
		opts = append(opts, WithArithmetic())
	}

	return opts
}
