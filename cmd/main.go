package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"go.caoi.dev/pkg"
)

const version = "0.1.0"

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// driver carries what every command needs once the global flags are read.
type driver struct {
	out    io.Writer
	config *caoi.Config
	logger *log.Logger
}

func newApp(out, errOut io.Writer) *cli.App {
	d := &driver{
		out:    out,
		config: caoi.DefaultConfig(),
		logger: log.New(io.Discard, "", 0),
	}

	return &cli.App{
		Name:      "caoi",
		Usage:     "run and check caoi scripts",
		Version:   version,
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load settings from a YAML `FILE`"},
			&cli.BoolFlag{Name: "verbose", Usage: "log pipeline stages to stderr"},
			&cli.BoolFlag{Name: "precedence", Usage: "parse * and / tighter than + and -"},
			&cli.BoolFlag{Name: "assignments", Usage: "enable `x = expr` and variable references"},
			&cli.BoolFlag{Name: "symbols", Usage: "check references against earlier declarations"},
			&cli.BoolFlag{Name: "arithmetic", Usage: "evaluate additions in the interpreter"},
			&cli.BoolFlag{Name: "gate", Usage: "don't run programs with type errors"},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				d.logger = log.New(errOut, "caoi: ", log.Ltime)
			}

			return d.loadConfig(c)
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "check and interpret a script",
				ArgsUsage: "FILE",
				Action:    d.run,
			},
			{
				Name:      "check",
				Usage:     "report type errors only",
				ArgsUsage: "FILE",
				Action:    d.check,
			},
			{
				Name:      "test",
				Usage:     "verify the `## Typechecker:` annotations of scripts",
				ArgsUsage: "FILE...",
				Action:    d.test,
			},
			{
				Name:      "emit",
				Usage:     "print the LLVM IR of a script",
				ArgsUsage: "FILE",
				Action:    d.emit,
			},
			{
				Name:      "tokens",
				Usage:     "print the tokens of a script",
				ArgsUsage: "FILE",
				Action:    d.tokens,
			},
			{
				Name:      "ast",
				Usage:     "print the syntax tree of a script",
				ArgsUsage: "FILE",
				Action:    d.ast,
			},
		},
	}
}

func (d *driver) loadConfig(c *cli.Context) error {
	if path := c.String("config"); path != "" {
		cfg, err := caoi.LoadConfig(path)
		if err != nil {
			return err
		}

		d.logger.Printf("loaded config %s", path)
		d.config = cfg
	}

	// Flags only switch behaviours on, the file can't be overridden back off.
	if c.Bool("precedence") {
		d.config.Parser.Precedence = true
	}
	if c.Bool("assignments") {
		d.config.Parser.Assignments = true
	}
	if c.Bool("symbols") {
		d.config.Checker.SymbolTable = true
	}
	if c.Bool("arithmetic") {
		d.config.Interpreter.Arithmetic = true
	}
	if c.Bool("gate") {
		d.config.Checker.Gate = true
	}

	return nil
}
