package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
	"go.caoi.dev/pkg"
)

func (d *driver) compile(c *cli.Context) (*caoi.Compiler, *caoi.Program, error) {
	filename := c.Args().First()
	if filename == "" {
		return nil, nil, cli.Exit("missing script file", 2)
	}

	compiler := caoi.NewCompiler(d.config)

	d.logger.Printf("compiling %s", filename)
	program, err := compiler.Compile(filename)
	if err != nil {
		if program != nil {
			printError(d, program.Source, err)
			return nil, nil, cli.Exit("", 1)
		}

		return nil, nil, err
	}

	d.logger.Printf("%d tokens, %d nodes, %d type errors", len(program.Tokens), len(program.Nodes), len(program.TypeErrors))
	return compiler, program, nil
}

func (d *driver) run(c *cli.Context) (err error) {
	compiler, program, err := d.compile(c)
	if err != nil {
		return err
	}

	printTypeErrors(d, program)

	defer func() {
		r := recover()
		if r == nil {
			return
		}

		rtErr, ok := r.(*caoi.RuntimeError)
		if !ok {
			panic(r)
		}

		err = cli.Exit(fmt.Sprintf("fatal: %s", rtErr), 3)
	}()

	d.logger.Printf("executing interpreter")
	if _, err := compiler.Interpret(program, d.out); err != nil {
		if errors.Is(err, caoi.ErrTypecheck) {
			return cli.Exit(err.Error(), 1)
		}

		return err
	}

	return nil
}

func (d *driver) check(c *cli.Context) error {
	_, program, err := d.compile(c)
	if err != nil {
		return err
	}

	printTypeErrors(d, program)
	if len(program.TypeErrors) != 0 {
		return cli.Exit("", 1)
	}

	return nil
}

func (d *driver) test(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("missing script file", 2)
	}

	compiler := caoi.NewCompiler(d.config)
	failed := 0

	for _, filename := range c.Args().Slice() {
		results, warnings, err := compiler.Verify(filename)
		if err != nil {
			fmt.Fprintf(d.out, "ERROR %s: %s\n", filename, err)
			failed++
			continue
		}

		for _, w := range warnings {
			d.logger.Printf("%s: %s", filename, w)
		}

		for _, res := range results {
			status := "PASS"
			if !res.Passed {
				status = "FAIL"
				failed++
			}

			fmt.Fprintf(d.out, "%s %s (%s)\n", status, filename, res.Requirement)
		}
	}

	if failed != 0 {
		return cli.Exit(fmt.Sprintf("%d requirement(s) failed", failed), 1)
	}

	return nil
}

func (d *driver) emit(c *cli.Context) error {
	compiler, program, err := d.compile(c)
	if err != nil {
		return err
	}

	mod, err := compiler.EmitIR(program)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Fprint(d.out, mod)
	return nil
}

func (d *driver) tokens(c *cli.Context) error {
	_, program, err := d.compile(c)
	if err != nil {
		return err
	}

	for _, tok := range program.Tokens {
		fmt.Fprintln(d.out, tok)
	}

	return nil
}

func (d *driver) ast(c *cli.Context) error {
	_, program, err := d.compile(c)
	if err != nil {
		return err
	}

	for _, node := range program.Nodes {
		fmt.Fprint(d.out, caoi.Dump(node))
	}

	return nil
}

func printTypeErrors(d *driver, program *caoi.Program) {
	if len(program.TypeErrors) == 0 {
		fmt.Fprintln(d.out, "Typechecker is happy!")
		return
	}

	fmt.Fprintln(d.out, "Typechecker is sad :(")
	for _, err := range program.TypeErrors {
		printError(d, program.Source, err)
	}
}

func printError(d *driver, source string, err error) {
	switch e := err.(type) {
	case *caoi.MismatchedTypesError:
		d.logger.Printf("mismatched types %s and %s at %s", e.Type1, e.Type2, e.Loc)
	case *caoi.InvalidTypeError:
		d.logger.Printf("invalid type %s at %s", e.Name, e.Loc)
	case *caoi.UndefinedVariableError:
		d.logger.Printf("undefined variable %s at %s", e.Name, e.Loc)
	}

	fmt.Fprintln(d.out, "====================")
	fmt.Fprint(d.out, caoi.NewDiagnostic(err).Render(source))
}
