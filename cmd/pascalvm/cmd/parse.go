package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/pascalvm/internal/errors"
	"github.com/cwbudde/pascalvm/internal/lexer"
	"github.com/cwbudde/pascalvm/internal/parser"
	"github.com/spf13/cobra"
)

var parseDumpAST bool

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a Pascal source file and display the AST",
	Long: `Parse a Pascal program and display its Abstract Syntax Tree.

Parsing seeds the symbol table with every declaration as it is reduced,
but performs no type checking — use "run" or "compile" for that.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "print the AST as indented Go values instead of source form")
}

func runParse(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	input := string(content)

	l := lexer.New(input)
	p := parser.New(l, input)
	program := p.Parse()

	if len(p.Errors()) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatErrors(p.Errors()))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("parsing failed with %d error(s)", len(p.Errors()))
	}

	if parseDumpAST {
		fmt.Printf("%#v\n", program)
	} else {
		fmt.Println(program.String())
	}

	return nil
}
