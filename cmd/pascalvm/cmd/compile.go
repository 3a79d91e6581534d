package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/pascalvm/internal/bytecode"
	"github.com/cwbudde/pascalvm/internal/errors"
	"github.com/cwbudde/pascalvm/internal/lexer"
	"github.com/cwbudde/pascalvm/internal/parser"
	"github.com/cwbudde/pascalvm/internal/semantic"
	"github.com/spf13/cobra"
)

var (
	outputFile  string
	disassemble bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Compile a Pascal file to a .pvm instruction listing",
	Long: `Lex, parse, type-check and generate code for a Pascal program,
writing the resulting textual instruction listing to a .pvm file.

Examples:
  pascalvm compile program.pas
  pascalvm compile program.pas -o out.pvm
  pascalvm compile program.pas --disassemble`,
	Args: cobra.ExactArgs(1),
	RunE: compileScript,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: <input>.pvm)")
	compileCmd.Flags().BoolVar(&disassemble, "disassemble", false, "print the generated listing to stderr after compilation")
}

// compileToListing runs the lex/parse/analyze/generate pipeline and
// returns the textual listing. Shared by the compile and run commands.
func compileToListing(input, filename string) (string, error) {
	l := lexer.New(input)
	p := parser.New(l, input)
	program := p.Parse()

	if lexErrs := l.Errors(); len(lexErrs) > 0 {
		compilerErrs := make([]*errors.CompilerError, len(lexErrs))
		for i, le := range lexErrs {
			compilerErrs[i] = errors.NewCompilerError(errors.PhaseLex, le.Pos, le.Message, input)
		}
		fmt.Fprint(os.Stderr, errors.FormatErrors(compilerErrs))
		fmt.Fprintln(os.Stderr)
		return "", fmt.Errorf("lexing failed with %d error(s)", len(lexErrs))
	}

	if len(p.Errors()) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatErrors(p.Errors()))
		fmt.Fprintln(os.Stderr)
		return "", fmt.Errorf("parsing failed with %d error(s)", len(p.Errors()))
	}

	analyzer := semantic.NewAnalyzer(p.SymbolTable(), input)
	if errs := analyzer.Analyze(program); len(errs) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatErrors(errs))
		fmt.Fprintln(os.Stderr)
		return "", fmt.Errorf("semantic analysis failed with %d error(s)", len(errs))
	}

	gen := bytecode.NewGenerator(p.SymbolTable(), input)
	listing, errs := gen.Generate(program)
	if len(errs) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatErrors(errs))
		fmt.Fprintln(os.Stderr)
		return "", fmt.Errorf("code generation failed with %d error(s)", len(errs))
	}

	return listing, nil
}

func compileScript(_ *cobra.Command, args []string) error {
	filename := args[0]

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	input := string(content)

	if verbose {
		fmt.Fprintf(os.Stderr, "Compiling %s...\n", filename)
	}

	listing, err := compileToListing(input, filename)
	if err != nil {
		return err
	}

	if disassemble {
		vm, err := bytecode.NewVM(listing, strings.NewReader(""), io.Discard)
		if err != nil {
			return fmt.Errorf("failed to load listing for disassembly: %w", err)
		}
		fmt.Fprintf(os.Stderr, "\n== Disassembly ==\n")
		bytecode.NewDisassembler(vm, os.Stderr).Disassemble()
	}

	outFile := outputFile
	if outFile == "" {
		ext := filepath.Ext(filename)
		if ext != "" {
			outFile = strings.TrimSuffix(filename, ext) + ".pvm"
		} else {
			outFile = filename + ".pvm"
		}
	}

	if err := os.WriteFile(outFile, []byte(listing), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outFile, err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Listing written to %s (%d bytes)\n", outFile, len(listing))
	} else {
		fmt.Printf("Compiled %s -> %s\n", filename, outFile)
	}

	return nil
}
