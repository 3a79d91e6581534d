package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/pascalvm/internal/bytecode"
	"github.com/spf13/cobra"
)

var runDisassemble bool

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a Pascal source file or a precompiled listing",
	Long: `Execute a program, accepting either a .pas source file (which is
lexed, parsed, type-checked and compiled before running) or a
precompiled .pvm instruction listing (which is loaded and run directly).

Standard input feeds readln(); standard output receives write/writeln.

Examples:
  pascalvm run program.pas
  pascalvm run program.pvm`,
	Args: cobra.ExactArgs(1),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runDisassemble, "disassemble", false, "print the listing to stderr before executing it")
}

func runProgram(_ *cobra.Command, args []string) error {
	filename := args[0]

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	input := string(content)

	var listing string
	if strings.EqualFold(filepath.Ext(filename), ".pvm") {
		listing = input
	} else {
		listing, err = compileToListing(input, filename)
		if err != nil {
			return err
		}
	}

	vm, err := bytecode.NewVM(listing, os.Stdin, os.Stdout)
	if err != nil {
		return fmt.Errorf("failed to load listing: %w", err)
	}

	if runDisassemble || verbose {
		bytecode.NewDisassembler(vm, os.Stderr).Disassemble()
	}

	if err := vm.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("execution failed")
	}

	return nil
}
