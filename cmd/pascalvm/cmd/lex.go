package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/pascalvm/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	showPos    bool
	showType   bool
	onlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize a Pascal source file and print the resulting tokens",
	Long: `Tokenize (lex) a Pascal program and print the resulting tokens.

This command is useful for debugging the lexer and understanding how
the source text is tokenized.

Examples:
  pascalvm lex program.pas
  pascalvm lex --show-type --show-pos program.pas
  pascalvm lex --only-errors program.pas`,
	Args: cobra.ExactArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token type names")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only illegal tokens")
}

func lexScript(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	input := string(content)

	if verbose {
		fmt.Printf("Tokenizing: %s\n", filename)
		fmt.Printf("Input length: %d bytes\n", len(input))
		fmt.Println("---")
	}

	l := lexer.New(input)

	tokenCount := 0
	for {
		tok := l.NextToken()

		if onlyErrors && tok.Type != lexer.ILLEGAL {
			if tok.Type == lexer.EOF {
				break
			}
			continue
		}

		tokenCount++
		printToken(tok)

		if tok.Type == lexer.EOF {
			break
		}
	}

	errorCount := len(l.Errors())
	for _, le := range l.Errors() {
		fmt.Fprintf(os.Stderr, "lex error at %d:%d: %s\n", le.Pos.Line, le.Pos.Column, le.Message)
	}

	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", tokenCount)
		if errorCount > 0 {
			fmt.Printf("Errors: %d\n", errorCount)
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("found %d illegal token(s)", errorCount)
	}
	return nil
}

func printToken(tok lexer.Token) {
	var output string

	if showType {
		output = fmt.Sprintf("[%-12s]", tok.Type)
	}

	if tok.Type == lexer.EOF {
		output += " EOF"
	} else if tok.Type == lexer.ILLEGAL {
		output += fmt.Sprintf(" ILLEGAL: %q", tok.Literal)
	} else if tok.Literal == "" {
		output += fmt.Sprintf(" %s", tok.Type)
	} else {
		output += fmt.Sprintf(" %q", tok.Literal)
	}

	if showPos {
		output += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}

	fmt.Println(output)
}
