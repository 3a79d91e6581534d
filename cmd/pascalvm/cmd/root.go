package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "pascalvm",
	Short: "Toolchain for a pragmatic Standard Pascal subset",
	Long: `pascalvm lexes, parses, type-checks, compiles and runs programs
written in a pragmatic subset of Standard Pascal.

It can be driven phase by phase for debugging:

  pascalvm lex program.pas       dump the token stream
  pascalvm parse program.pas     dump the parsed AST
  pascalvm compile program.pas   emit a .pvm instruction listing
  pascalvm run program.pas       lex, parse, analyze, compile and execute
  pascalvm run program.pvm       load and execute a precompiled listing`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
