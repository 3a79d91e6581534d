// Command pascalvm is the CLI entry point for the Pascal-subset toolchain.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/pascalvm/cmd/pascalvm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
