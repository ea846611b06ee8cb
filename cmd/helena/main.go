// Command helena is a CLI front-end over the core packages (token,
// lexer, ast, parser, compiler, value, scope, eval, herrors). It is
// permitted by spec §6 as an external collaborator and is the only
// place in this module allowed to write to stderr or call os.Exit.
package main

import (
	"fmt"
	"os"

	"github.com/helena-lang/helena-go/cmd/helena/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
