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

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "helena",
	Short: "Helena scripting core: tokenizer, parser, and evaluator",
	Long: `helena drives the Helena core module directly from the command line.

Helena is a Tcl-inspired scripting core: a tokenizer, a non-recursive
parser, a linear program compiler, and a continuation-based evaluator
with pluggable commands and uniform Result codes.

This CLI is an external collaborator over that core (spec §6) — it
carries no surface-command library, REPL shell, or display formatting
of its own.`,
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
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (scope options)")
}
