package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/helena-lang/helena-go/eval"
	"github.com/helena-lang/helena-go/herrors"
	"github.com/helena-lang/helena-go/parser"
	"github.com/helena-lang/helena-go/scope"
	"github.com/helena-lang/helena-go/value"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Helena script or expression",
	Long: `Parse and evaluate a Helena script from a file or inline source.

Examples:
  # Run a script file
  helena run script.hel

  # Evaluate inline source
  helena run -e "puts (hello)"

  # Pin scope/process options from a config file
  helena run -c helena.yaml script.hel`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading from a file")
}

func runScript(_ *cobra.Command, args []string) error {
	source, _, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	scopeOpts, evalOpts, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	script, err := parser.Parse(source, parser.WithPositions(scopeOpts.CapturePositions))
	if err != nil {
		return reportParseError(err, source)
	}

	root := scope.NewRoot(scopeOpts)
	registerDemoCommands(root, os.Stdout)

	proc := eval.NewProcess(root, root.Compile(script), evalOpts)
	result := proc.Run(context.Background())

	// The CLI has nothing to feed a suspended Process, so every YIELD is
	// resumed with nil until the script finishes.
	for result.Code == value.YIELD {
		proc.YieldBack(value.Nil{})
		result = proc.Run(context.Background())
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[%s]\n", value.CodeName(result.Code))
	}

	if result.Code == value.ERROR {
		msg, _ := value.AsString(result.Value)
		fmt.Fprintln(os.Stderr, "Error:", msg)
		if stack := result.ErrorStack(); len(stack) > 0 {
			fmt.Fprint(os.Stderr, stack.String())
		}
		return fmt.Errorf("evaluation failed")
	}

	return nil
}

func readSource(inline string, args []string) (source, filename string, err error) {
	if inline != "" {
		return inline, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline source")
}

func reportParseError(err error, source string) error {
	if pe, ok := err.(*herrors.ParseError); ok {
		fmt.Fprint(os.Stderr, pe.Format(false))
		fmt.Fprintln(os.Stderr)
	}
	return fmt.Errorf("parsing failed: %w", err)
}
