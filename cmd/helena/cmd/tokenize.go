package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/helena-lang/helena-go/lexer"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "Tokenize a Helena source file and print its token stream",
	Long: `Run only the tokenizer (spec §4.1) over a file or inline source
and print one line per token: kind, source position, and raw sequence.`,
	Args: cobra.MaximumNArgs(1),
	RunE: tokenizeScript,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	tokenizeCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline source instead of reading from a file")
}

func tokenizeScript(_ *cobra.Command, args []string) error {
	source, _, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	for _, tok := range lexer.Tokenize(source) {
		fmt.Fprintf(os.Stdout, "%-14s %6s  %q\n", tok.Kind.String(), tok.Pos.String(), tok.Sequence)
	}
	return nil
}
