package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/helena-lang/helena-go/ast"
	"github.com/helena-lang/helena-go/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Helena source file and print its Script AST",
	Long: `Run the tokenizer and non-recursive parser (spec §4.1, §4.2) over a
file or inline source and print the resulting Script AST as an indented
tree: one line per sentence, word (with its derived WordType), and
morpheme.`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline source instead of reading from a file")
}

func parseScript(_ *cobra.Command, args []string) error {
	source, _, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	script, err := parser.Parse(source)
	if err != nil {
		return reportParseError(err, source)
	}

	dumpScript(os.Stdout, script, 0)
	return nil
}

func dumpScript(w io.Writer, s *ast.Script, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%sScript (%d sentences)\n", indent, len(s.Sentences))
	for i, sentence := range s.Sentences {
		fmt.Fprintf(w, "%s  Sentence[%d]\n", indent, i)
		for j, word := range sentence.Words {
			fmt.Fprintf(w, "%s    Word[%d] %s\n", indent, j, word.Type.String())
			for _, m := range word.Morphemes {
				dumpMorpheme(w, m, depth+3)
			}
		}
	}
}

func dumpMorpheme(w io.Writer, m ast.Morpheme, depth int) {
	indent := strings.Repeat("  ", depth)
	switch mv := m.(type) {
	case ast.Literal:
		fmt.Fprintf(w, "%sLiteral %q\n", indent, mv.Text)
	case ast.Tuple:
		fmt.Fprintf(w, "%sTuple\n", indent)
		if mv.Subscript != nil {
			dumpScript(w, mv.Subscript, depth+1)
		}
	case ast.Block:
		fmt.Fprintf(w, "%sBlock raw=%q\n", indent, mv.RawText)
		if mv.Subscript != nil {
			dumpScript(w, mv.Subscript, depth+1)
		}
	case ast.Expression:
		fmt.Fprintf(w, "%sExpression\n", indent)
		if mv.Subscript != nil {
			dumpScript(w, mv.Subscript, depth+1)
		}
	case ast.String:
		fmt.Fprintf(w, "%sString (%d parts)\n", indent, len(mv.Parts))
		for _, part := range mv.Parts {
			dumpMorpheme(w, part, depth+1)
		}
	case ast.HereString:
		fmt.Fprintf(w, "%sHereString %q\n", indent, mv.Text)
	case ast.TaggedString:
		fmt.Fprintf(w, "%sTaggedString tag=%q %q\n", indent, mv.Tag, mv.Text)
	case ast.LineComment:
		fmt.Fprintf(w, "%sLineComment %q\n", indent, mv.Text)
	case ast.BlockComment:
		fmt.Fprintf(w, "%sBlockComment %q\n", indent, mv.Text)
	case ast.SubstituteNext:
		fmt.Fprintf(w, "%sSubstituteNext marker=%q expansion=%v\n", indent, mv.Marker, mv.Expansion)
	default:
		fmt.Fprintf(w, "%s<unknown morpheme>\n", indent)
	}
}
