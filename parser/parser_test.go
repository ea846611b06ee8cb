package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/helena-lang/helena-go/ast"
	"github.com/helena-lang/helena-go/lexer"
)

// dumpScript renders a Script as an indented, deterministic tree so
// snapshots read like a debug dump rather than a struct literal.
func dumpScript(s *ast.Script) string {
	var b strings.Builder
	dumpScriptInto(&b, s, 0)
	return b.String()
}

func dumpScriptInto(b *strings.Builder, s *ast.Script, depth int) {
	indent := strings.Repeat("  ", depth)
	if s == nil || len(s.Sentences) == 0 {
		fmt.Fprintf(b, "%sScript{}\n", indent)
		return
	}
	fmt.Fprintf(b, "%sScript\n", indent)
	for _, sentence := range s.Sentences {
		fmt.Fprintf(b, "%s  Sentence\n", indent)
		for _, w := range sentence.Words {
			fmt.Fprintf(b, "%s    Word[%s]\n", indent, w.Type)
			for _, m := range w.Morphemes {
				dumpMorphemeInto(b, m, depth+3)
			}
		}
	}
}

func dumpMorphemeInto(b *strings.Builder, m ast.Morpheme, depth int) {
	indent := strings.Repeat("  ", depth)
	switch mm := m.(type) {
	case ast.Literal:
		fmt.Fprintf(b, "%sLiteral(%q)\n", indent, mm.Text)
	case ast.Tuple:
		fmt.Fprintf(b, "%sTuple\n", indent)
		dumpScriptInto(b, mm.Subscript, depth+1)
	case ast.Block:
		fmt.Fprintf(b, "%sBlock(raw=%q)\n", indent, mm.RawText)
		dumpScriptInto(b, mm.Subscript, depth+1)
	case ast.Expression:
		fmt.Fprintf(b, "%sExpression\n", indent)
		dumpScriptInto(b, mm.Subscript, depth+1)
	case ast.String:
		fmt.Fprintf(b, "%sString\n", indent)
		for _, p := range mm.Parts {
			dumpMorphemeInto(b, p, depth+1)
		}
	case ast.HereString:
		fmt.Fprintf(b, "%sHereString(delim=%d, %q)\n", indent, mm.DelimLength, mm.Text)
	case ast.TaggedString:
		fmt.Fprintf(b, "%sTaggedString(tag=%q, %q)\n", indent, mm.Tag, mm.Text)
	case ast.LineComment:
		fmt.Fprintf(b, "%sLineComment(%q)\n", indent, mm.Text)
	case ast.BlockComment:
		fmt.Fprintf(b, "%sBlockComment(%q)\n", indent, mm.Text)
	case ast.SubstituteNext:
		fmt.Fprintf(b, "%sSubstituteNext(%q, expand=%v)\n", indent, mm.Marker, mm.Expansion)
	default:
		fmt.Fprintf(b, "%s<unknown morpheme>\n", indent)
	}
}

func mustParse(t *testing.T, source string) *ast.Script {
	t.Helper()
	script, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", source, err)
	}
	return script
}

func TestParseSimpleSentence(t *testing.T) {
	script := mustParse(t, "a b c")
	snaps.MatchSnapshot(t, dumpScript(script))
}

func TestParseMultipleSentences(t *testing.T) {
	script := mustParse(t, "set x 1\nset y 2; set z 3")
	snaps.MatchSnapshot(t, dumpScript(script))
}

func TestParseInterpolatedString(t *testing.T) {
	script := mustParse(t, `set msg "a\tb"`)
	snaps.MatchSnapshot(t, dumpScript(script))
}

func TestParseBlockRawTextFidelity(t *testing.T) {
	script := mustParse(t, "proc p {a {b} c} {}")
	snaps.MatchSnapshot(t, dumpScript(script))
}

func TestParseSubstitutionWithSelectors(t *testing.T) {
	script := mustParse(t, `set r $x[1](k){s arg}`)
	snaps.MatchSnapshot(t, dumpScript(script))
}

func TestParseHereStringWithEmbeddedShortDelimiter(t *testing.T) {
	script := mustParse(t, `set r """some "" thing"""`)
	snaps.MatchSnapshot(t, dumpScript(script))
}

func TestParseTaggedString(t *testing.T) {
	script := mustParse(t, "set r \"\"EOF\nhello\nEOF\"\"")
	snaps.MatchSnapshot(t, dumpScript(script))
}

func TestParseLineComment(t *testing.T) {
	script := mustParse(t, "a b # trailing comment\nc")
	snaps.MatchSnapshot(t, dumpScript(script))
}

func TestParseNestedBlockComment(t *testing.T) {
	script := mustParse(t, "a #{ outer #{ inner }# still outer }# b")
	snaps.MatchSnapshot(t, dumpScript(script))
}

func TestParseExpansionMarker(t *testing.T) {
	script := mustParse(t, "f $*args")
	snaps.MatchSnapshot(t, dumpScript(script))
}

func TestParseStaleDollarCollapsesToLiteral(t *testing.T) {
	script := mustParse(t, "echo $")
	snaps.MatchSnapshot(t, dumpScript(script))
}

func TestParseUnmatchedOpenParenthesis(t *testing.T) {
	_, err := Parse("set x (1 2")
	if err == nil {
		t.Fatal("expected an unmatched-left-parenthesis error, got nil")
	}
	if !strings.Contains(err.Error(), "unmatched left parenthesis") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseMismatchedCloseBrace(t *testing.T) {
	_, err := Parse("set x (1 2}")
	if err == nil {
		t.Fatal("expected a mismatched-right-brace error, got nil")
	}
	if !strings.Contains(err.Error(), "mismatched right brace") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseUnmatchedCloseParenthesis(t *testing.T) {
	_, err := Parse("set x 1)")
	if err == nil {
		t.Fatal("expected an unmatched-right-parenthesis error, got nil")
	}
	if !strings.Contains(err.Error(), "unmatched right parenthesis") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParserRecoverableOnOpenContext(t *testing.T) {
	p := Begin()
	p.SetSource("set x (1 2")
	p.Feed(lexer.Tokenize("set x (1 2"))
	for {
		ok, err := p.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			break
		}
	}
	if !p.Recoverable() {
		t.Fatal("expected an open Tuple context to be recoverable")
	}
	if _, err := p.CloseStream(); err == nil {
		t.Fatal("expected CloseStream to still report the unmatched left parenthesis")
	}
}
