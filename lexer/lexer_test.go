package lexer

import (
	"strings"
	"testing"

	"github.com/helena-lang/helena-go/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func TestTokenizeSimpleSentence(t *testing.T) {
	toks := Tokenize("a b c")
	got := kinds(toks)
	want := []token.Kind{token.Text, token.Whitespace, token.Text, token.Whitespace, token.Text, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeSequenceReproducesSource(t *testing.T) {
	source := "set x \"a\\tb\" {body} (1 2); next # comment\n"
	toks := Tokenize(source)
	var b strings.Builder
	for _, tk := range toks {
		b.WriteString(tk.Sequence)
	}
	if b.String() != source {
		t.Fatalf("joining Sequence fields did not reproduce source:\ngot:  %q\nwant: %q", b.String(), source)
	}
}

func TestTokenizeEscapeLiteral(t *testing.T) {
	toks := Tokenize(`\t`)
	if len(toks) < 1 || toks[0].Kind != token.Escape {
		t.Fatalf("expected an Escape token, got %+v", toks)
	}
	if toks[0].Literal != "\t" {
		t.Fatalf("got literal %q", toks[0].Literal)
	}
}

func TestTokenizeContinuationCollapsesToSpace(t *testing.T) {
	toks := Tokenize("a\\\n   b")
	var cont *token.Token
	for i := range toks {
		if toks[i].Kind == token.Continuation {
			cont = &toks[i]
			break
		}
	}
	if cont == nil {
		t.Fatalf("expected a Continuation token, got %+v", toks)
	}
	if cont.Literal != " " {
		t.Fatalf("got literal %q", cont.Literal)
	}
}

func TestTokenizeStringDelimiterRunLength(t *testing.T) {
	toks := Tokenize(`"""x"""`)
	if toks[0].Kind != token.StringDelimiter || len(toks[0].Sequence) != 3 {
		t.Fatalf("expected opening 3-run StringDelimiter, got %+v", toks[0])
	}
}

func TestTokenizeHexEscape(t *testing.T) {
	toks := Tokenize(`\x41`)
	if toks[0].Kind != token.Escape || toks[0].Literal != "A" {
		t.Fatalf("got %+v", toks[0])
	}
}
