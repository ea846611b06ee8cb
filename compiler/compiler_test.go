package compiler

import (
	"testing"

	"github.com/helena-lang/helena-go/ast"
	"github.com/helena-lang/helena-go/value"
)

func literalWord(text string) ast.Word {
	lit := ast.Literal{Text: text}
	return ast.Word{Morphemes: []ast.Morpheme{lit}, Type: ast.Root}
}

func TestCompileSimpleSentenceEmitsFrameAndEvaluate(t *testing.T) {
	script := &ast.Script{Sentences: []ast.Sentence{
		{Words: []ast.Word{literalWord("cmd"), literalWord("arg")}},
	}}
	p := Compile(script)

	wantOps := []Opcode{OpenFrame, PushConstant, PushConstant, CloseFrameAsList, EvaluateSentence}
	if len(p.Code) != len(wantOps) {
		t.Fatalf("got %d instructions, want %d: %+v", len(p.Code), len(wantOps), p.Code)
	}
	for i, op := range wantOps {
		if p.Code[i].Op != op {
			t.Fatalf("instruction %d: got %v, want %v", i, p.Code[i].Op, op)
		}
	}
	if len(p.Constants) != 2 {
		t.Fatalf("got %d constants, want 2", len(p.Constants))
	}
	if s, _ := p.Constants[0].(value.Str); s != "cmd" {
		t.Fatalf("constant 0: got %v", p.Constants[0])
	}
}

func TestCompileEmptyScriptPushesNil(t *testing.T) {
	p := Compile(&ast.Script{})
	if len(p.Code) != 1 || p.Code[0].Op != PushNil {
		t.Fatalf("got %+v", p.Code)
	}
}

func TestCompileIgnoredWordContributesNothing(t *testing.T) {
	comment := ast.Word{Morphemes: []ast.Morpheme{ast.LineComment{Text: "x"}}, Type: ast.Ignored}
	script := &ast.Script{Sentences: []ast.Sentence{
		{Words: []ast.Word{literalWord("cmd"), comment}},
	}}
	p := Compile(script)
	// Only one PushConstant (for "cmd"), since the Ignored word is skipped.
	count := 0
	for _, instr := range p.Code {
		if instr.Op == PushConstant {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("got %d PushConstant instructions, want 1", count)
	}
}

func TestCompileBlockKeepsRawText(t *testing.T) {
	block := ast.Block{Subscript: &ast.Script{}, RawText: "a b"}
	word := ast.Word{Morphemes: []ast.Morpheme{block}, Type: ast.Root}
	script := &ast.Script{Sentences: []ast.Sentence{{Words: []ast.Word{literalWord("proc"), word}}}}
	p := Compile(script)

	var found *value.ScriptValue
	for _, c := range p.Constants {
		if sv, ok := c.(value.ScriptValue); ok {
			found = &sv
			break
		}
	}
	if found == nil {
		t.Fatal("expected a ScriptValue constant")
	}
	if found.RawText != "a b" {
		t.Fatalf("got RawText %q, want %q", found.RawText, "a b")
	}
}

func TestCompileQualifiedWordEmitsSelectors(t *testing.T) {
	expr := ast.Expression{Subscript: &ast.Script{Sentences: []ast.Sentence{{Words: []ast.Word{literalWord("1")}}}}}
	word := ast.Word{Morphemes: []ast.Morpheme{ast.Literal{Text: "x"}, expr}, Type: ast.Qualified}
	script := &ast.Script{Sentences: []ast.Sentence{{Words: []ast.Word{literalWord("get"), word}}}}
	p := Compile(script)

	hasSelectIndex := false
	for _, instr := range p.Code {
		if instr.Op == SelectIndex {
			hasSelectIndex = true
		}
	}
	if !hasSelectIndex {
		t.Fatalf("expected a SelectIndex instruction, got %+v", p.Code)
	}
}
