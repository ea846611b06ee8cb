package compiler

import (
	"github.com/helena-lang/helena-go/ast"
	"github.com/helena-lang/helena-go/value"
)

// Compile translates script into a Program (spec §4.4).
func Compile(script *ast.Script) *Program {
	p := newProgram()
	compileScript(p, script)
	return p
}

// compileScript emits one EVALUATE_SENTENCE per sentence, back to back;
// whichever ran last leaves the Script's value on the operand stack.
func compileScript(p *Program, script *ast.Script) {
	if script == nil || len(script.Sentences) == 0 {
		p.emit(PushNil)
		return
	}
	for _, sentence := range script.Sentences {
		compileSentence(p, sentence)
	}
}

// compileSentence emits OPEN_FRAME, each word's value-producing opcodes,
// CLOSE_FRAME_AS_LIST, then EVALUATE_SENTENCE — the frame's first
// element is the command, the rest are arguments (spec §4.4).
func compileSentence(p *Program, sentence ast.Sentence) {
	p.emit(OpenFrame)
	for _, w := range sentence.Words {
		if w.Type == ast.Ignored {
			continue
		}
		compileWord(p, w)
	}
	p.emit(CloseFrameAsList)
	p.emitAt(EvaluateSentence, sentence.Pos)
}

func compileWord(p *Program, w ast.Word) {
	switch w.Type {
	case ast.Root:
		compileMorpheme(p, w.Morphemes[0])
	case ast.Qualified:
		compileMorpheme(p, w.Morphemes[0])
		compileSelectors(p, w.Morphemes[1:])
	case ast.Substitution:
		compileSubstitution(p, w.Morphemes)
	case ast.Compound:
		p.emit(OpenFrame)
		for _, m := range w.Morphemes {
			compileCompoundPart(p, m)
		}
		p.emitAt(CloseFrameAsString, w.Pos)
	case ast.Ignored:
		// contributes nothing
	default:
		p.emit(PushNil)
	}
}

func compileCompoundPart(p *Program, m ast.Morpheme) {
	if sn, ok := m.(ast.SubstituteNext); ok {
		_ = sn
		// A bare SubstituteNext with no resolvable source collapsed to a
		// literal morpheme during parsing (endSubstitution); reaching a
		// SubstituteNext here means it heads a nested substitution group
		// already represented as consecutive morphemes, so fall through
		// to the generic morpheme compiler which treats it as text.
	}
	compileMorpheme(p, m)
}

// compileMorpheme pushes exactly one Value for m.
func compileMorpheme(p *Program, m ast.Morpheme) {
	switch mv := m.(type) {
	case ast.Literal:
		p.emitOperand(PushConstant, p.addConstant(value.Str(mv.Text)))
	case ast.Tuple:
		compileTupleLiteral(p, mv)
	case ast.Block:
		p.emitOperand(PushConstant, p.addConstant(value.ScriptValue{Script: mv.Subscript, RawText: mv.RawText}))
	case ast.Expression:
		compileScript(p, mv.Subscript)
	case ast.String:
		compileStringMorpheme(p, mv)
	case ast.HereString:
		p.emitOperand(PushConstant, p.addConstant(value.Str(mv.Text)))
	case ast.TaggedString:
		p.emitOperand(PushConstant, p.addConstant(value.Str(mv.Text)))
	case ast.SubstituteNext:
		// Stranded substitution marker (its source never appeared);
		// parser.endSubstitution is responsible for collapsing these to
		// a Literal, so by compile time this is the marker text itself.
		p.emitOperand(PushConstant, p.addConstant(value.Str(mv.Marker)))
	default:
		p.emit(PushNil)
	}
}

// compileTupleLiteral evaluates a Tuple's first sentence's words as a
// list of values (not as a command invocation) and closes the frame as a
// Tuple — the literal-grouping reading of `(...)` that the
// leading-tuple auto-expansion invariant depends on (spec §3, §8
// property 5).
func compileTupleLiteral(p *Program, t ast.Tuple) {
	p.emit(OpenFrame)
	if t.Subscript != nil && len(t.Subscript.Sentences) > 0 {
		for _, w := range t.Subscript.Sentences[0].Words {
			if w.Type == ast.Ignored {
				continue
			}
			compileWord(p, w)
		}
	}
	p.emit(CloseFrameAsTuple)
}

func compileStringMorpheme(p *Program, s ast.String) {
	p.emit(OpenFrame)
	for _, part := range s.Parts {
		compileStringPart(p, part)
	}
	p.emitAt(CloseFrameAsString, s.Pos)
}

func compileStringPart(p *Program, m ast.Morpheme) {
	compileMorpheme(p, m)
}

// compileSelectors emits SELECT_* opcodes for a QUALIFIED word's trailing
// selector morphemes, applied left to right (spec §5 ordering guarantee).
func compileSelectors(p *Program, selectors []ast.Morpheme) {
	for _, sel := range selectors {
		switch sv := sel.(type) {
		case ast.Expression:
			compileScript(p, sv.Subscript)
			p.emitAt(SelectIndex, sv.Pos)
		case ast.Tuple:
			compileTupleLiteral(p, sv)
			p.emitAt(SelectKeys, sv.Pos)
		case ast.Block:
			compileTupleLiteral(p, ast.Tuple{Subscript: sv.Subscript, Pos: sv.Pos})
			p.emitAt(SelectRules, sv.Pos)
		}
	}
}

// compileSubstitution compiles a SUBSTITUTION word: a leading run of
// SubstituteNext morphemes (if any of them has its Expansion flag set,
// the word ends with EXPAND_VALUE), a root that resolves to a source value, and a
// trailing selector chain.
func compileSubstitution(p *Program, morphemes []ast.Morpheme) {
	i := 0
	expand := false
	for i < len(morphemes) {
		sn, ok := morphemes[i].(ast.SubstituteNext)
		if !ok {
			break
		}
		if sn.Expansion {
			expand = true
		}
		i++
	}
	if i >= len(morphemes) {
		p.emit(PushNil)
		return
	}

	root := morphemes[i]
	if lit, ok := root.(ast.Literal); ok {
		p.emitOperandAt(ResolveValue, p.addConstant(value.Str(lit.Text)), lit.Pos)
	} else {
		compileMorpheme(p, root)
	}

	compileSelectors(p, morphemes[i+1:])
	p.emit(SubstituteResult)

	if expand {
		p.emit(ExpandValue)
	}
}
