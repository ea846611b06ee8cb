package parser

import (
	"github.com/helena-lang/helena-go/ast"
	"github.com/helena-lang/helena-go/herrors"
	"github.com/helena-lang/helena-go/token"
)

// unmatchedRightKind maps a bare CLOSE_* token at the top level (no
// matching open context at all) to its PARSE_ERROR phrase.
var unmatchedRightKind = map[token.Kind]herrors.Kind{
	token.CloseTuple:      herrors.UnmatchedRightParenthesis,
	token.CloseBlock:      herrors.UnmatchedRightBrace,
	token.CloseExpression: herrors.UnmatchedRightBracket,
}

// dispatchWord handles the Script/Tuple/Block/Expression contexts, which
// share the common parse_word rules (spec §4.2 step 3).
func (p *Parser) dispatchWord(tok token.Token) error {
	ctx := p.top()
	pos := tok.Pos

	// Resolve a pending "$" lookahead before anything else: it decides
	// whether this token turns the substitution into "$*" (and is
	// consumed) or whether the substitution is plain "$" (and this token
	// falls through to normal processing).
	if ctx.dollarPending {
		ctx.dollarPending = false
		if tok.Kind == token.Asterisk {
			ctx.appendMorpheme(ast.SubstituteNext{Marker: "$*", Expansion: true, Pos: ctx.dollarPos})
			ctx.substMode = substExpectSource
			return nil
		}
		ctx.appendMorpheme(ast.SubstituteNext{Marker: "$", Expansion: false, Pos: ctx.dollarPos})
		ctx.substMode = substExpectSource
		// fall through: tok still needs normal handling below
	}

	// Resolve a pending comment lookahead: a COMMENT token only opens a
	// BlockComment if immediately followed by OPEN_BLOCK and the word
	// hadn't started yet (spec §4.2 step 3).
	if pc := ctx.pendingComment; pc != nil {
		ctx.pendingComment = nil
		if tok.Kind == token.OpenBlock && pc.wordEmpty {
			p.push(&context{kind: ctxBlockComment, delimLen: pc.delimLen, nestDepth: 1, openPos: pc.pos})
			return nil
		}
		p.push(&context{kind: ctxLineComment, delimLen: pc.delimLen, openPos: pc.pos})
		return p.dispatch(tok)
	}

	// Substitution source: consumes a run of TEXT/ESCAPE as one merged
	// Literal; anything else ends the run.
	if ctx.substMode == substExpectSource {
		if tok.Kind == token.Text || tok.Kind == token.Escape {
			ctx.appendLiteralText(tok.Literal, &pos)
			return nil
		}
		endSubstitutionSource(ctx)
		// fall through: tok still needs normal handling below
	}

	// Substitution selectors: only OPEN_TUPLE/OPEN_BLOCK/OPEN_EXPRESSION
	// continue the chain; anything else ends the substitution.
	if ctx.substMode == substExpectSelector {
		switch tok.Kind {
		case token.OpenTuple, token.OpenBlock, token.OpenExpression:
			p.pushBracketContext(tok)
			return nil
		}
		ctx.substMode = substNone
		// fall through: tok still needs normal handling below
	}

	switch tok.Kind {
	case token.Whitespace, token.Continuation:
		ctx.closeWord()
		return nil

	case token.Newline, token.Semicolon:
		ctx.closeSentence()
		return nil

	case token.Text, token.Escape:
		ctx.appendLiteralText(tok.Literal, &pos)
		return nil

	case token.StringDelimiter:
		return p.openStringLike(tok)

	case token.OpenTuple, token.OpenBlock, token.OpenExpression:
		p.pushBracketContext(tok)
		return nil

	case token.CloseTuple, token.CloseBlock, token.CloseExpression:
		return p.closeBracketContext(tok)

	case token.Comment:
		ctx.pendingComment = &pendingComment{delimLen: len(tok.Sequence), pos: &pos, wordEmpty: ctx.wordMorphemes == nil}
		return nil

	case token.Dollar:
		ctx.dollarPending = true
		ctx.dollarPos = &pos
		return nil

	case token.Asterisk:
		ctx.appendLiteralText(tok.Literal, &pos)
		return nil

	default:
		ctx.appendLiteralText(tok.Literal, &pos)
		return nil
	}
}

// endSubstitutionSource closes out the expect-source phase: if no source
// morpheme was actually appended (the SubstituteNext marker is still the
// last thing in the word), the substitution was stale and collapses into
// a plain literal of its marker text (spec §4.2 step 3: "stale
// SubstituteNext morphemes with no source collapse into a literal").
func endSubstitutionSource(ctx *context) {
	n := len(ctx.wordMorphemes)
	if n > 0 {
		if sn, ok := ctx.wordMorphemes[n-1].(ast.SubstituteNext); ok {
			ctx.wordMorphemes[n-1] = ast.Literal{Text: sn.Marker, Pos: sn.Pos}
			ctx.substMode = substNone
			return
		}
	}
	ctx.substMode = substExpectSelector
}

// pushBracketContext pushes a Tuple/Block/Expression subcontext for an
// OPEN_* token. Block additionally records where its raw_text begins.
func (p *Parser) pushBracketContext(tok token.Token) {
	pos := tok.Pos
	switch tok.Kind {
	case token.OpenTuple:
		p.push(&context{kind: ctxTuple, script: &ast.Script{}, openPos: &pos, openKind: tok.Kind})
	case token.OpenBlock:
		p.push(&context{kind: ctxBlock, script: &ast.Script{}, openPos: &pos, openKind: tok.Kind})
	case token.OpenExpression:
		p.push(&context{kind: ctxExpression, script: &ast.Script{}, openPos: &pos, openKind: tok.Kind})
	}
}

var bracketKindOf = map[token.Kind]contextKind{
	token.OpenTuple:      ctxTuple,
	token.OpenBlock:      ctxBlock,
	token.OpenExpression: ctxExpression,
}

// closeBracketContext handles a CLOSE_* token: matches the top context,
// raises "mismatched right X" if some OTHER bracket context is open, or
// "unmatched right X" if no bracket context is open at all (spec §4.2
// step 3).
func (p *Parser) closeBracketContext(tok token.Token) error {
	top := p.top()
	wantKind, isBracket := bracketKindOf[openKindFor(tok.Kind)]
	if !isBracket || top.kind != wantKind {
		if top.kind == ctxTuple || top.kind == ctxBlock || top.kind == ctxExpression {
			kind := mismatchedRightKind[wantKind]
			return herrors.New(kind, tok.Pos, p.source)
		}
		kind := unmatchedRightKind[tok.Kind]
		return herrors.New(kind, tok.Pos, p.source)
	}

	top.closeSentence()
	closed := p.pop()
	pos := closed.openPos

	var m ast.Morpheme
	switch tok.Kind {
	case token.CloseTuple:
		m = ast.Tuple{Subscript: closed.script, Pos: pos}
	case token.CloseBlock:
		m = ast.Block{Subscript: closed.script, RawText: closed.rawBuf.String(), Pos: pos}
	case token.CloseExpression:
		m = ast.Expression{Subscript: closed.script, Pos: pos}
	}
	p.appendClosedMorpheme(m)
	return nil
}

func openKindFor(closeKind token.Kind) token.Kind {
	switch closeKind {
	case token.CloseTuple:
		return token.OpenTuple
	case token.CloseBlock:
		return token.OpenBlock
	case token.CloseExpression:
		return token.OpenExpression
	}
	return token.Illegal
}

// appendClosedMorpheme appends a just-closed subcontext's morpheme to
// whichever context is now on top — a word context or a String context
// (selectors chained onto a substitution apply the same way in both).
func (p *Parser) appendClosedMorpheme(m ast.Morpheme) {
	ctx := p.top()
	if ctx.kind == ctxString {
		ctx.appendStringMorpheme(m)
		return
	}
	ctx.appendMorpheme(m)
}

// openStringLike dispatches a STRING_DELIMITER run by its length (spec
// §4.2 step 3): 1 opens a String; 2 followed by TEXT starts a
// TaggedString (tag = that text, rest of line discarded); 2 alone is an
// empty String; 3+ opens a HereString.
func (p *Parser) openStringLike(tok token.Token) error {
	n := len(tok.Sequence)
	pos := tok.Pos
	switch {
	case n == 1:
		p.push(&context{kind: ctxString, openPos: &pos, delimLen: 1})
		return nil
	case n == 2:
		// Defer the tag-vs-empty-string decision to the next token.
		p.push(&context{kind: ctxTaggedString, openPos: &pos, delimLen: 2, pendingOpenHash: true})
		return nil
	default:
		p.push(&context{kind: ctxHereString, openPos: &pos, delimLen: n})
		return nil
	}
}
