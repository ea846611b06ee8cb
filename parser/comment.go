package parser

import (
	"strings"

	"github.com/helena-lang/helena-go/ast"
	"github.com/helena-lang/helena-go/token"
)

// dispatchLineComment accumulates raw text until NEWLINE. It does not
// consume the NEWLINE itself: once the comment closes, the same token is
// reprocessed against the now-current parent context so sentence closing
// still happens normally (spec §4.2 step 3).
func (p *Parser) dispatchLineComment(tok token.Token) error {
	ctx := p.top()
	if tok.Kind == token.Newline {
		closed := p.pop()
		lc := ast.LineComment{Text: closed.rawBuf.String(), DelimLength: closed.delimLen, Pos: closed.openPos}
		p.appendClosedMorpheme(lc)
		return p.dispatch(tok)
	}
	ctx.rawBuf.WriteString(tok.Sequence)
	return nil
}

// dispatchBlockComment handles `#{`...`}#`-style nestable comments, symmetric
// lookahead pairs that only count as nesting delimiters when their run
// lengths match the opening delimiter (spec §4.2 step 3).
func (p *Parser) dispatchBlockComment(tok token.Token) error {
	ctx := p.top()

	if ctx.pendingOpenHash {
		ctx.pendingOpenHash = false
		if tok.Kind == token.OpenBlock && ctx.pendingOpenDelim == ctx.delimLen {
			ctx.nestDepth++
			ctx.rawBuf.WriteString(strings.Repeat("#", ctx.pendingOpenDelim))
			ctx.rawBuf.WriteString(tok.Sequence)
			return nil
		}
		ctx.rawBuf.WriteString(strings.Repeat("#", ctx.pendingOpenDelim))
		return p.dispatchBlockComment(tok)
	}

	if ctx.pendingCloseHash {
		ctx.pendingCloseHash = false
		if tok.Kind == token.Comment && len(tok.Sequence) == ctx.delimLen {
			ctx.nestDepth--
			if ctx.nestDepth == 0 {
				closed := p.pop()
				bc := ast.BlockComment{Text: closed.rawBuf.String(), DelimLength: closed.delimLen, Pos: closed.openPos}
				p.appendClosedMorpheme(bc)
				return nil
			}
			ctx.rawBuf.WriteString("}")
			ctx.rawBuf.WriteString(tok.Sequence)
			return nil
		}
		ctx.rawBuf.WriteString("}")
		return p.dispatchBlockComment(tok)
	}

	switch tok.Kind {
	case token.Comment:
		ctx.pendingOpenHash = true
		ctx.pendingOpenDelim = len(tok.Sequence)
		return nil
	case token.CloseBlock:
		ctx.pendingCloseHash = true
		return nil
	case token.Continuation:
		ctx.rawBuf.WriteString(" ")
		return nil
	default:
		ctx.rawBuf.WriteString(tok.Sequence)
		return nil
	}
}
