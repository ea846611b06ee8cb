package parser

import (
	"github.com/helena-lang/helena-go/ast"
	"github.com/helena-lang/helena-go/herrors"
	"github.com/helena-lang/helena-go/token"
)

// dispatchString handles the interpolated-string context: text accumulates
// as Literal parts; DOLLAR drives the same substitution state machine as
// word contexts; OPEN_EXPRESSION always nests (expressions are legal
// anywhere inside a string), while OPEN_TUPLE/OPEN_BLOCK only nest as
// selectors chained onto a substitution, otherwise they're literal
// characters (spec §4.2 step 4).
func (p *Parser) dispatchString(tok token.Token) error {
	ctx := p.top()
	pos := tok.Pos

	if ctx.dollarPending {
		ctx.dollarPending = false
		if tok.Kind == token.Asterisk {
			ctx.appendStringMorpheme(ast.SubstituteNext{Marker: "$*", Expansion: true, Pos: ctx.dollarPos})
			ctx.substMode = substExpectSource
			return nil
		}
		ctx.appendStringMorpheme(ast.SubstituteNext{Marker: "$", Expansion: false, Pos: ctx.dollarPos})
		ctx.substMode = substExpectSource
		// fall through
	}

	if ctx.substMode == substExpectSource {
		if tok.Kind == token.Text || tok.Kind == token.Escape {
			ctx.appendStringLiteral(tok.Literal, &pos)
			return nil
		}
		endStringSubstitutionSource(ctx)
		// fall through
	}

	if ctx.substMode == substExpectSelector {
		switch tok.Kind {
		case token.OpenTuple, token.OpenBlock, token.OpenExpression:
			p.pushBracketContext(tok)
			return nil
		}
		ctx.substMode = substNone
		// fall through
	}

	switch tok.Kind {
	case token.StringDelimiter:
		if len(tok.Sequence) != 1 {
			return herrors.New(herrors.ExtraCharsAfterDelimiter, tok.Pos, p.source)
		}
		closed := p.pop()
		s := ast.String{Parts: closed.parts, Pos: closed.openPos}
		p.appendClosedMorpheme(s)
		return nil

	case token.OpenExpression:
		p.pushBracketContext(tok)
		return nil

	case token.OpenTuple, token.OpenBlock:
		// Not chained onto a substitution: literal bracket character.
		ctx.appendStringLiteral(tok.Sequence, &pos)
		return nil

	case token.Dollar:
		ctx.dollarPending = true
		ctx.dollarPos = &pos
		return nil

	default:
		ctx.appendStringLiteral(tok.Literal, &pos)
		return nil
	}
}

func endStringSubstitutionSource(ctx *context) {
	n := len(ctx.parts)
	if n > 0 {
		if sn, ok := ctx.parts[n-1].(ast.SubstituteNext); ok {
			ctx.parts[n-1] = ast.Literal{Text: sn.Marker, Pos: sn.Pos}
			ctx.substMode = substNone
			return
		}
	}
	ctx.substMode = substExpectSelector
}
