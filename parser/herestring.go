package parser

import (
	"github.com/helena-lang/helena-go/ast"
	"github.com/helena-lang/helena-go/token"
)

// dispatchHereString handles `"""..."""`-style opaque verbatim text: every
// token is raw content except a STRING_DELIMITER run whose length exactly
// matches the opening delimiter, which closes the context (spec §4.2 step
// 4, concrete scenario `"""some "" thing"""` — the embedded `""` is plain
// text because its run length, 2, doesn't match the opening length, 3).
func (p *Parser) dispatchHereString(tok token.Token) error {
	ctx := p.top()

	if tok.Kind == token.StringDelimiter && len(tok.Sequence) == ctx.delimLen {
		closed := p.pop()
		hs := ast.HereString{Text: closed.rawBuf.String(), DelimLength: closed.delimLen, Pos: closed.openPos}
		p.appendClosedMorpheme(hs)
		return nil
	}

	ctx.rawBuf.WriteString(tok.Sequence)
	return nil
}
