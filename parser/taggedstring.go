package parser

import (
	"strings"

	"github.com/helena-lang/helena-go/ast"
	"github.com/helena-lang/helena-go/token"
)

// dispatchTaggedString handles heredoc-like `""TAG` ... `TAG""` text (spec
// §4.2 step 4). The TEXT token right after `""` is the tag and the rest of
// that opening line is discarded; the body is buffered line by line until
// a line reading `<indent>TAG` is followed by `""`, which closes it (with
// or without a trailing newline), at which point every buffered body line is dedented by that
// closing line's leading whitespace.
func (p *Parser) dispatchTaggedString(tok token.Token) error {
	ctx := p.top()

	if ctx.pendingOpenHash {
		ctx.pendingOpenHash = false
		if tok.Kind == token.Text {
			ctx.tag = tok.Literal
			return nil
		}
		// No tag text followed `""`: it was just an empty String, not a
		// tagged string. Close immediately and reprocess tok under the
		// parent context.
		closed := p.pop()
		p.appendClosedMorpheme(ast.String{Parts: nil, Pos: closed.openPos})
		return p.dispatch(tok)
	}

	if !ctx.tagLineDone {
		if tok.Kind == token.Newline {
			ctx.tagLineDone = true
		}
		// Still on the opening line; anything after the tag is discarded.
		return nil
	}

	line := ctx.curLine.String()
	trimmed := strings.TrimLeft(line, " \t")
	if tok.Kind == token.StringDelimiter && len(tok.Sequence) == 2 && trimmed == ctx.tag {
		indent := line[:len(line)-len(trimmed)]
		body := dedentLines(ctx.bodyLines, indent)
		text := ""
		if len(body) > 0 {
			text = strings.Join(body, "\n") + "\n"
		}
		closed := p.pop()
		ts := ast.TaggedString{Text: text, Tag: closed.tag, Pos: closed.openPos}
		p.appendClosedMorpheme(ts)
		return nil
	}

	if tok.Kind != token.Newline {
		ctx.curLine.WriteString(tok.Sequence)
		return nil
	}

	ctx.curLine.Reset()
	ctx.bodyLines = append(ctx.bodyLines, line)
	return nil
}

func dedentLines(lines []string, indent string) []string {
	if indent == "" {
		return lines
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimPrefix(l, indent)
	}
	return out
}
