// Package parser implements Helena's non-recursive, explicit-stack
// parser (spec §4.2, §9): an explicit stack of Contexts replaces
// recursive descent, so a deeply nested script never grows the Go call
// stack beyond a constant per open bracket. Grounded on the design note
// in spec §9 ("prefer a tagged sum... over class inheritance") and the
// stack-discipline idiom the teacher applies to its own LexerState
// save/restore, generalized here to a full parsing stack since the
// teacher's own parser is recursive-descent and doesn't fit this
// requirement directly.
package parser

import (
	"fmt"

	"github.com/helena-lang/helena-go/ast"
	"github.com/helena-lang/helena-go/herrors"
	"github.com/helena-lang/helena-go/lexer"
	"github.com/helena-lang/helena-go/token"
)

// Option configures a Parser.
type Option func(*Parser)

// WithPositions makes CloseStream set the root Script's Pos to the
// position of its first sentence. Sentences, Words and morphemes carry
// their positions whether or not this option is set; nested Scripts (the
// subscripts of tuples, blocks and expressions) carry no Pos either way.
func WithPositions(capture bool) Option {
	return func(p *Parser) { p.capturePositions = capture }
}

// Parser is the non-recursive parsing machine. Use Begin to construct one
// for incremental (REPL-style) feeding, or Parse for a one-shot parse of
// a complete source string.
type Parser struct {
	source           string
	capturePositions bool

	pending   []token.Token
	stack     []*context
	lastToken token.Token
	hasToken  bool
}

// Begin starts a fresh incremental Parser with no source fed yet.
func Begin(opts ...Option) *Parser {
	p := &Parser{stack: []*context{newScriptContext()}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Feed appends tokens to the pending queue for Next to drain. The host
// is responsible for tokenizing each new chunk of source (e.g. via
// lexer.Tokenize) and appending the source text itself via SetSource if
// position-rendered errors are wanted.
func (p *Parser) Feed(tokens []token.Token) {
	p.pending = append(p.pending, tokens...)
}

// SetSource records the full source text seen so far, used only to
// render caret-pointed error messages (herrors.ParseError.Format).
func (p *Parser) SetSource(source string) {
	p.source = source
}

// Next processes one pending token. It returns (true, nil) if a token
// was consumed, (false, nil) if the pending queue is empty, or
// (false, err) if the token triggered a fatal ParseError.
func (p *Parser) Next() (bool, error) {
	if len(p.pending) == 0 {
		return false, nil
	}
	tok := p.pending[0]
	p.pending = p.pending[1:]
	p.lastToken = tok
	p.hasToken = true

	if tok.Kind == token.EOF {
		// lexer.Tokenize's terminating EOF token carries no content of its
		// own; it only exists to signal "no more input" and must not reach
		// context dispatch, or it would spuriously extend whatever word
		// happens to be in progress.
		return true, nil
	}

	p.recordBlockRawText(tok)

	if err := p.dispatch(tok); err != nil {
		return false, err
	}
	return true, nil
}

// Recoverable reports whether the Parser's current state — after a
// failed or pending CloseStream — is the kind a REPL should treat as
// "needs more input" rather than a hard syntax error: the last token fed
// was a CONTINUATION, or some context is still open (spec §4.2's
// close_stream rule, decided in this repo's design notes since the
// upstream spec leaves the malformed-escape-inside-string boundary
// unspecified).
func (p *Parser) Recoverable() bool {
	if p.hasToken && p.lastToken.Kind == token.Continuation {
		return true
	}
	return len(p.stack) > 1
}

// CloseStream validates that every context is closed, finalizing the
// trailing sentence/word of the root Script context. On success it
// returns the parsed Script. On failure it returns the specific
// "unmatched left X" ParseError for the innermost still-open context;
// call Recoverable first to decide whether that's fatal or just means
// more input is needed (spec §4.2 step 7, §6).
func (p *Parser) CloseStream() (*ast.Script, error) {
	if top := p.top(); top.kind == ctxTaggedString && top.pendingOpenHash {
		// `""` at the very end of the input is an empty String.
		closed := p.pop()
		p.appendClosedMorpheme(ast.String{Pos: closed.openPos})
	}
	if len(p.stack) > 1 {
		top := p.stack[len(p.stack)-1]
		kind, ok := unmatchedLeftKind[top.kind]
		if !ok {
			kind = herrors.UnmatchedLeftBrace
		}
		pos := token.Position{}
		if top.openPos != nil {
			pos = *top.openPos
		}
		return nil, herrors.New(kind, pos, p.source)
	}
	root := p.stack[0]
	if root.dollarPending {
		root.dollarPending = false
		root.appendMorpheme(ast.SubstituteNext{Marker: "$", Pos: root.dollarPos})
		root.substMode = substExpectSource
	}
	if root.substMode == substExpectSource {
		// A marker still waiting for its source when the input ends
		// collapses to a literal, as it does when a word closes.
		endSubstitutionSource(root)
	}
	root.closeSentence()
	if p.capturePositions && len(root.script.Sentences) > 0 {
		root.script.Pos = root.script.Sentences[0].Pos
	}
	return root.script, nil
}

// Parse tokenizes and parses source in one shot.
func Parse(source string, opts ...Option) (*ast.Script, error) {
	p := Begin(opts...)
	p.SetSource(source)
	p.Feed(lexer.Tokenize(source))
	for {
		ok, err := p.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
	}
	return p.CloseStream()
}

func (p *Parser) top() *context {
	return p.stack[len(p.stack)-1]
}

func (p *Parser) push(c *context) {
	p.stack = append(p.stack, c)
}

func (p *Parser) pop() *context {
	c := p.top()
	p.stack = p.stack[:len(p.stack)-1]
	return c
}

// recordBlockRawText feeds tok's raw contribution into every open Block
// context's raw_text buffer (spec §8 property 4), except the one Block
// context this very token is about to open (not pushed yet, so naturally
// excluded) or close (excluded explicitly, since its own closing brace
// isn't part of its own raw_text).
func (p *Parser) recordBlockRawText(tok token.Token) {
	contribution := tok.Sequence
	if tok.Kind == token.Continuation {
		contribution = tok.Literal
	}
	skipTop := tok.Kind == token.CloseBlock && p.top().kind == ctxBlock
	for i, c := range p.stack {
		if c.kind != ctxBlock {
			continue
		}
		if skipTop && i == len(p.stack)-1 {
			continue
		}
		c.rawBuf.WriteString(contribution)
	}
}

func (p *Parser) dispatch(tok token.Token) error {
	switch p.top().kind {
	case ctxScript, ctxTuple, ctxBlock, ctxExpression:
		return p.dispatchWord(tok)
	case ctxString:
		return p.dispatchString(tok)
	case ctxHereString:
		return p.dispatchHereString(tok)
	case ctxTaggedString:
		return p.dispatchTaggedString(tok)
	case ctxLineComment:
		return p.dispatchLineComment(tok)
	case ctxBlockComment:
		return p.dispatchBlockComment(tok)
	default:
		return fmt.Errorf("parser: unknown context kind %d", p.top().kind)
	}
}
