package parser

import (
	"strings"

	"github.com/helena-lang/helena-go/ast"
	"github.com/helena-lang/helena-go/token"
)

// contextKind is which enclosing node a context is building (spec §4.2:
// "dispatch on the current enclosing node type").
type contextKind int

const (
	ctxScript contextKind = iota
	ctxTuple
	ctxBlock
	ctxExpression
	ctxString
	ctxHereString
	ctxTaggedString
	ctxLineComment
	ctxBlockComment
)

// substMode tracks where a word (or String part list) is within a `$...`
// substitution (spec §4.2 step 3's DOLLAR rule).
type substMode int

const (
	substNone substMode = iota
	substExpectSource
	substExpectSelector
)

type pendingComment struct {
	delimLen  int
	pos       *token.Position
	wordEmpty bool
}

// context is one frame of the parser's explicit stack (spec §4.2, §9):
// it points at the enclosing morpheme node (nil at the Script root), the
// Script/Sentence/Word under construction, and the substitution state
// machine shared by word-producing and String contexts.
type context struct {
	kind contextKind

	// Script/Tuple/Block/Expression: sentences accumulate directly into
	// script; sentenceWords/wordMorphemes are the sentence/word currently
	// under construction, flushed on close.
	script        *ast.Script
	sentenceWords []ast.Word
	sentencePos   *token.Position
	wordMorphemes []ast.Morpheme
	wordPos       *token.Position

	// String: parts accumulate directly (no sentence/word structure).
	parts []ast.Morpheme

	// Shared substitution state (word contexts and String).
	substMode     substMode
	dollarPending bool
	dollarPos     *token.Position

	// Comment lookahead (word contexts only).
	pendingComment *pendingComment

	// HereString/TaggedString/LineComment raw accumulation.
	rawBuf strings.Builder
	// TaggedString line buffering.
	tag         string
	tagLineDone bool
	curLine     strings.Builder
	bodyLines   []string
	// HereString/String/BlockComment delimiter length.
	delimLen int
	// BlockComment nesting.
	nestDepth        int
	pendingCloseHash bool
	pendingOpenHash  bool
	pendingOpenDelim int

	// For raw_text (Block) and error reporting.
	openPos  *token.Position
	openKind token.Kind
}

func newScriptContext() *context {
	return &context{kind: ctxScript, script: &ast.Script{}}
}

// startWordIfNeeded records the position of a word's first morpheme.
func (c *context) startWordIfNeeded(pos *token.Position) {
	if c.wordPos == nil {
		c.wordPos = pos
	}
	if c.sentencePos == nil {
		c.sentencePos = pos
	}
}

// appendLiteralText merges text into the in-progress word's trailing
// Literal morpheme, or starts a new one (spec §4.2 step 3: "TEXT and
// ESCAPE append to the current literal morpheme, merging when
// consecutive").
func (c *context) appendLiteralText(text string, pos *token.Position) {
	c.startWordIfNeeded(pos)
	if n := len(c.wordMorphemes); n > 0 {
		if lit, ok := c.wordMorphemes[n-1].(ast.Literal); ok {
			lit.Text += text
			c.wordMorphemes[n-1] = lit
			return
		}
	}
	c.wordMorphemes = append(c.wordMorphemes, ast.Literal{Text: text, Pos: pos})
}

// appendMorpheme appends a non-literal morpheme (Tuple/Block/Expression/
// String/HereString/TaggedString/SubstituteNext/comment) to the
// in-progress word.
func (c *context) appendMorpheme(m ast.Morpheme) {
	c.startWordIfNeeded(m.Position())
	c.wordMorphemes = append(c.wordMorphemes, m)
}

// closeWord finalizes the in-progress word (if any), classifying it and
// appending it to the in-progress sentence (spec §4.2 step 3: "WHITESPACE
// and CONTINUATION close the current word").
func (c *context) closeWord() {
	if c.wordMorphemes == nil {
		return
	}
	wordType := ast.Classify(c.wordMorphemes)
	c.sentenceWords = append(c.sentenceWords, ast.Word{
		Morphemes: c.wordMorphemes,
		Type:      wordType,
		Pos:       c.wordPos,
	})
	c.wordMorphemes = nil
	c.wordPos = nil
}

// closeSentence finalizes the current word and sentence, appending a
// non-empty sentence to the context's Script (spec §4.2 step 3: "NEWLINE
// and SEMICOLON close the current sentence").
func (c *context) closeSentence() {
	c.closeWord()
	if len(c.sentenceWords) == 0 {
		c.sentencePos = nil
		return
	}
	c.script.Sentences = append(c.script.Sentences, ast.Sentence{
		Words: c.sentenceWords,
		Pos:   c.sentencePos,
	})
	c.sentenceWords = nil
	c.sentencePos = nil
}

// appendStringLiteral merges/appends into the String context's Parts list,
// the String-context counterpart to appendLiteralText/appendMorpheme.
func (c *context) appendStringLiteral(text string, pos *token.Position) {
	if n := len(c.parts); n > 0 {
		if lit, ok := c.parts[n-1].(ast.Literal); ok {
			lit.Text += text
			c.parts[n-1] = lit
			return
		}
	}
	c.parts = append(c.parts, ast.Literal{Text: text, Pos: pos})
}

func (c *context) appendStringMorpheme(m ast.Morpheme) {
	c.parts = append(c.parts, m)
}
