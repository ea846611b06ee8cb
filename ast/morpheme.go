// Package ast defines the morpheme-level AST produced by package parser:
// Morpheme, Word, Sentence, Script (spec §3) plus the syntax classifier
// (spec §4.3). Modeled as a closed sum of small value types rather than
// a class hierarchy, per the design note in spec §9.
package ast

import "github.com/helena-lang/helena-go/token"

// Morpheme is the smallest tagged AST unit within a Word. The interface
// is sealed: morpheme() is unexported so no type outside this package
// can implement it, keeping the variant set closed the way a sum type
// would in a language with native tagged unions.
type Morpheme interface {
	morpheme()
	Position() *token.Position
}

// Literal is a run of plain decoded text.
type Literal struct {
	Text string
	Pos  *token.Position
}

func (Literal) morpheme()                 {}
func (m Literal) Position() *token.Position { return m.Pos }

// Tuple is a parenthesized subscript: `(...)`.
type Tuple struct {
	Subscript *Script
	Pos       *token.Position
}

func (Tuple) morpheme()                 {}
func (m Tuple) Position() *token.Position { return m.Pos }

// Block is a braced subscript: `{...}`. RawText is the literal source
// slice between the braces, with CONTINUATION sequences collapsed to a
// single space (spec §8 property 4) — kept verbatim rather than
// re-derived from Subscript, so commands can reach the block's literal
// source; the proc/macro commands run the parsed Subscript.
type Block struct {
	Subscript *Script
	RawText   string
	Pos       *token.Position
}

func (Block) morpheme()                 {}
func (m Block) Position() *token.Position { return m.Pos }

// Expression is a bracketed subscript: `[...]`.
type Expression struct {
	Subscript *Script
	Pos       *token.Position
}

func (Expression) morpheme()                 {}
func (m Expression) Position() *token.Position { return m.Pos }

// String is an interpolated double-quoted string. Its Parts are
// constrained to Literal, Expression, Tuple, Block, and SubstituteNext
// morphemes (spec §3); the parser enforces this constraint when
// appending parts.
type String struct {
	Parts []Morpheme
	Pos   *token.Position
}

func (String) morpheme()                 {}
func (m String) Position() *token.Position { return m.Pos }

// HereString is opaque, triple-or-more-quote-delimited verbatim text.
type HereString struct {
	Text        string
	DelimLength int
	Pos         *token.Position
}

func (HereString) morpheme()                 {}
func (m HereString) Position() *token.Position { return m.Pos }

// TaggedString is opaque heredoc-like text closed by a line matching its
// Tag followed by `""`.
type TaggedString struct {
	Text string
	Tag  string
	Pos  *token.Position
}

func (TaggedString) morpheme()                 {}
func (m TaggedString) Position() *token.Position { return m.Pos }

// LineComment runs from its delimiter to the next newline.
type LineComment struct {
	Text        string
	DelimLength int
	Pos         *token.Position
}

func (LineComment) morpheme()                 {}
func (m LineComment) Position() *token.Position { return m.Pos }

// BlockComment is a nestable comment delimited by `#{` ... `}#`-style
// matching run lengths.
type BlockComment struct {
	Text        string
	DelimLength int
	Pos         *token.Position
}

func (BlockComment) morpheme()                 {}
func (m BlockComment) Position() *token.Position { return m.Pos }

// SubstituteNext marks the start of a `$name` or `$*name` substitution.
// Marker is "$" or "$*"; Expansion is true for the "$*" (splicing) form.
type SubstituteNext struct {
	Marker    string
	Expansion bool
	Pos       *token.Position
}

func (SubstituteNext) morpheme()                 {}
func (m SubstituteNext) Position() *token.Position { return m.Pos }
