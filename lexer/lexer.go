// Package lexer turns a character stream into the Token sequence consumed
// by package parser. One pass, no lookbehind beyond one character, per
// spec §4.1.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/helena-lang/helena-go/token"
)

// Tokenizer scans a source string into tokens. It keeps the same
// read/peek-by-rune discipline as the teacher's Lexer (readChar/peekChar
// over byte offsets, counting columns in runes, not bytes or display
// width). Its Save/Restore pair is a backtracking primitive like the
// teacher's LexerState; package parser does not use it, since it
// consumes already-tokenized input through Begin/Feed/Next.
type Tokenizer struct {
	input string
	pos   int // byte offset of ch
	next  int // byte offset to read next
	line  int
	col   int
	ch    rune
	chLen int
}

// State is a snapshot of a Tokenizer's scan position, cheap to copy,
// enabling backtracking the way the teacher's LexerState does for the
// recursive-descent parser's lookahead.
type State struct {
	pos, next, line, col int
	ch                   rune
	chLen                int
}

// New creates a Tokenizer positioned at the start of input.
func New(input string) *Tokenizer {
	t := &Tokenizer{input: input, line: 0, col: -1}
	t.readChar()
	return t
}

// Save captures the current scan position.
func (t *Tokenizer) Save() State {
	return State{pos: t.pos, next: t.next, line: t.line, col: t.col, ch: t.ch, chLen: t.chLen}
}

// Restore rewinds the Tokenizer to a previously saved State.
func (t *Tokenizer) Restore(s State) {
	t.pos, t.next, t.line, t.col, t.ch, t.chLen = s.pos, s.next, s.line, s.col, s.ch, s.chLen
}

func (t *Tokenizer) readChar() {
	if t.next >= len(t.input) {
		t.ch = 0
		t.pos = t.next
		t.chLen = 0
		t.col++
		return
	}
	r, size := utf8.DecodeRuneInString(t.input[t.next:])
	t.ch = r
	t.pos = t.next
	t.next += size
	t.chLen = size
	if r == '\n' {
		t.line++
		t.col = -1
	}
	t.col++
}

func (t *Tokenizer) atEOF() bool {
	return t.chLen == 0 && t.pos >= len(t.input)
}

func (t *Tokenizer) peek() rune {
	if t.next >= len(t.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(t.input[t.next:])
	return r
}

func (t *Tokenizer) currentPos() token.Position {
	return token.Position{Offset: t.pos, Line: t.line, Column: t.col}
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\r' || r == '\f' }

func isOctal(r rune) bool { return r >= '0' && r <= '7' }

func isHex(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// Next scans and returns the next token, along with whether scanning
// should continue (false only once, for the terminating EOF token).
func (t *Tokenizer) Next() (token.Token, bool) {
	if t.atEOF() {
		return token.Token{Kind: token.EOF, Pos: t.currentPos()}, false
	}

	start := t.currentPos()

	switch {
	case isSpace(t.ch):
		return t.scanWhitespace(start), true
	case t.ch == '\n':
		t.readChar()
		return token.Token{Kind: token.Newline, Pos: start, Sequence: "\n", Literal: "\n"}, true
	case t.ch == '\\':
		return t.scanBackslash(start), true
	case t.ch == '#':
		return t.scanRun(start, '#', token.Comment), true
	case t.ch == '(':
		t.readChar()
		return single(start, token.OpenTuple, "("), true
	case t.ch == ')':
		t.readChar()
		return single(start, token.CloseTuple, ")"), true
	case t.ch == '{':
		t.readChar()
		return single(start, token.OpenBlock, "{"), true
	case t.ch == '}':
		t.readChar()
		return single(start, token.CloseBlock, "}"), true
	case t.ch == '[':
		t.readChar()
		return single(start, token.OpenExpression, "["), true
	case t.ch == ']':
		t.readChar()
		return single(start, token.CloseExpression, "]"), true
	case t.ch == '"':
		return t.scanRun(start, '"', token.StringDelimiter), true
	case t.ch == '$':
		t.readChar()
		return single(start, token.Dollar, "$"), true
	case t.ch == ';':
		t.readChar()
		return single(start, token.Semicolon, ";"), true
	case t.ch == '*':
		t.readChar()
		return single(start, token.Asterisk, "*"), true
	default:
		return t.scanText(start), true
	}
}

func single(pos token.Position, kind token.Kind, s string) token.Token {
	return token.Token{Kind: kind, Pos: pos, Sequence: s, Literal: s}
}

func (t *Tokenizer) scanWhitespace(start token.Position) token.Token {
	var sb strings.Builder
	for isSpace(t.ch) {
		sb.WriteRune(t.ch)
		t.readChar()
	}
	s := sb.String()
	return token.Token{Kind: token.Whitespace, Pos: start, Sequence: s, Literal: s}
}

// scanRun consumes a run of identical characters (# or ") and returns a
// token whose Kind reflects the run length semantics the parser expects
// (a COMMENT token's Sequence length is the "#" run length; a
// STRING_DELIMITER's Sequence length distinguishes interpolated strings,
// empty strings, tagged strings and here-strings — see openStringLike in
// parser/word.go).
func (t *Tokenizer) scanRun(start token.Position, ch rune, kind token.Kind) token.Token {
	var sb strings.Builder
	for t.ch == ch {
		sb.WriteRune(t.ch)
		t.readChar()
	}
	s := sb.String()
	return token.Token{Kind: kind, Pos: start, Sequence: s, Literal: s}
}

// scanText consumes the longest run of characters that aren't
// separately-tokenized punctuation, merging consecutive plain text into
// a single TEXT token (sequence == literal).
func (t *Tokenizer) scanText(start token.Position) token.Token {
	var sb strings.Builder
	for !t.atEOF() && !isSpecial(t.ch) {
		sb.WriteRune(t.ch)
		t.readChar()
	}
	s := sb.String()
	return token.Token{Kind: token.Text, Pos: start, Sequence: s, Literal: s}
}

func isSpecial(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\f', '\n', '\\', '#', '(', ')', '{', '}', '[', ']', '"', '$', ';', '*':
		return true
	default:
		return false
	}
}

// escapeLiteral maps the single-character escapes recognized after a
// backslash (spec §4.1) to their control-character literal.
var escapeLiteral = map[rune]rune{
	'a': '\a', 'b': '\b', 'f': '\f', 'n': '\n', 'r': '\r', 't': '\t', 'v': '\v', '\\': '\\',
}

func (t *Tokenizer) scanBackslash(start token.Position) token.Token {
	// t.ch == '\\'
	bs := t.pos
	t.readChar()

	if t.atEOF() {
		return token.Token{Kind: token.Text, Pos: start, Sequence: t.input[bs:t.pos], Literal: "\\"}
	}

	if t.ch == '\n' {
		t.readChar()
		for isSpace(t.ch) {
			t.readChar()
		}
		return token.Token{Kind: token.Continuation, Pos: start, Sequence: t.input[bs:t.pos], Literal: " "}
	}

	if r, ok := escapeLiteral[t.ch]; ok {
		t.readChar()
		return token.Token{Kind: token.Escape, Pos: start, Sequence: t.input[bs:t.pos], Literal: string(r)}
	}

	if isOctal(t.ch) {
		var digits strings.Builder
		for i := 0; i < 3 && isOctal(t.ch); i++ {
			digits.WriteRune(t.ch)
			t.readChar()
		}
		cp := int64(0)
		for _, d := range digits.String() {
			cp = cp*8 + int64(d-'0')
		}
		return token.Token{Kind: token.Escape, Pos: start, Sequence: t.input[bs:t.pos], Literal: string(rune(cp))}
	}

	switch t.ch {
	case 'x':
		return t.scanHexEscape(start, bs, 2)
	case 'u':
		return t.scanHexEscape(start, bs, 4)
	case 'U':
		return t.scanHexEscape(start, bs, 8)
	}

	// Unrecognized escape: literal is the single char itself.
	lit := t.ch
	t.readChar()
	return token.Token{Kind: token.Escape, Pos: start, Sequence: t.input[bs:t.pos], Literal: string(lit)}
}

func (t *Tokenizer) scanHexEscape(start token.Position, bs int, maxDigits int) token.Token {
	t.readChar() // consume x/u/U
	var digits strings.Builder
	for i := 0; i < maxDigits && isHex(t.ch); i++ {
		digits.WriteRune(t.ch)
		t.readChar()
	}
	cp := int64(0)
	for _, d := range digits.String() {
		cp *= 16
		switch {
		case d >= '0' && d <= '9':
			cp += int64(d - '0')
		case d >= 'a' && d <= 'f':
			cp += int64(d-'a') + 10
		case d >= 'A' && d <= 'F':
			cp += int64(d-'A') + 10
		}
	}
	return token.Token{Kind: token.Escape, Pos: start, Sequence: t.input[bs:t.pos], Literal: string(rune(cp))}
}

// Tokenize runs a Tokenizer to completion and returns the full token
// sequence, including the terminating EOF token. Joining every token's
// Sequence reproduces source exactly (spec §8 property 1).
func Tokenize(source string) []token.Token {
	t := New(source)
	var out []token.Token
	for {
		tok, more := t.Next()
		out = append(out, tok)
		if !more {
			return out
		}
	}
}
