// Package herrors carries the error-formatting ambient stack: parse
// errors with caret-rendered source context (grounded on the teacher's
// internal/errors.CompilerError) and the opt-in runtime ErrorStack (spec
// §4.5, §7).
package herrors

import (
	"fmt"
	"strings"

	"github.com/helena-lang/helena-go/token"
)

// Kind is one of the stable PARSE_ERROR phrases from spec §4.2.
type Kind string

const (
	UnmatchedLeftParenthesis  Kind = "unmatched left parenthesis"
	UnmatchedLeftBrace        Kind = "unmatched left brace"
	UnmatchedLeftBracket      Kind = "unmatched left bracket"
	UnmatchedRightParenthesis Kind = "unmatched right parenthesis"
	UnmatchedRightBrace       Kind = "unmatched right brace"
	UnmatchedRightBracket     Kind = "unmatched right bracket"
	MismatchedRightParen      Kind = "mismatched right parenthesis"
	MismatchedRightBrace      Kind = "mismatched right brace"
	MismatchedRightBracket    Kind = "mismatched right bracket"
	UnmatchedStringDelimiter  Kind = "unmatched string delimiter"
	UnmatchedHereString       Kind = "unmatched here-string delimiter"
	UnmatchedTaggedString     Kind = "unmatched tagged string delimiter"
	UnmatchedBlockComment     Kind = "unmatched block comment delimiter"
	ExtraCharsAfterDelimiter  Kind = "extra characters after string delimiter"
	UnexpectedCommentDelim    Kind = "unexpected comment delimiter"
	UnexpectedStringDelim     Kind = "unexpected string delimiter"
)

// ParseError is a single lex/parse failure: a stable Kind phrase plus the
// Position of the offending token and the source it came from, formatted
// with a caret the way the teacher's CompilerError is.
type ParseError struct {
	Kind    Kind
	Message string
	Pos     token.Position
	Source  string
}

func (e *ParseError) Error() string {
	return e.Format(false)
}

// Format renders "Error at line:column\n<source line>\n<caret>\n<message>",
// matching the teacher's CompilerError.Format layout. Pass color=true for
// ANSI-highlighted terminal output (the CLI's job, never the parser's).
func (e *ParseError) Format(color bool) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error at %s\n", e.Pos))

	if line := sourceLine(e.Source, e.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line+1)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.message())
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func (e *ParseError) message() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

func sourceLine(source string, line int) string {
	if source == "" {
		return ""
	}
	lines := strings.Split(source, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}
	return lines[line]
}

// New builds a ParseError for kind at pos within source.
func New(kind Kind, pos token.Position, source string) *ParseError {
	return &ParseError{Kind: kind, Pos: pos, Source: source}
}
