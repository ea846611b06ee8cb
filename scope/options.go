package scope

// Options configures a root Scope (spec §3, §6): whether positions are
// captured into the AST/error stack, and whether ERROR results capture a
// herrors.Stack. Shaped as a plain struct rather than the teacher's
// functional-options (lexer.LexerOption) because every option here is a
// simple bool a host sets once at root construction and never varies
// per-call.
type Options struct {
	CapturePositions   bool
	CaptureErrorStack  bool
}

// DefaultOptions returns the zero-cost default: no position capture, no
// error-stack capture.
func DefaultOptions() Options {
	return Options{}
}
