// Package scope implements the Scope & Command registry (spec §3, §6):
// namespacing, name resolution, and command lifetime. Grounded on the
// teacher's Environment parent-chain lookup (internal/interp/
// environment.go), extended with write-once constants and a command
// table per spec §3's invariants.
package scope

import "github.com/helena-lang/helena-go/value"

// Command is the capability set every pluggable command implements:
// Execute is mandatory; Help and Resume are optional and checked via the
// HelpCommand / ResumableCommand interfaces below (spec §3 Command).
type Command interface {
	Execute(args []value.Value, s *Scope) value.Result
}

// HelpOptions configures a HelpCommand's usage-string rendering.
type HelpOptions struct {
	Prefix []string
	Skip   int
}

// HelpCommand is implemented by commands that offer usage help.
type HelpCommand interface {
	Command
	Help(args []value.Value, opts HelpOptions) value.Result
}

// ResumableCommand is implemented by commands that can be resumed after
// their Execute returned YIELD: when the Process resumes, the evaluator
// calls Resume with the value supplied for the resumption (spec §4.5).
type ResumableCommand interface {
	Command
	Resume(result value.Result, s *Scope) value.Result
}

// CommandFunc adapts a plain function to Command, the way http.HandlerFunc
// adapts a function to http.Handler — useful for the many commands that
// need no state of their own.
type CommandFunc func(args []value.Value, s *Scope) value.Result

func (f CommandFunc) Execute(args []value.Value, s *Scope) value.Result {
	return f(args, s)
}
