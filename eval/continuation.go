package eval

import (
	"github.com/helena-lang/helena-go/compiler"
	"github.com/helena-lang/helena-go/scope"
	"github.com/helena-lang/helena-go/value"
)

// Callback post-processes the Result of a pushed Continuation's Program
// once it finishes, before the value flows back into the parent context
// (spec §4.5). A nil Callback is the identity: the result passes through
// unchanged. Invoked for every result code, not only OK — a command that
// wants to intercept RETURN (e.g. `proc`) or BREAK/CONTINUE (e.g.
// `while`) supplies a Callback that pattern-matches on Code and converts
// it to OK; a Callback that doesn't recognize the code should return it
// untouched so it keeps bubbling (spec §4.5: "bypass callback at
// intermediate frames and propagate upward until a frame explicitly
// handles the code").
type Callback func(value.Result) value.Result

// Continuation is what a Command.Execute returns (via Result.Data) to
// tell the evaluator to run another Program instead of, or after,
// itself (spec §4.5, §6, §9). Two shapes share this one struct:
//
//   - Push (Result.Code == OK): the evaluator suspends the current
//     context, runs Program in Scope as a new frame on top of it, and
//     resumes the current context — passing the sub-run's result through
//     Callback first — once that frame finishes.
//   - Tailcall (Result.Code == RETURN): the evaluator replaces the
//     current context's Program and Scope outright rather than pushing a
//     new frame, the way a command implemented as "just run this other
//     script in my place" (e.g. a macro invoking another macro in tail
//     position) avoids growing the ExecutionStack.
//
// Any other Result.Data shape is treated as a plain value, not a
// continuation.
type Continuation struct {
	Scope    *scope.Scope
	Program  *compiler.Program
	Callback Callback
}
