package eval

import (
	"github.com/helena-lang/helena-go/compiler"
	"github.com/helena-lang/helena-go/scope"
	"github.com/helena-lang/helena-go/token"
	"github.com/helena-lang/helena-go/value"
)

// ProcessState is one context's mutable cursor: an instruction pointer,
// an operand stack, a set of OPEN_FRAME marks into that stack, and the
// last sub-result produced (spec §4.5, §9: "ProcessState { instruction
// pointer, operand stack, last sub-result }").
type ProcessState struct {
	IP       int
	Operands []value.Value
	Marks    []int
	Last     value.Result
}

func (st *ProcessState) push(v value.Value) {
	st.Operands = append(st.Operands, v)
}

func (st *ProcessState) pop() value.Value {
	n := len(st.Operands)
	v := st.Operands[n-1]
	st.Operands = st.Operands[:n-1]
	return v
}

func (st *ProcessState) peekOrNil() value.Value {
	if len(st.Operands) == 0 {
		return value.Nil{}
	}
	return st.Operands[len(st.Operands)-1]
}

func (st *ProcessState) mark() {
	st.Marks = append(st.Marks, len(st.Operands))
}

// closeFrame pops the most recent mark and returns everything pushed
// since it, in order, removing it from the operand stack.
func (st *ProcessState) closeFrame() []value.Value {
	n := len(st.Marks)
	start := st.Marks[n-1]
	st.Marks = st.Marks[:n-1]
	out := append([]value.Value(nil), st.Operands[start:]...)
	st.Operands = st.Operands[:start]
	return out
}

// ProcessContext is one frame of the ExecutionStack: a Scope/Program
// pair with its own ProcessState, plus the Callback to apply to its
// Result once its Program finishes (nil at the root context — nothing
// is above it to hand a transformed result to). yieldCmd, when set,
// names the ResumableCommand whose Execute produced the YIELD this
// context is currently frozen on, so the next resume calls Resume
// instead of just splicing in the staged value (spec §4.5 command-side
// yield/resume protocol).
type ProcessContext struct {
	Scope    *scope.Scope
	Program  *compiler.Program
	State    *ProcessState
	Callback Callback

	yieldCmd scope.ResumableCommand

	// callFrame holds the string-coerced words of the sentence whose
	// Execute call pushed this context (nil for the Process's initial
	// root context, which nothing called into). Recorded so that, if an
	// ERROR bubbles out of this context while capture_error_stack is on,
	// the frame that invoked it — not just the frame that originated the
	// error — gets its own stack entry (spec §7, worked example in
	// spec.md §8: two nested macro calls ending in a failing `error`
	// command produce a depth-3 stack, one entry per call site the error
	// passes through, not only the innermost).
	callFrame []string

	// callPos is the source position of the EVALUATE_SENTENCE that
	// pushed this context, attached to callFrame's stack entry only when
	// the Scope was built with capture_positions set (spec §4.5: "each
	// entry records the source position of the failing call site").
	callPos *token.Position
}

// ExecutionStack is the Process's stack of ProcessContexts (spec §4.5,
// §9). Only package eval ever walks it; commands interact with it
// indirectly through the Continuation a Command.Execute returns.
type ExecutionStack []*ProcessContext

func (s *ExecutionStack) push(c *ProcessContext) {
	*s = append(*s, c)
}

func (s *ExecutionStack) pop() {
	*s = (*s)[:len(*s)-1]
}

func (s ExecutionStack) top() *ProcessContext {
	return s[len(s)-1]
}
