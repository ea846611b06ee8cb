// Package eval implements the trampoline Evaluator described in spec
// §4.5 and the design note in spec §9 ("model via an explicit
// ExecutionStack and callback continuations rather than host async
// primitives"). A Process owns an ExecutionStack of ProcessContexts; its
// Run loop executes the top context's Program against its ProcessState
// until the program finishes or emits a non-OK Result, handling pushed
// Continuations and YIELD suspension without ever recursing on the Go
// call stack per interpreted frame.
package eval

// Options configures a Process (spec §4.5, §6:
// Process::new(Scope, Program, options { capture_error_stack })).
type Options struct {
	// CaptureErrorStack, if true, makes every command frame that
	// produces or propagates ERROR add a herrors.FrameEntry to the
	// Result's error stack, which stays ordered innermost frame first
	// (spec §7).
	CaptureErrorStack bool

	// StepLimit bounds the number of run-loop steps (about one per
	// opcode) the Process executes, counted across all its Run calls;
	// past it Run returns an ERROR "step limit exceeded". Zero means
	// unlimited. Spec §5: "the host may impose a step-count limit
	// in its run loop" — offered here as a constructor option rather
	// than left to every host to hand-roll (SPEC_FULL.md §7).
	StepLimit int
}
