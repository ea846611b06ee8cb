package herrors

import (
	"fmt"
	"strings"

	"github.com/helena-lang/helena-go/token"
)

// FrameEntry renders one error-stack entry (spec §4.5, §7): a command
// frame plus its optional call-site position. Frame holds the already
// string-coerced words of the sentence that produced or propagated the
// error (for a failing opcode it holds the error message, for a failed
// resume the single word "<resume>"); innermost frame first, matching the teacher's StackTrace
// convention of printing most-recent first.
type FrameEntry struct {
	Frame []string
	Pos   *token.Position
}

// String formats "word1 word2 ... [L:C]" (1-based line and column, as
// token.Position.String renders them), or without the
// position suffix when none was captured — mirrors
// internal/errors/stack_trace.go's StackFrame.String.
func (f FrameEntry) String() string {
	words := strings.Join(f.Frame, " ")
	if f.Pos == nil {
		return words
	}
	return fmt.Sprintf("%s [%s]", words, *f.Pos)
}

// Stack is an ordered error stack, innermost frame first.
type Stack []FrameEntry

// String joins every frame on its own line, innermost first.
func (s Stack) String() string {
	lines := make([]string, len(s))
	for i, f := range s {
		lines[i] = f.String()
	}
	return strings.Join(lines, "\n")
}

// Depth reports the number of captured frames.
func (s Stack) Depth() int { return len(s) }

// Prepend returns a new Stack with entry placed before the existing
// frames (entry becomes the new innermost frame).
func (s Stack) Prepend(entry FrameEntry) Stack {
	out := make(Stack, 0, len(s)+1)
	out = append(out, entry)
	out = append(out, s...)
	return out
}
