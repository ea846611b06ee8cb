package value

import "github.com/helena-lang/helena-go/herrors"

// Code is the uniform result-code vocabulary shared by every command and
// by the evaluator (spec §3, §6).
type Code int

const (
	OK Code = iota
	RETURN
	YIELD
	ERROR
	BREAK
	CONTINUE
	// Custom codes start here; a command may return Code(CustomBase + n)
	// for its own CUSTOM(n) vocabulary (spec §3).
	CustomBase
)

var codeNames = map[Code]string{
	OK:       "OK",
	RETURN:   "RETURN",
	YIELD:    "YIELD",
	ERROR:    "ERROR",
	BREAK:    "BREAK",
	CONTINUE: "CONTINUE",
}

// CodeName is the conventional result_code_name() mapping from spec §6.
func CodeName(c Code) string {
	if c >= CustomBase {
		return "CUSTOM"
	}
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// Result is the uniform outcome record returned by every command and by
// the evaluator (spec §3). Data holds a herrors.Stack on ERROR when stack
// capture is enabled, or a continuation-state marker from package eval;
// never both at once.
type Result struct {
	Code  Code
	Value Value
	Data  any
}

// Ok builds an OK result.
func Ok(v Value) Result { return Result{Code: OK, Value: v} }

// Return builds a RETURN result.
func Return(v Value) Result { return Result{Code: RETURN, Value: v} }

// Yield builds a YIELD result.
func Yield(v Value) Result { return Result{Code: YIELD, Value: v} }

// Err builds an ERROR result carrying a plain string message Value.
func Err(message string) Result { return Result{Code: ERROR, Value: Str(message)} }

// Break builds a BREAK result.
func Break() Result { return Result{Code: BREAK, Value: Nil{}} }

// Continue builds a CONTINUE result.
func Continue() Result { return Result{Code: CONTINUE, Value: Nil{}} }

// IsOk reports whether r completed normally.
func (r Result) IsOk() bool { return r.Code == OK }

// IsError reports whether r is an ERROR result.
func (r Result) IsError() bool { return r.Code == ERROR }

// ErrorStack returns r's captured herrors.Stack, or nil if none was
// captured (capture_error_stack was off, or r isn't an ERROR).
func (r Result) ErrorStack() herrors.Stack {
	if s, ok := r.Data.(herrors.Stack); ok {
		return s
	}
	return nil
}

// WithStack returns a copy of r with entry prepended to its captured
// error stack (innermost frame first), used with capture_error_stack on
// where an ERROR is first produced (a failing command, opcode or resume).
func (r Result) WithStack(entry herrors.FrameEntry) Result {
	r.Data = r.ErrorStack().Prepend(entry)
	return r
}
