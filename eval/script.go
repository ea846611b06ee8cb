package eval

import (
	"context"

	"github.com/helena-lang/helena-go/ast"
	"github.com/helena-lang/helena-go/compiler"
	"github.com/helena-lang/helena-go/scope"
	"github.com/helena-lang/helena-go/value"
)

// ExecuteScript compiles script and runs it to completion (or first
// YIELD) in s. Deliberately a free function rather than a Scope method —
// scope.Scope has no business importing package eval, and eval already
// imports scope, so a Scope.ExecuteScript method would need the reverse
// import and cycle. This is the Go-idiomatic stand-in for what other
// hosts expose as Scope::execute_script (SPEC_FULL.md §6).
func ExecuteScript(s *scope.Scope, script *ast.Script) value.Result {
	proc := NewProcess(s, s.Compile(script), Options{CaptureErrorStack: s.Options().CaptureErrorStack})
	return proc.Run(context.Background())
}

// Prepare builds a Process for a single sentence invoking commandName
// with args, without going through the parser/compiler — the Go
// equivalent of the host-level `prepare("cmd")` entry point used to set
// up a yieldable call (spec §4.5's worked example).
func Prepare(s *scope.Scope, commandName string, args []value.Value, opts Options) *Process {
	consts := []value.Value{value.Str(commandName)}
	code := []compiler.Instr{
		{Op: compiler.OpenFrame, Operand: -1},
		{Op: compiler.PushConstant, Operand: 0},
	}
	for _, a := range args {
		idx := len(consts)
		consts = append(consts, a)
		code = append(code, compiler.Instr{Op: compiler.PushConstant, Operand: idx})
	}
	code = append(code,
		compiler.Instr{Op: compiler.CloseFrameAsList, Operand: -1},
		compiler.Instr{Op: compiler.EvaluateSentence, Operand: -1},
	)
	prog := &compiler.Program{Constants: consts, Code: code}
	return NewProcess(s, prog, opts)
}
