package eval

import (
	"context"
	"fmt"
	"strings"

	"github.com/helena-lang/helena-go/compiler"
	"github.com/helena-lang/helena-go/herrors"
	"github.com/helena-lang/helena-go/scope"
	"github.com/helena-lang/helena-go/token"
	"github.com/helena-lang/helena-go/value"
)

// Process is a suspendable, resumable execution of a compiled Program
// against a Scope (spec §4.5, §6, §9). Its Run method is a trampoline:
// it never recurses on the Go call stack per interpreted frame, however
// deep the Helena-level call chain runs — user-level recursion grows
// ExecutionStack, not goroutine stack.
type Process struct {
	stack ExecutionStack
	opts  Options

	suspended   bool
	resumeValue value.Value

	done        bool
	finalResult value.Result

	steps int
}

// NewProcess creates a Process ready to run p in s from the start.
func NewProcess(s *scope.Scope, p *compiler.Program, opts Options) *Process {
	return &Process{
		stack: ExecutionStack{{Scope: s, Program: p, State: &ProcessState{}}},
		opts:  opts,
	}
}

// YieldBack stages v as the value a suspended frame receives when Run is
// next called (spec §4.5: "yield_back(value) stages a value that
// replaces the next sub-result consumed by the suspended frame"). Calling
// it when the Process isn't suspended on a YIELD has no effect until it
// next suspends.
func (p *Process) YieldBack(v value.Value) {
	p.resumeValue = v
}

// Run executes (or resumes) p until its Program completes, or it emits a
// YIELD, or ctx is canceled. A Process that has already completed keeps
// returning its final Result.
func (p *Process) Run(ctx context.Context) value.Result {
	if p.done {
		return p.finalResult
	}
	if p.suspended {
		freeze, out := p.resume()
		if result, stop := p.land(freeze, out); stop {
			return result
		}
	}
	return p.loop(ctx)
}

func (p *Process) resume() (freeze bool, out value.Result) {
	top := p.stack.top()
	rv := p.resumeValue
	if rv == nil {
		rv = value.Nil{}
	}
	p.resumeValue = nil
	p.suspended = false

	if top.yieldCmd != nil {
		cmd := top.yieldCmd
		top.yieldCmd = nil
		result := cmd.Resume(value.Ok(rv), top.Scope)
		if p.opts.CaptureErrorStack && result.Code == value.ERROR {
			entry := herrors.FrameEntry{Frame: []string{"<resume>"}}
			if top.Scope.Options().CapturePositions {
				entry.Pos = top.callPos
			}
			result = result.WithStack(entry)
		}
		return p.settleEvalResult(result, top.callFrame, top.callPos)
	}

	top.State.push(rv)
	top.State.Last = value.Ok(rv)
	return false, value.Result{}
}

// land folds a (freeze, result) pair from a bubble/settle call into the
// caller's control flow: it marks the Process done once the
// ExecutionStack empties, and reports whether Run/loop should return out
// now.
func (p *Process) land(freeze bool, out value.Result) (value.Result, bool) {
	if !freeze {
		return value.Result{}, false
	}
	if len(p.stack) == 0 {
		p.done = true
		p.finalResult = out
	}
	return out, true
}

func (p *Process) loop(ctx context.Context) value.Result {
	for {
		select {
		case <-ctx.Done():
			return value.Err("evaluation canceled: " + ctx.Err().Error())
		default:
		}

		if len(p.stack) == 0 {
			p.done = true
			p.finalResult = value.Ok(value.Nil{})
			return p.finalResult
		}

		if p.opts.StepLimit > 0 {
			p.steps++
			if p.steps > p.opts.StepLimit {
				return value.Err("step limit exceeded")
			}
		}

		top := p.stack.top()
		if top.State.IP >= len(top.Program.Code) {
			freeze, out := p.bubble(value.Ok(top.State.peekOrNil()))
			if result, stop := p.land(freeze, out); stop {
				return result
			}
			continue
		}

		instr := top.Program.Code[top.State.IP]
		top.State.IP++

		switch instr.Op {
		case compiler.PushConstant:
			top.State.push(top.Program.Constants[instr.Operand])

		case compiler.PushNil:
			top.State.push(value.Nil{})

		case compiler.OpenFrame:
			top.State.mark()

		case compiler.CloseFrameAsList:
			top.State.push(value.List(top.State.closeFrame()))

		case compiler.CloseFrameAsTuple:
			top.State.push(value.Tuple(top.State.closeFrame()))

		case compiler.CloseFrameAsString, compiler.JoinStrings:
			elems := top.State.closeFrame()
			s, err := joinAsString(elems)
			if err != nil {
				freeze, out := p.fail(err, instr.Pos)
				if result, stop := p.land(freeze, out); stop {
					return result
				}
				continue
			}
			top.State.push(value.Str(s))

		case compiler.SelectIndex:
			idx := top.State.pop()
			src := top.State.pop()
			res, err := value.ApplySelector(src, value.IndexSelector{Index: idx})
			if err != nil {
				freeze, out := p.fail(err, instr.Pos)
				if result, stop := p.land(freeze, out); stop {
					return result
				}
				continue
			}
			top.State.push(res)

		case compiler.SelectKeys:
			keysV := top.State.pop()
			src := top.State.pop()
			keys, _ := keysV.(value.Tuple)
			res, err := value.ApplySelector(src, value.KeySelector{Keys: keys})
			if err != nil {
				freeze, out := p.fail(err, instr.Pos)
				if result, stop := p.land(freeze, out); stop {
					return result
				}
				continue
			}
			top.State.push(res)

		case compiler.SelectRules:
			rulesV := top.State.pop()
			src := top.State.pop()
			rules, _ := rulesV.(value.Tuple)
			res, err := value.ApplySelector(src, value.RulesSelector{Rules: []value.Value(rules)})
			if err != nil {
				freeze, out := p.fail(err, instr.Pos)
				if result, stop := p.land(freeze, out); stop {
					return result
				}
				continue
			}
			top.State.push(res)

		case compiler.EvaluateSentence:
			frame := top.State.pop()
			args, _ := frame.(value.List)
			result := p.evaluateSentence(top, []value.Value(args), instr.Pos)
			freeze, out := p.settleEvalResult(result, stringifyArgs(args), instr.Pos)
			if result, stop := p.land(freeze, out); stop {
				return result
			}

		case compiler.SubstituteResult:
			// Identity at the operand-stack level: SUBSTITUTE_RESULT marks
			// the point where a resolved source/selector chain becomes the
			// word's value, kept as a distinct opcode (rather than folded
			// away) so EXPAND_VALUE has a fixed instruction to follow.

		case compiler.ExpandValue:
			v := top.State.pop()
			switch vv := v.(type) {
			case value.List:
				for _, e := range vv {
					top.State.push(e)
				}
			case value.Tuple:
				for _, e := range vv {
					top.State.push(e)
				}
			default:
				top.State.push(v)
			}

		case compiler.MakeScript:
			top.State.push(top.Program.Constants[instr.Operand])

		case compiler.ResolveValue:
			name, _ := top.Program.Constants[instr.Operand].(value.Str)
			v, ok := top.Scope.GetVariable(string(name))
			if !ok {
				freeze, out := p.fail(fmt.Errorf("unknown variable %q", string(name)), instr.Pos)
				if result, stop := p.land(freeze, out); stop {
					return result
				}
				continue
			}
			top.State.push(v)

		default:
			top.State.push(value.Nil{})
		}
	}
}

// evaluateSentence resolves args[0] as a command (expanding a leading
// Tuple in place first, per spec §3/§8 property 5) and executes it with
// the remaining args, capturing an error-stack frame if the scope opted
// in (spec §7). pos is the sentence's source position, attached to that
// frame only when the scope also has capture_positions set (spec §4.5).
func (p *Process) evaluateSentence(top *ProcessContext, args []value.Value, pos *token.Position) value.Result {
	for len(args) > 0 {
		t, ok := args[0].(value.Tuple)
		if !ok {
			break
		}
		args = append(append([]value.Value{}, []value.Value(t)...), args[1:]...)
	}
	if len(args) == 0 {
		return value.Ok(value.Nil{})
	}

	cmd, name, ok := top.Scope.ResolveCommandValue(args[0])
	if !ok {
		if name == "" {
			name, _ = value.AsString(args[0])
		}
		return value.Err(fmt.Sprintf("unknown command %q", name))
	}

	top.yieldCmd = nil
	if rc, ok := cmd.(scope.ResumableCommand); ok {
		top.yieldCmd = rc
	}

	result := cmd.Execute(args[1:], top.Scope)
	if p.opts.CaptureErrorStack && result.Code == value.ERROR {
		entry := herrors.FrameEntry{Frame: stringifyArgs(args)}
		if top.Scope.Options().CapturePositions {
			entry.Pos = pos
		}
		result = result.WithStack(entry)
	}
	return result
}

// settleEvalResult interprets the Result of a command's Execute (or
// Resume): a pushed/tailcall Continuation, a YIELD freeze, an OK value,
// or a propagating code that must bubble out of the current context
// (spec §4.5). callFrame/callPos are the string-coerced sentence and its
// source position that produced result, recorded on a freshly pushed
// context so bubble can attribute a stack entry (and, with
// capture_positions, a position) to this call site even if the error
// itself originates deeper inside the pushed Continuation's Program.
func (p *Process) settleEvalResult(result value.Result, callFrame []string, callPos *token.Position) (freeze bool, out value.Result) {
	top := p.stack.top()

	if cont, ok := result.Data.(*Continuation); ok {
		top.yieldCmd = nil
		if result.Code == value.RETURN {
			cb := cont.Callback
			if cb == nil {
				cb = top.Callback
			}
			top.Scope = cont.Scope
			top.Program = cont.Program
			top.State = &ProcessState{}
			top.Callback = cb
			return false, value.Result{}
		}
		newCtx := &ProcessContext{Scope: cont.Scope, Program: cont.Program, State: &ProcessState{}, Callback: cont.Callback, callFrame: callFrame, callPos: callPos}
		p.stack.push(newCtx)
		return false, value.Result{}
	}

	switch result.Code {
	case value.YIELD:
		p.suspended = true
		return true, result
	case value.OK:
		top.yieldCmd = nil
		top.State.push(result.Value)
		top.State.Last = result
		return false, value.Result{}
	default:
		top.yieldCmd = nil
		return p.bubble(result)
	}
}

// bubble finishes the current top context with result: it applies that
// context's own Callback first (regardless of code — a nil Callback is
// the identity), pops it, and either hands an OK value to the new top
// context or, if the transformed result is still non-OK, treats the new
// top as finishing too and repeats — so a RETURN/ERROR/BREAK/CONTINUE
// keeps bubbling until some ancestor's Callback converts it to OK, a
// YIELD freezes the process, or the ExecutionStack empties (spec §4.5:
// "bypass callback at intermediate frames and propagate upward until a
// frame explicitly handles the code" — "intermediate" frames are simply
// the ones whose Callback is the identity for that code).
func (p *Process) bubble(result value.Result) (freeze bool, out value.Result) {
	for {
		finishing := p.stack.top()
		if finishing.Callback != nil {
			result = finishing.Callback(result)
		}
		if result.Code == value.ERROR && p.opts.CaptureErrorStack && finishing.callFrame != nil {
			// Appended, not WithStack's Prepend: the existing stack already
			// has the innermost frame(s) first, and finishing's call site is
			// one level further out than all of them, so its entry belongs
			// at the end, preserving innermost-first order as the error
			// bubbles outward one context at a time.
			entry := herrors.FrameEntry{Frame: finishing.callFrame}
			if finishing.Scope.Options().CapturePositions {
				entry.Pos = finishing.callPos
			}
			existing := result.ErrorStack()
			grown := make(herrors.Stack, len(existing)+1)
			copy(grown, existing)
			grown[len(existing)] = entry
			result.Data = grown
		}
		p.stack.pop()
		if len(p.stack) == 0 {
			return true, result
		}
		switch result.Code {
		case value.OK:
			parent := p.stack.top()
			parent.State.push(result.Value)
			parent.State.Last = result
			return false, value.Result{}
		case value.YIELD:
			p.suspended = true
			return true, result
		}
	}
}

// fail turns a Go error from an opcode handler into a bubbling ERROR
// Result, attaching pos to its error-stack entry when the current
// context's scope has capture_positions set (spec §4.5, §7).
func (p *Process) fail(err error, pos *token.Position) (freeze bool, out value.Result) {
	res := value.Err(err.Error())
	if p.opts.CaptureErrorStack {
		entry := herrors.FrameEntry{Frame: []string{err.Error()}}
		if p.stack.top().Scope.Options().CapturePositions {
			entry.Pos = pos
		}
		res = res.WithStack(entry)
	}
	return p.bubble(res)
}

func joinAsString(elems []value.Value) (string, error) {
	parts := make([]string, len(elems))
	for i, v := range elems {
		s, err := value.AsString(v)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ""), nil
}

func stringifyArgs(args []value.Value) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if s, err := value.AsString(a); err == nil {
			out[i] = s
		} else {
			out[i] = "<" + a.TypeName() + ">"
		}
	}
	return out
}
