package eval

import (
	"context"
	"testing"

	"github.com/helena-lang/helena-go/ast"
	"github.com/helena-lang/helena-go/scope"
	"github.com/helena-lang/helena-go/token"
	"github.com/helena-lang/helena-go/value"
)

func idemCommand() scope.Command {
	return scope.CommandFunc(func(args []value.Value, s *scope.Scope) value.Result {
		if len(args) == 0 {
			return value.Ok(value.Nil{})
		}
		return value.Ok(args[0])
	})
}

func rootScript(sentences ...ast.Sentence) *ast.Script {
	return &ast.Script{Sentences: sentences}
}

func literalWord(text string) ast.Word {
	return ast.Word{Type: ast.Root, Morphemes: []ast.Morpheme{ast.Literal{Text: text}}}
}

func TestExecuteScriptIdem(t *testing.T) {
	s := scope.NewRoot(scope.DefaultOptions())
	if err := s.RegisterCommand("idem", idemCommand()); err != nil {
		t.Fatal(err)
	}
	script := rootScript(ast.Sentence{Words: []ast.Word{literalWord("idem"), literalWord("hello")}})

	result := ExecuteScript(s, script)
	if !result.IsOk() {
		t.Fatalf("expected OK, got %v", result.Code)
	}
	str, ok := result.Value.(value.Str)
	if !ok || string(str) != "hello" {
		t.Fatalf("expected \"hello\", got %#v", result.Value)
	}
}

func TestExecuteScriptUnknownCommand(t *testing.T) {
	s := scope.NewRoot(scope.DefaultOptions())
	script := rootScript(ast.Sentence{Words: []ast.Word{literalWord("nope")}})

	result := ExecuteScript(s, script)
	if result.Code != value.ERROR {
		t.Fatalf("expected ERROR, got %v", result.Code)
	}
}

func TestEvaluateSentenceExpandsLeadingTuple(t *testing.T) {
	s := scope.NewRoot(scope.DefaultOptions())
	var captured []value.Value
	s.RegisterCommand("capture", scope.CommandFunc(func(args []value.Value, s *scope.Scope) value.Result {
		captured = args
		return value.Ok(value.Nil{})
	}))

	// Sentence is (capture a b) c — the leading word evaluates to a
	// Tuple, whose elements become the leading words of the sentence
	// (spec §3/§8 property 5).
	tuple := ast.Tuple{Subscript: rootScript(ast.Sentence{Words: []ast.Word{
		literalWord("capture"), literalWord("a"), literalWord("b"),
	}})}
	script := rootScript(ast.Sentence{Words: []ast.Word{
		{Type: ast.Root, Morphemes: []ast.Morpheme{tuple}},
		literalWord("c"),
	}})

	result := ExecuteScript(s, script)
	if !result.IsOk() {
		t.Fatalf("expected OK, got %v: %v", result.Code, result.Value)
	}
	if len(captured) != 3 {
		t.Fatalf("expected 3 args after expansion, got %d: %v", len(captured), captured)
	}
	if string(captured[0].(value.Str)) != "a" || string(captured[1].(value.Str)) != "b" || string(captured[2].(value.Str)) != "c" {
		t.Fatalf("unexpected expanded args: %v", captured)
	}
}

// proc simulates a command that pushes a Continuation and installs a
// Callback converting RETURN to OK, the way a real `proc`/`macro`
// command would (spec §4.5).
func procCommand(s *scope.Scope, body *ast.Script) scope.Command {
	return scope.CommandFunc(func(args []value.Value, caller *scope.Scope) value.Result {
		child := s.NewChild()
		return value.Result{
			Code: value.OK,
			Data: &Continuation{
				Scope:   child,
				Program: child.Compile(body),
				Callback: func(r value.Result) value.Result {
					if r.Code == value.RETURN {
						return value.Ok(r.Value)
					}
					return r
				},
			},
		}
	})
}

func TestContinuationPushAndReturnCallback(t *testing.T) {
	root := scope.NewRoot(scope.DefaultOptions())
	root.RegisterCommand("idem", idemCommand())
	root.RegisterCommand("return", scope.CommandFunc(func(args []value.Value, s *scope.Scope) value.Result {
		if len(args) == 0 {
			return value.Return(value.Nil{})
		}
		return value.Return(args[0])
	}))

	body := rootScript(ast.Sentence{Words: []ast.Word{literalWord("return"), literalWord("42")}})
	root.RegisterCommand("call", procCommand(root, body))

	script := rootScript(ast.Sentence{Words: []ast.Word{literalWord("call")}})
	result := ExecuteScript(root, script)
	if !result.IsOk() {
		t.Fatalf("expected OK (callback should convert RETURN), got %v", result.Code)
	}
	if string(result.Value.(value.Str)) != "42" {
		t.Fatalf("expected \"42\", got %#v", result.Value)
	}
}

func TestYieldSuspendsAndResumes(t *testing.T) {
	s := scope.NewRoot(scope.DefaultOptions())
	s.RegisterCommand("yield", scope.CommandFunc(func(args []value.Value, s *scope.Scope) value.Result {
		if len(args) == 0 {
			return value.Yield(value.Nil{})
		}
		return value.Yield(args[0])
	}))
	s.RegisterCommand("idem", idemCommand())

	script := rootScript(
		ast.Sentence{Words: []ast.Word{literalWord("yield"), literalWord("val1")}},
		ast.Sentence{Words: []ast.Word{literalWord("idem"), literalWord("val2")}},
	)

	proc := NewProcess(s, s.Compile(script), Options{})
	first := proc.Run(context.Background())
	if first.Code != value.YIELD {
		t.Fatalf("expected YIELD, got %v", first.Code)
	}
	if string(first.Value.(value.Str)) != "val1" {
		t.Fatalf("expected yielded \"val1\", got %#v", first.Value)
	}

	second := proc.Run(context.Background())
	if !second.IsOk() {
		t.Fatalf("expected OK after resume, got %v", second.Code)
	}
	if string(second.Value.(value.Str)) != "val2" {
		t.Fatalf("expected \"val2\", got %#v", second.Value)
	}
}

func TestPrepareAndRun(t *testing.T) {
	s := scope.NewRoot(scope.DefaultOptions())
	s.RegisterCommand("idem", idemCommand())

	proc := Prepare(s, "idem", []value.Value{value.Str("hi")}, Options{})
	result := proc.Run(context.Background())
	if !result.IsOk() || string(result.Value.(value.Str)) != "hi" {
		t.Fatalf("expected OK \"hi\", got %v %#v", result.Code, result.Value)
	}
}

func TestErrorStackCapture(t *testing.T) {
	s := scope.NewRoot(scope.Options{CaptureErrorStack: true})
	s.RegisterCommand("fail", scope.CommandFunc(func(args []value.Value, s *scope.Scope) value.Result {
		return value.Err("boom")
	}))

	script := rootScript(ast.Sentence{Words: []ast.Word{literalWord("fail")}})
	proc := NewProcess(s, s.Compile(script), Options{CaptureErrorStack: true})
	result := proc.Run(context.Background())

	if result.Code != value.ERROR {
		t.Fatalf("expected ERROR, got %v", result.Code)
	}
	if result.ErrorStack().Depth() == 0 {
		t.Fatalf("expected a captured error stack frame")
	}
}

// TestErrorStackCapturesPositionWhenEnabled exercises spec.md §4.5's
// "when capture_positions is also set" clause: the captured frame must
// carry the failing sentence's source position, not just its words.
func TestErrorStackCapturesPositionWhenEnabled(t *testing.T) {
	s := scope.NewRoot(scope.Options{CaptureErrorStack: true, CapturePositions: true})
	s.RegisterCommand("fail", scope.CommandFunc(func(args []value.Value, s *scope.Scope) value.Result {
		return value.Err("boom")
	}))

	pos := &token.Position{Line: 2, Column: 4}
	script := rootScript(ast.Sentence{Words: []ast.Word{literalWord("fail")}, Pos: pos})
	proc := NewProcess(s, s.Compile(script), Options{CaptureErrorStack: true})
	result := proc.Run(context.Background())

	stack := result.ErrorStack()
	if stack.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", stack.Depth())
	}
	if stack[0].Pos == nil || *stack[0].Pos != *pos {
		t.Fatalf("expected captured frame to carry %v, got %+v", pos, stack[0])
	}
}

// TestErrorStackOmitsPositionWhenCapturePositionsIsOff confirms the
// position suffix stays nil when only capture_error_stack is set —
// capture_positions gates it independently (spec.md §4.5).
func TestErrorStackOmitsPositionWhenCapturePositionsIsOff(t *testing.T) {
	s := scope.NewRoot(scope.Options{CaptureErrorStack: true})
	s.RegisterCommand("fail", scope.CommandFunc(func(args []value.Value, s *scope.Scope) value.Result {
		return value.Err("boom")
	}))

	pos := &token.Position{Line: 2, Column: 4}
	script := rootScript(ast.Sentence{Words: []ast.Word{literalWord("fail")}, Pos: pos})
	proc := NewProcess(s, s.Compile(script), Options{CaptureErrorStack: true})
	result := proc.Run(context.Background())

	stack := result.ErrorStack()
	if stack.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", stack.Depth())
	}
	if stack[0].Pos != nil {
		t.Fatalf("expected no position without capture_positions, got %v", stack[0].Pos)
	}
}
