package scope

import (
	"testing"

	"github.com/helena-lang/helena-go/value"
)

func TestSetVariableDefinesLocally(t *testing.T) {
	s := NewRoot(DefaultOptions())
	if err := s.SetVariable("x", value.Int(1)); err != nil {
		t.Fatalf("SetVariable: %v", err)
	}
	v, ok := s.GetVariable("x")
	if !ok || v.(value.Int) != 1 {
		t.Fatalf("got %v, %v", v, ok)
	}
}

func TestChildDoesNotSeeParentVariable(t *testing.T) {
	root := NewRoot(DefaultOptions())
	root.SetVariable("x", value.Int(1))
	child := root.NewChild()
	if _, ok := child.GetVariable("x"); ok {
		t.Fatal("a child's variable table should start empty")
	}
	root.SetVariable("x", value.Int(2))
	v, ok := root.GetVariable("x")
	if !ok || v.(value.Int) != 2 {
		t.Fatalf("got %v, %v", v, ok)
	}
}

func TestConstantWriteOnce(t *testing.T) {
	s := NewRoot(DefaultOptions())
	if err := s.DefineConstant("pi", value.Float(3.14)); err != nil {
		t.Fatalf("DefineConstant: %v", err)
	}
	if err := s.DefineConstant("pi", value.Float(3.15)); err == nil {
		t.Fatal("expected redefining a constant to fail")
	}
	if err := s.SetVariable("pi", value.Float(3.15)); err == nil {
		t.Fatal("expected assigning to a constant to fail")
	}
}

func TestChildSeesParentCommandsOnly(t *testing.T) {
	root := NewRoot(DefaultOptions())
	called := false
	root.RegisterCommand("noop", CommandFunc(func(args []value.Value, s *Scope) value.Result {
		called = true
		return value.Ok(value.Nil{})
	}))

	child := root.NewChild()
	cmd, ok := child.ResolveCommand("noop")
	if !ok {
		t.Fatal("expected child to resolve a command registered on its parent")
	}
	cmd.Execute(nil, child)
	if !called {
		t.Fatal("expected the resolved command to actually run")
	}

	if child.HasLocalCommand("noop") {
		t.Fatal("ResolveCommand found it via the parent chain; it must not be local to child")
	}
	if !root.HasLocalCommand("noop") {
		t.Fatal("expected the command to remain local to root")
	}
}

func TestRegisterCommandRejectsDuplicate(t *testing.T) {
	s := NewRoot(DefaultOptions())
	noop := CommandFunc(func(args []value.Value, s *Scope) value.Result { return value.Ok(value.Nil{}) })
	if err := s.RegisterCommand("noop", noop); err != nil {
		t.Fatalf("RegisterCommand: %v", err)
	}
	if err := s.RegisterCommand("noop", noop); err == nil {
		t.Fatal("expected a duplicate registration to fail")
	}
}

func TestResolveCommandValueByNameAndByCommandValue(t *testing.T) {
	s := NewRoot(DefaultOptions())
	noop := CommandFunc(func(args []value.Value, s *Scope) value.Result { return value.Ok(value.Nil{}) })
	s.RegisterCommand("noop", noop)

	if _, name, ok := s.ResolveCommandValue(value.Str("noop")); !ok || name != "noop" {
		t.Fatalf("got %q, %v", name, ok)
	}
	if _, name, ok := s.ResolveCommandValue(value.CommandValue{Name: "noop"}); !ok || name != "noop" {
		t.Fatalf("got %q, %v", name, ok)
	}
	if _, _, ok := s.ResolveCommandValue(value.Int(1)); ok {
		t.Fatal("expected an Int to not resolve as a command")
	}
}
