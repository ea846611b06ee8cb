package scope

import (
	"fmt"

	"github.com/helena-lang/helena-go/ast"
	"github.com/helena-lang/helena-go/compiler"
	"github.com/helena-lang/helena-go/value"
)

// Scope owns a mutable variable table, a write-once constant table, and
// a command table, with an optional parent for lookup (spec §3). A child
// scope never mutates its parent's tables (spec §9 design note); it reads
// through the parent pointer to resolve commands and to refuse assignment
// to a constant defined further up.
type Scope struct {
	parent    *Scope
	variables map[string]value.Value
	constants map[string]value.Value
	commands  map[string]Command
	opts      Options
}

// NewRoot creates a root-level Scope with no parent.
func NewRoot(opts Options) *Scope {
	return &Scope{
		variables: make(map[string]value.Value),
		constants: make(map[string]value.Value),
		commands:  make(map[string]Command),
		opts:      opts,
	}
}

// NewChild creates a child Scope that inherits opts from its parent.
// Per spec §3's invariant, the child's variable/constant tables start
// empty — the parent's variables are not visible unless re-exported —
// but the child resolves commands through the parent chain (spec §3:
// "the new scope sees its parent's commands only").
func (s *Scope) NewChild() *Scope {
	return s.fork()
}

// Fork is the internal primitive NewChild composes with (see
// SPEC_FULL.md §7): a bare child scope with no exported state,
// generalizing the teacher's NewEnclosedEnvironment to also chain
// command lookup by reference.
func (s *Scope) Fork() *Scope {
	return s.fork()
}

func (s *Scope) fork() *Scope {
	return &Scope{
		parent:    s,
		variables: make(map[string]value.Value),
		constants: make(map[string]value.Value),
		commands:  make(map[string]Command),
		opts:      s.opts,
	}
}

// Options returns the Scope's effective configuration.
func (s *Scope) Options() Options { return s.opts }

// GetVariable resolves name in s's own tables, checking constants too
// (constants and variables share one namespace: a name is either, never
// both). A parent's variables and constants are not visible.
func (s *Scope) GetVariable(name string) (value.Value, bool) {
	if v, ok := s.variables[name]; ok {
		return v, true
	}
	if v, ok := s.constants[name]; ok {
		return v, true
	}
	return nil, false
}

// SetVariable assigns name in s's own variable table, never a parent's.
// Fails if name is a constant anywhere in the chain (spec §3: "Constants
// are write-once").
func (s *Scope) SetVariable(name string, v value.Value) error {
	if owner := s.findConstantOwner(name); owner != nil {
		return fmt.Errorf("cannot assign to constant %q", name)
	}
	s.variables[name] = v
	return nil
}

func (s *Scope) findVariableOwner(name string) *Scope {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.variables[name]; ok {
			return cur
		}
	}
	return nil
}

func (s *Scope) findConstantOwner(name string) *Scope {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.constants[name]; ok {
			return cur
		}
	}
	return nil
}

// DefineConstant creates a write-once constant in the local scope. Fails
// with an error if name is already a constant anywhere up the chain, or
// already a local variable.
func (s *Scope) DefineConstant(name string, v value.Value) error {
	if owner := s.findConstantOwner(name); owner != nil {
		return fmt.Errorf("cannot redefine constant %q", name)
	}
	if _, ok := s.variables[name]; ok {
		return fmt.Errorf("cannot define constant %q: already a variable", name)
	}
	s.constants[name] = v
	return nil
}

// RegisterCommand installs a named command in the local scope, failing
// if one by that name already exists locally.
func (s *Scope) RegisterCommand(name string, cmd Command) error {
	if _, ok := s.commands[name]; ok {
		return fmt.Errorf("command %q already registered", name)
	}
	s.commands[name] = cmd
	return nil
}

// RegisterNamedCommand installs or overwrites a named command in the
// local scope (used by commands that redefine themselves, e.g. `macro`
// rebinding a name).
func (s *Scope) RegisterNamedCommand(name string, cmd Command) {
	s.commands[name] = cmd
}

// HasLocalCommand reports whether name is registered directly on s
// (ignoring the parent chain).
func (s *Scope) HasLocalCommand(name string) bool {
	_, ok := s.commands[name]
	return ok
}

// GetLocalCommands returns the names registered directly on s.
func (s *Scope) GetLocalCommands() []string {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	return names
}

// ResolveCommand looks up name up the parent chain (spec §3: "the new
// scope sees its parent's commands only" — a child never registers into
// the parent, but reads through it).
func (s *Scope) ResolveCommand(name string) (Command, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cmd, ok := cur.commands[name]; ok {
			return cmd, true
		}
	}
	return nil, false
}

// ResolveCommandValue resolves a Value naming a command: either an
// already-resolved value.CommandValue, or a Str used as a command name.
func (s *Scope) ResolveCommandValue(v value.Value) (Command, string, bool) {
	switch cv := v.(type) {
	case value.CommandValue:
		cmd, ok := s.ResolveCommand(cv.Name)
		return cmd, cv.Name, ok
	case value.Str:
		cmd, ok := s.ResolveCommand(string(cv))
		return cmd, string(cv), ok
	default:
		return nil, "", false
	}
}

// Compile compiles script into a Program (spec §3, §4.4). Stateless with
// respect to Scope today, but kept as a method (rather than a bare
// compiler.Compile call at use sites) so a future per-scope compilation
// cache or capture_positions-driven instrumentation has a natural home,
// matching the spec's "Owns a Compiler" phrasing.
func (s *Scope) Compile(script *ast.Script) *compiler.Program {
	return compiler.Compile(script)
}
