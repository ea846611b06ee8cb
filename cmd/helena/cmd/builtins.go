package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/helena-lang/helena-go/eval"
	"github.com/helena-lang/helena-go/scope"
	"github.com/helena-lang/helena-go/value"
)

// registerDemoCommands installs a minimal command set on s so that
// `helena run` can evaluate the worked examples in spec §6 directly.
// These are the standard dialect's surface commands (set/let/proc/macro,
// etc.) — explicitly core Non-goals (spec §1) — implemented here as
// exactly the kind of external collaborator the Command/Scope interface
// exists for. Grounded on eval/evaluator_test.go's procCommand/idemCommand
// test helpers, generalized from fixed test bodies to real command
// arguments.
func registerDemoCommands(s *scope.Scope, out io.Writer) {
	s.RegisterCommand("idem", scope.CommandFunc(cmdIdem))
	s.RegisterCommand("puts", scope.CommandFunc(cmdPuts(out)))
	s.RegisterCommand("let", scope.CommandFunc(cmdLet))
	s.RegisterCommand("set", scope.CommandFunc(cmdSet))
	s.RegisterCommand("error", scope.CommandFunc(cmdError))
	s.RegisterCommand("yield", scope.CommandFunc(cmdYield))
	s.RegisterCommand("proc", scope.CommandFunc(cmdProc))
	s.RegisterCommand("macro", scope.CommandFunc(cmdMacro))
}

func cmdIdem(args []value.Value, s *scope.Scope) value.Result {
	if len(args) == 0 {
		return value.Ok(value.Nil{})
	}
	return value.Ok(args[0])
}

func cmdPuts(out io.Writer) func([]value.Value, *scope.Scope) value.Result {
	return func(args []value.Value, s *scope.Scope) value.Result {
		parts := make([]string, len(args))
		for i, a := range args {
			str, err := value.AsString(a)
			if err != nil {
				return value.Err(err.Error())
			}
			parts[i] = str
		}
		fmt.Fprintln(out, strings.Join(parts, " "))
		return value.Ok(value.Nil{})
	}
}

// cmdLet defines a write-once constant: `let name value`.
func cmdLet(args []value.Value, s *scope.Scope) value.Result {
	if len(args) != 2 {
		return value.Err("let: expected name and value")
	}
	name, err := value.AsString(args[0])
	if err != nil {
		return value.Err(err.Error())
	}
	if err := s.DefineConstant(name, args[1]); err != nil {
		return value.Err(err.Error())
	}
	return value.Ok(args[1])
}

// cmdSet assigns a variable: `set name value`. Fails against a name
// already bound as a constant (spec §8 property 8).
func cmdSet(args []value.Value, s *scope.Scope) value.Result {
	if len(args) != 2 {
		return value.Err("set: expected name and value")
	}
	name, err := value.AsString(args[0])
	if err != nil {
		return value.Err(err.Error())
	}
	if err := s.SetVariable(name, args[1]); err != nil {
		return value.Err(err.Error())
	}
	return value.Ok(args[1])
}

func cmdError(args []value.Value, s *scope.Scope) value.Result {
	if len(args) == 0 {
		return value.Err("error")
	}
	msg, err := value.AsString(args[0])
	if err != nil {
		return value.Err(err.Error())
	}
	return value.Err(msg)
}

func cmdYield(args []value.Value, s *scope.Scope) value.Result {
	if len(args) == 0 {
		return value.Yield(value.Nil{})
	}
	return value.Yield(args[0])
}

// cmdProc defines `name {params} {body}` as a new command on the calling
// scope, handing the RETURN result code to OK and BREAK/CONTINUE to
// ERROR, per spec §5's worked example for `proc`.
func cmdProc(args []value.Value, s *scope.Scope) value.Result {
	return defineProcLike(args, s, func(r value.Result) value.Result {
		switch r.Code {
		case value.RETURN:
			return value.Ok(r.Value)
		case value.BREAK, value.CONTINUE:
			return value.Err(fmt.Sprintf("%s outside a loop", value.CodeName(r.Code)))
		default:
			return r
		}
	})
}

// cmdMacro defines `name {params} {body}` the same way as proc, but
// lets RETURN/BREAK/CONTINUE propagate past it unchanged (nil callback
// is the identity transform in eval.Process.bubble).
func cmdMacro(args []value.Value, s *scope.Scope) value.Result {
	return defineProcLike(args, s, nil)
}

func defineProcLike(args []value.Value, defScope *scope.Scope, callback eval.Callback) value.Result {
	if len(args) != 3 {
		return value.Err("expected name, params, and body")
	}
	name, err := value.AsString(args[0])
	if err != nil {
		return value.Err(err.Error())
	}
	var params []value.Value
	switch pv := args[1].(type) {
	case value.Tuple:
		params = pv
	case value.ScriptValue:
		for _, f := range strings.Fields(pv.RawText) {
			params = append(params, value.Str(f))
		}
	}
	body, ok := args[2].(value.ScriptValue)
	if !ok {
		return value.Err("body must be a block")
	}

	defScope.RegisterNamedCommand(name, scope.CommandFunc(func(callArgs []value.Value, caller *scope.Scope) value.Result {
		child := defScope.NewChild()
		for i, p := range params {
			pname, err := value.AsString(p)
			if err != nil {
				return value.Err(err.Error())
			}
			var v value.Value = value.Nil{}
			if i < len(callArgs) {
				v = callArgs[i]
			}
			child.SetVariable(pname, v)
		}
		return value.Result{
			Code: value.OK,
			Data: &eval.Continuation{
				Scope:    child,
				Program:  child.Compile(body.Script),
				Callback: callback,
			},
		}
	}))
	return value.Ok(value.Nil{})
}
