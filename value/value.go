// Package value implements the Value tagged-variant runtime universe
// (spec §3) and the Result record every layer shares (spec §3, §7).
package value

import "fmt"

// Value is the runtime universe. Like ast.Morpheme, it is a sealed
// interface: value() is unexported so only this package's variants
// satisfy it, with Custom as the one open extension point for
// host-defined types (spec §9).
type Value interface {
	value()
	// TypeName is a stable lowercase name used in error messages
	// ("invalid number \"X\"", etc.) and equality dispatch.
	TypeName() string
}

// StringCoercible is implemented by variants whose AsString never fails
// structurally (it may still fail for Nil, which advertises no
// capability at all).
type StringCoercible interface {
	Value
	AsString() (string, error)
}

// Indexable is implemented by List, Tuple, and Str (select by integer
// position).
type Indexable interface {
	Value
	SelectIndex(index Value) (Value, error)
}

// Keyable is implemented by Dict (select by any string-coercible key).
type Keyable interface {
	Value
	SelectKey(key Value) (Value, error)
}

// RulesSelectable is the capability a rules selector requires. No value
// type in this package implements it, Custom included, so applying a
// RulesSelector to any built-in value fails.
type RulesSelectable interface {
	Value
	SelectRules(rules []Value) (Value, error)
}

// Nil is the absence of a value.
type Nil struct{}

func (Nil) value()            {}
func (Nil) TypeName() string  { return "nil" }

// Bool is a boolean.
type Bool bool

func (Bool) value()           {}
func (Bool) TypeName() string { return "boolean" }
func (b Bool) AsString() (string, error) {
	if b {
		return "true", nil
	}
	return "false", nil
}

// Int is an integer.
type Int int64

func (Int) value()           {}
func (Int) TypeName() string { return "integer" }
func (i Int) AsString() (string, error) { return fmt.Sprintf("%d", int64(i)), nil }

// Float is a floating-point number.
type Float float64

func (Float) value()           {}
func (Float) TypeName() string { return "number" }
func (f Float) AsString() (string, error) { return fmt.Sprintf("%g", float64(f)), nil }

// Str is a string.
type Str string

func (Str) value()           {}
func (Str) TypeName() string { return "string" }
func (s Str) AsString() (string, error) { return string(s), nil }

func (s Str) SelectIndex(index Value) (Value, error) {
	i, err := requireIndex(index)
	if err != nil {
		return nil, err
	}
	runes := []rune(string(s))
	if i < 0 || i >= len(runes) {
		return nil, fmt.Errorf("index out of range: %d", i)
	}
	return Str(runes[i]), nil
}

func requireIndex(v Value) (int, error) {
	switch n := v.(type) {
	case Int:
		return int(n), nil
	case Float:
		return int(n), nil
	default:
		s, err := AsString(v)
		if err != nil {
			return 0, fmt.Errorf("invalid index %q", v.TypeName())
		}
		var i int
		if _, err := fmt.Sscanf(s, "%d", &i); err != nil {
			return 0, fmt.Errorf("invalid index %q", s)
		}
		return i, nil
	}
}

// AsString coerces v to a string if it implements StringCoercible;
// otherwise returns an error, per spec §4.6 ("Nil and non-coercible
// types fail").
func AsString(v Value) (string, error) {
	if sc, ok := v.(StringCoercible); ok {
		return sc.AsString()
	}
	return "", fmt.Errorf("cannot coerce %s to string", v.TypeName())
}
