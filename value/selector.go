package value

import "github.com/helena-lang/helena-go/ast"

// Selector is one step of a Qualified value's selector chain (spec §3,
// §6 glossary). Sealed the same way Value and ast.Morpheme are.
type Selector interface {
	selector()
}

// IndexSelector applies Indexable.SelectIndex.
type IndexSelector struct{ Index Value }

func (IndexSelector) selector() {}

// KeySelector applies Keyable.SelectKey for each key in turn.
type KeySelector struct{ Keys Tuple }

func (KeySelector) selector() {}

// RulesSelector applies RulesSelectable.SelectRules.
type RulesSelector struct{ Rules []Value }

func (RulesSelector) selector() {}

// Qualified is a source value plus a chain of selectors applied to it
// (e.g. `$x[1](k)`): Source is resolved once, then each Selector narrows
// the result in declaration order (spec §5 ordering guarantee).
type Qualified struct {
	Source    Value
	Selectors []Selector
}

func (Qualified) value()           {}
func (Qualified) TypeName() string { return "qualified" }

// Resolve applies every selector in order against Source, returning the
// final selected Value.
func (q Qualified) Resolve() (Value, error) {
	cur := q.Source
	for _, sel := range q.Selectors {
		var err error
		cur, err = ApplySelector(cur, sel)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// ApplySelector applies a single selector to v, dispatching on the
// capability interface it requires.
func ApplySelector(v Value, sel Selector) (Value, error) {
	switch s := sel.(type) {
	case IndexSelector:
		idx, ok := v.(Indexable)
		if !ok {
			return nil, errNotSelectable(v, "index")
		}
		return idx.SelectIndex(s.Index)
	case KeySelector:
		cur := v
		for _, k := range s.Keys {
			keyable, ok := cur.(Keyable)
			if !ok {
				return nil, errNotSelectable(cur, "key")
			}
			var err error
			cur, err = keyable.SelectKey(k)
			if err != nil {
				return nil, err
			}
		}
		return cur, nil
	case RulesSelector:
		rs, ok := v.(RulesSelectable)
		if !ok {
			return nil, errNotSelectable(v, "rules")
		}
		return rs.SelectRules(s.Rules)
	default:
		return nil, errNotSelectable(v, "unknown")
	}
}

func errNotSelectable(v Value, kind string) error {
	return &NotSelectableError{Type: v.TypeName(), Kind: kind}
}

// NotSelectableError reports a selector applied to a value whose type
// doesn't implement the required capability.
type NotSelectableError struct {
	Type string
	Kind string
}

func (e *NotSelectableError) Error() string {
	return "cannot apply " + e.Kind + " selector to " + e.Type
}

// ScriptValue wraps a parsed Script as a first-class Value (used for
// deferred/macro bodies passed around as data, e.g. a Block morpheme
// evaluated into a value before being handed to a command). RawText
// carries the literal brace-delimited source a Block morpheme was parsed
// from, CONTINUATION sequences collapsed to a single space (spec §8
// property 4); it's empty for Scripts that didn't originate from a Block
// (e.g. a top-level parse or an Expression's subscript).
type ScriptValue struct {
	Script  *ast.Script
	RawText string
}

func (ScriptValue) value()           {}
func (ScriptValue) TypeName() string { return "script" }
