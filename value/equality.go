package value

import "strconv"

// Equal implements spec §4.6's value-based equality: numeric types
// compare by numeric value regardless of representation, so
// Equal(Int(56), Str("56.0")) is true.
func Equal(a, b Value) bool {
	if an, aok := asNumber(a); aok {
		if bn, bok := asNumber(b); bok {
			return an == bn
		}
	}

	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Str:
		bv, ok := b.(Str)
		return ok && av == bv
	case List:
		bv, ok := b.(List)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Tuple:
		bv, ok := b.(Tuple)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case CommandValue:
		bv, ok := b.(CommandValue)
		return ok && av.Handle == bv.Handle
	default:
		return a == b
	}
}

// asNumber extracts a float64 from Int, Float, or a numeric-looking Str,
// so that integer, float, and numeric-string values all compare equal
// when they denote the same number.
func asNumber(v Value) (float64, bool) {
	switch n := v.(type) {
	case Int:
		return float64(n), true
	case Float:
		return float64(n), true
	case Str:
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
