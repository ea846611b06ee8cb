package value

import "testing"

func TestAsStringCoercible(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Int(42), "42"},
		{Str("hi"), "hi"},
		{Bool(true), "true"},
	}
	for _, c := range cases {
		got, err := AsString(c.v)
		if err != nil {
			t.Fatalf("AsString(%v): %v", c.v, err)
		}
		if got != c.want {
			t.Fatalf("AsString(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestAsStringRejectsNonCoercible(t *testing.T) {
	if _, err := AsString(NewDict()); err == nil {
		t.Fatal("expected an error converting a Dict to a string")
	}
}

func TestResultConstructors(t *testing.T) {
	if r := Ok(Int(1)); r.Code != OK || !r.IsOk() {
		t.Fatalf("Ok: got %+v", r)
	}
	if r := Err("boom"); r.Code != ERROR || !r.IsError() {
		t.Fatalf("Err: got %+v", r)
	}
	if r := Break(); r.Code != BREAK {
		t.Fatalf("Break: got %+v", r)
	}
}

func TestCodeNameCustom(t *testing.T) {
	if got := CodeName(CustomBase + 3); got != "CUSTOM" {
		t.Fatalf("got %q", got)
	}
	if got := CodeName(OK); got != "OK" {
		t.Fatalf("got %q", got)
	}
}

func TestEqualScalarsAndCollections(t *testing.T) {
	if !Equal(Int(1), Int(1)) {
		t.Fatal("expected Int(1) == Int(1)")
	}
	if Equal(Int(1), Int(2)) {
		t.Fatal("expected Int(1) != Int(2)")
	}
	if !Equal(List{Int(1), Str("a")}, List{Int(1), Str("a")}) {
		t.Fatal("expected equal Lists to compare equal")
	}
	if Equal(List{Int(1)}, List{Int(1), Int(2)}) {
		t.Fatal("expected Lists of different length to compare unequal")
	}
}

func TestListSelectIndex(t *testing.T) {
	l := List{Str("a"), Str("b"), Str("c")}
	v, err := l.SelectIndex(Int(1))
	if err != nil {
		t.Fatalf("SelectIndex: %v", err)
	}
	if s, _ := AsString(v); s != "b" {
		t.Fatalf("got %v", v)
	}
}

func TestListSelectIndexOutOfRange(t *testing.T) {
	l := List{Str("a")}
	if _, err := l.SelectIndex(Int(5)); err == nil {
		t.Fatal("expected an out-of-range error")
	}
}

func TestDictSetGet(t *testing.T) {
	d := NewDict()
	d.Set("k", Int(7))
	v, ok := d.Get("k")
	if !ok {
		t.Fatal("expected key \"k\" to be present")
	}
	if got, _ := v.(Int); got != 7 {
		t.Fatalf("got %v", v)
	}
	if _, ok := d.Get("missing"); ok {
		t.Fatal("expected missing key to be absent")
	}
}

func TestApplySelectorIndexAndKey(t *testing.T) {
	l := List{Int(10), Int(20)}
	v, err := ApplySelector(l, IndexSelector{Index: Int(0)})
	if err != nil {
		t.Fatalf("ApplySelector: %v", err)
	}
	if got, _ := v.(Int); got != 10 {
		t.Fatalf("got %v", v)
	}

	d := NewDict()
	d.Set("x", Str("y"))
	v, err = ApplySelector(d, KeySelector{Keys: Tuple{Str("x")}})
	if err != nil {
		t.Fatalf("ApplySelector: %v", err)
	}
	if got, _ := v.(Str); got != "y" {
		t.Fatalf("got %v", v)
	}
}

func TestApplySelectorOnUnselectableValue(t *testing.T) {
	_, err := ApplySelector(Int(1), IndexSelector{Index: Int(0)})
	if err == nil {
		t.Fatal("expected a NotSelectableError")
	}
	var nse *NotSelectableError
	if !asNotSelectable(err, &nse) {
		t.Fatalf("expected *NotSelectableError, got %T", err)
	}
}

func asNotSelectable(err error, target **NotSelectableError) bool {
	if e, ok := err.(*NotSelectableError); ok {
		*target = e
		return true
	}
	return false
}
