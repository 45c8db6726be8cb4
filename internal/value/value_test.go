package value

import (
	"math"
	"testing"
)

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Nil, false},
		{False, false},
		{True, true},
		{Number(0), true},
		{Str(""), true},
	}
	for _, c := range cases {
		if got := Truthy(c.v); got != c.want {
			t.Errorf("Truthy(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestCompareNumbersTotalOrderWithNaN(t *testing.T) {
	nan := Number(math.NaN())
	one := Number(1)
	if Compare(nan, nan) != 0 {
		t.Error("NaN should compare equal to itself")
	}
	if Compare(nan, one) <= 0 {
		t.Error("NaN should compare greater than any other number")
	}
	if Compare(one, nan) >= 0 {
		t.Error("any other number should compare less than NaN")
	}
}

func TestEqualIgnoresMetadata(t *testing.T) {
	meta := Number(99)
	a := Value{Kind: KindSymbol, Str: "x", Meta: &meta}
	b := Value{Kind: KindSymbol, Str: "x"}
	if !Equal(a, b) {
		t.Error("symbols with identical names should be equal regardless of metadata")
	}
}

func TestEqualCallablesByName(t *testing.T) {
	a := NativeFn("foo", Count(1), nil)
	b := NativeFn("foo", Count(2), nil)
	if !Equal(a, b) {
		t.Error("native callables with the same name should compare equal")
	}
}

func TestMapSetOverwritesExistingKey(t *testing.T) {
	m := EmptyMap()
	m = MapSet(m, Str("a"), Number(1))
	m = MapSet(m, Str("a"), Number(2))
	if len(m.Entries) != 1 {
		t.Fatalf("expected 1 entry after overwrite, got %d", len(m.Entries))
	}
	v, ok := MapGet(m, Str("a"))
	if !ok || v.Num != 2 {
		t.Fatalf("expected a=2, got %v (ok=%v)", v, ok)
	}
}

func TestMapSetKeepsSortedOrder(t *testing.T) {
	m := EmptyMap()
	m = MapSet(m, Number(3), Nil)
	m = MapSet(m, Number(1), Nil)
	m = MapSet(m, Number(2), Nil)
	for i := 0; i < len(m.Entries)-1; i++ {
		if Compare(m.Entries[i].Key, m.Entries[i+1].Key) > 0 {
			t.Fatalf("entries not sorted: %v", m.Entries)
		}
	}
}

func TestMapGetMissingKey(t *testing.T) {
	m := EmptyMap()
	if _, ok := MapGet(m, Str("missing")); ok {
		t.Error("expected ok=false for a missing key")
	}
}

func TestArityAllows(t *testing.T) {
	exact := Count(2)
	if exact.Allows(1) || !exact.Allows(2) || exact.Allows(3) {
		t.Error("Count(2) should allow exactly 2 arguments")
	}
	rng := Range(1, Unbounded)
	if rng.Allows(0) || !rng.Allows(1) || !rng.Allows(100) {
		t.Error("Range(1, Unbounded) should allow 1 or more arguments")
	}
}

func TestStringDisplayForm(t *testing.T) {
	v := Vector([]Value{Number(1), Str("x"), True})
	if got, want := v.String(), `[1 x true]`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
