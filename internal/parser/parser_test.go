package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pearigee/huckleberry/internal/herr"
	"github.com/pearigee/huckleberry/internal/value"
)

var cmpOpts = cmp.Comparer(func(a, b value.Value) bool {
	return value.Equal(a, b)
})

func TestParseAtoms(t *testing.T) {
	forms, err := Parse(`42 "hi" :kw true nil foo`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []value.Value{
		value.Number(42),
		value.Str("hi"),
		value.Keyword(":kw"),
		value.True,
		value.Nil,
		value.Symbol("foo"),
	}
	if diff := cmp.Diff(want, forms, cmpOpts); diff != "" {
		t.Errorf("atoms mismatch (-want +got):\n%s", diff)
	}
}

func TestParseList(t *testing.T) {
	forms, err := Parse(`(+ 1 2)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []value.Value{
		value.List([]value.Value{value.Symbol("+"), value.Number(1), value.Number(2)}),
	}
	if diff := cmp.Diff(want, forms, cmpOpts); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMethodList(t *testing.T) {
	forms, err := Parse(`<1 to: 5 do: fn>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []value.Value{
		value.MethodList([]value.Value{
			value.Number(1),
			value.Symbol("to"), value.Number(5),
			value.Symbol("do"), value.Symbol("fn"),
		}),
	}
	if diff := cmp.Diff(want, forms, cmpOpts); diff != "" {
		t.Errorf("method-list mismatch (-want +got):\n%s", diff)
	}
}

func TestParseVector(t *testing.T) {
	forms, err := Parse(`[1 2 3]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []value.Value{
		value.Vector([]value.Value{value.Number(1), value.Number(2), value.Number(3)}),
	}
	if diff := cmp.Diff(want, forms, cmpOpts); diff != "" {
		t.Errorf("vector mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMap(t *testing.T) {
	forms, err := Parse(`{:a 1 :b 2}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := value.EmptyMap()
	m = value.MapSet(m, value.Keyword(":a"), value.Number(1))
	m = value.MapSet(m, value.Keyword(":b"), value.Number(2))
	if diff := cmp.Diff([]value.Value{m}, forms, cmpOpts); diff != "" {
		t.Errorf("map mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOddMapIsError(t *testing.T) {
	_, err := Parse(`{:a 1 :b}`)
	if err == nil {
		t.Fatal("expected an error for an odd-length map literal")
	}
	if _, ok := err.(*herr.ParseError); !ok {
		t.Fatalf("expected *herr.ParseError, got %T", err)
	}
}

func TestParseUnmatchedOpenerIsError(t *testing.T) {
	_, err := Parse(`(+ 1 2`)
	if err == nil {
		t.Fatal("expected an error for an unmatched opening delimiter")
	}
	pe, ok := err.(*herr.ParseError)
	if !ok {
		t.Fatalf("expected *herr.ParseError, got %T", err)
	}
	if pe.SrcLine != 1 {
		t.Errorf("SrcLine = %d, want 1", pe.SrcLine)
	}
}

func TestParseNestedForms(t *testing.T) {
	forms, err := Parse(`(defn add [a b] (+ a b))`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(forms) != 1 || forms[0].Kind != value.KindList {
		t.Fatalf("expected a single top-level list form, got %+v", forms)
	}
	if len(forms[0].Items) != 4 {
		t.Fatalf("expected 4 items in (defn add [a b] (+ a b)), got %d", len(forms[0].Items))
	}
}
