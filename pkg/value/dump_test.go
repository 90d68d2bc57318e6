package value

import (
	"strings"
	"testing"
)

func dumpToString(t *testing.T, v Value, depth int) string {
	t.Helper()
	var b strings.Builder
	if err := Dump(v, &b, depth); err != nil {
		t.Fatal(err)
	}
	return b.String()
}

func TestDumpPrimitives(t *testing.T) {
	pool := NewPool()
	cases := []struct {
		v    Value
		want string
	}{
		{None, "none"},
		{True, "true"},
		{False, "false"},
		{Int(42), "42"},
		{Num(3.5), "3.5"},
		{strVal(pool, "hi"), `"hi"`},
	}
	for _, c := range cases {
		if got := dumpToString(t, c.v, 5); got != c.want {
			t.Errorf("dump(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestDumpRange(t *testing.T) {
	pool := NewPool()
	r, err := NewRange(pool, 0, 10, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := dumpToString(t, r, 1); got != "0:10:2" {
		t.Errorf("dump(range) = %q, want %q", got, "0:10:2")
	}
}

func TestDumpCompoundDepthAbbreviation(t *testing.T) {
	pool := NewPool()
	list := NewList(pool, []Value{Int(1), Int(2)})

	if got := dumpToString(t, list, 0); got != "[...]" {
		t.Errorf("dump at depth 0 = %q, want abbreviated [...]", got)
	}
	if got := dumpToString(t, list, 1); got != "[1, 2]" {
		t.Errorf("dump at depth 1 = %q, want [1, 2]", got)
	}
}

func TestDumpNestedCompoundRecursesAtReducedDepth(t *testing.T) {
	pool := NewPool()
	inner := NewTuple(pool, []Value{Int(1)})
	outer := NewList(pool, []Value{inner})

	got := dumpToString(t, outer, 1)
	if got != "[(...)]" {
		t.Errorf("nested compound at exhausted depth = %q, want [(...)]", got)
	}
	got = dumpToString(t, outer, 2)
	if got != "[(1)]" {
		t.Errorf("nested compound with depth to spare = %q, want [(1)]", got)
	}
}

func TestDumpMap(t *testing.T) {
	pool := NewPool()
	m := NewMap(pool)
	_ = Set(pool, m, strVal(pool, "a"), Int(1))
	got := dumpToString(t, m, 2)
	if got != `{"a": 1}` {
		t.Errorf("dump(map) = %q, want %q", got, `{"a": 1}`)
	}
}

func TestDumpErrAndTagged(t *testing.T) {
	pool := NewPool()
	errVal := NewErr(pool, Int(5))
	if got := dumpToString(t, errVal, 1); got != "error(5)" {
		t.Errorf("dump(err) = %q, want error(5)", got)
	}
	if got := dumpToString(t, errVal, 0); got != "error(...)" {
		t.Errorf("dump(err) at depth 0 = %q, want error(...)", got)
	}

	tagged := NewTagged(pool, "Ok", Int(5))
	if got := dumpToString(t, tagged, 1); got != "@Ok(5)" {
		t.Errorf("dump(tagged) = %q, want @Ok(5)", got)
	}
}

func TestDumpStringEscaping(t *testing.T) {
	pool := NewPool()
	s := NewStr(pool, []byte("a\nb\tc\"d\\e"), true)
	got := dumpToString(t, s, 1)
	want := `"a\nb\tc\"d\\e"`
	if got != want {
		t.Errorf("dump(string) = %q, want %q", got, want)
	}
}

func TestDumpStringControlByteEscape(t *testing.T) {
	pool := NewPool()
	s := NewStr(pool, []byte{0x01, 'x'}, true)
	got := dumpToString(t, s, 1)
	want := `"\x01x"`
	if got != want {
		t.Errorf("dump(control byte) = %q, want %q", got, want)
	}
}

func TestDumpFuncAndNative(t *testing.T) {
	pool := NewPool()
	fn := NewFunc(pool, 10, 2, nil, nil)
	got := dumpToString(t, fn, 1)
	if !strings.HasPrefix(got, "fn(2)@") {
		t.Errorf("dump(func) = %q, want fn(2)@... prefix", got)
	}

	native := NewNative(pool, 1, func(*Pool, []Value) (Value, error) { return None, nil })
	got = dumpToString(t, native, 1)
	if !strings.HasPrefix(got, "native(1)@") {
		t.Errorf("dump(native) = %q, want native(1)@... prefix", got)
	}
}

func TestDumpIteratorPanics(t *testing.T) {
	pool := NewPool()
	iter, err := NewIterator(pool, NewList(pool, nil))
	if err != nil {
		t.Fatal(err)
	}
	expectPanic(t, func() { dumpToString(t, iter, 1) }, "iterator")
}
