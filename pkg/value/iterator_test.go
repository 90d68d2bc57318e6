package value

import "testing"

func drainInts(t *testing.T, pool *Pool, iter Value) []int64 {
	t.Helper()
	var out []int64
	for {
		v, err := Next(pool, iter)
		if err != nil {
			t.Fatal(err)
		}
		if v.IsNone() {
			return out
		}
		out = append(out, v.AsInt())
	}
}

func TestRangeIterationEmpty(t *testing.T) {
	pool := NewPool()
	r, err := NewRange(pool, 0, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	iter, err := NewIterator(pool, r)
	if err != nil {
		t.Fatal(err)
	}
	if got := drainInts(t, pool, iter); len(got) != 0 {
		t.Errorf("range(0,0,1) should yield nothing, got %v", got)
	}
}

func TestRangeIterationAscending(t *testing.T) {
	pool := NewPool()
	r, _ := NewRange(pool, 0, 5, 2)
	iter, _ := NewIterator(pool, r)
	got := drainInts(t, pool, iter)
	want := []int64{0, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestRangeIterationDescending(t *testing.T) {
	pool := NewPool()
	r, _ := NewRange(pool, 5, 0, -1)
	iter, _ := NewIterator(pool, r)
	got := drainInts(t, pool, iter)
	want := []int64{5, 4, 3, 2, 1}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestStringIterationUTF8(t *testing.T) {
	pool := NewPool()
	s := NewStr(pool, []byte("héllo"), true)
	iter, err := NewIterator(pool, s)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for {
		v, err := Next(pool, iter)
		if err != nil {
			t.Fatal(err)
		}
		if v.IsNone() {
			break
		}
		got = append(got, v.AsStr())
	}
	want := []string{"h", "é", "l", "l", "o"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestStringIterationInvalidUTF8(t *testing.T) {
	pool := NewPool()
	s := NewStr(pool, []byte{0xff, 0x41}, true)
	iter, _ := NewIterator(pool, s)
	if _, err := Next(pool, iter); err == nil {
		t.Fatal("expected invalid utf-8 sequence error")
	}
}

func TestInvalidIterationSource(t *testing.T) {
	pool := NewPool()
	if _, err := NewIterator(pool, Int(5)); err == nil {
		t.Fatal("iterating an int should error")
	}
}

func TestListIteratorIsolatedFromMutation(t *testing.T) {
	pool := NewPool()
	list := NewList(pool, []Value{Int(1), Int(2)})
	iter, err := NewIterator(pool, list)
	if err != nil {
		t.Fatal(err)
	}
	// Mutating the original after iterator creation must not affect
	// the iterator, because NewIterator dups the source.
	_ = Set(pool, list, Int(0), Int(99))

	first, _ := Next(pool, iter)
	if first.AsInt() != 1 {
		t.Errorf("iterator should see the pre-mutation snapshot, got %d", first.AsInt())
	}
}
