package value

import "testing"

func TestHashEqlAgreement(t *testing.T) {
	pool := NewPool()
	pairs := [][2]Value{
		{Int(5), Int(5)},
		{Int(5), Num(5.0)},
		{Num(5.0), Int(5)},
		{strVal(pool, "x"), strVal(pool, "x")},
		{True, Bool(true)},
		{None, None},
	}
	for _, p := range pairs {
		if !Eql(p[0], p[1]) {
			t.Fatalf("expected eql(%v, %v)", p[0], p[1])
		}
		if Hash(p[0]) != Hash(p[1]) {
			t.Errorf("hash/eql disagreement for %v and %v", p[0], p[1])
		}
	}
}

func TestEqlReflexive(t *testing.T) {
	pool := NewPool()
	vals := []Value{
		None, True, False, Int(1), Num(1.5),
		strVal(pool, "a"),
		NewTuple(pool, []Value{Int(1), Int(2)}),
		NewList(pool, []Value{Int(1)}),
	}
	for _, v := range vals {
		if !Eql(v, v) {
			t.Errorf("eql(v, v) should hold for %v", v)
		}
	}
}

func TestMapEqualityIsIdentity(t *testing.T) {
	pool := NewPool()
	a := NewMap(pool)
	b := NewMap(pool)
	_ = Set(pool, a, strVal(pool, "k"), Int(1))
	_ = Set(pool, b, strVal(pool, "k"), Int(1))

	if Eql(a, b) {
		t.Error("two structurally-identical but distinct maps must not be eql (documented identity limitation)")
	}
	if !Eql(a, a) {
		t.Error("a map must be eql to itself")
	}
}

func TestTaggedEquality(t *testing.T) {
	pool := NewPool()
	ok5a := NewTagged(pool, "Ok", Int(5))
	ok5b := NewTagged(pool, "Ok", Int(5))
	ok6 := NewTagged(pool, "Ok", Int(6))
	err5 := NewTagged(pool, "Err", Int(5))

	if !Eql(ok5a, ok5b) {
		t.Error("eql(@Ok(5), @Ok(5)) should be true")
	}
	if Eql(ok5a, ok6) {
		t.Error("eql(@Ok(5), @Ok(6)) should be false")
	}
	if Eql(ok5a, err5) {
		t.Error("eql(@Ok(5), @Err(5)) should be false")
	}
}

func TestFuncNativeNeverEqual(t *testing.T) {
	pool := NewPool()
	fn := NewFunc(pool, 0, 0, nil, nil)
	native := NewNative(pool, 0, func(*Pool, []Value) (Value, error) { return None, nil })
	if Eql(fn, native) {
		t.Error("func and native must never compare equal")
	}
}

func TestIteratorForbiddenInEqlAndHash(t *testing.T) {
	pool := NewPool()
	iter, err := NewIterator(pool, NewList(pool, nil))
	if err != nil {
		t.Fatal(err)
	}
	expectPanic(t, func() { Eql(iter, iter) }, "iterator")
	expectPanic(t, func() { Hash(iter) }, "iterator")
}
