package value

import "testing"

func TestCastScenarios(t *testing.T) {
	pool := NewPool()

	v, err := As(pool, strVal(pool, "3.5"), TagNum)
	if err != nil || v.AsNum() != 3.5 {
		t.Fatalf("as(\"3.5\", num) = %v, %v", v, err)
	}

	if _, err := As(pool, strVal(pool, "3.5"), TagInt); err == nil {
		t.Fatal("as(\"3.5\", int) should error")
	}

	v, err = As(pool, Num(3.5), TagInt)
	if err != nil || v.AsInt() != 3 {
		t.Fatalf("as(3.5, int) = %v, %v, want int(3)", v, err)
	}

	v, err = As(pool, Int(0), TagBool)
	if err != nil || v != False {
		t.Fatalf("as(0, bool) = %v, %v, want FALSE singleton", v, err)
	}

	if _, err := As(pool, strVal(pool, "no"), TagBool); err == nil {
		t.Fatal("as(\"no\", bool) should error")
	}
}

func TestCastRoundTripStringToIntToNum(t *testing.T) {
	pool := NewPool()
	asInt, err := As(pool, strVal(pool, "42"), TagInt)
	if err != nil {
		t.Fatal(err)
	}
	viaInt, err := As(pool, asInt, TagNum)
	if err != nil {
		t.Fatal(err)
	}
	direct, err := As(pool, strVal(pool, "42"), TagNum)
	if err != nil {
		t.Fatal(err)
	}
	if !Eql(viaInt, direct) {
		t.Errorf("as(as(v, int), num) should equal as(v, num): %v vs %v", viaInt, direct)
	}
}

func TestCastIdentityWhenTargetMatchesTag(t *testing.T) {
	pool := NewPool()
	v := Int(7)
	out, err := As(pool, v, TagInt)
	if err != nil || out != v {
		t.Error("casting to the value's own tag should return it unchanged")
	}
}

func TestCastToNoneAlwaysSucceeds(t *testing.T) {
	pool := NewPool()
	out, err := As(pool, Int(7), TagNone)
	if err != nil || !out.IsNone() {
		t.Error("casting anything to none should yield the NONE singleton")
	}
}

func TestCastMalformedIntRejectedBeforeParse(t *testing.T) {
	pool := NewPool()
	if _, err := As(pool, strVal(pool, "12.5"), TagInt); err == nil {
		t.Fatal("as(\"12.5\", int) should error: not an integer literal")
	}
	if _, err := As(pool, strVal(pool, "1,000"), TagInt); err == nil {
		t.Fatal("as(\"1,000\", int) should error")
	}
	v, err := As(pool, strVal(pool, "-17"), TagInt)
	if err != nil || v.AsInt() != -17 {
		t.Fatalf("as(\"-17\", int) = %v, %v, want int(-17)", v, err)
	}
}

func TestCastReservedTargetsError(t *testing.T) {
	pool := NewPool()
	if _, err := As(pool, Int(1), TagStr); err == nil {
		t.Fatal("cast to str is reserved/unimplemented and should error")
	}
	if _, err := As(pool, Int(1), TagRange); err == nil {
		t.Fatal("cast to range is undefined and should error")
	}
}
