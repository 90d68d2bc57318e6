package value

import "github.com/reed-lang/reed/pkg/rerrors"

// NewStr allocates a fresh str value. borrowed should be true when
// bytes aliases a module constant table or another string's backing
// array (the common case for literals and slice/iteration results);
// false when the runtime has just allocated bytes itself.
func NewStr(pool *Pool, bytes []byte, borrowed bool) Value {
	cell := pool.Alloc()
	*cell = newObj(TagStr, ptrOf(&StringObj{bytes: bytes, borrowed: borrowed}))
	pool.Commit(cell)
	return *cell
}

// NewRange constructs a range value. step must be non-zero, or an
// iteration over it could never terminate.
func NewRange(pool *Pool, start, end, step int64) (Value, error) {
	if step == 0 {
		return None, rerrors.New(rerrors.KindInvalidCast, "range step must not be zero")
	}
	cell := pool.Alloc()
	*cell = newObj(TagRange, ptrOf(&RangeObj{start: start, end: end, step: step}))
	pool.Commit(cell)
	return *cell, nil
}

// NewTuple allocates a fixed-length tuple from elems (copied, so the
// caller's slice may be reused).
func NewTuple(pool *Pool, elems []Value) Value {
	cell := pool.Alloc()
	*cell = newObj(TagTuple, ptrOf(&TupleObj{elems: append([]Value(nil), elems...)}))
	pool.Commit(cell)
	return *cell
}

// NewList allocates a growable list seeded with elems.
func NewList(pool *Pool, elems []Value) Value {
	cell := pool.Alloc()
	*cell = newObj(TagList, ptrOf(&ListObj{elems: append([]Value(nil), elems...)}))
	pool.Commit(cell)
	return *cell
}

// NewMap allocates an empty, insertion-ordered map.
func NewMap(pool *Pool) Value {
	cell := pool.Alloc()
	*cell = newObj(TagMap, ptrOf(&MapObj{index: make(map[uint32][]int)}))
	pool.Commit(cell)
	return *cell
}

// NewErr wraps payload as a catchable error value.
func NewErr(pool *Pool, payload Value) Value {
	cell := pool.Alloc()
	*cell = newObj(TagErr, ptrOf(&ErrObj{payload: payload}))
	pool.Commit(cell)
	return *cell
}

// NewTagged constructs a named sum-constructor wrapper, the runtime
// form the compiler emits for an `@name(...)` initializer sequence.
func NewTagged(pool *Pool, name string, inner Value) Value {
	cell := pool.Alloc()
	*cell = newObj(TagTagged, ptrOf(&TaggedObj{name: name, value: inner}))
	pool.Commit(cell)
	return *cell
}

// NewFunc constructs an interpreted function value, given a module,
// its entry offset, and its closed-over captures.
func NewFunc(pool *Pool, offset uint32, argCount uint8, module Module, captures []Value) Value {
	cell := pool.Alloc()
	*cell = newObj(TagFunc, ptrOf(&FuncObj{
		offset:   offset,
		argCount: argCount,
		module:   module,
		captures: append([]Value(nil), captures...),
	}))
	pool.Commit(cell)
	return *cell
}

// NewNative wraps a host Go function as a native value. argCount is
// the count of non-implicit parameters (the bridge's implicit *Pool
// argument, if any, is never counted).
func NewNative(pool *Pool, argCount uint8, fn NativeFn) Value {
	cell := pool.Alloc()
	*cell = newObj(TagNative, ptrOf(&NativeObj{argCount: argCount, fn: fn}))
	pool.Commit(cell)
	return *cell
}

// newIteratorCell is shared by iterator.go's NewIterator.
func newIteratorCell(pool *Pool, source Value, cursor Cursor) Value {
	cell := pool.Alloc()
	*cell = newObj(TagIterator, ptrOf(&IteratorObj{source: source, cursor: cursor}))
	pool.Commit(cell)
	return *cell
}
