package value

import "unsafe"

// Module is the opaque handle a Func value points into. The bytecode
// compiler and instruction dispatcher own its real shape; this package
// never inspects it.
type Module interface{}

// StringObj backs TagStr. borrowed is true for literal/constant strings
// and for slices/iteration results that alias their source's backing
// array; it is false for strings the runtime itself allocated fresh
// (e.g. bridge conversions). Go's GC reclaims the backing array
// either way once unreachable, so borrowed exists to document the
// ownership contract for a future non-Go-GC'd backend, not because this
// package's own Deinit needs to branch on it today.
type StringObj struct {
	bytes    []byte
	borrowed bool
}

// RangeObj backs TagRange: a half-open [start, end) walked by step.
type RangeObj struct {
	start, end, step int64
}

// TupleObj backs TagTuple. Length is fixed at construction; only
// element slots may be reassigned.
type TupleObj struct {
	elems []Value
}

// ListObj backs TagList: a growable ordered sequence.
type ListObj struct {
	elems []Value
}

// mapEntry is one insertion-ordered slot of a MapObj.
type mapEntry struct {
	key Value
	val Value
}

// MapObj backs TagMap. Entries preserve insertion order; index maps a
// 32-bit hash to the entry indices sharing it, so lookup degrades from
// O(1) only on hash collisions, which Eql then disambiguates.
type MapObj struct {
	entries []mapEntry
	index   map[uint32][]int
}

// ErrObj backs TagErr: a single wrapped payload value.
type ErrObj struct {
	payload Value
}

// TaggedObj backs TagTagged: a named sum-constructor wrapper.
type TaggedObj struct {
	name  string
	value Value
}

// FuncObj backs TagFunc: an interpreted function. Offset indexes into
// Module's instruction stream; Captures holds closed-over upvalues.
type FuncObj struct {
	offset   uint32
	argCount uint8
	module   Module
	captures []Value
}

// NativeFn is the signature a host callable must satisfy once wrapped.
// The Pool is threaded through so native code can allocate fresh cells
// (e.g. list.append's dupe of its argument) without a global allocator.
type NativeFn func(pool *Pool, args []Value) (Value, error)

// NativeObj backs TagNative: a host-provided callable. argCount is
// fixed at wrap time and never mutated afterward, even once the
// callable has been invoked — a caller querying arity after a call
// must still see the real parameter count.
type NativeObj struct {
	argCount uint8
	fn       NativeFn
}

// Cursor is a discriminated iterator position: exactly one field is
// meaningful, selected by the source's tag, rather than punning a
// single integer across incompatible meanings.
type Cursor struct {
	index  int   // tuple, list, map: element/entry index
	offset int   // str: byte offset
	signed int64 // range: current value
}

// IteratorObj backs TagIterator. source is a dup of the value being
// iterated; reusedTuple is the map-iteration result tuple that may be
// overwritten in place on subsequent Next calls.
type IteratorObj struct {
	source      Value
	cursor      Cursor
	reusedTuple *TupleObj
}

func newObj(tag Tag, ptr unsafe.Pointer) Value {
	return Value{tag: tag, obj: ptr}
}

func objPtr(v Value) unsafe.Pointer { return v.obj }

// ptrOf converts a typed struct pointer into the unsafe.Pointer Value
// stores, for the object constructors in constructors.go and Dupe in
// heap.go.
func ptrOf[T any](p *T) unsafe.Pointer { return unsafe.Pointer(p) }

// identity returns a stable per-object identity token, used by Hash and
// Eql for containers whose content is not hashed/compared structurally:
// these fall back to hashing (length, identity) and comparing by
// identity alone.
func identity(v Value) uintptr { return uintptr(v.obj) }
