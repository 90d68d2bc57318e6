package value

import "unsafe"

func (v Value) strObj() *StringObj {
	mustBe(v, TagStr)
	return (*StringObj)(v.obj)
}

func (v Value) rangeObj() *RangeObj {
	mustBe(v, TagRange)
	return (*RangeObj)(v.obj)
}

func (v Value) tupleObj() *TupleObj {
	mustBe(v, TagTuple)
	return (*TupleObj)(v.obj)
}

func (v Value) listObj() *ListObj {
	mustBe(v, TagList)
	return (*ListObj)(v.obj)
}

func (v Value) mapObj() *MapObj {
	mustBe(v, TagMap)
	return (*MapObj)(v.obj)
}

func (v Value) errObj() *ErrObj {
	mustBe(v, TagErr)
	return (*ErrObj)(v.obj)
}

func (v Value) funcObj() *FuncObj {
	mustBe(v, TagFunc)
	return (*FuncObj)(v.obj)
}

func (v Value) nativeObj() *NativeObj {
	mustBe(v, TagNative)
	return (*NativeObj)(v.obj)
}

func (v Value) taggedObj() *TaggedObj {
	mustBe(v, TagTagged)
	return (*TaggedObj)(v.obj)
}

func (v Value) iteratorObj() *IteratorObj {
	mustBe(v, TagIterator)
	return (*IteratorObj)(v.obj)
}

// AsStr returns the string's bytes as a string (a copy-free conversion;
// the caller must not mutate the returned string's underlying bytes —
// Go strings are immutable by convention anyway).
func (v Value) AsStr() string {
	o := v.strObj()
	return unsafe.String(unsafe.SliceData(o.bytes), len(o.bytes))
}

// AsRange exposes the three range fields for the dispatcher/stdlib.
func (v Value) AsRange() (start, end, step int64) {
	r := v.rangeObj()
	return r.start, r.end, r.step
}

// Len returns the element/entry count of a container value. Tuple and
// list length is element count; map length is entry count; string
// length is *byte* count — iteration over a string yields code points
// instead, so the two can disagree on multi-byte content.
func (v Value) Len() int {
	switch v.tag {
	case TagTuple:
		return len(v.tupleObj().elems)
	case TagList:
		return len(v.listObj().elems)
	case TagMap:
		return len(v.mapObj().entries)
	case TagStr:
		return len(v.strObj().bytes)
	default:
		panic("value has no length: " + v.tag.String())
	}
}

// CapturesOf exposes a func's captures slice, for the dispatcher/GC
// traversal: captures are a required child-traversal case so closed-over
// upvalues stay reachable.
func (v Value) CapturesOf() []Value { return v.funcObj().captures }

// FuncInfo exposes a func's offset/module/arg count for the dispatcher.
func (v Value) FuncInfo() (offset uint32, argCount uint8, module Module) {
	f := v.funcObj()
	return f.offset, f.argCount, f.module
}

// NativeArgCount returns the native value's fixed arity.
func (v Value) NativeArgCount() uint8 { return v.nativeObj().argCount }

// CallNative invokes a native value's Go function.
func (v Value) CallNative(pool *Pool, args []Value) (Value, error) {
	return v.nativeObj().fn(pool, args)
}

// TaggedName and TaggedValue expose a tagged value's constructor name
// and inner payload.
func (v Value) TaggedName() string { return v.taggedObj().name }
func (v Value) TaggedValue() Value { return v.taggedObj().value }

// ErrPayload exposes an err value's wrapped payload.
func (v Value) ErrPayload() Value { return v.errObj().payload }
