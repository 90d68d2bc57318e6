package value

import "github.com/reed-lang/reed/pkg/rerrors"

// Pool is the allocator the runtime consumes: Alloc of a fresh cell,
// Dupe of an existing value, and (implicitly, via the New* constructors
// in constructors.go) access to a raw allocator for the buffers owned by
// tuples/lists/strings. It tracks a growable store of in-flight
// scratch-root cells rather than a global value table, since the global
// table itself is a dispatcher concern out of scope here.
//
// Go's own garbage collector already reclaims everything reachable
// from this process once it is no longer referenced, so Pool does not
// need to scavenge anything itself. What it still must do is make
// "reachable from a scratch root until the caller assigns a
// well-formed variant" an observable, testable property rather than an
// accident of the host's GC — that is the entire job of the scratch
// slice below.
type Pool struct {
	scratch []*Value
	allocs  uint64
}

func NewPool() *Pool {
	return &Pool{}
}

// Alloc returns a fresh, arbitrarily-tagged cell, registered as a
// scratch root so it survives until Commit releases it. Callers must
// assign a well-formed variant to *cell before calling Commit.
func (p *Pool) Alloc() *Value {
	cell := new(Value)
	p.scratch = append(p.scratch, cell)
	p.allocs++
	return cell
}

// Commit releases a cell from the scratch-root set once it has been
// stored into a real root (a container slot, a stack register, a
// capture list). It is a no-op if cell was not on the scratch list.
func (p *Pool) Commit(cell *Value) {
	for i, c := range p.scratch {
		if c == cell {
			p.scratch = append(p.scratch[:i], p.scratch[i+1:]...)
			return
		}
	}
}

// ScratchRoots returns the number of cells currently pinned as scratch
// roots (i.e. allocated but not yet Commit-ed). Exposed for tests and
// for a host embedder that wants to assert it isn't leaking allocations
// across a call boundary.
func (p *Pool) ScratchRoots() int { return len(p.scratch) }

// Allocs returns the lifetime allocation count.
func (p *Pool) Allocs() uint64 { return p.allocs }

// Dupe performs a shallow copy: singletons return themselves,
// primitives get a fresh cell with the same payload, and containers
// clone their outer shell while sharing children.
func (p *Pool) Dupe(v Value) Value {
	switch v.tag {
	case TagNone, TagBool, TagInt, TagNum:
		return v
	case TagStr:
		o := v.strObj()
		return newObj(TagStr, ptrOf(&StringObj{bytes: o.bytes, borrowed: true}))
	case TagRange:
		o := v.rangeObj()
		return newObj(TagRange, ptrOf(&RangeObj{start: o.start, end: o.end, step: o.step}))
	case TagTuple:
		o := v.tupleObj()
		elems := append([]Value(nil), o.elems...)
		return newObj(TagTuple, ptrOf(&TupleObj{elems: elems}))
	case TagList:
		o := v.listObj()
		elems := append([]Value(nil), o.elems...)
		return newObj(TagList, ptrOf(&ListObj{elems: elems}))
	case TagMap:
		o := v.mapObj()
		entries := append([]mapEntry(nil), o.entries...)
		dup := &MapObj{entries: entries, index: make(map[uint32][]int, len(entries))}
		for i, e := range entries {
			h := Hash(e.key)
			dup.index[h] = append(dup.index[h], i)
		}
		return newObj(TagMap, ptrOf(dup))
	case TagErr:
		return newObj(TagErr, ptrOf(&ErrObj{payload: v.errObj().payload}))
	case TagTagged:
		o := v.taggedObj()
		return newObj(TagTagged, ptrOf(&TaggedObj{name: o.name, value: o.value}))
	case TagFunc:
		o := v.funcObj()
		captures := append([]Value(nil), o.captures...)
		return newObj(TagFunc, ptrOf(&FuncObj{offset: o.offset, argCount: o.argCount, module: o.module, captures: captures}))
	case TagNative:
		o := v.nativeObj()
		return newObj(TagNative, ptrOf(&NativeObj{argCount: o.argCount, fn: o.fn}))
	case TagIterator:
		rerrors.Panic("iterator values must never be duped")
		panic("unreachable")
	default:
		rerrors.Panicf("dupe: unhandled tag %s", v.tag)
		panic("unreachable")
	}
}

// Deinit releases the non-recursive resources owned by cell's payload:
// the element array of a tuple, the internal buffers of a map/list, the
// captures array of a func. It must not follow references to children
// — the host's GC (Go's, here) reclaims those transitively once
// unreachable. In a Go-backed runtime this is a no-op for every variant
// (there is no manual buffer to free), but the function exists so a
// future non-Go-GC'd backend has the right shape to fill in.
func Deinit(v Value) {
	switch v.tag {
	case TagTuple, TagList, TagMap, TagFunc, TagStr:
		// Backing slices/maps are reclaimed by Go's GC once the cell
		// itself is unreachable; nothing to release eagerly.
	}
}

// Children returns v's direct child references, for a collector that
// walks reachability itself rather than relying solely on Go's GC to
// trace through the obj pointer: tuples and lists yield their elements,
// maps yield keys and values interleaved, func yields its captures, and
// tagged/err/iterator yield their single inner reference. Every other
// tag is a leaf and yields nil.
func Children(v Value) []Value {
	switch v.tag {
	case TagTuple:
		return v.tupleObj().elems
	case TagList:
		return v.listObj().elems
	case TagMap:
		m := v.mapObj()
		out := make([]Value, 0, len(m.entries)*2)
		for _, e := range m.entries {
			out = append(out, e.key, e.val)
		}
		return out
	case TagFunc:
		return v.funcObj().captures
	case TagTagged:
		return []Value{v.taggedObj().value}
	case TagErr:
		return []Value{v.errObj().payload}
	case TagIterator:
		return []Value{v.iteratorObj().source}
	default:
		return nil
	}
}
