// iterator.go implements a uniform iterator value over ranges, strings
// (Unicode-aware), lists, tuples, and maps.
package value

import (
	"unicode/utf8"

	"github.com/reed-lang/reed/pkg/rerrors"
)

// NewIterator produces a fresh iterator over v. The iterator holds a
// dup of v so later mutation of the original container does not
// perturb an in-flight iteration — the iterator walks a snapshot,
// applied through Pool.Dupe instead of a language-level copy.
func NewIterator(pool *Pool, v Value) (Value, error) {
	var cursor Cursor
	switch v.tag {
	case TagRange:
		start, _, _ := v.AsRange()
		cursor = Cursor{signed: start}
	case TagStr, TagTuple, TagList, TagMap:
		// index/offset both default to zero.
	default:
		return None, rerrors.New(rerrors.KindInvalidIterationSrc, "invalid type for iteration")
	}
	return newIteratorCell(pool, pool.Dupe(v), cursor), nil
}

// Next advances iterVal and returns the next element, or the None
// singleton on exhaustion.
func Next(pool *Pool, iterVal Value) (Value, error) {
	it := iterVal.iteratorObj()
	switch it.source.tag {
	case TagTuple:
		return nextSeq(it, it.source.tupleObj().elems), nil
	case TagList:
		return nextSeq(it, it.source.listObj().elems), nil
	case TagStr:
		return nextStr(it)
	case TagRange:
		return nextRange(it), nil
	case TagMap:
		return nextMap(pool, it), nil
	default:
		rerrors.Panicf("next: iterator source has unexpected tag %s", it.source.tag)
		panic("unreachable")
	}
}

func nextSeq(it *IteratorObj, elems []Value) Value {
	if it.cursor.index >= len(elems) {
		return None
	}
	v := elems[it.cursor.index]
	it.cursor.index++
	return v
}

func nextStr(it *IteratorObj) (Value, error) {
	bytes := it.source.strObj().bytes
	u := it.cursor.offset
	if u >= len(bytes) {
		return None, nil
	}
	r, size := utf8.DecodeRune(bytes[u:])
	if r == utf8.RuneError && size <= 1 {
		return None, rerrors.New(rerrors.KindInvalidUTF8, "invalid utf-8 sequence")
	}
	it.cursor.offset += size
	// The substring aliases the source's backing array, so it is a
	// borrowed string, not a freshly allocated one.
	return Value{tag: TagStr, obj: ptrOf(&StringObj{bytes: bytes[u : u+size], borrowed: true})}, nil
}

func nextRange(it *IteratorObj) Value {
	_, end, step := it.source.AsRange()
	i := it.cursor.signed
	// Exhaustion dispatches on the sign of step rather than always
	// testing i >= end, so a descending range actually terminates.
	if step > 0 {
		if i >= end {
			return None
		}
	} else {
		if i <= end {
			return None
		}
	}
	it.cursor.signed = i + step
	return Int(i)
}

func nextMap(pool *Pool, it *IteratorObj) Value {
	m := it.source.mapObj()
	if it.cursor.index >= len(m.entries) {
		return None
	}
	entry := m.entries[it.cursor.index]
	it.cursor.index++
	if it.reusedTuple == nil {
		cell := pool.Alloc()
		tup := &TupleObj{elems: []Value{entry.key, entry.val}}
		*cell = newObj(TagTuple, ptrOf(tup))
		pool.Commit(cell)
		it.reusedTuple = tup
		return *cell
	}
	it.reusedTuple.elems[0] = entry.key
	it.reusedTuple.elems[1] = entry.val
	return newObj(TagTuple, ptrOf(it.reusedTuple))
}
