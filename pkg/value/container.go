// container.go implements indexed get/set, membership, and
// length-via-property on strings, lists, tuples, and maps.
package value

import (
	"strings"

	"github.com/reed-lang/reed/pkg/rerrors"
)

// normalizeIndex applies the uniform negative-index rule: i < 0 => i
// += len, then range-check.
func normalizeIndex(i int64, length int) (int, bool) {
	if i < 0 {
		i += int64(length)
	}
	if i < 0 || i >= int64(length) {
		return 0, false
	}
	return int(i), true
}

// Get implements container[index] → result.
func Get(pool *Pool, c Value, idx Value) (Value, error) {
	switch c.tag {
	case TagTuple:
		return getSeq(pool, c.tupleObj().elems, idx, false, None)
	case TagList:
		return getSeq(pool, c.listObj().elems, idx, true, c)
	case TagStr:
		return getStr(c, idx)
	case TagMap:
		return getMap(c, idx)
	default:
		return None, rerrors.Newf(rerrors.KindInvalidSubscript, "cannot index into %s", c.tag)
	}
}

func getSeq(pool *Pool, elems []Value, idx Value, isList bool, listVal Value) (Value, error) {
	switch idx.tag {
	case TagInt:
		i, ok := normalizeIndex(idx.AsInt(), len(elems))
		if !ok {
			return None, rerrors.Newf(rerrors.KindIndexOutOfBounds, "index %d out of bounds (len %d)", idx.AsInt(), len(elems))
		}
		return elems[i], nil
	case TagRange:
		return None, rerrors.New(rerrors.KindUnimplemented, "range indexing is not implemented")
	case TagStr:
		switch idx.AsStr() {
		case "len":
			return Int(int64(len(elems))), nil
		case "append":
			if isList {
				return boundAppend(pool, listVal), nil
			}
			return None, rerrors.New(rerrors.KindNoSuchProperty, "no such property: append")
		default:
			return None, rerrors.Newf(rerrors.KindNoSuchProperty, "no such property: %s", idx.AsStr())
		}
	default:
		return None, rerrors.Newf(rerrors.KindInvalidIndexType, "invalid index type: %s", idx.Tag())
	}
}

func getStr(c Value, idx Value) (Value, error) {
	switch idx.tag {
	case TagInt:
		return None, rerrors.New(rerrors.KindUnimplemented, "integer string indexing is not implemented")
	case TagRange:
		return None, rerrors.New(rerrors.KindUnimplemented, "range string indexing is not implemented")
	case TagStr:
		switch idx.AsStr() {
		case "len":
			return Int(int64(c.Len())), nil
		default:
			return None, rerrors.Newf(rerrors.KindNoSuchProperty, "no such property: %s", idx.AsStr())
		}
	default:
		return None, rerrors.Newf(rerrors.KindInvalidIndexType, "invalid index type: %s", idx.Tag())
	}
}

func getMap(c Value, idx Value) (Value, error) {
	m := c.mapObj()
	if i, found := findMapEntry(m, idx); found {
		return m.entries[i].val, nil
	}
	return None, rerrors.New(rerrors.KindNoSuchKey, "no such key")
}

func findMapEntry(m *MapObj, key Value) (int, bool) {
	h := Hash(key)
	for _, i := range m.index[h] {
		if Eql(m.entries[i].key, key) {
			return i, true
		}
	}
	return 0, false
}

// Set implements container[index] = v.
func Set(pool *Pool, c Value, idx Value, v Value) error {
	switch c.tag {
	case TagTuple:
		return setSeq(c.tupleObj().elems, idx, v)
	case TagList:
		return setSeq(c.listObj().elems, idx, v)
	case TagMap:
		return setMap(pool, c.mapObj(), idx, v)
	default:
		return rerrors.Newf(rerrors.KindInvalidSubscript, "cannot assign into %s", c.tag)
	}
}

func setSeq(elems []Value, idx Value, v Value) error {
	if !idx.IsInt() {
		return rerrors.Newf(rerrors.KindInvalidIndexType, "invalid index type: %s", idx.Tag())
	}
	i, ok := normalizeIndex(idx.AsInt(), len(elems))
	if !ok {
		return rerrors.Newf(rerrors.KindIndexOutOfBounds, "index %d out of bounds (len %d)", idx.AsInt(), len(elems))
	}
	elems[i] = v
	return nil
}

func setMap(pool *Pool, m *MapObj, key Value, v Value) error {
	if i, found := findMapEntry(m, key); found {
		m.entries[i].val = pool.Dupe(v)
		return nil
	}
	dk, dv := pool.Dupe(key), pool.Dupe(v)
	i := len(m.entries)
	m.entries = append(m.entries, mapEntry{key: dk, val: dv})
	h := Hash(dk)
	m.index[h] = append(m.index[h], i)
	return nil
}

// In implements the `v in container` membership test.
func In(v Value, c Value) (bool, error) {
	switch c.tag {
	case TagStr:
		if !v.IsStr() {
			return false, rerrors.New(rerrors.KindInvalidSubscript, "membership test against str requires a str")
		}
		return strings.Contains(c.AsStr(), v.AsStr()), nil
	case TagTuple:
		return elemIn(v, c.tupleObj().elems), nil
	case TagList:
		return elemIn(v, c.listObj().elems), nil
	case TagMap:
		_, found := findMapEntry(c.mapObj(), v)
		return found, nil
	case TagRange:
		return rangeContains(c, v)
	default:
		return false, rerrors.Newf(rerrors.KindInvalidSubscript, "membership test against %s is undefined", c.tag)
	}
}

func elemIn(v Value, elems []Value) bool {
	for _, e := range elems {
		if Eql(e, v) {
			return true
		}
	}
	return false
}

func rangeContains(rangeVal Value, v Value) (bool, error) {
	if !v.IsInt() {
		return false, nil
	}
	start, end, step := rangeVal.AsRange()
	n := v.AsInt()
	// Membership agrees with the half-open iteration contract,
	// sign-aware like next does.
	if step > 0 {
		if n < start || n >= end {
			return false, nil
		}
	} else {
		if n > start || n <= end {
			return false, nil
		}
	}
	return (n-start)%step == 0, nil
}

// boundAppend returns the explicit bound-method native value behind
// list.append: a closure that captures the list directly, rather than
// relying on a side-channel to recover self after a property read.
func boundAppend(pool *Pool, listVal Value) Value {
	return NewNative(pool, 1, func(p *Pool, args []Value) (Value, error) {
		if len(args) != 1 {
			return None, rerrors.Newf(rerrors.KindExpectedType, "append expects 1 argument, got %d", len(args))
		}
		lo := listVal.listObj()
		lo.elems = append(lo.elems, p.Dupe(args[0]))
		return None, nil
	})
}
