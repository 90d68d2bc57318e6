package value

import "github.com/reed-lang/reed/pkg/rerrors"

// Eql implements structural equality: recursive across containers,
// with the documented exceptions (maps compare by identity; func/native
// compare by identity and are never equal across each other's tag).
func Eql(a, b Value) bool {
	if a.tag == TagIterator || b.tag == TagIterator {
		rerrors.Panic("iterator values must never be compared")
	}

	// int/num is the sole cross-tag exception.
	if a.tag != b.tag {
		if a.IsInt() && b.IsNum() {
			return float64(a.AsInt()) == b.AsNum()
		}
		if a.IsNum() && b.IsInt() {
			return a.AsNum() == float64(b.AsInt())
		}
		return false
	}

	switch a.tag {
	case TagNone:
		return true
	case TagBool:
		return a.bits == b.bits
	case TagInt:
		return a.AsInt() == b.AsInt()
	case TagNum:
		return a.AsNum() == b.AsNum()
	case TagStr:
		return a.AsStr() == b.AsStr()
	case TagRange:
		as, ae, ast := a.AsRange()
		bs, be, bst := b.AsRange()
		return as == bs && ae == be && ast == bst
	case TagTuple:
		ae, be := a.tupleObj().elems, b.tupleObj().elems
		return elemsEql(ae, be)
	case TagList:
		ae, be := a.listObj().elems, b.listObj().elems
		return elemsEql(ae, be)
	case TagMap:
		// Map equality falls back to identity: two structurally
		// identical but distinct maps are not eql.
		return objPtr(a) == objPtr(b)
	case TagErr:
		return Eql(a.errObj().payload, b.errObj().payload)
	case TagTagged:
		ao, bo := a.taggedObj(), b.taggedObj()
		return ao.name == bo.name && Eql(ao.value, bo.value)
	case TagFunc, TagNative:
		return objPtr(a) == objPtr(b)
	default:
		rerrors.Panicf("eql: unhandled tag %s", a.tag)
		panic("unreachable")
	}
}

func elemsEql(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Eql(a[i], b[i]) {
			return false
		}
	}
	return true
}
