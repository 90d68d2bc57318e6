package value

import (
	"encoding/binary"

	"github.com/reed-lang/reed/pkg/rerrors"
	"github.com/zeebo/xxh3"
)

// Hash computes a 32-bit hash: the tag is mixed in first (ints mix the
// num tag, so they hash like the equal num), then a type-specific
// projection. It uses xxh3 to do the mixing instead of
// hand-rolling an FNV/Murmur variant, truncating its 64-bit digest to
// 32 bits.
//
// Hash and Eql must agree: wherever Eql recurses structurally (int/num
// cross-type, str, range, tuple, list, err, tagged), Hash must recurse
// the same way; wherever Eql falls back to identity (map, func,
// native), Hash must hash identity too.
func Hash(v Value) uint32 {
	var buf [9]byte
	buf[0] = byte(v.tag)

	switch v.tag {
	case TagIterator:
		rerrors.Panic("iterator values must never be hashed")
	case TagNone:
		return digest(buf[:1])
	case TagBool:
		buf[1] = byte(v.bits)
		return digest(buf[:2])
	case TagInt:
		// int and the equal-valued num must hash alike, since Eql
		// treats them as equal after exact-to-float conversion: mix
		// the num tag byte and the float64 projection in both cases.
		buf[0] = byte(TagNum)
		binary.LittleEndian.PutUint64(buf[1:], floatBits(float64(v.AsInt())))
		return digest(buf[:9])
	case TagNum:
		f := v.AsNum()
		if f == 0 {
			f = 0 // -0.0 is eql to 0.0 and to int 0, so hash it as +0.0
		}
		binary.LittleEndian.PutUint64(buf[1:], floatBits(f))
		return digest(buf[:9])
	case TagStr:
		h := xxh3.Hash(v.strObj().bytes)
		binary.LittleEndian.PutUint64(buf[1:], h)
		return digest(buf[:9])
	case TagRange:
		start, end, step := v.AsRange()
		b := make([]byte, 1, 25)
		b[0] = buf[0]
		b = binary.LittleEndian.AppendUint64(b, uint64(start))
		b = binary.LittleEndian.AppendUint64(b, uint64(end))
		b = binary.LittleEndian.AppendUint64(b, uint64(step))
		return digest(b)
	case TagTuple, TagList:
		// Eql recurses elementwise over tuples and lists, so Hash must
		// fold each element's hash in too, or two elementwise-equal
		// sequences could hash differently.
		var elems []Value
		if v.tag == TagTuple {
			elems = v.tupleObj().elems
		} else {
			elems = v.listObj().elems
		}
		h := digest(buf[:1])
		for _, e := range elems {
			var eb [4]byte
			binary.LittleEndian.PutUint32(eb[:], Hash(e))
			h ^= digest(eb[:])
		}
		return h
	case TagMap:
		// Map equality falls back to identity, so its hash must too.
		binary.LittleEndian.PutUint64(buf[1:], uint64(v.Len()))
		h := digest(buf[:9])
		return h ^ uint32(identity(v))
	case TagErr:
		inner := Hash(v.errObj().payload)
		binary.LittleEndian.PutUint32(buf[1:5], inner)
		return digest(buf[:5])
	case TagTagged:
		o := v.taggedObj()
		nameHash := xxh3.HashString(o.name)
		inner := Hash(o.value)
		b := make([]byte, 1, 13)
		b[0] = buf[0]
		b = binary.LittleEndian.AppendUint64(b, nameHash)
		b = binary.LittleEndian.AppendUint32(b, inner)
		return digest(b)
	case TagFunc, TagNative:
		return uint32(v.tag) ^ uint32(identity(v))
	default:
		rerrors.Panicf("hash: unhandled tag %s", v.tag)
	}
	panic("unreachable")
}

func digest(b []byte) uint32 {
	return uint32(xxh3.Hash(b))
}
