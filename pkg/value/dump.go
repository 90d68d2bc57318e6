package value

import (
	"fmt"
	"io"
	"strconv"

	"github.com/reed-lang/reed/pkg/rerrors"
	"golang.org/x/text/transform"
	"golang.org/x/text/width"
)

// Dump writes value's canonical textual form to stream. At depth 0,
// compound values are abbreviated; otherwise children are printed
// recursively at depth-1. Attempting to dump an iterator is a
// programming error — iterators must never reach a debug surface.
func Dump(v Value, stream io.Writer, depth int) error {
	w := &dumpWriter{w: stream}
	dump(w, v, depth)
	return w.err
}

type dumpWriter struct {
	w   io.Writer
	err error
}

func (w *dumpWriter) s(str string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, str)
}

func dump(w *dumpWriter, v Value, depth int) {
	switch v.tag {
	case TagNone:
		w.s("none")
	case TagBool:
		if v.AsBool() {
			w.s("true")
		} else {
			w.s("false")
		}
	case TagInt:
		w.s(strconv.FormatInt(v.AsInt(), 10))
	case TagNum:
		w.s(strconv.FormatFloat(v.AsNum(), 'g', -1, 64))
	case TagStr:
		w.s(quoteStr(v.AsStr()))
	case TagRange:
		start, end, step := v.AsRange()
		w.s(fmt.Sprintf("%d:%d:%d", start, end, step))
	case TagTuple:
		dumpSeq(w, "(", ")", v.tupleObj().elems, depth)
	case TagList:
		dumpSeq(w, "[", "]", v.listObj().elems, depth)
	case TagMap:
		dumpMap(w, v.mapObj(), depth)
	case TagErr:
		if depth == 0 {
			w.s("error(...)")
			return
		}
		w.s("error(")
		dump(w, v.errObj().payload, depth-1)
		w.s(")")
	case TagTagged:
		o := v.taggedObj()
		if depth == 0 {
			w.s("@" + o.name + "(...)")
			return
		}
		w.s("@" + o.name + "(")
		dump(w, o.value, depth-1)
		w.s(")")
	case TagFunc:
		offset, argCount, _ := v.FuncInfo()
		w.s(fmt.Sprintf("fn(%d)@0x%x[%d]", argCount, offset, len(v.CapturesOf())))
	case TagNative:
		w.s(fmt.Sprintf("native(%d)@0x%x", v.NativeArgCount(), identity(v)))
	case TagIterator:
		rerrors.Panic("iterator values must never be dumped")
	default:
		rerrors.Panicf("dump: unhandled tag %s", v.tag)
	}
}

func dumpSeq(w *dumpWriter, open, shut string, elems []Value, depth int) {
	if depth == 0 {
		w.s(open + "...")
		w.s(shut)
		return
	}
	w.s(open)
	for i, e := range elems {
		if i > 0 {
			w.s(", ")
		}
		dump(w, e, depth-1)
	}
	w.s(shut)
}

func dumpMap(w *dumpWriter, m *MapObj, depth int) {
	if depth == 0 {
		w.s("{...}")
		return
	}
	w.s("{")
	for i, e := range m.entries {
		if i > 0 {
			w.s(", ")
		}
		dump(w, e.key, depth-1)
		w.s(": ")
		dump(w, e.val, depth-1)
	}
	w.s("}")
}

// quoteStr renders s quoted, with the named escapes plus backslash
// (needed for the output to be unambiguously reparseable) and \xHH for
// any other control byte.
//
// Before the byte scan, s is passed through golang.org/x/text/width's
// Fold transform, which canonicalizes fullwidth/halfwidth punctuation
// variants (e.g. a fullwidth U+FF02 quotation mark pasted from a CJK
// input method) down to their ASCII forms. Without this, such
// characters would sail through the scan unescaped and look
// indistinguishable from an ordinary quote in a monospace debug
// viewer — exactly the kind of confusable input width.Fold exists to
// normalize.
func quoteStr(s string) string {
	folded, _, err := transform.String(width.Fold, s)
	if err != nil {
		folded = s
	}
	var b []byte
	b = append(b, '"')
	for i := 0; i < len(folded); i++ {
		c := folded[i]
		switch c {
		case '\n':
			b = append(b, '\\', 'n')
		case '\t':
			b = append(b, '\\', 't')
		case '\r':
			b = append(b, '\\', 'r')
		case '\'':
			b = append(b, '\\', '\'')
		case '"':
			b = append(b, '\\', '"')
		case '\\':
			b = append(b, '\\', '\\')
		default:
			if c < 0x20 || c == 0x7f {
				b = append(b, '\\', 'x')
				b = append(b, hexDigit(c>>4), hexDigit(c&0xf))
			} else {
				b = append(b, c)
			}
		}
	}
	b = append(b, '"')
	return string(b)
}

func hexDigit(n byte) byte {
	if n < 10 {
		return '0' + n
	}
	return 'a' + (n - 10)
}
