package value

import (
	"strconv"

	"github.com/dlclark/regexp2"
	"github.com/reed-lang/reed/pkg/rerrors"
)

// intLiteral matches the token shape as(str, int) accepts on its fast
// path: an optional sign followed by one or more digits. Validating the
// string's shape before strconv.ParseInt runs means a malformed token
// (e.g. "12.5" or "1,000") short-circuits straight to the cast error
// instead of paying for a ParseInt call that was always going to fail.
var intLiteral = regexp2.MustCompile(`^[+-]?[0-9]+$`, regexp2.None)

// As implements the `as` cast operation.
func As(pool *Pool, v Value, target Tag) (Value, error) {
	if target == TagNone {
		return None, nil
	}
	if target == v.tag {
		return v, nil
	}

	switch target {
	case TagBool:
		return castToBool(v)
	case TagInt:
		return castToInt(v)
	case TagNum:
		return castToNum(v)
	case TagStr, TagTuple, TagMap, TagList:
		return None, rerrors.New(rerrors.KindUnimplemented, "cast to "+target.String()+" is not implemented")
	case TagErr, TagRange, TagFunc, TagNative:
		return None, rerrors.New(rerrors.KindInvalidCast, "cast to "+target.String()+" is undefined")
	default:
		return None, rerrors.Newf(rerrors.KindInvalidCast, "unknown cast target %s", target)
	}
}

func castToBool(v Value) (Value, error) {
	switch v.tag {
	case TagInt:
		return Bool(v.AsInt() != 0), nil
	case TagNum:
		return Bool(v.AsNum() != 0), nil
	case TagStr:
		switch v.AsStr() {
		case "true":
			return True, nil
		case "false":
			return False, nil
		default:
			return None, rerrors.New(rerrors.KindCannotCastToBool, "cannot cast string to bool")
		}
	default:
		return None, rerrors.Newf(rerrors.KindInvalidCast, "cannot cast %s to bool", v.tag)
	}
}

func castToInt(v Value) (Value, error) {
	switch v.tag {
	case TagNum:
		return Int(int64(v.AsNum())), nil
	case TagBool:
		if v.AsBool() {
			return Int(1), nil
		}
		return Int(0), nil
	case TagStr:
		s := v.AsStr()
		if ok, _ := intLiteral.MatchString(s); !ok {
			return None, rerrors.Newf(rerrors.KindInvalidCast, "invalid cast to int: %q", s)
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return None, rerrors.Newf(rerrors.KindInvalidCast, "invalid cast to int: %q", s)
		}
		return Int(n), nil
	default:
		return None, rerrors.Newf(rerrors.KindInvalidCast, "cannot cast %s to int", v.tag)
	}
}

func castToNum(v Value) (Value, error) {
	switch v.tag {
	case TagInt:
		return Num(float64(v.AsInt())), nil
	case TagBool:
		if v.AsBool() {
			return Num(1), nil
		}
		return Num(0), nil
	case TagStr:
		f, err := strconv.ParseFloat(v.AsStr(), 64)
		if err != nil {
			return None, rerrors.Newf(rerrors.KindInvalidCast, "invalid cast to num: %q", v.AsStr())
		}
		return Num(f), nil
	default:
		return None, rerrors.Newf(rerrors.KindInvalidCast, "cannot cast %s to num", v.tag)
	}
}
