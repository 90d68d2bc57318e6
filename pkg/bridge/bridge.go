// Package bridge adapts host Go values and functions to and from the
// value runtime, using reflection the way a host embedder would to
// register native constants and functions without writing a wrapper by
// hand for every signature.
package bridge

import (
	"encoding"
	"reflect"
	"strings"

	"github.com/reed-lang/reed/pkg/rerrors"
	"github.com/reed-lang/reed/pkg/value"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()
var poolType = reflect.TypeOf((*value.Pool)(nil))
var valueType = reflect.TypeOf(value.Value{})
var textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// FromHost converts a host Go value into a runtime value. Supported
// kinds are the ones the runtime has a direct representation for:
// string, the signed/unsigned/float numeric kinds, bool, a named type
// implementing encoding.TextMarshaler (the idiomatic Go rendition of an
// enumerator — see fromReflectValue), and a struct (its exported fields
// become a namespaced map). Anything else panics — registering an
// unsupported constant is a host programming error, not a recoverable
// runtime condition.
func FromHost(pool *value.Pool, v interface{}) value.Value {
	if v == nil {
		return value.None
	}
	return fromReflectValue(pool, reflect.ValueOf(v))
}

func fromReflectValue(pool *value.Pool, rv reflect.Value) value.Value {
	// A named type that knows how to render itself as text is treated
	// as an enumerator, regardless of its underlying kind: Go has no
	// built-in enum type, and a String()/MarshalText() pair over a set
	// of named constants is the idiom the standard library itself uses
	// for exactly this (e.g. time.Month, net.Flags).
	if tm, ok := asTextMarshaler(rv); ok {
		text, err := tm.MarshalText()
		if err != nil {
			panic("bridge: enumerator MarshalText: " + err.Error())
		}
		return value.NewTagged(pool, string(text), value.None)
	}

	switch rv.Kind() {
	case reflect.String:
		return value.NewStr(pool, []byte(rv.String()), false)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return value.Int(int64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return value.Num(rv.Float())
	case reflect.Bool:
		return value.Bool(rv.Bool())
	case reflect.Struct:
		return structToMap(pool, rv)
	default:
		panic("bridge: cannot convert host value of kind " + rv.Kind().String())
	}
}

func asTextMarshaler(rv reflect.Value) (encoding.TextMarshaler, bool) {
	if rv.Type().Implements(textMarshalerType) {
		return rv.Interface().(encoding.TextMarshaler), true
	}
	if reflect.PtrTo(rv.Type()).Implements(textMarshalerType) {
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		return ptr.Interface().(encoding.TextMarshaler), true
	}
	return nil, false
}

// structToMap converts a struct's exported fields into a namespaced
// map, keyed by json tag name where present and by field name
// otherwise, matching the property-binding convention of a reflection
// embedder (respect json tags, skip "-" and unexported fields).
func structToMap(pool *value.Pool, rv reflect.Value) value.Value {
	m := value.NewMap(pool)
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := structFieldName(f)
		if name == "-" {
			continue
		}
		key := value.NewStr(pool, []byte(name), false)
		fv := fromReflectValue(pool, rv.Field(i))
		if err := value.Set(pool, m, key, fv); err != nil {
			panic("bridge: " + err.Error())
		}
	}
	return m
}

func structFieldName(f reflect.StructField) string {
	if tag, ok := f.Tag.Lookup("json"); ok {
		if name := strings.Split(tag, ",")[0]; name != "" {
			return name
		}
	}
	return f.Name
}

// ToHost converts a runtime value into a host Go value of the given
// type, enforcing that v's tag actually matches target — there is no
// silent coercion (a str is never stringified from a num, say): the
// host asked for a specific shape and gets exactly that shape or an
// error. pool is required for the map-target case, which walks v via
// the iteration protocol, and for the *value.Pool passthrough case.
func ToHost(pool *value.Pool, v value.Value, target reflect.Type) (interface{}, error) {
	rv, err := toReflectValue(pool, v, target)
	if err != nil {
		return nil, err
	}
	return rv.Interface(), nil
}

func toReflectValue(pool *value.Pool, v value.Value, target reflect.Type) (reflect.Value, error) {
	// An enum target is a named type that unmarshals itself from text:
	// the runtime's mirror of this is a tagged value whose payload is
	// none and whose name is one of the target's declared enumerators.
	if reflect.PtrTo(target).Implements(textUnmarshalerType) {
		return enumFromTagged(v, target)
	}

	switch target.Kind() {
	case reflect.String:
		if !v.IsStr() {
			return reflect.Value{}, rerrors.Newf(rerrors.KindExpectedType, "expected str, got %s", v.Tag())
		}
		return reflect.ValueOf(v.AsStr()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !v.IsInt() {
			return reflect.Value{}, rerrors.Newf(rerrors.KindExpectedType, "expected int, got %s", v.Tag())
		}
		out := reflect.New(target).Elem()
		if out.OverflowInt(v.AsInt()) {
			return reflect.Value{}, rerrors.Newf(rerrors.KindIntOverflow, "cannot fit int %d in %s", v.AsInt(), target)
		}
		out.SetInt(v.AsInt())
		return out, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if !v.IsInt() {
			return reflect.Value{}, rerrors.Newf(rerrors.KindExpectedType, "expected int, got %s", v.Tag())
		}
		n := v.AsInt()
		if n < 0 {
			return reflect.Value{}, rerrors.Newf(rerrors.KindIntOverflow, "cannot fit negative int %d in %s", n, target)
		}
		out := reflect.New(target).Elem()
		if out.OverflowUint(uint64(n)) {
			return reflect.Value{}, rerrors.Newf(rerrors.KindIntOverflow, "cannot fit int %d in %s", n, target)
		}
		out.SetUint(uint64(n))
		return out, nil
	case reflect.Float32, reflect.Float64:
		if !v.IsNum() {
			return reflect.Value{}, rerrors.Newf(rerrors.KindExpectedType, "expected num, got %s", v.Tag())
		}
		out := reflect.New(target).Elem()
		out.SetFloat(v.AsNum())
		return out, nil
	case reflect.Bool:
		if !v.IsBool() {
			return reflect.Value{}, rerrors.Newf(rerrors.KindExpectedType, "expected bool, got %s", v.Tag())
		}
		return reflect.ValueOf(v.AsBool()), nil
	case reflect.Map:
		return mapFromRuntime(pool, v, target)
	case reflect.Ptr:
		return passThroughPointer(pool, v, target)
	default:
		return reflect.Value{}, rerrors.Newf(rerrors.KindExpectedType, "unsupported host type %s", target)
	}
}

func enumFromTagged(v value.Value, target reflect.Type) (reflect.Value, error) {
	if !v.IsTagged() || !v.TaggedValue().IsNone() {
		return reflect.Value{}, rerrors.Newf(rerrors.KindExpectedType, "expected tagged{name, NONE} enumerator, got %s", v.Tag())
	}
	ptr := reflect.New(target)
	if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(v.TaggedName())); err != nil {
		return reflect.Value{}, rerrors.Newf(rerrors.KindNoSuchEnumerator, "no such enumerator %q for %s", v.TaggedName(), target)
	}
	return ptr.Elem(), nil
}

// mapFromRuntime converts a runtime map value into a host Go map, via
// the iteration protocol rather than reaching into the map's internal
// entries: each step yields a (key, value) tuple that is itself
// recursively converted against the target's key/elem types.
func mapFromRuntime(pool *value.Pool, v value.Value, target reflect.Type) (reflect.Value, error) {
	if !v.IsMap() {
		return reflect.Value{}, rerrors.Newf(rerrors.KindExpectedType, "expected map, got %s", v.Tag())
	}
	out := reflect.MakeMapWithSize(target, v.Len())
	it, err := value.NewIterator(pool, v)
	if err != nil {
		return reflect.Value{}, err
	}
	for {
		pair, err := value.Next(pool, it)
		if err != nil {
			return reflect.Value{}, err
		}
		if pair.IsNone() {
			break
		}
		keyVal, err := value.Get(pool, pair, value.Int(0))
		if err != nil {
			return reflect.Value{}, err
		}
		elemVal, err := value.Get(pool, pair, value.Int(1))
		if err != nil {
			return reflect.Value{}, err
		}
		key, err := toReflectValue(pool, keyVal, target.Key())
		if err != nil {
			return reflect.Value{}, err
		}
		elem, err := toReflectValue(pool, elemVal, target.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetMapIndex(key, elem)
	}
	return out, nil
}

// passThroughPointer handles the two pointer targets that carry no
// runtime-value shape of their own and so need no tag check: the pool
// itself (the host's one legitimate reason to reach past the bridge),
// and a raw *value.Value for host code that wants the tagged union
// untouched.
func passThroughPointer(pool *value.Pool, v value.Value, target reflect.Type) (reflect.Value, error) {
	switch {
	case target == poolType:
		if pool == nil {
			return reflect.Value{}, rerrors.New(rerrors.KindExpectedType, "no pool available for *value.Pool target")
		}
		return reflect.ValueOf(pool), nil
	case target.Elem() == valueType:
		vv := v
		return reflect.ValueOf(&vv), nil
	default:
		return reflect.Value{}, rerrors.Newf(rerrors.KindExpectedType, "unsupported pointer target %s", target)
	}
}

// Wrap adapts a Go function into a native value callable from runtime
// source, via reflection over its signature — the same trick a host
// embedder uses to avoid writing one hand-rolled wrapper per native
// function signature.
//
// If fn's first parameter is *value.Pool, it is treated as an implicit
// argument: the wrapper supplies it from the call itself, it is never
// taken from the language-level argument list, and it does not count
// toward the native value's reported arity.
//
// fn must return either nothing, a single value, a single error, or a
// (value, error) pair. Anything else panics at wrap time — that is a
// host programming error caught long before any call happens.
func Wrap(pool *value.Pool, fn interface{}) value.Value {
	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func {
		panic("bridge.Wrap: fn must be a function")
	}
	if fnType.IsVariadic() {
		panic("bridge.Wrap: variadic functions are not supported")
	}
	if err := validateReturns(fnType); err != nil {
		panic("bridge.Wrap: " + err.Error())
	}

	implicit := fnType.NumIn() > 0 && fnType.In(0) == poolType
	offset := 0
	if implicit {
		offset = 1
	}
	argCount := fnType.NumIn() - offset

	return value.NewNative(pool, uint8(argCount), func(p *value.Pool, args []value.Value) (value.Value, error) {
		if len(args) != argCount {
			return value.None, rerrors.Newf(rerrors.KindExpectedType, "expected %d arguments, got %d", argCount, len(args))
		}
		in := make([]reflect.Value, fnType.NumIn())
		if implicit {
			in[0] = reflect.ValueOf(p)
		}
		for i, arg := range args {
			rv, err := toReflectValue(p, arg, fnType.In(i+offset))
			if err != nil {
				return value.None, err
			}
			in[i+offset] = rv
		}
		return callAndConvert(p, fnVal, in)
	})
}

func validateReturns(fnType reflect.Type) error {
	switch fnType.NumOut() {
	case 0, 1:
		return nil
	case 2:
		if fnType.Out(1) != errorType {
			return rerrors.New(rerrors.KindExpectedType, "second return value must be error")
		}
		return nil
	default:
		return rerrors.New(rerrors.KindExpectedType, "must return at most (value, error)")
	}
}

func callAndConvert(pool *value.Pool, fnVal reflect.Value, in []reflect.Value) (value.Value, error) {
	out := fnVal.Call(in)
	switch len(out) {
	case 0:
		return value.None, nil
	case 1:
		if out[0].Type() == errorType {
			if out[0].IsNil() {
				return value.None, nil
			}
			return value.None, out[0].Interface().(error)
		}
		return toReturnValue(pool, out[0]), nil
	case 2:
		var err error
		if !out[1].IsNil() {
			err = out[1].Interface().(error)
		}
		if err != nil {
			return value.None, err
		}
		return toReturnValue(pool, out[0]), nil
	default:
		panic("unreachable")
	}
}

// toReturnValue converts a Go function's first result into a runtime
// value. A function already returning value.Value directly — the
// common case when it needs the allocator to shape its own result,
// like a string built from an implicit *value.Pool argument — is
// passed through unconverted instead of being run through
// fromReflectValue, which only understands host primitive kinds.
func toReturnValue(pool *value.Pool, rv reflect.Value) value.Value {
	if rv.Type() == valueType {
		return rv.Interface().(value.Value)
	}
	return fromReflectValue(pool, rv)
}
