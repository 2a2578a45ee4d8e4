package system

import (
	"reflect"
)

// Variant <-> native marshaling used by MethodBind. Conversions mirror
// the Variant accessors: a payload that cannot faithfully produce the
// requested native type degrades to that type's zero value instead of
// failing.

var objectType = reflect.TypeOf((*Object)(nil)).Elem()

// typeTagOf maps a native Go type to its Variant tag. ok is false for
// types the reflection layer cannot carry.
func typeTagOf(t reflect.Type) (Type, bool) {
	switch t.Kind() {
	case reflect.Bool:
		return TypeBool, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return TypeInt64, true
	case reflect.Float32, reflect.Float64:
		return TypeDouble, true
	case reflect.String:
		return TypeString, true
	}
	if t.Implements(objectType) {
		return TypeObject, true
	}
	return TypeNull, false
}

// variantToNative converts v to the native type t. reflect.Convert
// handles width narrowing for the scalar kinds without panicking.
func variantToNative(v Variant, t reflect.Type) reflect.Value {
	switch t.Kind() {
	case reflect.Bool:
		return reflect.ValueOf(v.AsBool(false)).Convert(t)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return reflect.ValueOf(v.AsInt64(0)).Convert(t)
	case reflect.Float32, reflect.Float64:
		return reflect.ValueOf(v.AsFloat64(0)).Convert(t)
	case reflect.String:
		return reflect.ValueOf(v.AsString()).Convert(t)
	}
	if t.Implements(objectType) {
		o := v.AsObject(nil)
		if o == nil {
			return reflect.Zero(t)
		}
		rv := reflect.ValueOf(o)
		if rv.Type().AssignableTo(t) {
			return rv
		}
		return reflect.Zero(t)
	}
	return reflect.Zero(t)
}

// nativeToVariant wraps a native return value into a Variant.
func nativeToVariant(rv reflect.Value) Variant {
	switch rv.Kind() {
	case reflect.Bool:
		return FromBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromInt64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return FromInt64(int64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return FromFloat64(rv.Float())
	case reflect.String:
		return FromString(rv.String())
	}
	if rv.IsValid() && rv.Type().Implements(objectType) {
		if rv.IsNil() {
			return Variant{}
		}
		return FromObject(rv.Interface().(Object))
	}
	return Variant{}
}
