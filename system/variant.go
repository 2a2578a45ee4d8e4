// Package system implements the PawsEngine meta-object layer: the
// Variant dynamic value, the class database, and the type-erased
// method and property bindings that let compiled classes be invoked
// by name.
package system

import (
	"math"
	"strconv"
)

// Type identifies which payload member of a Variant is active.
type Type byte

const (
	TypeNull Type = iota

	TypeBool
	TypeInt64
	TypeDouble

	TypeString

	TypeObject

	// typeEnd marks the end of the closed type set and sizes the
	// evaluator table.
	typeEnd
)

// String returns the tag name, e.g. "Int64".
func (t Type) String() string {
	switch t {
	case TypeNull:
		return "Null"
	case TypeBool:
		return "Bool"
	case TypeInt64:
		return "Int64"
	case TypeDouble:
		return "Double"
	case TypeString:
		return "String"
	case TypeObject:
		return "Object"
	default:
		return "Unknown"
	}
}

// objectRef is the Object payload of a Variant. It carries the raw
// reference together with the instance identity so staleness can be
// detected without owning the referent.
type objectRef struct {
	ref Object
	id  InstanceID
}

// Variant is a closed tagged union holding one of {null, bool, int64,
// double, string, object reference}.
//
// Scalar payloads (Bool, Int64, Double) share a single 64-bit slot and
// are stored bitwise; String and Object payloads are lightweight
// handles, so copying a Variant never copies deep data. The zero
// Variant is Null.
type Variant struct {
	t    Type
	bits uint64
	str  string
	obj  objectRef
}

// Clear resets the Variant to Null, dropping any payload reference.
func (v *Variant) Clear() {
	*v = Variant{}
}

// Type returns the active payload tag.
func (v Variant) Type() Type { return v.t }

// IsNull returns true if the Variant holds no value.
func (v Variant) IsNull() bool { return v.t == TypeNull }

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// FromBool creates a Bool Variant.
func FromBool(value bool) Variant {
	var bits uint64
	if value {
		bits = 1
	}
	return Variant{t: TypeBool, bits: bits}
}

// FromInt64 creates an Int64 Variant.
func FromInt64(value int64) Variant {
	return Variant{t: TypeInt64, bits: uint64(value)}
}

// FromInt creates an Int64 Variant from a machine int.
func FromInt(value int) Variant {
	return FromInt64(int64(value))
}

// FromFloat64 creates a Double Variant.
func FromFloat64(value float64) Variant {
	return Variant{t: TypeDouble, bits: math.Float64bits(value)}
}

// FromString creates a String Variant.
func FromString(value string) Variant {
	return Variant{t: TypeString, str: value}
}

// FromObject creates an Object Variant. The Variant records the
// object's instance identity; a nil object produces a Null Variant.
func FromObject(value Object) Variant {
	if value == nil {
		return Variant{}
	}
	return Variant{t: TypeObject, obj: objectRef{ref: value, id: value.InstanceID()}}
}

// ---------------------------------------------------------------------------
// Converting accessors
//
// Accessors perform best-effort conversion and fall back to the
// caller-supplied default when the stored type cannot convert. This
// leniency is deliberate: it is what makes default-argument
// substitution and permissive invocation work.
// ---------------------------------------------------------------------------

// AsBool returns the value as a bool. Numeric payloads convert as
// non-zero; other tags fall back to defaultValue.
func (v Variant) AsBool(defaultValue bool) bool {
	switch v.t {
	case TypeBool:
		return v.bits != 0
	case TypeInt64:
		return int64(v.bits) != 0
	case TypeDouble:
		return math.Float64frombits(v.bits) != 0
	default:
		return defaultValue
	}
}

// AsInt64 returns the value as an int64. Bool converts as 0/1, Double
// truncates; other tags fall back to defaultValue.
func (v Variant) AsInt64(defaultValue int64) int64 {
	switch v.t {
	case TypeBool:
		return int64(v.bits)
	case TypeInt64:
		return int64(v.bits)
	case TypeDouble:
		return int64(math.Float64frombits(v.bits))
	default:
		return defaultValue
	}
}

// AsFloat64 returns the value as a float64. Bool converts as 0/1,
// Int64 widens; other tags fall back to defaultValue.
func (v Variant) AsFloat64(defaultValue float64) float64 {
	switch v.t {
	case TypeBool:
		return float64(v.bits)
	case TypeInt64:
		return float64(int64(v.bits))
	case TypeDouble:
		return math.Float64frombits(v.bits)
	default:
		return defaultValue
	}
}

// AsString returns the String payload, or the ToString rendering for
// every other tag.
func (v Variant) AsString() string {
	if v.t == TypeString {
		return v.str
	}
	return v.ToString()
}

// AsObject returns the referenced object if the payload is an Object
// reference and the instance is still alive. A stale reference falls
// back to defaultValue rather than handing out a dangling object.
func (v Variant) AsObject(defaultValue Object) Object {
	if v.t != TypeObject || v.obj.ref == nil {
		return defaultValue
	}
	if !IsInstanceValid(v.obj.id) {
		return defaultValue
	}
	return v.obj.ref
}

// ObjectID returns the instance identity carried by an Object Variant,
// or 0 for every other tag.
func (v Variant) ObjectID() InstanceID {
	if v.t != TypeObject {
		return 0
	}
	return v.obj.id
}

// ---------------------------------------------------------------------------
// Rendering
// ---------------------------------------------------------------------------

// ToString renders the value for display.
func (v Variant) ToString() string {
	switch v.t {
	case TypeNull:
		return "null"
	case TypeBool:
		if v.bits != 0 {
			return "true"
		}
		return "false"
	case TypeInt64:
		return strconv.FormatInt(int64(v.bits), 10)
	case TypeDouble:
		return strconv.FormatFloat(math.Float64frombits(v.bits), 'g', -1, 64)
	case TypeString:
		return v.str
	case TypeObject:
		if IsInstanceValid(v.obj.id) {
			return v.obj.ref.ClassName() + "@" + strconv.FormatUint(uint64(v.obj.id), 10)
		}
		return "[freed object]"
	default:
		return "<invalid>"
	}
}

// String implements fmt.Stringer.
func (v Variant) String() string { return v.ToString() }

// ---------------------------------------------------------------------------
// Comparison helpers
// ---------------------------------------------------------------------------

// Equals compares two Variants through the operator table. Tag pairs
// with no Equal entry compare unequal, so differing tags are never
// equal.
func (v Variant) Equals(other Variant) bool {
	if !CanEvaluate(OpEqual, v.t, other.t) {
		return false
	}
	r, err := Evaluate(OpEqual, v, other)
	if err != nil {
		return false
	}
	return r.AsBool(false)
}
