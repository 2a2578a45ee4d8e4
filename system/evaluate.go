package system

import (
	"errors"
	"fmt"
	"math"
)

// Operator identifies a Variant binary or unary operation. Unary
// operators (Negative, Positive, Not, BitFlip) occupy the same table
// with a Null right-hand tag.
type Operator byte

const (
	OpEqual Operator = iota
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual

	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpMod
	OpNegative
	OpPositive

	OpAnd
	OpOr
	OpXOr
	OpNot

	OpBitAnd
	OpBitOr
	OpBitXOr
	OpBitFlip
	OpBitShiftLeft
	OpBitShiftRight

	operatorEnd
)

var operatorNames = [operatorEnd]string{
	OpEqual:         "Equal",
	OpNotEqual:      "NotEqual",
	OpLess:          "Less",
	OpLessEqual:     "LessEqual",
	OpGreater:       "Greater",
	OpGreaterEqual:  "GreaterEqual",
	OpAdd:           "Add",
	OpSubtract:      "Subtract",
	OpMultiply:      "Multiply",
	OpDivide:        "Divide",
	OpMod:           "Mod",
	OpNegative:      "Negative",
	OpPositive:      "Positive",
	OpAnd:           "And",
	OpOr:            "Or",
	OpXOr:           "XOr",
	OpNot:           "Not",
	OpBitAnd:        "BitAnd",
	OpBitOr:         "BitOr",
	OpBitXOr:        "BitXOr",
	OpBitFlip:       "BitFlip",
	OpBitShiftLeft:  "BitShiftLeft",
	OpBitShiftRight: "BitShiftRight",
}

// String returns the operator name, e.g. "Add".
func (op Operator) String() string {
	if op < operatorEnd {
		return operatorNames[op]
	}
	return "Unknown"
}

// ErrUnsupportedOperator is returned by Evaluate when no evaluator is
// registered for the (left tag, right tag, operator) triple.
var ErrUnsupportedOperator = errors.New("unsupported operator for operand types")

// evaluator performs one specific (type, type, operator) combination.
type evaluator func(a, b Variant) Variant

// Evaluator table indexed [left tag][right tag][operator]. Populated
// once by the package initializer below; read-only afterwards, so
// lookups need no synchronization.
var evaluators [typeEnd][typeEnd][operatorEnd]evaluator

// CanEvaluate reports whether an evaluator exists for the triple.
// Callers use it to avoid triggering ErrUnsupportedOperator.
func CanEvaluate(op Operator, a, b Type) bool {
	if op >= operatorEnd || a >= typeEnd || b >= typeEnd {
		return false
	}
	return evaluators[a][b][op] != nil
}

// Evaluate applies op to a and b through the dispatch table.
func Evaluate(op Operator, a, b Variant) (Variant, error) {
	if !CanEvaluate(op, a.t, b.t) {
		return Variant{}, fmt.Errorf("%w: %s(%s, %s)", ErrUnsupportedOperator, op, a.t, b.t)
	}
	return evaluators[a.t][b.t][op](a, b), nil
}

// EvaluateUnary applies a unary operator to a. Unary entries are
// registered against a Null right-hand tag.
func EvaluateUnary(op Operator, a Variant) (Variant, error) {
	return Evaluate(op, a, Variant{})
}

func registerEvaluator(op Operator, a, b Type, fn evaluator) {
	if evaluators[a][b][op] != nil {
		panic(fmt.Sprintf("system: duplicate evaluator for %s(%s, %s)", op, a, b))
	}
	evaluators[a][b][op] = fn
}

// The table is built eagerly, before any Evaluate/CanEvaluate call can
// run, by this deterministic one-time initializer.
func init() {
	registerNullEvaluators()
	registerBoolEvaluators()
	registerIntEvaluators()
	registerDoubleEvaluators()
	registerNumericPromotionEvaluators()
	registerStringEvaluators()
	registerObjectEvaluators()
}

// ---------------------------------------------------------------------------
// Null
// ---------------------------------------------------------------------------

func registerNullEvaluators() {
	registerEvaluator(OpEqual, TypeNull, TypeNull, func(a, b Variant) Variant {
		return FromBool(true)
	})
	registerEvaluator(OpNotEqual, TypeNull, TypeNull, func(a, b Variant) Variant {
		return FromBool(false)
	})
}

// ---------------------------------------------------------------------------
// Bool
// ---------------------------------------------------------------------------

func registerBoolEvaluators() {
	registerEvaluator(OpEqual, TypeBool, TypeBool, func(a, b Variant) Variant {
		return FromBool(a.AsBool(false) == b.AsBool(false))
	})
	registerEvaluator(OpNotEqual, TypeBool, TypeBool, func(a, b Variant) Variant {
		return FromBool(a.AsBool(false) != b.AsBool(false))
	})

	// Logical operators treat Bool as a truth value.
	registerEvaluator(OpAnd, TypeBool, TypeBool, func(a, b Variant) Variant {
		return FromBool(a.AsBool(false) && b.AsBool(false))
	})
	registerEvaluator(OpOr, TypeBool, TypeBool, func(a, b Variant) Variant {
		return FromBool(a.AsBool(false) || b.AsBool(false))
	})
	registerEvaluator(OpXOr, TypeBool, TypeBool, func(a, b Variant) Variant {
		return FromBool(a.AsBool(false) != b.AsBool(false))
	})
	registerEvaluator(OpNot, TypeBool, TypeNull, func(a, b Variant) Variant {
		return FromBool(!a.AsBool(false))
	})

	// Bitwise operators treat true/false as 1/0 and produce Int64.
	for _, pair := range [][2]Type{{TypeBool, TypeBool}, {TypeBool, TypeInt64}, {TypeInt64, TypeBool}} {
		ta, tb := pair[0], pair[1]
		registerEvaluator(OpBitAnd, ta, tb, func(a, b Variant) Variant {
			return FromInt64(a.AsInt64(0) & b.AsInt64(0))
		})
		registerEvaluator(OpBitOr, ta, tb, func(a, b Variant) Variant {
			return FromInt64(a.AsInt64(0) | b.AsInt64(0))
		})
		registerEvaluator(OpBitXOr, ta, tb, func(a, b Variant) Variant {
			return FromInt64(a.AsInt64(0) ^ b.AsInt64(0))
		})
		registerEvaluator(OpBitShiftLeft, ta, tb, func(a, b Variant) Variant {
			return FromInt64(shiftLeft(a.AsInt64(0), b.AsInt64(0)))
		})
		registerEvaluator(OpBitShiftRight, ta, tb, func(a, b Variant) Variant {
			return FromInt64(shiftRight(a.AsInt64(0), b.AsInt64(0)))
		})
	}
	registerEvaluator(OpBitFlip, TypeBool, TypeNull, func(a, b Variant) Variant {
		return FromInt64(^a.AsInt64(0))
	})
}

// ---------------------------------------------------------------------------
// Int64
// ---------------------------------------------------------------------------

func registerIntEvaluators() {
	cmp := func(op Operator, fn func(a, b int64) bool) {
		registerEvaluator(op, TypeInt64, TypeInt64, func(a, b Variant) Variant {
			return FromBool(fn(a.AsInt64(0), b.AsInt64(0)))
		})
	}
	cmp(OpEqual, func(a, b int64) bool { return a == b })
	cmp(OpNotEqual, func(a, b int64) bool { return a != b })
	cmp(OpLess, func(a, b int64) bool { return a < b })
	cmp(OpLessEqual, func(a, b int64) bool { return a <= b })
	cmp(OpGreater, func(a, b int64) bool { return a > b })
	cmp(OpGreaterEqual, func(a, b int64) bool { return a >= b })

	registerEvaluator(OpAdd, TypeInt64, TypeInt64, func(a, b Variant) Variant {
		return FromInt64(a.AsInt64(0) + b.AsInt64(0))
	})
	registerEvaluator(OpSubtract, TypeInt64, TypeInt64, func(a, b Variant) Variant {
		return FromInt64(a.AsInt64(0) - b.AsInt64(0))
	})
	registerEvaluator(OpMultiply, TypeInt64, TypeInt64, func(a, b Variant) Variant {
		return FromInt64(a.AsInt64(0) * b.AsInt64(0))
	})
	// Integer division and modulo by zero yield Null: the entry exists,
	// the result just carries no value.
	registerEvaluator(OpDivide, TypeInt64, TypeInt64, func(a, b Variant) Variant {
		d := b.AsInt64(0)
		if d == 0 {
			return Variant{}
		}
		return FromInt64(a.AsInt64(0) / d)
	})
	registerEvaluator(OpMod, TypeInt64, TypeInt64, func(a, b Variant) Variant {
		d := b.AsInt64(0)
		if d == 0 {
			return Variant{}
		}
		return FromInt64(a.AsInt64(0) % d)
	})

	registerEvaluator(OpNegative, TypeInt64, TypeNull, func(a, b Variant) Variant {
		return FromInt64(-a.AsInt64(0))
	})
	registerEvaluator(OpPositive, TypeInt64, TypeNull, func(a, b Variant) Variant {
		return a
	})

	registerEvaluator(OpBitAnd, TypeInt64, TypeInt64, func(a, b Variant) Variant {
		return FromInt64(a.AsInt64(0) & b.AsInt64(0))
	})
	registerEvaluator(OpBitOr, TypeInt64, TypeInt64, func(a, b Variant) Variant {
		return FromInt64(a.AsInt64(0) | b.AsInt64(0))
	})
	registerEvaluator(OpBitXOr, TypeInt64, TypeInt64, func(a, b Variant) Variant {
		return FromInt64(a.AsInt64(0) ^ b.AsInt64(0))
	})
	registerEvaluator(OpBitFlip, TypeInt64, TypeNull, func(a, b Variant) Variant {
		return FromInt64(^a.AsInt64(0))
	})
	registerEvaluator(OpBitShiftLeft, TypeInt64, TypeInt64, func(a, b Variant) Variant {
		return FromInt64(shiftLeft(a.AsInt64(0), b.AsInt64(0)))
	})
	registerEvaluator(OpBitShiftRight, TypeInt64, TypeInt64, func(a, b Variant) Variant {
		return FromInt64(shiftRight(a.AsInt64(0), b.AsInt64(0)))
	})
}

// Shift amounts outside [0, 63] yield 0.
func shiftLeft(v, s int64) int64 {
	if s < 0 || s > 63 {
		return 0
	}
	return v << uint(s)
}

func shiftRight(v, s int64) int64 {
	if s < 0 || s > 63 {
		return 0
	}
	return v >> uint(s)
}

// ---------------------------------------------------------------------------
// Double
// ---------------------------------------------------------------------------

func registerDoubleEvaluators() {
	cmp := func(op Operator, fn func(a, b float64) bool) {
		registerEvaluator(op, TypeDouble, TypeDouble, func(a, b Variant) Variant {
			return FromBool(fn(a.AsFloat64(0), b.AsFloat64(0)))
		})
	}
	cmp(OpEqual, func(a, b float64) bool { return a == b })
	cmp(OpNotEqual, func(a, b float64) bool { return a != b })
	cmp(OpLess, func(a, b float64) bool { return a < b })
	cmp(OpLessEqual, func(a, b float64) bool { return a <= b })
	cmp(OpGreater, func(a, b float64) bool { return a > b })
	cmp(OpGreaterEqual, func(a, b float64) bool { return a >= b })

	registerEvaluator(OpAdd, TypeDouble, TypeDouble, func(a, b Variant) Variant {
		return FromFloat64(a.AsFloat64(0) + b.AsFloat64(0))
	})
	registerEvaluator(OpSubtract, TypeDouble, TypeDouble, func(a, b Variant) Variant {
		return FromFloat64(a.AsFloat64(0) - b.AsFloat64(0))
	})
	registerEvaluator(OpMultiply, TypeDouble, TypeDouble, func(a, b Variant) Variant {
		return FromFloat64(a.AsFloat64(0) * b.AsFloat64(0))
	})
	registerEvaluator(OpDivide, TypeDouble, TypeDouble, func(a, b Variant) Variant {
		return FromFloat64(a.AsFloat64(0) / b.AsFloat64(0))
	})
	registerEvaluator(OpMod, TypeDouble, TypeDouble, func(a, b Variant) Variant {
		return FromFloat64(math.Mod(a.AsFloat64(0), b.AsFloat64(0)))
	})

	registerEvaluator(OpNegative, TypeDouble, TypeNull, func(a, b Variant) Variant {
		return FromFloat64(-a.AsFloat64(0))
	})
	registerEvaluator(OpPositive, TypeDouble, TypeNull, func(a, b Variant) Variant {
		return a
	})
}

// ---------------------------------------------------------------------------
// Int64 x Double promotion
// ---------------------------------------------------------------------------

// Mixed Int64/Double arithmetic promotes to Double. Comparison stays
// same-tag only: equality and ordering compare by tag first, so
// differing tags are unequal and unordered.
func registerNumericPromotionEvaluators() {
	for _, pair := range [][2]Type{{TypeInt64, TypeDouble}, {TypeDouble, TypeInt64}} {
		ta, tb := pair[0], pair[1]

		registerEvaluator(OpAdd, ta, tb, func(a, b Variant) Variant {
			return FromFloat64(a.AsFloat64(0) + b.AsFloat64(0))
		})
		registerEvaluator(OpSubtract, ta, tb, func(a, b Variant) Variant {
			return FromFloat64(a.AsFloat64(0) - b.AsFloat64(0))
		})
		registerEvaluator(OpMultiply, ta, tb, func(a, b Variant) Variant {
			return FromFloat64(a.AsFloat64(0) * b.AsFloat64(0))
		})
		registerEvaluator(OpDivide, ta, tb, func(a, b Variant) Variant {
			return FromFloat64(a.AsFloat64(0) / b.AsFloat64(0))
		})
	}
}

// ---------------------------------------------------------------------------
// String
// ---------------------------------------------------------------------------

func registerStringEvaluators() {
	cmp := func(op Operator, fn func(a, b string) bool) {
		registerEvaluator(op, TypeString, TypeString, func(a, b Variant) Variant {
			return FromBool(fn(a.str, b.str))
		})
	}
	cmp(OpEqual, func(a, b string) bool { return a == b })
	cmp(OpNotEqual, func(a, b string) bool { return a != b })
	cmp(OpLess, func(a, b string) bool { return a < b })
	cmp(OpLessEqual, func(a, b string) bool { return a <= b })
	cmp(OpGreater, func(a, b string) bool { return a > b })
	cmp(OpGreaterEqual, func(a, b string) bool { return a >= b })

	// Concatenation. String x Int64 and the like stay undefined.
	registerEvaluator(OpAdd, TypeString, TypeString, func(a, b Variant) Variant {
		return FromString(a.str + b.str)
	})
}

// ---------------------------------------------------------------------------
// Object
// ---------------------------------------------------------------------------

// Object references compare by instance identity, so two Variants are
// equal exactly when they reference the same instance, alive or not.
func registerObjectEvaluators() {
	registerEvaluator(OpEqual, TypeObject, TypeObject, func(a, b Variant) Variant {
		return FromBool(a.obj.id == b.obj.id)
	})
	registerEvaluator(OpNotEqual, TypeObject, TypeObject, func(a, b Variant) Variant {
		return FromBool(a.obj.id != b.obj.id)
	})
}
