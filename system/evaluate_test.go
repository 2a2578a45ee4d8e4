package system

import (
	"errors"
	"testing"
)

func evaluateOK(t *testing.T, op Operator, a, b Variant) Variant {
	t.Helper()
	r, err := Evaluate(op, a, b)
	if err != nil {
		t.Fatalf("Evaluate(%s, %s, %s) returned error: %v", op, a, b, err)
	}
	return r
}

// ---------------------------------------------------------------------------
// Capability checks
// ---------------------------------------------------------------------------

func TestCanEvaluate(t *testing.T) {
	tests := []struct {
		op   Operator
		a, b Type
		want bool
	}{
		{OpAdd, TypeInt64, TypeInt64, true},
		{OpAdd, TypeInt64, TypeDouble, true},
		{OpAdd, TypeDouble, TypeInt64, true},
		{OpAdd, TypeString, TypeString, true},
		{OpAdd, TypeString, TypeInt64, false},
		{OpAdd, TypeInt64, TypeString, false},
		{OpAdd, TypeBool, TypeBool, false},
		{OpEqual, TypeNull, TypeNull, true},
		{OpEqual, TypeObject, TypeObject, true},
		{OpLess, TypeObject, TypeObject, false},
		{OpLess, TypeString, TypeInt64, false},
		// Comparison is same-tag only; promotion covers arithmetic.
		{OpEqual, TypeInt64, TypeDouble, false},
		{OpNotEqual, TypeDouble, TypeInt64, false},
		{OpLess, TypeInt64, TypeDouble, false},
		{OpGreaterEqual, TypeDouble, TypeInt64, false},
		{OpAnd, TypeBool, TypeBool, true},
		{OpAnd, TypeInt64, TypeInt64, false},
		{OpBitAnd, TypeBool, TypeInt64, true},
		{OpMod, TypeInt64, TypeDouble, false},
		{OpNegative, TypeInt64, TypeNull, true},
		{OpNot, TypeBool, TypeNull, true},
		{OpNot, TypeInt64, TypeNull, false},
	}
	for _, tt := range tests {
		if got := CanEvaluate(tt.op, tt.a, tt.b); got != tt.want {
			t.Errorf("CanEvaluate(%s, %s, %s) = %v, want %v", tt.op, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestEvaluateUnsupported(t *testing.T) {
	_, err := Evaluate(OpAdd, FromString("YJSP"), FromInt64(1))
	if err == nil {
		t.Fatal("Evaluate(Add, String, Int64) should fail")
	}
	if !errors.Is(err, ErrUnsupportedOperator) {
		t.Errorf("error = %v, want ErrUnsupportedOperator", err)
	}
}

// ---------------------------------------------------------------------------
// Arithmetic
// ---------------------------------------------------------------------------

func TestIntegerArithmetic(t *testing.T) {
	tests := []struct {
		op   Operator
		a, b int64
		want int64
	}{
		{OpAdd, 3, 4, 7},
		{OpSubtract, 10, 4, 6},
		{OpMultiply, 6, 7, 42},
		{OpDivide, 9, 2, 4},
		{OpMod, 9, 2, 1},
	}
	for _, tt := range tests {
		r := evaluateOK(t, tt.op, FromInt64(tt.a), FromInt64(tt.b))
		if got := r.AsInt64(-1); got != tt.want {
			t.Errorf("%s(%d, %d) = %d, want %d", tt.op, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestIntegerDivideByZero(t *testing.T) {
	for _, op := range []Operator{OpDivide, OpMod} {
		r := evaluateOK(t, op, FromInt64(7), FromInt64(0))
		if !r.IsNull() {
			t.Errorf("%s(7, 0) = %s, want null", op, r)
		}
	}
}

func TestNumericPromotion(t *testing.T) {
	// Int64 x Double arithmetic promotes to Double.
	r := evaluateOK(t, OpAdd, FromInt64(1), FromFloat64(0.5))
	if r.Type() != TypeDouble {
		t.Fatalf("Add(Int64, Double) type = %s, want Double", r.Type())
	}
	if got := r.AsFloat64(-1); got != 1.5 {
		t.Errorf("Add(1, 0.5) = %v, want 1.5", got)
	}

	r = evaluateOK(t, OpMultiply, FromFloat64(2.5), FromInt64(4))
	if got := r.AsFloat64(-1); got != 10.0 {
		t.Errorf("Multiply(2.5, 4) = %v, want 10", got)
	}
}

func TestDoubleArithmetic(t *testing.T) {
	r := evaluateOK(t, OpDivide, FromFloat64(1.0), FromFloat64(4.0))
	if got := r.AsFloat64(-1); got != 0.25 {
		t.Errorf("Divide(1.0, 4.0) = %v, want 0.25", got)
	}
}

func TestUnaryNumeric(t *testing.T) {
	r, err := EvaluateUnary(OpNegative, FromInt64(5))
	if err != nil {
		t.Fatalf("EvaluateUnary(Negative, 5): %v", err)
	}
	if got := r.AsInt64(0); got != -5 {
		t.Errorf("Negative(5) = %d, want -5", got)
	}

	r, err = EvaluateUnary(OpPositive, FromFloat64(-2.5))
	if err != nil {
		t.Fatalf("EvaluateUnary(Positive, -2.5): %v", err)
	}
	if got := r.AsFloat64(0); got != -2.5 {
		t.Errorf("Positive(-2.5) = %v, want -2.5", got)
	}
}

// ---------------------------------------------------------------------------
// Comparison
// ---------------------------------------------------------------------------

func TestIntegerComparison(t *testing.T) {
	tests := []struct {
		op   Operator
		a, b int64
		want bool
	}{
		{OpEqual, 3, 3, true},
		{OpNotEqual, 3, 4, true},
		{OpLess, 3, 4, true},
		{OpLessEqual, 4, 4, true},
		{OpGreater, 5, 4, true},
		{OpGreaterEqual, 3, 4, false},
	}
	for _, tt := range tests {
		r := evaluateOK(t, tt.op, FromInt64(tt.a), FromInt64(tt.b))
		if got := r.AsBool(!tt.want); got != tt.want {
			t.Errorf("%s(%d, %d) = %v, want %v", tt.op, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestStringComparison(t *testing.T) {
	if !evaluateOK(t, OpLess, FromString("abc"), FromString("abd")).AsBool(false) {
		t.Error(`"abc" < "abd" should hold`)
	}
	if !evaluateOK(t, OpEqual, FromString("MUR"), FromString("MUR")).AsBool(false) {
		t.Error("identical strings should compare equal")
	}
}

func TestStringConcatenation(t *testing.T) {
	r := evaluateOK(t, OpAdd, FromString("YJ"), FromString("SP"))
	if got := r.AsString(); got != "YJSP" {
		t.Errorf(`Add("YJ", "SP") = %q, want "YJSP"`, got)
	}
}

// ---------------------------------------------------------------------------
// Logical and bitwise
// ---------------------------------------------------------------------------

func TestLogicalOperators(t *testing.T) {
	tr, fa := FromBool(true), FromBool(false)

	if !evaluateOK(t, OpAnd, tr, tr).AsBool(false) {
		t.Error("true && true should be true")
	}
	if evaluateOK(t, OpAnd, tr, fa).AsBool(true) {
		t.Error("true && false should be false")
	}
	if !evaluateOK(t, OpOr, fa, tr).AsBool(false) {
		t.Error("false || true should be true")
	}
	if !evaluateOK(t, OpXOr, tr, fa).AsBool(false) {
		t.Error("true ^^ false should be true")
	}

	r, err := EvaluateUnary(OpNot, tr)
	if err != nil {
		t.Fatalf("EvaluateUnary(Not, true): %v", err)
	}
	if r.AsBool(true) {
		t.Error("!true should be false")
	}
}

func TestBitwiseOperators(t *testing.T) {
	tests := []struct {
		op   Operator
		a, b int64
		want int64
	}{
		{OpBitAnd, 0b1100, 0b1010, 0b1000},
		{OpBitOr, 0b1100, 0b1010, 0b1110},
		{OpBitXOr, 0b1100, 0b1010, 0b0110},
		{OpBitShiftLeft, 1, 4, 16},
		{OpBitShiftRight, 16, 4, 1},
		{OpBitShiftLeft, 1, 64, 0}, // out-of-range shift
		{OpBitShiftRight, 16, -1, 0},
	}
	for _, tt := range tests {
		r := evaluateOK(t, tt.op, FromInt64(tt.a), FromInt64(tt.b))
		if got := r.AsInt64(-1); got != tt.want {
			t.Errorf("%s(%d, %d) = %d, want %d", tt.op, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestBitwiseBoolAsInt(t *testing.T) {
	// Bool participates in bitwise operators as 1/0 and yields Int64.
	r := evaluateOK(t, OpBitAnd, FromBool(true), FromInt64(3))
	if r.Type() != TypeInt64 {
		t.Fatalf("BitAnd(Bool, Int64) type = %s, want Int64", r.Type())
	}
	if got := r.AsInt64(-1); got != 1 {
		t.Errorf("BitAnd(true, 3) = %d, want 1", got)
	}

	r = evaluateOK(t, OpBitOr, FromBool(false), FromBool(true))
	if got := r.AsInt64(-1); got != 1 {
		t.Errorf("BitOr(false, true) = %d, want 1", got)
	}

	r = evaluateOK(t, OpBitShiftLeft, FromBool(true), FromInt64(3))
	if got := r.AsInt64(-1); got != 8 {
		t.Errorf("BitShiftLeft(true, 3) = %d, want 8", got)
	}
	r = evaluateOK(t, OpBitShiftRight, FromInt64(4), FromBool(true))
	if got := r.AsInt64(-1); got != 2 {
		t.Errorf("BitShiftRight(4, true) = %d, want 2", got)
	}
}

func TestBitFlip(t *testing.T) {
	r, err := EvaluateUnary(OpBitFlip, FromInt64(0))
	if err != nil {
		t.Fatalf("EvaluateUnary(BitFlip, 0): %v", err)
	}
	if got := r.AsInt64(0); got != -1 {
		t.Errorf("BitFlip(0) = %d, want -1", got)
	}

	r, err = EvaluateUnary(OpBitFlip, FromBool(true))
	if err != nil {
		t.Fatalf("EvaluateUnary(BitFlip, true): %v", err)
	}
	if got := r.AsInt64(0); got != -2 {
		t.Errorf("BitFlip(true) = %d, want -2", got)
	}
}

// ---------------------------------------------------------------------------
// Object identity
// ---------------------------------------------------------------------------

func TestObjectEquality(t *testing.T) {
	a := newTestObject(t, "::Test::EvalObjectA")
	b := newTestObject(t, "::Test::EvalObjectB")

	if !evaluateOK(t, OpEqual, FromObject(a), FromObject(a)).AsBool(false) {
		t.Error("object should equal itself")
	}
	if !evaluateOK(t, OpNotEqual, FromObject(a), FromObject(b)).AsBool(false) {
		t.Error("distinct objects should be not-equal")
	}
}
