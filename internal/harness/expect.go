package harness

import (
	"fmt"
	"math"
	"reflect"
	"runtime"
)

// DefaultCloseToDigits is the precision ToBeCloseTo uses when no digits are given
const DefaultCloseToDigits = 2

// Expectation holds the actual value of a pending assertion
type Expectation[V comparable] struct {
	t      *T
	actual V
	negate bool
	file   string
	line   int
}

// Expect starts an assertion on actual. The expected value given to the
// matcher must have the same type, so comparisons are always strict.
func Expect[V comparable](t *T, actual V) *Expectation[V] {
	e := &Expectation[V]{t: t, actual: actual}
	if _, file, line, ok := runtime.Caller(1); ok {
		e.file, e.line = file, line
	}
	return e
}

// Not negates the matcher that follows
func (e *Expectation[V]) Not() *Expectation[V] {
	e.negate = !e.negate
	return e
}

// At overrides the source location recorded for this assertion
func (e *Expectation[V]) At(file string, line int) *Expectation[V] {
	e.file, e.line = file, line
	return e
}

// ToBe asserts that actual and expected are the same value. Floats compare
// like Object.is: NaN is NaN, and +0 is not -0.
func (e *Expectation[V]) ToBe(expected V) {
	e.check("toBe", Same(e.actual, expected), formatValue(expected))
}

// ToBeCloseTo asserts |expected - actual| < 10^-digits / 2. Without digits
// DefaultCloseToDigits is used; 0 and negative digits are honoured. The
// actual value must be numeric.
func (e *Expectation[V]) ToBeCloseTo(expected float64, digits ...int) {
	d := DefaultCloseToDigits
	if len(digits) > 0 {
		d = digits[0]
	}
	actual, ok := toFloat(e.actual)
	pass := ok && closeTo(actual, expected, d)
	e.check("toBeCloseTo", pass, fmt.Sprintf("%v (%d digits)", expected, d))
}

func (e *Expectation[V]) check(matcher string, pass bool, expected string) {
	if e.negate {
		matcher = "not." + matcher
		pass = !pass
	}
	e.t.assert(matcher, pass, formatValue(e.actual), expected, e.file, e.line)
}

// Same reports whether a and b are the same value. Values of different
// dynamic types never match, and neither do values that can't be compared
// with ==. Floating point values, named float types included, compare like
// Object.is: NaN equals NaN, and zeros of different sign differ.
func Same[V comparable](a, b V) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.IsValid() || !vb.IsValid() {
		return va.IsValid() == vb.IsValid()
	}
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Float32, reflect.Float64:
		return sameFloat(va.Float(), vb.Float())
	}
	if !va.Comparable() {
		return false
	}
	return va.Equal(vb)
}

func sameFloat(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	if a == 0 && b == 0 {
		return math.Signbit(a) == math.Signbit(b)
	}
	return a == b
}

func closeTo(actual, expected float64, digits int) bool {
	if math.IsInf(actual, 0) && math.IsInf(expected, 0) {
		return actual == expected
	}
	return math.Abs(expected-actual) < math.Pow(10, -float64(digits))/2
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	}
	return 0, false
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return fmt.Sprintf("%q", x)
	}
	return fmt.Sprintf("%v", v)
}
