// Package suites holds the test suites compiled into mathcheck.
package suites

import (
	"math"
	"math/rand/v2"

	"mathcheck/internal/arith"
	"mathcheck/internal/harness"
)

// Arithmetic is the basic add/subtract suite
func Arithmetic() *harness.Suite {
	s := harness.NewSuite("arith", harness.BuiltinPrefix+"arith")

	s.Test("we can add and subtract numbers", func(t *harness.T) {
		harness.Expect(t, arith.Subtract(2, 1)).ToBe(1)
		harness.Expect(t, arith.Add(1, 2)).ToBe(3)
	})

	return s
}

// Properties checks algebraic properties of Add and Subtract over edge
// values plus samples drawn from seed.
func Properties(seed uint64, samples int) *harness.Suite {
	s := harness.NewSuite("properties", harness.BuiltinPrefix+"properties")

	finite := Sample(seed, samples)
	all := append(append([]float64{}, finite...), math.NaN(), math.Inf(1), math.Inf(-1))

	s.Test("add is commutative", func(t *harness.T) {
		for _, a := range all {
			for _, b := range all {
				harness.Expect(t, arith.Add(a, b)).ToBe(arith.Add(b, a))
			}
		}
	})

	s.Test("subtracting zero is identity", func(t *harness.T) {
		for _, a := range all {
			harness.Expect(t, arith.Subtract(a, 0)).ToBe(a)
		}
	})

	// Inf + -Inf is NaN, so only finite values have an additive inverse.
	s.Test("adding the negation yields zero", func(t *harness.T) {
		for _, a := range finite {
			harness.Expect(t, arith.Add(a, -a)).ToBe(0)
		}
	})

	return s
}

// edgeValues are always sampled ahead of the random values
var edgeValues = []float64{
	0,
	math.Copysign(0, -1),
	1,
	-1,
	0.1,
	0.2,
	1e308,
	-1e308,
	math.MaxFloat64,
	math.SmallestNonzeroFloat64,
	-math.SmallestNonzeroFloat64,
}

// Sample returns the edge values followed by n finite pseudo-random values.
// The same seed always yields the same values.
func Sample(seed uint64, n int) []float64 {
	values := make([]float64, 0, len(edgeValues)+n)
	values = append(values, edgeValues...)

	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := 0; i < n; i++ {
		magnitude := math.Pow(10, float64(r.IntN(41)-20))
		values = append(values, (r.Float64()*2-1)*magnitude)
	}
	return values
}

// Builtin returns every compiled-in suite
func Builtin(seed uint64, samples int) []*harness.Suite {
	return []*harness.Suite{
		Arithmetic(),
		Properties(seed, samples),
	}
}
