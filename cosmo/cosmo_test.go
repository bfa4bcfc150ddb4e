package cosmo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHubble(t *testing.T) {
	assert.InDelta(t, 100.0, Hubble(100, 0.25, 0.75, 0), 1e-10, "flat, z=0")
	assert.InDelta(t, 70.0, Hubble(70, 0.3, 0.7, 0), 1e-10, "H0 scales out")

	// At z = 1 in a flat universe, E(z)^2 = Om*8 + OL.
	exp := 100 * math.Sqrt(0.25*8+0.75)
	assert.InDelta(t, exp, Hubble(100, 0.25, 0.75, 1), 1e-8, "flat, z=1")

	// An open universe picks up a curvature term.
	exp = 100 * math.Sqrt(0.25*8+0.25*4+0.5)
	assert.InDelta(t, exp, Hubble(100, 0.25, 0.5, 1), 1e-8, "open, z=1")
}

func TestRhoCritical(t *testing.T) {
	// 3 H0^2 / (8 pi G) with H0 = 100 and G = 43.0071.
	assert.InDelta(t, 27.755, RhoCritical(100, 0.25, 0.75, 0), 1e-2)

	// In a flat universe rho_crit scales as E(z)^2.
	r0 := RhoCritical(100, 0.25, 0.75, 0)
	r1 := RhoCritical(100, 0.25, 0.75, 1)
	assert.InDelta(t, 0.25*8+0.75, r1/r0, 1e-8)
}

func TestRhoAverage(t *testing.T) {
	r0 := RhoCritical(100, 0.25, 0.75, 0)
	assert.InDelta(t, 0.25*r0, RhoAverage(100, 0.25, 0.75, 0), 1e-8)

	// Mean matter density scales as (1+z)^3 no matter the curvature.
	m0 := RhoAverage(100, 0.25, 0.5, 0)
	m2 := RhoAverage(100, 0.25, 0.5, 2)
	assert.InDelta(t, 27.0, m2/m0, 1e-8)
}

func TestLookbackTime(t *testing.T) {
	if lb := LookbackTime(100, 0.25, 0.75, 0); lb != 0 {
		t.Errorf("LookbackTime(z=0) = %g instead of 0", lb)
	}

	// Closed form for a flat universe:
	// t(a) = 2/(3 H0 sqrt(OL)) asinh(sqrt(OL/Om) a^1.5).
	age := func(a float64) float64 {
		return 2 / (3 * 100 * math.Sqrt(0.75)) *
			math.Asinh(math.Sqrt(0.75/0.25)*math.Pow(a, 1.5))
	}
	for i, z := range []float64{0.5, 1, 3, 10, 127, 1000} {
		exp := age(1) - age(1/(1+z))
		got := LookbackTime(100, 0.25, 0.75, z)
		if !almostEq(got, exp, 1e-5) {
			t.Errorf("%d) LookbackTime(z=%g) = %g instead of %g",
				i+1, z, got, exp)
		}
	}
}

func TestLookbackTimeMonotonic(t *testing.T) {
	prev := 0.0
	for z := 0.25; z < 32; z *= 2 {
		lb := LookbackTime(100, 0.25, 0.75, z)
		if lb <= prev {
			t.Errorf("LookbackTime(z=%g) = %g, not above %g", z, lb, prev)
		}
		prev = lb
	}
}

func almostEq(x, y, eps float64) bool {
	return math.Abs(x-y) <= eps*(math.Abs(x)+math.Abs(y)+1e-300)
}
