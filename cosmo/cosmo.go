/*Package cosmo provides cosmological background quantities in the
internal unit system of the rest of the module.

Masses are in units of 1e10 Msun/h, lengths in Mpc/h, velocities in
km/s, and times in (Mpc/h)/(km/s). In these units h = 1, so the Hubble
constant is always exactly 100 km/s/Mpc and densities pick up no
factors of h.
*/
package cosmo

import (
	"math"
)

const (
	// G is Newton's constant in (Mpc/h) (1e10 Msun/h)^-1 (km/s)^2.
	G = 43.0071

	// H0 is the Hubble constant in km/s/(Mpc/h).
	H0 = 100.0
)

// simpsonPanels sets the resolution of the fixed-panel quadrature used
// by LookbackTime. The integrand is smooth over the whole range, so
// this is overkill for float64.
const simpsonPanels = 1 << 10

// Hubble returns the Hubble parameter at redshift z in km/s/(Mpc/h).
func Hubble(H0, omegaM, omegaL, z float64) float64 {
	a := 1 / (1 + z)
	omegaK := 1 - omegaM - omegaL
	return H0 * math.Sqrt(omegaM/(a*a*a)+omegaK/(a*a)+omegaL)
}

// RhoCritical returns the critical density at redshift z in
// (1e10 Msun/h) (Mpc/h)^-3.
func RhoCritical(H0, omegaM, omegaL, z float64) float64 {
	h := Hubble(H0, omegaM, omegaL, z)
	return 3 * h * h / (8 * math.Pi * G)
}

// RhoAverage returns the mean matter density at redshift z in
// (1e10 Msun/h) (Mpc/h)^-3.
func RhoAverage(H0, omegaM, omegaL, z float64) float64 {
	rhoCrit0 := 3 * H0 * H0 / (8 * math.Pi * G)
	return omegaM * rhoCrit0 * (1 + z) * (1 + z) * (1 + z)
}

// LookbackTime returns the time between redshift z and the present in
// (Mpc/h)/(km/s). It integrates the Friedmann equation with a
// fixed-panel Simpson rule over the scale factor.
func LookbackTime(H0, omegaM, omegaL, z float64) float64 {
	a := 1 / (1 + z)
	omegaK := 1 - omegaM - omegaL
	f := func(a float64) float64 {
		return 1 / math.Sqrt(omegaM/a+omegaK+omegaL*a*a)
	}
	return simpson(f, a, 1, simpsonPanels) / H0
}

// simpson integrates f over [lo, hi] with n panels. n must be even.
func simpson(f func(float64) float64, lo, hi float64, n int) float64 {
	if hi <= lo {
		return 0
	}
	dx := (hi - lo) / float64(n)

	sum := f(lo) + f(hi)
	for i := 1; i < n; i++ {
		x := lo + float64(i)*dx
		if i%2 == 1 {
			sum += 4 * f(x)
		} else {
			sum += 2 * f(x)
		}
	}
	return sum * dx / 3
}
