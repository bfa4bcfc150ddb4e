package physics

import (
	"math"

	"github.com/gosam-model/gosam/cosmo"
	"github.com/gosam-model/gosam/tree"
)

// VirialMass returns the virial mass of halos[h] in 1e10 Msun/h. FOF
// roots report the group finder's mass when one is recorded. Subhalos
// and roots without a mass estimate fall back to the particle count
// times the particle mass.
func VirialMass(halos []tree.Halo, h int, p *Params) float64 {
	if tree.IsFOFRoot(halos, h) && halos[h].Mvir >= 0 {
		return halos[h].Mvir
	}
	return float64(halos[h].Len) * p.PartMass
}

// VirialRadius returns the radius in Mpc/h enclosing a mean density of
// 200 times the critical density at redshift z.
func VirialRadius(halos []tree.Halo, h int, p *Params, z float64) float64 {
	rhoCrit := cosmo.RhoCritical(cosmo.H0, p.OmegaM, p.OmegaL, z)
	m := VirialMass(halos, h, p)
	return math.Cbrt(m / (200 * (4 * math.Pi / 3) * rhoCrit))
}

// VirialVelocity returns the circular velocity at the virial radius in
// km/s, or 0 for a massless halo.
func VirialVelocity(halos []tree.Halo, h int, p *Params, z float64) float64 {
	r := VirialRadius(halos, h, p, z)
	if r <= 0 {
		return 0
	}
	return math.Sqrt(cosmo.G * VirialMass(halos, h, p) / r)
}

// DiskRadius returns the exponential scale radius of a disk with the
// halo's specific angular momentum, in Mpc/h. Halos with degenerate
// spins or virial properties get a tenth of the virial radius.
func DiskRadius(spin tree.Vector, vvir, rvir float64) float64 {
	s := spin.Norm()
	if s <= 0 || vvir <= 0 || rvir <= 0 {
		return 0.1 * rvir
	}
	lambda := s / (math.Sqrt2 * vvir * rvir)
	return (lambda / math.Sqrt2) * rvir
}

// MergingTime returns the dynamical friction timescale for the
// satellite halo sat falling onto mother, in (Mpc/h)/(km/s). The
// satellite's galaxy masses deepen its effective mass. Degenerate
// configurations, including sat == mother, report -1.
func MergingTime(
	halos []tree.Halo, sat, mother int,
	galStellar, galCold float64, p *Params, z float64,
) float64 {
	if sat == mother {
		return -1
	}

	coulomb := math.Log(float64(halos[mother].Len)/float64(halos[sat].Len) + 1)
	satMass := VirialMass(halos, sat, p) + galStellar + galCold
	motherRadius := VirialRadius(halos, mother, p, z)

	if !(coulomb > 0 && satMass > 0) {
		return -1
	}
	return 2 * 1.17 * motherRadius * motherRadius *
		VirialVelocity(halos, mother, p, z) / (coulomb * cosmo.G * satMass)
}
