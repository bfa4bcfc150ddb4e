/*Package physics holds the model's tunable parameters, the virial
property estimators, and the recipe interface through which the galaxy
formation physics is supplied.

The recipe formulas themselves are external to the engine. The engine
only decides when each recipe fires and for which galaxy; the recipes
decide what the mass flows are. Simple returns a self-consistent toy
set for tests and demonstrations.
*/
package physics

import (
	"fmt"
)

// Params are the engine-facing model parameters.
type Params struct {
	// OmegaM and OmegaL set the background cosmology.
	OmegaM float64
	OmegaL float64

	// PartMass is the simulation particle mass in 1e10 Msun/h. It
	// backs the virial mass of subhalos, which carry no group mass
	// estimate of their own.
	PartMass float64

	// ThresholdSatDisruption gates satellite mergers and disruptions:
	// a satellite whose halo-to-baryon mass ratio falls to or below it
	// is resolved this snapshot.
	ThresholdSatDisruption float64

	// ReincorporationOn enables the return of ejected gas to the hot
	// reservoir of centrals.
	ReincorporationOn bool

	// MinSteps is both the substep floor and the fixed fallback used
	// when a halo's virial properties are degenerate.
	MinSteps int

	// StepResolution scales the dynamical-time substep target. Larger
	// values mean coarser substeps.
	StepResolution float64
}

// DefaultParams returns the parameter set used when a config does not
// override a value.
func DefaultParams() Params {
	return Params{
		OmegaM:                 0.25,
		OmegaL:                 0.75,
		PartMass:               0.086,
		ThresholdSatDisruption: 1.0,
		ReincorporationOn:      true,
		MinSteps:               10,
		StepResolution:         1.0,
	}
}

// Valid returns an error describing the first unusable parameter.
func (p *Params) Valid() error {
	if p.OmegaM <= 0 {
		return fmt.Errorf("OmegaM must be positive, but is %g.", p.OmegaM)
	}
	if p.PartMass <= 0 {
		return fmt.Errorf(
			"The particle mass must be positive, but is %g.", p.PartMass,
		)
	}
	if p.ThresholdSatDisruption < 0 {
		return fmt.Errorf(
			"The satellite disruption threshold must not be negative, "+
				"but is %g.", p.ThresholdSatDisruption,
		)
	}
	if p.MinSteps < 1 || p.MinSteps > 30 {
		return fmt.Errorf(
			"MinSteps must be in [1, 30], but is %d.", p.MinSteps,
		)
	}
	if p.StepResolution <= 0 {
		return fmt.Errorf(
			"The step resolution must be positive, but is %g.",
			p.StepResolution,
		)
	}
	return nil
}
