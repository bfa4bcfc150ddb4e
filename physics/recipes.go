package physics

import (
	"fmt"

	"github.com/gosam-model/gosam/galaxy"
)

// Recipes bundles the physics applied to galaxies between snapshots.
// Every function mutates the working group slice gs in place, indexing
// galaxies by position. dt is the substep length and time the lookback
// time at which the recipe fires, both in (Mpc/h)/(km/s).
//
// The engine decides when each recipe fires. The recipes decide what
// the mass flows are.
type Recipes struct {
	// Infall moves gas between the central's hot halo and the
	// outside to track the group's cosmic baryon budget.
	Infall func(gs []galaxy.Galaxy, central int, z, dt float64)

	// Reincorporate returns ejected gas to the central's hot halo.
	Reincorporate func(gs []galaxy.Galaxy, central int, dt float64)

	// Strip transfers hot and ejected gas from a satellite to the
	// central.
	Strip func(gs []galaxy.Galaxy, central, sat int, dt float64)

	// Cool condenses hot gas onto one galaxy's cold disk.
	Cool func(gs []galaxy.Galaxy, p int, dt float64)

	// FormStars turns cold gas into stars in one galaxy. Feedback
	// outflows land in the hot halo of the galaxy's central.
	FormStars func(gs []galaxy.Galaxy, p int, time, dt float64)

	// Disrupt scatters a satellite's stars into the central's
	// intracluster light and hands its gas to the central.
	Disrupt func(gs []galaxy.Galaxy, central, sat int)

	// Merge absorbs the satellite sat into target and reports the
	// merger's kind. central is the group central, the destination
	// for any gas the merger heats.
	Merge func(
		gs []galaxy.Galaxy, sat, target, central int, time, dt float64,
	) galaxy.MergeKind

	// Reionization gives the fraction of the cosmic baryon budget a
	// halo retains at redshift z, in (0, 1].
	Reionization func(z float64) float64
}

// Complete returns an error naming the first missing recipe, or nil if
// all of them are set.
func (r *Recipes) Complete() error {
	checks := []struct {
		name string
		ok   bool
	}{
		{"Infall", r.Infall != nil},
		{"Reincorporate", r.Reincorporate != nil},
		{"Strip", r.Strip != nil},
		{"Cool", r.Cool != nil},
		{"FormStars", r.FormStars != nil},
		{"Disrupt", r.Disrupt != nil},
		{"Merge", r.Merge != nil},
		{"Reionization", r.Reionization != nil},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("The %s recipe is not set.", c.name)
		}
	}
	return nil
}
