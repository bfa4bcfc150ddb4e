package sam

import (
	"fmt"
	"math"

	"github.com/gosam-model/gosam/galaxy"
)

// substeps picks the substep count for one snapshot interval of the
// group rooted at fofRoot. The target substep is a tenth of the halo's
// dynamical crossing time, scaled by the configured resolution; halos
// with degenerate virial properties get the fixed minimum.
func (r *Run) substeps(fofRoot int, deltaT float64) int {
	rvir := r.virialRadius(fofRoot)
	vvir := r.virialVelocity(fofRoot)
	if rvir <= 0 || vvir <= 0 {
		return r.params.MinSteps
	}

	tdyn := 0.1 * rvir / vvir
	n := int(math.Ceil(deltaT * r.params.StepResolution / tdyn))
	if n < r.params.MinSteps {
		n = r.params.MinSteps
	}
	if n > maxSubsteps {
		n = maxSubsteps
	}
	return n
}

// evolve advances every galaxy of the group rooted at fofRoot across
// one snapshot interval, resolves satellite mergers and disruptions,
// and commits the survivors to the current batch.
func (r *Run) evolve(fofRoot, ngal int) error {
	gals := r.work.Data()[:ngal]
	halo := &r.halos[fofRoot]

	central := gals[0].CentralGal
	if central < 0 || central >= ngal {
		return fmt.Errorf(
			"Group %d of forest %d: %w", fofRoot, r.forestID, ErrNoCentral,
		)
	}
	cg := &gals[central]
	if cg.Type != galaxy.Central || cg.HaloNr != fofRoot {
		return fmt.Errorf(
			"Group %d of forest %d has central reference %d of type %s "+
				"in halo %d: %w",
			fofRoot, r.forestID, central, cg.Type, cg.HaloNr, ErrNoCentral,
		)
	}

	deltaT := r.ages.At(cg.SnapNum) - r.ages.At(halo.SnapNum)
	z := r.ages.Redshift(halo.SnapNum)

	nsteps := r.substeps(fofRoot, deltaT)
	if nsteps > r.diag.MaxSubsteps {
		r.diag.MaxSubsteps = nsteps
	}
	dt := deltaT / float64(nsteps)

	for step := 0; step < nsteps; step++ {
		for p := range gals {
			g := &gals[p]
			if g.Merged() {
				continue
			}
			if g.DT < 0 {
				g.DT = deltaT
			}
			t := r.ages.At(g.SnapNum) - (float64(step)+0.5)*dt

			if g.Type == galaxy.Central {
				r.recipes.Infall(gals, central, z, dt)
				if r.params.ReincorporationOn {
					r.recipes.Reincorporate(gals, central, dt)
				}
			} else if g.Type == galaxy.Satellite &&
				(g.HotGas > 0 || g.EjectedMass > 0) {
				r.recipes.Strip(gals, central, p, dt)
			}

			r.recipes.Cool(gals, p, dt)
			r.recipes.FormStars(gals, p, t, dt)
		}

		// Satellite merging and disruption sweep.
		for p := range gals {
			g := &gals[p]
			if g.Merged() ||
				(g.Type != galaxy.Satellite && g.Type != galaxy.Orphan) {
				continue
			}
			if g.MergTime > 999.0 {
				return fmt.Errorf(
					"Galaxy %d in halo %d of forest %d: %w",
					g.GalaxyNr, g.HaloNr, r.forestID, ErrMergTime,
				)
			}
			g.MergTime -= dt

			// Interpolate the halo mass to the middle of the interval;
			// an orphan's halo ramps down to nothing by the last step.
			currentMvir := g.Mvir -
				g.DeltaMvir*(1-float64(step+1)/float64(nsteps))
			baryons := g.Baryons()
			if baryons != 0 &&
				currentMvir/baryons > r.params.ThresholdSatDisruption {
				continue
			}

			target := central
			if g.Type == galaxy.Orphan {
				target = g.CentralGal
			}
			if gals[target].Merged() {
				target = gals[target].CentralGal
			}
			g.MergeIntoID = r.committed + target

			if g.MergTime > 0 {
				r.recipes.Disrupt(gals, target, p)
				g.MergeType = galaxy.MergeDisrupt
				r.diag.Disruptions++
			} else {
				t := r.ages.At(g.SnapNum) - (float64(step)+0.5)*dt
				g.MergeType = r.recipes.Merge(gals, p, target, central, t, dt)
				r.diag.Mergers++
			}
		}
	}

	// Turn the accumulated diagnostics into rates and gather the
	// central's satellite baryon total.
	cg.TotalSatelliteBaryons = 0
	for p := range gals {
		g := &gals[p]
		if g.Merged() {
			continue
		}
		g.Cooling /= deltaT
		g.Heating /= deltaT
		g.OutflowRate /= deltaT
		if p != central {
			cg.TotalSatelliteBaryons += g.StellarMass + g.BlackHoleMass +
				g.ColdGas + g.HotGas
		}
	}

	return r.commit(ngal)
}

// commit walks the evolved group once. Survivors are appended to the
// current batch and counted under their halo. Galaxies that merged
// this snapshot are not output again; instead their record in the
// previous batch is patched with the merger metadata, with the target
// index corrected for records dropped from the output.
func (r *Run) commit(ngal int) error {
	gals := r.work.Data()[:ngal]
	currentHalo := -1

	for p := range gals {
		g := &gals[p]
		if g.HaloNr != currentHalo {
			currentHalo = g.HaloNr
			r.aux[currentHalo].FirstGalaxy = r.cur.Len()
			r.aux[currentHalo].NGalaxies = 0
			r.aux[currentHalo].BatchGen = r.gen
		}

		if !g.Merged() {
			g.SnapNum = r.halos[currentHalo].SnapNum
			r.cur.Append(*g)
			r.aux[currentHalo].NGalaxies++
			r.committed++
			r.diag.Committed++
			continue
		}

		// Every earlier merged galaxy with a smaller target is one
		// record the output loses before this target's slot, so the
		// recorded index shifts down by one for each.
		offset := 0
		for i := 0; i < p; i++ {
			if gals[i].Merged() && g.MergeIntoID > gals[i].MergeIntoID {
				offset++
			}
		}

		prevGals := r.prev.Data()
		i := len(prevGals) - 1
		for ; i >= 0; i-- {
			if prevGals[i].GalaxyNr == g.GalaxyNr {
				break
			}
		}
		if i < 0 {
			return fmt.Errorf(
				"Galaxy %d in halo %d of forest %d: %w",
				g.GalaxyNr, currentHalo, r.forestID, ErrMergeTarget,
			)
		}

		rec := &prevGals[i]
		rec.MergeType = g.MergeType
		rec.MergeIntoID = g.MergeIntoID - offset
		rec.MergeIntoSnapNum = r.halos[currentHalo].SnapNum
	}

	return nil
}
