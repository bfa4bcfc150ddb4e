package sam

import (
	"fmt"

	"github.com/gosam-model/gosam/galaxy"
	"github.com/gosam-model/gosam/physics"
	"github.com/gosam-model/gosam/tree"
)

// join carries the galaxies of h's progenitors forward into the
// working list. ngal is the group's galaxy count so far; the updated
// count is returned. If the whole group has inherited nothing by the
// time its root is joined, a newborn central is created.
func (r *Run) join(h int, ngal int) (int, error) {
	ngalStart := ngal

	// Pick the progenitor whose galaxies keep the halo: the most
	// massive one that owns any. If none owns a galaxy the first
	// progenitor stands in, which leaves every inherited galaxy an
	// orphan below.
	firstOccupied := r.halos[h].FirstProgenitor
	lenMax := 0
	for p := r.halos[h].FirstProgenitor; p >= 0; p = r.halos[p].NextProgenitor {
		if r.aux[p].NGalaxies > 0 && r.halos[p].Len > lenMax {
			lenMax = r.halos[p].Len
			firstOccupied = p
		}
	}

	for p := r.halos[h].FirstProgenitor; p >= 0; p = r.halos[p].NextProgenitor {
		a := &r.aux[p]
		if a.NGalaxies == 0 {
			continue
		}
		if a.BatchGen != r.gen-1 || a.FirstGalaxy+a.NGalaxies > r.prev.Len() {
			return ngal, fmt.Errorf(
				"Progenitor %d of halo %d in forest %d: %w",
				p, h, r.forestID, ErrStaleBatch,
			)
		}

		for i := 0; i < a.NGalaxies; i++ {
			// Append may grow the working buffer, so the record is
			// re-fetched through the returned index.
			idx := r.work.Append(*r.prev.At(a.FirstGalaxy + i))
			ngal++
			g := r.work.At(idx)

			g.HaloNr = h
			g.DT = -1

			if g.Type == galaxy.Orphan {
				continue
			}
			if g.Merged() {
				// A halo should never inherit a galaxy that already
				// merged; drop it to orphan and leave it alone.
				g.Type = galaxy.Orphan
				continue
			}

			prevMvir, prevVvir, prevVmax := g.Mvir, g.Vvir, g.Vmax
			wasCentral := g.Type == galaxy.Central

			if p == firstOccupied {
				r.adoptHalo(g, h)
				if tree.IsFOFRoot(r.halos, h) {
					g.MergeIntoID = -1
					g.MergeIntoSnapNum = -1
					g.MergTime = galaxy.MergTimeUnset
					g.DiskScaleRadius = physics.DiskRadius(
						r.halos[h].Spin, g.Vvir, g.Rvir,
					)
					g.Type = galaxy.Central
				} else {
					if wasCentral || g.MergTime > 999.0 {
						g.InfallMvir = prevMvir
						g.InfallVvir = prevVvir
						g.InfallVmax = prevVmax
						g.MergTime = r.mergingTime(
							h, r.halos[h].FirstInFOFGroup, g,
						)
					}
					g.Type = galaxy.Satellite
				}
			} else {
				// This branch lost its subhalo to the main branch.
				g.DeltaMvir = -g.Mvir
				g.Mvir = 0
				if wasCentral || g.MergTime > 999.0 {
					g.MergTime = 0
					g.InfallMvir = prevMvir
					g.InfallVvir = prevVvir
					g.InfallVmax = prevVmax
				}
				g.Type = galaxy.Orphan
			}
		}
	}

	// A group with no galaxies anywhere in its history seeds one
	// newborn central in its root.
	if ngal == 0 {
		if !tree.IsFOFRoot(r.halos, h) {
			return ngal, fmt.Errorf(
				"Halo %d of forest %d: %w", h, r.forestID, ErrNotRoot,
			)
		}
		mvir := r.virialMass(h)
		rvir := r.virialRadius(h)
		vvir := r.virialVelocity(h)
		disk := physics.DiskRadius(r.halos[h].Spin, vvir, rvir)
		r.work.Append(galaxy.New(
			r.nextGalaxyNr, h, &r.halos[h], mvir, rvir, vvir, disk,
		))
		r.nextGalaxyNr++
		ngal++
		r.diag.Newborn++
	}

	if ngal == ngalStart {
		return ngal, nil
	}

	gals := r.work.Data()
	central := -1
	for i := ngalStart; i < ngal; i++ {
		if gals[i].Type == galaxy.Central || gals[i].Type == galaxy.Satellite {
			if central != -1 {
				return ngal, fmt.Errorf(
					"Halo %d of forest %d: %w", h, r.forestID, ErrManyCentrals,
				)
			}
			central = i
		}
	}
	if central == -1 {
		return ngal, fmt.Errorf(
			"Halo %d of forest %d: %w", h, r.forestID, ErrNoCentral,
		)
	}
	for i := ngalStart; i < ngal; i++ {
		gals[i].CentralGal = central
	}

	return ngal, nil
}

// adoptHalo refreshes a galaxy's halo-tracked properties from its new
// halo. The accumulated rate diagnostics start over with the new
// snapshot interval.
func (r *Run) adoptHalo(g *galaxy.Galaxy, h int) {
	hd := &r.halos[h]
	g.MostBoundID = hd.MostBoundID
	g.Pos = hd.Pos
	g.Vel = hd.Vel
	g.Len = hd.Len
	g.Vmax = hd.Vmax

	mvir := r.virialMass(h)
	g.DeltaMvir = mvir - g.Mvir
	g.Mvir = mvir
	g.Rvir = r.virialRadius(h)
	g.Vvir = r.virialVelocity(h)

	g.Cooling = 0
	g.Heating = 0
	g.OutflowRate = 0
}
