package sam

import (
	"log"

	"github.com/gosam-model/gosam/tree"
)

// construct processes halo h: it recursively finishes every progenitor
// first, then, once every member of h's FOF group has its progenitors
// finished, joins and evolves the whole group exactly once.
//
// Each recursive edge moves strictly earlier in snapshot number, so
// the recursion depth is bounded by the snapshot count. The driver
// walks snapshots from the earliest, which makes most of these calls
// return immediately on the done flag.
func (r *Run) construct(h int) error {
	r.aux[h].Done = true

	if r.halos[h].SnapNum < 0 || r.halos[h].SnapNum > r.index.MaxSnap() {
		log.Printf(
			"Warning: halo %d of forest %d links to snapshot %d, "+
				"outside [0, %d]. Its subtree is skipped.",
			h, r.forestID, r.halos[h].SnapNum, r.index.MaxSnap(),
		)
		return nil
	}

	for prog := r.halos[h].FirstProgenitor; prog >= 0; prog = r.halos[prog].NextProgenitor {
		if !r.aux[prog].Done {
			if err := r.construct(prog); err != nil {
				return err
			}
		}
	}

	// The group state lives on the FOF root. First visit walks every
	// member's progenitor chain so that the whole group's history is
	// in place before any member's galaxies are touched.
	fofRoot := r.halos[h].FirstInFOFGroup
	if r.aux[fofRoot].Group == tree.GroupUnvisited {
		r.aux[fofRoot].Group = tree.GroupEntering
		for g := fofRoot; g >= 0; g = r.halos[g].NextInFOFGroup {
			for prog := r.halos[g].FirstProgenitor; prog >= 0; prog = r.halos[prog].NextProgenitor {
				if !r.aux[prog].Done {
					if err := r.construct(prog); err != nil {
						return err
					}
				}
			}
		}
	}

	// Join and evolve fire exactly once per group, on the call that
	// finds the group still in the entering state.
	if r.aux[fofRoot].Group == tree.GroupEntering {
		r.aux[fofRoot].Group = tree.GroupDone

		r.work.Reset()
		ngal := 0
		var err error
		for g := fofRoot; g >= 0; g = r.halos[g].NextInFOFGroup {
			if ngal, err = r.join(g, ngal); err != nil {
				return err
			}
		}
		if err := r.evolve(fofRoot, ngal); err != nil {
			return err
		}
	}

	return nil
}
