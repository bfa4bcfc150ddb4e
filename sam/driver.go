package sam

import (
	"github.com/gosam-model/gosam/galaxy"
	"github.com/gosam-model/gosam/io"
	"github.com/gosam-model/gosam/tree"
)

// ProcessForest runs a whole forest through the engine: index it,
// walk its snapshots from the earliest, and hand each finished batch
// to the saver. Only two snapshots' worth of galaxies are resident at
// any point, whatever the forest's depth.
//
// A batch is saved one occupied snapshot late: the commits of snapshot
// s patch merger pointers into snapshot s-1's batch, so that batch is
// final only once snapshot s is done. The last batch is flushed after
// the snapshot loop.
func (r *Run) ProcessForest(f *tree.Forest) error {
	r.halos = f.Halos
	r.aux = make([]tree.Aux, len(f.Halos))
	r.forestID = f.ID

	r.index.Build(f.Halos)
	r.diag.IndexSkips += r.index.NumSkipped()

	r.committed = 0
	r.prevStart, r.curStart = 0, 0
	r.gen = 0
	r.prevOccupiedSnap = -1
	r.nextGalaxyNr = 0
	r.work.Reset()
	r.prev.Reset()
	r.cur.Reset()

	for snap := 0; snap <= r.index.MaxSnap(); snap++ {
		roots := r.index.RootsAt(snap)
		if len(roots) == 0 {
			// Nothing lives here; the batches stay put so progenitor
			// links from later snapshots still resolve.
			continue
		}

		for _, h := range r.index.HalosAt(snap) {
			r.aux[h].FirstGalaxy = 0
			r.aux[h].NGalaxies = 0
		}

		for _, root := range roots {
			if !r.aux[root].Done {
				if err := r.construct(root); err != nil {
					return err
				}
			}
		}

		// The previous batch's merger pointers were just finalized by
		// this snapshot's commits.
		if r.prevOccupiedSnap >= 0 {
			if err := r.save(r.prevOccupiedSnap, r.prev, r.prevStart); err != nil {
				return err
			}
		}

		r.prev, r.cur = r.cur, r.prev
		r.cur.Reset()
		r.prevStart, r.curStart = r.curStart, r.committed
		r.gen++
		r.prevOccupiedSnap = snap
	}

	if r.prevOccupiedSnap >= 0 {
		if err := r.save(r.prevOccupiedSnap, r.prev, r.prevStart); err != nil {
			return err
		}
	}

	r.diag.Forests++
	return nil
}

func (r *Run) save(snap int, batch *galaxy.Buffer, start int) error {
	info := io.ForestInfo{
		ID:        r.forestID,
		NumHalos:  len(r.halos),
		Committed: start,
	}
	return r.saver.SaveGalaxies(info, snap, r.halos, batch.Data())
}
