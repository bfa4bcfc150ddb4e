package tree

import (
	"log"

	"github.com/gosam-model/gosam/dyn"
)

const (
	initialSnapHalos = 16
	initialSnapRoots = 8
)

// SnapshotIndex maps snapshot numbers to the halos and FOF-group roots
// that exist at each snapshot. Building it is one linear pass over a
// forest; queries are O(1) views.
type SnapshotIndex struct {
	halos   []*dyn.Array[int]
	roots   []*dyn.Array[int]
	skipped int
}

// NewSnapshotIndex allocates an index covering snapshots 0 through
// maxSnap. The per-snapshot lists start small: most snapshots of most
// forests hold a handful of halos.
func NewSnapshotIndex(maxSnap int) *SnapshotIndex {
	idx := &SnapshotIndex{
		halos: make([]*dyn.Array[int], maxSnap+1),
		roots: make([]*dyn.Array[int], maxSnap+1),
	}
	for i := range idx.halos {
		idx.halos[i] = dyn.Doubling[int](initialSnapHalos)
		idx.roots[i] = dyn.Doubling[int](initialSnapRoots)
	}
	return idx
}

// MaxSnap returns the largest snapshot number the index covers.
func (idx *SnapshotIndex) MaxSnap() int { return len(idx.halos) - 1 }

// NumSkipped returns the number of halos the last Build dropped for
// having an out-of-range snapshot number.
func (idx *SnapshotIndex) NumSkipped() int { return idx.skipped }

// Build fills the index from a forest's halo array. Any previous
// contents are discarded first, so building twice from the same array
// yields identical index state. A halo whose snapshot number falls
// outside [0, MaxSnap] is excluded with a logged warning; everything
// else about the forest still indexes normally.
func (idx *SnapshotIndex) Build(halos []Halo) {
	idx.Reset()
	for i := range halos {
		snap := halos[i].SnapNum
		if snap < 0 || snap >= len(idx.halos) {
			log.Printf(
				"Warning: halo %d has snapshot %d, outside [0, %d]. "+
					"It will not be indexed.",
				i, snap, len(idx.halos)-1,
			)
			idx.skipped++
			continue
		}

		idx.halos[snap].Append(i)
		if IsFOFRoot(halos, i) {
			idx.roots[snap].Append(i)
		}
	}
}

// HalosAt returns the indices of the halos at the given snapshot. The
// returned slice is a view into the index: valid until the next Build
// or Reset, and nil for an out-of-range snapshot.
func (idx *SnapshotIndex) HalosAt(snap int) []int {
	if snap < 0 || snap >= len(idx.halos) {
		return nil
	}
	return idx.halos[snap].Data()
}

// RootsAt returns the indices of the FOF-group roots at the given
// snapshot, under the same view rules as HalosAt.
func (idx *SnapshotIndex) RootsAt(snap int) []int {
	if snap < 0 || snap >= len(idx.roots) {
		return nil
	}
	return idx.roots[snap].Data()
}

// Reset empties every per-snapshot list, keeping capacity.
func (idx *SnapshotIndex) Reset() {
	for i := range idx.halos {
		idx.halos[i].Reset()
		idx.roots[i].Reset()
	}
	idx.skipped = 0
}
