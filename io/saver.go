/*Package io handles the user-facing formats of the engine: run config
files, snapshot expansion factor lists, and the Saver interface that
snapshot batches of finished galaxies are handed to.
*/
package io

import (
	"fmt"

	"github.com/gosam-model/gosam/galaxy"
	"github.com/gosam-model/gosam/tree"
)

// ForestInfo identifies the forest a galaxy batch belongs to.
type ForestInfo struct {
	ID       int
	NumHalos int

	// Committed counts the galaxies committed to this forest's earlier
	// batches. A batch-local index plus Committed gives the
	// forest-absolute galaxy position, which is the space MergeIntoID
	// points into.
	Committed int
}

// Saver consumes finished snapshot batches of one forest. The batch
// for a snapshot is handed over only after the following occupied
// snapshot has patched its merger pointers, so the records are final.
// Galaxies arrive in commit order, grouped by halo. The slice is
// reused for later batches: implementations keep a copy or nothing.
//
// A Saver is driven by a single worker at a time. Workers that run in
// parallel each get their own.
type Saver interface {
	SaveGalaxies(
		info ForestInfo, snap int,
		halos []tree.Halo, gals []galaxy.Galaxy,
	) error
}

// MemoryBatch is one saved snapshot batch.
type MemoryBatch struct {
	Info ForestInfo
	Snap int
	Gals []galaxy.Galaxy
}

// MemorySaver retains every batch, keyed by forest and snapshot. It is
// meant for plotting runs and tests, where the full catalog fits in
// memory.
type MemorySaver struct {
	batches []MemoryBatch
	index   map[int]map[int]int
}

func NewMemorySaver() *MemorySaver {
	return &MemorySaver{index: map[int]map[int]int{}}
}

func (ms *MemorySaver) SaveGalaxies(
	info ForestInfo, snap int,
	halos []tree.Halo, gals []galaxy.Galaxy,
) error {
	snaps, ok := ms.index[info.ID]
	if !ok {
		snaps = map[int]int{}
		ms.index[info.ID] = snaps
	}
	if _, ok := snaps[snap]; ok {
		return fmt.Errorf(
			"Forest %d saved two batches for snapshot %d.", info.ID, snap,
		)
	}

	snaps[snap] = len(ms.batches)
	ms.batches = append(ms.batches, MemoryBatch{
		Info: info, Snap: snap,
		Gals: append([]galaxy.Galaxy{}, gals...),
	})
	return nil
}

// Batches returns every saved batch in save order.
func (ms *MemorySaver) Batches() []MemoryBatch { return ms.batches }

// Batch returns the batch one forest committed for one snapshot.
func (ms *MemorySaver) Batch(forest, snap int) ([]galaxy.Galaxy, bool) {
	snaps, ok := ms.index[forest]
	if !ok {
		return nil, false
	}
	i, ok := snaps[snap]
	if !ok {
		return nil, false
	}
	return ms.batches[i].Gals, true
}

// Galaxies concatenates a forest's batches in save order. Since
// batches arrive in snapshot order, the position of each galaxy in the
// returned slice is its forest-absolute index: MergeIntoID values
// index directly into it.
func (ms *MemorySaver) Galaxies(forest int) []galaxy.Galaxy {
	gals := []galaxy.Galaxy{}
	for i := range ms.batches {
		if ms.batches[i].Info.ID == forest {
			gals = append(gals, ms.batches[i].Gals...)
		}
	}
	return gals
}

// NumGalaxies counts the saved records across all forests.
func (ms *MemorySaver) NumGalaxies() int {
	n := 0
	for i := range ms.batches {
		n += len(ms.batches[i].Gals)
	}
	return n
}

// DiscardSaver tallies what passes through it and keeps nothing. It is
// the saver for throughput runs and census logging.
type DiscardSaver struct {
	Batches  int
	Galaxies int
	ByType   [3]int
}

func (ds *DiscardSaver) SaveGalaxies(
	info ForestInfo, snap int,
	halos []tree.Halo, gals []galaxy.Galaxy,
) error {
	ds.Batches++
	ds.Galaxies += len(gals)
	for i := range gals {
		ds.ByType[gals[i].Type]++
	}
	return nil
}

// Add folds another saver's tallies into ds. The Manager uses it to
// merge per-worker counts.
func (ds *DiscardSaver) Add(other *DiscardSaver) {
	ds.Batches += other.Batches
	ds.Galaxies += other.Galaxies
	for i := range ds.ByType {
		ds.ByType[i] += other.ByType[i]
	}
}
