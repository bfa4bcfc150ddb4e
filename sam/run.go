/*Package sam is the galaxy formation engine: the recursive
construction walk over merger tree forests, the progenitor join that
carries galaxies forward between snapshots, the substepped evolution of
each FOF group, and the per-forest driver that bounds resident galaxies
to two adjacent snapshot batches.

The engine owns control flow and bookkeeping only. The mass flows come
from the physics.Recipes it is given, and finished snapshot batches
leave through an io.Saver.
*/
package sam

import (
	"errors"
	"fmt"

	"github.com/gosam-model/gosam/cosmo"
	"github.com/gosam-model/gosam/galaxy"
	"github.com/gosam-model/gosam/io"
	"github.com/gosam-model/gosam/physics"
	"github.com/gosam-model/gosam/tree"
)

// The engine's invariant violations. All of them are fatal for the
// forest being processed and end the run.
var (
	// ErrNoCentral means a join produced galaxies but none of them is
	// a central or a satellite, or a group's central reference does
	// not point at a central galaxy homed at the group root.
	ErrNoCentral = errors.New("group has no central galaxy")

	// ErrManyCentrals means a single halo ended up holding two
	// non-orphan galaxies.
	ErrManyCentrals = errors.New("halo holds more than one central galaxy")

	// ErrStaleBatch means a progenitor's galaxy range points into a
	// batch that has already been rotated out.
	ErrStaleBatch = errors.New("progenitor galaxies point into a stale batch")

	// ErrMergeTarget means a galaxy marked as merged has no committed
	// record in the previous batch to patch.
	ErrMergeTarget = errors.New("no committed record found for a merged galaxy")

	// ErrMergTime means a satellite reached the merger sweep without
	// ever being given a merging clock.
	ErrMergTime = errors.New("satellite has no merging time")

	// ErrNotRoot means a group contributed no galaxies at all and its
	// first walked member is not the FOF root, so there is no halo to
	// seed a newborn central in.
	ErrNotRoot = errors.New("newborn galaxy requested in a subhalo")
)

// maxSubsteps caps the adaptive substep count per snapshot interval.
const maxSubsteps = 30

// Diag counts what a Run has done. The zero value is ready to use.
type Diag struct {
	Forests     int
	Committed   int
	Newborn     int
	Mergers     int
	Disruptions int
	IndexSkips  int
	MaxSubsteps int
}

// Add folds another worker's counts into d.
func (d *Diag) Add(other *Diag) {
	d.Forests += other.Forests
	d.Committed += other.Committed
	d.Newborn += other.Newborn
	d.Mergers += other.Mergers
	d.Disruptions += other.Disruptions
	d.IndexSkips += other.IndexSkips
	if other.MaxSubsteps > d.MaxSubsteps {
		d.MaxSubsteps = other.MaxSubsteps
	}
}

// Run holds the engine state of one worker. A Run processes forests
// one at a time on the calling goroutine and reuses its buffers
// between them. It is not safe for concurrent use: parallel workers
// each get their own Run.
type Run struct {
	params  physics.Params
	recipes physics.Recipes
	ages    *cosmo.AgeTable
	saver   io.Saver

	index *tree.SnapshotIndex

	// work holds the FOF group currently being joined and evolved.
	// cur and prev are the double-buffered output batches: cur
	// collects commits at the snapshot in progress, prev holds the
	// previous occupied snapshot's batch until its merger pointers
	// are final.
	work *galaxy.Buffer
	prev *galaxy.Buffer
	cur  *galaxy.Buffer

	// Per-forest state.
	halos     []tree.Halo
	aux       []tree.Aux
	forestID  int
	committed int
	prevStart int
	curStart  int
	gen       int

	prevOccupiedSnap int

	// nextGalaxyNr numbers newborn galaxies within the forest, so a
	// record is identified by (forest ID, galaxy number) no matter
	// which worker processed it.
	nextGalaxyNr int

	diag Diag
}

// NewRun builds a Run over the given snapshot age table. The recipe
// set must be complete and the parameters valid.
func NewRun(
	params physics.Params, recipes physics.Recipes,
	ages *cosmo.AgeTable, saver io.Saver,
) (*Run, error) {
	if err := params.Valid(); err != nil {
		return nil, err
	}
	if err := recipes.Complete(); err != nil {
		return nil, err
	}
	if ages == nil {
		return nil, fmt.Errorf("A Run needs a snapshot age table.")
	}
	if saver == nil {
		return nil, fmt.Errorf("A Run needs a Saver.")
	}

	return &Run{
		params:  params,
		recipes: recipes,
		ages:    ages,
		saver:   saver,
		index:   tree.NewSnapshotIndex(ages.Snapshots() - 1),
		work:    galaxy.NewBuffer(),
		prev:    galaxy.NewBuffer(),
		cur:     galaxy.NewBuffer(),
	}, nil
}

// Diag returns the counters accumulated so far.
func (r *Run) Diag() Diag { return r.diag }

func (r *Run) virialMass(h int) float64 {
	return physics.VirialMass(r.halos, h, &r.params)
}

func (r *Run) virialRadius(h int) float64 {
	z := r.ages.Redshift(r.halos[h].SnapNum)
	return physics.VirialRadius(r.halos, h, &r.params, z)
}

func (r *Run) virialVelocity(h int) float64 {
	z := r.ages.Redshift(r.halos[h].SnapNum)
	return physics.VirialVelocity(r.halos, h, &r.params, z)
}

func (r *Run) mergingTime(sat, mother int, g *galaxy.Galaxy) float64 {
	z := r.ages.Redshift(r.halos[mother].SnapNum)
	return physics.MergingTime(
		r.halos, sat, mother, g.StellarMass, g.ColdGas, &r.params, z,
	)
}
