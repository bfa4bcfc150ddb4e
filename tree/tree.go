/*Package tree defines merger-tree forests: halo records, the transient
per-halo bookkeeping the engine layers on top of them, and loaders that
produce forests.

A forest is one connected merger-tree graph. All topology (progenitor
chains, FOF-group membership, descendants) is expressed as integer
indices into the forest's flat halo array, with -1 marking the end of a
chain. Halo records are read-only once loaded; everything mutable lives
in the Aux records.
*/
package tree

import (
	"math"
)

// Vector is a position, velocity, or spin in the simulation frame.
type Vector [3]float64

// Norm returns the Euclidean length of the vector.
func (v *Vector) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Halo is one merger-tree node. Masses are in 1e10 Msun/h, positions
// in Mpc/h, velocities in km/s.
type Halo struct {
	// Tree topology, as indices into the forest's halo array. -1
	// terminates a chain.
	Descendant      int
	FirstProgenitor int
	NextProgenitor  int
	FirstInFOFGroup int
	NextInFOFGroup  int

	Len  int     // particle count
	Mvir float64 // group virial mass estimate; negative when unset

	Pos  Vector
	Vel  Vector
	Spin Vector

	VelDisp float64
	Vmax    float64

	MostBoundID int64
	SnapNum     int
}

// IsFOFRoot reports whether halo i is the root of its FOF group. A
// root's FirstInFOFGroup field points at itself.
func IsFOFRoot(halos []Halo, i int) bool {
	return halos[i].FirstInFOFGroup == i
}

// Forest is one connected merger-tree graph, processed as a unit.
type Forest struct {
	ID    int
	Halos []Halo
}

// GroupState tracks how far a FOF group has come through the
// construction walk. It lives on the group's root halo and only ever
// advances Unvisited -> Entering -> Done.
type GroupState int

const (
	// GroupUnvisited means no member of the group has been reached.
	GroupUnvisited GroupState = iota
	// GroupEntering means the group's members are having their
	// progenitor chains processed.
	GroupEntering
	// GroupDone means the group has been joined and evolved.
	GroupDone
)

func (s GroupState) String() string {
	switch s {
	case GroupUnvisited:
		return "Unvisited"
	case GroupEntering:
		return "Entering"
	case GroupDone:
		return "Done"
	}
	panic(":3")
}

// Aux is the transient bookkeeping attached to one halo while its
// forest is processed. The zero value is the correct initial state, so
// a fresh aux slice is just make([]Aux, len(halos)).
//
// FirstGalaxy and NGalaxies locate the halo's committed galaxies
// within the output batch of generation BatchGen. They are only
// meaningful while that batch is still resident.
type Aux struct {
	Done  bool
	Group GroupState

	FirstGalaxy int
	NGalaxies   int
	BatchGen    int
}

// Loader produces forests for the engine. Implementations must be safe
// for concurrent use: worker goroutines call LoadForest independently.
type Loader interface {
	ForestIDs() []int
	LoadForest(id int) (*Forest, error)
}
