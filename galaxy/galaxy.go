/*Package galaxy defines the model galaxy record, its lifecycle enums,
and the growable buffers galaxies live in while a forest is processed.

Galaxies are plain value records. The engine owns the lifecycle fields
(Type, merge state, targets); physics recipes own the baryonic
reservoirs. Units match the rest of the module: masses in 1e10 Msun/h,
lengths in Mpc/h, velocities in km/s, times in (Mpc/h)/(km/s).
*/
package galaxy

import (
	"github.com/gosam-model/gosam/tree"
)

// Type classifies a galaxy by the halo it owns.
type Type int

const (
	// Central owns a FOF-group root halo.
	Central Type = iota
	// Satellite owns a subhalo inside somebody else's group.
	Satellite
	// Orphan has lost its subhalo and survives only until its merger
	// or disruption resolves.
	Orphan
)

func (t Type) String() string {
	switch t {
	case Central:
		return "Central"
	case Satellite:
		return "Satellite"
	case Orphan:
		return "Orphan"
	}
	panic(":3")
}

// MergeKind records how a galaxy ended, or MergeNone while it lives.
type MergeKind int

const (
	MergeNone  MergeKind = 0
	MergeMinor MergeKind = 1
	MergeMajor MergeKind = 2
	// MergeDisrupt marks tidal disruption into intracluster stars.
	MergeDisrupt MergeKind = 4
)

func (k MergeKind) String() string {
	switch k {
	case MergeNone:
		return "None"
	case MergeMinor:
		return "Minor"
	case MergeMajor:
		return "Major"
	case MergeDisrupt:
		return "Disrupt"
	}
	panic(":3")
}

// MergTimeUnset is the merge-countdown sentinel: far longer than any
// lookback time in the unit system. Code testing for "no estimate"
// compares against 999.0 to stay clear of float equality.
const MergTimeUnset = 999.9

// Galaxy is one evolving model galaxy.
type Galaxy struct {
	Type Type

	// GalaxyNr is unique and sequential within a forest. HaloNr is the
	// currently owning halo. CentralGal is the working-buffer index of
	// the galaxy's central while its group is evolved.
	GalaxyNr   int
	HaloNr     int
	CentralGal int

	MostBoundID int64
	SnapNum     int

	Len  int
	Pos  tree.Vector
	Vel  tree.Vector
	Vmax float64

	Mvir      float64
	DeltaMvir float64
	Rvir      float64
	Vvir      float64

	ColdGas       float64
	StellarMass   float64
	BulgeMass     float64
	HotGas        float64
	EjectedMass   float64
	BlackHoleMass float64
	ICS           float64

	MetalsColdGas     float64
	MetalsStellarMass float64
	MetalsBulgeMass   float64
	MetalsHotGas      float64
	MetalsEjectedMass float64
	MetalsICS         float64

	SfrDisk  float64
	SfrBulge float64

	DiskScaleRadius float64

	// Cooling, Heating, and OutflowRate accumulate over the snapshot
	// interval and are normalized to rates by 1/deltaT at its end.
	Cooling     float64
	Heating     float64
	OutflowRate float64

	TotalSatelliteBaryons float64
	TimeOfLastMajorMerger float64
	TimeOfLastMinorMerger float64

	// DT is the snapshot interval the galaxy is currently being
	// stepped across; negative between snapshots.
	DT float64

	MergeType        MergeKind
	MergeIntoID      int
	MergeIntoSnapNum int
	MergTime         float64

	InfallMvir float64
	InfallVvir float64
	InfallVmax float64
}

// Merged reports whether the galaxy has already merged or been
// disrupted this snapshot.
func (g *Galaxy) Merged() bool { return g.MergeType != MergeNone }

// Baryons returns the stellar plus cold gas mass, the numerator of the
// satellite disruption threshold.
func (g *Galaxy) Baryons() float64 { return g.StellarMass + g.ColdGas }

// New initializes a newborn central galaxy for the FOF-root halo h. It
// is stamped one snapshot before the halo so that its first evolution
// covers a full snapshot interval. All reservoirs start empty.
func New(nr, haloNr int, h *tree.Halo, mvir, rvir, vvir, diskRadius float64) Galaxy {
	return Galaxy{
		Type: Central,

		GalaxyNr:   nr,
		HaloNr:     haloNr,
		CentralGal: -1,

		MostBoundID: h.MostBoundID,
		SnapNum:     h.SnapNum - 1,

		Len:  h.Len,
		Pos:  h.Pos,
		Vel:  h.Vel,
		Vmax: h.Vmax,

		Mvir: mvir,
		Rvir: rvir,
		Vvir: vvir,

		DiskScaleRadius: diskRadius,

		TimeOfLastMajorMerger: -1,
		TimeOfLastMinorMerger: -1,

		DT: -1,

		MergeIntoID:      -1,
		MergeIntoSnapNum: -1,
		MergTime:         MergTimeUnset,

		InfallMvir: -1,
		InfallVvir: -1,
		InfallVmax: -1,
	}
}
