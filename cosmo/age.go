package cosmo

import (
	"fmt"
)

// zEarly is the redshift used for the age table's pre-first-snapshot
// anchor. Galaxies born in snapshot n are stamped with snapshot n - 1,
// so the table must answer for one slot before the first snapshot.
const zEarly = 1000.0

// AgeTable maps snapshot numbers to lookback times. Lookback times
// decrease as snapshots advance, reaching zero when the last snapshot
// sits at z = 0.
type AgeTable struct {
	scales []float64
	zs     []float64
	ages   []float64

	omegaM, omegaL float64
}

// NewAgeTable builds an AgeTable from the simulation's expansion
// factor list, one entry per snapshot. The scales must be strictly
// increasing and lie in (0, 1].
func NewAgeTable(scales []float64, omegaM, omegaL float64) (*AgeTable, error) {
	if len(scales) == 0 {
		return nil, fmt.Errorf("The snapshot list is empty.")
	}

	t := &AgeTable{
		scales: scales,
		zs:     make([]float64, len(scales)),
		ages:   make([]float64, len(scales)+1),
		omegaM: omegaM,
		omegaL: omegaL,
	}

	t.ages[0] = LookbackTime(H0, omegaM, omegaL, zEarly)
	for i, a := range scales {
		if a <= 0 || a > 1 {
			return nil, fmt.Errorf(
				"Snapshot %d has expansion factor %g, but expansion "+
					"factors must be in (0, 1].", i, a,
			)
		}
		if i > 0 && a <= scales[i-1] {
			return nil, fmt.Errorf(
				"Snapshot %d has expansion factor %g, which does not "+
					"come after %g.", i, a, scales[i-1],
			)
		}

		t.zs[i] = 1/a - 1
		t.ages[i+1] = LookbackTime(H0, omegaM, omegaL, t.zs[i])
	}

	return t, nil
}

// Snapshots returns the number of snapshots in the table.
func (t *AgeTable) Snapshots() int { return len(t.scales) }

// At returns the lookback time of snapshot snap in (Mpc/h)/(km/s).
// snap may be -1, which returns the age of the pre-first-snapshot
// anchor at z = 1000.
func (t *AgeTable) At(snap int) float64 { return t.ages[snap+1] }

// Redshift returns the redshift of snapshot snap.
func (t *AgeTable) Redshift(snap int) float64 { return t.zs[snap] }

// Scale returns the expansion factor of snapshot snap.
func (t *AgeTable) Scale(snap int) float64 { return t.scales[snap] }
