package sam

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gosam-model/gosam/cosmo"
	"github.com/gosam-model/gosam/galaxy"
	"github.com/gosam-model/gosam/io"
	"github.com/gosam-model/gosam/physics"
	"github.com/gosam-model/gosam/tree"
)

func testScales(n int) []float64 {
	scales := make([]float64, n)
	for i := range scales {
		scales[i] = float64(i+1) / float64(n)
	}
	return scales
}

func testAges(t *testing.T, n int) *cosmo.AgeTable {
	t.Helper()
	ages, err := cosmo.NewAgeTable(testScales(n), 0.25, 0.75)
	if err != nil {
		t.Fatal(err.Error())
	}
	return ages
}

func testRun(t *testing.T, snapshots int, saver io.Saver) *Run {
	t.Helper()
	p := physics.DefaultParams()
	r, err := NewRun(p, physics.Simple(p), testAges(t, snapshots), saver)
	if err != nil {
		t.Fatal(err.Error())
	}
	return r
}

// primeRun readies a Run for white-box calls into join and evolve on a
// hand-built halo array, bypassing the driver.
func primeRun(t *testing.T, snapshots int, halos []tree.Halo) *Run {
	t.Helper()
	r := testRun(t, snapshots, io.NewMemorySaver())
	r.halos = halos
	r.aux = make([]tree.Aux, len(halos))
	return r
}

// liveGalaxy builds a committed-batch record the way the engine leaves
// them: alive, homed, and with the merger bookkeeping at rest.
func liveGalaxy(nr, haloNr, snap int, typ galaxy.Type, mvir float64) galaxy.Galaxy {
	return galaxy.Galaxy{
		Type:     typ,
		GalaxyNr: nr,
		HaloNr:   haloNr,
		SnapNum:  snap,
		Len:      100,
		Mvir:     mvir,
		Rvir:     0.1,
		Vvir:     100,
		Vmax:     110,

		CentralGal:       0,
		DT:               -1,
		MergTime:         galaxy.MergTimeUnset,
		MergeIntoID:      -1,
		MergeIntoSnapNum: -1,

		InfallMvir: -1, InfallVvir: -1, InfallVmax: -1,
		TimeOfLastMajorMerger: -1, TimeOfLastMinorMerger: -1,
	}
}

func TestNewRunValidation(t *testing.T) {
	p := physics.DefaultParams()
	rec := physics.Simple(p)
	ages := testAges(t, 4)
	saver := &io.DiscardSaver{}

	if _, err := NewRun(p, rec, ages, saver); err != nil {
		t.Fatalf("A valid Run was rejected: %s", err.Error())
	}

	bad := p
	bad.MinSteps = 0
	if _, err := NewRun(bad, rec, ages, saver); err == nil {
		t.Errorf("Invalid parameters were accepted.")
	}

	if _, err := NewRun(p, physics.Recipes{}, ages, saver); err == nil {
		t.Errorf("An empty recipe set was accepted.")
	}
	if _, err := NewRun(p, rec, nil, saver); err == nil {
		t.Errorf("A nil age table was accepted.")
	}
	if _, err := NewRun(p, rec, ages, nil); err == nil {
		t.Errorf("A nil saver was accepted.")
	}
}

func TestDiagAdd(t *testing.T) {
	d := Diag{Forests: 1, Committed: 10, Newborn: 3, MaxSubsteps: 12}
	d.Add(&Diag{
		Forests: 2, Committed: 5, Mergers: 4,
		Disruptions: 1, IndexSkips: 2, MaxSubsteps: 9,
	})

	assert.Equal(t, Diag{
		Forests: 3, Committed: 15, Newborn: 3, Mergers: 4,
		Disruptions: 1, IndexSkips: 2, MaxSubsteps: 12,
	}, d)
}
