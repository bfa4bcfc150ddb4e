package galaxy

import (
	"testing"

	"github.com/gosam-model/gosam/tree"
)

func TestNew(t *testing.T) {
	h := &tree.Halo{
		Len:         250,
		Pos:         tree.Vector{1, 2, 3},
		Vel:         tree.Vector{-50, 10, 90},
		Vmax:        180,
		MostBoundID: 777,
		SnapNum:     12,
	}

	g := New(42, 9, h, 21.5, 0.21, 160, 0.01)

	if g.Type != Central {
		t.Errorf("Type = %s instead of Central", g.Type)
	}
	if g.GalaxyNr != 42 || g.HaloNr != 9 {
		t.Errorf("identity = (%d, %d) instead of (42, 9)", g.GalaxyNr, g.HaloNr)
	}
	if g.SnapNum != 11 {
		t.Errorf("SnapNum = %d, not stamped one before the halo", g.SnapNum)
	}
	if g.MostBoundID != 777 || g.Len != 250 || g.Vmax != 180 {
		t.Errorf("halo attributes not copied: %d %d %g",
			g.MostBoundID, g.Len, g.Vmax)
	}
	if g.Pos != h.Pos || g.Vel != h.Vel {
		t.Errorf("position/velocity not copied")
	}
	if g.Mvir != 21.5 || g.Rvir != 0.21 || g.Vvir != 160 {
		t.Errorf("virial trio = (%g, %g, %g)", g.Mvir, g.Rvir, g.Vvir)
	}
	if g.DiskScaleRadius != 0.01 {
		t.Errorf("DiskScaleRadius = %g instead of 0.01", g.DiskScaleRadius)
	}

	if g.Baryons() != 0 {
		t.Errorf("newborn galaxy has %g baryons", g.Baryons())
	}
	total := g.ColdGas + g.StellarMass + g.BulgeMass + g.HotGas +
		g.EjectedMass + g.BlackHoleMass + g.ICS
	if total != 0 {
		t.Errorf("newborn galaxy has %g total reservoir mass", total)
	}

	if g.MergTime < 999.0 {
		t.Errorf("MergTime = %g, not the unset sentinel", g.MergTime)
	}
	if g.Merged() {
		t.Errorf("newborn galaxy reports Merged()")
	}
	if g.MergeIntoID != -1 || g.MergeIntoSnapNum != -1 {
		t.Errorf("merge target = (%d, %d) instead of (-1, -1)",
			g.MergeIntoID, g.MergeIntoSnapNum)
	}
	if g.InfallMvir != -1 || g.InfallVvir != -1 || g.InfallVmax != -1 {
		t.Errorf("infall properties not initialized to -1")
	}
	if g.DT != -1 {
		t.Errorf("DT = %g instead of -1", g.DT)
	}
}

func TestMerged(t *testing.T) {
	g := Galaxy{}
	if g.Merged() {
		t.Errorf("zero galaxy reports Merged()")
	}
	for _, k := range []MergeKind{MergeMinor, MergeMajor, MergeDisrupt} {
		g.MergeType = k
		if !g.Merged() {
			t.Errorf("MergeType %s does not report Merged()", k)
		}
	}
}

func TestTypeStrings(t *testing.T) {
	if Central.String() != "Central" || Satellite.String() != "Satellite" ||
		Orphan.String() != "Orphan" {
		t.Errorf("Type strings wrong: %s %s %s", Central, Satellite, Orphan)
	}
	if MergeNone.String() != "None" || MergeDisrupt.String() != "Disrupt" {
		t.Errorf("MergeKind strings wrong: %s %s", MergeNone, MergeDisrupt)
	}
}

func TestBufferGrowth(t *testing.T) {
	b := NewBuffer()

	if b.Cap() != ChunkSize {
		t.Fatalf("Cap() = %d instead of %d", b.Cap(), ChunkSize)
	}

	// One growth event per full chunk, no record loss across growth.
	n := 2*ChunkSize + 500
	for i := 0; i < n; i++ {
		b.Append(Galaxy{GalaxyNr: i})
	}

	if b.Len() != n {
		t.Errorf("Len() = %d instead of %d", b.Len(), n)
	}
	if b.Growths() != 2 {
		t.Errorf("Growths() = %d instead of 2", b.Growths())
	}
	if b.Cap() != 3*ChunkSize {
		t.Errorf("Cap() = %d instead of %d", b.Cap(), 3*ChunkSize)
	}

	for i := 0; i < n; i++ {
		if b.At(i).GalaxyNr != i {
			t.Fatalf("record %d lost across growth: GalaxyNr = %d",
				i, b.At(i).GalaxyNr)
		}
	}
}

func TestBufferViewsRefresh(t *testing.T) {
	b := NewBuffer()
	for i := 0; i < ChunkSize; i++ {
		b.Append(Galaxy{GalaxyNr: i})
	}
	old := b.Data()

	b.Append(Galaxy{GalaxyNr: ChunkSize})
	fresh := b.Data()

	if &old[0] == &fresh[0] {
		t.Errorf("Data() view did not move across growth")
	}
	if len(fresh) != ChunkSize+1 {
		t.Errorf("fresh view has %d records", len(fresh))
	}
	for i := range fresh {
		if fresh[i].GalaxyNr != i {
			t.Fatalf("record %d corrupted across growth", i)
		}
	}
}

func TestBufferReset(t *testing.T) {
	b := NewBuffer()
	for i := 0; i < ChunkSize+1; i++ {
		b.Append(Galaxy{})
	}
	b.Reset()

	if b.Len() != 0 {
		t.Errorf("Len() = %d after Reset", b.Len())
	}
	if b.Cap() != 2*ChunkSize {
		t.Errorf("Cap() = %d after Reset instead of %d", b.Cap(), 2*ChunkSize)
	}
}
