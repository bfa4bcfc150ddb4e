package io

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gosam-model/gosam/galaxy"
)

func TestMemorySaver(t *testing.T) {
	ms := NewMemorySaver()
	info := ForestInfo{ID: 3, NumHalos: 10}

	first := []galaxy.Galaxy{{GalaxyNr: 0}, {GalaxyNr: 1}}
	if err := ms.SaveGalaxies(info, 2, nil, first); err != nil {
		t.Fatal(err.Error())
	}

	info.Committed = 2
	second := []galaxy.Galaxy{{GalaxyNr: 2}}
	if err := ms.SaveGalaxies(info, 4, nil, second); err != nil {
		t.Fatal(err.Error())
	}

	if err := ms.SaveGalaxies(info, 2, nil, second); err == nil {
		t.Errorf("Saving snapshot 2 twice should fail.")
	}

	gals, ok := ms.Batch(3, 2)
	if !ok {
		t.Fatalf("Lost the batch for snapshot 2.")
	}
	assert.Equal(t, 2, len(gals))

	if _, ok := ms.Batch(3, 3); ok {
		t.Errorf("Found a batch for a snapshot that was never saved.")
	}
	if _, ok := ms.Batch(9, 2); ok {
		t.Errorf("Found a batch for a forest that was never saved.")
	}

	all := ms.Galaxies(3)
	if len(all) != 3 {
		t.Fatalf("Got %d galaxies instead of 3.", len(all))
	}
	for i := range all {
		if all[i].GalaxyNr != i {
			t.Errorf(
				"%d) Concatenated catalog is out of order: GalaxyNr = %d.",
				i, all[i].GalaxyNr,
			)
		}
	}
	assert.Equal(t, 3, ms.NumGalaxies())
	assert.Equal(t, 2, len(ms.Batches()))
}

func TestMemorySaverCopies(t *testing.T) {
	ms := NewMemorySaver()
	src := []galaxy.Galaxy{{GalaxyNr: 7}}
	if err := ms.SaveGalaxies(ForestInfo{ID: 0}, 0, nil, src); err != nil {
		t.Fatal(err.Error())
	}

	// The engine reuses its batch buffers after saving.
	src[0].GalaxyNr = 99

	gals, _ := ms.Batch(0, 0)
	assert.Equal(t, 7, gals[0].GalaxyNr)
}

func TestDiscardSaver(t *testing.T) {
	ds := &DiscardSaver{}
	gals := []galaxy.Galaxy{
		{Type: galaxy.Central},
		{Type: galaxy.Satellite},
		{Type: galaxy.Satellite},
		{Type: galaxy.Orphan},
	}
	if err := ds.SaveGalaxies(ForestInfo{ID: 1}, 5, nil, gals); err != nil {
		t.Fatal(err.Error())
	}

	assert.Equal(t, 1, ds.Batches)
	assert.Equal(t, 4, ds.Galaxies)
	assert.Equal(t, [3]int{1, 2, 1}, ds.ByType)

	other := &DiscardSaver{Batches: 2, Galaxies: 3, ByType: [3]int{3, 0, 0}}
	ds.Add(other)
	assert.Equal(t, 3, ds.Batches)
	assert.Equal(t, 7, ds.Galaxies)
	assert.Equal(t, [3]int{4, 2, 1}, ds.ByType)
}
