package dyn

import (
	"testing"
)

func TestDoublingGrowth(t *testing.T) {
	a := Doubling[int](4)

	caps := []int{}
	for i := 0; i < 33; i++ {
		a.Append(i)
		caps = append(caps, a.Cap())
	}

	if a.Len() != 33 {
		t.Errorf("Len() = %d instead of 33", a.Len())
	}
	if caps[3] != 4 || caps[4] != 8 || caps[8] != 16 || caps[16] != 32 ||
		caps[32] != 64 {
		t.Errorf("capacity sequence %v does not double from 4", caps)
	}
	if a.Growths() != 4 {
		t.Errorf("Growths() = %d instead of 4", a.Growths())
	}

	for i := 0; i < 33; i++ {
		if *a.At(i) != i {
			t.Errorf("%d) At(%d) = %d after growth", i+1, i, *a.At(i))
		}
	}
}

func TestChunkedGrowth(t *testing.T) {
	a := Chunked[float64](10)

	for i := 0; i < 25; i++ {
		a.Append(float64(i))
	}

	if a.Cap() != 30 {
		t.Errorf("Cap() = %d instead of 30", a.Cap())
	}
	if a.Growths() != 2 {
		t.Errorf("Growths() = %d instead of 2", a.Growths())
	}
	for i := 0; i < 25; i++ {
		if a.Data()[i] != float64(i) {
			t.Errorf("%d) Data()[%d] = %g", i+1, i, a.Data()[i])
		}
	}
}

func TestExtend(t *testing.T) {
	a := Chunked[int](4)
	a.Append(7)
	a.Append(8)

	start := a.Extend(6)
	if start != 2 {
		t.Errorf("Extend(6) = %d instead of 2", start)
	}
	if a.Len() != 8 {
		t.Errorf("Len() = %d instead of 8", a.Len())
	}
	for i := start; i < a.Len(); i++ {
		if *a.At(i) != 0 {
			t.Errorf("At(%d) = %d instead of 0", i, *a.At(i))
		}
	}
	if *a.At(0) != 7 || *a.At(1) != 8 {
		t.Errorf("Extend clobbered existing elements: %d %d",
			*a.At(0), *a.At(1))
	}
}

func TestExtendZeroesReusedMemory(t *testing.T) {
	a := Doubling[int](8)
	for i := 0; i < 8; i++ {
		a.Append(i + 1)
	}
	a.Reset()

	start := a.Extend(8)
	for i := start; i < a.Len(); i++ {
		if *a.At(i) != 0 {
			t.Errorf("At(%d) = %d holds stale data after Reset", i, *a.At(i))
		}
	}
}

func TestResetKeepsCapacity(t *testing.T) {
	a := Doubling[int](2)
	for i := 0; i < 20; i++ {
		a.Append(i)
	}
	cap, growths := a.Cap(), a.Growths()

	a.Reset()
	if a.Len() != 0 {
		t.Errorf("Len() = %d after Reset", a.Len())
	}
	if a.Cap() != cap {
		t.Errorf("Cap() = %d instead of %d after Reset", a.Cap(), cap)
	}

	for i := 0; i < 20; i++ {
		a.Append(i)
	}
	if a.Growths() != growths {
		t.Errorf("Growths() = %d instead of %d after refill",
			a.Growths(), growths)
	}
}

func TestAtAliasesData(t *testing.T) {
	a := Doubling[int](4)
	a.Append(1)
	a.Append(2)

	*a.At(1) = 42
	if a.Data()[1] != 42 {
		t.Errorf("Data()[1] = %d instead of 42 after write through At",
			a.Data()[1])
	}
}

func BenchmarkAppendChunked(b *testing.B) {
	a := Chunked[[4]float64](10000)
	var x [4]float64
	for i := 0; i < b.N; i++ {
		if a.Len() == 1<<20 {
			a.Reset()
		}
		a.Append(x)
	}
}
