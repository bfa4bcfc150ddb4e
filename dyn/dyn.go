/*Package dyn implements growable arrays with explicit growth policies.

The rest of the module leans on two growth patterns. Halo index tables
start tiny and double, since most snapshots hold only a handful of
groups. Galaxy buffers grow in large fixed chunks, since a forest can
emit tens of thousands of galaxies and doubling would overshoot badly.
Both patterns share the Array type and differ only in their policy.
*/
package dyn

// Array is a growable array of T with a fixed growth policy. The zero
// value is not usable. Create instances with Doubling or Chunked.
//
// Unlike append on a raw slice, growth is always an explicit allocate
// and copy, and the number of growths is recorded so callers can check
// that buffer reuse is actually avoiding reallocation.
type Array[T any] struct {
	data    []T
	n       int
	policy  func(need, cap int) int
	growths int
}

// Doubling returns an Array that starts with capacity initCap and
// doubles whenever it runs out of room.
func Doubling[T any](initCap int) *Array[T] {
	if initCap < 1 {
		initCap = 1
	}
	return &Array[T]{
		data: make([]T, initCap),
		policy: func(need, cap int) int {
			for cap < need {
				cap *= 2
			}
			return cap
		},
	}
}

// Chunked returns an Array that starts with capacity chunk and grows
// by whole chunks whenever it runs out of room.
func Chunked[T any](chunk int) *Array[T] {
	if chunk < 1 {
		chunk = 1
	}
	return &Array[T]{
		data: make([]T, chunk),
		policy: func(need, cap int) int {
			for cap < need {
				cap += chunk
			}
			return cap
		},
	}
}

// Len returns the number of live elements.
func (a *Array[T]) Len() int { return a.n }

// Cap returns the current capacity.
func (a *Array[T]) Cap() int { return len(a.data) }

// Growths returns the number of times the Array has reallocated.
func (a *Array[T]) Growths() int { return a.growths }

// Append adds x to the end of the Array and returns its index.
func (a *Array[T]) Append(x T) int {
	if a.n == len(a.data) {
		a.grow(a.n + 1)
	}
	a.data[a.n] = x
	a.n++
	return a.n - 1
}

// Extend appends n zero elements and returns the index of the first.
func (a *Array[T]) Extend(n int) int {
	if a.n+n > len(a.data) {
		a.grow(a.n + n)
	}
	start := a.n
	var zero T
	for i := 0; i < n; i++ {
		a.data[start+i] = zero
	}
	a.n += n
	return start
}

// At returns a pointer to element i. The pointer is valid until the
// next growth, so callers must not hold it across Append calls.
func (a *Array[T]) At(i int) *T { return &a.data[i] }

// Data returns the live elements as a slice. The slice is valid until
// the next growth.
func (a *Array[T]) Data() []T { return a.data[:a.n] }

// Reset sets the length to zero without releasing memory.
func (a *Array[T]) Reset() { a.n = 0 }

func (a *Array[T]) grow(need int) {
	newCap := a.policy(need, len(a.data))
	data := make([]T, newCap)
	copy(data, a.data[:a.n])
	a.data = data
	a.growths++
}
