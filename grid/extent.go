package grid

import (
	"fmt"
	"iter"
)

// An Extent gives the size of a grid along each axis.
//
// Multi-indices are laid out with axis 0 varying fastest,
// so the flat offset of (i0, i1, i2, ...) is
//
//	i0 + e0*i1 + e0*e1*i2 + ...
//
// Enumeration visits indices in the same order.
type Extent []int

// NewExtent creates an extent from per-axis sizes.
// It panics if a size is negative.
func NewExtent(sizes ...int) Extent {
	for i, s := range sizes {
		if s < 0 {
			panic(fmt.Sprintf("new extent: negative size %d on axis %d", s, i))
		}
	}
	return append(Extent{}, sizes...)
}

// Dim gets the number of axes.
func (e Extent) Dim() int {
	return len(e)
}

// Prod gets the total number of points in the extent.
// A zero-dimensional extent holds no points.
func (e Extent) Prod() int {
	if len(e) == 0 {
		return 0
	}
	return Coord[int](e).Prod()
}

// Shrink creates an extent with n fewer points along every
// axis, stopping at zero.
//
// Shrink(1) gives the extent of the cells spanned by the
// points of e.
func (e Extent) Shrink(n int) Extent {
	res := make(Extent, len(e))
	for i, s := range e {
		res[i] = max(s-n, 0)
	}
	return res
}

// Equal checks if two extents have the same sizes.
func (e Extent) Equal(e1 Extent) bool {
	return Coord[int](e).Equal(Coord[int](e1))
}

// Contains checks if idx is a valid index in the extent.
func (e Extent) Contains(idx Coord[int]) bool {
	if len(idx) != len(e) {
		return false
	}
	for i, x := range idx {
		if x < 0 || x >= e[i] {
			return false
		}
	}
	return true
}

// Offset computes the flat storage offset for idx.
//
// It panics if idx has the wrong dimension or lies
// outside of the extent.
func (e Extent) Offset(idx Coord[int]) int {
	if len(idx) != len(e) {
		panic(fmt.Sprintf("offset: index %v has dimension %d but extent %v has %d",
			idx, len(idx), e, len(e)))
	}
	offset := 0
	stride := 1
	for i, x := range idx {
		if x < 0 || x >= e[i] {
			panic(fmt.Sprintf("offset: index %v out of range for extent %v", idx, e))
		}
		offset += x * stride
		stride *= e[i]
	}
	return offset
}

// Enumerate creates an Enumerator over every index in e.
func (e Extent) Enumerate() *Enumerator {
	return &Enumerator{
		extent: e,
		index:  make(Coord[int], len(e)),
	}
}

// All iterates over every index in e, with axis 0 varying
// fastest.
//
// Each yielded index is a fresh copy that the caller may
// keep. Indices are produced one at a time, and ranging
// over the sequence again starts from the beginning.
func (e Extent) All() iter.Seq[Coord[int]] {
	return func(yield func(Coord[int]) bool) {
		en := e.Enumerate()
		for en.Next() {
			if !yield(en.Index().Clone()) {
				return
			}
		}
	}
}

func (e Extent) String() string {
	return fmt.Sprint([]int(e))
}

// An Enumerator walks the indices of an Extent in
// mixed-radix order, incrementing axis 0 and carrying into
// the slower axes.
//
// Once every index has been produced, the enumerator
// rests on the index one past the end: zero on every axis
// but the last, which equals the extent of the last axis.
type Enumerator struct {
	extent  Extent
	index   Coord[int]
	started bool
}

// Next moves to the next index, returning false once the
// enumeration is exhausted.
//
// The first call positions the enumerator on the first
// index.
func (e *Enumerator) Next() bool {
	if !e.started {
		e.started = true
		if e.extent.Prod() == 0 {
			e.moveToEnd()
		}
		return !e.Done()
	}
	if e.Done() {
		return false
	}
	last := len(e.index) - 1
	for i := 0; i < last; i++ {
		if e.index[i] < e.extent[i]-1 {
			e.index[i]++
			return true
		}
		e.index[i] = 0
	}
	e.index[last]++
	return !e.Done()
}

// Index gets the current index.
//
// The returned value is reused by the next call to Next,
// so it must be cloned to be retained.
func (e *Enumerator) Index() Coord[int] {
	return e.index
}

// Done checks if the enumerator has run past the last
// index.
func (e *Enumerator) Done() bool {
	if len(e.index) == 0 {
		return true
	}
	last := len(e.index) - 1
	return e.index[last] >= e.extent[last]
}

// Reset rewinds the enumerator to before the first index.
func (e *Enumerator) Reset() {
	for i := range e.index {
		e.index[i] = 0
	}
	e.started = false
}

func (e *Enumerator) moveToEnd() {
	if len(e.index) == 0 {
		return
	}
	for i := range e.index {
		e.index[i] = 0
	}
	last := len(e.index) - 1
	e.index[last] = e.extent[last]
}
