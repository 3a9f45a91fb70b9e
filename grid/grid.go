// Package grid implements dense N-dimensional sample grids
// addressed by multi-indices.
package grid

import (
	"fmt"

	"github.com/pkg/errors"
)

// A Grid is a dense array of samples stored in a flat
// slice, laid out as described by Extent.
type Grid[T Scalar] struct {
	extent Extent
	data   []T
}

// New creates a grid with every sample set to fill.
func New[T Scalar](extent Extent, fill T) *Grid[T] {
	extent = NewExtent(extent...)
	data := make([]T, extent.Prod())
	if fill != 0 {
		for i := range data {
			data[i] = fill
		}
	}
	return &Grid[T]{extent: extent, data: data}
}

// FromData wraps an existing flat slice in a grid.
// The slice is used directly, not copied.
func FromData[T Scalar](extent Extent, data []T) (*Grid[T], error) {
	if len(data) != extent.Prod() {
		return nil, errors.Errorf("grid from data: extent %v needs %d samples but got %d",
			extent, extent.Prod(), len(data))
	}
	return &Grid[T]{extent: NewExtent(extent...), data: data}, nil
}

// Extent gets a copy of the shape of the grid.
func (g *Grid[T]) Extent() Extent {
	return NewExtent(g.extent...)
}

// Dim gets the number of axes.
func (g *Grid[T]) Dim() int {
	return len(g.extent)
}

// Len gets the total number of samples.
func (g *Grid[T]) Len() int {
	return len(g.data)
}

// Data gets the flat sample slice.
func (g *Grid[T]) Data() []T {
	return g.data
}

// At gets the sample at a multi-index.
func (g *Grid[T]) At(idx Coord[int]) T {
	return g.data[g.extent.Offset(idx)]
}

// Set sets the sample at a multi-index.
func (g *Grid[T]) Set(idx Coord[int], value T) {
	g.data[g.extent.Offset(idx)] = value
}

// AtFlat gets the sample at a flat offset.
func (g *Grid[T]) AtFlat(i int) T {
	return g.data[i]
}

// SetFlat sets the sample at a flat offset.
func (g *Grid[T]) SetFlat(i int, value T) {
	g.data[i] = value
}

func (g *Grid[T]) At1(i int) T {
	return g.data[g.offset1(i)]
}

func (g *Grid[T]) Set1(i int, value T) {
	g.data[g.offset1(i)] = value
}

func (g *Grid[T]) At2(i, j int) T {
	return g.data[g.offset2(i, j)]
}

func (g *Grid[T]) Set2(i, j int, value T) {
	g.data[g.offset2(i, j)] = value
}

func (g *Grid[T]) At3(i, j, k int) T {
	return g.data[g.offset3(i, j, k)]
}

func (g *Grid[T]) Set3(i, j, k int, value T) {
	g.data[g.offset3(i, j, k)] = value
}

func (g *Grid[T]) At4(i, j, k, l int) T {
	return g.data[g.offset4(i, j, k, l)]
}

func (g *Grid[T]) Set4(i, j, k, l int, value T) {
	g.data[g.offset4(i, j, k, l)] = value
}

// Transform replaces every sample x with f(x).
func (g *Grid[T]) Transform(f func(T) T) *Grid[T] {
	for i, x := range g.data {
		g.data[i] = f(x)
	}
	return g
}

// Map creates a new grid of the same shape by applying f
// to every sample of g.
func Map[T, U Scalar](g *Grid[T], f func(T) U) *Grid[U] {
	res := &Grid[U]{extent: NewExtent(g.extent...), data: make([]U, len(g.data))}
	for i, x := range g.data {
		res.data[i] = f(x)
	}
	return res
}

// MinMax gets the smallest and largest samples.
// For an empty grid, both are zero.
func (g *Grid[T]) MinMax() (minVal, maxVal T) {
	if len(g.data) == 0 {
		return
	}
	minVal, maxVal = g.data[0], g.data[0]
	for _, x := range g.data[1:] {
		minVal = min(minVal, x)
		maxVal = max(maxVal, x)
	}
	return
}

func (g *Grid[T]) offset1(i int) int {
	g.checkDim(1)
	g.checkAxis(0, i)
	return i
}

func (g *Grid[T]) offset2(i, j int) int {
	g.checkDim(2)
	g.checkAxis(0, i)
	g.checkAxis(1, j)
	return i + g.extent[0]*j
}

func (g *Grid[T]) offset3(i, j, k int) int {
	g.checkDim(3)
	g.checkAxis(0, i)
	g.checkAxis(1, j)
	g.checkAxis(2, k)
	return i + g.extent[0]*(j+g.extent[1]*k)
}

func (g *Grid[T]) offset4(i, j, k, l int) int {
	g.checkDim(4)
	g.checkAxis(0, i)
	g.checkAxis(1, j)
	g.checkAxis(2, k)
	g.checkAxis(3, l)
	return i + g.extent[0]*(j+g.extent[1]*(k+g.extent[2]*l))
}

func (g *Grid[T]) checkDim(dim int) {
	if len(g.extent) != dim {
		panic(fmt.Sprintf("grid of dimension %d accessed with %d indices", len(g.extent), dim))
	}
}

func (g *Grid[T]) checkAxis(axis, i int) {
	if i < 0 || i >= g.extent[axis] {
		panic(fmt.Sprintf("index %d out of range [0, %d) on axis %d", i, g.extent[axis], axis))
	}
}
