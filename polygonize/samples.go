package main

import (
	"github.com/unixpickle/isosurface/grid"
	"github.com/unixpickle/model3d/model3d"
)

// PlusGrid creates a 5x5x5 grid of zeros with 255 at the
// seven points of a plus shape with its corner at
// (1, 1, 1), extending along each positive axis.
func PlusGrid() *grid.Grid[uint8] {
	g := grid.New(grid.NewExtent(5, 5, 5), uint8(0))
	for _, p := range [][3]int{
		{1, 1, 1},
		{2, 1, 1},
		{3, 1, 1},
		{1, 2, 1},
		{1, 3, 1},
		{1, 1, 2},
		{1, 1, 3},
	} {
		g.Set3(p[0], p[1], p[2], 255)
	}
	return g
}

// SphereGrid creates a size^3 grid sampling a ball whose
// radius is a third of the grid. Samples are 1 at the
// center and fall off linearly, crossing 0.5 on the
// sphere.
func SphereGrid(size int) *grid.Grid[float64] {
	e := grid.NewExtent(size, size, size)
	g := grid.New(e, 0.0)
	center := float64(size-1) / 2
	radius := float64(size) / 3
	c := model3d.Coord3D{X: center, Y: center, Z: center}
	for idx := range e.All() {
		dist := grid.ToCoord3D(idx).Dist(c)
		g.Set(idx, 1-0.5*dist/radius)
	}
	return g
}
