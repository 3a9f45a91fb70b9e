// Package marching extracts isosurfaces from 3D sample
// grids with the marching cubes algorithm.
package marching

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/isosurface/grid"
	"github.com/unixpickle/isosurface/mesh"
	"github.com/unixpickle/model3d/model3d"
	"go.uber.org/zap"
)

// Polygonize triangulates the surface where the samples
// of g cross iso.
//
// A corner is inside the surface when its sample is less
// than iso. Vertices are placed on cell edges by linear
// interpolation between the two corner samples, in the
// index space of g.
//
// Triangles are produced cell by cell, in the enumeration
// order of the cell extent, and within a cell in table
// order.
func Polygonize[T grid.Scalar](g *grid.Grid[T], iso T) ([]*model3d.Triangle, error) {
	extent := g.Extent()
	if err := checkGrid(extent); err != nil {
		return nil, errors.Wrap(err, "polygonize")
	}

	isoValue := float64(iso)
	data := g.Data()
	cornerOffsets := flatCornerOffsets(extent)

	var triangles []*model3d.Triangle
	var edgeCoords [12]model3d.Coord3D
	var numCells int

	cells := CellExtent(extent).Enumerate()
	for cells.Next() {
		numCells++
		idx := cells.Index()
		base := extent.Offset(idx)

		var config int
		for i, offset := range cornerOffsets {
			if data[base+offset] < iso {
				config |= 1 << uint(i)
			}
		}
		if config == 0 {
			continue
		}
		mask := EdgeTable[config]
		if mask == 0 {
			continue
		}

		for edge := 0; edge < 12; edge++ {
			if mask&(1<<uint(edge)) == 0 {
				continue
			}
			lo, hi, axis := orientedEdge(edge)
			v0 := float64(data[base+cornerOffsets[lo]])
			v1 := float64(data[base+cornerOffsets[hi]])
			t := (isoValue - v0) / (v1 - v0)

			var c [3]float64
			for i := range c {
				c[i] = float64(idx[i] + CornerOffsets[lo][i])
			}
			c[axis] += t
			edgeCoords[edge] = model3d.Coord3D{X: c[0], Y: c[1], Z: c[2]}
		}

		triangles = appendTriangles(triangles, config, &edgeCoords)
	}

	Logger().Debug("polygonized grid",
		zap.Ints("extent", extent),
		zap.Int("cells", numCells),
		zap.Int("triangles", len(triangles)))

	return triangles, nil
}

// PolygonizeFunc triangulates the boundary of the samples
// of g for which solid returns true.
//
// Unlike Polygonize, vertices are placed at edge
// midpoints. A corner that is not solid is treated like a
// corner below the iso value in Polygonize.
func PolygonizeFunc[T grid.Scalar](g *grid.Grid[T], solid func(T) bool) ([]*model3d.Triangle, error) {
	extent := g.Extent()
	if err := checkGrid(extent); err != nil {
		return nil, errors.Wrap(err, "polygonize")
	}

	data := g.Data()
	cornerOffsets := flatCornerOffsets(extent)

	var triangles []*model3d.Triangle
	var edgeCoords [12]model3d.Coord3D
	var numCells int

	cells := CellExtent(extent).Enumerate()
	for cells.Next() {
		numCells++
		idx := cells.Index()
		base := extent.Offset(idx)

		var config int
		for i, offset := range cornerOffsets {
			if !solid(data[base+offset]) {
				config |= 1 << uint(i)
			}
		}
		if EdgeTable[config] == 0 {
			continue
		}

		cell := grid.ToCoord3D(idx)
		for edge, mid := range EdgeMidpoints {
			edgeCoords[edge] = cell.Add(mid)
		}
		triangles = appendTriangles(triangles, config, &edgeCoords)
	}

	Logger().Debug("polygonized grid at midpoints",
		zap.Ints("extent", extent),
		zap.Int("cells", numCells),
		zap.Int("triangles", len(triangles)))

	return triangles, nil
}

// PolygonizeMesh is like Polygonize, but assembles the
// triangles into an indexed mesh.
func PolygonizeMesh[T grid.Scalar](g *grid.Grid[T], iso T) (*mesh.Mesh, error) {
	triangles, err := Polygonize(g, iso)
	if err != nil {
		return nil, err
	}
	return mesh.NewMesh(triangles), nil
}

// CellExtent gets the extent of the cells of a grid.
// Each cell is identified by its minimum corner.
func CellExtent(e grid.Extent) grid.Extent {
	return e.Shrink(1)
}

func checkGrid(e grid.Extent) error {
	if e.Dim() != 3 {
		return errors.Errorf("expected a 3D grid but got %d dimensions", e.Dim())
	}
	for axis, size := range e {
		if size < 2 {
			return errors.Errorf("axis %d has size %d, but at least 2 is required", axis, size)
		}
	}
	return nil
}

func flatCornerOffsets(e grid.Extent) [8]int {
	var res [8]int
	for i, o := range CornerOffsets {
		res[i] = o[0] + e[0]*(o[1]+e[1]*o[2])
	}
	return res
}

// orientedEdge gets the corners of an edge ordered so that
// the first has the smaller coordinate along the edge's
// axis.
//
// Neighboring cells see a shared edge with the same
// endpoints in the same order, so both compute bitwise
// identical crossing points.
func orientedEdge(edge int) (lo, hi, axis int) {
	lo, hi = EdgeCorners[edge][0], EdgeCorners[edge][1]
	for axis = 0; axis < 3; axis++ {
		if CornerOffsets[lo][axis] != CornerOffsets[hi][axis] {
			break
		}
	}
	if CornerOffsets[lo][axis] > CornerOffsets[hi][axis] {
		lo, hi = hi, lo
	}
	return
}

func appendTriangles(triangles []*model3d.Triangle, config int,
	edgeCoords *[12]model3d.Coord3D) []*model3d.Triangle {
	entry := &TriangleTable[config]
	for i := 0; entry[i] != -1; i += 3 {
		triangles = append(triangles, &model3d.Triangle{
			edgeCoords[entry[i]],
			edgeCoords[entry[i+1]],
			edgeCoords[entry[i+2]],
		})
	}
	return triangles
}
