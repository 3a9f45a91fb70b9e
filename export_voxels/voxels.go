package main

import (
	"math"

	"github.com/unixpickle/isosurface/grid"
	"github.com/unixpickle/model3d/model3d"
)

// A Voxelizer samples a mesh onto a cubic voxel grid that
// covers its bounding box.
type Voxelizer struct {
	Space    *VoxelSpace
	Collider model3d.Collider
}

// NewVoxelizer creates a Voxelizer for a mesh and a number
// of voxels along each axis.
func NewVoxelizer(m *model3d.Mesh, gridSize int) *Voxelizer {
	collider := model3d.MeshToCollider(m)
	return &Voxelizer{
		Space:    NewVoxelSpace(collider.Min(), collider.Max(), gridSize),
		Collider: collider,
	}
}

// ConnectedGrid voxelizes the mesh by flood filling from
// outside of it.
//
// A voxel is 1 if it cannot be reached from outside the
// mesh without crossing the surface, or if it is the
// closer of two voxels separated by the surface.
// Otherwise, it is 0.
func (v *Voxelizer) ConnectedGrid() *grid.Grid[uint8] {
	// The padded grid has a one voxel border, so the fill
	// can go around the mesh from its corner.
	padded := grid.NewExtent(v.Space.GridSize+2, v.Space.GridSize+2, v.Space.GridSize+2)
	reachable := grid.New(padded, uint8(0))
	borders := grid.New(padded, uint8(0))

	queue := []grid.Coord[int]{grid.NewCoord(0, 0, 0)}
	reachable.Set(queue[0], 1)

	for len(queue) > 0 {
		coord := queue[0]
		queue = queue[1:]
		for _, neighbor := range neighbors(padded, coord) {
			connected, onBorder := v.Connect(unpad(coord), unpad(neighbor))
			if connected {
				if reachable.At(neighbor) == 0 {
					reachable.Set(neighbor, 1)
					queue = append(queue, neighbor)
				}
			} else if onBorder {
				borders.Set(coord, 1)
			}
		}
	}

	result := v.newGrid()
	for idx := range result.Extent().All() {
		p := pad(idx)
		if borders.At(p) == 1 || reachable.At(p) == 0 {
			result.Set(idx, 1)
		}
	}
	return result
}

// ParityGrid voxelizes the mesh by testing the center of
// every voxel for containment with ParitySolid.
func (v *Voxelizer) ParityGrid() *grid.Grid[uint8] {
	solid := &ParitySolid{Collider: v.Collider}
	result := v.newGrid()
	for idx := range result.Extent().All() {
		if solid.Contains(v.Space.Coord(idx)) {
			result.Set(idx, 1)
		}
	}
	return result
}

// Connect attempts to make a connection between two
// voxels.
//
// If no surface is in the way, connected is true.
// Otherwise, sourceBorder indicates whether or not v1 is
// the closer voxel to the surface.
func (v *Voxelizer) Connect(v1, v2 grid.Coord[int]) (connected, sourceBorder bool) {
	origin := v.Space.Coord(v1)
	step := grid.ToCoord3D(v2.Sub(v1)).Scale(v.Space.CellSize())

	// Most steps are nowhere near the surface, and the
	// sphere test rules them out without casting a ray.
	center := origin.Add(step.Scale(0.5))
	if !v.Collider.SphereCollision(center, step.Norm()/(2-1e-8)) {
		return true, false
	}

	coll, ok := v.Collider.FirstRayCollision(&model3d.Ray{Origin: origin, Direction: step})
	if !ok || coll.Scale > 1 {
		return true, false
	}
	return false, coll.Scale < 0.5
}

func (v *Voxelizer) newGrid() *grid.Grid[uint8] {
	n := v.Space.GridSize
	return grid.New(grid.NewExtent(n, n, n), uint8(0))
}

// A VoxelSpace maps voxel indices to points in the space
// of a mesh. Voxels may lie outside of the grid, for
// example on a border around it.
type VoxelSpace struct {
	Origin   model3d.Coord3D
	Size     float64
	GridSize int
}

// NewVoxelSpace creates the smallest cubic space that
// holds the box between two corners, centered on it.
func NewVoxelSpace(minCorner, maxCorner model3d.Coord3D, gridSize int) *VoxelSpace {
	sizes := maxCorner.Sub(minCorner)
	size := math.Max(math.Max(sizes.X, sizes.Y), sizes.Z)
	cube := model3d.Coord3D{X: size, Y: size, Z: size}
	padding := cube.Sub(sizes).Scale(0.5)
	return &VoxelSpace{
		Origin:   minCorner.Sub(padding),
		Size:     size,
		GridSize: gridSize,
	}
}

// CellSize gets the side length of a voxel.
func (v *VoxelSpace) CellSize() float64 {
	return v.Size / float64(v.GridSize)
}

// Coord gets the center of a voxel.
func (v *VoxelSpace) Coord(idx grid.Coord[int]) model3d.Coord3D {
	center := grid.ToCoord3D(idx).Add(model3d.Coord3D{X: 0.5, Y: 0.5, Z: 0.5})
	return v.Origin.Add(center.Scale(v.CellSize()))
}

func neighbors(e grid.Extent, coord grid.Coord[int]) []grid.Coord[int] {
	res := make([]grid.Coord[int], 0, 26)
	offsets := grid.NewExtent(3, 3, 3)
	for offset := range offsets.All() {
		delta := offset.Sub(grid.NewCoord(1, 1, 1))
		if delta.Equal(grid.NewCoord(0, 0, 0)) {
			continue
		}
		if n := coord.Add(delta); e.Contains(n) {
			res = append(res, n)
		}
	}
	return res
}

func pad(idx grid.Coord[int]) grid.Coord[int] {
	return idx.Add(grid.NewCoord(1, 1, 1))
}

func unpad(idx grid.Coord[int]) grid.Coord[int] {
	return idx.Sub(grid.NewCoord(1, 1, 1))
}
