package marching

import "github.com/unixpickle/model3d/model3d"

// CornerOffsets gives the position of each cube corner
// relative to the cell's minimum corner.
//
// Corners 0-3 go around the bottom face (z = 0) and
// corners 4-7 go around the top face in the same order.
var CornerOffsets = [8][3]int{
	{0, 0, 0},
	{1, 0, 0},
	{1, 1, 0},
	{0, 1, 0},
	{0, 0, 1},
	{1, 0, 1},
	{1, 1, 1},
	{0, 1, 1},
}

// EdgeCorners gives the two corners joined by each edge.
// Edges 0-3 lie on the bottom face, 4-7 on the top face,
// and 8-11 are the vertical edges.
var EdgeCorners = [12][2]int{
	{0, 1},
	{1, 2},
	{2, 3},
	{3, 0},
	{4, 5},
	{5, 6},
	{6, 7},
	{7, 4},
	{0, 4},
	{1, 5},
	{2, 6},
	{3, 7},
}

// EdgeMidpoints gives the midpoint of each edge of the
// unit cube.
var EdgeMidpoints = [12]model3d.Coord3D{
	{X: 0.5, Y: 0, Z: 0},
	{X: 1, Y: 0.5, Z: 0},
	{X: 0.5, Y: 1, Z: 0},
	{X: 0, Y: 0.5, Z: 0},
	{X: 0.5, Y: 0, Z: 1},
	{X: 1, Y: 0.5, Z: 1},
	{X: 0.5, Y: 1, Z: 1},
	{X: 0, Y: 0.5, Z: 1},
	{X: 0, Y: 0, Z: 0.5},
	{X: 1, Y: 0, Z: 0.5},
	{X: 1, Y: 1, Z: 0.5},
	{X: 0, Y: 1, Z: 0.5},
}
