package grid

import (
	"encoding/json"
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// ReadJSON reads a 3D grid as a JSON object.
//
// The object is a nested array with z on the outer
// dimension, then y, then x, so the innermost arrays run
// along axis 0. Every row must have the same length.
func ReadJSON(r io.Reader) (*Grid[float64], error) {
	var object [][][]float64
	dec := json.NewDecoder(r)
	if err := dec.Decode(&object); err != nil {
		return nil, errors.Wrap(err, "read grid")
	}
	if len(object) == 0 || len(object[0]) == 0 {
		return nil, errors.New("read grid: empty grid")
	}
	extent := NewExtent(len(object[0][0]), len(object[0]), len(object))
	result := make([]float64, 0, extent.Prod())
	for _, yPlane := range object {
		if len(yPlane) != extent[1] {
			return nil, errors.New("read grid: invalid dimensions")
		}
		for _, xLine := range yPlane {
			if len(xLine) != extent[0] {
				return nil, errors.New("read grid: invalid dimensions")
			}
			result = append(result, xLine...)
		}
	}
	return FromData(extent, result)
}

// WriteJSON writes a 3D grid in the format read by
// ReadJSON.
func WriteJSON[T Scalar](w io.Writer, g *Grid[T]) error {
	if g.Dim() != 3 {
		return errors.Errorf("write grid: expected 3 dimensions but got %d", g.Dim())
	}
	e := g.Extent()
	object := make([][][]float64, e[2])
	for z := range object {
		object[z] = make([][]float64, e[1])
		for y := range object[z] {
			row := make([]float64, e[0])
			for x := range row {
				row[x] = float64(g.At3(x, y, z))
			}
			object[z][y] = row
		}
	}
	if err := json.NewEncoder(w).Encode(object); err != nil {
		return errors.Wrap(err, "write grid")
	}
	return nil
}

// Interp gets a trilinear interpolated value for a 3D grid
// at a point given in index space.
//
// Samples outside of the grid are treated as 0.
func Interp[T Scalar](g *Grid[T], c model3d.Coord3D) float64 {
	g.checkDim(3)
	xs, xFracs := roundedCoords(c.X)
	ys, yFracs := roundedCoords(c.Y)
	zs, zFracs := roundedCoords(c.Z)
	var value float64
	for i, x := range xs {
		xFrac := xFracs[i]
		for j, y := range ys {
			yFrac := yFracs[j]
			for k, z := range zs {
				zFrac := zFracs[k]
				if frac := xFrac * yFrac * zFrac; frac != 0 {
					value += frac * getOrZero(g, x, y, z)
				}
			}
		}
	}
	return value
}

func getOrZero[T Scalar](g *Grid[T], x, y, z int) float64 {
	e := g.Extent()
	if x < 0 || y < 0 || z < 0 || x >= e[0] || y >= e[1] || z >= e[2] {
		return 0
	}
	return float64(g.data[x+e[0]*(y+z*e[1])])
}

func roundedCoords(c float64) (vals [2]int, fracs [2]float64) {
	min := int(math.Floor(c))
	max := min + 1
	minFrac := float64(max) - c
	maxFrac := 1 - minFrac
	return [2]int{min, max}, [2]float64{minFrac, maxFrac}
}
