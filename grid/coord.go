package grid

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// Scalar is the set of numeric types a Coord or a Grid
// may hold.
type Scalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// A Coord is a fixed-length tuple of numbers.
//
// The same type is used for integer grid indices and for
// real-valued positions. All arithmetic requires both
// operands to have the same dimension and panics
// otherwise.
type Coord[T Scalar] []T

// NewCoord creates a coordinate from its components.
func NewCoord[T Scalar](values ...T) Coord[T] {
	return append(Coord[T]{}, values...)
}

// NewCoordDim creates a coordinate of an exact dimension,
// failing if the number of values does not match.
func NewCoordDim[T Scalar](dim int, values ...T) (Coord[T], error) {
	if len(values) != dim {
		return nil, errors.Errorf("new coord: expected %d components but got %d",
			dim, len(values))
	}
	return NewCoord(values...), nil
}

// Dim gets the number of components.
func (c Coord[T]) Dim() int {
	return len(c)
}

// Clone creates a copy of c that shares no memory with it.
func (c Coord[T]) Clone() Coord[T] {
	return append(Coord[T]{}, c...)
}

// Add computes c + c1.
func (c Coord[T]) Add(c1 Coord[T]) Coord[T] {
	c.checkDim("add", c1)
	res := make(Coord[T], len(c))
	for i, x := range c {
		res[i] = x + c1[i]
	}
	return res
}

// Sub computes c - c1.
func (c Coord[T]) Sub(c1 Coord[T]) Coord[T] {
	c.checkDim("sub", c1)
	res := make(Coord[T], len(c))
	for i, x := range c {
		res[i] = x - c1[i]
	}
	return res
}

// Scale multiplies every component by s.
func (c Coord[T]) Scale(s T) Coord[T] {
	res := make(Coord[T], len(c))
	for i, x := range c {
		res[i] = x * s
	}
	return res
}

// Lerp computes (1-t)*c + t*c1.
func (c Coord[T]) Lerp(c1 Coord[T], t T) Coord[T] {
	c.checkDim("lerp", c1)
	res := make(Coord[T], len(c))
	for i, x := range c {
		res[i] = (1-t)*x + t*c1[i]
	}
	return res
}

// Sum adds up the components.
func (c Coord[T]) Sum() T {
	var res T
	for _, x := range c {
		res += x
	}
	return res
}

// Prod multiplies the components together.
// The empty coordinate has a product of 1.
func (c Coord[T]) Prod() T {
	res := T(1)
	for _, x := range c {
		res *= x
	}
	return res
}

// Compare orders coordinates lexicographically, with the
// first component being the most significant.
//
// The result is -1, 0, or 1.
func (c Coord[T]) Compare(c1 Coord[T]) int {
	c.checkDim("compare", c1)
	for i, x := range c {
		if x < c1[i] {
			return -1
		} else if x > c1[i] {
			return 1
		}
	}
	return 0
}

// Less checks if c comes before c1 lexicographically.
func (c Coord[T]) Less(c1 Coord[T]) bool {
	return c.Compare(c1) < 0
}

// Equal checks for exact componentwise equality.
func (c Coord[T]) Equal(c1 Coord[T]) bool {
	if len(c) != len(c1) {
		return false
	}
	for i, x := range c {
		if x != c1[i] {
			return false
		}
	}
	return true
}

// Float converts the coordinate to float64 components,
// so that an integer index can be offset by fractions.
func Float[T Scalar](c Coord[T]) Coord[float64] {
	res := make(Coord[float64], len(c))
	for i, x := range c {
		res[i] = float64(x)
	}
	return res
}

// ToCoord3D converts a 3D coordinate to a model3d point.
func ToCoord3D[T Scalar](c Coord[T]) model3d.Coord3D {
	if len(c) != 3 {
		panic(fmt.Sprintf("to coord3d: expected 3 components but got %d", len(c)))
	}
	return model3d.Coord3D{X: float64(c[0]), Y: float64(c[1]), Z: float64(c[2])}
}

func (c Coord[T]) String() string {
	return fmt.Sprint([]T(c))
}

func (c Coord[T]) checkDim(op string, c1 Coord[T]) {
	if len(c) != len(c1) {
		panic(fmt.Sprintf("%s: dimension mismatch (%d vs %d)", op, len(c), len(c1)))
	}
}
