package grid

import (
	"testing"

	"github.com/unixpickle/model3d/model3d"
)

func TestCoordArithmetic(t *testing.T) {
	c1 := NewCoord(1.0, 2.0, 3.0)
	c2 := NewCoord(0.5, -1.0, 4.0)

	if actual := c1.Add(c2); !actual.Equal(NewCoord(1.5, 1.0, 7.0)) {
		t.Errorf("unexpected sum: %v", actual)
	}
	if actual := c1.Sub(c2); !actual.Equal(NewCoord(0.5, 3.0, -1.0)) {
		t.Errorf("unexpected difference: %v", actual)
	}
	if actual := c1.Scale(2); !actual.Equal(NewCoord(2.0, 4.0, 6.0)) {
		t.Errorf("unexpected scale: %v", actual)
	}
	if actual := c1.Lerp(c2, 0.5); !actual.Equal(NewCoord(0.75, 0.5, 3.5)) {
		t.Errorf("unexpected lerp: %v", actual)
	}
	if c1.Sum() != 6 || c1.Prod() != 6 {
		t.Errorf("unexpected sum %f or product %f", c1.Sum(), c1.Prod())
	}
	if NewCoord[int]().Prod() != 1 {
		t.Error("empty product should be 1")
	}
}

func TestCoordIndexPlusOffset(t *testing.T) {
	idx := NewCoord(2, 3, 4)
	offset := NewCoord(0.0, 1.0, 0.0).Scale(0.25)
	actual := Float(idx).Add(offset)
	if !actual.Equal(NewCoord(2.0, 3.25, 4.0)) {
		t.Errorf("unexpected position: %v", actual)
	}
	if ToCoord3D(idx) != (model3d.Coord3D{X: 2, Y: 3, Z: 4}) {
		t.Errorf("unexpected conversion: %v", ToCoord3D(idx))
	}
}

func TestCoordCompare(t *testing.T) {
	cases := []struct {
		a, b     Coord[int]
		expected int
	}{
		{NewCoord(1, 2, 3), NewCoord(1, 2, 3), 0},
		{NewCoord(0, 9, 9), NewCoord(1, 0, 0), -1},
		{NewCoord(1, 0, 0), NewCoord(0, 9, 9), 1},
		{NewCoord(1, 2, 3), NewCoord(1, 2, 4), -1},
		{NewCoord(1, 3, 0), NewCoord(1, 2, 9), 1},
	}
	for i, c := range cases {
		if actual := c.a.Compare(c.b); actual != c.expected {
			t.Errorf("case %d: expected %d but got %d", i, c.expected, actual)
		}
		if c.a.Less(c.b) != (c.expected < 0) {
			t.Errorf("case %d: unexpected Less result", i)
		}
	}
}

func TestCoordDimension(t *testing.T) {
	if _, err := NewCoordDim(3, 1, 2); err == nil {
		t.Error("expected arity error")
	}
	c, err := NewCoordDim(2, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if c.Dim() != 2 {
		t.Errorf("unexpected dimension %d", c.Dim())
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic on dimension mismatch")
		}
	}()
	c.Add(NewCoord(1, 2, 3))
}

func TestCoordClone(t *testing.T) {
	c := NewCoord(1, 2)
	c1 := c.Clone()
	c1[0] = 5
	if c[0] != 1 {
		t.Error("clone shares memory")
	}
}
