package grid

import (
	"testing"

	"github.com/unixpickle/model3d/model3d"
)

func TestGridAccessors(t *testing.T) {
	g := New(NewExtent(3, 4, 5), 7)
	if g.Len() != 60 || g.Dim() != 3 {
		t.Fatalf("unexpected shape: len=%d dim=%d", g.Len(), g.Dim())
	}
	for i := 0; i < g.Len(); i++ {
		if g.AtFlat(i) != 7 {
			t.Fatalf("sample %d not filled", i)
		}
	}

	g.Set3(2, 1, 3, 9)
	if g.At(NewCoord(2, 1, 3)) != 9 {
		t.Error("multi-index read does not match Set3")
	}
	if g.AtFlat(2+3*1+12*3) != 9 {
		t.Error("flat read does not match Set3")
	}
	g.Set(NewCoord(0, 3, 4), 11)
	if g.At3(0, 3, 4) != 11 {
		t.Error("At3 does not match Set")
	}
}

func TestGridSmallDimensions(t *testing.T) {
	g1 := New(NewExtent(4), 0.0)
	g1.Set1(3, 1)
	if g1.At(NewCoord(3)) != 1 {
		t.Error("unexpected 1D sample")
	}

	g2 := New(NewExtent(3, 2), 0)
	g2.Set2(2, 1, 5)
	if g2.AtFlat(5) != 5 {
		t.Error("unexpected 2D offset")
	}

	g4 := New(NewExtent(2, 3, 4, 5), uint8(0))
	g4.Set4(1, 2, 3, 4, 200)
	if g4.At(NewCoord(1, 2, 3, 4)) != 200 {
		t.Error("unexpected 4D sample")
	}
}

func TestGridOutOfRange(t *testing.T) {
	g := New(NewExtent(2, 2, 2), 0)
	checks := map[string]func(){
		"At3":        func() { g.At3(2, 0, 0) },
		"At3Neg":     func() { g.At3(0, -1, 0) },
		"At2":        func() { g.At2(0, 0) },
		"At":         func() { g.At(NewCoord(0, 0, 2)) },
		"SetDim":     func() { g.Set(NewCoord(0, 0), 1) },
		"InterpDims": func() { Interp(New(NewExtent(2, 2), 0), model3d.Coord3D{}) },
	}
	for name, f := range checks {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected panic", name)
				}
			}()
			f()
		}()
	}
}

func TestGridMapTransform(t *testing.T) {
	g := New(NewExtent(2, 2), uint8(3))
	g.Set2(1, 1, 10)
	doubled := Map(g, func(x uint8) float64 {
		return float64(x) * 2
	})
	if doubled.At2(1, 1) != 20 || doubled.At2(0, 0) != 6 {
		t.Error("unexpected mapped samples")
	}
	g.Transform(func(x uint8) uint8 { return x + 1 })
	if g.At2(1, 1) != 11 || g.At2(0, 1) != 4 {
		t.Error("unexpected transformed samples")
	}
}

func TestGridMinMax(t *testing.T) {
	g := New(NewExtent(3, 3), 5.0)
	g.Set2(0, 2, -1)
	g.Set2(2, 0, 8)
	minVal, maxVal := g.MinMax()
	if minVal != -1 || maxVal != 8 {
		t.Errorf("expected (-1, 8) but got (%f, %f)", minVal, maxVal)
	}
}

func TestFromData(t *testing.T) {
	if _, err := FromData(NewExtent(2, 2), []int{1, 2, 3}); err == nil {
		t.Error("expected size error")
	}
	g, err := FromData(NewExtent(2, 2), []int{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}
	if g.At2(1, 1) != 4 {
		t.Error("unexpected sample")
	}
}

func TestInterp(t *testing.T) {
	g := New(NewExtent(3, 3, 3), 0.0)
	for idx := range g.Extent().All() {
		g.Set(idx, float64(idx[0]+2*idx[1]+4*idx[2]))
	}
	for idx := range g.Extent().All() {
		if actual := Interp(g, ToCoord3D(idx)); actual != g.At(idx) {
			t.Errorf("index %v: expected %f but got %f", idx, g.At(idx), actual)
		}
	}
	actual := Interp(g, model3d.Coord3D{X: 0.5, Y: 1.25, Z: 0.75})
	expected := 0.5 + 2*1.25 + 4*0.75
	if diff := actual - expected; diff > 1e-8 || diff < -1e-8 {
		t.Errorf("expected %f but got %f", expected, actual)
	}
}

func TestGridExtentIsolated(t *testing.T) {
	g := New(NewExtent(2, 3), 1.0)
	mapped := Map(g, func(x float64) float32 { return float32(x) })

	e := g.Extent()
	e[0] = 3
	if !g.Extent().Equal(NewExtent(2, 3)) {
		t.Errorf("grid extent changed to %v", g.Extent())
	}
	if !mapped.Extent().Equal(NewExtent(2, 3)) {
		t.Errorf("mapped extent changed to %v", mapped.Extent())
	}
	if g.At2(1, 2) != 1 {
		t.Error("unexpected sample")
	}
	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic for index outside of the original extent")
			}
		}()
		g.At2(2, 0)
	}()
}
