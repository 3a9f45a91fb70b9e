package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/unixpickle/isosurface/grid"
	"github.com/unixpickle/isosurface/marching"
	"github.com/unixpickle/isosurface/mesh"
)

func TestPlusGrid(t *testing.T) {
	g := PlusGrid()
	var count int
	for i := 0; i < g.Len(); i++ {
		if g.AtFlat(i) == 255 {
			count++
		}
	}
	if count != 7 {
		t.Errorf("expected 7 set points but got %d", count)
	}
	if g.At3(3, 1, 1) != 255 || g.At3(1, 1, 3) != 255 || g.At3(2, 2, 1) != 0 {
		t.Error("unexpected plus shape")
	}
}

func TestLoadGrid(t *testing.T) {
	g, err := loadGrid("", "plus", 0)
	if err != nil {
		t.Fatal(err)
	}
	if g.At3(1, 1, 1) != 255 {
		t.Error("unexpected plus sample")
	}

	g, err = loadGrid("", "sphere", 10)
	if err != nil {
		t.Fatal(err)
	}
	if !g.Extent().Equal(grid.NewExtent(10, 10, 10)) {
		t.Errorf("unexpected sphere extent %v", g.Extent())
	}

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "grid.json")
	w, err := os.Create(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := grid.WriteJSON(w, PlusGrid()); err != nil {
		t.Fatal(err)
	}
	w.Close()
	npzPath := filepath.Join(dir, "grid.npz")
	if err := grid.SaveNumpy(npzPath, PlusGrid()); err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{jsonPath, npzPath} {
		g, err := loadGrid(path, "", 0)
		if err != nil {
			t.Fatal(err)
		}
		if g.At3(1, 3, 1) != 255 || g.At3(0, 0, 0) != 0 {
			t.Errorf("%s: unexpected samples", path)
		}
	}

	if _, err := loadGrid(jsonPath, "plus", 0); err == nil {
		t.Error("expected error for both input and sample")
	}
	if _, err := loadGrid("", "torus", 0); err == nil {
		t.Error("expected error for unknown sample")
	}
}

func TestSaveMesh(t *testing.T) {
	g, err := loadGrid("", "plus", 0)
	if err != nil {
		t.Fatal(err)
	}
	m, err := marching.PolygonizeMesh(g, 127)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	offPath := filepath.Join(dir, "plus.off")
	if err := saveMesh(m, offPath); err != nil {
		t.Fatal(err)
	}
	r, err := os.Open(offPath)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	m1, err := mesh.ReadOFF(r)
	if err != nil {
		t.Fatal(err)
	}
	if m1.NumFaces() != m.NumFaces() || m1.NumVertices() != m.NumVertices() {
		t.Errorf("saved mesh has %d faces and %d vertices", m1.NumFaces(), m1.NumVertices())
	}

	stlPath := filepath.Join(dir, "plus.stl")
	if err := saveMesh(m, stlPath); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(stlPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(string(data), "OFF") {
		t.Error("STL output was written as OFF")
	}
}
