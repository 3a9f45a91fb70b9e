package mesh

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/unixpickle/model3d/model3d"
)

func TestWriteOFF(t *testing.T) {
	m := NewMesh([]*model3d.Triangle{
		{{X: 1, Y: 0, Z: 0}, {X: 0, Y: 0.5, Z: 0}, {X: 0, Y: 0, Z: 1.25}},
		{{X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1.25}, {X: 2, Y: 2, Z: 2}},
	})
	expected := "OFF 4 2 0\n" +
		"0 0 1.25\n" +
		"0 0.5 0\n" +
		"1 0 0\n" +
		"2 2 2\n" +
		"3 2 1 0\n" +
		"3 2 0 3\n"
	if actual := string(m.EncodeOFF()); actual != expected {
		t.Errorf("expected:\n%s\ngot:\n%s", expected, actual)
	}
}

func TestOFFRoundTrip(t *testing.T) {
	m := NewMesh(testTriangles())
	var buf bytes.Buffer
	if err := m.WriteOFF(&buf); err != nil {
		t.Fatal(err)
	}
	encoded := buf.String()

	m1, err := ReadOFF(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if actual := string(m1.EncodeOFF()); actual != encoded {
		t.Errorf("round trip changed output:\n%s\nvs\n%s", encoded, actual)
	}
}

func TestReadOFFVariants(t *testing.T) {
	inputs := map[string]string{
		"separate counts": "OFF\n# a square\n4 1 0\n0 0 0\n1 0 0\n1 1 0\n0 1 0\n4 0 1 2 3\n",
		"joined marker":   "OFF4 1 0\n0 0 0\n1 0 0\n1 1 0\n0 1 0\n4 0 1 2 3\n",
		"comments":        "OFF 4 1 0 # header\n\n0 0 0\n1 0 0  \n1 1 0\n0 1 0\n4 0 1 2 3",
	}
	for name, input := range inputs {
		triangles, err := ReadOFFTriangles(strings.NewReader(input))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(triangles) != 2 {
			t.Fatalf("%s: expected 2 triangles but got %d", name, len(triangles))
		}
		var area float64
		for _, tri := range triangles {
			area += tri.Area()
		}
		if math.Abs(area-1) > 1e-8 {
			t.Errorf("%s: expected area 1 but got %f", name, area)
		}
	}
}

func TestReadOFFErrors(t *testing.T) {
	inputs := []string{
		"",
		"PLY\n",
		"OFF\n",
		"OFF 2 1 0\n0 0 0\n1 1 1\n",
		"OFF 3 1 0\n0 0 0\n1 1 1\n2 2\n3 0 1 2\n",
		"OFF 3 1 0\n0 0 0\n1 1 1\n2 2 2\n3 0 1 5\n",
		"OFF 3 1 0\n0 0 0\n1 1 1\n2 2 2\n2 0 1\n",
		"OFF 3 1 0\n0 0 0\n1 NaN 1\n2 2 2\n3 0 1 2\n",
		"OFF 3 1 0\n0 0 0\n1 1 1\n2 2 -Inf\n3 0 1 2\n",
	}
	for _, input := range inputs {
		if _, err := ReadOFF(strings.NewReader(input)); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteOFFError(t *testing.T) {
	m := NewMesh(testTriangles())
	err := m.WriteOFF(failingWriter{})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("unexpected error: %v", err)
	}
	// The mesh is still usable after a failed write.
	if len(m.EncodeOFF()) == 0 {
		t.Error("mesh could not be re-exported")
	}
}

func TestSaveOFFAndSTL(t *testing.T) {
	m := NewMesh(testTriangles())
	dir := t.TempDir()

	offPath := filepath.Join(dir, "mesh.off")
	if err := m.SaveOFF(offPath); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(offPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, m.EncodeOFF()) {
		t.Error("saved file does not match encoding")
	}

	stlPath := filepath.Join(dir, "mesh.stl")
	if err := m.SaveSTL(stlPath); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(stlPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Errorf("unexpected STL size %d", info.Size())
	}

	if err := m.SaveOFF(filepath.Join(dir, "missing", "mesh.off")); err == nil {
		t.Error("expected error for missing directory")
	}
}
