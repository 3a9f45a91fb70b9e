package grid

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNumpyRoundTrip(t *testing.T) {
	g := New(NewExtent(4, 3, 2), float32(0))
	for i := 0; i < g.Len(); i++ {
		g.SetFlat(i, float32(i)/4)
	}
	data, err := EncodeNumpy(g)
	if err != nil {
		t.Fatal(err)
	}
	headerLen := int(data[8]) | int(data[9])<<8
	if (10+headerLen)%64 != 0 || data[9+headerLen] != '\n' {
		t.Errorf("bad header alignment: %d", headerLen)
	}

	decoded, err := DecodeNumpy(data)
	if err != nil {
		t.Fatal(err)
	}
	if !decoded.Extent().Equal(g.Extent()) {
		t.Fatalf("unexpected extent: %v", decoded.Extent())
	}
	for i := 0; i < g.Len(); i++ {
		if decoded.AtFlat(i) != float64(g.AtFlat(i)) {
			t.Errorf("sample %d: expected %f but got %f", i, g.AtFlat(i), decoded.AtFlat(i))
		}
	}
}

func numpyFile(header string, payload ...byte) []byte {
	for (6+4+len(header)+1)%64 != 0 {
		header += " "
	}
	header += "\n"
	data := append([]byte("\x93NUMPY\x01\x00"), byte(len(header)), 0)
	data = append(data, header...)
	return append(data, payload...)
}

func TestNumpyFortranOrder(t *testing.T) {
	data := numpyFile("{'descr': '|u1', 'fortran_order': True, 'shape': (3, 2), }",
		1, 2, 3, 4, 5, 6)

	g, err := DecodeNumpy(data)
	if err != nil {
		t.Fatal(err)
	}
	if !g.Extent().Equal(NewExtent(3, 2)) {
		t.Fatalf("unexpected extent: %v", g.Extent())
	}
	if g.At2(2, 1) != 6 || g.At2(1, 0) != 2 {
		t.Error("unexpected samples")
	}
}

func TestNumpyErrors(t *testing.T) {
	if _, err := EncodeNumpy(New(NewExtent(2), 0)); err == nil {
		t.Error("expected unsupported type error for int samples")
	}
	if _, err := DecodeNumpy([]byte("not numpy")); err == nil {
		t.Error("expected magic error")
	}

	headers := map[string]string{
		"negative":  "{'descr': '|u1', 'fortran_order': False, 'shape': (-2, 3), }",
		"overflow":  "{'descr': '<f8', 'fortran_order': False, 'shape': (1000000000000, 1000000000000), }",
		"huge":      "{'descr': '<f8', 'fortran_order': False, 'shape': (1000000000000,), }",
		"truncated": "{'descr': '<u2', 'fortran_order': False, 'shape': (2, 2), }",
		"dtype":     "{'descr': '<c16', 'fortran_order': False, 'shape': (1,), }",
	}
	for name, header := range headers {
		if _, err := DecodeNumpy(numpyFile(header, 1, 2, 3, 4, 5, 6)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestSaveLoadNumpy(t *testing.T) {
	g := New(NewExtent(3, 3, 3), uint8(0))
	g.Set3(1, 1, 1, 1)
	g.Set3(2, 0, 1, 1)

	dir := t.TempDir()
	for _, name := range []string{"grid.npz", "grid.npy"} {
		path := filepath.Join(dir, name)
		if name == "grid.npz" {
			if err := SaveNumpy(path, g); err != nil {
				t.Fatal(err)
			}
		} else {
			data, err := EncodeNumpy(g)
			if err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				t.Fatal(err)
			}
		}
		loaded, err := LoadNumpy(path)
		if err != nil {
			t.Fatal(err)
		}
		if !loaded.Extent().Equal(g.Extent()) {
			t.Fatalf("%s: unexpected extent %v", name, loaded.Extent())
		}
		for i := 0; i < g.Len(); i++ {
			if loaded.AtFlat(i) != float64(g.AtFlat(i)) {
				t.Errorf("%s: sample %d mismatch", name, i)
			}
		}
	}
}
