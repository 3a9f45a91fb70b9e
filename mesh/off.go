package mesh

import (
	"bufio"
	"bytes"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// WriteOFF writes the mesh as an OFF file.
//
// The header is a single line, "OFF <vertices> <faces> 0",
// followed by one line per vertex and one line per face.
func (m *Mesh) WriteOFF(w io.Writer) error {
	bw := bufio.NewWriter(w)
	line := make([]byte, 0, 64)

	line = append(line, "OFF "...)
	line = strconv.AppendInt(line, int64(len(m.vertices)), 10)
	line = append(line, ' ')
	line = strconv.AppendInt(line, int64(len(m.faces)), 10)
	line = append(line, " 0\n"...)
	if _, err := bw.Write(line); err != nil {
		return errors.Wrap(err, "write OFF")
	}

	for _, v := range m.vertices {
		line = line[:0]
		line = strconv.AppendFloat(line, v.X, 'g', -1, 64)
		line = append(line, ' ')
		line = strconv.AppendFloat(line, v.Y, 'g', -1, 64)
		line = append(line, ' ')
		line = strconv.AppendFloat(line, v.Z, 'g', -1, 64)
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return errors.Wrap(err, "write OFF")
		}
	}

	for _, f := range m.faces {
		line = append(line[:0], '3')
		for _, idx := range f {
			line = append(line, ' ')
			line = strconv.AppendInt(line, int64(idx), 10)
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return errors.Wrap(err, "write OFF")
		}
	}

	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "write OFF")
	}
	return nil
}

// EncodeOFF encodes the mesh as an OFF file.
func (m *Mesh) EncodeOFF() []byte {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer do not fail.
	m.WriteOFF(&buf)
	return buf.Bytes()
}

// SaveOFF writes the mesh to an OFF file at path.
func (m *Mesh) SaveOFF(path string) error {
	w, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "save OFF")
	}
	if err := m.WriteOFF(w); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "save OFF")
	}
	return nil
}

// ReadOFF reads a mesh from an OFF file.
//
// The counts may appear on the header line, as written
// by WriteOFF, or on the line after it. Comments start
// with '#'. Faces with more than three vertices are
// triangulated.
func ReadOFF(r io.Reader) (*Mesh, error) {
	triangles, err := ReadOFFTriangles(r)
	if err != nil {
		return nil, err
	}
	return NewMesh(triangles), nil
}

// ReadOFFTriangles is like ReadOFF, but returns the raw
// triangles in file order.
func ReadOFFTriangles(r io.Reader) (triangles []*model3d.Triangle, err error) {
	stripped, err := stripOFFComments(r)
	if err != nil {
		return nil, errors.Wrap(err, "read OFF")
	}

	// Faces with fewer than three vertices make the
	// triangulation panic.
	defer func() {
		if p := recover(); p != nil {
			triangles = nil
			err = errors.Errorf("read OFF: %v", p)
		}
	}()
	triangles, err = model3d.ReadOFF(stripped)
	if err != nil {
		return nil, err
	}

	for i, t := range triangles {
		for _, c := range t {
			for _, x := range c.Array() {
				if math.IsNaN(x) || math.IsInf(x, 0) {
					return nil, errors.Errorf("read OFF: triangle %d: non-finite vertex", i)
				}
			}
		}
	}
	return triangles, nil
}

// stripOFFComments removes comments, blank lines and
// trailing whitespace, and terminates every line.
func stripOFFComments(r io.Reader) (io.Reader, error) {
	var buf bytes.Buffer
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<24)
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line != "" {
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}
	return &buf, scanner.Err()
}
