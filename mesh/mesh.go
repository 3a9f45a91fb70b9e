// Package mesh assembles raw triangles into indexed meshes
// and reads and writes them in the OFF format.
package mesh

import (
	"math"
	"sort"

	"github.com/unixpickle/model3d/model3d"
	"go.uber.org/zap"
)

// A Mesh is an indexed triangle mesh.
//
// Vertices are unique by exact equality and sorted
// lexicographically by X, then Y, then Z. Since the order
// depends only on the set of positions, the same
// triangles always produce the same vertex list, no
// matter what order they were given in.
type Mesh struct {
	vertices []model3d.Coord3D
	faces    [][3]int
}

// NewMesh creates a mesh from a list of triangles.
func NewMesh(triangles []*model3d.Triangle) *Mesh {
	vertices := make([]model3d.Coord3D, 0, len(triangles)*3)
	for _, t := range triangles {
		vertices = append(vertices, t[0], t[1], t[2])
	}
	sort.Slice(vertices, func(i, j int) bool {
		return compareCoords(vertices[i], vertices[j]) < 0
	})
	vertices = uniqueSorted(vertices)

	m := &Mesh{
		vertices: vertices,
		faces:    make([][3]int, len(triangles)),
	}
	for i, t := range triangles {
		for j, c := range t {
			m.faces[i][j] = m.vertexIndex(c)
		}
	}

	Logger().Debug("assembled mesh",
		zap.Int("vertices", len(m.vertices)),
		zap.Int("faces", len(m.faces)))

	return m
}

// NumFaces gets the number of triangles.
func (m *Mesh) NumFaces() int {
	return len(m.faces)
}

// NumVertices gets the number of unique vertices.
func (m *Mesh) NumVertices() int {
	return len(m.vertices)
}

// Vertex gets the i-th vertex.
func (m *Mesh) Vertex(i int) model3d.Coord3D {
	return m.vertices[i]
}

// Vertices gets all of the vertices in order.
// The result should not be modified.
func (m *Mesh) Vertices() []model3d.Coord3D {
	return m.vertices
}

// Face gets the vertex indices of the i-th triangle.
func (m *Mesh) Face(i int) [3]int {
	return m.faces[i]
}

// Triangle reconstructs the i-th triangle.
func (m *Mesh) Triangle(i int) *model3d.Triangle {
	f := m.faces[i]
	return &model3d.Triangle{m.vertices[f[0]], m.vertices[f[1]], m.vertices[f[2]]}
}

// Triangles reconstructs every triangle, in face order.
func (m *Mesh) Triangles() []*model3d.Triangle {
	res := make([]*model3d.Triangle, len(m.faces))
	for i := range m.faces {
		res[i] = m.Triangle(i)
	}
	return res
}

// Model converts the mesh to a model3d.Mesh.
func (m *Mesh) Model() *model3d.Mesh {
	return model3d.NewMeshTriangles(m.Triangles())
}

// SaveSTL writes the mesh to an STL file.
func (m *Mesh) SaveSTL(path string) error {
	return m.Model().SaveGroupedSTL(path)
}

func (m *Mesh) vertexIndex(c model3d.Coord3D) int {
	idx := sort.Search(len(m.vertices), func(i int) bool {
		return compareCoords(m.vertices[i], c) >= 0
	})
	if idx == len(m.vertices) || compareCoords(m.vertices[idx], c) != 0 {
		panic("vertex missing from mesh")
	}
	return idx
}

// compareCoords orders coordinates lexicographically.
// NaN components sort after every number and compare
// equal to each other, so the order is total.
func compareCoords(c1, c2 model3d.Coord3D) int {
	a1 := [3]float64{c1.X, c1.Y, c1.Z}
	a2 := [3]float64{c2.X, c2.Y, c2.Z}
	for i, x := range a1 {
		if res := compareFloats(x, a2[i]); res != 0 {
			return res
		}
	}
	return 0
}

func compareFloats(x, y float64) int {
	xNaN, yNaN := math.IsNaN(x), math.IsNaN(y)
	if xNaN || yNaN {
		if xNaN && yNaN {
			return 0
		} else if xNaN {
			return 1
		}
		return -1
	}
	if x < y {
		return -1
	} else if x > y {
		return 1
	}
	return 0
}

func uniqueSorted(coords []model3d.Coord3D) []model3d.Coord3D {
	if len(coords) == 0 {
		return coords
	}
	res := coords[:1]
	for _, c := range coords[1:] {
		if compareCoords(c, res[len(res)-1]) != 0 {
			res = append(res, c)
		}
	}
	return res
}
