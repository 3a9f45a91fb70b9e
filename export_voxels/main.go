// Command export_voxels converts OFF meshes into voxel
// grids that can be fed back into polygonize.
//
// The input may be a single OFF file or a directory, in
// which case every OFF file below it is converted and the
// directory structure is mirrored in the output.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/isosurface/grid"
	"github.com/unixpickle/isosurface/mesh"
	"github.com/unixpickle/model3d/model3d"
	"go.uber.org/zap"
)

type Options struct {
	GridSize int
	Method   string
	Format   string
	Rotate   bool

	// Rand drives the rotations. It is seeded from the
	// -seed flag.
	Rand *rand.Rand
}

func main() {
	var opts Options
	var verbose bool

	flag.IntVar(&opts.GridSize, "grid-size", 64, "number of voxels along each dimension")
	flag.StringVar(&opts.Method, "method", "connect", "voxelization method (connect, parity)")
	flag.StringVar(&opts.Format, "format", "npz", "output format (npz, json)")
	var seed int64
	flag.BoolVar(&opts.Rotate, "rotate", false, "apply a random rotation before voxelizing")
	flag.Int64Var(&seed, "seed", 0, "random seed for -rotate")
	flag.BoolVar(&verbose, "verbose", false, "enable debug logging")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage:", os.Args[0], "[flags] <input> <output>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	flag.Parse()
	if len(flag.Args()) != 2 {
		flag.Usage()
	}
	if opts.Format != "npz" && opts.Format != "json" {
		essentials.Die("unknown format:", opts.Format)
	}
	opts.Rand = rand.New(rand.NewSource(seed))

	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	essentials.Must(err)
	defer logger.Sync()
	mesh.SetLogger(logger)

	inPath := flag.Args()[0]
	outPath := flag.Args()[1]

	info, err := os.Stat(inPath)
	essentials.Must(err)
	if !info.IsDir() {
		essentials.Must(ConvertModel(logger, inPath, outPath, &opts))
		return
	}

	err = filepath.WalkDir(inPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(inPath, path)
		if err != nil {
			return err
		}
		target := filepath.Join(outPath, relPath)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if filepath.Ext(path) != ".off" {
			return nil
		}
		target = strings.TrimSuffix(target, filepath.Ext(target)) + "." + opts.Format
		return ConvertModel(logger, path, target, &opts)
	})
	essentials.Must(err)
}

// ConvertModel voxelizes the OFF file at inPath and saves
// the grid to outPath.
func ConvertModel(logger *zap.Logger, inPath, outPath string, opts *Options) error {
	logger.Info("converting model", zap.String("path", inPath))

	r, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer r.Close()
	triangles, err := mesh.ReadOFFTriangles(r)
	if err != nil {
		return errors.Wrap(err, inPath)
	}
	if len(triangles) == 0 {
		return errors.Errorf("%s: mesh has no faces", inPath)
	}
	m := model3d.NewMeshTriangles(triangles)
	if opts.Rotate {
		if opts.Rand == nil {
			return errors.New("rotation requires a random source")
		}
		m = RandomRotation(opts.Rand, m)
	}

	v := NewVoxelizer(m, opts.GridSize)
	var g *grid.Grid[uint8]
	switch opts.Method {
	case "connect":
		g = v.ConnectedGrid()
	case "parity":
		g = v.ParityGrid()
	default:
		return errors.Errorf("unknown method: %s", opts.Method)
	}

	return SaveGrid(outPath, opts.Format, g)
}

// SaveGrid writes a grid as an .npz archive or as JSON.
func SaveGrid(path, format string, g *grid.Grid[uint8]) error {
	if format == "npz" {
		return grid.SaveNumpy(path, g)
	}
	w, err := os.Create(path)
	if err != nil {
		return err
	}
	defer w.Close()
	return grid.WriteJSON(w, g)
}

// RandomRotation applies a random rotation (without
// mirroring) to a mesh.
func RandomRotation(rng *rand.Rand, m *model3d.Mesh) *model3d.Mesh {
	randomAxis := func() model3d.Coord3D {
		return model3d.Coord3D{
			X: rng.NormFloat64(),
			Y: rng.NormFloat64(),
			Z: rng.NormFloat64(),
		}.Normalize()
	}
	axis1 := randomAxis()
	axis2 := randomAxis().ProjectOut(axis1).Normalize()
	// A right-handed third axis keeps the determinant at 1.
	axis3 := axis1.Cross(axis2)
	rotation := &model3d.Matrix3Transform{
		Matrix: model3d.NewMatrix3Columns(axis1, axis2, axis3),
	}
	return m.MapCoords(rotation.Apply)
}
