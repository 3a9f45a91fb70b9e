// Command polygonize extracts an isosurface from a grid of
// samples and saves it as an OFF or STL mesh.
//
// The grid is read from -input (JSON, .npy or .npz), from
// a built-in -sample, or as JSON from stdin. JSON grids are
// decoded as 3D arrays with z on the outer dimension, then
// y, then x.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/isosurface/grid"
	"github.com/unixpickle/isosurface/marching"
	"github.com/unixpickle/isosurface/mesh"
	"github.com/unixpickle/model3d/model3d"
	"go.uber.org/zap"
)

func main() {
	var inputPath string
	var sample string
	var size int
	var threshold float64
	var midpoints bool
	var outputPath string
	var verbose bool

	flag.StringVar(&inputPath, "input", "", "input grid (.json, .npy or .npz); stdin if empty")
	flag.StringVar(&sample, "sample", "", "built-in sample grid instead of input (plus, sphere)")
	flag.IntVar(&size, "size", 32, "number of samples along each axis of the sphere sample")
	flag.Float64Var(&threshold, "threshold", 0.5, "iso value separating inside from outside")
	flag.BoolVar(&midpoints, "midpoints", false, "place vertices at edge midpoints")
	flag.StringVar(&outputPath, "output", "output.off", "output mesh (.off or .stl); - for stdout")
	flag.BoolVar(&verbose, "verbose", false, "enable debug logging")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage:", os.Args[0], "[flags]")
		flag.PrintDefaults()
		os.Exit(1)
	}
	flag.Parse()
	if len(flag.Args()) != 0 {
		flag.Usage()
	}

	logger := newLogger(verbose)
	defer logger.Sync()
	marching.SetLogger(logger)
	mesh.SetLogger(logger)

	g, err := loadGrid(inputPath, sample, size)
	essentials.Must(err)
	minVal, maxVal := g.MinMax()
	logger.Info("loaded grid",
		zap.Ints("extent", g.Extent()),
		zap.Float64("min", minVal),
		zap.Float64("max", maxVal))

	var triangles []*model3d.Triangle
	if midpoints {
		triangles, err = marching.PolygonizeFunc(g, func(x float64) bool {
			return x >= threshold
		})
	} else {
		triangles, err = marching.Polygonize(g, threshold)
	}
	essentials.Must(err)

	m := mesh.NewMesh(triangles)
	logger.Info("extracted surface",
		zap.Int("vertices", m.NumVertices()),
		zap.Int("faces", m.NumFaces()))

	essentials.Must(saveMesh(m, outputPath))
}

func newLogger(verbose bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	essentials.Must(err)
	return logger
}

func loadGrid(inputPath, sample string, size int) (*grid.Grid[float64], error) {
	if sample != "" {
		if inputPath != "" {
			return nil, errors.New("cannot use both -input and -sample")
		}
		switch sample {
		case "plus":
			return grid.Map(PlusGrid(), func(x uint8) float64 {
				return float64(x)
			}), nil
		case "sphere":
			return SphereGrid(size), nil
		default:
			return nil, errors.Errorf("unknown sample: %s", sample)
		}
	}
	if inputPath == "" {
		return grid.ReadJSON(os.Stdin)
	}
	switch filepath.Ext(inputPath) {
	case ".npy", ".npz":
		return grid.LoadNumpy(inputPath)
	default:
		r, err := os.Open(inputPath)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return grid.ReadJSON(r)
	}
}

func saveMesh(m *mesh.Mesh, outputPath string) error {
	switch {
	case outputPath == "-":
		return m.WriteOFF(os.Stdout)
	case filepath.Ext(outputPath) == ".stl":
		return m.SaveSTL(outputPath)
	default:
		return m.SaveOFF(outputPath)
	}
}
