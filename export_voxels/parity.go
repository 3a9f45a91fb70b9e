package main

import (
	"sort"

	"github.com/unixpickle/model3d/model3d"
)

// parityDirections are arbitrary unit vectors along which
// rays are cast. They are not axis aligned, so rays rarely
// graze edges of axis-aligned models.
var parityDirections = []model3d.Coord3D{
	{X: -0.40475415, Y: 0.86174632, Z: -0.30588783},
	{X: -0.81025101, Y: 0.38452447, Z: -0.44230559},
	{X: -0.09226702, Y: -0.74875317, Z: -0.65639584},
	{X: -0.99668947, Y: 0.08087344, Z: 0.00834144},
	{X: 0.67074042, Y: -0.60098173, Z: 0.43465877},
}

// ParitySolid decides containment by counting surface
// crossings along rays, so it works for meshes with
// (near-)duplicate triangles that a regular solid would
// count twice.
//
// A point is contained only if every ray crosses the
// surface an odd number of times.
type ParitySolid struct {
	model3d.Collider
}

func (p *ParitySolid) Contains(c model3d.Coord3D) bool {
	if !model3d.InBounds(p, c) {
		return false
	}
	for _, d := range parityDirections {
		if p.crossings(c, d)%2 == 0 {
			return false
		}
	}
	return true
}

// crossings counts the distinct surfaces hit by a ray,
// merging hits that are within a small epsilon of each
// other.
func (p *ParitySolid) crossings(origin, direction model3d.Coord3D) int {
	var scales []float64
	p.Collider.RayCollisions(&model3d.Ray{
		Origin:    origin,
		Direction: direction,
	}, func(r model3d.RayCollision) {
		scales = append(scales, r.Scale)
	})
	sort.Float64s(scales)

	epsilon := p.Max().Sub(p.Min()).Norm() * 1e-8
	var count int
	var last float64
	for _, s := range scales {
		if s-last > epsilon {
			count++
		}
		last = s
	}
	return count
}
