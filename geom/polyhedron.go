// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Face is one planar, simply-connected face of a Polyhedron: an ordered
// loop of vertices (consistent winding) together with its outward unit
// normal.
type Face struct {
	Normal [3]float64
	Points [][3]float64
}

// edges returns the face's oriented boundary edges (p1 -> p2), cycling
// back to the first vertex.
func (f Face) edges() [][2][3]float64 {
	n := len(f.Points)
	es := make([][2][3]float64, 0, n)
	for i := 0; i < n; i++ {
		p1 := f.Points[i]
		p2 := f.Points[(i+1)%n]
		if norm3(sub3(p2, p1)) < 1e-12 {
			continue // colinear/duplicate edge vertex, skip per §4.1
		}
		es = append(es, [2][3]float64{p1, p2})
	}
	return es
}

// dominantAxis returns the index (0,1,2) of the normal's largest component,
// used to pick the 2D projection plane for point-in-polygon tests.
func (f Face) dominantAxis() int {
	ax, ay, az := math.Abs(f.Normal[0]), math.Abs(f.Normal[1]), math.Abs(f.Normal[2])
	switch {
	case ax >= ay && ax >= az:
		return 0
	case ay >= ax && ay >= az:
		return 1
	default:
		return 2
	}
}

// Polyhedron is a general 3D cell with planar faces, as consumed from the
// host dataset's Cell.FacePoints/Cell.IsInsideOut (§6).
type Polyhedron struct {
	Faces     []Face
	InsideOut bool
}

// Vertices returns the (deduplicated) set of the polyhedron's corner
// points, gathered from all faces.
func (p *Polyhedron) Vertices() [][3]float64 {
	var out [][3]float64
	for _, f := range p.Faces {
		for _, v := range f.Points {
			dup := false
			for _, o := range out {
				if almostEqual3(v, o, DedupTolerance) {
					dup = true
					break
				}
			}
			if !dup {
				out = append(out, v)
			}
		}
	}
	return out
}

// bounds returns the polyhedron's axis-aligned bounding box.
func (p *Polyhedron) bounds() Box {
	b := Box{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	for _, v := range p.Vertices() {
		b.X0, b.X1 = math.Min(b.X0, v[0]), math.Max(b.X1, v[0])
		b.Y0, b.Y1 = math.Min(b.Y0, v[1]), math.Max(b.Y1, v[1])
		b.Z0, b.Z1 = math.Min(b.Z0, v[2]), math.Max(b.Z1, v[2])
	}
	return b
}

// PointInside reports whether point x lies inside the polyhedron, using a
// ray-casting parity test against the face polygons. The ray is cast in a
// generic, axis-skew direction to reduce the chance of grazing a face
// exactly along its plane.
func (p *Polyhedron) PointInside(x [3]float64) bool {
	dir := [3]float64{1.0, 0.1735, 0.0951} // arbitrary, non axis-aligned
	count := 0
	for _, f := range p.Faces {
		nd := dot3(f.Normal, dir)
		if math.Abs(nd) < 1e-12 {
			continue // ray parallel to face plane
		}
		t := dot3(f.Normal, sub3(f.Points[0], x)) / nd
		if t <= 1e-12 {
			continue // behind the ray origin
		}
		q := add3(x, scale3(dir, t))
		if pointInFacePolygon(f, q) {
			count++
		}
	}
	if p.InsideOut {
		return count%2 == 0
	}
	return count%2 == 1
}

// pointInFacePolygon tests whether point q, known to lie in face f's plane,
// falls inside its boundary polygon, via 2D projection along the face's
// dominant normal axis.
func pointInFacePolygon(f Face, q [3]float64) bool {
	drop := f.dominantAxis()
	a, b := (drop+1)%3, (drop+2)%3
	px, py := q[a], q[b]
	inside := false
	n := len(f.Points)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := f.Points[i][a], f.Points[i][b]
		xj, yj := f.Points[j][a], f.Points[j][b]
		if (yi > py) != (yj > py) {
			xcross := (xj-xi)*(py-yi)/(yj-yi) + xi
			if px < xcross {
				inside = !inside
			}
		}
	}
	return inside
}

// lineBoxCrossings returns, for the segment p1->p2, the parameters t in
// (0,1] at which it crosses one of the box's 6 bounding planes while the
// crossing point lies on the box's face (i.e. within the other two axis
// ranges), together with the axis index of the plane crossed. This is the
// "line–box intersection" clipping step of §4.1 category 2.
func lineBoxCrossings(p1, p2 [3]float64, b Box) []struct {
	t    float64
	axis int
} {
	var out []struct {
		t    float64
		axis int
	}
	planes := []struct {
		axis  int
		value float64
	}{
		{0, b.X0}, {0, b.X1},
		{1, b.Y0}, {1, b.Y1},
		{2, b.Z0}, {2, b.Z1},
	}
	d := sub3(p2, p1)
	for _, pl := range planes {
		if math.Abs(d[pl.axis]) < 1e-15 {
			continue
		}
		t := (pl.value - p1[pl.axis]) / d[pl.axis]
		if t <= 0 || t > 1 {
			continue
		}
		q := add3(p1, scale3(d, t))
		onFace := true
		for k := 0; k < 3; k++ {
			if k == pl.axis {
				continue
			}
			lo, hi := axisRange(b, k)
			if q[k] < lo-1e-9 || q[k] > hi+1e-9 {
				onFace = false
				break
			}
		}
		if onFace {
			out = append(out, struct {
				t    float64
				axis int
			}{t, pl.axis})
		}
	}
	return out
}

func axisRange(b Box, axis int) (lo, hi float64) {
	switch axis {
	case 0:
		return b.X0, b.X1
	case 1:
		return b.Y0, b.Y1
	default:
		return b.Z0, b.Z1
	}
}

// boxEdges returns the 12 edges of box b as (p1, p2) pairs, used by the
// face–box-edge piercing pass (§4.1 category 3).
func boxEdges(b Box) [][2][3]float64 {
	c := b.corners()
	pairs := [][2]int{
		{0, 1}, {0, 2}, {0, 4},
		{1, 3}, {1, 5},
		{2, 3}, {2, 6},
		{3, 7},
		{4, 5}, {4, 6},
		{5, 7},
		{6, 7},
	}
	es := make([][2][3]float64, len(pairs))
	for i, pr := range pairs {
		es[i] = [2][3]float64{c[pr[0]], c[pr[1]]}
	}
	return es
}

// ErrSanity is returned by IntersectPolyhedron when the computed volume
// fails the |vol| <= box_volume sanity check of §4.1.
var ErrSanity = chk.Err("geom: computed intersection volume exceeds box volume")
