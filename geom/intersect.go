// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import "math"

// IntersectPolyhedron computes the volume of the intersection of box b with
// a general polyhedron poly, via the divergence/Green-style corner
// decomposition of §4.1: 6·Vol is the sum of (1) box-vertex corner
// contributions, (2) polyhedron face-perimeter contributions clipped to the
// box, and (3) face/box-edge piercing contributions.
//
// err is non-nil (ErrSanity) when the result fails the |vol| <= box volume
// sanity check; callers should then treat the contribution as 0, per §7.
func (b Box) IntersectPolyhedron(poly *Polyhedron) (nonZero bool, vol float64, err error) {
	boxVol := b.Volume()
	if boxVol <= 0 {
		return false, 0, nil
	}

	pb := poly.bounds()
	if !b.Overlaps(pb) {
		return false, 0, nil
	}

	ib := b.inflate(poly.Vertices())

	sixV := cornerContribution(ib, poly)
	for _, f := range poly.Faces {
		sixV += facePerimeterContribution(ib, f)
	}
	sixV += edgePiercingContribution(ib, poly)

	if poly.InsideOut {
		sixV = -sixV
	}
	vol = sixV / 6

	if math.Abs(vol) > boxVol*(1+1e-9) {
		return false, 0, ErrSanity
	}
	if vol < 0 {
		vol = 0
	}
	if vol > boxVol {
		vol = boxVol
	}
	eps := math.Cbrt(1e-12)
	nonZero = vol > eps*eps*eps
	return nonZero, vol, nil
}

// cornerContribution sums the box-vertex terms of category (1): each box
// corner strictly inside the polyhedron contributes ±6xyz, the sign
// alternating with the parity of the corner's index (popcount odd => +1).
func cornerContribution(b Box, poly *Polyhedron) float64 {
	corners := b.corners()
	var sum float64
	for idx, c := range corners {
		if !poly.PointInside(c) {
			continue
		}
		sign := 1.0
		if popcount(idx)%2 == 0 {
			sign = -1.0
		}
		sum += sign * 6 * c[0] * c[1] * c[2]
	}
	return sum
}

func popcount(n int) int {
	c := 0
	for n != 0 {
		c += n & 1
		n >>= 1
	}
	return c
}

// facePerimeterContribution sums category (2): for each oriented edge of
// face f, the box-interior endpoint terms plus the corrective terms from
// clipping the edge against the box's 6 planes.
func facePerimeterContribution(b Box, f Face) float64 {
	n := f.Normal
	var sum float64
	for _, e := range f.edges() {
		p1, p2 := e[0], e[1]
		t := normalize3(sub3(p2, p1))
		en := cross3(n, t)

		if b.StrictlyInside(p1) {
			sum += dot3(p1, t) * dot3(p1, en) * dot3(p1, n)
		}
		if b.StrictlyInside(p2) {
			sum -= dot3(p2, t) * dot3(p2, en) * dot3(p2, n)
		}

		for _, cl := range lineBoxCrossings(p1, p2, b) {
			axis := axisUnit(cl.axis)
			eb := cross3(axis, n)
			x := add3(p1, scale3(sub3(p2, p1), cl.t))
			term := dot3(x, eb) * x[cl.axis] * dot3(x, cross3(axis, eb))
			sum += term
		}
	}
	return sum
}

// edgePiercingContribution sums category (3): for each face plane and each
// of the box's 12 edges, the plane/edge piercing point, when it lies inside
// the face polygon and within the box edge's span, contributes an
// analogous framed term. A piercing point already counted (for an earlier
// face or box edge) is skipped within DedupTolerance to avoid double
// counting.
func edgePiercingContribution(b Box, poly *Polyhedron) float64 {
	var sum float64
	seen := make([][3]float64, 0)
	already := func(p [3]float64) bool {
		for _, s := range seen {
			if almostEqual3(p, s, DedupTolerance) {
				return true
			}
		}
		return false
	}
	for _, f := range poly.Faces {
		n := f.Normal
		if len(f.Points) == 0 {
			continue
		}
		p0 := f.Points[0]
		for _, be := range boxEdges(b) {
			q1, q2 := be[0], be[1]
			d := sub3(q2, q1)
			nd := dot3(n, d)
			if math.Abs(nd) < 1e-15 {
				continue // edge parallel to face plane (§4.1: defers to other axes)
			}
			t := dot3(n, sub3(p0, q1)) / nd
			if t <= 0 || t >= 1 {
				continue
			}
			x := add3(q1, scale3(d, t))
			if already(x) {
				continue
			}
			if !pointInFacePolygon(f, x) {
				continue
			}
			if !b.Contains(x) {
				continue
			}
			seen = append(seen, x)
			axis := dominantEdgeAxis(d)
			ax := axisUnit(axis)
			eb := cross3(ax, n)
			sum += dot3(x, eb) * x[axis] * dot3(x, cross3(ax, eb))
		}
	}
	return sum
}

// dominantEdgeAxis returns the axis along which box edge direction d runs
// (box edges are axis-aligned by construction).
func dominantEdgeAxis(d [3]float64) int {
	ax, ay, az := math.Abs(d[0]), math.Abs(d[1]), math.Abs(d[2])
	switch {
	case ax >= ay && ax >= az:
		return 0
	case ay >= ax && ay >= az:
		return 1
	default:
		return 2
	}
}
