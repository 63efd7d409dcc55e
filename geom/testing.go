// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

// BoxPolyhedron builds the 6-face Polyhedron representation of an
// axis-aligned box, used by tests and by callers that need to feed a voxel
// cell through the general polyhedron path.
func BoxPolyhedron(b Box) *Polyhedron {
	c := b.corners()
	face := func(n [3]float64, idx ...int) Face {
		pts := make([][3]float64, len(idx))
		for i, k := range idx {
			pts[i] = c[k]
		}
		return Face{Normal: n, Points: pts}
	}
	return &Polyhedron{Faces: []Face{
		face([3]float64{-1, 0, 0}, 0, 2, 6, 4), // x0
		face([3]float64{1, 0, 0}, 1, 5, 7, 3),  // x1
		face([3]float64{0, -1, 0}, 0, 4, 5, 1), // y0
		face([3]float64{0, 1, 0}, 2, 3, 7, 6),  // y1
		face([3]float64{0, 0, -1}, 0, 1, 3, 2), // z0
		face([3]float64{0, 0, 1}, 4, 6, 7, 5),  // z1
	}}
}

// TetrahedronPolyhedron builds a Polyhedron from 4 vertices, useful for
// tests exercising a non-box cell. Face winding follows the outward normal
// convention (normal computed from the first three vertices of each face).
func TetrahedronPolyhedron(v0, v1, v2, v3 [3]float64) *Polyhedron {
	mkFace := func(a, b, c [3]float64) Face {
		n := normalize3(cross3(sub3(b, a), sub3(c, a)))
		return Face{Normal: n, Points: [][3]float64{a, b, c}}
	}
	return &Polyhedron{Faces: []Face{
		mkFace(v0, v2, v1),
		mkFace(v0, v1, v3),
		mkFace(v1, v2, v3),
		mkFace(v2, v0, v3),
	}}
}
