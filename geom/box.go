// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom implements the volumetric intersection kernel: the volume of
// overlap between an axis-aligned box and either a voxel or a general
// polyhedron with planar faces.
package geom

import "math"

// SnapTolerance is the relative box-inflation tolerance used to avoid
// classifying a polyhedron vertex as simultaneously "inside" and "on" a box
// face. Exposed as a tunable package variable, in the style of gosl's
// package-level knobs (chk.Verbose, out.TolC).
var SnapTolerance = 1e-2

// DedupTolerance is the coordinate tolerance used to merge coincident
// polyhedron vertices, to detect a vertex lying on a box plane, and to skip
// face/box-edge piercing points that were already counted.
var DedupTolerance = 1e-6

// minVolumeEdge is the minimum volume whose cube root is the edge length
// below which a clamped dimension is treated as degenerate for the purpose
// of reporting "non-zero" overlap.
const minVolumeEdge = 1e-12

// Box is an axis-aligned bounding box (xmin,xmax,ymin,ymax,zmin,zmax).
type Box struct {
	X0, X1, Y0, Y1, Z0, Z1 float64
}

// NewBox returns a Box, swapping bounds if given in reverse order.
func NewBox(x0, x1, y0, y1, z0, z1 float64) Box {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if z0 > z1 {
		z0, z1 = z1, z0
	}
	return Box{x0, x1, y0, y1, z0, z1}
}

// Volume returns the box's volume.
func (b Box) Volume() float64 {
	return (b.X1 - b.X0) * (b.Y1 - b.Y0) * (b.Z1 - b.Z0)
}

// Center returns the box's center point.
func (b Box) Center() [3]float64 {
	return [3]float64{
		0.5 * (b.X0 + b.X1),
		0.5 * (b.Y0 + b.Y1),
		0.5 * (b.Z0 + b.Z1),
	}
}

// Contains reports whether point p lies within the box (inclusive).
func (b Box) Contains(p [3]float64) bool {
	return p[0] >= b.X0 && p[0] <= b.X1 &&
		p[1] >= b.Y0 && p[1] <= b.Y1 &&
		p[2] >= b.Z0 && p[2] <= b.Z1
}

// StrictlyInside reports whether point p lies strictly inside the box.
func (b Box) StrictlyInside(p [3]float64) bool {
	return p[0] > b.X0 && p[0] < b.X1 &&
		p[1] > b.Y0 && p[1] < b.Y1 &&
		p[2] > b.Z0 && p[2] < b.Z1
}

// Overlaps reports whether two boxes share any volume.
func (b Box) Overlaps(o Box) bool {
	return b.X0 < o.X1 && b.X1 > o.X0 &&
		b.Y0 < o.Y1 && b.Y1 > o.Y0 &&
		b.Z0 < o.Z1 && b.Z1 > o.Z0
}

// IntersectVoxel computes the volume of the intersection of b with another
// axis-aligned box v (the voxel case of §4.1): a trivial clamp-and-multiply.
// nonZero is false when any clamped edge falls below the representable
// threshold, in which case vol is reported as exactly 0.
func (b Box) IntersectVoxel(v Box) (nonZero bool, vol float64) {
	dx := math.Min(b.X1, v.X1) - math.Max(b.X0, v.X0)
	dy := math.Min(b.Y1, v.Y1) - math.Max(b.Y0, v.Y0)
	dz := math.Min(b.Z1, v.Z1) - math.Max(b.Z0, v.Z0)
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return false, 0
	}
	eps := math.Cbrt(minVolumeEdge)
	if dx <= eps || dy <= eps || dz <= eps {
		return false, 0
	}
	return true, dx * dy * dz
}

// corners returns the 8 corners of the box in canonical order (x fastest,
// then y, then z), matching the alternating-sign pattern used by the
// divergence-theorem decomposition in §4.1.
func (b Box) corners() [8][3]float64 {
	return [8][3]float64{
		{b.X0, b.Y0, b.Z0},
		{b.X1, b.Y0, b.Z0},
		{b.X0, b.Y1, b.Z0},
		{b.X1, b.Y1, b.Z0},
		{b.X0, b.Y0, b.Z1},
		{b.X1, b.Y0, b.Z1},
		{b.X0, b.Y1, b.Z1},
		{b.X1, b.Y1, b.Z1},
	}
}

// inflate grows the box by SnapTolerance along any axis where a vertex of
// the polyhedron lies on one of its faces, repeating until stable. This
// avoids a vertex being classified as both "inside" and "on" the box.
func (b Box) inflate(vertices [][3]float64) Box {
	for pass := 0; pass < 8; pass++ {
		changed := false
		dx := SnapTolerance * math.Max(b.X1-b.X0, 1e-300)
		dy := SnapTolerance * math.Max(b.Y1-b.Y0, 1e-300)
		dz := SnapTolerance * math.Max(b.Z1-b.Z0, 1e-300)
		for _, v := range vertices {
			if onPlane(v[0], b.X0) {
				b.X0 -= dx
				changed = true
			}
			if onPlane(v[0], b.X1) {
				b.X1 += dx
				changed = true
			}
			if onPlane(v[1], b.Y0) {
				b.Y0 -= dy
				changed = true
			}
			if onPlane(v[1], b.Y1) {
				b.Y1 += dy
				changed = true
			}
			if onPlane(v[2], b.Z0) {
				b.Z0 -= dz
				changed = true
			}
			if onPlane(v[2], b.Z1) {
				b.Z1 += dz
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return b
}

func onPlane(coord, plane float64) bool {
	return math.Abs(coord-plane) < DedupTolerance
}
