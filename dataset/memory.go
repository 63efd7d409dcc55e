// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"math"

	"github.com/cpmech/adagrid/geom"
)

// Point is one input sample for a point-associated InMemoryDataset.
type Point struct {
	X, Y, Z float64
	Attr    float64
}

// VoxelCell is an axis-aligned box cell.
type VoxelCell struct {
	Box  geom.Box
	Attr float64
}

func (c *VoxelCell) Bounds() geom.Box { return c.Box }
func (c *VoxelCell) NPoints() int     { return 8 }

func (c *VoxelCell) Points() [][3]float64 {
	return boxCorners(c.Box)
}

func (c *VoxelCell) EvaluatePosition(x [3]float64) PositionEval {
	inside := c.Box.Contains(x)
	return PositionEval{Inside: inside, Closest: x, Dist2: 0}
}

func (c *VoxelCell) NFaces() int                          { return 6 }
func (c *VoxelCell) FacePoints(f int) [][3]float64         { return geom.BoxPolyhedron(c.Box).Faces[f].Points }
func (c *VoxelCell) IsInsideOut() bool                     { return false }
func (c *VoxelCell) Voxel() (geom.Box, bool)               { return c.Box, true }
func (c *VoxelCell) Polyhedron() *geom.Polyhedron          { return geom.BoxPolyhedron(c.Box) }

func boxCorners(b geom.Box) [][3]float64 {
	return [][3]float64{
		{b.X0, b.Y0, b.Z0}, {b.X1, b.Y0, b.Z0}, {b.X0, b.Y1, b.Z0}, {b.X1, b.Y1, b.Z0},
		{b.X0, b.Y0, b.Z1}, {b.X1, b.Y0, b.Z1}, {b.X0, b.Y1, b.Z1}, {b.X1, b.Y1, b.Z1},
	}
}

// PolyCell is a general planar-faced cell (e.g. a tetrahedron).
type PolyCell struct {
	Poly *geom.Polyhedron
	Attr float64
}

func (c *PolyCell) Bounds() geom.Box {
	pts := c.Points()
	b := geom.Box{X0: math.Inf(1), X1: math.Inf(-1), Y0: math.Inf(1), Y1: math.Inf(-1), Z0: math.Inf(1), Z1: math.Inf(-1)}
	for _, p := range pts {
		b.X0, b.X1 = math.Min(b.X0, p[0]), math.Max(b.X1, p[0])
		b.Y0, b.Y1 = math.Min(b.Y0, p[1]), math.Max(b.Y1, p[1])
		b.Z0, b.Z1 = math.Min(b.Z0, p[2]), math.Max(b.Z1, p[2])
	}
	return b
}

func (c *PolyCell) NPoints() int { return len(c.Points()) }

func (c *PolyCell) Points() [][3]float64 {
	return c.Poly.Vertices()
}

func (c *PolyCell) EvaluatePosition(x [3]float64) PositionEval {
	return PositionEval{Inside: c.Poly.PointInside(x), Closest: x}
}

func (c *PolyCell) NFaces() int { return len(c.Poly.Faces) }

func (c *PolyCell) FacePoints(f int) [][3]float64 { return c.Poly.Faces[f].Points }

func (c *PolyCell) IsInsideOut() bool { return c.Poly.InsideOut }

func (c *PolyCell) Voxel() (geom.Box, bool) { return geom.Box{}, false }

func (c *PolyCell) Polyhedron() *geom.Polyhedron { return c.Poly }

// InMemoryDataset is a minimal Dataset backed by in-memory slices, used for
// tests and for hosts too small to warrant their own adapter.
type InMemoryDataset struct {
	B      geom.Box
	Assoc  Association
	Pts []Point
	Cls  []Cell
}

func (d *InMemoryDataset) Bounds() geom.Box         { return d.B }
func (d *InMemoryDataset) Association() Association { return d.Assoc }
func (d *InMemoryDataset) NPoints() int             { return len(d.Pts) }
func (d *InMemoryDataset) NCells() int              { return len(d.Cls) }

func (d *InMemoryDataset) Point(i int) [3]float64 {
	p := d.Pts[i]
	return [3]float64{p.X, p.Y, p.Z}
}

func (d *InMemoryDataset) PointAttr(i int) float64 { return d.Pts[i].Attr }

func (d *InMemoryDataset) Cell(i int) Cell { return d.Cls[i] }

func (d *InMemoryDataset) CellAttr(i int) float64 {
	switch c := d.Cls[i].(type) {
	case *VoxelCell:
		return c.Attr
	case *PolyCell:
		return c.Attr
	}
	return math.NaN()
}

// ComputeBounds derives the dataset's bounding box from its points/cells.
// Hosts with a cheaper way to know their own bounds should set B directly
// instead.
func (d *InMemoryDataset) ComputeBounds() {
	b := geom.Box{X0: math.Inf(1), X1: math.Inf(-1), Y0: math.Inf(1), Y1: math.Inf(-1), Z0: math.Inf(1), Z1: math.Inf(-1)}
	grow := func(p [3]float64) {
		b.X0, b.X1 = math.Min(b.X0, p[0]), math.Max(b.X1, p[0])
		b.Y0, b.Y1 = math.Min(b.Y0, p[1]), math.Max(b.Y1, p[1])
		b.Z0, b.Z1 = math.Min(b.Z0, p[2]), math.Max(b.Z1, p[2])
	}
	for _, p := range d.Pts {
		grow([3]float64{p.X, p.Y, p.Z})
	}
	for _, c := range d.Cls {
		cb := c.Bounds()
		grow([3]float64{cb.X0, cb.Y0, cb.Z0})
		grow([3]float64{cb.X1, cb.Y1, cb.Z1})
	}
	d.B = b
}
