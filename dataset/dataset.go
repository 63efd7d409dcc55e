// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset declares the contracts consumed from the host dataset
// (§6): the out-of-scope collaborator that supplies input points/cells and
// their scalar attribute to the resampling pipeline. It also ships minimal
// in-memory implementations so the pipeline is independently testable
// without a host.
package dataset

import "github.com/cpmech/adagrid/geom"

// Association identifies whether the input attribute lives on points or on
// cells.
type Association int

const (
	AssociationUnknown Association = iota
	AssociationPoints
	AssociationCells
)

// Dataset is the contract consumed from the host dataflow pipeline (§6).
type Dataset interface {

	// Bounds returns the axis-aligned bounding box of the input.
	Bounds() geom.Box

	// Association reports whether the scalar attribute driving refinement
	// is associated with points or with cells.
	Association() Association

	NPoints() int
	NCells() int

	// Point returns the coordinates of point i.
	Point(i int) [3]float64

	// PointAttr returns the scalar attribute of point i.
	PointAttr(i int) float64

	// Cell returns cell i.
	Cell(i int) Cell

	// CellAttr returns the scalar attribute of cell i.
	CellAttr(i int) float64
}

// PositionEval is the result of Cell.EvaluatePosition (§6).
type PositionEval struct {
	Inside  bool
	Closest [3]float64
	SubID   int
	PCoords [3]float64
	Dist2   float64
	Weights []float64
}

// Cell is the per-cell contract consumed from the host dataset (§6).
type Cell interface {

	// Bounds returns the cell's axis-aligned bounding box.
	Bounds() geom.Box

	NPoints() int
	Points() [][3]float64

	// EvaluatePosition tests point x against the cell's geometry.
	EvaluatePosition(x [3]float64) PositionEval

	NFaces() int
	FacePoints(f int) [][3]float64
	IsInsideOut() bool

	// Voxel reports whether this cell can be treated as an axis-aligned
	// voxel (the trivial clamp-and-multiply path of §4.1), returning its
	// box when ok is true.
	Voxel() (box geom.Box, ok bool)

	// Polyhedron returns the general planar-face representation used by
	// the divergence-theorem intersection of §4.1.
	Polyhedron() *geom.Polyhedron
}
