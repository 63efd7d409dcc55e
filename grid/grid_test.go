// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"testing"

	"github.com/cpmech/adagrid/accum"
	"github.com/cpmech/adagrid/dataset"
	"github.com/cpmech/adagrid/geom"
	"github.com/cpmech/gosl/chk"
)

func TestAddPointTrivial(tst *testing.T) {
	chk.PrintTitle("AddPointTrivial")
	facade := accum.NewFacade(&accum.MeanMeasurement{MinPts: 1}, nil)
	p := Params{
		Bounds:       geom.NewBox(0, 1, 0, 1, 0, 1),
		Dx:           2, Dy: 2, Dz: 2,
		BranchFactor: 2,
		MaxDepth:     0,
		MinPts:       1,
		Facade:       facade,
	}
	b := NewBuilder(p)
	corners := [][3]float64{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
	}
	for _, c := range corners {
		b.AddPoint(c, 1)
	}
	if len(b.Trees) != 1 {
		tst.Fatalf("expected a single tree, got %d", len(b.Trees))
	}
	lv := b.Trees[0]
	if len(lv[0]) != 1 {
		tst.Fatalf("expected a single grid element at depth 0, got %d", len(lv[0]))
	}
	for _, e := range lv[0] {
		if e.NPoints != 8 {
			tst.Fatalf("expected n_points=8, got %d", e.NPoints)
		}
		mean, ok := facade.MeasurePrimary(e.Accs, e.NPoints, e.W)
		if !ok {
			tst.Fatalf("expected measurable")
		}
		chk.Float64(tst, "mean", 1e-12, mean, 1.0)
	}
}

func TestAddCellVoxel(tst *testing.T) {
	chk.PrintTitle("AddCellVoxel")
	facade := accum.NewFacade(&accum.MeanMeasurement{MinPts: 1}, nil)
	p := Params{
		Bounds:       geom.NewBox(0, 2, 0, 2, 0, 2),
		Dx:           3, Dy: 3, Dz: 3,
		BranchFactor: 2,
		MaxDepth:     1,
		MinPts:       1,
		Facade:       facade,
	}
	b := NewBuilder(p)
	cell := &dataset.VoxelCell{Box: geom.NewBox(0, 1, 0, 1, 0, 1), Attr: 7}
	deposited, warn := b.AddCell(cell, 7)
	if warn != "" {
		tst.Fatalf("unexpected warning: %s", warn)
	}
	chk.Float64(tst, "deposited", 1e-9, deposited, 1.0)
	b.Propagate()

	var total float64
	for _, lv := range b.Trees {
		for _, e := range lv[p.MaxDepth] {
			total += e.W
		}
	}
	chk.Float64(tst, "total finest weight", 1e-9, total, 1.0)
}

// TestAnalyzeNoEmptyCellsPreventsHiddenGeometry mirrors S4: a single coarse
// tree with one present, subdividable node at depth 1 whose depth-2 child
// overlapping the cell is absent from the sparse grid, with that child's
// center inside the cell's geometry. NoEmptyCells must clear the depth-1
// node's CanSubdivide so the materializer cannot subdivide past it and emit
// a masked leaf hiding real geometry (§8 property 7).
func TestAnalyzeNoEmptyCellsPreventsHiddenGeometry(tst *testing.T) {
	chk.PrintTitle("AnalyzeNoEmptyCellsPreventsHiddenGeometry")
	facade := accum.NewFacade(&accum.MeanMeasurement{MinPts: 1}, nil)
	p := Params{
		Bounds:       geom.NewBox(0, 4, 0, 4, 0, 4),
		Dx:           2, Dy: 2, Dz: 2, // a single coarse tree spanning the whole domain
		BranchFactor: 2,
		MaxDepth:     2,
		MinPts:       1,
		Facade:       facade,
	}
	b := NewBuilder(p)

	root := b.newElement()
	root.NLeaves = 2
	b.levels(0)[0][0] = root

	// depth-1 node covering [0,2)^3; its own depth-2 children are left
	// entirely absent from the sparse grid.
	mid := b.newElement()
	mid.NLeaves = 2
	b.levels(0)[1][pack(0, 0, 0, 2)] = mid

	// a voxel cell small enough that only the (0,0,0) depth-2 child
	// ([0,1)^3, center (0.5,0.5,0.5)) overlaps it, and that center lies
	// inside the cell.
	cell := &dataset.VoxelCell{Box: geom.NewBox(0.25, 0.75, 0.25, 0.75, 0.25, 0.75), Attr: 1}

	b.Analyze(cell, AnalyzeMode{NoEmptyCells: true})

	if mid.CanSubdivide {
		tst.Fatalf("expected depth-1 node's CanSubdivide to be cleared by an absent, geometry-covered child")
	}
}

func TestPropagateConservesCounts(tst *testing.T) {
	chk.PrintTitle("PropagateConservesCounts")
	facade := accum.NewFacade(&accum.MeanMeasurement{MinPts: 1}, nil)
	p := Params{
		Bounds:       geom.NewBox(0, 1, 0, 1, 0, 1),
		Dx:           2, Dy: 2, Dz: 2,
		BranchFactor: 2,
		MaxDepth:     2,
		MinPts:       1,
		Facade:       facade,
	}
	b := NewBuilder(p)
	for i := 0; i < 100; i++ {
		x := float64(i) / 100
		b.AddPoint([3]float64{x, x, x}, x)
	}
	b.Propagate()
	lv := b.Trees[0]
	root := lv[0][0]
	if root.NPoints != 100 {
		tst.Fatalf("expected 100 points at root, got %d", root.NPoints)
	}
	var sumLeaves int
	for _, e := range lv[p.MaxDepth] {
		sumLeaves += e.NPoints
	}
	if sumLeaves != root.NPoints {
		tst.Fatalf("leaf sum %d != root %d", sumLeaves, root.NPoints)
	}
}
