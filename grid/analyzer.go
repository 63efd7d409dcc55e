// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"github.com/cpmech/adagrid/dataset"
	"github.com/cpmech/adagrid/geom"
)

// AnalyzeMode selects the gap/geometry analyzer's behavior (§4.4).
type AnalyzeMode struct {

	// NoEmptyCells forbids subdivision where emptiness would leave
	// geometry hidden.
	NoEmptyCells bool

	// MarkEmpty creates empty grid entries at absent, geometry-covered
	// positions, for later extrapolation by the tree package's
	// Extrapolator.
	MarkEmpty bool
}

// Analyze walks cell through every coarse tree its bounds overlap, per
// §4.4. It is a no-op unless mode.NoEmptyCells or mode.MarkEmpty is set.
func (b *Builder) Analyze(cell dataset.Cell, mode AnalyzeMode) {
	if !mode.NoEmptyCells && !mode.MarkEmpty {
		return
	}
	cb := cell.Bounds()
	tiLo, tiHi := rangeAt(cb.X0, cb.X1, b.P.Bounds.X0, b.P.Bounds.X1, b.P.Cx())
	tjLo, tjHi := rangeAt(cb.Y0, cb.Y1, b.P.Bounds.Y0, b.P.Bounds.Y1, b.P.Cy())
	tkLo, tkHi := rangeAt(cb.Z0, cb.Z1, b.P.Bounds.Z0, b.P.Bounds.Z1, b.P.Cz())
	for ti := tiLo; ti <= tiHi && ti < b.P.Cx(); ti++ {
		for tj := tjLo; tj <= tjHi && tj < b.P.Cy(); tj++ {
			for tk := tkLo; tk <= tkHi && tk < b.P.Cz(); tk++ {
				tree := coarseIndex(ti, tj, tk, b.P.Cy(), b.P.Cz())
				box := b.P.Box(ti, tj, tk, 0, 0, 0, 0)
				if !box.Overlaps(cb) {
					continue
				}
				b.analyzeNode(tree, ti, tj, tk, 0, 0, 0, 0, cell, cb, mode)
			}
		}
	}
}

// analyzeNode implements the recursive step of §4.4 at (tree, depth, local
// = (li,lj,lk)); ti/tj/tk are the node's owning coarse tree coordinates,
// needed to compute the node's sub-box.
func (b *Builder) analyzeNode(tree, ti, tj, tk, depth, li, lj, lk int, cell dataset.Cell, cb geom.Box, mode AnalyzeMode) bool {
	rd := b.P.Rd(depth)
	idx := pack(li, lj, lk, rd)
	lv := b.levels(tree)
	e, present := lv[depth][idx]

	if !present {
		box := b.P.Box(ti, tj, tk, depth, li, lj, lk)
		center := box.Center()
		pe := cell.EvaluatePosition(center)
		if mode.MarkEmpty && pe.Inside {
			empty := &Element{Empty: true, Accs: b.P.Facade.NewAccumulators(), ChildrenFullyPopulated: true}
			lv[depth][idx] = empty
		}
		// An absent node that the cell's geometry actually covers is the
		// hole risk §4.4 guards against: subdividing its parent into it
		// would expose a masked leaf inside the cell. Report unsafe here so
		// the immediate parent's CanSubdivide gets cleared; an absent node
		// outside the cell is harmless.
		return !pe.Inside
	}

	if depth == b.P.MaxDepth || !e.CanSubdivide || (e.NUnmaskedChildren == b.P.NChildren() && e.ChildrenFullyPopulated) {
		return true
	}

	allTrue := true
	for ci := 0; ci < b.P.BranchFactor; ci++ {
		cli := li*b.P.BranchFactor + ci
		for cj := 0; cj < b.P.BranchFactor; cj++ {
			clj := lj*b.P.BranchFactor + cj
			for ck := 0; ck < b.P.BranchFactor; ck++ {
				clk := lk*b.P.BranchFactor + ck
				childBox := b.P.Box(ti, tj, tk, depth+1, cli, clj, clk)
				if !childBox.Overlaps(cb) {
					continue
				}
				ok := b.analyzeNode(tree, ti, tj, tk, depth+1, cli, clj, clk, cell, cb, mode)
				allTrue = allTrue && ok
			}
		}
	}
	if mode.NoEmptyCells {
		e.CanSubdivide = e.CanSubdivide && allTrue
	}
	return true
}
