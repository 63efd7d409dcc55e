// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import "math"

// RangePredicate captures the (min, max, in_range) subdivision gate of
// §4.5/§6: subdivide only when in_range ? min<value<max : !(min<value<max).
// A nil *RangePredicate, or one with Min=-Inf and Max=+Inf, never blocks
// subdivision.
type RangePredicate struct {
	Min, Max float64
	InRange  bool
}

// Allows reports whether value passes the predicate. NaN never passes.
func (r *RangePredicate) Allows(value float64) bool {
	if r == nil {
		return true
	}
	if math.IsNaN(value) {
		return false
	}
	if math.IsInf(r.Min, -1) && math.IsInf(r.Max, 1) {
		return true
	}
	inOpenRange := r.Min < value && value < r.Max
	if r.InRange {
		return inOpenRange
	}
	return !inOpenRange
}

// SparseEntry is the materializer's view of one grid.Element (kept
// dependency-free of the grid package so tree can be tested in isolation;
// resample wires the two together).
type SparseEntry struct {
	Present                bool
	NLeaves                int
	NPoints                int
	W                       float64
	CanSubdivide            bool
	Measure                 func() (value float64, display float64, ok bool)
}

// Lookup returns the sparse entry at (tree, depth, local=pack(i,j,k)), or
// SparseEntry{} (Present=false) when absent.
type Lookup func(tree, depth, local int) SparseEntry

// Materializer implements the top-down tree materializer T, §4.5.
type Materializer struct {
	Container    Container
	BranchFactor int
	MaxDepth     int
	Range        *RangePredicate
	HasPrimary   bool // when false, the range predicate is always skipped (§4.5)
}

// pack mirrors grid's local-index packing so callers can share one
// convention; duplicated here (not imported) to keep tree independent of
// grid's internal representation.
func pack(i, j, k, res int) int {
	return k + j*res + i*res*res
}

func ipow(base, exp int) int {
	r := 1
	for i := 0; i < exp; i++ {
		r *= base
	}
	return r
}

// Run materializes every coarse tree 0..numTrees-1 by calling lookup
// against the caller's sparse grid, per §4.5. Emission is parents before
// children (recursion visits and writes a node before descending).
func (m *Materializer) Run(numTrees int, lookup Lookup) {
	for t := 0; t < numTrees; t++ {
		cur := m.Container.NewCursor(t)
		m.visit(cur, t, 0, 0, 0, 0, lookup)
	}
}

func (m *Materializer) visit(cur Cursor, tree, depth, li, lj, lk int, lookup Lookup) {
	rd := ipow(m.BranchFactor, depth)
	local := pack(li, lj, lk, rd)
	entry := lookup(tree, depth, local)

	gid := cur.GlobalIndexFromLocal(cur.VertexID())

	var value, display float64 = math.NaN(), math.NaN()
	var ok bool
	if entry.Present {
		value, display, ok = entry.Measure()
		if !ok {
			value, display = math.NaN(), math.NaN()
		}
	}

	m.Container.SetMaskBit(gid, !entry.Present)
	m.Container.SetLeafValue(gid, "measure", value)
	m.Container.SetLeafValue(gid, "display", display)
	m.Container.SetLeafCount(gid, "n_leaves", entry.NLeaves)
	m.Container.SetLeafCount(gid, "n_points", entry.NPoints)

	rangeOK := !m.HasPrimary || m.Range.Allows(value)
	subdivide := depth < m.MaxDepth && entry.Present && !math.IsNaN(value) &&
		entry.NLeaves > 1 && entry.CanSubdivide && rangeOK
	if !subdivide {
		return
	}

	cur.SubdivideLeaf()
	nc := cur.NChildren()
	for ci := 0; ci < nc; ci++ {
		di := ci % m.BranchFactor
		dj := (ci / m.BranchFactor) % m.BranchFactor
		dk := ci / (m.BranchFactor * m.BranchFactor)
		cur.ToChild(ci)
		m.visit(cur, tree, depth+1, li*m.BranchFactor+di, lj*m.BranchFactor+dj, lk*m.BranchFactor+dk, lookup)
		cur.ToParent()
	}
}
