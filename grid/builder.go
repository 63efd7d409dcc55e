// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"math"

	"github.com/cpmech/adagrid/accum"
	"github.com/cpmech/adagrid/dataset"
	"github.com/cpmech/adagrid/geom"
)

// Params configures the grid builder: the coarse lattice, branch factor,
// max depth and the measurement façade driving can_subdivide (§3-4.3).
type Params struct {
	Bounds       geom.Box
	Dx, Dy, Dz   int // lattice vertex counts
	BranchFactor int
	MaxDepth     int
	MinPts       int
	Facade       *accum.Facade
}

func (p Params) Cx() int { return p.Dx - 1 }
func (p Params) Cy() int { return p.Dy - 1 }
func (p Params) Cz() int { return p.Dz - 1 }

// Rd returns the intra-tree resolution B_f^d at depth d.
func (p Params) Rd(d int) int { return ipow(p.BranchFactor, d) }

// R returns the finest intra-tree resolution B_f^D.
func (p Params) R() int { return p.Rd(p.MaxDepth) }

// NChildren returns B_f^3, the number of children of a non-leaf node.
func (p Params) NChildren() int { return p.BranchFactor * p.BranchFactor * p.BranchFactor }

func (p Params) coarseDim(axis int) int {
	switch axis {
	case 0:
		return p.Cx()
	case 1:
		return p.Cy()
	default:
		return p.Cz()
	}
}

// globalRes returns the number of finest cells along axis at depth d,
// across the whole domain (all coarse trees concatenated).
func (p Params) globalRes(axis, d int) int {
	return p.coarseDim(axis) * p.Rd(d)
}

func (p Params) axisBounds(axis int) (lo, hi float64) {
	switch axis {
	case 0:
		return p.Bounds.X0, p.Bounds.X1
	case 1:
		return p.Bounds.Y0, p.Bounds.Y1
	default:
		return p.Bounds.Z0, p.Bounds.Z1
	}
}

// axisIndex returns the global finest-cell index of coordinate v along
// axis, at resolution res, per §4.3: floor((v-lo)/(hi-lo)*res*(1-eps)).
func axisIndex(v, lo, hi float64, res int) int {
	if hi <= lo || res <= 0 {
		return 0
	}
	const eps = 1e-9
	idx := int(math.Floor((v - lo) / (hi - lo) * float64(res) * (1 - eps)))
	if idx < 0 {
		idx = 0
	}
	if idx >= res {
		idx = res - 1
	}
	return idx
}

// subBoxAxis returns the extent (lo, hi) along axis of the depth-d
// sub-volume whose global index along axis is g.
func (p Params) subBoxAxis(axis, d, g int) (lo, hi float64) {
	alo, ahi := p.axisBounds(axis)
	res := p.globalRes(axis, d)
	if res == 0 {
		return alo, ahi
	}
	w := (ahi - alo) / float64(res)
	return alo + float64(g)*w, alo + float64(g+1)*w
}

// Box returns the sub-volume box at (tree index components, local index
// components) at depth d.
func (p Params) Box(ti, tj, tk, d, li, lj, lk int) geom.Box {
	rd := p.Rd(d)
	x0, x1 := p.subBoxAxis(0, d, ti*rd+li)
	y0, y1 := p.subBoxAxis(1, d, tj*rd+lj)
	z0, z1 := p.subBoxAxis(2, d, tk*rd+lk)
	return geom.Box{X0: x0, X1: x1, Y0: y0, Y1: y1, Z0: z0, Z1: z1}
}

// Builder is the multi-resolution grid builder (M, §4.3).
type Builder struct {
	P        Params
	Trees    map[int][]map[int]*Element // tree index -> depth -> local index -> element
	Warnings []string
}

// NewBuilder returns an empty Builder for the given parameters.
func NewBuilder(p Params) *Builder {
	return &Builder{P: p, Trees: make(map[int][]map[int]*Element)}
}

// levels returns (creating if necessary) the per-depth sparse maps for
// coarse tree t.
func (b *Builder) levels(t int) []map[int]*Element {
	lv, ok := b.Trees[t]
	if !ok {
		lv = make([]map[int]*Element, b.P.MaxDepth+1)
		for i := range lv {
			lv[i] = make(map[int]*Element)
		}
		b.Trees[t] = lv
	}
	return lv
}

// NumTrees returns Cx*Cy*Cz, the number of coarse lattice cells.
func (b *Builder) NumTrees() int { return b.P.Cx() * b.P.Cy() * b.P.Cz() }

// newElement allocates a fresh, zeroed element with its own accumulator
// set cloned from the façade's prototypes.
func (b *Builder) newElement() *Element {
	return &Element{Accs: b.P.Facade.NewAccumulators(), CanSubdivide: true, ChildrenFullyPopulated: true}
}

// AddPoint folds one point sample into the finest-level grid element of
// its containing tree (§4.3, point inputs).
func (b *Builder) AddPoint(x [3]float64, attr float64) {
	R := b.P.R()
	I := axisIndex(x[0], b.P.Bounds.X0, b.P.Bounds.X1, b.P.globalRes(0, b.P.MaxDepth))
	J := axisIndex(x[1], b.P.Bounds.Y0, b.P.Bounds.Y1, b.P.globalRes(1, b.P.MaxDepth))
	K := axisIndex(x[2], b.P.Bounds.Z0, b.P.Bounds.Z1, b.P.globalRes(2, b.P.MaxDepth))
	ti, li := I/R, I%R
	tj, lj := J/R, J%R
	tk, lk := K/R, K%R
	tree := coarseIndex(ti, tj, tk, b.P.Cy(), b.P.Cz())
	idx := pack(li, lj, lk, R)

	lv := b.levels(tree)
	e, ok := lv[b.P.MaxDepth][idx]
	tuple := []float64{attr}
	if !ok {
		e = b.newElement()
		e.NLeaves = 1
		lv[b.P.MaxDepth][idx] = e
	}
	e.NPoints++
	e.W++
	b.P.Facade.Add(e.Accs, tuple, 1)
}

// cellShallowestDepth returns the shallowest depth d* at which cb spans
// >=2 finest cells in every axis, capped at MaxDepth (§4.3, cell inputs).
func (p Params) cellShallowestDepth(cb geom.Box) int {
	for d := 0; d <= p.MaxDepth; d++ {
		imin := axisIndex(cb.X0, p.Bounds.X0, p.Bounds.X1, p.globalRes(0, d))
		imax := axisIndex(cb.X1, p.Bounds.X0, p.Bounds.X1, p.globalRes(0, d))
		jmin := axisIndex(cb.Y0, p.Bounds.Y0, p.Bounds.Y1, p.globalRes(1, d))
		jmax := axisIndex(cb.Y1, p.Bounds.Y0, p.Bounds.Y1, p.globalRes(1, d))
		kmin := axisIndex(cb.Z0, p.Bounds.Z0, p.Bounds.Z1, p.globalRes(2, d))
		kmax := axisIndex(cb.Z1, p.Bounds.Z0, p.Bounds.Z1, p.globalRes(2, d))
		if imin < imax && jmin < jmax && kmin < kmax {
			return d
		}
	}
	return p.MaxDepth
}

// AddCell folds one cell sample into every grid element at its shallowest
// depth d* whose sub-box overlaps the cell (§4.3, cell inputs). It returns
// the total intersected volume actually deposited, and any geometry
// warning raised by the geometry kernel.
func (b *Builder) AddCell(cell dataset.Cell, attr float64) (deposited float64, warning string) {
	cb := cell.Bounds()
	d := b.P.cellShallowestDepth(cb)
	rd := b.P.Rd(d)

	iLo, iHi := rangeAt(cb.X0, cb.X1, b.P.Bounds.X0, b.P.Bounds.X1, b.P.globalRes(0, d))
	jLo, jHi := rangeAt(cb.Y0, cb.Y1, b.P.Bounds.Y0, b.P.Bounds.Y1, b.P.globalRes(1, d))
	kLo, kHi := rangeAt(cb.Z0, cb.Z1, b.P.Bounds.Z0, b.P.Bounds.Z1, b.P.globalRes(2, d))

	voxel, isVoxel := cell.Voxel()
	var poly *geom.Polyhedron
	if !isVoxel {
		poly = cell.Polyhedron()
	}

	tuple := []float64{attr}
	for gi := iLo; gi <= iHi; gi++ {
		ti, li := gi/rd, gi%rd
		for gj := jLo; gj <= jHi; gj++ {
			tj, lj := gj/rd, gj%rd
			for gk := kLo; gk <= kHi; gk++ {
				tk, lk := gk/rd, gk%rd
				if ti >= b.P.Cx() || tj >= b.P.Cy() || tk >= b.P.Cz() {
					continue
				}
				box := b.P.Box(ti, tj, tk, d, li, lj, lk)
				if !box.Overlaps(cb) {
					continue
				}
				var nz bool
				var v float64
				if isVoxel {
					nz, v = box.IntersectVoxel(voxel)
				} else {
					var err error
					nz, v, err = box.IntersectPolyhedron(poly)
					if err != nil {
						warning = err.Error()
						continue
					}
				}
				if !nz || v <= 0 {
					continue
				}
				tree := coarseIndex(ti, tj, tk, b.P.Cy(), b.P.Cz())
				lidx := pack(li, lj, lk, rd)
				lv := b.levels(tree)
				e, ok := lv[d][lidx]
				if !ok {
					e = b.newElement()
					e.NLeaves = 1
					lv[d][lidx] = e
				}
				e.W += v
				e.NPoints++
				b.P.Facade.Add(e.Accs, tuple, v)
				deposited += v
			}
		}
	}
	return
}

// rangeAt returns the inclusive global index range [lo,hi] spanned by
// [v0,v1] at the given resolution.
func rangeAt(v0, v1, lo, hi float64, res int) (int, int) {
	a := axisIndex(v0, lo, hi, res)
	bb := axisIndex(v1, lo, hi, res)
	if bb < a {
		a, bb = bb, a
	}
	return a, bb
}

// Propagate performs the bottom-up aggregation of §4.3: for every tree, for
// depth d from MaxDepth down to 1, upsert every entry's parent.
func (b *Builder) Propagate() {
	for _, lv := range b.Trees {
		for d := b.P.MaxDepth; d >= 1; d-- {
			rd := b.P.Rd(d)
			parent := lv[d-1]
			for idx, e := range lv[d] {
				i, j, k := unpack(idx, rd)
				pidx := pack(i/b.P.BranchFactor, j/b.P.BranchFactor, k/b.P.BranchFactor, rd/b.P.BranchFactor)
				pe, ok := parent[pidx]
				childCanSubdivide := e.NPoints >= b.P.MinPts && b.P.Facade.CanMeasure(e.NPoints, e.W)
				// a leaf (d==MaxDepth) child has no children of its own to be
				// missing; a non-leaf child is fully populated only if every
				// one of its own children was present.
				childFullyPopulated := !e.Empty && e.ChildrenFullyPopulated &&
					(d == b.P.MaxDepth || e.NUnmaskedChildren == b.P.NChildren())
				if !ok {
					pe = &Element{
						NLeaves:                e.NLeaves,
						NPoints:                e.NPoints,
						W:                      e.W,
						NUnmaskedChildren:      1,
						ChildrenFullyPopulated: childFullyPopulated,
						CanSubdivide:           childCanSubdivide,
						Accs:                   b.P.Facade.NewAccumulators(),
					}
					for i, a := range pe.Accs {
						a.Merge(e.Accs[i])
					}
					parent[pidx] = pe
					continue
				}
				pe.NLeaves += e.NLeaves
				pe.NPoints += e.NPoints
				pe.W += e.W
				pe.NUnmaskedChildren++
				pe.ChildrenFullyPopulated = pe.ChildrenFullyPopulated && childFullyPopulated
				pe.CanSubdivide = pe.CanSubdivide && childCanSubdivide
				b.P.Facade.Merge(pe.Accs, e.Accs)
			}
		}
	}
}
