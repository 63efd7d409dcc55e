// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import "math"

// MemContainer is a minimal in-memory implementation of Container, so the
// materializer and extrapolator are independently testable without a host
// indexing engine (§1: the real container's indexing machinery is out of
// scope, only its contract matters). Its Von-Neumann neighbor lookup is
// scoped to a single coarse tree: a node on a tree's outer boundary simply
// has no neighbor across that face, matching the "Von-Neumann super-cursor"
// contract's per-tree usage in this package.
type MemContainer struct {
	Dx, Dy, Dz   int
	Xs, Ys, Zs   []float64
	BranchFactor int

	nodes  []*memNode
	byKey  map[nodeKey]int
	fields map[string]bool // field names seen, for Fields()
}

// nodeKey addresses a node by coarse tree, depth, and local (i,j,k)
// coordinates within that depth's intra-tree resolution. Using (i,j,k)
// directly (rather than a packed scalar) keeps memCursor's child
// allocation and memSuperCursor's neighbor lookup trivially consistent.
type nodeKey struct {
	tree, depth, i, j, k int
}

type memNode struct {
	tree, depth, i, j, k int
	values               map[string]float64
	counts               map[string]int
	masked               bool
	isLeaf               bool
	children             []int // global ids, set once subdivided
}

// NewMemContainer returns an empty MemContainer.
func NewMemContainer() *MemContainer {
	return &MemContainer{byKey: make(map[nodeKey]int), fields: make(map[string]bool)}
}

func (c *MemContainer) SetDimensions(dx, dy, dz int) { c.Dx, c.Dy, c.Dz = dx, dy, dz }
func (c *MemContainer) SetXCoordinates(xs []float64) { c.Xs = xs }
func (c *MemContainer) SetYCoordinates(ys []float64) { c.Ys = ys }
func (c *MemContainer) SetZCoordinates(zs []float64) { c.Zs = zs }
func (c *MemContainer) SetBranchFactor(bf int)       { c.BranchFactor = bf }

func (c *MemContainer) SetMask(mask []bool) {
	for i, m := range mask {
		if i < len(c.nodes) {
			c.nodes[i].masked = m
		}
	}
}

func (c *MemContainer) allocNode(tree, depth, i, j, k int) int {
	id := len(c.nodes)
	n := &memNode{
		tree: tree, depth: depth, i: i, j: j, k: k,
		values: make(map[string]float64), counts: make(map[string]int),
		isLeaf: true,
	}
	c.nodes = append(c.nodes, n)
	c.byKey[nodeKey{tree, depth, i, j, k}] = id
	return id
}

// NewCursor returns a Cursor rooted at coarse tree treeID, allocating its
// root node on first use.
func (c *MemContainer) NewCursor(treeID int) Cursor {
	root, ok := c.byKey[nodeKey{treeID, 0, 0, 0, 0}]
	if !ok {
		root = c.allocNode(treeID, 0, 0, 0, 0)
	}
	return &memCursor{c: c, tree: treeID, gid: root, depth: 0}
}

func (c *MemContainer) NewSuperCursor() SuperCursor {
	return &memSuperCursor{c: c}
}

func (c *MemContainer) SetLeafValue(globalIndex int, field string, value float64) {
	c.nodes[globalIndex].values[field] = value
	c.fields[field] = true
}

func (c *MemContainer) SetLeafCount(globalIndex int, field string, value int) {
	c.nodes[globalIndex].counts[field] = value
	c.fields[field] = true
}

func (c *MemContainer) SetMaskBit(globalIndex int, masked bool) {
	c.nodes[globalIndex].masked = masked
}

// Value returns the scalar field value written at globalIndex and true, or
// (0, false) if never set (used by tests and by callers inspecting the
// materialized tree).
func (c *MemContainer) Value(globalIndex int, field string) (float64, bool) {
	v, ok := c.nodes[globalIndex].values[field]
	return v, ok
}

// GetLeafValue implements Container's read-back accessor used by the
// Extrapolator (§4.6).
func (c *MemContainer) GetLeafValue(globalIndex int, field string) float64 {
	v, ok := c.nodes[globalIndex].values[field]
	if !ok {
		return math.NaN()
	}
	return v
}

func (c *MemContainer) Count(globalIndex int, field string) int {
	return c.nodes[globalIndex].counts[field]
}

func (c *MemContainer) IsMasked(globalIndex int) bool { return c.nodes[globalIndex].masked }
func (c *MemContainer) IsLeaf(globalIndex int) bool   { return c.nodes[globalIndex].isLeaf }
func (c *MemContainer) NNodes() int                   { return len(c.nodes) }

// Leaves returns the global indices of every leaf node, in emission order.
func (c *MemContainer) Leaves() []int {
	var out []int
	for i, n := range c.nodes {
		if n.isLeaf {
			out = append(out, i)
		}
	}
	return out
}

// memCursor is MemContainer's Cursor implementation.
type memCursor struct {
	c     *MemContainer
	tree  int
	gid   int
	depth int
	stack []int
}

func (cu *memCursor) Level() int { return cu.depth }

// VertexID returns the packed local index (matching grid's pack
// convention: k + j*res + i*res^2) of the node currently visited.
func (cu *memCursor) VertexID() int {
	n := cu.c.nodes[cu.gid]
	res := ipow(cu.c.BranchFactor, cu.depth)
	return pack(n.i, n.j, n.k, res)
}

func (cu *memCursor) Tree() int { return cu.tree }

func (cu *memCursor) GlobalIndexFromLocal(vid int) int { return cu.gid }

func (cu *memCursor) IsLeaf() bool { return cu.c.nodes[cu.gid].isLeaf }

func (cu *memCursor) NChildren() int {
	return cu.c.BranchFactor * cu.c.BranchFactor * cu.c.BranchFactor
}

// SubdivideLeaf allocates NChildren fresh child nodes in canonical order
// (x fastest, §4.5): child index ci decodes as di=ci%bf, dj=(ci/bf)%bf,
// dk=ci/(bf*bf).
func (cu *memCursor) SubdivideLeaf() {
	n := cu.c.nodes[cu.gid]
	n.isLeaf = false
	bf := cu.c.BranchFactor
	nc := cu.NChildren()
	n.children = make([]int, nc)
	for ci := 0; ci < nc; ci++ {
		di := ci % bf
		dj := (ci / bf) % bf
		dk := ci / (bf * bf)
		ci2, cj2, ck2 := n.i*bf+di, n.j*bf+dj, n.k*bf+dk
		n.children[ci] = cu.c.allocNode(cu.tree, cu.depth+1, ci2, cj2, ck2)
	}
}

func (cu *memCursor) ToChild(i int) {
	n := cu.c.nodes[cu.gid]
	cu.stack = append(cu.stack, cu.gid)
	cu.gid = n.children[i]
	cu.depth++
}

func (cu *memCursor) ToParent() {
	if len(cu.stack) == 0 {
		return
	}
	cu.gid = cu.stack[len(cu.stack)-1]
	cu.stack = cu.stack[:len(cu.stack)-1]
	cu.depth--
}

// memSuperCursor is MemContainer's SuperCursor implementation, navigating
// by (depth, i, j, k) rather than by stored child pointers, so it can
// locate axial neighbors that were visited via a different parent chain.
type memSuperCursor struct {
	c            *MemContainer
	tree         int
	depth        int
	i, j, k      int
	stack        []superFrame
}

type superFrame struct {
	depth, i, j, k int
}

func (s *memSuperCursor) Init(treeID int) {
	s.tree, s.depth, s.i, s.j, s.k = treeID, 0, 0, 0, 0
	s.stack = nil
}

func (s *memSuperCursor) resolution() int {
	r := 1
	for d := 0; d < s.depth; d++ {
		r *= s.c.BranchFactor
	}
	return r
}

func (s *memSuperCursor) GlobalNodeIndex(stencil int) int {
	di, dj, dk := 0, 0, 0
	switch stencil {
	case StencilXMinus:
		di = -1
	case StencilXPlus:
		di = 1
	case StencilYMinus:
		dj = -1
	case StencilYPlus:
		dj = 1
	case StencilZMinus:
		dk = -1
	case StencilZPlus:
		dk = 1
	}
	res := s.resolution()
	ni, nj, nk := s.i+di, s.j+dj, s.k+dk
	if ni < 0 || ni >= res || nj < 0 || nj >= res || nk < 0 || nk >= res {
		return -1
	}
	gid, ok := s.c.byKey[nodeKey{s.tree, s.depth, ni, nj, nk}]
	if !ok {
		return -1
	}
	return gid
}

func (s *memSuperCursor) NCursors() int { return NStencil }

func (s *memSuperCursor) IsMasked(i int) bool {
	gid := s.GlobalNodeIndex(i)
	if gid < 0 {
		return true
	}
	return s.c.nodes[gid].masked
}

func (s *memSuperCursor) IsLeaf() bool {
	gid := s.GlobalNodeIndex(StencilSelf)
	if gid < 0 {
		return true
	}
	return s.c.nodes[gid].isLeaf
}

func (s *memSuperCursor) NChildren() int {
	return s.c.BranchFactor * s.c.BranchFactor * s.c.BranchFactor
}

func (s *memSuperCursor) ToChild(ci int) {
	s.stack = append(s.stack, superFrame{s.depth, s.i, s.j, s.k})
	bf := s.c.BranchFactor
	di := ci % bf
	dj := (ci / bf) % bf
	dk := ci / (bf * bf)
	s.depth++
	s.i = s.i*bf + di
	s.j = s.j*bf + dj
	s.k = s.k*bf + dk
}

func (s *memSuperCursor) ToParent() {
	if len(s.stack) == 0 {
		return
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.depth, s.i, s.j, s.k = top.depth, top.i, top.j, top.k
}
