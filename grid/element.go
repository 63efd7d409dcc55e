// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid implements the multi-resolution grid builder (M, §4.3) and
// the gap/geometry analyzer (P, §4.4): the sparse, per-(tree,depth,local)
// aggregation of input samples that feeds the tree materializer.
package grid

import "github.com/cpmech/adagrid/accum"

// Element is one node of the sparse multi-resolution grid at a given
// (tree, depth, local) position (§3).
type Element struct {
	NLeaves                int     // finest-level cells under this node that received >=1 sample
	NPoints                int     // input samples contributing
	W                      float64 // accumulated weight
	NUnmaskedChildren      int     // direct children present in the sparse map
	ChildrenFullyPopulated bool    // AND-aggregate: subtree is masked-leaf-free
	CanSubdivide           bool    // AND-aggregate: every child satisfies min_pts and can_measure
	Accs                   []accum.Accumulator

	// Empty marks an entry created by P purely to record geometry passage
	// (§4.4), carrying no samples of its own.
	Empty bool
}

// pack returns the local index k + j*res + i*res^2 for a node with local
// coordinates (i,j,k) at a depth whose intra-tree resolution is res.
func pack(i, j, k, res int) int {
	return k + j*res + i*res*res
}

// unpack is the inverse of pack.
func unpack(idx, res int) (i, j, k int) {
	k = idx % res
	rest := idx / res
	j = rest % res
	i = rest / res
	return
}

// coarseIndex packs coarse-lattice tree coordinates (ti,tj,tk) into a
// single tree index, using the corrected inverse of the packing formula
// (§9 open question: k + j*Cz + i*Cy*Cz).
func coarseIndex(ti, tj, tk, cy, cz int) int {
	return tk + tj*cz + ti*cy*cz
}

func ipow(base, exp int) int {
	r := 1
	for i := 0; i < exp; i++ {
		r *= base
	}
	return r
}
