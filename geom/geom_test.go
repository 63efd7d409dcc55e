// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestVoxelIntersectFull(tst *testing.T) {
	chk.PrintTitle("VoxelIntersectFull")
	b := NewBox(0, 1, 0, 1, 0, 1)
	v := NewBox(0, 1, 0, 1, 0, 1)
	nz, vol := b.IntersectVoxel(v)
	if !nz {
		tst.Fatalf("expected non-zero overlap")
	}
	chk.Float64(tst, "vol", 1e-12, vol, 1.0)
}

func TestVoxelIntersectPartial(tst *testing.T) {
	chk.PrintTitle("VoxelIntersectPartial")
	b := NewBox(0, 1, 0, 1, 0, 1)
	v := NewBox(0.5, 1.5, 0.5, 1.5, 0.5, 1.5)
	nz, vol := b.IntersectVoxel(v)
	if !nz {
		tst.Fatalf("expected non-zero overlap")
	}
	chk.Float64(tst, "vol", 1e-12, vol, 0.125)
}

func TestVoxelIntersectNone(tst *testing.T) {
	chk.PrintTitle("VoxelIntersectNone")
	b := NewBox(0, 1, 0, 1, 0, 1)
	v := NewBox(2, 3, 2, 3, 2, 3)
	nz, vol := b.IntersectVoxel(v)
	if nz || vol != 0 {
		tst.Fatalf("expected zero overlap, got nz=%v vol=%v", nz, vol)
	}
}

func TestPolyhedronFullyInside(tst *testing.T) {
	chk.PrintTitle("PolyhedronFullyInside")
	outer := BoxPolyhedron(NewBox(-1, 2, -1, 2, -1, 2))
	b := NewBox(0, 1, 0, 1, 0, 1)
	nz, vol, err := b.IntersectPolyhedron(outer)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if !nz {
		tst.Fatalf("expected non-zero overlap")
	}
	chk.Float64(tst, "vol", 1e-6, vol, b.Volume())
}

func TestPolyhedronFullyOutside(tst *testing.T) {
	chk.PrintTitle("PolyhedronFullyOutside")
	outer := BoxPolyhedron(NewBox(5, 6, 5, 6, 5, 6))
	b := NewBox(0, 1, 0, 1, 0, 1)
	nz, vol, err := b.IntersectPolyhedron(outer)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if nz || vol != 0 {
		tst.Fatalf("expected zero overlap, got nz=%v vol=%v", nz, vol)
	}
}

// TestPolyhedronTetrahedronPartial exercises a genuine non-box polyhedron
// (face-perimeter clip and face/box-edge piercing, §4.1 categories 2-3), not
// just box-vs-box (which reduces to category 1). The tetrahedron
// (0,0,0),(2,0,0),(0,2,0),(0,0,2) is the region x,y,z>=0, x+y+z<=2; its
// intersection with the unit cube is the cube minus the corner simplex
// x+y+z>2, which (substituting x'=1-x etc.) has volume 1/6, so the expected
// overlap is 1 - 1/6 = 5/6.
func TestPolyhedronTetrahedronPartial(tst *testing.T) {
	chk.PrintTitle("PolyhedronTetrahedronPartial")
	tet := TetrahedronPolyhedron(
		[3]float64{0, 0, 0},
		[3]float64{2, 0, 0},
		[3]float64{0, 2, 0},
		[3]float64{0, 0, 2},
	)
	b := NewBox(0, 1, 0, 1, 0, 1)
	nz, vol, err := b.IntersectPolyhedron(tet)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if !nz {
		tst.Fatalf("expected non-zero overlap")
	}
	chk.Float64(tst, "vol", 1e-6, vol, 5.0/6.0)
}

func TestPointInsideCube(tst *testing.T) {
	chk.PrintTitle("PointInsideCube")
	cube := BoxPolyhedron(NewBox(0, 1, 0, 1, 0, 1))
	if !cube.PointInside([3]float64{0.5, 0.5, 0.5}) {
		tst.Fatalf("center should be inside")
	}
	if cube.PointInside([3]float64{2, 2, 2}) {
		tst.Fatalf("far point should be outside")
	}
}
