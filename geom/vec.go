// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"

	"github.com/cpmech/gosl/utl"
)

// dot3 and cross3 wrap gosl/utl's 3D vector helpers around [3]float64, the
// value type used throughout this package for vertices, normals and edge
// frames.
func dot3(a, b [3]float64) float64 {
	return utl.Dot3d(a[:], b[:])
}

func cross3(a, b [3]float64) [3]float64 {
	c := utl.Cross3d(a[:], b[:])
	return [3]float64{c[0], c[1], c[2]}
}

func sub3(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func add3(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func scale3(a [3]float64, s float64) [3]float64 {
	return [3]float64{a[0] * s, a[1] * s, a[2] * s}
}

func norm3(a [3]float64) float64 {
	return math.Sqrt(dot3(a, a))
}

func normalize3(a [3]float64) [3]float64 {
	n := norm3(a)
	if n < 1e-300 {
		return a
	}
	return scale3(a, 1/n)
}

// axisUnit returns the unit vector along axis k (0=x, 1=y, 2=z).
func axisUnit(k int) [3]float64 {
	var e [3]float64
	e[k] = 1
	return e
}

func almostEqual3(a, b [3]float64, tol float64) bool {
	return math.Abs(a[0]-b[0]) < tol && math.Abs(a[1]-b[1]) < tol && math.Abs(a[2]-b[2]) < tol
}
