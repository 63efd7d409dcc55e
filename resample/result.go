// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resample

import "time"

// Result carries the outcome of one Run invocation: non-fatal warnings
// accumulated along the way (§7) and basic timing, in the style of
// gofem's per-stage io.Pf progress messages.
type Result struct {
	Warnings     []string
	ElapsedBuild time.Duration
	NumTrees     int
	NumLeaves    int
}

// OnProgress, when non-nil, is called with a monotonically increasing
// fraction in [0,1] at the two observable callouts of §5: after
// aggregation (0.5) and at the end of the gap/geometry pass (1.0).
type OnProgress func(fraction float64)
