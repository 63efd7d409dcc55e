// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package accum implements the accumulator and measurement capability
// contracts of §4.2: a thin façade over pluggable accumulators that
// deduplicates shared accumulators when two measurements are requested
// simultaneously.
package accum

// Accumulator incrementally captures a sufficient statistic of sample
// tuples. Implementations must be value-copyable via Clone.
type Accumulator interface {

	// Kind identifies the accumulator's type; two accumulators of the same
	// Kind with HasSameParameters are considered interchangeable by the
	// façade's deduplication logic.
	Kind() string

	// Clone returns an independent copy with the same parameters and a
	// zeroed running statistic.
	Clone() Accumulator

	// Add folds one sample tuple into the running statistic with the given
	// weight (1 for point samples, the intersected volume for cell
	// samples).
	Add(tuple []float64, weight float64)

	// Merge folds another accumulator of the same Kind/parameters into
	// this one (bottom-up propagation, §4.3).
	Merge(other Accumulator)

	// HasSameParameters reports whether other is configured identically to
	// this accumulator (e.g. same moment order, same component index).
	HasSameParameters(other Accumulator) bool
}

// Measurement derives a scalar from a specific combination of accumulators
// and the node's (n_points, w) summary.
type Measurement interface {

	// Name identifies the measurement for output field naming (§6).
	Name() string

	// NewAccumulatorInstances returns fresh prototype accumulators for the
	// kinds this measurement needs, in the order Measure expects them.
	NewAccumulatorInstances() []Accumulator

	// CanMeasure reports whether the measurement can be computed from a
	// node carrying n points and weight w (e.g. a minimum sample count).
	CanMeasure(nPoints int, w float64) bool

	// Measure computes the scalar value from accs (one per
	// NewAccumulatorInstances entry, same order) and (n_points, w).
	Measure(accs []Accumulator, nPoints int, w float64) float64
}
