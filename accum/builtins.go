// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package accum

import "math"

// component selects which entry of a sample tuple an accumulator/measurement
// reads; 0 for the single-attribute case the spec describes throughout.
const component = 0

// SumAccumulator accumulates Σ weight·tuple[component].
type SumAccumulator struct {
	Sum float64
}

func (a *SumAccumulator) Kind() string { return "sum" }

func (a *SumAccumulator) Clone() Accumulator { return &SumAccumulator{} }

func (a *SumAccumulator) Add(tuple []float64, weight float64) {
	a.Sum += weight * tuple[component]
}

func (a *SumAccumulator) Merge(other Accumulator) {
	a.Sum += other.(*SumAccumulator).Sum
}

func (a *SumAccumulator) HasSameParameters(other Accumulator) bool {
	_, ok := other.(*SumAccumulator)
	return ok
}

// SumSqAccumulator accumulates Σ weight·tuple[component]².
type SumSqAccumulator struct {
	SumSq float64
}

func (a *SumSqAccumulator) Kind() string { return "sumsq" }

func (a *SumSqAccumulator) Clone() Accumulator { return &SumSqAccumulator{} }

func (a *SumSqAccumulator) Add(tuple []float64, weight float64) {
	v := tuple[component]
	a.SumSq += weight * v * v
}

func (a *SumSqAccumulator) Merge(other Accumulator) {
	a.SumSq += other.(*SumSqAccumulator).SumSq
}

func (a *SumSqAccumulator) HasSameParameters(other Accumulator) bool {
	_, ok := other.(*SumSqAccumulator)
	return ok
}

// MinAccumulator tracks the minimum observed tuple[component].
type MinAccumulator struct {
	Min   float64
	Valid bool
}

func (a *MinAccumulator) Kind() string { return "min" }

func (a *MinAccumulator) Clone() Accumulator { return &MinAccumulator{Min: math.Inf(1)} }

func (a *MinAccumulator) Add(tuple []float64, weight float64) {
	v := tuple[component]
	if !a.Valid || v < a.Min {
		a.Min, a.Valid = v, true
	}
}

func (a *MinAccumulator) Merge(other Accumulator) {
	o := other.(*MinAccumulator)
	if o.Valid && (!a.Valid || o.Min < a.Min) {
		a.Min, a.Valid = o.Min, true
	}
}

func (a *MinAccumulator) HasSameParameters(other Accumulator) bool {
	_, ok := other.(*MinAccumulator)
	return ok
}

// MaxAccumulator tracks the maximum observed tuple[component].
type MaxAccumulator struct {
	Max   float64
	Valid bool
}

func (a *MaxAccumulator) Kind() string { return "max" }

func (a *MaxAccumulator) Clone() Accumulator { return &MaxAccumulator{Max: math.Inf(-1)} }

func (a *MaxAccumulator) Add(tuple []float64, weight float64) {
	v := tuple[component]
	if !a.Valid || v > a.Max {
		a.Max, a.Valid = v, true
	}
}

func (a *MaxAccumulator) Merge(other Accumulator) {
	o := other.(*MaxAccumulator)
	if o.Valid && (!a.Valid || o.Max > a.Max) {
		a.Max, a.Valid = o.Max, true
	}
}

func (a *MaxAccumulator) HasSameParameters(other Accumulator) bool {
	_, ok := other.(*MaxAccumulator)
	return ok
}

// MeanMeasurement measures the weighted mean of the attribute: sum/w.
type MeanMeasurement struct{ MinPts int }

func (m *MeanMeasurement) Name() string { return "mean" }

func (m *MeanMeasurement) NewAccumulatorInstances() []Accumulator {
	return []Accumulator{&SumAccumulator{}}
}

func (m *MeanMeasurement) CanMeasure(nPoints int, w float64) bool {
	return nPoints >= max1(m.MinPts) && w > 0
}

func (m *MeanMeasurement) Measure(accs []Accumulator, nPoints int, w float64) float64 {
	return accs[0].(*SumAccumulator).Sum / w
}

// SumMeasurement reports the raw accumulated weighted sum.
type SumMeasurement struct{}

func (m *SumMeasurement) Name() string { return "sum" }

func (m *SumMeasurement) NewAccumulatorInstances() []Accumulator {
	return []Accumulator{&SumAccumulator{}}
}

func (m *SumMeasurement) CanMeasure(nPoints int, w float64) bool { return nPoints >= 1 }

func (m *SumMeasurement) Measure(accs []Accumulator, nPoints int, w float64) float64 {
	return accs[0].(*SumAccumulator).Sum
}

// CountMeasurement reports n_points as a float (no accumulators needed).
type CountMeasurement struct{}

func (m *CountMeasurement) Name() string { return "count" }

func (m *CountMeasurement) NewAccumulatorInstances() []Accumulator { return nil }

func (m *CountMeasurement) CanMeasure(nPoints int, w float64) bool { return nPoints >= 1 }

func (m *CountMeasurement) Measure(accs []Accumulator, nPoints int, w float64) float64 {
	return float64(nPoints)
}

// VarianceMeasurement measures the weighted population variance of the
// attribute: E[x²] - E[x]².
type VarianceMeasurement struct{ MinPts int }

func (m *VarianceMeasurement) Name() string { return "variance" }

func (m *VarianceMeasurement) NewAccumulatorInstances() []Accumulator {
	return []Accumulator{&SumAccumulator{}, &SumSqAccumulator{}}
}

func (m *VarianceMeasurement) CanMeasure(nPoints int, w float64) bool {
	min := m.MinPts
	if min < 2 {
		min = 2
	}
	return nPoints >= min && w > 0
}

func (m *VarianceMeasurement) Measure(accs []Accumulator, nPoints int, w float64) float64 {
	sum := accs[0].(*SumAccumulator).Sum
	sumsq := accs[1].(*SumSqAccumulator).SumSq
	mean := sum / w
	return sumsq/w - mean*mean
}

// RangeMeasurement measures max - min of the attribute.
type RangeMeasurement struct{}

func (m *RangeMeasurement) Name() string { return "range" }

func (m *RangeMeasurement) NewAccumulatorInstances() []Accumulator {
	return []Accumulator{&MinAccumulator{Valid: false}, &MaxAccumulator{Valid: false}}
}

func (m *RangeMeasurement) CanMeasure(nPoints int, w float64) bool { return nPoints >= 1 }

func (m *RangeMeasurement) Measure(accs []Accumulator, nPoints int, w float64) float64 {
	lo := accs[0].(*MinAccumulator)
	hi := accs[1].(*MaxAccumulator)
	if !lo.Valid || !hi.Valid {
		return math.NaN()
	}
	return hi.Max - lo.Min
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
