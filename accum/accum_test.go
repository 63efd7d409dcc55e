// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package accum

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestMeanMeasurement(tst *testing.T) {
	chk.PrintTitle("MeanMeasurement")
	m := &MeanMeasurement{MinPts: 1}
	a := m.NewAccumulatorInstances()[0]
	for _, v := range []float64{1, 2, 3, 4} {
		a.Add([]float64{v}, 1)
	}
	if !m.CanMeasure(4, 4) {
		tst.Fatalf("expected can measure")
	}
	chk.Float64(tst, "mean", 1e-12, m.Measure([]Accumulator{a}, 4, 4), 2.5)
}

func TestFacadeDeduplicatesSharedAccumulator(tst *testing.T) {
	chk.PrintTitle("FacadeDeduplicatesSharedAccumulator")
	primary := &MeanMeasurement{MinPts: 1}
	display := &SumMeasurement{}
	f := NewFacade(primary, display)
	if len(f.prototypes) != 1 {
		tst.Fatalf("expected a single shared accumulator, got %d", len(f.prototypes))
	}
	accs := f.NewAccumulators()
	w := 0.0
	n := 0
	for _, v := range []float64{10, 20, 30} {
		f.Add(accs, []float64{v}, 1)
		w++
		n++
	}
	mean, ok := f.MeasurePrimary(accs, n, w)
	if !ok {
		tst.Fatalf("expected measurable")
	}
	chk.Float64(tst, "mean", 1e-12, mean, 20)
	sum, ok := f.MeasureDisplay(accs, n, w)
	if !ok {
		tst.Fatalf("expected measurable")
	}
	chk.Float64(tst, "sum", 1e-12, sum, 60)
}

func TestFacadeMergePropagatesUpward(tst *testing.T) {
	chk.PrintTitle("FacadeMergePropagatesUpward")
	f := NewFacade(&MeanMeasurement{MinPts: 1}, nil)
	childA := f.NewAccumulators()
	childB := f.NewAccumulators()
	f.Add(childA, []float64{2}, 1)
	f.Add(childB, []float64{4}, 1)
	parent := f.NewAccumulators()
	f.Merge(parent, childA)
	f.Merge(parent, childB)
	mean, ok := f.MeasurePrimary(parent, 2, 2)
	if !ok {
		tst.Fatalf("expected measurable")
	}
	chk.Float64(tst, "mean", 1e-12, mean, 3)
}

func TestNoPrimarySkipsPredicate(tst *testing.T) {
	chk.PrintTitle("NoPrimarySkipsPredicate")
	f := NewFacade(nil, nil)
	accs := f.NewAccumulators()
	v, ok := f.MeasurePrimary(accs, 0, 0)
	if !ok {
		tst.Fatalf("expected ok=true when no primary is configured")
	}
	if !isNaN(v) {
		tst.Fatalf("expected NaN, got %v", v)
	}
}

func isNaN(v float64) bool { return v != v }
