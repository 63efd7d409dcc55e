// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package accum

import "math"

// Facade is the thin contract (§4.2) wrapping a primary and an optional
// display measurement. It computes the union of the accumulators both
// require and a slot map from each measurement's private index to the
// union's storage slot, so a node's sample loop calls Add once per
// distinct accumulator regardless of how many measurements reference it.
type Facade struct {
	Primary Measurement // optional; nil when not configured
	Display Measurement // optional; nil when not configured

	prototypes   []Accumulator
	primarySlots []int
	displaySlots []int
}

// NewFacade builds a façade for the given primary and display measurements;
// either may be nil.
func NewFacade(primary, display Measurement) *Facade {
	f := &Facade{Primary: primary, Display: display}
	f.primarySlots = f.unionSlots(primary)
	f.displaySlots = f.unionSlots(display)
	return f
}

// unionSlots folds m's needed accumulator prototypes into the façade's
// union, returning, for each, the slot index it was assigned (existing or
// newly appended).
func (f *Facade) unionSlots(m Measurement) []int {
	if m == nil {
		return nil
	}
	slots := make([]int, 0)
	for _, proto := range m.NewAccumulatorInstances() {
		slot := -1
		for i, existing := range f.prototypes {
			if existing.Kind() == proto.Kind() && existing.HasSameParameters(proto) {
				slot = i
				break
			}
		}
		if slot < 0 {
			f.prototypes = append(f.prototypes, proto)
			slot = len(f.prototypes) - 1
		}
		slots = append(slots, slot)
	}
	return slots
}

// NewAccumulators allocates a fresh set of union accumulators for one grid
// element, cloned from the façade's prototypes.
func (f *Facade) NewAccumulators() []Accumulator {
	out := make([]Accumulator, len(f.prototypes))
	for i, p := range f.prototypes {
		out[i] = p.Clone()
	}
	return out
}

// Add folds one sample tuple into every distinct accumulator exactly once.
func (f *Facade) Add(accs []Accumulator, tuple []float64, weight float64) {
	for _, a := range accs {
		a.Add(tuple, weight)
	}
}

// Merge folds src's accumulators into dst's, slot by slot (bottom-up
// propagation, §4.3).
func (f *Facade) Merge(dst, src []Accumulator) {
	for i := range dst {
		dst[i].Merge(src[i])
	}
}

// CanMeasure reports whether every configured measurement can be computed
// from a node carrying n points and weight w, per §4.3's can_subdivide
// predicate.
func (f *Facade) CanMeasure(nPoints int, w float64) bool {
	if f.Primary != nil && !f.Primary.CanMeasure(nPoints, w) {
		return false
	}
	if f.Display != nil && !f.Display.CanMeasure(nPoints, w) {
		return false
	}
	return true
}

// MeasurePrimary evaluates the primary measurement, or returns
// (NaN, true) when no primary measurement is configured (§4.5: the range
// predicate is then skipped).
func (f *Facade) MeasurePrimary(accs []Accumulator, nPoints int, w float64) (value float64, ok bool) {
	return f.measure(f.Primary, f.primarySlots, accs, nPoints, w)
}

// MeasureDisplay evaluates the display measurement, or (NaN, true) when
// none is configured.
func (f *Facade) MeasureDisplay(accs []Accumulator, nPoints int, w float64) (value float64, ok bool) {
	return f.measure(f.Display, f.displaySlots, accs, nPoints, w)
}

func (f *Facade) measure(m Measurement, slots []int, accs []Accumulator, nPoints int, w float64) (float64, bool) {
	if m == nil {
		return math.NaN(), true
	}
	if !m.CanMeasure(nPoints, w) {
		return math.NaN(), false
	}
	sub := make([]Accumulator, len(slots))
	for i, s := range slots {
		sub[i] = accs[s]
	}
	return m.Measure(sub, nPoints, w), true
}
