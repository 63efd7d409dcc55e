// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package accum

import "github.com/cpmech/gosl/chk"

// AllocatorType allocates a new Measurement instance from named parameters,
// in the style of ele/factory.go's element allocators.
type AllocatorType func(prms Params) Measurement

var allocators = map[string]AllocatorType{
	"mean":     func(prms Params) Measurement { return &MeanMeasurement{MinPts: prms.IntOr("min_pts", 1)} },
	"sum":      func(prms Params) Measurement { return &SumMeasurement{} },
	"count":    func(prms Params) Measurement { return &CountMeasurement{} },
	"variance": func(prms Params) Measurement { return &VarianceMeasurement{MinPts: prms.IntOr("min_pts", 2)} },
	"range":    func(prms Params) Measurement { return &RangeMeasurement{} },
}

// SetAllocator registers a new measurement allocator under name,
// overwriting any previous registration. Host applications use this to
// plug in measurement types not built into this package (§6).
func SetAllocator(name string, fcn AllocatorType) {
	allocators[name] = fcn
}

// New allocates a named measurement with the given parameters.
func New(name string, prms Params) (m Measurement, err error) {
	fcn, ok := allocators[name]
	if !ok {
		err = chk.Err("accum: unknown measurement type %q", name)
		return
	}
	m = fcn(prms)
	if m == nil {
		err = chk.Err("accum: allocator for %q returned nil", name)
	}
	return
}
