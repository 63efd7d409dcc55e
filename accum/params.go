// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package accum

import "github.com/cpmech/gosl/fun/dbf"

// Params is a named-parameter list in the style of gofem's material models
// (e.g. mdl/conduct.Model.Init(prms dbf.Params), mdl/retention.Model.Init);
// measurement allocators registered via SetAllocator receive one of these so
// a tunable constant (e.g. a percentile) is configured the same way gofem
// configures material parameters.
type Params dbf.Params

// Find returns the parameter named n, or nil if absent.
func (p Params) Find(n string) *dbf.P {
	for _, prm := range p {
		if prm.N == n {
			return prm
		}
	}
	return nil
}

// FloatOr returns the value of parameter n, or def if absent.
func (p Params) FloatOr(n string, def float64) float64 {
	if prm := p.Find(n); prm != nil {
		return prm.V
	}
	return def
}

// IntOr returns the value of parameter n truncated to int, or def if absent.
func (p Params) IntOr(n string, def int) int {
	if prm := p.Find(n); prm != nil {
		return int(prm.V)
	}
	return def
}
