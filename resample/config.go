// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package resample implements the adaptive hierarchical grid resampling
// pipeline: a setup -> build -> emit sequence (§9's "plain setup -> build
// -> emit" re-architecture of the host's multi-phase request dispatch)
// wiring the dataset, grid and tree packages together per §2/§6.
package resample

import (
	"encoding/json"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Config holds the configuration surface of §6, read from a JSON file in
// the style of inp.ReadSim.
type Config struct {
	BranchFactor int    `json:"branch_factor"` // >=2
	MaxDepth     int    `json:"max_depth"`     // >=0
	Dimensions   [3]int `json:"dimensions"`     // Dx,Dy,Dz, each >=2

	ArrayMeasurement        string `json:"array_measurement"`         // primary, optional
	ArrayMeasurementDisplay string `json:"array_measurement_display"` // optional

	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	InRange bool    `json:"in_range"`

	MinPtsInSubtree int  `json:"min_pts_in_subtree"` // >=1
	NoEmptyCells    bool `json:"no_empty_cells"`
	Extrapolate     bool `json:"extrapolate"` // point-association only

	// MeasurementParams configures the named measurement allocators
	// (accum.New), in the style of gofem's dbf.Params-driven material
	// parameter blocks (mdl/conduct.Model.Init, mdl/retention.Model.Init).
	MeasurementParams dbf.Params `json:"measurement_params"`
}

// SetDefaults fills zero-valued fields with the configuration surface's
// defaults: branch_factor=2, min=-Inf, max=+Inf (predicate disabled),
// min_pts_in_subtree=1.
func (c *Config) SetDefaults() {
	if c.BranchFactor == 0 {
		c.BranchFactor = 2
	}
	if c.Min == 0 && c.Max == 0 {
		c.Min = math.Inf(-1)
		c.Max = math.Inf(+1)
	}
	if c.MinPtsInSubtree == 0 {
		c.MinPtsInSubtree = 1
	}
}

// Validate checks the configuration surface's constraints (§6), returning
// an error describing the first violation found.
func (c *Config) Validate() error {
	if c.BranchFactor < 2 {
		return chk.Err("resample: branch_factor must be >= 2, got %d", c.BranchFactor)
	}
	if c.MaxDepth < 0 {
		return chk.Err("resample: max_depth must be >= 0, got %d", c.MaxDepth)
	}
	for axis, d := range c.Dimensions {
		if d < 2 {
			return chk.Err("resample: dimensions[%d] must be >= 2, got %d", axis, d)
		}
	}
	if c.MinPtsInSubtree < 1 {
		return chk.Err("resample: min_pts_in_subtree must be >= 1, got %d", c.MinPtsInSubtree)
	}
	if c.Min >= c.Max {
		return chk.Err("resample: min (%v) must be < max (%v)", c.Min, c.Max)
	}
	return nil
}

// LoadConfig reads and decodes a Config from a JSON file, applying
// defaults, in the style of inp.ReadSim.
func LoadConfig(fnamepath string) (*Config, error) {
	b, err := io.ReadFile(fnamepath)
	if err != nil {
		return nil, chk.Err("resample: cannot read configuration file %q", fnamepath)
	}
	var c Config
	c.SetDefaults()
	if err = json.Unmarshal(b, &c); err != nil {
		return nil, chk.Err("resample: cannot unmarshal configuration file %q: %v", fnamepath, err)
	}
	return &c, nil
}
