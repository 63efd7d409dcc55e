// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resample

import (
	"time"

	"github.com/cpmech/adagrid/accum"
	"github.com/cpmech/adagrid/dataset"
	"github.com/cpmech/adagrid/grid"
	"github.com/cpmech/adagrid/tree"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

const (
	fieldMeasure = "measure"
	fieldDisplay = "display"
	fieldLeaves  = "n_leaves"
	fieldPoints  = "n_points"
)

// Run executes the full setup -> build -> emit pipeline (§2/§9) against
// ds, writing the materialized adaptive tree into container. It never
// panics for recoverable conditions (§7); only an "output type mismatch"
// (here: an unknown measurement name) is fatal, via chk.Panic.
func Run(cfg *Config, ds dataset.Dataset, container tree.Container, onProgress OnProgress) (res *Result, err error) {
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	t0 := time.Now()

	res = &Result{}

	primary, display, warns := buildMeasurements(cfg)
	res.Warnings = append(res.Warnings, warns...)
	facade := accum.NewFacade(primary, display)

	bounds := ds.Bounds()
	p := grid.Params{
		Bounds:       bounds,
		Dx:           cfg.Dimensions[0],
		Dy:           cfg.Dimensions[1],
		Dz:           cfg.Dimensions[2],
		BranchFactor: cfg.BranchFactor,
		MaxDepth:     cfg.MaxDepth,
		MinPts:       cfg.MinPtsInSubtree,
		Facade:       facade,
	}
	b := grid.NewBuilder(p)

	switch ds.Association() {
	case dataset.AssociationPoints:
		for i := 0; i < ds.NPoints(); i++ {
			b.AddPoint(ds.Point(i), ds.PointAttr(i))
		}
	case dataset.AssociationCells:
		for i := 0; i < ds.NCells(); i++ {
			cell := ds.Cell(i)
			if !supportedCell(cell) {
				io.Pf("resample: skipping unsupported cell type at index %d\n", i)
				continue
			}
			_, warning := b.AddCell(cell, ds.CellAttr(i))
			if warning != "" {
				res.Warnings = append(res.Warnings, warning)
			}
		}
	default:
		res.Warnings = append(res.Warnings, "resample: unknown field association; tree will be all-masked")
	}

	b.Propagate()
	if onProgress != nil {
		onProgress(0.5)
	}

	association := ds.Association()
	if cfg.NoEmptyCells && association == dataset.AssociationCells {
		for i := 0; i < ds.NCells(); i++ {
			cell := ds.Cell(i)
			if !supportedCell(cell) {
				continue
			}
			b.Analyze(cell, grid.AnalyzeMode{NoEmptyCells: true})
		}
	}
	if onProgress != nil {
		onProgress(1.0)
	}
	res.Warnings = append(res.Warnings, b.Warnings...)

	setupContainer(container, p)

	hasPrimary := primary != nil
	var rangePred *tree.RangePredicate
	if hasPrimary {
		rangePred = &tree.RangePredicate{Min: cfg.Min, Max: cfg.Max, InRange: cfg.InRange}
	}
	m := &tree.Materializer{
		Container:    container,
		BranchFactor: cfg.BranchFactor,
		MaxDepth:     cfg.MaxDepth,
		Range:        rangePred,
		HasPrimary:   hasPrimary,
	}
	numTrees := b.NumTrees()
	m.Run(numTrees, lookupAdapter(b, facade))
	res.NumTrees = numTrees

	if cfg.Extrapolate && association == dataset.AssociationPoints {
		ex := &tree.Extrapolator{Container: container, ValueField: fieldMeasure, DisplayField: fieldDisplay}
		ex.Run(numTrees)
	}

	res.ElapsedBuild = time.Since(t0)
	return res, nil
}

// buildMeasurements allocates the primary/display measurements named in
// cfg via accum.New. An unknown measurement name is an output type
// mismatch (§7): fatal for the invocation.
func buildMeasurements(cfg *Config) (primary, display accum.Measurement, warnings []string) {
	if cfg.ArrayMeasurement != "" {
		m, err := accum.New(cfg.ArrayMeasurement, accum.Params(cfg.MeasurementParams))
		if err != nil {
			chk.Panic("resample: array_measurement %q: %v", cfg.ArrayMeasurement, err)
		}
		primary = m
	}
	if cfg.ArrayMeasurementDisplay != "" {
		m, err := accum.New(cfg.ArrayMeasurementDisplay, accum.Params(cfg.MeasurementParams))
		if err != nil {
			chk.Panic("resample: array_measurement_display %q: %v", cfg.ArrayMeasurementDisplay, err)
		}
		display = m
	}
	return
}

// supportedCell reports whether cell is a voxel or a genuine 3D cell
// (§7's "unsupported cell type" check).
func supportedCell(cell dataset.Cell) bool {
	if _, ok := cell.Voxel(); ok {
		return true
	}
	return cell.NFaces() > 0
}

// setupContainer pushes the coarse lattice geometry into container (§6).
func setupContainer(container tree.Container, p grid.Params) {
	container.SetDimensions(p.Dx, p.Dy, p.Dz)
	container.SetBranchFactor(p.BranchFactor)
	container.SetXCoordinates(utl.LinSpace(p.Bounds.X0, p.Bounds.X1, p.Dx))
	container.SetYCoordinates(utl.LinSpace(p.Bounds.Y0, p.Bounds.Y1, p.Dy))
	container.SetZCoordinates(utl.LinSpace(p.Bounds.Z0, p.Bounds.Z1, p.Dz))
}

// lookupAdapter adapts a grid.Builder's sparse maps to the Materializer's
// tree.Lookup contract. A P-created "empty" geometry marker (§4.4) is
// reported as absent here, not present: the glossary defines a Gap as a
// *masked* leaf, so an Empty entry (data-free by construction) must mask
// the same way a genuinely-absent entry does; P's own accounting (§4.4)
// still benefits from the entry's structural presence in the sparse map
// for can_subdivide/children_fully_populated purposes upstream of this
// adapter.
func lookupAdapter(b *grid.Builder, facade *accum.Facade) tree.Lookup {
	return func(treeID, depth, local int) tree.SparseEntry {
		lv, ok := b.Trees[treeID]
		if !ok {
			return tree.SparseEntry{}
		}
		e, present := lv[depth][local]
		if !present || e.Empty {
			return tree.SparseEntry{}
		}
		return tree.SparseEntry{
			Present:      true,
			NLeaves:      e.NLeaves,
			NPoints:      e.NPoints,
			W:            e.W,
			CanSubdivide: e.CanSubdivide,
			Measure: func() (float64, float64, bool) {
				value, ok := facade.MeasurePrimary(e.Accs, e.NPoints, e.W)
				if !ok {
					return 0, 0, false
				}
				disp, dok := facade.MeasureDisplay(e.Accs, e.NPoints, e.W)
				if !dok {
					disp = value
				}
				return value, disp, true
			},
		}
	}
}

