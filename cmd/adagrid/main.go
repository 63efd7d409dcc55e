// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command adagrid runs the adaptive hierarchical grid resampler against a
// point cloud read from a JSON file, writing the materialized tree's
// leaves to stdout. It is a thin driver in the style of gofem's main.go:
// flag parsing, a deferred recover that prints via chk/io, and a single
// call into the library package (here resample.Run instead of fem.Run).
package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/cpmech/adagrid/dataset"
	"github.com/cpmech/adagrid/resample"
	"github.com/cpmech/adagrid/tree"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// pointsFile is the on-disk shape accepted for a point-associated dataset;
// hosts with a real dataflow pipeline implement dataset.Dataset directly
// and never touch this file format.
type pointsFile struct {
	Points []dataset.Point `json:"points"`
}

func main() {
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			io.PfRed("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	io.PfWhite("\nadagrid -- adaptive hierarchical grid resampler\n\n")

	flag.Parse()
	if len(flag.Args()) < 2 {
		chk.Panic("Usage: adagrid <config.json> <points.json>")
	}
	cfgPath := flag.Arg(0)
	pointsPath := flag.Arg(1)

	cfg, err := resample.LoadConfig(cfgPath)
	if err != nil {
		chk.Panic("%v", err)
	}

	b, err := io.ReadFile(pointsPath)
	if err != nil {
		chk.Panic("cannot read points file %q: %v", pointsPath, err)
	}
	var pf pointsFile
	if err := json.Unmarshal(b, &pf); err != nil {
		chk.Panic("cannot unmarshal points file %q: %v", pointsPath, err)
	}

	ds := &dataset.InMemoryDataset{Assoc: dataset.AssociationPoints, Pts: pf.Points}
	ds.ComputeBounds()

	container := tree.NewMemContainer()
	progress := func(frac float64) { io.Pf("progress: %.0f%%\n", frac*100) }

	res, err := resample.Run(cfg, ds, container, progress)
	if err != nil {
		chk.Panic("%v", err)
	}

	for _, w := range res.Warnings {
		io.Pfyel("warning: %s\n", w)
	}
	io.Pf("built %d trees in %v\n", res.NumTrees, res.ElapsedBuild)

	for _, gid := range container.Leaves() {
		value, _ := container.Value(gid, "measure")
		io.Pf("leaf %d: measure=%v masked=%v n_points=%d\n",
			gid, value, container.IsMasked(gid), container.Count(gid, "n_points"))
	}
}
