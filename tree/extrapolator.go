// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import "container/heap"

// extrapItem is one pending fill in the extrapolator's max-priority queue
// (§4.6): key = #valid neighbor values summed so far (the divisor of the
// mean written on flush).
type extrapItem struct {
	gid            int
	key            int
	sumValue       float64
	sumDisplay     float64
	invalidNeighbors []int
	index          int // heap bookkeeping
}

// extrapPQ is a max-heap of *extrapItem ordered by key, descending.
type extrapPQ []*extrapItem

func (pq extrapPQ) Len() int            { return len(pq) }
func (pq extrapPQ) Less(i, j int) bool  { return pq[i].key > pq[j].key }
func (pq extrapPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i]; pq[i].index, pq[j].index = i, j }
func (pq *extrapPQ) Push(x interface{}) {
	it := x.(*extrapItem)
	it.index = len(*pq)
	*pq = append(*pq, it)
}
func (pq *extrapPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return it
}

// Extrapolator implements the masked-leaf fill E, §4.6: it runs after the
// Materializer and fills nodes whose ValueField is NaN (masked leaves left
// by absent sparse entries) from their valid axial neighbors.
type Extrapolator struct {
	Container Container
	ValueField, DisplayField string
}

// Run fills every masked (NaN "measure" field) leaf reachable from the
// given super-cursors, one per coarse tree.
func (ex *Extrapolator) Run(numTrees int) {
	pq := &extrapPQ{}
	heap.Init(pq)

	for t := 0; t < numTrees; t++ {
		sc := ex.Container.NewSuperCursor()
		sc.Init(t)
		ex.populate(sc, pq)
	}

	ex.drain(pq)
}

// populate walks one tree with a Von-Neumann super-cursor, recursing into
// children of non-masked non-leaf nodes, and queuing every masked node for
// fill (§4.6, "Population").
func (ex *Extrapolator) populate(sc SuperCursor, pq *extrapPQ) {
	selfGid := sc.GlobalNodeIndex(StencilSelf)
	if selfGid < 0 {
		return
	}
	value := ex.Container.GetLeafValue(selfGid, ex.ValueField)

	if !isNaN(value) {
		if !sc.IsLeaf() {
			nc := sc.NChildren()
			for ci := 0; ci < nc; ci++ {
				sc.ToChild(ci)
				ex.populate(sc, pq)
				sc.ToParent()
			}
		}
		return
	}

	it := &extrapItem{gid: selfGid}
	validCount := 0
	for s := StencilXMinus; s < NStencil; s++ {
		ngid := sc.GlobalNodeIndex(s)
		if ngid < 0 || sc.IsMasked(s) {
			continue
		}
		nv := ex.Container.GetLeafValue(ngid, ex.ValueField)
		if isNaN(nv) {
			it.invalidNeighbors = append(it.invalidNeighbors, ngid)
			continue
		}
		it.sumValue += nv
		it.sumDisplay += ex.Container.GetLeafValue(ngid, ex.DisplayField)
		validCount++
	}
	it.key = validCount

	if len(it.invalidNeighbors) == 0 {
		if validCount == 0 {
			return
		}
		ex.write(selfGid, it.sumValue/float64(validCount), it.sumDisplay/float64(validCount))
		return
	}
	heap.Push(pq, it)
}

// drain repeatedly pops the top-priority item, re-reading its invalid
// neighbors' (possibly now-defined) values, and flushes every item sharing
// the current top key against the same snapshot before moving to the next
// key class (§4.6, "Drain"/"Flush rule").
func (ex *Extrapolator) drain(pq *extrapPQ) {
	var buffered []*extrapItem
	var bufferedKey int
	hasBuffer := false

	flush := func() {
		for _, it := range buffered {
			if bufferedKey <= 0 {
				continue
			}
			ex.write(it.gid, it.sumValue/float64(bufferedKey), it.sumDisplay/float64(bufferedKey))
		}
		buffered = nil
		hasBuffer = false
	}

	// stall counts consecutive pops that resolved no neighbor and changed no
	// key (no progress against the termination argument's "NaN neighbors
	// strictly decreases" metric). A run of stalls spanning the whole queue
	// means every remaining item is part of an island with no path to valid
	// data (e.g. two masked leaves that are each other's only non-boundary
	// neighbor); draining further would loop forever, so they are left
	// masked instead.
	stall := 0
	for pq.Len() > 0 {
		it := heap.Pop(pq).(*extrapItem)

		invalidRemaining := 0
		var stillInvalid []int
		for _, nid := range it.invalidNeighbors {
			nv := ex.Container.GetLeafValue(nid, ex.ValueField)
			if isNaN(nv) {
				invalidRemaining++
				stillInvalid = append(stillInvalid, nid)
				continue
			}
			it.sumValue += nv
			it.sumDisplay += ex.Container.GetLeafValue(nid, ex.DisplayField)
		}
		newKey := it.key + (len(it.invalidNeighbors) - invalidRemaining)
		progressed := newKey != it.key
		it.key = newKey
		it.invalidNeighbors = stillInvalid

		// a key change (from either a ready or a still-pending pop) closes
		// out the previous layer, since the heap always surfaces the
		// highest key first.
		if hasBuffer && newKey != bufferedKey {
			flush()
		}

		if invalidRemaining == 0 {
			bufferedKey = newKey
			hasBuffer = true
			buffered = append(buffered, it)
			stall = 0
			continue
		}

		if progressed {
			stall = 0
		} else {
			stall++
			if stall > pq.Len()+1 {
				break
			}
		}
		heap.Push(pq, it)
	}
	flush()
}

func (ex *Extrapolator) write(gid int, value, display float64) {
	ex.Container.SetLeafValue(gid, ex.ValueField, value)
	ex.Container.SetLeafValue(gid, ex.DisplayField, display)
}

func isNaN(v float64) bool { return v != v }
