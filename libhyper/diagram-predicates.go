package libhyper

import (
	"github.com/2x3systems/hypergraph/hyper"
	"github.com/emirpasic/gods/sets/hashset"
)

// IsMonogamous checks that each spider has either zero or two ports.
// In that case d lives in a compact-closed category, i.e. it can be drawn
// using only swaps, cups and caps.
func (d *Diagram) IsMonogamous() bool {
	for _, degree := range d.Degrees() {
		if degree != 0 && degree != 2 {
			return false
		}
	}
	return true
}

// IsHeteroMonogamous checks that the wires induce a bijection between
//
//	dom ports + box cod ports  (sources)
//	cod ports + box dom ports  (sinks)
//
// and the spiders that are not scalar, i.e. each of those is touched exactly
// once as a source and once as a sink. In that case d lives in a traced category.
func (d *Diagram) IsHeteroMonogamous() bool {
	sources := make([]int, d.nConnected)
	sinks := make([]int, d.nConnected)

	tally := func(counts []int, spiders []int) bool {
		for _, spider := range spiders {
			counts[spider]++
			if counts[spider] > 1 {
				return false
			}
		}
		return true
	}

	if !tally(sources, d.domWires()) || !tally(sinks, d.codWires()) {
		return false
	}
	nSources, nSinks := d.dom.Len(), d.cod.Len()
	for _, bw := range d.boxWires() {
		if !tally(sources, bw.Cod) || !tally(sinks, bw.Dom) {
			return false
		}
		nSources += len(bw.Cod)
		nSinks += len(bw.Dom)
	}
	return nSources == d.nConnected && nSinks == d.nConnected
}

// IsProgressive checks that no box reads a spider before it is produced when
// scanning boxes left to right, starting from the spiders of the dom ports.
// If d is progressive, hetero-monogamous and has no scalar spiders, it lives in
// a symmetric monoidal category, i.e. it can be drawn using only swaps.
func (d *Diagram) IsProgressive() bool {
	frontier := hashset.New()
	for _, spider := range d.domWires() {
		frontier.Add(spider)
	}
	for _, bw := range d.boxWires() {
		for _, spider := range bw.Dom {
			if !frontier.Contains(spider) {
				return false
			}
		}
		for _, spider := range bw.Cod {
			frontier.Add(spider)
		}
	}
	return true
}

// Classify returns the tamest category d lives in.
func (d *Diagram) Classify() hyper.Category {
	switch {
	case d.IsHeteroMonogamous() && d.IsProgressive() && d.NumScalarSpiders() == 0:
		return hyper.Symmetric
	case d.IsHeteroMonogamous():
		return hyper.Traced
	case d.IsMonogamous():
		return hyper.CompactClosed
	}
	return hyper.Hypergraph
}
