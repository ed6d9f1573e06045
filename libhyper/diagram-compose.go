package libhyper

import (
	"github.com/2x3systems/hypergraph/hyper"
	"github.com/pkg/errors"
)

// Then composes d with each of the others in sequence, i.e. d >> others[0] >> others[1] ...
func (d *Diagram) Then(others ...*Diagram) (*Diagram, error) {
	if d == nil {
		return nil, hyper.ErrNilDiagram
	}
	composite := d
	for i, other := range others {
		if other == nil {
			return nil, errors.Wrapf(hyper.ErrNilDiagram, "then: diagram %d", i+1)
		}
		var err error
		if composite, err = composite.then(other); err != nil {
			return nil, err
		}
	}
	return composite, nil
}

// Then composes the given diagrams in sequence.
func Then(first *Diagram, rest ...*Diagram) (*Diagram, error) {
	return first.Then(rest...)
}

// Tensor places d and each of the others side by side, i.e. d @ others[0] @ others[1] ...
// All operands must be non-nil; Tensor panics otherwise.
func (d *Diagram) Tensor(others ...*Diagram) *Diagram {
	composite := d
	for _, other := range others {
		composite = composite.tensor(other)
	}
	return composite
}

// Tensor places the given diagrams side by side. All operands must be non-nil.
func Tensor(first *Diagram, rest ...*Diagram) *Diagram {
	return first.Tensor(rest...)
}

// then is the pushout of the span
//
//	range(d.n_spiders) <- range(len(d.cod)) -> range(other.n_spiders)
//
// Spiders are unioned across the shared boundary. The merged spiders are
// numbered first, in order of first appearance along the boundary, followed
// by the untouched spiders of d and then those of other. A merged spider left
// without ports, e.g. a closed loop, becomes a scalar spider.
func (d *Diagram) then(other *Diagram) (*Diagram, error) {
	if !d.cod.Equal(other.dom) {
		return nil, errors.Wrapf(hyper.ErrAxiom, "cannot compose %v -> %v with %v -> %v",
			d.dom, d.cod, other.dom, other.cod)
	}

	selfBoundary, otherBoundary := d.codWires(), other.domWires()
	nSelf, nOther := d.NSpiders(), other.NSpiders()

	// Node s is spider s of d and node nSelf+s is spider s of other
	uf := newUnionFind(nSelf + nOther)
	for i, spider := range selfBoundary {
		uf.union(spider, nSelf+otherBoundary[i])
	}

	pushout := make([]int, nSelf+nOther)
	component := make([]int, nSelf+nOther)
	for i := range pushout {
		pushout[i] = -1
		component[i] = -1
	}
	next := 0
	for i, spider := range selfBoundary {
		for _, node := range [2]int{spider, nSelf + otherBoundary[i]} {
			root := uf.find(node)
			if component[root] < 0 {
				component[root] = next
				next++
			}
			pushout[node] = component[root]
		}
	}
	for node, id := range pushout {
		if id < 0 {
			pushout[node] = next
			next++
		}
	}

	nWires := len(d.wires) - d.cod.Len() + len(other.wires) - other.dom.Len()
	wires := make([]int, 0, nWires)
	for _, spider := range d.wires[:len(d.wires)-d.cod.Len()] {
		wires = append(wires, pushout[spider])
	}
	for _, spider := range other.wires[other.dom.Len():] {
		wires = append(wires, pushout[nSelf+spider])
	}

	spiderTypes := make([]Type, next)
	assigned := make([]bool, next)
	for spider, typ := range d.spiderTypes {
		id := pushout[spider]
		spiderTypes[id], assigned[id] = typ, true
	}
	for spider, typ := range other.spiderTypes {
		if id := pushout[nSelf+spider]; !assigned[id] {
			spiderTypes[id], assigned[id] = typ, true
		}
	}

	boxes := make([]Box, 0, len(d.boxes)+len(other.boxes))
	boxes = append(boxes, d.boxes...)
	boxes = append(boxes, other.boxes...)

	return NewDiagram(d.dom, other.cod, boxes, wires, WithSpiderTypes(spiderTypes))
}

// tensor is the disjoint union: the spiders of other are shifted past those of d.
func (d *Diagram) tensor(other *Diagram) *Diagram {
	shift := d.NSpiders()
	wires := make([]int, 0, len(d.wires)+len(other.wires))
	appendShifted := func(spiders []int, by int) {
		for _, spider := range spiders {
			wires = append(wires, spider+by)
		}
	}
	appendShifted(d.domWires(), 0)
	appendShifted(other.domWires(), shift)
	appendShifted(d.innerWires(), 0)
	appendShifted(other.innerWires(), shift)
	appendShifted(d.codWires(), 0)
	appendShifted(other.codWires(), shift)

	boxes := make([]Box, 0, len(d.boxes)+len(other.boxes))
	boxes = append(boxes, d.boxes...)
	boxes = append(boxes, other.boxes...)

	spiderTypes := make([]Type, 0, shift+other.NSpiders())
	spiderTypes = append(spiderTypes, d.spiderTypes...)
	spiderTypes = append(spiderTypes, other.spiderTypes...)

	return mustDiagram(d.dom.Tensor(other.dom), d.cod.Tensor(other.cod), boxes, wires, WithSpiderTypes(spiderTypes))
}

// Dagger returns the reversal of d: boxes in reverse order and each box daggered,
// dom and cod exchanged. Spider types do not depend on direction and carry over.
func (d *Diagram) Dagger() *Diagram {
	wires := make([]int, 0, len(d.wires))
	wires = append(wires, d.codWires()...)

	n := len(d.boxes)
	boxes := make([]Box, n)
	boxWires := d.boxWires()
	for i := n - 1; i >= 0; i-- {
		boxes[n-1-i] = d.boxes[i].Dagger()
		wires = append(wires, boxWires[i].Cod...)
		wires = append(wires, boxWires[i].Dom...)
	}
	wires = append(wires, d.domWires()...)

	return mustDiagram(d.cod, d.dom, boxes, wires, WithSpiderTypes(d.spiderTypes))
}

// Transpose bends the boundary of d: d: A -> B gives B.R() -> A.R(), i.e.
//
//	Cap(A.R, A) @ Id(B.R) >> Id(A.R) @ d @ Id(B.R) >> Id(A.R) @ Cup(B, B.R)
func (d *Diagram) Transpose() *Diagram {
	domR, codR := d.dom.R(), d.cod.R()
	caps := cupOrCap(domR, d.dom, false).tensor(Id(codR))
	body := Id(domR).tensor(d).tensor(Id(codR))
	cups := Id(domR).tensor(cupOrCap(d.cod, codR, true))

	transposed, err := caps.Then(body, cups)
	if err != nil {
		panic(err)
	}
	return transposed
}
