package libhyper

import (
	"github.com/2x3systems/hypergraph/hyper"
	"github.com/pkg/errors"
)

// NewBox returns the box with the given name and boundary as a one-box diagram.
func NewBox(name string, dom, cod Type) *Diagram {
	return MakeBox(name, dom, cod).Diagram()
}

// Id returns the identity diagram on dom: dom port i and cod port i share spider i.
func Id(dom Type) *Diagram {
	n := dom.Len()
	wires := make([]int, 2*n)
	for i := 0; i < n; i++ {
		wires[i] = i
		wires[n+i] = i
	}
	return mustDiagram(dom, dom, nil, wires)
}

// Swap returns the symmetry left @ right -> right @ left.
func Swap(left, right Type) *Diagram {
	nLeft, nRight := left.Len(), right.Len()
	n := nLeft + nRight
	wires := make([]int, 0, 2*n)
	for i := 0; i < n; i++ {
		wires = append(wires, i)
	}
	for i := nLeft; i < n; i++ {
		wires = append(wires, i)
	}
	for i := 0; i < nLeft; i++ {
		wires = append(wires, i)
	}
	return mustDiagram(left.Tensor(right), right.Tensor(left), nil, wires)
}

// Spider returns the spider typ^nIn -> typ^nOut: one spider per atom of typ,
// each touched by all nIn + nOut occurrences of that atom.
func Spider(nIn, nOut int, typ Type) *Diagram {
	n := typ.Len()
	wires := make([]int, 0, (nIn+nOut)*n)
	for leg := 0; leg < nIn+nOut; leg++ {
		for i := 0; i < n; i++ {
			wires = append(wires, i)
		}
	}
	spiderTypes := make([]Type, n)
	for i := range spiderTypes {
		spiderTypes[i] = typ.At(i)
	}
	return mustDiagram(typ.Pow(nIn), typ.Pow(nOut), nil, wires, WithSpiderTypes(spiderTypes))
}

// Cup returns the cup left @ right -> Ty() which requires left and right to be adjoints.
func Cup(left, right Type) (*Diagram, error) {
	if !left.IsAdjointTo(right) {
		return nil, errors.Wrapf(hyper.ErrAxiom, "cup: %v and %v are not adjoints", left, right)
	}
	return cupOrCap(left, right, true), nil
}

// Cap returns the cap Ty() -> left @ right which requires left and right to be adjoints.
func Cap(left, right Type) (*Diagram, error) {
	if !left.IsAdjointTo(right) {
		return nil, errors.Wrapf(hyper.ErrAxiom, "cap: %v and %v are not adjoints", left, right)
	}
	return cupOrCap(left, right, false), nil
}

// cupOrCap pairs the i-th atom of left with the i-th last atom of right.
// The spider types are declared from left since each spider joins an atom to its adjoint.
func cupOrCap(left, right Type, isCup bool) *Diagram {
	n := left.Len()
	wires := make([]int, 2*n)
	spiderTypes := make([]Type, n)
	for i := 0; i < n; i++ {
		wires[i] = i
		wires[2*n-1-i] = i
		spiderTypes[i] = left.At(i)
	}
	boundary := left.Tensor(right)
	if isCup {
		return mustDiagram(boundary, Type{}, nil, wires, WithSpiderTypes(spiderTypes))
	}
	return mustDiagram(Type{}, boundary, nil, wires, WithSpiderTypes(spiderTypes))
}
