package libhyper

import (
	"fmt"
	"strings"

	"github.com/2x3systems/hypergraph/hyper"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/pkg/errors"
)

// Diagram is a diagram in a hypergraph category.
//
// The wires go from ports to spiders, one entry per port, where ports are
// enumerated in the order:
//
//	dom ports, then for each box its dom ports followed by its cod ports, then cod ports
//
// so there are len(dom) + sum(len(box.dom) + len(box.cod)) + len(cod) of them.
//
// Abstractly a diagram is a cospan for the boundary
//
//	range(len(dom)) -> range(n_spiders) <- range(len(cod))
//
// together with a cospan for each box
//
//	range(len(box.dom)) -> range(n_spiders) <- range(len(box.cod))
//
// Spiders are numbered in order of first appearance in the wires. Spiders
// past the connected ones have no ports: these are the scalar spiders.
//
// A Diagram is never mutated once constructed and accessors return copies,
// so a Diagram can be shared freely across goroutines.
type Diagram struct {
	dom         Type
	cod         Type
	boxes       []Box
	wires       []int
	spiderTypes []Type
	nConnected  int
}

// DiagramOpt configures NewDiagram.
type DiagramOpt func(params *diagramParams)

type diagramParams struct {
	spiderTypes    []Type
	hasSpiderTypes bool
}

// WithSpiderTypes supplies the type of each spider, indexed by the raw spider
// id used in the wires passed to NewDiagram.
//
// Entries that no wire refers to become scalar spiders.
func WithSpiderTypes(spiderTypes []Type) DiagramOpt {
	return func(params *diagramParams) {
		params.spiderTypes = spiderTypes
		params.hasSpiderTypes = true
	}
}

// NumPortsFor returns the number of ports of a diagram with the given boundary and boxes.
func NumPortsFor(dom, cod Type, boxes []Box) int {
	n := dom.Len() + cod.Len()
	for _, box := range boxes {
		n += box.NumPorts()
	}
	return n
}

// NewDiagram validates and canonicalises the given wiring.
//
// Raw spider ids in wires are arbitrary labels; only the partition of ports
// they induce matters. Without WithSpiderTypes, the type of each spider is
// inferred from its ports and any two ports of a spider must have equal types.
func NewDiagram(dom, cod Type, boxes []Box, wires []int, opts ...DiagramOpt) (*Diagram, error) {
	var params diagramParams
	for _, opt := range opts {
		opt(&params)
	}

	nPorts := NumPortsFor(dom, cod, boxes)
	if len(wires) != nPorts {
		return nil, errors.Wrapf(hyper.ErrShape, "got %d wires for %d ports", len(wires), nPorts)
	}

	relabeling := linkedhashmap.New()
	canonic := make([]int, nPorts)
	for i, raw := range wires {
		rank, found := relabeling.Get(raw)
		if !found {
			rank = relabeling.Size()
			relabeling.Put(raw, rank)
		}
		canonic[i] = rank.(int)
	}
	nConnected := relabeling.Size()
	portTypes := portTypesFor(dom, cod, boxes)

	var spiderTypes []Type
	if !params.hasSpiderTypes {
		spiderTypes = make([]Type, nConnected)
		seen := make([]bool, nConnected)
		for i, spider := range canonic {
			if !seen[spider] {
				seen[spider] = true
				spiderTypes[spider] = portTypes[i]
			} else if !spiderTypes[spider].Equal(portTypes[i]) {
				return nil, errors.Wrapf(hyper.ErrTypeConsistency,
					"port %d has type %v but spider %d has type %v", i, portTypes[i], spider, spiderTypes[spider])
			}
		}
	} else {
		declared := params.spiderTypes
		spiderTypes = make([]Type, 0, len(declared))
		for _, raw := range relabeling.Keys() {
			id := raw.(int)
			if id < 0 || id >= len(declared) {
				return nil, errors.Wrapf(hyper.ErrShape, "wire names spider %d but %d spider types were given", id, len(declared))
			}
			spiderTypes = append(spiderTypes, declared[id])
		}
		for id := range declared {
			if _, found := relabeling.Get(id); !found {
				spiderTypes = append(spiderTypes, declared[id])
			}
		}
		for i, spider := range canonic {
			if !sameBasicLabel(spiderTypes[spider], portTypes[i]) {
				return nil, errors.Wrapf(hyper.ErrTypeConsistency,
					"port %d has type %v but spider %d was declared %v", i, portTypes[i], spider, spiderTypes[spider])
			}
		}
	}

	return &Diagram{
		dom:         dom,
		cod:         cod,
		boxes:       append([]Box(nil), boxes...),
		wires:       canonic,
		spiderTypes: spiderTypes,
		nConnected:  nConnected,
	}, nil
}

// mustDiagram is for wirings that are valid by construction.
func mustDiagram(dom, cod Type, boxes []Box, wires []int, opts ...DiagramOpt) *Diagram {
	d, err := NewDiagram(dom, cod, boxes, wires, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// A declared spider type must be a single atom sharing its label with every port on it.
// The offsets may differ since a cup or cap joins an atom to its adjoint.
func sameBasicLabel(spiderType, portType Type) bool {
	return spiderType.Len() == 1 && portType.Len() == 1 &&
		spiderType.atoms[0].Label == portType.atoms[0].Label
}

func portTypesFor(dom, cod Type, boxes []Box) []Type {
	types := make([]Type, 0, NumPortsFor(dom, cod, boxes))
	appendAtoms := func(t Type) {
		for i := 0; i < t.Len(); i++ {
			types = append(types, t.At(i))
		}
	}
	appendAtoms(dom)
	for _, box := range boxes {
		appendAtoms(box.dom)
		appendAtoms(box.cod)
	}
	appendAtoms(cod)
	return types
}

func (d *Diagram) Dom() Type { return d.dom }
func (d *Diagram) Cod() Type { return d.cod }

// NumBoxes returns len(d.Boxes()) without copying.
func (d *Diagram) NumBoxes() int { return len(d.boxes) }

// Box returns the i-th box of d.
func (d *Diagram) Box(i int) Box { return d.boxes[i] }

// Boxes returns a copy of the boxes of d in order.
func (d *Diagram) Boxes() []Box {
	return append([]Box(nil), d.boxes...)
}

// Wires returns a copy of the canonical port to spider wiring.
func (d *Diagram) Wires() []int {
	return append([]int(nil), d.wires...)
}

func (d *Diagram) NumPorts() int { return len(d.wires) }

// NSpiders is the number of spiders, scalar spiders included.
func (d *Diagram) NSpiders() int { return len(d.spiderTypes) }

// SpiderTypes returns a copy of the type of each spider.
func (d *Diagram) SpiderTypes() []Type {
	return append([]Type(nil), d.spiderTypes...)
}

// ScalarSpiders returns the ids of the spiders without ports, in ascending order.
func (d *Diagram) ScalarSpiders() []int {
	scalars := make([]int, 0, len(d.spiderTypes)-d.nConnected)
	for id := d.nConnected; id < len(d.spiderTypes); id++ {
		scalars = append(scalars, id)
	}
	return scalars
}

func (d *Diagram) NumScalarSpiders() int {
	return len(d.spiderTypes) - d.nConnected
}

// PortTypes returns the single-atom type of each port in port order.
func (d *Diagram) PortTypes() []Type {
	return portTypesFor(d.dom, d.cod, d.boxes)
}

// DomWires returns a copy of the wires of the dom ports.
func (d *Diagram) DomWires() []int {
	return append([]int(nil), d.domWires()...)
}

// CodWires returns a copy of the wires of the cod ports.
func (d *Diagram) CodWires() []int {
	return append([]int(nil), d.codWires()...)
}

func (d *Diagram) domWires() []int {
	return d.wires[:d.dom.Len()]
}

func (d *Diagram) codWires() []int {
	return d.wires[len(d.wires)-d.cod.Len():]
}

// innerWires are the wires of all box ports, i.e. everything but the boundary.
func (d *Diagram) innerWires() []int {
	return d.wires[d.dom.Len() : len(d.wires)-d.cod.Len()]
}

// BoxWiring is the wiring of a single box: Dom[j] is the spider of its j-th dom port
// and Cod[j] the spider of its j-th cod port.
type BoxWiring struct {
	Dom []int
	Cod []int
}

// BoxWires returns the wiring of each box, in box order.
func (d *Diagram) BoxWires() []BoxWiring {
	wirings := d.boxWires()
	for i, bw := range wirings {
		wirings[i] = BoxWiring{
			Dom: append([]int(nil), bw.Dom...),
			Cod: append([]int(nil), bw.Cod...),
		}
	}
	return wirings
}

// boxWires slices d.wires without copying.
func (d *Diagram) boxWires() []BoxWiring {
	wirings := make([]BoxWiring, len(d.boxes))
	i := d.dom.Len()
	for bi, box := range d.boxes {
		nDom, nCod := box.dom.Len(), box.cod.Len()
		wirings[bi] = BoxWiring{
			Dom: d.wires[i : i+nDom : i+nDom],
			Cod: d.wires[i+nDom : i+nDom+nCod : i+nDom+nCod],
		}
		i += nDom + nCod
	}
	return wirings
}

// Degrees returns the number of ports on each spider.
func (d *Diagram) Degrees() []int {
	degrees := make([]int, len(d.spiderTypes))
	for _, spider := range d.wires {
		degrees[spider]++
	}
	return degrees
}

// Equal returns true if d and other have the same boundary, boxes, wires and number of spiders.
// Since wires are canonical, this is equality up to relabeling of spiders.
func (d *Diagram) Equal(other *Diagram) bool {
	if d == other {
		return true
	}
	if d == nil || other == nil {
		return false
	}
	if !d.dom.Equal(other.dom) || !d.cod.Equal(other.cod) ||
		len(d.boxes) != len(other.boxes) || len(d.wires) != len(other.wires) ||
		len(d.spiderTypes) != len(other.spiderTypes) {
		return false
	}
	for i, box := range d.boxes {
		if !box.Equal(other.boxes[i]) {
			return false
		}
	}
	for i, spider := range d.wires {
		if spider != other.wires[i] {
			return false
		}
	}
	return true
}

func (d *Diagram) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Diagram(%v, %v, [", d.dom, d.cod)
	for i, box := range d.boxes {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(box.String())
	}
	b.WriteString("], ")
	writeInts(&b, d.wires)
	if d.NumScalarSpiders() > 0 {
		fmt.Fprintf(&b, ", n_spiders=%d", d.NSpiders())
	}
	b.WriteString(")")
	return b.String()
}

func writeInts(b *strings.Builder, vals []int) {
	b.WriteByte('[')
	for i, v := range vals {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%d", v)
	}
	b.WriteByte(']')
}
