package libhyper

// Box is an atomic named operation from Dom() to Cod().
//
// A Box is a value: diagrams hold copies and never mutate them.
type Box struct {
	name   string
	dom    Type
	cod    Type
	dagger bool
}

// MakeBox returns the Box with the given name and boundary types.
func MakeBox(name string, dom, cod Type) Box {
	return Box{
		name: name,
		dom:  dom,
		cod:  cod,
	}
}

func (b Box) Name() string   { return b.name }
func (b Box) Dom() Type      { return b.dom }
func (b Box) Cod() Type      { return b.cod }
func (b Box) IsDagger() bool { return b.dagger }

// NumPorts is the number of ports this box contributes to a diagram.
func (b Box) NumPorts() int {
	return b.dom.Len() + b.cod.Len()
}

// Dagger returns the reversed box: dom and cod swapped and the dagger flag toggled.
func (b Box) Dagger() Box {
	return Box{
		name:   b.name,
		dom:    b.cod,
		cod:    b.dom,
		dagger: !b.dagger,
	}
}

func (b Box) Equal(other Box) bool {
	return b.name == other.name &&
		b.dagger == other.dagger &&
		b.dom.Equal(other.dom) &&
		b.cod.Equal(other.cod)
}

func (b Box) String() string {
	if b.dagger {
		return b.name + "†"
	}
	return b.name
}

// Diagram returns b as a one-box diagram sitting directly on the boundary:
// the dom ports share spiders with the box's dom ports and likewise for cod.
func (b Box) Diagram() *Diagram {
	nDom, nCod := b.dom.Len(), b.cod.Len()
	wires := make([]int, 0, 2*(nDom+nCod))
	for pass := 0; pass < 2; pass++ {
		for i := 0; i < nDom; i++ {
			wires = append(wires, i)
		}
	}
	for pass := 0; pass < 2; pass++ {
		for i := 0; i < nCod; i++ {
			wires = append(wires, nDom+i)
		}
	}
	return mustDiagram(b.dom, b.cod, []Box{b}, wires)
}
