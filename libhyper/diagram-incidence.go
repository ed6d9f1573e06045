package libhyper

// NodeKind tells which part of a diagram a node of its incidence graph stands for.
type NodeKind byte

const (
	SpiderNode NodeKind = iota
	BoxNode
	InputNode
	OutputNode
)

func (kind NodeKind) String() string {
	switch kind {
	case SpiderNode:
		return "spider"
	case BoxNode:
		return "box"
	case InputNode:
		return "input"
	case OutputNode:
		return "output"
	}
	return "?"
}

// Node is a node of an incidence graph; Index is the spider id, box index or boundary position.
type Node struct {
	Kind  NodeKind
	Index int
}

// Edge joins a box or boundary node to a spider node. Port is the position of
// the port among the dom ports (Dom set) or cod ports of a box; it is the
// boundary position for input and output nodes.
type Edge struct {
	From Node
	To   Node
	Port int
	Dom  bool
}

// Incidence is the bipartite graph of a diagram that a layout engine works on:
// spiders on one side, boxes and boundary ports on the other.
type Incidence struct {
	Nodes []Node
	Edges []Edge
}

// Incidence returns the incidence graph of d.
//
// Nodes are listed as spiders, inputs, boxes then outputs. Every port gives one edge,
// so a spider's degree is its number of edges.
func (d *Diagram) Incidence() *Incidence {
	g := &Incidence{
		Nodes: make([]Node, 0, d.NSpiders()+d.dom.Len()+len(d.boxes)+d.cod.Len()),
		Edges: make([]Edge, 0, len(d.wires)),
	}
	spider := func(id int) Node {
		return Node{Kind: SpiderNode, Index: id}
	}

	for id := 0; id < d.NSpiders(); id++ {
		g.Nodes = append(g.Nodes, spider(id))
	}
	for i, id := range d.domWires() {
		in := Node{Kind: InputNode, Index: i}
		g.Nodes = append(g.Nodes, in)
		g.Edges = append(g.Edges, Edge{From: in, To: spider(id), Port: i, Dom: true})
	}
	for bi, bw := range d.boxWires() {
		box := Node{Kind: BoxNode, Index: bi}
		g.Nodes = append(g.Nodes, box)
		for j, id := range bw.Dom {
			g.Edges = append(g.Edges, Edge{From: box, To: spider(id), Port: j, Dom: true})
		}
		for j, id := range bw.Cod {
			g.Edges = append(g.Edges, Edge{From: box, To: spider(id), Port: j})
		}
	}
	for i, id := range d.codWires() {
		out := Node{Kind: OutputNode, Index: i}
		g.Nodes = append(g.Nodes, out)
		g.Edges = append(g.Edges, Edge{From: out, To: spider(id), Port: i})
	}
	return g
}
