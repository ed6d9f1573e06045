package libhyper_test

import (
	"strings"
	"testing"

	"github.com/2x3systems/hypergraph/hyper"
	"github.com/2x3systems/hypergraph/libhyper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAsString(t *testing.T) {
	var b strings.Builder
	libhyper.Id(x).WriteAsString(&b, hyper.DefaultPrintOpts)
	assert.Equal(t, "x -> x, boxes=0, n_spiders=1\n"+
		"  wires: [0, 0]\n"+
		"  monogamous=true hetero-monogamous=true progressive=true category=symmetric\n", b.String())

	b.Reset()
	d := libhyper.NewBox("f", x, y).Tensor(libhyper.Spider(0, 0, z))
	d.WriteAsString(&b, hyper.PrintOpts{
		Label:       "fz:",
		SpiderTypes: true,
		BoxWires:    true,
	})
	assert.Equal(t, "fz: x -> y, boxes=1, n_spiders=3 (1 scalar)\n"+
		"  spider types: 0:x 1:y 2:z\n"+
		"  box 0 f: x -> y, wires [0] -> [1]\n", b.String())
}

func TestIncidence(t *testing.T) {
	g := libhyper.NewBox("f", x, y).Incidence()

	assert.Equal(t, []libhyper.Node{
		{Kind: libhyper.SpiderNode, Index: 0},
		{Kind: libhyper.SpiderNode, Index: 1},
		{Kind: libhyper.InputNode, Index: 0},
		{Kind: libhyper.BoxNode, Index: 0},
		{Kind: libhyper.OutputNode, Index: 0},
	}, g.Nodes)

	require.Len(t, g.Edges, 4)
	box := libhyper.Node{Kind: libhyper.BoxNode, Index: 0}
	assert.Equal(t, libhyper.Edge{From: box, To: libhyper.Node{Kind: libhyper.SpiderNode, Index: 1}, Port: 0}, g.Edges[2])
	assert.True(t, g.Edges[1].Dom)
	assert.Equal(t, "output", g.Edges[3].From.Kind.String())

	// each spider's degree is its edge count
	degrees := make([]int, 2)
	for _, e := range g.Edges {
		degrees[e.To.Index]++
	}
	assert.Equal(t, libhyper.NewBox("f", x, y).Degrees(), degrees)
}
