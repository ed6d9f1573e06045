package libhyper_test

import (
	"testing"

	"github.com/2x3systems/hypergraph/hyper"
	"github.com/2x3systems/hypergraph/libhyper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSignature(t *testing.T) *libhyper.Signature {
	sig := libhyper.NewSignature("x", "y", "z", "w")
	require.NoError(t, sig.AddBox(libhyper.MakeBox("f", x, x.Tensor(y))))
	require.NoError(t, sig.AddBox(libhyper.MakeBox("g", y.Tensor(z), w)))
	require.NoError(t, sig.AddBox(libhyper.MakeBox("h", x.R(), x.R())))
	return sig
}

func TestParseDiagram(t *testing.T) {
	sig := testSignature(t)
	f := libhyper.NewBox("f", x, x.Tensor(y))
	g := libhyper.NewBox("g", y.Tensor(z), w)
	h := libhyper.NewBox("h", x.R(), x.R())

	tests := []struct {
		expr string
		want *libhyper.Diagram
	}{
		{"f", f},
		{"f @ Id(z) >> Id(x) @ g", mustThen(t, f.Tensor(libhyper.Id(z)), libhyper.Id(x).Tensor(g))},
		{"Id(x @ y)", libhyper.Id(x.Tensor(y))},
		{"Id(Ty())", libhyper.Id(libhyper.Ty())},
		{"Swap(x @ y, z)", libhyper.Swap(x.Tensor(y), z)},
		{"Spider(1, 2, x)", libhyper.Spider(1, 2, x)},
		{"Spider(0,0,x@y)", libhyper.Spider(0, 0, x.Tensor(y))},
		{"Cap(x, x.r) @ Id(x) >> Id(x) @ Cup(x.r, x)", libhyper.Id(x)},
		{"dagger(f)", f.Dagger()},
		{"dagger(f >> dagger(f))", mustThen(t, f, f.Dagger()).Dagger()},
		{"transpose(Id(x))", libhyper.Id(x.R())},
		{"Cap(x, x.r) >> Id(x) @ (h >> dagger(h)) >> Cup(x, x.r)",
			mustThen(t, mustCap(t, x, x.R()), libhyper.Id(x).Tensor(mustThen(t, h, h.Dagger())), mustCup(t, x, x.R()))},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			d, err := libhyper.ParseDiagram(tt.expr, sig)
			require.NoError(t, err)
			assert.True(t, d.Equal(tt.want), "got %v, want %v", d, tt.want)
		})
	}
}

func TestParseDiagramErrors(t *testing.T) {
	sig := testSignature(t)

	tests := []struct {
		expr string
		want error
	}{
		{"", hyper.ErrBadExpr},
		{"f >>", hyper.ErrBadExpr},
		{"Id(x", hyper.ErrBadExpr},
		{"(f) >> (f.r)", hyper.ErrBadExpr},
		{"Spider(-1, 0, x)", hyper.ErrBadExpr},
		{"Spider(9223372036854775807, 1, x)", hyper.ErrBadExpr},
		{"Spider(4611686018427387904, 0, x @ x)", hyper.ErrBadExpr},
		{"Spider(40000, 40000, x)", hyper.ErrBadExpr},
		{"Spider(99999999999999999999, 0, x)", hyper.ErrBadExpr},
		{"nope", hyper.ErrUnknownBox},
		{"Id(q)", hyper.ErrBadType},
		{"Id(Id)", hyper.ErrBadType},
		{"Cup(x, y)", hyper.ErrAxiom},
		{"f >> f", hyper.ErrAxiom},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := libhyper.ParseDiagram(tt.expr, sig)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	// without a signature any basic type is accepted, but no box is known
	d, err := libhyper.ParseDiagram("Id(q @ q.l)", nil)
	require.NoError(t, err)
	assert.Equal(t, "q @ q.l", d.Dom().String())

	d, err = libhyper.ParseDiagram("Spider(65535, 1, x)", nil)
	require.NoError(t, err)
	assert.Equal(t, libhyper.MaxSpiderPorts, d.NumPorts())

	_, err = libhyper.ParseDiagram("f", nil)
	assert.ErrorIs(t, err, hyper.ErrUnknownBox)
}

func TestParseType(t *testing.T) {
	typ, err := libhyper.ParseType("x.r.r @ y.l", nil)
	require.NoError(t, err)
	require.Equal(t, 2, typ.Len())
	assert.Equal(t, libhyper.Atom{Label: "x", Offset: 2}, typ.Atom(0))
	assert.Equal(t, libhyper.Atom{Label: "y", Offset: -1}, typ.Atom(1))
	assert.Equal(t, "x.r.r @ y.l", typ.String())

	// adjoints cancel
	typ, err = libhyper.ParseType("x.r.l", nil)
	require.NoError(t, err)
	assert.True(t, typ.Equal(x))

	typ, err = libhyper.ParseType("Ty()", nil)
	require.NoError(t, err)
	assert.True(t, typ.IsEmpty())

	_, err = libhyper.ParseType("x @", nil)
	assert.ErrorIs(t, err, hyper.ErrBadType)

	_, err = libhyper.ParseType("v", libhyper.NewSignature("x"))
	assert.ErrorIs(t, err, hyper.ErrBadType)
}
