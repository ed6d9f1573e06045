package libhyper_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/2x3systems/hypergraph/hyper"
	"github.com/2x3systems/hypergraph/libhyper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSignatureYAML = `
types: [x, y, z, w]
boxes:
  - {name: f, dom: "x", cod: "x @ y"}
  - {name: g, dom: "y @ z", cod: "w"}
  - {name: state, cod: "x.r"}
`

func TestParseSignature(t *testing.T) {
	sig, err := libhyper.ParseSignature([]byte(testSignatureYAML))
	require.NoError(t, err)
	assert.Equal(t, []string{"f", "g", "state"}, sig.BoxNames())

	g, err := sig.Box("g")
	require.NoError(t, err)
	assert.Equal(t, "y @ z", g.Dom().String())
	assert.Equal(t, "w", g.Cod().String())

	state, err := sig.Box("state")
	require.NoError(t, err)
	assert.True(t, state.Dom().IsEmpty())
	assert.True(t, state.Cod().Equal(x.R()))

	_, err = sig.Box("h")
	assert.ErrorIs(t, err, hyper.ErrUnknownBox)

	d, err := libhyper.ParseDiagram("state >> transpose(Id(x))", sig)
	require.NoError(t, err)
	assert.True(t, d.Cod().Equal(x.R()))
}

func TestSignatureErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"duplicate", "boxes: [{name: f, dom: x, cod: x}, {name: f, dom: x, cod: x}]", hyper.ErrDuplicateBox},
		{"undeclared type", "types: [x]\nboxes: [{name: f, dom: x, cod: y}]", hyper.ErrBadType},
		{"bad type", "boxes: [{name: f, dom: 'x @', cod: x}]", hyper.ErrBadType},
		{"reserved name", "boxes: [{name: Cup, dom: x, cod: x}]", hyper.ErrBadExpr},
		{"bad name", "boxes: [{name: 'f g', dom: x, cod: x}]", hyper.ErrBadExpr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := libhyper.ParseSignature([]byte(tt.src))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := libhyper.ParseSignature([]byte("types: {"))
	assert.Error(t, err)
}

func TestLoadSignature(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sig.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSignatureYAML), 0644))

	sig, err := libhyper.LoadSignature(path)
	require.NoError(t, err)
	assert.Len(t, sig.BoxNames(), 3)

	_, err = libhyper.LoadSignature(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSignatureMerge(t *testing.T) {
	sig := libhyper.NewSignature("x", "y")
	require.NoError(t, sig.Declare(libhyper.BoxDecl{Name: "f", Dom: "x", Cod: "y"}))

	other := libhyper.NewSignature("z")
	require.NoError(t, other.Declare(libhyper.BoxDecl{Name: "k", Dom: "z"}))

	require.NoError(t, sig.Merge(other))
	assert.Equal(t, []string{"x", "y", "z"}, sig.Types)
	assert.Equal(t, []string{"f", "k"}, sig.BoxNames())
	assert.ErrorIs(t, sig.Merge(other), hyper.ErrDuplicateBox)

	// an open signature stays open
	open := libhyper.NewSignature()
	require.NoError(t, open.Merge(other))
	assert.Empty(t, open.Types)
	_, err := libhyper.ParseType("q", open)
	assert.NoError(t, err)
}
