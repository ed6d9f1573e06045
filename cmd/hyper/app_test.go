package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/2x3systems/hypergraph/hyper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd(nil)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeSignature(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "sig.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
types: [x, y, z, w]
boxes:
  - {name: f, dom: "x", cod: "x @ y"}
  - {name: g, dom: "y @ z", cod: "w"}
`), 0644))
	return path
}

func TestEval(t *testing.T) {
	out, err := execute(t, "eval", "Id(x)")
	require.NoError(t, err)
	assert.Equal(t, "Id(x): x -> x, boxes=0, n_spiders=1\n"+
		"  wires: [0, 0]\n"+
		"  monogamous=true hetero-monogamous=true progressive=true category=symmetric\n", out)

	sig := writeSignature(t)
	out, err = execute(t, "--signature", sig, "eval", "--box-wires", "f @ Id(z) >> Id(x) @ g")
	require.NoError(t, err)
	assert.Contains(t, out, "x @ z -> x @ w, boxes=2, n_spiders=5")
	assert.Contains(t, out, "box 1 g: y @ z -> w, wires [3, 1] -> [4]")
	assert.Contains(t, out, "category=symmetric")

	_, err = execute(t, "eval", "f")
	assert.ErrorIs(t, err, hyper.ErrUnknownBox)

	_, err = execute(t, "--signature", sig, "eval", "Id(q)")
	assert.ErrorIs(t, err, hyper.ErrBadType)
}

func TestEvalUnique(t *testing.T) {
	out, err := execute(t, "eval", "-u", "Id(x)", "Cap(x, x.r) @ Id(x) >> Id(x) @ Cup(x.r, x)", "Cup(x, x.r)")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "category="))
	assert.Contains(t, out, "category=compact-closed")
}

func TestEqual(t *testing.T) {
	out, err := execute(t, "equal", "Cap(x, x.r) @ Id(x) >> Id(x) @ Cup(x.r, x)", "Id(x)", "Spider(1, 1, x)")
	require.NoError(t, err)
	assert.Equal(t, "equal\n", out)

	_, err = execute(t, "equal", "Id(x)", "Id(y)")
	assert.Error(t, err)

	_, err = execute(t, "equal", "Id(x)")
	assert.Error(t, err)
}

func TestClasses(t *testing.T) {
	out, err := execute(t, "classes", "Id(x)", "Swap(x, y)", "Spider(1, 1, x)", "Swap(x, y) >> Swap(y, x)")
	require.NoError(t, err)
	assert.Equal(t, "0: \"Id(x)\", \"Spider(1, 1, x)\"\n"+
		"1: \"Swap(x, y)\"\n"+
		"2: \"Swap(x, y) >> Swap(y, x)\"\n", out)
}

func TestCatalogCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "db")
	sig := writeSignature(t)
	run := func(args ...string) string {
		out, err := execute(t, append([]string{"--catalog", db, "--signature", sig}, args...)...)
		require.NoError(t, err, "%v", args)
		return out
	}

	run("catalog", "put", "id", "Id(x)")
	run("catalog", "put", "snake", "Cap(x, x.r) @ Id(x) >> Id(x) @ Cup(x.r, x)")
	run("catalog", "put", "fg", "f @ Id(z) >> Id(x) @ g")
	run("catalog", "put", "cup", "Cup(x, x.r)")

	assert.Contains(t, run("catalog", "get", "fg"), "fg: x @ z -> x @ w, boxes=2, n_spiders=5")
	assert.Equal(t, "id\nsnake\n", run("catalog", "lookup", "Spider(1, 1, x)"))

	list := run("catalog", "list", "--within", "symmetric")
	assert.NotContains(t, list, "cup:")
	assert.Contains(t, list, "fg: Diagram(x @ z, x @ w, [f, g]")

	run("catalog", "rm", "snake", "cup")
	assert.Equal(t, "id\n", run("catalog", "lookup", "Id(x)"))
	assert.Equal(t, []string{"fg", "id"}, listNames(run("catalog", "list")))

	_, err := execute(t, "--catalog", db, "catalog", "get", "snake")
	assert.ErrorIs(t, err, hyper.ErrNotFound)

	_, err = execute(t, "--catalog", db, "--read-only", "catalog", "put", "id2", "Id(x)")
	assert.ErrorIs(t, err, hyper.ErrReadOnly)

	_, err = execute(t, "--catalog", db, "catalog", "list", "--within", "banana")
	assert.Error(t, err)
}

func listNames(out string) []string {
	var names []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		names = append(names, line[:strings.Index(line, ":")])
	}
	return names
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "hyper.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
types: [a]
boxes:
  - {name: k, dom: "a", cod: "a.r"}
`), 0644))

	out, err := execute(t, "-c", configPath, "eval", "k >> transpose(Id(a))")
	require.NoError(t, err)
	assert.Contains(t, out, "a -> a.r, boxes=1")

	_, err = execute(t, "-c", configPath, "--read-only", "eval", "k")
	assert.ErrorIs(t, err, hyper.ErrBadCatalogParam)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "hyper version "+Version+"\n", out)
}
