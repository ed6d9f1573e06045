package libhyper

// unionFind is a disjoint-set forest over 0..n-1 with path compression and union by rank.
type unionFind struct {
	parent []int
	rank   []byte
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{
		parent: make([]int, n),
		rank:   make([]byte, n),
	}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(u int) int {
	for uf.parent[u] != u {
		uf.parent[u] = uf.parent[uf.parent[u]]
		u = uf.parent[u]
	}
	return u
}

func (uf *unionFind) union(u, v int) {
	ru, rv := uf.find(u), uf.find(v)
	if ru == rv {
		return
	}
	switch {
	case uf.rank[ru] < uf.rank[rv]:
		uf.parent[ru] = rv
	case uf.rank[ru] > uf.rank[rv]:
		uf.parent[rv] = ru
	default:
		uf.parent[rv] = ru
		uf.rank[ru]++
	}
}
