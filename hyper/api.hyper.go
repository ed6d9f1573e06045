package hyper

// Category names the tamest kind of monoidal category a diagram can be drawn in.
//
// The categories form a chain: every Symmetric diagram is Traced, every Traced
// diagram is CompactClosed, and every diagram is Hypergraph.
type Category int32

const (
	AnyCategory   Category = 0 // zero value, matches every diagram in a selector
	Symmetric     Category = 1 // swaps only
	Traced        Category = 2 // swaps and feedback loops through boxes
	CompactClosed Category = 3 // swaps, cups and caps
	Hypergraph    Category = 4 // spiders of any degree
)

func (c Category) String() string {
	switch c {
	case AnyCategory:
		return "any"
	case Symmetric:
		return "symmetric"
	case Traced:
		return "traced"
	case CompactClosed:
		return "compact-closed"
	case Hypergraph:
		return "hypergraph"
	}
	return "unknown"
}

// Within returns true if a diagram living in c also lives in the given category.
func (c Category) Within(bound Category) bool {
	return bound == AnyCategory || c <= bound
}

// PrintOpts specifies what is printed when printing a diagram
type PrintOpts struct {
	Label       string // Prefix label
	Wires       bool   // If set, prints the port to spider wiring
	SpiderTypes bool   // If set, prints the type of each spider
	BoxWires    bool   // If set, prints each box with its dom and cod wires
	Predicates  bool   // If set, prints monogamy, hetero-monogamy, progressivity and the category
}

// DefaultPrintOpts{}
var DefaultPrintOpts = PrintOpts{
	Wires:      true,
	Predicates: true,
}

// CatalogOpts specifies params for opening a diagram catalog
type CatalogOpts struct {
	DbPathName string // omit for an in-memory db
	ReadOnly   bool   // open in read-only mode
}
