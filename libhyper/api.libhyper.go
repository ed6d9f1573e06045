package libhyper

import (
	"strings"

	"github.com/2x3systems/hypergraph/hyper"
)

// OnDiagramHit is called for each diagram meeting a set of selection criteria.
// Returning false stops the selection.
type OnDiagramHit func(name string, d *Diagram) bool

// Catalog wraps a database of named diagram encodings.
type Catalog interface {

	// Returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	// Put stores d under the given name, replacing any diagram already stored under it.
	Put(name string, d *Diagram) error

	// Get returns the diagram stored under the given name or hyper.ErrNotFound.
	Get(name string) (*Diagram, error)

	// Delete removes the diagram stored under the given name or returns hyper.ErrNotFound.
	Delete(name string) error

	// Lookup returns the names of all stored diagrams Equal to d, in sorted order.
	Lookup(d *Diagram) ([]string, error)

	// Select fires the given callback with each stored diagram, in name order, that meets the selection criteria.
	Select(sel Selector, onHit OnDiagramHit) error

	// NumDiagrams is the number of diagrams stored.
	NumDiagrams() int64

	// Closes this catalog
	Close() error
}

// Selector specifies which diagrams in a Catalog are selected.
type Selector struct {
	Prefix   string         // only names beginning with Prefix
	Within   hyper.Category // only diagrams that live in this category (AnyCategory matches all)
	MaxBoxes int            // only diagrams with at most this many boxes (0 means no limit)
}

// DefaultSelector selects every diagram.
var DefaultSelector = Selector{}

// Accepts returns true if the named diagram meets the criteria of sel.
func (sel Selector) Accepts(name string, d *Diagram) bool {
	if !strings.HasPrefix(name, sel.Prefix) {
		return false
	}
	if sel.MaxBoxes > 0 && d.NumBoxes() > sel.MaxBoxes {
		return false
	}
	return d.Classify().Within(sel.Within)
}

// DiagramSet allows adding diagrams and reporting if an Equal diagram has already been added.
type DiagramSet interface {

	// TryAdd adds the given diagram if it is not already present.
	//
	// If a diagram Equal to d is already in this set, this call has no effect and TryAdd() returns false.
	// Otherwise d is added and TryAdd() returns true.
	//
	// After one or more calls to TryAdd(), call Close() for cleanup.
	TryAdd(d *Diagram) bool

	// Close removes all previously added items from this set.
	Close()
}
