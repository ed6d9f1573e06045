package libhyper

import (
	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
)

func NewDiagramSet() DiagramSet {
	return &diagramSet{}
}

type diagramSet struct {
	lsmSet
}

func (set *diagramSet) TryAdd(d *Diagram) bool {
	return set.tryAdd(d.CanonicKey())
}

// lsmSet is a set of byte keys backed by an in-memory badger db opened on first use.
type lsmSet struct {
	db *badger.DB
}

// autoOpen opens the backing db unless already open.
// It panics if badger cannot open an in-memory db.
func (set *lsmSet) autoOpen() {
	if set.db != nil {
		return
	}
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil).
		WithMetricsEnabled(false)

	db, err := badger.Open(opts)
	if err != nil {
		panic(errors.Wrap(err, "diagram set"))
	}
	set.db = db
}

func (set *lsmSet) tryAdd(key []byte) bool {
	set.autoOpen()

	added := false
	err := set.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			added = true
			return txn.Set(key, nil)
		}
		return err
	})
	if err != nil {
		panic(errors.Wrap(err, "diagram set"))
	}
	return added
}

// Close releases the backing db; the set may be reused and reopens on the next add.
func (set *lsmSet) Close() {
	if set.db == nil {
		return
	}
	set.db.Close()
	set.db = nil
}
