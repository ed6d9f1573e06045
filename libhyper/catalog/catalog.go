package catalog

import (
	"runtime"
	"sync"

	"github.com/2x3systems/hypergraph/hyper"
	"github.com/2x3systems/hypergraph/libhyper"
	"github.com/dgraph-io/badger/v3"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

/***

Catalog database format:

	gCatalogStateKey => catalogState (MajorVers, MinorVers, NumDiagrams as varints)

	kNamePrefix, Name
		=> diagram encoding (libhyper.Diagram.MarshalBinary)

	kIndexPrefix, len(CanonicKey) varint, CanonicKey, Name
		=> nil

The index allows finding every name holding a diagram Equal to a given one with a
single prefix scan. Since the canonic key is length-prefixed, no key of the index
is a prefix of an entry for a different diagram.

***/

const (
	kNamePrefix  byte = 0x01
	kIndexPrefix byte = 0x02

	kMajorVers = 2026
	kMinorVers = 1
)

var (
	gCatalogStateKey = []byte{0x00, 0x00, 0x01}
)

type catalogState struct {
	MajorVers   uint64
	MinorVers   uint64
	NumDiagrams uint64
}

func (state *catalogState) Marshal() []byte {
	buf := proto.NewBuffer(make([]byte, 0, 16))
	buf.EncodeVarint(state.MajorVers)
	buf.EncodeVarint(state.MinorVers)
	buf.EncodeVarint(state.NumDiagrams)
	return buf.Bytes()
}

func (state *catalogState) Unmarshal(src []byte) error {
	buf := proto.NewBuffer(src)
	var err error
	for _, field := range []*uint64{&state.MajorVers, &state.MinorVers, &state.NumDiagrams} {
		if *field, err = buf.DecodeVarint(); err != nil {
			return errors.Wrap(hyper.ErrBadEncoding, "catalog state")
		}
	}
	return nil
}

// catalog is a badger db of named diagrams
type catalog struct {
	mu         sync.Mutex
	readOnly   bool
	stateDirty bool
	state      catalogState
	db         *badger.DB
}

// OpenCatalog opens a new or existing diagram catalog. If opts.DbPathName is empty, the catalog is held in memory.
func OpenCatalog(opts hyper.CatalogOpts) (libhyper.Catalog, error) {
	cat := &catalog{
		readOnly: opts.ReadOnly,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(hyper.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = !cat.readOnly
		cat.state = catalogState{
			MajorVers: kMajorVers,
			MinorVers: kMinorVers,
		}
	}
	if err == nil && (cat.state.MajorVers != kMajorVers || cat.state.MinorVers != kMinorVers) {
		err = errors.Wrapf(hyper.ErrBadCatalogParam, "catalog version %d.%d is incompatible", cat.state.MajorVers, cat.state.MinorVers)
	}
	if err != nil {
		cat.Close()
		return nil, err
	}

	klog.V(2).Infof("opened catalog %q with %d diagrams", opts.DbPathName, cat.state.NumDiagrams)
	return cat, nil
}

func (cat *catalog) loadState() error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err == nil {
			err = item.Value(func(val []byte) error {
				return cat.state.Unmarshal(val)
			})
		}
		return err
	})
}

func (cat *catalog) flushState() error {
	if !cat.stateDirty {
		return nil
	}
	err := cat.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gCatalogStateKey, cat.state.Marshal())
	})
	if err == nil {
		cat.stateDirty = false
	}
	return err
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

func (cat *catalog) NumDiagrams() int64 {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	return int64(cat.state.NumDiagrams)
}

func nameKey(name string) []byte {
	key := make([]byte, 0, 1+len(name))
	key = append(key, kNamePrefix)
	return append(key, name...)
}

func indexPrefix(canonic []byte) []byte {
	buf := proto.NewBuffer(make([]byte, 0, 8+len(canonic)))
	buf.EncodeRawBytes(canonic)
	return append([]byte{kIndexPrefix}, buf.Bytes()...)
}

func indexKey(canonic []byte, name string) []byte {
	return append(indexPrefix(canonic), name...)
}

func (cat *catalog) Put(name string, d *libhyper.Diagram) error {
	if cat.readOnly {
		return hyper.ErrReadOnly
	}
	if d == nil {
		return hyper.ErrNilDiagram
	}
	if name == "" {
		return errors.Wrap(hyper.ErrBadCatalogParam, "diagram name must not be empty")
	}
	val, err := d.MarshalBinary()
	if err != nil {
		return err
	}

	cat.mu.Lock()
	defer cat.mu.Unlock()

	added := false
	err = cat.db.Update(func(txn *badger.Txn) error {
		prev, err := getDiagram(txn, name)
		switch {
		case err == nil:
			if err = txn.Delete(indexKey(prev.CanonicKey(), name)); err != nil {
				return err
			}
		case errors.Is(err, hyper.ErrNotFound):
			added = true
		default:
			return err
		}
		if err = txn.Set(nameKey(name), val); err != nil {
			return err
		}
		return txn.Set(indexKey(d.CanonicKey(), name), nil)
	})
	if err != nil {
		return errors.Wrapf(err, "put %q", name)
	}

	if added {
		cat.state.NumDiagrams++
		cat.stateDirty = true
	}
	klog.V(2).Infof("put %q: %v", name, d)
	return nil
}

func getDiagram(txn *badger.Txn, name string) (*libhyper.Diagram, error) {
	item, err := txn.Get(nameKey(name))
	if err == badger.ErrKeyNotFound {
		return nil, errors.Wrapf(hyper.ErrNotFound, "%q", name)
	}
	if err != nil {
		return nil, err
	}
	var d *libhyper.Diagram
	err = item.Value(func(val []byte) error {
		d, err = libhyper.UnmarshalDiagram(val)
		return err
	})
	return d, err
}

func (cat *catalog) Get(name string) (*libhyper.Diagram, error) {
	var d *libhyper.Diagram
	err := cat.db.View(func(txn *badger.Txn) error {
		var err error
		d, err = getDiagram(txn, name)
		return err
	})
	return d, err
}

func (cat *catalog) Delete(name string) error {
	if cat.readOnly {
		return hyper.ErrReadOnly
	}

	cat.mu.Lock()
	defer cat.mu.Unlock()

	err := cat.db.Update(func(txn *badger.Txn) error {
		prev, err := getDiagram(txn, name)
		if err != nil {
			return err
		}
		if err = txn.Delete(indexKey(prev.CanonicKey(), name)); err != nil {
			return err
		}
		return txn.Delete(nameKey(name))
	})
	if err != nil {
		return err
	}

	cat.state.NumDiagrams--
	cat.stateDirty = true
	klog.V(2).Infof("deleted %q", name)
	return nil
}

func (cat *catalog) Lookup(d *libhyper.Diagram) ([]string, error) {
	if d == nil {
		return nil, hyper.ErrNilDiagram
	}
	prefix := indexPrefix(d.CanonicKey())

	var names []string
	err := cat.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			Prefix: prefix,
		})
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().Key()
			names = append(names, string(key[len(prefix):]))
		}
		return nil
	})
	return names, err
}

// Select will call onHit() with all diagrams matching the given search criteria.
//
// Enumeration stops when there are no more matches or if onHit() returns false.
func (cat *catalog) Select(sel libhyper.Selector, onHit libhyper.OnDiagramHit) error {
	prefix := nameKey(sel.Prefix)

	return cat.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			PrefetchValues: true,
			PrefetchSize:   100,
			Prefix:         prefix,
		})
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			name := string(item.Key()[1:])

			var d *libhyper.Diagram
			err := item.Value(func(val []byte) error {
				var err error
				d, err = libhyper.UnmarshalDiagram(val)
				return err
			})
			if err != nil {
				return errors.Wrapf(err, "%q", name)
			}
			if sel.Accepts(name, d) && !onHit(name, d) {
				break
			}
		}
		return nil
	})
}

func (cat *catalog) Close() error {
	cat.mu.Lock()
	defer cat.mu.Unlock()

	var err error
	if cat.db != nil {
		err = cat.flushState()
		if closeErr := cat.db.Close(); err == nil {
			err = closeErr
		}
		cat.db = nil
	}
	return err
}
