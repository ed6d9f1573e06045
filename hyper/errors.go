package hyper

import "errors"

// Errors
var (
	ErrShape           = errors.New("wire count does not match port count")
	ErrTypeConsistency = errors.New("ports sharing a spider have different types")
	ErrAxiom           = errors.New("axiom violated")
	ErrBadType         = errors.New("bad type")
	ErrBadExpr         = errors.New("bad diagram expression")
	ErrUnknownBox      = errors.New("unknown box")
	ErrDuplicateBox    = errors.New("box declared more than once")
	ErrBadEncoding     = errors.New("bad diagram encoding")
	ErrBadCatalogParam = errors.New("bad catalog param")
	ErrNotFound        = errors.New("diagram not found")
	ErrNilDiagram      = errors.New("nil diagram")
	ErrReadOnly        = errors.New("catalog is read-only")
)
