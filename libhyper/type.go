package libhyper

import (
	"strings"

	"github.com/2x3systems/hypergraph/hyper"
	"github.com/pkg/errors"
)

// Atom is a basic label with an adjoint offset.
//
// Offset 0 is the plain object, positive offsets are iterated right adjoints
// and negative offsets iterated left adjoints.
type Atom struct {
	Label  string
	Offset int
}

func (a Atom) String() string {
	var b strings.Builder
	a.writeTo(&b)
	return b.String()
}

func (a Atom) writeTo(b *strings.Builder) {
	b.WriteString(a.Label)
	suffix := ".r"
	n := a.Offset
	if n < 0 {
		suffix = ".l"
		n = -n
	}
	for ; n > 0; n-- {
		b.WriteString(suffix)
	}
}

// Type is an immutable ordered sequence of atoms, i.e. an object of a rigid monoidal category.
// The zero value is the monoidal unit.
type Type struct {
	atoms []Atom
}

// Ty returns the Type made of the given basic labels, each with offset 0.
// Ty panics if a label is empty since that can only be a programming error.
func Ty(labels ...string) Type {
	atoms := make([]Atom, len(labels))
	for i, label := range labels {
		if label == "" {
			panic("libhyper: empty type label")
		}
		atoms[i] = Atom{Label: label}
	}
	return Type{atoms}
}

// TypeOf returns the Type made of the given atoms.
func TypeOf(atoms ...Atom) (Type, error) {
	for i, a := range atoms {
		if a.Label == "" {
			return Type{}, errors.Wrapf(hyper.ErrBadType, "atom %d has an empty label", i)
		}
	}
	return Type{append([]Atom(nil), atoms...)}, nil
}

// Types splits a whitespace separated list of names into one basic Type per name.
func Types(names string) []Type {
	fields := strings.Fields(names)
	types := make([]Type, len(fields))
	for i, name := range fields {
		types[i] = Ty(name)
	}
	return types
}

func (t Type) Len() int {
	return len(t.atoms)
}

func (t Type) IsEmpty() bool {
	return len(t.atoms) == 0
}

// Atom returns the i-th atom of t.
func (t Type) Atom(i int) Atom {
	return t.atoms[i]
}

// At returns the i-th atom of t as a single-atom Type.
func (t Type) At(i int) Type {
	return Type{t.atoms[i : i+1 : i+1]}
}

// Atoms returns a copy of the atoms of t.
func (t Type) Atoms() []Atom {
	return append([]Atom(nil), t.atoms...)
}

// Tensor returns t followed by each of the others.
func (t Type) Tensor(others ...Type) Type {
	n := len(t.atoms)
	for _, o := range others {
		n += len(o.atoms)
	}
	if n == len(t.atoms) {
		return t
	}
	atoms := make([]Atom, 0, n)
	atoms = append(atoms, t.atoms...)
	for _, o := range others {
		atoms = append(atoms, o.atoms...)
	}
	return Type{atoms}
}

// L returns the left adjoint of t: atoms reversed, each offset decremented.
func (t Type) L() Type {
	return t.adjoint(-1)
}

// R returns the right adjoint of t: atoms reversed, each offset incremented.
func (t Type) R() Type {
	return t.adjoint(+1)
}

func (t Type) adjoint(delta int) Type {
	n := len(t.atoms)
	if n == 0 {
		return t
	}
	atoms := make([]Atom, n)
	for i, a := range t.atoms {
		atoms[n-1-i] = Atom{Label: a.Label, Offset: a.Offset + delta}
	}
	return Type{atoms}
}

// Pow returns the n-fold tensor of t with itself; Pow(0) is the unit.
func (t Type) Pow(n int) Type {
	if n < 0 {
		panic("libhyper: negative type power")
	}
	atoms := make([]Atom, 0, n*len(t.atoms))
	for i := 0; i < n; i++ {
		atoms = append(atoms, t.atoms...)
	}
	return Type{atoms}
}

func (t Type) Equal(other Type) bool {
	if len(t.atoms) != len(other.atoms) {
		return false
	}
	for i, a := range t.atoms {
		if a != other.atoms[i] {
			return false
		}
	}
	return true
}

// IsAdjointTo returns true if t and other are each other's adjoints in either order,
// i.e. t.R() == other or t == other.R().
func (t Type) IsAdjointTo(other Type) bool {
	return t.R().Equal(other) || t.Equal(other.R())
}

// String renders t as "x @ y.r @ z.l.l"; the unit renders as "Ty()".
func (t Type) String() string {
	if len(t.atoms) == 0 {
		return "Ty()"
	}
	var b strings.Builder
	for i, a := range t.atoms {
		if i > 0 {
			b.WriteString(" @ ")
		}
		a.writeTo(&b)
	}
	return b.String()
}

// Key is the canonical string form of t, suitable as a map key.
func (t Type) Key() string {
	return t.String()
}
