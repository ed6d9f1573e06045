package libhyper

import (
	"os"
	"regexp"
	"sort"

	"github.com/2x3systems/hypergraph/hyper"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Signature declares the basic types and named boxes that diagram expressions may refer to.
//
//	types: [x, y, z, w]
//	boxes:
//	  - {name: f, dom: x, cod: x @ y}
//	  - {name: g, dom: y @ z, cod: w}
//
// An empty Types list accepts any basic label. An empty dom or cod is the unit.
type Signature struct {
	Types []string  `yaml:"types,omitempty"`
	Boxes []BoxDecl `yaml:"boxes,omitempty"`

	boxes map[string]Box
}

// BoxDecl is the declared name and boundary of a box.
type BoxDecl struct {
	Name string `yaml:"name"`
	Dom  string `yaml:"dom"`
	Cod  string `yaml:"cod"`
}

var boxNameRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// NewSignature returns an empty signature over the given basic types.
func NewSignature(types ...string) *Signature {
	return &Signature{
		Types: append([]string(nil), types...),
		boxes: make(map[string]Box),
	}
}

// ParseSignature reads a YAML signature and resolves its box declarations.
func ParseSignature(src []byte) (*Signature, error) {
	sig := NewSignature()
	if err := yaml.Unmarshal(src, sig); err != nil {
		return nil, errors.Wrap(err, "signature")
	}
	if err := sig.compile(); err != nil {
		return nil, err
	}
	return sig, nil
}

// LoadSignature reads a YAML signature from the given file.
func LoadSignature(pathname string) (*Signature, error) {
	src, err := os.ReadFile(pathname)
	if err != nil {
		return nil, err
	}
	sig, err := ParseSignature(src)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", pathname)
	}
	return sig, nil
}

func (sig *Signature) compile() error {
	decls := sig.Boxes
	sig.Boxes = nil
	sig.boxes = make(map[string]Box, len(decls))
	return sig.Declare(decls...)
}

// Declare parses the boundary of each declaration against sig and adds the resulting boxes.
func (sig *Signature) Declare(decls ...BoxDecl) error {
	for _, decl := range decls {
		dom, err := sig.parseBoundary(decl.Dom)
		if err != nil {
			return errors.Wrapf(err, "box %q dom", decl.Name)
		}
		cod, err := sig.parseBoundary(decl.Cod)
		if err != nil {
			return errors.Wrapf(err, "box %q cod", decl.Name)
		}
		if err = sig.AddBox(MakeBox(decl.Name, dom, cod)); err != nil {
			return err
		}
	}
	return nil
}

func (sig *Signature) parseBoundary(expr string) (Type, error) {
	if expr == "" {
		return Type{}, nil
	}
	return ParseType(expr, sig)
}

// AddBox declares box, whose basic types must be declared by sig.
func (sig *Signature) AddBox(box Box) error {
	name := box.Name()
	if !boxNameRE.MatchString(name) || reservedWords[name] {
		return errors.Wrapf(hyper.ErrBadExpr, "%q cannot name a box", name)
	}
	if _, exists := sig.boxes[name]; exists {
		return errors.Wrapf(hyper.ErrDuplicateBox, "%q", name)
	}
	for _, typ := range []Type{box.Dom(), box.Cod()} {
		for _, atom := range typ.atoms {
			if !sig.declares(atom.Label) {
				return errors.Wrapf(hyper.ErrBadType, "box %q uses undeclared basic type %q", name, atom.Label)
			}
		}
	}
	if sig.boxes == nil {
		sig.boxes = make(map[string]Box)
	}
	sig.boxes[name] = box
	sig.Boxes = append(sig.Boxes, BoxDecl{
		Name: name,
		Dom:  boundaryString(box.Dom()),
		Cod:  boundaryString(box.Cod()),
	})
	return nil
}

func boundaryString(t Type) string {
	if t.IsEmpty() {
		return ""
	}
	return t.String()
}

// Box returns the declared box with the given name.
func (sig *Signature) Box(name string) (Box, error) {
	box, found := sig.boxes[name]
	if !found {
		return Box{}, errors.Wrapf(hyper.ErrUnknownBox, "%q", name)
	}
	return box, nil
}

// BoxNames returns the declared box names in sorted order.
func (sig *Signature) BoxNames() []string {
	names := make([]string, 0, len(sig.boxes))
	for name := range sig.boxes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge adds the types and boxes of other to sig.
// If either signature accepts any basic label, so does the merged one.
func (sig *Signature) Merge(other *Signature) error {
	if other == nil {
		return nil
	}
	if len(sig.Types) > 0 && len(other.Types) > 0 {
		for _, label := range other.Types {
			if !sig.declares(label) {
				sig.Types = append(sig.Types, label)
			}
		}
	} else {
		sig.Types = nil
	}
	for _, decl := range other.Boxes {
		if err := sig.AddBox(other.boxes[decl.Name]); err != nil {
			return err
		}
	}
	return nil
}

func (sig *Signature) declares(label string) bool {
	if len(sig.Types) == 0 {
		return true
	}
	for _, declared := range sig.Types {
		if declared == label {
			return true
		}
	}
	return false
}
