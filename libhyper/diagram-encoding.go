package libhyper

import (
	"github.com/2x3systems/hypergraph/hyper"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

// EncodingVersion leads every binary encoding of a diagram.
const EncodingVersion = 1

// MarshalBinary encodes d as a sequence of protobuf varints and length-prefixed strings:
//
//	version, dom, cod, len(boxes), {name, dom, cod, dagger}..., len(wires), wires..., n_spiders, spider types...
//
// where each type is its atom count followed by {label, zigzag offset} per atom.
func (d *Diagram) MarshalBinary() ([]byte, error) {
	buf := proto.NewBuffer(make([]byte, 0, 16+4*len(d.wires)))
	d.encode(buf, true)
	return buf.Bytes(), nil
}

// CanonicKey returns an encoding of d with the spider types left out, so that two
// diagrams have the same key exactly when they are Equal.
func (d *Diagram) CanonicKey() []byte {
	buf := proto.NewBuffer(make([]byte, 0, 16+2*len(d.wires)))
	d.encode(buf, false)
	return buf.Bytes()
}

// Encoding into a proto.Buffer only fails on a write to a closed stream, so errors are dropped.
func (d *Diagram) encode(buf *proto.Buffer, withSpiderTypes bool) {
	buf.EncodeVarint(EncodingVersion)
	encodeType(buf, d.dom)
	encodeType(buf, d.cod)

	buf.EncodeVarint(uint64(len(d.boxes)))
	for _, box := range d.boxes {
		buf.EncodeStringBytes(box.name)
		encodeType(buf, box.dom)
		encodeType(buf, box.cod)
		if box.dagger {
			buf.EncodeVarint(1)
		} else {
			buf.EncodeVarint(0)
		}
	}

	buf.EncodeVarint(uint64(len(d.wires)))
	for _, spider := range d.wires {
		buf.EncodeVarint(uint64(spider))
	}

	buf.EncodeVarint(uint64(len(d.spiderTypes)))
	if withSpiderTypes {
		for _, typ := range d.spiderTypes {
			encodeType(buf, typ)
		}
	}
}

func encodeType(buf *proto.Buffer, t Type) {
	buf.EncodeVarint(uint64(len(t.atoms)))
	for _, atom := range t.atoms {
		buf.EncodeStringBytes(atom.Label)
		buf.EncodeZigzag64(uint64(atom.Offset))
	}
}

// UnmarshalDiagram decodes a diagram written by MarshalBinary and checks it as NewDiagram does.
func UnmarshalDiagram(src []byte) (*Diagram, error) {
	dec := decoder{
		buf:   proto.NewBuffer(src),
		limit: uint64(len(src)),
	}
	if vers := dec.varint(); dec.err == nil && vers != EncodingVersion {
		return nil, errors.Wrapf(hyper.ErrBadEncoding, "unsupported version %d", vers)
	}

	dom := dec.typ()
	cod := dec.typ()

	var boxes []Box
	if n := dec.count(); n > 0 {
		boxes = make([]Box, n)
		for i := range boxes {
			boxes[i] = Box{
				name: dec.str(),
				dom:  dec.typ(),
				cod:  dec.typ(),
			}
			boxes[i].dagger = dec.varint() != 0
		}
	}

	wires := make([]int, dec.count())
	for i := range wires {
		wires[i] = int(dec.varint())
	}

	spiderTypes := make([]Type, dec.count())
	for i := range spiderTypes {
		spiderTypes[i] = dec.typ()
	}
	if dec.err != nil {
		return nil, dec.err
	}

	d, err := NewDiagram(dom, cod, boxes, wires, WithSpiderTypes(spiderTypes))
	if err != nil {
		return nil, errors.Wrapf(hyper.ErrBadEncoding, "%v", err)
	}
	return d, nil
}

// decoder holds onto the first error so callers can check once at the end.
type decoder struct {
	buf   *proto.Buffer
	limit uint64
	err   error
}

func (dec *decoder) fail(err error) {
	if dec.err == nil {
		dec.err = errors.Wrapf(hyper.ErrBadEncoding, "%v", err)
	}
}

func (dec *decoder) varint() uint64 {
	if dec.err != nil {
		return 0
	}
	x, err := dec.buf.DecodeVarint()
	if err != nil {
		dec.fail(err)
	}
	return x
}

// count reads a length, which can never exceed the number of input bytes.
func (dec *decoder) count() int {
	n := dec.varint()
	if n > dec.limit {
		dec.fail(errors.Errorf("length %d exceeds input size", n))
		return 0
	}
	return int(n)
}

func (dec *decoder) str() string {
	if dec.err != nil {
		return ""
	}
	s, err := dec.buf.DecodeStringBytes()
	if err != nil {
		dec.fail(err)
	}
	return s
}

func (dec *decoder) typ() Type {
	n := dec.count()
	if n == 0 {
		return Type{}
	}
	atoms := make([]Atom, n)
	for i := range atoms {
		atoms[i].Label = dec.str()
		if dec.err != nil {
			return Type{}
		}
		offset, err := dec.buf.DecodeZigzag64()
		if err != nil {
			dec.fail(err)
			return Type{}
		}
		atoms[i].Offset = int(int64(offset))
	}
	t, err := TypeOf(atoms...)
	if err != nil {
		dec.fail(err)
	}
	return t
}
