package libhyper

import (
	"fmt"
	"io"
	"strings"

	"github.com/2x3systems/hypergraph/hyper"
)

var newline = []byte("\n")

func (d *Diagram) Println(prefix string) {
	var b strings.Builder
	d.WriteAsString(&b, hyper.PrintOpts{
		Label: prefix,
	})
	fmt.Print(b.String())
}

// WriteAsString writes a one-line summary of d followed by whatever opts asks for, one entry per line.
func (d *Diagram) WriteAsString(out io.Writer, opts hyper.PrintOpts) {
	if opts.Label != "" {
		fmt.Fprintf(out, "%s ", opts.Label)
	}
	fmt.Fprintf(out, "%v -> %v, boxes=%d, n_spiders=%d", d.dom, d.cod, len(d.boxes), d.NSpiders())
	if n := d.NumScalarSpiders(); n > 0 {
		fmt.Fprintf(out, " (%d scalar)", n)
	}
	out.Write(newline)

	if opts.Wires {
		var b strings.Builder
		writeInts(&b, d.wires)
		fmt.Fprintf(out, "  wires: %s\n", b.String())
	}
	if opts.SpiderTypes {
		fmt.Fprintf(out, "  spider types:")
		for id, typ := range d.spiderTypes {
			fmt.Fprintf(out, " %d:%v", id, typ)
		}
		out.Write(newline)
	}
	if opts.BoxWires {
		for bi, bw := range d.boxWires() {
			var dom, cod strings.Builder
			writeInts(&dom, bw.Dom)
			writeInts(&cod, bw.Cod)
			box := d.boxes[bi]
			fmt.Fprintf(out, "  box %d %v: %v -> %v, wires %s -> %s\n", bi, box, box.dom, box.cod, dom.String(), cod.String())
		}
	}
	if opts.Predicates {
		fmt.Fprintf(out, "  monogamous=%v hetero-monogamous=%v progressive=%v category=%v\n",
			d.IsMonogamous(), d.IsHeteroMonogamous(), d.IsProgressive(), d.Classify())
	}
}
