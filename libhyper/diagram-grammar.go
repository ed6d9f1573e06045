package libhyper

import (
	"github.com/2x3systems/hypergraph/hyper"
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// DiagramExpr is a sequential composition of tensor expressions, e.g.
//
//	f @ Id(z) >> Id(x) @ g
//	Cap(x, x.r) >> Id(x) @ (h >> dagger(h)) >> Cup(x, x.r)
//
// where ">>" binds looser than "@".
type DiagramExpr struct {
	Head *TensorExpr   `@@`
	Tail []*TensorExpr `( ">>" @@ )*`
}

type TensorExpr struct {
	Head *TermExpr   `@@`
	Tail []*TermExpr `( "@" @@ )*`
}

type TermExpr struct {
	Id        *TypeExpr    `  "Id" "(" @@ ")"`
	Swap      *TypePair    `| "Swap" "(" @@ ")"`
	Spider    *SpiderArgs  `| "Spider" "(" @@ ")"`
	Cup       *TypePair    `| "Cup" "(" @@ ")"`
	Cap       *TypePair    `| "Cap" "(" @@ ")"`
	Dagger    *DiagramExpr `| "dagger" "(" @@ ")"`
	Transpose *DiagramExpr `| "transpose" "(" @@ ")"`
	Group     *DiagramExpr `| "(" @@ ")"`
	Box       string       `| @Ident`
}

type TypePair struct {
	Left  *TypeExpr `@@ ","`
	Right *TypeExpr `@@`
}

type SpiderArgs struct {
	In   int       `@Int ","`
	Out  int       `@Int ","`
	Type *TypeExpr `@@`
}

// TypeExpr is either the unit "Ty()" or atoms joined by "@", e.g. "n.r @ s @ n.l".
type TypeExpr struct {
	Unit  bool        `  @( "Ty" "(" ")" )`
	Atoms []*TypeAtom `| @@ ( "@" @@ )*`
}

type TypeAtom struct {
	Label    string   `@Ident`
	Adjoints []string `( "." @( "l" | "r" ) )*`
}

var sDiagramLexer = lexer.MustSimple([]lexer.SimpleRule{
	{"Compose", `>>`},
	{"Ident", `[A-Za-z_][A-Za-z0-9_]*`},
	{"Int", `[0-9]+`},
	{"Punct", `[@(),.]`},
	{"whitespace", `[ \t\r\n]+`},
})

var (
	parseDiagramExpr = participle.MustBuild[DiagramExpr](
		participle.Lexer(sDiagramLexer),
		participle.Elide("whitespace"),
	)
	parseTypeExpr = participle.MustBuild[TypeExpr](
		participle.Lexer(sDiagramLexer),
		participle.Elide("whitespace"),
	)
)

// MaxSpiderPorts bounds the number of ports a parsed Spider may have.
const MaxSpiderPorts = 1 << 16

// Words reserved by the grammar; they cannot name boxes or basic types.
var reservedWords = map[string]bool{
	"Id":        true,
	"Swap":      true,
	"Spider":    true,
	"Cup":       true,
	"Cap":       true,
	"Ty":        true,
	"dagger":    true,
	"transpose": true,
}

// ParseDiagram builds the diagram denoted by expr, resolving box names with sig.
// A nil sig knows no boxes and accepts any basic type.
func ParseDiagram(expr string, sig *Signature) (*Diagram, error) {
	ast, err := parseDiagramExpr.ParseString("", expr)
	if err != nil {
		return nil, errors.Wrapf(hyper.ErrBadExpr, "%q: %v", expr, err)
	}
	db := diagramBuilder{sig: sig}
	return db.diagram(ast)
}

// ParseType reads a type such as "x @ y.r" or "Ty()", checking basic labels against sig if given.
func ParseType(expr string, sig *Signature) (Type, error) {
	ast, err := parseTypeExpr.ParseString("", expr)
	if err != nil {
		return Type{}, errors.Wrapf(hyper.ErrBadType, "%q: %v", expr, err)
	}
	db := diagramBuilder{sig: sig}
	return db.typ(ast)
}

type diagramBuilder struct {
	sig *Signature
}

func (db *diagramBuilder) diagram(expr *DiagramExpr) (*Diagram, error) {
	d, err := db.tensor(expr.Head)
	if err != nil {
		return nil, err
	}
	for _, part := range expr.Tail {
		next, err := db.tensor(part)
		if err != nil {
			return nil, err
		}
		if d, err = d.Then(next); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (db *diagramBuilder) tensor(expr *TensorExpr) (*Diagram, error) {
	d, err := db.term(expr.Head)
	if err != nil {
		return nil, err
	}
	for _, part := range expr.Tail {
		next, err := db.term(part)
		if err != nil {
			return nil, err
		}
		d = d.Tensor(next)
	}
	return d, nil
}

func (db *diagramBuilder) term(expr *TermExpr) (*Diagram, error) {
	switch {
	case expr.Id != nil:
		typ, err := db.typ(expr.Id)
		if err != nil {
			return nil, err
		}
		return Id(typ), nil

	case expr.Swap != nil:
		left, right, err := db.pair(expr.Swap)
		if err != nil {
			return nil, err
		}
		return Swap(left, right), nil

	case expr.Spider != nil:
		typ, err := db.typ(expr.Spider.Type)
		if err != nil {
			return nil, err
		}
		in, out := expr.Spider.In, expr.Spider.Out
		if in > MaxSpiderPorts || out > MaxSpiderPorts || (in+out)*typ.Len() > MaxSpiderPorts {
			return nil, errors.Wrapf(hyper.ErrBadExpr, "Spider(%d, %d, %v) exceeds %d ports", in, out, typ, MaxSpiderPorts)
		}
		return Spider(in, out, typ), nil

	case expr.Cup != nil:
		left, right, err := db.pair(expr.Cup)
		if err != nil {
			return nil, err
		}
		return Cup(left, right)

	case expr.Cap != nil:
		left, right, err := db.pair(expr.Cap)
		if err != nil {
			return nil, err
		}
		return Cap(left, right)

	case expr.Dagger != nil:
		d, err := db.diagram(expr.Dagger)
		if err != nil {
			return nil, err
		}
		return d.Dagger(), nil

	case expr.Transpose != nil:
		d, err := db.diagram(expr.Transpose)
		if err != nil {
			return nil, err
		}
		return d.Transpose(), nil

	case expr.Group != nil:
		return db.diagram(expr.Group)
	}

	if db.sig == nil {
		return nil, errors.Wrapf(hyper.ErrUnknownBox, "%q (no signature)", expr.Box)
	}
	box, err := db.sig.Box(expr.Box)
	if err != nil {
		return nil, err
	}
	return box.Diagram(), nil
}

func (db *diagramBuilder) pair(expr *TypePair) (left, right Type, err error) {
	if left, err = db.typ(expr.Left); err != nil {
		return
	}
	right, err = db.typ(expr.Right)
	return
}

func (db *diagramBuilder) typ(expr *TypeExpr) (Type, error) {
	if expr.Unit {
		return Type{}, nil
	}
	atoms := make([]Atom, len(expr.Atoms))
	for i, atom := range expr.Atoms {
		if reservedWords[atom.Label] {
			return Type{}, errors.Wrapf(hyper.ErrBadType, "%q is reserved", atom.Label)
		}
		if db.sig != nil && !db.sig.declares(atom.Label) {
			return Type{}, errors.Wrapf(hyper.ErrBadType, "basic type %q is not declared", atom.Label)
		}
		offset := 0
		for _, adj := range atom.Adjoints {
			if adj == "r" {
				offset++
			} else {
				offset--
			}
		}
		atoms[i] = Atom{Label: atom.Label, Offset: offset}
	}
	return TypeOf(atoms...)
}
