package turtle

import (
	"regexp"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc"

	"github.com/cayleygraph/rdfwriter/graph"
	"github.com/cayleygraph/rdfwriter/internal/lru"
	"github.com/cayleygraph/rdfwriter/writer"
)

// number of shortened IRIs remembered by a formatter
const nameCacheSize = 4096

var (
	integerRe = regexp.MustCompile(`^[+-]?[0-9]+$`)
	decimalRe = regexp.MustCompile(`^[+-]?[0-9]*\.[0-9]+$`)
	doubleRe  = regexp.MustCompile(`^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)[eE][+-]?[0-9]+$`)
)

// Formatter formats nodes for Turtle and TriG.
type Formatter struct {
	// Syntax is the name reported in errors.
	Syntax      string
	Compression writer.CompressionLevel
	// Namespaces are used to write prefixed names; see writer.Namespaces.
	Namespaces []voc.Namespace
	// Quoted allows << s p o >> quoted triples.
	Quoted bool

	names *lru.Cache[quad.IRI, string]
}

var _ writer.NodeFormatter = (*Formatter)(nil)

// NewFormatter creates a formatter for the given options and namespaces.
func NewFormatter(syntax string, opts writer.Options, ns []voc.Namespace) *Formatter {
	return &Formatter{
		Syntax:      syntax,
		Compression: opts.Compression,
		Namespaces:  ns,
		Quoted:      true,
		names:       lru.New[quad.IRI, string](nameCacheSize),
	}
}

func (f *Formatter) Format(v quad.Value, pos writer.Position) (string, error) {
	if err := writer.CheckNode(f.Syntax, v, pos, f.Quoted); err != nil {
		return "", err
	}
	switch v := v.(type) {
	case quad.IRI:
		return f.iri(v, pos), nil
	case quad.BNode:
		return writer.BlankNodeLabel(v), nil
	case graph.QuotedTriple:
		s, err := f.Format(v.Subject, writer.PositionSubject)
		if err != nil {
			return "", err
		}
		p, err := f.Format(v.Predicate, writer.PositionPredicate)
		if err != nil {
			return "", err
		}
		o, err := f.Format(v.Object, writer.PositionObject)
		if err != nil {
			return "", err
		}
		return "<< " + s + " " + p + " " + o + " >>", nil
	}
	lit, _ := graph.AsLiteral(v)
	return f.literal(lit), nil
}

func (f *Formatter) iri(v quad.IRI, pos writer.Position) string {
	if f.Compression > writer.CompressionNone {
		if pos == writer.PositionPredicate && v == graph.RDFType {
			return "a"
		}
		if f.names != nil {
			if s, ok := f.names.Get(v); ok {
				return s
			}
		}
		s, ok := writer.ShortIRI(f.Namespaces, v)
		if !ok {
			s = "<" + writer.EscapeIRI(string(v)) + ">"
		}
		if f.names != nil {
			f.names.Put(v, s)
		}
		return s
	}
	return "<" + writer.EscapeIRI(string(v)) + ">"
}

func (f *Formatter) literal(l graph.Literal) string {
	if f.Compression > writer.CompressionNone {
		switch l.Datatype {
		case graph.XSDInteger:
			if integerRe.MatchString(l.Lexical) {
				return l.Lexical
			}
		case graph.XSDDecimal:
			if decimalRe.MatchString(l.Lexical) {
				return l.Lexical
			}
		case graph.XSDDouble:
			if doubleRe.MatchString(l.Lexical) {
				return l.Lexical
			}
		case graph.XSDBoolean:
			if l.Lexical == "true" || l.Lexical == "false" {
				return l.Lexical
			}
		}
	}
	s := `"` + writer.EscapeString(l.Lexical) + `"`
	switch {
	case l.Lang != "":
		s += "@" + l.Lang
	case l.Datatype != "" && l.Datatype != graph.XSDString:
		s += "^^" + f.iri(l.Datatype, writer.PositionObject)
	}
	return s
}
