package graph

import (
	"sort"
	"strings"

	"github.com/cayleygraph/quad"
)

var kindRank = map[Kind]int{
	KindIRI:          1,
	KindBlank:        2,
	KindLiteral:      3,
	KindTriple:       4,
	KindGraphLiteral: 5,
	KindUnknown:      6,
}

func rank(v quad.Value) int {
	if v == nil {
		return 0
	}
	return kindRank[KindOf(v)]
}

// Compare defines a total order over nodes. Nodes of different kinds order by
// kind (IRI, blank node, literal, quoted triple, graph literal); nodes of the
// same kind order by their content. The nil node sorts first.
func Compare(a, b quad.Value) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch a := a.(type) {
	case nil:
		return 0
	case quad.IRI:
		return strings.Compare(string(a), string(b.(quad.IRI)))
	case quad.BNode:
		return strings.Compare(string(a), string(b.(quad.BNode)))
	case QuotedTriple:
		return CompareTriples(a.Triple, b.(QuotedTriple).Triple)
	case *GraphLiteral:
		bg := b.(*GraphLiteral)
		for i := 0; i < len(a.Triples) && i < len(bg.Triples); i++ {
			if c := CompareTriples(a.Triples[i], bg.Triples[i]); c != 0 {
				return c
			}
		}
		return len(a.Triples) - len(bg.Triples)
	}
	if la, ok := AsLiteral(a); ok {
		lb, _ := AsLiteral(b)
		if c := strings.Compare(la.Lexical, lb.Lexical); c != 0 {
			return c
		}
		if c := strings.Compare(la.Lang, lb.Lang); c != 0 {
			return c
		}
		return strings.Compare(string(la.Datatype), string(lb.Datatype))
	}
	return strings.Compare(a.String(), b.String())
}

// CompareTriples orders triples by subject, predicate, then object.
func CompareTriples(a, b Triple) int {
	if c := Compare(a.Subject, b.Subject); c != 0 {
		return c
	}
	if c := Compare(a.Predicate, b.Predicate); c != 0 {
		return c
	}
	return Compare(a.Object, b.Object)
}

// SortTriples sorts triples in place by subject, predicate and object.
func SortTriples(ts []Triple) {
	sort.Slice(ts, func(i, j int) bool { return CompareTriples(ts[i], ts[j]) < 0 })
}

// SortValues sorts nodes in place.
func SortValues(vs []quad.Value) {
	sort.Slice(vs, func(i, j int) bool { return Compare(vs[i], vs[j]) < 0 })
}
