package graph

import (
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/require"
)

type opaque string

func (o opaque) String() string      { return string(o) }
func (o opaque) Native() interface{} { return string(o) }

func TestKindOf(t *testing.T) {
	var cases = []struct {
		v    quad.Value
		kind Kind
	}{
		{quad.IRI("http://example.org/a"), KindIRI},
		{quad.BNode("b1"), KindBlank},
		{quad.String("x"), KindLiteral},
		{quad.LangString{Value: "x", Lang: "en"}, KindLiteral},
		{quad.TypedString{Value: "1", Type: XSDInteger}, KindLiteral},
		{quad.Int(3), KindLiteral},
		{Quote(T(quad.IRI("s"), quad.IRI("p"), quad.IRI("o"))), KindTriple},
		{&GraphLiteral{}, KindGraphLiteral},
		{opaque("raw"), KindUnknown},
	}
	for _, c := range cases {
		require.Equal(t, c.kind, KindOf(c.v), "%v", c.v)
	}
}

func TestCompare(t *testing.T) {
	vals := []quad.Value{
		quad.String("b"),
		Quote(T(quad.IRI("s"), quad.IRI("p"), quad.IRI("o"))),
		quad.BNode("z"),
		quad.IRI("http://b"),
		quad.LangString{Value: "b", Lang: "en"},
		quad.BNode("a"),
		quad.IRI("http://a"),
		quad.String("a"),
		nil,
	}
	SortValues(vals)
	require.Equal(t, []quad.Value{
		nil,
		quad.IRI("http://a"),
		quad.IRI("http://b"),
		quad.BNode("a"),
		quad.BNode("z"),
		quad.String("a"),
		quad.String("b"),
		quad.LangString{Value: "b", Lang: "en"},
		Quote(T(quad.IRI("s"), quad.IRI("p"), quad.IRI("o"))),
	}, vals)
}

func TestCompareTriples(t *testing.T) {
	s, p1, p2 := quad.IRI("s"), quad.IRI("p1"), quad.IRI("p2")
	ts := []Triple{
		T(s, p2, quad.String("a")),
		T(s, p1, quad.String("b")),
		T(s, p1, quad.String("a")),
	}
	SortTriples(ts)
	require.Equal(t, []Triple{
		T(s, p1, quad.String("a")),
		T(s, p1, quad.String("b")),
		T(s, p2, quad.String("a")),
	}, ts)
}

func TestAsLiteral(t *testing.T) {
	l, ok := AsLiteral(quad.Int(42))
	require.True(t, ok)
	require.Equal(t, Literal{Lexical: "42", Datatype: XSDInteger}, l)

	l, ok = AsLiteral(quad.Bool(true))
	require.True(t, ok)
	require.Equal(t, Literal{Lexical: "true", Datatype: XSDBoolean}, l)

	_, ok = AsLiteral(quad.IRI("x"))
	require.False(t, ok)
}

func TestBlankNodesIn(t *testing.T) {
	inner := Quote(T(quad.BNode("a"), quad.IRI("p"), quad.BNode("b")))
	outer := Quote(T(inner, quad.IRI("q"), quad.BNode("c")))
	var got []quad.BNode
	BlankNodesIn(outer, func(b quad.BNode) { got = append(got, b) })
	require.Equal(t, []quad.BNode{"a", "b", "c"}, got)
}
