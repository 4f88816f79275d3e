package nquads_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/rdfwriter/graph"
	"github.com/cayleygraph/rdfwriter/graph/memstore"
	"github.com/cayleygraph/rdfwriter/writer"
	"github.com/cayleygraph/rdfwriter/writer/nquads"
)

func ex(s string) quad.IRI { return quad.IRI("http://example.com/" + s) }

func newStore() *memstore.Store {
	st := memstore.New()
	st.Default().AddTriple(ex("a"), ex("p"), quad.String("x\ny"))
	g := st.AddGraph(ex("g"))
	g.AddTriple(quad.BNode("b1"), ex("p"), quad.Int(1))
	g.AddTriple(quad.BNode("b1"), graph.RDFType, ex("T"))
	st.AddNamespace("ex", "http://example.com/")
	return st
}

func TestQuads(t *testing.T) {
	opts := writer.DefaultOptions()
	opts.Threads = 1
	var buf bytes.Buffer
	require.NoError(t, nquads.NewQuadsWriter(opts).Save(newStore(), &buf, true))
	require.Equal(t, ""+
		"<http://example.com/a> <http://example.com/p> \"x\\ny\" .\n"+
		"_:b1 <http://example.com/p> \"1\"^^<http://www.w3.org/2001/XMLSchema#integer> <http://example.com/g> .\n"+
		"_:b1 <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://example.com/T> <http://example.com/g> .\n",
		buf.String())
}

func TestTriples(t *testing.T) {
	st := memstore.New()
	st.Default().AddTriple(ex("a"), ex("p"), quad.LangString{Value: "hi", Lang: "en"})
	var buf bytes.Buffer
	require.NoError(t, nquads.NewTriplesWriter(writer.DefaultOptions()).Save(st, &buf, true))
	require.Equal(t, "<http://example.com/a> <http://example.com/p> \"hi\"@en .\n", buf.String())

	buf.Reset()
	err := nquads.NewTriplesWriter(writer.DefaultOptions()).Save(newStore(), &buf, true)
	require.True(t, errors.Is(err, writer.ErrQuadsUnserializable))
}

func TestQuotedTriples(t *testing.T) {
	st := memstore.New()
	inner := graph.T(ex("a"), ex("b"), ex("c"))
	st.Default().Add(graph.T(graph.Quote(inner), ex("src"), ex("d")))
	var buf bytes.Buffer
	require.NoError(t, nquads.NewQuadsWriter(writer.DefaultOptions()).Save(st, &buf, true))
	require.Equal(t, "<< <http://example.com/a> <http://example.com/b> <http://example.com/c> >> "+
		"<http://example.com/src> <http://example.com/d> .\n", buf.String())
}

func TestTriplesNamesFailedGraph(t *testing.T) {
	st := memstore.New()
	st.Default().AddTriple(quad.String("lit"), ex("p"), ex("b"))
	err := nquads.NewTriplesWriter(writer.DefaultOptions()).Save(st, &bytes.Buffer{}, true)
	var gerr *writer.GraphError
	require.True(t, errors.As(err, &gerr), "%v", err)
	require.Nil(t, gerr.Graph)
	var perr *writer.PositionError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, writer.PositionSubject, perr.Position)
}
