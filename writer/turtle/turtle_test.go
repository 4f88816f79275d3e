package turtle_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/rdfwriter/graph"
	"github.com/cayleygraph/rdfwriter/graph/memstore"
	"github.com/cayleygraph/rdfwriter/writer"
	"github.com/cayleygraph/rdfwriter/writer/turtle"
)

func ex(s string) quad.IRI { return quad.IRI("http://example.com/" + s) }

type closer struct {
	bytes.Buffer
	closed bool
}

func (c *closer) Close() error {
	c.closed = true
	return nil
}

func options() writer.Options {
	opts := writer.DefaultOptions()
	opts.HighSpeed = false
	return opts
}

func TestSave(t *testing.T) {
	st := memstore.New()
	g := st.Default()
	g.AddNamespace("ex", "http://example.com/")
	g.SetBaseIRI("http://example.com/")
	g.AddTriple(ex("s"), ex("p"), quad.BNode("l0"))
	g.AddTriple(quad.BNode("l0"), graph.RDFFirst, quad.String("x"))
	g.AddTriple(quad.BNode("l0"), graph.RDFRest, quad.BNode("l1"))
	g.AddTriple(quad.BNode("l1"), graph.RDFFirst, quad.LangString{Value: "chat", Lang: "fr"})
	g.AddTriple(quad.BNode("l1"), graph.RDFRest, graph.RDFNil)
	g.AddTriple(ex("s"), ex("n"), quad.Int(42))
	g.AddTriple(ex("s"), graph.RDFType, ex("Thing"))

	out := &closer{}
	require.NoError(t, turtle.NewWriter(options()).Save(st, out, false))
	require.True(t, out.closed)
	require.Equal(t, ""+
		"@base <http://example.com/> .\n"+
		"@prefix ex: <http://example.com/> .\n"+
		"\n"+
		"ex:s ex:n 42 ;\n"+
		"     ex:p ( \"x\" \"chat\"@fr ) ;\n"+
		"     a ex:Thing .\n", out.String())
}

func TestSaveUncompressed(t *testing.T) {
	st := memstore.New()
	g := st.AddGraph(ex("g"))
	g.AddNamespace("ex", "http://example.com/")
	g.AddTriple(ex("s"), graph.RDFType, quad.TypedString{Value: "1", Type: graph.XSDInteger})

	opts := options()
	opts.Compression = writer.CompressionNone
	out := &closer{}
	require.NoError(t, turtle.NewWriter(opts).Save(st, out, true))
	require.False(t, out.closed)
	require.Equal(t, "<http://example.com/s> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> "+
		"\"1\"^^<http://www.w3.org/2001/XMLSchema#integer> .\n", out.String())
}

func TestSaveRejectsDataset(t *testing.T) {
	st := memstore.New()
	st.Default().AddTriple(ex("a"), ex("p"), ex("b"))
	st.AddGraph(ex("g")).AddTriple(ex("a"), ex("p"), ex("b"))

	out := &closer{}
	err := turtle.NewWriter(options()).Save(st, out, false)
	require.True(t, errors.Is(err, writer.ErrQuadsUnserializable))
	require.True(t, out.closed)
	require.Empty(t, out.String())
}

func TestSaveNamesFailedGraph(t *testing.T) {
	st := memstore.New()
	st.AddGraph(ex("g")).AddTriple(ex("a"), quad.BNode("p"), ex("b"))
	err := turtle.NewWriter(writer.DefaultOptions()).Save(st, &bytes.Buffer{}, true)
	var gerr *writer.GraphError
	require.True(t, errors.As(err, &gerr), "%v", err)
	require.Equal(t, quad.Value(ex("g")), gerr.Graph)
	var perr *writer.PositionError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, writer.PositionPredicate, perr.Position)
}

func TestFormatter(t *testing.T) {
	ns := []voc.Namespace{{Prefix: "ex:", Full: "http://example.com/"}}
	f := turtle.NewFormatter(turtle.Name, writer.DefaultOptions(), ns)

	for _, c := range []struct {
		v    quad.Value
		pos  writer.Position
		want string
	}{
		{graph.RDFType, writer.PositionPredicate, "a"},
		{graph.RDFType, writer.PositionObject, "<http://www.w3.org/1999/02/22-rdf-syntax-ns#type>"},
		{ex("a"), writer.PositionSubject, "ex:a"},
		{ex("a/b"), writer.PositionSubject, "<http://example.com/a/b>"},
		{quad.BNode("n1"), writer.PositionSubject, "_:n1"},
		{quad.String("say \"hi\""), writer.PositionObject, `"say \"hi\""`},
		{quad.Bool(true), writer.PositionObject, "true"},
		{quad.TypedString{Value: "1.5", Type: graph.XSDDecimal}, writer.PositionObject, "1.5"},
		{quad.TypedString{Value: "1e3", Type: graph.XSDDouble}, writer.PositionObject, "1e3"},
		{quad.TypedString{Value: "x", Type: graph.XSDInteger}, writer.PositionObject, `"x"^^<http://www.w3.org/2001/XMLSchema#integer>`},
		{quad.TypedString{Value: "v", Type: ex("dt")}, writer.PositionObject, `"v"^^ex:dt`},
		{graph.Quote(graph.T(ex("a"), ex("b"), quad.BNode("c"))), writer.PositionSubject, "<< ex:a ex:b _:c >>"},
	} {
		got, err := f.Format(c.v, c.pos)
		require.NoError(t, err)
		require.Equal(t, c.want, got)
	}

	_, err := f.Format(quad.String("x"), writer.PositionSubject)
	require.Error(t, err)
	_, err = f.Format(graph.Quote(graph.T(ex("a"), ex("b"), ex("c"))), writer.PositionPredicate)
	require.Error(t, err)
	_, err = f.Format(graph.Quote(graph.T(ex("a"), ex("b"), ex("c"))), writer.PositionGraph)
	require.Error(t, err)
}
