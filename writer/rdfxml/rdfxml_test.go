package rdfxml_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/rdfwriter/graph/memstore"
	"github.com/cayleygraph/rdfwriter/writer"
	"github.com/cayleygraph/rdfwriter/writer/rdfxml"
)

func ex(s string) quad.IRI { return quad.IRI("http://example.com/" + s) }

func TestSave(t *testing.T) {
	st := memstore.New()
	g := st.Default()
	g.AddNamespace("ex", "http://example.com/")
	g.AddTriple(ex("a"), ex("name"), quad.LangString{Value: "Alice & co", Lang: "en"})
	g.AddTriple(ex("a"), ex("knows"), quad.BNode("g"))
	g.AddTriple(quad.BNode("g"), ex("name"), quad.String("Bob"))
	g.AddTriple(quad.BNode("g"), ex("age"), quad.Int(7))

	var buf bytes.Buffer
	require.NoError(t, rdfxml.NewWriter(writer.DefaultOptions()).Save(st, &buf, true))
	require.Equal(t, ""+
		`<?xml version="1.0" encoding="utf-8"?>`+"\n"+
		`<rdf:RDF`+"\n"+
		`    xmlns:ex="http://example.com/"`+"\n"+
		`    xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">`+"\n"+
		`  <rdf:Description rdf:about="http://example.com/a">`+"\n"+
		`    <ex:knows rdf:parseType="Resource">`+"\n"+
		`      <ex:age rdf:datatype="http://www.w3.org/2001/XMLSchema#integer">7</ex:age>`+"\n"+
		`      <ex:name>Bob</ex:name>`+"\n"+
		`    </ex:knows>`+"\n"+
		`    <ex:name xml:lang="en">Alice &amp; co</ex:name>`+"\n"+
		`  </rdf:Description>`+"\n"+
		`</rdf:RDF>`+"\n", buf.String())
}

func TestTemporaryNamespace(t *testing.T) {
	st := memstore.New()
	st.Default().AddTriple(ex("a"), quad.IRI("http://other.org/v#p"), ex("b"))

	var warnings []string
	opts := writer.DefaultOptions()
	opts.PrettyPrint = false
	opts.Warning = func(msg string) { warnings = append(warnings, msg) }

	var buf bytes.Buffer
	require.NoError(t, rdfxml.NewWriter(opts).Save(st, &buf, true))
	require.Contains(t, buf.String(), `xmlns:ns0="http://other.org/v#"`)
	require.Contains(t, buf.String(), `<ns0:p rdf:resource="http://example.com/b"/>`)
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0], "ns0")
}

func TestUnreducible(t *testing.T) {
	for _, p := range []quad.IRI{"http://other.org/v#1p", "http://other.org/"} {
		st := memstore.New()
		st.Default().AddTriple(ex("a"), p, ex("b"))
		err := rdfxml.NewWriter(writer.DefaultOptions()).Save(st, &bytes.Buffer{}, true)
		var uerr *writer.UnreducibleError
		require.True(t, errors.As(err, &uerr), "%v", err)
		require.Equal(t, p, uerr.IRI)
		var gerr *writer.GraphError
		require.True(t, errors.As(err, &gerr))
		require.Nil(t, gerr.Graph)
	}
}

func TestRejects(t *testing.T) {
	st := memstore.New()
	st.AddGraph(ex("g")).AddTriple(quad.String("lit"), ex("p"), ex("b"))
	err := rdfxml.NewWriter(writer.DefaultOptions()).Save(st, &bytes.Buffer{}, true)
	var perr *writer.PositionError
	require.True(t, errors.As(err, &perr))
	var gerr *writer.GraphError
	require.True(t, errors.As(err, &gerr))
	require.Equal(t, quad.Value(ex("g")), gerr.Graph)

	st = memstore.New()
	st.Default().AddTriple(ex("a"), ex("p"), ex("b"))
	st.AddGraph(ex("g")).AddTriple(ex("a"), ex("p"), ex("b"))
	err = rdfxml.NewWriter(writer.DefaultOptions()).Save(st, &bytes.Buffer{}, true)
	require.True(t, errors.Is(err, writer.ErrQuadsUnserializable))
}
