package trig_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/rdfwriter/graph/memstore"
	"github.com/cayleygraph/rdfwriter/writer"
	"github.com/cayleygraph/rdfwriter/writer/trig"
)

func ex(s string) quad.IRI { return quad.IRI("http://example.com/" + s) }

func options(threads int) writer.Options {
	opts := writer.DefaultOptions()
	opts.HighSpeed = false
	opts.Threads = threads
	return opts
}

func TestSave(t *testing.T) {
	st := memstore.New()
	st.Default().AddTriple(ex("a"), ex("p"), ex("b"))
	g1 := st.AddGraph(ex("g1"))
	g1.AddTriple(ex("c"), ex("p"), quad.String("1"))
	g1.AddTriple(ex("c"), ex("q"), quad.BNode("x"))
	g1.AddTriple(quad.BNode("x"), ex("name"), quad.String("X"))
	st.AddNamespace("ex", "http://example.com/")

	var buf bytes.Buffer
	require.NoError(t, trig.NewWriter(options(1)).Save(st, &buf, true))
	require.Equal(t, ""+
		"@prefix ex: <http://example.com/> .\n"+
		"\n"+
		"{\n"+
		"    ex:a ex:p ex:b .\n"+
		"}\n"+
		"\n"+
		"ex:g1 {\n"+
		"    ex:c ex:p \"1\" ;\n"+
		"         ex:q [ ex:name \"X\" ] .\n"+
		"}\n", buf.String())
}

func TestSaveSkipsEmptyDefaultGraph(t *testing.T) {
	st := memstore.New()
	st.AddGraph(quad.BNode("g")).AddTriple(ex("a"), ex("p"), ex("b"))

	opts := options(1)
	opts.Compression = writer.CompressionNone
	var buf bytes.Buffer
	require.NoError(t, trig.NewWriter(opts).Save(st, &buf, true))
	require.Equal(t, "_:g {\n"+
		"    <http://example.com/a> <http://example.com/p> <http://example.com/b> .\n"+
		"}\n", buf.String())
}

func TestSaveConcurrentFailure(t *testing.T) {
	st := memstore.New()
	for i := 0; i < 10; i++ {
		g := st.AddGraph(ex(fmt.Sprintf("g%d", i)))
		for j := 0; j < 20; j++ {
			g.AddTriple(ex(fmt.Sprintf("s%d", j%3)), ex("p"), quad.Int(j))
		}
	}
	// literals cannot be subjects
	st.AddGraph(ex("g4")).AddTriple(quad.String("bad"), ex("p"), ex("o"))
	st.AddNamespace("ex", "http://example.com/")

	var buf bytes.Buffer
	err := trig.NewWriter(options(4)).Save(st, &buf, true)
	var agg *writer.AggregateError
	require.True(t, errors.As(err, &agg))
	require.Len(t, agg.Errors, 1)
	var perr *writer.PositionError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, writer.PositionSubject, perr.Position)

	out := buf.String()
	require.NotContains(t, out, "ex:g4 {")
	for i := 0; i < 10; i++ {
		if i == 4 {
			continue
		}
		block := fmt.Sprintf("ex:g%d {\n", i)
		require.Equal(t, 1, strings.Count(out, block), block)
		// blocks are contiguous
		start := strings.Index(out, block)
		end := strings.Index(out[start:], "}\n")
		require.Equal(t, 3, strings.Count(out[start:start+end], " .\n"))
	}
}

func TestSaveKeepsSharedBlankNodes(t *testing.T) {
	st := memstore.New()
	st.Default().AddTriple(ex("s"), ex("inGraph"), quad.BNode("g"))
	st.AddGraph(quad.BNode("g")).AddTriple(ex("a"), ex("p"), ex("b"))
	g1 := st.AddGraph(ex("g1"))
	g1.AddTriple(ex("alice"), ex("knows"), quad.BNode("p"))
	g1.AddTriple(ex("alice"), ex("likes"), quad.BNode("q"))
	g1.AddTriple(quad.BNode("q"), ex("name"), quad.String("Q"))
	st.AddGraph(ex("g2")).AddTriple(ex("bob"), ex("knows"), quad.BNode("p"))
	st.AddNamespace("ex", "http://example.com/")

	exp := "" +
		"@prefix ex: <http://example.com/> .\n" +
		"\n" +
		"{\n" +
		"    ex:s ex:inGraph _:g .\n" +
		"}\n" +
		"\n" +
		"_:g {\n" +
		"    ex:a ex:p ex:b .\n" +
		"}\n" +
		"\n" +
		"ex:g1 {\n" +
		"    ex:alice ex:knows _:p ;\n" +
		"             ex:likes [ ex:name \"Q\" ] .\n" +
		"}\n" +
		"\n" +
		"ex:g2 {\n" +
		"    ex:bob ex:knows _:p .\n" +
		"}\n"

	var buf bytes.Buffer
	require.NoError(t, trig.NewWriter(options(1)).Save(st, &buf, true))
	require.Equal(t, exp, buf.String())

	buf.Reset()
	require.NoError(t, trig.NewWriter(options(4)).Save(st, &buf, true))
	out := buf.String()
	require.NotContains(t, out, "[]")
	require.Contains(t, out, "    ex:s ex:inGraph _:g .\n")
	require.Contains(t, out, "    ex:bob ex:knows _:p .\n")
	require.Contains(t, out, "    ex:alice ex:knows _:p ;\n")
}
