package writer_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/rdfwriter/graph"
	"github.com/cayleygraph/rdfwriter/writer"
	"github.com/cayleygraph/rdfwriter/writer/turtle"
)

var exNS = []voc.Namespace{{Prefix: "ex:", Full: "http://example.com/"}}

func grouped() writer.Options {
	opts := writer.DefaultOptions()
	opts.HighSpeed = false
	return opts
}

func emit(t testing.TB, opts writer.Options, g graph.Graph) string {
	e := turtle.NewEmitter(turtle.NewFormatter(turtle.Name, opts, exNS), opts, 0)
	var buf bytes.Buffer
	require.NoError(t, e.Emit(&buf, g))
	return buf.String()
}

// ratioGraph returns a graph with the given number of distinct subjects
// spread over n triples.
func ratioGraph(subjects, n int) graph.Graph {
	g := newGraph()
	for i := 0; i < n; i++ {
		g.AddTriple(ex(fmt.Sprintf("s%d", i%subjects)), ex("p"), quad.Int(i))
	}
	return g
}

func TestUseHighSpeed(t *testing.T) {
	opts := writer.DefaultOptions()
	require.False(t, writer.UseHighSpeed(ratioGraph(74, 100), opts))
	require.False(t, writer.UseHighSpeed(ratioGraph(75, 100), opts))
	require.True(t, writer.UseHighSpeed(ratioGraph(76, 100), opts))

	opts.HighSpeed = false
	require.False(t, writer.UseHighSpeed(ratioGraph(76, 100), opts))

	opts.Compression = writer.CompressionNone
	require.True(t, writer.UseHighSpeed(ratioGraph(1, 100), opts))

	require.False(t, writer.UseHighSpeed(newGraph(), writer.DefaultOptions()))
}

func TestEmitList(t *testing.T) {
	g := newGraph(append([]graph.Triple{graph.T(ex("s"), ex("p"), quad.BNode("l0"))},
		listTriples(quad.String("x"), quad.String("y"))...)...)
	require.Equal(t, `ex:s ex:p ( "x" "y" ) .`+"\n", emit(t, grouped(), g))
}

func TestEmitGroup(t *testing.T) {
	g := newGraph(
		graph.T(ex("a"), ex("knows"), quad.BNode("g")),
		graph.T(quad.BNode("g"), ex("name"), quad.String("Bob")),
	)
	require.Equal(t, `ex:a ex:knows [ ex:name "Bob" ] .`+"\n", emit(t, grouped(), g))

	g = newGraph(graph.T(ex("a"), ex("knows"), quad.BNode("g")))
	require.Equal(t, "ex:a ex:knows [] .\n", emit(t, grouped(), g))
}

// expandStatements splits grouped output without inline collections back into
// "s p o" statements. Terms must not contain spaces.
func expandStatements(t testing.TB, out string) []string {
	var (
		res     []string
		s, p    string
		tok     = strings.Fields(out)
		next    = 0
		pending = 3
	)
	for next < len(tok) {
		switch pending {
		case 3:
			s, p = tok[next], tok[next+1]
			next += 2
		case 2:
			p = tok[next]
			next++
		}
		require.Less(t, next+1, len(tok), out)
		res = append(res, s+" "+p+" "+tok[next])
		switch sep := tok[next+1]; sep {
		case ".":
			pending = 3
		case ";":
			pending = 2
		case ",":
			pending = 1
		default:
			t.Fatalf("unexpected %q in %q", sep, out)
		}
		next += 2
	}
	return res
}

func TestEmitSharedListHeadVerbatim(t *testing.T) {
	g := newGraph(append([]graph.Triple{
		graph.T(ex("s"), ex("p"), quad.BNode("l0")),
		graph.T(ex("o"), ex("q"), quad.BNode("l0")),
	}, listTriples(quad.String("x"), quad.String("y"))...)...)

	opts := grouped()
	f := turtle.NewFormatter(turtle.Name, opts, exNS)
	var exp []string
	for _, tr := range g.Triples() {
		var terms []string
		for i, v := range []quad.Value{tr.Subject, tr.Predicate, tr.Object} {
			s, err := f.Format(v, []writer.Position{writer.PositionSubject, writer.PositionPredicate, writer.PositionObject}[i])
			require.NoError(t, err)
			terms = append(terms, s)
		}
		exp = append(exp, strings.Join(terms, " "))
	}

	for _, pretty := range []bool{true, false} {
		opts.PrettyPrint = pretty
		out := emit(t, opts, g)
		require.NotContains(t, out, "(")
		require.NotContains(t, out, "[")
		require.ElementsMatch(t, exp, expandStatements(t, out))
	}
}

func TestEmitAnnotation(t *testing.T) {
	base := graph.T(ex("a"), ex("b"), ex("c"))
	g := newGraph(base, graph.T(graph.Quote(base), ex("src"), ex("d")))
	require.Equal(t, "ex:a ex:b ex:c {| ex:src ex:d |} .\n", emit(t, grouped(), g))
}

func TestEmitCompressionBelowMore(t *testing.T) {
	g := newGraph(
		graph.T(ex("a"), ex("knows"), quad.BNode("g")),
		graph.T(quad.BNode("g"), ex("name"), quad.String("Bob")),
	)
	opts := grouped()
	opts.Compression = writer.CompressionMedium
	require.Equal(t, "ex:a ex:knows _:g .\n_:g ex:name \"Bob\" .\n", emit(t, opts, g))
}

func TestEmitPretty(t *testing.T) {
	g := newGraph(
		graph.T(ex("s"), ex("q"), quad.String("3")),
		graph.T(ex("s"), ex("p"), quad.String("2")),
		graph.T(ex("s"), ex("p"), quad.String("1")),
		graph.T(ex("t"), graph.RDFType, ex("T")),
	)
	opts := grouped()
	require.Equal(t, ""+
		"ex:s ex:p \"1\" ,\n"+
		"          \"2\" ;\n"+
		"     ex:q \"3\" .\n"+
		"ex:t a ex:T .\n", emit(t, opts, g))

	opts.PrettyPrint = false
	require.Equal(t, ""+
		"ex:s ex:p \"1\" , \"2\" ; ex:q \"3\" .\n"+
		"ex:t a ex:T .\n", emit(t, opts, g))
}

func TestEmitFlat(t *testing.T) {
	g := newGraph(
		graph.T(ex("b"), ex("p"), quad.String("2")),
		graph.T(ex("a"), ex("p"), quad.String("1")),
	)
	var warnings []string
	opts := writer.DefaultOptions()
	opts.Warning = func(msg string) { warnings = append(warnings, msg) }
	require.Equal(t, ""+
		writer.HighSpeedComment+"\n"+
		"ex:b ex:p \"2\" .\n"+
		"ex:a ex:p \"1\" .\n", emit(t, opts, g))
	require.Len(t, warnings, 1)

	opts.Compression = writer.CompressionNone
	warnings = nil
	require.Equal(t, ""+
		"<http://example.com/b> <http://example.com/p> \"2\" .\n"+
		"<http://example.com/a> <http://example.com/p> \"1\" .\n", emit(t, opts, g))
	require.Empty(t, warnings)
}

func TestEmitPositionErrors(t *testing.T) {
	for _, c := range []struct {
		name string
		t    graph.Triple
		pos  writer.Position
		kind graph.Kind
	}{
		{"literal subject", graph.T(quad.String("x"), ex("p"), ex("o")), writer.PositionSubject, graph.KindLiteral},
		{"blank predicate", graph.T(ex("s"), quad.BNode("p"), ex("o")), writer.PositionPredicate, graph.KindBlank},
		{"literal predicate", graph.T(ex("s"), quad.String("p"), ex("o")), writer.PositionPredicate, graph.KindLiteral},
	} {
		t.Run(c.name, func(t *testing.T) {
			for _, opts := range []writer.Options{grouped(), {Compression: writer.CompressionNone}} {
				e := turtle.NewEmitter(turtle.NewFormatter(turtle.Name, opts, exNS), opts, 0)
				var buf bytes.Buffer
				err := e.Emit(&buf, newGraph(c.t))
				var perr *writer.PositionError
				require.True(t, errors.As(err, &perr), "%v", err)
				require.Equal(t, c.pos, perr.Position)
				require.Equal(t, c.kind, perr.Kind)
				require.Equal(t, turtle.Name, perr.Syntax)
			}
		})
	}
}
