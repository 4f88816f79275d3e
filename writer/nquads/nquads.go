// Package nquads implements the line-based N-Triples and N-Quads writers.
// Both always write one statement per line.
package nquads

import (
	"bytes"
	"io"

	"github.com/cayleygraph/rdfwriter/graph"
	"github.com/cayleygraph/rdfwriter/writer"
	"github.com/cayleygraph/rdfwriter/writer/turtle"
)

const (
	NameTriples = "NTriples"
	NameQuads   = "NQuads"
)

func init() {
	writer.RegisterFormat(writer.Format{
		Name: "ntriples",
		Ext:  []string{".nt"},
		Mime: []string{"application/n-triples"},
		New:  func(opts writer.Options) writer.DatasetWriter { return NewTriplesWriter(opts) },
	})
	writer.RegisterFormat(writer.Format{
		Name:    "nquads",
		Ext:     []string{".nq"},
		Mime:    []string{"application/n-quads"},
		Dataset: true,
		New:     func(opts writer.Options) writer.DatasetWriter { return NewQuadsWriter(opts) },
	})
}

func flat(opts writer.Options) writer.Options {
	opts.Compression = writer.CompressionNone
	opts.PrettyPrint = false
	return opts
}

// TriplesWriter writes a single graph as N-Triples.
type TriplesWriter struct {
	opts writer.Options
}

func NewTriplesWriter(opts writer.Options) *TriplesWriter {
	return &TriplesWriter{opts: flat(opts)}
}

func (w *TriplesWriter) Save(s graph.Store, out io.Writer, leaveOpen bool) (err error) {
	if !leaveOpen {
		defer func() {
			if c, ok := out.(io.Closer); ok {
				if cerr := c.Close(); err == nil {
					err = cerr
				}
			}
		}()
	}
	g, err := writer.SingleGraph(s, NameTriples)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	e := &writer.Emitter{Formatter: turtle.NewFormatter(NameTriples, w.opts, nil), Options: w.opts}
	if err := e.Emit(&buf, g); err != nil {
		return &writer.GraphError{Graph: g.Name(), Err: err}
	}
	if _, err := out.Write(buf.Bytes()); err != nil {
		return err
	}
	if f, ok := out.(writer.Flusher); ok {
		return f.Flush()
	}
	return nil
}

// SaveFile writes s to a new file.
func (w *TriplesWriter) SaveFile(s graph.Store, filename string) error {
	return writer.SaveFile(w, s, filename, w.opts.BOM)
}

// QuadsWriter writes a dataset as N-Quads.
type QuadsWriter struct {
	opts writer.Options
}

func NewQuadsWriter(opts writer.Options) *QuadsWriter {
	return &QuadsWriter{opts: flat(opts)}
}

func (w *QuadsWriter) Save(s graph.Store, out io.Writer, leaveOpen bool) error {
	syn := &quadSyntax{opts: w.opts, f: turtle.NewFormatter(NameQuads, w.opts, nil)}
	return writer.NewScheduler(syn, w.opts).Save(s, out, leaveOpen)
}

// SaveFile writes s to a new file.
func (w *QuadsWriter) SaveFile(s graph.Store, filename string) error {
	return writer.SaveFile(w, s, filename, w.opts.BOM)
}

type quadSyntax struct {
	opts writer.Options
	f    *turtle.Formatter
}

func (s *quadSyntax) Name() string                            { return NameQuads }
func (s *quadSyntax) Header(w io.Writer, st graph.Store) error { return nil }
func (s *quadSyntax) Footer(w io.Writer, st graph.Store) error { return nil }

func (s *quadSyntax) RenderGraph(buf *bytes.Buffer, g graph.Graph) error {
	e := &writer.Emitter{Formatter: s.f, Options: s.opts}
	if g.Name() != nil {
		label, err := s.f.Format(g.Name(), writer.PositionGraph)
		if err != nil {
			return err
		}
		e.Label = label
	}
	return e.Emit(buf, g)
}
