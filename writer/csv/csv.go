// Package csv implements CSV and TSV dataset writers. Each triple becomes a
// row of subject, predicate, object and graph name.
package csv

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/rdfwriter/graph"
	"github.com/cayleygraph/rdfwriter/writer"
	"github.com/cayleygraph/rdfwriter/writer/turtle"
)

const (
	NameCSV = "CSV"
	NameTSV = "TSV"
)

func init() {
	writer.RegisterFormat(writer.Format{
		Name:    "csv",
		Ext:     []string{".csv"},
		Mime:    []string{"text/csv"},
		Dataset: true,
		New:     func(opts writer.Options) writer.DatasetWriter { return NewCSVWriter(opts) },
	})
	writer.RegisterFormat(writer.Format{
		Name:    "tsv",
		Ext:     []string{".tsv"},
		Mime:    []string{"text/tab-separated-values"},
		Dataset: true,
		New:     func(opts writer.Options) writer.DatasetWriter { return NewTSVWriter(opts) },
	})
}

// cellFormatter writes IRIs as plain text and literals as their lexical form.
type cellFormatter struct{}

func (cellFormatter) Format(v quad.Value, pos writer.Position) (string, error) {
	if err := writer.CheckNode(NameCSV, v, pos, false); err != nil {
		return "", err
	}
	switch v := v.(type) {
	case quad.IRI:
		return string(v), nil
	case quad.BNode:
		return writer.BlankNodeLabel(v), nil
	}
	lit, _ := graph.AsLiteral(v)
	return lit.Lexical, nil
}

// Writer writes datasets as comma or tab separated rows.
type Writer struct {
	opts writer.Options
	tsv  bool
}

var _ writer.DatasetWriter = (*Writer)(nil)

func NewCSVWriter(opts writer.Options) *Writer { return &Writer{opts: opts} }

// NewTSVWriter returns a writer that emits tab separated rows with nodes in
// N-Triples form.
func NewTSVWriter(opts writer.Options) *Writer { return &Writer{opts: opts, tsv: true} }

func (w *Writer) Save(s graph.Store, out io.Writer, leaveOpen bool) error {
	syn := &syntax{tsv: w.tsv}
	if w.tsv {
		o := w.opts
		o.Compression = writer.CompressionNone
		tf := turtle.NewFormatter(NameTSV, o, nil)
		tf.Quoted = false
		syn.f = tf
	} else {
		syn.f = cellFormatter{}
	}
	return writer.NewScheduler(syn, w.opts).Save(s, out, leaveOpen)
}

// SaveFile writes s to a new file.
func (w *Writer) SaveFile(s graph.Store, filename string) error {
	return writer.SaveFile(w, s, filename, w.opts.BOM)
}

type syntax struct {
	tsv bool
	f   writer.NodeFormatter
}

func (s *syntax) Name() string {
	if s.tsv {
		return NameTSV
	}
	return NameCSV
}

func (s *syntax) Header(w io.Writer, st graph.Store) error { return nil }
func (s *syntax) Footer(w io.Writer, st graph.Store) error { return nil }

func (s *syntax) RenderGraph(buf *bytes.Buffer, g graph.Graph) error {
	var name string
	if g.Name() != nil {
		var err error
		if name, err = s.f.Format(g.Name(), writer.PositionGraph); err != nil {
			return err
		}
	}
	var cw *csv.Writer
	if !s.tsv {
		cw = csv.NewWriter(buf)
	}
	row := make([]string, 4)
	for _, t := range g.Triples() {
		var err error
		if row[0], err = s.f.Format(t.Subject, writer.PositionSubject); err != nil {
			return err
		}
		if row[1], err = s.f.Format(t.Predicate, writer.PositionPredicate); err != nil {
			return err
		}
		if row[2], err = s.f.Format(t.Object, writer.PositionObject); err != nil {
			return err
		}
		row[3] = name
		if cw != nil {
			if err := cw.Write(row); err != nil {
				return err
			}
			continue
		}
		buf.WriteString(strings.Join(row, "\t") + "\n")
	}
	if cw != nil {
		cw.Flush()
		return cw.Error()
	}
	return nil
}
