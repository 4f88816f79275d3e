// Copyright 2026 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package turtle implements a compressing Turtle (and Turtle-star) writer.
package turtle

import (
	"bytes"
	"fmt"
	"io"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc"

	"github.com/cayleygraph/rdfwriter/graph"
	"github.com/cayleygraph/rdfwriter/writer"
)

const Name = "Turtle"

func init() {
	writer.RegisterFormat(writer.Format{
		Name: "turtle",
		Ext:  []string{".ttl"},
		Mime: []string{"text/turtle", "application/x-turtle"},
		New:  func(opts writer.Options) writer.DatasetWriter { return NewWriter(opts) },
	})
}

// WriteHeader writes the @base and @prefix directives.
func WriteHeader(w io.Writer, base quad.IRI, ns []voc.Namespace) error {
	n := 0
	if base != "" {
		if _, err := fmt.Fprintf(w, "@base <%s> .\n", writer.EscapeIRI(string(base))); err != nil {
			return err
		}
		n++
	}
	for _, p := range ns {
		if _, err := fmt.Fprintf(w, "@prefix %s <%s> .\n", p.Prefix, writer.EscapeIRI(p.Full)); err != nil {
			return err
		}
		n++
	}
	if n > 0 {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

// Writer writes a single graph as Turtle.
type Writer struct {
	opts writer.Options
}

var _ writer.DatasetWriter = (*Writer)(nil)

func NewWriter(opts writer.Options) *Writer {
	return &Writer{opts: opts}
}

// NewEmitter returns the emitter used for the body of a graph.
func NewEmitter(f writer.NodeFormatter, opts writer.Options, indent int) *writer.Emitter {
	return &writer.Emitter{
		Formatter:   f,
		Options:     opts,
		Indent:      indent,
		Collections: true,
		Annotations: true,
		Comment:     true,
	}
}

// Save writes the only non-empty graph of s. It fails with
// writer.ErrQuadsUnserializable if more than one graph holds triples.
func (w *Writer) Save(s graph.Store, out io.Writer, leaveOpen bool) (err error) {
	if !leaveOpen {
		defer func() {
			if c, ok := out.(io.Closer); ok {
				if cerr := c.Close(); err == nil {
					err = cerr
				}
			}
		}()
	}
	g, err := writer.SingleGraph(s, Name)
	if err != nil {
		return err
	}
	return w.SaveGraph(g, out)
}

// SaveGraph writes g to out and leaves it open.
func (w *Writer) SaveGraph(g graph.Graph, out io.Writer) error {
	var buf bytes.Buffer
	var ns []voc.Namespace
	if w.opts.Compression > writer.CompressionNone {
		ns = writer.Namespaces(g.Namespaces())
		if err := WriteHeader(&buf, g.BaseIRI(), ns); err != nil {
			return err
		}
	}
	e := NewEmitter(NewFormatter(Name, w.opts, ns), w.opts, 0)
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
func (w *Writer) SaveFile(s graph.Store, filename string) error {
	return writer.SaveFile(w, s, filename, w.opts.BOM)
}
