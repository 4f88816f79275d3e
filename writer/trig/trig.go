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

// Package trig implements a TriG dataset writer. Graphs are rendered
// concurrently and written as whole blocks.
package trig

import (
	"bytes"
	"io"
	"sort"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc"

	"github.com/cayleygraph/rdfwriter/graph"
	"github.com/cayleygraph/rdfwriter/writer"
	"github.com/cayleygraph/rdfwriter/writer/turtle"
)

const Name = "TriG"

// indent of triples inside a graph block
const blockIndent = 4

func init() {
	writer.RegisterFormat(writer.Format{
		Name:    "trig",
		Ext:     []string{".trig"},
		Mime:    []string{"application/trig", "application/x-trig"},
		Dataset: true,
		New:     func(opts writer.Options) writer.DatasetWriter { return NewWriter(opts) },
	})
}

// Writer writes datasets as TriG.
type Writer struct {
	opts writer.Options
}

var _ writer.DatasetWriter = (*Writer)(nil)

func NewWriter(opts writer.Options) *Writer {
	return &Writer{opts: opts}
}

func (w *Writer) Save(s graph.Store, out io.Writer, leaveOpen bool) error {
	syn := &syntax{opts: w.opts}
	if w.opts.Compression > writer.CompressionNone {
		syn.ns = mergeNamespaces(s)
	}
	if w.opts.Compression >= writer.CompressionMore {
		syn.shared = writer.SharedBlankNodes(s)
	}
	syn.f = turtle.NewFormatter(Name, w.opts, syn.ns)
	return writer.NewScheduler(syn, w.opts).Save(s, out, leaveOpen)
}

// SaveFile writes s to a new file.
func (w *Writer) SaveFile(s graph.Store, filename string) error {
	return writer.SaveFile(w, s, filename, w.opts.BOM)
}

// mergeNamespaces collects the prefixes of every graph. When two graphs bind
// the same prefix differently, the first graph wins.
func mergeNamespaces(s graph.Store) []voc.Namespace {
	seen := make(map[string]struct{})
	var out []voc.Namespace
	for _, g := range s.Graphs() {
		for _, ns := range writer.Namespaces(g.Namespaces()) {
			if _, ok := seen[ns.Prefix]; ok {
				continue
			}
			seen[ns.Prefix] = struct{}{}
			out = append(out, ns)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Prefix < out[j].Prefix })
	return out
}

type syntax struct {
	opts writer.Options
	ns   []voc.Namespace
	f    *turtle.Formatter
	// shared is read-only once rendering starts.
	shared map[quad.Value]struct{}
}

func (s *syntax) Name() string { return Name }

func (s *syntax) Header(w io.Writer, st graph.Store) error {
	if s.opts.Compression <= writer.CompressionNone {
		return nil
	}
	return turtle.WriteHeader(w, "", s.ns)
}

func (s *syntax) RenderGraph(buf *bytes.Buffer, g graph.Graph) error {
	if g.Name() == nil && g.Len() == 0 {
		return nil
	}
	if g.Name() != nil {
		name, err := s.f.Format(g.Name(), writer.PositionGraph)
		if err != nil {
			return err
		}
		buf.WriteString(name + " ")
	}
	buf.WriteString("{\n")
	e := turtle.NewEmitter(s.f, s.opts, blockIndent)
	e.Shared = s.shared
	if err := e.Emit(buf, g); err != nil {
		return err
	}
	buf.WriteString("}\n")
	return nil
}

func (s *syntax) Separator() string { return "\n" }

func (s *syntax) Footer(w io.Writer, st graph.Store) error { return nil }
