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

// Package jsonld implements a JSON-LD dataset writer on top of json-gold.
// The output is a JSON array with one document per graph.
package jsonld

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/piprate/json-gold/ld"

	"github.com/cayleygraph/rdfwriter/graph"
	"github.com/cayleygraph/rdfwriter/writer"
)

const Name = "JSON-LD"

const defaultGraph = "@default"

func init() {
	writer.RegisterFormat(writer.Format{
		Name:    "jsonld",
		Ext:     []string{".jsonld"},
		Mime:    []string{"application/ld+json"},
		Dataset: true,
		New:     func(opts writer.Options) writer.DatasetWriter { return NewWriter(opts) },
	})
}

// Writer writes datasets as JSON-LD.
type Writer struct {
	opts writer.Options
}

var _ writer.DatasetWriter = (*Writer)(nil)

func NewWriter(opts writer.Options) *Writer {
	return &Writer{opts: opts}
}

func (w *Writer) Save(s graph.Store, out io.Writer, leaveOpen bool) error {
	return writer.NewScheduler(&syntax{opts: w.opts}, w.opts).Save(s, out, leaveOpen)
}

// SaveFile writes s to a new file.
func (w *Writer) SaveFile(s graph.Store, filename string) error {
	return writer.SaveFile(w, s, filename, w.opts.BOM)
}

type syntax struct {
	opts writer.Options
}

func (s *syntax) Name() string { return Name }

func (s *syntax) Header(w io.Writer, st graph.Store) error {
	_, err := io.WriteString(w, "[\n")
	return err
}

func (s *syntax) Separator() string { return ",\n" }

func (s *syntax) Footer(w io.Writer, st graph.Store) error {
	_, err := io.WriteString(w, "\n]\n")
	return err
}

func (s *syntax) RenderGraph(buf *bytes.Buffer, g graph.Graph) error {
	if g.Len() == 0 && g.Name() == nil {
		return nil
	}
	name := defaultGraph
	if g.Name() != nil {
		if err := writer.CheckNode(Name, g.Name(), writer.PositionGraph, false); err != nil {
			return err
		}
		name = nodeID(g.Name())
	}
	ds := ld.NewRDFDataset()
	quads := make([]*ld.Quad, 0, g.Len())
	for _, t := range g.Triples() {
		sub, err := toNode(t.Subject, writer.PositionSubject)
		if err != nil {
			return err
		}
		pred, err := toNode(t.Predicate, writer.PositionPredicate)
		if err != nil {
			return err
		}
		obj, err := toNode(t.Object, writer.PositionObject)
		if err != nil {
			return err
		}
		quads = append(quads, ld.NewQuad(sub, pred, obj, name))
	}
	ds.Graphs[name] = quads

	opts := ld.NewJsonLdOptions("")
	doc, err := ld.NewJsonLdApi().FromRDF(ds, opts)
	if err != nil {
		return err
	}
	var out interface{} = doc
	if s.opts.Compression > writer.CompressionNone {
		if ctx := prefixContext(g); len(ctx) > 0 {
			compacted, err := ld.NewJsonLdProcessor().Compact(doc, map[string]interface{}{"@context": ctx}, opts)
			if err != nil {
				return err
			}
			out = compacted
		}
	}
	var data []byte
	if s.opts.PrettyPrint {
		data, err = json.MarshalIndent(out, "", "  ")
	} else {
		data, err = json.Marshal(out)
	}
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

// prefixContext maps the graph prefixes to a JSON-LD context.
func prefixContext(g graph.Graph) map[string]interface{} {
	ctx := make(map[string]interface{})
	for _, ns := range writer.Namespaces(g.Namespaces()) {
		ctx[strings.TrimSuffix(ns.Prefix, ":")] = ns.Full
	}
	return ctx
}

func nodeID(v quad.Value) string {
	switch v := v.(type) {
	case quad.IRI:
		return string(v)
	case quad.BNode:
		return writer.BlankNodeLabel(v)
	}
	return v.String()
}

func toNode(v quad.Value, pos writer.Position) (ld.Node, error) {
	if err := writer.CheckNode(Name, v, pos, false); err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case quad.IRI:
		return ld.NewIRI(string(v)), nil
	case quad.BNode:
		return ld.NewBlankNode(writer.BlankNodeLabel(v)), nil
	}
	lit, _ := graph.AsLiteral(v)
	switch {
	case lit.Lang != "":
		return ld.NewLiteral(lit.Lexical, rdf.NS+"langString", lit.Lang), nil
	case lit.Datatype != "":
		return ld.NewLiteral(lit.Lexical, string(lit.Datatype), ""), nil
	}
	return ld.NewLiteral(lit.Lexical, string(graph.XSDString), ""), nil
}
