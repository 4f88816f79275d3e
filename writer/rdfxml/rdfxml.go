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

// Package rdfxml implements an RDF/XML writer for a single graph.
//
// Predicates must be written as qualified element names. IRIs that no
// declared namespace can reduce get a temporary namespace (ns0, ns1, ...),
// reported through the warning callback; IRIs with no valid local part fail
// with a *writer.UnreducibleError.
package rdfxml

import (
	"bytes"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdf"

	"github.com/cayleygraph/rdfwriter/graph"
	"github.com/cayleygraph/rdfwriter/writer"
)

const Name = "RDF/XML"

func init() {
	writer.RegisterFormat(writer.Format{
		Name: "rdfxml",
		Ext:  []string{".rdf", ".owl"},
		Mime: []string{"application/rdf+xml"},
		New:  func(opts writer.Options) writer.DatasetWriter { return NewWriter(opts) },
	})
}

// Writer writes a single graph as RDF/XML.
type Writer struct {
	opts writer.Options
}

var _ writer.DatasetWriter = (*Writer)(nil)

func NewWriter(opts writer.Options) *Writer {
	return &Writer{opts: opts}
}

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

// SaveFile writes s to a new file.
func (w *Writer) SaveFile(s graph.Store, filename string) error {
	return writer.SaveFile(w, s, filename, w.opts.BOM)
}

// SaveGraph writes g to out and leaves it open.
func (w *Writer) SaveGraph(g graph.Graph, out io.Writer) error {
	c := newContext(g, w.opts)
	var body bytes.Buffer
	if err := c.writeBody(&body, g); err != nil {
		return &writer.GraphError{Graph: g.Name(), Err: err}
	}
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	buf.WriteString(`<rdf:RDF`)
	for _, p := range c.prefixList() {
		fmt.Fprintf(&buf, "\n    xmlns:%s=\"%s\"", p, escape(c.prefixes[p]))
	}
	if base := g.BaseIRI(); base != "" {
		fmt.Fprintf(&buf, "\n    xml:base=\"%s\"", escape(string(base)))
	}
	buf.WriteString(">\n")
	buf.Write(body.Bytes())
	buf.WriteString("</rdf:RDF>\n")
	if _, err := out.Write(buf.Bytes()); err != nil {
		return err
	}
	if f, ok := out.(writer.Flusher); ok {
		return f.Flush()
	}
	return nil
}

type context struct {
	opts     writer.Options
	prefixes map[string]string // prefix -> namespace
	byNS     map[string]string // namespace -> prefix
	temp     int
	a        *writer.Analysis
}

func newContext(g graph.Graph, opts writer.Options) *context {
	c := &context{
		opts:     opts,
		prefixes: make(map[string]string),
		byNS:     make(map[string]string),
	}
	c.bind("rdf", rdf.NS)
	if opts.Compression > writer.CompressionNone {
		for _, ns := range writer.Namespaces(g.Namespaces()) {
			p := strings.TrimSuffix(ns.Prefix, ":")
			if isNCName(p) {
				c.bind(p, ns.Full)
			}
		}
	}
	return c
}

func (c *context) bind(prefix, ns string) {
	if _, ok := c.prefixes[prefix]; ok {
		return
	}
	if _, ok := c.byNS[ns]; ok {
		return
	}
	c.prefixes[prefix] = ns
	c.byNS[ns] = prefix
}

func (c *context) prefixList() []string {
	out := make([]string, 0, len(c.prefixes))
	for p := range c.prefixes {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// qname reduces an IRI to an element name, creating a temporary namespace if needed.
func (c *context) qname(iri quad.IRI) (string, error) {
	s := string(iri)
	best := ""
	for ns := range c.byNS {
		if strings.HasPrefix(s, ns) && len(ns) > len(best) && isNCName(s[len(ns):]) {
			best = ns
		}
	}
	if best != "" {
		return c.byNS[best] + ":" + s[len(best):], nil
	}
	i := strings.LastIndexAny(s, "#/")
	if i < 0 || !isNCName(s[i+1:]) {
		return "", &writer.UnreducibleError{Syntax: Name, IRI: iri}
	}
	ns, local := s[:i+1], s[i+1:]
	var prefix string
	for {
		prefix = fmt.Sprintf("ns%d", c.temp)
		c.temp++
		if _, ok := c.prefixes[prefix]; !ok {
			break
		}
	}
	c.bind(prefix, ns)
	c.opts.Warn("created a temporary namespace %s for %s", prefix, ns)
	return prefix + ":" + local, nil
}

func (c *context) writeBody(buf *bytes.Buffer, g graph.Graph) error {
	c.a = &writer.Analysis{}
	if c.opts.Compression >= writer.CompressionMore {
		c.a = writer.Analyze(g, writer.SearchExplicitOnly)
	}
	var ts []graph.Triple
	for _, t := range g.Triples() {
		if !c.a.IsHandled(t) {
			ts = append(ts, t)
		}
	}
	graph.SortTriples(ts)
	for i := 0; i < len(ts); {
		j := i
		for j < len(ts) && ts[j].Subject == ts[i].Subject {
			j++
		}
		if err := c.writeSubject(buf, ts[i].Subject, ts[i:j]); err != nil {
			return err
		}
		i = j
	}
	return nil
}

func (c *context) indent(depth int) string {
	if !c.opts.PrettyPrint {
		return ""
	}
	return strings.Repeat("  ", depth)
}

func (c *context) newline() string {
	if !c.opts.PrettyPrint {
		return ""
	}
	return "\n"
}

func (c *context) writeSubject(buf *bytes.Buffer, s quad.Value, ts []graph.Triple) error {
	if err := writer.CheckNode(Name, s, writer.PositionSubject, false); err != nil {
		return err
	}
	buf.WriteString(c.indent(1) + "<rdf:Description")
	switch s := s.(type) {
	case quad.IRI:
		buf.WriteString(` rdf:about="` + escape(string(s)) + `"`)
	case quad.BNode:
		if coll, ok := c.a.Collections[s]; !ok || !coll.Explicit || len(coll.Triples) > 0 {
			buf.WriteString(` rdf:nodeID="` + nodeID(s) + `"`)
		}
	}
	buf.WriteString(">" + c.newline())
	for _, t := range ts {
		if err := c.writeProperty(buf, t, 2); err != nil {
			return err
		}
	}
	buf.WriteString(c.indent(1) + "</rdf:Description>" + c.newline())
	return nil
}

func (c *context) writeProperty(buf *bytes.Buffer, t graph.Triple, depth int) error {
	if err := writer.CheckNode(Name, t.Predicate, writer.PositionPredicate, false); err != nil {
		return err
	}
	if err := writer.CheckNode(Name, t.Object, writer.PositionObject, false); err != nil {
		return err
	}
	name, err := c.qname(t.Predicate.(quad.IRI))
	if err != nil {
		return err
	}
	ind := c.indent(depth)
	switch o := t.Object.(type) {
	case quad.IRI:
		fmt.Fprintf(buf, "%s<%s rdf:resource=\"%s\"/>%s", ind, name, escape(string(o)), c.newline())
		return nil
	case quad.BNode:
		coll, ok := c.a.Collections[o]
		if !ok || !coll.Explicit || coll.Written {
			fmt.Fprintf(buf, "%s<%s rdf:nodeID=\"%s\"/>%s", ind, name, nodeID(o), c.newline())
			return nil
		}
		coll.Written = true
		if len(coll.Triples) == 0 {
			fmt.Fprintf(buf, "%s<%s rdf:parseType=\"Resource\"/>%s", ind, name, c.newline())
			return nil
		}
		fmt.Fprintf(buf, "%s<%s rdf:parseType=\"Resource\">%s", ind, name, c.newline())
		members := append([]graph.Triple(nil), coll.Triples...)
		graph.SortTriples(members)
		for _, m := range members {
			if err := c.writeProperty(buf, m, depth+1); err != nil {
				return err
			}
		}
		fmt.Fprintf(buf, "%s</%s>%s", ind, name, c.newline())
		return nil
	}
	lit, _ := graph.AsLiteral(t.Object)
	attr := ""
	switch {
	case lit.Lang != "":
		attr = ` xml:lang="` + escape(lit.Lang) + `"`
	case lit.Datatype != "" && lit.Datatype != graph.XSDString:
		attr = ` rdf:datatype="` + escape(string(lit.Datatype)) + `"`
	}
	fmt.Fprintf(buf, "%s<%s%s>%s</%s>%s", ind, name, attr, escape(lit.Lexical), name, c.newline())
	return nil
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func nodeID(b quad.BNode) string {
	id := string(b)
	if !isNCName(id) {
		id = "b" + hex.EncodeToString([]byte(id))
	}
	return id
}

func isNCName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}
