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

// Package graph defines the read-only RDF model consumed by the writers:
// node kinds, triples, quoted triples, graphs and datasets.
package graph

import (
	"strconv"
	"strings"
	"time"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdf"
)

// Kind is the structural category of a node.
type Kind int

const (
	KindUnknown Kind = iota
	KindIRI
	KindBlank
	KindLiteral
	KindTriple
	KindGraphLiteral
)

var kindNames = map[Kind]string{
	KindUnknown:      "Unknown",
	KindIRI:          "URI",
	KindBlank:        "Blank Node",
	KindLiteral:      "Literal",
	KindTriple:       "Triple Node",
	KindGraphLiteral: "Graph Literal",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// KindOf reports the kind of a node value.
func KindOf(v quad.Value) Kind {
	switch v.(type) {
	case quad.IRI:
		return KindIRI
	case quad.BNode:
		return KindBlank
	case quad.String, quad.LangString, quad.TypedString,
		quad.Int, quad.Float, quad.Bool, quad.Time:
		return KindLiteral
	case QuotedTriple:
		return KindTriple
	case *GraphLiteral:
		return KindGraphLiteral
	}
	return KindUnknown
}

// IsBlank reports whether v is a blank node.
func IsBlank(v quad.Value) bool {
	_, ok := v.(quad.BNode)
	return ok
}

// Triple is an RDF statement. Triples are comparable and can be used as map keys.
type Triple struct {
	Subject   quad.Value
	Predicate quad.Value
	Object    quad.Value
}

// T is a shorthand for constructing a Triple.
func T(s, p, o quad.Value) Triple { return Triple{Subject: s, Predicate: p, Object: o} }

func (t Triple) String() string {
	return str(t.Subject) + " " + str(t.Predicate) + " " + str(t.Object) + " ."
}

// Mentions reports whether n appears as the subject or the object of t.
func (t Triple) Mentions(n quad.Value) bool {
	return t.Subject == n || t.Object == n
}

// Quad converts the triple into a quad in the given graph.
func (t Triple) Quad(graph quad.Value) quad.Quad {
	return quad.Quad{Subject: t.Subject, Predicate: t.Predicate, Object: t.Object, Label: graph}
}

func str(v quad.Value) string {
	if v == nil {
		return "<nil>"
	}
	return v.String()
}

// QuotedTriple is a triple used as a node (RDF-star).
type QuotedTriple struct {
	Triple
}

// Quote wraps a triple as a node.
func Quote(t Triple) QuotedTriple { return QuotedTriple{Triple: t} }

func (q QuotedTriple) String() string {
	return "<< " + str(q.Subject) + " " + str(q.Predicate) + " " + str(q.Object) + " >>"
}

func (q QuotedTriple) Native() interface{} { return q.Triple }

// GraphLiteral is a formula node holding a nested graph. No writer in this
// module can serialize it; it exists so that the rejection path can be exercised.
type GraphLiteral struct {
	Triples []Triple
}

func (g *GraphLiteral) String() string {
	parts := make([]string, 0, len(g.Triples))
	for _, t := range g.Triples {
		parts = append(parts, t.String())
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

func (g *GraphLiteral) Native() interface{} { return g.Triples }

// BlankNodesIn calls fn for every blank node nested anywhere inside a quoted triple.
func BlankNodesIn(v quad.Value, fn func(quad.BNode)) {
	q, ok := v.(QuotedTriple)
	if !ok {
		return
	}
	for _, n := range []quad.Value{q.Subject, q.Predicate, q.Object} {
		switch n := n.(type) {
		case quad.BNode:
			fn(n)
		case QuotedTriple:
			BlankNodesIn(n, fn)
		}
	}
}

const xsdNS = "http://www.w3.org/2001/XMLSchema#"

// Well-known vocabulary used by the writers.
var (
	RDFType  = quad.IRI(rdf.NS + "type")
	RDFFirst = quad.IRI(rdf.NS + "first")
	RDFRest  = quad.IRI(rdf.NS + "rest")
	RDFNil   = quad.IRI(rdf.NS + "nil")

	XSDString   = quad.IRI(xsdNS + "string")
	XSDInteger  = quad.IRI(xsdNS + "integer")
	XSDDecimal  = quad.IRI(xsdNS + "decimal")
	XSDDouble   = quad.IRI(xsdNS + "double")
	XSDBoolean  = quad.IRI(xsdNS + "boolean")
	XSDDateTime = quad.IRI(xsdNS + "dateTime")
)

// Literal is the lexical view of a literal node.
type Literal struct {
	Lexical  string
	Lang     string
	Datatype quad.IRI // empty for plain and language-tagged literals
}

// AsLiteral returns the lexical form of a literal node. Native values are
// mapped onto the matching XSD datatype.
func AsLiteral(v quad.Value) (Literal, bool) {
	switch v := v.(type) {
	case quad.String:
		return Literal{Lexical: string(v)}, true
	case quad.LangString:
		return Literal{Lexical: string(v.Value), Lang: v.Lang}, true
	case quad.TypedString:
		return Literal{Lexical: string(v.Value), Datatype: v.Type}, true
	case quad.Int:
		return Literal{Lexical: strconv.FormatInt(int64(v), 10), Datatype: XSDInteger}, true
	case quad.Float:
		return Literal{Lexical: strconv.FormatFloat(float64(v), 'E', -1, 64), Datatype: XSDDouble}, true
	case quad.Bool:
		return Literal{Lexical: strconv.FormatBool(bool(v)), Datatype: XSDBoolean}, true
	case quad.Time:
		return Literal{Lexical: time.Time(v).UTC().Format(time.RFC3339Nano), Datatype: XSDDateTime}, true
	}
	return Literal{}, false
}
