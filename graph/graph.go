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

package graph

import (
	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc"
)

// Graph is a read-only set of triples with its namespace map.
//
// Implementations must be safe for concurrent readers.
type Graph interface {
	// Name returns the graph name, or nil for the default graph.
	Name() quad.Value
	// Len returns the number of triples.
	Len() int
	// Triples enumerates the graph in storage order.
	Triples() []Triple
	Contains(t Triple) bool

	WithSubject(s quad.Value) []Triple
	WithPredicate(p quad.Value) []Triple
	WithObject(o quad.Value) []Triple
	WithSubjectPredicate(s, p quad.Value) []Triple
	WithPredicateObject(p, o quad.Value) []Triple

	// Subjects returns the distinct subject nodes.
	Subjects() []quad.Value

	Namespaces() *voc.Namespaces
	BaseIRI() quad.IRI
}

// Store is a dataset: an ordered collection of graphs addressed by name.
// The default graph is addressed by the nil name and always exists.
type Store interface {
	// Graphs returns every graph, the default graph first.
	Graphs() []Graph
	// Graph returns the graph with the given name.
	Graph(name quad.Value) (Graph, bool)
}

// Mentions returns every triple of g with n as its subject or object.
// A triple with n in both positions is returned once.
func Mentions(g Graph, n quad.Value) []Triple {
	out := append([]Triple(nil), g.WithSubject(n)...)
	for _, t := range g.WithObject(n) {
		if t.Subject != n {
			out = append(out, t)
		}
	}
	return out
}

// BlankNodes returns the distinct blank nodes used as subjects or objects of g, sorted.
func BlankNodes(g Graph) []quad.Value {
	seen := make(map[quad.Value]struct{})
	var out []quad.Value
	add := func(v quad.Value) {
		if !IsBlank(v) {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	for _, t := range g.Triples() {
		add(t.Subject)
		add(t.Object)
	}
	SortValues(out)
	return out
}

// NonEmpty returns the graphs of s that hold at least one triple.
func NonEmpty(s Store) []Graph {
	var out []Graph
	for _, g := range s.Graphs() {
		if g.Len() > 0 {
			out = append(out, g)
		}
	}
	return out
}

// NameString formats a graph name for messages.
func NameString(name quad.Value) string {
	if name == nil {
		return "default graph"
	}
	return name.String()
}
