// Copyright 2014 The Cayley Authors. All rights reserved.
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

// Package memstore is an in-memory dataset implementing graph.Store.
package memstore

import (
	"fmt"
	"sync"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc"

	"github.com/cayleygraph/rdfwriter/graph"
)

var (
	_ graph.Store = (*Store)(nil)
	_ graph.Graph = (*Graph)(nil)
	_ quad.Writer = (*Store)(nil)
)

type direction int

const (
	subject direction = iota
	predicate
	object
)

// TripleDirectionIndex maps a node in a given direction to the log positions
// of the triples that use it there.
type TripleDirectionIndex struct {
	index [3]map[quad.Value][]int
}

func NewTripleDirectionIndex() TripleDirectionIndex {
	return TripleDirectionIndex{[...]map[quad.Value][]int{
		subject:   make(map[quad.Value][]int),
		predicate: make(map[quad.Value][]int),
		object:    make(map[quad.Value][]int),
	}}
}

func (idx TripleDirectionIndex) add(t graph.Triple, id int) {
	idx.index[subject][t.Subject] = append(idx.index[subject][t.Subject], id)
	idx.index[predicate][t.Predicate] = append(idx.index[predicate][t.Predicate], id)
	idx.index[object][t.Object] = append(idx.index[object][t.Object], id)
}

func (idx TripleDirectionIndex) get(d direction, v quad.Value) []int {
	return idx.index[d][v]
}

// Graph is a single in-memory graph. Writes must not race with reads;
// concurrent reads are safe.
type Graph struct {
	mu    sync.RWMutex
	name  quad.Value
	log   []graph.Triple
	ids   map[graph.Triple]int
	index TripleDirectionIndex
	subs  []quad.Value
	ns    voc.Namespaces
	base  quad.IRI
}

// NewGraph creates an empty graph. A nil name denotes the default graph.
func NewGraph(name quad.Value) *Graph {
	return &Graph{
		name:  name,
		ids:   make(map[graph.Triple]int),
		index: NewTripleDirectionIndex(),
	}
}

// Add inserts a triple, returning false if it was already present.
func (g *Graph) Add(t graph.Triple) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.ids[t]; ok {
		return false
	}
	id := len(g.log)
	g.log = append(g.log, t)
	g.ids[t] = id
	if len(g.index.get(subject, t.Subject)) == 0 {
		g.subs = append(g.subs, t.Subject)
	}
	g.index.add(t, id)
	return true
}

// AddTriple is a convenience wrapper around Add.
func (g *Graph) AddTriple(s, p, o quad.Value) bool {
	return g.Add(graph.T(s, p, o))
}

// AddNamespace registers a prefix for this graph. The prefix is given without the trailing colon.
func (g *Graph) AddNamespace(prefix, iri string) {
	g.mu.Lock()
	g.ns.Register(voc.Namespace{Prefix: prefix + ":", Full: iri})
	g.mu.Unlock()
}

// SetBaseIRI sets the base IRI of the graph.
func (g *Graph) SetBaseIRI(iri quad.IRI) {
	g.mu.Lock()
	g.base = iri
	g.mu.Unlock()
}

func (g *Graph) Name() quad.Value { return g.name }

func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.log)
}

func (g *Graph) Triples() []graph.Triple {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]graph.Triple(nil), g.log...)
}

func (g *Graph) Contains(t graph.Triple) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.ids[t]
	return ok
}

func (g *Graph) lookup(d direction, v quad.Value, keep func(graph.Triple) bool) []graph.Triple {
	g.mu.RLock()
	defer g.mu.RUnlock()
	ids := g.index.get(d, v)
	out := make([]graph.Triple, 0, len(ids))
	for _, id := range ids {
		if t := g.log[id]; keep == nil || keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func (g *Graph) WithSubject(s quad.Value) []graph.Triple {
	return g.lookup(subject, s, nil)
}

func (g *Graph) WithPredicate(p quad.Value) []graph.Triple {
	return g.lookup(predicate, p, nil)
}

func (g *Graph) WithObject(o quad.Value) []graph.Triple {
	return g.lookup(object, o, nil)
}

func (g *Graph) WithSubjectPredicate(s, p quad.Value) []graph.Triple {
	return g.lookup(subject, s, func(t graph.Triple) bool { return t.Predicate == p })
}

func (g *Graph) WithPredicateObject(p, o quad.Value) []graph.Triple {
	return g.lookup(object, o, func(t graph.Triple) bool { return t.Predicate == p })
}

func (g *Graph) Subjects() []quad.Value {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]quad.Value(nil), g.subs...)
}

func (g *Graph) Namespaces() *voc.Namespaces { return &g.ns }

func (g *Graph) BaseIRI() quad.IRI {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.base
}

// Store is an in-memory dataset. The default graph always exists.
type Store struct {
	mu     sync.RWMutex
	graphs []*Graph
	byName map[quad.Value]*Graph
}

// New creates a dataset holding only an empty default graph.
func New() *Store {
	s := &Store{byName: make(map[quad.Value]*Graph)}
	s.AddGraph(nil)
	return s
}

// Default returns the default graph.
func (s *Store) Default() *Graph {
	return s.AddGraph(nil)
}

// AddGraph returns the graph with the given name, creating it if needed.
func (s *Store) AddGraph(name quad.Value) *Graph {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.byName[name]; ok {
		return g
	}
	g := NewGraph(name)
	s.graphs = append(s.graphs, g)
	s.byName[name] = g
	return g
}

func (s *Store) Graph(name quad.Value) (graph.Graph, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return g, true
}

func (s *Store) Graphs() []graph.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]graph.Graph, 0, len(s.graphs))
	for _, g := range s.graphs {
		out = append(out, g)
	}
	return out
}

// AddNamespace registers a prefix on every current graph of the store.
func (s *Store) AddNamespace(prefix, iri string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.graphs {
		g.AddNamespace(prefix, iri)
	}
}

// WriteQuad adds a quad to the graph named by its label.
func (s *Store) WriteQuad(q quad.Quad) error {
	if q.Subject == nil || q.Predicate == nil || q.Object == nil {
		return fmt.Errorf("memstore: incomplete quad: %v", q)
	}
	s.AddGraph(q.Label).Add(graph.T(q.Subject, q.Predicate, q.Object))
	return nil
}

// WriteQuads adds a batch of quads.
func (s *Store) WriteQuads(buf []quad.Quad) (int, error) {
	for i, q := range buf {
		if err := s.WriteQuad(q); err != nil {
			return i, err
		}
	}
	return len(buf), nil
}
