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

package writer

import (
	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/rdfwriter/graph"
)

// SearchMode selects which kinds of collection Analyze looks for.
type SearchMode int

const (
	// SearchAll finds both implicit lists and explicit groups.
	SearchAll SearchMode = iota
	// SearchExplicitOnly finds only [ ... ] groups.
	SearchExplicitOnly
	// SearchImplicitOnly finds only ( ... ) lists.
	SearchImplicitOnly
)

// Collection is a blank node that can be written inline.
//
// For an implicit list, Triples holds the rdf:first triple of every list node
// in list order. For an explicit group, Triples holds the triples to write
// inside the brackets; an empty group is written as [].
type Collection struct {
	Explicit bool
	Triples  []graph.Triple
	// Written is set by the emitter once the collection has been rendered.
	Written bool
}

// Analysis is the result of analyzing a graph for inline syntax.
type Analysis struct {
	// Collections is keyed by the root blank node.
	Collections map[quad.Value]*Collection
	// Annotations maps an asserted triple to the triples whose subject quotes it.
	Annotations map[graph.Triple][]graph.Triple
	// Handled holds every triple that is written as part of a collection or
	// annotation and must be skipped at the top level.
	Handled map[graph.Triple]struct{}
}

func newAnalysis() *Analysis {
	return &Analysis{
		Collections: make(map[quad.Value]*Collection),
		Annotations: make(map[graph.Triple][]graph.Triple),
		Handled:     make(map[graph.Triple]struct{}),
	}
}

// IsHandled reports whether t is written inline.
func (a *Analysis) IsHandled(t graph.Triple) bool {
	_, ok := a.Handled[t]
	return ok
}

// Claims returns the triples a collection accounts for. For lists this
// includes the rdf:rest links between list nodes.
func (c *Collection) Claims() []graph.Triple {
	if c.Explicit {
		return c.Triples
	}
	out := make([]graph.Triple, 0, 2*len(c.Triples))
	for i, t := range c.Triples {
		var next quad.Value = graph.RDFNil
		if i+1 < len(c.Triples) {
			next = c.Triples[i+1].Subject
		}
		out = append(out, t, graph.T(t.Subject, graph.RDFRest, next))
	}
	return out
}

// Analyze finds the blank nodes of g that can be safely written as inline
// collections. The result is deterministic and the input is not modified.
//
// Candidates are removed when inlining would lose or duplicate triples:
// groups whose members cover every mention of the root, collections that
// contain themselves, and groups referenced from more than one place.
func Analyze(g graph.Graph, mode SearchMode) *Analysis {
	return AnalyzeShared(g, mode, nil)
}

// AnalyzeShared is like Analyze, but never inlines the blank nodes in shared.
// Dataset writers use it for blank nodes that are referenced outside g.
func AnalyzeShared(g graph.Graph, mode SearchMode, shared map[quad.Value]struct{}) *Analysis {
	a := &analyzer{
		g:         g,
		pinned:    pinnedBlankNodes(g),
		colls:     make(map[quad.Value]*Collection),
		listNodes: make(map[quad.Value]struct{}),
	}
	for b := range shared {
		a.pinned[b] = struct{}{}
	}
	if mode != SearchExplicitOnly {
		a.findLists()
	}
	if mode != SearchImplicitOnly {
		a.findGroups()
	}
	a.dropCovering()
	a.dropCycles()
	a.dropShared()

	res := newAnalysis()
	res.Collections = a.colls
	for _, c := range a.colls {
		for _, t := range c.Claims() {
			res.Handled[t] = struct{}{}
		}
	}
	mCollections.Add(float64(len(a.colls)))
	return res
}

// FindAnnotations records, for every triple of g that is also quoted as the
// subject of other triples, those annotation triples.
func (a *Analysis) FindAnnotations(g graph.Graph) {
	for _, t := range g.Triples() {
		ann := g.WithSubject(graph.Quote(t))
		if len(ann) == 0 {
			continue
		}
		a.Annotations[t] = ann
		for _, at := range ann {
			a.Handled[at] = struct{}{}
		}
	}
}

// SharedBlankNodes returns the blank nodes of st that must keep their labels
// when graphs are analyzed one at a time: blank graph names and blank nodes
// mentioned by more than one graph.
func SharedBlankNodes(st graph.Store) map[quad.Value]struct{} {
	shared := make(map[quad.Value]struct{})
	owner := make(map[quad.Value]int)
	for i, g := range st.Graphs() {
		if b, ok := g.Name().(quad.BNode); ok {
			shared[b] = struct{}{}
		}
		see := func(b quad.BNode) {
			if j, ok := owner[b]; !ok {
				owner[b] = i
			} else if j != i {
				shared[b] = struct{}{}
			}
		}
		for _, t := range g.Triples() {
			for _, v := range []quad.Value{t.Subject, t.Object} {
				if b, ok := v.(quad.BNode); ok {
					see(b)
				}
				graph.BlankNodesIn(v, see)
			}
		}
	}
	return shared
}

type analyzer struct {
	g         graph.Graph
	pinned    map[quad.Value]struct{}
	colls     map[quad.Value]*Collection
	listNodes map[quad.Value]struct{}
}

// pinnedBlankNodes returns blank nodes referenced from inside quoted triples.
// Such nodes need a stable label and are never inlined.
func pinnedBlankNodes(g graph.Graph) map[quad.Value]struct{} {
	pinned := make(map[quad.Value]struct{})
	add := func(b quad.BNode) { pinned[b] = struct{}{} }
	for _, t := range g.Triples() {
		graph.BlankNodesIn(t.Subject, add)
		graph.BlankNodesIn(t.Object, add)
	}
	return pinned
}

func (a *analyzer) isPinned(v quad.Value) bool {
	_, ok := a.pinned[v]
	return ok
}

// findLists starts from every list tail and walks backwards to the head.
// A chain that breaks any rule is abandoned; other chains are still examined.
func (a *analyzer) findLists() {
	for _, t := range a.g.WithPredicateObject(graph.RDFRest, graph.RDFNil) {
		head, items, ok := a.walkList(t.Subject)
		if !ok {
			continue
		}
		a.colls[head] = &Collection{Triples: items}
		for _, it := range items {
			a.listNodes[it.Subject] = struct{}{}
		}
	}
}

func (a *analyzer) walkList(tail quad.Value) (quad.Value, []graph.Triple, bool) {
	var (
		items []graph.Triple
		seen  = make(map[quad.Value]struct{})
		node  = tail
	)
	for {
		if !graph.IsBlank(node) || a.isPinned(node) {
			return nil, nil, false
		}
		if _, ok := seen[node]; ok {
			return nil, nil, false
		}
		seen[node] = struct{}{}

		firsts := a.g.WithSubjectPredicate(node, graph.RDFFirst)
		rests := a.g.WithSubjectPredicate(node, graph.RDFRest)
		if len(firsts) != 1 || len(rests) != 1 || len(a.g.WithSubject(node)) != 2 {
			return nil, nil, false
		}
		items = append(items, firsts[0])

		in := a.g.WithObject(node)
		if len(in) != 1 {
			return nil, nil, false
		}
		if in[0].Predicate != graph.RDFRest {
			break
		}
		node = in[0].Subject
	}
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return node, items, true
}

func (a *analyzer) findGroups() {
	for _, b := range graph.BlankNodes(a.g) {
		if _, ok := a.colls[b]; ok {
			continue
		}
		if _, ok := a.listNodes[b]; ok {
			continue
		}
		if a.isPinned(b) {
			continue
		}
		mentions := graph.Mentions(a.g, b)
		if hasSelfReference(mentions, b) {
			continue
		}
		if len(mentions) == 1 {
			a.colls[b] = &Collection{Explicit: true}
			continue
		}
		// a non-empty group needs exactly one place to be spliced into
		if len(a.g.WithObject(b)) != 1 {
			continue
		}
		var members []graph.Triple
		for _, t := range a.g.WithSubject(b) {
			if t.Predicate == graph.RDFFirst || t.Predicate == graph.RDFRest {
				continue
			}
			members = append(members, t)
		}
		a.colls[b] = &Collection{Explicit: true, Triples: members}
	}
}

func hasSelfReference(ts []graph.Triple, b quad.Value) bool {
	for _, t := range ts {
		if t.Subject == b && t.Object == b {
			return true
		}
	}
	return false
}

// dropCovering removes groups whose members are every mention of the root,
// leaving nowhere to splice them in, and lists whose head is not referenced
// exactly once.
func (a *analyzer) dropCovering() {
	for root, c := range a.colls {
		if c.Explicit {
			if n := len(c.Triples); n > 0 && n >= len(graph.Mentions(a.g, root)) {
				delete(a.colls, root)
			}
		} else if len(a.g.WithObject(root)) != 1 {
			delete(a.colls, root)
		}
	}
}

// dropCycles removes every collection that can reach itself through the
// objects of its triples.
func (a *analyzer) dropCycles() {
	deps := make(map[quad.Value][]quad.Value, len(a.colls))
	for root, c := range a.colls {
		for _, t := range c.Triples {
			if _, ok := a.colls[t.Object]; ok {
				deps[root] = append(deps[root], t.Object)
			}
		}
	}
	var cyclic []quad.Value
	for root := range a.colls {
		if reaches(deps, root, root) {
			cyclic = append(cyclic, root)
		}
	}
	for _, root := range cyclic {
		delete(a.colls, root)
	}
}

func reaches(deps map[quad.Value][]quad.Value, from, target quad.Value) bool {
	seen := make(map[quad.Value]struct{})
	stack := append([]quad.Value(nil), deps[from]...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == target {
			return true
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		stack = append(stack, deps[n]...)
	}
	return false
}

// dropShared removes groups that are referenced from more than one place.
// Mentions already written inside another collection do not count.
func (a *analyzer) dropShared() {
	owner := make(map[graph.Triple]quad.Value)
	for root, c := range a.colls {
		for _, t := range c.Claims() {
			owner[t] = root
		}
	}
	var shared []quad.Value
	for root, c := range a.colls {
		if !c.Explicit {
			continue
		}
		free := 0
		for _, t := range graph.Mentions(a.g, root) {
			if o, ok := owner[t]; ok && o != root {
				continue
			}
			free++
		}
		if free > len(c.Triples)+1 {
			shared = append(shared, root)
		}
	}
	for _, root := range shared {
		delete(a.colls, root)
	}
}
